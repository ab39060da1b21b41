package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/AimaKoraki/Inventory-management-system/internal/domain/entity"
	"github.com/AimaKoraki/Inventory-management-system/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const movementColumns = `id, product_id, movement_date, type, quantity_changed, reason, source_purchase_order_id, purchase_order_item_id, performed_by_user_id, created_at`

// StockMovementRepo implementación del puerto StockMovementRepository sobre
// PostgreSQL. El libro es append-only: solo INSERT y lecturas.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador de persistencia para movimientos de stock.
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	var mType string
	var sourceOrderID, itemID, performedBy *string
	err := row.Scan(
		&m.ID, &m.ProductID, &m.MovementDate, &mType, &m.QuantityChanged, &m.Reason,
		&sourceOrderID, &itemID, &performedBy, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	m.Type = entity.MovementType(mType)
	m.SourcePurchaseOrderID = deref(sourceOrderID)
	m.PurchaseOrderItemID = deref(itemID)
	m.PerformedByUserID = deref(performedBy)
	return &m, nil
}

// Create asienta un movimiento en el libro.
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, product_id, movement_date, type, quantity_changed, reason, source_purchase_order_id, purchase_order_item_id, performed_by_user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ProductID, movement.MovementDate, string(movement.Type),
		movement.QuantityChanged, movement.Reason,
		nullable(movement.SourcePurchaseOrderID), nullable(movement.PurchaseOrderItemID),
		nullable(movement.PerformedByUserID), movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// ListByProduct lista movimientos de un producto, los más recientes primero.
func (r *StockMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE product_id = $1 ORDER BY movement_date DESC LIMIT $2 OFFSET $3`
	return r.queryMovements(query, productID, limit, offset)
}

// ListByDateRange lista movimientos en [from, to] en orden cronológico.
func (r *StockMovementRepo) ListByDateRange(from, to time.Time) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE movement_date >= $1 AND movement_date <= $2 ORDER BY movement_date ASC`
	return r.queryMovements(query, from, to)
}

// SumByProduct suma quantity_changed de todos los movimientos del producto.
func (r *StockMovementRepo) SumByProduct(productID string) (int64, error) {
	var sum int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(quantity_changed), 0) FROM stock_movements WHERE product_id = $1`,
		productID,
	).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("sum stock movements: %w", err)
	}
	return sum, nil
}

func (r *StockMovementRepo) queryMovements(query string, args ...any) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()

	var movements []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		movements = append(movements, m)
	}
	return movements, rows.Err()
}
