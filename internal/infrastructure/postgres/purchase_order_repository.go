package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/AimaKoraki/Inventory-management-system/internal/domain"
	"github.com/AimaKoraki/Inventory-management-system/internal/domain/entity"
	"github.com/AimaKoraki/Inventory-management-system/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

const orderColumns = `id, supplier_id, order_date, expected_delivery_date, actual_delivery_date, status, notes, created_by_user_id, created_at, updated_at`

// PurchaseOrderRepo implementación del puerto PurchaseOrderRepository sobre PostgreSQL.
// GetByID y los listados devuelven la orden con sus líneas cargadas.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador de persistencia para órdenes de compra.
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

func scanOrder(row pgx.Row) (*entity.PurchaseOrder, error) {
	var o entity.PurchaseOrder
	var createdBy *string
	var status string
	err := row.Scan(
		&o.ID, &o.SupplierID, &o.OrderDate, &o.ExpectedDeliveryDate, &o.ActualDeliveryDate,
		&status, &o.Notes, &createdBy, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	o.Status = entity.OrderStatus(status)
	o.CreatedByUserID = deref(createdBy)
	return &o, nil
}

// loadItems carga las líneas de la orden en o.Items.
func (r *PurchaseOrderRepo) loadItems(o *entity.PurchaseOrder) error {
	items, err := NewPurchaseOrderItemRepository(r.q).ListByOrder(o.ID)
	if err != nil {
		return err
	}
	o.Items = items
	return nil
}

// Create persiste la cabecera de una nueva orden (las líneas van por su propio repo).
func (r *PurchaseOrderRepo) Create(order *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (id, supplier_id, order_date, expected_delivery_date, actual_delivery_date, status, notes, created_by_user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.SupplierID, order.OrderDate, order.ExpectedDeliveryDate,
		order.ActualDeliveryDate, string(order.Status), order.Notes,
		nullable(order.CreatedByUserID), order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert purchase order: %w", err)
	}
	return nil
}

// GetByID obtiene una orden con sus líneas.
func (r *PurchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM purchase_orders WHERE id = $1`
	o, err := scanOrder(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	if err := r.loadItems(o); err != nil {
		return nil, err
	}
	return o, nil
}

// GetForUpdate obtiene la orden (con líneas) bloqueando la fila de la cabecera.
// Solo dentro de una tx.
func (r *PurchaseOrderRepo) GetForUpdate(id string) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM purchase_orders WHERE id = $1 FOR UPDATE`
	o, err := scanOrder(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order for update: %w", err)
	}
	if err := r.loadItems(o); err != nil {
		return nil, err
	}
	return o, nil
}

// Update actualiza la cabecera de la orden.
func (r *PurchaseOrderRepo) Update(order *entity.PurchaseOrder) error {
	query := `
		UPDATE purchase_orders SET supplier_id = $2, order_date = $3, expected_delivery_date = $4, actual_delivery_date = $5, status = $6, notes = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.SupplierID, order.OrderDate, order.ExpectedDeliveryDate,
		order.ActualDeliveryDate, string(order.Status), order.Notes, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update purchase order: %w", err)
	}
	return nil
}

func (r *PurchaseOrderRepo) queryOrders(query string, args ...any) ([]*entity.PurchaseOrder, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()

	var orders []*entity.PurchaseOrder
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// Cargar líneas después de cerrar el cursor de las cabeceras.
	for _, o := range orders {
		if err := r.loadItems(o); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

// List lista órdenes con paginación, las más recientes primero.
func (r *PurchaseOrderRepo) List(limit, offset int) ([]*entity.PurchaseOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM purchase_orders ORDER BY order_date DESC LIMIT $1 OFFSET $2`
	return r.queryOrders(query, limit, offset)
}

// ListByStatus lista órdenes en un estado dado.
func (r *PurchaseOrderRepo) ListByStatus(status entity.OrderStatus) ([]*entity.PurchaseOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM purchase_orders WHERE status = $1 ORDER BY order_date DESC`
	return r.queryOrders(query, string(status))
}

// ListByDateRange lista órdenes cuyo order_date cae en [from, to].
func (r *PurchaseOrderRepo) ListByDateRange(from, to time.Time) ([]*entity.PurchaseOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM purchase_orders WHERE order_date >= $1 AND order_date <= $2 ORDER BY order_date ASC`
	return r.queryOrders(query, from, to)
}

// ListBySupplier lista órdenes de un proveedor.
func (r *PurchaseOrderRepo) ListBySupplier(supplierID string) ([]*entity.PurchaseOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM purchase_orders WHERE supplier_id = $1 ORDER BY order_date DESC`
	return r.queryOrders(query, supplierID)
}

// CountBySupplier cuenta órdenes de un proveedor.
func (r *PurchaseOrderRepo) CountBySupplier(supplierID string) (int64, error) {
	var count int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM purchase_orders WHERE supplier_id = $1`, supplierID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count purchase orders by supplier: %w", err)
	}
	return count, nil
}

// CountByStatus cuenta órdenes en un estado dado.
func (r *PurchaseOrderRepo) CountByStatus(status entity.OrderStatus) (int64, error) {
	var count int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM purchase_orders WHERE status = $1`, string(status),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count purchase orders by status: %w", err)
	}
	return count, nil
}

// Delete elimina una orden por ID (las líneas caen por ON DELETE CASCADE).
func (r *PurchaseOrderRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM purchase_orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete purchase order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
