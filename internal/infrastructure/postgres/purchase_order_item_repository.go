package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/AimaKoraki/Inventory-management-system/internal/domain"
	"github.com/AimaKoraki/Inventory-management-system/internal/domain/entity"
	"github.com/AimaKoraki/Inventory-management-system/internal/domain/repository"
)

var _ repository.PurchaseOrderItemRepository = (*PurchaseOrderItemRepo)(nil)

const orderItemColumns = `id, purchase_order_id, product_id, quantity_ordered, unit_price, quantity_received`

// PurchaseOrderItemRepo implementación del puerto PurchaseOrderItemRepository sobre PostgreSQL.
type PurchaseOrderItemRepo struct {
	q Querier
}

// NewPurchaseOrderItemRepository construye el adaptador de persistencia para líneas de orden.
func NewPurchaseOrderItemRepository(q Querier) *PurchaseOrderItemRepo {
	return &PurchaseOrderItemRepo{q: q}
}

func scanOrderItem(row pgx.Row) (*entity.PurchaseOrderItem, error) {
	var it entity.PurchaseOrderItem
	err := row.Scan(
		&it.ID, &it.PurchaseOrderID, &it.ProductID,
		&it.QuantityOrdered, &it.UnitPrice, &it.QuantityReceived,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// Create persiste una nueva línea de orden.
func (r *PurchaseOrderItemRepo) Create(item *entity.PurchaseOrderItem) error {
	query := `
		INSERT INTO purchase_order_items (id, purchase_order_id, product_id, quantity_ordered, unit_price, quantity_received)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.PurchaseOrderID, item.ProductID,
		item.QuantityOrdered, item.UnitPrice, item.QuantityReceived,
	)
	if err != nil {
		return fmt.Errorf("insert purchase order item: %w", err)
	}
	return nil
}

// GetByID obtiene una línea por ID.
func (r *PurchaseOrderItemRepo) GetByID(id string) (*entity.PurchaseOrderItem, error) {
	query := `SELECT ` + orderItemColumns + ` FROM purchase_order_items WHERE id = $1`
	it, err := scanOrderItem(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order item: %w", err)
	}
	return it, nil
}

// Update actualiza una línea existente.
func (r *PurchaseOrderItemRepo) Update(item *entity.PurchaseOrderItem) error {
	query := `
		UPDATE purchase_order_items SET product_id = $2, quantity_ordered = $3, unit_price = $4, quantity_received = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.ProductID, item.QuantityOrdered, item.UnitPrice, item.QuantityReceived,
	)
	if err != nil {
		return fmt.Errorf("update purchase order item: %w", err)
	}
	return nil
}

// UpdateReceived actualiza solo la cantidad recibida (usado por la recepción de órdenes).
func (r *PurchaseOrderItemRepo) UpdateReceived(itemID string, quantityReceived int64) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE purchase_order_items SET quantity_received = $2 WHERE id = $1`,
		itemID, quantityReceived,
	)
	if err != nil {
		return fmt.Errorf("update purchase order item received: %w", err)
	}
	return nil
}

// ListByOrder lista las líneas de una orden.
func (r *PurchaseOrderItemRepo) ListByOrder(orderID string) ([]*entity.PurchaseOrderItem, error) {
	query := `SELECT ` + orderItemColumns + ` FROM purchase_order_items WHERE purchase_order_id = $1 ORDER BY id ASC`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list purchase order items: %w", err)
	}
	defer rows.Close()

	var items []*entity.PurchaseOrderItem
	for rows.Next() {
		it, err := scanOrderItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase order item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Delete elimina una línea por ID.
func (r *PurchaseOrderItemRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM purchase_order_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete purchase order item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
