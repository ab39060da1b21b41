package apptest

import (
	"sort"
	"time"

	"github.com/AimaKoraki/Inventory-management-system/internal/domain"
	"github.com/AimaKoraki/Inventory-management-system/internal/domain/entity"
	"github.com/AimaKoraki/Inventory-management-system/internal/domain/repository"
)

var (
	_ repository.ProductRepository           = (*ProductRepo)(nil)
	_ repository.SupplierRepository          = (*SupplierRepo)(nil)
	_ repository.PurchaseOrderRepository     = (*OrderRepo)(nil)
	_ repository.PurchaseOrderItemRepository = (*OrderItemRepo)(nil)
	_ repository.StockMovementRepository     = (*MovementRepo)(nil)
	_ repository.UserRepository              = (*UserRepo)(nil)
)

// ── ProductRepo ──────────────────────────────────────────────────────────────

// ProductRepo implementación en memoria de ProductRepository.
type ProductRepo struct{ s *Store }

// NewProductRepo construye el repo sobre el store.
func NewProductRepo(s *Store) *ProductRepo { return &ProductRepo{s: s} }

func (r *ProductRepo) Create(p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[p.ID]; ok {
		return domain.ErrDuplicate
	}
	for _, existing := range r.s.products {
		if existing.SKU == p.SKU {
			return domain.ErrDuplicate
		}
	}
	r.s.products[p.ID] = cloneProduct(p)
	return nil
}

func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return cloneProduct(p), nil
}

func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *ProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.SKU == sku {
			return cloneProduct(p), nil
		}
	}
	return nil, nil
}

func (r *ProductRepo) Update(p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.products[p.ID]
	if !ok {
		return nil
	}
	for _, other := range r.s.products {
		if other.ID != p.ID && other.SKU == p.SKU {
			return domain.ErrDuplicate
		}
	}
	// Update no toca el stock: preserva la cantidad almacenada.
	c := cloneProduct(p)
	c.QuantityInStock = existing.QuantityInStock
	r.s.products[p.ID] = c
	return nil
}

func (r *ProductRepo) UpdateQuantity(productID string, quantity int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.QuantityInStock = quantity
	p.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	all := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		all = append(all, cloneProduct(p))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return paginate(all, limit, offset), nil
}

func (r *ProductRepo) ListLowStock() ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Product
	for _, p := range r.s.products {
		if p.QuantityInStock <= p.LowStockThreshold {
			out = append(out, cloneProduct(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].QuantityInStock < out[j].QuantityInStock })
	return out, nil
}

func (r *ProductRepo) CountBySupplier(supplierID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, p := range r.s.products {
		if p.SupplierID == supplierID {
			n++
		}
	}
	return n, nil
}

func (r *ProductRepo) Count() (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.products)), nil
}

func (r *ProductRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.products, id)
	return nil
}

// ── SupplierRepo ─────────────────────────────────────────────────────────────

// SupplierRepo implementación en memoria de SupplierRepository.
type SupplierRepo struct{ s *Store }

// NewSupplierRepo construye el repo sobre el store.
func NewSupplierRepo(s *Store) *SupplierRepo { return &SupplierRepo{s: s} }

func (r *SupplierRepo) Create(sup *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.suppliers {
		if existing.Name == sup.Name {
			return domain.ErrDuplicate
		}
	}
	r.s.suppliers[sup.ID] = cloneSupplier(sup)
	return nil
}

func (r *SupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sup, ok := r.s.suppliers[id]
	if !ok {
		return nil, nil
	}
	return cloneSupplier(sup), nil
}

func (r *SupplierRepo) GetByName(name string) (*entity.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, sup := range r.s.suppliers {
		if sup.Name == name {
			return cloneSupplier(sup), nil
		}
	}
	return nil, nil
}

func (r *SupplierRepo) Update(sup *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.suppliers {
		if other.ID != sup.ID && other.Name == sup.Name {
			return domain.ErrDuplicate
		}
	}
	r.s.suppliers[sup.ID] = cloneSupplier(sup)
	return nil
}

func (r *SupplierRepo) List(limit, offset int) ([]*entity.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	all := make([]*entity.Supplier, 0, len(r.s.suppliers))
	for _, sup := range r.s.suppliers {
		all = append(all, cloneSupplier(sup))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return paginate(all, limit, offset), nil
}

func (r *SupplierRepo) Count() (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.suppliers)), nil
}

func (r *SupplierRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.suppliers[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.suppliers, id)
	return nil
}

// ── OrderRepo ────────────────────────────────────────────────────────────────

// OrderRepo implementación en memoria de PurchaseOrderRepository.
type OrderRepo struct{ s *Store }

// NewOrderRepo construye el repo sobre el store.
func NewOrderRepo(s *Store) *OrderRepo { return &OrderRepo{s: s} }

func (r *OrderRepo) loadLocked(o *entity.PurchaseOrder) *entity.PurchaseOrder {
	c := cloneOrder(o)
	for _, it := range r.s.items {
		if it.PurchaseOrderID == o.ID {
			c.Items = append(c.Items, cloneItem(it))
		}
	}
	return c
}

func (r *OrderRepo) Create(o *entity.PurchaseOrder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.orders[o.ID] = cloneOrder(o)
	return nil
}

func (r *OrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	return r.loadLocked(o), nil
}

func (r *OrderRepo) GetForUpdate(id string) (*entity.PurchaseOrder, error) {
	return r.GetByID(id)
}

func (r *OrderRepo) Update(o *entity.PurchaseOrder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.orders[o.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.orders[o.ID] = cloneOrder(o)
	return nil
}

func (r *OrderRepo) listLocked(filter func(*entity.PurchaseOrder) bool) []*entity.PurchaseOrder {
	var out []*entity.PurchaseOrder
	for _, o := range r.s.orders {
		if filter(o) {
			out = append(out, r.loadLocked(o))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderDate.After(out[j].OrderDate) })
	return out
}

func (r *OrderRepo) List(limit, offset int) ([]*entity.PurchaseOrder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	all := r.listLocked(func(*entity.PurchaseOrder) bool { return true })
	return paginate(all, limit, offset), nil
}

func (r *OrderRepo) ListByStatus(status entity.OrderStatus) ([]*entity.PurchaseOrder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.listLocked(func(o *entity.PurchaseOrder) bool { return o.Status == status }), nil
}

func (r *OrderRepo) ListByDateRange(from, to time.Time) ([]*entity.PurchaseOrder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := r.listLocked(func(o *entity.PurchaseOrder) bool {
		return !o.OrderDate.Before(from) && !o.OrderDate.After(to)
	})
	sort.Slice(out, func(i, j int) bool { return out[i].OrderDate.Before(out[j].OrderDate) })
	return out, nil
}

func (r *OrderRepo) ListBySupplier(supplierID string) ([]*entity.PurchaseOrder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.listLocked(func(o *entity.PurchaseOrder) bool { return o.SupplierID == supplierID }), nil
}

func (r *OrderRepo) CountBySupplier(supplierID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, o := range r.s.orders {
		if o.SupplierID == supplierID {
			n++
		}
	}
	return n, nil
}

func (r *OrderRepo) CountByStatus(status entity.OrderStatus) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, o := range r.s.orders {
		if o.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *OrderRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.orders[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.orders, id)
	kept := r.s.items[:0]
	for _, it := range r.s.items {
		if it.PurchaseOrderID != id {
			kept = append(kept, it)
		}
	}
	r.s.items = kept
	return nil
}

// ── OrderItemRepo ────────────────────────────────────────────────────────────

// OrderItemRepo implementación en memoria de PurchaseOrderItemRepository.
type OrderItemRepo struct{ s *Store }

// NewOrderItemRepo construye el repo sobre el store.
func NewOrderItemRepo(s *Store) *OrderItemRepo { return &OrderItemRepo{s: s} }

func (r *OrderItemRepo) Create(it *entity.PurchaseOrderItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.items = append(r.s.items, cloneItem(it))
	return nil
}

func (r *OrderItemRepo) GetByID(id string) (*entity.PurchaseOrderItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, it := range r.s.items {
		if it.ID == id {
			return cloneItem(it), nil
		}
	}
	return nil, nil
}

func (r *OrderItemRepo) Update(item *entity.PurchaseOrderItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, it := range r.s.items {
		if it.ID == item.ID {
			r.s.items[i] = cloneItem(item)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *OrderItemRepo) UpdateReceived(itemID string, quantityReceived int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, it := range r.s.items {
		if it.ID == itemID {
			it.QuantityReceived = quantityReceived
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *OrderItemRepo) ListByOrder(orderID string) ([]*entity.PurchaseOrderItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.PurchaseOrderItem
	for _, it := range r.s.items {
		if it.PurchaseOrderID == orderID {
			out = append(out, cloneItem(it))
		}
	}
	return out, nil
}

func (r *OrderItemRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, it := range r.s.items {
		if it.ID == id {
			r.s.items = append(r.s.items[:i], r.s.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// ── MovementRepo ─────────────────────────────────────────────────────────────

// MovementRepo implementación en memoria del libro de movimientos (append-only).
type MovementRepo struct{ s *Store }

// NewMovementRepo construye el repo sobre el store.
func NewMovementRepo(s *Store) *MovementRepo { return &MovementRepo{s: s} }

func (r *MovementRepo) Create(m *entity.StockMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.movements = append(r.s.movements, cloneMovement(m))
	return nil
}

func (r *MovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.StockMovement
	// Más recientes primero: recorrido inverso del orden de inserción.
	for i := len(r.s.movements) - 1; i >= 0; i-- {
		if r.s.movements[i].ProductID == productID {
			out = append(out, cloneMovement(r.s.movements[i]))
		}
	}
	return paginate(out, limit, offset), nil
}

func (r *MovementRepo) ListByDateRange(from, to time.Time) ([]*entity.StockMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.StockMovement
	for _, m := range r.s.movements {
		if !m.MovementDate.Before(from) && !m.MovementDate.After(to) {
			out = append(out, cloneMovement(m))
		}
	}
	return out, nil
}

func (r *MovementRepo) SumByProduct(productID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var sum int64
	for _, m := range r.s.movements {
		if m.ProductID == productID {
			sum += m.QuantityChanged
		}
	}
	return sum, nil
}

// ── UserRepo ─────────────────────────────────────────────────────────────────

// UserRepo implementación en memoria de UserRepository.
type UserRepo struct{ s *Store }

// NewUserRepo construye el repo sobre el store.
func NewUserRepo(s *Store) *UserRepo { return &UserRepo{s: s} }

func (r *UserRepo) Create(u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Username == u.Username {
			return domain.ErrDuplicate
		}
	}
	r.s.users[u.ID] = cloneUser(u)
	return nil
}

func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return cloneUser(u), nil
}

func (r *UserRepo) GetByUsername(username string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (r *UserRepo) Update(u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.users {
		if other.ID != u.ID && other.Username == u.Username {
			return domain.ErrDuplicate
		}
	}
	r.s.users[u.ID] = cloneUser(u)
	return nil
}

func (r *UserRepo) UpdateLastLogin(userID string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[userID]
	if !ok {
		return domain.ErrNotFound
	}
	t := at
	u.LastLoginDate = &t
	return nil
}

func (r *UserRepo) List(limit, offset int) ([]*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	all := make([]*entity.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		all = append(all, cloneUser(u))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Username < all[j].Username })
	return paginate(all, limit, offset), nil
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
