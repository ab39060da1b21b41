// Package apptest provee un backend en memoria para los tests de casos de
// uso: implementa los puertos de repositorio y el unit of work con rollback
// por snapshot, sin necesidad de una base PostgreSQL.
package apptest

import (
	"sync"

	"github.com/AimaKoraki/Inventory-management-system/internal/domain/entity"
)

// Store estado compartido de los repositorios fake. Las entidades se guardan
// y devuelven siempre clonadas: la única vía de mutación son los métodos de
// repositorio, igual que contra la base real.
type Store struct {
	mu        sync.Mutex
	products  map[string]*entity.Product
	suppliers map[string]*entity.Supplier
	orders    map[string]*entity.PurchaseOrder
	items     []*entity.PurchaseOrderItem
	movements []*entity.StockMovement
	users     map[string]*entity.User
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		products:  make(map[string]*entity.Product),
		suppliers: make(map[string]*entity.Supplier),
		orders:    make(map[string]*entity.PurchaseOrder),
		users:     make(map[string]*entity.User),
	}
}

// ── Seeds y accesores para aserciones ────────────────────────────────────────

// SeedProduct inserta un producto directamente.
func (s *Store) SeedProduct(p *entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = cloneProduct(p)
}

// SeedSupplier inserta un proveedor directamente.
func (s *Store) SeedSupplier(sup *entity.Supplier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suppliers[sup.ID] = cloneSupplier(sup)
}

// SeedUser inserta un usuario directamente.
func (s *Store) SeedUser(u *entity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = cloneUser(u)
}

// SeedOrder inserta una orden con sus líneas directamente.
func (s *Store) SeedOrder(o *entity.PurchaseOrder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.ID] = cloneOrder(o)
	for _, it := range o.Items {
		s.items = append(s.items, cloneItem(it))
	}
}

// Product devuelve el producto almacenado (clon) o nil.
func (s *Store) Product(id string) *entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil
	}
	return cloneProduct(p)
}

// Order devuelve la orden almacenada (clon, con líneas) o nil.
func (s *Store) Order(id string) *entity.PurchaseOrder {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil
	}
	c := cloneOrder(o)
	for _, it := range s.items {
		if it.PurchaseOrderID == id {
			c.Items = append(c.Items, cloneItem(it))
		}
	}
	return c
}

// Movements devuelve todos los asientos del libro en orden de inserción.
func (s *Store) Movements() []*entity.StockMovement {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entity.StockMovement, 0, len(s.movements))
	for _, m := range s.movements {
		out = append(out, cloneMovement(m))
	}
	return out
}

// MovementsForProduct asientos de un producto en orden de inserción.
func (s *Store) MovementsForProduct(productID string) []*entity.StockMovement {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.StockMovement
	for _, m := range s.movements {
		if m.ProductID == productID {
			out = append(out, cloneMovement(m))
		}
	}
	return out
}

// User devuelve el usuario almacenado (clon) o nil.
func (s *Store) User(id string) *entity.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil
	}
	return cloneUser(u)
}

// DeleteProductDirect elimina un producto sin pasar por el repositorio
// (simula borrado concurrente entre lecturas).
func (s *Store) DeleteProductDirect(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.products, id)
}

// ── Snapshot / restore (rollback del unit of work) ───────────────────────────

type snapshot struct {
	products  map[string]*entity.Product
	suppliers map[string]*entity.Supplier
	orders    map[string]*entity.PurchaseOrder
	items     []*entity.PurchaseOrderItem
	movements []*entity.StockMovement
	users     map[string]*entity.User
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := snapshot{
		products:  make(map[string]*entity.Product, len(s.products)),
		suppliers: make(map[string]*entity.Supplier, len(s.suppliers)),
		orders:    make(map[string]*entity.PurchaseOrder, len(s.orders)),
		users:     make(map[string]*entity.User, len(s.users)),
	}
	for id, p := range s.products {
		snap.products[id] = cloneProduct(p)
	}
	for id, sup := range s.suppliers {
		snap.suppliers[id] = cloneSupplier(sup)
	}
	for id, o := range s.orders {
		snap.orders[id] = cloneOrder(o)
	}
	for id, u := range s.users {
		snap.users[id] = cloneUser(u)
	}
	snap.items = make([]*entity.PurchaseOrderItem, 0, len(s.items))
	for _, it := range s.items {
		snap.items = append(snap.items, cloneItem(it))
	}
	snap.movements = make([]*entity.StockMovement, 0, len(s.movements))
	for _, m := range s.movements {
		snap.movements = append(snap.movements, cloneMovement(m))
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = snap.products
	s.suppliers = snap.suppliers
	s.orders = snap.orders
	s.items = snap.items
	s.movements = snap.movements
	s.users = snap.users
}

// ── Clones ───────────────────────────────────────────────────────────────────

func cloneProduct(p *entity.Product) *entity.Product {
	c := *p
	return &c
}

func cloneSupplier(s *entity.Supplier) *entity.Supplier {
	c := *s
	return &c
}

func cloneUser(u *entity.User) *entity.User {
	c := *u
	if u.LastLoginDate != nil {
		t := *u.LastLoginDate
		c.LastLoginDate = &t
	}
	return &c
}

func cloneOrder(o *entity.PurchaseOrder) *entity.PurchaseOrder {
	c := *o
	if o.ExpectedDeliveryDate != nil {
		t := *o.ExpectedDeliveryDate
		c.ExpectedDeliveryDate = &t
	}
	if o.ActualDeliveryDate != nil {
		t := *o.ActualDeliveryDate
		c.ActualDeliveryDate = &t
	}
	c.Items = nil
	return &c
}

func cloneItem(it *entity.PurchaseOrderItem) *entity.PurchaseOrderItem {
	c := *it
	return &c
}

func cloneMovement(m *entity.StockMovement) *entity.StockMovement {
	c := *m
	return &c
}
