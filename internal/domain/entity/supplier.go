package entity

import "time"

// Supplier representa un proveedor. Name es único.
// No puede eliminarse mientras tenga productos u órdenes de compra asociados.
type Supplier struct {
	ID            string
	Name          string
	ContactPerson string
	Email         string
	Phone         string
	Address       string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
