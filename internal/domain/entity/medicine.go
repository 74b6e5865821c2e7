package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/farmacia-api/internal/domain/inventory"
)

// Categorías válidas para Medicine.
const (
	CategoryTablet  = "tablet"
	CategorySyrup   = "syrup"
	CategoryVitamin = "vitamin"
	CategoryInhaler = "inhaler"
)

// ValidCategory acepta solo las categorías del dominio. La categoría forma
// parte de la identidad del lote (NameKey + Category); aceptar valores fuera
// del conjunto dejaría lotes irresolubles para los traslados.
func ValidCategory(c string) bool {
	switch c {
	case CategoryTablet, CategorySyrup, CategoryVitamin, CategoryInhaler:
		return true
	}
	return false
}

// Medicine representa un lote de medicina con su stock, ya sea en el almacén
// central (Location.IsWarehouse) o en un lugar concreto. La cantidad se lleva
// en doble unidad: cajas completas (BoxCount) más unidades sueltas (ExtraUnits).
//
// Invariante: 0 <= ExtraUnits < BoxSize siempre que BoxSize > 1. Toda mutación
// debe re-derivar BoxCount/ExtraUnits con el helper de inventory.
type Medicine struct {
	ID          string
	Name        string
	NameKey     string // identidad case-insensitive (case folding), derivada de Name
	GenericName string
	Weight      string
	Category    string          // tablet, syrup, vitamin, inhaler
	BoxPrice    decimal.Decimal // precio por caja
	BoxSize     int64           // unidades por caja (<=0: medicina sin cajas)
	BoxCount    int64           // cajas completas en existencia
	ExtraUnits  int64           // unidades sueltas
	ExpiryDate  *time.Time
	Location    Location
	OwnerID     *string // usuario dueño del lote (nil en lotes de lugar)
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TotalUnits devuelve la cantidad total en unidades discretas.
func (m *Medicine) TotalUnits() int64 {
	return inventory.ToUnits(m.BoxCount, m.ExtraUnits, m.BoxSize)
}

// UnitPrice devuelve el precio por unidad: BoxPrice / BoxSize.
// Si BoxSize <= 1 el precio por caja y por unidad coinciden.
func (m *Medicine) UnitPrice() decimal.Decimal {
	if m.BoxSize <= 1 {
		return m.BoxPrice
	}
	return m.BoxPrice.Div(decimal.NewFromInt(m.BoxSize))
}

// SetTotalUnits re-deriva BoxCount/ExtraUnits desde un total de unidades,
// usando el BoxSize propio del lote.
func (m *Medicine) SetTotalUnits(total int64) {
	m.BoxCount, m.ExtraUnits = inventory.FromUnits(total, m.BoxSize)
}

// DisplayQuantity devuelve la cantidad en formato legible ("3 cajas (2 unidades)").
func (m *Medicine) DisplayQuantity() string {
	return inventory.DisplayQuantity(m.BoxCount, m.ExtraUnits, m.BoxSize)
}
