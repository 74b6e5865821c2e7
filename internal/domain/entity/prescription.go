package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Prescription es una línea de despacho a paciente: cuántas cajas y unidades
// sueltas de una medicina se entregaron. Inmutable una vez creada; nunca se
// edita, solo se reemplaza con nuevas líneas.
//
// Las líneas de un mismo envío comparten Date, lo que permite agruparlas en
// "facturas" truncando el timestamp al minuto.
type Prescription struct {
	ID             string
	PatientID      string
	MedicineID     string
	BoxesGiven     int64
	UnitsGiven     int64
	PrescribedByID string
	Date           time.Time
}

// TotalUnits devuelve las unidades totales entregadas según el BoxSize del lote.
func (p *Prescription) TotalUnits(boxSize int64) int64 {
	if boxSize <= 0 {
		return p.UnitsGiven
	}
	return p.BoxesGiven*boxSize + p.UnitsGiven
}

// LineTotal devuelve el importe de la línea: BoxPrice*cajas + UnitPrice*unidades.
func (p *Prescription) LineTotal(boxPrice, unitPrice decimal.Decimal) decimal.Decimal {
	boxes := boxPrice.Mul(decimal.NewFromInt(p.BoxesGiven))
	units := unitPrice.Mul(decimal.NewFromInt(p.UnitsGiven))
	return boxes.Add(units)
}
