package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceSummaryDTO una "factura": despachos de un paciente en el mismo minuto.
type InvoiceSummaryDTO struct {
	Minute     time.Time       `json:"minute"` // timestamp truncado al minuto
	MinuteKey  string          `json:"minute_key"` // formato URL: 2006-01-02_15-04
	LineCount  int             `json:"line_count"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// InvoiceLineDTO línea de una factura con importes calculados.
type InvoiceLineDTO struct {
	MedicineName string          `json:"medicine_name"`
	BoxesGiven   int64           `json:"boxes_given"`
	UnitsGiven   int64           `json:"units_given"`
	TotalUnits   int64           `json:"total_units"`
	BoxPrice     decimal.Decimal `json:"box_price"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	LineTotal    decimal.Decimal `json:"line_total"`
}

// InvoiceDetailDTO factura completa de un paciente para un minuto dado.
type InvoiceDetailDTO struct {
	InvoiceNumber string           `json:"invoice_number"`
	PatientID     string           `json:"patient_id"`
	PatientName   string           `json:"patient_name"`
	Date          time.Time        `json:"date"`
	PrescribedBy  string           `json:"prescribed_by,omitempty"`
	Lines         []InvoiceLineDTO `json:"lines"`
	Subtotal      decimal.Decimal  `json:"subtotal"`
	ProcessingFee decimal.Decimal  `json:"processing_fee"`
	Tax           decimal.Decimal  `json:"tax"`
	Total         decimal.Decimal  `json:"total"`
}

// StatsResponse agregados del periodo para el panel de administración.
type StatsResponse struct {
	From             time.Time `json:"from"`
	To               time.Time `json:"to"`
	BoxesAdded       int64     `json:"boxes_added"`       // cajas dadas de alta
	UnitsTransferred int64     `json:"units_transferred"` // unidades trasladadas a lugares
	UnitsDispensed   int64     `json:"units_dispensed"`   // unidades despachadas a pacientes
	UnitsRemaining   int64     `json:"units_remaining"`   // stock total restante
	NewPatients      int       `json:"new_patients"`
}
