package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/farmacia-api/internal/domain/entity"
)

// InvoiceSummaryResult resultado crudo de la agrupación de despachos por minuto.
// Lo produce la DB; el use case lo convierte en DTO.
type InvoiceSummaryResult struct {
	Minute     time.Time // timestamp truncado al minuto
	LineCount  int
	TotalPrice decimal.Decimal
}

// PrescriptionLineResult línea de despacho con los datos del lote necesarios
// para calcular importes (precio por caja, tamaño de caja).
type PrescriptionLineResult struct {
	Prescription entity.Prescription
	MedicineName string
	BoxPrice     decimal.Decimal
	BoxSize      int64
}

// PrescriptionRepository define el puerto de persistencia para despachos a
// paciente. Las líneas son inmutables: solo inserciones y consultas.
type PrescriptionRepository interface {
	Create(p *entity.Prescription) error
	// ListInvoices agrupa los despachos de un paciente por minuto truncado
	// (más recientes primero).
	ListInvoices(patientID string) ([]InvoiceSummaryResult, error)
	// ListByPatientAndMinute devuelve las líneas de la factura [minute, minute+1m).
	ListByPatientAndMinute(patientID string, minute time.Time) ([]PrescriptionLineResult, error)
}
