// Package billing agrupa los despachos de un paciente en "facturas": todas
// las líneas que comparten el minuto truncado del timestamp de despacho.
package billing

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/farmacia-api/internal/application/dto"
	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
)

// MinuteKeyLayout formato del minuto en URLs: 2006-01-02_15-04.
const MinuteKeyLayout = "2006-01-02_15-04"

// Cargos informativos de la factura: se muestran pero no se suman al total.
var (
	processingFee = decimal.RequireFromString("10.00")
	taxRate       = decimal.RequireFromString("0.10")
)

// ParseMinuteKey interpreta el minuto de una URL (formato MinuteKeyLayout).
func ParseMinuteKey(key string) (time.Time, error) {
	return time.Parse(MinuteKeyLayout, key)
}

// InvoiceUseCase consultas de facturación sobre despachos inmutables.
type InvoiceUseCase struct {
	prescriptionRepo repository.PrescriptionRepository
	patientRepo      repository.PatientRepository
	userRepo         repository.UserRepository
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(
	prescriptionRepo repository.PrescriptionRepository,
	patientRepo repository.PatientRepository,
	userRepo repository.UserRepository,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		prescriptionRepo: prescriptionRepo,
		patientRepo:      patientRepo,
		userRepo:         userRepo,
	}
}

// ListInvoices devuelve las facturas de un paciente: una por minuto truncado,
// con número de líneas e importe total (más recientes primero).
func (uc *InvoiceUseCase) ListInvoices(ctx context.Context, patientID string) ([]dto.InvoiceSummaryDTO, error) {
	patient, err := uc.patientRepo.GetByID(patientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, domain.ErrNotFound
	}
	summaries, err := uc.prescriptionRepo.ListInvoices(patientID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InvoiceSummaryDTO, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, dto.InvoiceSummaryDTO{
			Minute:     s.Minute,
			MinuteKey:  s.Minute.Format(MinuteKeyLayout),
			LineCount:  s.LineCount,
			TotalPrice: s.TotalPrice.Round(2),
		})
	}
	return out, nil
}

// InvoiceDetail construye la factura de un paciente para un minuto dado:
// líneas con importes, subtotal, cargo de procesamiento e impuesto.
func (uc *InvoiceUseCase) InvoiceDetail(ctx context.Context, patientID string, minute time.Time) (*dto.InvoiceDetailDTO, error) {
	patient, err := uc.patientRepo.GetByID(patientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.prescriptionRepo.ListByPatientAndMinute(patientID, minute)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, domain.ErrNotFound
	}

	detail := &dto.InvoiceDetailDTO{
		InvoiceNumber: invoiceNumber(patientID),
		PatientID:     patient.ID,
		PatientName:   patient.Name + " " + patient.Surname,
		Date:          minute,
	}

	subtotal := decimal.Zero
	for _, l := range lines {
		unitPrice := l.BoxPrice
		if l.BoxSize > 1 {
			unitPrice = l.BoxPrice.Div(decimal.NewFromInt(l.BoxSize))
		}
		lineTotal := l.Prescription.LineTotal(l.BoxPrice, unitPrice)
		subtotal = subtotal.Add(lineTotal)
		detail.Lines = append(detail.Lines, dto.InvoiceLineDTO{
			MedicineName: l.MedicineName,
			BoxesGiven:   l.Prescription.BoxesGiven,
			UnitsGiven:   l.Prescription.UnitsGiven,
			TotalUnits:   l.Prescription.TotalUnits(l.BoxSize),
			BoxPrice:     l.BoxPrice,
			UnitPrice:    unitPrice.Round(2),
			LineTotal:    lineTotal.Round(2),
		})
	}

	detail.Subtotal = subtotal.Round(2)
	detail.ProcessingFee = processingFee
	detail.Tax = subtotal.Mul(taxRate).Round(2)
	// Cargo e impuesto son informativos: el total a pagar es el subtotal
	detail.Total = detail.Subtotal

	by, err := uc.userRepo.GetByID(lines[0].Prescription.PrescribedByID)
	if err != nil {
		return nil, err
	}
	if by != nil {
		detail.PrescribedBy = strings.TrimSpace(by.FirstName + " " + by.LastName)
		if detail.PrescribedBy == "" {
			detail.PrescribedBy = by.Username
		}
	}
	return detail, nil
}

// invoiceNumber deriva un número legible a partir del ID del paciente.
func invoiceNumber(patientID string) string {
	id := strings.ReplaceAll(patientID, "-", "")
	if len(id) > 8 {
		id = id[:8]
	}
	return "INV" + strings.ToUpper(id)
}
