package billing

import (
	"context"
	"time"
)

// PDFUseCase genera el PDF de una factura de paciente.
type PDFUseCase struct {
	invoices  *InvoiceUseCase
	generator InvoicePDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(invoices *InvoiceUseCase, generator InvoicePDFGenerator) *PDFUseCase {
	return &PDFUseCase{invoices: invoices, generator: generator}
}

// GenerateByMinute genera el PDF de la factura del paciente en el minuto dado.
func (uc *PDFUseCase) GenerateByMinute(ctx context.Context, patientID string, minute time.Time) ([]byte, error) {
	detail, err := uc.invoices.InvoiceDetail(ctx, patientID, minute)
	if err != nil {
		return nil, err
	}
	return uc.generator.GenerateInvoicePDF(ctx, detail)
}
