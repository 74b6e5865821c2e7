package billing

import (
	"context"

	"github.com/jhoicas/farmacia-api/internal/application/dto"
)

// InvoicePDFGenerator puerto para la representación gráfica de una factura.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, detail *dto.InvoiceDetailDTO) ([]byte, error)
}
