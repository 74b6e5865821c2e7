package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/farmacia-api/internal/application/billing"
	"github.com/jhoicas/farmacia-api/internal/application/dto"
	"github.com/jhoicas/farmacia-api/internal/application/usecase"
	"github.com/jhoicas/farmacia-api/internal/domain"
)

// PatientHandler maneja pacientes y sus facturas de despacho (protegido).
type PatientHandler struct {
	patients *usecase.PatientUseCase
	invoices *billing.InvoiceUseCase
	pdf      *billing.PDFUseCase
}

// NewPatientHandler construye el handler.
func NewPatientHandler(patients *usecase.PatientUseCase, invoices *billing.InvoiceUseCase, pdf *billing.PDFUseCase) *PatientHandler {
	return &PatientHandler{patients: patients, invoices: invoices, pdf: pdf}
}

// Create godoc
// @Summary      Registrar un paciente
// @Tags         patients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePatientRequest  true  "name, surname"
// @Success      201   {object}  dto.PatientResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/patients [post]
func (h *PatientHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePatientRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	patient, err := h.patients.Create(in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name y surname son requeridos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(patient)
}

// List godoc
// @Summary      Listar pacientes
// @Tags         patients
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "máximo de resultados (20)"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}  dto.PatientResponse
// @Router       /api/patients [get]
func (h *PatientHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	list, err := h.patients.List(page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

// Delete godoc
// @Summary      Eliminar un paciente
// @Tags         patients
// @Security     Bearer
// @Param        id  path  string  true  "ID del paciente"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/patients/{id} [delete]
func (h *PatientHandler) Delete(c *fiber.Ctx) error {
	if err := h.patients.Delete(c.Params("id")); err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "paciente no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListInvoices godoc
// @Summary      Facturas de un paciente (despachos agrupados por minuto)
// @Tags         patients
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del paciente"
// @Success      200  {array}   dto.InvoiceSummaryDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/patients/{id}/invoices [get]
func (h *PatientHandler) ListInvoices(c *fiber.Ctx) error {
	list, err := h.invoices.ListInvoices(c.Context(), c.Params("id"))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "paciente no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

// InvoiceDetail godoc
// @Summary      Detalle de una factura por su clave de minuto
// @Tags         patients
// @Security     Bearer
// @Produce      json
// @Param        id      path  string  true  "ID del paciente"
// @Param        minute  path  string  true  "clave de minuto (2006-01-02_15-04)"
// @Success      200  {object}  dto.InvoiceDetailDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/patients/{id}/invoices/{minute} [get]
func (h *PatientHandler) InvoiceDetail(c *fiber.Ctx) error {
	minute, err := billing.ParseMinuteKey(c.Params("minute"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "clave de minuto inválida (2006-01-02_15-04)"})
	}
	detail, err := h.invoices.InvoiceDetail(c.Context(), c.Params("id"), minute)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "factura no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(detail)
}

// InvoicePDF godoc
// @Summary      PDF de una factura por su clave de minuto
// @Tags         patients
// @Security     Bearer
// @Produce      application/pdf
// @Param        id      path  string  true  "ID del paciente"
// @Param        minute  path  string  true  "clave de minuto (2006-01-02_15-04)"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/patients/{id}/invoices/{minute}/pdf [get]
func (h *PatientHandler) InvoicePDF(c *fiber.Ctx) error {
	minuteKey := c.Params("minute")
	minute, err := billing.ParseMinuteKey(minuteKey)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "clave de minuto inválida (2006-01-02_15-04)"})
	}
	pdfBytes, err := h.pdf.GenerateByMinute(c.Context(), c.Params("id"), minute)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "factura no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=factura_%s.pdf", minuteKey))
	return c.Send(pdfBytes)
}
