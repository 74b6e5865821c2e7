package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/farmacia-api/internal/application/dto"
	"github.com/jhoicas/farmacia-api/internal/application/inventory"
	"github.com/jhoicas/farmacia-api/internal/application/ledger"
	"github.com/jhoicas/farmacia-api/internal/domain"
)

// InventoryHandler maneja traslados, despachos, historial y estadísticas (protegido).
type InventoryHandler struct {
	movements *inventory.MovementUseCase
	ledger    *ledger.LedgerUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(movements *inventory.MovementUseCase, ledgerUC *ledger.LedgerUseCase) *InventoryHandler {
	return &InventoryHandler{movements: movements, ledger: ledgerUC}
}

// Transfer godoc
// @Summary      Trasladar stock del almacén a un lugar
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferRequest  true  "name, category, place_id, amount, mode (box|unit)"
// @Success      200   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/transfers [post]
func (h *InventoryHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	actor := inventory.Actor{ID: GetUserID(c), Role: GetRole(c), PlaceID: actorPlaceID(c)}
	result, err := h.movements.TransferStock(c.Context(), actor, inventory.TransferInput{
		Name:     in.Name,
		Category: in.Category,
		PlaceID:  in.PlaceID,
		Amount:   in.Amount,
		Mode:     in.Mode,
	})
	if err != nil {
		switch err {
		case domain.ErrInvalidInput:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		case domain.ErrForbidden:
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso para trasladar stock"})
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "medicina o lugar no encontrado"})
		case domain.ErrConflict:
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "identidad ambigua: varios lotes de almacén coinciden"})
		case domain.ErrInsufficientStock:
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente en el almacén"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.TransferResponse{
		Source: dto.ToMedicineResponse(result.Source),
		Dest:   dto.ToMedicineResponse(result.Dest),
	})
}

// Dispense godoc
// @Summary      Despachar medicinas de un lugar a un paciente
// @Description  Cada línea se aplica por separado: una línea fallida no
//
//	revierte las anteriores. La respuesta indica el resultado por línea.
//
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DispenseRequest  true  "place_id, patient_id, lines"
// @Success      200   {object}  dto.DispenseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/dispense [post]
func (h *InventoryHandler) Dispense(c *fiber.Ctx) error {
	var in dto.DispenseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lines := make([]inventory.DispenseLineInput, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, inventory.DispenseLineInput{MedicineID: l.MedicineID, Quantity: l.Quantity})
	}
	actor := inventory.Actor{ID: GetUserID(c), Role: GetRole(c), PlaceID: actorPlaceID(c)}
	result, err := h.movements.Dispense(c.Context(), actor, inventory.DispenseInput{
		PlaceID:   in.PlaceID,
		PatientID: in.PatientID,
		Lines:     lines,
	})
	if err != nil {
		switch err {
		case domain.ErrInvalidInput:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		case domain.ErrForbidden:
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "solo un médico del lugar puede despachar"})
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "paciente no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	out := dto.DispenseResponse{PatientID: in.PatientID, Date: result.Date}
	for _, l := range result.Lines {
		lineOut := dto.DispenseLineResponse{MedicineID: l.MedicineID}
		if l.Err != nil {
			lineOut.Error = lineErrorCode(l.Err)
		} else {
			lineOut.OK = true
			lineOut.BoxesGiven = l.Prescription.BoxesGiven
			lineOut.UnitsGiven = l.Prescription.UnitsGiven
		}
		out.Lines = append(out.Lines, lineOut)
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Historial de movimientos
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        from    query  string  false  "fecha inicial (RFC3339)"
// @Param        to      query  string  false  "fecha final (RFC3339)"
// @Param        action  query  string  false  "added | transferred | dispensed"
// @Param        limit   query  int     false  "máximo de resultados (20)"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {array}   dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/history [get]
func (h *InventoryHandler) History(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	from, err := parseTimeQuery(c, "from")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe ser RFC3339"})
	}
	to, err := parseTimeQuery(c, "to")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe ser RFC3339"})
	}
	list, err := h.ledger.ListHistory(c.Context(), from, to, c.Query("action"), page)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "acción desconocida"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

// Stats godoc
// @Summary      Estadísticas del periodo (solo admin)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "fecha inicial (RFC3339); por defecto hace 30 días"
// @Param        to    query  string  false  "fecha final (RFC3339); por defecto ahora"
// @Success      200  {object}  dto.StatsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/stats [get]
func (h *InventoryHandler) Stats(c *fiber.Ctx) error {
	fromPtr, err := parseTimeQuery(c, "from")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe ser RFC3339"})
	}
	toPtr, err := parseTimeQuery(c, "to")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe ser RFC3339"})
	}
	to := time.Now()
	if toPtr != nil {
		to = *toPtr
	}
	from := to.AddDate(0, 0, -30)
	if fromPtr != nil {
		from = *fromPtr
	}
	stats, err := h.ledger.Stats(c.Context(), from, to)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(stats)
}

// parseTimeQuery lee un query param RFC3339 opcional.
func parseTimeQuery(c *fiber.Ctx, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// lineErrorCode mapea errores de dominio por línea a códigos de la respuesta.
func lineErrorCode(err error) string {
	switch err {
	case domain.ErrNotFound:
		return "NOT_FOUND"
	case domain.ErrInsufficientStock:
		return "INSUFFICIENT_STOCK"
	case domain.ErrInvalidInput:
		return "VALIDATION"
	}
	return "INTERNAL"
}
