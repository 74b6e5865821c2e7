package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/farmacia-api/internal/application/dto"
	"github.com/jhoicas/farmacia-api/internal/application/inventory"
	"github.com/jhoicas/farmacia-api/internal/application/usecase"
	"github.com/jhoicas/farmacia-api/internal/domain"
)

// MedicineHandler maneja las peticiones HTTP de lotes de medicina (protegido).
type MedicineHandler struct {
	movements *inventory.MovementUseCase
	medicines *usecase.MedicineUseCase
}

// NewMedicineHandler construye el handler.
func NewMedicineHandler(movements *inventory.MovementUseCase, medicines *usecase.MedicineUseCase) *MedicineHandler {
	return &MedicineHandler{movements: movements, medicines: medicines}
}

// Create godoc
// @Summary      Dar de alta un lote nuevo en el almacén
// @Tags         medicines
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddMedicineRequest  true  "name, category, box_price, box_count; box_size opcional (1)"
// @Success      201   {object}  dto.MedicineResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/medicines [post]
func (h *MedicineHandler) Create(c *fiber.Ctx) error {
	var in dto.AddMedicineRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	actor := inventory.Actor{ID: GetUserID(c), Role: GetRole(c), PlaceID: actorPlaceID(c)}
	med, err := h.movements.AddStock(c.Context(), actor, inventory.AddStockInput{
		Name:        in.Name,
		GenericName: in.GenericName,
		Weight:      in.Weight,
		Category:    in.Category,
		BoxPrice:    in.BoxPrice,
		BoxSize:     in.BoxSize,
		BoxCount:    in.BoxCount,
		ExpiryDate:  in.ExpiryDate,
	})
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		}
		if err == domain.ErrForbidden {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso para dar de alta stock"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToMedicineResponse(med))
}

// ListWarehouse godoc
// @Summary      Listar lotes del almacén central
// @Tags         medicines
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "máximo de resultados (20)"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}   dto.MedicineResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/medicines [get]
func (h *MedicineHandler) ListWarehouse(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	list, err := h.medicines.ListWarehouse(page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

// LowStock godoc
// @Summary      Lotes de almacén con pocas cajas restantes
// @Tags         medicines
// @Security     Bearer
// @Produce      json
// @Param        max_boxes  query  int  false  "umbral de cajas (5)"
// @Success      200  {array}   dto.MedicineResponse
// @Router       /api/medicines/low-stock [get]
func (h *MedicineHandler) LowStock(c *fiber.Ctx) error {
	maxBoxes := int64(c.QueryInt("max_boxes", 0))
	list, err := h.medicines.LowStock(maxBoxes)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

// Update godoc
// @Summary      Editar metadata y precio de un lote
// @Tags         medicines
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del lote"
// @Param        body  body  dto.UpdateMedicineRequest  true  "name, category, box_price"
// @Success      200   {object}  dto.MedicineResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/medicines/{id} [put]
func (h *MedicineHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.UpdateMedicineRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	med, err := h.medicines.Update(id, in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "lote no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(med)
}
