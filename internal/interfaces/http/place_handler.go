package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/farmacia-api/internal/application/dto"
	"github.com/jhoicas/farmacia-api/internal/application/usecase"
	"github.com/jhoicas/farmacia-api/internal/domain"
)

// PlaceHandler maneja las peticiones HTTP de lugares (protegido).
type PlaceHandler struct {
	places    *usecase.PlaceUseCase
	medicines *usecase.MedicineUseCase
}

// NewPlaceHandler construye el handler.
func NewPlaceHandler(places *usecase.PlaceUseCase, medicines *usecase.MedicineUseCase) *PlaceHandler {
	return &PlaceHandler{places: places, medicines: medicines}
}

// Create godoc
// @Summary      Crear un lugar
// @Tags         places
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePlaceRequest  true  "name"
// @Success      201   {object}  dto.PlaceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/places [post]
func (h *PlaceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePlaceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	place, err := h.places.Create(in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name es requerido"})
		}
		if err == domain.ErrDuplicate {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "ya existe un lugar con ese nombre"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(place)
}

// List godoc
// @Summary      Listar lugares con su stock
// @Tags         places
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.PlaceResponse
// @Router       /api/places [get]
func (h *PlaceHandler) List(c *fiber.Ctx) error {
	list, err := h.places.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

// ListMedicines godoc
// @Summary      Listar los lotes de un lugar
// @Tags         places
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del lugar"
// @Success      200  {array}   dto.MedicineResponse
// @Router       /api/places/{id}/medicines [get]
func (h *PlaceHandler) ListMedicines(c *fiber.Ctx) error {
	list, err := h.medicines.ListByPlace(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}
