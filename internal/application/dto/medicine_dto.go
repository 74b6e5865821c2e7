package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/farmacia-api/internal/domain/entity"
)

// AddMedicineRequest body para POST /api/medicines (alta de stock en almacén).
type AddMedicineRequest struct {
	Name        string          `json:"name"`
	GenericName string          `json:"generic_name,omitempty"`
	Weight      string          `json:"weight,omitempty"`
	Category    string          `json:"category"`
	BoxPrice    decimal.Decimal `json:"box_price"`
	BoxSize     int64           `json:"box_size,omitempty"` // unidades por caja, por defecto 1
	BoxCount    int64           `json:"box_count"`
	ExpiryDate  *time.Time      `json:"expiry_date,omitempty"`
}

// UpdateMedicineRequest body para PUT /api/medicines/:id (edición administrativa).
type UpdateMedicineRequest struct {
	Name        string          `json:"name"`
	GenericName string          `json:"generic_name,omitempty"`
	Weight      string          `json:"weight,omitempty"`
	Category    string          `json:"category"`
	BoxPrice    decimal.Decimal `json:"box_price"`
	ExpiryDate  *time.Time      `json:"expiry_date,omitempty"`
}

// MedicineResponse lote de medicina con cantidades derivadas.
type MedicineResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	GenericName string          `json:"generic_name,omitempty"`
	Weight      string          `json:"weight,omitempty"`
	Category    string          `json:"category"`
	BoxPrice    decimal.Decimal `json:"box_price"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	BoxSize     int64           `json:"box_size"`
	BoxCount    int64           `json:"box_count"`
	ExtraUnits  int64           `json:"extra_units"`
	TotalUnits  int64           `json:"total_units"`
	Display     string          `json:"display"`
	ExpiryDate  *time.Time      `json:"expiry_date,omitempty"`
	PlaceID     string          `json:"place_id,omitempty"` // vacío = almacén central
	CreatedAt   time.Time       `json:"created_at"`
}

// ToMedicineResponse convierte la entidad a DTO de respuesta.
func ToMedicineResponse(m *entity.Medicine) MedicineResponse {
	placeID, _ := m.Location.PlaceID()
	return MedicineResponse{
		ID:          m.ID,
		Name:        m.Name,
		GenericName: m.GenericName,
		Weight:      m.Weight,
		Category:    m.Category,
		BoxPrice:    m.BoxPrice,
		UnitPrice:   m.UnitPrice().Round(2),
		BoxSize:     m.BoxSize,
		BoxCount:    m.BoxCount,
		ExtraUnits:  m.ExtraUnits,
		TotalUnits:  m.TotalUnits(),
		Display:     m.DisplayQuantity(),
		ExpiryDate:  m.ExpiryDate,
		PlaceID:     placeID,
		CreatedAt:   m.CreatedAt,
	}
}
