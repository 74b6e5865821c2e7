package dto

import "time"

// Modos de cantidad para traslados.
const (
	AmountModeBox  = "box"  // Amount expresa cajas completas
	AmountModeUnit = "unit" // Amount expresa unidades discretas
)

// TransferRequest body para POST /api/inventory/transfers (almacén -> lugar).
type TransferRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	PlaceID  string `json:"place_id"`
	Amount   int64  `json:"amount"`
	Mode     string `json:"mode"` // box | unit
}

// TransferResponse estado de origen y destino tras el traslado.
type TransferResponse struct {
	Source MedicineResponse `json:"source"`
	Dest   MedicineResponse `json:"dest"`
}

// DispenseLineRequest una línea del despacho: medicina del lugar y unidades pedidas.
type DispenseLineRequest struct {
	MedicineID string `json:"medicine_id"`
	Quantity   int64  `json:"quantity"` // unidades totales
}

// DispenseRequest body para POST /api/inventory/dispense.
type DispenseRequest struct {
	PlaceID   string                `json:"place_id"`
	PatientID string                `json:"patient_id"`
	Lines     []DispenseLineRequest `json:"lines"`
}

// DispenseLineResponse resultado por línea: despacho creado o motivo de fallo.
type DispenseLineResponse struct {
	MedicineID string `json:"medicine_id"`
	OK         bool   `json:"ok"`
	Error      string `json:"error,omitempty"` // código de error si OK=false
	BoxesGiven int64  `json:"boxes_given,omitempty"`
	UnitsGiven int64  `json:"units_given,omitempty"`
}

// DispenseResponse resultado del lote completo.
type DispenseResponse struct {
	PatientID string                 `json:"patient_id"`
	Date      time.Time              `json:"date"` // timestamp compartido del lote
	Lines     []DispenseLineResponse `json:"lines"`
}

// MovementResponse entrada del historial de movimientos.
type MovementResponse struct {
	ID          string    `json:"id"`
	MedicineID  string    `json:"medicine_id"`
	UserID      string    `json:"user_id"`
	ToUserID    string    `json:"to_user_id,omitempty"`
	ToPlaceID   string    `json:"to_place_id,omitempty"`
	ToPatientID string    `json:"to_patient_id,omitempty"`
	Quantity    int64     `json:"quantity"`
	Action      string    `json:"action"`
	CreatedAt   time.Time `json:"created_at"`
}
