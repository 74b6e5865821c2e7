package dto

import "time"

// CreatePatientRequest body para POST /api/patients.
type CreatePatientRequest struct {
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// PatientResponse paciente registrado.
type PatientResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Surname   string    `json:"surname"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CreatePlaceRequest body para POST /api/places.
type CreatePlaceRequest struct {
	Name string `json:"name"`
}

// PlaceResponse lugar con sus medicinas (opcional en listados).
type PlaceResponse struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Medicines []MedicineResponse `json:"medicines,omitempty"`
}
