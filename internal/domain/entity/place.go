package entity

import "time"

// Place representa un lugar o departamento al que se traslada stock
// (piso, quirófano, etc.). Referencia pura: identidad + nombre.
type Place struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
