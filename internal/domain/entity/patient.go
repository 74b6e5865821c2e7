package entity

import "time"

// Patient representa un paciente que recibe medicinas despachadas.
type Patient struct {
	ID        string
	Name      string
	Surname   string
	Phone     string
	Address   string
	CreatedAt time.Time
}
