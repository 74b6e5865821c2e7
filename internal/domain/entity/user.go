package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin  = "admin"
	RoleStaff  = "staff"
	RoleDoctor = "doctor"
)

// User representa un usuario del sistema (admin de farmacia, personal o médico).
// PlaceID es el lugar asignado: los médicos tienen exactamente uno para poder
// despachar medicinas a pacientes.
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	FirstName    string
	LastName     string
	Email        string
	Role         string  // admin, staff, doctor
	PlaceID      *string // lugar asignado (nil si no tiene)
	Status       string  // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
