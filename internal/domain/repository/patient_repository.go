package repository

import (
	"time"

	"github.com/jhoicas/farmacia-api/internal/domain/entity"
)

// PatientRepository define el puerto de persistencia para pacientes.
type PatientRepository interface {
	Create(patient *entity.Patient) error
	GetByID(id string) (*entity.Patient, error)
	List(limit, offset int) ([]*entity.Patient, error)
	Delete(id string) error
	// CountCreatedBetween cuenta pacientes nuevos en el rango (estadísticas).
	CountCreatedBetween(from, to time.Time) (int, error)
}
