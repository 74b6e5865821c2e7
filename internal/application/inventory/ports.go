package inventory

import (
	"context"

	"github.com/jhoicas/farmacia-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el motor de movimientos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		medRepo repository.MedicineRepository,
		movRepo repository.MovementRepository,
		presRepo repository.PrescriptionRepository,
	) error) error
}

// Actor identidad ya autenticada que ejecuta una operación. La capa de auth
// la valida; el motor solo vuelve a comprobar el permiso del rol.
type Actor struct {
	ID      string
	Role    string  // admin | staff | doctor
	PlaceID *string // lugar asignado (los médicos despachan solo desde el suyo)
}
