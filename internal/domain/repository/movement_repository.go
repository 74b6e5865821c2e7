package repository

import (
	"time"

	"github.com/jhoicas/farmacia-api/internal/domain/entity"
)

// MovementRepository define el puerto del ledger de movimientos.
// Append-only: solo Create y consultas; nunca update ni delete.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	// List devuelve movimientos (más recientes primero), con filtros
	// opcionales por rango de fechas y por acción (vacía = todas).
	List(from, to *time.Time, action string, limit, offset int) ([]*entity.Movement, error)
	// SumQuantity agrega la cantidad de una acción en un rango de fechas.
	SumQuantity(action string, from, to time.Time) (int64, error)
}
