package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del ledger de movimientos sobre PostgreSQL
// (usable con pool o tx). La tabla es append-only: nunca UPDATE ni DELETE.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador del ledger. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste una entrada del historial.
func (r *MovementRepo) Create(movement *entity.Movement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movements (id, medicine_id, user_id, to_user_id, to_place_id, to_patient_id, quantity, action, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.MedicineID, movement.UserID,
		movement.ToUserID, movement.ToPlaceID, movement.ToPatientID,
		movement.Quantity, movement.Action, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// List lista movimientos (más recientes primero) con filtros opcionales
// por rango de fechas y acción.
func (r *MovementRepo) List(from, to *time.Time, action string, limit, offset int) ([]*entity.Movement, error) {
	query := `
		SELECT id, medicine_id, user_id, to_user_id, to_place_id, to_patient_id, quantity, action, created_at
		FROM movements WHERE 1=1`
	args := []any{}
	pos := 1
	if from != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	if action != "" {
		query += fmt.Sprintf(" AND action = $%d", pos)
		args = append(args, action)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(&m.ID, &m.MedicineID, &m.UserID, &m.ToUserID,
			&m.ToPlaceID, &m.ToPatientID, &m.Quantity, &m.Action, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// SumQuantity agrega la cantidad movida de una acción en un rango de fechas.
func (r *MovementRepo) SumQuantity(action string, from, to time.Time) (int64, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0)
		FROM movements
		WHERE action = $1 AND created_at >= $2 AND created_at <= $3`
	var total int64
	if err := r.q.QueryRow(context.Background(), query, action, from, to).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum movements: %w", err)
	}
	return total, nil
}
