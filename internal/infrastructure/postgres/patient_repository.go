package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
)

var _ repository.PatientRepository = (*PatientRepo)(nil)

// PatientRepo implementación del puerto PatientRepository sobre PostgreSQL.
type PatientRepo struct {
	pool *pgxpool.Pool
}

// NewPatientRepository construye el adaptador de persistencia para pacientes.
func NewPatientRepository(pool *pgxpool.Pool) *PatientRepo {
	return &PatientRepo{pool: pool}
}

// Create persiste un nuevo paciente.
func (r *PatientRepo) Create(patient *entity.Patient) error {
	query := `
		INSERT INTO patients (id, name, surname, phone, address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.pool.Exec(context.Background(), query,
		patient.ID, patient.Name, patient.Surname, patient.Phone, patient.Address, patient.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert patient: %w", err)
	}
	return nil
}

// GetByID obtiene un paciente por ID.
func (r *PatientRepo) GetByID(id string) (*entity.Patient, error) {
	query := `SELECT id, name, surname, phone, address, created_at FROM patients WHERE id = $1`
	var p entity.Patient
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Name, &p.Surname, &p.Phone, &p.Address, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get patient: %w", err)
	}
	return &p, nil
}

// List lista pacientes, paginado.
func (r *PatientRepo) List(limit, offset int) ([]*entity.Patient, error) {
	query := `
		SELECT id, name, surname, phone, address, created_at
		FROM patients ORDER BY surname, name LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Patient
	for rows.Next() {
		var p entity.Patient
		if err := rows.Scan(&p.ID, &p.Name, &p.Surname, &p.Phone, &p.Address, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan patient: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Delete elimina un paciente.
func (r *PatientRepo) Delete(id string) error {
	tag, err := r.pool.Exec(context.Background(), `DELETE FROM patients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete patient: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountCreatedBetween cuenta pacientes registrados en el rango de fechas.
func (r *PatientRepo) CountCreatedBetween(from, to time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM patients WHERE created_at >= $1 AND created_at <= $2`
	var n int
	if err := r.pool.QueryRow(context.Background(), query, from, to).Scan(&n); err != nil {
		return 0, fmt.Errorf("count patients: %w", err)
	}
	return n, nil
}
