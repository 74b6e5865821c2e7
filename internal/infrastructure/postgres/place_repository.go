package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
)

var _ repository.PlaceRepository = (*PlaceRepo)(nil)

// PlaceRepo implementación del puerto PlaceRepository sobre PostgreSQL.
type PlaceRepo struct {
	pool *pgxpool.Pool
}

// NewPlaceRepository construye el adaptador de persistencia para lugares.
func NewPlaceRepository(pool *pgxpool.Pool) *PlaceRepo {
	return &PlaceRepo{pool: pool}
}

// Create persiste un nuevo lugar.
func (r *PlaceRepo) Create(place *entity.Place) error {
	query := `
		INSERT INTO places (id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.pool.Exec(context.Background(), query,
		place.ID, place.Name, place.CreatedAt, place.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert place: %w", err)
	}
	return nil
}

// GetByID obtiene un lugar por ID.
func (r *PlaceRepo) GetByID(id string) (*entity.Place, error) {
	query := `SELECT id, name, created_at, updated_at FROM places WHERE id = $1`
	var p entity.Place
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Name, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get place: %w", err)
	}
	return &p, nil
}

// List lista todos los lugares.
func (r *PlaceRepo) List() ([]*entity.Place, error) {
	query := `SELECT id, name, created_at, updated_at FROM places ORDER BY name`
	rows, err := r.pool.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list places: %w", err)
	}
	defer rows.Close()
	var list []*entity.Place
	for rows.Next() {
		var p entity.Place
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan place: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
