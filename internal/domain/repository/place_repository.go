package repository

import "github.com/jhoicas/farmacia-api/internal/domain/entity"

// PlaceRepository define el puerto de persistencia para lugares.
type PlaceRepository interface {
	Create(place *entity.Place) error
	GetByID(id string) (*entity.Place, error)
	List() ([]*entity.Place, error)
}
