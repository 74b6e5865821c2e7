package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/farmacia-api/internal/application/dto"
	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
)

// PlaceUseCase gestión de lugares y sus medicinas.
type PlaceUseCase struct {
	placeRepo    repository.PlaceRepository
	medicineRepo repository.MedicineRepository
}

// NewPlaceUseCase construye el caso de uso.
func NewPlaceUseCase(placeRepo repository.PlaceRepository, medicineRepo repository.MedicineRepository) *PlaceUseCase {
	return &PlaceUseCase{placeRepo: placeRepo, medicineRepo: medicineRepo}
}

// Create crea un lugar nuevo.
func (uc *PlaceUseCase) Create(in dto.CreatePlaceRequest) (*dto.PlaceResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	place := &entity.Place{
		ID:        uuid.New().String(),
		Name:      in.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.placeRepo.Create(place); err != nil {
		return nil, err
	}
	return &dto.PlaceResponse{ID: place.ID, Name: place.Name}, nil
}

// List lista todos los lugares con sus medicinas.
func (uc *PlaceUseCase) List() ([]dto.PlaceResponse, error) {
	places, err := uc.placeRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.PlaceResponse, 0, len(places))
	for _, p := range places {
		meds, err := uc.medicineRepo.ListByPlace(p.ID)
		if err != nil {
			return nil, err
		}
		resp := dto.PlaceResponse{ID: p.ID, Name: p.Name}
		for _, m := range meds {
			resp.Medicines = append(resp.Medicines, dto.ToMedicineResponse(m))
		}
		out = append(out, resp)
	}
	return out, nil
}
