package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/farmacia-api/internal/application/dto"
	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
)

// PatientUseCase gestión de pacientes.
type PatientUseCase struct {
	patientRepo repository.PatientRepository
}

// NewPatientUseCase construye el caso de uso.
func NewPatientUseCase(patientRepo repository.PatientRepository) *PatientUseCase {
	return &PatientUseCase{patientRepo: patientRepo}
}

// Create registra un paciente nuevo.
func (uc *PatientUseCase) Create(in dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	if in.Name == "" || in.Surname == "" {
		return nil, domain.ErrInvalidInput
	}
	patient := &entity.Patient{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Surname:   in.Surname,
		Phone:     in.Phone,
		Address:   in.Address,
		CreatedAt: time.Now(),
	}
	if err := uc.patientRepo.Create(patient); err != nil {
		return nil, err
	}
	return toPatientResponse(patient), nil
}

// List lista pacientes con paginación.
func (uc *PatientUseCase) List(page dto.PageRequest) ([]dto.PatientResponse, error) {
	page.DefaultPage()
	patients, err := uc.patientRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PatientResponse, 0, len(patients))
	for _, p := range patients {
		out = append(out, *toPatientResponse(p))
	}
	return out, nil
}

// Delete elimina un paciente (acción administrativa; no toca el ledger).
func (uc *PatientUseCase) Delete(id string) error {
	patient, err := uc.patientRepo.GetByID(id)
	if err != nil {
		return err
	}
	if patient == nil {
		return domain.ErrNotFound
	}
	return uc.patientRepo.Delete(id)
}

func toPatientResponse(p *entity.Patient) *dto.PatientResponse {
	return &dto.PatientResponse{
		ID:        p.ID,
		Name:      p.Name,
		Surname:   p.Surname,
		Phone:     p.Phone,
		Address:   p.Address,
		CreatedAt: p.CreatedAt,
	}
}
