// Package ledger contiene las consultas sobre el historial de movimientos:
// listado filtrado y agregados del periodo para el panel de administración.
package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/farmacia-api/internal/application/dto"
	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
)

// LedgerUseCase consultas read-only sobre el ledger. Nunca muta movimientos:
// el contrato del historial es append-only y las entradas son inmutables.
type LedgerUseCase struct {
	movementRepo repository.MovementRepository
	medicineRepo repository.MedicineRepository
	patientRepo  repository.PatientRepository
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	movementRepo repository.MovementRepository,
	medicineRepo repository.MedicineRepository,
	patientRepo repository.PatientRepository,
) *LedgerUseCase {
	return &LedgerUseCase{
		movementRepo: movementRepo,
		medicineRepo: medicineRepo,
		patientRepo:  patientRepo,
	}
}

func validAction(a string) bool {
	switch a {
	case "", entity.ActionAdded, entity.ActionTransferred, entity.ActionDispensed:
		return true
	}
	return false
}

// ListHistory devuelve movimientos (más recientes primero) con filtros
// opcionales por rango de fechas y acción.
func (uc *LedgerUseCase) ListHistory(ctx context.Context, from, to *time.Time, action string, page dto.PageRequest) ([]dto.MovementResponse, error) {
	if !validAction(action) {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	movements, err := uc.movementRepo.List(from, to, action, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, toMovementResponse(m))
	}
	return out, nil
}

// Stats agregados del periodo: cajas dadas de alta, unidades trasladadas y
// despachadas, stock restante y pacientes nuevos.
//
// Las cinco consultas corren en paralelo; cualquier error aborta el resumen.
func (uc *LedgerUseCase) Stats(ctx context.Context, from, to time.Time) (*dto.StatsResponse, error) {
	type sumResult struct {
		value int64
		err   error
	}
	type countResult struct {
		value int
		err   error
	}

	addedCh := make(chan sumResult, 1)
	transferredCh := make(chan sumResult, 1)
	dispensedCh := make(chan sumResult, 1)
	remainingCh := make(chan sumResult, 1)
	patientsCh := make(chan countResult, 1)

	go func() {
		v, err := uc.movementRepo.SumQuantity(entity.ActionAdded, from, to)
		addedCh <- sumResult{v, err}
	}()
	go func() {
		v, err := uc.movementRepo.SumQuantity(entity.ActionTransferred, from, to)
		transferredCh <- sumResult{v, err}
	}()
	go func() {
		v, err := uc.movementRepo.SumQuantity(entity.ActionDispensed, from, to)
		dispensedCh <- sumResult{v, err}
	}()
	go func() {
		v, err := uc.medicineRepo.SumTotalUnits()
		remainingCh <- sumResult{v, err}
	}()
	go func() {
		v, err := uc.patientRepo.CountCreatedBetween(from, to)
		patientsCh <- countResult{v, err}
	}()

	added := <-addedCh
	transferred := <-transferredCh
	dispensed := <-dispensedCh
	remaining := <-remainingCh
	patients := <-patientsCh

	if added.err != nil {
		return nil, fmt.Errorf("stats: altas: %w", added.err)
	}
	if transferred.err != nil {
		return nil, fmt.Errorf("stats: traslados: %w", transferred.err)
	}
	if dispensed.err != nil {
		return nil, fmt.Errorf("stats: despachos: %w", dispensed.err)
	}
	if remaining.err != nil {
		return nil, fmt.Errorf("stats: stock restante: %w", remaining.err)
	}
	if patients.err != nil {
		return nil, fmt.Errorf("stats: pacientes nuevos: %w", patients.err)
	}

	return &dto.StatsResponse{
		From:             from,
		To:               to,
		BoxesAdded:       added.value,
		UnitsTransferred: transferred.value,
		UnitsDispensed:   dispensed.value,
		UnitsRemaining:   remaining.value,
		NewPatients:      patients.value,
	}, nil
}

func toMovementResponse(m *entity.Movement) dto.MovementResponse {
	out := dto.MovementResponse{
		ID:         m.ID,
		MedicineID: m.MedicineID,
		UserID:     m.UserID,
		Quantity:   m.Quantity,
		Action:     m.Action,
		CreatedAt:  m.CreatedAt,
	}
	if m.ToUserID != nil {
		out.ToUserID = *m.ToUserID
	}
	if m.ToPlaceID != nil {
		out.ToPlaceID = *m.ToPlaceID
	}
	if m.ToPatientID != nil {
		out.ToPatientID = *m.ToPatientID
	}
	return out
}
