package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	domaininv "github.com/jhoicas/farmacia-api/internal/domain/inventory"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
)

// DispenseLineInput una línea del despacho: lote del lugar y unidades pedidas.
type DispenseLineInput struct {
	MedicineID string
	Quantity   int64 // unidades totales
}

// DispenseInput entrada para un despacho lugar -> paciente.
type DispenseInput struct {
	PlaceID   string
	PatientID string
	Lines     []DispenseLineInput
}

// DispenseLineResult resultado por línea. Err es nil si la línea se aplicó.
type DispenseLineResult struct {
	MedicineID   string
	Prescription *entity.Prescription
	Err          error
}

// DispenseResult resultado del lote completo. Date es el timestamp compartido
// por todas las líneas, que define la agrupación en facturas por minuto.
type DispenseResult struct {
	Date  time.Time
	Lines []DispenseLineResult
}

// Dispense despacha medicinas de un lugar a un paciente, línea por línea.
//
// Semántica de fallo parcial: cada línea corre en su propia transacción; una
// línea que falla no revierte ni bloquea las anteriores, y las posteriores
// ven el stock ya descontado por las previas. Todas las líneas comparten el
// mismo timestamp para que formen una sola factura.
//
// La deducción prefiere cajas completas: primero divmod(pedido, BoxSize),
// con tope en las cajas existentes; las unidades restantes salen de las
// sueltas o, si no alcanzan, abriendo una caja más.
func (uc *MovementUseCase) Dispense(ctx context.Context, actor Actor, input DispenseInput) (*DispenseResult, error) {
	if !domain.Can(actor.Role, domain.OpDispense) {
		return nil, domain.ErrForbidden
	}
	// Variante estricta: el médico despacha solo desde su lugar asignado
	if actor.PlaceID == nil || *actor.PlaceID != input.PlaceID {
		return nil, domain.ErrForbidden
	}
	if input.PatientID == "" || len(input.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	patient, err := uc.patientRepo.GetByID(input.PatientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, domain.ErrNotFound
	}

	// Un mismo timestamp para todas las líneas del envío
	now := time.Now()
	result := &DispenseResult{Date: now, Lines: make([]DispenseLineResult, 0, len(input.Lines))}

	for _, line := range input.Lines {
		var pres *entity.Prescription
		lineErr := uc.txRunner.Run(ctx, func(
			medRepo repository.MedicineRepository,
			movRepo repository.MovementRepository,
			presRepo repository.PrescriptionRepository,
		) error {
			p, err := uc.dispenseLine(medRepo, movRepo, presRepo, actor, input, line, now)
			if err != nil {
				return err
			}
			pres = p
			return nil
		})
		result.Lines = append(result.Lines, DispenseLineResult{
			MedicineID:   line.MedicineID,
			Prescription: pres,
			Err:          lineErr,
		})
	}
	return result, nil
}

// dispenseLine aplica una línea dentro de su transacción: bloquea el lote,
// verifica disponibilidad, deduce prefiriendo cajas, crea el despacho y la
// entrada del ledger.
func (uc *MovementUseCase) dispenseLine(
	medRepo repository.MedicineRepository,
	movRepo repository.MovementRepository,
	presRepo repository.PrescriptionRepository,
	actor Actor,
	input DispenseInput,
	line DispenseLineInput,
	now time.Time,
) (*entity.Prescription, error) {
	if line.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	med, err := medRepo.GetForUpdate(line.MedicineID)
	if err != nil {
		return nil, err
	}
	if med == nil {
		return nil, domain.ErrNotFound
	}
	if placeID, ok := med.Location.PlaceID(); !ok || placeID != input.PlaceID {
		return nil, domain.ErrNotFound // el lote no está en el lugar del despacho
	}

	requested := line.Quantity
	if med.TotalUnits() < requested {
		return nil, domain.ErrInsufficientStock
	}

	// Descomposición preferente en cajas completas
	boxesToDeduct, remainder := domaininv.FromUnits(requested, med.BoxSize)
	if boxesToDeduct > med.BoxCount {
		// No se pueden deducir más cajas de las que hay; el faltante vuelve a unidades
		boxesToDeduct = med.BoxCount
		remainder = requested - boxesToDeduct*med.BoxSize
	}
	med.BoxCount -= boxesToDeduct

	switch {
	case remainder <= med.ExtraUnits:
		med.ExtraUnits -= remainder
	case med.BoxCount > 0:
		// Las sueltas no alcanzan: se abre una caja más
		med.BoxCount--
		med.ExtraUnits = med.BoxSize - (remainder - med.ExtraUnits)
	default:
		return nil, domain.ErrInsufficientStock
	}

	med.UpdatedAt = now
	if err := medRepo.UpdateQuantity(med); err != nil {
		return nil, err
	}

	pres := &entity.Prescription{
		ID:             uuid.New().String(),
		PatientID:      input.PatientID,
		MedicineID:     med.ID,
		BoxesGiven:     boxesToDeduct,
		UnitsGiven:     remainder,
		PrescribedByID: actor.ID,
		Date:           now,
	}
	if err := presRepo.Create(pres); err != nil {
		return nil, err
	}

	patientID := input.PatientID
	mov := &entity.Movement{
		ID:          uuid.New().String(),
		MedicineID:  med.ID,
		UserID:      actor.ID,
		ToPatientID: &patientID,
		Quantity:    requested, // despachos se registran en unidades totales
		Action:      entity.ActionDispensed,
		CreatedAt:   now,
	}
	if !mov.DestinationValid() {
		return nil, domain.ErrInvalidInput
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, err
	}
	return pres, nil
}
