package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	domaininv "github.com/jhoicas/farmacia-api/internal/domain/inventory"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
)

// MovementUseCase es el motor de movimientos de inventario: alta de stock en
// almacén (AddStock), traslado almacén -> lugar (TransferStock) y despacho
// lugar -> paciente (Dispense, en dispense.go). Cada mutación corre dentro de
// una transacción con bloqueo de fila (SELECT FOR UPDATE) y deja exactamente
// una entrada en el ledger de movimientos.
type MovementUseCase struct {
	txRunner    TxRunner
	placeRepo   repository.PlaceRepository
	patientRepo repository.PatientRepository
}

// NewMovementUseCase construye el motor.
func NewMovementUseCase(
	txRunner TxRunner,
	placeRepo repository.PlaceRepository,
	patientRepo repository.PatientRepository,
) *MovementUseCase {
	return &MovementUseCase{
		txRunner:    txRunner,
		placeRepo:   placeRepo,
		patientRepo: patientRepo,
	}
}

// AddStockInput entrada para dar de alta un lote nuevo en el almacén.
type AddStockInput struct {
	Name        string
	GenericName string
	Weight      string
	Category    string
	BoxPrice    decimal.Decimal
	BoxSize     int64 // por defecto 1 si viene en cero
	BoxCount    int64
	ExpiryDate  *time.Time
}

// AddStock crea un lote nuevo en el almacén central (sin unidades sueltas) y
// registra el movimiento "added". Todo-o-nada: o se crean lote y movimiento,
// o no se escribe nada.
func (uc *MovementUseCase) AddStock(ctx context.Context, actor Actor, input AddStockInput) (*entity.Medicine, error) {
	if !domain.Can(actor.Role, domain.OpAddStock) {
		return nil, domain.ErrForbidden
	}
	if input.Name == "" || !entity.ValidCategory(input.Category) {
		return nil, domain.ErrInvalidInput
	}
	if !input.BoxPrice.GreaterThan(decimal.Zero) || input.BoxCount <= 0 {
		return nil, domain.ErrInvalidInput
	}
	boxSize := input.BoxSize
	if boxSize == 0 {
		boxSize = 1
	}
	if boxSize < 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	ownerID := actor.ID
	med := &entity.Medicine{
		ID:          uuid.New().String(),
		Name:        input.Name,
		NameKey:     domaininv.NormalizeName(input.Name),
		GenericName: input.GenericName,
		Weight:      input.Weight,
		Category:    input.Category,
		BoxPrice:    input.BoxPrice,
		BoxSize:     boxSize,
		BoxCount:    input.BoxCount,
		ExtraUnits:  0,
		ExpiryDate:  input.ExpiryDate,
		Location:    entity.Warehouse(),
		OwnerID:     &ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := uc.txRunner.Run(ctx, func(
		medRepo repository.MedicineRepository,
		movRepo repository.MovementRepository,
		_ repository.PrescriptionRepository,
	) error {
		if err := medRepo.Create(med); err != nil {
			return err
		}
		mov := &entity.Movement{
			ID:         uuid.New().String(),
			MedicineID: med.ID,
			UserID:     actor.ID,
			Quantity:   input.BoxCount, // altas se registran en cajas
			Action:     entity.ActionAdded,
			CreatedAt:  now,
		}
		if !mov.DestinationValid() {
			return domain.ErrInvalidInput
		}
		return movRepo.Create(mov)
	})
	if err != nil {
		return nil, err
	}
	return med, nil
}

// TransferInput entrada para un traslado almacén -> lugar. Amount se expresa
// en cajas (Mode="box") o en unidades (Mode="unit").
type TransferInput struct {
	Name     string
	Category string
	PlaceID  string
	Amount   int64
	Mode     string
}

// TransferResult estado final de los lotes de origen y destino.
type TransferResult struct {
	Source *entity.Medicine
	Dest   *entity.Medicine
}

// TransferStock traslada stock del almacén a un lugar.
//
// El lote de origen se resuelve por identidad (nombre con case folding +
// categoría) entre los lotes de almacén; varias coincidencias son ambigüedad
// y fallan con ErrConflict en vez de elegir una en silencio. El lote destino
// se busca o se crea copiando la metadata del origen. Re-derivación de
// cajas/unidades: el origen con su propio BoxSize y el destino con el suyo
// (pueden diferir si el destino ya existía).
//
// Los pasos verificación-resta-suma-ledger se ejecutan en una sola
// transacción: un fallo a mitad deja el stock de origen intacto.
func (uc *MovementUseCase) TransferStock(ctx context.Context, actor Actor, input TransferInput) (*TransferResult, error) {
	if !domain.Can(actor.Role, domain.OpTransferStock) {
		return nil, domain.ErrForbidden
	}
	if input.Name == "" || !entity.ValidCategory(input.Category) || input.Amount <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if input.Mode != "box" && input.Mode != "unit" {
		return nil, domain.ErrInvalidInput
	}
	place, err := uc.placeRepo.GetByID(input.PlaceID)
	if err != nil {
		return nil, err
	}
	if place == nil {
		return nil, domain.ErrNotFound
	}

	nameKey := domaininv.NormalizeName(input.Name)
	now := time.Now()
	result := &TransferResult{}

	err = uc.txRunner.Run(ctx, func(
		medRepo repository.MedicineRepository,
		movRepo repository.MovementRepository,
		_ repository.PrescriptionRepository,
	) error {
		// Bloquea las filas de almacén que coincidan con la identidad
		matches, err := medRepo.FindWarehouseByIdentityForUpdate(nameKey, input.Category)
		if err != nil {
			return err
		}
		if len(matches) == 0 {
			return domain.ErrNotFound
		}
		if len(matches) > 1 {
			return domain.ErrConflict // identidad ambigua en almacén
		}
		source := matches[0]

		var delta int64
		if input.Mode == "box" {
			if source.BoxSize <= 0 {
				return domain.ErrInvalidInput // medicina sin cajas no admite modo box
			}
			delta = input.Amount * source.BoxSize
		} else {
			delta = input.Amount
		}

		if source.TotalUnits() < delta {
			return domain.ErrInsufficientStock
		}

		// Resta del origen re-derivando con su propio BoxSize
		source.SetTotalUnits(source.TotalUnits() - delta)
		source.UpdatedAt = now
		if err := medRepo.UpdateQuantity(source); err != nil {
			return err
		}

		// Busca o crea el lote destino (mismo nombre+categoría, sin dueño)
		dest, err := medRepo.FindAtPlaceByIdentity(nameKey, input.Category, input.PlaceID)
		if err != nil {
			return err
		}
		if dest == nil {
			dest = &entity.Medicine{
				ID:          uuid.New().String(),
				Name:        source.Name,
				NameKey:     source.NameKey,
				GenericName: source.GenericName,
				Weight:      source.Weight,
				Category:    source.Category,
				BoxPrice:    source.BoxPrice,
				BoxSize:     source.BoxSize,
				ExpiryDate:  source.ExpiryDate,
				Location:    entity.AtPlace(input.PlaceID),
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			dest.SetTotalUnits(delta)
			if err := medRepo.Create(dest); err != nil {
				return err
			}
		} else {
			// El BoxSize del destino gobierna su re-derivación
			dest.SetTotalUnits(dest.TotalUnits() + delta)
			dest.UpdatedAt = now
			if err := medRepo.UpdateQuantity(dest); err != nil {
				return err
			}
		}

		placeID := input.PlaceID
		mov := &entity.Movement{
			ID:         uuid.New().String(),
			MedicineID: source.ID,
			UserID:     actor.ID,
			ToPlaceID:  &placeID,
			Quantity:   delta, // traslados se registran en unidades totales
			Action:     entity.ActionTransferred,
			CreatedAt:  now,
		}
		if !mov.DestinationValid() {
			return domain.ErrInvalidInput
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}

		result.Source = source
		result.Dest = dest
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
