package usecase

import (
	"time"

	"github.com/jhoicas/farmacia-api/internal/application/dto"
	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	domaininv "github.com/jhoicas/farmacia-api/internal/domain/inventory"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
)

// Umbral por defecto para el reporte de stock bajo (cajas en almacén).
const defaultLowStockBoxes = 5

// MedicineUseCase listados y edición administrativa de lotes. Las mutaciones
// de cantidad pasan siempre por el motor de movimientos, nunca por aquí.
type MedicineUseCase struct {
	medicineRepo repository.MedicineRepository
}

// NewMedicineUseCase construye el caso de uso.
func NewMedicineUseCase(medicineRepo repository.MedicineRepository) *MedicineUseCase {
	return &MedicineUseCase{medicineRepo: medicineRepo}
}

// ListWarehouse lista los lotes del almacén central (más recientes primero).
func (uc *MedicineUseCase) ListWarehouse(page dto.PageRequest) ([]dto.MedicineResponse, error) {
	page.DefaultPage()
	meds, err := uc.medicineRepo.ListWarehouse(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MedicineResponse, 0, len(meds))
	for _, m := range meds {
		out = append(out, dto.ToMedicineResponse(m))
	}
	return out, nil
}

// ListByPlace lista los lotes de un lugar.
func (uc *MedicineUseCase) ListByPlace(placeID string) ([]dto.MedicineResponse, error) {
	meds, err := uc.medicineRepo.ListByPlace(placeID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MedicineResponse, 0, len(meds))
	for _, m := range meds {
		out = append(out, dto.ToMedicineResponse(m))
	}
	return out, nil
}

// LowStock reporte de lotes de almacén con pocas cajas. maxBoxes <= 0 usa el
// umbral por defecto.
func (uc *MedicineUseCase) LowStock(maxBoxes int64) ([]dto.MedicineResponse, error) {
	if maxBoxes <= 0 {
		maxBoxes = defaultLowStockBoxes
	}
	meds, err := uc.medicineRepo.ListWarehouseLowStock(maxBoxes)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MedicineResponse, 0, len(meds))
	for _, m := range meds {
		out = append(out, dto.ToMedicineResponse(m))
	}
	return out, nil
}

// Update edición administrativa de metadata y precio. No toca cantidades.
func (uc *MedicineUseCase) Update(id string, in dto.UpdateMedicineRequest) (*dto.MedicineResponse, error) {
	// La categoría es parte de la identidad del lote: misma validación que el alta.
	if in.Name == "" || !entity.ValidCategory(in.Category) || !in.BoxPrice.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	med, err := uc.medicineRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if med == nil {
		return nil, domain.ErrNotFound
	}
	med.Name = in.Name
	med.NameKey = domaininv.NormalizeName(in.Name)
	med.GenericName = in.GenericName
	med.Weight = in.Weight
	med.Category = in.Category
	med.BoxPrice = in.BoxPrice
	med.ExpiryDate = in.ExpiryDate
	med.UpdatedAt = time.Now()
	if err := uc.medicineRepo.Update(med); err != nil {
		return nil, err
	}
	resp := dto.ToMedicineResponse(med)
	return &resp, nil
}
