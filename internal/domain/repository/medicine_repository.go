package repository

import "github.com/jhoicas/farmacia-api/internal/domain/entity"

// MedicineRepository define el puerto de persistencia para lotes de medicina.
// Los métodos *ForUpdate bloquean la fila (SELECT FOR UPDATE) y solo tienen
// sentido dentro de una transacción del TxRunner.
type MedicineRepository interface {
	Create(m *entity.Medicine) error
	GetByID(id string) (*entity.Medicine, error)
	GetForUpdate(id string) (*entity.Medicine, error)
	// Update actualiza metadata y precio (edición administrativa).
	Update(m *entity.Medicine) error
	// UpdateQuantity persiste solo BoxCount/ExtraUnits (mutación del motor).
	UpdateQuantity(m *entity.Medicine) error
	ListWarehouse(limit, offset int) ([]*entity.Medicine, error)
	ListByPlace(placeID string) ([]*entity.Medicine, error)
	// ListWarehouseLowStock lista lotes de almacén con BoxCount <= maxBoxes.
	ListWarehouseLowStock(maxBoxes int64) ([]*entity.Medicine, error)
	// FindWarehouseByIdentityForUpdate resuelve lotes de almacén por identidad
	// (name_key + category) bloqueando las filas. Devuelve todos los que
	// coincidan: más de uno es ambigüedad que el motor trata como error.
	FindWarehouseByIdentityForUpdate(nameKey, category string) ([]*entity.Medicine, error)
	// FindAtPlaceByIdentity busca el lote sin dueño de un lugar por identidad.
	FindAtPlaceByIdentity(nameKey, category, placeID string) (*entity.Medicine, error)
	// SumTotalUnits suma las unidades totales de todos los lotes (stock restante).
	SumTotalUnits() (int64, error)
}
