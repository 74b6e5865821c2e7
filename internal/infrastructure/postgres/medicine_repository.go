package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
)

var _ repository.MedicineRepository = (*MedicineRepo)(nil)

// MedicineRepo implementación del puerto MedicineRepository sobre PostgreSQL
// (usable con pool o tx). La ubicación se persiste como place_id nullable:
// NULL es el almacén central.
type MedicineRepo struct {
	q Querier
}

// NewMedicineRepository construye el adaptador de persistencia para lotes de medicina. Pasar pool o tx (Querier).
func NewMedicineRepository(q Querier) *MedicineRepo {
	return &MedicineRepo{q: q}
}

const medicineColumns = `id, name, name_key, generic_name, weight, category, box_price, box_size, box_count, extra_units, expiry_date, place_id, owner_id, created_at, updated_at`

// Create persiste un nuevo lote de medicina.
func (r *MedicineRepo) Create(m *entity.Medicine) error {
	query := `
		INSERT INTO medicines (` + medicineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.Name, m.NameKey, m.GenericName, m.Weight, m.Category,
		m.BoxPrice, m.BoxSize, m.BoxCount, m.ExtraUnits, m.ExpiryDate,
		placeIDOrNil(m.Location), m.OwnerID, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert medicine: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID.
func (r *MedicineRepo) GetByID(id string) (*entity.Medicine, error) {
	query := `SELECT ` + medicineColumns + ` FROM medicines WHERE id = $1`
	m, err := scanMedicine(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get medicine: %w", err)
	}
	return m, nil
}

// GetForUpdate obtiene un lote bloqueando la fila (SELECT FOR UPDATE).
func (r *MedicineRepo) GetForUpdate(id string) (*entity.Medicine, error) {
	query := `SELECT ` + medicineColumns + ` FROM medicines WHERE id = $1 FOR UPDATE`
	m, err := scanMedicine(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get medicine for update: %w", err)
	}
	return m, nil
}

// Update actualiza metadata y precio de un lote (no toca cantidades).
func (r *MedicineRepo) Update(m *entity.Medicine) error {
	query := `
		UPDATE medicines
		SET name = $2, name_key = $3, generic_name = $4, weight = $5, category = $6,
		    box_price = $7, expiry_date = $8, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		m.ID, m.Name, m.NameKey, m.GenericName, m.Weight, m.Category,
		m.BoxPrice, m.ExpiryDate,
	)
	if err != nil {
		return fmt.Errorf("update medicine: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateQuantity persiste solo BoxCount/ExtraUnits (mutación del motor de movimientos).
func (r *MedicineRepo) UpdateQuantity(m *entity.Medicine) error {
	query := `
		UPDATE medicines
		SET box_count = $2, extra_units = $3, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, m.ID, m.BoxCount, m.ExtraUnits)
	if err != nil {
		return fmt.Errorf("update medicine quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListWarehouse lista los lotes del almacén central, paginado.
func (r *MedicineRepo) ListWarehouse(limit, offset int) ([]*entity.Medicine, error) {
	query := `
		SELECT ` + medicineColumns + `
		FROM medicines WHERE place_id IS NULL
		ORDER BY name, created_at
		LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

// ListByPlace lista los lotes de un lugar.
func (r *MedicineRepo) ListByPlace(placeID string) ([]*entity.Medicine, error) {
	query := `
		SELECT ` + medicineColumns + `
		FROM medicines WHERE place_id = $1
		ORDER BY name, created_at`
	return r.list(query, placeID)
}

// ListWarehouseLowStock lista lotes de almacén con pocas cajas restantes.
func (r *MedicineRepo) ListWarehouseLowStock(maxBoxes int64) ([]*entity.Medicine, error) {
	query := `
		SELECT ` + medicineColumns + `
		FROM medicines WHERE place_id IS NULL AND box_count <= $1
		ORDER BY box_count, name`
	return r.list(query, maxBoxes)
}

// FindWarehouseByIdentityForUpdate resuelve lotes de almacén por identidad
// (name_key + category) bloqueando las filas coincidentes.
func (r *MedicineRepo) FindWarehouseByIdentityForUpdate(nameKey, category string) ([]*entity.Medicine, error) {
	query := `
		SELECT ` + medicineColumns + `
		FROM medicines
		WHERE place_id IS NULL AND name_key = $1 AND category = $2
		ORDER BY created_at
		FOR UPDATE`
	return r.list(query, nameKey, category)
}

// FindAtPlaceByIdentity busca el lote sin dueño de un lugar por identidad.
func (r *MedicineRepo) FindAtPlaceByIdentity(nameKey, category, placeID string) (*entity.Medicine, error) {
	query := `
		SELECT ` + medicineColumns + `
		FROM medicines
		WHERE place_id = $3 AND name_key = $1 AND category = $2 AND owner_id IS NULL
		ORDER BY created_at
		LIMIT 1`
	m, err := scanMedicine(r.q.QueryRow(context.Background(), query, nameKey, category, placeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find medicine at place: %w", err)
	}
	return m, nil
}

// SumTotalUnits suma las unidades totales de todos los lotes.
func (r *MedicineRepo) SumTotalUnits() (int64, error) {
	query := `
		SELECT COALESCE(SUM(
			CASE WHEN box_size > 0 THEN box_count * box_size + extra_units
			     ELSE extra_units END), 0)
		FROM medicines`
	var total int64
	if err := r.q.QueryRow(context.Background(), query).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum total units: %w", err)
	}
	return total, nil
}

func (r *MedicineRepo) list(query string, args ...any) ([]*entity.Medicine, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list medicines: %w", err)
	}
	defer rows.Close()
	var list []*entity.Medicine
	for rows.Next() {
		m, err := scanMedicine(rows)
		if err != nil {
			return nil, fmt.Errorf("scan medicine: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// scanMedicine lee una fila de medicines (pgx.Row o pgx.Rows comparten Scan).
func scanMedicine(row pgx.Row) (*entity.Medicine, error) {
	var m entity.Medicine
	var placeID *string
	err := row.Scan(
		&m.ID, &m.Name, &m.NameKey, &m.GenericName, &m.Weight, &m.Category,
		&m.BoxPrice, &m.BoxSize, &m.BoxCount, &m.ExtraUnits, &m.ExpiryDate,
		&placeID, &m.OwnerID, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if placeID != nil {
		m.Location = entity.AtPlace(*placeID)
	} else {
		m.Location = entity.Warehouse()
	}
	return &m, nil
}

// placeIDOrNil mapea Location a la columna place_id (NULL = almacén).
func placeIDOrNil(loc entity.Location) *string {
	if id, ok := loc.PlaceID(); ok {
		return &id
	}
	return nil
}
