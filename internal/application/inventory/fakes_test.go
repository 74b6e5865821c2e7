package inventory_test

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: un store compartido y repos que operan sobre él. El
// TxRunner toma un snapshot antes de cada callback y lo restaura si falla,
// con la misma semántica todo-o-nada que la transacción real.
// ──────────────────────────────────────────────────────────────────────────────

var errFakeDB = errors.New("fallo simulado de base de datos")

type memStore struct {
	medicines     map[string]*entity.Medicine
	movements     []*entity.Movement
	prescriptions []*entity.Prescription
	places        map[string]*entity.Place
	patients      map[string]*entity.Patient

	// inyección de fallos
	failMedicineCreate bool
}

func newMemStore() *memStore {
	return &memStore{
		medicines: make(map[string]*entity.Medicine),
		places:    make(map[string]*entity.Place),
		patients:  make(map[string]*entity.Patient),
	}
}

func (s *memStore) addPlace(id, name string) {
	s.places[id] = &entity.Place{ID: id, Name: name}
}

func (s *memStore) addPatient(id, name, surname string) {
	s.patients[id] = &entity.Patient{ID: id, Name: name, Surname: surname, CreatedAt: time.Now()}
}

func (s *memStore) addMedicine(m *entity.Medicine) {
	s.medicines[m.ID] = cloneMedicine(m)
}

func cloneMedicine(m *entity.Medicine) *entity.Medicine {
	c := *m
	return &c
}

func (s *memStore) snapshot() *memStore {
	snap := newMemStore()
	for id, m := range s.medicines {
		snap.medicines[id] = cloneMedicine(m)
	}
	snap.movements = append([]*entity.Movement(nil), s.movements...)
	snap.prescriptions = append([]*entity.Prescription(nil), s.prescriptions...)
	return snap
}

func (s *memStore) restore(snap *memStore) {
	s.medicines = snap.medicines
	s.movements = snap.movements
	s.prescriptions = snap.prescriptions
}

// sumUnits unidades totales de todos los lotes (para verificar conservación).
func (s *memStore) sumUnits() int64 {
	var total int64
	for _, m := range s.medicines {
		total += m.TotalUnits()
	}
	return total
}

// ── TxRunner ──────────────────────────────────────────────────────────────────

type memTxRunner struct {
	store *memStore
}

func (r *memTxRunner) Run(_ context.Context, fn func(
	medRepo repository.MedicineRepository,
	movRepo repository.MovementRepository,
	presRepo repository.PrescriptionRepository,
) error) error {
	snap := r.store.snapshot()
	err := fn(&memMedicineRepo{r.store}, &memMovementRepo{r.store}, &memPrescriptionRepo{r.store})
	if err != nil {
		r.store.restore(snap)
	}
	return err
}

// ── MedicineRepository ────────────────────────────────────────────────────────

type memMedicineRepo struct{ store *memStore }

func (r *memMedicineRepo) Create(m *entity.Medicine) error {
	if r.store.failMedicineCreate {
		return errFakeDB
	}
	r.store.medicines[m.ID] = cloneMedicine(m)
	return nil
}

func (r *memMedicineRepo) GetByID(id string) (*entity.Medicine, error) {
	m, ok := r.store.medicines[id]
	if !ok {
		return nil, nil
	}
	return cloneMedicine(m), nil
}

func (r *memMedicineRepo) GetForUpdate(id string) (*entity.Medicine, error) {
	return r.GetByID(id)
}

func (r *memMedicineRepo) Update(m *entity.Medicine) error {
	cur, ok := r.store.medicines[m.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cur.Name = m.Name
	cur.NameKey = m.NameKey
	cur.GenericName = m.GenericName
	cur.Weight = m.Weight
	cur.Category = m.Category
	cur.BoxPrice = m.BoxPrice
	cur.ExpiryDate = m.ExpiryDate
	cur.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *memMedicineRepo) UpdateQuantity(m *entity.Medicine) error {
	cur, ok := r.store.medicines[m.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cur.BoxCount = m.BoxCount
	cur.ExtraUnits = m.ExtraUnits
	cur.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *memMedicineRepo) ListWarehouse(limit, offset int) ([]*entity.Medicine, error) {
	var list []*entity.Medicine
	for _, m := range r.store.medicines {
		if m.Location.IsWarehouse() {
			list = append(list, cloneMedicine(m))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *memMedicineRepo) ListByPlace(placeID string) ([]*entity.Medicine, error) {
	var list []*entity.Medicine
	for _, m := range r.store.medicines {
		if id, ok := m.Location.PlaceID(); ok && id == placeID {
			list = append(list, cloneMedicine(m))
		}
	}
	return list, nil
}

func (r *memMedicineRepo) ListWarehouseLowStock(maxBoxes int64) ([]*entity.Medicine, error) {
	var list []*entity.Medicine
	for _, m := range r.store.medicines {
		if m.Location.IsWarehouse() && m.BoxCount <= maxBoxes {
			list = append(list, cloneMedicine(m))
		}
	}
	return list, nil
}

func (r *memMedicineRepo) FindWarehouseByIdentityForUpdate(nameKey, category string) ([]*entity.Medicine, error) {
	var list []*entity.Medicine
	for _, m := range r.store.medicines {
		if m.Location.IsWarehouse() && m.NameKey == nameKey && m.Category == category {
			list = append(list, cloneMedicine(m))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	return list, nil
}

func (r *memMedicineRepo) FindAtPlaceByIdentity(nameKey, category, placeID string) (*entity.Medicine, error) {
	for _, m := range r.store.medicines {
		id, ok := m.Location.PlaceID()
		if ok && id == placeID && m.NameKey == nameKey && m.Category == category && m.OwnerID == nil {
			return cloneMedicine(m), nil
		}
	}
	return nil, nil
}

func (r *memMedicineRepo) SumTotalUnits() (int64, error) {
	return r.store.sumUnits(), nil
}

// ── MovementRepository ────────────────────────────────────────────────────────

type memMovementRepo struct{ store *memStore }

func (r *memMovementRepo) Create(m *entity.Movement) error {
	c := *m
	r.store.movements = append(r.store.movements, &c)
	return nil
}

func (r *memMovementRepo) List(from, to *time.Time, action string, limit, offset int) ([]*entity.Movement, error) {
	var list []*entity.Movement
	for _, m := range r.store.movements {
		if action != "" && m.Action != action {
			continue
		}
		list = append(list, m)
	}
	return list, nil
}

func (r *memMovementRepo) SumQuantity(action string, from, to time.Time) (int64, error) {
	var total int64
	for _, m := range r.store.movements {
		if m.Action == action && !m.CreatedAt.Before(from) && !m.CreatedAt.After(to) {
			total += m.Quantity
		}
	}
	return total, nil
}

// ── PrescriptionRepository ────────────────────────────────────────────────────

type memPrescriptionRepo struct{ store *memStore }

func (r *memPrescriptionRepo) Create(p *entity.Prescription) error {
	c := *p
	r.store.prescriptions = append(r.store.prescriptions, &c)
	return nil
}

func (r *memPrescriptionRepo) ListInvoices(patientID string) ([]repository.InvoiceSummaryResult, error) {
	return nil, nil
}

func (r *memPrescriptionRepo) ListByPatientAndMinute(patientID string, minute time.Time) ([]repository.PrescriptionLineResult, error) {
	return nil, nil
}

// ── PlaceRepository / PatientRepository ───────────────────────────────────────

type memPlaceRepo struct{ store *memStore }

func (r *memPlaceRepo) Create(p *entity.Place) error {
	r.store.places[p.ID] = p
	return nil
}

func (r *memPlaceRepo) GetByID(id string) (*entity.Place, error) {
	p, ok := r.store.places[id]
	if !ok {
		return nil, nil
	}
	return p, nil
}

func (r *memPlaceRepo) List() ([]*entity.Place, error) {
	var list []*entity.Place
	for _, p := range r.store.places {
		list = append(list, p)
	}
	return list, nil
}

type memPatientRepo struct{ store *memStore }

func (r *memPatientRepo) Create(p *entity.Patient) error {
	r.store.patients[p.ID] = p
	return nil
}

func (r *memPatientRepo) GetByID(id string) (*entity.Patient, error) {
	p, ok := r.store.patients[id]
	if !ok {
		return nil, nil
	}
	return p, nil
}

func (r *memPatientRepo) List(limit, offset int) ([]*entity.Patient, error) {
	var list []*entity.Patient
	for _, p := range r.store.patients {
		list = append(list, p)
	}
	return list, nil
}

func (r *memPatientRepo) Delete(id string) error {
	if _, ok := r.store.patients[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.store.patients, id)
	return nil
}

func (r *memPatientRepo) CountCreatedBetween(from, to time.Time) (int, error) {
	n := 0
	for _, p := range r.store.patients {
		if !p.CreatedAt.Before(from) && !p.CreatedAt.After(to) {
			n++
		}
	}
	return n, nil
}
