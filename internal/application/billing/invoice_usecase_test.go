package billing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/farmacia-api/internal/application/billing"
	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes: el repo de despachos agrupa en memoria con la misma semántica que el
// date_trunc('minute') de la consulta real.
// ──────────────────────────────────────────────────────────────────────────────

type fakeLine struct {
	pres     entity.Prescription
	medName  string
	boxPrice decimal.Decimal
	boxSize  int64
}

type fakePrescriptionRepo struct {
	lines []fakeLine
}

func (r *fakePrescriptionRepo) Create(p *entity.Prescription) error { return nil }

func (r *fakePrescriptionRepo) ListInvoices(patientID string) ([]repository.InvoiceSummaryResult, error) {
	byMinute := map[time.Time]*repository.InvoiceSummaryResult{}
	for _, l := range r.lines {
		if l.pres.PatientID != patientID {
			continue
		}
		minute := l.pres.Date.Truncate(time.Minute)
		s, ok := byMinute[minute]
		if !ok {
			s = &repository.InvoiceSummaryResult{Minute: minute, TotalPrice: decimal.Zero}
			byMinute[minute] = s
		}
		unitPrice := l.boxPrice
		if l.boxSize > 1 {
			unitPrice = l.boxPrice.Div(decimal.NewFromInt(l.boxSize))
		}
		s.LineCount++
		s.TotalPrice = s.TotalPrice.Add(l.pres.LineTotal(l.boxPrice, unitPrice))
	}
	var out []repository.InvoiceSummaryResult
	for _, s := range byMinute {
		out = append(out, *s)
	}
	return out, nil
}

func (r *fakePrescriptionRepo) ListByPatientAndMinute(patientID string, minute time.Time) ([]repository.PrescriptionLineResult, error) {
	var out []repository.PrescriptionLineResult
	for _, l := range r.lines {
		if l.pres.PatientID != patientID {
			continue
		}
		if l.pres.Date.Before(minute) || !l.pres.Date.Before(minute.Add(time.Minute)) {
			continue
		}
		out = append(out, repository.PrescriptionLineResult{
			Prescription: l.pres,
			MedicineName: l.medName,
			BoxPrice:     l.boxPrice,
			BoxSize:      l.boxSize,
		})
	}
	return out, nil
}

type fakePatientRepo struct {
	patients map[string]*entity.Patient
}

func (r *fakePatientRepo) Create(p *entity.Patient) error { return nil }
func (r *fakePatientRepo) GetByID(id string) (*entity.Patient, error) {
	return r.patients[id], nil
}
func (r *fakePatientRepo) List(limit, offset int) ([]*entity.Patient, error) { return nil, nil }
func (r *fakePatientRepo) Delete(id string) error                            { return nil }
func (r *fakePatientRepo) CountCreatedBetween(from, to time.Time) (int, error) {
	return 0, nil
}

type fakeUserRepo struct {
	users map[string]*entity.User

	failGetByID error
}

func (r *fakeUserRepo) Create(u *entity.User) error { return nil }
func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	if r.failGetByID != nil {
		return nil, r.failGetByID
	}
	return r.users[id], nil
}
func (r *fakeUserRepo) FindByUsername(username string) (*entity.User, error) { return nil, nil }
func (r *fakeUserRepo) List(limit, offset int) ([]*entity.User, error)       { return nil, nil }

func newInvoiceUC(presRepo *fakePrescriptionRepo) *billing.InvoiceUseCase {
	patients := &fakePatientRepo{patients: map[string]*entity.Patient{
		"pac-1": {ID: "pac-1", Name: "Ana", Surname: "García"},
	}}
	users := &fakeUserRepo{users: map[string]*entity.User{
		"doctor-1": {ID: "doctor-1", Username: "dr.lopez", FirstName: "Luis", LastName: "López"},
	}}
	return billing.NewInvoiceUseCase(presRepo, patients, users)
}

func at(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return ts
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestParseMinuteKey_IdaYVuelta(t *testing.T) {
	minute := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	parsed, err := billing.ParseMinuteKey(minute.Format(billing.MinuteKeyLayout))
	require.NoError(t, err)
	assert.True(t, parsed.Equal(minute))

	_, err = billing.ParseMinuteKey("2026-08-31 10:00")
	assert.Error(t, err, "el formato con espacios no es válido en URL")
}

func TestListInvoices_AgrupaPorMinutoTruncado(t *testing.T) {
	presRepo := &fakePrescriptionRepo{lines: []fakeLine{
		// Dos despachos dentro del mismo minuto y uno en el siguiente
		{pres: entity.Prescription{PatientID: "pac-1", BoxesGiven: 1, Date: at(t, "2026-08-31T10:00:15Z")},
			medName: "Amoxicilina", boxPrice: decimal.RequireFromString("25.00"), boxSize: 5},
		{pres: entity.Prescription{PatientID: "pac-1", UnitsGiven: 2, Date: at(t, "2026-08-31T10:00:45Z")},
			medName: "Ibuprofeno", boxPrice: decimal.RequireFromString("10.00"), boxSize: 10},
		{pres: entity.Prescription{PatientID: "pac-1", BoxesGiven: 1, Date: at(t, "2026-08-31T10:01:05Z")},
			medName: "Amoxicilina", boxPrice: decimal.RequireFromString("25.00"), boxSize: 5},
	}}
	uc := newInvoiceUC(presRepo)

	invoices, err := uc.ListInvoices(context.Background(), "pac-1")
	require.NoError(t, err)
	require.Len(t, invoices, 2, "10:00:15 y 10:00:45 son la misma factura; 10:01:05 es otra")

	for _, inv := range invoices {
		if inv.Minute.Equal(at(t, "2026-08-31T10:00:00Z")) {
			assert.Equal(t, 2, inv.LineCount)
			assert.Equal(t, "2026-08-31_10-00", inv.MinuteKey)
			// 1 caja de 25.00 + 2 unidades a 1.00
			assert.True(t, inv.TotalPrice.Equal(decimal.RequireFromString("27.00")), "total %s", inv.TotalPrice)
		}
	}
}

func TestListInvoices_PacienteInexistente(t *testing.T) {
	uc := newInvoiceUC(&fakePrescriptionRepo{})
	_, err := uc.ListInvoices(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInvoiceDetail_CalculaImportes(t *testing.T) {
	presRepo := &fakePrescriptionRepo{lines: []fakeLine{
		{pres: entity.Prescription{PatientID: "pac-1", MedicineID: "med-1", BoxesGiven: 2, UnitsGiven: 3,
			PrescribedByID: "doctor-1", Date: at(t, "2026-08-31T10:00:15Z")},
			medName: "Amoxicilina", boxPrice: decimal.RequireFromString("25.00"), boxSize: 5},
	}}
	uc := newInvoiceUC(presRepo)

	detail, err := uc.InvoiceDetail(context.Background(), "pac-1", at(t, "2026-08-31T10:00:00Z"))
	require.NoError(t, err)

	assert.Equal(t, "Ana García", detail.PatientName)
	assert.Equal(t, "Luis López", detail.PrescribedBy)
	assert.Equal(t, "INVPAC1", detail.InvoiceNumber[:7])

	require.Len(t, detail.Lines, 1)
	line := detail.Lines[0]
	assert.Equal(t, int64(13), line.TotalUnits, "2 cajas de 5 + 3 sueltas")
	assert.True(t, line.UnitPrice.Equal(decimal.RequireFromString("5.00")), "25.00 / 5")
	// 2*25.00 + 3*5.00 = 65.00
	assert.True(t, line.LineTotal.Equal(decimal.RequireFromString("65.00")))

	assert.True(t, detail.Subtotal.Equal(decimal.RequireFromString("65.00")))
	assert.True(t, detail.ProcessingFee.Equal(decimal.RequireFromString("10.00")))
	assert.True(t, detail.Tax.Equal(decimal.RequireFromString("6.50")), "impuesto del 10 por ciento del subtotal")
	assert.True(t, detail.Total.Equal(detail.Subtotal), "cargo e impuesto son informativos")
}

func TestInvoiceDetail_FalloAlResolverPrescriptor(t *testing.T) {
	presRepo := &fakePrescriptionRepo{lines: []fakeLine{
		{pres: entity.Prescription{PatientID: "pac-1", MedicineID: "med-1", BoxesGiven: 1,
			PrescribedByID: "doctor-1", Date: at(t, "2026-08-31T10:00:15Z")},
			medName: "Amoxicilina", boxPrice: decimal.RequireFromString("25.00"), boxSize: 5},
	}}
	patients := &fakePatientRepo{patients: map[string]*entity.Patient{
		"pac-1": {ID: "pac-1", Name: "Ana", Surname: "García"},
	}}
	errDB := errors.New("fallo simulado de base de datos")
	users := &fakeUserRepo{failGetByID: errDB}
	uc := billing.NewInvoiceUseCase(presRepo, patients, users)

	_, err := uc.InvoiceDetail(context.Background(), "pac-1", at(t, "2026-08-31T10:00:00Z"))
	assert.ErrorIs(t, err, errDB, "un fallo de infraestructura se propaga, no degrada la factura")
}

func TestInvoiceDetail_MinutoSinDespachos(t *testing.T) {
	presRepo := &fakePrescriptionRepo{lines: []fakeLine{
		{pres: entity.Prescription{PatientID: "pac-1", BoxesGiven: 1, Date: at(t, "2026-08-31T10:01:05Z")},
			medName: "Amoxicilina", boxPrice: decimal.RequireFromString("25.00"), boxSize: 5},
	}}
	uc := newInvoiceUC(presRepo)

	_, err := uc.InvoiceDetail(context.Background(), "pac-1", at(t, "2026-08-31T10:00:00Z"))
	assert.ErrorIs(t, err, domain.ErrNotFound, "un minuto sin líneas no es una factura")
}
