package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
)

var _ repository.PrescriptionRepository = (*PrescriptionRepo)(nil)

// PrescriptionRepo implementación del puerto PrescriptionRepository sobre
// PostgreSQL (usable con pool o tx). Las líneas son inmutables.
type PrescriptionRepo struct {
	q Querier
}

// NewPrescriptionRepository construye el adaptador de despachos. Pasar pool o tx (Querier).
func NewPrescriptionRepository(q Querier) *PrescriptionRepo {
	return &PrescriptionRepo{q: q}
}

// Create persiste una línea de despacho.
func (r *PrescriptionRepo) Create(p *entity.Prescription) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	query := `
		INSERT INTO prescriptions (id, patient_id, medicine_id, boxes_given, units_given, prescribed_by_id, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.PatientID, p.MedicineID, p.BoxesGiven, p.UnitsGiven, p.PrescribedByID, p.Date,
	)
	if err != nil {
		return fmt.Errorf("create prescription: %w", err)
	}
	return nil
}

// ListInvoices agrupa los despachos de un paciente por minuto truncado.
// El importe por línea es boxes*box_price + units*precio_unitario, con el
// precio unitario derivado del box_size del lote.
func (r *PrescriptionRepo) ListInvoices(patientID string) ([]repository.InvoiceSummaryResult, error) {
	query := `
		SELECT date_trunc('minute', p.date) AS minute,
		       COUNT(*) AS line_count,
		       COALESCE(SUM(
		           p.boxes_given * m.box_price +
		           p.units_given * CASE WHEN m.box_size > 1 THEN m.box_price / m.box_size
		                                ELSE m.box_price END), 0) AS total_price
		FROM prescriptions p
		JOIN medicines m ON m.id = p.medicine_id
		WHERE p.patient_id = $1
		GROUP BY minute
		ORDER BY minute DESC`
	rows, err := r.q.Query(context.Background(), query, patientID)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []repository.InvoiceSummaryResult
	for rows.Next() {
		var s repository.InvoiceSummaryResult
		if err := rows.Scan(&s.Minute, &s.LineCount, &s.TotalPrice); err != nil {
			return nil, fmt.Errorf("scan invoice summary: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// ListByPatientAndMinute devuelve las líneas de la factura [minute, minute+1m)
// con los datos del lote necesarios para calcular importes.
func (r *PrescriptionRepo) ListByPatientAndMinute(patientID string, minute time.Time) ([]repository.PrescriptionLineResult, error) {
	query := `
		SELECT p.id, p.patient_id, p.medicine_id, p.boxes_given, p.units_given, p.prescribed_by_id, p.date,
		       m.name, m.box_price, m.box_size
		FROM prescriptions p
		JOIN medicines m ON m.id = p.medicine_id
		WHERE p.patient_id = $1 AND p.date >= $2 AND p.date < $2 + interval '1 minute'
		ORDER BY p.date, m.name`
	rows, err := r.q.Query(context.Background(), query, patientID, minute)
	if err != nil {
		return nil, fmt.Errorf("list prescriptions by minute: %w", err)
	}
	defer rows.Close()
	var list []repository.PrescriptionLineResult
	for rows.Next() {
		var l repository.PrescriptionLineResult
		if err := rows.Scan(
			&l.Prescription.ID, &l.Prescription.PatientID, &l.Prescription.MedicineID,
			&l.Prescription.BoxesGiven, &l.Prescription.UnitsGiven,
			&l.Prescription.PrescribedByID, &l.Prescription.Date,
			&l.MedicineName, &l.BoxPrice, &l.BoxSize,
		); err != nil {
			return nil, fmt.Errorf("scan prescription line: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}
