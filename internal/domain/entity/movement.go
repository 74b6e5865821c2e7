package entity

import "time"

// Acciones válidas para Movement.
const (
	ActionAdded       = "added"       // alta de stock en almacén
	ActionTransferred = "transferred" // traslado almacén -> lugar
	ActionDispensed   = "dispensed"   // despacho lugar -> paciente
)

// Movement es una entrada del historial de movimientos. Inmutable una vez
// creada: el ledger solo inserta, nunca actualiza ni borra.
//
// Quantity siempre es positiva; la dirección la determina Action. Para
// "added" se registra en cajas; para "transferred" y "dispensed" en
// unidades totales.
type Movement struct {
	ID          string
	MedicineID  string
	UserID      string // quién ejecutó el movimiento
	ToUserID    *string
	ToPlaceID   *string
	ToPatientID *string
	Quantity    int64
	Action      string // added, transferred, dispensed
	CreatedAt   time.Time
}

// DestinationValid verifica el invariante de destino: como máximo uno de
// {ToUserID, ToPlaceID, ToPatientID} presente, y coherente con Action
// (added sin destino, transferred con lugar o usuario, dispensed con paciente).
func (m *Movement) DestinationValid() bool {
	set := 0
	if m.ToUserID != nil {
		set++
	}
	if m.ToPlaceID != nil {
		set++
	}
	if m.ToPatientID != nil {
		set++
	}
	switch m.Action {
	case ActionAdded:
		return set == 0
	case ActionTransferred:
		return set == 1 && m.ToPatientID == nil
	case ActionDispensed:
		return set == 1 && m.ToPatientID != nil
	}
	return false
}
