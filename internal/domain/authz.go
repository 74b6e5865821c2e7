package domain

import "github.com/jhoicas/farmacia-api/internal/domain/entity"

// Operation identifica una operación del motor de inventario sujeta a permisos.
type Operation string

const (
	OpAddStock      Operation = "add_stock"
	OpTransferStock Operation = "transfer_stock"
	OpDispense      Operation = "dispense"
)

// capabilities mapea rol -> operaciones del motor, en vez de cadenas if/else
// por rol repartidas. Cubre solo las mutaciones de stock; el resto de rutas
// se protege con RequireRole en el router.
var capabilities = map[string]map[Operation]struct{}{
	entity.RoleAdmin: {
		OpAddStock:      {},
		OpTransferStock: {},
	},
	entity.RoleStaff: {
		OpTransferStock: {},
	},
	entity.RoleDoctor: {
		OpDispense: {},
	},
}

// Can indica si el rol tiene permitida la operación.
func Can(role string, op Operation) bool {
	ops, ok := capabilities[role]
	if !ok {
		return false
	}
	_, ok = ops[op]
	return ok
}
