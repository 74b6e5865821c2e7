package inventory

import (
	"strings"

	"golang.org/x/text/cases"
)

// NormalizeName deriva la clave de identidad de un nombre de medicina:
// espacios recortados y case folding Unicode, para que "Paracetamol" y
// "PARACETAMOL" resuelvan al mismo lote de almacén.
func NormalizeName(name string) string {
	// cases.Caser no es seguro para uso concurrente; se crea por llamada.
	return cases.Fold().String(strings.TrimSpace(name))
}
