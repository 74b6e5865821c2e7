// Package inventory contiene la aritmética pura de doble unidad
// (cajas completas + unidades sueltas) usada por el motor de movimientos.
package inventory

import "fmt"

// ToUnits convierte (cajas, unidades sueltas) a unidades totales.
// Con boxSize <= 0 toda la cantidad vive en extraUnits.
func ToUnits(boxCount, extraUnits, boxSize int64) int64 {
	if boxSize <= 0 {
		return extraUnits
	}
	return boxCount*boxSize + extraUnits
}

// FromUnits descompone unidades totales en (cajas, unidades sueltas).
// Con boxSize <= 0 devuelve (0, totalUnits): medicina sin cajas.
func FromUnits(totalUnits, boxSize int64) (boxCount, extraUnits int64) {
	if boxSize <= 0 {
		return 0, totalUnits
	}
	return totalUnits / boxSize, totalUnits % boxSize
}

// DisplayQuantity formatea la cantidad para mostrar, omitiendo el término cero.
// boxSize <= 0 se muestra en unidades; boxSize == 1 en cajas (cajas y unidades
// son equivalentes, no tiene sentido mostrar "+0 unidades").
func DisplayQuantity(boxCount, extraUnits, boxSize int64) string {
	switch {
	case boxSize <= 0:
		return fmt.Sprintf("%d unidades", ToUnits(boxCount, extraUnits, boxSize))
	case boxSize == 1:
		return fmt.Sprintf("%d cajas", ToUnits(boxCount, extraUnits, boxSize))
	case boxCount == 0 && extraUnits > 0:
		return fmt.Sprintf("%d unidades", extraUnits)
	case extraUnits == 0:
		return fmt.Sprintf("%d cajas", boxCount)
	default:
		return fmt.Sprintf("%d cajas (%d unidades)", boxCount, extraUnits)
	}
}
