package entity

// Location ubica un lote de medicina: el almacén central o un lugar concreto.
// Es un tipo suma explícito en vez de una FK nullable, para que el código que
// consume la ubicación tenga que decidir ambos casos.
type Location struct {
	placeID string
}

// Warehouse devuelve la ubicación "almacén central".
func Warehouse() Location {
	return Location{}
}

// AtPlace devuelve la ubicación "en el lugar placeID".
func AtPlace(placeID string) Location {
	return Location{placeID: placeID}
}

// IsWarehouse indica si la ubicación es el almacén central.
func (l Location) IsWarehouse() bool {
	return l.placeID == ""
}

// PlaceID devuelve el ID del lugar y true, o cadena vacía y false si es el almacén.
func (l Location) PlaceID() (string, bool) {
	return l.placeID, l.placeID != ""
}
