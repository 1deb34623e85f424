package dashboard

import "energy-dashboard/internal/model"

// Quantity maps a source to its scalar quantity using the aggregated
// entity values. Missing entities read as 0, never an error. Pure: safe to
// call repeatedly and concurrently.
func Quantity(src model.Source, values model.EntityValues) float64 {
	if src.Derivation != nil {
		return values[src.Derivation.ImportEntityID] - values[src.Derivation.ExportEntityID]
	}
	return values[src.EntityID]
}

// NetQuantity is the net-metering import-minus-export quantity.
func NetQuantity(nm model.NetMetering, values model.EntityValues) float64 {
	return values[nm.ImportEntityID] - values[nm.ExportEntityID]
}
