package geofill

import "math"

// Precision is the number of decimal places coordinates are rounded to (~11m).
const Precision = 4

var scale = math.Pow10(Precision)

// Quantize rounds v to Precision decimal places, halves away from zero.
func Quantize(v float64) float64 {
	return math.Round(v*scale) / scale
}

// QuantizeLocation quantizes both axes of l independently.
func QuantizeLocation(l Location) Location {
	return Location{Lat: Quantize(l.Lat), Lon: Quantize(l.Lon)}
}
