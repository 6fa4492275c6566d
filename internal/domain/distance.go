package domain

import (
	"fmt"
	"math"
)

// EarthRadiusMiles is the mean Earth radius used for great-circle distances.
// 3958.8 mi corresponds to the commonly quoted 6371.0 km.
const EarthRadiusMiles = 3958.8

// LocationSummary is the display view of a location included in a
// DistanceResult. Landmark and ZipCode fall back to "N/A" when empty so the
// table UI never renders a blank cell.
type LocationSummary struct {
	Name     string `json:"name"`
	Landmark string `json:"landmark"`
	ZipCode  string `json:"zipCode"`
}

// DistanceResult is the answer to a pairwise distance query.
// Miles carries full floating-point precision so consumers needing
// kilometers or meters can convert without re-querying; Text is the
// two-decimal display string.
type DistanceResult struct {
	From  LocationSummary `json:"from"`
	To    LocationSummary `json:"to"`
	Miles float64         `json:"distanceMiles"`
	Text  string          `json:"distanceText"`
}

// NewDistanceResult computes the great-circle distance between two locations
// and packages it with their display summaries.
func NewDistanceResult(from, to Location) DistanceResult {
	miles := HaversineMiles(from.Latitude, from.Longitude, to.Latitude, to.Longitude)
	return DistanceResult{
		From:  summarize(from),
		To:    summarize(to),
		Miles: miles,
		Text:  fmt.Sprintf("%.2f miles", miles),
	}
}

// HaversineMiles returns the great-circle distance in miles between two
// points given in decimal degrees.
//
//	a = sin²(Δlat/2) + cos(lat1)·cos(lat2)·sin²(Δlon/2)
//	d = 2·R·asin(√a)
func HaversineMiles(lat1, lon1, lat2, lon2 float64) float64 {
	const degToRad = math.Pi / 180

	dLat := (lat2 - lat1) * degToRad
	dLon := (lon2 - lon1) * degToRad

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)

	a := sinLat*sinLat + math.Cos(lat1*degToRad)*math.Cos(lat2*degToRad)*sinLon*sinLon
	return 2 * EarthRadiusMiles * math.Asin(math.Sqrt(a))
}

// summarize maps a Location to its display summary, substituting "N/A" for
// empty optional fields.
func summarize(l Location) LocationSummary {
	s := LocationSummary{Name: l.Name, Landmark: l.Landmark, ZipCode: l.ZipCode}
	if s.Landmark == "" {
		s.Landmark = "N/A"
	}
	if s.ZipCode == "" {
		s.ZipCode = "N/A"
	}
	return s
}
