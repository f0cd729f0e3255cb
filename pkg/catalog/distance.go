package catalog

import (
	"fmt"
	"math"
	"sort"
)

// EarthRadiusKm is the mean Earth radius used for great-circle distances.
const EarthRadiusKm = 6371.0

// Point is a latitude/longitude pair in degrees.
type Point struct {
	Lat float64 `json:"lat" yaml:"lat" toml:"lat" bson:"lat"`
	Lng float64 `json:"lng" yaml:"lng" toml:"lng" bson:"lng"`
}

// IsZero reports whether the point is unset. (0, 0) is treated as unset.
func (p Point) IsZero() bool { return p.Lat == 0 && p.Lng == 0 }

// Distance returns the haversine distance between a and b in kilometres.
func Distance(a, b Point) float64 {
	dLat := radians(b.Lat - a.Lat)
	dLng := radians(b.Lng - a.Lng)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(a.Lat))*math.Cos(radians(b.Lat))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return EarthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

// FormatDistance renders km as metres below one kilometre ("850m") and as
// kilometres with one decimal otherwise ("3.2km").
func FormatDistance(km float64) string {
	if km < 1 {
		return fmt.Sprintf("%dm", int(math.Round(km*1000)))
	}
	return fmt.Sprintf("%.1fkm", km)
}

// Nearby is an institution annotated with its distance from a point.
type Nearby struct {
	Institution
	DistanceKm float64 `json:"distance_km"`
}

// SortByDistance returns the institutions ordered nearest first. When from is
// unset the input order is kept and every distance is zero.
func SortByDistance(insts []Institution, from Point) []Nearby {
	out := make([]Nearby, len(insts))
	for i, inst := range insts {
		out[i] = Nearby{Institution: inst}
		if !from.IsZero() {
			out[i].DistanceKm = Distance(from, inst.Location.Point())
		}
	}
	if !from.IsZero() {
		sort.SliceStable(out, func(i, j int) bool { return out[i].DistanceKm < out[j].DistanceKm })
	}
	return out
}

// WithinRadius returns the institutions at most radiusKm from the point.
// When from is unset every institution is returned.
func WithinRadius(insts []Institution, from Point, radiusKm float64) []Institution {
	if from.IsZero() {
		return insts
	}
	var out []Institution
	for _, inst := range insts {
		if Distance(from, inst.Location.Point()) <= radiusKm {
			out = append(out, inst)
		}
	}
	return out
}
