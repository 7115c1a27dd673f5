package reco

import (
	"math"
	"strconv"
	"strings"
)

const earthRadiusKM = 6371.0

type Coordinates struct {
	Lat float64
	Lng float64
}

// ParseCoordinates resolves a coordinate pair from explicit numeric fields,
// falling back to a free-text location string (map links, geo URIs). Returns
// false when no valid pair parses.
func ParseCoordinates(lat, lng *float64, locationText string) (Coordinates, bool) {
	if lat != nil && lng != nil {
		return Coordinates{Lat: *lat, Lng: *lng}, true
	}

	return parseCoordinatesFromText(locationText)
}

// parseCoordinatesFromText extracts the first float pair following the
// markers "@", "q=", "query=" or "ll=", split on "," and with anything after
// "&" discarded.
func parseCoordinatesFromText(location string) (Coordinates, bool) {
	s := strings.TrimSpace(location)
	if s == "" {
		return Coordinates{}, false
	}

	if at := strings.Index(s, "@"); at != -1 {
		if coords, ok := parsePair(s[at+1:]); ok {
			return coords, true
		}
	}

	for _, marker := range []string{"q=", "query=", "ll="} {
		idx := strings.Index(s, marker)
		if idx == -1 {
			continue
		}
		after := s[idx+len(marker):]
		if amp := strings.Index(after, "&"); amp != -1 {
			after = after[:amp]
		}
		if coords, ok := parsePair(after); ok {
			return coords, true
		}
	}

	return Coordinates{}, false
}

func parsePair(s string) (Coordinates, bool) {
	parts := strings.Split(s, ",")
	if len(parts) < 2 {
		return Coordinates{}, false
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Coordinates{}, false
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Coordinates{}, false
	}

	return Coordinates{Lat: lat, Lng: lng}, true
}

// DistanceKM is the great-circle distance between two points on a sphere of
// radius 6371 km (haversine). Symmetric, zero for identical points.
func DistanceKM(a, b Coordinates) float64 {
	phi1 := a.Lat * math.Pi / 180
	phi2 := b.Lat * math.Pi / 180
	dPhi := (b.Lat - a.Lat) * math.Pi / 180
	dLambda := (b.Lng - a.Lng) * math.Pi / 180

	x := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)

	return 2 * earthRadiusKM * math.Atan2(math.Sqrt(x), math.Sqrt(1-x))
}
