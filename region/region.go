package region

import (
	"errors"
	"sort"
)

// Common region errors.
var (
	// ErrInvalidCode indicates the input does not look like a region code.
	ErrInvalidCode = errors.New("invalid region code")
	// ErrUnknownRegion indicates a syntactically valid but unrecognized code.
	ErrUnknownRegion = errors.New("unknown region code")
)

// Point is a geographic coordinate.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// City is the city where a region's datacenter is located.
type City struct {
	Name    string `json:"name"`
	Country string `json:"country"`
	Geo     Point  `json:"geo"`
}

// Region is a Fly.io point of presence with known details.
type Region struct {
	// Code is the three-letter region code (e.g. "ord").
	Code string `json:"code"`
	// Name is the human-readable region name (e.g. "Chicago, Illinois (US)").
	Name string `json:"name"`
	// City is where the region is located.
	City City `json:"city"`
}

// String returns the region code.
func (r Region) String() string { return r.Code }

// Location is a region code as reported by the platform. It may name a
// region this package does not recognize; it is still a usable value.
type Location string

// Valid checks if the location passes for a Fly.io region code: /^[a-z]{3}$/.
func (l Location) Valid() bool {
	if len(l) != 3 {
		return false
	}
	for _, c := range l {
		if c < 'a' || c > 'z' {
			return false
		}
	}
	return true
}

// Region resolves the location to a known Region, if its code is recognized.
func (l Location) Region() (Region, bool) {
	r, ok := regionsByCode[string(l)]
	return r, ok
}

// String returns the location code.
func (l Location) String() string { return string(l) }

// ParseLocation validates a region code without requiring it to be known.
func ParseLocation(s string) (Location, error) {
	l := Location(s)
	if !l.Valid() {
		return "", ErrInvalidCode
	}
	return l, nil
}

// Parse resolves a region code to a known Region. It returns ErrInvalidCode
// for inputs that do not look like region codes, and ErrUnknownRegion for
// valid codes missing from the table.
func Parse(s string) (Region, error) {
	l, err := ParseLocation(s)
	if err != nil {
		return Region{}, err
	}
	r, ok := l.Region()
	if !ok {
		return Region{}, ErrUnknownRegion
	}
	return r, nil
}

// Compare orders regions geographically: by longitude, then latitude, then
// code. Sorting with it arranges regions roughly west to east.
func Compare(a, b Region) int {
	switch {
	case a.City.Geo.Lon < b.City.Geo.Lon:
		return -1
	case a.City.Geo.Lon > b.City.Geo.Lon:
		return 1
	case a.City.Geo.Lat < b.City.Geo.Lat:
		return -1
	case a.City.Geo.Lat > b.City.Geo.Lat:
		return 1
	case a.Code < b.Code:
		return -1
	case a.Code > b.Code:
		return 1
	default:
		return 0
	}
}

// All returns every known region in geographic order.
func All() []Region {
	out := make([]Region, len(regions))
	copy(out, regions)
	sort.Slice(out, func(i, j int) bool { return Compare(out[i], out[j]) < 0 })
	return out
}
