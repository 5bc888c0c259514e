// Package region models Fly.io regions: three-letter codes like "ord"
// mapped to display names, cities, countries, and coordinates.
//
// The region table is fixed, read-only state loaded with the package; it is
// not part of any runtime discovery path. Codes this package does not
// recognize still round-trip as a Location.
package region
