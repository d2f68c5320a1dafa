// Package geo holds static US geography reference data: state-name
// normalization, a hand-authored state adjacency graph, and macro-region
// groupings. Adjacency is the proximity model — one hop approximates
// "within ~100 miles", two hops "~250 miles". All tables are package-level
// constants built at load time and never mutated.
package geo

import "sort"

// Region is one of the macro-regions used for coarse proximity.
type Region string

const (
	RegionNortheast Region = "NORTHEAST"
	RegionSoutheast Region = "SOUTHEAST"
	RegionMidwest   Region = "MIDWEST"
	RegionSouthwest Region = "SOUTHWEST"
	RegionMountain  Region = "MOUNTAIN"
	RegionPacific   Region = "PACIFIC"
)

// stateNames maps lowercase full state names to canonical codes.
var stateNames = map[string]string{
	"alabama": "AL", "alaska": "AK", "arizona": "AZ", "arkansas": "AR",
	"california": "CA", "colorado": "CO", "connecticut": "CT",
	"delaware": "DE", "district of columbia": "DC", "florida": "FL",
	"georgia": "GA", "hawaii": "HI", "idaho": "ID", "illinois": "IL",
	"indiana": "IN", "iowa": "IA", "kansas": "KS", "kentucky": "KY",
	"louisiana": "LA", "maine": "ME", "maryland": "MD",
	"massachusetts": "MA", "michigan": "MI", "minnesota": "MN",
	"mississippi": "MS", "missouri": "MO", "montana": "MT",
	"nebraska": "NE", "nevada": "NV", "new hampshire": "NH",
	"new jersey": "NJ", "new mexico": "NM", "new york": "NY",
	"north carolina": "NC", "north dakota": "ND", "ohio": "OH",
	"oklahoma": "OK", "oregon": "OR", "pennsylvania": "PA",
	"rhode island": "RI", "south carolina": "SC", "south dakota": "SD",
	"tennessee": "TN", "texas": "TX", "utah": "UT", "vermont": "VT",
	"virginia": "VA", "washington": "WA", "west virginia": "WV",
	"wisconsin": "WI", "wyoming": "WY",
}

// adjacency lists bordering states. Hand-authored and symmetric; corner
// touches (the Four Corners) are not borders.
var adjacency = map[string][]string{
	"AL": {"FL", "GA", "MS", "TN"},
	"AK": {},
	"AZ": {"CA", "NM", "NV", "UT"},
	"AR": {"LA", "MS", "MO", "OK", "TN", "TX"},
	"CA": {"AZ", "NV", "OR"},
	"CO": {"KS", "NE", "NM", "OK", "UT", "WY"},
	"CT": {"MA", "NY", "RI"},
	"DC": {"MD", "VA"},
	"DE": {"MD", "NJ", "PA"},
	"FL": {"AL", "GA"},
	"GA": {"AL", "FL", "NC", "SC", "TN"},
	"HI": {},
	"ID": {"MT", "NV", "OR", "UT", "WA", "WY"},
	"IL": {"IA", "IN", "KY", "MO", "WI"},
	"IN": {"IL", "KY", "MI", "OH"},
	"IA": {"IL", "MN", "MO", "NE", "SD", "WI"},
	"KS": {"CO", "MO", "NE", "OK"},
	"KY": {"IL", "IN", "MO", "OH", "TN", "VA", "WV"},
	"LA": {"AR", "MS", "TX"},
	"ME": {"NH"},
	"MD": {"DC", "DE", "PA", "VA", "WV"},
	"MA": {"CT", "NH", "NY", "RI", "VT"},
	"MI": {"IN", "OH", "WI"},
	"MN": {"IA", "ND", "SD", "WI"},
	"MS": {"AL", "AR", "LA", "TN"},
	"MO": {"AR", "IA", "IL", "KS", "KY", "NE", "OK", "TN"},
	"MT": {"ID", "ND", "SD", "WY"},
	"NE": {"CO", "IA", "KS", "MO", "SD", "WY"},
	"NV": {"AZ", "CA", "ID", "OR", "UT"},
	"NH": {"MA", "ME", "VT"},
	"NJ": {"DE", "NY", "PA"},
	"NM": {"AZ", "CO", "OK", "TX"},
	"NY": {"CT", "MA", "NJ", "PA", "VT"},
	"NC": {"GA", "SC", "TN", "VA"},
	"ND": {"MN", "MT", "SD"},
	"OH": {"IN", "KY", "MI", "PA", "WV"},
	"OK": {"AR", "CO", "KS", "MO", "NM", "TX"},
	"OR": {"CA", "ID", "NV", "WA"},
	"PA": {"DE", "MD", "NJ", "NY", "OH", "WV"},
	"RI": {"CT", "MA"},
	"SC": {"GA", "NC"},
	"SD": {"IA", "MN", "MT", "ND", "NE", "WY"},
	"TN": {"AL", "AR", "GA", "KY", "MO", "MS", "NC", "VA"},
	"TX": {"AR", "LA", "NM", "OK"},
	"UT": {"AZ", "CO", "ID", "NV", "WY"},
	"VT": {"MA", "NH", "NY"},
	"VA": {"DC", "KY", "MD", "NC", "TN", "WV"},
	"WA": {"ID", "OR"},
	"WV": {"KY", "MD", "OH", "PA", "VA"},
	"WI": {"IA", "IL", "MI", "MN"},
	"WY": {"CO", "ID", "MT", "NE", "SD", "UT"},
}

// regions assigns every state (plus DC) to exactly one macro-region.
var regions = map[string]Region{
	"CT": RegionNortheast, "ME": RegionNortheast, "MA": RegionNortheast,
	"NH": RegionNortheast, "NJ": RegionNortheast, "NY": RegionNortheast,
	"PA": RegionNortheast, "RI": RegionNortheast, "VT": RegionNortheast,

	"AL": RegionSoutheast, "AR": RegionSoutheast, "DC": RegionSoutheast,
	"DE": RegionSoutheast, "FL": RegionSoutheast, "GA": RegionSoutheast,
	"KY": RegionSoutheast, "LA": RegionSoutheast, "MD": RegionSoutheast,
	"MS": RegionSoutheast, "NC": RegionSoutheast, "SC": RegionSoutheast,
	"TN": RegionSoutheast, "VA": RegionSoutheast, "WV": RegionSoutheast,

	"IA": RegionMidwest, "IL": RegionMidwest, "IN": RegionMidwest,
	"KS": RegionMidwest, "MI": RegionMidwest, "MN": RegionMidwest,
	"MO": RegionMidwest, "ND": RegionMidwest, "NE": RegionMidwest,
	"OH": RegionMidwest, "SD": RegionMidwest, "WI": RegionMidwest,

	"AZ": RegionSouthwest, "NM": RegionSouthwest, "OK": RegionSouthwest,
	"TX": RegionSouthwest,

	"CO": RegionMountain, "ID": RegionMountain, "MT": RegionMountain,
	"NV": RegionMountain, "UT": RegionMountain, "WY": RegionMountain,

	"AK": RegionPacific, "CA": RegionPacific, "HI": RegionPacific,
	"OR": RegionPacific, "WA": RegionPacific,
}

// IsStateCode reports whether code is one of the canonical codes (or DC).
func IsStateCode(code string) bool {
	_, ok := adjacency[code]
	return ok
}

// AllStateCodes returns the canonical codes sorted ascending.
func AllStateCodes() []string {
	codes := make([]string, 0, len(adjacency))
	for c := range adjacency {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}

// Neighbors returns the bordering states for a code, nil for unknown input.
func Neighbors(code string) []string {
	return adjacency[code]
}

// Adjacent reports whether a and b share a border.
func Adjacent(a, b string) bool {
	for _, n := range adjacency[a] {
		if n == b {
			return true
		}
	}
	return false
}

// StateRegion returns the macro-region for a code, "" for unknown input.
func StateRegion(code string) Region {
	return regions[code]
}

// SameRegion reports whether two states fall in the same macro-region.
func SameRegion(a, b string) bool {
	ra, ok := regions[a]
	if !ok {
		return false
	}
	rb, ok := regions[b]
	return ok && ra == rb
}

// Expand returns the union of the given states with their neighbors out to
// the given number of hops (BFS over the adjacency graph). Unknown codes
// are dropped. hops <= 0 returns just the valid input states.
func Expand(states []string, hops int) map[string]struct{} {
	frontier := make([]string, 0, len(states))
	seen := make(map[string]struct{}, len(states))
	for _, s := range states {
		if IsStateCode(s) {
			if _, ok := seen[s]; !ok {
				seen[s] = struct{}{}
				frontier = append(frontier, s)
			}
		}
	}
	for i := 0; i < hops; i++ {
		var next []string
		for _, s := range frontier {
			for _, n := range adjacency[s] {
				if _, ok := seen[n]; !ok {
					seen[n] = struct{}{}
					next = append(next, n)
				}
			}
		}
		if len(next) == 0 {
			break
		}
		frontier = next
	}
	return seen
}
