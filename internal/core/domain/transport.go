package domain

import "strings"

// TransportMode selects the freight policy for a recalculation run.
// Values other than Air and Maritime are tolerated and carry no freight.
type TransportMode string

const (
	TransportAir      TransportMode = "Air"
	TransportMaritime TransportMode = "Maritime"
)

var transportAliases = map[string]TransportMode{
	"air":      TransportAir,
	"aereo":    TransportAir,
	"aéreo":    TransportAir,
	"maritime": TransportMaritime,
	"maritimo": TransportMaritime,
	"marítimo": TransportMaritime,
}

// ParseTransportMode normalizes known spellings to their canonical mode.
// Unknown strings are returned trimmed, unchanged otherwise.
func ParseTransportMode(s string) TransportMode {
	trimmed := strings.TrimSpace(s)
	if mode, ok := transportAliases[strings.ToLower(trimmed)]; ok {
		return mode
	}
	return TransportMode(trimmed)
}

// IsKnown reports whether the mode has a freight policy.
func (m TransportMode) IsKnown() bool {
	return m == TransportAir || m == TransportMaritime
}
