package domain

import "strings"

// Faction is a side of the match. The zero value means "nobody" and is used
// for unowned tiles and empty capture state.
type Faction uint8

// Declaration order is the default turn order.
const (
	FactionNone Faction = iota
	FactionRed
	FactionBlue
	FactionGreen
	FactionYellow
)

var factionStringToValue = map[string]Faction{
	"RED":    FactionRed,
	"BLUE":   FactionBlue,
	"GREEN":  FactionGreen,
	"YELLOW": FactionYellow,
}

var factionValueToString = map[Faction]string{
	FactionNone:   "NONE",
	FactionRed:    "RED",
	FactionBlue:   "BLUE",
	FactionGreen:  "GREEN",
	FactionYellow: "YELLOW",
}

// ParseFaction converts a faction name (case-insensitive) to a Faction.
func ParseFaction(s string) Faction {
	if val, ok := factionStringToValue[strings.ToUpper(s)]; ok {
		return val
	}
	return FactionNone
}

// FactionFromCode maps the numeric code used by level layers (0 = none).
func FactionFromCode(code int) (Faction, bool) {
	f := Faction(code)
	if code < 0 || code > int(FactionYellow) {
		return FactionNone, false
	}
	return f, true
}

func (f Faction) String() string {
	if val, ok := factionValueToString[f]; ok {
		return val
	}
	return "UNKNOWN"
}
