package rules

import (
	"fmt"
	"strings"
)

// Zone identifies where a card currently is.
type Zone int

const (
	ZoneLibrary Zone = iota
	ZoneBattlefield
	ZoneCommand
	ZoneExile
	ZoneGraveyard
	ZoneHand
	// ZoneTop and ZoneBottom address positions in the library. A card is
	// never left in either; moves into them resolve to ZoneLibrary.
	ZoneTop
	ZoneBottom
)

var zoneNames = map[Zone]string{
	ZoneBattlefield: "Battlefield",
	ZoneCommand:     "Command",
	ZoneExile:       "Exile",
	ZoneGraveyard:   "Graveyard",
	ZoneHand:        "Hand",
	ZoneLibrary:     "Library",
	ZoneTop:         "Top",
	ZoneBottom:      "Bottom",
}

// Zones lists every zone in lookup order.
var Zones = []Zone{
	ZoneBattlefield,
	ZoneCommand,
	ZoneExile,
	ZoneGraveyard,
	ZoneHand,
	ZoneLibrary,
	ZoneTop,
	ZoneBottom,
}

func (z Zone) String() string {
	if name, ok := zoneNames[z]; ok {
		return name
	}
	return fmt.Sprintf("ZONE_%d", int(z))
}

// IsLibraryPosition reports whether z addresses the library.
func (z Zone) IsLibraryPosition() bool {
	return z == ZoneLibrary || z == ZoneTop || z == ZoneBottom
}

// ZoneFromString resolves a user supplied fragment ("grave", "field") to a
// zone. The fragment must match exactly one zone name.
func ZoneFromString(fragment string) (Zone, bool) {
	fragment = strings.ToLower(strings.TrimSpace(fragment))
	if fragment == "" {
		return 0, false
	}
	found := Zone(-1)
	for _, zone := range Zones {
		if strings.Contains(strings.ToLower(zone.String()), fragment) {
			if found >= 0 {
				return 0, false
			}
			found = zone
		}
	}
	if found < 0 {
		return 0, false
	}
	return found, true
}
