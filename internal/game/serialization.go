package game

import (
	"bytes"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Checksum is a SHA-256 over the deterministic parts of a snapshot. Two
// snapshots of the same board have the same checksum whenever they were
// taken.
func (s *Snapshot) Checksum() string {
	sum := sha256.Sum256([]byte(s.canonical()))
	return hex.EncodeToString(sum[:])
}

// canonical writes the snapshot without its timestamp. Zones are written
// in a fixed order and keep their card order, since order is game state.
func (s *Snapshot) canonical() string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "GAME:%d|%s|%d|%d\n", s.Turn, s.Step, s.Mulligans, s.CommandPlays)
	for _, p := range s.Players {
		fmt.Fprintf(&buf, "PLAYER:%s|%d|%d|%d|%t\n", p.ID, p.Life, p.Poison, p.CommanderDamage, p.Won)
	}

	zones := make([]string, 0, len(s.Zones))
	for zone := range s.Zones {
		zones = append(zones, zone)
	}
	sort.Strings(zones)
	for _, zone := range zones {
		fmt.Fprintf(&buf, "ZONE:%s\n", zone)
		for _, c := range s.Zones[zone] {
			fmt.Fprintf(&buf, "  CARD:%s|%s|%t|%t|%t|%t|%d|%d|%d|%s\n",
				c.ID, c.Name, c.Tapped, c.FaceDown, c.Transformed, c.Sick, c.Power, c.Toughness, c.Counters,
				strings.Join(c.Keywords, ","))
		}
	}
	return buf.String()
}

// MarshalBinary gob-encodes the describable part of the snapshot.
func (s *Snapshot) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(snapshotWire{
		Turn:         s.Turn,
		Step:         s.Step,
		Mulligans:    s.Mulligans,
		CommandPlays: s.CommandPlays,
		Players:      s.Players,
		Zones:        s.Zones,
		Timestamp:    s.Timestamp,
	}); err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary decodes data written by MarshalBinary.
func (s *Snapshot) UnmarshalBinary(data []byte) error {
	var w snapshotWire
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&w); err != nil {
		return fmt.Errorf("failed to decode snapshot: %w", err)
	}
	*s = Snapshot{
		Turn:         w.Turn,
		Step:         w.Step,
		Mulligans:    w.Mulligans,
		CommandPlays: w.CommandPlays,
		Players:      w.Players,
		Zones:        w.Zones,
		Timestamp:    w.Timestamp,
	}
	return nil
}

type snapshotWire struct {
	Turn         int
	Step         string
	Mulligans    int
	CommandPlays int
	Players      []Player
	Zones        map[string][]CardView
	Timestamp    time.Time
}
