package mana

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// TransformSentinel is the cost recorded on a linked back face that has no
// cost of its own.
const TransformSentinel = "TRANSFORM"

// ErrInvalidCost is returned when a cost string does not follow the compact grammar.
var ErrInvalidCost = errors.New("mana cost is formatted incorrectly")

// compactPattern is the decklist grammar: optional X, an optional generic
// number, then colored symbols. Case sensitive.
var compactPattern = regexp.MustCompile(`^X?[1-9]?[0-9]*[WUBRGC]*$`)

// bracePattern matches symbols such as {1}, {G}, {X}.
var bracePattern = regexp.MustCompile(`\{([^}]+)\}`)

// ManaCost represents a parsed mana cost.
type ManaCost struct {
	Generic   int
	White     int
	Blue      int
	Black     int
	Red       int
	Green     int
	Colorless int
	X         bool // X in cost (e.g., X1R)
	Sentinel  bool // back face without its own cost
	raw       string
}

// ParseCost parses a compact mana cost string ("2RR", "X1U", "WUBRG", "").
// The sentinel "TRANSFORM" is accepted and yields an empty cost.
func ParseCost(costStr string) (*ManaCost, error) {
	if costStr == TransformSentinel {
		return &ManaCost{Sentinel: true, raw: costStr}, nil
	}
	if !compactPattern.MatchString(costStr) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCost, costStr)
	}

	cost := &ManaCost{raw: costStr}
	rest := costStr
	if strings.HasPrefix(rest, "X") {
		cost.X = true
		rest = rest[1:]
	}

	digits := 0
	for digits < len(rest) && rest[digits] >= '0' && rest[digits] <= '9' {
		digits++
	}
	if digits > 0 {
		n, err := strconv.Atoi(rest[:digits])
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidCost, costStr)
		}
		cost.Generic = n
	}

	for _, symbol := range rest[digits:] {
		cost.add(symbol)
	}
	return cost, nil
}

// ParseBraces converts a brace-delimited cost ("{2}{R}{R}") into the compact
// form understood by ParseCost. Hybrid and phyrexian symbols are rejected.
func ParseBraces(costStr string) (string, error) {
	if strings.TrimSpace(costStr) == "" {
		return "", nil
	}

	cost := &ManaCost{}
	matches := bracePattern.FindAllStringSubmatch(costStr, -1)
	if len(matches) == 0 {
		return "", fmt.Errorf("%w: %q", ErrInvalidCost, costStr)
	}

	for _, match := range matches {
		symbol := strings.ToUpper(strings.TrimSpace(match[1]))

		switch symbol {
		case "X":
			cost.X = true
		case "W", "U", "B", "R", "G", "C":
			cost.add(rune(symbol[0]))
		default:
			num, err := strconv.Atoi(symbol)
			if err != nil {
				return "", fmt.Errorf("%w: unsupported symbol {%s}", ErrInvalidCost, symbol)
			}
			cost.Generic += num
		}
	}

	return cost.String(), nil
}

func (mc *ManaCost) add(symbol rune) {
	switch symbol {
	case 'W':
		mc.White++
	case 'U':
		mc.Blue++
	case 'B':
		mc.Black++
	case 'R':
		mc.Red++
	case 'G':
		mc.Green++
	case 'C':
		mc.Colorless++
	}
}

// String returns the compact representation of the cost.
func (mc *ManaCost) String() string {
	if mc.Sentinel {
		return TransformSentinel
	}
	if mc.raw != "" {
		return mc.raw
	}

	var b strings.Builder
	if mc.X {
		b.WriteString("X")
	}
	if mc.Generic > 0 {
		b.WriteString(strconv.Itoa(mc.Generic))
	}
	b.WriteString(strings.Repeat("W", mc.White))
	b.WriteString(strings.Repeat("U", mc.Blue))
	b.WriteString(strings.Repeat("B", mc.Black))
	b.WriteString(strings.Repeat("R", mc.Red))
	b.WriteString(strings.Repeat("G", mc.Green))
	b.WriteString(strings.Repeat("C", mc.Colorless))
	return b.String()
}

// CMC returns the converted mana cost. X counts as zero.
func (mc *ManaCost) CMC() int {
	return mc.Generic + mc.White + mc.Blue + mc.Black + mc.Red + mc.Green + mc.Colorless
}

// ColorlessName is the color of a card without colored symbols.
const ColorlessName = "Colorless"

// Color returns the space separated color names in WUBRG order, or
// "Colorless" when no colored symbol is present.
func (mc *ManaCost) Color() string {
	var colors []string
	if mc.White > 0 {
		colors = append(colors, "White")
	}
	if mc.Blue > 0 {
		colors = append(colors, "Blue")
	}
	if mc.Black > 0 {
		colors = append(colors, "Black")
	}
	if mc.Red > 0 {
		colors = append(colors, "Red")
	}
	if mc.Green > 0 {
		colors = append(colors, "Green")
	}
	if len(colors) == 0 {
		return ColorlessName
	}
	return strings.Join(colors, " ")
}
