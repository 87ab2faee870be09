package effects

import (
	"strings"
)

// Anthem is a continuous effect parsed once from a card's rules text, such as
// "Other Elves you control get +1/+1." It is applied to every matching
// permanent on each propagation pass.
type Anthem struct {
	Others    bool     // leading "Other": the source itself is skipped
	Types     []string // affected type, subtype or color words
	Power     int
	Toughness int
	Keywords  []string
}

// Permanent is the view of a battlefield card the propagator needs.
type Permanent interface {
	ID() string
	TypeLine() string
	Subtype() string
	Color() string
	// Anthem returns the anthem of the face currently showing, or nil.
	Anthem() *Anthem
	ResetAnthemBonus()
	AddAnthemBonus(power, toughness int, keywords []string)
}

// AnthemEffect binds an anthem to the permanent producing it.
type AnthemEffect struct {
	sourceID string
	anthem   *Anthem
}

// NewAnthemEffect creates the effect for source's current anthem. Returns nil
// when the source has none.
func NewAnthemEffect(source Permanent) *AnthemEffect {
	anthem := source.Anthem()
	if anthem == nil {
		return nil
	}
	return &AnthemEffect{sourceID: source.ID(), anthem: anthem}
}

// SourceID returns the ID of the producing permanent.
func (e *AnthemEffect) SourceID() string {
	return e.sourceID
}

// AppliesTo reports whether target receives the bonus. Each affected word is
// matched case-insensitively as a substring of the target's type line,
// subtype or color.
func (e *AnthemEffect) AppliesTo(target Permanent) bool {
	if target == nil {
		return false
	}
	if e.anthem.Others && target.ID() == e.sourceID {
		return false
	}
	typeLine := strings.ToLower(target.TypeLine())
	subtype := strings.ToLower(target.Subtype())
	color := strings.ToLower(target.Color())
	for _, word := range e.anthem.Types {
		word = strings.ToLower(word)
		if strings.Contains(typeLine, word) || strings.Contains(subtype, word) || strings.Contains(color, word) {
			// first match wins
			return true
		}
	}
	return false
}

// Apply adds the bonus to target once.
func (e *AnthemEffect) Apply(target Permanent) {
	target.AddAnthemBonus(e.anthem.Power, e.anthem.Toughness, e.anthem.Keywords)
}
