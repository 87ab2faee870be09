package rules

import "strings"

// Card type names as they appear on a type line.
const (
	TypeArtifact     = "Artifact"
	TypeCreature     = "Creature"
	TypeEnchantment  = "Enchantment"
	TypeEmblem       = "Emblem"
	TypeInstant      = "Instant"
	TypeLand         = "Land"
	TypePlaneswalker = "Planeswalker"
	TypeSorcery      = "Sorcery"
	TypeToken        = "Token"
	TypeTribal       = "Tribal"
)

// Types is the display and counting order of card types.
var Types = []string{
	TypeCreature,
	TypePlaneswalker,
	TypeEnchantment,
	TypeArtifact,
	TypeLand,
	TypeInstant,
	TypeSorcery,
	TypeToken,
	TypeEmblem,
}

// Supertypes.
const (
	SupertypeLegendary = "Legendary"
	SupertypeSnow      = "Snow"
	SupertypeBasic     = "Basic"
)

var Supertypes = []string{SupertypeLegendary, SupertypeSnow, SupertypeBasic}

// Keyword abilities recognized in rules text.
const (
	KeywordChangeling     = "Changeling"
	KeywordDeathtouch     = "Deathtouch"
	KeywordDefender       = "Defender"
	KeywordDoubleStrike   = "Double strike"
	KeywordFirstStrike    = "First strike"
	KeywordFlash          = "Flash"
	KeywordFlying         = "Flying"
	KeywordForestwalk     = "Forestwalk"
	KeywordHaste          = "Haste"
	KeywordHexproof       = "Hexproof"
	KeywordIndestructible = "Indestructible"
	KeywordInfect         = "Infect"
	KeywordIslandwalk     = "Islandwalk"
	KeywordLifelink       = "Lifelink"
	KeywordMegamorph      = "Megamorph"
	KeywordMenace         = "Menace"
	KeywordMorph          = "Morph"
	KeywordMountainwalk   = "Mountainwalk"
	KeywordPersist        = "Persist"
	KeywordPlainswalk     = "Plainswalk"
	KeywordProwess        = "Prowess"
	KeywordReach          = "Reach"
	KeywordSkulk          = "Skulk"
	KeywordShadow         = "Shadow"
	KeywordShroud         = "Shroud"
	KeywordSwampwalk      = "Swampwalk"
	KeywordTrample        = "Trample"
	KeywordUndying        = "Undying"
	KeywordVigilance      = "Vigilance"
	KeywordWither         = "Wither"
)

// Keywords is the ordered list of recognized keywords.
var Keywords = []string{
	KeywordChangeling,
	KeywordDeathtouch,
	KeywordDefender,
	KeywordDoubleStrike,
	KeywordFirstStrike,
	KeywordFlash,
	KeywordFlying,
	KeywordForestwalk,
	KeywordHaste,
	KeywordHexproof,
	KeywordIndestructible,
	KeywordInfect,
	KeywordIslandwalk,
	KeywordLifelink,
	KeywordMegamorph,
	KeywordMenace,
	KeywordMorph,
	KeywordMountainwalk,
	KeywordPersist,
	KeywordPlainswalk,
	KeywordProwess,
	KeywordReach,
	KeywordSkulk,
	KeywordShadow,
	KeywordShroud,
	KeywordSwampwalk,
	KeywordTrample,
	KeywordUndying,
	KeywordVigilance,
	KeywordWither,
}

var keywordSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(Keywords))
	for _, k := range Keywords {
		set[k] = struct{}{}
	}
	return set
}()

// IsKeyword reports whether s is a recognized keyword in canonical form.
func IsKeyword(s string) bool {
	_, ok := keywordSet[s]
	return ok
}

// Capitalize upper-cases the first letter and lower-cases the rest, turning
// "double STRIKE" into "Double strike".
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	lower := strings.ToLower(s)
	return strings.ToUpper(lower[:1]) + lower[1:]
}

// TypeFromString returns the canonical card type for a case-insensitive
// name, excluding emblems which cannot be addressed as a group.
func TypeFromString(s string) (string, bool) {
	for _, t := range Types {
		if t == TypeEmblem {
			continue
		}
		if strings.EqualFold(s, t) {
			return t, true
		}
	}
	return "", false
}
