package domain

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Tradition identifies one of the four magical traditions a spell or
// spellcaster belongs to. The zero value means "no tradition".
type Tradition string

const (
	TraditionArcane Tradition = "arcane"
	TraditionDivine Tradition = "divine"
	TraditionOccult Tradition = "occult"
	TraditionPrimal Tradition = "primal"
)

// AllTraditions returns the four traditions in canonical order.
func AllTraditions() []Tradition {
	return []Tradition{TraditionArcane, TraditionDivine, TraditionOccult, TraditionPrimal}
}

// ParseTradition matches a label against the four traditions, ignoring case
// and surrounding whitespace. It reports false for empty or unknown labels;
// an unknown tradition is not an error, it simply never matches anything.
func ParseTradition(label string) (Tradition, bool) {
	switch Tradition(normalizeLabel(label)) {
	case TraditionArcane:
		return TraditionArcane, true
	case TraditionDivine:
		return TraditionDivine, true
	case TraditionOccult:
		return TraditionOccult, true
	case TraditionPrimal:
		return TraditionPrimal, true
	default:
		return "", false
	}
}

// Title returns the tradition's title-cased display name.
func (t Tradition) Title() string {
	return cases.Title(language.English).String(string(t))
}

// SpellLevel is a spell's level from 0 to 10. Level 0 is a cantrip.
type SpellLevel int

const (
	// CantripLevel is the level of a cantrip.
	CantripLevel SpellLevel = 0
	// MaxSpellLevel is the highest spell level in the ruleset.
	MaxSpellLevel SpellLevel = 10
)

// IsCantrip reports whether the level denotes a cantrip.
func (l SpellLevel) IsCantrip() bool {
	return l == CantripLevel
}
