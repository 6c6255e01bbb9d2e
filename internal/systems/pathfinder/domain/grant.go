package domain

// TraditionSelection describes which traditions an access grant unlocks.
// The source ruleset writes "any tradition other than your own" as an open
// choice, so the selection is either that open variant or an explicit set.
// The zero value selects nothing; construct via AllOtherTraditions or
// Traditions.
type TraditionSelection struct {
	all    bool
	subset []Tradition
}

// AllOtherTraditions selects every tradition except the character's own.
func AllOtherTraditions() TraditionSelection {
	return TraditionSelection{all: true}
}

// Traditions selects an explicit, registry-fixed set of traditions.
func Traditions(traditions ...Tradition) TraditionSelection {
	return TraditionSelection{subset: traditions}
}

// IsAllOther reports whether the selection is the open "all other
// traditions" variant.
func (s TraditionSelection) IsAllOther() bool {
	return s.all
}

// Subset returns the explicit tradition set, or nil for the open variant.
func (s TraditionSelection) Subset() []Tradition {
	if s.all {
		return nil
	}
	return append([]Tradition(nil), s.subset...)
}

// Resolve returns the effective traditions for a character of the given
// tradition. The open variant expands to every tradition except the
// character's own; a character with no tradition excludes nothing. Explicit
// sets are returned verbatim, independent of the character's tradition.
func (s TraditionSelection) Resolve(characterTradition Tradition) []Tradition {
	if !s.all {
		return append([]Tradition(nil), s.subset...)
	}
	resolved := make([]Tradition, 0, 4)
	for _, tradition := range AllTraditions() {
		if tradition == characterTradition {
			continue
		}
		resolved = append(resolved, tradition)
	}
	return resolved
}

// LevelSelection describes which spell levels an access grant unlocks,
// either every level 0-10 or an explicit set. The zero value selects
// nothing; construct via AllSpellLevels or SpellLevels.
type LevelSelection struct {
	all    bool
	subset []SpellLevel
}

// AllSpellLevels selects every spell level from 0 through 10.
func AllSpellLevels() LevelSelection {
	return LevelSelection{all: true}
}

// SpellLevels selects an explicit set of spell levels.
func SpellLevels(levels ...SpellLevel) LevelSelection {
	return LevelSelection{subset: levels}
}

// IsAll reports whether the selection covers every spell level.
func (s LevelSelection) IsAll() bool {
	return s.all
}

// Subset returns the explicit level set, or nil for the full-range variant.
func (s LevelSelection) Subset() []SpellLevel {
	if s.all {
		return nil
	}
	return append([]SpellLevel(nil), s.subset...)
}

// Resolve returns the effective spell levels: the explicit set verbatim, or
// levels 0 through 10 for the full-range variant.
func (s LevelSelection) Resolve() []SpellLevel {
	if !s.all {
		return append([]SpellLevel(nil), s.subset...)
	}
	resolved := make([]SpellLevel, 0, MaxSpellLevel+1)
	for level := CantripLevel; level <= MaxSpellLevel; level++ {
		resolved = append(resolved, level)
	}
	return resolved
}

// AccessGrant is the cross-tradition access rule attached to a single feat.
type AccessGrant struct {
	// Traditions the feat unlocks.
	Traditions TraditionSelection
	// Levels the feat unlocks.
	Levels LevelSelection
	// MaxSpells caps how many spells the feat lets a character add. The cap
	// is carried for display; access resolution does not enforce it.
	MaxSpells int
	// Description is the human-readable summary of the grant.
	Description string
}
