package domain

import (
	"fmt"
	"strings"
)

// FeatRef references a feat on a character sheet. Only the name is read;
// callers may project it from any richer feat representation.
type FeatRef struct {
	Name string `json:"name"`
}

// ResolvedAccess is the cross-tradition access a character's feats combine
// to. Values are computed fresh per call and carry no identity beyond it.
type ResolvedAccess struct {
	// HasAccess reports whether any feat granted foreign-tradition access.
	HasAccess bool
	// CantripsOnly reports whether the access is limited to cantrips.
	CantripsOnly bool
	// AllSpells reports whether spells beyond cantrips are accessible.
	AllSpells bool
	// AllowedTraditions is the union of unlocked traditions in
	// first-insertion order.
	AllowedTraditions []Tradition
	// Description joins the matched grants' descriptions with "; " in
	// registry order.
	Description string
}

// ResolveAccess combines the character's feats into their cross-tradition
// spell access. Feat names with no registered grant are skipped: most feats
// carry no tradition-access rule, so absence is the normal case, not an
// error. Grants compose additively; access is the union across matched
// feats, never an intersection.
func (r *Registry) ResolveAccess(feats []FeatRef, characterTradition string) ResolvedAccess {
	// An unknown or empty character tradition parses to the zero value,
	// which excludes nothing from the open tradition selections.
	own, _ := ParseTradition(characterTradition)

	featNames := make(map[string]struct{}, len(feats))
	for _, feat := range feats {
		featNames[feat.Name] = struct{}{}
	}

	var (
		traditions   []Tradition
		levels       = make(map[SpellLevel]struct{})
		descriptions []string
	)
	for _, name := range r.names {
		if _, ok := featNames[name]; !ok {
			continue
		}
		grant := r.grants[name]
		for _, tradition := range grant.Traditions.Resolve(own) {
			if !containsTradition(traditions, tradition) {
				traditions = append(traditions, tradition)
			}
		}
		for _, level := range grant.Levels.Resolve() {
			levels[level] = struct{}{}
		}
		descriptions = append(descriptions, grant.Description)
	}

	if len(descriptions) == 0 {
		return ResolvedAccess{}
	}

	_, hasCantrip := levels[CantripLevel]
	return ResolvedAccess{
		HasAccess:         true,
		CantripsOnly:      len(levels) == 1 && hasCantrip,
		AllSpells:         len(levels) > 1,
		AllowedTraditions: traditions,
		Description:       strings.Join(descriptions, "; "),
	}
}

// CanAccessSpell reports whether a character may use a spell of the given
// tradition and level. Own-tradition spells are always accessible,
// independent of any feat; everything else depends on the resolved access.
// Once access beyond cantrips is unlocked, no finer level bound applies: no
// registered grant expresses a level subset above cantrips.
func (r *Registry) CanAccessSpell(spellTradition string, spellLevel SpellLevel, characterTradition string, feats []FeatRef) bool {
	// The own-tradition check is label equality, not registry membership:
	// a homebrew tradition still matches itself.
	if normalizeLabel(spellTradition) != "" && normalizeLabel(spellTradition) == normalizeLabel(characterTradition) {
		return true
	}

	access := r.ResolveAccess(feats, characterTradition)
	if !access.HasAccess {
		return false
	}
	spell, _ := ParseTradition(spellTradition)
	if !containsTradition(access.AllowedTraditions, spell) {
		return false
	}
	if access.CantripsOnly && !spellLevel.IsCantrip() {
		return false
	}
	return true
}

// DescribeAccess renders the character's cross-tradition access as a
// sentence listing the unlocked traditions. It reports false when the feats
// grant no access.
func (r *Registry) DescribeAccess(feats []FeatRef, characterTradition string) (string, bool) {
	access := r.ResolveAccess(feats, characterTradition)
	if !access.HasAccess {
		return "", false
	}

	names := make([]string, 0, len(access.AllowedTraditions))
	for _, tradition := range access.AllowedTraditions {
		names = append(names, tradition.Title())
	}
	list := strings.Join(names, ", ")

	if access.CantripsOnly {
		return fmt.Sprintf("You can learn cantrips from these traditions: %s.", list), true
	}
	return fmt.Sprintf("You can learn spells from these traditions: %s.", list), true
}

func normalizeLabel(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

func containsTradition(traditions []Tradition, tradition Tradition) bool {
	for _, candidate := range traditions {
		if candidate == tradition {
			return true
		}
	}
	return false
}
