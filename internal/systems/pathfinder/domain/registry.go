package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

var (
	// ErrEmptyFeatName indicates a registry entry with no feat name.
	ErrEmptyFeatName = errors.New("feat name must not be empty")
	// ErrDuplicateFeat indicates two registry entries share a feat name.
	ErrDuplicateFeat = errors.New("feat is already registered")
	// ErrInvalidSpellLevel indicates a spell level outside the 0-10 range.
	ErrInvalidSpellLevel = errors.New("spell levels must be between 0 and 10")
	// ErrUnknownTradition indicates a tradition label outside the four
	// traditions.
	ErrUnknownTradition = errors.New("tradition must be arcane, divine, occult, or primal")
)

// GrantEntry pairs a feat name with its access grant for registry
// construction.
type GrantEntry struct {
	Feat  string
	Grant AccessGrant
}

// Registry is an immutable lookup table from feat name to access grant.
// Iteration order is the registration order, which resolution uses when
// joining grant descriptions. Lookups are exact-name, like the source table.
type Registry struct {
	names  []string
	grants map[string]AccessGrant
}

// NewRegistry builds a registry from the given entries, validating feat
// names, tradition sets, and spell levels. The registry never changes after
// construction, so it is safe for concurrent readers.
func NewRegistry(entries []GrantEntry) (*Registry, error) {
	registry := &Registry{
		names:  make([]string, 0, len(entries)),
		grants: make(map[string]AccessGrant, len(entries)),
	}
	for _, entry := range entries {
		if entry.Feat == "" {
			return nil, ErrEmptyFeatName
		}
		if _, exists := registry.grants[entry.Feat]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateFeat, entry.Feat)
		}
		for _, tradition := range entry.Grant.Traditions.Subset() {
			if _, ok := ParseTradition(string(tradition)); !ok {
				return nil, fmt.Errorf("%w: feat %q has tradition %q", ErrUnknownTradition, entry.Feat, tradition)
			}
		}
		for _, level := range entry.Grant.Levels.Subset() {
			if level < CantripLevel || level > MaxSpellLevel {
				return nil, fmt.Errorf("%w: feat %q has level %d", ErrInvalidSpellLevel, entry.Feat, level)
			}
		}
		registry.names = append(registry.names, entry.Feat)
		registry.grants[entry.Feat] = entry.Grant
	}
	return registry, nil
}

// Grant returns the access grant registered for a feat name.
func (r *Registry) Grant(feat string) (AccessGrant, bool) {
	grant, ok := r.grants[feat]
	return grant, ok
}

// Entries returns the registry contents in registration order.
func (r *Registry) Entries() []GrantEntry {
	entries := make([]GrantEntry, 0, len(r.names))
	for _, name := range r.names {
		entries = append(entries, GrantEntry{Feat: name, Grant: r.grants[name]})
	}
	return entries
}

// Len returns the number of registered grants.
func (r *Registry) Len() int {
	return len(r.names)
}

var builtinRegistry = mustNewRegistry([]GrantEntry{
	{
		Feat: "Adapted Cantrip",
		Grant: AccessGrant{
			Traditions:  AllOtherTraditions(),
			Levels:      SpellLevels(CantripLevel),
			MaxSpells:   1,
			Description: "You can add one cantrip from another tradition to your repertoire",
		},
	},
	{
		Feat: "Adaptive Adept",
		Grant: AccessGrant{
			Traditions:  AllOtherTraditions(),
			Levels:      SpellLevels(CantripLevel, 1),
			MaxSpells:   1,
			Description: "You can add a cantrip or 1st-level spell from another tradition to your repertoire",
		},
	},
	{
		Feat: "Impossible Polymath",
		Grant: AccessGrant{
			Traditions:  Traditions(TraditionArcane, TraditionDivine, TraditionPrimal),
			Levels:      AllSpellLevels(),
			Description: "You can add spells from the arcane, divine, and primal traditions to your repertoire",
		},
	},
	{
		Feat: "Mysterious Repertoire",
		Grant: AccessGrant{
			Traditions:  AllOtherTraditions(),
			Levels:      AllSpellLevels(),
			MaxSpells:   1,
			Description: "You can add one spell from a different tradition to your repertoire",
		},
	},
})

func mustNewRegistry(entries []GrantEntry) *Registry {
	registry, err := NewRegistry(entries)
	if err != nil {
		// Unreachable: the builtin table is hardcoded and always valid.
		panic(err)
	}
	return registry
}

// BuiltinRegistry returns the compiled-in grant table for the source
// ruleset.
func BuiltinRegistry() *Registry {
	return builtinRegistry
}

// grantsFile is the JSON layout of an external grants file.
type grantsFile struct {
	Grants []grantsFileEntry `json:"grants"`
}

// grantsFileEntry mirrors the source table's sentinel convention: an empty
// traditions list means "all traditions other than the character's own" and
// an empty spell_levels list means every level 0-10.
type grantsFileEntry struct {
	Feat        string   `json:"feat"`
	Traditions  []string `json:"traditions"`
	SpellLevels []int    `json:"spell_levels"`
	MaxSpells   int      `json:"max_spells"`
	Description string   `json:"description"`
}

// LoadGrants reads a grants registry from a JSON file. Deployments use this
// to ship a revised table at startup; the returned registry is immutable
// like the builtin one.
func LoadGrants(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read grants file: %w", err)
	}

	var file grantsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("unmarshal grants: %w", err)
	}

	entries := make([]GrantEntry, 0, len(file.Grants))
	for _, raw := range file.Grants {
		grant := AccessGrant{
			MaxSpells:   raw.MaxSpells,
			Description: raw.Description,
		}
		if len(raw.Traditions) == 0 {
			grant.Traditions = AllOtherTraditions()
		} else {
			traditions := make([]Tradition, 0, len(raw.Traditions))
			for _, label := range raw.Traditions {
				tradition, ok := ParseTradition(label)
				if !ok {
					return nil, fmt.Errorf("%w: feat %q has tradition %q", ErrUnknownTradition, raw.Feat, label)
				}
				traditions = append(traditions, tradition)
			}
			grant.Traditions = Traditions(traditions...)
		}
		if len(raw.SpellLevels) == 0 {
			grant.Levels = AllSpellLevels()
		} else {
			levels := make([]SpellLevel, 0, len(raw.SpellLevels))
			for _, level := range raw.SpellLevels {
				levels = append(levels, SpellLevel(level))
			}
			grant.Levels = SpellLevels(levels...)
		}
		entries = append(entries, GrantEntry{Feat: raw.Feat, Grant: grant})
	}

	registry, err := NewRegistry(entries)
	if err != nil {
		return nil, fmt.Errorf("build registry: %w", err)
	}
	return registry, nil
}
