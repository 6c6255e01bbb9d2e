package domain

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestBuiltinRegistryEntries(t *testing.T) {
	registry := BuiltinRegistry()

	tests := []struct {
		feat      string
		allOther  bool
		allLevels bool
		maxSpells int
	}{
		{feat: "Adapted Cantrip", allOther: true, maxSpells: 1},
		{feat: "Adaptive Adept", allOther: true, maxSpells: 1},
		{feat: "Impossible Polymath", allLevels: true},
		{feat: "Mysterious Repertoire", allOther: true, allLevels: true, maxSpells: 1},
	}

	for _, tt := range tests {
		t.Run(tt.feat, func(t *testing.T) {
			grant, ok := registry.Grant(tt.feat)
			if !ok {
				t.Fatalf("expected grant for %q", tt.feat)
			}
			if grant.Traditions.IsAllOther() != tt.allOther {
				t.Fatalf("expected allOther=%v", tt.allOther)
			}
			if grant.Levels.IsAll() != tt.allLevels {
				t.Fatalf("expected allLevels=%v", tt.allLevels)
			}
			if grant.MaxSpells != tt.maxSpells {
				t.Fatalf("expected max spells %d, got %d", tt.maxSpells, grant.MaxSpells)
			}
			if grant.Description == "" {
				t.Fatal("expected a description")
			}
		})
	}
}

func TestBuiltinRegistryUnknownFeat(t *testing.T) {
	if _, ok := BuiltinRegistry().Grant("Power Attack"); ok {
		t.Fatal("expected no grant for a feat without access rules")
	}
}

func TestNewRegistryValidation(t *testing.T) {
	tests := []struct {
		name    string
		entries []GrantEntry
		err     error
	}{
		{
			name:    "empty feat name",
			entries: []GrantEntry{{Feat: ""}},
			err:     ErrEmptyFeatName,
		},
		{
			name: "duplicate feat",
			entries: []GrantEntry{
				{Feat: "Adapted Cantrip", Grant: AccessGrant{Traditions: AllOtherTraditions(), Levels: SpellLevels(0)}},
				{Feat: "Adapted Cantrip", Grant: AccessGrant{Traditions: AllOtherTraditions(), Levels: SpellLevels(0)}},
			},
			err: ErrDuplicateFeat,
		},
		{
			name: "unknown tradition",
			entries: []GrantEntry{
				{Feat: "Strange Feat", Grant: AccessGrant{Traditions: Traditions("elemental"), Levels: SpellLevels(0)}},
			},
			err: ErrUnknownTradition,
		},
		{
			name: "level above range",
			entries: []GrantEntry{
				{Feat: "Strange Feat", Grant: AccessGrant{Traditions: AllOtherTraditions(), Levels: SpellLevels(11)}},
			},
			err: ErrInvalidSpellLevel,
		},
		{
			name: "negative level",
			entries: []GrantEntry{
				{Feat: "Strange Feat", Grant: AccessGrant{Traditions: AllOtherTraditions(), Levels: SpellLevels(-1)}},
			},
			err: ErrInvalidSpellLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistry(tt.entries)
			if !errors.Is(err, tt.err) {
				t.Fatalf("expected error %v, got %v", tt.err, err)
			}
		})
	}
}

func TestRegistryEntriesPreserveOrder(t *testing.T) {
	registry, err := NewRegistry([]GrantEntry{
		{Feat: "B", Grant: AccessGrant{Traditions: AllOtherTraditions(), Levels: SpellLevels(0)}},
		{Feat: "A", Grant: AccessGrant{Traditions: AllOtherTraditions(), Levels: SpellLevels(0)}},
	})
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}

	entries := registry.Entries()
	if len(entries) != 2 || entries[0].Feat != "B" || entries[1].Feat != "A" {
		t.Fatalf("expected registration order [B A], got %v", entries)
	}
}

func TestLoadGrantsFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grants.json")
	payload := []byte(`{
  "grants": [
    {
      "feat": "Adapted Cantrip",
      "traditions": [],
      "spell_levels": [0],
      "max_spells": 1,
      "description": "One cantrip from another tradition"
    },
    {
      "feat": "Impossible Polymath",
      "traditions": ["arcane", "divine", "primal"],
      "spell_levels": [],
      "description": "Spells from three traditions"
    }
  ]
}`)
	if err := os.WriteFile(path, payload, 0o600); err != nil {
		t.Fatalf("write grants: %v", err)
	}

	registry, err := LoadGrants(path)
	if err != nil {
		t.Fatalf("load grants: %v", err)
	}
	if registry.Len() != 2 {
		t.Fatalf("expected 2 grants, got %d", registry.Len())
	}

	cantrip, ok := registry.Grant("Adapted Cantrip")
	if !ok {
		t.Fatal("expected adapted cantrip grant")
	}
	if !cantrip.Traditions.IsAllOther() {
		t.Fatal("expected empty traditions list to mean all other traditions")
	}
	if cantrip.Levels.IsAll() {
		t.Fatal("expected explicit cantrip level, not all levels")
	}
	if cantrip.MaxSpells != 1 {
		t.Fatalf("expected max spells 1, got %d", cantrip.MaxSpells)
	}

	polymath, ok := registry.Grant("Impossible Polymath")
	if !ok {
		t.Fatal("expected impossible polymath grant")
	}
	if polymath.Traditions.IsAllOther() {
		t.Fatal("expected a fixed tradition set")
	}
	if !polymath.Levels.IsAll() {
		t.Fatal("expected empty spell_levels list to mean all levels")
	}
}

func TestLoadGrantsInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grants.json")
	if err := os.WriteFile(path, []byte("{"), 0o600); err != nil {
		t.Fatalf("write grants: %v", err)
	}

	if _, err := LoadGrants(path); err == nil {
		t.Fatal("expected error")
	}
}

func TestLoadGrantsUnknownTradition(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grants.json")
	payload := []byte(`{"grants": [{"feat": "Strange Feat", "traditions": ["elemental"], "spell_levels": [0]}]}`)
	if err := os.WriteFile(path, payload, 0o600); err != nil {
		t.Fatalf("write grants: %v", err)
	}

	_, err := LoadGrants(path)
	if !errors.Is(err, ErrUnknownTradition) {
		t.Fatalf("expected error %v, got %v", ErrUnknownTradition, err)
	}
}

func TestLoadGrantsMissingFile(t *testing.T) {
	if _, err := LoadGrants(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error")
	}
}

func TestLoadGrantsInvalidLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grants.json")
	payload := []byte(`{"grants": [{"feat": "Strange Feat", "traditions": [], "spell_levels": [12]}]}`)
	if err := os.WriteFile(path, payload, 0o600); err != nil {
		t.Fatalf("write grants: %v", err)
	}

	_, err := LoadGrants(path)
	if !errors.Is(err, ErrInvalidSpellLevel) {
		t.Fatalf("expected error %v, got %v", ErrInvalidSpellLevel, err)
	}
}
