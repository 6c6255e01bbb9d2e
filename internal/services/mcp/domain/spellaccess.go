package domain

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	rules "github.com/louisbranch/grimoire/internal/systems/pathfinder/domain"
)

// tracer records spans for rules lookups when tracing is enabled.
var tracer = otel.Tracer("github.com/louisbranch/grimoire/internal/services/mcp")

// SpellAccessResolveInput represents the MCP tool input for resolving
// cross-tradition access.
type SpellAccessResolveInput struct {
	Feats              []string `json:"feats" jsonschema:"feat names from the character sheet"`
	CharacterTradition string   `json:"character_tradition,omitempty" jsonschema:"the character's own tradition, if any"`
}

// SpellAccessResolveResult represents the MCP tool output for resolved
// access.
type SpellAccessResolveResult struct {
	HasAccess         bool     `json:"has_access" jsonschema:"whether any feat grants cross-tradition access"`
	CantripsOnly      bool     `json:"cantrips_only" jsonschema:"whether access is limited to cantrips"`
	AllSpells         bool     `json:"all_spells" jsonschema:"whether spells beyond cantrips are accessible"`
	AllowedTraditions []string `json:"allowed_traditions" jsonschema:"traditions the character may draw spells from"`
	Description       string   `json:"description,omitempty" jsonschema:"joined descriptions of the matched grants"`
}

// SpellAccessCheckInput represents the MCP tool input for a single spell
// check.
type SpellAccessCheckInput struct {
	SpellTradition     string   `json:"spell_tradition" jsonschema:"the spell's tradition"`
	SpellLevel         int      `json:"spell_level" jsonschema:"the spell's level, 0 for a cantrip"`
	CharacterTradition string   `json:"character_tradition,omitempty" jsonschema:"the character's own tradition, if any"`
	Feats              []string `json:"feats" jsonschema:"feat names from the character sheet"`
}

// SpellAccessCheckResult represents the MCP tool output for a single spell
// check.
type SpellAccessCheckResult struct {
	Allowed bool   `json:"allowed" jsonschema:"whether the character may use the spell"`
	Reason  string `json:"reason" jsonschema:"short explanation of the decision"`
}

// SpellAccessDescribeInput represents the MCP tool input for rendering
// access as a sentence.
type SpellAccessDescribeInput struct {
	Feats              []string `json:"feats" jsonschema:"feat names from the character sheet"`
	CharacterTradition string   `json:"character_tradition,omitempty" jsonschema:"the character's own tradition, if any"`
}

// SpellAccessDescribeResult represents the MCP tool output for the rendered
// sentence.
type SpellAccessDescribeResult struct {
	HasAccess   bool   `json:"has_access" jsonschema:"whether any feat grants cross-tradition access"`
	Description string `json:"description,omitempty" jsonschema:"sentence listing the unlocked traditions"`
}

// SpellAccessGrantsInput represents the MCP tool input for listing the
// registry.
type SpellAccessGrantsInput struct{}

// GrantSummary represents one registry entry in the MCP tool output.
type GrantSummary struct {
	Feat               string   `json:"feat" jsonschema:"feat name the grant is keyed by"`
	AllOtherTraditions bool     `json:"all_other_traditions" jsonschema:"whether the grant unlocks every tradition except the character's own"`
	Traditions         []string `json:"traditions,omitempty" jsonschema:"explicit traditions the grant unlocks"`
	AllLevels          bool     `json:"all_levels" jsonschema:"whether the grant unlocks every spell level"`
	SpellLevels        []int    `json:"spell_levels,omitempty" jsonschema:"explicit spell levels the grant unlocks"`
	MaxSpells          int      `json:"max_spells,omitempty" jsonschema:"informational cap on spells added"`
	Description        string   `json:"description" jsonschema:"human-readable summary of the grant"`
}

// SpellAccessGrantsResult represents the MCP tool output listing the
// registry.
type SpellAccessGrantsResult struct {
	Grants []GrantSummary `json:"grants" jsonschema:"registered grants in registry order"`
}

// SpellAccessResolveTool defines the MCP tool schema for resolving access.
func SpellAccessResolveTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "spell_access_resolve",
		Description: "Resolves which foreign traditions and spell levels a character's feats unlock",
	}
}

// SpellAccessCheckTool defines the MCP tool schema for checking one spell.
func SpellAccessCheckTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "spell_access_check",
		Description: "Checks whether a character may use a spell of a given tradition and level",
	}
}

// SpellAccessDescribeTool defines the MCP tool schema for rendering access.
func SpellAccessDescribeTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "spell_access_describe",
		Description: "Renders a character's cross-tradition spell access as a sentence",
	}
}

// SpellAccessGrantsTool defines the MCP tool schema for listing the grant
// registry.
func SpellAccessGrantsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "spell_access_grants",
		Description: "Lists the feats that grant cross-tradition spell access",
	}
}

// SpellAccessResolveHandler resolves cross-tradition access for a feat list.
func SpellAccessResolveHandler(registry *rules.Registry) mcp.ToolHandlerFor[SpellAccessResolveInput, SpellAccessResolveResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SpellAccessResolveInput) (*mcp.CallToolResult, SpellAccessResolveResult, error) {
		_, span := tracer.Start(ctx, "spell_access.resolve")
		defer span.End()
		span.SetAttributes(attribute.Int("feats.count", len(input.Feats)))

		access := registry.ResolveAccess(featRefs(input.Feats), input.CharacterTradition)
		return nil, SpellAccessResolveResult{
			HasAccess:         access.HasAccess,
			CantripsOnly:      access.CantripsOnly,
			AllSpells:         access.AllSpells,
			AllowedTraditions: traditionLabels(access.AllowedTraditions),
			Description:       access.Description,
		}, nil
	}
}

// SpellAccessCheckHandler checks a single spell against a character's
// access.
func SpellAccessCheckHandler(registry *rules.Registry) mcp.ToolHandlerFor[SpellAccessCheckInput, SpellAccessCheckResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SpellAccessCheckInput) (*mcp.CallToolResult, SpellAccessCheckResult, error) {
		_, span := tracer.Start(ctx, "spell_access.check")
		defer span.End()
		span.SetAttributes(
			attribute.String("spell.tradition", input.SpellTradition),
			attribute.Int("spell.level", input.SpellLevel),
		)

		feats := featRefs(input.Feats)
		allowed := registry.CanAccessSpell(input.SpellTradition, rules.SpellLevel(input.SpellLevel), input.CharacterTradition, feats)
		return nil, SpellAccessCheckResult{
			Allowed: allowed,
			Reason:  checkReason(registry, allowed, input, feats),
		}, nil
	}
}

// SpellAccessDescribeHandler renders access as a human-readable sentence.
func SpellAccessDescribeHandler(registry *rules.Registry) mcp.ToolHandlerFor[SpellAccessDescribeInput, SpellAccessDescribeResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SpellAccessDescribeInput) (*mcp.CallToolResult, SpellAccessDescribeResult, error) {
		_, span := tracer.Start(ctx, "spell_access.describe")
		defer span.End()

		description, ok := registry.DescribeAccess(featRefs(input.Feats), input.CharacterTradition)
		return nil, SpellAccessDescribeResult{
			HasAccess:   ok,
			Description: description,
		}, nil
	}
}

// SpellAccessGrantsHandler lists the grant registry in registration order.
func SpellAccessGrantsHandler(registry *rules.Registry) mcp.ToolHandlerFor[SpellAccessGrantsInput, SpellAccessGrantsResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ SpellAccessGrantsInput) (*mcp.CallToolResult, SpellAccessGrantsResult, error) {
		_, span := tracer.Start(ctx, "spell_access.grants")
		defer span.End()

		entries := registry.Entries()
		grants := make([]GrantSummary, 0, len(entries))
		for _, entry := range entries {
			summary := GrantSummary{
				Feat:               entry.Feat,
				AllOtherTraditions: entry.Grant.Traditions.IsAllOther(),
				Traditions:         traditionLabels(entry.Grant.Traditions.Subset()),
				AllLevels:          entry.Grant.Levels.IsAll(),
				MaxSpells:          entry.Grant.MaxSpells,
				Description:        entry.Grant.Description,
			}
			for _, level := range entry.Grant.Levels.Subset() {
				summary.SpellLevels = append(summary.SpellLevels, int(level))
			}
			grants = append(grants, summary)
		}
		return nil, SpellAccessGrantsResult{Grants: grants}, nil
	}
}

// checkReason explains a check result for MCP clients. The wording mirrors
// the decision order in the rules package.
func checkReason(registry *rules.Registry, allowed bool, input SpellAccessCheckInput, feats []rules.FeatRef) string {
	if allowed && strings.EqualFold(strings.TrimSpace(input.SpellTradition), strings.TrimSpace(input.CharacterTradition)) {
		return "own-tradition spells are always accessible"
	}
	spell, spellOK := rules.ParseTradition(input.SpellTradition)

	access := registry.ResolveAccess(feats, input.CharacterTradition)
	traditionAllowed := false
	for _, tradition := range access.AllowedTraditions {
		if spellOK && tradition == spell {
			traditionAllowed = true
			break
		}
	}

	switch {
	case !access.HasAccess:
		return "no feat grants cross-tradition access"
	case allowed:
		return "a feat grants access to this tradition and level"
	case !traditionAllowed:
		return "no feat grants access to this tradition"
	default:
		return "access is limited to cantrips"
	}
}

func featRefs(names []string) []rules.FeatRef {
	refs := make([]rules.FeatRef, 0, len(names))
	for _, name := range names {
		refs = append(refs, rules.FeatRef{Name: name})
	}
	return refs
}

func traditionLabels(traditions []rules.Tradition) []string {
	labels := make([]string, 0, len(traditions))
	for _, tradition := range traditions {
		labels = append(labels, string(tradition))
	}
	return labels
}
