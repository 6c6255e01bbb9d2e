// Package domain contains the core Pathfinder spellcasting rules.
//
// This package provides the pure domain logic for cross-tradition spell
// access, including:
//
//   - The four magical traditions and spell levels 0-10
//   - Access grants: the per-feat rules describing which foreign traditions
//     and spell levels a feat unlocks
//   - The grant registry, an immutable lookup table keyed by feat name
//   - Access resolution: combining a character's feats into the union of
//     traditions and levels they may draw spells from
//
// Every operation is a stateless pure computation over its arguments and the
// immutable registry; none of them can fail.
package domain
