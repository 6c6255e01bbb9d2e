// Package domain translates MCP tool calls into spellcasting rules lookups.
//
// The package is intentionally explicit about that mapping:
// - parse MCP tool inputs into rules domain arguments,
// - route calls to the grant registry,
// - and surface structured outputs that MCP clients can render.
//
// Every tool is a read-only lookup; no call mutates the registry.
package domain
