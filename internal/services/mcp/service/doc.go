// Package service hosts the Grimoire MCP server over stdio or HTTP
// transports.
package service
