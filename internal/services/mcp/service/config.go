package service

const (
	// TransportStdio serves MCP over standard input and output.
	TransportStdio = "stdio"
	// TransportHTTP serves MCP over a streamable HTTP endpoint.
	TransportHTTP = "http"
)

// Config holds MCP service configuration.
type Config struct {
	// Transport selects stdio or HTTP serving.
	Transport string
	// HTTPAddr is the listen address for the HTTP transport.
	HTTPAddr string
	// GrantsPath optionally points at a JSON grants file that replaces the
	// builtin registry at startup.
	GrantsPath string
}
