// Package mcp parses MCP command flags and selects stdio or HTTP transport.
package mcp

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/louisbranch/grimoire/internal/platform/config"
	"github.com/louisbranch/grimoire/internal/platform/otel"
	"github.com/louisbranch/grimoire/internal/services/mcp/service"
)

// Config holds MCP command configuration.
type Config struct {
	Transport  string `env:"GRIMOIRE_MCP_TRANSPORT" envDefault:"stdio"`
	HTTPAddr   string `env:"GRIMOIRE_MCP_HTTP_ADDR" envDefault:"localhost:8081"`
	GrantsPath string `env:"GRIMOIRE_GRANTS_PATH"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "transport type: stdio or http")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP server address (for HTTP transport)")
	fs.StringVar(&cfg.GrantsPath, "grants", cfg.GrantsPath, "path to a JSON grants file replacing the builtin registry")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the MCP rules server.
func Run(ctx context.Context, cfg Config) error {
	shutdown, err := otel.Setup(ctx, "mcp")
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			log.Printf("otel shutdown: %v", err)
		}
	}()

	return service.Run(ctx, service.Config{
		Transport:  cfg.Transport,
		HTTPAddr:   cfg.HTTPAddr,
		GrantsPath: cfg.GrantsPath,
	})
}
