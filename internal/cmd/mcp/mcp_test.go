package mcp

import (
	"flag"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)

	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Transport != "stdio" {
		t.Fatalf("expected default transport stdio, got %q", cfg.Transport)
	}
	if cfg.HTTPAddr != "localhost:8081" {
		t.Fatalf("expected default http addr localhost:8081, got %q", cfg.HTTPAddr)
	}
	if cfg.GrantsPath != "" {
		t.Fatalf("expected no default grants path, got %q", cfg.GrantsPath)
	}
}

func TestParseConfigEnvOverride(t *testing.T) {
	t.Setenv("GRIMOIRE_MCP_TRANSPORT", "http")
	t.Setenv("GRIMOIRE_GRANTS_PATH", "/etc/grimoire/grants.json")
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)

	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Transport != "http" {
		t.Fatalf("expected transport http, got %q", cfg.Transport)
	}
	if cfg.GrantsPath != "/etc/grimoire/grants.json" {
		t.Fatalf("expected grants path from env, got %q", cfg.GrantsPath)
	}
}

func TestParseConfigFlagsWinOverEnv(t *testing.T) {
	t.Setenv("GRIMOIRE_MCP_HTTP_ADDR", "localhost:9000")
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)

	cfg, err := ParseConfig(fs, []string{"-http-addr", "localhost:9001", "-transport", "http"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.HTTPAddr != "localhost:9001" {
		t.Fatalf("expected flag to win, got %q", cfg.HTTPAddr)
	}
	if cfg.Transport != "http" {
		t.Fatalf("expected transport http, got %q", cfg.Transport)
	}
}

func TestParseConfigInvalidFlag(t *testing.T) {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)

	if _, err := ParseConfig(fs, []string{"-unknown-flag"}); err == nil {
		t.Fatal("expected error")
	}
}
