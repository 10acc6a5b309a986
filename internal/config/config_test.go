package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Source.Owner != "github" || cfg.Source.Repo != "gitignore" || cfg.Source.Ref != "main" {
		t.Fatalf("unexpected source defaults: %+v", cfg.Source)
	}
	if cfg.Cache.TTL != 24*time.Hour {
		t.Fatalf("unexpected cache TTL: %v", cfg.Cache.TTL)
	}
	if cfg.Output != ".gitignore" {
		t.Fatalf("unexpected output default: %q", cfg.Output)
	}
	if cfg.Plain {
		t.Fatal("plain must default to false")
	}
	if cfg.Theme != "default" {
		t.Fatalf("unexpected theme default: %q", cfg.Theme)
	}
}

func TestLoadConfigFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "source:\n  owner: acme\n  repo: templates\n  ref: v2\noutput: ignore.txt\nplain: true\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Source.Owner != "acme" || cfg.Source.Repo != "templates" || cfg.Source.Ref != "v2" {
		t.Fatalf("unexpected source: %+v", cfg.Source)
	}
	if cfg.Output != "ignore.txt" {
		t.Fatalf("unexpected output: %q", cfg.Output)
	}
	if !cfg.Plain {
		t.Fatal("expected plain true")
	}
	if cfg.Theme != "default" {
		t.Fatalf("file without theme must keep default, got %q", cfg.Theme)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("IGNOREHUB_SOURCE_REF", "master")
	t.Setenv("IGNOREHUB_OUTPUT", "custom.gitignore")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Source.Ref != "master" {
		t.Fatalf("env must override ref, got %q", cfg.Source.Ref)
	}
	if cfg.Output != "custom.gitignore" {
		t.Fatalf("env must override output, got %q", cfg.Output)
	}
}
