package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Server.Port != 3000 {
		t.Errorf("Port = %d, want 3000", cfg.Server.Port)
	}
	if cfg.ListenAddr() != ":3000" {
		t.Errorf("ListenAddr = %q, want :3000", cfg.ListenAddr())
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hearth.yaml")
	data := "server:\n  bind: 127.0.0.1\n  port: 8080\nstatic:\n  dir: /srv/house/dist\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Bind != "127.0.0.1" || cfg.Server.Port != 8080 {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Static.Dir != "/srv/house/dist" {
		t.Errorf("static dir = %q", cfg.Static.Dir)
	}
	if cfg.ListenAddr() != "127.0.0.1:8080" {
		t.Errorf("ListenAddr = %q", cfg.ListenAddr())
	}
}

func TestLoadMissingFileKeepsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("Port = %d, want 3000", cfg.Server.Port)
	}
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("server: [not a map"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected an error for malformed yaml")
	}
}

func TestApplyEnvPortOverride(t *testing.T) {
	cfg := Default()

	t.Setenv("PORT", "4321")
	cfg.ApplyEnv()
	if cfg.Server.Port != 4321 {
		t.Errorf("Port = %d, want 4321", cfg.Server.Port)
	}

	t.Setenv("PORT", "not-a-number")
	cfg.ApplyEnv()
	if cfg.Server.Port != 4321 {
		t.Errorf("Port = %d, want 4321 (bad PORT ignored)", cfg.Server.Port)
	}
}
