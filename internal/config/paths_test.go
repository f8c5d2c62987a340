package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRootPath_Default(t *testing.T) {
	t.Setenv("TODOBRAIN_PATH", "")

	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatal(err)
	}

	got := RootPath()
	want := filepath.Join(home, ".todobrain")
	if got != want {
		t.Errorf("RootPath() = %q, want %q", got, want)
	}
}

func TestRootPath_EnvOverride(t *testing.T) {
	t.Setenv("TODOBRAIN_PATH", "/tmp/custom-todobrain")

	if got := RootPath(); got != "/tmp/custom-todobrain" {
		t.Errorf("RootPath() = %q, want %q", got, "/tmp/custom-todobrain")
	}
}

func TestConfigPath(t *testing.T) {
	t.Setenv("TODOBRAIN_PATH", "/tmp/test-todobrain")

	got := ConfigPath()
	want := "/tmp/test-todobrain/config.jsonc"
	if got != want {
		t.Errorf("ConfigPath() = %q, want %q", got, want)
	}
}

func TestDotenvPaths(t *testing.T) {
	t.Setenv("TODOBRAIN_PATH", "/tmp/test-todobrain")

	got := DotenvPaths()
	if len(got) != 2 || got[0] != ".env" || got[1] != "/tmp/test-todobrain/.env" {
		t.Errorf("DotenvPaths() = %v", got)
	}
}
