package main

import (
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/nao1215/pokedex/internal/config"
)

// TestNewInitCmd tests the init command creation.
func TestNewInitCmd(t *testing.T) {
	t.Parallel()

	cmd := NewInitCmd()

	t.Run("has output flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("output")
		if flag == nil {
			t.Fatal("expected output flag")
		}
		if flag.Shorthand != "o" {
			t.Errorf("expected shorthand 'o', got %q", flag.Shorthand)
		}
		if flag.DefValue != ".pokedex" {
			t.Errorf("expected default %q, got %q", ".pokedex", flag.DefValue)
		}
	})

	t.Run("has force flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("force")
		if flag == nil {
			t.Fatal("expected force flag")
		}
		if flag.Shorthand != "f" {
			t.Errorf("expected shorthand 'f', got %q", flag.Shorthand)
		}
	})
}

// runInit executes the init command with args and discards its output.
func runInit(t *testing.T, args ...string) error {
	t.Helper()
	cmd := NewInitCmd()
	cmd.SetOut(io.Discard)
	cmd.SetArgs(args)
	return cmd.Execute()
}

// TestRunInitCmd tests the init command execution.
func TestRunInitCmd(t *testing.T) {
	t.Parallel()

	t.Run("creates config file", func(t *testing.T) {
		t.Parallel()
		outputPath := filepath.Join(t.TempDir(), ".pokedex")

		if err := runInit(t, "-o", outputPath); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		content, err := os.ReadFile(outputPath)
		if err != nil {
			t.Fatalf("failed to read file: %v", err)
		}
		for _, section := range []string{"api:", "cache:", "display:"} {
			if !strings.Contains(string(content), section) {
				t.Errorf("expected config to contain %q", section)
			}
		}
	})

	t.Run("fails if file exists without force", func(t *testing.T) {
		t.Parallel()
		outputPath := filepath.Join(t.TempDir(), ".pokedex")
		if err := os.WriteFile(outputPath, []byte("existing"), 0600); err != nil {
			t.Fatalf("failed to create test file: %v", err)
		}

		err := runInit(t, "-o", outputPath)
		if err == nil {
			t.Fatal("expected error when file exists")
		}
		if !strings.Contains(err.Error(), "already exists") {
			t.Errorf("expected 'already exists' error, got %v", err)
		}
	})

	t.Run("overwrites file with force flag", func(t *testing.T) {
		t.Parallel()
		outputPath := filepath.Join(t.TempDir(), ".pokedex")
		if err := os.WriteFile(outputPath, []byte("existing"), 0600); err != nil {
			t.Fatalf("failed to create test file: %v", err)
		}

		if err := runInit(t, "-o", outputPath, "-f"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		content, err := os.ReadFile(outputPath)
		if err != nil {
			t.Fatalf("failed to read file: %v", err)
		}
		if string(content) == "existing" {
			t.Error("expected file to be overwritten")
		}
	})

	t.Run("creates parent directories", func(t *testing.T) {
		t.Parallel()
		outputPath := filepath.Join(t.TempDir(), "subdir", "nested", ".pokedex")

		if err := runInit(t, "-o", outputPath); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := os.Stat(outputPath); os.IsNotExist(err) {
			t.Error("expected config file to be created in nested directory")
		}
	})

	t.Run("file has correct permissions", func(t *testing.T) {
		t.Parallel()
		if runtime.GOOS == "windows" {
			t.Skip("skipping permission test on Windows")
		}

		outputPath := filepath.Join(t.TempDir(), ".pokedex")
		if err := runInit(t, "-o", outputPath); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		info, err := os.Stat(outputPath)
		if err != nil {
			t.Fatalf("failed to stat file: %v", err)
		}
		if perm := info.Mode().Perm(); perm != 0600 {
			t.Errorf("expected permissions 0600, got %o", perm)
		}
	})
}

// TestConfigTemplate checks that the template loads and documents the defaults.
func TestConfigTemplate(t *testing.T) {
	t.Parallel()

	content, err := configTemplate.ReadFile("templates/pokedex.yaml")
	if err != nil {
		t.Fatalf("failed to read template: %v", err)
	}
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, content, 0600); err != nil {
		t.Fatalf("failed to write template: %v", err)
	}

	file, err := config.LoadConfigFile(path)
	if err != nil {
		t.Fatalf("template is not valid configuration: %v", err)
	}

	cfg := config.NewConfig()
	file.Apply(cfg)
	defaults := config.NewConfig()

	if cfg.BaseURL != defaults.BaseURL {
		t.Errorf("BaseURL = %q, want %q", cfg.BaseURL, defaults.BaseURL)
	}
	if cfg.Timeout != defaults.Timeout {
		t.Errorf("Timeout = %v, want %v", cfg.Timeout, defaults.Timeout)
	}
	if cfg.RateLimit != defaults.RateLimit || cfg.Burst != defaults.Burst {
		t.Errorf("rate limit = %v/%d, want %v/%d", cfg.RateLimit, cfg.Burst, defaults.RateLimit, defaults.Burst)
	}
	if cfg.CacheTTL != defaults.CacheTTL {
		t.Errorf("CacheTTL = %v, want %v", cfg.CacheTTL, defaults.CacheTTL)
	}
	if cfg.ListingLimit != defaults.ListingLimit {
		t.Errorf("ListingLimit = %d, want %d", cfg.ListingLimit, defaults.ListingLimit)
	}
	if strings.Join(cfg.ExcludedTypes, ",") != "unknown,shadow" {
		t.Errorf("ExcludedTypes = %v", cfg.ExcludedTypes)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("template config does not validate: %v", err)
	}
}
