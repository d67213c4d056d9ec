package internal

import (
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/starford/quill/internal/tag"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.App.Editor != "vi" {
		t.Errorf("editor = %q, want vi", cfg.App.Editor)
	}
	if cfg.App.LogLevel != slog.LevelWarn {
		t.Errorf("log level = %v, want warn", cfg.App.LogLevel)
	}
	if cfg.Trash.RetentionDays != 30 {
		t.Errorf("retention = %d, want 30", cfg.Trash.RetentionDays)
	}
	if got := cfg.Tags.PinnedTags(); !slices.Equal(got, tag.DefaultPinned) {
		t.Errorf("pinned = %v, want %v", got, tag.DefaultPinned)
	}
}

func TestConfig_ApplyEnv_NotesDir(t *testing.T) {
	t.Setenv(EnvNotesDir, "/srv/notes")
	cfg := NewDefaultConfig()
	cfg.Vault.Path = "/from/file"
	cfg.ApplyEnv()
	if cfg.Vault.Path != "/srv/notes" {
		t.Errorf("vault path = %q, want env value", cfg.Vault.Path)
	}
}

func TestConfig_ApplyEnv_PinnedTags(t *testing.T) {
	t.Setenv(EnvPinnedTags, "#work, #home")
	cfg := NewDefaultConfig()
	cfg.ApplyEnv()
	want := []tag.Tag{"#work", "#home"}
	if got := cfg.Tags.PinnedTags(); !slices.Equal(got, want) {
		t.Errorf("pinned = %v, want %v", got, want)
	}
}

func TestConfig_ApplyEnv_Retention(t *testing.T) {
	tests := []struct {
		value string
		want  int
	}{
		{"7", 7},
		{"0", 0},
		{" 14 ", 14},
		{"-3", 30},
		{"soon", 30},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv(EnvRetentionDays, tt.value)
			cfg := NewDefaultConfig()
			cfg.ApplyEnv()
			if cfg.Trash.RetentionDays != tt.want {
				t.Errorf("retention = %d, want %d", cfg.Trash.RetentionDays, tt.want)
			}
		})
	}
}

func TestConfig_ApplyEnv_Toggles(t *testing.T) {
	// Presence alone flips the toggles, even with an empty value.
	t.Setenv(EnvNoPicker, "")
	t.Setenv(EnvNoColor, "")
	cfg := NewDefaultConfig()
	cfg.ApplyEnv()
	if !cfg.App.NoPicker {
		t.Error("NoPicker should be set")
	}
	if !cfg.App.NoColor {
		t.Error("NoColor should be set")
	}
}

func TestConfig_ApplyEnv_Editor(t *testing.T) {
	t.Setenv(EnvEditor, "nano")
	cfg := NewDefaultConfig()
	cfg.ApplyEnv()
	if cfg.App.Editor != "nano" {
		t.Errorf("editor = %q, want nano", cfg.App.Editor)
	}

	t.Setenv(EnvEditor, "")
	cfg = NewDefaultConfig()
	cfg.ApplyEnv()
	if cfg.App.Editor != "vi" {
		t.Errorf("editor = %q, want vi fallback", cfg.App.Editor)
	}
}

func TestConfig_ResolveVault_DefaultsToHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	cfg := NewDefaultConfig()
	if err := cfg.ResolveVault(); err != nil {
		t.Fatalf("ResolveVault: %v", err)
	}
	want := filepath.Join(home, ".quill")
	if cfg.Vault.Path != want {
		t.Errorf("vault path = %q, want %q", cfg.Vault.Path, want)
	}
}

func TestConfig_ResolveVault_KeepsExplicitPath(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Vault.Path = "/srv/notes"
	if err := cfg.ResolveVault(); err != nil {
		t.Fatalf("ResolveVault: %v", err)
	}
	if cfg.Vault.Path != "/srv/notes" {
		t.Errorf("vault path = %q, want explicit path kept", cfg.Vault.Path)
	}
}

func TestConfig_ResolveVault_NoHome(t *testing.T) {
	t.Setenv("HOME", "")
	cfg := NewDefaultConfig()
	err := cfg.ResolveVault()
	if err == nil {
		t.Fatal("ResolveVault should fail without a home directory")
	}
	if !strings.Contains(err.Error(), EnvNotesDir) {
		t.Errorf("error should mention %s: %v", EnvNotesDir, err)
	}
}

func TestTrashConfig_NegativeRetentionRejected(t *testing.T) {
	cfg := TrashConfig{RetentionDays: -1}
	if err := cfg.Validate(); err == nil {
		t.Fatal("negative retention should fail validation")
	}
}

func TestTrashConfig_Retention(t *testing.T) {
	cfg := TrashConfig{RetentionDays: 2}
	if got := cfg.Retention(); got != 48*time.Hour {
		t.Errorf("Retention = %v, want 48h", got)
	}
}

func TestApplicationConfig_EmptyEditorRejected(t *testing.T) {
	cfg := ApplicationConfig{Editor: ""}
	if err := cfg.Validate(); err == nil {
		t.Fatal("empty editor should fail validation")
	}
}
