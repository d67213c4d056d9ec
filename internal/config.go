package internal

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/quill/internal/tag"
)

// Environment variables recognised by ApplyEnv. Values set in the
// environment override the config file but lose to command-line flags.
const (
	EnvNotesDir      = "QUILL_NOTES_DIR"
	EnvPinnedTags    = "QUILL_PINNED_TAGS"
	EnvRetentionDays = "QUILL_TRASH_RETENTION_DAYS"
	EnvNoPicker      = "QUILL_NO_PICKER"
	EnvNoColor       = "NO_COLOR"
	EnvEditor        = "EDITOR"
)

// defaultVaultDirName is the vault directory created under $HOME when
// no explicit path is configured.
const defaultVaultDirName = ".quill"

// Config represents the application configuration.
type Config struct {
	App   ApplicationConfig `yaml:"app"`
	Vault VaultConfig       `yaml:"vault"`
	Tags  TagsConfig        `yaml:"tags"`
	Trash TrashConfig       `yaml:"trash"`
}

// Validate validates the configuration. The vault path is checked
// separately by ResolveVault, which runs after all overlays.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	return c.Trash.Validate()
}

// ApplyEnv overlays environment variables onto the configuration. The
// environment is read here once per invocation; commands never consult
// it directly.
func (c *Config) ApplyEnv() {
	if dir := os.Getenv(EnvNotesDir); dir != "" {
		c.Vault.Path = dir
	}
	if pinned := os.Getenv(EnvPinnedTags); pinned != "" {
		c.Tags.Pinned = pinned
	}
	if days := os.Getenv(EnvRetentionDays); days != "" {
		// Unparsable or negative values are ignored rather than fatal.
		if n, err := strconv.Atoi(strings.TrimSpace(days)); err == nil && n >= 0 {
			c.Trash.RetentionDays = n
		}
	}
	if _, ok := os.LookupEnv(EnvNoPicker); ok {
		c.App.NoPicker = true
	}
	if _, ok := os.LookupEnv(EnvNoColor); ok {
		c.App.NoColor = true
	}
	if editor := os.Getenv(EnvEditor); editor != "" {
		c.App.Editor = editor
	}
}

// ResolveVault fills in the default vault location under $HOME when no
// path was configured. It fails when the home directory is unknown and
// nothing else set a path.
func (c *Config) ResolveVault() error {
	if c.Vault.Path != "" {
		return nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("home directory unknown; set %s explicitly: %w", EnvNotesDir, err)
	}
	c.Vault.Path = filepath.Join(home, defaultVaultDirName)
	return nil
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	NoColor  bool       `yaml:"no_color"`
	NoPicker bool       `yaml:"no_picker"`
	Editor   string     `yaml:"editor"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Editor, validation.Required),
	)
}

// VaultConfig holds the path to the note vault directory.
type VaultConfig struct {
	Path string `yaml:"path"`
}

// TagsConfig holds tag presentation configuration.
type TagsConfig struct {
	// Pinned is a comma-separated list of tags the tags overview always
	// shows, zero-count when unused.
	Pinned string `yaml:"pinned"`
}

// PinnedTags returns the pinned tags, normalised.
func (c *TagsConfig) PinnedTags() []tag.Tag {
	return tag.ParseList(c.Pinned)
}

// TrashConfig holds trash retention configuration.
type TrashConfig struct {
	// RetentionDays is the age after which trashed notes are purged.
	// Zero disables purging.
	RetentionDays int `yaml:"retention_days"`
}

// Retention returns the retention window as a duration.
func (c *TrashConfig) Retention() time.Duration {
	return time.Duration(c.RetentionDays) * 24 * time.Hour
}

// Validate validates the trash configuration.
func (c *TrashConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.RetentionDays, validation.Min(0)),
	)
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelWarn,
			Editor:   "vi",
		},
		Tags: TagsConfig{
			Pinned: tag.Join(tag.DefaultPinned),
		},
		Trash: TrashConfig{
			RetentionDays: 30,
		},
	}
}
