// Package cli assembles the quill command tree. Each command builds its
// collaborators through setup and hands the parsed flags to a run
// function; the run functions hold the behavior and are what the tests
// drive.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/starford/quill/internal"
	"github.com/starford/quill/internal/listing"
	"github.com/starford/quill/internal/notestore"
	"github.com/starford/quill/internal/storage"
	pkgconfig "github.com/starford/quill/pkg/config"
)

// Root builds the quill command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name:  "quill",
		Usage: "Capture, find, and tend Markdown notes from the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "~/.config/quill/config.yaml",
				Sources:     cli.EnvVars("QUILL_CONFIG_FILE"),
			},
			&cli.StringFlag{
				Name:  "dir",
				Usage: "Vault directory, overriding config and environment",
			},
		},
		Commands: []*cli.Command{
			newCmd(),
			addCmd(),
			listCmd(),
			listDeletedCmd(),
			listArchivedCmd(),
			viewCmd(),
			renderNoteCmd(),
			editCmd(),
			deleteCmd(),
			deleteAllCmd(),
			archiveCmd(),
			undeleteCmd(),
			unarchiveCmd(),
			tagsCmd(),
			statsCmd(),
			pathCmd(),
			seedCmd(),
			migrateCmd(),
			migrateIDsCmd(),
			watchCmd(),
			mcpCmd(),
		},
	}
}

// app carries the assembled collaborators a command handler needs.
type app struct {
	cfg    *internal.Config
	store  *notestore.Store
	logger *slog.Logger
	styles listing.Styles
	stdout io.Writer
	stderr io.Writer
}

// setup loads configuration in precedence order (flags over environment
// over file over defaults), opens the vault, and wires the store.
func setup(cmd *cli.Command) (*app, error) {
	cfg := internal.NewDefaultConfig()
	if path := cmd.String("config"); path != "" {
		if err := pkgconfig.Load(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	} else if path := defaultConfigPath(); path != "" {
		if err := pkgconfig.LoadOptional(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}
	cfg.ApplyEnv()
	if dir := cmd.String("dir"); dir != "" {
		cfg.Vault.Path = dir
	}
	if err := cfg.ResolveVault(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))

	vault, err := storage.NewVault(cfg.Vault.Path)
	if err != nil {
		return nil, err
	}
	store := notestore.New(vault,
		notestore.WithLogger(logger),
		notestore.WithPinned(cfg.Tags.PinnedTags()),
		notestore.WithRetention(cfg.Trash.Retention()),
	)

	stdout := io.Writer(os.Stdout)
	if w := cmd.Root().Writer; w != nil {
		stdout = w
	}
	stderr := io.Writer(os.Stderr)
	if w := cmd.Root().ErrWriter; w != nil {
		stderr = w
	}

	return &app{
		cfg:    cfg,
		store:  store,
		logger: logger,
		styles: listing.NewStyles(!cfg.App.NoColor),
		stdout: stdout,
		stderr: stderr,
	}, nil
}

// defaultConfigPath is $HOME/.config/quill/config.yaml, or empty when
// the home directory is unknown. The file is optional; an explicit
// --config path is not.
func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "quill", "config.yaml")
}

// tagFlag is the repeatable -t/--tag flag shared by most commands.
func tagFlag() *cli.StringSliceFlag {
	return &cli.StringSliceFlag{
		Name:    "tag",
		Aliases: []string{"t"},
		Usage:   "Tag to apply or require; repeatable",
	}
}

// sweepTrash applies retention before commands that touch trash. A
// failed sweep is logged, never fatal.
func (a *app) sweepTrash() {
	if _, err := a.store.SweepTrash(); err != nil {
		a.logger.Warn("trash sweep failed", "err", err)
	}
}

// paginate prints lines a terminal page at a time, waiting for Enter
// between pages. Output that is not a terminal gets everything at once.
func (a *app) paginate(lines []string) error {
	rows := 0
	if f, ok := a.stdout.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		rows = listing.TerminalRows()
	}
	if rows <= 0 {
		for _, l := range lines {
			fmt.Fprintln(a.stdout, l)
		}
		return nil
	}

	page := rows - 2
	if page < 1 {
		page = 1
	}
	reader := bufio.NewReader(os.Stdin)
	for idx := 0; idx < len(lines); {
		end := idx + page
		if end > len(lines) {
			end = len(lines)
		}
		for _, l := range lines[idx:end] {
			fmt.Fprintln(a.stdout, l)
		}
		idx = end
		if idx < len(lines) {
			fmt.Fprint(a.stdout, "-- more -- press Enter to continue --")
			if _, err := reader.ReadString('\n'); err != nil {
				return err
			}
		}
	}
	return nil
}

// runEditor opens every path in a single editor process wired to the
// terminal.
func (a *app) runEditor(paths []string) error {
	ed := exec.Command(a.cfg.App.Editor, paths...)
	ed.Stdin = os.Stdin
	ed.Stdout = os.Stdout
	ed.Stderr = os.Stderr
	if err := ed.Run(); err != nil {
		return fmt.Errorf("Editor exited with non-zero status")
	}
	return nil
}
