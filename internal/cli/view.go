package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v3"

	"github.com/starford/quill/internal/apperr"
	"github.com/starford/quill/internal/checksum"
	"github.com/starford/quill/internal/listing"
	"github.com/starford/quill/internal/note"
	"github.com/starford/quill/internal/picker"
	"github.com/starford/quill/internal/render"
	"github.com/starford/quill/internal/storage"
	"github.com/starford/quill/internal/tag"
)

var viewTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF")).Bold(true)

func viewCmd() *cli.Command {
	return &cli.Command{
		Name:      "view",
		Usage:     "Print notes",
		ArgsUsage: "<id>...",
		Flags:     viewFlags(),
		Action:    viewAction(false),
	}
}

// renderNoteCmd is view with Markdown rendering forced on.
func renderNoteCmd() *cli.Command {
	return &cli.Command{
		Name:      "render",
		Usage:     "Print notes rendered as Markdown",
		ArgsUsage: "<id>...",
		Flags:     viewFlags(),
		Action:    viewAction(true),
	}
}

func viewFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "render",
			Aliases: []string{"r"},
			Usage:   "Render the body as Markdown",
		},
		&cli.BoolFlag{
			Name:    "plain",
			Aliases: []string{"p"},
			Usage:   "Plain output without color",
		},
		tagFlag(),
	}
}

func viewAction(forceRender bool) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		return runView(a, viewParams{
			ids:    cmd.Args().Slice(),
			render: forceRender || cmd.Bool("render"),
			plain:  cmd.Bool("plain"),
			tags:   cmd.StringSlice("tag"),
		})
	}
}

type viewParams struct {
	ids    []string
	render bool
	plain  bool
	tags   []string
}

// runView prints each requested note. Failures are reported at the end
// so one bad ID does not hide the readable notes; the first failure
// decides the exit status.
func runView(a *app, p viewParams) error {
	if len(p.ids) == 0 {
		return fmt.Errorf("Usage: quill view <id>... [--render|-r] [--plain|-p] [-t <tag>]")
	}
	color := !p.plain && a.styles.Color
	filter := tag.NormalizeAll(p.tags)

	var errs []error
	printed := false
	for _, id := range p.ids {
		n, err := a.store.Load(id)
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				errs = append(errs, fmt.Errorf("Note %s not found", id))
			} else {
				errs = append(errs, err)
			}
			continue
		}
		if !tag.HasAll(n.Tags, filter) {
			errs = append(errs, fmt.Errorf("Note %s does not have required tag(s)", id))
			continue
		}
		if printed {
			fmt.Fprintln(a.stdout)
		}
		printed = true
		a.printNote(n, p.render, color)
	}
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

func (a *app) printNote(n *note.Note, renderBody, color bool) {
	switch {
	case renderBody && color:
		doc := fmt.Sprintf("# %s (%s)\nCreated: %s\nUpdated: %s\n\n%s",
			n.Title, n.ID, n.Created, n.Updated, n.Body)
		fmt.Fprint(a.stdout, render.Markdown(doc, listing.TerminalColumns(), true))
	case color:
		st := a.styles
		fmt.Fprintf(a.stdout, "===== %s (%s) =====\n", viewTitleStyle.Render(n.Title), st.ID.Render(n.ID))
		fmt.Fprintf(a.stdout, "%s %s\n", st.Header.Render("Created:"), st.Timestamp.Render(n.Created))
		fmt.Fprintf(a.stdout, "%s %s\n\n", st.Header.Render("Updated:"), st.Timestamp.Render(n.Updated))
		fmt.Fprint(a.stdout, render.Highlight(n.Body))
	default:
		fmt.Fprintf(a.stdout, "===== %s (%s) =====\nCreated: %s\nUpdated: %s\n\n%s",
			n.Title, n.ID, n.Created, n.Updated, n.Body)
	}
}

func editCmd() *cli.Command {
	return &cli.Command{
		Name:      "edit",
		Usage:     "Open notes in the configured editor",
		ArgsUsage: "[<id>...]",
		Flags:     []cli.Flag{tagFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := setup(cmd)
			if err != nil {
				return err
			}
			return runEdit(a, cmd.Args().Slice(), cmd.StringSlice("tag"))
		},
	}
}

// editTarget is one note about to be opened, with its content digest so
// untouched files keep their Updated stamp.
type editTarget struct {
	id  string
	rel string
	abs string
	sum string
}

func runEdit(a *app, ids, rawTags []string) error {
	filter := tag.NormalizeAll(rawTags)
	if len(ids) == 0 {
		if !picker.Enabled(a.cfg.App.NoPicker) {
			return fmt.Errorf("Usage: quill edit <id>... [-t <tag>]")
		}
		notes, err := a.store.Collect(storage.AreaActive, filter)
		if err != nil {
			return err
		}
		if len(notes) == 0 {
			fmt.Fprintln(a.stdout, "No notes to edit.")
			return nil
		}
		ids, err = picker.Notes("Select notes to edit", notes)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			fmt.Fprintln(a.stdout, "No selection made; nothing opened.")
			return nil
		}
	}

	var targets []editTarget
	for _, id := range ids {
		loc, err := a.store.Vault().Resolve(id)
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				fmt.Fprintf(a.stderr, "Note %s not found\n", id)
				continue
			}
			return err
		}
		data, err := a.store.Vault().Read(loc.Rel)
		if err != nil {
			return err
		}
		if len(filter) > 0 {
			n, perr := note.Parse(id, data, int64(len(data)))
			if perr == nil && !tag.HasAll(n.Tags, filter) {
				fmt.Fprintf(a.stderr, "Note %s does not have required tag(s)\n", id)
				continue
			}
		}
		abs, err := a.store.Vault().Abs(loc.Rel)
		if err != nil {
			return err
		}
		targets = append(targets, editTarget{id: id, rel: loc.Rel, abs: abs, sum: checksum.Sum(data)})
	}
	if len(targets) == 0 {
		return fmt.Errorf("No editable notes matched the criteria")
	}

	paths := make([]string, len(targets))
	for i, t := range targets {
		paths[i] = t.abs
	}
	if err := a.runEditor(paths); err != nil {
		return err
	}

	for _, t := range targets {
		data, err := a.store.Vault().Read(t.rel)
		if err != nil {
			return err
		}
		if checksum.Sum(data) == t.sum {
			// Opened but not changed; keep the Updated stamp.
			continue
		}
		n, err := note.Parse(t.id, data, int64(len(data)))
		if err != nil {
			return err
		}
		if len(filter) > 0 && !tag.HasAll(n.Tags, filter) {
			fmt.Fprintf(a.stderr, "Skipped %s (missing tag filter)\n", t.id)
			continue
		}
		if err := a.store.Save(n); err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "Updated %s\n", t.id)
	}
	return nil
}
