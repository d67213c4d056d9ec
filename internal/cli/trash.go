package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/starford/quill/internal/apperr"
	"github.com/starford/quill/internal/picker"
	"github.com/starford/quill/internal/storage"
	"github.com/starford/quill/internal/tag"
)

func pickFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:  "pick",
		Usage: "Choose notes interactively",
	}
}

func deleteCmd() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Move notes to trash",
		ArgsUsage: "[<id>...]",
		Flags:     []cli.Flag{pickFlag(), tagFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := setup(cmd)
			if err != nil {
				return err
			}
			return runDelete(a, cmd.Args().Slice(), cmd.StringSlice("tag"), cmd.Bool("pick"))
		},
	}
}

func runDelete(a *app, ids, rawTags []string, pick bool) error {
	filter := tag.NormalizeAll(rawTags)
	a.sweepTrash()

	if len(ids) == 0 {
		if !pick && !picker.Enabled(a.cfg.App.NoPicker) {
			return fmt.Errorf("Provide ids or use --pick for interactive delete")
		}
		notes, err := a.store.Collect(storage.AreaActive, filter)
		if err != nil {
			return err
		}
		if len(notes) == 0 {
			fmt.Fprintln(a.stdout, "No notes to delete.")
			return nil
		}
		ids, err = picker.Notes("Select notes to delete", notes)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			fmt.Fprintln(a.stdout, "No selection made; nothing deleted.")
			return nil
		}
	}

	deleted := 0
	for _, id := range ids {
		n, err := a.store.Load(id)
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				fmt.Fprintf(a.stdout, "Note %s not found\n", id)
				continue
			}
			return err
		}
		if !tag.HasAll(n.Tags, filter) {
			fmt.Fprintf(a.stdout, "Skipped %s (missing tag filter)\n", id)
			continue
		}
		if _, err := a.store.Relocate(id, storage.AreaActive, storage.AreaTrash); err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "Moved %s to trash\n", id)
		deleted++
	}
	if deleted == 0 {
		fmt.Fprintln(a.stdout, "No notes deleted.")
	}
	return nil
}

func deleteAllCmd() *cli.Command {
	return &cli.Command{
		Name:  "delete-all",
		Usage: "Move every active note to trash",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := setup(cmd)
			if err != nil {
				return err
			}
			return runDeleteAll(a)
		},
	}
}

func runDeleteAll(a *app) error {
	a.sweepTrash()
	notes, err := a.store.Collect(storage.AreaActive, nil)
	if err != nil {
		return err
	}
	if len(notes) == 0 {
		fmt.Fprintln(a.stdout, "No notes to delete.")
		return nil
	}
	for _, n := range notes {
		if _, err := a.store.Relocate(n.ID, storage.AreaActive, storage.AreaTrash); err != nil {
			return err
		}
	}
	fmt.Fprintln(a.stdout, "Moved all notes to trash.")
	return nil
}

func archiveCmd() *cli.Command {
	return &cli.Command{
		Name:      "archive",
		Usage:     "Move notes to the archive",
		ArgsUsage: "[<id>...]",
		Flags:     []cli.Flag{pickFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := setup(cmd)
			if err != nil {
				return err
			}
			return runArchive(a, cmd.Args().Slice(), cmd.Bool("pick"))
		},
	}
}

func runArchive(a *app, ids []string, pick bool) error {
	if len(ids) == 0 {
		if !pick && !picker.Enabled(a.cfg.App.NoPicker) {
			return fmt.Errorf("Provide ids or use --pick for interactive archive")
		}
		notes, err := a.store.Collect(storage.AreaActive, nil)
		if err != nil {
			return err
		}
		if len(notes) == 0 {
			fmt.Fprintln(a.stdout, "No notes to archive.")
			return nil
		}
		ids, err = picker.Notes("Select notes to archive", notes)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			fmt.Fprintln(a.stdout, "No selection made; nothing archived.")
			return nil
		}
	}

	moved := 0
	for _, id := range ids {
		finalID, err := a.store.Relocate(id, storage.AreaActive, storage.AreaArchive)
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				fmt.Fprintf(a.stdout, "Note %s not found\n", id)
				continue
			}
			return err
		}
		fmt.Fprintf(a.stdout, "Archived %s\n", finalID)
		moved++
	}
	if moved == 0 {
		fmt.Fprintln(a.stdout, "No notes archived.")
	}
	return nil
}

func undeleteCmd() *cli.Command {
	return &cli.Command{
		Name:      "undelete",
		Usage:     "Restore notes from trash",
		ArgsUsage: "<id>...",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := setup(cmd)
			if err != nil {
				return err
			}
			return runUndelete(a, cmd.Args().Slice())
		},
	}
}

func runUndelete(a *app, ids []string) error {
	if len(ids) == 0 {
		return fmt.Errorf("Usage: quill undelete <id>...")
	}
	a.sweepTrash()
	restored := 0
	for _, id := range ids {
		finalID, err := a.store.Relocate(id, storage.AreaTrash, storage.AreaActive)
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				fmt.Fprintf(a.stderr, "Note %s not found\n", id)
				continue
			}
			return err
		}
		fmt.Fprintf(a.stdout, "Restored %s\n", finalID)
		restored++
	}
	if restored == 0 {
		fmt.Fprintln(a.stdout, "No notes restored.")
	}
	return nil
}

func unarchiveCmd() *cli.Command {
	return &cli.Command{
		Name:      "unarchive",
		Usage:     "Move notes back out of the archive",
		ArgsUsage: "<id>...",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := setup(cmd)
			if err != nil {
				return err
			}
			return runUnarchive(a, cmd.Args().Slice())
		},
	}
}

func runUnarchive(a *app, ids []string) error {
	if len(ids) == 0 {
		return fmt.Errorf("Usage: quill unarchive <id>...")
	}
	restored := 0
	for _, id := range ids {
		finalID, err := a.store.Relocate(id, storage.AreaArchive, storage.AreaActive)
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				fmt.Fprintf(a.stderr, "Note %s not found\n", id)
				continue
			}
			return err
		}
		fmt.Fprintf(a.stdout, "Unarchived %s\n", finalID)
		restored++
	}
	if restored == 0 {
		fmt.Fprintln(a.stdout, "No notes unarchived.")
	}
	return nil
}
