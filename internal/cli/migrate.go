package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

func migrateCmd() *cli.Command {
	return &cli.Command{
		Name:      "migrate",
		Usage:     "Import a directory of note files into the vault",
		ArgsUsage: "<dir>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := setup(cmd)
			if err != nil {
				return err
			}
			if cmd.Args().Len() != 1 {
				return fmt.Errorf("Usage: quill migrate <dir>")
			}
			return runMigrate(a, cmd.Args().First())
		},
	}
}

func runMigrate(a *app, srcDir string) error {
	report, err := a.store.Import(srcDir)
	if err != nil {
		return err
	}
	if len(report.Moves) == 0 && report.Skipped == 0 {
		fmt.Fprintln(a.stdout, "No notes to migrate.")
		return nil
	}
	for _, m := range report.Moves {
		if m.OldID == m.NewID {
			continue
		}
		fmt.Fprintf(a.stdout, "Migrated %s -> %s\n", m.OldID, m.NewID)
	}
	fmt.Fprintf(a.stdout, "Imported %d notes into %s", len(report.Moves), report.Batch)
	if report.Skipped > 0 {
		fmt.Fprintf(a.stdout, " (%d skipped)", report.Skipped)
	}
	fmt.Fprintln(a.stdout)
	return nil
}

func migrateIDsCmd() *cli.Command {
	return &cli.Command{
		Name:  "migrate-ids",
		Usage: "Re-key every active note to a freshly minted id",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := setup(cmd)
			if err != nil {
				return err
			}
			return runMigrateIDs(a)
		},
	}
}

func runMigrateIDs(a *app) error {
	moves, err := a.store.Rekey()
	if err != nil {
		return err
	}
	if len(moves) == 0 {
		fmt.Fprintln(a.stdout, "No notes to migrate.")
		return nil
	}
	for _, m := range moves {
		fmt.Fprintf(a.stdout, "Migrated %s -> %s\n", m.OldID, m.NewID)
	}
	return nil
}
