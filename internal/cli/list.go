package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/starford/quill/internal/listing"
	"github.com/starford/quill/internal/storage"
	"github.com/starford/quill/internal/tag"
)

func listCmd() *cli.Command {
	return &cli.Command{
		Name:   "list",
		Usage:  "List active notes",
		Flags:  listFlags(),
		Action: listAction(storage.AreaActive),
	}
}

func listDeletedCmd() *cli.Command {
	return &cli.Command{
		Name:   "list-deleted",
		Usage:  "List notes in trash",
		Flags:  listFlags(),
		Action: listAction(storage.AreaTrash),
	}
}

func listArchivedCmd() *cli.Command {
	return &cli.Command{
		Name:   "list-archived",
		Usage:  "List archived notes",
		Flags:  listFlags(),
		Action: listAction(storage.AreaArchive),
	}
}

func listFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "sort",
			Usage: "Sort field: created|updated|size",
			Value: listing.SortUpdated,
		},
		&cli.BoolFlag{
			Name:  "asc",
			Usage: "Sort ascending",
		},
		&cli.BoolFlag{
			Name:  "desc",
			Usage: "Sort descending (the default)",
		},
		&cli.StringFlag{
			Name:    "search",
			Aliases: []string{"s"},
			Usage:   "Keep notes whose title or body contains this text",
		},
		&cli.BoolFlag{
			Name:    "relative",
			Aliases: []string{"r"},
			Usage:   "Show relative times",
		},
		tagFlag(),
	}
}

func listAction(area storage.Area) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		return runList(a, listParams{
			area:      area,
			sort:      cmd.String("sort"),
			ascending: cmd.Bool("asc") && !cmd.Bool("desc"),
			query:     cmd.String("search"),
			relative:  cmd.Bool("relative"),
			tags:      cmd.StringSlice("tag"),
		})
	}
}

type listParams struct {
	area      storage.Area
	sort      string
	ascending bool
	query     string
	relative  bool
	tags      []string
}

func runList(a *app, p listParams) error {
	if p.area == storage.AreaTrash {
		a.sweepTrash()
	}
	notes, err := a.store.Collect(p.area, tag.NormalizeAll(p.tags))
	if err != nil {
		return err
	}
	if p.query != "" {
		kept := notes[:0]
		for _, n := range notes {
			if n.Matches(p.query) {
				kept = append(kept, n)
			}
		}
		notes = kept
	}
	listing.Sort(notes, p.sort, p.ascending)

	if len(notes) == 0 {
		switch p.area {
		case storage.AreaTrash:
			fmt.Fprintln(a.stdout, "No deleted notes.")
		case storage.AreaArchive:
			fmt.Fprintln(a.stdout, "No archived notes.")
		default:
			fmt.Fprintln(a.stdout, "No notes yet. Try `quill new \"title\"`.")
		}
		return nil
	}

	lines := listing.Render(notes, listing.Options{
		Area:     p.area,
		Relative: p.relative,
		Query:    p.query,
		Now:      time.Now(),
		Width:    listing.TerminalColumns(),
		Styles:   a.styles,
	})
	return a.paginate(lines)
}
