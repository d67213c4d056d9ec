package cli

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/starford/quill/internal/listing"
	"github.com/starford/quill/internal/noteid"
	"github.com/starford/quill/internal/storage"
	"github.com/starford/quill/internal/tag"
)

func tagsCmd() *cli.Command {
	return &cli.Command{
		Name:  "tags",
		Usage: "Show tag usage with first and last activity",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "search",
				Aliases: []string{"s"},
				Usage:   "Keep tags whose name contains this text",
			},
			&cli.BoolFlag{
				Name:    "relative",
				Aliases: []string{"r"},
				Usage:   "Show relative times",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := setup(cmd)
			if err != nil {
				return err
			}
			return runTags(a, cmd.String("search"), cmd.Bool("relative"))
		},
	}
}

// tagStat aggregates one tag's usage over the active notes. Timestamps
// stay in header form; Compare orders them.
type tagStat struct {
	count int
	first string
	last  string
}

func runTags(a *app, query string, relative bool) error {
	notes, err := a.store.Collect(storage.AreaActive, nil)
	if err != nil {
		return err
	}

	stats := make(map[tag.Tag]*tagStat)
	for _, n := range notes {
		for _, t := range n.Tags {
			st := stats[t]
			if st == nil {
				st = &tagStat{}
				stats[t] = st
			}
			st.count++
			if _, ok := noteid.ParseTime(n.Created); ok {
				if st.first == "" || noteid.Compare(n.Created, st.first) < 0 {
					st.first = n.Created
				}
			}
			if _, ok := noteid.ParseTime(n.Updated); ok {
				if st.last == "" || noteid.Compare(n.Updated, st.last) > 0 {
					st.last = n.Updated
				}
			}
		}
	}
	// Pinned tags always appear, zero-count when unused.
	for _, t := range a.store.Pinned() {
		if _, ok := stats[t]; !ok {
			stats[t] = &tagStat{}
		}
	}

	names := make([]tag.Tag, 0, len(stats))
	for t := range stats {
		if query != "" && !strings.Contains(strings.ToLower(string(t)), strings.ToLower(query)) {
			continue
		}
		names = append(names, t)
	}
	if len(names) == 0 {
		fmt.Fprintln(a.stdout, "No tags found.")
		return nil
	}

	// Most recently touched first, then busiest, then name.
	slices.SortFunc(names, func(x, y tag.Tag) int {
		sx, sy := stats[x], stats[y]
		if c := noteid.Compare(sy.last, sx.last); c != 0 {
			return c
		}
		if sx.count != sy.count {
			return sy.count - sx.count
		}
		return strings.Compare(string(x), string(y))
	})

	now := time.Now()
	st := a.styles
	headers := []string{
		st.Header.Render("Tag"),
		st.Header.Render("Count"),
		st.Header.Render(listing.TimeLabel("First", relative, now)),
		st.Header.Render(listing.TimeLabel("Last", relative, now)),
	}
	rows := make([][]string, 0, len(names))
	for _, t := range names {
		s := stats[t]
		first, last := "n/a", "n/a"
		if s.first != "" {
			first = listing.FormatTimestamp(s.first, relative, now)
		}
		if s.last != "" {
			last = listing.FormatTimestamp(s.last, relative, now)
		}
		if s.count == 0 {
			// Unused pinned tags render muted all the way across.
			rows = append(rows, []string{
				st.ID.Render(string(t)),
				st.ID.Render("0"),
				st.ID.Render(first),
				st.ID.Render(last),
			})
			continue
		}
		firstCell := st.Timestamp.Render(first)
		if first == "n/a" {
			firstCell = st.ID.Render(first)
		}
		lastCell := st.Timestamp.Render(last)
		if last == "n/a" {
			lastCell = st.ID.Render(last)
		}
		rows = append(rows, []string{
			st.TagText(t),
			strconv.Itoa(s.count),
			firstCell,
			lastCell,
		})
	}

	table := listing.RenderTable(headers, rows)
	return a.paginate(strings.Split(table, "\n"))
}

func statsCmd() *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Show note counts per area",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := setup(cmd)
			if err != nil {
				return err
			}
			return runStats(a)
		},
	}
}

func runStats(a *app) error {
	st, err := a.store.Stat()
	if err != nil {
		return err
	}
	table := listing.RenderTable(
		[]string{"Area", "Count"},
		[][]string{
			{"Active", strconv.Itoa(st.Active)},
			{"Migrated", strconv.Itoa(st.Migrated)},
			{"Trash", strconv.Itoa(st.Trash)},
			{"Archive", strconv.Itoa(st.Archive)},
		},
	)
	fmt.Fprintln(a.stdout, table)
	return nil
}

func pathCmd() *cli.Command {
	return &cli.Command{
		Name:  "path",
		Usage: "Print the vault directory",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := setup(cmd)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.stdout, a.store.Vault().Root())
			return nil
		},
	}
}
