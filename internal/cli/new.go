package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/starford/quill/internal/apperr"
	"github.com/starford/quill/internal/noteid"
)

func newCmd() *cli.Command {
	return &cli.Command{
		Name:      "new",
		Usage:     "Create a note",
		ArgsUsage: "<title> [body...]",
		Flags:     []cli.Flag{tagFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := setup(cmd)
			if err != nil {
				return err
			}
			args := cmd.Args().Slice()
			if len(args) == 0 {
				return fmt.Errorf("Usage: quill new <title> [body]")
			}
			return runNew(a, args[0], strings.Join(args[1:], " "), cmd.StringSlice("tag"))
		},
	}
}

func runNew(a *app, title, body string, tags []string) error {
	n, err := a.store.Create(title, body, tags)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Created note %s (%s)\n", n.ID, n.Title)
	return nil
}

func addCmd() *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Append text to an existing note",
		ArgsUsage: "<id> <text...>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := setup(cmd)
			if err != nil {
				return err
			}
			args := cmd.Args().Slice()
			if len(args) < 2 {
				return fmt.Errorf(`Usage: quill add <id> "text to append"`)
			}
			return runAdd(a, args[0], strings.Join(args[1:], " "))
		},
	}
}

func runAdd(a *app, id, text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("Provide text to append")
	}
	if _, err := a.store.Append(id, text); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return fmt.Errorf("Note %s not found", id)
		}
		return err
	}
	fmt.Fprintf(a.stdout, "Appended to %s\n", id)
	return nil
}

func seedCmd() *cli.Command {
	return &cli.Command{
		Name:      "seed",
		Usage:     "Generate bulk test notes",
		ArgsUsage: "<count>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "chars",
				Usage: "Body length in bytes for generated notes",
				Value: 400,
			},
			tagFlag(),
			&cli.BoolFlag{
				Name:  "markdown",
				Usage: "Generate Markdown feature bodies instead of plain text",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := setup(cmd)
			if err != nil {
				return err
			}
			if cmd.Args().Len() == 0 {
				return fmt.Errorf("Usage: quill seed <count> [--chars N] [-t <tag> ...] [--markdown]")
			}
			count, err := strconv.Atoi(cmd.Args().First())
			if err != nil {
				return fmt.Errorf("Count must be a number")
			}
			return runSeed(a, count, int(cmd.Int("chars")), cmd.StringSlice("tag"), cmd.Bool("markdown"))
		},
	}
}

func runSeed(a *app, count, chars int, tags []string, markdown bool) error {
	for i := 0; i < count; i++ {
		title := "Seed note " + noteid.Mint(time.Now())
		body := seedBody(chars, i)
		if markdown {
			body = seedMarkdown(i)
		}
		n, err := a.store.Create(title, body, tags)
		if err != nil {
			return err
		}
		if (i+1)%50 == 0 || i+1 == count {
			fmt.Fprintf(a.stdout, "Generated %d/%d (last id %s)\n", i+1, count, n.ID)
		}
	}
	return nil
}

// seedBody builds filler text of the requested byte length. Each chunk
// carries seed markers so searches can target a single generated note.
func seedBody(length, seed int) string {
	const base = "Lorem ipsum dolor sit amet, consectetur adipiscing elit. Proin " +
		"aliquet, mauris nec facilisis rhoncus, nisl justo viverra dui, vitae placerat " +
		"metus erat sit amet nunc. "
	var b strings.Builder
	for n := 0; b.Len() < length; n++ {
		b.WriteString(base)
		fmt.Fprintf(&b, "Seed chunk %d idx %d. ", seed, n)
	}
	out := b.String()
	if len(out) > length {
		out = out[:length]
	}
	return out + "\n"
}

// seedMarkdown builds a body exercising the common Markdown features,
// for eyeballing the renderer.
func seedMarkdown(seed int) string {
	return fmt.Sprintf("# Heading %d\n\n"+
		"## Subheading\n\n"+
		"- bullet one\n- bullet two\n- bullet three\n\n"+
		"1. ordered one\n2. ordered two\n\n"+
		"**bold text** and _italic text_ with `inline code`.\n\n"+
		"```go\nfunc example%d() { fmt.Println(\"hello\") }\n```\n\n"+
		"> Blockquote example %d\n\n"+
		"---\n\n"+
		"Link: [example](https://example.com)\n\n"+
		"| Feature | Value |\n"+
		"|---------|-------|\n"+
		"| Seed    | %d |\n"+
		"| Type    | Markdown |\n",
		seed, seed, seed, seed)
}
