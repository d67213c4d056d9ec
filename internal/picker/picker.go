// Package picker provides the interactive multi-select used when a
// command that operates on note IDs is run without any.
package picker

import (
	"errors"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"golang.org/x/term"

	"github.com/starford/quill/internal/listing"
	"github.com/starford/quill/internal/note"
)

const pageSize = 15

// Enabled reports whether an interactive picker can run: picking must
// not be disabled and stdin must be a terminal.
func Enabled(noPicker bool) bool {
	if noPicker {
		return false
	}
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// Notes prompts for a multi-selection over the given notes and returns
// the chosen IDs. Cancelling the prompt is an empty selection, not an
// error.
func Notes(message string, notes []*note.Note) ([]string, error) {
	if len(notes) == 0 {
		return nil, nil
	}
	options := make([]string, len(notes))
	for i, n := range notes {
		options[i] = optionLine(n)
	}
	var picked []string
	prompt := &survey.MultiSelect{
		Message:  message,
		Options:  options,
		PageSize: pageSize,
	}
	if err := survey.AskOne(prompt, &picked); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return nil, nil
		}
		return nil, err
	}
	ids := make([]string, len(picked))
	for i, p := range picked {
		ids[i] = idFromOption(p)
	}
	return ids, nil
}

// optionLine is the "id  preview" form shown per note. IDs never
// contain spaces, so the double-space separator is unambiguous.
func optionLine(n *note.Note) string {
	return n.ID + "  " + listing.Preview(n)
}

func idFromOption(line string) string {
	id, _, _ := strings.Cut(line, "  ")
	return id
}
