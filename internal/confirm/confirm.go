// Package confirm asks the user whether a pending move should go ahead.
package confirm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
)

// Prompt is the question shown before files are moved.
const Prompt = "Proceed? (Y/n): "

// Confirmer answers a yes/no question.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// Accepts reports whether a typed answer means yes: empty input, "y" or "Y".
func Accepts(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "", "y":
		return true
	default:
		return false
	}
}

// Line reads a single line of input. The prompt is written to Out.
type Line struct {
	In  io.Reader
	Out io.Writer
}

// Confirm implements Confirmer. End of input without an answer declines.
func (l Line) Confirm(prompt string) (bool, error) {
	if l.Out != nil {
		fmt.Fprint(l.Out, prompt)
	}

	reader := bufio.NewReader(l.In)
	input, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if input == "" {
				return false, nil
			}
			return Accepts(input), nil
		}
		return false, fmt.Errorf("failed to read input: %w", err)
	}

	return Accepts(input), nil
}

// Form shows an interactive yes/no selector.
type Form struct{}

// Confirm implements Confirmer. Cancelling the form declines.
func (Form) Confirm(prompt string) (bool, error) {
	proceed := true
	title := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(prompt), "(Y/n):"))

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(&proceed),
		),
	)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, fmt.Errorf("confirmation cancelled: %w", err)
	}

	return proceed, nil
}

// Fixed always gives the same answer.
type Fixed bool

// Confirm implements Confirmer.
func (f Fixed) Confirm(string) (bool, error) {
	return bool(f), nil
}

// For picks a Confirmer for the given streams: the interactive form when in
// is a terminal, a plain line reader otherwise.
func For(in io.Reader, out io.Writer) Confirmer {
	if f, ok := in.(*os.File); ok && isTerminal(f.Fd()) {
		return Form{}
	}
	return Line{In: in, Out: out}
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
