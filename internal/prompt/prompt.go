// Package prompt reads interactive answers from the terminal.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// ErrNoSelection is returned when the user skips a selection prompt
var ErrNoSelection = errors.New("no selection made")

// Option is one choice of a selection prompt
type Option struct {
	ID    string
	Label string
}

// Prompter asks questions on Out and reads answers from In
type Prompter struct {
	In  *bufio.Reader
	Out io.Writer
	// ReadSecret reads a line without echo
	ReadSecret func() ([]byte, error)
}

// NewTerminal returns a prompter bound to stdin and stderr
func NewTerminal() *Prompter {
	return &Prompter{
		In:  bufio.NewReader(os.Stdin),
		Out: os.Stderr,
		ReadSecret: func() ([]byte, error) {
			return term.ReadPassword(int(os.Stdin.Fd()))
		},
	}
}

// New returns a prompter reading from in. Secrets are read as plain lines.
func New(in io.Reader, out io.Writer) *Prompter {
	p := &Prompter{In: bufio.NewReader(in), Out: out}
	p.ReadSecret = func() ([]byte, error) {
		line, err := p.readLine()
		return []byte(line), err
	}
	return p
}

func (p *Prompter) readLine() (string, error) {
	line, err := p.In.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Input asks for a line of text, returning def when the answer is empty
func (p *Prompter) Input(question, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.Out, "%s [%s]: ", question, def)
	} else {
		fmt.Fprintf(p.Out, "%s: ", question)
	}

	answer, err := p.readLine()
	if err != nil {
		return "", err
	}
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// Secret asks for a value without echoing it
func (p *Prompter) Secret(question string) (string, error) {
	fmt.Fprintf(p.Out, "%s: ", question)
	secret, err := p.ReadSecret()
	fmt.Fprintln(p.Out)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(secret)), nil
}

// Confirm asks a yes/no question. Anything but y or yes is a no.
func (p *Prompter) Confirm(question string) (bool, error) {
	fmt.Fprintf(p.Out, "%s (y/N): ", question)
	answer, err := p.readLine()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, err
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes", nil
}

// Select lists options and returns the one picked by number.
// A single option is selected without asking.
func (p *Prompter) Select(title string, options []Option) (Option, error) {
	switch len(options) {
	case 0:
		return Option{}, ErrNoSelection
	case 1:
		return options[0], nil
	}

	cyan := color.New(color.FgCyan).SprintFunc()
	fmt.Fprintf(p.Out, "\n%s\n", title)
	for i, opt := range options {
		fmt.Fprintf(p.Out, "  %d. %s (%s)\n", i+1, opt.Label, cyan(opt.ID))
	}
	fmt.Fprintf(p.Out, "\nSelect (1-%d): ", len(options))

	input, err := p.readLine()
	if err != nil {
		return Option{}, fmt.Errorf("failed to read selection: %w", err)
	}
	if input == "" {
		return Option{}, ErrNoSelection
	}

	n, err := strconv.Atoi(input)
	if err != nil || n < 1 || n > len(options) {
		return Option{}, fmt.Errorf("invalid selection '%s'", input)
	}
	return options[n-1], nil
}
