// Package prompt implements the small amount of interactivity the CLI
// needs: plain prompts, hidden password input, and yes/no confirmation.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter reads interactive answers from a terminal. Reader and Writer
// default to stdin/stderr; tests substitute buffers.
type Prompter struct {
	Reader io.Reader
	Writer io.Writer
}

func New() *Prompter {
	return &Prompter{Reader: os.Stdin, Writer: os.Stderr}
}

// Ask prints the label and returns one trimmed line of input.
func (p *Prompter) Ask(label string) (string, error) {
	fmt.Fprintf(p.Writer, "%s: ", label)
	line, err := bufio.NewReader(p.Reader).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// AskSecret prints the label and reads input with terminal echo disabled
// when stdin is a terminal, falling back to a plain read otherwise.
func (p *Prompter) AskSecret(label string) (string, error) {
	if f, ok := p.Reader.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprintf(p.Writer, "%s (input is hidden): ", label)
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(p.Writer)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}
	return p.Ask(label)
}

// Confirm asks a yes/no question and returns true only for an explicit yes.
func (p *Prompter) Confirm(question string) (bool, error) {
	fmt.Fprintf(p.Writer, "%s [y/N]: ", question)
	line, err := bufio.NewReader(p.Reader).ReadString('\n')
	if err != nil && line == "" {
		return false, err
	}
	return IsYes(line), nil
}

// IsYes reports whether an answer counts as an explicit yes.
func IsYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}
