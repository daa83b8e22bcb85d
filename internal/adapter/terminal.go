package adapter

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Terminal defines the interactive prompts used by the CLI
//
//go:generate mockgen -source=terminal.go -destination=../mocks/terminal.go -package=mocks -mock_names=Terminal=MockTerminal
type Terminal interface {
	// Confirm asks a yes/no question; anything other than y/yes is a no
	Confirm(prompt string) (bool, error)

	// ReadSecret reads a line without echo
	ReadSecret(prompt string) (string, error)
}

// RealTerminal reads from stdin and writes prompts to stderr
type RealTerminal struct {
	in  *os.File
	out io.Writer
	rd  *bufio.Reader
}

// NewTerminal creates a terminal bound to stdin/stderr
func NewTerminal() Terminal {
	return &RealTerminal{in: os.Stdin, out: os.Stderr, rd: bufio.NewReader(os.Stdin)}
}

func (t *RealTerminal) Confirm(prompt string) (bool, error) {
	if _, err := fmt.Fprintf(t.out, "%s [y/N]: ", prompt); err != nil {
		return false, err
	}
	line, err := t.rd.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

func (t *RealTerminal) ReadSecret(prompt string) (string, error) {
	fd := int(t.in.Fd()) //nolint:gosec
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("stdin is not a terminal")
	}
	if _, err := fmt.Fprint(t.out, prompt); err != nil {
		return "", err
	}
	raw, err := term.ReadPassword(fd)
	_, _ = fmt.Fprintln(t.out)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(raw)), nil
}
