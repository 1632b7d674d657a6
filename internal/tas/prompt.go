package tas

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// Prompter abstracts interactive terminal input so operations that prompt
// (user creation, default-user selection, note completion) are testable and
// fail cleanly when no terminal is attached.
type Prompter interface {
	// ReadLine prints the label and returns one trimmed line of input.
	ReadLine(label string) (string, error)

	// Confirm prints the label with a [Y/n] suffix. Empty input counts
	// as yes.
	Confirm(label string) (bool, error)

	// ReadID prints the label and parses the input as a numeric id.
	ReadID(label string) (int64, error)
}

// TerminalPrompter reads from stdin and writes prompts to stdout.
// All methods fail with ErrInputRequired when stdin is not a terminal,
// so non-interactive callers must pass values as flags instead.
type TerminalPrompter struct {
	in          *bufio.Reader
	out         io.Writer
	interactive bool
}

// NewTerminalPrompter creates a Prompter bound to the process terminal.
func NewTerminalPrompter() *TerminalPrompter {
	return &TerminalPrompter{
		in:          bufio.NewReader(os.Stdin),
		out:         os.Stdout,
		interactive: term.IsTerminal(int(os.Stdin.Fd())),
	}
}

func (p *TerminalPrompter) ReadLine(label string) (string, error) {
	if !p.interactive {
		return "", fmt.Errorf("reading %q: %w", label, ErrInputRequired)
	}

	fmt.Fprintf(p.out, "%s: ", label)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		// Input channel closed before any input arrived.
		return "", fmt.Errorf("reading %q: %w", label, ErrInputRequired)
	}
	return strings.TrimSpace(line), nil
}

func (p *TerminalPrompter) Confirm(label string) (bool, error) {
	answer, err := p.ReadLine(label + " [Y/n]")
	if err != nil {
		return false, err
	}
	return answer == "" || strings.EqualFold(answer, "y"), nil
}

func (p *TerminalPrompter) ReadID(label string) (int64, error) {
	line, err := p.ReadLine(label)
	if err != nil {
		return 0, err
	}
	return ParseID(line)
}

// ParseID validates a raw id string typed at a prompt or passed as a flag
// value. Non-numeric input is rejected before it can be persisted.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: expected a number", raw)
	}
	return id, nil
}
