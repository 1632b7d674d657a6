package testutil

import (
	"fmt"

	"tas-go/internal/tas"
)

// ScriptedPrompter replays a fixed sequence of answers to prompts.
// Lines feed ReadLine and ReadID, Confirms feed Confirm; running out of
// either fails with tas.ErrInputRequired, mirroring a closed input channel.
type ScriptedPrompter struct {
	Lines    []string
	Confirms []bool

	// Asked records every label prompted for, in order.
	Asked []string
}

func (p *ScriptedPrompter) ReadLine(label string) (string, error) {
	p.Asked = append(p.Asked, label)
	if len(p.Lines) == 0 {
		return "", tas.ErrInputRequired
	}
	line := p.Lines[0]
	p.Lines = p.Lines[1:]
	return line, nil
}

func (p *ScriptedPrompter) Confirm(label string) (bool, error) {
	p.Asked = append(p.Asked, label)
	if len(p.Confirms) == 0 {
		return false, tas.ErrInputRequired
	}
	ok := p.Confirms[0]
	p.Confirms = p.Confirms[1:]
	return ok, nil
}

func (p *ScriptedPrompter) ReadID(label string) (int64, error) {
	line, err := p.ReadLine(label)
	if err != nil {
		return 0, err
	}
	return tas.ParseID(line)
}

// NoPrompter fails every prompt, for exercising non-interactive paths.
type NoPrompter struct{}

func (NoPrompter) ReadLine(label string) (string, error) {
	return "", fmt.Errorf("prompt %q: %w", label, tas.ErrInputRequired)
}

func (NoPrompter) Confirm(label string) (bool, error) {
	return false, fmt.Errorf("prompt %q: %w", label, tas.ErrInputRequired)
}

func (NoPrompter) ReadID(label string) (int64, error) {
	return 0, fmt.Errorf("prompt %q: %w", label, tas.ErrInputRequired)
}

// Compile-time interface checks.
var (
	_ tas.Prompter = (*ScriptedPrompter)(nil)
	_ tas.Prompter = NoPrompter{}
)
