package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Prompter is line-based interaction with the user.
type Prompter interface {
	Confirm(question string) bool
	ReadLine(label string) (string, error)
	Info(msg string)
}

// TerminalPrompter reads answers from a line reader and writes prompts to w.
type TerminalPrompter struct {
	reader *bufio.Reader
	writer io.Writer
}

func NewPrompter(r io.Reader, w io.Writer) *TerminalPrompter {
	return &TerminalPrompter{reader: bufio.NewReader(r), writer: w}
}

// Confirm asks a yes/no question. Anything but an explicit yes declines.
func (p *TerminalPrompter) Confirm(question string) bool {
	fmt.Fprintf(p.writer, "%s (s/n) ", question)
	line, _ := p.reader.ReadString('\n')
	switch strings.TrimSpace(strings.ToLower(line)) {
	case "s", "si", "sí", "y", "yes":
		return true
	default:
		return false
	}
}

// ReadLine prints label and returns the next line without its terminator.
// io.EOF is returned once input is exhausted and nothing was read.
func (p *TerminalPrompter) ReadLine(label string) (string, error) {
	if label != "" {
		fmt.Fprint(p.writer, label)
	}
	line, err := p.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (p *TerminalPrompter) Info(msg string) {
	fmt.Fprintln(p.writer, msg)
}
