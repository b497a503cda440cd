// Package prompt reads interactive answers from a line-oriented input stream.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Confirmer answers yes/no questions.
type Confirmer interface {
	Confirm(question string) (bool, error)
}

// Fixed is a Confirmer that always gives the same answer without reading
// input. It backs the --yes and --no-install flags.
type Fixed bool

// Confirm returns the fixed answer.
func (f Fixed) Confirm(string) (bool, error) {
	return bool(f), nil
}

// ReaderConfirmer asks questions on out and reads one line per answer from in.
type ReaderConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

// NewReaderConfirmer returns a Confirmer over in. The reader is shared with
// ReadLine so buffered input is not lost between prompts.
func NewReaderConfirmer(in *bufio.Reader, out io.Writer) *ReaderConfirmer {
	return &ReaderConfirmer{in: in, out: out}
}

// Confirm prints question with a (Y/n) hint and reads a single line.
// An empty answer counts as yes.
func (c *ReaderConfirmer) Confirm(question string) (bool, error) {
	fmt.Fprintf(c.out, "%s (Y/n)\n", question)
	answer, err := ReadLine(c.in)
	if err != nil {
		return false, err
	}
	return IsYes(answer), nil
}

// IsYes reports whether answer is affirmative: "", "y" or "yes", ignoring
// case and surrounding whitespace.
func IsYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "", "y", "yes":
		return true
	default:
		return false
	}
}

// ReadLine reads one line from in and trims surrounding whitespace. End of
// input is not an error; whatever was read before it is returned.
func ReadLine(in *bufio.Reader) (string, error) {
	line, err := in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
