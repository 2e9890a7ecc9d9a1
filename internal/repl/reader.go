// Package repl contains the line-reading plumbing behind Lunfardo's
// interactive prompt: a GNU-readline-backed reader for interactive
// terminals and a plain buffered fallback for piped input, adapted from
// the teacher's internal/input package (its DirectCommandReader and
// InteractiveCommandReader, generalized from reading one player command per
// line to reading one Lunfardo statement per line).
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// LineReader reads one line of Lunfardo source at a time, either from a
// plain stream or from an interactive readline session.
type LineReader interface {
	ReadLine() (string, error)
	AllowBlank(bool)
	Close() error
}

// DirectLineReader reads lines from any io.Reader without readline editing,
// used for piped input and whenever --direct is passed.
type DirectLineReader struct {
	r             *bufio.Reader
	blanksAllowed bool
}

// InteractiveLineReader reads lines from stdin through chzyer/readline,
// giving history and line editing when attached to a real terminal.
type InteractiveLineReader struct {
	rl            *readline.Instance
	blanksAllowed bool
	prompt        string
}

// NewDirectLineReader opens a buffered reader over r. The returned
// LineReader must have Close called on it before disposal.
func NewDirectLineReader(r io.Reader) *DirectLineReader {
	return &DirectLineReader{r: bufio.NewReader(r)}
}

// NewInteractiveLineReader starts a readline session with the given prompt.
// The returned LineReader must have Close called on it before disposal.
func NewInteractiveLineReader(prompt string) (*InteractiveLineReader, error) {
	rl, err := readline.NewEx(&readline.Config{Prompt: prompt})
	if err != nil {
		return nil, fmt.Errorf("create readline config: %w", err)
	}
	return &InteractiveLineReader{rl: rl, prompt: prompt}, nil
}

func (dlr *DirectLineReader) Close() error { return nil }

func (ilr *InteractiveLineReader) Close() error { return ilr.rl.Close() }

// ReadLine reads the next line. With blanks disallowed it blocks until a
// line with non-space content arrives; with blanks allowed (the REPL's
// normal mode, since a blank line is meaningful there — it just re-prompts)
// it returns the first line read, blank or not.
//
// At end of input the returned string is empty and err is io.EOF.
func (dlr *DirectLineReader) ReadLine() (string, error) {
	var line string
	var err error

	for {
		line, err = dlr.r.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}
		line = strings.TrimSpace(line)
		if line != "" || dlr.blanksAllowed {
			return line, nil
		}
	}
}

// ReadLine is the readline-backed equivalent of DirectLineReader.ReadLine.
func (ilr *InteractiveLineReader) ReadLine() (string, error) {
	var line string
	var err error

	for {
		line, err = ilr.rl.Readline()
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}
		line = strings.TrimSpace(line)
		if line != "" || ilr.blanksAllowed {
			return line, nil
		}
	}
}

func (dlr *DirectLineReader) AllowBlank(allow bool) { dlr.blanksAllowed = allow }
func (ilr *InteractiveLineReader) AllowBlank(allow bool) { ilr.blanksAllowed = allow }

// SetPrompt updates the prompt shown before the next read.
func (ilr *InteractiveLineReader) SetPrompt(p string) {
	ilr.prompt = p
	ilr.rl.SetPrompt(p)
}
