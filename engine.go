// Package lunfardo ties together the lexer, parser, and evaluator behind a
// small session API: run a single source string, run a file, or drive an
// interactive REPL — the same three entry points the teacher's Engine gave
// a text-adventure CLI, generalized from "advance the game one command" to
// "evaluate one line of script."
package lunfardo

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/lunfardo-lang/lunfardo/internal/lunfardo"
	"github.com/lunfardo-lang/lunfardo/internal/repl"
)

// Prompt is the REPL's prompt text, per spec.md §6.
const Prompt = "Lunfardo > "

// Engine owns the global environment and the I/O streams a Lunfardo session
// runs against.
type Engine struct {
	ctx         *lunfardo.Context
	in          repl.LineReader
	out         *bufio.Writer
	forceDirect bool
	running     bool
}

// New creates an Engine ready to run scripts against the given streams. A
// nil inputStream defaults to os.Stdin, a nil outputStream to os.Stdout.
// forceDirectInput disables readline-based editing even when attached to a
// real terminal, mirroring the teacher's -d/--direct flag.
func New(inputStream io.Reader, outputStream io.Writer, forceDirectInput bool) (*Engine, error) {
	if inputStream == nil {
		inputStream = os.Stdin
	}
	if outputStream == nil {
		outputStream = os.Stdout
	}

	eng := &Engine{
		ctx:         lunfardo.NewGlobalEnvironment(),
		out:         bufio.NewWriter(outputStream),
		forceDirect: forceDirectInput,
	}

	useReadline := !forceDirectInput && inputStream == os.Stdin && outputStream == os.Stdout
	if useReadline {
		ilr, err := repl.NewInteractiveLineReader(Prompt)
		if err != nil {
			return nil, fmt.Errorf("initializing interactive-mode input reader: %w", err)
		}
		eng.in = ilr
	} else {
		eng.in = repl.NewDirectLineReader(inputStream)
	}

	return eng, nil
}

// Close tears down any readline resources the Engine opened.
func (eng *Engine) Close() error {
	if eng.running {
		return fmt.Errorf("cannot close a running engine")
	}
	if err := eng.in.Close(); err != nil {
		return fmt.Errorf("close input reader: %w", err)
	}
	return nil
}

// RunFile lexes, parses, and evaluates the named .lunf file against the
// Engine's global environment, writing the formatted error (if any) to the
// Engine's output stream.
func (eng *Engine) RunFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}

	_, luErr, _ := lunfardo.RunSource(path, string(data), eng.ctx)
	if luErr != nil {
		eng.writeLine(luErr.AsString())
	}
	return nil
}

// RunCommands evaluates each of cmds in turn against the Engine's global
// environment, as a single session, matching cmd/tqi's -c/--command flag.
func (eng *Engine) RunCommands(cmds []string) error {
	for _, cmd := range cmds {
		eng.evalAndPrint("<command>", cmd)
	}
	return nil
}

// RunREPL drives the interactive loop: read one line, blank lines re-prompt,
// otherwise evaluate and print the result, per spec.md §6's REPL contract.
// It runs until end of input (Ctrl-D) or the renuncio builtin exits the
// process outright.
func (eng *Engine) RunREPL() error {
	eng.running = true
	defer func() { eng.running = false }()

	for {
		eng.in.AllowBlank(true)
		line, err := eng.in.ReadLine()
		eng.in.AllowBlank(false)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read line: %w", err)
		}
		if line == "" {
			continue
		}

		eng.evalAndPrint("<stdin>", line)
	}
}

// evalAndPrint runs one line of source and prints either the formatted
// error or the printable form of its result, unwrapping a single-element
// top-level list per spec.md §6.
func (eng *Engine) evalAndPrint(filename, source string) {
	value, luErr, eofOnly := lunfardo.RunSource(filename, source, eng.ctx)
	if luErr != nil {
		eng.writeLine(luErr.AsString())
		return
	}
	if eofOnly || value == nil {
		return
	}

	if list, ok := value.(*lunfardo.List); ok && len(list.Elements) == 1 {
		value = list.Elements[0]
	}
	eng.writeLine(value.String())
}

func (eng *Engine) writeLine(s string) {
	eng.out.WriteString(s)
	eng.out.WriteString("\n")
	eng.out.Flush()
}
