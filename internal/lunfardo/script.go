package lunfardo

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lunfardo-lang/lunfardo/internal/lunerr"
	"github.com/lunfardo-lang/lunfardo/internal/lunimport"
	"github.com/lunfardo-lang/lunfardo/internal/lunlex"
	"github.com/lunfardo-lang/lunfardo/internal/lunparse"
)

// ExamplesDir is the conventional fallback directory `ejecutar` and script
// imports search when a requested filename isn't found relative to the
// caller's current working directory, per spec.md §4.6. It is a package
// variable (not a constant) so cmd/lunfardo's --config flag can point it at
// a different directory without this package knowing about CLI concerns.
var ExamplesDir = "examples"

// resolveScriptPath tries filename relative to ctx's cwd, then relative to
// ExamplesDir, then as given (covering an absolute path or one relative to
// the process's own working directory).
func resolveScriptPath(filename string, ctx *Context) (string, bool) {
	var candidates []string
	if cwd := ctx.GetCWD(); cwd != "" {
		candidates = append(candidates, filepath.Join(cwd, filename))
	}
	candidates = append(candidates, filepath.Join(ExamplesDir, filename))
	candidates = append(candidates, filename)

	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c, true
		}
	}
	return "", false
}

// findCompanionScript looks for a `<moduleName>.lunf` file alongside a
// builtin library's host-populated bindings, per spec.md §4.6's "if a
// companion .lunf source file exists" clause. Absence is not an error.
func findCompanionScript(moduleName string, ctx *Context) (string, bool) {
	return resolveScriptPath(moduleName+".lunf", ctx)
}

// runScriptInContext lexes, parses, and evaluates the file at path entirely
// within ctx — the reentrancy point `ejecutar` and the import mechanism both
// funnel through, matching run.execute being invoked recursively from
// exec_ejecutar in the source this generalizes.
func runScriptInContext(path string, ctx *Context) (Value, *lunerr.Error) {
	data, ioErr := os.ReadFile(path)
	if ioErr != nil {
		return nil, lunerr.New(lunerr.TagFileNotFound, lunlex.Position{}, lunlex.Position{},
			fmt.Sprintf("no pudimos abrir el archivo '%s': %s", path, ioErr.Error()))
	}

	tokens, cached := lunimport.Load(path, data, path)
	if !cached {
		var lexErr *lunlex.LexError
		tokens, lexErr = lunlex.Scan(path, string(data))
		if lexErr != nil {
			return nil, lunerr.FromLex(lexErr)
		}
		_ = lunimport.Store(path, data, tokens)
	}

	parsed := lunparse.Parse(tokens)
	if parsed.Err != nil {
		return nil, parsed.Err
	}
	if parsed.EOFOnly {
		return NilValue, nil
	}

	res := Eval(parsed.Node, ctx)
	if res.Err != nil {
		return nil, res.Err
	}
	if res.Value == nil {
		return NilValue, nil
	}
	return res.Value, nil
}

// RunSource is the top-level entry the CLI and REPL use: lex, parse, and
// evaluate source text inside a fresh top-level statement evaluation within
// globalCtx (the interpreter's pre-populated global environment).
func RunSource(filename, source string, globalCtx *Context) (Value, *lunerr.Error, bool) {
	tokens, lexErr := lunlex.Scan(filename, source)
	if lexErr != nil {
		return nil, lunerr.FromLex(lexErr), false
	}

	parsed := lunparse.Parse(tokens)
	if parsed.Err != nil {
		return nil, parsed.Err, false
	}
	if parsed.EOFOnly {
		return nil, nil, true
	}

	res := Eval(parsed.Node, globalCtx)
	return res.Value, res.Err, false
}
