// Package lunlib implements the host-side handlers for Lunfardo's
// whitelisted library imports (spec.md §6): `gualichos`, a terminal
// façade, and `lacompu`, an OS façade. Each handler populates a module
// context's environment with Curro (Builtin) values, the signature
// contract spec.md §4.6 describes — the bodies themselves are thin
// wrappers over host I/O, explicitly out of scope for the interpreter core
// per spec.md §1's "out of scope: concrete built-in functions' bodies".
package lunlib

import (
	"fmt"

	"github.com/lunfardo-lang/lunfardo/internal/lunerr"
	"github.com/lunfardo-lang/lunfardo/internal/lunfardo"
	"github.com/lunfardo-lang/lunfardo/internal/lunlex"
)

func init() {
	lunfardo.RegisterLibrary("gualichos", initGualichos)
}

// gualichosScreen stands in for the original's curses window: no curses
// binding appears anywhere in the example pack this was built from, so the
// façade is reduced to the subset expressible over plain ANSI escapes and
// the interpreter's shared input stream, per DESIGN.md's grounding note.
type gualichosScreen struct{}

func (gualichosScreen) clear() {
	fmt.Fprint(lunfardo.Stdout, "\x1b[2J\x1b[H")
}

func (gualichosScreen) addstr(text string) {
	fmt.Fprint(lunfardo.Stdout, text)
}

func (gualichosScreen) getch() (rune, error) {
	return lunfardo.ReadRune()
}

// initGualichos is the LibraryHandler registered for "gualichos", grounded
// on init_gualichos/register_library_handler — one Curro per adapter
// function, bound into the module's own environment.
func initGualichos(moduleCtx *lunfardo.Context, start, end lunlex.Position, callerCtx *lunfardo.Context) *lunerr.Error {
	screen := gualichosScreen{}

	bind := func(name string, params []string, fn lunfardo.BuiltinFunc) {
		moduleCtx.Env.Set(name, lunfardo.NewBuiltin(name, params, fn))
	}

	bind("addstr", []string{"texto"}, func(ctx *lunfardo.Context) (lunfardo.Value, *lunerr.Error) {
		texto, ok := fetch(ctx, "texto").(*lunfardo.String)
		if !ok {
			return nil, typeErr(fetch(ctx, "texto"), "el argumento debe ser de tipo chamuyo")
		}
		screen.addstr(texto.Value)
		return lunfardo.NilValue, nil
	})

	bind("getch", nil, func(ctx *lunfardo.Context) (lunfardo.Value, *lunerr.Error) {
		r, err := screen.getch()
		if err != nil {
			return lunfardo.NilValue, nil
		}
		return lunfardo.NewInt(int64(r)), nil
	})

	bind("clear", nil, func(ctx *lunfardo.Context) (lunfardo.Value, *lunerr.Error) {
		screen.clear()
		return lunfardo.NilValue, nil
	})

	bind("quit", nil, func(ctx *lunfardo.Context) (lunfardo.Value, *lunerr.Error) {
		return lunfardo.NilValue, nil
	})

	return nil
}

func fetch(ctx *lunfardo.Context, name string) lunfardo.Value {
	v, ok := ctx.Env.Get(name)
	if !ok {
		return lunfardo.NilValue
	}
	return v
}

func typeErr(v lunfardo.Value, details string) *lunerr.Error {
	return lunerr.NewRuntime(lunerr.TagInvalidType, v.Start(), v.End(), details, nil)
}
