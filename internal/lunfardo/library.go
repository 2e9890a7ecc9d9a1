package lunfardo

import (
	"fmt"
	"path/filepath"

	"github.com/lunfardo-lang/lunfardo/internal/lunerr"
	"github.com/lunfardo-lang/lunfardo/internal/lunlex"
)

// LibraryHandler populates moduleCtx's environment with Builtin values for
// one whitelisted library name, per spec.md §4.6's "fn(module_context,
// import_node, caller_context) → Result" contract, generalized from
// register_library_handler/get_library_handler.
type LibraryHandler func(moduleCtx *Context, start, end lunlex.Position, callerCtx *Context) *lunerr.Error

var libraryHandlers = map[string]LibraryHandler{}

// allowedLibraries, when non-nil, restricts getLibraryHandler to this set —
// populated from an optional .lunfardorc.toml's `libraries` list via
// RestrictLibraries. nil (the default) leaves the full registry available.
var allowedLibraries map[string]bool

// RegisterLibrary adds a handler for an importable library name. This is
// the open extension point spec.md §6 calls out — internal/lunlib's init()
// functions are its only callers in this repository, but any host package
// may add more.
func RegisterLibrary(name string, handler LibraryHandler) {
	libraryHandlers[name] = handler
}

// RestrictLibraries narrows `importar`'s library resolution to names, on
// top of whatever is registered via RegisterLibrary. A nil or empty names
// lifts any existing restriction. Intended for .lunfardorc.toml's
// `libraries` list (internal/lunconfig).
func RestrictLibraries(names []string) {
	if len(names) == 0 {
		allowedLibraries = nil
		return
	}
	allowedLibraries = make(map[string]bool, len(names))
	for _, n := range names {
		allowedLibraries[n] = true
	}
}

func getLibraryHandler(name string) (LibraryHandler, bool) {
	if allowedLibraries != nil && !allowedLibraries[name] {
		return nil, false
	}
	h, ok := libraryHandlers[name]
	return h, ok
}

// moduleClass gives an imported module's Instance wrapper a TypeName/GetMethod
// home without inventing a second value variant — modules are held as
// *Instance per Context.modules, so they need *some* Class, one with no
// methods and no parent.
func moduleClass(name string) *Class {
	return NewClass(name, map[string]*Function{}, nil, nil)
}

// wrapModule snapshots moduleCtx's top-level bindings into the Instance that
// Context.modules stores, so `m.fn`-style access and the free-variable
// module fallback (Context.LookupAcrossModules) both just read Instance.Vars.
func wrapModule(name string, moduleCtx *Context) *Instance {
	inst := NewInstance(moduleClass(name))
	inst.Vars = moduleCtx.Env.Symbols()
	inst.Context = moduleCtx
	return inst
}

func rootContext(ctx *Context) *Context {
	for ctx.Parent != nil {
		ctx = ctx.Parent
	}
	return ctx
}

// ImportModule resolves `importar <name>` per spec.md §4.6:
//
//  1. If name is a registered library, a fresh module context is built and
//     handed to the library's handler, then topped up by a same-named
//     `.lunf` companion script if one is found.
//  2. Otherwise name is treated as a script: `<name>.lunf` is resolved via
//     ejecutar's search rules and evaluated in a context parenting the
//     importing chain's global environment.
//
// Either way the result is wrapped as a module Instance for the caller to
// register under name.
func ImportModule(name string, start, end lunlex.Position, callerCtx *Context) (*Instance, *lunerr.Error) {
	if handler, ok := getLibraryHandler(name); ok {
		moduleCtx := NewContext(name, callerCtx, start)
		moduleCtx.Env = NewEnvironment(nil)

		if err := handler(moduleCtx, start, end, callerCtx); err != nil {
			return nil, err
		}

		if path, found := findCompanionScript(name, callerCtx); found {
			if _, err := runScriptInContext(path, moduleCtx); err != nil {
				return nil, err
			}
		}

		return wrapModule(name, moduleCtx), nil
	}

	path, found := resolveScriptPath(name+".lunf", callerCtx)
	if !found {
		return nil, lunerr.NewRuntime(lunerr.TagFileNotFound, start, end,
			fmt.Sprintf("no encuentro ese fichero, percanta: módulo '%s' no existe", name), nil)
	}

	globalCtx := rootContext(callerCtx)
	moduleCtx := NewContext(name, callerCtx, start)
	moduleCtx.Env = NewEnvironment(globalCtx.Env)
	moduleCtx.CWD = filepath.Dir(path)
	moduleCtx.File = path

	if _, err := runScriptInContext(path, moduleCtx); err != nil {
		return nil, err
	}

	return wrapModule(name, moduleCtx), nil
}
