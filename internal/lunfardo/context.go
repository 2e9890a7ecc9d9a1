package lunfardo

import "github.com/lunfardo-lang/lunfardo/internal/lunlex"

// Context is an execution frame: display name (used in tracebacks), parent
// frame, the position this frame was entered at, cwd/file (inherited down
// the chain when unset locally), its owned Environment, and a registry of
// imported modules.
type Context struct {
	DisplayName    string
	Parent         *Context
	ParentEntryPos lunlex.Position
	CWD            string
	File           string
	Env            *Environment
	modules        map[string]*Instance

	// importing tracks module names currently mid-load on this chain, so a
	// cyclic "importar" fails fast instead of looping or reusing a
	// half-populated module context.
	importing map[string]bool
}

func NewContext(displayName string, parent *Context, entryPos lunlex.Position) *Context {
	return &Context{
		DisplayName:    displayName,
		Parent:         parent,
		ParentEntryPos: entryPos,
		modules:        make(map[string]*Instance),
		importing:      make(map[string]bool),
	}
}

func (c *Context) GetCWD() string {
	if c.CWD != "" {
		return c.CWD
	}
	if c.Parent != nil {
		return c.Parent.GetCWD()
	}
	return ""
}

func (c *Context) GetFile() string {
	if c.File != "" {
		return c.File
	}
	if c.Parent != nil {
		return c.Parent.GetFile()
	}
	return ""
}

// AddModule registers an imported module under name on this context.
func (c *Context) AddModule(name string, module *Instance) {
	c.modules[name] = module
}

// GetModule finds a registered module by name, current context first then
// walking up the parent chain.
func (c *Context) GetModule(name string) (*Instance, bool) {
	if m, ok := c.modules[name]; ok {
		return m, true
	}
	if c.Parent != nil {
		return c.Parent.GetModule(name)
	}
	return nil, false
}

// IsImporting reports whether name is already mid-load anywhere on this
// context chain, used to detect import cycles.
func (c *Context) IsImporting(name string) bool {
	if c.importing[name] {
		return true
	}
	if c.Parent != nil {
		return c.Parent.IsImporting(name)
	}
	return false
}

func (c *Context) BeginImport(name string) {
	c.importing[name] = true
}

func (c *Context) EndImport(name string) {
	delete(c.importing, name)
}

// LookupAcrossModules resolves a free variable that isn't bound in the
// local environment chain by scanning every module registered on the
// nearest context that owns any, per spec.md's free-variable fallback
// supporting "m.fn" style resolution once m has been imported.
func (c *Context) LookupAcrossModules(name string) (Value, bool) {
	for ctx := c; ctx != nil; ctx = ctx.Parent {
		if len(ctx.modules) == 0 {
			continue
		}
		for _, mod := range ctx.modules {
			if v, ok := mod.Vars[name]; ok {
				return v, true
			}
		}
	}
	return nil, false
}
