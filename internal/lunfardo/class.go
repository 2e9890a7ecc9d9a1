package lunfardo

import (
	"fmt"

	"github.com/lunfardo-lang/lunfardo/internal/lunlex"
)

// Class is Lunfardo's Cheto: a name, its own method table, an optional
// parent to inherit from, and the context it was defined in (methods close
// over this context, same as any Function).
type Class struct {
	ValueBase
	Name       string
	Methods    map[string]*Function
	Parent     *Class
	DefContext *Context
}

func NewClass(name string, methods map[string]*Function, parent *Class, defContext *Context) *Class {
	return &Class{Name: name, Methods: methods, Parent: parent, DefContext: defContext}
}

func (c *Class) TypeName() string { return "cheto" }
func (c *Class) String() string   { return fmt.Sprintf("<cheto %s>", c.Name) }

func (c *Class) WithPos(start, end lunlex.Position) Value {
	cp := *c
	cp.PosStart, cp.PosEnd = start, end
	return &cp
}

func (c *Class) WithContext(ctx *Context) Value {
	cp := *c
	cp.Context = ctx
	return &cp
}

func (c *Class) Copy() Value {
	cp := *c
	return &cp
}

func (c *Class) IsTrue() bool { return true }

// GetMethod looks up name in this class's own method table, falling back to
// the parent chain, mirroring Cheto.get_method generalized across
// inheritance.
func (c *Class) GetMethod(name string) (*Function, bool) {
	if m, ok := c.Methods[name]; ok {
		return m, true
	}
	if c.Parent != nil {
		return c.Parent.GetMethod(name)
	}
	return nil, false
}

// CreateInstance builds a new Instance of this class: if a parent class
// exists, its instance is built first (with the same constructor args) and
// its instance vars are shallow-copied in, then this class's own arranque
// constructor runs if one is defined. Resolved per the Class/Instance split
// DESIGN.md records for spec.md's inheritance contract.
func (c *Class) CreateInstance(args []Value, callerContext *Context) *Result {
	res := NewResult()

	vars := make(map[string]Value)
	if c.Parent != nil {
		parentValue := res.Register(c.Parent.CreateInstance(args, callerContext))
		if res.ShouldPropagate() {
			return res
		}
		parentInstance, ok := parentValue.(*Instance)
		if ok {
			for k, v := range parentInstance.Vars {
				vars[k] = v
			}
		}
	}

	instance := &Instance{Class: c, Vars: vars}
	instance.PosStart, instance.PosEnd = c.PosStart, c.PosEnd
	instance.Context = NewContext(c.Name, callerContext, c.PosStart)
	instance.Context.Env = NewEnvironment(c.DefContext.Env)

	if ctor, ok := c.Methods["arranque"]; ok {
		ctorArgs := append([]Value{instance}, args...)
		res.Register(ctor.Execute(ctorArgs, callerContext))
		if res.ShouldPropagate() {
			return res
		}
	}

	return res.Success(instance)
}
