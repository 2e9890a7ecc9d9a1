package lunfardo

import (
	"github.com/lunfardo-lang/lunfardo/internal/lunerr"
	"github.com/lunfardo-lang/lunfardo/internal/lunlex"
)

// Nil is a singleton: there is exactly one Nada value, shared everywhere
// the language needs "no value" — missing dict lookups, a function with no
// explicit return, an unassigned declaration.
type Nada struct {
	ValueBase
}

var NilValue = &Nada{}

func (n *Nada) TypeName() string { return "nada" }
func (n *Nada) String() string   { return "nada" }

func (n *Nada) WithPos(start, end lunlex.Position) Value {
	c := *n
	c.PosStart, c.PosEnd = start, end
	return &c
}

func (n *Nada) WithContext(ctx *Context) Value {
	c := *n
	c.Context = ctx
	return &c
}

func (n *Nada) Copy() Value {
	c := *n
	return &c
}

func (n *Nada) IsTrue() bool { return false }

func (n *Nada) ComparisonEQ(other Value) (Value, *lunerr.Error) {
	_, isNil := other.(*Nada)
	return boolFor(isNil).WithContext(n.Context), nil
}

func (n *Nada) ComparisonNE(other Value) (Value, *lunerr.Error) {
	_, isNil := other.(*Nada)
	return boolFor(!isNil).WithContext(n.Context), nil
}
