// Package lunfardo implements Lunfardo's runtime: value domain, scope
// chain, execution context, control-flow result carrier, and the
// AST-walking evaluator.
package lunfardo

import (
	"github.com/lunfardo-lang/lunfardo/internal/lunerr"
	"github.com/lunfardo-lang/lunfardo/internal/lunlex"
)

// Value is implemented by every runtime value variant: Number, String,
// Boolean, Nil, List, Dict, Function, Builtin, Class, Instance. Arithmetic,
// comparison, and logical operations are NOT part of this interface — a
// type implements only the optional operation interfaces below that it
// actually supports, and the evaluator falls back to an illegal-operation
// error when a type assertion misses.
type Value interface {
	Start() lunlex.Position
	End() lunlex.Position
	Ctx() *Context
	WithPos(start, end lunlex.Position) Value
	WithContext(ctx *Context) Value
	IsTrue() bool
	Copy() Value
	TypeName() string
	String() string
}

// ValueBase carries the position span and context reference shared by every
// value, mirroring Value.set_pos/set_context in the source this is
// generalized from.
type ValueBase struct {
	PosStart lunlex.Position
	PosEnd   lunlex.Position
	Context  *Context
}

func (v ValueBase) Start() lunlex.Position { return v.PosStart }
func (v ValueBase) End() lunlex.Position   { return v.PosEnd }
func (v ValueBase) Ctx() *Context          { return v.Context }

// Optional per-operation interfaces. A value type implements exactly the
// ones its semantics call for; eval.go type-asserts against these and
// reports IllegalOperation when a value doesn't implement the one an
// operator needs.
type adder interface {
	AddedTo(other Value) (Value, *lunerr.Error)
}
type subtractor interface {
	SubtractedBy(other Value) (Value, *lunerr.Error)
}
type multiplier interface {
	MultipliedBy(other Value) (Value, *lunerr.Error)
}
type divider interface {
	DividedBy(other Value) (Value, *lunerr.Error)
}
type power interface {
	PoweredBy(other Value) (Value, *lunerr.Error)
}
type eqComparer interface {
	ComparisonEQ(other Value) (Value, *lunerr.Error)
}
type neComparer interface {
	ComparisonNE(other Value) (Value, *lunerr.Error)
}
type ltComparer interface {
	ComparisonLT(other Value) (Value, *lunerr.Error)
}
type gtComparer interface {
	ComparisonGT(other Value) (Value, *lunerr.Error)
}
type lteComparer interface {
	ComparisonLTE(other Value) (Value, *lunerr.Error)
}
type gteComparer interface {
	ComparisonGTE(other Value) (Value, *lunerr.Error)
}
type ander interface {
	AndedBy(other Value) (Value, *lunerr.Error)
}
type orer interface {
	OredBy(other Value) (Value, *lunerr.Error)
}
type notter interface {
	Notted() (Value, *lunerr.Error)
}
type caller interface {
	Execute(args []Value, callCtx *Context) *Result
}

// IllegalOperation builds the generic runtime error every operation
// interface miss falls back to, spanning from self's start to other's end
// (or self's own end when other is nil, e.g. for unary `notted`).
func IllegalOperation(self, other Value) *lunerr.Error {
	end := self.End()
	if other != nil {
		end = other.End()
	}
	return lunerr.NewRuntime(lunerr.TagInvalidType, self.Start(), end, "Operación ilegal", nil)
}
