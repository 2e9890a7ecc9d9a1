package lunfardo

import (
	"github.com/lunfardo-lang/lunfardo/internal/lunerr"
	"github.com/lunfardo-lang/lunfardo/internal/lunlex"
)

// Boolean is a singleton type: every true value is the same *Boolean, every
// false value is the same *Boolean, so equality-by-identity holds wherever
// callers compare singletons directly.
type Boolean struct {
	ValueBase
	Value bool
}

var (
	Posta  = &Boolean{Value: true}
	Trucho = &Boolean{Value: false}
)

func boolFor(b bool) *Boolean {
	if b {
		return Posta
	}
	return Trucho
}

func (b *Boolean) TypeName() string { return "boloodean" }

func (b *Boolean) String() string {
	if b.Value {
		return "posta"
	}
	return "trucho"
}

func (b *Boolean) WithPos(start, end lunlex.Position) Value {
	c := *b
	c.PosStart, c.PosEnd = start, end
	return &c
}

func (b *Boolean) WithContext(ctx *Context) Value {
	c := *b
	c.Context = ctx
	return &c
}

func (b *Boolean) Copy() Value {
	c := *b
	return &c
}

func (b *Boolean) IsTrue() bool { return b.Value }

func (b *Boolean) ComparisonEQ(other Value) (Value, *lunerr.Error) {
	if !isTruthable(other) {
		return nil, IllegalOperation(b, other)
	}
	return boolFor(b.Value == other.IsTrue()).WithContext(b.Context), nil
}

func (b *Boolean) ComparisonNE(other Value) (Value, *lunerr.Error) {
	if !isTruthable(other) {
		return nil, IllegalOperation(b, other)
	}
	return boolFor(b.Value != other.IsTrue()).WithContext(b.Context), nil
}

func (b *Boolean) Notted() (Value, *lunerr.Error) {
	return boolFor(!b.Value).WithContext(b.Context), nil
}

func (b *Boolean) AndedBy(other Value) (Value, *lunerr.Error) {
	if !isTruthable(other) {
		return nil, IllegalOperation(b, other)
	}
	return boolFor(b.Value && other.IsTrue()).WithContext(b.Context), nil
}

func (b *Boolean) OredBy(other Value) (Value, *lunerr.Error) {
	if !isTruthable(other) {
		return nil, IllegalOperation(b, other)
	}
	return boolFor(b.Value || other.IsTrue()).WithContext(b.Context), nil
}
