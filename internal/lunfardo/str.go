package lunfardo

import (
	"strings"

	"github.com/lunfardo-lang/lunfardo/internal/lunerr"
	"github.com/lunfardo-lang/lunfardo/internal/lunlex"
)

// String is Lunfardo's Chamuyo: + concatenates, * repeats, == / != compare
// against another String or a Number's truthiness-adjacent value.
type String struct {
	ValueBase
	Value string
}

func NewString(s string) *String { return &String{Value: s} }

func (s *String) TypeName() string { return "chamuyo" }
func (s *String) String() string   { return s.Value }

func (s *String) WithPos(start, end lunlex.Position) Value {
	c := *s
	c.PosStart, c.PosEnd = start, end
	return &c
}

func (s *String) WithContext(ctx *Context) Value {
	c := *s
	c.Context = ctx
	return &c
}

func (s *String) Copy() Value {
	c := *s
	return &c
}

func (s *String) IsTrue() bool { return len(s.Value) > 0 }

func (s *String) AddedTo(other Value) (Value, *lunerr.Error) {
	o, ok := other.(*String)
	if !ok {
		return nil, IllegalOperation(s, other)
	}
	return NewString(s.Value + o.Value).WithContext(s.Context), nil
}

func (s *String) MultipliedBy(other Value) (Value, *lunerr.Error) {
	n, ok := other.(*Number)
	if !ok || n.IsFloat || n.IntVal < 0 {
		return nil, IllegalOperation(s, other)
	}
	return NewString(strings.Repeat(s.Value, int(n.IntVal))).WithContext(s.Context), nil
}

func (s *String) ComparisonEQ(other Value) (Value, *lunerr.Error) {
	switch o := other.(type) {
	case *String:
		return boolFor(s.Value == o.Value).WithContext(s.Context), nil
	case *Number:
		return boolFor(false), nil
	}
	return nil, IllegalOperation(s, other)
}

func (s *String) ComparisonNE(other Value) (Value, *lunerr.Error) {
	v, err := s.ComparisonEQ(other)
	if err != nil {
		return nil, err
	}
	return negate(v), nil
}
