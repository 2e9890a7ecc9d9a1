package lunfardo

import (
	"strconv"

	"github.com/lunfardo-lang/lunfardo/internal/lunerr"
	"github.com/lunfardo-lang/lunfardo/internal/lunlex"
)

// Number is int64 or float64; integer op integer stays integer unless
// division produces a non-integer result.
type Number struct {
	ValueBase
	IsFloat  bool
	IntVal   int64
	FloatVal float64
}

func NewInt(n int64) *Number   { return &Number{IntVal: n} }
func NewFloat(f float64) *Number { return &Number{IsFloat: true, FloatVal: f} }

func (n *Number) TypeName() string { return "numero" }

func (n *Number) f() float64 {
	if n.IsFloat {
		return n.FloatVal
	}
	return float64(n.IntVal)
}

func (n *Number) String() string {
	if n.IsFloat {
		return strconv.FormatFloat(n.FloatVal, 'g', -1, 64)
	}
	return strconv.FormatInt(n.IntVal, 10)
}

func (n *Number) WithPos(start, end lunlex.Position) Value {
	c := *n
	c.PosStart, c.PosEnd = start, end
	return &c
}

func (n *Number) WithContext(ctx *Context) Value {
	c := *n
	c.Context = ctx
	return &c
}

func (n *Number) Copy() Value {
	c := *n
	return &c
}

func (n *Number) IsTrue() bool {
	return n.f() != 0
}

func (n *Number) AddedTo(other Value) (Value, *lunerr.Error) {
	o, ok := other.(*Number)
	if !ok {
		return nil, IllegalOperation(n, other)
	}
	return n.arith(o, func(a, b int64) int64 { return a + b }, func(a, b float64) float64 { return a + b })
}

func (n *Number) SubtractedBy(other Value) (Value, *lunerr.Error) {
	o, ok := other.(*Number)
	if !ok {
		return nil, IllegalOperation(n, other)
	}
	return n.arith(o, func(a, b int64) int64 { return a - b }, func(a, b float64) float64 { return a - b })
}

func (n *Number) MultipliedBy(other Value) (Value, *lunerr.Error) {
	o, ok := other.(*Number)
	if !ok {
		return nil, IllegalOperation(n, other)
	}
	return n.arith(o, func(a, b int64) int64 { return a * b }, func(a, b float64) float64 { return a * b })
}

func (n *Number) DividedBy(other Value) (Value, *lunerr.Error) {
	o, ok := other.(*Number)
	if !ok {
		return nil, IllegalOperation(n, other)
	}
	if o.f() == 0 {
		return nil, lunerr.NewRuntime(lunerr.TagZeroDivision, o.Start(), o.End(), "División por cero", nil)
	}
	if !n.IsFloat && !o.IsFloat && n.IntVal%o.IntVal == 0 {
		return (&Number{IntVal: n.IntVal / o.IntVal}).WithContext(n.Context), nil
	}
	return (&Number{IsFloat: true, FloatVal: n.f() / o.f()}).WithContext(n.Context), nil
}

func (n *Number) PoweredBy(other Value) (Value, *lunerr.Error) {
	o, ok := other.(*Number)
	if !ok {
		return nil, IllegalOperation(n, other)
	}
	if !n.IsFloat && !o.IsFloat && o.IntVal >= 0 {
		result := int64(1)
		for i := int64(0); i < o.IntVal; i++ {
			result *= n.IntVal
		}
		return (&Number{IntVal: result}).WithContext(n.Context), nil
	}
	result := 1.0
	base, exp := n.f(), o.f()
	for i := 0.0; i < exp; i++ {
		result *= base
	}
	return (&Number{IsFloat: true, FloatVal: result}).WithContext(n.Context), nil
}

func (n *Number) arith(o *Number, intOp func(a, b int64) int64, floatOp func(a, b float64) float64) (Value, *lunerr.Error) {
	if !n.IsFloat && !o.IsFloat {
		return (&Number{IntVal: intOp(n.IntVal, o.IntVal)}).WithContext(n.Context), nil
	}
	return (&Number{IsFloat: true, FloatVal: floatOp(n.f(), o.f())}).WithContext(n.Context), nil
}

func (n *Number) ComparisonEQ(other Value) (Value, *lunerr.Error) {
	switch o := other.(type) {
	case *Number:
		return boolFor(n.f() == o.f()).WithContext(n.Context), nil
	case *Boolean:
		return boolFor(n.IsTrue() == o.Value).WithContext(n.Context), nil
	}
	return nil, IllegalOperation(n, other)
}

func (n *Number) ComparisonNE(other Value) (Value, *lunerr.Error) {
	v, err := n.ComparisonEQ(other)
	if err != nil {
		return nil, err
	}
	return negate(v), nil
}

func (n *Number) ComparisonLT(other Value) (Value, *lunerr.Error) {
	o, ok := other.(*Number)
	if !ok {
		return nil, IllegalOperation(n, other)
	}
	return boolFor(n.f() < o.f()).WithContext(n.Context), nil
}

func (n *Number) ComparisonGT(other Value) (Value, *lunerr.Error) {
	o, ok := other.(*Number)
	if !ok {
		return nil, IllegalOperation(n, other)
	}
	return boolFor(n.f() > o.f()).WithContext(n.Context), nil
}

func (n *Number) ComparisonLTE(other Value) (Value, *lunerr.Error) {
	o, ok := other.(*Number)
	if !ok {
		return nil, IllegalOperation(n, other)
	}
	return boolFor(n.f() <= o.f()).WithContext(n.Context), nil
}

func (n *Number) ComparisonGTE(other Value) (Value, *lunerr.Error) {
	o, ok := other.(*Number)
	if !ok {
		return nil, IllegalOperation(n, other)
	}
	return boolFor(n.f() >= o.f()).WithContext(n.Context), nil
}

func (n *Number) AndedBy(other Value) (Value, *lunerr.Error) {
	if !isTruthable(other) {
		return nil, IllegalOperation(n, other)
	}
	return boolFor(n.IsTrue() && other.IsTrue()).WithContext(n.Context), nil
}

func (n *Number) OredBy(other Value) (Value, *lunerr.Error) {
	if !isTruthable(other) {
		return nil, IllegalOperation(n, other)
	}
	return boolFor(n.IsTrue() || other.IsTrue()).WithContext(n.Context), nil
}

func isTruthable(v Value) bool {
	switch v.(type) {
	case *Number, *Boolean, *String, *List, *Dict:
		return true
	default:
		return false
	}
}

func negate(v Value) Value {
	b := v.(*Boolean)
	return boolFor(!b.Value)
}
