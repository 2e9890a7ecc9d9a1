package lunfardo

import (
	"strings"

	"github.com/lunfardo-lang/lunfardo/internal/lunerr"
	"github.com/lunfardo-lang/lunfardo/internal/lunlex"
)

// List is Lunfardo's Coso: an ordered, reference-shared sequence. + extends
// (returning a new list), * replicates, - removes by index or by matching
// element, / indexes.
type List struct {
	ValueBase
	Elements []Value
}

func NewList(elements []Value) *List { return &List{Elements: elements} }

func (l *List) TypeName() string { return "coso" }

func (l *List) String() string {
	parts := make([]string, len(l.Elements))
	for i, e := range l.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (l *List) WithPos(start, end lunlex.Position) Value {
	c := *l
	c.PosStart, c.PosEnd = start, end
	return &c
}

func (l *List) WithContext(ctx *Context) Value {
	c := *l
	c.Context = ctx
	return &c
}

func (l *List) Copy() Value {
	elems := make([]Value, len(l.Elements))
	copy(elems, l.Elements)
	c := *l
	c.Elements = elems
	return &c
}

func (l *List) IsTrue() bool { return len(l.Elements) > 0 }

func (l *List) AddedTo(other Value) (Value, *lunerr.Error) {
	o, ok := other.(*List)
	if !ok {
		return nil, IllegalOperation(l, other)
	}
	out := l.Copy().(*List)
	out.Elements = append(out.Elements, o.Elements...)
	return out, nil
}

func (l *List) MultipliedBy(other Value) (Value, *lunerr.Error) {
	n, ok := other.(*Number)
	if !ok || n.IsFloat || n.IntVal < 0 {
		return nil, IllegalOperation(l, other)
	}
	var elems []Value
	for i := int64(0); i < n.IntVal; i++ {
		elems = append(elems, l.Elements...)
	}
	return NewList(elems).WithContext(l.Context), nil
}

func (l *List) SubtractedBy(other Value) (Value, *lunerr.Error) {
	switch o := other.(type) {
	case *Number:
		idx, ok := resolveIndex(len(l.Elements), o)
		if !ok {
			return nil, lunerr.NewRuntime(lunerr.TagInvalidIndex, o.Start(), o.End(),
				"Elemento con ese índice no pudo ser removido del coso porque el índice está fuera de los límites.", nil)
		}
		out := l.Copy().(*List)
		out.Elements = append(out.Elements[:idx], out.Elements[idx+1:]...)
		return out, nil

	case *List:
		out := l.Copy().(*List)
		for _, target := range o.Elements {
			for i, el := range out.Elements {
				if valuesEqual(el, target) {
					out.Elements = append(out.Elements[:i], out.Elements[i+1:]...)
					break
				}
			}
		}
		return out, nil
	}
	return nil, IllegalOperation(l, other)
}

func (l *List) DividedBy(other Value) (Value, *lunerr.Error) {
	n, ok := other.(*Number)
	if !ok || n.IsFloat {
		return nil, lunerr.NewRuntime(lunerr.TagInvalidType, other.Start(), other.End(),
			"Elemento con ese índice no pudo ser devuelto del coso porque el índice no es un número entero.", nil)
	}
	idx, ok := resolveIndex(len(l.Elements), n)
	if !ok {
		return nil, lunerr.NewRuntime(lunerr.TagInvalidIndex, n.Start(), n.End(),
			"Elemento con ese índice no pudo ser devuelto del coso porque el índice está fuera de los límites.", nil)
	}
	return l.Elements[idx], nil
}

func resolveIndex(length int, n *Number) (int, bool) {
	if n.IsFloat {
		return 0, false
	}
	idx := int(n.IntVal)
	if idx < 0 {
		idx += length
	}
	if idx < 0 || idx >= length {
		return 0, false
	}
	return idx, true
}

// valuesEqual reports whether a and b compare equal via the language's own
// ComparisonEQ, used by list subtraction-by-element-match.
func valuesEqual(a, b Value) bool {
	cmp, ok := a.(eqComparer)
	if !ok {
		return false
	}
	result, err := cmp.ComparisonEQ(b)
	if err != nil {
		return false
	}
	return result.IsTrue()
}
