package lunfardo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func vals(ns ...int64) []Value {
	out := make([]Value, len(ns))
	for i, n := range ns {
		out[i] = NewInt(n)
	}
	return out
}

func Test_List_AddedToConcatenates(t *testing.T) {
	a := NewList(vals(1, 2))
	b := NewList(vals(3))
	v, err := a.AddedTo(b)
	if !assert.Nil(t, err) {
		return
	}
	out := v.(*List)
	assert.Len(t, out.Elements, 3)
	assert.Len(t, a.Elements, 2, "original list must not be mutated")
}

func Test_List_MultipliedByReplicatesLength(t *testing.T) {
	l := NewList(vals(1, 2, 3))
	v, err := l.MultipliedBy(NewInt(3))
	if !assert.Nil(t, err) {
		return
	}
	assert.Len(t, v.(*List).Elements, 9)
}

func Test_List_MultipliedByZero(t *testing.T) {
	l := NewList(vals(1, 2, 3))
	v, err := l.MultipliedBy(NewInt(0))
	if !assert.Nil(t, err) {
		return
	}
	assert.Len(t, v.(*List).Elements, 0)
}

func Test_List_DividedByIndexesElement(t *testing.T) {
	l := NewList(vals(10, 20, 30))
	v, err := l.DividedBy(NewInt(1))
	if !assert.Nil(t, err) {
		return
	}
	assert.Equal(t, int64(20), v.(*Number).IntVal)
}

func Test_List_DividedByOutOfRangeIsIndexError(t *testing.T) {
	l := NewList(vals(1))
	_, err := l.DividedBy(NewInt(5))
	if !assert.NotNil(t, err) {
		return
	}
	assert.Equal(t, "bardo_de_indice", err.Tag)
}

func Test_List_SubtractedByNumberRemovesAtIndex(t *testing.T) {
	l := NewList(vals(1, 2, 3))
	v, err := l.SubtractedBy(NewInt(1))
	if !assert.Nil(t, err) {
		return
	}
	out := v.(*List)
	assert.Len(t, out.Elements, 2)
	assert.Equal(t, int64(1), out.Elements[0].(*Number).IntVal)
	assert.Equal(t, int64(3), out.Elements[1].(*Number).IntVal)
}

func Test_List_SubtractedByListRemovesFirstOccurrenceEach(t *testing.T) {
	l := NewList(vals(1, 2, 2, 3))
	v, err := l.SubtractedBy(NewList(vals(2)))
	if !assert.Nil(t, err) {
		return
	}
	out := v.(*List)
	assert.Len(t, out.Elements, 3)
}

func Test_List_CopyIsIndependent(t *testing.T) {
	l := NewList(vals(1, 2))
	cp := l.Copy().(*List)
	cp.Elements[0] = NewInt(99)
	assert.Equal(t, int64(1), l.Elements[0].(*Number).IntVal)
}

func Test_List_Truthiness(t *testing.T) {
	assert.False(t, NewList(nil).IsTrue())
	assert.True(t, NewList(vals(1)).IsTrue())
}
