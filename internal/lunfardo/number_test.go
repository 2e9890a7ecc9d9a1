package lunfardo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Number_IntArithmeticStaysInteger(t *testing.T) {
	v, err := NewInt(2).AddedTo(NewInt(3))
	if !assert.Nil(t, err) {
		return
	}
	n := v.(*Number)
	assert.False(t, n.IsFloat)
	assert.Equal(t, int64(5), n.IntVal)
}

func Test_Number_DivisionPromotesToFloatWhenNotExact(t *testing.T) {
	v, err := NewInt(7).DividedBy(NewInt(2))
	if !assert.Nil(t, err) {
		return
	}
	n := v.(*Number)
	assert.True(t, n.IsFloat)
	assert.Equal(t, 3.5, n.FloatVal)
}

func Test_Number_ExactDivisionStaysInteger(t *testing.T) {
	v, err := NewInt(6).DividedBy(NewInt(3))
	if !assert.Nil(t, err) {
		return
	}
	n := v.(*Number)
	assert.False(t, n.IsFloat)
	assert.Equal(t, int64(2), n.IntVal)
}

func Test_Number_DivisionByZero(t *testing.T) {
	_, err := NewInt(1).DividedBy(NewInt(0))
	if !assert.NotNil(t, err) {
		return
	}
	assert.Equal(t, "division_por_cero", err.Tag)
}

func Test_Number_ComparisonOperators(t *testing.T) {
	v, err := NewInt(3).ComparisonLT(NewInt(5))
	assert.Nil(t, err)
	assert.True(t, v.IsTrue())

	v, err = NewInt(5).ComparisonGTE(NewInt(5))
	assert.Nil(t, err)
	assert.True(t, v.IsTrue())
}

func Test_Number_CopyPreservesEquality(t *testing.T) {
	n := NewInt(42)
	cp := n.Copy().(*Number)
	eq, err := n.ComparisonEQ(cp)
	if !assert.Nil(t, err) {
		return
	}
	assert.True(t, eq.IsTrue())
}

func Test_Number_IllegalOperationAgainstNonNumber(t *testing.T) {
	_, err := NewInt(1).AddedTo(NewString("x"))
	if !assert.NotNil(t, err) {
		return
	}
	assert.Equal(t, "bardo_de_tipo", err.Tag)
}
