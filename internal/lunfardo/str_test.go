package lunfardo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_String_AddedToConcatenates(t *testing.T) {
	v, err := NewString("hola ").AddedTo(NewString("mundo"))
	if !assert.Nil(t, err) {
		return
	}
	assert.Equal(t, "hola mundo", v.(*String).Value)
}

func Test_String_MultipliedByRepeats(t *testing.T) {
	v, err := NewString("ab").MultipliedBy(NewInt(3))
	if !assert.Nil(t, err) {
		return
	}
	assert.Equal(t, "ababab", v.(*String).Value)
}

func Test_String_ComparisonEQ(t *testing.T) {
	v, err := NewString("x").ComparisonEQ(NewString("x"))
	if !assert.Nil(t, err) {
		return
	}
	assert.True(t, v.IsTrue())

	v, err = NewString("x").ComparisonEQ(NewString("y"))
	if !assert.Nil(t, err) {
		return
	}
	assert.False(t, v.IsTrue())
}

func Test_String_EmptyLiteralHasEmptyValue(t *testing.T) {
	s := NewString("")
	assert.Equal(t, "", s.Value)
	assert.False(t, s.IsTrue())
}

func Test_String_IllegalOperationAgainstList(t *testing.T) {
	_, err := NewString("x").AddedTo(NewList(nil))
	if !assert.NotNil(t, err) {
		return
	}
	assert.Equal(t, "bardo_de_tipo", err.Tag)
}
