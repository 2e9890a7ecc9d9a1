package lunfardo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Environment_GetWalksParentChain(t *testing.T) {
	parent := NewEnvironment(nil)
	parent.Set("x", NewInt(1))
	child := NewEnvironment(parent)

	v, ok := child.Get("x")
	if !assert.True(t, ok) {
		return
	}
	assert.Equal(t, int64(1), v.(*Number).IntVal)
}

func Test_Environment_SetShadowsInCurrentScopeOnly(t *testing.T) {
	parent := NewEnvironment(nil)
	parent.Set("x", NewInt(1))
	child := NewEnvironment(parent)
	child.Set("x", NewInt(2))

	childVal, _ := child.Get("x")
	parentVal, _ := parent.Get("x")
	assert.Equal(t, int64(2), childVal.(*Number).IntVal)
	assert.Equal(t, int64(1), parentVal.(*Number).IntVal)
}

func Test_Environment_ReassignUpdatesInOwningScope(t *testing.T) {
	parent := NewEnvironment(nil)
	parent.Set("x", NewInt(1))
	child := NewEnvironment(parent)

	ok := child.Reassign("x", NewInt(9))
	assert.True(t, ok)

	v, _ := parent.Get("x")
	assert.Equal(t, int64(9), v.(*Number).IntVal)
}

func Test_Environment_ReassignUndefinedFails(t *testing.T) {
	env := NewEnvironment(nil)
	ok := env.Reassign("nope", NewInt(1))
	assert.False(t, ok)
}

func Test_Environment_GetMissingReturnsFalse(t *testing.T) {
	env := NewEnvironment(nil)
	_, ok := env.Get("missing")
	assert.False(t, ok)
}

func Test_Environment_Remove(t *testing.T) {
	env := NewEnvironment(nil)
	env.Set("x", NewInt(1))
	env.Remove("x")
	_, ok := env.Get("x")
	assert.False(t, ok)
}
