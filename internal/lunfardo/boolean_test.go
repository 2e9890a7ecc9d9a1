package lunfardo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Boolean_Singletons(t *testing.T) {
	eq, err := Posta.ComparisonEQ(Posta)
	if !assert.Nil(t, err) {
		return
	}
	assert.True(t, eq.IsTrue())

	ne, err := Posta.ComparisonNE(Trucho)
	if !assert.Nil(t, err) {
		return
	}
	assert.True(t, ne.IsTrue())

	assert.Same(t, Posta, boolFor(true))
	assert.Same(t, Trucho, boolFor(false))
}

func Test_Boolean_Notted(t *testing.T) {
	v, err := Posta.Notted()
	if !assert.Nil(t, err) {
		return
	}
	assert.False(t, v.IsTrue())

	v, err = Trucho.Notted()
	if !assert.Nil(t, err) {
		return
	}
	assert.True(t, v.IsTrue())
}

func Test_Boolean_Strings(t *testing.T) {
	assert.Equal(t, "posta", Posta.String())
	assert.Equal(t, "trucho", Trucho.String())
}
