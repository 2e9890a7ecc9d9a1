package lunfardo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Dict_SetGetRoundTrip(t *testing.T) {
	d := NewDict()
	err := d.Set(NewString("a"), NewInt(1))
	if !assert.Nil(t, err) {
		return
	}
	v, err := d.Get(NewString("a"))
	if !assert.Nil(t, err) {
		return
	}
	assert.Equal(t, int64(1), v.(*Number).IntVal)
}

func Test_Dict_MissingKeyReturnsNilNotError(t *testing.T) {
	d := NewDict()
	v, err := d.Get(NewString("absent"))
	if !assert.Nil(t, err) {
		return
	}
	assert.Same(t, NilValue, v)
}

func Test_Dict_OverwriteOnDuplicateKey(t *testing.T) {
	d := NewDict()
	assert.Nil(t, d.Set(NewString("a"), NewInt(1)))
	assert.Nil(t, d.Set(NewString("a"), NewInt(2)))
	v, _ := d.Get(NewString("a"))
	assert.Equal(t, int64(2), v.(*Number).IntVal)
	assert.Equal(t, 1, d.count)
}

func Test_Dict_DeleteThenExistenceCheck(t *testing.T) {
	d := NewDict()
	assert.Nil(t, d.Set(NewString("a"), NewInt(1)))
	assert.Nil(t, d.Delete(NewString("a")))
	v, err := d.Get(NewString("a"))
	if !assert.Nil(t, err) {
		return
	}
	assert.Same(t, NilValue, v)
}

func Test_Dict_DeleteAbsentKeyIsError(t *testing.T) {
	d := NewDict()
	err := d.Delete(NewString("nope"))
	if !assert.NotNil(t, err) {
		return
	}
	assert.Equal(t, "bardo_de_clave", err.Tag)
}

func Test_Dict_ResizeKeepsLoadFactorBounded(t *testing.T) {
	d := NewDict()
	for i := int64(0); i < 100; i++ {
		assert.Nil(t, d.Set(NewInt(i), NewInt(i*2)))
	}
	assert.LessOrEqual(t, float64(d.count)/float64(len(d.buckets)), dictMaxLoadFactor)
	for i := int64(0); i < 100; i++ {
		v, err := d.Get(NewInt(i))
		if !assert.Nil(t, err) {
			return
		}
		assert.Equal(t, i*2, v.(*Number).IntVal)
	}
}

func Test_Dict_ListOrDictKeyRejected(t *testing.T) {
	d := NewDict()
	err := d.Set(NewList(nil), NewInt(1))
	if !assert.NotNil(t, err) {
		return
	}
	assert.Equal(t, "bardo_de_tipo", err.Tag)
}
