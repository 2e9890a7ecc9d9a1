package lunfardo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lunfardo-lang/lunfardo/internal/lunast"
	"github.com/lunfardo-lang/lunfardo/internal/lunlex"
)

func paramTok(name string) lunlex.Token {
	return lunlex.NewToken(lunlex.Identifier, name, lunlex.Position{}, lunlex.Position{})
}

func Test_Function_TooFewArgsIsError(t *testing.T) {
	ctx := NewGlobalEnvironment()
	params := []lunast.Param{{Name: paramTok("a")}, {Name: paramTok("b")}}
	fn := NewFunction("f", params, []Value{nil, nil}, &lunast.StatementsNode{}, true, false, ctx)

	res := fn.Execute([]Value{NewInt(1)}, ctx)
	if !assert.NotNil(t, res.Err) {
		return
	}
	assert.Equal(t, "bardo_de_valor", res.Err.Tag)
	assert.Contains(t, res.Err.Details, "1")
	assert.Contains(t, res.Err.Details, "2")
}

func Test_Function_TooManyArgsIsError(t *testing.T) {
	ctx := NewGlobalEnvironment()
	params := []lunast.Param{{Name: paramTok("a")}}
	fn := NewFunction("f", params, []Value{nil}, &lunast.StatementsNode{}, true, false, ctx)

	res := fn.Execute([]Value{NewInt(1), NewInt(2)}, ctx)
	if !assert.NotNil(t, res.Err) {
		return
	}
	assert.Equal(t, "bardo_de_valor", res.Err.Tag)
}

func Test_Function_DefaultFillsMissingArg(t *testing.T) {
	ctx := NewGlobalEnvironment()
	params := []lunast.Param{{Name: paramTok("a")}, {Name: paramTok("b")}}
	fn := NewFunction("f", params, []Value{nil, NewInt(7)},
		&lunast.VarAccessNode{Name: paramTok("b")}, true, false, ctx)

	res := fn.Execute([]Value{NewInt(1)}, ctx)
	if !assert.Nil(t, res.Err) {
		return
	}
	assert.Equal(t, int64(7), res.Value.(*Number).IntVal)
}
