package lunfardo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, source string) (Value, *Context) {
	t.Helper()
	ctx := NewGlobalEnvironment()
	value, err, eofOnly := RunSource("<test>", source, ctx)
	require.Nil(t, err)
	require.False(t, eofOnly)
	if list, ok := value.(*List); ok && len(list.Elements) == 1 {
		return list.Elements[0], ctx
	}
	return value, ctx
}

func runErr(t *testing.T, source string) *Context {
	t.Helper()
	ctx := NewGlobalEnvironment()
	_, err, _ := RunSource("<test>", source, ctx)
	require.NotNil(t, err)
	return ctx
}

func TestTypePredicates(t *testing.T) {
	v, _ := run(t, "es_num(3)")
	assert.Equal(t, Posta, v)

	v, _ = run(t, `es_chamu("hola")`)
	assert.Equal(t, Posta, v)

	v, _ = run(t, "es_coso(3)")
	assert.Equal(t, Trucho, v)
}

func TestChamuAndNumConversions(t *testing.T) {
	v, _ := run(t, "chamu(5)")
	assert.Equal(t, "5", v.(*String).Value)

	v, _ = run(t, `num("42")`)
	assert.Equal(t, int64(42), v.(*Number).IntVal)

	v, _ = run(t, `num("3.5")`)
	assert.Equal(t, 3.5, v.(*Number).FloatVal)
}

func TestNumConversionRejectsGarbage(t *testing.T) {
	runErr(t, `num("noesunumero")`)
}

func TestListBuiltins(t *testing.T) {
	ctx := NewGlobalEnvironment()
	_, err, _ := RunSource("<test>", "poneleque l = []", ctx)
	require.Nil(t, err)

	_, err, _ = RunSource("<test>", "guardar(l, 10)", ctx)
	require.Nil(t, err)

	_, err, _ = RunSource("<test>", "insertar(l, 0, 5)", ctx)
	require.Nil(t, err)

	v, err, _ := RunSource("<test>", "longitud(l)", ctx)
	require.Nil(t, err)
	if list, ok := v.(*List); ok {
		v = list.Elements[0]
	}
	assert.Equal(t, int64(2), v.(*Number).IntVal)
}

func TestDictBuiltins(t *testing.T) {
	ctx := NewGlobalEnvironment()
	_, err, _ := RunSource("<test>", "poneleque d = {}", ctx)
	require.Nil(t, err)

	_, err, _ = RunSource("<test>", `metele_en(d, "llave", "valor")`, ctx)
	require.Nil(t, err)

	v, err, _ := RunSource("<test>", `agarra_de(d, "llave")`, ctx)
	require.Nil(t, err)
	if list, ok := v.(*List); ok {
		v = list.Elements[0]
	}
	assert.Equal(t, "valor", v.(*String).Value)

	v, err, _ = RunSource("<test>", `existe_clave(d, "llave")`, ctx)
	require.Nil(t, err)
	if list, ok := v.(*List); ok {
		v = list.Elements[0]
	}
	assert.Equal(t, Posta, v)
}

func TestContextoReturnsSortedGlobalNames(t *testing.T) {
	v, _ := run(t, "contexto()")
	list, ok := v.(*List)
	require.True(t, ok)
	require.NotEmpty(t, list.Elements)

	names := make([]string, len(list.Elements))
	for i, e := range list.Elements {
		names[i] = e.(*String).Value
	}
	for i := 1; i < len(names); i++ {
		assert.LessOrEqual(t, names[i-1], names[i])
	}
	assert.Contains(t, names, "nada")
	assert.Contains(t, names, "contexto")
}

func TestContextoLocalSeesOnlyLocalScope(t *testing.T) {
	v, _ := run(t, "poneleque x = 1\ncontexto(posta)")
	list, ok := v.(*List)
	require.True(t, ok)

	names := make([]string, len(list.Elements))
	for i, e := range list.Elements {
		names[i] = e.(*String).Value
	}
	assert.Contains(t, names, "x")
	assert.NotContains(t, names, "matear")
}

func TestAsciiAchamuRoundTrips(t *testing.T) {
	v, _ := run(t, "asciiAchamu(65)")
	assert.Equal(t, "A", v.(*String).Value)
}

func TestAsciiAchamuRejectsFloat(t *testing.T) {
	runErr(t, "asciiAchamu(65.5)")
}
