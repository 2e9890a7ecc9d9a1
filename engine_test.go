package lunfardo

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, stdin string) (*Engine, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	eng, err := New(strings.NewReader(stdin), &out, true)
	require.NoError(t, err)
	return eng, &out
}

func TestRunCommandsPrintsLastExpression(t *testing.T) {
	eng, out := newTestEngine(t, "")
	defer eng.Close()

	require.NoError(t, eng.RunCommands([]string{"2 + 2"}))
	assert.Equal(t, "4\n", out.String())
}

func TestRunCommandsPrintsAssignedValue(t *testing.T) {
	eng, out := newTestEngine(t, "")
	defer eng.Close()

	require.NoError(t, eng.RunCommands([]string{"poneleque x = 1"}))
	assert.Equal(t, "1\n", out.String())
}

func TestRunCommandsPrintsFormattedError(t *testing.T) {
	eng, out := newTestEngine(t, "")
	defer eng.Close()

	require.NoError(t, eng.RunCommands([]string{"1 / 0"}))
	assert.Contains(t, out.String(), "División por cero")
}

func TestRunREPLBlankLinesDoNotProduceOutput(t *testing.T) {
	eng, out := newTestEngine(t, "\n\n3 + 4\n")
	defer eng.Close()

	require.NoError(t, eng.RunREPL())
	assert.Equal(t, "7\n", out.String())
}

// The following mirror spec.md §8's worked end-to-end scenarios, each run as
// a single multi-line script via RunCommands.

func TestScenario_ArithmeticPrecedence(t *testing.T) {
	eng, out := newTestEngine(t, "")
	defer eng.Close()

	require.NoError(t, eng.RunCommands([]string{"2 + 3 * 4"}))
	assert.Equal(t, "14\n", out.String())
}

func TestScenario_RecursionAndReturn(t *testing.T) {
	eng, out := newTestEngine(t, "")
	defer eng.Close()

	script := "laburo fact(n)\n" +
		"  si n <= 1 entonces\n" +
		"    devolver 1\n" +
		"  chau\n" +
		"  devolver n * fact(n - 1)\n" +
		"chau\n" +
		"fact(5)"
	require.NoError(t, eng.RunCommands([]string{script}))
	assert.Equal(t, "120\n", out.String())
}

func TestScenario_ListBuilderViaFor(t *testing.T) {
	eng, out := newTestEngine(t, "")
	defer eng.Close()

	script := "poneleque xs = []\n" +
		"para i = 0 hasta 3 entonces\n" +
		"  guardar(xs, i)\n" +
		"chau\n" +
		"xs"
	require.NoError(t, eng.RunCommands([]string{script}))
	assert.Equal(t, "[0, 1, 2]\n", out.String())
}

func TestScenario_ClassWithInheritanceAndConstructor(t *testing.T) {
	eng, out := newTestEngine(t, "")
	defer eng.Close()

	script := "cheto A\n" +
		"  laburo arranque(mi)\n" +
		"    mi.x = 1\n" +
		"  chau\n" +
		"  laburo v(mi)\n" +
		"    devolver mi.x\n" +
		"  chau\n" +
		"chau\n" +
		"cheto B hereda A\n" +
		"  laburo arranque(mi)\n" +
		"    mi.x = 2\n" +
		"  chau\n" +
		"chau\n" +
		"poneleque b = nuevo B()\n" +
		"b.v()"
	require.NoError(t, eng.RunCommands([]string{script}))
	assert.Equal(t, "2\n", out.String())
}

func TestScenario_TryRaiseRoundTrip(t *testing.T) {
	eng, out := newTestEngine(t, "")
	defer eng.Close()

	script := "proba\n" +
		"  bardea bardo_de_valor \"oops\"\n" +
		"sibardea bardo_de_valor\n" +
		"  42\n" +
		"chau"
	require.NoError(t, eng.RunCommands([]string{script}))
	assert.Equal(t, "42\n", out.String())
}

func TestScenario_DictOverwriteAndDelete(t *testing.T) {
	eng, out := newTestEngine(t, "")
	defer eng.Close()

	script := "poneleque d = {\"a\": 1, \"a\": 2}\n" +
		"borra_de(d, \"a\")\n" +
		"existe_clave(d, \"a\")"
	require.NoError(t, eng.RunCommands([]string{script}))
	assert.Equal(t, "nada\n", out.String())
}

func TestScenario_DivisionByZero(t *testing.T) {
	eng, out := newTestEngine(t, "")
	defer eng.Close()

	require.NoError(t, eng.RunCommands([]string{"1 / 0"}))
	assert.Contains(t, out.String(), "División por cero")
}

func TestScenario_EmptyProgramProducesNoOutput(t *testing.T) {
	eng, out := newTestEngine(t, "")
	defer eng.Close()

	require.NoError(t, eng.RunCommands([]string{""}))
	assert.Equal(t, "", out.String())
}
