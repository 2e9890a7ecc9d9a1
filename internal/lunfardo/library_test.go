package lunfardo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunfardo-lang/lunfardo/internal/lunerr"
	"github.com/lunfardo-lang/lunfardo/internal/lunlex"
)

func TestImportModuleResolvesRegisteredLibrary(t *testing.T) {
	RegisterLibrary("unit_test_lib", func(moduleCtx *Context, start, end lunlex.Position, callerCtx *Context) *lunerr.Error {
		moduleCtx.Env.Set("saludo", NewBuiltin("saludo", nil, func(ctx *Context) (Value, *lunerr.Error) {
			return NewString("hola"), nil
		}))
		return nil
	})

	ctx := NewGlobalEnvironment()
	inst, err := ImportModule("unit_test_lib", lunlex.Position{}, lunlex.Position{}, ctx)
	require.Nil(t, err)

	fn, ok := inst.Vars["saludo"]
	require.True(t, ok)

	res := fn.(*Builtin).Execute(nil, ctx)
	require.Nil(t, res.Err)
	assert.Equal(t, "hola", res.Value.(*String).Value)
}

func TestImportModuleResolvesScript(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "saludos.lunf"), []byte("poneleque mensaje = \"buenas\""), 0o644))

	ctx := NewGlobalEnvironment()
	ctx.CWD = dir

	inst, err := ImportModule("saludos", lunlex.Position{}, lunlex.Position{}, ctx)
	require.Nil(t, err)
	assert.Equal(t, "buenas", inst.Vars["mensaje"].(*String).Value)
}

func TestImportModuleMissingScriptFails(t *testing.T) {
	ctx := NewGlobalEnvironment()
	ctx.CWD = t.TempDir()

	_, err := ImportModule("no_existe_este_modulo", lunlex.Position{}, lunlex.Position{}, ctx)
	require.NotNil(t, err)
	assert.Equal(t, lunerr.TagFileNotFound, err.Tag)
}

func TestRestrictLibrariesNarrowsRegistry(t *testing.T) {
	RegisterLibrary("another_unit_test_lib", func(moduleCtx *Context, start, end lunlex.Position, callerCtx *Context) *lunerr.Error {
		return nil
	})
	RestrictLibraries([]string{"unit_test_lib"})
	defer RestrictLibraries(nil)

	ctx := NewGlobalEnvironment()
	ctx.CWD = t.TempDir()
	_, err := ImportModule("another_unit_test_lib", lunlex.Position{}, lunlex.Position{}, ctx)
	require.NotNil(t, err)
	assert.Equal(t, lunerr.TagFileNotFound, err.Tag)
}
