package lunlib

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunfardo-lang/lunfardo/internal/lunerr"
	"github.com/lunfardo-lang/lunfardo/internal/lunfardo"
	"github.com/lunfardo-lang/lunfardo/internal/lunlex"
)

func TestLaCompuExposesHostFacts(t *testing.T) {
	ctx := lunfardo.NewGlobalEnvironment()
	mod, err := lunfardo.ImportModule("lacompu", lunlex.Position{}, lunlex.Position{}, ctx)
	require.Nil(t, err)

	sepFn, ok := mod.Vars["sep"].(*lunfardo.Builtin)
	require.True(t, ok)

	res := sepFn.Execute(nil, ctx)
	require.Nil(t, res.Err)
	_, ok = res.Value.(*lunfardo.String)
	require.True(t, ok)
}

func TestLaCompuGetcwdMatchesOsGetwd(t *testing.T) {
	ctx := lunfardo.NewGlobalEnvironment()
	mod, err := lunfardo.ImportModule("lacompu", lunlex.Position{}, lunlex.Position{}, ctx)
	require.Nil(t, err)

	getcwd := mod.Vars["getcwd"].(*lunfardo.Builtin)
	res := getcwd.Execute(nil, ctx)
	require.Nil(t, res.Err)
	assert.NotEmpty(t, res.Value.(*lunfardo.String).Value)
}

func TestGualichosAddstrWritesToSharedStdout(t *testing.T) {
	var buf bytes.Buffer
	old := lunfardo.Stdout
	lunfardo.Stdout = &buf
	defer func() { lunfardo.Stdout = old }()

	ctx := lunfardo.NewGlobalEnvironment()
	mod, err := lunfardo.ImportModule("gualichos", lunlex.Position{}, lunlex.Position{}, ctx)
	require.Nil(t, err)

	addstr := mod.Vars["addstr"].(*lunfardo.Builtin)
	res := addstr.Execute([]lunfardo.Value{lunfardo.NewString("che")}, ctx)
	require.Nil(t, res.Err)
	assert.Equal(t, "che", buf.String())
}

func TestGualichosAddstrRejectsNonString(t *testing.T) {
	ctx := lunfardo.NewGlobalEnvironment()
	mod, err := lunfardo.ImportModule("gualichos", lunlex.Position{}, lunlex.Position{}, ctx)
	require.Nil(t, err)

	addstr := mod.Vars["addstr"].(*lunfardo.Builtin)
	res := addstr.Execute([]lunfardo.Value{lunfardo.NewInt(1)}, ctx)
	require.NotNil(t, res.Err)
	assert.Equal(t, lunerr.TagInvalidType, res.Err.Tag)
}
