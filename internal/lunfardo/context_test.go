package lunfardo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lunfardo-lang/lunfardo/internal/lunlex"
)

func Test_Context_CWDAndFileInheritFromParent(t *testing.T) {
	root := NewContext("<root>", nil, lunlex.Position{})
	root.CWD = "/home/lunfa"
	root.File = "main.lunf"

	child := NewContext("fn", root, lunlex.Position{})
	assert.Equal(t, "/home/lunfa", child.GetCWD())
	assert.Equal(t, "main.lunf", child.GetFile())
}

func Test_Context_AddAndGetModule(t *testing.T) {
	root := NewContext("<root>", nil, lunlex.Position{})
	mod := &Instance{}
	root.AddModule("lacompu", mod)

	child := NewContext("fn", root, lunlex.Position{})
	found, ok := child.GetModule("lacompu")
	assert.True(t, ok)
	assert.Same(t, mod, found)
}

func Test_Context_ImportCycleDetection(t *testing.T) {
	root := NewContext("<root>", nil, lunlex.Position{})
	root.BeginImport("m")
	child := NewContext("fn", root, lunlex.Position{})
	assert.True(t, child.IsImporting("m"))
	root.EndImport("m")
	assert.False(t, child.IsImporting("m"))
}

func Test_Context_LookupAcrossModules(t *testing.T) {
	root := NewContext("<root>", nil, lunlex.Position{})
	mod := &Instance{Vars: map[string]Value{"saludo": NewString("hola")}}
	root.AddModule("m", mod)

	child := NewContext("fn", root, lunlex.Position{})
	v, ok := child.LookupAcrossModules("saludo")
	if !assert.True(t, ok) {
		return
	}
	assert.Equal(t, "hola", v.(*String).Value)
}
