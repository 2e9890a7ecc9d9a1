package lunparse

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lunfardo-lang/lunfardo/internal/lunast"
	"github.com/lunfardo-lang/lunfardo/internal/lunlex"
)

func parseSource(t *testing.T, src string) *lunast.StatementsNode {
	t.Helper()
	toks, lexErr := lunlex.Scan("<test>", src)
	if !assert.Nil(t, lexErr) {
		t.FailNow()
	}
	res := Parse(toks)
	if !assert.Nilf(t, res.Err, "parse error: %v", res.Err) {
		t.FailNow()
	}
	stmts, ok := res.Node.(*lunast.StatementsNode)
	if !assert.True(t, ok, "root node is not StatementsNode") {
		t.FailNow()
	}
	return stmts
}

func Test_Parse_emptyProgram(t *testing.T) {
	res := Parse(mustScan(t, ""))
	assert.True(t, res.EOFOnly)
	assert.Nil(t, res.Err)
}

func mustScan(t *testing.T, src string) []lunlex.Token {
	t.Helper()
	toks, err := lunlex.Scan("<test>", src)
	if !assert.Nil(t, err) {
		t.FailNow()
	}
	return toks
}

func Test_Parse_arithmeticPrecedence(t *testing.T) {
	stmts := parseSource(t, "2 + 3 * 4")
	if !assert.Len(t, stmts.Statements, 1) {
		return
	}
	top, ok := stmts.Statements[0].(*lunast.BinOpNode)
	if !assert.True(t, ok) {
		return
	}
	assert.Equal(t, lunlex.Plus, top.Op.Kind)
	_, leftIsNumber := top.Left.(*lunast.NumberNode)
	assert.True(t, leftIsNumber)
	mul, ok := top.Right.(*lunast.BinOpNode)
	if !assert.True(t, ok) {
		return
	}
	assert.Equal(t, lunlex.Mul, mul.Op.Kind)
}

func Test_Parse_varAssign(t *testing.T) {
	stmts := parseSource(t, "poneleque xs = []")
	if !assert.Len(t, stmts.Statements, 1) {
		return
	}
	assign, ok := stmts.Statements[0].(*lunast.VarAssignNode)
	if !assert.True(t, ok) {
		return
	}
	assert.Equal(t, "xs", assign.Name.Str())
	_, isList := assign.Value.(*lunast.ListNode)
	assert.True(t, isList)
}

func Test_Parse_ifElseChain(t *testing.T) {
	stmts := parseSource(t, `
si 1 entonces
	2
osi 3 entonces
	4
sino
	5
chau
`)
	if !assert.Len(t, stmts.Statements, 1) {
		return
	}
	ifNode, ok := stmts.Statements[0].(*lunast.IfNode)
	if !assert.True(t, ok) {
		return
	}
	assert.Len(t, ifNode.Cases, 2)
	if !assert.NotNil(t, ifNode.Else) {
		return
	}
	assert.True(t, ifNode.Cases[0].IsBlock)
}

func Test_Parse_forLoop(t *testing.T) {
	stmts := parseSource(t, `
para i = 0 hasta 3 entonces
	guardar(xs, i)
chau
`)
	if !assert.Len(t, stmts.Statements, 1) {
		return
	}
	forNode, ok := stmts.Statements[0].(*lunast.ForNode)
	if !assert.True(t, ok) {
		return
	}
	assert.Equal(t, "i", forNode.VarName.Str())
	assert.Nil(t, forNode.StepValue)
}

func Test_Parse_forLoopWithStep(t *testing.T) {
	stmts := parseSource(t, "para i = 0 hasta 10 entre 2 entonces i chau")
	forNode := stmts.Statements[0].(*lunast.ForNode)
	assert.NotNil(t, forNode.StepValue)
}

func Test_Parse_funcDefAutoReturn(t *testing.T) {
	stmts := parseSource(t, "laburo cuadrado(n) : n * n")
	if !assert.Len(t, stmts.Statements, 1) {
		return
	}
	fn, ok := stmts.Statements[0].(*lunast.FuncDefNode)
	if !assert.True(t, ok) {
		return
	}
	assert.True(t, fn.ShouldAutoReturn)
	if !assert.Len(t, fn.Params, 1) {
		return
	}
	assert.Equal(t, "n", fn.Params[0].Name.Str())
}

func Test_Parse_funcDefBlockForm(t *testing.T) {
	stmts := parseSource(t, `
laburo fact(n)
	si n <= 1 entonces
		devolver 1
	chau
	devolver n * fact(n - 1)
chau
`)
	fn, ok := stmts.Statements[0].(*lunast.FuncDefNode)
	if !assert.True(t, ok) {
		return
	}
	assert.False(t, fn.ShouldAutoReturn)
	assert.NotNil(t, fn.Name)
	assert.Equal(t, "fact", fn.Name.Str())
}

func Test_Parse_classWithInheritanceAndConstructor(t *testing.T) {
	stmts := parseSource(t, `
cheto A
	laburo arranque(mi)
		mi.x = 1
	chau
	laburo v(mi)
		devolver mi.x
	chau
chau
cheto B hereda A
	laburo arranque(mi)
		mi.x = 2
	chau
chau
`)
	if !assert.Len(t, stmts.Statements, 2) {
		return
	}
	a, ok := stmts.Statements[0].(*lunast.ClassDefNode)
	if !assert.True(t, ok) {
		return
	}
	assert.Equal(t, "A", a.Name.Str())
	assert.Nil(t, a.ParentName)
	assert.NotNil(t, a.Constructor)
	assert.Len(t, a.Methods, 1)

	b, ok := stmts.Statements[1].(*lunast.ClassDefNode)
	if !assert.True(t, ok) {
		return
	}
	if !assert.NotNil(t, b.ParentName) {
		return
	}
	assert.Equal(t, "A", b.ParentName.Str())
}

func Test_Parse_tryRaise(t *testing.T) {
	stmts := parseSource(t, `
proba
	bardea bardo_de_valor "oops"
sibardea bardo_de_valor
	42
chau
`)
	tryNode, ok := stmts.Statements[0].(*lunast.TryNode)
	if !assert.True(t, ok) {
		return
	}
	if !assert.NotNil(t, tryNode.ErrorTag) {
		return
	}
	assert.Equal(t, "bardo_de_valor", tryNode.ErrorTag.Str())
}

func Test_Parse_dictLiteral(t *testing.T) {
	stmts := parseSource(t, `{"a": 1, "a": 2}`)
	dict, ok := stmts.Statements[0].(*lunast.DictNode)
	if !assert.True(t, ok) {
		return
	}
	assert.Len(t, dict.Pairs, 2)
}

func Test_Parse_invalidSyntaxError(t *testing.T) {
	res := Parse(mustScan(t, "poneleque = 1"))
	assert.NotNil(t, res.Err)
}

func Test_Parse_importNode(t *testing.T) {
	stmts := parseSource(t, "importar lacompu")
	imp, ok := stmts.Statements[0].(*lunast.ImportNode)
	if !assert.True(t, ok) {
		return
	}
	assert.Equal(t, "lacompu", imp.ModuleName.Str())
}

func Test_Parse_methodCallChain(t *testing.T) {
	stmts := parseSource(t, "b.v()")
	_, isMethodCall := stmts.Statements[0].(*lunast.MethodCallNode)
	_, isInstanceAccess := stmts.Statements[0].(*lunast.InstanceVarAccessNode)
	assert.True(t, isMethodCall || isInstanceAccess)
}

func Test_Parse_instanceNew(t *testing.T) {
	stmts := parseSource(t, "poneleque b = nuevo B()")
	assign := stmts.Statements[0].(*lunast.VarAssignNode)
	_, ok := assign.Value.(*lunast.InstanceNewNode)
	assert.True(t, ok)
}
