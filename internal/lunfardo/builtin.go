package lunfardo

import (
	"fmt"

	"github.com/lunfardo-lang/lunfardo/internal/lunerr"
	"github.com/lunfardo-lang/lunfardo/internal/lunlex"
)

// BuiltinFunc is the host-side callable signature a Builtin dispatches to:
// it receives the freshly built execution context (whose environment
// already holds the declared parameter names bound to the supplied
// arguments) and returns a value or an error, mirroring exec_<name>'s
// contract in the source this is generalized from — a Curro never signals
// devolver/continuar/rajar, only a plain result or a bardo.
type BuiltinFunc func(execCtx *Context) (Value, *lunerr.Error)

// Builtin is Lunfardo's Curro: a name, its declared parameter names
// (Defaults entries are nil for required parameters, same convention as
// Function), and the host callable it dispatches to.
type Builtin struct {
	ValueBase
	Name     string
	Params   []string
	Defaults []Value
	Fn       BuiltinFunc
}

// NewBuiltin declares a Curro with all-required parameters.
func NewBuiltin(name string, params []string, fn BuiltinFunc) *Builtin {
	return &Builtin{Name: name, Params: params, Defaults: make([]Value, len(params)), Fn: fn}
}

func (b *Builtin) TypeName() string { return "curro" }
func (b *Builtin) String() string   { return fmt.Sprintf("<curro %s>", b.Name) }

func (b *Builtin) WithPos(start, end lunlex.Position) Value {
	c := *b
	c.PosStart, c.PosEnd = start, end
	return &c
}

func (b *Builtin) WithContext(ctx *Context) Value {
	c := *b
	c.Context = ctx
	return &c
}

func (b *Builtin) Copy() Value {
	c := *b
	return &c
}

func (b *Builtin) IsTrue() bool { return true }

func (b *Builtin) checkArgCount(args []Value) *lunerr.Error {
	if len(args) > len(b.Params) {
		return lunerr.NewRuntime(lunerr.TagInvalidValue, b.PosStart, b.PosEnd,
			fmt.Sprintf("%d argumentos de más pasados a '%s'()", len(args)-len(b.Params), b.Name), nil)
	}
	required := 0
	for i, d := range b.Defaults {
		if d == nil {
			required = i + 1
		}
	}
	if len(args) < required {
		return lunerr.NewRuntime(lunerr.TagInvalidValue, b.PosStart, b.PosEnd,
			fmt.Sprintf("pocos argumentos pasados en '%s'() (esperados %d, recibidos %d)", b.Name, required, len(args)), nil)
	}
	return nil
}

// Execute binds args positionally against Params (falling back to each
// parameter's default) in a fresh child context of callerContext, then
// dispatches to Fn, per exec_<name>'s symbol-table-populated contract.
func (b *Builtin) Execute(args []Value, callerContext *Context) *Result {
	res := NewResult()

	if err := b.checkArgCount(args); err != nil {
		return res.Failure(err)
	}

	execCtx := NewContext(fmt.Sprintf("<curro %s>", b.Name), callerContext, b.PosStart)
	execCtx.Env = NewEnvironment(callerContext.Env)

	for i, name := range b.Params {
		var v Value
		switch {
		case i < len(args):
			v = args[i]
		case i < len(b.Defaults) && b.Defaults[i] != nil:
			v = b.Defaults[i]
		default:
			v = NilValue
		}
		execCtx.Env.Set(name, v.WithContext(execCtx))
	}

	value, err := b.Fn(execCtx)
	if err != nil {
		return res.Failure(err)
	}
	if value == nil {
		value = NilValue
	}
	return res.Success(value)
}
