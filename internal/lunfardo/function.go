package lunfardo

import (
	"fmt"

	"github.com/lunfardo-lang/lunfardo/internal/lunast"
	"github.com/lunfardo-lang/lunfardo/internal/lunerr"
	"github.com/lunfardo-lang/lunfardo/internal/lunlex"
)

// Function is Lunfardo's Laburo. Default values are pre-evaluated once, at
// definition time, in DefContext — mirroring visit_LaburoDefNode, which
// evaluates each Param.Default before the FuncDefNode's own Function value
// is built, not lazily on every call.
type Function struct {
	ValueBase
	Name             string
	Params           []lunast.Param
	Defaults         []Value // parallel to Params; nil entry means required
	Body             lunast.Node
	ShouldAutoReturn bool
	IsMethod         bool
	DefContext       *Context
}

func NewFunction(name string, params []lunast.Param, defaults []Value, body lunast.Node, autoReturn, isMethod bool, defContext *Context) *Function {
	return &Function{
		Name: name, Params: params, Defaults: defaults, Body: body,
		ShouldAutoReturn: autoReturn, IsMethod: isMethod, DefContext: defContext,
	}
}

func (f *Function) TypeName() string { return "laburo" }

func (f *Function) String() string {
	name := f.Name
	if name == "" {
		name = "<anonimo>"
	}
	return fmt.Sprintf("<laburo %s>", name)
}

func (f *Function) WithPos(start, end lunlex.Position) Value {
	c := *f
	c.PosStart, c.PosEnd = start, end
	return &c
}

func (f *Function) WithContext(ctx *Context) Value {
	c := *f
	c.Context = ctx
	return &c
}

func (f *Function) Copy() Value {
	c := *f
	return &c
}

func (f *Function) IsTrue() bool { return true }

func (f *Function) displayName() string {
	if f.Name == "" {
		return "<anonimo>"
	}
	return f.Name
}

// generateNewContext builds the child execution frame a call runs in,
// parented on the function's defining context (so closures see their
// lexical scope) rather than on the caller, per generate_new_context.
func (f *Function) generateNewContext() *Context {
	ctx := NewContext(f.displayName(), f.DefContext, f.PosStart)
	ctx.Env = NewEnvironment(f.DefContext.Env)
	return ctx
}

// checkArgCount validates args against the parameter list's arity: every
// parameter past the ones with a pre-evaluated default is required, so too
// few means a gap with no default to fall back on, mirroring check_args.
func (f *Function) checkArgCount(args []Value) *lunerr.Error {
	if len(args) > len(f.Params) {
		return lunerr.NewRuntime(lunerr.TagInvalidValue, f.PosStart, f.PosEnd,
			fmt.Sprintf("%s() espera %d argumentos pero recibió %d (%d de más)",
				f.displayName(), len(f.Params), len(args), len(args)-len(f.Params)), nil)
	}
	required := 0
	for i, d := range f.Defaults {
		if d == nil {
			required = i + 1
		}
	}
	if len(args) < required {
		return lunerr.NewRuntime(lunerr.TagInvalidValue, f.PosStart, f.PosEnd,
			fmt.Sprintf("%s() espera al menos %d argumentos pero recibió %d (faltan %d)",
				f.displayName(), required, len(args), required-len(args)), nil)
	}
	return nil
}

// populateArgs binds args (falling back to each parameter's pre-evaluated
// default for positions beyond len(args)) into execCtx's environment.
func (f *Function) populateArgs(args []Value, execCtx *Context) {
	for i, p := range f.Params {
		var v Value
		switch {
		case i < len(args):
			v = args[i]
		case i < len(f.Defaults) && f.Defaults[i] != nil:
			v = f.Defaults[i]
		default:
			v = NilValue
		}
		execCtx.Env.Set(p.Name.Str(), v.WithContext(execCtx).WithPos(p.Name.PosStart, p.Name.PosEnd))
	}
}

// Execute runs the function body in a fresh child context, returning
// whichever of (auto-return expression value, explicit devolver value, nada)
// applies, per Laburo.execute.
func (f *Function) Execute(args []Value, callerContext *Context) *Result {
	res := NewResult()

	if err := f.checkArgCount(args); err != nil {
		return res.Failure(err)
	}

	execCtx := f.generateNewContext()
	f.populateArgs(args, execCtx)

	bodyValue := res.Register(Eval(f.Body, execCtx))
	if res.ShouldPropagate() && res.Err != nil {
		return res
	}

	switch {
	case f.ShouldAutoReturn && bodyValue != nil:
		return res.Success(bodyValue)
	case res.ShouldReturn && res.ReturnValue != nil:
		return res.Success(res.ReturnValue)
	default:
		return res.Success(NilValue)
	}
}
