package lunfardo

import (
	"fmt"

	"github.com/lunfardo-lang/lunfardo/internal/lunast"
	"github.com/lunfardo-lang/lunfardo/internal/lunerr"
	"github.com/lunfardo-lang/lunfardo/internal/lunlex"
)

// Eval walks node in ctx, dispatching on its concrete type the way
// interpreter.py's visit_* methods do, one case per AST node kind.
func Eval(node lunast.Node, ctx *Context) *Result {
	switch n := node.(type) {
	case *lunast.NumberNode:
		return evalNumber(n, ctx)
	case *lunast.StringNode:
		return evalString(n, ctx)
	case *lunast.ListNode:
		return evalList(n, ctx)
	case *lunast.DictNode:
		return evalDict(n, ctx)
	case *lunast.VarAccessNode:
		return evalVarAccess(n, ctx)
	case *lunast.VarAssignNode:
		return evalVarAssign(n, ctx)
	case *lunast.ReassignNode:
		return evalReassign(n, ctx)
	case *lunast.BinOpNode:
		return evalBinOp(n, ctx)
	case *lunast.UnaryOpNode:
		return evalUnaryOp(n, ctx)
	case *lunast.IfNode:
		return evalIf(n, ctx)
	case *lunast.ForNode:
		return evalFor(n, ctx)
	case *lunast.WhileNode:
		return evalWhile(n, ctx)
	case *lunast.FuncDefNode:
		return evalFuncDef(n, ctx)
	case *lunast.CallNode:
		return evalCall(n, ctx)
	case *lunast.ClassDefNode:
		return evalClassDef(n, ctx)
	case *lunast.InstanceNewNode:
		return evalInstanceNew(n, ctx)
	case *lunast.MethodCallNode:
		return evalMethodCall(n, ctx)
	case *lunast.InstanceVarAccessNode:
		return evalInstanceVarAccess(n, ctx)
	case *lunast.InstanceVarAssignNode:
		return evalInstanceVarAssign(n, ctx)
	case *lunast.InstanceVarAccessAndAssignNode:
		return evalInstanceVarAccessAndAssign(n, ctx)
	case *lunast.ReturnNode:
		return evalReturn(n, ctx)
	case *lunast.ContinueNode:
		return NewResult().SuccessContinue()
	case *lunast.BreakNode:
		return NewResult().SuccessBreak()
	case *lunast.ImportNode:
		return evalImport(n, ctx)
	case *lunast.TryNode:
		return evalTry(n, ctx)
	case *lunast.RaiseNode:
		return evalRaise(n, ctx)
	case *lunast.StatementsNode:
		return evalStatements(n, ctx)
	default:
		return NewResult().Failure(lunerr.New(lunerr.TagInvalidSyntax, node.Start(), node.End(),
			fmt.Sprintf("nodo desconocido: %T", node)))
	}
}

// runtimeError builds a runtime error carrying a traceback snapshot of ctx's
// active frame chain, outermost first.
func runtimeError(tag string, start, end lunlex.Position, details string, ctx *Context) *lunerr.Error {
	return lunerr.NewRuntime(tag, start, end, details, buildFrames(ctx))
}

func buildFrames(ctx *Context) []lunerr.TracebackFrame {
	var chain []*Context
	for c := ctx; c != nil; c = c.Parent {
		chain = append(chain, c)
	}
	frames := make([]lunerr.TracebackFrame, 0, len(chain))
	for i := len(chain) - 1; i >= 0; i-- {
		c := chain[i]
		frames = append(frames, lunerr.TracebackFrame{Pos: c.ParentEntryPos, DisplayName: c.DisplayName})
	}
	return frames
}

func evalStatements(n *lunast.StatementsNode, ctx *Context) *Result {
	res := NewResult()
	var last Value = NilValue
	for _, stmt := range n.Statements {
		last = res.Register(Eval(stmt, ctx))
		if res.ShouldPropagate() {
			return res
		}
	}
	return res.Success(last)
}

func evalNumber(n *lunast.NumberNode, ctx *Context) *Result {
	var num *Number
	if n.Tok.Kind == lunlex.Int {
		num = NewInt(n.Tok.Value.(int64))
	} else {
		num = NewFloat(n.Tok.Value.(float64))
	}
	return NewResult().Success(num.WithPos(n.PosStart, n.PosEnd).WithContext(ctx))
}

func evalString(n *lunast.StringNode, ctx *Context) *Result {
	s := NewString(n.Tok.Str())
	return NewResult().Success(s.WithPos(n.PosStart, n.PosEnd).WithContext(ctx))
}

func evalList(n *lunast.ListNode, ctx *Context) *Result {
	res := NewResult()
	elems := make([]Value, 0, len(n.Elements))
	for _, el := range n.Elements {
		v := res.Register(Eval(el, ctx))
		if res.ShouldPropagate() {
			return res
		}
		elems = append(elems, v)
	}
	return res.Success(NewList(elems).WithPos(n.PosStart, n.PosEnd).WithContext(ctx))
}

func evalDict(n *lunast.DictNode, ctx *Context) *Result {
	res := NewResult()
	d := NewDict()
	for _, pair := range n.Pairs {
		key := res.Register(Eval(pair.Key, ctx))
		if res.ShouldPropagate() {
			return res
		}
		value := res.Register(Eval(pair.Value, ctx))
		if res.ShouldPropagate() {
			return res
		}
		if err := d.Set(key, value); err != nil {
			return res.Failure(runtimeError(err.Tag, pair.Key.Start(), pair.Key.End(), err.Details, ctx))
		}
	}
	return res.Success(d.WithPos(n.PosStart, n.PosEnd).WithContext(ctx))
}

func evalVarAccess(n *lunast.VarAccessNode, ctx *Context) *Result {
	res := NewResult()
	name := n.Name.Str()
	v, ok := ctx.Env.Get(name)
	if !ok {
		v, ok = ctx.LookupAcrossModules(name)
	}
	if !ok {
		return res.Failure(runtimeError(lunerr.TagUndefinedVar, n.PosStart, n.PosEnd,
			fmt.Sprintf("'%s' no está definido", name), ctx))
	}
	return res.Success(v.WithPos(n.PosStart, n.PosEnd).WithContext(ctx))
}

func evalVarAssign(n *lunast.VarAssignNode, ctx *Context) *Result {
	res := NewResult()
	value := res.Register(Eval(n.Value, ctx))
	if res.ShouldPropagate() {
		return res
	}
	ctx.Env.Set(n.Name.Str(), value)
	return res.Success(value)
}

func evalReassign(n *lunast.ReassignNode, ctx *Context) *Result {
	res := NewResult()
	value := res.Register(Eval(n.Value, ctx))
	if res.ShouldPropagate() {
		return res
	}
	if !ctx.Env.Reassign(n.Name.Str(), value) {
		return res.Failure(runtimeError(lunerr.TagUndefinedVar, n.PosStart, n.PosEnd,
			fmt.Sprintf("'%s' no está definido", n.Name.Str()), ctx))
	}
	return res.Success(value)
}

func evalUnaryOp(n *lunast.UnaryOpNode, ctx *Context) *Result {
	res := NewResult()
	operand := res.Register(Eval(n.Node, ctx))
	if res.ShouldPropagate() {
		return res
	}

	switch {
	case n.Op.Kind == lunlex.Minus:
		m, ok := operand.(multiplier)
		if !ok {
			return res.Failure(IllegalOperation(operand, nil))
		}
		v, err := m.MultipliedBy(NewInt(-1))
		if err != nil {
			return res.Failure(err)
		}
		return res.Success(v.WithPos(n.PosStart, n.PosEnd).WithContext(ctx))

	case n.Op.Kind == lunlex.Plus:
		return res.Success(operand.WithPos(n.PosStart, n.PosEnd).WithContext(ctx))

	case n.Op.Matches(lunlex.Keyword, "truchar"):
		nt, ok := operand.(notter)
		if !ok {
			return res.Failure(IllegalOperation(operand, nil))
		}
		v, err := nt.Notted()
		if err != nil {
			return res.Failure(err)
		}
		return res.Success(v.WithPos(n.PosStart, n.PosEnd).WithContext(ctx))
	}

	return res.Failure(IllegalOperation(operand, nil))
}

func evalBinOp(n *lunast.BinOpNode, ctx *Context) *Result {
	res := NewResult()
	left := res.Register(Eval(n.Left, ctx))
	if res.ShouldPropagate() {
		return res
	}
	right := res.Register(Eval(n.Right, ctx))
	if res.ShouldPropagate() {
		return res
	}

	var result Value
	var err *lunerr.Error

	switch {
	case n.Op.Kind == lunlex.Plus:
		result, err = dispatchOp(left, right, func(a adder) (Value, *lunerr.Error) { return a.AddedTo(right) })
	case n.Op.Kind == lunlex.Minus:
		result, err = dispatchOp(left, right, func(a subtractor) (Value, *lunerr.Error) { return a.SubtractedBy(right) })
	case n.Op.Kind == lunlex.Mul:
		result, err = dispatchOp(left, right, func(a multiplier) (Value, *lunerr.Error) { return a.MultipliedBy(right) })
	case n.Op.Kind == lunlex.Div:
		result, err = dispatchOp(left, right, func(a divider) (Value, *lunerr.Error) { return a.DividedBy(right) })
	case n.Op.Kind == lunlex.Pow:
		result, err = dispatchOp(left, right, func(a power) (Value, *lunerr.Error) { return a.PoweredBy(right) })
	case n.Op.Kind == lunlex.EE:
		result, err = dispatchOp(left, right, func(a eqComparer) (Value, *lunerr.Error) { return a.ComparisonEQ(right) })
	case n.Op.Kind == lunlex.NE:
		result, err = dispatchOp(left, right, func(a neComparer) (Value, *lunerr.Error) { return a.ComparisonNE(right) })
	case n.Op.Kind == lunlex.LT:
		result, err = dispatchOp(left, right, func(a ltComparer) (Value, *lunerr.Error) { return a.ComparisonLT(right) })
	case n.Op.Kind == lunlex.GT:
		result, err = dispatchOp(left, right, func(a gtComparer) (Value, *lunerr.Error) { return a.ComparisonGT(right) })
	case n.Op.Kind == lunlex.LTE:
		result, err = dispatchOp(left, right, func(a lteComparer) (Value, *lunerr.Error) { return a.ComparisonLTE(right) })
	case n.Op.Kind == lunlex.GTE:
		result, err = dispatchOp(left, right, func(a gteComparer) (Value, *lunerr.Error) { return a.ComparisonGTE(right) })
	case n.Op.Matches(lunlex.Keyword, "y"):
		result, err = dispatchOp(left, right, func(a ander) (Value, *lunerr.Error) { return a.AndedBy(right) })
	case n.Op.Matches(lunlex.Keyword, "o"):
		result, err = dispatchOp(left, right, func(a orer) (Value, *lunerr.Error) { return a.OredBy(right) })
	default:
		err = IllegalOperation(left, right)
	}

	if err != nil {
		return res.Failure(err)
	}
	return res.Success(result.WithPos(n.PosStart, n.PosEnd).WithContext(ctx))
}

// dispatchOp type-asserts left against the operation interface T and, on a
// miss, reports the shared illegal-operation error rather than a panic —
// the Go expression of the original's per-type "illegal_operation" fallback.
func dispatchOp[T any](left, right Value, call func(T) (Value, *lunerr.Error)) (Value, *lunerr.Error) {
	impl, ok := left.(T)
	if !ok {
		return nil, IllegalOperation(left, right)
	}
	return call(impl)
}

func evalIf(n *lunast.IfNode, ctx *Context) *Result {
	res := NewResult()
	for _, c := range n.Cases {
		cond := res.Register(Eval(c.Condition, ctx))
		if res.ShouldPropagate() {
			return res
		}
		if cond.IsTrue() {
			value := res.Register(Eval(c.Body, ctx))
			if res.ShouldPropagate() {
				return res
			}
			if c.IsBlock {
				return res.Success(NilValue)
			}
			return res.Success(value)
		}
	}
	if n.Else != nil {
		value := res.Register(Eval(n.Else.Body, ctx))
		if res.ShouldPropagate() {
			return res
		}
		if n.Else.IsBlock {
			return res.Success(NilValue)
		}
		return res.Success(value)
	}
	return res.Success(NilValue)
}

func evalFor(n *lunast.ForNode, ctx *Context) *Result {
	res := NewResult()

	startVal := res.Register(Eval(n.StartValue, ctx))
	if res.ShouldPropagate() {
		return res
	}
	endVal := res.Register(Eval(n.EndValue, ctx))
	if res.ShouldPropagate() {
		return res
	}
	start, ok := startVal.(*Number)
	if !ok {
		return res.Failure(runtimeError(lunerr.TagInvalidType, n.StartValue.Start(), n.StartValue.End(),
			"el inicio del para tiene que ser un número", ctx))
	}
	end, ok := endVal.(*Number)
	if !ok {
		return res.Failure(runtimeError(lunerr.TagInvalidType, n.EndValue.Start(), n.EndValue.End(),
			"el final del para tiene que ser un número", ctx))
	}

	step := NewInt(1)
	if n.StepValue != nil {
		stepVal := res.Register(Eval(n.StepValue, ctx))
		if res.ShouldPropagate() {
			return res
		}
		s, ok := stepVal.(*Number)
		if !ok {
			return res.Failure(runtimeError(lunerr.TagInvalidType, n.StepValue.Start(), n.StepValue.End(),
				"el paso del para tiene que ser un número", ctx))
		}
		step = s
	}

	var elems []Value
	i := start.f()
	cond := func() bool {
		if step.f() >= 0 {
			return i < end.f()
		}
		return i > end.f()
	}

	for cond() {
		ctx.Env.Set(n.VarName.Str(), NewFloatOrInt(i))
		value := res.Register(Eval(n.Body, ctx))
		if res.LoopContinue {
			res.LoopContinue = false
		} else if res.LoopBreak {
			res.LoopBreak = false
			break
		} else if res.ShouldPropagate() {
			return res
		} else if !n.ShouldReturnNil {
			elems = append(elems, value)
		}
		i += step.f()
	}

	if n.ShouldReturnNil {
		return res.Success(NilValue)
	}
	return res.Success(NewList(elems).WithContext(ctx))
}

// NewFloatOrInt builds an integer Number when f has no fractional part and
// both loop endpoints were integral, otherwise a float — for is always
// driven by float64 internally but should read back as plain integers in
// the common counting-loop case.
func NewFloatOrInt(f float64) *Number {
	if f == float64(int64(f)) {
		return NewInt(int64(f))
	}
	return NewFloat(f)
}

func evalWhile(n *lunast.WhileNode, ctx *Context) *Result {
	res := NewResult()
	var elems []Value

	for {
		condVal := res.Register(Eval(n.Condition, ctx))
		if res.ShouldPropagate() {
			return res
		}
		if !condVal.IsTrue() {
			break
		}

		value := res.Register(Eval(n.Body, ctx))
		if res.LoopContinue {
			res.LoopContinue = false
		} else if res.LoopBreak {
			res.LoopBreak = false
			break
		} else if res.ShouldPropagate() {
			return res
		} else if !n.ShouldReturnNil {
			elems = append(elems, value)
		}
	}

	if n.ShouldReturnNil {
		return res.Success(NilValue)
	}
	return res.Success(NewList(elems).WithContext(ctx))
}

// buildFunction evaluates fn's parameter defaults in ctx (definition-time,
// per visit_LaburoDefNode) and builds the resulting Function value.
func buildFunction(fn *lunast.FuncDefNode, ctx *Context) (*Function, *Result) {
	res := NewResult()
	defaults := make([]Value, len(fn.Params))
	for i, p := range fn.Params {
		if p.Default == nil {
			continue
		}
		v := res.Register(Eval(p.Default, ctx))
		if res.ShouldPropagate() {
			return nil, res
		}
		defaults[i] = v
	}

	name := ""
	if fn.Name != nil {
		name = fn.Name.Str()
	}
	f := NewFunction(name, fn.Params, defaults, fn.Body, fn.ShouldAutoReturn, fn.IsMethod, ctx)
	f.PosStart, f.PosEnd = fn.PosStart, fn.PosEnd
	return f, nil
}

func evalFuncDef(n *lunast.FuncDefNode, ctx *Context) *Result {
	res := NewResult()
	f, errRes := buildFunction(n, ctx)
	if errRes != nil {
		return errRes
	}
	value := f.WithContext(ctx)
	if n.Name != nil && !n.IsMethod {
		ctx.Env.Set(n.Name.Str(), value)
	}
	return res.Success(value)
}

func evalCall(n *lunast.CallNode, ctx *Context) *Result {
	res := NewResult()
	calleeVal := res.Register(Eval(n.Callee, ctx))
	if res.ShouldPropagate() {
		return res
	}
	calleeVal = calleeVal.Copy().WithPos(n.PosStart, n.PosEnd).WithContext(ctx)

	args := make([]Value, 0, len(n.Args))
	for _, a := range n.Args {
		v := res.Register(Eval(a, ctx))
		if res.ShouldPropagate() {
			return res
		}
		args = append(args, v)
	}

	c, ok := calleeVal.(caller)
	if !ok {
		return res.Failure(runtimeError(lunerr.TagInvalidType, n.Callee.Start(), n.Callee.End(),
			"eso no se puede invocar", ctx))
	}

	returnValue := res.Register(c.Execute(args, ctx))
	if res.ShouldPropagate() {
		return res
	}
	return res.Success(returnValue.Copy().WithPos(n.PosStart, n.PosEnd).WithContext(ctx))
}

func evalClassDef(n *lunast.ClassDefNode, ctx *Context) *Result {
	res := NewResult()

	var parent *Class
	if n.ParentName != nil {
		v, ok := ctx.Env.Get(n.ParentName.Str())
		if !ok {
			return res.Failure(runtimeError(lunerr.TagUndefinedVar, n.ParentName.PosStart, n.ParentName.PosEnd,
				fmt.Sprintf("'%s' no está definido", n.ParentName.Str()), ctx))
		}
		p, ok := v.(*Class)
		if !ok {
			return res.Failure(runtimeError(lunerr.TagInvalidType, n.ParentName.PosStart, n.ParentName.PosEnd,
				"la clase padre tiene que ser un cheto", ctx))
		}
		parent = p
	}

	methods := make(map[string]*Function, len(n.Methods))
	for _, m := range n.Methods {
		f, errRes := buildFunction(m, ctx)
		if errRes != nil {
			return errRes
		}
		methods[f.Name] = f
	}
	if n.Constructor != nil {
		f, errRes := buildFunction(n.Constructor, ctx)
		if errRes != nil {
			return errRes
		}
		methods["arranque"] = f
	}

	class := NewClass(n.Name.Str(), methods, parent, ctx)
	class.PosStart, class.PosEnd = n.PosStart, n.PosEnd
	value := class.WithContext(ctx)
	ctx.Env.Set(n.Name.Str(), value)
	return res.Success(value)
}

func evalInstanceNew(n *lunast.InstanceNewNode, ctx *Context) *Result {
	res := NewResult()
	v, ok := ctx.Env.Get(n.ClassName.Str())
	if !ok {
		return res.Failure(runtimeError(lunerr.TagUndefinedVar, n.ClassName.PosStart, n.ClassName.PosEnd,
			fmt.Sprintf("'%s' no está definido", n.ClassName.Str()), ctx))
	}
	class, ok := v.(*Class)
	if !ok {
		return res.Failure(runtimeError(lunerr.TagInvalidType, n.ClassName.PosStart, n.ClassName.PosEnd,
			fmt.Sprintf("'%s' no es un cheto", n.ClassName.Str()), ctx))
	}

	args := make([]Value, 0, len(n.Args))
	for _, a := range n.Args {
		v := res.Register(Eval(a, ctx))
		if res.ShouldPropagate() {
			return res
		}
		args = append(args, v)
	}

	instance := res.Register(class.CreateInstance(args, ctx))
	if res.ShouldPropagate() {
		return res
	}
	return res.Success(instance.Copy().WithPos(n.PosStart, n.PosEnd).WithContext(ctx))
}

func lookupReceiverInstance(tok lunlex.Token, ctx *Context) (*Instance, *lunerr.Error) {
	v, ok := ctx.Env.Get(tok.Str())
	if !ok {
		v, ok = ctx.LookupAcrossModules(tok.Str())
	}
	if !ok {
		return nil, runtimeError(lunerr.TagUndefinedVar, tok.PosStart, tok.PosEnd,
			fmt.Sprintf("'%s' no está definido", tok.Str()), ctx)
	}
	inst, ok := v.(*Instance)
	if !ok {
		return nil, runtimeError(lunerr.TagAttributeError, tok.PosStart, tok.PosEnd,
			fmt.Sprintf("'%s' no es una instancia", tok.Str()), ctx)
	}
	return inst, nil
}

// walkInstanceChain walks chain from start, requiring every link (including
// the last) to resolve to another Instance — used where the caller needs an
// Instance to act on next (a method call receiver, or an assignment target).
func walkInstanceChain(start *Instance, chain []lunlex.Token, ctx *Context) (*Instance, *lunerr.Error) {
	current := start
	for _, tok := range chain {
		val, ok := current.GetInstanceVar(tok.Str())
		if !ok {
			return nil, runtimeError(lunerr.TagAttributeError, tok.PosStart, tok.PosEnd,
				fmt.Sprintf("'%s' no tiene un atributo '%s'", current.Class.Name, tok.Str()), ctx)
		}
		inst, ok := val.(*Instance)
		if !ok {
			return nil, runtimeError(lunerr.TagAttributeError, tok.PosStart, tok.PosEnd,
				fmt.Sprintf("'%s' no es una instancia", tok.Str()), ctx)
		}
		current = inst
	}
	return current, nil
}

// resolveAccessValue walks chain from start, same as walkInstanceChain
// except the final segment's value is returned as-is rather than required
// to be an Instance — used for a plain instance-variable read.
func resolveAccessValue(start *Instance, chain []lunlex.Token, ctx *Context) (Value, *lunerr.Error) {
	if len(chain) == 0 {
		return start, nil
	}
	prefix, err := walkInstanceChain(start, chain[:len(chain)-1], ctx)
	if err != nil {
		return nil, err
	}
	last := chain[len(chain)-1]
	val, ok := prefix.GetInstanceVar(last.Str())
	if !ok {
		return nil, runtimeError(lunerr.TagAttributeError, last.PosStart, last.PosEnd,
			fmt.Sprintf("'%s' no tiene un atributo '%s'", prefix.Class.Name, last.Str()), ctx)
	}
	return val, nil
}

func evalMethodCall(n *lunast.MethodCallNode, ctx *Context) *Result {
	res := NewResult()

	args := make([]Value, 0, len(n.Args))
	for _, a := range n.Args {
		v := res.Register(Eval(a, ctx))
		if res.ShouldPropagate() {
			return res
		}
		args = append(args, v)
	}

	receiver, err := lookupReceiverInstance(n.Receiver, ctx)
	if err != nil {
		return res.Failure(err)
	}
	target, err := walkInstanceChain(receiver, n.AccessChain, ctx)
	if err != nil {
		return res.Failure(err)
	}

	callArgs := append([]Value{NewString(n.Method.Str())}, args...)
	returnValue := res.Register(target.Execute(callArgs, ctx))
	if res.ShouldPropagate() {
		return res
	}
	return res.Success(returnValue.Copy().WithPos(n.PosStart, n.PosEnd).WithContext(ctx))
}

func evalInstanceVarAccess(n *lunast.InstanceVarAccessNode, ctx *Context) *Result {
	res := NewResult()
	receiver, err := lookupReceiverInstance(n.Receiver, ctx)
	if err != nil {
		return res.Failure(err)
	}
	value, err := resolveAccessValue(receiver, n.AccessChain, ctx)
	if err != nil {
		return res.Failure(err)
	}
	return res.Success(value.WithPos(n.PosStart, n.PosEnd).WithContext(ctx))
}

func evalInstanceVarAssign(n *lunast.InstanceVarAssignNode, ctx *Context) *Result {
	res := NewResult()
	receiver, err := lookupReceiverInstance(n.Receiver, ctx)
	if err != nil {
		return res.Failure(err)
	}
	value := res.Register(Eval(n.Value, ctx))
	if res.ShouldPropagate() {
		return res
	}
	receiver.SetInstanceVar(n.Name.Str(), value)
	return res.Success(value)
}

func evalInstanceVarAccessAndAssign(n *lunast.InstanceVarAccessAndAssignNode, ctx *Context) *Result {
	res := NewResult()
	receiver, err := lookupReceiverInstance(n.Receiver, ctx)
	if err != nil {
		return res.Failure(err)
	}
	prefix, err := walkInstanceChain(receiver, n.AccessChain[:len(n.AccessChain)-1], ctx)
	if err != nil {
		return res.Failure(err)
	}
	value := res.Register(Eval(n.Value, ctx))
	if res.ShouldPropagate() {
		return res
	}
	last := n.AccessChain[len(n.AccessChain)-1]
	prefix.SetInstanceVar(last.Str(), value)
	return res.Success(value)
}

func evalReturn(n *lunast.ReturnNode, ctx *Context) *Result {
	res := NewResult()
	value := Value(NilValue)
	if n.Value != nil {
		v := res.Register(Eval(n.Value, ctx))
		if res.ShouldPropagate() {
			return res
		}
		value = v
	}
	return res.SuccessReturn(value)
}

func evalImport(n *lunast.ImportNode, ctx *Context) *Result {
	res := NewResult()
	name := n.ModuleName.Str()

	if _, ok := ctx.GetModule(name); ok {
		return res.Success(NilValue)
	}
	if ctx.IsImporting(name) {
		return res.Failure(runtimeError(lunerr.TagFileNotFound, n.PosStart, n.PosEnd,
			fmt.Sprintf("importación cíclica detectada para '%s'", name), ctx))
	}

	ctx.BeginImport(name)
	defer ctx.EndImport(name)

	module, err := ImportModule(name, n.PosStart, n.PosEnd, ctx)
	if err != nil {
		return res.Failure(err)
	}
	ctx.AddModule(name, module)
	return res.Success(NilValue)
}

func evalTry(n *lunast.TryNode, ctx *Context) *Result {
	res := NewResult()
	tryValue := res.Register(Eval(n.TryBody, ctx))

	if res.Err != nil {
		matches := n.ErrorTag == nil || res.Err.Tag == n.ErrorTag.Str()
		if !matches {
			return res
		}
		res.Err = nil
		exceptValue := res.Register(Eval(n.ExceptBody, ctx))
		if res.ShouldPropagate() {
			return res
		}
		return res.Success(exceptValue)
	}
	if res.ShouldPropagate() {
		return res
	}
	return res.Success(tryValue)
}

// availableBardos is the set of error tags bardea can raise, grounded on
// AVAILABLE_BARDOS — the lex/parse-time and generic-type/index/key/value
// tags, but not the control-flow-adjacent ones (undefined var, zero
// division, recursion limit, attribute error, file not found), which only
// the evaluator itself produces.
var availableBardos = map[string]bool{
	lunerr.TagIllegalChar:   true,
	lunerr.TagInvalidSyntax: true,
	lunerr.TagExpectedChar:  true,
	lunerr.TagInvalidType:   true,
	lunerr.TagInvalidIndex:  true,
	lunerr.TagInvalidKey:    true,
	lunerr.TagInvalidValue:  true,
}

func evalRaise(n *lunast.RaiseNode, ctx *Context) *Result {
	res := NewResult()
	message := ""
	if n.Message != nil {
		v := res.Register(Eval(n.Message, ctx))
		if res.ShouldPropagate() {
			return res
		}
		message = v.String()
	}

	tag := n.ErrorTag.Str()
	if !availableBardos[tag] {
		return res.Failure(runtimeError(lunerr.TagInvalidValue, n.ErrorTag.PosStart, n.ErrorTag.PosEnd,
			fmt.Sprintf("'%s' no es una etiqueta de error que se pueda lanzar", tag), ctx))
	}

	return res.Failure(runtimeError(tag, n.PosStart, n.PosEnd, message, ctx))
}
