package lunfardo

import (
	"fmt"

	"github.com/lunfardo-lang/lunfardo/internal/lunerr"
	"github.com/lunfardo-lang/lunfardo/internal/lunlex"
)

// Instance is Lunfardo's ChetoInstance: a class reference and its own
// instance-variable map. Vars must stay named and typed exactly this way —
// Context.LookupAcrossModules reads it directly to resolve free variables
// off an imported module instance.
type Instance struct {
	ValueBase
	Class *Class
	Vars  map[string]Value
}

func NewInstance(class *Class) *Instance {
	return &Instance{Class: class, Vars: make(map[string]Value)}
}

func (i *Instance) TypeName() string { return i.Class.Name }
func (i *Instance) String() string   { return fmt.Sprintf("<instancia de %s>", i.Class.Name) }

func (i *Instance) WithPos(start, end lunlex.Position) Value {
	c := *i
	c.PosStart, c.PosEnd = start, end
	return &c
}

func (i *Instance) WithContext(ctx *Context) Value {
	c := *i
	c.Context = ctx
	return &c
}

func (i *Instance) Copy() Value {
	c := *i
	return &c
}

func (i *Instance) IsTrue() bool { return true }

// GetInstanceVar reads an instance variable, mirroring get_instance_var.
func (i *Instance) GetInstanceVar(name string) (Value, bool) {
	v, ok := i.Vars[name]
	return v, ok
}

// SetInstanceVar writes an instance variable, mirroring set_instance_var.
func (i *Instance) SetInstanceVar(name string, value Value) {
	i.Vars[name] = value
}

// Execute dispatches a method call: args[0] must be the method name (a
// String, per the [Chamuyo(method_name)] + args protocol MethodCallNode
// builds), looked up across this instance's class and its parent chain, then
// invoked with the instance prepended as the method's implicit first
// ("mi") parameter and the remaining args after it.
func (i *Instance) Execute(args []Value, callerContext *Context) *Result {
	res := NewResult()

	if len(args) == 0 {
		return res.Failure(lunerr.NewRuntime(lunerr.TagAttributeError, i.PosStart, i.PosEnd,
			"se necesita un nombre de método para ejecutar una instancia", nil))
	}

	nameVal, ok := args[0].(*String)
	if !ok {
		return res.Failure(lunerr.NewRuntime(lunerr.TagAttributeError, i.PosStart, i.PosEnd,
			"el nombre de método tiene que ser un chamuyo", nil))
	}

	method, ok := i.Class.GetMethod(nameVal.Value)
	if !ok {
		return res.Failure(lunerr.NewRuntime(lunerr.TagAttributeError, i.PosStart, i.PosEnd,
			fmt.Sprintf("'%s' no es un método de '%s'", nameVal.Value, i.Class.Name), nil))
	}

	methodArgs := append([]Value{Value(i)}, args[1:]...)
	returnValue := res.Register(method.Execute(methodArgs, callerContext))
	if res.ShouldPropagate() {
		return res
	}
	return res.Success(returnValue)
}
