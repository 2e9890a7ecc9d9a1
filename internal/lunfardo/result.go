package lunfardo

import "github.com/lunfardo-lang/lunfardo/internal/lunerr"

// Result ("Outcome") is the control-flow carrier every evaluator dispatch
// returns, propagating a value or one of error/return/continue/break
// without exceptions, generalized from the original's RTResult.
type Result struct {
	Value        Value
	Err          *lunerr.Error
	ReturnValue  Value
	ShouldReturn bool
	LoopContinue bool
	LoopBreak    bool
}

func NewResult() *Result { return &Result{} }

// Register folds another Result into this one, propagating its signal
// state, and returns its value for the caller to keep using inline — the
// idiom every evaluator visit method uses to short-circuit on a child's
// signal.
func (r *Result) Register(other *Result) Value {
	r.Err = other.Err
	if other.ShouldReturn {
		r.ReturnValue = other.ReturnValue
		r.ShouldReturn = true
	}
	r.LoopContinue = other.LoopContinue
	r.LoopBreak = other.LoopBreak
	return other.Value
}

func (r *Result) Success(value Value) *Result {
	*r = Result{Value: value}
	return r
}

func (r *Result) SuccessReturn(value Value) *Result {
	*r = Result{ReturnValue: value, ShouldReturn: true}
	return r
}

func (r *Result) SuccessContinue() *Result {
	*r = Result{LoopContinue: true}
	return r
}

func (r *Result) SuccessBreak() *Result {
	*r = Result{LoopBreak: true}
	return r
}

func (r *Result) Failure(err *lunerr.Error) *Result {
	*r = Result{Err: err}
	return r
}

// ShouldPropagate reports whether this result carries a signal that must
// abort evaluation of the enclosing construct rather than flow to the next
// statement: an error, a pending function return, or a pending loop
// continue/break.
func (r *Result) ShouldPropagate() bool {
	return r.Err != nil || r.ShouldReturn || r.LoopContinue || r.LoopBreak
}
