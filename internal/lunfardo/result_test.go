package lunfardo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lunfardo-lang/lunfardo/internal/lunerr"
	"github.com/lunfardo-lang/lunfardo/internal/lunlex"
)

func Test_Result_SuccessDoesNotPropagate(t *testing.T) {
	r := NewResult().Success(NewInt(1))
	assert.False(t, r.ShouldPropagate())
}

func Test_Result_FailurePropagates(t *testing.T) {
	r := NewResult().Failure(lunerr.New(lunerr.TagInvalidType, lunlex.Position{}, lunlex.Position{}, "bardo"))
	assert.True(t, r.ShouldPropagate())
}

func Test_Result_ReturnBreakContinuePropagate(t *testing.T) {
	assert.True(t, NewResult().SuccessReturn(NewInt(1)).ShouldPropagate())
	assert.True(t, NewResult().SuccessBreak().ShouldPropagate())
	assert.True(t, NewResult().SuccessContinue().ShouldPropagate())
}

func Test_Result_RegisterPropagatesChildSignal(t *testing.T) {
	parent := NewResult()
	child := NewResult().SuccessReturn(NewInt(5))

	v := parent.Register(child)
	assert.Nil(t, v)
	assert.True(t, parent.ShouldReturn)
	assert.Equal(t, int64(5), parent.ReturnValue.(*Number).IntVal)
}
