package engine

import (
	"context"
	"testing"

	"letlang/engine/ast"
	"letlang/engine/errs"
	"letlang/engine/interpreter"
	"letlang/pcache"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestExecutor_Run(t *testing.T) {
	executor := NewExecutor(zap.NewNop(), mo.None[pcache.PCache](), 0)
	ctx := context.Background()

	found, err := executor.Run(ctx, "(let f = (function a (add (var a) (val 1))) in (call (var f) (val 4)))", interpreter.NewEnv())
	assert.NoError(t, err)
	assert.Equal(t, ast.MakeVal(5), found)

	// the environment is the caller's, so state carries over between runs
	env := interpreter.NewEnv()
	_, err = executor.Run(ctx, "(set x (val 41))", env)
	assert.NoError(t, err)
	found, err = executor.Run(ctx, "(add (var x) (val 1))", env)
	assert.NoError(t, err)
	assert.Equal(t, ast.MakeVal(42), found)

	// and a fresh one starts out empty
	_, err = executor.Run(ctx, "(var x)", interpreter.NewEnv())
	assert.ErrorIs(t, err, errs.ErrUndefinedVariable)

	_, err = executor.Run(ctx, "(add (val 1)", interpreter.NewEnv())
	assert.ErrorIs(t, err, errs.ErrParse)
}

func TestExecutor_MaxDepth(t *testing.T) {
	program := "(let f = (function n (call (var f) (var n))) in (call (var f) (val 1)))"
	executor := NewExecutor(zap.NewNop(), mo.None[pcache.PCache](), 100)
	_, err := executor.Run(context.Background(), program, interpreter.NewEnv())
	assert.ErrorIs(t, err, errs.ErrEval)

	unbounded := NewExecutor(zap.NewNop(), mo.None[pcache.PCache](), 0)
	assert.Equal(t, 0, unbounded.MaxDepth())
	bounded := unbounded.WithMaxDepth(100)
	assert.Equal(t, 100, bounded.MaxDepth())
	assert.Equal(t, 0, unbounded.MaxDepth())
	_, err = bounded.Run(context.Background(), program, interpreter.NewEnv())
	assert.ErrorIs(t, err, errs.ErrEval)
}

func TestExecutor_Cancelled(t *testing.T) {
	executor := NewExecutor(zap.NewNop(), mo.None[pcache.PCache](), 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := executor.Run(ctx, "(add (val 1) (val 2))", interpreter.NewEnv())
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, err, errs.ErrEval)
	assert.Equal(t, OutcomeEvalError, Outcome(err))
}

func TestExecutor_Cache(t *testing.T) {
	cache, err := pcache.NewPCache(1<<16, 1<<6)
	require.NoError(t, err)
	defer cache.Close()
	executor := NewExecutor(zap.NewNop(), mo.Some(cache), 0)
	ctx := context.Background()

	program := "(add (val 1) (val 2))"
	first, err := executor.Parse(ctx, program)
	require.NoError(t, err)
	cache.Wait()
	second, err := executor.Parse(ctx, program)
	require.NoError(t, err)
	// second parse was served from the cache
	assert.Same(t, first, second)

	// failures are not cached
	_, err = executor.Parse(ctx, "(bogus)")
	assert.ErrorIs(t, err, errs.ErrParse)
	cache.Wait()
	_, ok := cache.Get("(bogus)")
	assert.False(t, ok)

	// cached trees evaluate like fresh ones
	found, err := executor.Run(ctx, program, interpreter.NewEnv())
	assert.NoError(t, err)
	assert.Equal(t, ast.MakeVal(3), found)
}

func TestExecutor_Logs(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	executor := NewExecutor(zap.New(core), mo.None[pcache.PCache](), 0)
	_, err := executor.Run(context.Background(), "(var nope)", interpreter.NewEnv())
	assert.Error(t, err)

	failed := logs.FilterMessage("program failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, OutcomeUndefinedVariable, failed[0].ContextMap()["outcome"])
	// the trace of the run is logged as well
	assert.Equal(t, 1, logs.FilterMessageSnippet("====Trace====").Len())
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, OutcomeOK, Outcome(nil))
	assert.Equal(t, OutcomeParseError, Outcome(errs.Parsef("nope")))
	assert.Equal(t, OutcomeUndefinedVariable, Outcome(errs.Wrap("add", errs.Undefined("x"))))
	assert.Equal(t, OutcomeTypeError, Outcome(errs.Wrap("call", errs.ErrType)))
	assert.Equal(t, OutcomeEvalError, Outcome(errs.ErrEmptyBlock))
	assert.Equal(t, OutcomeOther, Outcome(assert.AnError))

	before := testutil.ToFloat64(programsRun.WithLabelValues(OutcomeTypeError))
	executor := NewExecutor(zap.NewNop(), mo.None[pcache.PCache](), 0)
	_, err := executor.Run(context.Background(), "(add (function a (var a)) (val 1))", interpreter.NewEnv())
	assert.ErrorIs(t, err, errs.ErrType)
	assert.Equal(t, before+1, testutil.ToFloat64(programsRun.WithLabelValues(OutcomeTypeError)))
}
