package engine

import (
	"context"
	"errors"

	"letlang/engine/ast"
	"letlang/engine/errs"
	"letlang/engine/interpreter"
	"letlang/engine/parser"
	"letlang/lib/timer"
	"letlang/pcache"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/samber/mo"
	"go.uber.org/zap"
)

var programsRun = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "programs_run_total",
	Help: "Number of programs run, by outcome",
}, []string{"outcome"})

const (
	OutcomeOK                = "ok"
	OutcomeParseError        = "parse_error"
	OutcomeUndefinedVariable = "undefined_variable"
	OutcomeTypeError         = "type_error"
	OutcomeEvalError         = "eval_error"
	OutcomeOther             = "other"
)

// Outcome classifies the error returned by Run.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, errs.ErrParse):
		return OutcomeParseError
	case errors.Is(err, errs.ErrUndefinedVariable):
		return OutcomeUndefinedVariable
	case errors.Is(err, errs.ErrType):
		return OutcomeTypeError
	case errors.Is(err, errs.ErrEval):
		return OutcomeEvalError
	default:
		return OutcomeOther
	}
}

type Executor struct {
	logger   *zap.Logger
	cache    mo.Option[pcache.PCache]
	maxDepth int
}

func NewExecutor(logger *zap.Logger, cache mo.Option[pcache.PCache], maxDepth int) Executor {
	return Executor{logger: logger, cache: cache, maxDepth: maxDepth}
}

// MaxDepth is the evaluation depth limit, 0 when there is none.
func (ex Executor) MaxDepth() int {
	return ex.maxDepth
}

// WithMaxDepth returns a copy of ex that evaluates with the given depth limit.
func (ex Executor) WithMaxDepth(depth int) Executor {
	ex.maxDepth = depth
	return ex
}

// Parse returns the tree of program, from the parse cache if there is one.
func (ex Executor) Parse(ctx context.Context, program string) (ast.Ast, error) {
	defer timer.Start(ctx, "parser.parse").Stop()
	cache, cached := ex.cache.Get()
	if cached {
		if tree, ok := cache.Get(program); ok {
			return tree, nil
		}
	}
	tree, err := parser.ParseString(program)
	if err != nil {
		return nil, err
	}
	if cached {
		cache.Set(program, tree)
	}
	return tree, nil
}

// Exec evaluates tree against env, giving up once ctx is done. The caller
// owns env; it must not be used by anyone else until Exec returns.
func (ex Executor) Exec(ctx context.Context, tree ast.Ast, env *interpreter.Env) (ast.Ast, error) {
	defer timer.Start(ctx, "interpreter.eval").Stop()
	return interpreter.NewInterpreter(env,
		interpreter.WithMaxDepth(ex.maxDepth),
		interpreter.WithContext(ctx),
	).Eval(tree)
}

// Run parses and evaluates program against env.
func (ex Executor) Run(ctx context.Context, program string, env *interpreter.Env) (ast.Ast, error) {
	ctx = timer.WithTracing(ctx)
	ret, err := ex.run(ctx, program, env)
	outcome := Outcome(err)
	programsRun.WithLabelValues(outcome).Inc()
	if err != nil {
		ex.logger.Debug("program failed", zap.String("outcome", outcome), zap.Error(err))
	} else {
		ex.logger.Debug("program finished", zap.String("result", ast.Keyword(ret)))
	}
	if terr := timer.LogTracingInfo(ctx, ex.logger); terr != nil {
		ex.logger.Warn("could not log trace", zap.Error(terr))
	}
	return ret, err
}

func (ex Executor) run(ctx context.Context, program string, env *interpreter.Env) (ast.Ast, error) {
	tree, err := ex.Parse(ctx, program)
	if err != nil {
		return nil, err
	}
	return ex.Exec(ctx, tree, env)
}
