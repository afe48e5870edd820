package interpreter

import (
	"context"
	"fmt"

	"letlang/engine/ast"
	"letlang/engine/errs"
)

type Interpreter struct {
	ctx      context.Context
	env      *Env
	maxDepth int
	depth    int
}

var _ ast.VisitorValue = (*Interpreter)(nil)

type Option func(*Interpreter)

// WithMaxDepth bounds how deeply evaluation may nest. Zero means no bound.
func WithMaxDepth(depth int) Option {
	return func(i *Interpreter) {
		i.maxDepth = depth
	}
}

// WithContext stops evaluation with an error once ctx is done.
func WithContext(ctx context.Context) Option {
	return func(i *Interpreter) {
		i.ctx = ctx
	}
}

func NewInterpreter(env *Env, opts ...Option) *Interpreter {
	ret := &Interpreter{ctx: context.Background(), env: env}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Eval reduces tree against the interpreter's environment.
func (i *Interpreter) Eval(tree ast.Ast) (ast.Ast, error) {
	return i.visit(tree)
}

func (i *Interpreter) visit(tree ast.Ast) (ast.Ast, error) {
	if i.maxDepth > 0 && i.depth >= i.maxDepth {
		return nil, fmt.Errorf("%w: exceeded max depth of %d", errs.ErrEval, i.maxDepth)
	}
	if err := i.ctx.Err(); err != nil {
		return nil, errs.Wrap("eval", err)
	}
	i.depth++
	defer func() { i.depth-- }()
	return tree.AcceptValue(i)
}

func intValue(node ast.Ast) (int64, error) {
	v, ok := node.(*ast.Val)
	if !ok {
		return 0, fmt.Errorf("%w: expected a value but found: %s", errs.ErrType, ast.String(node))
	}
	return v.Value, nil
}

func (i *Interpreter) evalInt(tree ast.Ast) (int64, error) {
	v, err := i.visit(tree)
	if err != nil {
		return 0, err
	}
	return intValue(v)
}

func (i *Interpreter) VisitVal(n int64) (ast.Ast, error) {
	return &ast.Val{Value: n}, nil
}

func (i *Interpreter) VisitVar(name string) (ast.Ast, error) {
	return i.env.Lookup(name)
}

func (i *Interpreter) VisitAdd(left, right ast.Ast) (ast.Ast, error) {
	l, err := i.evalInt(left)
	if err != nil {
		return nil, errs.Wrap("add", err)
	}
	r, err := i.evalInt(right)
	if err != nil {
		return nil, errs.Wrap("add", err)
	}
	return &ast.Val{Value: l + r}, nil
}

func (i *Interpreter) VisitIfelse(left, right, thenDo, elseDo ast.Ast) (ast.Ast, error) {
	l, err := i.evalInt(left)
	if err != nil {
		return nil, errs.Wrap("if", err)
	}
	r, err := i.evalInt(right)
	if err != nil {
		return nil, errs.Wrap("if", err)
	}
	branch := elseDo
	if l > r {
		branch = thenDo
	}
	ret, err := i.visit(branch)
	if err != nil {
		return nil, errs.Wrap("if", err)
	}
	return ret, nil
}

func (i *Interpreter) VisitLet(name string, bound, body ast.Ast) (ret ast.Ast, err error) {
	val, err := i.visit(bound)
	if err != nil {
		return nil, errs.Wrap("let", err)
	}
	i.env.Bind(name, val)
	defer func() { ret, err = i.unbind(ret, err) }()
	// only a function written in place gets a snapshot
	if _, ok := bound.(*ast.Function); ok {
		i.env.Capture(name)
	}
	ret, err = i.visit(body)
	if err != nil {
		return nil, errs.Wrap("let", err)
	}
	return ret, nil
}

// unbind undoes the latest Bind. A failed Unbind replaces a successful
// result but never masks an earlier error.
func (i *Interpreter) unbind(ret ast.Ast, err error) (ast.Ast, error) {
	if uerr := i.env.Unbind(); uerr != nil && err == nil {
		return nil, uerr
	}
	return ret, err
}

func (i *Interpreter) VisitFunction(param string, body ast.Ast) (ast.Ast, error) {
	return &ast.Function{Param: param, Body: body}, nil
}

func (i *Interpreter) VisitCall(fn, arg ast.Ast) (ast.Ast, error) {
	ret, err := i.call(fn, arg)
	if err != nil {
		return nil, errs.Wrap("call", err)
	}
	return ret, nil
}

func (i *Interpreter) call(fn, arg ast.Ast) (ast.Ast, error) {
	switch f := fn.(type) {
	case *ast.Var:
		resolved, err := i.env.Lookup(f.Name)
		if err != nil {
			return nil, err
		}
		function, err := asFunction(resolved)
		if err != nil {
			return nil, err
		}
		argVal, err := i.visit(arg)
		if err != nil {
			return nil, err
		}
		snapshot, ok := i.env.closure(f.Name)
		if !ok {
			// bound by set or as a parameter: nothing was captured
			return i.apply(function, argVal)
		}
		return i.applyIn(snapshot, function, argVal)
	case *ast.Function:
		argVal, err := i.visit(arg)
		if err != nil {
			return nil, err
		}
		return i.apply(f, argVal)
	default:
		resolved, err := i.visit(fn)
		if err != nil {
			return nil, err
		}
		function, err := asFunction(resolved)
		if err != nil {
			return nil, err
		}
		argVal, err := i.visit(arg)
		if err != nil {
			return nil, err
		}
		return i.apply(function, argVal)
	}
}

func asFunction(node ast.Ast) (*ast.Function, error) {
	function, ok := node.(*ast.Function)
	if !ok {
		return nil, fmt.Errorf("%w: expected a function but found: %s", errs.ErrType, ast.String(node))
	}
	return function, nil
}

// apply evaluates the body of function in the live table with its parameter
// bound to arg.
func (i *Interpreter) apply(function *ast.Function, arg ast.Ast) (ret ast.Ast, err error) {
	i.env.Bind(function.Param, arg)
	defer func() { ret, err = i.unbind(ret, err) }()
	return i.visit(function.Body)
}

// applyIn is apply against a copy of snapshot instead of the live table.
// What the call changed is merged back into the live table once it returns
// successfully.
func (i *Interpreter) applyIn(snapshot bindings, function *ast.Function, arg ast.Ast) (ast.Ast, error) {
	active := make(bindings, len(snapshot)+1)
	for k, v := range snapshot {
		active[k] = v
	}
	ret, err := func() (ast.Ast, error) {
		live := i.env.swap(active)
		defer i.env.swap(live)
		return i.apply(function, arg)
	}()
	if err != nil {
		return nil, err
	}
	i.env.merge(active, snapshot)
	return ret, nil
}

// VisitSet installs value as written, it is not evaluated.
func (i *Interpreter) VisitSet(name string, value ast.Ast) (ast.Ast, error) {
	i.env.Set(name, value)
	return &ast.Set{Name: name, Value: value}, nil
}

func (i *Interpreter) VisitBlock(exprs []ast.Ast) (ast.Ast, error) {
	if len(exprs) == 0 {
		return nil, errs.ErrEmptyBlock
	}
	var ret ast.Ast
	var err error
	for _, expr := range exprs {
		ret, err = i.visit(expr)
		if err != nil {
			return nil, errs.Wrap("block", err)
		}
	}
	return ret, nil
}
