package interpreter

import (
	"testing"

	"letlang/engine/ast"
	"letlang/engine/errs"
	"letlang/lib/stack"

	"github.com/stretchr/testify/assert"
)

func TestEnv_Bind_Lookup(t *testing.T) {
	env := NewEnv()
	_, err := env.Lookup("var")
	assert.ErrorIs(t, err, errs.ErrUndefinedVariable)

	env.Bind("var", ast.MakeVal(1))
	ret, err := env.Lookup("var")
	assert.NoError(t, err)
	assert.Equal(t, ast.MakeVal(1), ret)

	// shadow, then unwind one level at a time
	env.Bind("var", ast.MakeVal(2))
	ret, _ = env.Lookup("var")
	assert.Equal(t, ast.MakeVal(2), ret)
	assert.Equal(t, 2, env.Depth())

	assert.NoError(t, env.Unbind())
	ret, _ = env.Lookup("var")
	assert.Equal(t, ast.MakeVal(1), ret)
	assert.NoError(t, env.Unbind())
	_, err = env.Lookup("var")
	assert.Error(t, err)

	// unbalanced unbind is reported
	assert.ErrorIs(t, env.Unbind(), stack.Underflow)
}

func TestEnv_Set(t *testing.T) {
	env := NewEnv()
	env.Set("x", ast.MakeVal(1))
	env.Bind("y", ast.MakeVal(2))
	env.Set("x", ast.MakeVal(3))
	assert.NoError(t, env.Unbind())
	// set is not undone by unrelated unbinds
	ret, err := env.Lookup("x")
	assert.NoError(t, err)
	assert.Equal(t, ast.MakeVal(3), ret)
	assert.Equal(t, map[string]ast.Ast{"x": ast.MakeVal(3)}, env.Bindings())
}

func TestEnv_Capture(t *testing.T) {
	env := NewEnv()
	env.Bind("x", ast.MakeVal(1))
	f := &ast.Function{Param: "a", Body: ast.MakeVar("x")}
	env.Bind("f", f)
	env.Capture("f")

	snapshot, ok := env.closure("f")
	assert.True(t, ok)
	assert.Equal(t, bindings{"x": ast.MakeVal(1), "f": f}, snapshot)

	// later changes to the live table do not reach the snapshot
	env.Set("x", ast.MakeVal(2))
	env.Bind("y", ast.MakeVal(3))
	snapshot, _ = env.closure("f")
	assert.Equal(t, ast.MakeVal(1), snapshot["x"])
	assert.NotContains(t, snapshot, "y")

	// rebinding the name hides the snapshot until it is unbound
	env.Bind("f", ast.MakeVal(4))
	_, ok = env.closure("f")
	assert.False(t, ok)
	assert.NoError(t, env.Unbind())
	_, ok = env.closure("f")
	assert.True(t, ok)

	// set drops it for good
	env.Set("f", ast.MakeVal(5))
	_, ok = env.closure("f")
	assert.False(t, ok)
}

func TestEnv_SwapMerge(t *testing.T) {
	env := NewEnv()
	one := ast.MakeVal(1)
	env.Set("x", ast.MakeVal(10))
	snapshot := bindings{"x": one, "y": one}
	active := bindings{"x": one, "y": ast.MakeVal(2), "z": ast.MakeVal(3)}

	live := env.swap(active)
	ret, _ := env.Lookup("z")
	assert.Equal(t, ast.MakeVal(3), ret)
	env.swap(live)

	env.merge(active, snapshot)
	// x was untouched by the call, so the live value wins
	assert.Equal(t, map[string]ast.Ast{
		"x": ast.MakeVal(10),
		"y": ast.MakeVal(2),
		"z": ast.MakeVal(3),
	}, env.Bindings())
}
