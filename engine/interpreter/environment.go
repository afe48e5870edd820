package interpreter

import (
	"fmt"

	"letlang/engine/ast"
	"letlang/engine/errs"
	"letlang/lib/stack"

	"github.com/samber/lo"
	"github.com/samber/mo"
)

type bindings map[string]ast.Ast

// frame remembers what a scoped binding shadowed so it can be put back
type frame struct {
	name    string
	binding mo.Option[ast.Ast]
	closure mo.Option[bindings]
}

// Env maps identifiers to the expressions bound to them.
//
// Besides the live table, Env keeps for every identifier that a let bound
// to a function literal a snapshot of the table as it was at that moment.
// Calls through that identifier run against a copy of the snapshot, which
// is what gives functions lexical scope.
type Env struct {
	table    bindings
	closures map[string]bindings
	saved    stack.Stack[frame]
}

func NewEnv() *Env {
	return &Env{
		table:    make(bindings),
		closures: make(map[string]bindings),
		saved:    stack.New[frame](16),
	}
}

func (e *Env) Lookup(name string) (ast.Ast, error) {
	if ret, ok := e.table[name]; ok {
		return ret, nil
	}
	return nil, errs.Undefined(name)
}

// Bind installs value under name until the matching Unbind. Whatever name
// was bound to before, and its snapshot, are restored by Unbind.
func (e *Env) Bind(name string, value ast.Ast) {
	f := frame{name: name, binding: mo.None[ast.Ast](), closure: mo.None[bindings]()}
	if prev, ok := e.table[name]; ok {
		f.binding = mo.Some(prev)
	}
	if prev, ok := e.closures[name]; ok {
		f.closure = mo.Some(prev)
	}
	e.saved.Push(f)
	e.table[name] = value
	delete(e.closures, name)
}

// Unbind undoes the most recent Bind that has not been undone yet.
func (e *Env) Unbind() error {
	f, err := e.saved.Pop()
	if err != nil {
		return fmt.Errorf("unbind without matching bind: %w", err)
	}
	if prev, ok := f.binding.Get(); ok {
		e.table[f.name] = prev
	} else {
		delete(e.table, f.name)
	}
	if prev, ok := f.closure.Get(); ok {
		e.closures[f.name] = prev
	} else {
		delete(e.closures, f.name)
	}
	return nil
}

// Capture snapshots the whole live table as the lexical environment of
// the function bound to name.
func (e *Env) Capture(name string) {
	e.closures[name] = lo.Assign(e.table)
}

func (e *Env) closure(name string) (bindings, bool) {
	ret, ok := e.closures[name]
	return ret, ok
}

// Set permanently rebinds name. No enclosing scope restores what it replaced.
func (e *Env) Set(name string, value ast.Ast) {
	e.table[name] = value
	delete(e.closures, name)
}

// swap makes t the live table and returns the previous one
func (e *Env) swap(t bindings) bindings {
	prev := e.table
	e.table = t
	return prev
}

// merge copies into the live table every binding of active that is new or
// different from what the snapshot it was copied from holds.
func (e *Env) merge(active, snapshot bindings) {
	changed := lo.PickBy(active, func(name string, v ast.Ast) bool {
		old, ok := snapshot[name]
		return !ok || old != v
	})
	for name, v := range changed {
		e.table[name] = v
	}
}

// Bindings returns a copy of the live table.
func (e *Env) Bindings() map[string]ast.Ast {
	return lo.Assign(e.table)
}

// Depth is the number of scoped bindings currently in effect.
func (e *Env) Depth() int {
	return e.saved.Len()
}
