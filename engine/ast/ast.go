package ast

import (
	"fmt"
)

type VisitorString interface {
	VisitVal(n int64) string
	VisitVar(name string) string
	VisitAdd(left, right Ast) string
	VisitIfelse(left, right, thenDo, elseDo Ast) string
	VisitLet(name string, bound, body Ast) string
	VisitFunction(param string, body Ast) string
	VisitCall(fn, arg Ast) string
	VisitSet(name string, value Ast) string
	VisitBlock(exprs []Ast) string
}

type VisitorValue interface {
	VisitVal(n int64) (Ast, error)
	VisitVar(name string) (Ast, error)
	VisitAdd(left, right Ast) (Ast, error)
	VisitIfelse(left, right, thenDo, elseDo Ast) (Ast, error)
	VisitLet(name string, bound, body Ast) (Ast, error)
	VisitFunction(param string, body Ast) (Ast, error)
	VisitCall(fn, arg Ast) (Ast, error)
	VisitSet(name string, value Ast) (Ast, error)
	VisitBlock(exprs []Ast) (Ast, error)
}

// Ast is an expression node. Nodes are never mutated after construction, so
// subtrees (function bodies in particular) can be shared between the tree and
// environment bindings.
type Ast interface {
	AcceptValue(v VisitorValue) (Ast, error)
	AcceptString(v VisitorString) string
	Equals(Ast) bool
}

var _ Ast = (*Val)(nil)
var _ Ast = (*Var)(nil)
var _ Ast = (*Add)(nil)
var _ Ast = (*IfElse)(nil)
var _ Ast = (*Let)(nil)
var _ Ast = (*Function)(nil)
var _ Ast = (*Call)(nil)
var _ Ast = (*Set)(nil)
var _ Ast = (*Block)(nil)

type Val struct {
	Value int64
}

type Var struct {
	Name string
}

type Add struct {
	Left  Ast
	Right Ast
}

// IfElse evaluates ThenDo when Left > Right and ElseDo otherwise.
type IfElse struct {
	Left   Ast
	Right  Ast
	ThenDo Ast
	ElseDo Ast
}

type Let struct {
	Name  string
	Bound Ast
	Body  Ast
}

type Function struct {
	Param string
	Body  Ast
}

type Call struct {
	Fn  Ast
	Arg Ast
}

// Set rebinds Name to Value as written, without evaluating it.
type Set struct {
	Name  string
	Value Ast
}

type Block struct {
	Exprs []Ast
}

func (a *Val) AcceptValue(v VisitorValue) (Ast, error) {
	return v.VisitVal(a.Value)
}

func (a *Val) AcceptString(v VisitorString) string {
	return v.VisitVal(a.Value)
}

func (a *Val) Equals(o Ast) bool {
	other, ok := o.(*Val)
	return ok && a.Value == other.Value
}

func (r *Var) AcceptValue(v VisitorValue) (Ast, error) {
	return v.VisitVar(r.Name)
}

func (r *Var) AcceptString(v VisitorString) string {
	return v.VisitVar(r.Name)
}

func (r *Var) Equals(o Ast) bool {
	other, ok := o.(*Var)
	return ok && r.Name == other.Name
}

func (a *Add) AcceptValue(v VisitorValue) (Ast, error) {
	return v.VisitAdd(a.Left, a.Right)
}

func (a *Add) AcceptString(v VisitorString) string {
	return v.VisitAdd(a.Left, a.Right)
}

func (a *Add) Equals(o Ast) bool {
	other, ok := o.(*Add)
	return ok && a.Left.Equals(other.Left) && a.Right.Equals(other.Right)
}

func (ie *IfElse) AcceptValue(v VisitorValue) (Ast, error) {
	return v.VisitIfelse(ie.Left, ie.Right, ie.ThenDo, ie.ElseDo)
}

func (ie *IfElse) AcceptString(v VisitorString) string {
	return v.VisitIfelse(ie.Left, ie.Right, ie.ThenDo, ie.ElseDo)
}

func (ie *IfElse) Equals(o Ast) bool {
	other, ok := o.(*IfElse)
	return ok && ie.Left.Equals(other.Left) && ie.Right.Equals(other.Right) &&
		ie.ThenDo.Equals(other.ThenDo) && ie.ElseDo.Equals(other.ElseDo)
}

func (l *Let) AcceptValue(v VisitorValue) (Ast, error) {
	return v.VisitLet(l.Name, l.Bound, l.Body)
}

func (l *Let) AcceptString(v VisitorString) string {
	return v.VisitLet(l.Name, l.Bound, l.Body)
}

func (l *Let) Equals(o Ast) bool {
	other, ok := o.(*Let)
	return ok && l.Name == other.Name && l.Bound.Equals(other.Bound) && l.Body.Equals(other.Body)
}

func (f *Function) AcceptValue(v VisitorValue) (Ast, error) {
	return v.VisitFunction(f.Param, f.Body)
}

func (f *Function) AcceptString(v VisitorString) string {
	return v.VisitFunction(f.Param, f.Body)
}

func (f *Function) Equals(o Ast) bool {
	other, ok := o.(*Function)
	return ok && f.Param == other.Param && f.Body.Equals(other.Body)
}

func (c *Call) AcceptValue(v VisitorValue) (Ast, error) {
	return v.VisitCall(c.Fn, c.Arg)
}

func (c *Call) AcceptString(v VisitorString) string {
	return v.VisitCall(c.Fn, c.Arg)
}

func (c *Call) Equals(o Ast) bool {
	other, ok := o.(*Call)
	return ok && c.Fn.Equals(other.Fn) && c.Arg.Equals(other.Arg)
}

func (s *Set) AcceptValue(v VisitorValue) (Ast, error) {
	return v.VisitSet(s.Name, s.Value)
}

func (s *Set) AcceptString(v VisitorString) string {
	return v.VisitSet(s.Name, s.Value)
}

func (s *Set) Equals(o Ast) bool {
	other, ok := o.(*Set)
	return ok && s.Name == other.Name && s.Value.Equals(other.Value)
}

func (b *Block) AcceptValue(v VisitorValue) (Ast, error) {
	return v.VisitBlock(b.Exprs)
}

func (b *Block) AcceptString(v VisitorString) string {
	return v.VisitBlock(b.Exprs)
}

func (b *Block) Equals(o Ast) bool {
	other, ok := o.(*Block)
	if !ok || len(b.Exprs) != len(other.Exprs) {
		return false
	}
	for i := range b.Exprs {
		if !b.Exprs[i].Equals(other.Exprs[i]) {
			return false
		}
	}
	return true
}

// Keyword returns the leading keyword that introduces the node in source form.
func Keyword(node Ast) string {
	switch node.(type) {
	case *Val:
		return "val"
	case *Var:
		return "var"
	case *Add:
		return "add"
	case *IfElse:
		return "if"
	case *Let:
		return "let"
	case *Function:
		return "function"
	case *Call:
		return "call"
	case *Set:
		return "set"
	case *Block:
		return "block"
	}
	panic(fmt.Sprintf("unexpected node type: %T", node))
}
