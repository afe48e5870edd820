package ast

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Printer renders nodes in the same prefix notation the parser reads.
type Printer struct{}

var _ VisitorString = Printer{}

// String renders node with a Printer.
func String(node Ast) string {
	return node.AcceptString(Printer{})
}

func (p Printer) VisitVal(n int64) string {
	return fmt.Sprintf("(val %d)", n)
}

func (p Printer) VisitVar(name string) string {
	return fmt.Sprintf("(var %s)", name)
}

func (p Printer) VisitAdd(left, right Ast) string {
	return fmt.Sprintf("(add %s %s)", left.AcceptString(p), right.AcceptString(p))
}

func (p Printer) VisitIfelse(left, right, thenDo, elseDo Ast) string {
	return fmt.Sprintf("(if %s %s then %s else %s)",
		left.AcceptString(p),
		right.AcceptString(p),
		thenDo.AcceptString(p),
		elseDo.AcceptString(p),
	)
}

func (p Printer) VisitLet(name string, bound, body Ast) string {
	return fmt.Sprintf("(let %s = %s in %s)", name, bound.AcceptString(p), body.AcceptString(p))
}

func (p Printer) VisitFunction(param string, body Ast) string {
	return fmt.Sprintf("(function %s %s)", param, body.AcceptString(p))
}

func (p Printer) VisitCall(fn, arg Ast) string {
	return fmt.Sprintf("(call %s %s)", fn.AcceptString(p), arg.AcceptString(p))
}

func (p Printer) VisitSet(name string, value Ast) string {
	return fmt.Sprintf("(set %s %s)", name, value.AcceptString(p))
}

func (p Printer) VisitBlock(exprs []Ast) string {
	if len(exprs) == 0 {
		return "(block)"
	}
	parts := lo.Map(exprs, func(e Ast, _ int) string {
		return e.AcceptString(p)
	})
	var sb strings.Builder
	sb.WriteString("(block ")
	sb.WriteString(strings.Join(parts, " "))
	sb.WriteByte(')')
	return sb.String()
}
