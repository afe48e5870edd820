package parser

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"letlang/engine/ast"
	"letlang/engine/errs"
)

// Parser builds an expression tree out of parenthesized prefix notation:
//
//	(let f = (function a (add (var a) (val 1))) in (call (var f) (val 4)))
//
// Parentheses are stripped from words rather than treated as delimiters of
// their own, so they are mostly cosmetic. They still matter for `block`,
// which keeps reading expressions until its own parenthesis is closed.
type Parser struct {
	tok *tokenizer
}

func NewParser(r io.Reader) *Parser {
	return &Parser{tok: newTokenizer(r)}
}

// Parse reads a single expression from r. Anything after it is ignored.
func Parse(r io.Reader) (ast.Ast, error) {
	return NewParser(r).ReadAndCreate()
}

func ParseString(s string) (ast.Ast, error) {
	return Parse(strings.NewReader(s))
}

// ReadAndCreate consumes exactly the words of the next expression and
// returns its tree.
func (p *Parser) ReadAndCreate() (ast.Ast, error) {
	keyword, err := p.tok.next()
	if err != nil {
		return nil, err
	}
	switch keyword {
	case "val":
		return p.readVal()
	case "var":
		name, err := p.tok.next()
		if err != nil {
			return nil, err
		}
		return &ast.Var{Name: name}, nil
	case "add":
		operands, err := p.readN(2)
		if err != nil {
			return nil, err
		}
		return &ast.Add{Left: operands[0], Right: operands[1]}, nil
	case "if":
		return p.readIf()
	case "let":
		return p.readLet()
	case "function":
		param, err := p.tok.next()
		if err != nil {
			return nil, err
		}
		body, err := p.ReadAndCreate()
		if err != nil {
			return nil, err
		}
		return &ast.Function{Param: param, Body: body}, nil
	case "call":
		operands, err := p.readN(2)
		if err != nil {
			return nil, err
		}
		return &ast.Call{Fn: operands[0], Arg: operands[1]}, nil
	case "set":
		name, err := p.tok.next()
		if err != nil {
			return nil, err
		}
		value, err := p.ReadAndCreate()
		if err != nil {
			return nil, err
		}
		return &ast.Set{Name: name, Value: value}, nil
	case "block":
		return p.readBlock()
	default:
		return nil, errs.Parsef("unknown keyword '%s'", keyword)
	}
}

func (p *Parser) readN(n int) ([]ast.Ast, error) {
	ret := make([]ast.Ast, 0, n)
	for i := 0; i < n; i++ {
		expr, err := p.ReadAndCreate()
		if err != nil {
			return nil, err
		}
		ret = append(ret, expr)
	}
	return ret, nil
}

func (p *Parser) readVal() (ast.Ast, error) {
	lexeme, err := p.tok.next()
	if err != nil {
		return nil, err
	}
	n, err := strconv.ParseInt(lexeme, 10, 64)
	if err != nil {
		return nil, errs.Parsef("invalid integer literal '%s'", lexeme)
	}
	return &ast.Val{Value: n}, nil
}

func (p *Parser) readIf() (ast.Ast, error) {
	operands, err := p.readN(2)
	if err != nil {
		return nil, err
	}
	if err = p.tok.expect("then"); err != nil {
		return nil, err
	}
	thenDo, err := p.ReadAndCreate()
	if err != nil {
		return nil, err
	}
	if err = p.tok.expect("else"); err != nil {
		return nil, err
	}
	elseDo, err := p.ReadAndCreate()
	if err != nil {
		return nil, err
	}
	return &ast.IfElse{Left: operands[0], Right: operands[1], ThenDo: thenDo, ElseDo: elseDo}, nil
}

func (p *Parser) readLet() (ast.Ast, error) {
	name, err := p.tok.next()
	if err != nil {
		return nil, err
	}
	if err = p.tok.expect("="); err != nil {
		return nil, err
	}
	bound, err := p.ReadAndCreate()
	if err != nil {
		return nil, err
	}
	if err = p.tok.expect("in"); err != nil {
		return nil, err
	}
	body, err := p.ReadAndCreate()
	if err != nil {
		return nil, err
	}
	return &ast.Let{Name: name, Bound: bound, Body: body}, nil
}

// readBlock collects expressions until the parenthesis that opened the block
// is closed. A block that is not nested in anything may also be ended by a
// parse failure, which is how an unparenthesized block at the top reads to
// the end of the input.
func (p *Parser) readBlock() (ast.Ast, error) {
	level := p.tok.level
	exprs := make([]ast.Ast, 0)
	for {
		if err := p.tok.skipClosing(); err != nil {
			return nil, err
		}
		if p.tok.balance < level {
			break
		}
		expr, err := p.ReadAndCreate()
		if err != nil {
			if errors.Is(err, errs.ErrParse) && p.tok.balance == 0 {
				break
			}
			return nil, err
		}
		exprs = append(exprs, expr)
	}
	return &ast.Block{Exprs: exprs}, nil
}
