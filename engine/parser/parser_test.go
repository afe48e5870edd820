package parser

import (
	"errors"
	"strings"
	"testing"

	"letlang/engine/ast"
	"letlang/engine/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testValid(t *testing.T, program string, expected ast.Ast) {
	found, err := ParseString(program)
	require.NoError(t, err, program)
	assert.True(t, expected.Equals(found), "expected: %s, found: %s", ast.String(expected), ast.String(found))
}

func testError(t *testing.T, program string) {
	_, err := ParseString(program)
	assert.Error(t, err, program)
	assert.True(t, errors.Is(err, errs.ErrParse), "%s: %v", program, err)
}

func TestParse_Atoms(t *testing.T) {
	testValid(t, "(val 7)", ast.MakeVal(7))
	testValid(t, "(val -7)", ast.MakeVal(-7))
	testValid(t, "(val 0)", ast.MakeVal(0))
	testValid(t, "(var x)", ast.MakeVar("x"))
	testValid(t, "(var some_long_name)", ast.MakeVar("some_long_name"))
	// parentheses are cosmetic
	testValid(t, "val 7", ast.MakeVal(7))
	testValid(t, "((val 7))", ast.MakeVal(7))

	testError(t, "(val abc)")
	testError(t, "(val 12abc)")
	testError(t, "(val 1.5)")
	testError(t, "(val 99999999999999999999)")
	testError(t, "(val")
	testError(t, "(var")
}

func TestParse_Compound(t *testing.T) {
	testValid(t, "(add (val 1) (val 2))", ast.MakeAdd(ast.MakeVal(1), ast.MakeVal(2)))
	testValid(t, "(if (val 5) (val 3) then (val 1) else (val 2))", &ast.IfElse{
		Left:   ast.MakeVal(5),
		Right:  ast.MakeVal(3),
		ThenDo: ast.MakeVal(1),
		ElseDo: ast.MakeVal(2),
	})
	testValid(t, "(let x = (val 10) in (add (var x) (val 5)))", &ast.Let{
		Name:  "x",
		Bound: ast.MakeVal(10),
		Body:  ast.MakeAdd(ast.MakeVar("x"), ast.MakeVal(5)),
	})
	testValid(t, "(function a (add (var a) (val 1)))", &ast.Function{
		Param: "a",
		Body:  ast.MakeAdd(ast.MakeVar("a"), ast.MakeVal(1)),
	})
	testValid(t, "(call (var f) (val 4))", &ast.Call{Fn: ast.MakeVar("f"), Arg: ast.MakeVal(4)})
	testValid(t, "(set x (val 3))", &ast.Set{Name: "x", Value: ast.MakeVal(3)})

	testError(t, "(add (val 1))")
	testError(t, "(if (val 5) (val 3) (val 1) else (val 2))")
	testError(t, "(if (val 5) (val 3) then (val 1) otherwise (val 2))")
	testError(t, "(let x (val 10) in (var x))")
	testError(t, "(let x = (val 10) on (var x))")
	testError(t, "(function a)")
	testError(t, "(call (var f))")
	testError(t, "(set x)")
	testError(t, "(mul (val 1) (val 2))")
	testError(t, "")
	testError(t, "   ")
	testError(t, "()")
}

func TestParse_Spacing(t *testing.T) {
	expected := ast.MakeAdd(ast.MakeVal(1), ast.MakeVal(2))
	testValid(t, "( add ( val 1 ) ( val 2 ) )", expected)
	testValid(t, "(add\n\t(val 1)\n\t(val 2))", expected)
	// parentheses glued between words merge them into one
	testError(t, "(add (val 1)(val 2))")
	testError(t, "(add(val 1) (val 2))")
}

func TestParse_TrailingInputIgnored(t *testing.T) {
	testValid(t, "(val 1) (val 2)", ast.MakeVal(1))
	testValid(t, "(val 1) garbage", ast.MakeVal(1))
}

func TestParse_Block(t *testing.T) {
	testValid(t, "(block)", ast.MakeBlock())
	testValid(t, "(block (val 1))", ast.MakeBlock(ast.MakeVal(1)))
	testValid(t, "(block (set x (val 1)) (var x))", ast.MakeBlock(
		&ast.Set{Name: "x", Value: ast.MakeVal(1)},
		ast.MakeVar("x"),
	))
	testValid(t, "( block ( val 1 ) ( val 2 ) )", ast.MakeBlock(ast.MakeVal(1), ast.MakeVal(2)))

	// a nested block stops at its own closing parenthesis
	testValid(t, "(add (block (val 1) (val 2)) (val 3))", ast.MakeAdd(
		ast.MakeBlock(ast.MakeVal(1), ast.MakeVal(2)),
		ast.MakeVal(3),
	))
	testValid(t, "(add (block) (val 3))", ast.MakeAdd(ast.MakeBlock(), ast.MakeVal(3)))
	testValid(t, "(block (block (val 1)) (val 2))", ast.MakeBlock(
		ast.MakeBlock(ast.MakeVal(1)),
		ast.MakeVal(2),
	))
	testValid(t, "(let x = (val 1) in (block (set x (val 2)) (var x)))", &ast.Let{
		Name:  "x",
		Bound: ast.MakeVal(1),
		Body: ast.MakeBlock(
			&ast.Set{Name: "x", Value: ast.MakeVal(2)},
			ast.MakeVar("x"),
		),
	})

	// an unparenthesized block at the top reads until input stops parsing
	testValid(t, "block (val 1) (val 2)", ast.MakeBlock(ast.MakeVal(1), ast.MakeVal(2)))
	testValid(t, "block (val 1) bogus", ast.MakeBlock(ast.MakeVal(1)))
	testValid(t, "block", ast.MakeBlock())

	// but failures inside an open parenthesis are fatal
	testError(t, "(block (val 1)")
	testError(t, "(block (val 1) (bogus 2))")

	// once the input is exhausted every parenthesis counts as closed, so a
	// truncated last element just ends the block
	testValid(t, "(block (val 1) (add (val 2)))", ast.MakeBlock(ast.MakeVal(1)))
}

func TestParse_RoundTrip(t *testing.T) {
	for _, example := range ast.TestExamples {
		testValid(t, ast.String(example), example)
	}
}

type failingReader struct{}

func (f failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk on fire")
}

func TestParse_ReadError(t *testing.T) {
	_, err := Parse(failingReader{})
	assert.Error(t, err)
	assert.False(t, errors.Is(err, errs.ErrParse))
	assert.True(t, strings.Contains(err.Error(), "disk on fire"))
}

func TestParse_Reader(t *testing.T) {
	p := NewParser(strings.NewReader("(val 1) (add (val 2) (val 3))"))
	first, err := p.ReadAndCreate()
	require.NoError(t, err)
	assert.True(t, ast.MakeVal(1).Equals(first))
	second, err := p.ReadAndCreate()
	require.NoError(t, err)
	assert.True(t, ast.MakeAdd(ast.MakeVal(2), ast.MakeVal(3)).Equals(second))
	_, err = p.ReadAndCreate()
	assert.True(t, errors.Is(err, errs.ErrParse))
}
