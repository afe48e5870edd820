package ast

func MakeVal(n int64) *Val {
	return &Val{Value: n}
}

func MakeVar(name string) *Var {
	return &Var{Name: name}
}

func MakeAdd(left, right Ast) *Add {
	return &Add{Left: left, Right: right}
}

func MakeBlock(exprs ...Ast) *Block {
	return &Block{Exprs: exprs}
}

var TestExamples []Ast

func init() {
	// This should not contain duplicates
	// Used in ast_test.go to check if each element
	// is equal to only itself.
	TestExamples = []Ast{
		MakeVal(4),
		MakeVal(-4),
		MakeVal(0),
		MakeVar("x"),
		MakeVar("longer_name"),
		MakeAdd(MakeVal(1), MakeVal(2)),
		MakeAdd(MakeVal(2), MakeVal(1)),
		MakeAdd(MakeAdd(MakeVar("x"), MakeVal(1)), MakeVal(2)),
		&IfElse{Left: MakeVal(5), Right: MakeVal(3), ThenDo: MakeVal(1), ElseDo: MakeVal(2)},
		&IfElse{Left: MakeVal(5), Right: MakeVal(3), ThenDo: MakeVal(2), ElseDo: MakeVal(1)},
		&Let{Name: "x", Bound: MakeVal(10), Body: MakeAdd(MakeVar("x"), MakeVal(5))},
		&Let{Name: "y", Bound: MakeVal(10), Body: MakeAdd(MakeVar("x"), MakeVal(5))},
		&Function{Param: "a", Body: MakeAdd(MakeVar("a"), MakeVal(1))},
		&Function{Param: "b", Body: MakeAdd(MakeVar("a"), MakeVal(1))},
		&Call{Fn: MakeVar("f"), Arg: MakeVal(4)},
		&Call{Fn: &Function{Param: "a", Body: MakeVar("a")}, Arg: MakeVal(4)},
		&Set{Name: "x", Value: MakeVal(1)},
		&Set{Name: "x", Value: MakeVar("y")},
		MakeBlock(),
		MakeBlock(MakeVal(1)),
		MakeBlock(MakeVal(1), MakeVal(2)),
		MakeBlock(&Set{Name: "x", Value: MakeVal(1)}, MakeVar("x")),
	}
}
