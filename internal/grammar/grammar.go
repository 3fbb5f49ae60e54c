// Package grammar builds the expression and statement grammar on top of internal/combinator and internal/lexer.
package grammar

import (
	"strconv"

	"github.com/mikaku-lang/armc/internal/ast"
	"github.com/mikaku-lang/armc/internal/combinator"
	"github.com/mikaku-lang/armc/internal/lexer"
)

type exprP = combinator.Parser[ast.Expr]
type stmtP = combinator.Parser[ast.Stmt]

// grammar holds the Lazy slots Expression and Statement resolve through, so Program builds an independent grammar each call.
type grammar struct {
	expression exprP
	statement  stmtP
}

type opRHS struct {
	op  string
	rhs ast.Expr
}

func chainLeftAssoc(operand exprP, opParser combinator.Parser[string], combine map[string]func(left, right ast.Expr) ast.Expr) exprP {
	pair := combinator.Bind(opParser, func(op string) combinator.Parser[opRHS] {
		return combinator.Map(operand, func(rhs ast.Expr) opRHS {
			return opRHS{op: op, rhs: rhs}
		})
	})

	return combinator.Bind(operand, func(first ast.Expr) exprP {
		return combinator.Map(combinator.ZeroOrMore(pair), func(rest []opRHS) ast.Expr {
			acc := first
			for _, r := range rest {
				acc = combine[r.op](acc, r.rhs)
			}
			return acc
		})
	})
}

func (g *grammar) buildExpression() {
	atom := g.buildAtom()

	unary := combinator.Bind(combinator.Maybe(lexer.Operator("!")), func(bang string) exprP {
		return combinator.Map(atom, func(a ast.Expr) ast.Expr {
			if bang != "" {
				return ast.Not{Operand: a}
			}
			return a
		})
	})

	product := chainLeftAssoc(unary, combinator.Or(lexer.Operator("*"), lexer.Operator("/")), map[string]func(l, r ast.Expr) ast.Expr{
		"*": func(l, r ast.Expr) ast.Expr { return ast.NewMultiply(l, r) },
		"/": func(l, r ast.Expr) ast.Expr { return ast.NewDivide(l, r) },
	})

	sum := chainLeftAssoc(product, combinator.Or(lexer.Operator("+"), lexer.Operator("-")), map[string]func(l, r ast.Expr) ast.Expr{
		"+": func(l, r ast.Expr) ast.Expr { return ast.NewAdd(l, r) },
		"-": func(l, r ast.Expr) ast.Expr { return ast.NewSubtract(l, r) },
	})

	comparison := chainLeftAssoc(sum, combinator.Or(lexer.Operator("=="), lexer.Operator("!=")), map[string]func(l, r ast.Expr) ast.Expr{
		"==": func(l, r ast.Expr) ast.Expr { return ast.NewEqual(l, r) },
		"!=": func(l, r ast.Expr) ast.Expr { return ast.NewNotEqual(l, r) },
	})

	g.expression = comparison
}

func (g *grammar) buildAtom() exprP {
	call := combinator.Bind(lexer.Identifier, func(name string) exprP {
		return combinator.Bind(lexer.Operator("("), func(string) exprP {
			return combinator.Bind(g.args(), func(args []ast.Expr) exprP {
				return combinator.And(lexer.Operator(")"), combinator.Constant(buildCall(name, args)))
			})
		})
	})

	id := combinator.Map(lexer.Identifier, func(name string) ast.Expr {
		return ast.Id{Name: name}
	})

	number := combinator.Map(lexer.Number, func(digits string) ast.Expr {
		value, _ := strconv.ParseUint(digits, 10, 64)
		return ast.Number{Value: value}
	})

	paren := combinator.Bind(lexer.Operator("("), func(string) exprP {
		return combinator.Bind(combinator.Lazy(&g.expression), func(e ast.Expr) exprP {
			return combinator.And(lexer.Operator(")"), combinator.Constant(e))
		})
	})

	return combinator.Or(call, combinator.Or(id, combinator.Or(number, paren)))
}

// args parses "(expr (',' expr)*)?" without the surrounding parens.
func (g *grammar) args() combinator.Parser[[]ast.Expr] {
	list := combinator.Bind(combinator.Lazy(&g.expression), func(first ast.Expr) combinator.Parser[[]ast.Expr] {
		return combinator.Map(combinator.ZeroOrMore(combinator.And(lexer.Operator(","), combinator.Lazy(&g.expression))), func(rest []ast.Expr) []ast.Expr {
			return append([]ast.Expr{first}, rest...)
		})
	})

	return combinator.Map(combinator.Maybe(list), func(args []ast.Expr) []ast.Expr {
		if args == nil {
			return []ast.Expr{}
		}
		return args
	})
}

// buildCall builds an Assert node when the callee is "assert" — assert is a parse-time intrinsic, not a user-definable function — and a plain Call otherwise.
func buildCall(name string, args []ast.Expr) ast.Expr {
	if name == "assert" {
		var condition ast.Expr
		if len(args) > 0 {
			condition = args[0]
		}
		return ast.Assert{Condition: condition}
	}
	return ast.Call{Callee: name, Arguments: args}
}

func (g *grammar) params() combinator.Parser[[]string] {
	list := combinator.Bind(lexer.Identifier, func(first string) combinator.Parser[[]string] {
		return combinator.Map(combinator.ZeroOrMore(combinator.And(lexer.Operator(","), lexer.Identifier)), func(rest []string) []string {
			return append([]string{first}, rest...)
		})
	})

	return combinator.Map(combinator.Maybe(list), func(params []string) []string {
		if params == nil {
			return []string{}
		}
		return params
	})
}

func (g *grammar) block() combinator.Parser[ast.Block] {
	return combinator.Bind(lexer.Operator("{"), func(string) combinator.Parser[ast.Block] {
		return combinator.Bind(combinator.ZeroOrMore(combinator.Lazy(&g.statement)), func(stmts []ast.Stmt) combinator.Parser[ast.Block] {
			return combinator.And(lexer.Operator("}"), combinator.Constant(ast.Block{Statements: stmts}))
		})
	})
}

func (g *grammar) buildStatement() {
	block := g.block()

	returnStmt := combinator.Bind(lexer.Keyword("return"), func(string) stmtP {
		return combinator.Bind(combinator.Lazy(&g.expression), func(e ast.Expr) stmtP {
			return combinator.And(lexer.Operator(";"), combinator.Constant[ast.Stmt](ast.Return{Value: e}))
		})
	})

	functionStmt := combinator.Bind(lexer.Keyword("function"), func(string) stmtP {
		return combinator.Bind(lexer.Identifier, func(name string) stmtP {
			return combinator.Bind(lexer.Operator("("), func(string) stmtP {
				return combinator.Bind(g.params(), func(params []string) stmtP {
					return combinator.Bind(lexer.Operator(")"), func(string) stmtP {
						return combinator.Map(block, func(body ast.Block) ast.Stmt {
							return ast.Function{Name: name, Parameters: params, Body: body}
						})
					})
				})
			})
		})
	})

	ifStmt := combinator.Bind(lexer.Keyword("if"), func(string) stmtP {
		return combinator.Bind(lexer.Operator("("), func(string) stmtP {
			return combinator.Bind(combinator.Lazy(&g.expression), func(cond ast.Expr) stmtP {
				return combinator.Bind(lexer.Operator(")"), func(string) stmtP {
					return combinator.Bind(combinator.Lazy(&g.statement), func(consequence ast.Stmt) stmtP {
						return combinator.Bind(lexer.Keyword("else"), func(string) stmtP {
							return combinator.Map(combinator.Lazy(&g.statement), func(alternative ast.Stmt) ast.Stmt {
								return ast.If{Condition: cond, Consequence: consequence, Alternative: alternative}
							})
						})
					})
				})
			})
		})
	})

	whileStmt := combinator.Bind(lexer.Keyword("while"), func(string) stmtP {
		return combinator.Bind(lexer.Operator("("), func(string) stmtP {
			return combinator.Bind(combinator.Lazy(&g.expression), func(cond ast.Expr) stmtP {
				return combinator.Bind(lexer.Operator(")"), func(string) stmtP {
					return combinator.Map(combinator.Lazy(&g.statement), func(body ast.Stmt) ast.Stmt {
						return ast.While{Condition: cond, Body: body}
					})
				})
			})
		})
	})

	varStmt := combinator.Bind(lexer.Keyword("var"), func(string) stmtP {
		return combinator.Bind(lexer.Identifier, func(name string) stmtP {
			return combinator.Bind(lexer.Operator("="), func(string) stmtP {
				return combinator.Bind(combinator.Lazy(&g.expression), func(init ast.Expr) stmtP {
					return combinator.And(lexer.Operator(";"), combinator.Constant[ast.Stmt](ast.Var{Name: name, Initializer: init}))
				})
			})
		})
	})

	assignStmt := combinator.Bind(lexer.Identifier, func(name string) stmtP {
		return combinator.Bind(lexer.Operator("="), func(string) stmtP {
			return combinator.Bind(combinator.Lazy(&g.expression), func(value ast.Expr) stmtP {
				return combinator.And(lexer.Operator(";"), combinator.Constant[ast.Stmt](ast.Assign{Name: name, Value: value}))
			})
		})
	})

	blockStmt := combinator.Map(block, func(b ast.Block) ast.Stmt { return b })

	exprStmt := combinator.Bind(combinator.Lazy(&g.expression), func(e ast.Expr) stmtP {
		return combinator.And(lexer.Operator(";"), combinator.Constant[ast.Stmt](ast.ExprStmt{Expr: e}))
	})

	g.statement = combinator.Or(returnStmt,
		combinator.Or(functionStmt,
			combinator.Or(ifStmt,
				combinator.Or(whileStmt,
					combinator.Or(varStmt,
						combinator.Or(assignStmt,
							combinator.Or(blockStmt, exprStmt)))))))
}

func Program() combinator.Parser[ast.Block] {
	g := &grammar{}
	g.buildExpression()
	g.buildStatement()

	return combinator.Bind(lexer.Ignored, func([]string) combinator.Parser[ast.Block] {
		return combinator.Map(combinator.ZeroOrMore(combinator.Lazy(&g.statement)), func(stmts []ast.Stmt) ast.Block {
			return ast.Block{Statements: stmts}
		})
	})
}

func Parse(source string) (ast.Block, error) {
	return combinator.ParseStringToCompletion(Program(), source)
}
