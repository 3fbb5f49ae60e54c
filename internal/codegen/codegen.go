// Package codegen lowers an internal/ast tree to ARM assembly text.
package codegen

import (
	"fmt"

	"github.com/mikaku-lang/armc/internal/ast"
	"github.com/mikaku-lang/armc/internal/env"
	"github.com/mikaku-lang/armc/internal/label"
)

// Sink receives one emitted assembly line at a time.
type Sink func(line string)

type UndefinedVariableError struct {
	Name string
}

func (e *UndefinedVariableError) Error() string {
	return "Undefined variable: " + e.Name
}

type ArityError struct {
	Kind string // "arguments" or "params"
}

func (e *ArityError) Error() string {
	if e.Kind == "params" {
		return "More than 4 params is not supported"
	}
	return "More than 4 arguments are not supported"
}

type generator struct {
	sink   Sink
	labels *label.Counter
}

func (g *generator) emit(format string, args ...interface{}) {
	if len(args) == 0 {
		g.sink(format)
		return
	}
	g.sink(fmt.Sprintf(format, args...))
}

func Generate(program ast.Block, sink Sink) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			panic(r)
		}
	}()

	g := &generator{sink: sink, labels: label.NewCounter()}
	for _, stmt := range program.Statements {
		fn, ok := stmt.(ast.Function)
		if !ok {
			panic(fmt.Errorf("top-level statement must be a function declaration"))
		}
		g.genFunction(fn)
	}
	return nil
}

func (g *generator) genFunction(fn ast.Function) {
	if len(fn.Parameters) > 4 {
		panic(&ArityError{Kind: "params"})
	}

	g.emit(".global %s", fn.Name)
	g.emit("%s:", fn.Name)
	g.emit(" push {fp, lr}")
	g.emit(" mov fp, sp")
	g.emit(" push {r0, r1, r2, r3}")

	e := env.New()
	for i, param := range fn.Parameters {
		e.BindParameter(param, i)
	}

	g.genStmt(fn.Body, e)

	g.emit(" mov sp, fp")
	g.emit(" mov r0, #0")
	g.emit(" pop {fp, pc}")
}

func (g *generator) genStmt(s ast.Stmt, e *env.Environment) {
	switch st := s.(type) {
	case ast.Block:
		for _, inner := range st.Statements {
			g.genStmt(inner, e)
		}

	case ast.Return:
		g.genExpr(st.Value, e)
		g.emit(" mov sp, fp")
		g.emit(" pop {fp, pc}")

	case ast.Var:
		g.genExpr(st.Initializer, e)
		g.emit(" push {r0, ip}")
		e.Bind(st.Name)

	case ast.Assign:
		g.genExpr(st.Value, e)
		offset, ok := e.Lookup(st.Name)
		if !ok {
			panic(&UndefinedVariableError{Name: st.Name})
		}
		g.emit(" str r0, [fp, #%d]", offset)

	case ast.If:
		ifFalse := g.labels.Next()
		endIf := g.labels.Next()

		g.genExpr(st.Condition, e)
		g.emit(" cmp r0, #0")
		g.emit(" beq %s", ifFalse)
		g.genStmt(st.Consequence, e)
		g.emit(" b %s", endIf)
		g.emit("%s:", ifFalse)
		g.genStmt(st.Alternative, e)
		g.emit("%s:", endIf)

	case ast.While:
		loopStart := g.labels.Next()
		loopEnd := g.labels.Next()

		g.emit("%s:", loopStart)
		g.genExpr(st.Condition, e)
		g.emit(" cmp r0, #0")
		g.emit(" beq %s", loopEnd)
		g.genStmt(st.Body, e)
		g.emit(" b %s", loopStart)
		g.emit("%s:", loopEnd)

	case ast.Function:
		g.genFunction(st)

	case ast.ExprStmt:
		g.genExpr(st.Expr, e)

	default:
		panic(fmt.Errorf("unhandled statement %T", s))
	}
}

func (g *generator) genExpr(expr ast.Expr, e *env.Environment) {
	switch ex := expr.(type) {
	case ast.Number:
		g.emit(" ldr r0, =%d", ex.Value)

	case ast.Id:
		offset, ok := e.Lookup(ex.Name)
		if !ok {
			panic(&UndefinedVariableError{Name: ex.Name})
		}
		g.emit(" ldr r0, [fp, #%d]", offset)

	case ast.Not:
		g.genExpr(ex.Operand, e)
		g.emit(" cmp r0, #0")
		g.emit(" moveq r0, #1")
		g.emit(" movne r0, #0")

	case ast.Equal:
		g.genBinaryOperands(ex.Left, ex.Right, e)
		g.emit(" cmp r1, r0")
		g.emit(" moveq r0, #1")
		g.emit(" movne r0, #0")

	case ast.NotEqual:
		g.genBinaryOperands(ex.Left, ex.Right, e)
		g.emit(" cmp r1, r0")
		g.emit(" movne r0, #1")
		g.emit(" moveq r0, #0")

	case ast.Add:
		g.genBinaryOperands(ex.Left, ex.Right, e)
		g.emit(" add r0, r0, r1")

	case ast.Subtract:
		g.genBinaryOperands(ex.Left, ex.Right, e)
		g.emit(" sub r0, r1, r0")

	case ast.Multiply:
		g.genBinaryOperands(ex.Left, ex.Right, e)
		g.emit(" mul r0, r1, r0")

	case ast.Divide:
		g.genBinaryOperands(ex.Left, ex.Right, e)
		g.emit(" udiv r0, r1, r0")

	case ast.Call:
		g.genCall(ex, e)

	case ast.Assert:
		g.genExpr(ex.Condition, e)
		g.emit(" cmp r0, #1")
		g.emit(" moveq r0, #'.'")
		g.emit(" movne r0, #'F'")
		g.emit(" bl putchar")

	default:
		panic(fmt.Errorf("unhandled expression %T", expr))
	}
}

// leaves r0 = right, r1 = left
func (g *generator) genBinaryOperands(left, right ast.Expr, e *env.Environment) {
	g.genExpr(left, e)
	g.emit(" push {r0, ip}")
	g.genExpr(right, e)
	g.emit(" pop {r1, ip}")
}

func (g *generator) genCall(call ast.Call, e *env.Environment) {
	switch len(call.Arguments) {
	case 0:
		g.emit(" bl %s", call.Callee)

	case 1:
		g.genExpr(call.Arguments[0], e)
		g.emit(" bl %s", call.Callee)

	case 2, 3, 4:
		g.emit(" sub sp, sp, #16")
		for i, arg := range call.Arguments {
			g.genExpr(arg, e)
			g.emit(" str r0, [sp, #%d]", 4*i)
		}
		g.emit(" pop {r0, r1, r2, r3}")
		g.emit(" bl %s", call.Callee)

	default:
		panic(&ArityError{Kind: "arguments"})
	}
}
