/*
File    : monkey/eval/evaluator.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package eval implements Monkey's tree-walking evaluator: it
// interprets a parsed Program directly against a lexically-scoped
// scope.Environment, without ever lowering to bytecode. Its semantics
// are the reference behavior the compiler+VM pipeline must match
// (spec.md §4.4).
package eval

import (
	"io"
	"os"

	"github.com/akashmaji946/monkey/function"
	"github.com/akashmaji946/monkey/objects"
	"github.com/akashmaji946/monkey/parser"
	"github.com/akashmaji946/monkey/scope"
)

// Singleton values for Null/True/False avoid needless allocation and
// let callers compare by pointer identity for these three cases.
var (
	NULL  = &objects.Null{}
	TRUE  = &objects.Boolean{Value: true}
	FALSE = &objects.Boolean{Value: false}
)

// Evaluator holds the state the tree-walker needs beyond the
// Environment it is handed per-call: where `puts` writes its output.
type Evaluator struct {
	Writer io.Writer
}

// NewEvaluator creates an Evaluator that writes builtin output to
// os.Stdout by default; SetWriter redirects it (e.g. for tests).
func NewEvaluator() *Evaluator {
	return &Evaluator{Writer: os.Stdout}
}

// SetWriter redirects builtin output (chiefly `puts`) to w.
func (e *Evaluator) SetWriter(w io.Writer) {
	e.Writer = w
}

// Eval is the evaluator's single entry point: a type switch over every
// node kind reachable from spec.md §3's syntax tree, dispatching to the
// matching eval* helper. It returns a MonkeyObject, which on failure is
// an *objects.Error (never a Go error), so errors compose naturally
// with the rest of the value model.
func (e *Evaluator) Eval(node parser.Node, env *scope.Environment) objects.MonkeyObject {
	switch node := node.(type) {

	// Program and statements
	case *parser.Program:
		return e.evalProgram(node, env)

	case *parser.ExpressionStatement:
		return e.Eval(node.Expression, env)

	case *parser.BlockStatement:
		return e.evalBlockStatement(node, env)

	case *parser.ReturnStatement:
		val := e.Eval(node.ReturnValue, env)
		if isError(val) {
			return val
		}
		return &objects.ReturnValue{Value: val}

	case *parser.LetStatement:
		val := e.Eval(node.Value, env)
		if isError(val) {
			return val
		}
		env.Set(node.Name.Value, val)
		return val

	// Literals
	case *parser.IntegerLiteral:
		return &objects.Integer{Value: node.Value}

	case *parser.StringLiteral:
		return &objects.String{Value: node.Value}

	case *parser.Boolean:
		return nativeBoolToBooleanObject(node.Value)

	case *parser.ArrayLiteral:
		elements := e.evalExpressions(node.Elements, env)
		if len(elements) == 1 && isError(elements[0]) {
			return elements[0]
		}
		return &objects.Array{Elements: elements}

	case *parser.HashLiteral:
		return e.evalHashLiteral(node, env)

	case *parser.FunctionLiteral:
		return &function.Function{Parameters: node.Parameters, Body: node.Body, Env: env}

	// Expressions
	case *parser.Identifier:
		return e.evalIdentifier(node, env)

	case *parser.PrefixExpression:
		right := e.Eval(node.Right, env)
		if isError(right) {
			return right
		}
		return evalPrefixExpression(node.Operator, right)

	case *parser.InfixExpression:
		left := e.Eval(node.Left, env)
		if isError(left) {
			return left
		}
		right := e.Eval(node.Right, env)
		if isError(right) {
			return right
		}
		return evalInfixExpression(node.Operator, left, right)

	case *parser.IfExpression:
		return e.evalIfExpression(node, env)

	case *parser.CallExpression:
		function := e.Eval(node.Function, env)
		if isError(function) {
			return function
		}
		args := e.evalExpressions(node.Arguments, env)
		if len(args) == 1 && isError(args[0]) {
			return args[0]
		}
		return e.applyFunction(function, args)

	case *parser.IndexExpression:
		left := e.Eval(node.Left, env)
		if isError(left) {
			return left
		}
		index := e.Eval(node.Index, env)
		if isError(index) {
			return index
		}
		return evalIndexExpression(left, index)
	}

	return nil
}
