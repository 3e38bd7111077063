/*
File    : monkey/eval/eval_statements.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package eval

import (
	"github.com/akashmaji946/monkey/objects"
	"github.com/akashmaji946/monkey/parser"
	"github.com/akashmaji946/monkey/scope"
)

// evalProgram evaluates every top-level statement in order, unwrapping
// a ReturnValue exactly once at this boundary (spec.md §4.4) and
// short-circuiting immediately on the first Error.
func (e *Evaluator) evalProgram(program *parser.Program, env *scope.Environment) objects.MonkeyObject {
	var result objects.MonkeyObject

	for _, statement := range program.Statements {
		result = e.Eval(statement, env)

		switch result := result.(type) {
		case *objects.ReturnValue:
			return result.Value
		case *objects.Error:
			return result
		}
	}

	return result
}

// evalBlockStatement evaluates the statements of a block, but does NOT
// unwrap a ReturnValue: it propagates the marker upward unchanged so
// that nested blocks (e.g. an if inside an if) let the outer function
// call boundary unwrap it exactly once, per spec.md §4.4.
func (e *Evaluator) evalBlockStatement(block *parser.BlockStatement, env *scope.Environment) objects.MonkeyObject {
	var result objects.MonkeyObject

	for _, statement := range block.Statements {
		result = e.Eval(statement, env)

		if result != nil {
			rt := result.GetType()
			if rt == objects.RETURN_OBJ || rt == objects.ERROR_OBJ {
				return result
			}
		}
	}

	return result
}
