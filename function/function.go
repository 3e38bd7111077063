/*
File    : monkey/function/function.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package function defines Function, the tree-walking evaluator's
// representation of a Monkey function literal. It lives in its own
// package (rather than objects) because it must reference both the
// parser's AST and the scope package's Environment, and objects must
// stay free of a dependency on the parser.
package function

import (
	"bytes"
	"strings"

	"github.com/akashmaji946/monkey/objects"
	"github.com/akashmaji946/monkey/parser"
	"github.com/akashmaji946/monkey/scope"
)

// Function is a closure created by evaluating a FunctionLiteral: it
// captures Env, the environment active at its definition site, so it
// can resolve free variables from enclosing scopes even after those
// scopes' defining calls have returned (spec.md §4.4's "Function
// literal").
type Function struct {
	Parameters []*parser.Identifier
	Body       *parser.BlockStatement
	Env        *scope.Environment
}

// GetType implements objects.MonkeyObject.
func (f *Function) GetType() objects.MonkeyType { return objects.FUNCTION_OBJ }

// ToString renders the function literal's source form: its parameter
// list followed by its full body.
func (f *Function) ToString() string {
	var out bytes.Buffer

	params := make([]string, 0, len(f.Parameters))
	for _, p := range f.Parameters {
		params = append(params, p.String())
	}

	out.WriteString("fn(")
	out.WriteString(strings.Join(params, ", "))
	out.WriteString(") {\n")
	out.WriteString(f.Body.String())
	out.WriteString("\n}")

	return out.String()
}

// ToObject returns a detailed representation for debugging.
func (f *Function) ToObject() string {
	return "<function(" + f.ToString() + ")>"
}
