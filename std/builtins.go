/*
File    : monkey/std/builtins.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package std implements Monkey's host builtin functions (spec.md
// §4.9): len, first, last, rest, push, and puts. Both execution paths
// share this one table — the tree-walking evaluator resolves builtins
// by name, the VM resolves them by a fixed index via GetBuiltin — so
// Builtins' order is part of the bytecode contract and must never be
// reordered or have entries inserted ahead of existing ones.
package std

import (
	"fmt"

	"github.com/akashmaji946/monkey/objects"
)

// Builtins is the fixed-order table of every builtin function. The
// compiler's initial symbol table calls DefineBuiltin for each entry in
// this exact order, and the VM's GetBuiltin opcode indexes into it
// directly, so the order here IS the GetBuiltin operand contract.
var Builtins = []*objects.Builtin{
	{Name: "len", Fn: builtinLen},
	{Name: "first", Fn: builtinFirst},
	{Name: "last", Fn: builtinLast},
	{Name: "rest", Fn: builtinRest},
	{Name: "push", Fn: builtinPush},
	{Name: "puts", Fn: builtinPuts},
}

// GetByName looks up a builtin by its source name, used by the
// tree-walking evaluator when an identifier is not bound in any
// environment.
func GetByName(name string) *objects.Builtin {
	for _, b := range Builtins {
		if b.Name == name {
			return b
		}
	}
	return nil
}

// newError builds a MonkeyObject error with a formatted message,
// matching the error taxonomy in spec.md §7.
func newError(format string, a ...interface{}) *objects.Error {
	return &objects.Error{Message: fmt.Sprintf(format, a...)}
}

func wrongArgCount(expected int, got int) *objects.Error {
	return newError("wrong number of arguments. expected %d, got %d", expected, got)
}

// builtinLen returns the byte length of a String or the element count
// of an Array; any other argument type is a type error.
func builtinLen(writer objects.BuiltinWriter, args ...objects.MonkeyObject) objects.MonkeyObject {
	if len(args) != 1 {
		return wrongArgCount(1, len(args))
	}

	switch arg := args[0].(type) {
	case *objects.String:
		return &objects.Integer{Value: int64(len(arg.Value))}
	case *objects.Array:
		return &objects.Integer{Value: int64(len(arg.Elements))}
	default:
		return newError("argument to `len` not supported, got %s", args[0].GetType())
	}
}

// builtinFirst returns an Array's first element, or Null for an empty
// array; any other argument type is a type error.
func builtinFirst(writer objects.BuiltinWriter, args ...objects.MonkeyObject) objects.MonkeyObject {
	if len(args) != 1 {
		return wrongArgCount(1, len(args))
	}

	arr, ok := args[0].(*objects.Array)
	if !ok {
		return newError("argument to `first` not supported, got %s", args[0].GetType())
	}

	if len(arr.Elements) > 0 {
		return arr.Elements[0]
	}
	return &objects.Null{}
}

// builtinLast returns an Array's last element, or Null for an empty
// array; any other argument type is a type error.
func builtinLast(writer objects.BuiltinWriter, args ...objects.MonkeyObject) objects.MonkeyObject {
	if len(args) != 1 {
		return wrongArgCount(1, len(args))
	}

	arr, ok := args[0].(*objects.Array)
	if !ok {
		return newError("argument to `last` not supported, got %s", args[0].GetType())
	}

	length := len(arr.Elements)
	if length > 0 {
		return arr.Elements[length-1]
	}
	return &objects.Null{}
}

// builtinRest returns a new Array with every element but the first; an
// empty array yields an empty array; any other argument type is a type
// error. The input array is never mutated (spec.md §4.3: builtins
// return fresh values).
func builtinRest(writer objects.BuiltinWriter, args ...objects.MonkeyObject) objects.MonkeyObject {
	if len(args) != 1 {
		return wrongArgCount(1, len(args))
	}

	arr, ok := args[0].(*objects.Array)
	if !ok {
		return newError("argument to `rest` not supported, got %s", args[0].GetType())
	}

	length := len(arr.Elements)
	if length > 0 {
		newElements := make([]objects.MonkeyObject, length-1)
		copy(newElements, arr.Elements[1:length])
		return &objects.Array{Elements: newElements}
	}
	return &objects.Array{Elements: []objects.MonkeyObject{}}
}

// builtinPush returns a new Array with value appended; the original
// array is left untouched.
func builtinPush(writer objects.BuiltinWriter, args ...objects.MonkeyObject) objects.MonkeyObject {
	if len(args) != 2 {
		return wrongArgCount(2, len(args))
	}

	arr, ok := args[0].(*objects.Array)
	if !ok {
		return newError("argument to `push` not supported, got %s", args[0].GetType())
	}

	length := len(arr.Elements)
	newElements := make([]objects.MonkeyObject, length+1)
	copy(newElements, arr.Elements)
	newElements[length] = args[1]

	return &objects.Array{Elements: newElements}
}

// builtinPuts prints each argument's display form on its own line to
// writer (stdout in both engines' default configuration) and returns
// Null.
func builtinPuts(writer objects.BuiltinWriter, args ...objects.MonkeyObject) objects.MonkeyObject {
	for _, arg := range args {
		fmt.Fprintln(writer, arg.ToString())
	}
	return &objects.Null{}
}
