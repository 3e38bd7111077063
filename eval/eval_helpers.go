/*
File    : monkey/eval/eval_helpers.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package eval

import (
	"fmt"

	"github.com/akashmaji946/monkey/objects"
)

// nativeBoolToBooleanObject returns the shared TRUE/FALSE singleton
// matching a native Go bool.
func nativeBoolToBooleanObject(input bool) *objects.Boolean {
	if input {
		return TRUE
	}
	return FALSE
}

// isTruthy implements spec.md §4.3's truthiness rule: false, null, and
// Integer(0) are falsy; every other value is truthy. This is the
// "reference source treats 0 as falsy" convention spec.md §9 calls out
// explicitly, and it must match the VM's JumpNotTruthy exactly.
func isTruthy(obj objects.MonkeyObject) bool {
	switch obj := obj.(type) {
	case *objects.Null:
		return false
	case *objects.Boolean:
		return obj.Value
	case *objects.Integer:
		return obj.Value != 0
	default:
		return true
	}
}

// newError builds an *objects.Error with a formatted message.
func newError(format string, a ...interface{}) *objects.Error {
	return &objects.Error{Message: fmt.Sprintf(format, a...)}
}

// isError reports whether obj is an *objects.Error, nil-safe so callers
// can check every intermediate Eval result uniformly.
func isError(obj objects.MonkeyObject) bool {
	if obj != nil {
		return obj.GetType() == objects.ERROR_OBJ
	}
	return false
}
