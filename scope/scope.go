/*
File    : monkey/scope/scope.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package scope implements the lexically-scoped Environment used by the
// tree-walking evaluator: a mapping from name to value plus an optional
// reference to an enclosing (outer) environment. Function literals
// capture the environment active at the point they are defined, which
// is how closures work (spec.md §4.4/§9).
package scope

import "github.com/akashmaji946/monkey/objects"

// Environment is one lexical scope. Lookup checks this scope's own
// store first, then recurses into Outer; a miss at the root is a typed
// "identifier not found" error raised by the caller. Define always
// binds in the innermost (current) environment.
type Environment struct {
	store map[string]objects.MonkeyObject
	outer *Environment
}

// NewEnvironment creates a root environment with no outer scope, used
// at program start.
func NewEnvironment() *Environment {
	return &Environment{store: make(map[string]objects.MonkeyObject)}
}

// NewEnclosedEnvironment creates a child environment whose Outer is
// outer, used on function entry so the callee can see variables from
// its defining scope while its own bindings shadow them.
func NewEnclosedEnvironment(outer *Environment) *Environment {
	env := NewEnvironment()
	env.outer = outer
	return env
}

// Get looks up name in this environment, then in Outer, recursively.
// The bool result is false if name is bound nowhere in the chain.
func (e *Environment) Get(name string) (objects.MonkeyObject, bool) {
	obj, ok := e.store[name]
	if !ok && e.outer != nil {
		obj, ok = e.outer.Get(name)
	}
	return obj, ok
}

// Set binds name to val in this environment only (never in Outer),
// matching spec.md §3's "Define: always in the innermost environment".
func (e *Environment) Set(name string, val objects.MonkeyObject) objects.MonkeyObject {
	e.store[name] = val
	return val
}
