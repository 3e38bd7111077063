/*
File    : monkey/vm/frame.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package vm

import (
	"github.com/akashmaji946/monkey/code"
	"github.com/akashmaji946/monkey/objects"
)

// Frame is one call's execution context: which Closure is running, its
// instruction pointer within that closure's instructions, and the
// stack offset its locals are addressed relative to (spec.md §4.8).
type Frame struct {
	cl          *objects.Closure
	ip          int
	basePointer int
}

// NewFrame creates a Frame for a freshly invoked closure. basePointer
// is sp at call time minus the argument count, so OpGetLocal/OpSetLocal
// index into stack[basePointer+i].
func NewFrame(cl *objects.Closure, basePointer int) *Frame {
	return &Frame{cl: cl, ip: -1, basePointer: basePointer}
}

// Instructions returns the instruction stream this frame is executing.
func (f *Frame) Instructions() code.Instructions {
	return f.cl.Fn.Instructions
}
