/*
File    : monkey/code/code.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package code defines Monkey's bytecode: a fixed one-byte Opcode set
// with big-endian fixed-width operands (spec.md §4.5), an encoder
// (Make) that writes one instruction into a byte buffer, a decoder
// (ReadOperands) used by both the VM's fetch loop and the disassembler,
// and Disassemble, a listing printer used for debugging and the CLI's
// `--disasm` mode.
package code

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Instructions is a byte-addressed buffer of encoded opcodes and their
// operands, as produced by the compiler and consumed by the VM.
type Instructions []byte

// Opcode identifies one bytecode instruction. Each opcode has a fixed
// operand layout, described by its Definition.
type Opcode byte

const (
	OpConstant      Opcode = iota // u16 const index -> push consts[idx]
	OpAdd                         // pop 2, push sum
	OpSub                         // pop 2, push difference
	OpMul                         // pop 2, push product
	OpDiv                         // pop 2, push quotient
	OpTrue                        // push true
	OpFalse                       // push false
	OpEqual                       // pop 2, push ==
	OpNotEqual                    // pop 2, push !=
	OpGreaterThan                 // pop 2, push left > right
	OpMinus                       // pop 1, push negated
	OpBang                        // pop 1, push boolean-negated
	OpPop                         // pop 1 and discard
	OpJump                        // u16 target -> ip := target
	OpJumpNotTruthy               // u16 target -> pop cond; if !truthy ip := target
	OpGetGlobal                   // u16 idx -> push globals[idx]
	OpSetGlobal                   // u16 idx -> globals[idx] := pop()
	OpArray                       // u16 n -> pop n, push Array
	OpHash                        // u16 n -> pop n (n = 2 * pair count, flat key+value count), push Hash
	OpIndex                       // pop index, pop container, push element-or-null
	OpCall                        // u8 nargs -> invoke callee below the args
	OpReturnValue                 // pop result, pop frame, push result
	OpReturn                      // pop frame, push Null
	OpGetLocal                    // u8 idx -> push stack[basePointer+idx]
	OpSetLocal                    // u8 idx -> stack[basePointer+idx] := pop()
	OpGetBuiltin                  // u8 idx -> push builtin[idx]
	OpClosure                     // u16 const index, u8 numFree -> pop numFree, push Closure
	OpGetFree                     // u8 idx -> push currentClosure.Free[idx]
	OpCurrentClosure              // push the currently executing closure
	OpNull                        // push the shared Null value
)

// Definition describes one opcode's mnemonic and the byte width of each
// of its operands, in order. Definitions is keyed by Opcode so the
// encoder/decoder/disassembler never hardcode operand widths twice.
type Definition struct {
	Name          string
	OperandWidths []int
}

var definitions = map[Opcode]*Definition{
	OpConstant:       {"OpConstant", []int{2}},
	OpAdd:            {"OpAdd", []int{}},
	OpSub:            {"OpSub", []int{}},
	OpMul:            {"OpMul", []int{}},
	OpDiv:            {"OpDiv", []int{}},
	OpTrue:           {"OpTrue", []int{}},
	OpFalse:          {"OpFalse", []int{}},
	OpEqual:          {"OpEqual", []int{}},
	OpNotEqual:       {"OpNotEqual", []int{}},
	OpGreaterThan:    {"OpGreaterThan", []int{}},
	OpMinus:          {"OpMinus", []int{}},
	OpBang:           {"OpBang", []int{}},
	OpPop:            {"OpPop", []int{}},
	OpJump:           {"OpJump", []int{2}},
	OpJumpNotTruthy:  {"OpJumpNotTruthy", []int{2}},
	OpGetGlobal:      {"OpGetGlobal", []int{2}},
	OpSetGlobal:      {"OpSetGlobal", []int{2}},
	OpArray:          {"OpArray", []int{2}},
	OpHash:           {"OpHash", []int{2}},
	OpIndex:          {"OpIndex", []int{}},
	OpCall:           {"OpCall", []int{1}},
	OpReturnValue:    {"OpReturnValue", []int{}},
	OpReturn:         {"OpReturn", []int{}},
	OpGetLocal:       {"OpGetLocal", []int{1}},
	OpSetLocal:       {"OpSetLocal", []int{1}},
	OpGetBuiltin:     {"OpGetBuiltin", []int{1}},
	OpClosure:        {"OpClosure", []int{2, 1}},
	OpGetFree:        {"OpGetFree", []int{1}},
	OpCurrentClosure: {"OpCurrentClosure", []int{}},
	OpNull:           {"OpNull", []int{}},
}

// Lookup returns the Definition for op, or an error if op is not a
// known opcode (e.g. corrupted or hand-built bytecode).
func Lookup(op Opcode) (*Definition, error) {
	def, ok := definitions[op]
	if !ok {
		return nil, fmt.Errorf("opcode %d undefined", op)
	}
	return def, nil
}

// Make encodes a single instruction: op followed by its operands,
// packed to the widths in op's Definition, big-endian. An unknown
// opcode yields an empty byte slice.
func Make(op Opcode, operands ...int) []byte {
	def, ok := definitions[op]
	if !ok {
		return []byte{}
	}

	instructionLen := 1
	for _, w := range def.OperandWidths {
		instructionLen += w
	}

	instruction := make([]byte, instructionLen)
	instruction[0] = byte(op)

	offset := 1
	for i, o := range operands {
		width := def.OperandWidths[i]
		switch width {
		case 2:
			binary.BigEndian.PutUint16(instruction[offset:], uint16(o))
		case 1:
			instruction[offset] = byte(o)
		}
		offset += width
	}

	return instruction
}

// ReadOperands decodes the operands of the instruction encoded by def
// starting at ins[0], returning the decoded operand values and the
// total width consumed (used by callers to advance past the
// instruction).
func ReadOperands(def *Definition, ins Instructions) ([]int, int) {
	operands := make([]int, len(def.OperandWidths))
	offset := 0

	for i, width := range def.OperandWidths {
		switch width {
		case 2:
			operands[i] = int(ReadUint16(ins[offset:]))
		case 1:
			operands[i] = int(ReadUint8(ins[offset:]))
		}
		offset += width
	}

	return operands, offset
}

// ReadUint16 decodes a big-endian u16 operand at the start of ins.
func ReadUint16(ins Instructions) uint16 {
	return binary.BigEndian.Uint16(ins)
}

// ReadUint8 decodes a u8 operand at the start of ins.
func ReadUint8(ins Instructions) uint8 {
	return uint8(ins[0])
}

// String disassembles the full instruction buffer, one instruction per
// line, in the form `<offset:04> OpName operand ...`. Malformed
// opcodes are reported inline rather than aborting the whole listing.
func (ins Instructions) String() string {
	var out bytes.Buffer

	i := 0
	for i < len(ins) {
		def, err := Lookup(Opcode(ins[i]))
		if err != nil {
			fmt.Fprintf(&out, "ERROR: %s\n", err)
			i++
			continue
		}

		operands, read := ReadOperands(def, ins[i+1:])

		fmt.Fprintf(&out, "%04d %s\n", i, ins.fmtInstruction(def, operands))

		i += 1 + read
	}

	return out.String()
}

// fmtInstruction renders one decoded instruction as `OpName a b ...`.
func (ins Instructions) fmtInstruction(def *Definition, operands []int) string {
	operandCount := len(def.OperandWidths)

	if len(operands) != operandCount {
		return fmt.Sprintf("ERROR: operand len %d does not match defined %d\n", len(operands), operandCount)
	}

	switch operandCount {
	case 0:
		return def.Name
	case 1:
		return fmt.Sprintf("%s %d", def.Name, operands[0])
	case 2:
		return fmt.Sprintf("%s %d %d", def.Name, operands[0], operands[1])
	}

	return fmt.Sprintf("ERROR: unhandled operandCount for %s\n", def.Name)
}

// Disassemble is a convenience wrapper around Instructions.String, used
// by the CLI's --disasm mode and by tests that want a readable listing.
func Disassemble(ins Instructions) string {
	return ins.String()
}
