/*
File    : monkey/compiler/compiler.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package compiler lowers a parsed Program into Monkey bytecode
// (spec.md §4.7): a flat constant pool plus an instruction stream the
// vm package executes directly. It shares the objects package's value
// model with the tree-walking evaluator, so a CompiledFunction and a
// function.Function describe the same source-level closure through
// two different execution strategies.
package compiler

import (
	"fmt"

	"github.com/akashmaji946/monkey/code"
	"github.com/akashmaji946/monkey/objects"
	"github.com/akashmaji946/monkey/parser"
	"github.com/akashmaji946/monkey/std"
	"github.com/akashmaji946/monkey/symbol"
)

// EmittedInstruction records one instruction's opcode and byte
// position in the current scope's buffer, so the compiler can inspect
// or rewrite the last couple of emitted instructions (needed by the
// if-expression and implicit-return rules below).
type EmittedInstruction struct {
	Opcode   code.Opcode
	Position int
}

// CompilationScope holds one function body's in-progress instruction
// buffer. The compiler keeps a stack of these so nested function
// literals compile into their own buffer without disturbing the
// enclosing one.
type CompilationScope struct {
	instructions        code.Instructions
	lastInstruction     EmittedInstruction
	previousInstruction EmittedInstruction
}

// Compiler walks a parsed AST and emits bytecode plus a constant pool.
type Compiler struct {
	constants []objects.MonkeyObject

	symbolTable *symbol.SymbolTable

	scopes     []CompilationScope
	scopeIndex int
}

// Bytecode is the compiler's output: the entry-point instruction
// stream plus every literal and compiled function it referenced.
type Bytecode struct {
	Instructions code.Instructions
	Constants    []objects.MonkeyObject
}

// New creates a Compiler with a fresh global symbol table, pre-seeded
// with every host builtin in std.Builtins' exact order so
// symbol.BuiltinScope indices line up with the VM's builtin table.
func New() *Compiler {
	mainScope := CompilationScope{instructions: code.Instructions{}}

	symbolTable := symbol.NewSymbolTable()
	for i, b := range std.Builtins {
		symbolTable.DefineBuiltin(i, b.Name)
	}

	return &Compiler{
		constants:   []objects.MonkeyObject{},
		symbolTable: symbolTable,
		scopes:      []CompilationScope{mainScope},
		scopeIndex:  0,
	}
}

// NewWithState creates a Compiler that continues compiling against an
// already-populated symbol table and constant pool, used by the REPL
// so each typed line sees the bindings and literals of every prior
// line (spec.md §6's REPL session semantics).
func NewWithState(s *symbol.SymbolTable, constants []objects.MonkeyObject) *Compiler {
	compiler := New()
	compiler.symbolTable = s
	compiler.constants = constants
	return compiler
}

// Compile dispatches on node's concrete type, emitting instructions
// into the current compilation scope and appending to the constant
// pool as needed. Compile-time errors (an identifier that is never
// defined, say) surface as a Go error rather than an objects.Error,
// since they are caught before any bytecode runs.
func (c *Compiler) Compile(node parser.Node) error {
	switch node := node.(type) {

	case *parser.Program:
		for _, s := range node.Statements {
			if err := c.Compile(s); err != nil {
				return err
			}
		}

	case *parser.ExpressionStatement:
		if err := c.Compile(node.Expression); err != nil {
			return err
		}
		c.emit(code.OpPop)

	case *parser.BlockStatement:
		for _, s := range node.Statements {
			if err := c.Compile(s); err != nil {
				return err
			}
		}

	case *parser.LetStatement:
		symb := c.symbolTable.Define(node.Name.Value)
		if err := c.Compile(node.Value); err != nil {
			return err
		}
		if symb.Scope == symbol.GlobalScope {
			c.emit(code.OpSetGlobal, symb.Index)
		} else {
			c.emit(code.OpSetLocal, symb.Index)
		}

	case *parser.ReturnStatement:
		if err := c.Compile(node.ReturnValue); err != nil {
			return err
		}
		c.emit(code.OpReturnValue)

	case *parser.IntegerLiteral:
		integer := &objects.Integer{Value: node.Value}
		c.emit(code.OpConstant, c.addConstant(integer))

	case *parser.StringLiteral:
		str := &objects.String{Value: node.Value}
		c.emit(code.OpConstant, c.addConstant(str))

	case *parser.Boolean:
		if node.Value {
			c.emit(code.OpTrue)
		} else {
			c.emit(code.OpFalse)
		}

	case *parser.ArrayLiteral:
		for _, el := range node.Elements {
			if err := c.Compile(el); err != nil {
				return err
			}
		}
		c.emit(code.OpArray, len(node.Elements))

	case *parser.HashLiteral:
		for _, pair := range node.Pairs {
			if err := c.Compile(pair.Key); err != nil {
				return err
			}
			if err := c.Compile(pair.Value); err != nil {
				return err
			}
		}

		// OpHash's operand is the flat key+value count, not the pair
		// count (a deliberate choice: see code.OpHash's doc comment).
		c.emit(code.OpHash, len(node.Pairs)*2)

	case *parser.Identifier:
		symb, ok := c.symbolTable.Resolve(node.Value)
		if !ok {
			return fmt.Errorf("identifier not found: %s", node.Value)
		}
		c.loadSymbol(symb)

	case *parser.PrefixExpression:
		if err := c.Compile(node.Right); err != nil {
			return err
		}

		switch node.Operator {
		case "!":
			c.emit(code.OpBang)
		case "-":
			c.emit(code.OpMinus)
		default:
			return fmt.Errorf("unknown operator %s", node.Operator)
		}

	case *parser.InfixExpression:
		if node.Operator == "<" {
			if err := c.Compile(node.Right); err != nil {
				return err
			}
			if err := c.Compile(node.Left); err != nil {
				return err
			}
			c.emit(code.OpGreaterThan)
			return nil
		}

		if err := c.Compile(node.Left); err != nil {
			return err
		}
		if err := c.Compile(node.Right); err != nil {
			return err
		}

		switch node.Operator {
		case "+":
			c.emit(code.OpAdd)
		case "-":
			c.emit(code.OpSub)
		case "*":
			c.emit(code.OpMul)
		case "/":
			c.emit(code.OpDiv)
		case ">":
			c.emit(code.OpGreaterThan)
		case "==":
			c.emit(code.OpEqual)
		case "!=":
			c.emit(code.OpNotEqual)
		default:
			return fmt.Errorf("unknown operator %s", node.Operator)
		}

	case *parser.IfExpression:
		if err := c.Compile(node.Condition); err != nil {
			return err
		}

		jumpNotTruthyPos := c.emit(code.OpJumpNotTruthy, 9999)

		if err := c.Compile(node.Consequence); err != nil {
			return err
		}
		if c.lastInstructionIs(code.OpPop) {
			c.removeLastPop()
		}

		jumpPos := c.emit(code.OpJump, 9999)

		afterConsequencePos := len(c.currentInstructions())
		c.changeOperand(jumpNotTruthyPos, afterConsequencePos)

		if node.Alternative == nil {
			c.emit(code.OpNull)
		} else {
			if err := c.Compile(node.Alternative); err != nil {
				return err
			}
			if c.lastInstructionIs(code.OpPop) {
				c.removeLastPop()
			}
		}

		afterAlternativePos := len(c.currentInstructions())
		c.changeOperand(jumpPos, afterAlternativePos)

	case *parser.FunctionLiteral:
		c.enterScope()

		if node.Name != "" {
			c.symbolTable.DefineFunctionName(node.Name)
		}

		for _, p := range node.Parameters {
			c.symbolTable.Define(p.Value)
		}

		if err := c.Compile(node.Body); err != nil {
			return err
		}

		if c.lastInstructionIs(code.OpPop) {
			c.replaceLastPopWithReturn()
		}
		if !c.lastInstructionIs(code.OpReturnValue) {
			c.emit(code.OpReturn)
		}

		freeSymbols := c.symbolTable.FreeSymbols
		numLocals := c.symbolTable.NumDefinitions()
		instructions := c.leaveScope()

		for _, fs := range freeSymbols {
			c.loadSymbol(fs)
		}

		compiledFn := &objects.CompiledFunction{
			Instructions:  instructions,
			NumLocals:     numLocals,
			NumParameters: len(node.Parameters),
		}
		fnIndex := c.addConstant(compiledFn)
		c.emit(code.OpClosure, fnIndex, len(freeSymbols))

	case *parser.CallExpression:
		if err := c.Compile(node.Function); err != nil {
			return err
		}

		for _, a := range node.Arguments {
			if err := c.Compile(a); err != nil {
				return err
			}
		}

		c.emit(code.OpCall, len(node.Arguments))

	case *parser.IndexExpression:
		if err := c.Compile(node.Left); err != nil {
			return err
		}
		if err := c.Compile(node.Index); err != nil {
			return err
		}
		c.emit(code.OpIndex)
	}

	return nil
}

// Bytecode returns the compiler's accumulated output.
func (c *Compiler) Bytecode() *Bytecode {
	return &Bytecode{
		Instructions: c.currentInstructions(),
		Constants:    c.constants,
	}
}

func (c *Compiler) addConstant(obj objects.MonkeyObject) int {
	c.constants = append(c.constants, obj)
	return len(c.constants) - 1
}

func (c *Compiler) emit(op code.Opcode, operands ...int) int {
	ins := code.Make(op, operands...)
	pos := c.addInstruction(ins)
	c.setLastInstruction(op, pos)
	return pos
}

func (c *Compiler) addInstruction(ins []byte) int {
	posNewInstruction := len(c.currentInstructions())
	updated := append(c.currentInstructions(), ins...)
	c.scopes[c.scopeIndex].instructions = updated
	return posNewInstruction
}

func (c *Compiler) setLastInstruction(op code.Opcode, pos int) {
	previous := c.scopes[c.scopeIndex].lastInstruction
	last := EmittedInstruction{Opcode: op, Position: pos}

	c.scopes[c.scopeIndex].previousInstruction = previous
	c.scopes[c.scopeIndex].lastInstruction = last
}

func (c *Compiler) lastInstructionIs(op code.Opcode) bool {
	if len(c.currentInstructions()) == 0 {
		return false
	}
	return c.scopes[c.scopeIndex].lastInstruction.Opcode == op
}

func (c *Compiler) removeLastPop() {
	last := c.scopes[c.scopeIndex].lastInstruction
	previous := c.scopes[c.scopeIndex].previousInstruction

	old := c.currentInstructions()
	newIns := old[:last.Position]

	c.scopes[c.scopeIndex].instructions = newIns
	c.scopes[c.scopeIndex].lastInstruction = previous
}

// replaceInstruction overwrites the bytes at pos with newInstruction,
// used for jump backpatching and the implicit-return rewrite; it
// assumes newInstruction is exactly as wide as what it replaces.
func (c *Compiler) replaceInstruction(pos int, newInstruction []byte) {
	ins := c.currentInstructions()
	for i := 0; i < len(newInstruction); i++ {
		ins[pos+i] = newInstruction[i]
	}
}

func (c *Compiler) replaceLastPopWithReturn() {
	lastPos := c.scopes[c.scopeIndex].lastInstruction.Position
	newInstruction := code.Make(code.OpReturnValue)

	c.replaceInstruction(lastPos, newInstruction)
	c.scopes[c.scopeIndex].lastInstruction.Opcode = code.OpReturnValue
}

// changeOperand rewrites the u16 operand of the three-byte instruction
// (opcode plus u16) at opPos, used to backpatch OpJump/OpJumpNotTruthy targets once the
// jump's destination is known.
func (c *Compiler) changeOperand(opPos int, operand int) {
	op := code.Opcode(c.currentInstructions()[opPos])
	newInstruction := code.Make(op, operand)
	c.replaceInstruction(opPos, newInstruction)
}

func (c *Compiler) currentInstructions() code.Instructions {
	return c.scopes[c.scopeIndex].instructions
}

// enterScope pushes a fresh CompilationScope and a child symbol table,
// entered on every function literal so its body compiles into its own
// instruction buffer with its own locals.
func (c *Compiler) enterScope() {
	scope := CompilationScope{instructions: code.Instructions{}}
	c.scopes = append(c.scopes, scope)
	c.scopeIndex++

	c.symbolTable = symbol.NewEnclosedSymbolTable(c.symbolTable)
}

// leaveScope pops the current CompilationScope and symbol table,
// returning the instructions compiled into it.
func (c *Compiler) leaveScope() code.Instructions {
	instructions := c.currentInstructions()

	c.scopes = c.scopes[:len(c.scopes)-1]
	c.scopeIndex--

	c.symbolTable = c.symbolTable.Outer

	return instructions
}

// loadSymbol emits the opcode that fetches symb's value onto the
// stack, one case per symbol.SymbolScope.
func (c *Compiler) loadSymbol(symb symbol.Symbol) {
	switch symb.Scope {
	case symbol.GlobalScope:
		c.emit(code.OpGetGlobal, symb.Index)
	case symbol.LocalScope:
		c.emit(code.OpGetLocal, symb.Index)
	case symbol.BuiltinScope:
		c.emit(code.OpGetBuiltin, symb.Index)
	case symbol.FreeScope:
		c.emit(code.OpGetFree, symb.Index)
	case symbol.FunctionScope:
		c.emit(code.OpCurrentClosure)
	}
}
