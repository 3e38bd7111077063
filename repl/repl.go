/*
File    : monkey/repl/repl.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package repl implements Monkey's Read-Eval-Print Loop. It supports
// both execution engines named in spec.md §4: "eval" runs the
// tree-walking evaluator directly against a persistent scope.Environment,
// "vm" compiles each line against a persistent symbol.SymbolTable and
// constant pool, then runs it on a fresh vm.VM sharing the prior
// session's globals slot (spec.md §6's REPL session semantics).
package repl

import (
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/akashmaji946/monkey/code"
	"github.com/akashmaji946/monkey/compiler"
	"github.com/akashmaji946/monkey/eval"
	"github.com/akashmaji946/monkey/lexer"
	"github.com/akashmaji946/monkey/objects"
	"github.com/akashmaji946/monkey/parser"
	"github.com/akashmaji946/monkey/scope"
	"github.com/akashmaji946/monkey/std"
	"github.com/akashmaji946/monkey/symbol"
	"github.com/akashmaji946/monkey/vm"
)

// Color definitions for REPL output, mirroring the teacher's
// decorative-line/result/error/banner/info palette.
var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Repl holds the REPL's cosmetic configuration and the execution
// engine it drives.
type Repl struct {
	Banner  string
	Version string
	Author  string
	Line    string
	License string
	Prompt  string

	// Engine selects "eval" (tree-walking) or "vm" (bytecode); any
	// other value is treated as "eval".
	Engine string
	// Disasm, when true and Engine is "vm", prints each line's
	// compiled bytecode listing before running it.
	Disasm bool
}

// NewRepl creates a Repl with the given cosmetic configuration and
// execution engine.
func NewRepl(banner, version, author, line, license, prompt, engine string, disasm bool) *Repl {
	return &Repl{
		Banner: banner, Version: version, Author: author,
		Line: line, License: license, Prompt: prompt,
		Engine: engine, Disasm: disasm,
	}
}

// PrintBannerInfo displays the startup banner, version/author/license
// line, and usage instructions.
func (r *Repl) PrintBannerInfo(writer io.Writer) {
	blueColor.Fprintf(writer, "%s\n", r.Line)
	greenColor.Fprintf(writer, "%s\n", r.Banner)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	yellowColor.Fprintln(writer, "Version: "+r.Version+" | Author: "+r.Author+" | License: "+r.License+" | Engine: "+r.engineName())
	blueColor.Fprintf(writer, "%s\n", r.Line)
	cyanColor.Fprintf(writer, "%s\n", "Welcome to Monkey!")
	cyanColor.Fprintf(writer, "%s\n", "Type your code and press enter")
	cyanColor.Fprintf(writer, "%s\n", "Type '.exit' to quit")
	cyanColor.Fprintf(writer, "%s\n", "Use up/down arrows to navigate command history")
	blueColor.Fprintf(writer, "%s\n", r.Line)
}

func (r *Repl) engineName() string {
	if r.Engine == "vm" {
		return "vm"
	}
	return "eval"
}

// Start begins the REPL main loop: print the banner, open readline
// over reader/writer, then read-eval-print until '.exit' or EOF.
func (r *Repl) Start(reader io.Reader, writer io.Writer) {
	r.PrintBannerInfo(writer)

	rl, err := readline.New(r.Prompt)
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	session := newSession(r.Engine, writer)

	for {
		line, err := rl.Readline()
		if err != nil {
			writer.Write([]byte("Good Bye!\n"))
			break
		}

		line = strings.Trim(line, " \n\t\r")
		if line == "" {
			continue
		}
		if line == ".exit" {
			writer.Write([]byte("Good Bye!\n"))
			break
		}

		rl.SaveHistory(line)

		r.executeWithRecovery(writer, line, session)
	}
}

// session carries whichever execution engine's persistent state across
// REPL lines: the eval engine keeps one scope.Environment, the vm
// engine keeps one symbol.SymbolTable, constant pool, and globals
// array (spec.md §6).
type session struct {
	engine string

	// eval engine state
	evaluator *eval.Evaluator
	env       *scope.Environment

	// vm engine state
	symbolTable *symbol.SymbolTable
	constants   []objects.MonkeyObject
	globals     []objects.MonkeyObject
}

func newSession(engine string, writer io.Writer) *session {
	s := &session{engine: engine}

	if engine == "vm" {
		symbolTable := symbol.NewSymbolTable()
		for i, b := range std.Builtins {
			symbolTable.DefineBuiltin(i, b.Name)
		}
		s.symbolTable = symbolTable
		s.constants = []objects.MonkeyObject{}
		s.globals = make([]objects.MonkeyObject, vm.GlobalsSize)
		for i := range s.globals {
			s.globals[i] = vm.Null
		}
		return s
	}

	s.evaluator = eval.NewEvaluator()
	s.evaluator.SetWriter(writer)
	s.env = scope.NewEnvironment()
	return s
}

// executeWithRecovery parses one line, then runs it on the session's
// engine, printing the result or any error. Like the teacher's REPL,
// a panic during evaluation is reported instead of crashing the loop.
func (r *Repl) executeWithRecovery(writer io.Writer, line string, s *session) {
	defer func() {
		if recovered := recover(); recovered != nil {
			redColor.Fprintf(writer, "[RUNTIME ERROR] %v\n", recovered)
		}
	}()

	l := lexer.New(line)
	p := parser.New(l)
	program := p.ParseProgram()

	if len(p.Errors()) != 0 {
		redColor.Fprintf(writer, "Errors: %s\n", strings.Join(p.Errors(), "; "))
		return
	}

	if s.engine == "vm" {
		r.runVM(writer, program, s)
		return
	}
	r.runEval(writer, program, s)
}

func (r *Repl) runEval(writer io.Writer, program *parser.Program, s *session) {
	result := s.evaluator.Eval(program, s.env)
	if result == nil {
		return
	}

	if result.GetType() == objects.ERROR_OBJ {
		redColor.Fprintf(writer, "%s\n", result.ToString())
		return
	}
	yellowColor.Fprintf(writer, "%s\n", result.ToString())
}

func (r *Repl) runVM(writer io.Writer, program *parser.Program, s *session) {
	comp := compiler.NewWithState(s.symbolTable, s.constants)
	if err := comp.Compile(program); err != nil {
		redColor.Fprintf(writer, "compile error: %s\n", err)
		return
	}

	bytecode := comp.Bytecode()
	s.constants = bytecode.Constants

	if r.Disasm {
		cyanColor.Fprintf(writer, "%s", code.Disassemble(bytecode.Instructions))
	}

	machine := vm.NewWithGlobalsStore(bytecode, s.globals)
	machine.SetWriter(writer)

	if err := machine.Run(); err != nil {
		redColor.Fprintf(writer, "runtime error: %s\n", err)
		return
	}

	top := machine.LastPoppedStackElem()
	if top != nil {
		yellowColor.Fprintf(writer, "%s\n", top.ToString())
	}
}
