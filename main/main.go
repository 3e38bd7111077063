/*
File    : monkey/main/main.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)

Package main is the entry point for the Monkey interpreter. It
supports three modes of operation:
 1. REPL Mode (default): interactive Read-Eval-Print Loop
 2. File Mode: execute a Monkey source file
 3. Server Mode: a REPL exposed over a TCP listener, one session per
    connection

Each mode can run on the tree-walking evaluator or the bytecode
compiler+VM, selected with --engine.
*/
package main

import (
	"fmt"
	"net"
	"os"

	"github.com/fatih/color"

	"github.com/akashmaji946/monkey/code"
	"github.com/akashmaji946/monkey/compiler"
	"github.com/akashmaji946/monkey/eval"
	"github.com/akashmaji946/monkey/lexer"
	"github.com/akashmaji946/monkey/objects"
	"github.com/akashmaji946/monkey/parser"
	"github.com/akashmaji946/monkey/repl"
	"github.com/akashmaji946/monkey/scope"
	"github.com/akashmaji946/monkey/vm"
)

// VERSION is the current version of the Monkey interpreter.
var VERSION = "v1.0.0"

// AUTHOR contains the contact information of the interpreter's author.
var AUTHOR = "akashmaji(@iisc.ac.in)"

// LICENSE specifies the software license.
var LICENSE = "MIT"

// PROMPT is the command prompt displayed in REPL mode.
var PROMPT = "monkey >>> "

// BANNER is the ASCII art logo displayed when starting the REPL.
var BANNER = `
 ___  ___            _
 |  \/  |           | |
 | .  . | ___  _ __  | | _____ _   _
 | |\/| |/ _ \| '_ \ | |/ / _ \ | | |
 | |  | | (_) | | | ||   <  __/ |_| |
 \_|  |_/\___/|_| |_||_|\_\___|\__, |
                                 __/ |
                                |___/
`

// LINE is a separator line used for visual formatting.
var LINE = "----------------------------------------------------------------"

var (
	redColor    = color.New(color.FgRed)
	yellowColor = color.New(color.FgYellow)
	cyanColor   = color.New(color.FgCyan)
)

// options holds the flags parsed out of os.Args by parseArgs.
type options struct {
	engine     string // "eval" or "vm"
	disasm     bool
	serverPort string
	fileName   string
}

func main() {
	opts, err := parseArgs(os.Args[1:])
	if err != nil {
		redColor.Fprintf(os.Stderr, "[USAGE ERROR] %v\n", err)
		os.Exit(1)
	}

	switch {
	case opts == nil:
		return // --help/--version already handled
	case opts.serverPort != "":
		startServer(opts.serverPort, opts.engine, opts.disasm)
	case opts.fileName != "":
		runFile(opts.fileName, opts.engine, opts.disasm)
	default:
		repler := repl.NewRepl(BANNER, VERSION, AUTHOR, LINE, LICENSE, PROMPT, opts.engine, opts.disasm)
		repler.Start(os.Stdin, os.Stdout)
	}
}

// parseArgs turns os.Args[1:] into options. It returns (nil, nil) once
// --help or --version has already printed its output, so main can
// return without further dispatch.
func parseArgs(args []string) (*options, error) {
	opts := &options{engine: "eval"}

	i := 0
	for i < len(args) {
		arg := args[i]

		switch arg {
		case "--help", "-h":
			showHelp()
			return nil, nil

		case "--version", "-v":
			showVersion()
			return nil, nil

		case "--engine":
			if i+1 >= len(args) {
				return nil, fmt.Errorf("--engine requires a value (eval|vm)")
			}
			opts.engine = args[i+1]
			if opts.engine != "eval" && opts.engine != "vm" {
				return nil, fmt.Errorf("unknown engine %q, want eval or vm", opts.engine)
			}
			i += 2

		case "--disasm":
			opts.disasm = true
			i++

		case "server":
			if i+1 >= len(args) {
				return nil, fmt.Errorf("missing port for server mode, usage: monkey server <port>")
			}
			opts.serverPort = args[i+1]
			i += 2

		default:
			opts.fileName = arg
			i++
		}
	}

	return opts, nil
}

func showHelp() {
	cyanColor.Println("Monkey - An Interpreted Programming Language")
	cyanColor.Println("")
	cyanColor.Println("USAGE:")
	yellowColor.Println("  monkey                        Start interactive REPL mode")
	yellowColor.Println("  monkey <path-to-file>         Execute a Monkey file")
	yellowColor.Println("  monkey server <port>          Start REPL server on the given port")
	yellowColor.Println("  monkey --engine eval|vm ...   Pick the execution engine (default eval)")
	yellowColor.Println("  monkey --disasm ...           Print bytecode before running (vm engine only)")
	yellowColor.Println("  monkey --help                 Display this help message")
	yellowColor.Println("  monkey --version              Display version information")
	cyanColor.Println("")
	cyanColor.Println("REPL COMMANDS:")
	yellowColor.Println("  .exit                         Exit the REPL")
}

func showVersion() {
	cyanColor.Println("Monkey - An Interpreted Programming Language")
	cyanColor.Printf("Version: %s\n", VERSION)
	cyanColor.Printf("License: %s\n", LICENSE)
	cyanColor.Printf("Author : %s\n", AUTHOR)
}

// runFile reads and executes a single Monkey source file on the
// selected engine, printing a top-level error (if any) and exiting
// non-zero.
func runFile(fileName, engine string, disasm bool) {
	fileContent, err := os.ReadFile(fileName)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[FILE ERROR] could not read file '%s': %v\n", fileName, err)
		os.Exit(1)
	}

	if err := run(string(fileContent), engine, disasm, os.Stdout); err != nil {
		redColor.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

// run parses source and executes it once, top to bottom, on the
// selected engine, writing any builtin output (e.g. puts) to writer.
// It returns the first parse/compile/runtime error encountered.
func run(source, engine string, disasm bool, writer *os.File) error {
	l := lexer.New(source)
	p := parser.New(l)
	program := p.ParseProgram()

	if len(p.Errors()) != 0 {
		return fmt.Errorf("parse error: %v", p.Errors())
	}

	if engine == "vm" {
		comp := compiler.New()
		if err := comp.Compile(program); err != nil {
			return fmt.Errorf("compile error: %w", err)
		}

		bytecode := comp.Bytecode()
		if disasm {
			cyanColor.Fprintf(writer, "%s", code.Disassemble(bytecode.Instructions))
		}

		machine := vm.New(bytecode)
		machine.SetWriter(writer)
		if err := machine.Run(); err != nil {
			return fmt.Errorf("runtime error: %w", err)
		}
		return nil
	}

	evaluator := eval.NewEvaluator()
	evaluator.SetWriter(writer)
	env := scope.NewEnvironment()
	result := evaluator.Eval(program, env)

	if result != nil && result.GetType() == objects.ERROR_OBJ {
		return fmt.Errorf("%s", result.ToString())
	}
	return nil
}

// startServer listens on port and runs one independent REPL session
// per accepted connection (spec.md's supplemented "server" mode).
func startServer(port, engine string, disasm bool) {
	listener, err := net.Listen("tcp", ":"+port)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[SERVER ERROR] failed to start server on port %s: %v\n", port, err)
		os.Exit(1)
	}
	cyanColor.Printf("Monkey REPL server listening on :%s (engine=%s)\n", port, engine)
	defer listener.Close()

	for {
		conn, err := listener.Accept()
		if err != nil {
			redColor.Fprintf(os.Stderr, "[SERVER ERROR] failed to accept connection: %v\n", err)
			continue
		}
		go handleClient(conn, engine, disasm)
	}
}

func handleClient(conn net.Conn, engine string, disasm bool) {
	defer conn.Close()
	cyanColor.Printf("New client connected from %s\n", conn.RemoteAddr())
	repler := repl.NewRepl(BANNER, VERSION, AUTHOR, LINE, LICENSE, PROMPT, engine, disasm)
	repler.Start(conn, conn)
	cyanColor.Printf("Client disconnected from %s\n", conn.RemoteAddr())
}
