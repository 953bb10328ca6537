/*
File    : rumlisp/cmd/rumlisp/main.go
*/

// Package main is RumLisp's entry point (spec.md §6): `rumlisp [file]`
// evaluates file and exits, or with no argument drops into a REPL.
// Grounded on the teacher's main/main.go (banner, version/author/license
// variables, color-coded output, file-vs-REPL dispatch), trimmed of the
// teacher's `server`/`--help`/`--version` flags, which spec.md's External
// Interfaces section does not ask for.
package main

import (
	"os"
	"path/filepath"

	"github.com/RuMaxwell/rumlisp/builtin"
	"github.com/RuMaxwell/rumlisp/environment"
	"github.com/RuMaxwell/rumlisp/eval"
	"github.com/RuMaxwell/rumlisp/macro"
	"github.com/RuMaxwell/rumlisp/reader"
	"github.com/RuMaxwell/rumlisp/repl"
	"github.com/fatih/color"
)

var (
	version = "v0.1.0"
	author  = "RuMaxwell"
	license = "MIT"
	prompt  = "rumlisp >>> "
	line    = "----------------------------------------------------------------"
	banner  = `
 ____            _     _
|  _ \ _   _ _ __| |   (_)___ _ __
| |_) | | | | '_ \ |   | / __| '_ \
|  _ <| |_| | | | | |___| \__ \ |_) |
|_| \_\\__,_|_| |_|_____|_|___/ .__/
                              |_|
`
)

var redColor = color.New(color.FgRed)

func main() {
	if len(os.Args) > 1 {
		os.Exit(runFile(os.Args[1]))
		return
	}
	env := builtin.NewGlobalEnv(os.Stdout)
	macros := loadPrelude(env)
	repler := repl.NewRepl(banner, version, author, line, license, prompt)
	repler.StartWithEnv(os.Stdout, env, macros)
}

// runFile reads and evaluates file's contents against a fresh environment
// seeded with the RISP_LIB prelude (if any), returning a process exit
// code (spec.md §6: 0 on success, non-zero on any lex/parse/evaluation
// error, with the error written to standard error). The user file is read
// with the same macro registry the prelude populated, so a macro defined
// in prelude.risp is still available to it (spec.md §5).
func runFile(path string) int {
	source, err := os.ReadFile(path)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[FILE ERROR] could not read %q: %v\n", path, err)
		return 1
	}

	env := builtin.NewGlobalEnv(os.Stdout)
	macros := loadPrelude(env)

	rd := reader.New(string(source))
	rd.Macros = macros
	program, err := rd.ReadProgram()
	if err != nil {
		redColor.Fprintf(os.Stderr, "%s\n", err)
		return 1
	}

	for _, node := range program {
		result, err := eval.Eval(node, env)
		if err != nil {
			redColor.Fprintf(os.Stderr, "%s\n", err)
			return 1
		}
		_ = result
	}
	return 0
}

// loadPrelude reads prelude.risp from RISP_LIB and evaluates it in env
// before any user code runs (spec.md §6), returning the macro registry
// the prelude populated so the caller can keep reading with it afterward
// (spec.md §5 — the prelude's macros must still be defined for the code
// that follows it). A missing RISP_LIB is a non-fatal warning, not an
// error; the returned registry is simply empty in that case.
func loadPrelude(env *environment.Environment) *macro.Registry {
	macros := macro.NewRegistry()

	dir := os.Getenv("RISP_LIB")
	if dir == "" {
		redColor.Fprintln(os.Stderr, "[WARN] RISP_LIB is not set; skipping prelude")
		return macros
	}

	path := filepath.Join(dir, "prelude.risp")
	source, err := os.ReadFile(path)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[WARN] could not read prelude %q: %v\n", path, err)
		return macros
	}

	rd := reader.New(string(source))
	rd.Macros = macros
	program, err := rd.ReadProgram()
	if err != nil {
		redColor.Fprintf(os.Stderr, "[WARN] prelude parse error: %s\n", err)
		return macros
	}
	for _, node := range program {
		if _, err := eval.Eval(node, env); err != nil {
			redColor.Fprintf(os.Stderr, "[WARN] prelude eval error: %s\n", err)
			return macros
		}
	}
	return macros
}
