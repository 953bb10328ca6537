/*
File    : rumlisp/repl/repl.go
*/

// Package repl implements RumLisp's interactive Read-Eval-Print Loop
// (spec.md §6 REPL mode), grounded on the teacher's repl/repl.go: the
// same banner/color/readline shape, adapted to RumLisp's value model
// (persistent environment and macro registry across lines, unit
// suppressed from output, strings printed quoted) and its `:exit`/`:help`
// command conventions in place of go-mix's `.exit`.
package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/RuMaxwell/rumlisp/builtin"
	"github.com/RuMaxwell/rumlisp/environment"
	"github.com/RuMaxwell/rumlisp/eval"
	"github.com/RuMaxwell/rumlisp/macro"
	"github.com/RuMaxwell/rumlisp/object"
	"github.com/RuMaxwell/rumlisp/reader"
	"github.com/chzyer/readline"
	"github.com/fatih/color"
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Repl holds the configuration for one interactive session.
type Repl struct {
	Banner  string
	Version string
	Author  string
	Line    string
	License string
	Prompt  string
}

// NewRepl constructs a Repl with the given display configuration.
func NewRepl(banner, version, author, line, license, prompt string) *Repl {
	return &Repl{Banner: banner, Version: version, Author: author, Line: line, License: license, Prompt: prompt}
}

// PrintBannerInfo prints the startup banner, version line and usage hints.
func (r *Repl) PrintBannerInfo(writer io.Writer) {
	blueColor.Fprintf(writer, "%s\n", r.Line)
	greenColor.Fprintf(writer, "%s\n", r.Banner)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	yellowColor.Fprintln(writer, "Version: "+r.Version+" | Author: "+r.Author+" | License: "+r.License)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	cyanColor.Fprintf(writer, "%s\n", "Welcome to RumLisp!")
	cyanColor.Fprintf(writer, "%s\n", "Type your code and press enter")
	cyanColor.Fprintf(writer, "%s\n", "Type ':exit' to quit, ':' for help")
	cyanColor.Fprintf(writer, "%s\n", "Use up/down arrows to navigate command history")
	blueColor.Fprintf(writer, "%s\n", r.Line)
}

// Start runs the REPL loop: one persistent environment and macro registry
// live for the whole session, so a `let` or `macro` on one line is visible
// to every later line (spec.md §6 — "other lines are evaluated in a
// persistent environment").
func (r *Repl) Start(writer io.Writer) {
	r.StartWithEnv(writer, builtin.NewGlobalEnv(writer), macro.NewRegistry())
}

// StartWithEnv runs the loop against a caller-supplied environment and
// macro registry, so the host can seed both (e.g. with a RISP_LIB prelude's
// bindings and macro definitions, spec.md §5) before the user's first line
// runs.
func (r *Repl) StartWithEnv(writer io.Writer, env *environment.Environment, macros *macro.Registry) {
	r.PrintBannerInfo(writer)

	rl, err := readline.New(r.Prompt)
	if err != nil {
		panic(err)
	}
	defer rl.Close()

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
		if line == ":exit" {
			writer.Write([]byte("Good Bye!\n"))
			break
		}
		if strings.HasPrefix(line, ":") {
			printHelp(writer)
			continue
		}

		rl.SaveHistory(line)
		r.evalLine(writer, line, env, macros)
	}
}

func printHelp(writer io.Writer) {
	cyanColor.Fprintln(writer, ":exit            quit the REPL")
	cyanColor.Fprintln(writer, ":<anything else> show this help")
	cyanColor.Fprintln(writer, "any other line is read and evaluated in the current environment")
}

// evalLine reads every top-level form on line (sharing macros across the
// whole session) and evaluates each one in env, printing every non-unit
// result on its own line, strings quoted (spec.md §6).
func (r *Repl) evalLine(writer io.Writer, line string, env *environment.Environment, macros *macro.Registry) {
	defer func() {
		if recovered := recover(); recovered != nil {
			redColor.Fprintf(writer, "[RUNTIME ERROR] %v\n", recovered)
		}
	}()

	rd := reader.New(line)
	rd.Macros = macros
	program, err := rd.ReadProgram()
	if err != nil {
		redColor.Fprintf(writer, "%s\n", err)
		return
	}

	for _, node := range program {
		result, err := eval.Eval(node, env)
		if err != nil {
			redColor.Fprintf(writer, "%s\n", err)
			return
		}
		if result == object.Value(object.TheUnit) {
			continue
		}
		yellowColor.Fprintf(writer, "%s\n", displayValue(result))
	}
}

// displayValue renders a top-level REPL result: strings quoted (via
// Repr), everything else via its ordinary String form.
func displayValue(v object.Value) string {
	if _, ok := v.(*object.String); ok {
		return v.Repr()
	}
	return fmt.Sprint(v.String())
}
