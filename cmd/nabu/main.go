/*
nabu is a console utility lexing and parsing files with a YAML language description.
Usage is

	nabu [--verbose] [--no-color] lex <grammar> <file>
	nabu [--verbose] [--no-color] parse [--format flat|json|yaml] [--entry <rule>] <grammar> <file>
	nabu [--verbose] [--no-color] check <grammar>

<grammar> is a language description file parsable by langdef.Load();

--verbose prints rule matching trace to stderr;

--no-color disables colored diagnostics, NO_COLOR environment variable does the same.

Errors are printed to stderr, exit code is 1 for lexical, syntax, and grammar errors
and 2 for invalid command line.
*/
package main

import (
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"github.com/ava12/nabu/internal/diag"
	"github.com/ava12/nabu/source"
)

// Context is shared by all commands.
type Context struct {
	Stdout io.Writer
	Stderr io.Writer
	Log    *logrus.Logger

	// src is the source being processed, used to print error excerpts
	src *source.Source
}

// CLI represents the command-line interface.
type CLI struct {
	Verbose bool `help:"Trace rule matching to stderr" short:"v"`
	NoColor bool `help:"Disable colored output" env:"NO_COLOR"`

	Lex   LexCmd   `cmd:"" help:"Print tokens of a file"`
	Parse ParseCmd `cmd:"" help:"Parse a file and print the result tree"`
	Check CheckCmd `cmd:"" help:"Validate a language description"`
}

func newLogger(w io.Writer, verbose bool) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if verbose {
		l.SetLevel(logrus.DebugLevel)
	} else {
		l.SetLevel(logrus.WarnLevel)
	}
	return l
}

func run(args []string, stdout, stderr io.Writer) int {
	var cli CLI
	exitCode := -1
	k, e := kong.New(&cli,
		kong.Name("nabu"),
		kong.Description("Lexes and parses files with a YAML language description."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(code int) { exitCode = code }),
	)
	if e != nil {
		panic(e)
	}

	kctx, e := k.Parse(args)
	if exitCode >= 0 {
		return exitCode
	}
	if e != nil {
		k.Errorf("%s", e.Error())
		return 2
	}

	if cli.NoColor {
		color.NoColor = true
	}
	ctx := &Context{Stdout: stdout, Stderr: stderr, Log: newLogger(stderr, cli.Verbose)}
	if e = kctx.Run(ctx); e != nil {
		diag.Write(stderr, e, ctx.src)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], color.Output, color.Error))
}
