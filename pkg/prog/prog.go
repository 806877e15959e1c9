// Package prog provides the entry point to strukt. Its subpackages correspond
// to subprograms of strukt.
package prog

// This package sets up the basic environment and calls the appropriate
// "subprogram", one of the LSP server or the diagram processor.

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
)

// Flags keeps command-line flags.
type Flags struct {
	Help, Version, BuildInfo, JSON bool

	LSP bool

	Target    string
	Serialize bool
	Layout    bool
	Tree      bool
	Width     float64

	Dialect     string
	DialectFile string

	DB   string
	Save string
	Load string
	List bool
}

func newFlagSet(f *Flags) *flag.FlagSet {
	fs := flag.NewFlagSet("strukt", flag.ContinueOnError)
	// Error and usage will be printed explicitly.
	fs.SetOutput(io.Discard)

	fs.BoolVar(&f.Help, "help", false, "show usage help and quit")
	fs.BoolVar(&f.Version, "version", false, "show version and quit")
	fs.BoolVar(&f.BuildInfo, "buildinfo", false, "show build info and quit")
	fs.BoolVar(&f.JSON, "json", false, "show output in JSON. Useful with -buildinfo and -tree")

	fs.BoolVar(&f.LSP, "lsp", false, "run the language server instead of the diagram processor")

	fs.StringVar(&f.Target, "target", "", "generate code for the given language instead of printing the diagram")
	fs.BoolVar(&f.Serialize, "serialize", false, "parse the input and print it back as pseudocode")
	fs.BoolVar(&f.Layout, "layout", false, "print the computed diagram layout")
	fs.BoolVar(&f.Tree, "tree", false, "print the parsed diagram tree")
	fs.Float64Var(&f.Width, "width", 400, "total width used with -layout")

	fs.StringVar(&f.Dialect, "dialect", "default", "keyword dialect for parsing and serializing")
	fs.StringVar(&f.DialectFile, "dialect-file", "", "path to a YAML file defining the keyword dialect")

	fs.StringVar(&f.DB, "db", "", "path to the diagram database")
	fs.StringVar(&f.Save, "save", "", "save the parsed diagram to the database under the given name")
	fs.StringVar(&f.Load, "load", "", "load the diagram with the given name from the database")
	fs.BoolVar(&f.List, "list", false, "list all diagrams in the database and quit")

	return fs
}

func usage(out io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(out, "Usage: strukt [flags] [file]")
	fmt.Fprintln(out, "Supported flags:")
	fs.SetOutput(out)
	fs.PrintDefaults()
}

// Run parses command-line flags and runs the first applicable subprogram. It
// returns the exit status of the program.
func Run(fds [3]*os.File, args []string, p Program) int {
	f := &Flags{}
	fs := newFlagSet(f)
	err := fs.Parse(args[1:])
	if err != nil {
		if err == flag.ErrHelp {
			// (*flag.FlagSet).Parse returns ErrHelp when -h or -help was
			// requested but *not* defined. We define -help, but not -h; so
			// this means that -h has been requested. Handle this by printing
			// the same message as an undefined flag.
			fmt.Fprintln(fds[2], "flag provided but not defined: -h")
		} else {
			fmt.Fprintln(fds[2], err)
		}
		usage(fds[2], fs)
		return 2
	}

	if f.Help {
		usage(fds[1], fs)
		return 0
	}

	err = p.Run(fds, f, fs.Args())
	if err == nil {
		return 0
	}
	if msg := err.Error(); msg != "" {
		fmt.Fprintln(fds[2], msg)
	}
	switch err := err.(type) {
	case badUsageError:
		usage(fds[2], fs)
	case exitError:
		return err.exit
	}
	return 2
}

// Composite returns a Program that tries each of the given programs,
// terminating at the first one that doesn't return ErrNotSuitable.
func Composite(programs ...Program) Program {
	return compositeProgram(programs)
}

type compositeProgram []Program

func (cp compositeProgram) Run(fds [3]*os.File, f *Flags, args []string) error {
	for _, p := range cp {
		err := p.Run(fds, f, args)
		if err != ErrNotSuitable {
			return err
		}
	}
	// If we have reached here, all subprograms have returned ErrNotSuitable.
	return ErrNotSuitable
}

// ErrNotSuitable is a special error that may be returned by Program.Run, to
// signify that this Program should not be run. It is useful when a Program is
// used in Composite.
var ErrNotSuitable = errors.New("internal error: no suitable subprogram")

// BadUsage returns a special error that may be returned by Program.Run. It
// causes the main function to print out a message, the usage information and
// exit with 2.
func BadUsage(msg string) error { return badUsageError{msg} }

type badUsageError struct{ msg string }

func (e badUsageError) Error() string { return e.msg }

// Exit returns a special error that may be returned by Program.Run. It causes
// the main function to exit with the given code without printing any error
// messages. Exit(0) returns nil.
func Exit(exit int) error {
	if exit == 0 {
		return nil
	}
	return exitError{exit}
}

type exitError struct{ exit int }

func (e exitError) Error() string { return "" }

// Program represents a subprogram.
type Program interface {
	// Run runs the subprogram.
	Run(fds [3]*os.File, f *Flags, args []string) error
}
