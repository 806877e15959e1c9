// Strukt turns indentation-structured pseudocode into Nassi-Shneiderman
// structograms. It parses pseudocode into a diagram tree and prints it,
// serializes it back, generates code from it in several target languages,
// computes its rendering geometry, stores named diagrams, and serves editor
// diagnostics over LSP.
package main

import (
	"os"

	"github.com/strukt-dev/strukt/pkg/buildinfo"
	"github.com/strukt-dev/strukt/pkg/lsp"
	"github.com/strukt-dev/strukt/pkg/prog"
	"github.com/strukt-dev/strukt/pkg/strukt"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		prog.Composite(
			buildinfo.Program, lsp.Program{}, strukt.Program{})))
}
