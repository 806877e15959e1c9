// Package strukt implements the main subprogram: parse pseudocode, then
// print, serialize, generate code from, lay out or store the resulting
// diagram.
package strukt

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/strukt-dev/strukt/pkg/diag"
	"github.com/strukt-dev/strukt/pkg/dialect"
	"github.com/strukt-dev/strukt/pkg/edit"
	"github.com/strukt-dev/strukt/pkg/gen"
	"github.com/strukt-dev/strukt/pkg/layout"
	"github.com/strukt-dev/strukt/pkg/parse"
	"github.com/strukt-dev/strukt/pkg/prog"
	"github.com/strukt-dev/strukt/pkg/store"
	"github.com/strukt-dev/strukt/pkg/tree"
)

// Program is the main subprogram.
type Program struct{}

func (p Program) Run(fds [3]*os.File, f *prog.Flags, args []string) error {
	if len(args) > 1 {
		return prog.BadUsage("at most one file argument is accepted")
	}

	d, err := resolveDialect(f)
	if err != nil {
		return prog.BadUsage(err.Error())
	}

	var st store.Store
	if f.DB != "" {
		st, err = store.NewStore(f.DB)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer st.Close()
	} else if f.Save != "" || f.Load != "" || f.List {
		return prog.BadUsage("-save, -load and -list require -db")
	}

	if f.List {
		names, err := st.Diagrams()
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Fprintln(fds[1], name)
		}
		return nil
	}

	root, err := obtainDiagram(fds, f, args, d, st)
	if err != nil {
		return err
	}

	if f.Save != "" {
		if err := saveDiagram(f.Save, root, d, st); err != nil {
			return err
		}
	}

	return emit(fds[1], f, root, d)
}

func resolveDialect(f *prog.Flags) (dialect.Map, error) {
	if f.DialectFile != "" {
		file, err := os.Open(f.DialectFile)
		if err != nil {
			return dialect.Map{}, err
		}
		defer file.Close()
		return dialect.Load(file)
	}
	return dialect.ByName(f.Dialect)
}

func obtainDiagram(fds [3]*os.File, f *prog.Flags, args []string, d dialect.Map, st store.Store) (*tree.Root, error) {
	if f.Load != "" {
		data, err := st.Diagram(f.Load)
		if err != nil {
			return nil, fmt.Errorf("load %q: %w", f.Load, err)
		}
		root, err := tree.DecodeJSON(data)
		if err != nil {
			return nil, fmt.Errorf("load %q: %w", f.Load, err)
		}
		return edit.WrapInsertions(root), nil
	}

	src, err := readSource(fds, args)
	if err != nil {
		return nil, err
	}
	for _, w := range parse.Check(src, d) {
		diag.Complainf("%s:%d: %s", src.Name, w.Line, w.Message)
	}
	return parse.Parse(src, d)
}

func readSource(fds [3]*os.File, args []string) (parse.Source, error) {
	if len(args) == 1 {
		code, err := os.ReadFile(args[0])
		if err != nil {
			return parse.Source{}, err
		}
		return parse.Source{Name: args[0], Code: string(code)}, nil
	}
	code, err := io.ReadAll(fds[0])
	if err != nil {
		return parse.Source{}, err
	}
	return parse.Source{Name: "stdin", Code: string(code)}, nil
}

func saveDiagram(name string, root *tree.Root, d dialect.Map, st store.Store) error {
	data, err := tree.EncodeJSON(edit.StripMarkers(root))
	if err != nil {
		return err
	}
	if err := st.SaveDiagram(name, data); err != nil {
		return err
	}
	return st.SaveSource(name, parse.Serialize(root, d))
}

func emit(out *os.File, f *prog.Flags, root *tree.Root, d dialect.Map) error {
	switch {
	case f.Target != "":
		code, err := gen.Generate(root, f.Target)
		var unsupported *gen.UnsupportedLanguageError
		if errors.As(err, &unsupported) {
			return prog.BadUsage(err.Error())
		} else if err != nil {
			return err
		}
		fmt.Fprint(out, code)
	case f.Serialize:
		fmt.Fprint(out, parse.Serialize(root, d))
	case f.Layout:
		m, err := layout.GoRegular(12)
		if err != nil {
			return err
		}
		printSheet(out, layout.Layout(root, m, f.Width))
	case f.Tree:
		if f.JSON {
			data, err := tree.EncodeJSON(edit.StripMarkers(root))
			if err != nil {
				return err
			}
			out.Write(data)
			fmt.Fprintln(out)
		} else {
			fmt.Fprint(out, tree.Sketch(root))
		}
	default:
		fmt.Fprint(out, tree.Sketch(root))
	}
	return nil
}

func printSheet(out *os.File, sheet *layout.Sheet) {
	fmt.Fprintf(out, "total height %.1f\n", sheet.TotalHeight)
	for _, b := range sheet.Boxes {
		fmt.Fprintf(out, "box %s #%d (%.1f, %.1f) %.1f x %.1f\n",
			b.Kind, b.NodeID, b.X, b.Y, b.W, b.H)
	}
	for _, l := range sheet.Lines {
		fmt.Fprintf(out, "line (%.1f, %.1f) - (%.1f, %.1f)\n",
			l.X1, l.Y1, l.X2, l.Y2)
	}
	for _, l := range sheet.Labels {
		fmt.Fprintf(out, "label %q (%.1f, %.1f)\n",
			strings.TrimSpace(l.Text), l.X, l.Y)
	}
}
