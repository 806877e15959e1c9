package strukt_test

import (
	"path/filepath"
	"testing"

	"github.com/strukt-dev/strukt/pkg/must"
	"github.com/strukt-dev/strukt/pkg/prog/progtest"
	"github.com/strukt-dev/strukt/pkg/strukt"
	"github.com/strukt-dev/strukt/pkg/testutil"
)

var dedent = testutil.Dedent

func TestSketchFromStdin(t *testing.T) {
	f := progtest.SetupWithInput(t, dedent(`
		input("n")
		output(n)
		`))
	exit := f.Run(strukt.Program{}, "strukt")
	if exit != 0 {
		t.Errorf("exit = %d, want 0", exit)
	}
	f.TestOut(t, dedent(`
		insertionpoint
		input "n"
		insertionpoint
		output "n"
		insertionpoint
		empty
		`))
}

func TestSketchFromFile(t *testing.T) {
	path := writeFile(t, "prog.nsd", "a\n")
	f := progtest.Setup(t)
	exit := f.Run(strukt.Program{}, "strukt", path)
	if exit != 0 {
		t.Errorf("exit = %d, want 0", exit)
	}
	f.TestOut(t, dedent(`
		insertionpoint
		task "a"
		insertionpoint
		empty
		`))
}

func TestMissingFile(t *testing.T) {
	f := progtest.Setup(t)
	exit := f.Run(strukt.Program{}, "strukt",
		filepath.Join(t.TempDir(), "no-such-file"))
	if exit != 2 {
		t.Errorf("exit = %d, want 2", exit)
	}
	f.TestErrSnippet(t, "no-such-file")
}

func TestTooManyArgs(t *testing.T) {
	f := progtest.Setup(t)
	exit := f.Run(strukt.Program{}, "strukt", "a.nsd", "b.nsd")
	if exit != 2 {
		t.Errorf("exit = %d, want 2", exit)
	}
	f.TestErrSnippet(t, "at most one file argument")
}

func TestTargetPython(t *testing.T) {
	f := progtest.SetupWithInput(t, dedent(`
		input("n")
		output(n)
		`))
	exit := f.Run(strukt.Program{}, "strukt", "-target", "python")
	if exit != 0 {
		t.Errorf("exit = %d, want 0", exit)
	}
	f.TestOut(t, dedent(`
		n = input("Eingabe")
		print(n)
		`))
}

func TestTargetUnsupported(t *testing.T) {
	f := progtest.SetupWithInput(t, "a\n")
	exit := f.Run(strukt.Program{}, "strukt", "-target", "cobol")
	if exit != 2 {
		t.Errorf("exit = %d, want 2", exit)
	}
	f.TestErrSnippet(t, `unsupported target language "cobol"`)
}

func TestSerializeRoundTrip(t *testing.T) {
	code := dedent(`
		if x > 0:
		    output("x")
		else:
		    output("0")
		`)
	f := progtest.SetupWithInput(t, code)
	exit := f.Run(strukt.Program{}, "strukt", "-serialize")
	if exit != 0 {
		t.Errorf("exit = %d, want 0", exit)
	}
	f.TestOut(t, code)
}

func TestSerializeGermanDialect(t *testing.T) {
	f := progtest.SetupWithInput(t, "wenn x > 0:\n    a\n")
	exit := f.Run(strukt.Program{}, "strukt", "-dialect", "german", "-serialize")
	if exit != 0 {
		t.Errorf("exit = %d, want 0", exit)
	}
	f.TestOutSnippet(t, "wenn x > 0:")
}

func TestUnknownDialect(t *testing.T) {
	f := progtest.Setup(t)
	exit := f.Run(strukt.Program{}, "strukt", "-dialect", "klingon")
	if exit != 2 {
		t.Errorf("exit = %d, want 2", exit)
	}
	f.TestErrSnippet(t, "klingon")
}

func TestDialectFile(t *testing.T) {
	path := writeFile(t, "dialect.yaml", dedent(`
		if: si
		else: sino
		while: mientras
		for: para
		repeat: repite
		switch: segun
		case: caso
		default: otro
		function: funcion
		try: intenta
		catch: atrapa
		input: entrada
		output: salida
		`))
	f := progtest.SetupWithInput(t, "si x > 0:\n    a\n")
	exit := f.Run(strukt.Program{}, "strukt", "-dialect-file", path)
	if exit != 0 {
		t.Errorf("exit = %d, want 0", exit)
	}
	f.TestOutSnippet(t, `branch "x > 0"`)
}

func TestTreeJSON(t *testing.T) {
	f := progtest.SetupWithInput(t, "a\n")
	exit := f.Run(strukt.Program{}, "strukt", "-tree", "-json")
	if exit != 0 {
		t.Errorf("exit = %d, want 0", exit)
	}
	// The tree is emitted in indented form.
	f.TestOutSnippet(t, `"type": "task"`)
}

func TestLayout(t *testing.T) {
	f := progtest.SetupWithInput(t, "a\n")
	exit := f.Run(strukt.Program{}, "strukt", "-layout", "-width", "300")
	if exit != 0 {
		t.Errorf("exit = %d, want 0", exit)
	}
	f.TestOutSnippet(t, "total height ")
}

func TestStoreRequiresDB(t *testing.T) {
	f := progtest.Setup(t)
	exit := f.Run(strukt.Program{}, "strukt", "-list")
	if exit != 2 {
		t.Errorf("exit = %d, want 2", exit)
	}
	f.TestErrSnippet(t, "require -db")
}

func TestSaveLoadList(t *testing.T) {
	db := filepath.Join(t.TempDir(), "strukt.db")

	f := progtest.SetupWithInput(t, "input(\"n\")\noutput(n)\n")
	if exit := f.Run(strukt.Program{}, "strukt", "-db", db, "-save", "io"); exit != 0 {
		t.Fatalf("save: exit = %d, stderr %q", exit, f.Err())
	}

	f = progtest.Setup(t)
	if exit := f.Run(strukt.Program{}, "strukt", "-db", db, "-list"); exit != 0 {
		t.Fatalf("list: exit = %d", exit)
	}
	f.TestOut(t, "io\n")

	f = progtest.Setup(t)
	if exit := f.Run(strukt.Program{}, "strukt", "-db", db, "-load", "io", "-target", "python"); exit != 0 {
		t.Fatalf("load: exit = %d, stderr %q", exit, f.Err())
	}
	f.TestOut(t, dedent(`
		n = input("Eingabe")
		print(n)
		`))
}

func TestLoadMissingDiagram(t *testing.T) {
	db := filepath.Join(t.TempDir(), "strukt.db")
	f := progtest.Setup(t)
	exit := f.Run(strukt.Program{}, "strukt", "-db", db, "-load", "absent")
	if exit != 2 {
		t.Errorf("exit = %d, want 2", exit)
	}
	f.TestErrSnippet(t, "no such diagram")
}

func writeFile(t *testing.T, base, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), base)
	must.WriteFile(path, content)
	return path
}
