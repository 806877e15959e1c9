// Package progtest contains utilities for testing [prog.Program] instances.
package progtest

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/strukt-dev/strukt/pkg/must"
	"github.com/strukt-dev/strukt/pkg/prog"
)

// Fixture captures the state of the standard files during a program run.
type Fixture struct {
	fds    [3]*os.File
	reads  [2]chan string
	cached [2]*string
	writes [2]*os.File
}

// Setup creates a Fixture with stdin connected to an empty pipe and stdout
// and stderr connected to capturing pipes.
func Setup(t *testing.T) *Fixture {
	t.Helper()
	return SetupWithInput(t, "")
}

// SetupWithInput is like Setup, but the given string can be read from the
// program's stdin.
func SetupWithInput(t *testing.T, input string) *Fixture {
	t.Helper()
	in0, in1 := must.OK2(os.Pipe())
	go func() {
		io.Copy(in1, strings.NewReader(input))
		in1.Close()
	}()
	f := &Fixture{}
	f.fds[0] = in0
	for i := 0; i < 2; i++ {
		r, w := must.OK2(os.Pipe())
		ch := make(chan string, 1)
		go func() {
			ch <- string(must.OK1(io.ReadAll(r)))
			r.Close()
		}()
		f.fds[i+1] = w
		f.reads[i] = ch
		f.writes[i] = w
	}
	t.Cleanup(func() {
		in0.Close()
		for _, w := range f.writes {
			w.Close()
		}
	})
	return f
}

// Run runs the program with the fixture's standard files and the given
// command-line arguments, and returns the exit status. It closes the write
// ends of the output pipes, so it can only be called once per fixture.
func (f *Fixture) Run(p prog.Program, args ...string) int {
	exit := prog.Run(f.fds, args, p)
	for _, w := range f.writes {
		w.Close()
	}
	return exit
}

// Out returns everything the program wrote to stdout. It may be called any
// number of times; the capturing goroutine delivers the content only once,
// so the first call caches it.
func (f *Fixture) Out() string { return f.read(0) }

// Err returns everything the program wrote to stderr. Like Out, it may be
// called any number of times.
func (f *Fixture) Err() string { return f.read(1) }

func (f *Fixture) read(i int) string {
	if f.cached[i] == nil {
		s := <-f.reads[i]
		f.cached[i] = &s
	}
	return *f.cached[i]
}

// TestOut checks that the program wrote exactly wantOut to stdout.
func (f *Fixture) TestOut(t *testing.T, wantOut string) {
	t.Helper()
	if out := f.Out(); out != wantOut {
		t.Errorf("got stdout %q, want %q", out, wantOut)
	}
}

// TestErr checks that the program wrote exactly wantErr to stderr.
func (f *Fixture) TestErr(t *testing.T, wantErr string) {
	t.Helper()
	if err := f.Err(); err != wantErr {
		t.Errorf("got stderr %q, want %q", err, wantErr)
	}
}

// TestOutSnippet checks that the program's stdout contains the given snippet.
func (f *Fixture) TestOutSnippet(t *testing.T, wantOutSnippet string) {
	t.Helper()
	if out := f.Out(); !strings.Contains(out, wantOutSnippet) {
		t.Errorf("got stdout %q, want string containing %q", out, wantOutSnippet)
	}
}

// TestErrSnippet checks that the program's stderr contains the given snippet.
func (f *Fixture) TestErrSnippet(t *testing.T, wantErrSnippet string) {
	t.Helper()
	if err := f.Err(); !strings.Contains(err, wantErrSnippet) {
		t.Errorf("got stderr %q, want string containing %q", err, wantErrSnippet)
	}
}
