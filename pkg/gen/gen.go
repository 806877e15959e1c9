// Package gen emits source text in a target surface language from a
// structogram tree.
//
// Each target is a table of small template fragments plus two capability
// flags. The emitter itself is a single depth-first walk; everything
// language-specific lives in the table. Targets without a native foot-tested
// loop get the loop lowered to an infinite loop with a conditional break on
// the negated condition; targets without a native multi-way branch get the
// switch lowered to a chain of equality conditionals.
package gen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/strukt-dev/strukt/pkg/tree"
)

// UnsupportedLanguageError is returned when the target identifier resolves
// to no template table.
type UnsupportedLanguageError struct {
	Lang      string
	Supported []string
}

func (e *UnsupportedLanguageError) Error() string {
	return fmt.Sprintf("unsupported target language %q (supported: %s)",
		e.Lang, strings.Join(e.Supported, ", "))
}

// target is the template table for one surface language. Fragments ending
// in "%s" take the node text; blockClose is empty for indentation-delimited
// targets.
type target struct {
	indent     string
	task       string
	input      string
	output     string
	ifOpen     string
	elseOpen   string
	blockClose string
	emptyBody  string // emitted for blocks with no statements, "" to omit

	while   string
	forOpen string

	nativeFootLoop bool
	footOpen       string // native: opening line of do/while
	footClose      string // native: closing line, takes the condition
	infiniteOpen   string // lowered: opening line of the infinite loop
	breakIfNot     string // lowered: conditional on the negated condition
	breakStmt      string // lowered: the break inside that conditional

	nativeSwitch bool
	switchOpen   string
	caseOpen     string
	defaultOpen  string
	caseClose    string // fallthrough prevention after every case body
	switchClose  string
	eqIf         string // lowered: first case, takes discriminant and label
	eqElse       string // lowered: later cases
	eqDefault    string // lowered: default branch

	tryOpen      string
	catchOpen    string // takes the catch binding
	tryClose     string
	funcOpen     string // takes name and parameter list
	unnamedCatch string // binding used when the tree has none
}

var targets = map[string]*target{
	"python": {
		indent:       "    ",
		task:         "%s",
		input:        `%s = input("Eingabe")`,
		output:       "print(%s)",
		ifOpen:       "if %s:",
		elseOpen:     "else:",
		emptyBody:    "pass",
		while:        "while %s:",
		forOpen:      "for %s:",
		infiniteOpen: "while True:",
		breakIfNot:   "if not (%s):",
		breakStmt:    "break",
		eqIf:         "if %s == %s:",
		eqElse:       "elif %s == %s:",
		eqDefault:    "else:",
		tryOpen:      "try:",
		catchOpen:    "except Exception as %s:",
		funcOpen:     "def %s(%s):",
		unnamedCatch: "e",
	},
	"java": {
		indent:         "    ",
		task:           "%s;",
		input:          "%s = new Scanner(System.in).nextLine();",
		output:         "System.out.println(%s);",
		ifOpen:         "if (%s) {",
		elseOpen:       "} else {",
		blockClose:     "}",
		while:          "while (%s) {",
		forOpen:        "for (%s) {",
		nativeFootLoop: true,
		footOpen:       "do {",
		footClose:      "} while (%s);",
		nativeSwitch:   true,
		switchOpen:     "switch (%s) {",
		caseOpen:       "case %s:",
		defaultOpen:    "default:",
		caseClose:      "break;",
		switchClose:    "}",
		tryOpen:        "try {",
		catchOpen:      "} catch (Exception %s) {",
		tryClose:       "}",
		funcOpen:       "public static void %s(%s) {",
		unnamedCatch:   "e",
	},
	"javascript": {
		indent:         "    ",
		task:           "%s;",
		input:          `%s = prompt("Eingabe");`,
		output:         "console.log(%s);",
		ifOpen:         "if (%s) {",
		elseOpen:       "} else {",
		blockClose:     "}",
		while:          "while (%s) {",
		forOpen:        "for (%s) {",
		nativeFootLoop: true,
		footOpen:       "do {",
		footClose:      "} while (%s);",
		nativeSwitch:   true,
		switchOpen:     "switch (%s) {",
		caseOpen:       "case %s:",
		defaultOpen:    "default:",
		caseClose:      "break;",
		switchClose:    "}",
		tryOpen:        "try {",
		catchOpen:      "} catch (%s) {",
		tryClose:       "}",
		funcOpen:       "function %s(%s) {",
		unnamedCatch:   "e",
	},
}

// Targets returns the supported target identifiers, sorted.
func Targets() []string {
	names := make([]string, 0, len(targets))
	for name := range targets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Generate emits the tree as source text in the given target language.
func Generate(root *tree.Root, lang string) (string, error) {
	t, ok := targets[lang]
	if !ok {
		return "", &UnsupportedLanguageError{Lang: lang, Supported: Targets()}
	}
	e := emitter{t: t}
	e.chain(root.Follow, 0)
	return e.sb.String(), nil
}

type emitter struct {
	t  *target
	sb strings.Builder
}

func (e *emitter) line(depth int, format string, args ...interface{}) {
	e.sb.WriteString(strings.Repeat(e.t.indent, depth))
	fmt.Fprintf(&e.sb, format, args...)
	e.sb.WriteByte('\n')
}

// body emits the statements of a chain, or the target's empty-body
// statement if the chain has none.
func (e *emitter) body(n tree.Node, depth int) {
	if !tree.HasContent(n) {
		if e.t.emptyBody != "" {
			e.line(depth, "%s", e.t.emptyBody)
		}
		return
	}
	e.chain(n, depth)
}

func (e *emitter) chain(n tree.Node, depth int) {
	for ; n != nil; n = tree.Follow(n) {
		e.node(n, depth)
	}
}

func (e *emitter) node(n tree.Node, depth int) {
	t := e.t
	switch n := n.(type) {
	case *tree.Empty, *tree.Insertion:
		// Markers are transparent to generation.
	case *tree.Task:
		e.line(depth, t.task, n.Text)
	case *tree.Input:
		e.line(depth, t.input, n.Text)
	case *tree.Output:
		e.line(depth, t.output, n.Text)
	case *tree.Branch:
		e.line(depth, t.ifOpen, n.Text)
		e.body(n.True, depth+1)
		if tree.HasContent(n.False) {
			e.line(depth, "%s", t.elseOpen)
			e.body(n.False, depth+1)
		}
		e.close(depth)
	case *tree.Switch:
		e.emitSwitch(n, depth)
	case *tree.While:
		e.line(depth, t.while, n.Text)
		e.body(n.Body, depth+1)
		e.close(depth)
	case *tree.For:
		e.line(depth, t.forOpen, n.Text)
		e.body(n.Body, depth+1)
		e.close(depth)
	case *tree.Repeat:
		if t.nativeFootLoop {
			e.line(depth, "%s", t.footOpen)
			e.body(n.Body, depth+1)
			e.line(depth, t.footClose, n.Text)
		} else {
			e.line(depth, "%s", t.infiniteOpen)
			e.chain(n.Body, depth+1)
			e.line(depth+1, t.breakIfNot, n.Text)
			e.line(depth+2, "%s", t.breakStmt)
		}
	case *tree.Function:
		names := make([]string, len(n.Params))
		for i, p := range n.Params {
			names[i] = p.Name
		}
		e.line(depth, t.funcOpen, n.Text, strings.Join(names, ", "))
		e.body(n.Body, depth+1)
		e.close(depth)
	case *tree.TryCatch:
		binding := n.Text
		if binding == "" {
			binding = t.unnamedCatch
		}
		e.line(depth, "%s", t.tryOpen)
		e.body(n.Try, depth+1)
		e.line(depth, t.catchOpen, binding)
		e.body(n.Catch, depth+1)
		if t.tryClose != "" {
			e.line(depth, "%s", t.tryClose)
		}
	default:
		panic(fmt.Sprintf("gen: unknown node type %T", n))
	}
}

func (e *emitter) emitSwitch(n *tree.Switch, depth int) {
	t := e.t
	if t.nativeSwitch {
		e.line(depth, t.switchOpen, n.Text)
		for _, c := range n.Cases {
			e.line(depth+1, t.caseOpen, c.Text)
			e.body(c.Body, depth+2)
			e.line(depth+2, "%s", t.caseClose)
		}
		if n.DefaultOn {
			e.line(depth+1, "%s", t.defaultOpen)
			e.body(n.Default.Body, depth+2)
			e.line(depth+2, "%s", t.caseClose)
		}
		e.line(depth, "%s", t.switchClose)
		return
	}
	if len(n.Cases) == 0 {
		// Nothing to compare against; the default, if any, runs
		// unconditionally.
		if n.DefaultOn {
			e.chain(n.Default.Body, depth)
		}
		return
	}
	for i, c := range n.Cases {
		open := t.eqIf
		if i > 0 {
			open = t.eqElse
		}
		e.line(depth, open, n.Text, c.Text)
		e.body(c.Body, depth+1)
	}
	if n.DefaultOn {
		e.line(depth, "%s", t.eqDefault)
		e.body(n.Default.Body, depth+1)
	}
}

// close emits the block terminator for brace-delimited targets.
func (e *emitter) close(depth int) {
	if e.t.blockClose != "" {
		e.line(depth, "%s", e.t.blockClose)
	}
}
