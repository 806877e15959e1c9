// Package parse turns pseudocode text into a structogram tree, and back.
//
// The grammar is line-oriented and indentation-significant. Parsing runs in
// three stages: tokenize the source into indented lines, group the lines
// into nested sibling blocks, and merge the blocks into tree nodes. The
// merge stage is pair-aware: an if-block directly followed by an else-block
// becomes one Branch, try followed by catch becomes one TryCatch, and
// repeat followed by a colonless while becomes one foot-tested Repeat.
//
// Parsing never fails on unrecognized input; any line that matches no
// construct degrades to a plain Task carrying its literal text.
package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/strukt-dev/strukt/pkg/dialect"
	"github.com/strukt-dev/strukt/pkg/tree"
)

// Source describes a piece of pseudocode text.
type Source struct {
	Name string
	Code string
}

// An indent unit is four columns; a tab counts as one unit.
const indentUnit = 4

// MalformedConstructError reports an internally inconsistent construct
// encountered during block merging. The Task fallback covers all
// unrecognized input, so this error indicates a parser bug rather than bad
// input; it is defined so that defensive callers have a concrete type to
// test for.
type MalformedConstructError struct {
	Construct string
	Line      int
}

func (e *MalformedConstructError) Error() string {
	return fmt.Sprintf("malformed %s construct on line %d", e.Construct, e.Line)
}

// Parse parses the given source using the keyword map d. The identifiers of
// the returned tree are fresh for every call.
func Parse(src Source, d dialect.Map) (*tree.Root, error) {
	p := newParser(d)
	chain, err := p.chain(groupBlocks(tokenize(src.Code)))
	if err != nil {
		return nil, err
	}
	return &tree.Root{Follow: chain}, nil
}

// line is one non-blank, non-comment source line.
type line struct {
	num    int    // 1-based position in the source
	indent int    // leading columns, tabs expanded
	text   string // text with leading and trailing whitespace removed
}

func tokenize(code string) []line {
	var lines []line
	for i, raw := range strings.Split(code, "\n") {
		text := strings.TrimSpace(raw)
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		indent := 0
		for _, r := range raw {
			if r == ' ' {
				indent++
			} else if r == '\t' {
				indent += indentUnit
			} else {
				break
			}
		}
		lines = append(lines, line{num: i + 1, indent: indent, text: text})
	}
	return lines
}

// block is a line together with all subsequent deeper-indented lines,
// recursively re-grouped one indent unit further in.
type block struct {
	head     line
	children []block
}

func groupBlocks(lines []line) []block {
	var blocks []block
	for i := 0; i < len(lines); {
		head := lines[i]
		j := i + 1
		for j < len(lines) && lines[j].indent > head.indent {
			j++
		}
		blocks = append(blocks, block{
			head:     head,
			children: groupBlocks(lines[i+1 : j]),
		})
		i = j
	}
	return blocks
}

// parser holds the compiled keyword patterns and the identifier counter for
// one Parse call. There is no process-wide state, so concurrent parses
// never interact.
type parser struct {
	d      dialect.Map
	nextID int

	ifRe, whileRe, forRe, switchRe, caseRe *regexp.Regexp
	funcRe, catchRe, inputRe, outputRe     *regexp.Regexp
	elseRe, defaultRe, tryRe, repeatRe     *regexp.Regexp
	whileFootRe                            *regexp.Regexp
}

func newParser(d dialect.Map) *parser {
	// Keywords are escaped before being embedded, so dialects may use
	// literals that happen to contain pattern metacharacters.
	prefix := func(kw string) *regexp.Regexp {
		return regexp.MustCompile(`(?i)^` + regexp.QuoteMeta(kw) + `\s+(.*):$`)
	}
	exact := func(kw string) *regexp.Regexp {
		return regexp.MustCompile(`(?i)^` + regexp.QuoteMeta(kw) + `:$`)
	}
	bare := func(kw string) *regexp.Regexp {
		return regexp.MustCompile(`(?i)^` + regexp.QuoteMeta(kw) + `\b\s*(.*)$`)
	}
	return &parser{
		d:           d,
		ifRe:        prefix(d.If),
		whileRe:     prefix(d.While),
		forRe:       prefix(d.For),
		switchRe:    prefix(d.Switch),
		caseRe:      prefix(d.Case),
		funcRe:      prefix(d.Function),
		catchRe:     regexp.MustCompile(`(?i)^` + regexp.QuoteMeta(d.Catch) + `\b\s*(.*):$`),
		inputRe:     bare(d.Input),
		outputRe:    bare(d.Output),
		elseRe:      exact(d.Else),
		defaultRe:   exact(d.Default),
		tryRe:       exact(d.Try),
		repeatRe:    exact(d.Repeat),
		whileFootRe: regexp.MustCompile(`(?i)^` + regexp.QuoteMeta(d.While) + `\s+(.*)$`),
	}
}

func (p *parser) id() int {
	p.nextID++
	return p.nextID
}

func (p *parser) newEmpty() *tree.Empty {
	e := &tree.Empty{}
	e.SetID(p.id())
	return e
}

func (p *parser) newInsertion(follow tree.Node) *tree.Insertion {
	ip := &tree.Insertion{Follow: follow}
	ip.SetID(p.id())
	return ip
}

// emptyChain returns the canonical empty chain: a single insertion point
// leading into a terminator.
func (p *parser) emptyChain() tree.Node {
	return p.newInsertion(p.newEmpty())
}

// chain converts sibling blocks into a canonical chain: an insertion point
// before every content node and a terminating insertion/empty pair.
func (p *parser) chain(blocks []block) (tree.Node, error) {
	return p.chainInto(blocks, p.emptyChain())
}

// chainInto is like chain but ends in cont instead of a fresh terminator.
// The chain is built from the last block backward, because each node's
// Follow must point at the chain already built for everything after it.
func (p *parser) chainInto(blocks []block, cont tree.Node) (tree.Node, error) {
	consumed := p.markPairs(blocks)
	next := cont
	for i := len(blocks) - 1; i >= 0; i-- {
		if consumed[i] {
			continue
		}
		var partner *block
		if i+1 < len(blocks) && consumed[i+1] {
			partner = &blocks[i+1]
		}
		n, err := p.convert(blocks[i], partner, next)
		if err != nil {
			return nil, err
		}
		next = p.newInsertion(n)
	}
	return next, nil
}

// markPairs pre-scans adjacent block pairs and marks the second block of
// each construct-forming pair as consumed by its predecessor, so it is
// never independently converted.
func (p *parser) markPairs(blocks []block) []bool {
	consumed := make([]bool, len(blocks))
	for i := 0; i+1 < len(blocks); i++ {
		if consumed[i] {
			continue
		}
		a, b := blocks[i].head.text, blocks[i+1].head.text
		switch {
		case p.ifRe.MatchString(a) && p.elseRe.MatchString(b):
			consumed[i+1] = true
		case p.tryRe.MatchString(a) && p.catchRe.MatchString(b):
			consumed[i+1] = true
		case p.repeatRe.MatchString(a) && p.isFootWhile(b):
			consumed[i+1] = true
		}
	}
	return consumed
}

// isFootWhile reports whether text is a bareword while line, i.e. one whose
// condition does not end in a colon. A trailing colon would instead open a
// head-tested loop, so such a line never closes a repeat block.
func (p *parser) isFootWhile(text string) bool {
	m := p.whileFootRe.FindStringSubmatch(text)
	return m != nil && !strings.HasSuffix(m[1], ":")
}

// convert turns one block (plus, for paired constructs, its consumed
// partner) into a node whose Follow is already set to next.
func (p *parser) convert(b block, partner *block, next tree.Node) (tree.Node, error) {
	text := b.head.text
	node, err := p.convertInner(b, partner, text)
	if err != nil {
		return nil, err
	}
	if node == nil {
		// Fallback: any unrecognized line is a plain statement. If the
		// line had nested children, they continue the chain right after
		// it, so no text is lost.
		t := &tree.Task{Text: text}
		follow := next
		if len(b.children) > 0 {
			follow, err = p.chainInto(b.children, next)
			if err != nil {
				return nil, err
			}
		}
		t.Follow = follow
		node = t
	} else {
		tree.SetFollow(node, next)
	}
	node.SetID(p.id())
	node.SetLine(b.head.num)
	return node, nil
}

// convertInner recognizes the single- and two-block constructs. It returns
// nil when the block matches none of them; the node's Follow is left unset.
func (p *parser) convertInner(b block, partner *block, text string) (tree.Node, error) {
	switch {
	case p.ifRe.MatchString(text):
		cond, widths := splitWidths(p.ifRe.FindStringSubmatch(text)[1])
		trueChain, err := p.chain(b.children)
		if err != nil {
			return nil, err
		}
		falseChain := tree.Node(p.emptyChain())
		if partner != nil {
			falseChain, err = p.chain(partner.children)
			if err != nil {
				return nil, err
			}
		}
		return &tree.Branch{Text: cond, True: trueChain, False: falseChain, ColumnWidths: widths}, nil

	case p.tryRe.MatchString(text):
		if partner == nil {
			return nil, nil // lone try block, Task fallback
		}
		m := p.catchRe.FindStringSubmatch(partner.head.text)
		if m == nil {
			return nil, &MalformedConstructError{Construct: "try/catch", Line: partner.head.num}
		}
		tryChain, err := p.chain(b.children)
		if err != nil {
			return nil, err
		}
		catchChain, err := p.chain(partner.children)
		if err != nil {
			return nil, err
		}
		return &tree.TryCatch{Text: strings.TrimSpace(m[1]), Try: tryChain, Catch: catchChain}, nil

	case p.repeatRe.MatchString(text):
		if partner == nil {
			return nil, nil // no foot condition, Task fallback
		}
		m := p.whileFootRe.FindStringSubmatch(partner.head.text)
		if m == nil {
			return nil, &MalformedConstructError{Construct: "repeat/while", Line: partner.head.num}
		}
		body, err := p.chain(b.children)
		if err != nil {
			return nil, err
		}
		return &tree.Repeat{Text: strings.TrimSpace(m[1]), Body: body}, nil

	case p.whileRe.MatchString(text):
		body, err := p.chain(b.children)
		if err != nil {
			return nil, err
		}
		return &tree.While{Text: p.whileRe.FindStringSubmatch(text)[1], Body: body}, nil

	case p.forRe.MatchString(text):
		body, err := p.chain(b.children)
		if err != nil {
			return nil, err
		}
		return &tree.For{Text: p.forRe.FindStringSubmatch(text)[1], Body: body}, nil

	case p.switchRe.MatchString(text):
		return p.convertSwitch(b)

	case p.funcRe.MatchString(text):
		header := p.funcRe.FindStringSubmatch(text)[1]
		name, params := splitSignature(header)
		body, err := p.chain(b.children)
		if err != nil {
			return nil, err
		}
		return &tree.Function{Text: name, Params: params, Body: body}, nil

	case p.inputRe.MatchString(text):
		return &tree.Input{Text: unwrapArgument(p.inputRe.FindStringSubmatch(text)[1])}, nil

	case p.outputRe.MatchString(text):
		return &tree.Output{Text: unwrapArgument(p.outputRe.FindStringSubmatch(text)[1])}, nil
	}
	return nil, nil
}

// convertSwitch sub-groups a switch body into labeled cases plus an
// optional default case. The default is synthesized empty when absent, so
// Switch.Default is never nil; DefaultOn records whether it was present.
func (p *parser) convertSwitch(b block) (tree.Node, error) {
	disc, widths := splitWidths(p.switchRe.FindStringSubmatch(b.head.text)[1])
	sw := &tree.Switch{Text: disc, ColumnWidths: widths}
	for _, child := range b.children {
		text := child.head.text
		switch {
		case p.caseRe.MatchString(text):
			body, err := p.chain(child.children)
			if err != nil {
				return nil, err
			}
			c := &tree.Case{Text: p.caseRe.FindStringSubmatch(text)[1], Body: body}
			c.SetID(p.id())
			c.SetLine(child.head.num)
			sw.Cases = append(sw.Cases, c)
		case p.elseRe.MatchString(text), p.defaultRe.MatchString(text):
			body, err := p.chain(child.children)
			if err != nil {
				return nil, err
			}
			c := &tree.Case{Body: body}
			c.SetID(p.id())
			c.SetLine(child.head.num)
			sw.Default = c
			sw.DefaultOn = true
		default:
			// Not a case label; dropped rather than guessed at.
		}
	}
	if sw.Default == nil {
		c := &tree.Case{Body: p.emptyChain()}
		c.SetID(p.id())
		sw.Default = c
	}
	return sw, nil
}

var widthsRe = regexp.MustCompile(`^(.*?)\s*\[([^\[\]]*)\]$`)

// splitWidths strips a trailing bracketed comma-separated numeric list from
// a header text and parses it into raw column-width fractions. Malformed
// numeric tokens are dropped; if nothing parses, the list is absent.
func splitWidths(text string) (string, []float64) {
	m := widthsRe.FindStringSubmatch(text)
	if m == nil {
		return text, nil
	}
	var widths []float64
	for _, tok := range strings.Split(m[2], ",") {
		f, err := strconv.ParseFloat(strings.TrimSpace(tok), 64)
		if err != nil {
			continue
		}
		widths = append(widths, f)
	}
	if len(widths) == 0 {
		return text, nil
	}
	return strings.TrimSpace(m[1]), widths
}

// splitSignature splits a function header into its name and parameter list.
func splitSignature(header string) (string, []tree.Param) {
	open := strings.IndexByte(header, '(')
	if open < 0 {
		return strings.TrimSpace(header), nil
	}
	name := strings.TrimSpace(header[:open])
	rest := header[open+1:]
	if end := strings.LastIndexByte(rest, ')'); end >= 0 {
		rest = rest[:end]
	}
	var params []tree.Param
	for _, part := range strings.Split(rest, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		params = append(params, tree.Param{Pos: len(params), Name: part})
	}
	return name, params
}

// unwrapArgument strips one level of parentheses and one level of quotes
// from an input/output argument, so input("n"), input(n) and input n all
// yield n.
func unwrapArgument(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") && len(s) >= 2 {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	if strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) && len(s) >= 2 {
		s = s[1 : len(s)-1]
	}
	return s
}
