// Package tree defines the structogram tree model.
//
// A diagram is a tree of node variants linked into chains: every node in a
// sequence points at its successor through a Follow field, so structural
// insertion and removal are O(1) splices instead of slice surgery. A
// well-formed content chain always terminates in an Insertion followed by an
// Empty, which guarantees an append target at the end of every sequence.
//
// The variant set is closed. Every consumer of the model (the parser, the
// serializer, the code generator, the structural editor and the layout
// engine) switches exhaustively over the concrete types, so adding a variant
// is a single-point, compiler-checked change.
package tree

import "fmt"

// Kind identifies a node variant.
type Kind int

// Node variant kinds.
const (
	KindEmpty Kind = iota
	KindInsertion
	KindTask
	KindInput
	KindOutput
	KindBranch
	KindSwitch
	KindCase
	KindWhile
	KindFor
	KindRepeat
	KindFunction
	KindTryCatch
)

var kindNames = [...]string{
	KindEmpty:     "empty",
	KindInsertion: "insertionpoint",
	KindTask:      "task",
	KindInput:     "input",
	KindOutput:    "output",
	KindBranch:    "branch",
	KindSwitch:    "switch",
	KindCase:      "case",
	KindWhile:     "while",
	KindFor:       "for",
	KindRepeat:    "repeat",
	KindFunction:  "function",
	KindTryCatch:  "trycatch",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// KindOf returns the Kind named by s, or -1 if s names no variant.
func KindOf(s string) Kind {
	for k, name := range kindNames {
		if name == s {
			return Kind(k)
		}
	}
	return -1
}

// Node is implemented by all node variants.
type Node interface {
	// ID returns the node's identifier; 0 means the node has none yet.
	ID() int
	// SetID sets the node's identifier.
	SetID(id int)
	// Line returns the 1-based source line the node was parsed from, or 0
	// for nodes that did not come from text.
	Line() int
	// SetLine sets the source line.
	SetLine(line int)
	// Kind returns the variant tag of the node.
	Kind() Kind
}

// meta carries the per-node bookkeeping shared by all variants.
type meta struct {
	id   int
	line int
}

func (m *meta) ID() int          { return m.id }
func (m *meta) SetID(id int)     { m.id = id }
func (m *meta) Line() int        { return m.line }
func (m *meta) SetLine(line int) { m.line = line }

// Root is the top of a diagram tree. It is not itself a Node; it only owns
// the outermost chain.
type Root struct {
	Follow Node
}

// Empty terminates a chain. Nothing follows it and it has no geometry.
type Empty struct {
	meta
}

// Insertion marks a position in a chain that accepts a newly created or
// moved node.
type Insertion struct {
	meta
	Follow Node
}

// Task is a plain statement.
type Task struct {
	meta
	Text   string
	Follow Node
}

// Input reads a value into the named variable.
type Input struct {
	meta
	Text   string
	Follow Node
}

// Output writes the named value.
type Output struct {
	meta
	Text   string
	Follow Node
}

// Branch is a two-way conditional. True and False are chain roots;
// ColumnWidths, when non-nil, holds two raw width fractions.
type Branch struct {
	meta
	Text         string
	True, False  Node
	ColumnWidths []float64
	Follow       Node
}

// Case is one labeled alternative of a Switch. Its Body is a chain root.
// A Case is reachable only through its owning Switch; it has no Follow.
type Case struct {
	meta
	Text string
	Body Node
}

// Switch is a multi-way branch over a discriminant. Default is never nil;
// whether it takes part in rendering and generation is controlled by
// DefaultOn. ColumnWidths, when non-nil, has one raw fraction per rendered
// column (cases plus the default if DefaultOn).
type Switch struct {
	meta
	Text         string
	Cases        []*Case
	DefaultOn    bool
	Default      *Case
	ColumnWidths []float64
	Follow       Node
}

// While is a head-tested loop.
type While struct {
	meta
	Text   string
	Body   Node
	Follow Node
}

// For is a counting loop; Text is the full loop header.
type For struct {
	meta
	Text   string
	Body   Node
	Follow Node
}

// Repeat is a foot-tested loop: the body runs before Text is evaluated.
type Repeat struct {
	meta
	Text   string
	Body   Node
	Follow Node
}

// Param is one formal parameter of a Function.
type Param struct {
	Pos  int    `json:"position"`
	Name string `json:"name"`
}

// Function is a named subroutine definition.
type Function struct {
	meta
	Text   string
	Params []Param
	Body   Node
	Follow Node
}

// TryCatch is an exception handler; Text is the catch binding.
type TryCatch struct {
	meta
	Text        string
	Try, Catch  Node
	Follow      Node
}

func (*Empty) Kind() Kind     { return KindEmpty }
func (*Insertion) Kind() Kind { return KindInsertion }
func (*Task) Kind() Kind      { return KindTask }
func (*Input) Kind() Kind     { return KindInput }
func (*Output) Kind() Kind    { return KindOutput }
func (*Branch) Kind() Kind    { return KindBranch }
func (*Switch) Kind() Kind    { return KindSwitch }
func (*Case) Kind() Kind      { return KindCase }
func (*While) Kind() Kind     { return KindWhile }
func (*For) Kind() Kind       { return KindFor }
func (*Repeat) Kind() Kind    { return KindRepeat }
func (*Function) Kind() Kind  { return KindFunction }
func (*TryCatch) Kind() Kind  { return KindTryCatch }

// Follow returns the chain successor of n, or nil for variants that have
// none.
func Follow(n Node) Node {
	switch n := n.(type) {
	case *Empty, *Case:
		return nil
	case *Insertion:
		return n.Follow
	case *Task:
		return n.Follow
	case *Input:
		return n.Follow
	case *Output:
		return n.Follow
	case *Branch:
		return n.Follow
	case *Switch:
		return n.Follow
	case *While:
		return n.Follow
	case *For:
		return n.Follow
	case *Repeat:
		return n.Follow
	case *Function:
		return n.Follow
	case *TryCatch:
		return n.Follow
	}
	panic(fmt.Sprintf("tree: unknown node type %T", n))
}

// SetFollow sets the chain successor of n. It panics for variants that have
// no successor slot.
func SetFollow(n Node, follow Node) {
	switch n := n.(type) {
	case *Insertion:
		n.Follow = follow
	case *Task:
		n.Follow = follow
	case *Input:
		n.Follow = follow
	case *Output:
		n.Follow = follow
	case *Branch:
		n.Follow = follow
	case *Switch:
		n.Follow = follow
	case *While:
		n.Follow = follow
	case *For:
		n.Follow = follow
	case *Repeat:
		n.Follow = follow
	case *Function:
		n.Follow = follow
	case *TryCatch:
		n.Follow = follow
	default:
		panic(fmt.Sprintf("tree: %T has no follow slot", n))
	}
}

// Text returns the text field of n; variants without text return "".
func Text(n Node) string {
	switch n := n.(type) {
	case *Empty, *Insertion:
		return ""
	case *Task:
		return n.Text
	case *Input:
		return n.Text
	case *Output:
		return n.Text
	case *Branch:
		return n.Text
	case *Switch:
		return n.Text
	case *Case:
		return n.Text
	case *While:
		return n.Text
	case *For:
		return n.Text
	case *Repeat:
		return n.Text
	case *Function:
		return n.Text
	case *TryCatch:
		return n.Text
	}
	panic(fmt.Sprintf("tree: unknown node type %T", n))
}

// SetText sets the text field of n and reports whether the variant has one.
func SetText(n Node, s string) bool {
	switch n := n.(type) {
	case *Empty, *Insertion:
		return false
	case *Task:
		n.Text = s
	case *Input:
		n.Text = s
	case *Output:
		n.Text = s
	case *Branch:
		n.Text = s
	case *Switch:
		n.Text = s
	case *Case:
		n.Text = s
	case *While:
		n.Text = s
	case *For:
		n.Text = s
	case *Repeat:
		n.Text = s
	case *Function:
		n.Text = s
	case *TryCatch:
		n.Text = s
	default:
		panic(fmt.Sprintf("tree: unknown node type %T", n))
	}
	return true
}
