// Package layout computes nested-box geometry for structogram trees.
//
// The engine is two-pass by necessity: a compound node's own height depends
// on the tallest of its child columns, which depend on their children, so
// the tree is first measured bottom-up (a pure function of node, width and
// font metrics) and then placed top-down using the pre-computed heights.
// During placement a stretch rule applies: when a column is given more
// height than its natural height, the last rendered node of the column
// absorbs all of the slack by growing its own box. Sibling columns of a
// branch or switch therefore always align to equal height without
// redistributing space among earlier boxes.
//
// The output is a flat list of boxes, line segments and text labels in one
// coordinate space, sufficient to render the diagram on any vector or
// raster surface.
package layout

import (
	"fmt"

	"github.com/strukt-dev/strukt/pkg/tree"
)

// Metrics supplies the text measurements the engine wraps and sizes
// against.
type Metrics interface {
	// StringWidth returns the horizontal extent of s.
	StringWidth(s string) float64
	// LineHeight returns the vertical extent of one line of text.
	LineHeight() float64
}

// Geometry constants, in the same unit as the Metrics (pixels for the
// font-backed metrics).
const (
	Padding         = 4  // inner padding around wrapped text
	InsertionHeight = 10 // height of insertion-point drop targets
	Inset           = 24 // left inset of loop, function and handler bodies
)

// Structural corner labels of branch headers.
const (
	TrueLabel  = "true"
	FalseLabel = "false"
)

// Box is the placed rectangle of one node.
type Box struct {
	X, Y, W, H float64
	Kind       tree.Kind
	NodeID     int
}

// Segment is a straight connecting or dividing line.
type Segment struct {
	X1, Y1, X2, Y2 float64
}

// Label is a block of wrapped text anchored at its top-left corner.
type Label struct {
	X, Y float64
	Text string
}

// Sheet is the complete geometry of a laid-out tree.
type Sheet struct {
	Boxes       []Box
	Lines       []Segment
	Labels      []Label
	TotalHeight float64
}

// Measure returns the natural height of a single node at the given width.
func Measure(n tree.Node, m Metrics, width float64) float64 {
	return engine{m: m}.nodeHeight(n, width)
}

// MeasureChain returns the natural height of the chain starting at n.
func MeasureChain(n tree.Node, m Metrics, width float64) float64 {
	return engine{m: m}.chainHeight(n, width)
}

// Layout lays out the whole tree at origin within the given width.
func Layout(root *tree.Root, m Metrics, width float64) *Sheet {
	sheet := &Sheet{}
	e := engine{m: m, sheet: sheet}
	sheet.TotalHeight = e.placeChain(root.Follow, 0, 0, width, 0)
	return sheet
}

// LayoutNode lays out a single node at (x, y) within the given width. An
// availHeight greater than the node's natural height stretches the node to
// fill it exactly; availHeight <= 0 means natural height.
func LayoutNode(n tree.Node, m Metrics, x, y, width, availHeight float64) *Sheet {
	sheet := &Sheet{}
	e := engine{m: m, sheet: sheet}
	h := e.nodeHeight(n, width)
	if availHeight > h {
		h = availHeight
	}
	e.placeNode(n, x, y, width, h)
	sheet.TotalHeight = h
	return sheet
}

type engine struct {
	m     Metrics
	sheet *Sheet
}

// wrapLines word-wraps text against a content width.
func (e engine) wrapLines(text string, width float64) []string {
	return wrap(e.m, text, width)
}

// textHeight is the height of a box around the wrapped text.
func (e engine) textHeight(text string, width float64) float64 {
	lines := e.wrapLines(text, width-2*Padding)
	return float64(len(lines))*e.m.LineHeight() + 2*Padding
}

// branchHeaderHeight leaves one extra line of room under the condition for
// the true/false corner labels.
func (e engine) branchHeaderHeight(text string, width float64) float64 {
	return e.textHeight(text, width) + e.m.LineHeight()
}

func (e engine) chainHeight(n tree.Node, width float64) float64 {
	h := 0.0
	for ; n != nil; n = tree.Follow(n) {
		h += e.nodeHeight(n, width)
	}
	return h
}

// nodeHeight is the measuring pass: the natural height of one node at the
// given width, independent of position.
func (e engine) nodeHeight(n tree.Node, w float64) float64 {
	switch n := n.(type) {
	case *tree.Empty:
		return 0
	case *tree.Insertion:
		return InsertionHeight
	case *tree.Task:
		return e.textHeight(n.Text, w)
	case *tree.Input:
		return e.textHeight(n.Text, w)
	case *tree.Output:
		return e.textHeight(n.Text, w)
	case *tree.Branch:
		ws := resolveWidths(n.ColumnWidths, 2)
		body := maxf(
			e.chainHeight(n.True, ws[0]*w),
			e.chainHeight(n.False, ws[1]*w),
		)
		return e.branchHeaderHeight(n.Text, w) + body
	case *tree.Switch:
		_, body := e.switchColumns(n, w)
		return e.textHeight(n.Text, w) + body
	case *tree.While:
		return e.textHeight(n.Text, w) + e.chainHeight(n.Body, w-Inset)
	case *tree.For:
		return e.textHeight(n.Text, w) + e.chainHeight(n.Body, w-Inset)
	case *tree.Repeat:
		return e.chainHeight(n.Body, w-Inset) + e.textHeight(n.Text, w)
	case *tree.Function:
		return e.textHeight(signature(n), w) + e.chainHeight(n.Body, w-Inset)
	case *tree.TryCatch:
		return e.textHeight("try", w) + e.chainHeight(n.Try, w-Inset) +
			e.textHeight(catchLabel(n), w) + e.chainHeight(n.Catch, w-Inset)
	case *tree.Case:
		// Cases are laid out by their owning switch.
		return e.textHeight(n.Text, w) + e.chainHeight(n.Body, w)
	}
	panic(fmt.Sprintf("layout: unknown node type %T", n))
}

// switchColumns resolves the rendered column widths of a switch (as
// fractions) and the natural height of its body region, which includes the
// per-column case labels.
func (e engine) switchColumns(n *tree.Switch, w float64) ([]float64, float64) {
	cols := renderedCases(n)
	ws := resolveWidths(n.ColumnWidths, len(cols))
	body := 0.0
	for i, c := range cols {
		cw := ws[i] * w
		body = maxf(body, e.textHeight(c.Text, cw)+e.chainHeight(c.Body, cw))
	}
	return ws, body
}

// renderedCases returns the case columns in render order, with the default
// column last when it is enabled.
func renderedCases(n *tree.Switch) []*tree.Case {
	if !n.DefaultOn {
		return n.Cases
	}
	return append(append([]*tree.Case{}, n.Cases...), n.Default)
}

// resolveWidths returns n raw width fractions: the node's own list when its
// length matches exactly, an even split otherwise. The fractions are used
// as-is; they are never validated, clamped or normalized.
func resolveWidths(ws []float64, n int) []float64 {
	if len(ws) == n {
		return ws
	}
	if n == 0 {
		return nil
	}
	even := make([]float64, n)
	for i := range even {
		even[i] = 1 / float64(n)
	}
	return even
}

func signature(n *tree.Function) string {
	s := n.Text + "("
	for i, p := range n.Params {
		if i > 0 {
			s += ", "
		}
		s += p.Name
	}
	return s + ")"
}

func catchLabel(n *tree.TryCatch) string {
	if n.Text == "" {
		return "catch"
	}
	return "catch " + n.Text
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
