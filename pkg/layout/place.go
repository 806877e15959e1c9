package layout

import (
	"fmt"
	"strings"

	"github.com/strukt-dev/strukt/pkg/tree"
)

func (e engine) box(n tree.Node, x, y, w, h float64) {
	e.sheet.Boxes = append(e.sheet.Boxes, Box{X: x, Y: y, W: w, H: h, Kind: n.Kind(), NodeID: n.ID()})
}

func (e engine) seg(x1, y1, x2, y2 float64) {
	e.sheet.Lines = append(e.sheet.Lines, Segment{X1: x1, Y1: y1, X2: x2, Y2: y2})
}

func (e engine) label(x, y, w float64, text string) {
	if text == "" {
		return
	}
	lines := e.wrapLines(text, w-2*Padding)
	e.sheet.Labels = append(e.sheet.Labels, Label{X: x + Padding, Y: y + Padding, Text: strings.Join(lines, "\n")})
}

// placeChain is the placing pass over one chain. If avail exceeds the
// chain's natural height, the last rendered node of the chain grows by the
// difference; every other box is placed exactly as in the natural layout.
// It returns the height actually occupied.
func (e engine) placeChain(n tree.Node, x, y, w, avail float64) float64 {
	natural := e.chainHeight(n, w)
	slack := 0.0
	if avail > natural {
		slack = avail - natural
	}
	var last tree.Node
	for m := n; m != nil; m = tree.Follow(m) {
		if _, ok := m.(*tree.Empty); !ok {
			last = m
		}
	}
	cur := y
	for ; n != nil; n = tree.Follow(n) {
		h := e.nodeHeight(n, w)
		if n == last {
			h += slack
		}
		e.placeNode(n, x, cur, w, h)
		cur += h
	}
	return cur - y
}

// placeNode places one node into a box of exactly the given height. When h
// exceeds the node's natural height, leaves simply grow taller while
// compound nodes pass the surplus into their (last) child column, so the
// slack always ends up in a rendered box.
func (e engine) placeNode(n tree.Node, x, y, w, h float64) {
	switch n := n.(type) {
	case *tree.Empty:
		// No geometry.
	case *tree.Insertion:
		e.box(n, x, y, w, h)
	case *tree.Task:
		e.box(n, x, y, w, h)
		e.label(x, y, w, n.Text)
	case *tree.Input:
		e.box(n, x, y, w, h)
		e.label(x, y, w, n.Text)
	case *tree.Output:
		e.box(n, x, y, w, h)
		e.label(x, y, w, n.Text)
	case *tree.Branch:
		e.placeBranch(n, x, y, w, h)
	case *tree.Switch:
		e.placeSwitch(n, x, y, w, h)
	case *tree.While:
		e.placeHeaderLoop(n, n.Text, n.Body, x, y, w, h)
	case *tree.For:
		e.placeHeaderLoop(n, n.Text, n.Body, x, y, w, h)
	case *tree.Repeat:
		e.placeRepeat(n, x, y, w, h)
	case *tree.Function:
		e.placeHeaderLoop(n, signature(n), n.Body, x, y, w, h)
	case *tree.TryCatch:
		e.placeTryCatch(n, x, y, w, h)
	default:
		panic(fmt.Sprintf("layout: unknown node type %T", n))
	}
}

func (e engine) placeBranch(n *tree.Branch, x, y, w, h float64) {
	headerH := e.branchHeaderHeight(n.Text, w)
	ws := resolveWidths(n.ColumnWidths, 2)
	split := x + ws[0]*w

	e.box(n, x, y, w, headerH)
	e.label(x, y, w, n.Text)
	// Diagonal dividers from the top corners down to the column split.
	e.seg(x, y, split, y+headerH)
	e.seg(x+w, y, split, y+headerH)
	e.sheet.Labels = append(e.sheet.Labels,
		Label{X: x + Padding, Y: y + headerH - e.m.LineHeight(), Text: TrueLabel},
		Label{X: x + ws[0]*w + Padding, Y: y + headerH - e.m.LineHeight(), Text: FalseLabel},
	)

	bodyAvail := h - headerH
	e.placeChain(n.True, x, y+headerH, ws[0]*w, bodyAvail)
	e.placeChain(n.False, split, y+headerH, w-ws[0]*w, bodyAvail)
	e.seg(split, y+headerH, split, y+h)
}

func (e engine) placeSwitch(n *tree.Switch, x, y, w, h float64) {
	headerH := e.textHeight(n.Text, w)
	cols := renderedCases(n)
	ws, _ := e.switchColumns(n, w)

	e.box(n, x, y, w, headerH)
	e.label(x, y, w, n.Text)

	// Column boundaries, cumulative from the left edge.
	bounds := make([]float64, len(cols)+1)
	bounds[0] = x
	for i, f := range ws {
		bounds[i+1] = bounds[i] + f*w
	}

	switch {
	case len(cols) == 0:
	case n.DefaultOn:
		// The diagonal runs from the top-left corner to the last case
		// boundary; the default column gets the opposing diagonal.
		last := bounds[len(bounds)-2]
		e.seg(x, y, last, y+headerH)
		e.seg(x+w, y, last, y+headerH)
		for _, b := range bounds[1 : len(bounds)-1] {
			if b < last && last > x {
				e.seg(b, y+headerH*(b-x)/(last-x), b, y+headerH)
			}
		}
	default:
		// No default: one diagonal spans the full header, and the
		// intermediate dividers start on it by linear interpolation.
		e.seg(x, y, x+w, y+headerH)
		for _, b := range bounds[1 : len(bounds)-1] {
			e.seg(b, y+headerH*(b-x)/w, b, y+headerH)
		}
	}

	bodyAvail := h - headerH
	for i, c := range cols {
		cx, cw := bounds[i], ws[i]*w
		labelH := e.textHeight(c.Text, cw)
		e.box(c, cx, y+headerH, cw, labelH)
		e.label(cx, y+headerH, cw, c.Text)
		e.placeChain(c.Body, cx, y+headerH+labelH, cw, bodyAvail-labelH)
		if i > 0 {
			e.seg(cx, y+headerH, cx, y+h)
		}
	}
}

// placeHeaderLoop lays out the header-bar-plus-inset-body shape shared by
// head-tested loops, counting loops and function frames.
func (e engine) placeHeaderLoop(n tree.Node, header string, body tree.Node, x, y, w, h float64) {
	headerH := e.textHeight(header, w)
	e.box(n, x, y, w, headerH)
	e.label(x, y, w, header)
	e.placeChain(body, x+Inset, y+headerH, w-Inset, h-headerH)
	e.seg(x+Inset, y+headerH, x+Inset, y+h)
}

func (e engine) placeRepeat(n *tree.Repeat, x, y, w, h float64) {
	footerH := e.textHeight(n.Text, w)
	e.placeChain(n.Body, x+Inset, y, w-Inset, h-footerH)
	e.box(n, x, y+h-footerH, w, footerH)
	e.label(x, y+h-footerH, w, n.Text)
	e.seg(x+Inset, y, x+Inset, y+h-footerH)
}

func (e engine) placeTryCatch(n *tree.TryCatch, x, y, w, h float64) {
	tryH := e.textHeight("try", w)
	catchH := e.textHeight(catchLabel(n), w)
	tryBodyH := e.chainHeight(n.Try, w-Inset)

	e.box(n, x, y, w, tryH)
	e.label(x, y, w, "try")
	e.placeChain(n.Try, x+Inset, y+tryH, w-Inset, 0)
	e.seg(x+Inset, y+tryH, x+Inset, y+tryH+tryBodyH)

	cy := y + tryH + tryBodyH
	e.box(n, x, cy, w, catchH)
	e.label(x, cy, w, catchLabel(n))
	e.placeChain(n.Catch, x+Inset, cy+catchH, w-Inset, h-tryH-tryBodyH-catchH)
	e.seg(x+Inset, cy+catchH, x+Inset, y+h)
}
