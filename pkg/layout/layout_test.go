package layout

import (
	"testing"

	"github.com/strukt-dev/strukt/pkg/dialect"
	"github.com/strukt-dev/strukt/pkg/parse"
	"github.com/strukt-dev/strukt/pkg/testutil"
	"github.com/strukt-dev/strukt/pkg/tree"
)

var dedent = testutil.Dedent

// fm gives every rune an advance of 1, so a line of text costs Height plus
// padding and short texts never wrap at the widths used below.
var fm = FixedMetrics{Advance: 1, Height: 10}

const lineH = 10 + 2*Padding

func parseTree(t *testing.T, code string) *tree.Root {
	t.Helper()
	root, err := parse.Parse(
		parse.Source{Name: "test", Code: dedent(code)}, dialect.Default)
	if err != nil {
		t.Fatalf("Parse -> error %v", err)
	}
	return root
}

func TestMeasureLeaves(t *testing.T) {
	tests := []struct {
		n    tree.Node
		want float64
	}{
		{&tree.Empty{}, 0},
		{&tree.Insertion{}, InsertionHeight},
		{&tree.Task{Text: "x = 1"}, lineH},
		{&tree.Input{Text: "n"}, lineH},
		{&tree.Output{Text: "n"}, lineH},
	}
	for _, test := range tests {
		if got := Measure(test.n, fm, 200); got != test.want {
			t.Errorf("Measure(%T) -> %v, want %v", test.n, got, test.want)
		}
	}
}

func TestMeasureWrapsText(t *testing.T) {
	// Content width 9; "aaaa bbbb cccc" wraps to two lines.
	got := Measure(&tree.Task{Text: "aaaa bbbb cccc"}, fm, 9+2*Padding)
	if want := float64(2*10 + 2*Padding); got != want {
		t.Errorf("Measure of wrapped task -> %v, want %v", got, want)
	}
}

func TestMeasureBranch(t *testing.T) {
	root := parseTree(t, `
		if x > 0:
		    output(x)
		`)
	b := firstOf[*tree.Branch](root)
	// Header is one text line plus the corner-label line; the taller column
	// holds output / insertionpoint / empty between two markers.
	want := (lineH + fm.Height) + (InsertionHeight + lineH + InsertionHeight)
	if got := Measure(b, fm, 200); got != want {
		t.Errorf("Measure(branch) -> %v, want %v", got, want)
	}
}

func TestMeasureRepeat(t *testing.T) {
	root := parseTree(t, `
		repeat:
		    x = x + 1
		while x < 10
		`)
	r := firstOf[*tree.Repeat](root)
	want := float64((InsertionHeight + lineH + InsertionHeight) + lineH)
	if got := Measure(r, fm, 200); got != want {
		t.Errorf("Measure(repeat) -> %v, want %v", got, want)
	}
}

func TestLayoutHeightMatchesMeasure(t *testing.T) {
	root := parseTree(t, `
		input("n")
		if n > 0:
		    while n > 0:
		        n = n - 1
		else:
		    repeat:
		        n = n + 1
		    while n < 0
		switch n:
		    case 1:
		        output(one)
		    default:
		        output(other)
		try:
		    risky()
		catch err:
		    output(err)
		output(n)
		`)
	sheet := Layout(root, fm, 400)
	if want := MeasureChain(root.Follow, fm, 400); sheet.TotalHeight != want {
		t.Errorf("TotalHeight = %v, MeasureChain = %v", sheet.TotalHeight, want)
	}
}

func TestLayoutGeometryStaysInBounds(t *testing.T) {
	root := parseTree(t, `
		function main(n):
		    if n > 0:
		        output(n)
		    switch n [0.5, 0.5]:
		        case 1:
		            a
		        case 2:
		            b
		`)
	const width = 400
	sheet := Layout(root, fm, width)
	in := func(x, y float64) bool {
		return x >= 0 && x <= width && y >= 0 && y <= sheet.TotalHeight
	}
	for _, b := range sheet.Boxes {
		if !in(b.X, b.Y) || !in(b.X+b.W, b.Y+b.H) {
			t.Errorf("box %v outside 0..%v x 0..%v", b, float64(width), sheet.TotalHeight)
		}
	}
	for _, s := range sheet.Lines {
		if !in(s.X1, s.Y1) || !in(s.X2, s.Y2) {
			t.Errorf("segment %v outside bounds", s)
		}
	}
	for _, l := range sheet.Labels {
		if !in(l.X, l.Y) {
			t.Errorf("label %v outside bounds", l)
		}
	}
}

func TestLayoutNodeNatural(t *testing.T) {
	n := &tree.Task{Text: "x"}
	sheet := LayoutNode(n, fm, 10, 20, 100, 0)
	if sheet.TotalHeight != lineH {
		t.Errorf("TotalHeight = %v, want %v", sheet.TotalHeight, float64(lineH))
	}
	if len(sheet.Boxes) != 1 {
		t.Fatalf("got %d boxes, want 1", len(sheet.Boxes))
	}
	if b := sheet.Boxes[0]; b.X != 10 || b.Y != 20 || b.W != 100 || b.H != lineH {
		t.Errorf("box = %v", b)
	}
}

func TestLayoutNodeStretches(t *testing.T) {
	n := &tree.Task{Text: "x"}
	sheet := LayoutNode(n, fm, 0, 0, 100, 75)
	if sheet.TotalHeight != 75 {
		t.Errorf("TotalHeight = %v, want 75", sheet.TotalHeight)
	}
	if b := sheet.Boxes[0]; b.H != 75 {
		t.Errorf("box height = %v, want 75", b.H)
	}
}

func TestBranchColumnsAlign(t *testing.T) {
	// The true column is taller; the false column's bottommost rendered
	// node grows to make both columns end at the same height.
	root := parseTree(t, `
		if x > 0:
		    a
		    b
		    c
		`)
	const width = 200
	sheet := Layout(root, fm, width)

	var trueL, falseL bool
	for _, l := range sheet.Labels {
		switch l.Text {
		case TrueLabel:
			trueL = true
		case FalseLabel:
			falseL = true
		}
	}
	if !trueL || !falseL {
		t.Errorf("corner labels present: true %v, false %v", trueL, falseL)
	}

	// The branch ends one trailing insertion point above the sheet bottom.
	branchBottom := sheet.TotalHeight - InsertionHeight
	// The false column holds a lone insertion point, stretched well past
	// its natural height to the bottom edge of the branch.
	for _, b := range sheet.Boxes {
		if b.Kind == tree.KindInsertion && b.X >= width/2 {
			if b.Y+b.H != branchBottom {
				t.Errorf("false column ends at %v, want %v", b.Y+b.H, branchBottom)
			}
			if b.H <= InsertionHeight {
				t.Errorf("stretched insertion height = %v", b.H)
			}
			return
		}
	}
	t.Errorf("no insertion box in the false column")
}

func TestSwitchColumnWidths(t *testing.T) {
	root := parseTree(t, `
		switch x [0.5, 0.25, 0.25]:
		    case 1:
		        a
		    case 2:
		        b
		    default:
		        c
		`)
	const width = 400
	sheet := Layout(root, fm, width)
	var caseWs []float64
	for _, b := range sheet.Boxes {
		if b.Kind == tree.KindCase {
			caseWs = append(caseWs, b.W)
		}
	}
	want := []float64{0.5 * width, 0.25 * width, 0.25 * width}
	if len(caseWs) != len(want) {
		t.Fatalf("got %d case boxes, want %d", len(caseWs), len(want))
	}
	for i := range want {
		if caseWs[i] != want[i] {
			t.Errorf("case %d width = %v, want %v", i, caseWs[i], want[i])
		}
	}
}

func TestSwitchEvenSplitWhenWidthsMissing(t *testing.T) {
	root := parseTree(t, `
		switch x:
		    case 1:
		        a
		    case 2:
		        b
		`)
	sheet := Layout(root, fm, 300)
	for _, b := range sheet.Boxes {
		if b.Kind == tree.KindCase && b.W != 150 {
			t.Errorf("case width = %v, want 150", b.W)
		}
	}
}

func TestLoopBodyInset(t *testing.T) {
	root := parseTree(t, `
		while x < 10:
		    a
		`)
	sheet := Layout(root, fm, 200)
	for _, b := range sheet.Boxes {
		if b.Kind == tree.KindTask && b.X != Inset {
			t.Errorf("body task at x = %v, want %v", b.X, float64(Inset))
		}
	}
}

// firstOf returns the first node of type T in the tree.
func firstOf[T tree.Node](root *tree.Root) T {
	var found T
	tree.Walk(root, func(n tree.Node) bool {
		if m, ok := n.(T); ok {
			found = m
			return false
		}
		return true
	})
	return found
}
