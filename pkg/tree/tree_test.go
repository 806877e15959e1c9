package tree

import (
	"testing"

	"github.com/strukt-dev/strukt/pkg/tt"
)

var Args = tt.Args

func TestKindString(t *testing.T) {
	tt.Test(t, tt.Fn("Kind.String", Kind.String), tt.Table{
		Args(KindEmpty).Rets("empty"),
		Args(KindInsertion).Rets("insertionpoint"),
		Args(KindTask).Rets("task"),
		Args(KindBranch).Rets("branch"),
		Args(KindTryCatch).Rets("trycatch"),
		Args(Kind(100)).Rets("kind(100)"),
	})
}

func TestKindOf(t *testing.T) {
	for k := KindEmpty; k <= KindTryCatch; k++ {
		if got := KindOf(k.String()); got != k {
			t.Errorf("KindOf(%q) = %v, want %v", k.String(), got, k)
		}
	}
	if got := KindOf("cobol"); got != -1 {
		t.Errorf("KindOf(%q) = %v, want -1", "cobol", got)
	}
}

func TestFollowSetFollow(t *testing.T) {
	e := &Empty{}
	task := &Task{Text: "a"}
	SetFollow(task, e)
	if Follow(task) != Node(e) {
		t.Errorf("Follow after SetFollow did not return the set node")
	}
	if Follow(e) != nil {
		t.Errorf("Follow(Empty) = %v, want nil", Follow(e))
	}
	if Follow(&Case{}) != nil {
		t.Errorf("Follow(Case) should be nil")
	}
}

func TestSetFollowPanicsOnEmpty(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("SetFollow on Empty did not panic")
		}
	}()
	SetFollow(&Empty{}, &Empty{})
}

func TestTextSetText(t *testing.T) {
	b := &Branch{Text: "cond"}
	if Text(b) != "cond" {
		t.Errorf("Text(Branch) = %q, want %q", Text(b), "cond")
	}
	if !SetText(b, "cond2") || b.Text != "cond2" {
		t.Errorf("SetText(Branch) did not update the text")
	}
	if SetText(&Insertion{}, "x") {
		t.Errorf("SetText(Insertion) reported success")
	}
	if Text(&Empty{}) != "" {
		t.Errorf("Text(Empty) should be empty")
	}
}

func TestHasContent(t *testing.T) {
	empty := emptyChain(nil)
	if HasContent(empty) {
		t.Errorf("HasContent(marker-only chain) = true")
	}
	task := &Task{Text: "a", Follow: emptyChain(nil)}
	chain := &Insertion{Follow: task}
	if !HasContent(chain) {
		t.Errorf("HasContent(chain with a task) = false")
	}
}

// emptyChain returns the canonical marker-only chain used as a leaf in test
// trees. The ids slice, when non-nil, supplies identifiers front to back.
func emptyChain(ids []int) Node {
	e := &Empty{}
	ip := &Insertion{Follow: e}
	if len(ids) > 0 {
		ip.SetID(ids[0])
	}
	if len(ids) > 1 {
		e.SetID(ids[1])
	}
	return ip
}

// sample builds a tree exercising every variant:
//
//	task "a" (id 1)
//	input "i" (id 13)
//	output "o" (id 14)
//	for "n" (id 15)
//	branch "c" (id 2), true: task "t" (id 3), false: empty
//	switch "s" (id 4), case "1" (id 5) with task "x" (id 6), default on (id 7)
//	while "w" (id 8) with body task "b" (id 9)
//	repeat "r" (id 10)
//	function "f" (id 11) with one parameter
//	trycatch "e" (id 12)
func sample() *Root {
	withID := func(n Node, id int) Node {
		n.SetID(id)
		return n
	}
	tc := withID(&TryCatch{Text: "e",
		Try: emptyChain(nil), Catch: emptyChain(nil),
		Follow: emptyChain(nil)}, 12)
	fn := withID(&Function{Text: "f", Params: []Param{{Pos: 0, Name: "n"}},
		Body:   emptyChain(nil),
		Follow: &Insertion{Follow: tc}}, 11)
	rp := withID(&Repeat{Text: "r", Body: emptyChain(nil),
		Follow: &Insertion{Follow: fn}}, 10)
	wh := withID(&While{Text: "w",
		Body:   &Insertion{Follow: withID(&Task{Text: "b", Follow: emptyChain(nil)}, 9)},
		Follow: &Insertion{Follow: rp}}, 8)
	def := &Case{Body: emptyChain(nil)}
	def.SetID(7)
	c1 := &Case{Text: "1",
		Body: &Insertion{Follow: withID(&Task{Text: "x", Follow: emptyChain(nil)}, 6)}}
	c1.SetID(5)
	sw := withID(&Switch{Text: "s", Cases: []*Case{c1},
		DefaultOn: true, Default: def,
		Follow: &Insertion{Follow: wh}}, 4)
	br := withID(&Branch{Text: "c",
		True:   &Insertion{Follow: withID(&Task{Text: "t", Follow: emptyChain(nil)}, 3)},
		False:  emptyChain(nil),
		Follow: &Insertion{Follow: sw}}, 2)
	fo := withID(&For{Text: "n", Body: emptyChain(nil),
		Follow: &Insertion{Follow: br}}, 15)
	out := withID(&Output{Text: "o", Follow: &Insertion{Follow: fo}}, 14)
	in := withID(&Input{Text: "i", Follow: &Insertion{Follow: out}}, 13)
	task := withID(&Task{Text: "a", Follow: &Insertion{Follow: in}}, 1)
	return &Root{Follow: &Insertion{Follow: task}}
}
