package edit

import (
	"testing"

	"github.com/strukt-dev/strukt/pkg/dialect"
	"github.com/strukt-dev/strukt/pkg/parse"
	"github.com/strukt-dev/strukt/pkg/testutil"
	"github.com/strukt-dev/strukt/pkg/tree"
)

var dedent = testutil.Dedent

func parseTree(t *testing.T, code string) *tree.Root {
	t.Helper()
	root, err := parse.Parse(
		parse.Source{Name: "test", Code: dedent(code)}, dialect.Default)
	if err != nil {
		t.Fatalf("Parse -> error %v", err)
	}
	return root
}

// findByText returns the id of the first node whose text equals s.
func findByText(t *testing.T, root *tree.Root, s string) int {
	t.Helper()
	id := 0
	tree.Walk(root, func(n tree.Node) bool {
		if tree.Text(n) == s {
			id = n.ID()
			return false
		}
		return true
	})
	if id == 0 {
		t.Fatalf("no node with text %q", s)
	}
	return id
}

// firstInsertion returns the id of the first insertion point.
func firstInsertion(root *tree.Root) int {
	id := 0
	tree.Walk(root, func(n tree.Node) bool {
		if _, ok := n.(*tree.Insertion); ok {
			id = n.ID()
			return false
		}
		return true
	})
	return id
}

func TestNewNode(t *testing.T) {
	for k := tree.KindTask; k <= tree.KindTryCatch; k++ {
		if k == tree.KindCase {
			continue
		}
		n := NewNode(k)
		if n == nil {
			t.Errorf("NewNode(%v) = nil", k)
			continue
		}
		if n.Kind() != k {
			t.Errorf("NewNode(%v).Kind() = %v", k, n.Kind())
		}
	}
	for _, k := range []tree.Kind{tree.KindEmpty, tree.KindInsertion, tree.KindCase} {
		if n := NewNode(k); n != nil {
			t.Errorf("NewNode(%v) = %v, want nil", k, n)
		}
	}
}

func TestNewSwitchTemplate(t *testing.T) {
	sw := NewNode(tree.KindSwitch).(*tree.Switch)
	if len(sw.Cases) != 1 {
		t.Errorf("switch template has %d cases, want 1", len(sw.Cases))
	}
	if !sw.DefaultOn || sw.Default == nil {
		t.Errorf("switch template default: on=%v case=%v", sw.DefaultOn, sw.Default)
	}
}

func TestInsertAt(t *testing.T) {
	root := parseTree(t, `
		a
		b
		`)
	ip := firstInsertion(root)
	got := InsertAt(root, ip, tree.KindTask)
	if got == root {
		t.Fatalf("InsertAt returned the input tree")
	}
	// The new node is spliced in without a fresh marker of its own; that
	// keeps Remove an exact inverse. WrapInsertions renormalizes.
	want := dedent(`
		insertionpoint
		task ""
		task "a"
		insertionpoint
		task "b"
		insertionpoint
		empty
		`)
	if tree.Sketch(got) != want {
		t.Errorf("after InsertAt:\n%s\nwant:\n%s", tree.Sketch(got), want)
	}
}

func TestInsertAtAssignsFreshIDs(t *testing.T) {
	root := parseTree(t, "a\n")
	got := InsertAt(root, firstInsertion(root), tree.KindBranch)
	max := tree.MaxID(root)
	fresh := 0
	tree.Walk(got, func(n tree.Node) bool {
		if n.ID() == 0 {
			t.Errorf("inserted %v node has no id", n.Kind())
		}
		if n.ID() > max {
			fresh++
		}
		return true
	})
	// A branch template is the node itself plus two marker pairs.
	if fresh != 5 {
		t.Errorf("%d fresh ids, want 5", fresh)
	}
}

func TestInsertAtUnknownTarget(t *testing.T) {
	root := parseTree(t, "a\n")
	if got := InsertAt(root, 999, tree.KindTask); got != root {
		t.Errorf("InsertAt with unknown target did not return the input tree")
	}
	// Content nodes are not insertion points.
	if got := InsertAt(root, findByText(t, root, "a"), tree.KindTask); got != root {
		t.Errorf("InsertAt at a task did not return the input tree")
	}
}

func TestRemove(t *testing.T) {
	root := parseTree(t, `
		a
		b
		`)
	got := Remove(root, findByText(t, root, "a"))
	// The node's own marker stays behind; WrapInsertions collapses it.
	want := dedent(`
		insertionpoint
		insertionpoint
		task "b"
		insertionpoint
		empty
		`)
	if tree.Sketch(got) != want {
		t.Errorf("after Remove:\n%s\nwant:\n%s", tree.Sketch(got), want)
	}
}

func TestRemoveSubtree(t *testing.T) {
	root := parseTree(t, `
		if x:
		    a
		b
		`)
	branchID := 0
	tree.Walk(root, func(n tree.Node) bool {
		if n.Kind() == tree.KindBranch {
			branchID = n.ID()
			return false
		}
		return true
	})
	got := Remove(root, branchID)
	want := dedent(`
		insertionpoint
		insertionpoint
		task "b"
		insertionpoint
		empty
		`)
	if tree.Sketch(got) != want {
		t.Errorf("after Remove:\n%s\nwant:\n%s", tree.Sketch(got), want)
	}
}

func TestRemoveMissesSilently(t *testing.T) {
	root := parseTree(t, "a\n")
	if got := Remove(root, 999); got != root {
		t.Errorf("Remove of an unknown id did not return the input tree")
	}
	if got := Remove(root, firstInsertion(root)); got != root {
		t.Errorf("Remove of a marker did not return the input tree")
	}
}

func TestRemoveUndoesInsertAt(t *testing.T) {
	root := parseTree(t, `
		a
		b
		`)
	inserted := InsertAt(root, firstInsertion(root), tree.KindWhile)
	if inserted == root {
		t.Fatalf("InsertAt failed")
	}
	insertedID := 0
	tree.Walk(inserted, func(n tree.Node) bool {
		if n.Kind() == tree.KindWhile {
			insertedID = n.ID()
			return false
		}
		return true
	})
	back := Remove(inserted, insertedID)
	if tree.Sketch(back) != tree.Sketch(root) {
		t.Errorf("remove after insert:\n%s\nwant the original:\n%s",
			tree.Sketch(back), tree.Sketch(root))
	}
}

func TestEditText(t *testing.T) {
	root := parseTree(t, "a\n")
	got := EditText(root, findByText(t, root, "a"), "changed")
	if got == root {
		t.Fatalf("EditText returned the input tree")
	}
	if tree.Text(root.Follow.(*tree.Insertion).Follow) != "a" {
		t.Errorf("EditText mutated the input tree")
	}
	if text := tree.Text(got.Follow.(*tree.Insertion).Follow); text != "changed" {
		t.Errorf("edited text = %q", text)
	}
}

func TestEditTextMissesSilently(t *testing.T) {
	root := parseTree(t, "a\n")
	if got := EditText(root, 999, "x"); got != root {
		t.Errorf("EditText of an unknown id did not return the input tree")
	}
	if got := EditText(root, firstInsertion(root), "x"); got != root {
		t.Errorf("EditText of a marker did not return the input tree")
	}
}

func TestMove(t *testing.T) {
	root := parseTree(t, `
		a
		b
		`)
	// Move "b" before "a": the target is the very first insertion point.
	// Both the detach and the splice leave the markers where they were.
	got := Move(root, findByText(t, root, "b"), firstInsertion(root))
	want := dedent(`
		insertionpoint
		task "b"
		task "a"
		insertionpoint
		insertionpoint
		empty
		`)
	if tree.Sketch(got) != want {
		t.Errorf("after Move:\n%s\nwant:\n%s", tree.Sketch(got), want)
	}
}

func TestMoveIntoOwnSubtreeIsANoOp(t *testing.T) {
	root := parseTree(t, `
		while x:
		    a
		`)
	whileID := 0
	tree.Walk(root, func(n tree.Node) bool {
		if n.Kind() == tree.KindWhile {
			whileID = n.ID()
			return false
		}
		return true
	})
	// The insertion point in front of "a" lives inside the loop body.
	wh := tree.FindNode(root, whileID).(*tree.While)
	innerIP := wh.Body.ID()
	if got := Move(root, whileID, innerIP); got != root {
		t.Errorf("moving a loop into its own body did not return the input tree")
	}
}

func TestMoveOntoItselfIsANoOp(t *testing.T) {
	root := parseTree(t, "a\n")
	id := findByText(t, root, "a")
	if got := Move(root, id, id); got != root {
		t.Errorf("moving a node onto itself did not return the input tree")
	}
}

func TestMoveMissesSilently(t *testing.T) {
	root := parseTree(t, "a\nb\n")
	if got := Move(root, 999, firstInsertion(root)); got != root {
		t.Errorf("moving an unknown node did not return the input tree")
	}
	if got := Move(root, findByText(t, root, "a"), 999); got != root {
		t.Errorf("moving to an unknown target did not return the input tree")
	}
}
