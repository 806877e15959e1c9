// Package edit provides structural operations on structogram trees.
//
// Every operation is a pure function: it deep-copies the input tree,
// mutates the copy and returns it. When the identified node does not exist
// the operation returns the input tree itself, unchanged; callers that need
// failure visibility compare the result to the input by pointer identity.
// This makes every operation safe to call speculatively from interactive
// callers without guard logic.
package edit

import (
	"github.com/strukt-dev/strukt/pkg/tree"
)

// idAlloc hands out identifiers above everything already in use in one
// tree. It is scoped to a single operation call; there is no process-wide
// counter.
type idAlloc struct {
	next int
}

func allocFor(root *tree.Root) *idAlloc {
	return &idAlloc{next: tree.MaxID(root) + 1}
}

func (a *idAlloc) id() int {
	id := a.next
	a.next++
	return id
}

// NewNode returns a freshly constructed template node of the given kind,
// with empty text, canonically terminated child chains and no identifiers
// assigned yet. It returns nil for marker kinds, which cannot be created
// directly.
func NewNode(kind tree.Kind) tree.Node {
	emptyChain := func() tree.Node {
		return &tree.Insertion{Follow: &tree.Empty{}}
	}
	switch kind {
	case tree.KindTask:
		return &tree.Task{}
	case tree.KindInput:
		return &tree.Input{}
	case tree.KindOutput:
		return &tree.Output{}
	case tree.KindBranch:
		return &tree.Branch{True: emptyChain(), False: emptyChain()}
	case tree.KindSwitch:
		return &tree.Switch{
			Cases:     []*tree.Case{{Body: emptyChain()}},
			Default:   &tree.Case{Body: emptyChain()},
			DefaultOn: true,
		}
	case tree.KindWhile:
		return &tree.While{Body: emptyChain()}
	case tree.KindFor:
		return &tree.For{Body: emptyChain()}
	case tree.KindRepeat:
		return &tree.Repeat{Body: emptyChain()}
	case tree.KindFunction:
		return &tree.Function{Body: emptyChain()}
	case tree.KindTryCatch:
		return &tree.TryCatch{Try: emptyChain(), Catch: emptyChain()}
	}
	return nil
}

// InsertAt splices a fresh template node of the given kind in at the
// identified insertion point: the new node takes over what previously
// followed the insertion point, and the insertion point now leads into the
// new node.
func InsertAt(root *tree.Root, insertionID int, kind tree.Kind) *tree.Root {
	c := root.Clone()
	ip, ok := tree.FindNode(c, insertionID).(*tree.Insertion)
	if !ok {
		return root
	}
	n := NewNode(kind)
	if n == nil {
		return root
	}
	ids := allocFor(c)
	numberSubtree(n, ids)
	tree.SetFollow(n, ip.Follow)
	ip.Follow = n
	return c
}

func numberSubtree(n tree.Node, ids *idAlloc) {
	tree.Walk(&tree.Root{Follow: n}, func(m tree.Node) bool {
		if m.ID() == 0 {
			m.SetID(ids.id())
		}
		return true
	})
}

// Remove splices the identified node out of its chain: the slot that held
// it is reconnected to the node's own continuation, and the removed subtree
// (children included) becomes unreachable. Sequence markers cannot be
// removed.
func Remove(root *tree.Root, id int) *tree.Root {
	c := root.Clone()
	slot := tree.FindSlot(c, id)
	if slot == nil || !removable(*slot) {
		return root
	}
	follow := tree.Follow(*slot)
	if follow == nil {
		follow = &tree.Empty{}
	}
	*slot = follow
	return c
}

// EditText replaces the text field of the identified node.
func EditText(root *tree.Root, id int, text string) *tree.Root {
	c := root.Clone()
	n := tree.FindNode(c, id)
	if n == nil || !tree.SetText(n, text) {
		return root
	}
	return c
}

// Move detaches the identified node, reconnecting its old neighbors exactly
// as Remove does but keeping the detached node itself, and splices that
// same node in at the target insertion point. Moving a node to an insertion
// point inside its own subtree is a silent no-op, as is moving a node onto
// itself.
func Move(root *tree.Root, sourceID, insertionID int) *tree.Root {
	if sourceID == insertionID {
		return root
	}
	c := root.Clone()
	slot := tree.FindSlot(c, sourceID)
	if slot == nil || !removable(*slot) {
		return root
	}
	n := *slot
	follow := tree.Follow(n)
	if follow == nil {
		follow = &tree.Empty{}
	}
	*slot = follow
	// After detaching, the target is only findable if it is not inside
	// the detached subtree.
	ip, ok := tree.FindNode(c, insertionID).(*tree.Insertion)
	if !ok {
		return root
	}
	tree.SetFollow(n, ip.Follow)
	ip.Follow = n
	return c
}

func removable(n tree.Node) bool {
	switch n.(type) {
	case *tree.Empty, *tree.Insertion:
		return false
	}
	return true
}
