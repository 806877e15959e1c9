package edit

import (
	"github.com/strukt-dev/strukt/pkg/tree"
)

// WrapInsertions normalizes the tree so that every sequence position (in
// front of every content node and at the end of every chain) carries an
// insertion point, and every chain terminates in an insertion/empty pair.
// Trees imported from other tools omit these markers; this restores them.
// The operation is idempotent up to marker identifiers.
func WrapInsertions(root *tree.Root) *tree.Root {
	c := root.Clone()
	ids := allocFor(c)
	wrapChain(&c.Follow, ids)
	return c
}

func wrapChain(slot *tree.Node, ids *idAlloc) {
	var contents []tree.Node
	for n := *slot; n != nil; n = tree.Follow(n) {
		switch n.(type) {
		case *tree.Empty, *tree.Insertion:
		default:
			contents = append(contents, n)
			for _, s := range childChains(n) {
				wrapChain(s, ids)
			}
		}
	}
	e := &tree.Empty{}
	e.SetID(ids.id())
	next := tree.Node(e)
	for i := len(contents); i >= 0; i-- {
		if i < len(contents) {
			tree.SetFollow(contents[i], next)
			next = contents[i]
		}
		ip := &tree.Insertion{Follow: next}
		ip.SetID(ids.id())
		next = ip
	}
	*slot = next
}

// StripMarkers removes all insertion points, chain terminators and internal
// identifiers, producing the minimal externally shareable form of the tree.
// The inverse normalization is WrapInsertions followed by EnsureIDs.
func StripMarkers(root *tree.Root) *tree.Root {
	c := root.Clone()
	stripChain(&c.Follow)
	return c
}

func stripChain(slot *tree.Node) {
	var contents []tree.Node
	for n := *slot; n != nil; n = tree.Follow(n) {
		switch n.(type) {
		case *tree.Empty, *tree.Insertion:
		default:
			contents = append(contents, n)
			n.SetID(0)
			n.SetLine(0)
			if sw, ok := n.(*tree.Switch); ok {
				for _, cs := range sw.Cases {
					cs.SetID(0)
					cs.SetLine(0)
				}
				if sw.Default != nil {
					sw.Default.SetID(0)
					sw.Default.SetLine(0)
				}
			}
			for _, s := range childChains(n) {
				stripChain(s)
			}
		}
	}
	var next tree.Node
	for i := len(contents) - 1; i >= 0; i-- {
		tree.SetFollow(contents[i], next)
		next = contents[i]
	}
	*slot = next
}

// EnsureIDs assigns a fresh identifier to every node that lacks one,
// leaving existing identifiers untouched.
func EnsureIDs(root *tree.Root) *tree.Root {
	c := root.Clone()
	ids := allocFor(c)
	tree.Walk(c, func(n tree.Node) bool {
		if n.ID() == 0 {
			n.SetID(ids.id())
		}
		return true
	})
	return c
}

// childChains returns the child chain slots of n, excluding the Follow
// continuation, which belongs to the containing chain.
func childChains(n tree.Node) []*tree.Node {
	switch n := n.(type) {
	case *tree.Branch:
		return []*tree.Node{&n.True, &n.False}
	case *tree.Switch:
		slots := make([]*tree.Node, 0, len(n.Cases)+1)
		for _, c := range n.Cases {
			slots = append(slots, &c.Body)
		}
		if n.Default != nil {
			slots = append(slots, &n.Default.Body)
		}
		return slots
	case *tree.While:
		return []*tree.Node{&n.Body}
	case *tree.For:
		return []*tree.Node{&n.Body}
	case *tree.Repeat:
		return []*tree.Node{&n.Body}
	case *tree.Function:
		return []*tree.Node{&n.Body}
	case *tree.TryCatch:
		return []*tree.Node{&n.Try, &n.Catch}
	}
	return nil
}
