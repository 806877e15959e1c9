package tree

// Slots returns pointers to every structural child slot of n, child chains
// first and the Follow continuation last. Case bodies of a Switch appear in
// case order, with the default body after them.
func Slots(n Node) []*Node {
	switch n := n.(type) {
	case *Empty:
		return nil
	case *Insertion:
		return []*Node{&n.Follow}
	case *Task:
		return []*Node{&n.Follow}
	case *Input:
		return []*Node{&n.Follow}
	case *Output:
		return []*Node{&n.Follow}
	case *Branch:
		return []*Node{&n.True, &n.False, &n.Follow}
	case *Switch:
		slots := make([]*Node, 0, len(n.Cases)+2)
		for _, c := range n.Cases {
			slots = append(slots, &c.Body)
		}
		if n.Default != nil {
			slots = append(slots, &n.Default.Body)
		}
		return append(slots, &n.Follow)
	case *Case:
		return []*Node{&n.Body}
	case *While:
		return []*Node{&n.Body, &n.Follow}
	case *For:
		return []*Node{&n.Body, &n.Follow}
	case *Repeat:
		return []*Node{&n.Body, &n.Follow}
	case *Function:
		return []*Node{&n.Body, &n.Follow}
	case *TryCatch:
		return []*Node{&n.Try, &n.Catch, &n.Follow}
	}
	return nil
}

// Walk calls f for every node reachable from root in depth-first order,
// including Case nodes, and stops early when f returns false.
func Walk(root *Root, f func(Node) bool) {
	walk(root.Follow, f)
}

func walk(n Node, f func(Node) bool) bool {
	if n == nil {
		return true
	}
	if !f(n) {
		return false
	}
	if sw, ok := n.(*Switch); ok {
		for _, c := range sw.Cases {
			if !walk(c, f) {
				return false
			}
		}
		if sw.Default != nil && !walk(sw.Default, f) {
			return false
		}
		return walk(sw.Follow, f)
	}
	for _, slot := range Slots(n) {
		if !walk(*slot, f) {
			return false
		}
	}
	return true
}

// FindNode returns the node with the given identifier, or nil. Identifiers
// are assumed unique, so the first match wins.
func FindNode(root *Root, id int) Node {
	var found Node
	Walk(root, func(n Node) bool {
		if n.ID() == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// FindSlot returns a pointer to the slot that holds the node with the given
// identifier, or nil. Case nodes have no holding slot and are never found.
func FindSlot(root *Root, id int) *Node {
	return findSlot(&root.Follow, id)
}

func findSlot(slot *Node, id int) *Node {
	n := *slot
	if n == nil {
		return nil
	}
	if n.ID() == id {
		return slot
	}
	for _, s := range Slots(n) {
		if found := findSlot(s, id); found != nil {
			return found
		}
	}
	return nil
}

// MaxID returns the largest identifier in use anywhere in the tree.
func MaxID(root *Root) int {
	max := 0
	Walk(root, func(n Node) bool {
		if n.ID() > max {
			max = n.ID()
		}
		return true
	})
	return max
}

// HasContent reports whether the chain starting at n contains any node
// besides sequence markers.
func HasContent(n Node) bool {
	for ; n != nil; n = Follow(n) {
		switch n.(type) {
		case *Empty, *Insertion:
		default:
			return true
		}
	}
	return false
}
