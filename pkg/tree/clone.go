package tree

// Clone returns a deep copy of the tree. The copy shares no nodes with the
// original; identifiers and source lines are preserved.
func (r *Root) Clone() *Root {
	return &Root{Follow: CloneNode(r.Follow)}
}

// CloneNode returns a deep copy of n and everything reachable from it.
func CloneNode(n Node) Node {
	if n == nil {
		return nil
	}
	switch n := n.(type) {
	case *Empty:
		return &Empty{meta: n.meta}
	case *Insertion:
		return &Insertion{meta: n.meta, Follow: CloneNode(n.Follow)}
	case *Task:
		return &Task{meta: n.meta, Text: n.Text, Follow: CloneNode(n.Follow)}
	case *Input:
		return &Input{meta: n.meta, Text: n.Text, Follow: CloneNode(n.Follow)}
	case *Output:
		return &Output{meta: n.meta, Text: n.Text, Follow: CloneNode(n.Follow)}
	case *Branch:
		return &Branch{
			meta: n.meta, Text: n.Text,
			True: CloneNode(n.True), False: CloneNode(n.False),
			ColumnWidths: cloneWidths(n.ColumnWidths),
			Follow:       CloneNode(n.Follow),
		}
	case *Switch:
		cases := make([]*Case, len(n.Cases))
		for i, c := range n.Cases {
			cases[i] = cloneCase(c)
		}
		return &Switch{
			meta: n.meta, Text: n.Text,
			Cases: cases, DefaultOn: n.DefaultOn, Default: cloneCase(n.Default),
			ColumnWidths: cloneWidths(n.ColumnWidths),
			Follow:       CloneNode(n.Follow),
		}
	case *Case:
		return cloneCase(n)
	case *While:
		return &While{meta: n.meta, Text: n.Text, Body: CloneNode(n.Body), Follow: CloneNode(n.Follow)}
	case *For:
		return &For{meta: n.meta, Text: n.Text, Body: CloneNode(n.Body), Follow: CloneNode(n.Follow)}
	case *Repeat:
		return &Repeat{meta: n.meta, Text: n.Text, Body: CloneNode(n.Body), Follow: CloneNode(n.Follow)}
	case *Function:
		params := make([]Param, len(n.Params))
		copy(params, n.Params)
		return &Function{meta: n.meta, Text: n.Text, Params: params, Body: CloneNode(n.Body), Follow: CloneNode(n.Follow)}
	case *TryCatch:
		return &TryCatch{
			meta: n.meta, Text: n.Text,
			Try: CloneNode(n.Try), Catch: CloneNode(n.Catch),
			Follow: CloneNode(n.Follow),
		}
	}
	panic("tree: unknown node type in CloneNode")
}

func cloneCase(c *Case) *Case {
	if c == nil {
		return nil
	}
	return &Case{meta: c.meta, Text: c.Text, Body: CloneNode(c.Body)}
}

func cloneWidths(ws []float64) []float64 {
	if ws == nil {
		return nil
	}
	out := make([]float64, len(ws))
	copy(out, ws)
	return out
}
