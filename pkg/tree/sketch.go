package tree

import (
	"fmt"
	"strconv"
	"strings"
)

const sketchIndent = 2

// Sketch renders the structural shape of the tree as indented text, one node
// per line, with identifiers omitted. Two trees are structurally equal
// modulo identifiers exactly when their sketches are equal, which makes the
// sketch the comparison currency of tests.
func Sketch(r *Root) string {
	var sb strings.Builder
	sketchChain(&sb, r.Follow, 0)
	return sb.String()
}

// SketchNode is like Sketch but starts at an arbitrary node.
func SketchNode(n Node) string {
	var sb strings.Builder
	sketchChain(&sb, n, 0)
	return sb.String()
}

func sketchChain(sb *strings.Builder, n Node, indent int) {
	for ; n != nil; n = Follow(n) {
		sketchNode(sb, n, indent)
	}
}

func sketchNode(sb *strings.Builder, n Node, indent int) {
	line := func(s string) {
		fmt.Fprintf(sb, "%*s%s\n", indent, "", s)
	}
	head := func(n Node) string {
		return n.Kind().String() + " " + strconv.Quote(Text(n))
	}
	switch n := n.(type) {
	case *Empty:
		line("empty")
	case *Insertion:
		line("insertionpoint")
	case *Task, *Input, *Output:
		line(head(n))
	case *Branch:
		line(head(n) + widthsSuffix(n.ColumnWidths))
		sketchChain(sb, n.True, indent+sketchIndent)
		sketchChain(sb, n.False, indent+sketchIndent)
	case *Switch:
		line(head(n) + widthsSuffix(n.ColumnWidths))
		for _, c := range n.Cases {
			sketchNode(sb, c, indent+sketchIndent)
		}
		if n.DefaultOn {
			fmt.Fprintf(sb, "%*sdefault\n", indent+sketchIndent, "")
			sketchChain(sb, n.Default.Body, indent+2*sketchIndent)
		}
	case *Case:
		line(head(n))
		sketchChain(sb, n.Body, indent+sketchIndent)
	case *While:
		line(head(n))
		sketchChain(sb, n.Body, indent+sketchIndent)
	case *For:
		line(head(n))
		sketchChain(sb, n.Body, indent+sketchIndent)
	case *Repeat:
		line(head(n))
		sketchChain(sb, n.Body, indent+sketchIndent)
	case *Function:
		names := make([]string, len(n.Params))
		for i, p := range n.Params {
			names[i] = p.Name
		}
		line(head(n) + " (" + strings.Join(names, ", ") + ")")
		sketchChain(sb, n.Body, indent+sketchIndent)
	case *TryCatch:
		line(head(n))
		sketchChain(sb, n.Try, indent+sketchIndent)
		sketchChain(sb, n.Catch, indent+sketchIndent)
	default:
		panic(fmt.Sprintf("tree: unknown node type %T", n))
	}
}

func widthsSuffix(ws []float64) string {
	if len(ws) == 0 {
		return ""
	}
	parts := make([]string, len(ws))
	for i, w := range ws {
		parts[i] = strconv.FormatFloat(w, 'g', -1, 64)
	}
	return " [" + strings.Join(parts, ", ") + "]"
}
