package parse

import (
	"strconv"
	"strings"

	"github.com/strukt-dev/strukt/pkg/dialect"
	"github.com/strukt-dev/strukt/pkg/tree"
)

// Serialize renders the tree back into pseudocode text using the keyword
// map d. It is the structural inverse of the merge stage of Parse:
// re-parsing the output yields a tree structurally equal to the input
// modulo identifiers.
func Serialize(root *tree.Root, d dialect.Map) string {
	s := serializer{d: d}
	s.chain(root.Follow, 0)
	return s.sb.String()
}

type serializer struct {
	d  dialect.Map
	sb strings.Builder
}

func (s *serializer) line(depth int, text string) {
	s.sb.WriteString(strings.Repeat(" ", depth*indentUnit))
	s.sb.WriteString(text)
	s.sb.WriteByte('\n')
}

func (s *serializer) chain(n tree.Node, depth int) {
	for ; n != nil; n = tree.Follow(n) {
		s.node(n, depth)
	}
}

func (s *serializer) node(n tree.Node, depth int) {
	d := s.d
	switch n := n.(type) {
	case *tree.Empty, *tree.Insertion:
		// Sequence markers have no textual form.
	case *tree.Task:
		s.line(depth, n.Text)
	case *tree.Input:
		s.line(depth, d.Input+`("`+n.Text+`")`)
	case *tree.Output:
		s.line(depth, d.Output+`("`+n.Text+`")`)
	case *tree.Branch:
		s.line(depth, d.If+" "+n.Text+widthsText(n.ColumnWidths)+":")
		s.chain(n.True, depth+1)
		if tree.HasContent(n.False) {
			s.line(depth, d.Else+":")
			s.chain(n.False, depth+1)
		}
	case *tree.Switch:
		s.line(depth, d.Switch+" "+n.Text+widthsText(n.ColumnWidths)+":")
		for _, c := range n.Cases {
			s.line(depth+1, d.Case+" "+c.Text+":")
			s.chain(c.Body, depth+2)
		}
		if n.DefaultOn {
			s.line(depth+1, d.Else+":")
			s.chain(n.Default.Body, depth+2)
		}
	case *tree.While:
		s.line(depth, d.While+" "+n.Text+":")
		s.chain(n.Body, depth+1)
	case *tree.For:
		s.line(depth, d.For+" "+n.Text+":")
		s.chain(n.Body, depth+1)
	case *tree.Repeat:
		s.line(depth, d.Repeat+":")
		s.chain(n.Body, depth+1)
		// The foot condition is a sibling line without a trailing colon;
		// that is what distinguishes it from a head-tested loop.
		s.line(depth, d.While+" "+n.Text)
	case *tree.Function:
		names := make([]string, len(n.Params))
		for i, p := range n.Params {
			names[i] = p.Name
		}
		s.line(depth, d.Function+" "+n.Text+"("+strings.Join(names, ", ")+"):")
		s.chain(n.Body, depth+1)
	case *tree.TryCatch:
		s.line(depth, d.Try+":")
		s.chain(n.Try, depth+1)
		catch := d.Catch
		if n.Text != "" {
			catch += " " + n.Text
		}
		s.line(depth, catch+":")
		s.chain(n.Catch, depth+1)
	default:
		panic("parse: unknown node type in Serialize")
	}
}

func widthsText(ws []float64) string {
	if len(ws) == 0 {
		return ""
	}
	parts := make([]string, len(ws))
	for i, w := range ws {
		parts[i] = strconv.FormatFloat(w, 'g', -1, 64)
	}
	return " [" + strings.Join(parts, ", ") + "]"
}
