package tree

import (
	"encoding/json"
	"fmt"
)

// jsonNode is the wire form of a node. The same shape serves both the
// editable form (markers and identifiers present) and the clean exchange
// form produced by stripping markers; in the clean form the id fields are
// simply absent.
type jsonNode struct {
	Type         string      `json:"type"`
	ID           int         `json:"id,omitempty"`
	Text         string      `json:"text,omitempty"`
	ColumnWidths []float64   `json:"columnWidths,omitempty"`
	Params       []Param     `json:"parameters,omitempty"`
	True         *jsonNode   `json:"trueChild,omitempty"`
	False        *jsonNode   `json:"falseChild,omitempty"`
	Body         *jsonNode   `json:"child,omitempty"`
	Try          *jsonNode   `json:"tryChild,omitempty"`
	Catch        *jsonNode   `json:"catchChild,omitempty"`
	Cases        []*jsonNode `json:"cases,omitempty"`
	DefaultOn    bool        `json:"defaultEnabled,omitempty"`
	Default      *jsonNode   `json:"defaultCase,omitempty"`
	Follow       *jsonNode   `json:"followElement,omitempty"`
}

// EncodeJSON encodes the tree in the JSON exchange format. The encoding is a
// faithful image of the tree: markers and identifiers are included exactly
// when present, so encoding a stripped tree yields the clean form.
func EncodeJSON(r *Root) ([]byte, error) {
	return json.MarshalIndent(encodeNode(r.Follow), "", "  ")
}

// DecodeJSON decodes a tree from the JSON exchange format. Trees exported by
// other tools usually omit markers and identifiers; callers that need the
// editable form should normalize the result afterwards.
func DecodeJSON(data []byte) (*Root, error) {
	var jn *jsonNode
	if err := json.Unmarshal(data, &jn); err != nil {
		return nil, err
	}
	n, err := decodeNode(jn)
	if err != nil {
		return nil, err
	}
	return &Root{Follow: n}, nil
}

func encodeNode(n Node) *jsonNode {
	if n == nil {
		return nil
	}
	jn := &jsonNode{Type: n.Kind().String(), ID: n.ID(), Text: Text(n)}
	switch n := n.(type) {
	case *Empty, *Insertion, *Task, *Input, *Output:
	case *Branch:
		jn.True = encodeNode(n.True)
		jn.False = encodeNode(n.False)
		jn.ColumnWidths = n.ColumnWidths
	case *Switch:
		for _, c := range n.Cases {
			jn.Cases = append(jn.Cases, encodeNode(c))
		}
		jn.DefaultOn = n.DefaultOn
		if n.Default != nil {
			jn.Default = encodeNode(n.Default)
		}
		jn.ColumnWidths = n.ColumnWidths
	case *Case:
		jn.Body = encodeNode(n.Body)
	case *While:
		jn.Body = encodeNode(n.Body)
	case *For:
		jn.Body = encodeNode(n.Body)
	case *Repeat:
		jn.Body = encodeNode(n.Body)
	case *Function:
		jn.Params = n.Params
		jn.Body = encodeNode(n.Body)
	case *TryCatch:
		jn.Try = encodeNode(n.Try)
		jn.Catch = encodeNode(n.Catch)
	default:
		panic(fmt.Sprintf("tree: unknown node type %T", n))
	}
	jn.Follow = encodeNode(Follow(n))
	return jn
}

func decodeNode(jn *jsonNode) (Node, error) {
	if jn == nil {
		return nil, nil
	}
	follow, err := decodeNode(jn.Follow)
	if err != nil {
		return nil, err
	}
	var n Node
	switch KindOf(jn.Type) {
	case KindEmpty:
		n = &Empty{}
	case KindInsertion:
		n = &Insertion{Follow: follow}
	case KindTask:
		n = &Task{Text: jn.Text, Follow: follow}
	case KindInput:
		n = &Input{Text: jn.Text, Follow: follow}
	case KindOutput:
		n = &Output{Text: jn.Text, Follow: follow}
	case KindBranch:
		trueChild, err := decodeNode(jn.True)
		if err != nil {
			return nil, err
		}
		falseChild, err := decodeNode(jn.False)
		if err != nil {
			return nil, err
		}
		n = &Branch{Text: jn.Text, True: trueChild, False: falseChild,
			ColumnWidths: jn.ColumnWidths, Follow: follow}
	case KindSwitch:
		sw := &Switch{Text: jn.Text, DefaultOn: jn.DefaultOn,
			ColumnWidths: jn.ColumnWidths, Follow: follow}
		for _, jc := range jn.Cases {
			c, err := decodeCase(jc)
			if err != nil {
				return nil, err
			}
			sw.Cases = append(sw.Cases, c)
		}
		sw.Default, err = decodeCase(jn.Default)
		if err != nil {
			return nil, err
		}
		if sw.Default == nil {
			sw.Default = &Case{}
		}
		n = sw
	case KindCase:
		return decodeCaseNode(jn, follow)
	case KindWhile:
		body, err := decodeNode(jn.Body)
		if err != nil {
			return nil, err
		}
		n = &While{Text: jn.Text, Body: body, Follow: follow}
	case KindFor:
		body, err := decodeNode(jn.Body)
		if err != nil {
			return nil, err
		}
		n = &For{Text: jn.Text, Body: body, Follow: follow}
	case KindRepeat:
		body, err := decodeNode(jn.Body)
		if err != nil {
			return nil, err
		}
		n = &Repeat{Text: jn.Text, Body: body, Follow: follow}
	case KindFunction:
		body, err := decodeNode(jn.Body)
		if err != nil {
			return nil, err
		}
		n = &Function{Text: jn.Text, Params: jn.Params, Body: body, Follow: follow}
	case KindTryCatch:
		try, err := decodeNode(jn.Try)
		if err != nil {
			return nil, err
		}
		catch, err := decodeNode(jn.Catch)
		if err != nil {
			return nil, err
		}
		n = &TryCatch{Text: jn.Text, Try: try, Catch: catch, Follow: follow}
	default:
		return nil, fmt.Errorf("tree: unknown node type %q", jn.Type)
	}
	n.SetID(jn.ID)
	return n, nil
}

func decodeCase(jn *jsonNode) (*Case, error) {
	if jn == nil {
		return nil, nil
	}
	body, err := decodeNode(jn.Body)
	if err != nil {
		return nil, err
	}
	c := &Case{Text: jn.Text, Body: body}
	c.SetID(jn.ID)
	return c, nil
}

func decodeCaseNode(jn *jsonNode, follow Node) (Node, error) {
	if follow != nil {
		return nil, fmt.Errorf("tree: case node cannot have a followElement")
	}
	return decodeCase(jn)
}
