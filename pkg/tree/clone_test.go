package tree

import "testing"

func TestCloneIsStructurallyEqual(t *testing.T) {
	r := sample()
	c := r.Clone()
	if Sketch(c) != Sketch(r) {
		t.Errorf("clone sketch differs:\n%s\nwant:\n%s", Sketch(c), Sketch(r))
	}
	if MaxID(c) != MaxID(r) {
		t.Errorf("clone MaxID = %d, want %d", MaxID(c), MaxID(r))
	}
}

func TestCloneSharesNothing(t *testing.T) {
	r := sample()
	c := r.Clone()

	SetText(FindNode(c, 9), "changed")
	if Text(FindNode(r, 9)) != "b" {
		t.Errorf("editing the clone changed the original")
	}

	*FindSlot(c, 3) = Follow(FindNode(c, 3))
	if FindNode(r, 3) == nil {
		t.Errorf("splicing the clone changed the original")
	}
}

func TestCloneCopiesColumnWidths(t *testing.T) {
	br := &Branch{Text: "c", True: emptyChain(nil), False: emptyChain(nil),
		ColumnWidths: []float64{0.7, 0.3}, Follow: emptyChain(nil)}
	r := &Root{Follow: br}
	c := r.Clone()
	c.Follow.(*Branch).ColumnWidths[0] = 0.5
	if br.ColumnWidths[0] != 0.7 {
		t.Errorf("clone shares the ColumnWidths slice")
	}
}
