package data

import "testing"

func testAttrs() []Attribute {
	return []Attribute{
		{Name: "outlook", Values: []string{"sunny", "rainy"}},
		{Name: "windy", Values: []string{"yes", "no"}},
		{Name: "play", Values: []string{"yes", "no"}},
	}
}

func TestNew(t *testing.T) {
	ds, err := New("weather", testAttrs(), 2)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if ds.NumAttributes() != 3 {
		t.Errorf("NumAttributes() = %d, want 3", ds.NumAttributes())
	}
	if ds.ClassIndex() != 2 {
		t.Errorf("ClassIndex() = %d, want 2", ds.ClassIndex())
	}
	if ds.Cardinality(0) != 2 {
		t.Errorf("Cardinality(0) = %d, want 2", ds.Cardinality(0))
	}
}

func TestNewValidation(t *testing.T) {
	if _, err := New("empty", nil, 0); err == nil {
		t.Error("New() with no attributes should fail")
	}
	if _, err := New("bad-class", testAttrs(), 3); err == nil {
		t.Error("New() with out-of-range class index should fail")
	}
	if _, err := New("bad-name", []Attribute{{Name: ""}}, 0); err == nil {
		t.Error("New() with empty attribute name should fail")
	}
}

func TestAddRow(t *testing.T) {
	ds, err := New("weather", testAttrs(), 2)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	if err := ds.AddRow([]int{0, 1, 0}); err != nil {
		t.Fatalf("AddRow() error: %v", err)
	}
	if ds.NumRows() != 1 {
		t.Errorf("NumRows() = %d, want 1", ds.NumRows())
	}
	if got := ds.Value(0, 1); got != 1 {
		t.Errorf("Value(0,1) = %d, want 1", got)
	}

	if err := ds.AddRow([]int{0, 1}); err == nil {
		t.Error("AddRow() with wrong width should fail")
	}
	if err := ds.AddRow([]int{0, 1, 5}); err == nil {
		t.Error("AddRow() with out-of-range value should fail")
	}
}

func TestAddRowCopiesInput(t *testing.T) {
	ds, _ := New("weather", testAttrs(), 2)
	row := []int{0, 0, 0}
	if err := ds.AddRow(row); err != nil {
		t.Fatalf("AddRow() error: %v", err)
	}
	row[0] = 1
	if got := ds.Value(0, 0); got != 0 {
		t.Errorf("Value(0,0) = %d after mutating caller slice, want 0", got)
	}
}

func TestSetClass(t *testing.T) {
	ds, _ := New("weather", testAttrs(), 2)

	if err := ds.SetClass("outlook"); err != nil {
		t.Fatalf("SetClass() error: %v", err)
	}
	if ds.ClassIndex() != 0 {
		t.Errorf("ClassIndex() = %d, want 0", ds.ClassIndex())
	}

	if err := ds.SetClass("missing"); err == nil {
		t.Error("SetClass() with unknown name should fail")
	}
}

func TestAttributeIndex(t *testing.T) {
	ds, _ := New("weather", testAttrs(), 2)
	if got := ds.AttributeIndex("windy"); got != 1 {
		t.Errorf("AttributeIndex(windy) = %d, want 1", got)
	}
	if got := ds.AttributeIndex("nope"); got != -1 {
		t.Errorf("AttributeIndex(nope) = %d, want -1", got)
	}
}
