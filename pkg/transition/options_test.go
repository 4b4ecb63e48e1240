package transition

import "testing"

func TestOptionsClone(t *testing.T) {
	orig := Options{
		"scalar": "x",
		"nested": map[string]any{"k": "v"},
		"list":   []any{1, "two"},
	}
	dup := orig.Clone()

	if !orig.Equal(dup) {
		t.Fatal("clone must equal the original")
	}
	dup["scalar"] = "y"
	dup["nested"].(map[string]any)["k"] = "changed"
	dup["list"].([]any)[0] = 99

	if orig["scalar"] != "x" {
		t.Error("scalar mutation leaked")
	}
	if orig["nested"].(map[string]any)["k"] != "v" {
		t.Error("nested map mutation leaked")
	}
	if orig["list"].([]any)[0] != 1 {
		t.Error("slice mutation leaked")
	}
}

func TestOptionsCloneNil(t *testing.T) {
	var o Options
	dup := o.Clone()
	if dup == nil {
		t.Fatal("clone of nil must be an empty, usable map")
	}
	dup["k"] = "v"
}

func TestOptionsCanonicalDeterministic(t *testing.T) {
	a := Options{"b": 2, "a": 1, "nested": map[string]any{"y": true, "x": false}}
	b := Options{"nested": map[string]any{"x": false, "y": true}, "a": 1, "b": 2}
	if string(a.canonical()) != string(b.canonical()) {
		t.Error("equal options must encode to identical canonical bytes")
	}
}
