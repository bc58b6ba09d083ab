package schema

import "testing"

func TestNew_RejectsDuplicates(t *testing.T) {
	_, err := New(
		Field{Name: "a", Title: "A"},
		Field{Name: "a", Title: "Again"},
	)
	if err == nil {
		t.Fatal("expected error for duplicate field name")
	}
}

func TestNew_RejectsEmptyName(t *testing.T) {
	if _, err := New(Field{Title: "Nameless"}); err == nil {
		t.Fatal("expected error for empty field name")
	}
}

func TestCurrentContract(t *testing.T) {
	c := Current()
	want := []string{
		"model_stack", "scene_fit", "data_moat",
		"ux_friction", "commercial_roi", "strategy_advice",
	}
	got := c.Names()
	if len(got) != len(want) {
		t.Fatalf("got %d fields, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("field %d = %q, want %q", i, got[i], want[i])
		}
	}
	for _, name := range want {
		if !c.Contains(name) {
			t.Errorf("Contains(%q) = false", name)
		}
		f, ok := c.Lookup(name)
		if !ok || f.Title == "" || len(f.Synonyms) == 0 {
			t.Errorf("Lookup(%q) = %+v, %v", name, f, ok)
		}
	}
}

func TestDetect(t *testing.T) {
	legacyNames := []string{"model_stack", "competitive_advantage"}
	if got := Detect(legacyNames); !got.Contains("competitive_advantage") {
		t.Error("Detect should pick the legacy contract for pre-rename records")
	}
	currentNames := []string{"model_stack", "strategy_advice"}
	if got := Detect(currentNames); !got.Contains("strategy_advice") {
		t.Error("Detect should pick the current contract")
	}
	if got := Detect(nil); !got.Contains("strategy_advice") {
		t.Error("Detect should default to the current contract")
	}
}

func TestLegacyContract(t *testing.T) {
	c := Legacy()
	if !c.Contains("competitive_advantage") {
		t.Error("legacy contract must keep the pre-rename sixth field")
	}
	if c.Contains("strategy_advice") {
		t.Error("legacy contract must not contain the renamed field")
	}
	if c.Len() != Current().Len() {
		t.Errorf("legacy len %d != current len %d", c.Len(), Current().Len())
	}
	// Shared leading fields are identical.
	for i := 0; i < 5; i++ {
		if c.At(i).Name != Current().At(i).Name {
			t.Errorf("field %d differs: %q vs %q", i, c.At(i).Name, Current().At(i).Name)
		}
	}
}
