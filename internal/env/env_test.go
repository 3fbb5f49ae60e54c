package env

import "testing"

func TestParameterOffsets(t *testing.T) {
	e := New()
	for i, name := range []string{"a", "b", "c", "d"} {
		e.BindParameter(name, i)
	}

	want := map[string]int32{"a": -16, "b": -12, "c": -8, "d": -4}
	for name, offset := range want {
		got, ok := e.Lookup(name)
		if !ok {
			t.Fatalf("expected %s to be bound", name)
		}
		if got != offset {
			t.Fatalf("%s: got offset %d, want %d", name, got, offset)
		}
	}
}

func TestBindStrideEight(t *testing.T) {
	e := New()

	first := e.Bind("x")
	if first != -24 {
		t.Fatalf("got %d, want -24", first)
	}

	second := e.Bind("y")
	if second != -32 {
		t.Fatalf("got %d, want -32", second)
	}
}

func TestLookupUnbound(t *testing.T) {
	e := New()
	if _, ok := e.Lookup("nope"); ok {
		t.Fatalf("expected an unbound name to miss")
	}
}

func TestRebindOverwrites(t *testing.T) {
	e := New()
	e.Bind("x")
	second := e.Bind("x")

	got, ok := e.Lookup("x")
	if !ok || got != second {
		t.Fatalf("expected the later binding to win: got %d, ok=%v, want %d", got, ok, second)
	}
}
