package ast

import "testing"

func TestStructuralEquality(t *testing.T) {
	a := NewAdd(Number{1}, NewMultiply(Number{2}, Number{3}))
	b := NewAdd(Number{1}, NewMultiply(Number{2}, Number{3}))
	c := NewAdd(Number{1}, NewMultiply(Number{2}, Number{4}))

	if a != b {
		t.Fatalf("expected structurally equal nodes to compare equal")
	}
	if a == c {
		t.Fatalf("expected structurally different nodes to compare unequal")
	}
}

func TestBlockOrderedEquality(t *testing.T) {
	a := Block{Statements: []Stmt{
		Var{Name: "x", Initializer: Number{1}},
		Return{Value: Id{Name: "x"}},
	}}
	b := Block{Statements: []Stmt{
		Var{Name: "x", Initializer: Number{1}},
		Return{Value: Id{Name: "x"}},
	}}

	if len(a.Statements) != len(b.Statements) {
		t.Fatalf("length mismatch")
	}
	for i := range a.Statements {
		if a.Statements[i] != b.Statements[i] {
			t.Fatalf("statement %d differs: %#v != %#v", i, a.Statements[i], b.Statements[i])
		}
	}
}
