package utils

import "testing"

func TestRandomHex(t *testing.T) {
	a, b := RandomHex(8), RandomHex(8)
	if len(a) != 16 {
		t.Fatalf("expected 16 hex chars, got %d", len(a))
	}
	if a == b {
		t.Fatalf("expected distinct ids, got %s twice", a)
	}
}
