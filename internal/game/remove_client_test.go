package game

import (
	"testing"

	"tinyboard/internal/board"
)

func TestLeaveFreesSeat(t *testing.T) {
	r := newTestHub(t).Get("g")
	r.Join("white", &sinkRecorder{})
	r.Join("black", &sinkRecorder{})

	r.Leave("black")
	if _, ok := r.Clients["black"]; ok {
		t.Fatalf("expected black client to be removed")
	}
	if r.White != "white" {
		t.Fatalf("white seat should remain unchanged")
	}
	if r.Black != "" {
		t.Fatalf("black seat should be free")
	}

	if role := r.Join("late", &sinkRecorder{}); role != board.AsBlack {
		t.Fatalf("expected freed black seat to be reused, got %v", role)
	}
	if r.Watchers() != 2 {
		t.Fatalf("expected 2 watchers, got %d", r.Watchers())
	}
}
