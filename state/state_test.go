package state

import "testing"

func TestBeginRound_ExcludesConcurrentRounds(t *testing.T) {
	s := &AppState{ActiveRounds: make(map[uint]bool)}

	if !s.BeginRound(1) {
		t.Fatal("expected first BeginRound to succeed")
	}
	if s.BeginRound(1) {
		t.Fatal("expected second BeginRound on the same session to fail")
	}
	if !s.BeginRound(2) {
		t.Fatal("expected BeginRound on another session to succeed")
	}

	s.EndRound(1)
	if s.RoundActive(1) {
		t.Fatal("expected round to be cleared")
	}
	if !s.BeginRound(1) {
		t.Fatal("expected BeginRound to succeed after EndRound")
	}
}
