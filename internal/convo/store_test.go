package convo

import (
	"fmt"
	"sync"
	"testing"
)

func TestStoreBoundsHistoryAtTenTurns(t *testing.T) {
	s := NewStore()
	for i := 0; i < 20; i++ {
		s.Append("u1", RoleUser, fmt.Sprintf("turn-%d", i))
	}

	got := s.History("u1", 0)
	if len(got) != 10 {
		t.Fatalf("len(history) = %d, want 10", len(got))
	}
	if got[0].Text != "turn-10" {
		t.Fatalf("oldest retained = %q, want %q", got[0].Text, "turn-10")
	}
	if got[len(got)-1].Text != "turn-19" {
		t.Fatalf("newest = %q, want %q", got[len(got)-1].Text, "turn-19")
	}
}

func TestHistoryPromptWindowIsFiveTurns(t *testing.T) {
	s := NewStore()
	for i := 0; i < 8; i++ {
		s.Append("u1", RoleUser, fmt.Sprintf("m%d", i))
	}

	got := s.History("u1", PromptTurnLimit)
	if len(got) != 5 {
		t.Fatalf("len(history) = %d, want 5", len(got))
	}
	if got[0].Text != "m3" || got[4].Text != "m7" {
		t.Fatalf("window = [%q..%q], want [m3..m7]", got[0].Text, got[4].Text)
	}
}

func TestAppendExchangeKeepsOrder(t *testing.T) {
	s := NewStore()
	s.AppendExchange("u1", "savol", "javob")

	got := s.History("u1", 0)
	if len(got) != 2 {
		t.Fatalf("len(history) = %d, want 2", len(got))
	}
	if got[0].Role != RoleUser || got[0].Text != "savol" {
		t.Fatalf("first turn = %+v, want user utterance", got[0])
	}
	if got[1].Role != RoleAssistant || got[1].Text != "javob" {
		t.Fatalf("second turn = %+v, want assistant answer", got[1])
	}
}

func TestClearDropsOnlyThatUser(t *testing.T) {
	s := NewStore()
	s.AppendExchange("u1", "a", "b")
	s.AppendExchange("u2", "c", "d")

	s.Clear("u1")
	if got := s.History("u1", 0); len(got) != 0 {
		t.Fatalf("u1 history after Clear = %d turns, want 0", len(got))
	}
	if got := s.History("u2", 0); len(got) != 2 {
		t.Fatalf("u2 history after clearing u1 = %d turns, want 2", len(got))
	}
}

func TestConcurrentUsersDoNotInterleave(t *testing.T) {
	s := NewStore()
	const users = 8
	const exchanges = 25

	var wg sync.WaitGroup
	for u := 0; u < users; u++ {
		wg.Add(1)
		go func(u int) {
			defer wg.Done()
			userID := fmt.Sprintf("user-%d", u)
			for i := 0; i < exchanges; i++ {
				s.AppendExchange(userID, fmt.Sprintf("q-%d-%d", u, i), fmt.Sprintf("a-%d-%d", u, i))
			}
		}(u)
	}
	wg.Wait()

	for u := 0; u < users; u++ {
		userID := fmt.Sprintf("user-%d", u)
		got := s.History(userID, 0)
		if len(got) != 10 {
			t.Fatalf("%s history = %d turns, want 10", userID, len(got))
		}
		for i := 0; i < len(got); i += 2 {
			if got[i].Role != RoleUser || got[i+1].Role != RoleAssistant {
				t.Fatalf("%s roles interleaved at %d: %q/%q", userID, i, got[i].Role, got[i+1].Role)
			}
			wantPrefix := fmt.Sprintf("q-%d-", u)
			if len(got[i].Text) < len(wantPrefix) || got[i].Text[:len(wantPrefix)] != wantPrefix {
				t.Fatalf("%s got foreign turn %q", userID, got[i].Text)
			}
		}
	}
}

func TestHistoryReturnsCopy(t *testing.T) {
	s := NewStore()
	s.Append("u1", RoleUser, "original")

	got := s.History("u1", 0)
	got[0].Text = "mutated"
	if again := s.History("u1", 0); again[0].Text != "original" {
		t.Fatalf("History should return an isolated copy, got %q", again[0].Text)
	}
}
