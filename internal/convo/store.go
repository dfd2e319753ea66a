package convo

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Turn roles. The model side is stored as "assistant" regardless of what the
// provider calls it on the wire.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// storedTurnLimit bounds what we keep per user; PromptTurnLimit bounds what
// the composer sends. Storage keeps slightly more than is sent so a windowing
// tweak cannot silently lose turns.
const (
	storedTurnLimit = 10
	PromptTurnLimit = 5
)

// Turn is one stored conversational message.
type Turn struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Store keeps a bounded rolling history per user. State is process-local by
// design: losing it on restart is an accepted trade-off, not a bug.
type Store struct {
	mu    sync.RWMutex
	turns map[string][]Turn
}

func NewStore() *Store {
	return &Store{turns: make(map[string][]Turn)}
}

// Append records one turn and trims to the storage cap.
func (s *Store) Append(userID, role, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appendLocked(userID, role, text)
}

// AppendExchange records the user utterance and the assistant answer as one
// atomic step, so no reader ever observes a half-recorded exchange.
func (s *Store) AppendExchange(userID, utterance, answer string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appendLocked(userID, RoleUser, utterance)
	s.appendLocked(userID, RoleAssistant, answer)
}

func (s *Store) appendLocked(userID, role, text string) {
	turns := append(s.turns[userID], Turn{
		ID:        uuid.NewString(),
		Role:      role,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	})
	if len(turns) > storedTurnLimit {
		turns = turns[len(turns)-storedTurnLimit:]
	}
	s.turns[userID] = turns
}

// History returns up to limit most recent turns, oldest first. limit <= 0
// returns everything stored.
func (s *Store) History(userID string, limit int) []Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()

	turns := s.turns[userID]
	if len(turns) == 0 {
		return nil
	}
	if limit <= 0 || limit > len(turns) {
		limit = len(turns)
	}
	out := make([]Turn, limit)
	copy(out, turns[len(turns)-limit:])
	return out
}

// Clear drops a user's history, e.g. on an explicit restart command.
func (s *Store) Clear(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.turns, userID)
}
