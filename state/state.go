package state

import "sync"

// AppState holds runtime application state: the set of persisted chat
// sessions with a round currently in flight. A session never runs two
// rounds at once, so replies from overlapping rounds cannot interleave in
// the transcript.
type AppState struct {
	ActiveRounds map[uint]bool
	sync.RWMutex
}

// Global is the shared application state instance
var Global = &AppState{
	ActiveRounds: make(map[uint]bool),
}

// BeginRound marks a round in flight for the session. It returns false when
// the session already has one running.
func (s *AppState) BeginRound(sessionID uint) bool {
	s.Lock()
	defer s.Unlock()
	if s.ActiveRounds[sessionID] {
		return false
	}
	s.ActiveRounds[sessionID] = true
	return true
}

// EndRound clears the in-flight mark for the session.
func (s *AppState) EndRound(sessionID uint) {
	s.Lock()
	defer s.Unlock()
	delete(s.ActiveRounds, sessionID)
}

// RoundActive checks whether the session has a round in flight.
func (s *AppState) RoundActive(sessionID uint) bool {
	s.RLock()
	defer s.RUnlock()
	return s.ActiveRounds[sessionID]
}
