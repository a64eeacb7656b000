package billing

import "fmt"

// State is the session lifecycle position.
type State int

const (
	// StateAnonymous means no token is held.
	StateAnonymous State = iota
	// StateRestoring means a persisted token was found and the identity
	// fetch is in flight.
	StateRestoring
	// StateAuthenticated means a token is held and attached to every call.
	StateAuthenticated
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateRestoring:
		return "restoring"
	case StateAuthenticated:
		return "authenticated"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Session tracks the bearer token lifecycle for a Client. It is an
// explicit object with an explicit state machine rather than ambient
// client-global mutation; the Client serializes access to it, matching
// the single in-flight call model of the API surface.
type Session struct {
	store    TokenStore
	token    string
	loaded   bool
	state    State
	identity *User
}

// NewSession returns an anonymous session backed by the given store.
func NewSession(store TokenStore) *Session {
	if store == nil {
		store = &MemStore{}
	}
	return &Session{store: store}
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Identity returns the authenticated user, or nil when anonymous.
func (s *Session) Identity() *User {
	return s.identity
}

// Token returns the current bearer token, reading it from the store on
// first use so a fresh process can pick up a persisted session.
func (s *Session) Token() string {
	if !s.loaded {
		token, err := s.store.Get()
		if err == nil {
			s.token = token
		}
		s.loaded = true
	}
	return s.token
}

// SetToken stores the token and identity, writing through to persistent
// storage immediately, and moves the session to Authenticated.
func (s *Session) SetToken(token string, identity *User) error {
	if err := s.store.Set(token); err != nil {
		return err
	}
	s.token = token
	s.loaded = true
	s.state = StateAuthenticated
	s.identity = identity
	return nil
}

// Clear discards the token in memory and in persistent storage and moves
// the session back to Anonymous.
func (s *Session) Clear() error {
	err := s.store.Clear()
	s.token = ""
	s.loaded = true
	s.state = StateAnonymous
	s.identity = nil
	return err
}

// beginRestore marks the session as restoring. It reports whether a
// persisted token exists to restore from.
func (s *Session) beginRestore() bool {
	if s.Token() == "" {
		s.state = StateAnonymous
		return false
	}
	s.state = StateRestoring
	return true
}

// completeRestore finishes a restore attempt with the fetched identity.
func (s *Session) completeRestore(identity *User) {
	s.identity = identity
	s.state = StateAuthenticated
}
