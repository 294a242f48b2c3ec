package dialog

import (
	"context"
	"sync"

	"github.com/BagunasJohnrey/AERO-CHAT-BOT-TG/internal/render"
)

// Sessions owns the per-conversation contexts and serializes event
// handling per conversation while letting distinct conversations run
// fully in parallel.
type Sessions struct {
	ctrl *Controller

	mu sync.Mutex
	m  map[int64]*session
}

type session struct {
	mu   sync.Mutex
	conv Context
}

// NewSessions builds an empty session store over the controller.
func NewSessions(ctrl *Controller) *Sessions {
	return &Sessions{
		ctrl: ctrl,
		m:    make(map[int64]*session),
	}
}

func (s *Sessions) session(convID int64) *session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.m[convID]
	if !ok {
		sess = &session{conv: Context{State: StateMainMenu}}
		s.m[convID] = sess
	}
	return sess
}

// Dispatch handles one event for the conversation. At most one event is
// in flight per conversation; callers from other conversations are
// never blocked.
func (s *Sessions) Dispatch(ctx context.Context, convID int64, ev Event) render.Reply {
	sess := s.session(convID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.ctrl.Handle(ctx, &sess.conv, ev)
}

// InProgress reports whether the conversation is waiting for text input.
func (s *Sessions) InProgress(convID int64) bool {
	s.mu.Lock()
	sess, ok := s.m[convID]
	s.mu.Unlock()
	if !ok {
		return false
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.conv.State != StateMainMenu
}

// Count returns the number of known conversations.
func (s *Sessions) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.m)
}
