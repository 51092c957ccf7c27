package out

import (
	"sync"
	"time"

	"mente/internal/modules/session/domain"
)

// TimerScheduler runs session timers on time.AfterFunc goroutines. Every fired
// timer is also published on Fired so a line-based UI can redraw.
type TimerScheduler struct {
	mu      sync.Mutex
	pending map[string]map[*time.Timer]struct{}
	fired   chan domain.Timer
}

func NewTimerScheduler() *TimerScheduler {
	return &TimerScheduler{
		pending: map[string]map[*time.Timer]struct{}{},
		fired:   make(chan domain.Timer, 8),
	}
}

func (s *TimerScheduler) Schedule(timer domain.Timer, fire func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var t *time.Timer
	t = time.AfterFunc(timer.Delay, func() {
		s.mu.Lock()
		live := s.releaseLocked(timer.Token, t)
		s.mu.Unlock()
		if !live {
			return
		}
		fire()
		select {
		case s.fired <- timer:
		default:
		}
	})
	set, ok := s.pending[timer.Token]
	if !ok {
		set = map[*time.Timer]struct{}{}
		s.pending[timer.Token] = set
	}
	set[t] = struct{}{}
}

func (s *TimerScheduler) Cancel(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for t := range s.pending[token] {
		t.Stop()
	}
	delete(s.pending, token)
}

// Stop cancels everything still pending.
func (s *TimerScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for token, set := range s.pending {
		for t := range set {
			t.Stop()
		}
		delete(s.pending, token)
	}
}

func (s *TimerScheduler) Fired() <-chan domain.Timer {
	return s.fired
}

// Pending reports how many timers are waiting for token.
func (s *TimerScheduler) Pending(token string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending[token])
}

// releaseLocked drops t from the pending set. It reports false when t was
// cancelled after its goroutine had already started.
func (s *TimerScheduler) releaseLocked(token string, t *time.Timer) bool {
	set, ok := s.pending[token]
	if !ok {
		return false
	}
	if _, ok := set[t]; !ok {
		return false
	}
	delete(set, t)
	if len(set) == 0 {
		delete(s.pending, token)
	}
	return true
}
