package game

import (
	"sync"
	"time"

	"wordspy/internal/domain"
)

// phaseTimer drives one phase's countdown. A tick goroutine posts per-second
// updates and the final expiry into the session inbox; identity checks against
// session.timer suppress anything that fired before a cancel landed.
type phaseTimer struct {
	stop chan struct{}
	once sync.Once
}

func (t *phaseTimer) cancel() {
	t.once.Do(func() { close(t.stop) })
}

// startTimer replaces any running timer with a countdown for the given phase.
// The expiry callback runs on the actor goroutine exactly once, after the
// recurring tick has stopped. Must be called from the actor goroutine.
func (s *Session) startTimer(phase domain.Phase, duration time.Duration, expire func()) {
	s.stopTimer()

	t := &phaseTimer{stop: make(chan struct{})}
	s.timer = t

	timeLeft := int(duration / time.Second)
	s.broadcast(domain.NewEvent(domain.EventTimerUpdate, &domain.TimerUpdatePayload{Phase: phase, TimeLeft: timeLeft}))

	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()

		remaining := timeLeft
		for {
			select {
			case <-t.stop:
				return
			case <-s.done:
				return
			case <-ticker.C:
				remaining--
				if remaining <= 0 {
					s.post(func() {
						if s.timer != t {
							return // canceled after firing
						}
						s.timer = nil
						expire()
					})
					return
				}
				left := remaining
				s.post(func() {
					if s.timer != t {
						return
					}
					s.broadcast(domain.NewEvent(domain.EventTimerUpdate, &domain.TimerUpdatePayload{Phase: phase, TimeLeft: left}))
				})
			}
		}
	}()
}

// stopTimer cancels the running timer, if any. Safe to call redundantly.
// Must be called from the actor goroutine.
func (s *Session) stopTimer() {
	if s.timer != nil {
		s.timer.cancel()
		s.timer = nil
	}
}
