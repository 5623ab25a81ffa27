package ammo

import "sync"

// trampoline drives a chain of continuation-passing calls. step(i, next) is
// invoked with increasing i; next(true) moves on to i+1 and next(false) ends
// the chain by calling stop. When next is called before step returns the
// driver loops instead of recursing, so long synchronous chains do not grow
// the stack. When next is called later, from any goroutine, the chain resumes
// on that goroutine.
type trampoline struct {
	step func(i int, next func(more bool))
	stop func()

	// dup is called with the step index when next is called more than once.
	dup func(i int)
}

type settlement struct {
	mu      sync.Mutex
	inline  bool
	settled bool
	more    bool
}

func (t *trampoline) run(i int) {
	for {
		s := &settlement{inline: true}
		idx := i
		t.step(idx, func(more bool) {
			s.mu.Lock()
			if s.settled {
				s.mu.Unlock()
				if t.dup != nil {
					t.dup(idx)
				}
				return
			}
			s.settled, s.more = true, more
			inline := s.inline
			s.mu.Unlock()

			if inline {
				return
			}
			if more {
				t.run(idx + 1)
				return
			}
			t.finish()
		})

		s.mu.Lock()
		s.inline = false
		settled, more := s.settled, s.more
		s.mu.Unlock()

		if !settled {
			return
		}
		if !more {
			t.finish()
			return
		}
		i++
	}
}

func (t *trampoline) finish() {
	if t.stop != nil {
		t.stop()
	}
}
