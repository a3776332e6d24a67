// Package sched paces outgoing chat messages so replies arrive at a human
// typing speed instead of instantly.
package sched

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Scheduler delivers queued messages in FIFO order after a simulated typing
// delay proportional to message length.
type Scheduler struct {
	mu      sync.Mutex
	queue   []string
	wake    chan struct{}
	done    chan struct{}
	stopped bool

	minDelay time.Duration
	perChar  time.Duration
	deliver  func(text string)
	log      *zap.Logger
}

// New creates a scheduler delivering through fn. charsPerSecond <= 0 falls
// back to a plausible typing rate.
func New(minDelay time.Duration, charsPerSecond int, fn func(text string), log *zap.Logger) *Scheduler {
	if charsPerSecond <= 0 {
		charsPerSecond = 18
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{
		wake:     make(chan struct{}, 1),
		done:     make(chan struct{}),
		minDelay: minDelay,
		perChar:  time.Second / time.Duration(charsPerSecond),
		deliver:  fn,
		log:      log,
	}
}

// Delay returns the simulated typing time for text.
func (s *Scheduler) Delay(text string) time.Duration {
	return s.minDelay + time.Duration(len(text))*s.perChar
}

// Queue enqueues one message. Messages queued after Stop are dropped.
func (s *Scheduler) Queue(text string) {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.queue = append(s.queue, text)
	s.mu.Unlock()
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Start runs the delivery loop. The returned stop func ends it; pending
// messages are dropped, and stopping twice is fine.
func (s *Scheduler) Start() (stop func()) {
	go s.loop()
	var once sync.Once
	return func() {
		once.Do(func() { close(s.done) })
	}
}

func (s *Scheduler) loop() {
	for {
		s.mu.Lock()
		var text string
		ok := len(s.queue) > 0
		if ok {
			text = s.queue[0]
			s.queue = s.queue[1:]
		}
		s.mu.Unlock()

		if !ok {
			select {
			case <-s.wake:
				continue
			case <-s.done:
				s.markStopped()
				return
			}
		}

		timer := time.NewTimer(s.Delay(text))
		select {
		case <-timer.C:
			s.log.Debug("delivering", zap.Int("chars", len(text)))
			s.deliver(text)
		case <-s.done:
			timer.Stop()
			s.markStopped()
			return
		}
	}
}

func (s *Scheduler) markStopped() {
	s.mu.Lock()
	s.stopped = true
	s.queue = nil
	s.mu.Unlock()
}
