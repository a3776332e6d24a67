package sched

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDelayScalesWithLength(t *testing.T) {
	s := New(100*time.Millisecond, 10, func(string) {}, nil)
	assert.Equal(t, 100*time.Millisecond, s.Delay(""))
	assert.Equal(t, 600*time.Millisecond, s.Delay("fivec"))
}

func TestDeliversInOrder(t *testing.T) {
	var mu sync.Mutex
	var got []string
	delivered := make(chan struct{}, 8)

	s := New(0, 100000, func(text string) {
		mu.Lock()
		got = append(got, text)
		mu.Unlock()
		delivered <- struct{}{}
	}, nil)
	stop := s.Start()
	defer stop()

	s.Queue("first")
	s.Queue("second")
	s.Queue("third")

	for i := 0; i < 3; i++ {
		select {
		case <-delivered:
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for delivery")
		}
	}
	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []string{"first", "second", "third"}, got)
}

func TestStopDropsPending(t *testing.T) {
	s := New(time.Hour, 1, func(string) { t.Error("nothing should be delivered") }, nil)
	stop := s.Start()
	s.Queue("never")
	stop()
	stop() // idempotent

	time.Sleep(20 * time.Millisecond)
	s.Queue("after stop")
	s.mu.Lock()
	defer s.mu.Unlock()
	assert.True(t, s.stopped)
	assert.Empty(t, s.queue)
}
