package testkit

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestMustPanic(t *testing.T) {
	t.Parallel()

	MustPanic(t, func() { panic("boom") })
}

func TestMustNotPanic(t *testing.T) {
	t.Parallel()

	MustNotPanic(t, func() {})
}

func TestMustContain(t *testing.T) {
	t.Parallel()

	MustContain(t, "score=92 tier=top", "tier=top")
}

func TestEventually(t *testing.T) {
	t.Parallel()

	var flag atomic.Bool
	go func() {
		time.Sleep(20 * time.Millisecond)
		flag.Store(true)
	}()
	Eventually(t, time.Second, flag.Load)
}

func TestNoLeaks_FinishedGoroutine(t *testing.T) {
	NoLeaks(t)

	done := make(chan struct{})
	go func() { close(done) }()
	<-done
}
