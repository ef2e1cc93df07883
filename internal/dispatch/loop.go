// Package dispatch provides the serial run loop that stands in for the
// UI thread: all view-model and coordinator state lives on one loop, and
// background work posts its results back before touching shared state.
package dispatch

import "sync"

// Loop executes submitted tasks one at a time, in submission order, on a
// single dedicated goroutine.
type Loop struct {
	tasks chan func()

	closeOnce sync.Once
	done      chan struct{}
}

// NewLoop starts the loop goroutine and returns the loop.
func NewLoop() *Loop {
	l := &Loop{
		tasks: make(chan func(), 64),
		done:  make(chan struct{}),
	}
	go l.run()
	return l
}

func (l *Loop) run() {
	defer close(l.done)
	for task := range l.tasks {
		task()
	}
}

// Post schedules fn to run on the loop and returns immediately.
// Posting to a closed loop panics, same as sending on a closed channel.
func (l *Loop) Post(fn func()) {
	l.tasks <- fn
}

// Do runs fn on the loop and waits for it to finish. Calling Do from a
// task already running on the loop would deadlock; callers are expected
// to know which side they are on.
func (l *Loop) Do(fn func()) {
	ran := make(chan struct{})
	l.tasks <- func() {
		defer close(ran)
		fn()
	}
	<-ran
}

// Close stops accepting tasks, drains the ones already queued, and waits
// for the loop goroutine to exit.
func (l *Loop) Close() {
	l.closeOnce.Do(func() {
		close(l.tasks)
	})
	<-l.done
}
