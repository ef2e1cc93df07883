package dispatch

import (
	"sync"
	"testing"
)

func TestLoopRunsTasksInOrder(t *testing.T) {
	l := NewLoop()
	defer l.Close()

	var got []int
	for i := 0; i < 100; i++ {
		i := i
		l.Post(func() { got = append(got, i) })
	}

	l.Do(func() {})

	if len(got) != 100 {
		t.Fatalf("expected 100 tasks, ran %d", len(got))
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("task order violated at %d: got %d", i, v)
		}
	}
}

func TestLoopSerializesConcurrentPosters(t *testing.T) {
	l := NewLoop()
	defer l.Close()

	// A plain int mutated from many goroutines is only safe if every
	// mutation actually runs on the loop.
	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Post(func() { counter++ })
		}()
	}
	wg.Wait()
	l.Do(func() {})

	if counter != 50 {
		t.Fatalf("expected counter 50, got %d", counter)
	}
}

func TestLoopDoWaitsForResult(t *testing.T) {
	l := NewLoop()
	defer l.Close()

	value := 0
	l.Do(func() { value = 42 })
	if value != 42 {
		t.Fatalf("Do returned before task ran")
	}
}

func TestLoopCloseDrainsQueue(t *testing.T) {
	l := NewLoop()

	ran := 0
	for i := 0; i < 10; i++ {
		l.Post(func() { ran++ })
	}
	l.Close()

	if ran != 10 {
		t.Fatalf("expected queued tasks to drain on close, ran %d", ran)
	}
}
