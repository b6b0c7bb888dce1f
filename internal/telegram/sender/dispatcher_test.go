package sender

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestEnqueueRunsJobs(t *testing.T) {
	d := NewDispatcher(Options{Workers: 2, QueueSize: 8})
	defer d.Close()

	var ran atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		err := d.Enqueue(context.Background(), "send.text", func() error {
			defer wg.Done()
			ran.Add(1)
			return nil
		})
		if err != nil {
			t.Fatalf("Enqueue: %v", err)
		}
	}
	wg.Wait()
	if ran.Load() != 5 {
		t.Errorf("ran = %d, want 5", ran.Load())
	}
	if d.ErrorCount() != 0 {
		t.Errorf("error count = %d, want 0", d.ErrorCount())
	}
}

func TestEnqueueNilRun(t *testing.T) {
	d := NewDispatcher(Options{})
	defer d.Close()
	if err := d.Enqueue(context.Background(), "noop", nil); err == nil {
		t.Error("nil run must be rejected")
	}
}

func TestEnqueueAfterClose(t *testing.T) {
	d := NewDispatcher(Options{})
	d.Close()
	err := d.Enqueue(context.Background(), "send.text", func() error { return nil })
	if !errors.Is(err, ErrQueueClosed) {
		t.Errorf("err = %v, want ErrQueueClosed", err)
	}
}

func TestFailedJobsAreCounted(t *testing.T) {
	d := NewDispatcher(Options{Workers: 1, MaxRetries: 0})

	var wg sync.WaitGroup
	wg.Add(1)
	_ = d.Enqueue(context.Background(), "send.text", func() error {
		defer wg.Done()
		return errors.New("blocked by user")
	})
	wg.Wait()
	d.Close()

	if d.ErrorCount() != 1 {
		t.Errorf("error count = %d, want 1", d.ErrorCount())
	}
}

func TestQueueFull(t *testing.T) {
	d := NewDispatcher(Options{Workers: 1, QueueSize: 1})
	defer d.Close()

	release := make(chan struct{})
	// Occupy the single worker.
	_ = d.Enqueue(context.Background(), "slow", func() error {
		<-release
		return nil
	})

	// Fill the queue, then expect ErrQueueFull. The worker may have picked
	// up the first job already, so allow one extra successful enqueue.
	var sawFull bool
	for i := 0; i < 3; i++ {
		if err := d.Enqueue(context.Background(), "fill", func() error { return nil }); errors.Is(err, ErrQueueFull) {
			sawFull = true
			break
		}
	}
	close(release)
	if !sawFull {
		t.Error("expected ErrQueueFull on saturated queue")
	}
	// Allow workers to drain before Close.
	time.Sleep(10 * time.Millisecond)
}
