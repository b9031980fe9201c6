package detection

import (
	"context"
)

// Run drains the queue until ctx is cancelled, sleeping while it is empty
func (q *Queue) Run(ctx context.Context) {
	for {
		for q.ProcessNext(ctx) {
			if ctx.Err() != nil {
				return
			}
		}

		select {
		case <-q.wake:
		case <-ctx.Done():
			return
		}
	}
}

// Start launches the background worker. Calling Start on a running queue is a no-op.
func (q *Queue) Start() {
	q.lifecycle.Lock()
	defer q.lifecycle.Unlock()

	if q.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	q.cancel = cancel
	q.done = done

	go func() {
		defer close(done)
		q.Run(ctx)
	}()
}

// Stop cancels the worker and waits for it to exit. The in-flight fetch is aborted.
func (q *Queue) Stop() {
	q.lifecycle.Lock()
	defer q.lifecycle.Unlock()

	if q.cancel == nil {
		return
	}

	q.cancel()
	<-q.done
	q.cancel = nil
	q.done = nil
}

// Running reports whether the background worker is active
func (q *Queue) Running() bool {
	q.lifecycle.Lock()
	defer q.lifecycle.Unlock()
	return q.cancel != nil
}
