package game

import "sync"

type frameRequest struct {
	fn        func()
	cancelled bool
}

// FrameQueue is a Scheduler driven by the host's tick. Callbacks requested
// during a Flush run on the following Flush, never the current one.
type FrameQueue struct {
	mu      sync.Mutex
	pending []*frameRequest
}

// RequestFrame queues fn for the next Flush.
func (q *FrameQueue) RequestFrame(fn func()) (cancel func()) {
	req := &frameRequest{fn: fn}
	q.mu.Lock()
	q.pending = append(q.pending, req)
	q.mu.Unlock()
	return func() {
		q.mu.Lock()
		req.cancelled = true
		q.mu.Unlock()
	}
}

// Flush runs every callback queued before the call and returns how many ran.
func (q *FrameQueue) Flush() int {
	q.mu.Lock()
	batch := q.pending
	q.pending = nil
	q.mu.Unlock()

	ran := 0
	for _, req := range batch {
		q.mu.Lock()
		skip := req.cancelled
		q.mu.Unlock()
		if skip {
			continue
		}
		req.fn()
		ran++
	}
	return ran
}

// Len returns the number of live queued callbacks.
func (q *FrameQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := 0
	for _, req := range q.pending {
		if !req.cancelled {
			n++
		}
	}
	return n
}
