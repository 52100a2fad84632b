// Package runbus - bus.go implements the per-run FIFO queues and streaming.
package runbus

import (
	"context"
	"sync"
)

// queue is an unbounded FIFO of serialized frames. Emit never blocks;
// frames accumulate until consumed or the queue is dropped.
type queue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	frames [][]byte
	closed bool
}

func newQueue() *queue {
	q := &queue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

func (q *queue) push(frame []byte) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.frames = append(q.frames, frame)
	q.cond.Broadcast()
}

// pop blocks until a frame is available, the queue is closed, or done is
// signalled. The second return is false when no more frames will arrive.
func (q *queue) pop(done <-chan struct{}) ([]byte, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.frames) == 0 {
		if q.closed {
			return nil, false
		}
		select {
		case <-done:
			return nil, false
		default:
		}
		q.cond.Wait()
	}
	frame := q.frames[0]
	q.frames = q.frames[1:]
	return frame, true
}

func (q *queue) close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.cond.Broadcast()
}

// Bus is a registry of per-run event queues. Queues are allocated lazily on
// first reference to a run ID and live until Drop is called by the run
// registry at teardown. Dropped IDs are remembered so a late emit from a
// cancelled worker cannot resurrect a queue nothing will ever tear down.
// Events for one run are delivered to its consumers in emission order; no
// ordering holds across runs.
type Bus struct {
	mu      sync.Mutex
	queues  map[string]*queue
	dropped map[string]struct{}
}

// New creates an empty bus.
func New() *Bus {
	return &Bus{queues: make(map[string]*queue), dropped: make(map[string]struct{})}
}

// queue returns the run's live queue, or nil when the run was dropped.
func (b *Bus) queue(runID string) *queue {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, gone := b.dropped[runID]; gone {
		return nil
	}
	q, ok := b.queues[runID]
	if !ok {
		q = newQueue()
		b.queues[runID] = q
	}
	return q
}

// Emit enqueues an envelope for the run. It never blocks the producer.
// Emits for a dropped run are discarded.
func (b *Bus) Emit(runID string, env Envelope) {
	if q := b.queue(runID); q != nil {
		q.push(env.Frame())
	}
}

// Stream returns a channel of serialized SSE frames for the run. Frames are
// delivered FIFO; the channel closes when ctx is cancelled or the run's
// queue is dropped. Multiple concurrent consumers compete for frames.
func (b *Bus) Stream(ctx context.Context, runID string) <-chan []byte {
	q := b.queue(runID)
	out := make(chan []byte)
	if q == nil {
		close(out)
		return out
	}

	// Wake the blocked pop when the consumer goes away.
	stop := context.AfterFunc(ctx, func() {
		q.mu.Lock()
		q.cond.Broadcast()
		q.mu.Unlock()
	})

	go func() {
		defer close(out)
		defer stop()
		for {
			frame, ok := q.pop(ctx.Done())
			if !ok {
				return
			}
			select {
			case out <- frame:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Drop releases the run's queue and unblocks any streaming consumers. The ID
// is tombstoned: later Emit calls are discarded and later Stream calls get an
// already-closed channel. Called by the run registry when a run is released.
func (b *Bus) Drop(runID string) {
	b.mu.Lock()
	q, ok := b.queues[runID]
	delete(b.queues, runID)
	b.dropped[runID] = struct{}{}
	b.mu.Unlock()
	if ok {
		q.close()
	}
}
