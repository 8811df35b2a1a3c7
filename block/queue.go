package block

import "motioncore/core"

// QueueSize bounds the number of blocks the planner can have in flight.
// Grounded on the teacher's per-stepper move ring buffer sizing.
const QueueSize = 16

// Queue is a single-producer/single-consumer ring buffer of Blocks.
// Producer (foreground, the planner) calls Push; consumer (tick context)
// calls Current/Discard. Head/tail indices are only ever mutated under the
// critical section so a foreground reader of BlocksQueued never observes a
// torn update.
type Queue struct {
	slots [QueueSize]Block
	head  uint8 // next block to consume
	tail  uint8 // next free slot
}

// Push enqueues a block. Returns false if the queue is full; the caller
// (planner) is expected to back off and retry.
func (q *Queue) Push(b Block) bool {
	state := core.Lock()
	defer core.Unlock(state)

	next := (q.tail + 1) % QueueSize
	if next == q.head {
		return false
	}
	q.slots[q.tail] = b
	q.tail = next
	return true
}

// Current returns a pointer to the block at the head of the queue, or nil
// if empty. Called from tick context; the returned pointer is valid until
// the next Discard. Takes the same critical section Push and QuickStop use
// so a tick never observes a torn enqueue/dequeue on the host build, where
// the tick runs as an ordinary goroutine rather than a true hardware ISR.
func (q *Queue) Current() *Block {
	state := core.Lock()
	defer core.Unlock(state)
	if q.head == q.tail {
		return nil
	}
	return &q.slots[q.head]
}

// Discard removes the block just consumed. Called from tick context.
func (q *Queue) Discard() {
	state := core.Lock()
	defer core.Unlock(state)
	if q.head == q.tail {
		return
	}
	q.head = (q.head + 1) % QueueSize
}

// BlocksQueued reports whether any block remains, including the one
// currently in flight. Safe to call from foreground.
func (q *Queue) BlocksQueued() bool {
	state := core.Lock()
	defer core.Unlock(state)
	return q.head != q.tail
}

// QuickStop empties the queue immediately, discarding any in-flight block.
// Safe to call from foreground.
func (q *Queue) QuickStop() {
	state := core.Lock()
	defer core.Unlock(state)
	q.head = 0
	q.tail = 0
}
