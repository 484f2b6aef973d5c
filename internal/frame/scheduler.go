package frame

// Handle identifies a requested frame. The zero Handle means "none".
type Handle uint64

// Scheduler is the display-refresh primitive: a callback requested now runs
// once on a later frame.
type Scheduler interface {
	RequestFrame(fn func()) Handle
	CancelFrame(h Handle)
}

type pending struct {
	handle Handle
	fn     func()
}

// Queue is a Scheduler that runs callbacks when Step is called. The game
// loop steps it once per tick; tests step it by hand.
type Queue struct {
	next    Handle
	pending []pending
}

func NewQueue() *Queue {
	return &Queue{}
}

func (q *Queue) RequestFrame(fn func()) Handle {
	q.next++
	q.pending = append(q.pending, pending{handle: q.next, fn: fn})
	return q.next
}

func (q *Queue) CancelFrame(h Handle) {
	for i, p := range q.pending {
		if p.handle == h {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
}

// Step runs the callbacks that were pending when it was called. Callbacks
// requested while stepping wait for the next Step. It returns how many ran.
func (q *Queue) Step() int {
	batch := q.pending
	q.pending = nil
	for _, p := range batch {
		p.fn()
	}
	return len(batch)
}

// Len reports the number of pending callbacks.
func (q *Queue) Len() int { return len(q.pending) }
