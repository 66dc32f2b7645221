package queue

import "errors"

// Queue is a FIFO worklist. The zero value is an empty queue.
//
// Popped slots are not released until the queue drains, which is fine for
// the short-lived traversal worklists this is used for.
type Queue[E any] struct {
	elements []E
	head     int
}

func (q *Queue[E]) Push(e E) {
	q.elements = append(q.elements, e)
}

func (q *Queue[E]) Empty() bool {
	return q.head == len(q.elements)
}

func (q *Queue[E]) Len() int {
	return len(q.elements) - q.head
}

var ErrEmpty = errors.New("Queue is empty")

func (q *Queue[E]) Pop() E {
	if q.Empty() {
		panic(ErrEmpty)
	}

	e := q.elements[q.head]
	q.head++
	if q.Empty() {
		q.elements = q.elements[:0]
		q.head = 0
	}
	return e
}
