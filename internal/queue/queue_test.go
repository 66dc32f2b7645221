package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueue(t *testing.T) {
	var q Queue[int]
	assert.True(t, q.Empty())
	assert.Equal(t, 0, q.Len())

	q.Push(1)
	assert.False(t, q.Empty())
	assert.Equal(t, 1, q.Pop())
	assert.True(t, q.Empty())

	q.Push(2)
	q.Push(3)
	assert.Equal(t, 2, q.Len())

	assert.Equal(t, 2, q.Pop())
	q.Push(4)
	assert.Equal(t, 3, q.Pop())
	assert.Equal(t, 4, q.Pop())
	assert.True(t, q.Empty())

	assert.Panics(t, func() { q.Pop() })
}
