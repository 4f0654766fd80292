package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStackLIFO(t *testing.T) {
	s := NewStack[int]()
	assert.Equal(t, 0, s.Size())
	assert.Equal(t, 0, s.Pop())

	s.Push(1)
	s.Push(2)
	s.Push(3)
	assert.Equal(t, 3, s.Size())
	assert.Equal(t, 3, s.Pop())
	assert.Equal(t, 2, s.Pop())

	s.Push(4)
	assert.Equal(t, 4, s.Pop())
	assert.Equal(t, 1, s.Pop())
	assert.Equal(t, 0, s.Size())
}

func TestQueueFIFO(t *testing.T) {
	q := NewQueue[string]()
	assert.Equal(t, "", q.Pop())

	q.Push("a")
	q.Push("b")
	q.Push("c")
	assert.Equal(t, "a", q.Pop())
	assert.Equal(t, "b", q.Pop())

	q.Push("d")
	assert.Equal(t, "c", q.Pop())
	assert.Equal(t, "d", q.Pop())
	assert.Equal(t, 0, q.Size())
}

func TestDequeInterface(t *testing.T) {
	var d Deque[int] = NewStack[int]()
	d.Push(5)
	assert.Equal(t, 5, d.Pop())

	d = NewQueue[int]()
	d.Push(6)
	assert.Equal(t, 6, d.Pop())
}
