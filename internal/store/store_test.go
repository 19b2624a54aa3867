package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProductKey(t *testing.T) {
	assert.Equal(t, "product:1", productKey(1))
	assert.Equal(t, "product:1234567890", productKey(1234567890))
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	assert.Equal(t, []int{1, 2, 3, 4, 5}, paginate(items, 10, 0))
	assert.Equal(t, []int{2}, paginate(items, 1, 1))
	assert.Equal(t, []int{4, 5}, paginate(items, 10, 3))
	assert.Nil(t, paginate(items, 10, 5))
	assert.Nil(t, paginate([]int{}, 10, 0))
}

func TestNewFallsBackWhenRedisUnreachable(t *testing.T) {
	// Port 1 is never a Redis endpoint; the ping fails and the store
	// degrades to the in-memory variant.
	s := New(context.Background(), "127.0.0.1:1", 0)
	assert.Equal(t, BackendMemory, s.Backend())
	assert.NoError(t, s.Ping(context.Background()))
}
