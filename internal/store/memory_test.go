package store

import (
	"context"
	"sync"
	"testing"

	"product-gateway/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryPutGetRoundTrip(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	p := &model.Product{ID: 1, Stock: 10, Price: 99.99, Name: "widget", Description: "a widget"}
	require.NoError(t, s.Put(ctx, p))

	got, ok, err := s.Get(ctx, 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, *p, *got)
}

func TestMemoryGetAbsentIsNotAnError(t *testing.T) {
	s := NewMemory()

	got, ok, err := s.Get(context.Background(), 999)
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestMemoryPutIfAbsent(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	stored, err := s.PutIfAbsent(ctx, &model.Product{ID: 1, Stock: 10, Price: 99.99, Name: "original"})
	require.NoError(t, err)
	assert.True(t, stored)

	stored, err = s.PutIfAbsent(ctx, &model.Product{ID: 1, Stock: 0, Price: 1, Name: "intruder"})
	require.NoError(t, err)
	assert.False(t, stored)

	// The stored record must be unchanged by the rejected put.
	got, ok, err := s.Get(ctx, 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "original", got.Name)
	assert.Equal(t, int32(10), got.Stock)
}

func TestMemoryDeleteReportsRemoval(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, &model.Product{ID: 1, Stock: 1, Price: 1}))

	removed, err := s.Delete(ctx, 1)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = s.Delete(ctx, 1)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestMemoryListOrdersByIDRegardlessOfInsertion(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	for _, id := range []int64{3, 1, 2} {
		require.NoError(t, s.Put(ctx, &model.Product{ID: id, Stock: 1, Price: 1}))
	}

	products, err := s.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, int64(1), products[0].ID)
	assert.Equal(t, int64(2), products[1].ID)
	assert.Equal(t, int64(3), products[2].ID)
}

func TestMemoryListPagination(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	for id := int64(1); id <= 5; id++ {
		require.NoError(t, s.Put(ctx, &model.Product{ID: id, Stock: 1, Price: 1}))
	}

	page, err := s.List(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, int64(2), page[0].ID)

	page, err = s.List(ctx, 2, 3)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, int64(4), page[0].ID)
	assert.Equal(t, int64(5), page[1].ID)

	// Offset past the end yields an empty page, not an error.
	page, err = s.List(ctx, 10, 100)
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestMemoryCount(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	require.NoError(t, s.Put(ctx, &model.Product{ID: 1, Stock: 1, Price: 1}))
	require.NoError(t, s.Put(ctx, &model.Product{ID: 2, Stock: 1, Price: 1}))

	n, err = s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestMemoryReturnsCopies(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, &model.Product{ID: 1, Stock: 10, Price: 1}))

	got, _, err := s.Get(ctx, 1)
	require.NoError(t, err)
	got.Stock = 999

	again, _, err := s.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int32(10), again.Stock)
}

func TestMemoryConcurrentAccess(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := int64(1); i <= 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			_ = s.Put(ctx, &model.Product{ID: id, Stock: 1, Price: 1})
			_, _, _ = s.Get(ctx, id)
			_, _ = s.List(ctx, 10, 0)
		}(i)
	}
	wg.Wait()

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 50, n)
}
