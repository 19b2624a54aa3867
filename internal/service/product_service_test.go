package service

import (
	"context"
	"testing"

	"product-gateway/internal/model"
	"product-gateway/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService() *ProductService {
	return NewProductService(store.NewMemory())
}

func TestCreateThenGetRoundTrip(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	created, err := svc.Create(ctx, &model.Product{ID: 1, Stock: 10, Price: 99.99})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)

	got, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 99.99, got.Price)
	assert.Equal(t, int32(10), got.Stock)
}

func TestCreateRoundsPrice(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	created, err := svc.Create(ctx, &model.Product{ID: 1, Stock: 1, Price: 10.999})
	require.NoError(t, err)
	assert.Equal(t, 11.0, created.Price)

	got, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, created.Price, got.Price)
}

func TestCreateDuplicateConflictLeavesRecordUnchanged(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.Create(ctx, &model.Product{ID: 1, Stock: 10, Price: 99.99, Name: "original"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, &model.Product{ID: 1, Stock: 0, Price: 1, Name: "intruder"})
	var domainErr *Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, KindConflict, domainErr.Kind)

	got, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "original", got.Name)
	assert.Equal(t, int32(10), got.Stock)
	assert.Equal(t, 99.99, got.Price)
}

func TestCreateValidation(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	cases := []struct {
		name string
		p    model.Product
	}{
		{"zero id", model.Product{ID: 0, Stock: 1, Price: 1}},
		{"negative id", model.Product{ID: -1, Stock: 1, Price: 1}},
		{"negative stock", model.Product{ID: 1, Stock: -5, Price: 1}},
		{"zero price", model.Product{ID: 1, Stock: 1, Price: 0}},
		{"negative price", model.Product{ID: 1, Stock: 1, Price: -10.0}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, &tc.p)
			var domainErr *Error
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, KindValidation, domainErr.Kind)
		})
	}

	// Rejected creates must not leak into the store.
	products, total, err := svc.List(ctx, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, products)
	assert.Equal(t, 0, total)
}

func TestGetValidatesID(t *testing.T) {
	svc := newService()

	_, err := svc.Get(context.Background(), 0)
	var domainErr *Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, KindValidation, domainErr.Kind)
}

func TestGetNotFound(t *testing.T) {
	svc := newService()

	_, err := svc.Get(context.Background(), 999)
	var domainErr *Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, KindNotFound, domainErr.Kind)
	assert.Equal(t, "Product 999 not found", domainErr.Message)
}

func TestUpdateStockReplacesOnlyStock(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.Create(ctx, &model.Product{ID: 1, Stock: 10, Price: 99.99, Name: "widget", Description: "a widget"})
	require.NoError(t, err)

	updated, err := svc.UpdateStock(ctx, 1, 15)
	require.NoError(t, err)
	assert.Equal(t, int32(15), updated.Stock)
	assert.Equal(t, 99.99, updated.Price)
	assert.Equal(t, "widget", updated.Name)
	assert.Equal(t, "a widget", updated.Description)
}

func TestUpdateStockValidation(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.UpdateStock(ctx, 0, 5)
	var domainErr *Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, KindValidation, domainErr.Kind)

	_, err = svc.UpdateStock(ctx, 1, -1)
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, KindValidation, domainErr.Kind)
}

func TestUpdateStockNotFound(t *testing.T) {
	svc := newService()

	_, err := svc.UpdateStock(context.Background(), 42, 5)
	var domainErr *Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, KindNotFound, domainErr.Kind)
}

func TestDeleteTwiceIsNotFoundBothTimes(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	var domainErr *Error
	err := svc.Delete(ctx, 7)
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, KindNotFound, domainErr.Kind)

	_, err = svc.Create(ctx, &model.Product{ID: 7, Stock: 1, Price: 1})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, 7))

	err = svc.Delete(ctx, 7)
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, KindNotFound, domainErr.Kind)
}

func TestListOrderingAndPagination(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	for _, id := range []int64{3, 1, 2} {
		_, err := svc.Create(ctx, &model.Product{ID: id, Stock: 1, Price: 1})
		require.NoError(t, err)
	}

	products, total, err := svc.List(ctx, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, products, 3)
	assert.Equal(t, int64(1), products[0].ID)
	assert.Equal(t, int64(2), products[1].ID)
	assert.Equal(t, int64(3), products[2].ID)

	products, total, err = svc.List(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, products, 1)
	assert.Equal(t, int64(2), products[0].ID)
}

func TestListClampsLimitAndOffset(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	for id := int64(1); id <= 3; id++ {
		_, err := svc.Create(ctx, &model.Product{ID: id, Stock: 1, Price: 1})
		require.NoError(t, err)
	}

	// Non-positive limit falls back to the default, negative offset to 0.
	products, total, err := svc.List(ctx, 0, -5)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, products, 3)
	assert.Equal(t, int64(1), products[0].ID)
}
