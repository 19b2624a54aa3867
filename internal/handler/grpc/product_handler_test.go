package grpc

import (
	"context"
	"testing"

	pb "product-gateway/internal/handler/grpc/pb"
	"product-gateway/internal/service"
	"product-gateway/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func newHandler() *ProductGRPCHandler {
	return NewProductGRPCHandler(service.NewProductService(store.NewMemory()))
}

func TestCreateProductSuccess(t *testing.T) {
	h := newHandler()

	resp, err := h.CreateProduct(context.Background(), &pb.Product{Id: 1, Stock: 10, Price: 99.99, Name: "widget"})
	require.NoError(t, err)
	assert.True(t, resp.GetSuccess())
	assert.Equal(t, "Product 1 created successfully", resp.GetMessage())
	assert.Equal(t, int64(1), resp.GetProduct().GetId())
	assert.Equal(t, 99.99, resp.GetProduct().GetPrice())
}

func TestCreateProductValidationCode(t *testing.T) {
	h := newHandler()

	_, err := h.CreateProduct(context.Background(), &pb.Product{Id: 1, Stock: -5, Price: 10})
	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestCreateProductConflictCode(t *testing.T) {
	h := newHandler()
	ctx := context.Background()

	_, err := h.CreateProduct(ctx, &pb.Product{Id: 1, Stock: 10, Price: 99.99})
	require.NoError(t, err)

	_, err = h.CreateProduct(ctx, &pb.Product{Id: 1, Stock: 5, Price: 10})
	require.Error(t, err)
	assert.Equal(t, codes.AlreadyExists, status.Code(err))
	assert.Equal(t, "Product 1 already exists", status.Convert(err).Message())
}

func TestGetProductNotFoundCode(t *testing.T) {
	h := newHandler()

	_, err := h.GetProduct(context.Background(), &pb.GetProductRequest{Id: 999})
	require.Error(t, err)
	assert.Equal(t, codes.NotFound, status.Code(err))
	assert.Equal(t, "Product 999 not found", status.Convert(err).Message())
}

func TestUpdateStockRoundTrip(t *testing.T) {
	h := newHandler()
	ctx := context.Background()

	_, err := h.CreateProduct(ctx, &pb.Product{Id: 1, Stock: 10, Price: 99.99, Name: "widget"})
	require.NoError(t, err)

	resp, err := h.UpdateStock(ctx, &pb.UpdateStockRequest{Id: 1, NewStock: 25})
	require.NoError(t, err)
	assert.True(t, resp.GetSuccess())
	assert.Equal(t, int32(25), resp.GetProduct().GetStock())
	assert.Equal(t, 99.99, resp.GetProduct().GetPrice())
	assert.Equal(t, "widget", resp.GetProduct().GetName())
}

func TestDeleteProductCodes(t *testing.T) {
	h := newHandler()
	ctx := context.Background()

	_, err := h.CreateProduct(ctx, &pb.Product{Id: 1, Stock: 10, Price: 99.99})
	require.NoError(t, err)

	resp, err := h.DeleteProduct(ctx, &pb.DeleteProductRequest{Id: 1})
	require.NoError(t, err)
	assert.True(t, resp.GetSuccess())

	_, err = h.DeleteProduct(ctx, &pb.DeleteProductRequest{Id: 1})
	require.Error(t, err)
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestListProductsEnvelope(t *testing.T) {
	h := newHandler()
	ctx := context.Background()

	for _, id := range []int64{3, 1, 2} {
		_, err := h.CreateProduct(ctx, &pb.Product{Id: id, Stock: 1, Price: 1})
		require.NoError(t, err)
	}

	resp, err := h.ListProducts(ctx, &pb.ListProductsRequest{Limit: 2, Offset: 0})
	require.NoError(t, err)
	assert.True(t, resp.GetSuccess())
	assert.Equal(t, "Found 2 products", resp.GetMessage())
	assert.Equal(t, int32(3), resp.GetTotal())
	require.Len(t, resp.GetProducts(), 2)
	assert.Equal(t, int64(1), resp.GetProducts()[0].GetId())
	assert.Equal(t, int64(2), resp.GetProducts()[1].GetId())
}
