package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pb "product-gateway/internal/handler/grpc/pb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// fakeProductsClient lets each test script the backend's behavior.
type fakeProductsClient struct {
	create      func(*pb.Product) (*pb.ProductResponse, error)
	get         func(*pb.GetProductRequest) (*pb.ProductResponse, error)
	updateStock func(*pb.UpdateStockRequest) (*pb.ProductResponse, error)
	delete      func(*pb.DeleteProductRequest) (*pb.SimpleResponse, error)
	list        func(*pb.ListProductsRequest) (*pb.ListProductsResponse, error)
}

func (f *fakeProductsClient) CreateProduct(_ context.Context, in *pb.Product, _ ...grpc.CallOption) (*pb.ProductResponse, error) {
	return f.create(in)
}

func (f *fakeProductsClient) GetProduct(_ context.Context, in *pb.GetProductRequest, _ ...grpc.CallOption) (*pb.ProductResponse, error) {
	return f.get(in)
}

func (f *fakeProductsClient) UpdateStock(_ context.Context, in *pb.UpdateStockRequest, _ ...grpc.CallOption) (*pb.ProductResponse, error) {
	return f.updateStock(in)
}

func (f *fakeProductsClient) DeleteProduct(_ context.Context, in *pb.DeleteProductRequest, _ ...grpc.CallOption) (*pb.SimpleResponse, error) {
	return f.delete(in)
}

func (f *fakeProductsClient) ListProducts(_ context.Context, in *pb.ListProductsRequest, _ ...grpc.CallOption) (*pb.ListProductsResponse, error) {
	return f.list(in)
}

func newMux(c pb.ProductServiceClient) *http.ServeMux {
	h := NewProductHandler(c)
	mux := http.NewServeMux()
	mux.HandleFunc("POST /products/{$}", h.Create)
	mux.HandleFunc("GET /products/{$}", h.List)
	mux.HandleFunc("GET /products/{id}", h.GetByID)
	mux.HandleFunc("PUT /products/{id}/stock", h.UpdateStock)
	mux.HandleFunc("DELETE /products/{id}", h.Delete)
	return mux
}

func TestCreateReturns201(t *testing.T) {
	client := &fakeProductsClient{
		create: func(in *pb.Product) (*pb.ProductResponse, error) {
			return &pb.ProductResponse{
				Product: in,
				Success: true,
				Message: "Product 1 created successfully",
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/products/", strings.NewReader(`{"id":1,"stock":10,"price":99.99}`))
	rec := httptest.NewRecorder()
	newMux(client).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp productResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Product)
	assert.Equal(t, int64(1), resp.Product.ID)
	assert.Equal(t, 99.99, resp.Product.Price)
}

func TestCreateInvalidPayloadReturns400(t *testing.T) {
	client := &fakeProductsClient{
		create: func(*pb.Product) (*pb.ProductResponse, error) {
			t.Fatal("backend must not be called for a malformed payload")
			return nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/products/", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	newMux(client).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateConflictReturns409(t *testing.T) {
	client := &fakeProductsClient{
		create: func(*pb.Product) (*pb.ProductResponse, error) {
			return nil, status.Error(codes.AlreadyExists, "Product 1 already exists")
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/products/", strings.NewReader(`{"id":1,"stock":10,"price":99.99}`))
	rec := httptest.NewRecorder()
	newMux(client).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Product 1 already exists", resp.Message)
}

func TestGetNotFoundReturns404(t *testing.T) {
	client := &fakeProductsClient{
		get: func(in *pb.GetProductRequest) (*pb.ProductResponse, error) {
			return nil, status.Error(codes.NotFound, "Product 999 not found")
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/products/999", nil)
	rec := httptest.NewRecorder()
	newMux(client).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetNonIntegerIDReturns400(t *testing.T) {
	client := &fakeProductsClient{
		get: func(*pb.GetProductRequest) (*pb.ProductResponse, error) {
			t.Fatal("backend must not be called for a malformed id")
			return nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/products/abc", nil)
	rec := httptest.NewRecorder()
	newMux(client).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateStockReturns200(t *testing.T) {
	client := &fakeProductsClient{
		updateStock: func(in *pb.UpdateStockRequest) (*pb.ProductResponse, error) {
			assert.Equal(t, int64(2), in.GetId())
			assert.Equal(t, int32(30), in.GetNewStock())
			return &pb.ProductResponse{
				Product: &pb.Product{Id: 2, Stock: 30, Price: 149.99},
				Success: true,
				Message: "Product 2 stock updated to 30",
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPut, "/products/2/stock", strings.NewReader(`{"new_stock":30}`))
	rec := httptest.NewRecorder()
	newMux(client).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp productResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int32(30), resp.Product.Stock)
}

func TestDeleteUnavailableReturns503(t *testing.T) {
	client := &fakeProductsClient{
		delete: func(*pb.DeleteProductRequest) (*pb.SimpleResponse, error) {
			return nil, status.Error(codes.Unavailable, "connection refused")
		},
	}

	req := httptest.NewRequest(http.MethodDelete, "/products/1", nil)
	rec := httptest.NewRecorder()
	newMux(client).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestListPassesPaginationAndReturnsPage(t *testing.T) {
	client := &fakeProductsClient{
		list: func(in *pb.ListProductsRequest) (*pb.ListProductsResponse, error) {
			assert.Equal(t, int32(1), in.GetLimit())
			assert.Equal(t, int32(1), in.GetOffset())
			return &pb.ListProductsResponse{
				Products: []*pb.Product{{Id: 2, Stock: 1, Price: 1}},
				Total:    3,
				Success:  true,
				Message:  "Found 1 products",
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/products/?limit=1&offset=1", nil)
	rec := httptest.NewRecorder()
	newMux(client).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp listProductsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int32(3), resp.Total)
	require.Len(t, resp.Products, 1)
	assert.Equal(t, int64(2), resp.Products[0].ID)
}

func TestHTTPStatusTable(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, httpStatus(codes.InvalidArgument))
	assert.Equal(t, http.StatusNotFound, httpStatus(codes.NotFound))
	assert.Equal(t, http.StatusConflict, httpStatus(codes.AlreadyExists))
	assert.Equal(t, http.StatusServiceUnavailable, httpStatus(codes.Unavailable))
	assert.Equal(t, http.StatusServiceUnavailable, httpStatus(codes.DeadlineExceeded))
	assert.Equal(t, http.StatusInternalServerError, httpStatus(codes.Internal))
	assert.Equal(t, http.StatusInternalServerError, httpStatus(codes.Unknown))
}
