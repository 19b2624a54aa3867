package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	pb "product-gateway/internal/handler/grpc/pb"
	"product-gateway/internal/logger"
	"product-gateway/internal/model"

	"go.opentelemetry.io/otel"
)

// ProductHandler translates HTTP/JSON requests into calls on the product
// RPC backend and RPC outcomes back into HTTP responses.
type ProductHandler struct {
	products pb.ProductServiceClient
}

var HttpProductHandlerTracer = otel.Tracer("HttpProductHandler")

func NewProductHandler(products pb.ProductServiceClient) *ProductHandler {
	return &ProductHandler{
		products: products,
	}
}

type createProductRequest struct {
	ID          int64   `json:"id"`
	Stock       int32   `json:"stock"`
	Price       float64 `json:"price"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
}

type updateStockRequest struct {
	NewStock int32 `json:"new_stock"`
}

type productResponse struct {
	Product *model.Product `json:"product,omitempty"`
	Success bool           `json:"success"`
	Message string         `json:"message"`
}

type listProductsResponse struct {
	Products []model.Product `json:"products"`
	Total    int32           `json:"total"`
	Success  bool            `json:"success"`
	Message  string          `json:"message"`
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpProductHandlerTracer.Start(r.Context(), "HttpProductHandler.Create")
	defer span.End()
	logger.Info(ctx, "HttpProductHandler.Create")

	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	resp, err := h.products.CreateProduct(ctx, &pb.Product{
		Id:          req.ID,
		Stock:       req.Stock,
		Price:       req.Price,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		writeRPCError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, productResponse{
		Product: fromProto(resp.GetProduct()),
		Success: resp.GetSuccess(),
		Message: resp.GetMessage(),
	})
}

func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpProductHandlerTracer.Start(r.Context(), "HttpProductHandler.GetByID")
	defer span.End()
	logger.Info(ctx, "HttpProductHandler.GetByID")

	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "product id must be an integer")
		return
	}

	resp, err := h.products.GetProduct(ctx, &pb.GetProductRequest{Id: id})
	if err != nil {
		writeRPCError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, productResponse{
		Product: fromProto(resp.GetProduct()),
		Success: resp.GetSuccess(),
		Message: resp.GetMessage(),
	})
}

func (h *ProductHandler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpProductHandlerTracer.Start(r.Context(), "HttpProductHandler.UpdateStock")
	defer span.End()
	logger.Info(ctx, "HttpProductHandler.UpdateStock")

	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "product id must be an integer")
		return
	}

	var req updateStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	resp, err := h.products.UpdateStock(ctx, &pb.UpdateStockRequest{Id: id, NewStock: req.NewStock})
	if err != nil {
		writeRPCError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, productResponse{
		Product: fromProto(resp.GetProduct()),
		Success: resp.GetSuccess(),
		Message: resp.GetMessage(),
	})
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpProductHandlerTracer.Start(r.Context(), "HttpProductHandler.Delete")
	defer span.End()
	logger.Info(ctx, "HttpProductHandler.Delete")

	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "product id must be an integer")
		return
	}

	resp, err := h.products.DeleteProduct(ctx, &pb.DeleteProductRequest{Id: id})
	if err != nil {
		writeRPCError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, errorResponse{
		Success: resp.GetSuccess(),
		Message: resp.GetMessage(),
	})
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpProductHandlerTracer.Start(r.Context(), "HttpProductHandler.List")
	defer span.End()
	logger.Info(ctx, "HttpProductHandler.List")

	limit, err := queryInt(r, "limit", 100)
	if err != nil {
		writeError(w, http.StatusBadRequest, "limit must be an integer")
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "offset must be an integer")
		return
	}

	resp, err := h.products.ListProducts(ctx, &pb.ListProductsRequest{Limit: limit, Offset: offset})
	if err != nil {
		writeRPCError(w, err)
		return
	}

	products := make([]model.Product, 0, len(resp.GetProducts()))
	for _, p := range resp.GetProducts() {
		products = append(products, *fromProto(p))
	}

	writeJSON(w, http.StatusOK, listProductsResponse{
		Products: products,
		Total:    resp.GetTotal(),
		Success:  resp.GetSuccess(),
		Message:  resp.GetMessage(),
	})
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

func queryInt(r *http.Request, name string, def int32) (int32, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return int32(n), nil
}

func fromProto(p *pb.Product) *model.Product {
	if p == nil {
		return nil
	}
	return &model.Product{
		ID:          p.GetId(),
		Stock:       p.GetStock(),
		Price:       p.GetPrice(),
		Name:        p.GetName(),
		Description: p.GetDescription(),
	}
}
