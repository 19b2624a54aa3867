package grpc

import (
	"context"
	"errors"
	"fmt"

	pb "product-gateway/internal/handler/grpc/pb"
	"product-gateway/internal/logger"
	"product-gateway/internal/model"
	"product-gateway/internal/service"

	"go.opentelemetry.io/otel"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type ProductGRPCHandler struct {
	pb.UnimplementedProductServiceServer
	Service *service.ProductService
}

var GrpcProductHandlerTracer = otel.Tracer("GrpcProductHandler")

func NewProductGRPCHandler(svc *service.ProductService) *ProductGRPCHandler {
	return &ProductGRPCHandler{
		Service: svc,
	}
}

func (h *ProductGRPCHandler) CreateProduct(ctx context.Context, req *pb.Product) (*pb.ProductResponse, error) {
	ctx, span := GrpcProductHandlerTracer.Start(ctx, "GrpcProductHandler.CreateProduct")
	defer span.End()
	logger.Info(ctx, "GrpcProductHandler.CreateProduct")

	created, err := h.Service.Create(ctx, fromProto(req))
	if err != nil {
		return nil, statusFromDomain(err)
	}

	return &pb.ProductResponse{
		Product: toProto(created),
		Success: true,
		Message: fmt.Sprintf("Product %d created successfully", created.ID),
	}, nil
}

func (h *ProductGRPCHandler) GetProduct(ctx context.Context, req *pb.GetProductRequest) (*pb.ProductResponse, error) {
	ctx, span := GrpcProductHandlerTracer.Start(ctx, "GrpcProductHandler.GetProduct")
	defer span.End()
	logger.Info(ctx, "GrpcProductHandler.GetProduct")

	product, err := h.Service.Get(ctx, req.GetId())
	if err != nil {
		return nil, statusFromDomain(err)
	}

	return &pb.ProductResponse{
		Product: toProto(product),
		Success: true,
		Message: fmt.Sprintf("Product %d found", product.ID),
	}, nil
}

func (h *ProductGRPCHandler) UpdateStock(ctx context.Context, req *pb.UpdateStockRequest) (*pb.ProductResponse, error) {
	ctx, span := GrpcProductHandlerTracer.Start(ctx, "GrpcProductHandler.UpdateStock")
	defer span.End()
	logger.Info(ctx, "GrpcProductHandler.UpdateStock")

	updated, err := h.Service.UpdateStock(ctx, req.GetId(), req.GetNewStock())
	if err != nil {
		return nil, statusFromDomain(err)
	}

	return &pb.ProductResponse{
		Product: toProto(updated),
		Success: true,
		Message: fmt.Sprintf("Product %d stock updated to %d", updated.ID, updated.Stock),
	}, nil
}

func (h *ProductGRPCHandler) DeleteProduct(ctx context.Context, req *pb.DeleteProductRequest) (*pb.SimpleResponse, error) {
	ctx, span := GrpcProductHandlerTracer.Start(ctx, "GrpcProductHandler.DeleteProduct")
	defer span.End()
	logger.Info(ctx, "GrpcProductHandler.DeleteProduct")

	if err := h.Service.Delete(ctx, req.GetId()); err != nil {
		return nil, statusFromDomain(err)
	}

	return &pb.SimpleResponse{
		Success: true,
		Message: fmt.Sprintf("Product %d deleted successfully", req.GetId()),
	}, nil
}

func (h *ProductGRPCHandler) ListProducts(ctx context.Context, req *pb.ListProductsRequest) (*pb.ListProductsResponse, error) {
	ctx, span := GrpcProductHandlerTracer.Start(ctx, "GrpcProductHandler.ListProducts")
	defer span.End()
	logger.Info(ctx, "GrpcProductHandler.ListProducts")

	products, total, err := h.Service.List(ctx, int(req.GetLimit()), int(req.GetOffset()))
	if err != nil {
		return nil, statusFromDomain(err)
	}

	protoProducts := make([]*pb.Product, 0, len(products))
	for i := range products {
		protoProducts = append(protoProducts, toProto(&products[i]))
	}

	return &pb.ListProductsResponse{
		Products: protoProducts,
		Total:    int32(total),
		Success:  true,
		Message:  fmt.Sprintf("Found %d products", len(protoProducts)),
	}, nil
}

// statusFromDomain is the single translation point from the domain error
// taxonomy into gRPC status codes.
func statusFromDomain(err error) error {
	var domainErr *service.Error
	if !errors.As(err, &domainErr) {
		return status.Error(codes.Internal, "internal error")
	}
	switch domainErr.Kind {
	case service.KindValidation:
		return status.Error(codes.InvalidArgument, domainErr.Message)
	case service.KindNotFound:
		return status.Error(codes.NotFound, domainErr.Message)
	case service.KindConflict:
		return status.Error(codes.AlreadyExists, domainErr.Message)
	case service.KindUnavailable:
		return status.Error(codes.Unavailable, domainErr.Message)
	default:
		return status.Error(codes.Internal, domainErr.Message)
	}
}

func fromProto(p *pb.Product) *model.Product {
	return &model.Product{
		ID:          p.GetId(),
		Stock:       p.GetStock(),
		Price:       p.GetPrice(),
		Name:        p.GetName(),
		Description: p.GetDescription(),
	}
}

func toProto(p *model.Product) *pb.Product {
	return &pb.Product{
		Id:          p.ID,
		Stock:       p.Stock,
		Price:       p.Price,
		Name:        p.Name,
		Description: p.Description,
	}
}
