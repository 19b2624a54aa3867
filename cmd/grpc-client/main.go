package main

import (
	"context"
	"log/slog"
	"os"

	"product-gateway/internal/client"
	"product-gateway/internal/config"
	pb "product-gateway/internal/handler/grpc/pb"
	"product-gateway/internal/logger"
	"product-gateway/internal/tlsutil"
)

// Example client exercising every operation of the product service directly
// over gRPC.
func main() {
	globalCtx := context.Background()
	log := logger.Instance()
	cfg := config.Instance()

	creds, err := tlsutil.ClientCredentials(cfg.GrpcUseTLS, cfg.GrpcClientCertFile)
	if err != nil {
		log.Error("Failed to load client TLS credentials", slog.String("error", err.Error()))
		os.Exit(1)
	}
	backend, err := client.NewGRPC(globalCtx, cfg.GrpcTarget(), creds)
	if err != nil {
		log.Error("Failed to create gRPC channel", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer backend.Close()

	products := backend.Products

	created, err := products.CreateProduct(globalCtx, &pb.Product{
		Id:          1,
		Stock:       10,
		Price:       99.99,
		Name:        "Example Product",
		Description: "Created by the example gRPC client",
	})
	report("CreateProduct", created, err)

	got, err := products.GetProduct(globalCtx, &pb.GetProductRequest{Id: 1})
	report("GetProduct", got, err)

	updated, err := products.UpdateStock(globalCtx, &pb.UpdateStockRequest{Id: 1, NewStock: 25})
	report("UpdateStock", updated, err)

	listed, err := products.ListProducts(globalCtx, &pb.ListProductsRequest{Limit: 10, Offset: 0})
	if err != nil {
		logger.Error(globalCtx, "ListProducts failed", slog.String("error", err.Error()))
	} else {
		logger.Info(globalCtx, "ListProducts",
			slog.Int("count", len(listed.GetProducts())),
			slog.Int("total", int(listed.GetTotal())),
			slog.String("message", listed.GetMessage()),
		)
	}

	deleted, err := products.DeleteProduct(globalCtx, &pb.DeleteProductRequest{Id: 1})
	if err != nil {
		logger.Error(globalCtx, "DeleteProduct failed", slog.String("error", err.Error()))
	} else {
		logger.Info(globalCtx, "DeleteProduct", slog.String("message", deleted.GetMessage()))
	}

	// Expected to fail with NotFound now that the record is gone.
	_, err = products.GetProduct(globalCtx, &pb.GetProductRequest{Id: 1})
	if err != nil {
		logger.Info(globalCtx, "GetProduct after delete", slog.String("error", err.Error()))
	}
}

func report(op string, resp *pb.ProductResponse, err error) {
	ctx := context.Background()
	if err != nil {
		logger.Error(ctx, op+" failed", slog.String("error", err.Error()))
		return
	}
	p := resp.GetProduct()
	logger.Info(ctx, op,
		slog.Int64("id", p.GetId()),
		slog.Int("stock", int(p.GetStock())),
		slog.Float64("price", p.GetPrice()),
		slog.String("message", resp.GetMessage()),
	)
}
