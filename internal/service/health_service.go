package service

import (
	"context"
	"time"

	"product-gateway/internal/handler/grpc/pb"
	"product-gateway/internal/logger"

	"go.opentelemetry.io/otel"
)

// HealthService probes the product backend with a one-item list call
// under a bounded timeout.
type HealthService struct {
	Products pb.ProductServiceClient
}

type HealthStatus struct {
	Backend string
}

var HealthServiceTracer = otel.Tracer("HealthService")

func NewHealthService(products pb.ProductServiceClient) *HealthService {
	return &HealthService{Products: products}
}

func (s *HealthService) Check(ctx context.Context) HealthStatus {
	ctx, span := HealthServiceTracer.Start(ctx, "HealthService.Check")
	defer span.End()
	logger.Info(ctx, "Service")

	status := HealthStatus{Backend: "UP"}

	probeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if _, err := s.Products.ListProducts(probeCtx, &pb.ListProductsRequest{Limit: 1, Offset: 0}); err != nil {
		status.Backend = "DOWN"
	}

	return status
}
