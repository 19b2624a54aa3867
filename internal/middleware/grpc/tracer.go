package middleware_grpc

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"product-gateway/internal/logger"
)

var tracer = otel.Tracer("GrpcMiddleware")

// UnaryTracingInterceptor wraps every unary call in a span named after the
// full gRPC method and logs request and response once per call.
func UnaryTracingInterceptor() grpc.UnaryServerInterceptor {

	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (resp any, err error) {

		// Start span with gRPC full method name as operation name
		ctx, span := tracer.Start(ctx, info.FullMethod)
		defer span.End()

		md, _ := metadata.FromIncomingContext(ctx)

		attrs := logger.LogGRPCRequest(ctx, info.FullMethod, md, req, "incoming::request")
		logger.Info(ctx, "GRPC", attrs...)

		start := time.Now()
		resp, err = handler(ctx, req)
		duration := time.Since(start)

		attrs = logger.LogGRPCResponse(ctx, info.FullMethod, md, status.Code(err), resp, duration, "incoming::response")
		logger.Info(ctx, "GRPC", attrs...)

		return resp, err
	}
}
