package main

import (
	"context"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	"product-gateway/internal/config"
	grpcHandler "product-gateway/internal/handler/grpc"
	pb "product-gateway/internal/handler/grpc/pb"
	"product-gateway/internal/logger"
	middleware_grpc "product-gateway/internal/middleware/grpc"
	"product-gateway/internal/service"
	"product-gateway/internal/store"
	"product-gateway/internal/tlsutil"
	"product-gateway/internal/tracer"
	"product-gateway/internal/version"
)

func main() {
	// Create cancellable context for graceful shutdown
	bgCtx := context.Background()
	globalCtx, cancel := signal.NotifyContext(bgCtx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger.Instance()
	cfg := config.Instance()

	isProduction := os.Getenv("ENV") == "production"

	logger.Info(globalCtx, cfg.AppName,
		slog.String("version", version.Version),
		slog.String("commit", version.Commit),
		slog.String("buildTime", version.BuildTime),
		slog.Bool("gracefulShutdown", isProduction),
	)

	// Initialize telemetry (OpenTelemetry + Pyroscope)
	shutdown, _ := tracer.Instance(globalCtx)
	defer shutdown()

	// Storage backend: Redis when reachable, in-memory fallback otherwise
	st := store.New(globalCtx, cfg.RedisAddr(), cfg.RedisDB)
	logger.Info(globalCtx, "Storage backend selected", slog.String("backend", string(st.Backend())))

	// Wiring
	productService := service.NewProductService(st)
	productHandler := grpcHandler.NewProductGRPCHandler(productService)

	opts := []grpc.ServerOption{
		grpc.UnaryInterceptor(middleware_grpc.UnaryTracingInterceptor()),
	}

	creds, useTLS, err := tlsutil.ServerCredentials(cfg.GrpcCertFile, cfg.GrpcKeyFile)
	if err != nil {
		logger.Error(globalCtx, "Failed to load TLS credentials", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if useTLS {
		opts = append(opts, grpc.Creds(creds))
		logger.Info(globalCtx, "TLS enabled", slog.String("cert", cfg.GrpcCertFile))
	} else {
		logger.Warn(globalCtx, "TLS certificates not found, starting insecure server")
	}

	grpcServer := grpc.NewServer(opts...)
	pb.RegisterProductServiceServer(grpcServer, productHandler)
	reflection.Register(grpcServer)

	lis, err := net.Listen("tcp", ":"+cfg.AppPort)
	if err != nil {
		logger.Error(globalCtx, "failed to listen", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info(globalCtx, "gRPC server running", slog.String("port", cfg.AppPort))

	// Run gRPC server in background
	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			logger.Error(globalCtx, "failed to serve", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	<-globalCtx.Done()

	if !isProduction {
		logger.Info(globalCtx, "Received shutdown signal, exiting immediately")
		os.Exit(0)
	} else {
		logger.Info(globalCtx, "Shutting down gRPC server")
		grpcServer.GracefulStop()
		logger.Info(globalCtx, "gRPC server exited cleanly")
	}
}
