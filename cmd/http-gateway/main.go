package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"time"

	"product-gateway/internal/client"
	"product-gateway/internal/config"
	handler "product-gateway/internal/handler/http"
	"product-gateway/internal/logger"
	middleware_http "product-gateway/internal/middleware/http"
	"product-gateway/internal/service"
	"product-gateway/internal/tlsutil"
	"product-gateway/internal/tracer"
	"product-gateway/internal/version"
)

func main() {
	globalCtx := context.Background()
	log := logger.Instance()
	cfg := config.Instance()

	log.Info(cfg.AppName,
		slog.String("version", version.Version),
		slog.String("commit", version.Commit),
		slog.String("buildTime", version.BuildTime),
	)

	// Initialize telemetry (OpenTelemetry + Pyroscope)
	shutdown, _ := tracer.Instance(globalCtx)
	defer shutdown()

	// Connect to the gRPC product service
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

	// Wiring
	productHandler := handler.NewProductHandler(backend.Products)
	healthService := service.NewHealthService(backend.Products)
	healthHandler := handler.NewHealthHandler(healthService)

	// Routing
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]any{
			"service": "Product Service REST API",
			"version": version.Version,
			"endpoints": map[string]string{
				"create_product": "POST /products/",
				"get_product":    "GET /products/{id}",
				"update_stock":   "PUT /products/{id}/stock",
				"delete_product": "DELETE /products/{id}",
				"list_products":  "GET /products/",
				"health":         "GET /health",
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	})

	mux.HandleFunc("POST /products/{$}", productHandler.Create)
	mux.HandleFunc("GET /products/{$}", productHandler.List)
	mux.HandleFunc("GET /products/{id}", productHandler.GetByID)
	mux.HandleFunc("PUT /products/{id}/stock", productHandler.UpdateStock)
	mux.HandleFunc("DELETE /products/{id}", productHandler.Delete)
	mux.HandleFunc("GET /health", healthHandler.Check)

	// HTTP server
	wrappedMux := middleware_http.TraceMiddleware(globalCtx)(mux)
	server := &http.Server{
		Addr:         ":" + cfg.AppPort,
		Handler:      wrappedMux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	if cfg.SSLCertFile != "" && cfg.SSLKeyFile != "" {
		log.Info("HTTPS gateway running", slog.String("addr", server.Addr))
		err = server.ListenAndServeTLS(cfg.SSLCertFile, cfg.SSLKeyFile)
	} else {
		log.Info("HTTP gateway running", slog.String("addr", server.Addr))
		err = server.ListenAndServe()
	}
	if err != nil {
		log.Error("Server failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
