package http

import (
	"net/http"

	"product-gateway/internal/logger"
	"product-gateway/internal/service"

	"go.opentelemetry.io/otel"
)

type HealthHandler struct {
	service *service.HealthService
}

var HttpHealthHandlerTracer = otel.Tracer("HttpHealthHandler")

func NewHealthHandler(service *service.HealthService) *HealthHandler {
	return &HealthHandler{
		service: service,
	}
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpHealthHandlerTracer.Start(r.Context(), "HttpHealthHandler.Check")
	defer span.End()
	logger.Info(ctx, "HttpHealthHandler")

	status := h.service.Check(ctx)

	overall := "healthy"
	statusCode := http.StatusOK
	if status.Backend == "DOWN" {
		overall = "degraded"
		statusCode = http.StatusServiceUnavailable
	}

	writeJSON(w, statusCode, map[string]any{
		"status": overall,
		"data": map[string]string{
			"grpc_service": status.Backend,
		},
	})
}
