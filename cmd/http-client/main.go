package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"product-gateway/internal/logger"
)

// Example client walking the REST gateway through the same lifecycle as the
// gRPC example: health, create, get, stock update, list, delete.
func main() {
	globalCtx := context.Background()
	logger.Instance()

	baseURL := os.Getenv("GATEWAY_URL")
	if baseURL == "" {
		baseURL = "http://127.0.0.1:8000"
	}

	httpClient := &http.Client{Timeout: 10 * time.Second}

	do(globalCtx, httpClient, http.MethodGet, baseURL+"/health", nil)
	do(globalCtx, httpClient, http.MethodPost, baseURL+"/products/", map[string]any{
		"id":    2,
		"stock": 15,
		"price": 149.99,
		"name":  "Example Product",
	})
	do(globalCtx, httpClient, http.MethodGet, baseURL+"/products/2", nil)
	do(globalCtx, httpClient, http.MethodPut, baseURL+"/products/2/stock", map[string]any{
		"new_stock": 30,
	})
	do(globalCtx, httpClient, http.MethodGet, baseURL+"/products/?limit=10&offset=0", nil)
	do(globalCtx, httpClient, http.MethodDelete, baseURL+"/products/2", nil)
	// Expected 404 now that the record is gone.
	do(globalCtx, httpClient, http.MethodGet, baseURL+"/products/2", nil)
}

func do(ctx context.Context, c *http.Client, method, url string, payload any) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			logger.Error(ctx, "Failed to marshal payload", slog.String("error", err.Error()))
			return
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		logger.Error(ctx, "Failed to build request", slog.String("error", err.Error()))
		return
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.Do(req)
	if err != nil {
		logger.Error(ctx, "Request failed",
			slog.String("url", url),
			slog.String("error", err.Error()),
		)
		return
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, logger.MaxBodyLogged))
	logger.Info(ctx, "HTTP",
		slog.String("method", method),
		slog.String("url", url),
		slog.Int("status", resp.StatusCode),
		slog.String("body", string(respBody)),
	)
}
