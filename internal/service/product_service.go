package service

import (
	"context"
	"log/slog"

	"product-gateway/internal/logger"
	"product-gateway/internal/model"
	"product-gateway/internal/store"

	"go.opentelemetry.io/otel"
)

// DefaultListLimit is applied when a caller asks for a non-positive page size.
const DefaultListLimit = 100

type ProductService struct {
	store store.Store
}

var ProductServiceTracer = otel.Tracer("ProductService")

func NewProductService(st store.Store) *ProductService {
	return &ProductService{store: st}
}

// Create stores a new product. Creation is strict: an existing record under
// the same id fails with a Conflict and leaves the stored record untouched.
func (s *ProductService) Create(ctx context.Context, p *model.Product) (*model.Product, error) {
	ctx, span := ProductServiceTracer.Start(ctx, "ProductService.Create")
	defer span.End()
	logger.Info(ctx, "Service")

	if err := validateRecord(p); err != nil {
		return nil, err
	}
	p.Price = model.RoundPrice(p.Price)

	stored, err := s.store.PutIfAbsent(ctx, p)
	if err != nil {
		return nil, s.internal(ctx, "create", err)
	}
	if !stored {
		return nil, Conflictf("Product %d already exists", p.ID)
	}
	return p, nil
}

func (s *ProductService) Get(ctx context.Context, id int64) (*model.Product, error) {
	ctx, span := ProductServiceTracer.Start(ctx, "ProductService.Get")
	defer span.End()
	logger.Info(ctx, "Service")

	if id <= 0 {
		return nil, Validationf("product id must be positive")
	}

	p, ok, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, s.internal(ctx, "get", err)
	}
	if !ok {
		return nil, NotFoundf("Product %d not found", id)
	}
	return p, nil
}

// UpdateStock replaces only the stock field of an existing record.
func (s *ProductService) UpdateStock(ctx context.Context, id int64, newStock int32) (*model.Product, error) {
	ctx, span := ProductServiceTracer.Start(ctx, "ProductService.UpdateStock")
	defer span.End()
	logger.Info(ctx, "Service")

	if id <= 0 {
		return nil, Validationf("product id must be positive")
	}
	if newStock < 0 {
		return nil, Validationf("stock must be non-negative")
	}

	p, ok, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, s.internal(ctx, "update stock", err)
	}
	if !ok {
		return nil, NotFoundf("Product %d not found", id)
	}

	p.Stock = newStock
	if err := s.store.Put(ctx, p); err != nil {
		return nil, s.internal(ctx, "update stock", err)
	}
	return p, nil
}

func (s *ProductService) Delete(ctx context.Context, id int64) error {
	ctx, span := ProductServiceTracer.Start(ctx, "ProductService.Delete")
	defer span.End()
	logger.Info(ctx, "Service")

	if id <= 0 {
		return Validationf("product id must be positive")
	}

	removed, err := s.store.Delete(ctx, id)
	if err != nil {
		return s.internal(ctx, "delete", err)
	}
	if !removed {
		return NotFoundf("Product %d not found", id)
	}
	return nil
}

// List returns one page of records in ascending-id order plus the total
// count. Non-positive limits fall back to DefaultListLimit, negative offsets
// to 0.
func (s *ProductService) List(ctx context.Context, limit, offset int) ([]model.Product, int, error) {
	ctx, span := ProductServiceTracer.Start(ctx, "ProductService.List")
	defer span.End()
	logger.Info(ctx, "Service")

	if limit <= 0 {
		limit = DefaultListLimit
	}
	if offset < 0 {
		offset = 0
	}

	products, err := s.store.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, s.internal(ctx, "list", err)
	}
	total, err := s.store.Count(ctx)
	if err != nil {
		return nil, 0, s.internal(ctx, "list", err)
	}
	return products, total, nil
}

// internal logs the backend failure and returns a sanitized Internal error.
// Backend diagnostics stay in the log, never in the caller-visible message.
func (s *ProductService) internal(ctx context.Context, op string, err error) *Error {
	logger.Error(ctx, "Storage operation failed",
		slog.String("op", op),
		slog.String("backend", string(s.store.Backend())),
		slog.String("error", err.Error()),
	)
	return Internalf("internal storage error")
}

func validateRecord(p *model.Product) *Error {
	if p.ID <= 0 {
		return Validationf("product id must be positive")
	}
	if p.Stock < 0 {
		return Validationf("stock must be non-negative")
	}
	if p.Price <= 0 {
		return Validationf("price must be positive")
	}
	return nil
}
