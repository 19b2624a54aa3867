package client

import (
	"context"
	"log/slog"
	"time"

	pb "product-gateway/internal/handler/grpc/pb"
	"product-gateway/internal/logger"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
)

const probeTimeout = 5 * time.Second

// GRPC bundles the backend connection with the product stub. The gateway and
// the example clients share it; Close releases the channel on every exit
// path via defer at the call site.
type GRPC struct {
	Conn     *grpc.ClientConn
	Products pb.ProductServiceClient
}

// NewGRPC opens a channel to the product service and probes it with a
// one-item list call under a bounded timeout. A failed probe is logged but
// not fatal: the channel reconnects lazily and callers see Unavailable until
// the backend is reachable.
func NewGRPC(globalCtx context.Context, target string, creds credentials.TransportCredentials) (*GRPC, error) {
	conn, err := grpc.NewClient(target, grpc.WithTransportCredentials(creds))
	if err != nil {
		return nil, err
	}

	c := &GRPC{
		Conn:     conn,
		Products: pb.NewProductServiceClient(conn),
	}

	probeCtx, cancel := context.WithTimeout(globalCtx, probeTimeout)
	defer cancel()
	if _, err := c.Products.ListProducts(probeCtx, &pb.ListProductsRequest{Limit: 1, Offset: 0}); err != nil {
		logger.Warn(globalCtx, "Could not reach gRPC product service",
			slog.String("target", target),
			slog.String("error", err.Error()),
		)
	} else {
		logger.Info(globalCtx, "Connected to gRPC product service", slog.String("target", target))
	}

	return c, nil
}

func (c *GRPC) Close() error {
	return c.Conn.Close()
}
