package client

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// HealthProbe asks the server's grpc.health.v1 service whether the API is
// serving. It backs the CLI's online indicator.
type HealthProbe struct {
	conn   *grpc.ClientConn
	health healthpb.HealthClient
}

func NewHealthProbe(addr string, opts ...grpc.DialOption) (*HealthProbe, error) {
	if len(opts) == 0 {
		opts = []grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}
	}
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("health client %s: %w", addr, err)
	}
	return &HealthProbe{conn: conn, health: healthpb.NewHealthClient(conn)}, nil
}

func (p *HealthProbe) Ping(ctx context.Context) error {
	resp, err := p.health.Check(ctx, &healthpb.HealthCheckRequest{})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return fmt.Errorf("%w: status %s", ErrUnavailable, resp.GetStatus())
	}
	return nil
}

func (p *HealthProbe) Close() error { return p.conn.Close() }
