// Package health runs the gRPC health service next to each HTTP service and
// lets the admin CLI probe it.
package health

import (
	"context"
	"fmt"
	"log"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Server wraps a gRPC server exposing grpc.health.v1.Health for one service.
type Server struct {
	grpc    *grpc.Server
	checker *health.Server
	service string
}

func NewServer(service string) *Server {
	gs := grpc.NewServer()
	hs := health.NewServer()
	healthpb.RegisterHealthServer(gs, hs)
	hs.SetServingStatus(service, healthpb.HealthCheckResponse_NOT_SERVING)
	return &Server{grpc: gs, checker: hs, service: service}
}

// SetServing flips both the named service and the overall server status.
func (s *Server) SetServing(ok bool) {
	st := healthpb.HealthCheckResponse_NOT_SERVING
	if ok {
		st = healthpb.HealthCheckResponse_SERVING
	}
	s.checker.SetServingStatus(s.service, st)
	s.checker.SetServingStatus("", st)
}

// Serve blocks until the listener fails or Stop is called.
func (s *Server) Serve(l net.Listener) error {
	log.Printf("[health] %s health listening on %s", s.service, l.Addr())
	return s.grpc.Serve(l)
}

func (s *Server) Stop() {
	s.checker.Shutdown()
	s.grpc.GracefulStop()
}

// Check asks the health service at addr for the status of service.
func Check(ctx context.Context, addr, service string, opts ...grpc.DialOption) (string, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return "", err
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	out, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{Service: service})
	if err != nil {
		return "", fmt.Errorf("health check %s: %w", addr, err)
	}
	return out.GetStatus().String(), nil
}
