// Package grpc serves a read-only recipe catalog and the standard gRPC
// health-checking protocol next to the HTTP API.
package grpc

import (
	"context"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/dmitrijs2005/recipebox/internal/logging"
)

// ServiceName names the catalog service. Health reports it alongside the
// overall ("") status.
const ServiceName = "recipebox.v1.RecipeBox"

type GRPCServer struct {
	address string
	logger  logging.Logger
	health  *health.Server
	recipes RecipeService
}

func NewGRPCServer(a string, l logging.Logger, recipes RecipeService) *GRPCServer {
	return &GRPCServer{
		address: a,
		logger:  l.With("module", "grpc_server"),
		health:  health.NewServer(),
		recipes: recipes,
	}
}

func (s *GRPCServer) Run(ctx context.Context) error {
	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.serve(ctx, listen)
}

func (s *GRPCServer) serve(ctx context.Context, listen net.Listener) error {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor))

	srv.RegisterService(&catalogServiceDesc, &catalog{recipes: s.recipes})
	healthpb.RegisterHealthServer(srv, s.health)
	s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	s.health.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		// flips every status to NOT_SERVING before draining
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil {
		return err
	}
	return nil
}
