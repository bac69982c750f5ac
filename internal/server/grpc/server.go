// Package grpc exposes the vault service over gRPC. Every method except
// Ping requires an access token; the handler maps vault errors onto gRPC
// status codes.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/projectvault/internal/api"
	"github.com/dmitrijs2005/projectvault/internal/logging"
	"github.com/dmitrijs2005/projectvault/internal/server/models"
	"google.golang.org/grpc"
)

// VaultService is the part of services.VaultService the handler needs.
type VaultService interface {
	Create(ctx context.Context, callerID, projectID, name, value string, typ models.SecretType) (*models.Secret, error)
	List(ctx context.Context, callerID, projectID string) ([]*models.Secret, error)
	Reveal(ctx context.Context, callerID, secretID string) (*models.RevealedSecret, error)
	Update(ctx context.Context, callerID, secretID string, patch models.SecretUpdate) (*models.Secret, error)
	Delete(ctx context.Context, callerID, secretID string) error
}

type GRPCServer struct {
	api.UnimplementedSecretVaultServer
	address   string
	vault     VaultService
	logger    logging.Logger
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewGRPCServer builds the vault endpoint. Access tokens whose lifetime
// exceeds tokenTTL are refused; zero accepts any lifetime.
func NewGRPCServer(a string, l logging.Logger, vault VaultService, secretKey string, tokenTTL time.Duration) *GRPCServer {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		vault:     vault,
		jwtSecret: []byte(secretKey),
		tokenTTL:  tokenTTL,
	}
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done, then stops
// gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.accessTokenInterceptor))

	api.RegisterSecretVaultServer(srv, s)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	return srv.Serve(lis)
}
