// Package vaultclient is the gRPC client for the projectvault SecretVault
// service. It attaches the access token to every call and turns gRPC status
// codes back into package errors.
package vaultclient

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/projectvault/internal/api"
	"github.com/dmitrijs2005/projectvault/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      api.SecretVaultClient
	accessToken string
	timeout     time.Duration
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if s.accessToken != "" {
		ctx = withAccessToken(ctx, s.accessToken)
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

// New prepares a client for endpointURL. No connection is made until the
// first call.
func New(endpointURL, accessToken string, timeout time.Duration, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, accessToken: accessToken, timeout: timeout}

	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(endpointURL, opts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.client = api.NewSecretVaultClient(conn)
	return c, nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	resp, err := s.client.Ping(ctx, &api.PingRequest{})
	if err != nil {
		return mapError(err)
	}
	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

func (s *GRPCClient) CreateSecret(ctx context.Context, projectID, name, value, typ string) (*api.Secret, error) {
	resp, err := s.client.CreateSecret(ctx, &api.CreateSecretRequest{ProjectID: projectID, Name: name, Value: value, Type: typ})
	if err != nil {
		return nil, mapError(err)
	}
	return resp.Secret, nil
}

func (s *GRPCClient) ListSecrets(ctx context.Context, projectID string) ([]*api.Secret, error) {
	resp, err := s.client.ListSecrets(ctx, &api.ListSecretsRequest{ProjectID: projectID})
	if err != nil {
		return nil, mapError(err)
	}
	return resp.Secrets, nil
}

func (s *GRPCClient) RevealSecret(ctx context.Context, id string) (*api.RevealSecretResponse, error) {
	resp, err := s.client.RevealSecret(ctx, &api.RevealSecretRequest{ID: id})
	if err != nil {
		return nil, mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) UpdateSecret(ctx context.Context, req *api.UpdateSecretRequest) (*api.Secret, error) {
	resp, err := s.client.UpdateSecret(ctx, req)
	if err != nil {
		return nil, mapError(err)
	}
	return resp.Secret, nil
}

func (s *GRPCClient) DeleteSecret(ctx context.Context, id string) error {
	if _, err := s.client.DeleteSecret(ctx, &api.DeleteSecretRequest{ID: id}); err != nil {
		return mapError(err)
	}
	return nil
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated:
		return fmt.Errorf("%w: %s", ErrUnauthorized, st.Message())
	case codes.PermissionDenied:
		return ErrForbidden
	case codes.NotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, st.Message())
	case codes.Aborted:
		return ErrConflict
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", ErrInvalid, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
