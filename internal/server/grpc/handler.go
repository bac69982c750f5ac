package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/projectvault/internal/api"
	"github.com/dmitrijs2005/projectvault/internal/common"
	"github.com/dmitrijs2005/projectvault/internal/cryptox"
	"github.com/dmitrijs2005/projectvault/internal/server/models"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) Ping(ctx context.Context, req *api.PingRequest) (*api.PingResponse, error) {
	return &api.PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) CreateSecret(ctx context.Context, req *api.CreateSecretRequest) (*api.CreateSecretResponse, error) {
	secret, err := s.vault.Create(ctx, callerFromContext(ctx), req.ProjectID, req.Name, req.Value, models.SecretType(req.Type))
	if err != nil {
		return nil, s.toStatus(ctx, "CreateSecret", err)
	}
	return &api.CreateSecretResponse{Secret: toAPISecret(secret)}, nil
}

func (s *GRPCServer) ListSecrets(ctx context.Context, req *api.ListSecretsRequest) (*api.ListSecretsResponse, error) {
	list, err := s.vault.List(ctx, callerFromContext(ctx), req.ProjectID)
	if err != nil {
		return nil, s.toStatus(ctx, "ListSecrets", err)
	}

	resp := &api.ListSecretsResponse{Secrets: make([]*api.Secret, 0, len(list))}
	for _, secret := range list {
		resp.Secrets = append(resp.Secrets, toAPISecret(secret))
	}
	return resp, nil
}

func (s *GRPCServer) RevealSecret(ctx context.Context, req *api.RevealSecretRequest) (*api.RevealSecretResponse, error) {
	revealed, err := s.vault.Reveal(ctx, callerFromContext(ctx), req.ID)
	if err != nil {
		return nil, s.toStatus(ctx, "RevealSecret", err)
	}
	return &api.RevealSecretResponse{Secret: toAPISecret(&revealed.Secret), Value: revealed.Value}, nil
}

func (s *GRPCServer) UpdateSecret(ctx context.Context, req *api.UpdateSecretRequest) (*api.UpdateSecretResponse, error) {
	patch := models.SecretUpdate{
		Name:            req.Name,
		Value:           req.Value,
		ExpectedVersion: req.ExpectedVersion,
	}
	if req.Type != nil {
		t := models.SecretType(*req.Type)
		patch.Type = &t
	}

	secret, err := s.vault.Update(ctx, callerFromContext(ctx), req.ID, patch)
	if err != nil {
		return nil, s.toStatus(ctx, "UpdateSecret", err)
	}
	return &api.UpdateSecretResponse{Secret: toAPISecret(secret)}, nil
}

func (s *GRPCServer) DeleteSecret(ctx context.Context, req *api.DeleteSecretRequest) (*api.DeleteSecretResponse, error) {
	if err := s.vault.Delete(ctx, callerFromContext(ctx), req.ID); err != nil {
		return nil, s.toStatus(ctx, "DeleteSecret", err)
	}
	return &api.DeleteSecretResponse{}, nil
}

// toStatus maps vault errors onto gRPC codes. Messages for internal
// failures are fixed strings; the underlying error is only logged.
func (s *GRPCServer) toStatus(ctx context.Context, method string, err error) error {
	switch {
	case errors.Is(err, common.ErrorUnauthorized):
		return status.Error(codes.Unauthenticated, "unauthorized")
	case errors.Is(err, common.ErrorForbidden):
		return status.Error(codes.PermissionDenied, "forbidden")
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, "secret not found")
	case errors.Is(err, common.ErrorProjectNotFound):
		return status.Error(codes.NotFound, "project not found")
	case errors.Is(err, common.ErrorValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrVersionConflict):
		return status.Error(codes.Aborted, "secret was modified concurrently")
	case errors.Is(err, cryptox.ErrConfiguration):
		s.logger.Error(ctx, "encryption key is not configured", "method", method)
		return status.Error(codes.Internal, "vault is not configured")
	case errors.Is(err, cryptox.ErrDecryptionFailed):
		return status.Error(codes.Internal, "failed to decrypt secret")
	}

	s.logger.Error(ctx, "request failed", "method", method, "error", err.Error())
	return status.Error(codes.Internal, "internal error")
}

func toAPISecret(s *models.Secret) *api.Secret {
	return &api.Secret{
		ID:        s.ID,
		ProjectID: s.ProjectID,
		Name:      s.Name,
		Type:      string(s.Type),
		Version:   s.Version,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
