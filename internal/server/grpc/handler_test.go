package grpc

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/dmitrijs2005/projectvault/internal/api"
	"github.com/dmitrijs2005/projectvault/internal/common"
	"github.com/dmitrijs2005/projectvault/internal/cryptox"
	"github.com/dmitrijs2005/projectvault/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var stored = &models.Secret{
	ID:             "s1",
	ProjectID:      "p1",
	Name:           "Stripe",
	ValueEncrypted: "aa:bb:cc",
	Type:           models.SecretTypeAPIKey,
	Version:        3,
	CreatedAt:      time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	UpdatedAt:      time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
}

func TestPing_OK(t *testing.T) {
	resp, err := newServer(&fakeVault{}).Ping(context.Background(), &api.PingRequest{})
	require.NoError(t, err)
	assert.Equal(t, "OK", resp.Status)
}

func TestCreateSecret_PassesCaller(t *testing.T) {
	v := &fakeVault{secret: stored}
	resp, err := newServer(v).CreateSecret(withCaller("admin"), &api.CreateSecretRequest{ProjectID: "p1", Name: "Stripe", Value: "sk"})
	require.NoError(t, err)

	assert.Equal(t, "admin", v.caller)
	assert.Equal(t, &api.Secret{
		ID:        "s1",
		ProjectID: "p1",
		Name:      "Stripe",
		Type:      "api_key",
		Version:   3,
		CreatedAt: stored.CreatedAt,
		UpdatedAt: stored.UpdatedAt,
	}, resp.Secret)
}

func TestListSecrets_Empty(t *testing.T) {
	resp, err := newServer(&fakeVault{}).ListSecrets(withCaller("admin"), &api.ListSecretsRequest{ProjectID: "p1"})
	require.NoError(t, err)
	assert.NotNil(t, resp.Secrets)
	assert.Empty(t, resp.Secrets)
}

func TestRevealSecret_ReturnsValue(t *testing.T) {
	v := &fakeVault{revealed: &models.RevealedSecret{Secret: *stored, Value: "sk_live_abc123"}}
	resp, err := newServer(v).RevealSecret(withCaller("admin"), &api.RevealSecretRequest{ID: "s1"})
	require.NoError(t, err)
	assert.Equal(t, "sk_live_abc123", resp.Value)
	assert.Equal(t, "s1", resp.Secret.ID)
}

func TestUpdateSecret_BuildsPatch(t *testing.T) {
	v := &fakeVault{secret: stored}
	typ := "token"
	value := "new"
	_, err := newServer(v).UpdateSecret(withCaller("admin"), &api.UpdateSecretRequest{ID: "s1", Value: &value, Type: &typ, ExpectedVersion: 3})
	require.NoError(t, err)

	assert.Nil(t, v.patch.Name)
	require.NotNil(t, v.patch.Value)
	assert.Equal(t, "new", *v.patch.Value)
	require.NotNil(t, v.patch.Type)
	assert.Equal(t, models.SecretTypeToken, *v.patch.Type)
	assert.Equal(t, int64(3), v.patch.ExpectedVersion)
}

func TestDeleteSecret_NoCallerIsUnauthenticated(t *testing.T) {
	v := &fakeVault{err: common.ErrorUnauthorized}
	_, err := newServer(v).DeleteSecret(context.Background(), &api.DeleteSecretRequest{ID: "s1"})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
	assert.Equal(t, "", v.caller)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		err      error
		wantCode codes.Code
		wantMsg  string
	}{
		{err: common.ErrorUnauthorized, wantCode: codes.Unauthenticated},
		{err: common.ErrorForbidden, wantCode: codes.PermissionDenied, wantMsg: "forbidden"},
		{err: common.ErrorNotFound, wantCode: codes.NotFound, wantMsg: "secret not found"},
		{err: common.ErrorProjectNotFound, wantCode: codes.NotFound, wantMsg: "project not found"},
		{err: fmt.Errorf("%w: name is required", common.ErrorValidation), wantCode: codes.InvalidArgument, wantMsg: "validation error: name is required"},
		{err: common.ErrVersionConflict, wantCode: codes.Aborted},
		{err: cryptox.ErrConfiguration, wantCode: codes.Internal, wantMsg: "vault is not configured"},
		{err: fmt.Errorf("%w: bad tag", cryptox.ErrIntegrity), wantCode: codes.Internal, wantMsg: "failed to decrypt secret"},
		{err: cryptox.ErrFormat, wantCode: codes.Internal, wantMsg: "failed to decrypt secret"},
		{err: fmt.Errorf("%w: %w", cryptox.ErrFormat, common.ErrorMalformedRecord), wantCode: codes.Internal, wantMsg: "failed to decrypt secret"},
		{err: errors.New("pq: connection refused"), wantCode: codes.Internal, wantMsg: "internal error"},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			s := newServer(&fakeVault{err: tt.err})
			ctx := withCaller("admin")

			_, err := s.RevealSecret(ctx, &api.RevealSecretRequest{ID: "s1"})
			st := status.Convert(err)
			assert.Equal(t, tt.wantCode, st.Code())
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, st.Message())
			}

			_, err = s.ListSecrets(ctx, &api.ListSecretsRequest{ProjectID: "p1"})
			assert.Equal(t, tt.wantCode, status.Code(err))
		})
	}
}
