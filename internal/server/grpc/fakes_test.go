package grpc

import (
	"context"
	"time"

	"github.com/dmitrijs2005/projectvault/internal/logging"
	"github.com/dmitrijs2005/projectvault/internal/server/models"
)

type fakeVault struct {
	caller string
	patch  models.SecretUpdate

	secret   *models.Secret
	list     []*models.Secret
	revealed *models.RevealedSecret
	err      error
}

func (f *fakeVault) Create(ctx context.Context, callerID, projectID, name, value string, typ models.SecretType) (*models.Secret, error) {
	f.caller = callerID
	return f.secret, f.err
}

func (f *fakeVault) List(ctx context.Context, callerID, projectID string) ([]*models.Secret, error) {
	f.caller = callerID
	return f.list, f.err
}

func (f *fakeVault) Reveal(ctx context.Context, callerID, secretID string) (*models.RevealedSecret, error) {
	f.caller = callerID
	return f.revealed, f.err
}

func (f *fakeVault) Update(ctx context.Context, callerID, secretID string, patch models.SecretUpdate) (*models.Secret, error) {
	f.caller = callerID
	f.patch = patch
	return f.secret, f.err
}

func (f *fakeVault) Delete(ctx context.Context, callerID, secretID string) error {
	f.caller = callerID
	return f.err
}

func newServer(v VaultService) *GRPCServer {
	return NewGRPCServer("127.0.0.1:0", logging.Nop{}, v, "secret", time.Hour)
}

func withCaller(id string) context.Context {
	return context.WithValue(context.Background(), UserIDKey, id)
}
