package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/projectvault/internal/common"
	"github.com/dmitrijs2005/projectvault/internal/cryptox"
	"github.com/dmitrijs2005/projectvault/internal/dbx"
	"github.com/dmitrijs2005/projectvault/internal/logging"
	"github.com/dmitrijs2005/projectvault/internal/server/models"
	"github.com/dmitrijs2005/projectvault/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// SecretCipher is satisfied by *cryptox.Cipher and *cryptox.LazyCipher.
type SecretCipher interface {
	Encrypt(cleartext string) (string, error)
	Decrypt(bundle string) (string, error)
}

// VaultService is the only component that turns cleartext into stored
// bundles and back. Each method authorizes the caller before touching the
// store.
type VaultService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	cipher      SecretCipher
	gate        *AccessGate
	logger      logging.Logger
}

func NewVaultService(db *sql.DB, m repomanager.RepositoryManager, c SecretCipher, gate *AccessGate, l logging.Logger) *VaultService {
	return &VaultService{
		db:          db,
		repomanager: m,
		cipher:      c,
		gate:        gate,
		logger:      l.With("module", "vault"),
	}
}

// Create encrypts value and stores it as a new secret of projectID. The
// returned record carries the bundle, never the cleartext.
func (s *VaultService) Create(ctx context.Context, callerID, projectID, name, value string, typ models.SecretType) (*models.Secret, error) {
	if _, err := s.gate.Authorize(ctx, callerID); err != nil {
		return nil, err
	}

	if err := validateProjectID(projectID); err != nil {
		return nil, err
	}
	name, err := validateName(name)
	if err != nil {
		return nil, err
	}
	t, err := models.ParseSecretType(string(typ))
	if err != nil {
		return nil, err
	}

	bundle, err := s.cipher.Encrypt(value)
	if err != nil {
		return nil, err
	}

	secret, err := s.repomanager.Secrets(s.db).Create(ctx, &models.Secret{
		ProjectID:      projectID,
		Name:           name,
		ValueEncrypted: bundle,
		Type:           t,
	})
	if err != nil {
		if errors.Is(err, common.ErrorProjectNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating secret: %w", err)
	}

	s.logger.Info(ctx, "secret created", "secret_id", secret.ID, "project_id", projectID, "caller", callerID)
	return secret, nil
}

// List returns the project's secrets newest first without decrypting any
// of them.
func (s *VaultService) List(ctx context.Context, callerID, projectID string) ([]*models.Secret, error) {
	if _, err := s.gate.Authorize(ctx, callerID); err != nil {
		return nil, err
	}
	if err := validateProjectID(projectID); err != nil {
		return nil, err
	}

	list, err := s.repomanager.Secrets(s.db).ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("error listing secrets: %w", err)
	}
	return list, nil
}

// Reveal decrypts a single secret. Decryption failures come back as the
// cryptox error; their detail is logged here and nowhere else.
func (s *VaultService) Reveal(ctx context.Context, callerID, secretID string) (*models.RevealedSecret, error) {
	if _, err := s.gate.Authorize(ctx, callerID); err != nil {
		return nil, err
	}
	if err := validateSecretID(secretID); err != nil {
		return nil, err
	}

	secret, err := s.repomanager.Secrets(s.db).GetByID(ctx, secretID)
	if err != nil {
		if errors.Is(err, common.ErrorMalformedRecord) {
			s.logger.Error(ctx, "stored secret is malformed", "secret_id", secretID, "error", err.Error())
			return nil, fmt.Errorf("%w: %w", cryptox.ErrFormat, err)
		}
		return nil, wrapLookup(err, "error loading secret")
	}

	value, err := s.cipher.Decrypt(secret.ValueEncrypted)
	if err != nil {
		s.logger.Error(ctx, "secret decryption failed", "secret_id", secretID, "error", err.Error())
		return nil, err
	}

	s.logger.Info(ctx, "secret revealed", "secret_id", secretID, "caller", callerID)
	return &models.RevealedSecret{Secret: *secret, Value: value}, nil
}

// Update applies patch to a secret. A new value is encrypted under a fresh
// IV. With ExpectedVersion zero the last writer wins.
func (s *VaultService) Update(ctx context.Context, callerID, secretID string, patch models.SecretUpdate) (*models.Secret, error) {
	if _, err := s.gate.Authorize(ctx, callerID); err != nil {
		return nil, err
	}
	if err := validateSecretID(secretID); err != nil {
		return nil, err
	}

	var name string
	if patch.Name != nil {
		n, err := validateName(*patch.Name)
		if err != nil {
			return nil, err
		}
		name = n
	}
	var typ models.SecretType
	if patch.Type != nil {
		t, err := models.ParseSecretType(string(*patch.Type))
		if err != nil {
			return nil, err
		}
		typ = t
	}
	var bundle string
	if patch.Value != nil {
		b, err := s.cipher.Encrypt(*patch.Value)
		if err != nil {
			return nil, err
		}
		bundle = b
	}

	var updated *models.Secret
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Secrets(tx)

		cur, err := repo.GetByIDForUpdate(ctx, secretID)
		if err != nil {
			return err
		}
		if patch.ExpectedVersion != 0 && cur.Version != patch.ExpectedVersion {
			return common.ErrVersionConflict
		}

		if patch.Name != nil {
			cur.Name = name
		}
		if patch.Type != nil {
			cur.Type = typ
		}
		if patch.Value != nil {
			cur.ValueEncrypted = bundle
		}

		updated, err = repo.Update(ctx, cur)
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrVersionConflict) {
			return nil, err
		}
		return nil, wrapLookup(err, "error updating secret")
	}

	s.logger.Info(ctx, "secret updated", "secret_id", secretID, "caller", callerID, "value_changed", patch.Value != nil)
	return updated, nil
}

// Delete removes a secret permanently.
func (s *VaultService) Delete(ctx context.Context, callerID, secretID string) error {
	if _, err := s.gate.Authorize(ctx, callerID); err != nil {
		return err
	}
	if err := validateSecretID(secretID); err != nil {
		return err
	}

	if err := s.repomanager.Secrets(s.db).Delete(ctx, secretID); err != nil {
		return wrapLookup(err, "error deleting secret")
	}

	s.logger.Info(ctx, "secret deleted", "secret_id", secretID, "caller", callerID)
	return nil
}

// --- helpers below ---

func validateProjectID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: invalid project id %q", common.ErrorValidation, id)
	}
	return nil
}

// Secret ids that cannot exist are reported as missing.
func validateSecretID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return common.ErrorNotFound
	}
	return nil
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: name is required", common.ErrorValidation)
	}
	return name, nil
}

func wrapLookup(err error, msg string) error {
	if errors.Is(err, common.ErrorNotFound) {
		return err
	}
	return fmt.Errorf("%s: %w", msg, err)
}
