// Package secrets declares the storage contract for encrypted project
// secrets and its PostgreSQL implementation. Repositories only move
// bundles around; they never encrypt or decrypt.
package secrets

import (
	"context"

	"github.com/dmitrijs2005/projectvault/internal/server/models"
)

type Repository interface {
	// Create inserts s and fills in the store-generated id, version and
	// timestamps. A missing project yields common.ErrorProjectNotFound.
	Create(ctx context.Context, s *models.Secret) (*models.Secret, error)

	// ListByProject returns the project's secrets, newest first.
	ListByProject(ctx context.Context, projectID string) ([]*models.Secret, error)

	// GetByID returns common.ErrorNotFound when the id is unknown.
	GetByID(ctx context.Context, id string) (*models.Secret, error)

	// GetByIDForUpdate is GetByID plus a row lock; only meaningful inside a
	// transaction.
	GetByIDForUpdate(ctx context.Context, id string) (*models.Secret, error)

	// Update writes name, type and bundle if the stored version still equals
	// s.Version, then bumps the version. Otherwise it returns
	// common.ErrVersionConflict.
	Update(ctx context.Context, s *models.Secret) (*models.Secret, error)

	// Delete removes the row for good. Unknown ids yield common.ErrorNotFound.
	Delete(ctx context.Context, id string) error
}
