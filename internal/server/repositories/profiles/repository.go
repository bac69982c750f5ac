// Package profiles reads portal user profiles, which carry the admin flag
// the access gate checks.
package profiles

import (
	"context"

	"github.com/dmitrijs2005/projectvault/internal/server/models"
)

type Repository interface {
	// GetByID returns common.ErrorNotFound when no profile exists.
	GetByID(ctx context.Context, id string) (*models.Profile, error)
}
