// Package services contains server-side business logic: the access gate
// that decides who may touch project secrets, and the vault service that
// owns the boundary between cleartext and stored bundles.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/projectvault/internal/common"
	"github.com/dmitrijs2005/projectvault/internal/server/models"
	"github.com/dmitrijs2005/projectvault/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// AccessGate authorizes vault operations. Only admins pass. Nothing is
// cached: every call looks the profile up again.
type AccessGate struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewAccessGate(db *sql.DB, m repomanager.RepositoryManager) *AccessGate {
	return &AccessGate{db: db, repomanager: m}
}

// Authorize returns the caller's profile when the caller may use the vault.
//
//   - no caller identity: common.ErrorUnauthorized
//   - unknown caller or not an admin: common.ErrorForbidden
func (g *AccessGate) Authorize(ctx context.Context, callerID string) (*models.Profile, error) {
	if callerID == "" {
		return nil, common.ErrorUnauthorized
	}
	if _, err := uuid.Parse(callerID); err != nil {
		return nil, common.ErrorForbidden
	}

	profile, err := g.repomanager.Profiles(g.db).GetByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorForbidden
		}
		return nil, fmt.Errorf("%w: loading profile: %v", common.ErrorInternal, err)
	}

	if !profile.IsAdmin {
		return nil, common.ErrorForbidden
	}
	return profile, nil
}
