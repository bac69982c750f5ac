package profiles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/projectvault/internal/common"
	"github.com/dmitrijs2005/projectvault/internal/dbx"
	"github.com/dmitrijs2005/projectvault/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	query :=
		`SELECT id, email, full_name, is_admin, created_at FROM profiles
		 WHERE id = $1
		 `

	p := &models.Profile{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Email, &p.FullName, &p.IsAdmin, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return p, nil
}
