package secrets

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/projectvault/internal/common"
	"github.com/dmitrijs2005/projectvault/internal/dbx"
	"github.com/dmitrijs2005/projectvault/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

// foreignKeyViolation is the PostgreSQL SQLSTATE for a broken FK reference.
const foreignKeyViolation = "23503"

const selectColumns = `id, project_id, name, value_encrypted, type, version, created_at, updated_at`

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSecret(row scanner) (*models.Secret, error) {
	var (
		s   models.Secret
		typ string
	)
	if err := row.Scan(&s.ID, &s.ProjectID, &s.Name, &s.ValueEncrypted, &typ, &s.Version, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	s.Type = models.SecretType(typ)
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *PostgresRepository) Create(ctx context.Context, s *models.Secret) (*models.Secret, error) {
	query :=
		`INSERT INTO secrets (project_id, name, value_encrypted, type)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, version, created_at, updated_at
		 `

	out := *s
	err := r.db.QueryRowContext(ctx, query, s.ProjectID, s.Name, s.ValueEncrypted, string(s.Type)).
		Scan(&out.ID, &out.Version, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return nil, common.ErrorProjectNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return &out, nil
}

func (r *PostgresRepository) ListByProject(ctx context.Context, projectID string) ([]*models.Secret, error) {
	query := `SELECT ` + selectColumns + ` FROM secrets
		WHERE project_id = $1
		ORDER BY created_at DESC, id
		`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to select secrets: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Secret, 0)
	for rows.Next() {
		s, err := scanSecret(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Secret, error) {
	return r.get(ctx, `SELECT `+selectColumns+` FROM secrets WHERE id = $1`, id)
}

func (r *PostgresRepository) GetByIDForUpdate(ctx context.Context, id string) (*models.Secret, error) {
	return r.get(ctx, `SELECT `+selectColumns+` FROM secrets WHERE id = $1 FOR UPDATE`, id)
}

func (r *PostgresRepository) get(ctx context.Context, query string, id string) (*models.Secret, error) {
	s, err := scanSecret(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		if errors.Is(err, common.ErrorMalformedRecord) {
			return nil, err
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}

func (r *PostgresRepository) Update(ctx context.Context, s *models.Secret) (*models.Secret, error) {
	query :=
		`UPDATE secrets
		 SET name = $2, value_encrypted = $3, type = $4, version = version + 1, updated_at = now()
		 WHERE id = $1 AND version = $5
		 RETURNING version, updated_at
		 `

	out := *s
	err := r.db.QueryRowContext(ctx, query, s.ID, s.Name, s.ValueEncrypted, string(s.Type), s.Version).
		Scan(&out.Version, &out.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrVersionConflict
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &out, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM secrets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}
