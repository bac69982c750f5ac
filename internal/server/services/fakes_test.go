package services

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/projectvault/internal/common"
	"github.com/dmitrijs2005/projectvault/internal/cryptox"
	"github.com/dmitrijs2005/projectvault/internal/dbx"
	"github.com/dmitrijs2005/projectvault/internal/logging"
	"github.com/dmitrijs2005/projectvault/internal/server/models"
	profilesrepo "github.com/dmitrijs2005/projectvault/internal/server/repositories/profiles"
	secretsrepo "github.com/dmitrijs2005/projectvault/internal/server/repositories/secrets"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const (
	adminID    = "11111111-1111-4111-8111-111111111111"
	clientID   = "22222222-2222-4222-8222-222222222222"
	strangerID = "33333333-3333-4333-8333-333333333333"
	projectID  = "aaaaaaaa-aaaa-4aaa-8aaa-aaaaaaaaaaaa"
	otherProj  = "bbbbbbbb-bbbb-4bbb-8bbb-bbbbbbbbbbbb"
	testKey    = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"
)

// --- in-memory secrets repository ---

type memSecrets struct {
	mu       sync.Mutex
	rows     map[string]models.Secret
	projects map[string]bool
	clock    time.Time
	writes   int

	getErr    error
	updateErr error
}

func newMemSecrets(projects ...string) *memSecrets {
	m := &memSecrets{
		rows:     map[string]models.Secret{},
		projects: map[string]bool{},
		clock:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, p := range projects {
		m.projects[p] = true
	}
	return m
}

func (m *memSecrets) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *memSecrets) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

func (m *memSecrets) raw(id string) models.Secret {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rows[id]
}

func (m *memSecrets) Create(ctx context.Context, s *models.Secret) (*models.Secret, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.projects[s.ProjectID] {
		return nil, common.ErrorProjectNotFound
	}
	out := *s
	out.ID = uuid.NewString()
	out.Version = 1
	out.CreatedAt = m.tick()
	out.UpdatedAt = out.CreatedAt
	m.rows[out.ID] = out
	m.writes++
	return &out, nil
}

func (m *memSecrets) ListByProject(ctx context.Context, projectID string) ([]*models.Secret, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*models.Secret, 0)
	for _, s := range m.rows {
		if s.ProjectID == projectID {
			s := s
			out = append(out, &s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memSecrets) GetByID(ctx context.Context, id string) (*models.Secret, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	s, ok := m.rows[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &s, nil
}

func (m *memSecrets) GetByIDForUpdate(ctx context.Context, id string) (*models.Secret, error) {
	return m.GetByID(ctx, id)
}

func (m *memSecrets) Update(ctx context.Context, s *models.Secret) (*models.Secret, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	cur, ok := m.rows[s.ID]
	if !ok || cur.Version != s.Version {
		return nil, common.ErrVersionConflict
	}
	out := *s
	out.Version++
	out.UpdatedAt = m.tick()
	m.rows[out.ID] = out
	m.writes++
	return &out, nil
}

func (m *memSecrets) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return common.ErrorNotFound
	}
	delete(m.rows, id)
	m.writes++
	return nil
}

// --- in-memory profiles repository ---

type memProfiles struct {
	profiles map[string]*models.Profile
	err      error
	lookups  int
}

func (p *memProfiles) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	p.lookups++
	if p.err != nil {
		return nil, p.err
	}
	prof, ok := p.profiles[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return prof, nil
}

func newProfiles() *memProfiles {
	return &memProfiles{profiles: map[string]*models.Profile{
		adminID:  {ID: adminID, Email: "admin@studio.dev", IsAdmin: true},
		clientID: {ID: clientID, Email: "client@acme.com", IsAdmin: false},
	}}
}

// --- repository manager ---

type fakeRepoManager struct {
	secrets  *memSecrets
	profiles *memProfiles
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Secrets(db dbx.DBTX) secretsrepo.Repository   { return m.secrets }
func (m *fakeRepoManager) Profiles(db dbx.DBTX) profilesrepo.Repository { return m.profiles }

// --- fixture ---

type fixture struct {
	vault    *VaultService
	secrets  *memSecrets
	profiles *memProfiles
	mock     sqlmock.Sqlmock
}

func newFixtureWithCipher(t *testing.T, c SecretCipher) *fixture {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rm := &fakeRepoManager{secrets: newMemSecrets(projectID, otherProj), profiles: newProfiles()}
	gate := NewAccessGate(db, rm)

	return &fixture{
		vault:    NewVaultService(db, rm, c, gate, logging.Nop{}),
		secrets:  rm.secrets,
		profiles: rm.profiles,
		mock:     mock,
	}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	c, err := cryptox.NewCipherFromMaterial(testKey)
	require.NoError(t, err)
	return newFixtureWithCipher(t, c)
}

func strPtr(s string) *string { return &s }

func typePtr(t models.SecretType) *models.SecretType { return &t }
