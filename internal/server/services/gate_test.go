package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/projectvault/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessGate_Authorize(t *testing.T) {
	tests := []struct {
		name     string
		caller   string
		repoErr  error
		wantErr  error
		lookedUp bool
	}{
		{name: "admin", caller: adminID, lookedUp: true},
		{name: "anonymous", caller: "", wantErr: common.ErrorUnauthorized},
		{name: "non admin", caller: clientID, wantErr: common.ErrorForbidden, lookedUp: true},
		{name: "no profile", caller: strangerID, wantErr: common.ErrorForbidden, lookedUp: true},
		{name: "identity is not a uuid", caller: "auth0|abc", wantErr: common.ErrorForbidden},
		{name: "store failure", caller: adminID, repoErr: errors.New("conn reset"), wantErr: common.ErrorInternal, lookedUp: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profiles := newProfiles()
			profiles.err = tt.repoErr
			gate := NewAccessGate(nil, &fakeRepoManager{profiles: profiles})

			p, err := gate.Authorize(context.Background(), tt.caller)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, p)
			} else {
				require.NoError(t, err)
				assert.True(t, p.IsAdmin)
			}
			assert.Equal(t, tt.lookedUp, profiles.lookups > 0)
		})
	}
}

func TestAccessGate_NoCaching(t *testing.T) {
	profiles := newProfiles()
	gate := NewAccessGate(nil, &fakeRepoManager{profiles: profiles})
	ctx := context.Background()

	_, err := gate.Authorize(ctx, adminID)
	require.NoError(t, err)

	profiles.profiles[adminID].IsAdmin = false
	_, err = gate.Authorize(ctx, adminID)
	assert.ErrorIs(t, err, common.ErrorForbidden, "revoked admin must be rejected on the next call")
	assert.Equal(t, 2, profiles.lookups)
}
