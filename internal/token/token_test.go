package token

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlas-console/atlas-console/internal/shared"
)

func TestIssueAndVerifyRoundTrip(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour)
	id := shared.Identity{
		UserID:  uuid.New(),
		AdminID: uuid.New(),
		Role:    shared.RoleEditor,
	}

	raw, err := issuer.Issue(id)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	got, err := issuer.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestVerifyExpiredToken(t *testing.T) {
	issuer := NewIssuer("test-secret", -time.Minute)
	raw, err := issuer.Issue(shared.Identity{
		UserID:  uuid.New(),
		AdminID: uuid.New(),
		Role:    shared.RoleAdmin,
	})
	require.NoError(t, err)

	_, err = issuer.Verify(raw)
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrTokenInvalid))
}

func TestVerifyWrongSecret(t *testing.T) {
	raw, err := NewIssuer("secret-a", time.Hour).Issue(shared.Identity{
		UserID:  uuid.New(),
		AdminID: uuid.New(),
		Role:    shared.RoleViewer,
	})
	require.NoError(t, err)

	_, err = NewIssuer("secret-b", time.Hour).Verify(raw)
	assert.ErrorIs(t, err, shared.ErrTokenInvalid)
}

func TestVerifyMalformedToken(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour)
	for _, raw := range []string{"", "garbage", "a.b.c"} {
		_, err := issuer.Verify(raw)
		assert.ErrorIs(t, err, shared.ErrTokenInvalid, "token %q", raw)
	}
}
