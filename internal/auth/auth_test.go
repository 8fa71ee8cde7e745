package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHasher(t *testing.T) {
	t.Parallel()

	h := &PasswordHasher{Cost: 4}

	hash, err := h.Hash("p1")
	require.NoError(t, err)
	assert.NotEqual(t, "p1", hash)
	assert.True(t, h.Check("p1", hash))
	assert.False(t, h.Check("p2", hash))
	assert.False(t, h.Check("p1", "not-a-hash"))

	again, err := h.Hash("p1")
	require.NoError(t, err)
	assert.NotEqual(t, hash, again, "salted hashes must differ")
}

func TestPasswordHasher_DefaultCost(t *testing.T) {
	t.Parallel()

	hash, err := NewPasswordHasher().Hash("secret")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$2a$10$"))
}

func TestValidateNewPassword(t *testing.T) {
	assert.NoError(t, ValidateNewPassword("p1"))
	assert.Error(t, ValidateNewPassword(""))
	assert.Error(t, ValidateNewPassword(strings.Repeat("x", 73)))
}

func TestTokenManager_IssueAndValidate(t *testing.T) {
	t.Parallel()

	m := NewTokenManager("secret", time.Hour)
	tok, expiresAt, err := m.Issue("u1", "alice")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := m.Validate(tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "u1", claims.Subject)
}

func TestTokenManager_Expiry(t *testing.T) {
	t.Parallel()

	issuedAt := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewTokenManager("secret", time.Hour).WithClock(func() time.Time { return issuedAt })
	tok, _, err := m.Issue("u1", "alice")
	require.NoError(t, err)

	at := func(d time.Duration) *TokenManager {
		return m.WithClock(func() time.Time { return issuedAt.Add(d) })
	}

	_, err = at(59 * time.Minute).Validate(tok)
	assert.NoError(t, err)

	_, err = at(61 * time.Minute).Validate(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsForgedAndWrongAlg(t *testing.T) {
	t.Parallel()

	m := NewTokenManager("secret", time.Hour)

	other := NewTokenManager("other-secret", time.Hour)
	forged, _, err := other.Issue("u1", "alice")
	require.NoError(t, err)
	_, err = m.Validate(forged)
	assert.ErrorIs(t, err, ErrInvalidToken)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
		UserID:           "u1",
	})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = m.Validate(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.Validate("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RequiresExpiry(t *testing.T) {
	t.Parallel()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: "u1"})
	signed, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewTokenManager("secret", time.Hour).Validate(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
