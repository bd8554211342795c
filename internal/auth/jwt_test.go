package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWT(t *testing.T, now time.Time) *JWTService {
	t.Helper()
	svc, err := NewJWTService([]byte("test-secret"))
	require.NoError(t, err)
	svc.now = func() time.Time { return now }
	return svc
}

func TestNewJWTService_EmptySecret(t *testing.T) {
	_, err := NewJWTService(nil)
	assert.Error(t, err)
}

func TestJWTService_IssueAndVerify(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestJWT(t, now)

	token, err := svc.Issue("user-123", 10000*time.Second)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(token, "."))

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.True(t, claims.IssuedAt.Equal(now))
	assert.True(t, claims.ExpiresAt.Equal(now.Add(10000*time.Second)))
}

func TestJWTService_PayloadShape(t *testing.T) {
	svc := newTestJWT(t, time.Now())

	token, err := svc.Issue("user-123", time.Hour)
	require.NoError(t, err)

	parsed := jwt.MapClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, parsed)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"id": "user-123"}, parsed["user"])
	assert.Contains(t, parsed, "exp")
	assert.Contains(t, parsed, "iat")
	assert.Len(t, parsed, 3)
}

func TestJWTService_Expired(t *testing.T) {
	issuedAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestJWT(t, issuedAt)

	token, err := svc.Issue("user-123", time.Hour)
	require.NoError(t, err)

	svc.now = func() time.Time { return issuedAt.Add(2 * time.Hour) }
	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTService_Rejects(t *testing.T) {
	svc := newTestJWT(t, time.Now())
	other, err := NewJWTService([]byte("another-secret"))
	require.NoError(t, err)

	foreign, err := other.Issue("user-123", time.Hour)
	require.NoError(t, err)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{User: UserClaim{ID: "user-123"}}).
		SignedString([]byte("test-secret"))
	require.NoError(t, err)

	noUser, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		User:             UserClaim{ID: "user-123"},
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"garbage":       "not-a-token",
		"empty":         "",
		"wrong secret":  foreign,
		"no expiry":     noExp,
		"no user claim": noUser,
		"alg none":      unsigned,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Verify(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestJWTService_IssueEmptyUserID(t *testing.T) {
	svc := newTestJWT(t, time.Now())

	token, err := svc.Issue("", time.Hour)
	assert.Empty(t, token)

	var signErr *SigningError
	assert.ErrorAs(t, err, &signErr)
}
