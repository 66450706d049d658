package security

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrack/finance-api/internal/core/domain"
)

func newTestService(t *testing.T) *JWTService {
	t.Helper()
	svc, err := NewJWTService(TokenConfig{Secret: "test-secret"})
	require.NoError(t, err)
	return svc
}

func TestNewJWTService_RequiresSecret(t *testing.T) {
	_, err := NewJWTService(TokenConfig{})
	require.Error(t, err)
}

func TestNewJWTService_DefaultTTL(t *testing.T) {
	svc := newTestService(t)
	assert.Equal(t, 7*24*time.Hour, svc.ttl)
}

func TestJWTService_IssueAndVerify(t *testing.T) {
	svc := newTestService(t)

	token, err := svc.Issue("user-1", "a@x.com")
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3)

	id, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, domain.Identity{UserID: "user-1", Email: "a@x.com"}, id)
}

func TestJWTService_ExpiryClaim(t *testing.T) {
	svc := newTestService(t)
	fixed := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	token, err := svc.Issue("user-1", "a@x.com")
	require.NoError(t, err)

	claims := &Claims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, claims)
	require.NoError(t, err)
	assert.Equal(t, fixed.Add(DefaultTokenTTL).Unix(), claims.ExpiresAt.Unix())
	assert.Equal(t, fixed.Unix(), claims.IssuedAt.Unix())
}

func TestJWTService_Expired(t *testing.T) {
	svc := newTestService(t)
	svc.now = func() time.Time { return time.Now().Add(-8 * 24 * time.Hour) }

	token, err := svc.Issue("user-1", "a@x.com")
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestJWTService_Tampered(t *testing.T) {
	svc := newTestService(t)
	token, err := svc.Issue("user-1", "a@x.com")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	for i := range parts {
		mutated := make([]string, len(parts))
		copy(mutated, parts)
		mutated[i] = flipMiddle(parts[i])

		_, err := svc.Verify(strings.Join(mutated, "."))
		assert.ErrorIs(t, err, domain.ErrTokenInvalid, "segment %d", i)
		assert.False(t, errors.Is(err, domain.ErrTokenExpired), "segment %d", i)
	}
}

func TestJWTService_WrongSecret(t *testing.T) {
	other, err := NewJWTService(TokenConfig{Secret: "another-secret"})
	require.NoError(t, err)
	token, err := other.Issue("user-1", "a@x.com")
	require.NoError(t, err)

	_, err = newTestService(t).Verify(token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestJWTService_RejectsOtherAlgorithms(t *testing.T) {
	claims := Claims{
		UserID:           "user-1",
		Email:            "a@x.com",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	svc := newTestService(t)
	for _, token := range []string{none, hs512} {
		_, err := svc.Verify(token)
		assert.ErrorIs(t, err, domain.ErrTokenInvalid)
	}
}

func TestJWTService_RequiresExpiryAndSubject(t *testing.T) {
	svc := newTestService(t)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: "user-1"}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = svc.Verify(noExp)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = svc.Verify(noSubject)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestJWTService_Issuer(t *testing.T) {
	a, err := NewJWTService(TokenConfig{Secret: "s", Issuer: "fintrack"})
	require.NoError(t, err)
	b, err := NewJWTService(TokenConfig{Secret: "s", Issuer: "someone-else"})
	require.NoError(t, err)

	token, err := b.Issue("user-1", "a@x.com")
	require.NoError(t, err)

	_, err = a.Verify(token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestJWTService_Malformed(t *testing.T) {
	svc := newTestService(t)
	for _, token := range []string{"", "abc", "not.a.jwt", "a.b.c.d"} {
		_, err := svc.Verify(token)
		assert.ErrorIs(t, err, domain.ErrTokenInvalid, "token %q", token)
	}
}

// flipMiddle replaces the middle character of a base64url segment so every
// decoded bit pattern changes.
func flipMiddle(s string) string {
	i := len(s) / 2
	b := []byte(s)
	if b[i] == 'A' {
		b[i] = 'B'
	} else {
		b[i] = 'A'
	}
	return string(b)
}
