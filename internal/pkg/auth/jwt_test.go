package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(accessExp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: 720 * time.Hour,
		TokenIssuer:     "alumnitrack.test",
	})
}

func TestGenerateTokenPair(t *testing.T) {
	svc := newTestService(time.Hour)

	pair, err := svc.GenerateTokenPair(42, "alumni@example.com", "ALUMNI")
	require.NoError(t, err)

	assert.NotEmpty(t, pair.AccessToken)
	assert.Equal(t, 3600, pair.ExpiresIn)

	// The refresh token doubles as the session ID, so it must be a UUID
	_, err = uuid.Parse(pair.RefreshToken)
	assert.NoError(t, err)
}

func TestValidateAndExtractClaims(t *testing.T) {
	svc := newTestService(time.Hour)

	pair, err := svc.GenerateTokenPair(42, "alumni@example.com", "ALUMNI")
	require.NoError(t, err)

	claims, err := svc.ValidateAndExtractClaims(pair.AccessToken)
	require.NoError(t, err)

	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "alumni@example.com", claims.Email)
	assert.Equal(t, "ALUMNI", claims.Role)
	assert.Equal(t, "alumnitrack.test", claims.Issuer)

	// The access token names its session so handlers can address
	// per-session state without the refresh token
	assert.Equal(t, pair.RefreshToken, claims.SessionID)
}

func TestValidateAndExtractClaims_EmptyToken(t *testing.T) {
	svc := newTestService(time.Hour)

	_, err := svc.ValidateAndExtractClaims("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateAndExtractClaims_WrongSecret(t *testing.T) {
	svc := newTestService(time.Hour)
	other := NewJWTService(JWTConfig{
		SecretKey:       "different-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 720 * time.Hour,
		TokenIssuer:     "alumnitrack.test",
	})

	pair, err := other.GenerateTokenPair(42, "alumni@example.com", "ALUMNI")
	require.NoError(t, err)

	_, err = svc.ValidateAndExtractClaims(pair.AccessToken)
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := newTestService(-time.Minute)

	pair, err := svc.GenerateTokenPair(42, "alumni@example.com", "ALUMNI")
	require.NoError(t, err)

	_, err = svc.ValidateToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	token, err = ExtractBearerToken("abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = ExtractBearerToken("")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}
