package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var testSecret = []byte("test-jwt-secret")

func TestGenerateToken_RoundTrip(t *testing.T) {
	t.Parallel()

	userID := primitive.NewObjectID().Hex()

	token, err := GenerateToken(userID, true, testSecret)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := VerifyToken(token, testSecret)
	require.NoError(t, err)

	assert.Equal(t, userID, claims.UserID)
	assert.True(t, claims.IsAdmin)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(TokenTTL), claims.ExpiresAt.Time, time.Minute)
}

func TestVerifyToken_Missing(t *testing.T) {
	t.Parallel()

	claims, err := VerifyToken("", testSecret)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestVerifyToken_Invalid(t *testing.T) {
	t.Parallel()

	validToken, err := GenerateToken(primitive.NewObjectID().Hex(), false, testSecret)
	require.NoError(t, err)

	tests := []struct {
		name string
		raw  string
	}{
		{name: "malformed", raw: "not-a-jwt"},
		{name: "wrong secret", raw: mustSign(t, []byte("another-secret"), time.Hour)},
		{name: "truncated", raw: validToken[:len(validToken)-5]},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			claims, err := VerifyToken(tt.raw, testSecret)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestVerifyToken_Expired(t *testing.T) {
	t.Parallel()

	raw := mustSign(t, testSecret, -time.Minute)

	claims, err := VerifyToken(raw, testSecret)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyToken_RejectsNonHMAC(t *testing.T) {
	t.Parallel()

	// alg=none tokens must never validate.
	token := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "x"})
	raw, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	claims, err := VerifyToken(raw, testSecret)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func mustSign(t *testing.T, secret []byte, ttl time.Duration) string {
	t.Helper()

	claims := Claims{
		UserID: primitive.NewObjectID().Hex(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)
	return raw
}
