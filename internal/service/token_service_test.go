package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTTokenService_RoundTrip(t *testing.T) {
	svc := NewJWTTokenService("test-secret", time.Hour, "staking-eligibility-service")

	token, expiry, err := svc.Generate("operator")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiry, 5*time.Second)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "operator", claims.Subject)
}

func TestJWTTokenService_WrongSecret(t *testing.T) {
	svc := NewJWTTokenService("secret-a", time.Hour, "issuer")
	other := NewJWTTokenService("secret-b", time.Hour, "issuer")

	token, _, err := svc.Generate("operator")
	require.NoError(t, err)

	_, err = other.Validate(token)
	assert.Error(t, err)
}

func TestJWTTokenService_Expired(t *testing.T) {
	svc := NewJWTTokenService("test-secret", -time.Minute, "issuer")

	token, _, err := svc.Generate("operator")
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.Error(t, err, "expired token should be rejected")
}

func TestJWTTokenService_Garbage(t *testing.T) {
	svc := NewJWTTokenService("test-secret", time.Hour, "issuer")

	_, err := svc.Validate("not.a.jwt")
	assert.Error(t, err)
}
