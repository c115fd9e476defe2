package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"curtainraiser/config"
	"curtainraiser/infras/jwt"
)

func newConfig(secret string) *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "curtainraiser"
	cfg.Session.Secret = secret

	return cfg
}

func TestJWT_GenerateAndValidate(t *testing.T) {
	svc := jwt.New(newConfig("top-secret"))

	token, err := svc.Generate("sid-1", "admin", time.Hour)
	require.NoError(t, err)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "sid-1", claims.SessionID)
	assert.Equal(t, "admin", claims.Subject)
}

func TestJWT_Validate(t *testing.T) {
	svc := jwt.New(newConfig("top-secret"))

	expired, err := svc.Generate("sid-1", "admin", -time.Minute)
	require.NoError(t, err)

	foreign, err := jwt.New(newConfig("other-secret")).Generate("sid-1", "admin", time.Hour)
	require.NoError(t, err)

	otherIssuerCfg := newConfig("top-secret")
	otherIssuerCfg.App.Name = "someone-else"
	otherIssuer, err := jwt.New(otherIssuerCfg).Generate("sid-1", "admin", time.Hour)
	require.NoError(t, err)

	noSession, err := svc.Generate("", "admin", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{name: "expired", token: expired, wantErr: jwt.ErrExpiredToken},
		{name: "signed with another secret", token: foreign, wantErr: jwt.ErrInvalidToken},
		{name: "another issuer", token: otherIssuer, wantErr: jwt.ErrInvalidToken},
		{name: "garbage", token: "not.a.token", wantErr: jwt.ErrInvalidToken},
		{name: "empty", token: "", wantErr: jwt.ErrInvalidToken},
		{name: "missing session id", token: noSession, wantErr: jwt.ErrInvalidClaim},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.Validate(tt.token)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, claims)
		})
	}
}

func TestJWT_MissingSecret(t *testing.T) {
	svc := jwt.New(newConfig(""))

	_, err := svc.Generate("sid", "admin", time.Hour)
	assert.ErrorIs(t, err, jwt.ErrMissingKey)

	_, err = svc.Validate("anything")
	assert.ErrorIs(t, err, jwt.ErrMissingKey)
}
