package auth

import (
	"testing"
	"time"

	"github.com/banking-transfer-api/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testIssuer() *TokenIssuer {
	return NewTokenIssuer(config.AuthConfig{
		JWTSecret: "0123456789abcdef0123456789abcdef",
		TokenTTL:  time.Hour,
	}, "banking-transfer-api")
}

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := testIssuer()

	token, expiresAt, err := issuer.Issue(42, "jane@example.com")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", claims.Email)

	userID, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestTokenIssuer_Parse_Rejects(t *testing.T) {
	issuer := testIssuer()
	valid, _, err := issuer.Issue(7, "a@example.com")
	require.NoError(t, err)

	expired := testIssuer()
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, _, err := expired.Issue(7, "a@example.com")
	require.NoError(t, err)

	otherSecret := NewTokenIssuer(config.AuthConfig{JWTSecret: "another-secret-of-enough-length", TokenTTL: time.Hour}, "banking-transfer-api")
	forged, _, err := otherSecret.Issue(7, "a@example.com")
	require.NoError(t, err)

	otherIssuer := NewTokenIssuer(config.AuthConfig{JWTSecret: "0123456789abcdef0123456789abcdef", TokenTTL: time.Hour}, "someone-else")
	foreign, _, err := otherIssuer.Issue(7, "a@example.com")
	require.NoError(t, err)

	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "7"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not.a.token"},
		{name: "tampered", token: valid + "x"},
		{name: "expired", token: expiredToken},
		{name: "wrong secret", token: forged},
		{name: "wrong issuer", token: foreign},
		{name: "none algorithm", token: noneAlg},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := issuer.Parse(tt.token)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestClaims_UserID(t *testing.T) {
	tests := []struct {
		subject string
		want    int64
		wantErr bool
	}{
		{subject: "15", want: 15},
		{subject: "", wantErr: true},
		{subject: "abc", wantErr: true},
		{subject: "0", wantErr: true},
		{subject: "-3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.subject, func(t *testing.T) {
			c := &Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: tt.subject}}
			got, err := c.UserID()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidToken)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
