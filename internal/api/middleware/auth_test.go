package middleware_test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-model-indexer/internal/api/middleware"
)

func generateKey(t *testing.T) (*rsa.PrivateKey, string) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	pemKey := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})

	return key, string(pemKey)
}

func sign(t *testing.T, key *rsa.PrivateKey, method jwt.SigningMethod, claims jwt.RegisteredClaims) string {
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestAuthenticate(t *testing.T) {
	key, publicPEM := generateKey(t)
	otherKey, _ := generateKey(t)

	authenticator := middleware.NewAuthenticator(middleware.AuthConfig{
		JWTPublicKey: publicPEM,
		JWTIssuer:    "ff-admin",
		APIKeys:      []string{"", "key-1", "key-2"},
	})

	valid := sign(t, key, jwt.SigningMethodRS256, jwt.RegisteredClaims{
		Subject:   "operator",
		Issuer:    "ff-admin",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})

	tests := []struct {
		name     string
		header   string
		success  bool
		authType string
	}{
		{name: "valid jwt", header: "Bearer " + valid, success: true, authType: middleware.AUTH_TYPE_JWT},
		{name: "scheme is case insensitive", header: "bearer " + valid, success: true, authType: middleware.AUTH_TYPE_JWT},
		{name: "expired jwt", header: "Bearer " + sign(t, key, jwt.SigningMethodRS256, jwt.RegisteredClaims{
			Issuer: "ff-admin", ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		})},
		{name: "wrong issuer", header: "Bearer " + sign(t, key, jwt.SigningMethodRS256, jwt.RegisteredClaims{
			Issuer: "someone", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})},
		{name: "wrong key", header: "Bearer " + sign(t, otherKey, jwt.SigningMethodRS256, jwt.RegisteredClaims{
			Issuer: "ff-admin", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})},
		{name: "valid api key", header: "ApiKey key-2", success: true, authType: middleware.AUTH_TYPE_APIKEY},
		{name: "unknown api key", header: "ApiKey key-3"},
		{name: "empty configured key is not accepted", header: "ApiKey "},
		{name: "missing header", header: ""},
		{name: "unsupported scheme", header: "Basic dXNlcjpwYXNz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := authenticator.Authenticate(tt.header)
			assert.Equal(t, tt.success, result.Success)
			if tt.success {
				assert.Equal(t, tt.authType, result.AuthType)
				assert.NoError(t, result.Error)
			} else {
				assert.Error(t, result.Error)
			}
		})
	}
}

func TestAuthenticate_JWTSubject(t *testing.T) {
	key, publicPEM := generateKey(t)
	authenticator := middleware.NewAuthenticator(middleware.AuthConfig{JWTPublicKey: publicPEM})

	result := authenticator.Authenticate("Bearer " + sign(t, key, jwt.SigningMethodRS512, jwt.RegisteredClaims{Subject: "operator"}))
	require.True(t, result.Success)
	assert.Equal(t, "operator", result.AuthSubject)
	assert.Equal(t, "operator", result.Claims.Subject)
}

func TestAuthenticate_NoKeysConfigured(t *testing.T) {
	authenticator := middleware.NewAuthenticator(middleware.AuthConfig{})

	assert.False(t, authenticator.Authenticate("Bearer a.b.c").Success)
	assert.False(t, authenticator.Authenticate("ApiKey anything").Success)
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/admin", middleware.Auth(middleware.AuthConfig{APIKeys: []string{"secret"}}), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(string(middleware.AUTH_TYPE_KEY)))
	})

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "ApiKey secret")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, middleware.AUTH_TYPE_APIKEY, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"unauthorized"`)
}
