package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/coffeetree-vn/attendance-sync-go/internal/config"
	"github.com/coffeetree-vn/attendance-sync-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthHandler(t *testing.T) AuthHandler {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	admin := config.AdminConfig{
		Email:        "ops@example.com",
		PasswordHash: string(hash),
	}
	jwtService := jwt.NewJWTService("test-secret-key-for-jwt", "1h")
	return NewAuthHandler(admin, jwtService)
}

func postLogin(t *testing.T, h AuthHandler, body map[string]string) *httptest.ResponseRecorder {
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	h.Login(rec, req)
	return rec
}

func TestLogin_Success(t *testing.T) {
	h := newAuthHandler(t)

	rec := postLogin(t, h, map[string]string{
		"email":    "ops@example.com",
		"password": "password123",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			AccessToken string `json:"access_token"`
			TokenType   string `json:"token_type"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Data.AccessToken)
	assert.Equal(t, "Bearer", resp.Data.TokenType)
}

func TestLogin_WrongPassword(t *testing.T) {
	h := newAuthHandler(t)

	rec := postLogin(t, h, map[string]string{
		"email":    "ops@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogin_WrongEmail(t *testing.T) {
	h := newAuthHandler(t)

	rec := postLogin(t, h, map[string]string{
		"email":    "nope@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogin_MissingFields(t *testing.T) {
	h := newAuthHandler(t)

	rec := postLogin(t, h, map[string]string{"email": "ops@example.com"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
