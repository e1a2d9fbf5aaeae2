package http

import (
	"crypto/subtle"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/coffeetree-vn/attendance-sync-go/internal/config"
	"github.com/coffeetree-vn/attendance-sync-go/internal/domain/auth"
	"github.com/coffeetree-vn/attendance-sync-go/internal/handler/http/response"
	"github.com/coffeetree-vn/attendance-sync-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
}

type authHandlerImpl struct {
	admin      config.AdminConfig
	jwtService jwt.Service
}

func NewAuthHandler(admin config.AdminConfig, jwtService jwt.Service) AuthHandler {
	return &authHandlerImpl{
		admin:      admin,
		jwtService: jwtService,
	}
}

// Login implements AuthHandler. The single operator account comes from
// the environment; the password hash is bcrypt.
func (h *authHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	emailMatch := subtle.ConstantTimeCompare([]byte(req.Email), []byte(h.admin.Email)) == 1
	pwErr := bcrypt.CompareHashAndPassword([]byte(h.admin.PasswordHash), []byte(req.Password))
	if !emailMatch || pwErr != nil {
		response.HandleError(w, auth.ErrInvalidCredentials)
		return
	}

	token, expiresAt, err := h.jwtService.GenerateAccessToken(req.Email)
	if err != nil {
		slog.Error("Failed to generate access token", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, auth.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
	})
}
