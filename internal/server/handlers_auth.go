package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tandemledger/tandem/internal/common"
	"github.com/tandemledger/tandem/internal/models"
)

// signJWT creates a signed token for the given account.
func signJWT(user *models.UserAccount, config *common.AuthConfig) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"jti":  uuid.New().String(),
		"sub":  user.Username,
		"name": user.DisplayName,
		"iss":  "tandem-server",
		"iat":  now.Unix(),
		"exp":  now.Add(config.GetTokenExpiry()).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.JWTSecret))
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token       string `json:"token"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name,omitempty"`
	ExpiresIn   int    `json:"expires_in"`
}

// handleAuthLogin handles POST /api/auth/login. Password checks and user
// lookups share one failure message so usernames cannot be probed.
func (s *Server) handleAuthLogin(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	if s.app.Config.Auth.JWTSecret == "" {
		WriteError(w, http.StatusNotImplemented, "Authentication is not configured")
		return
	}

	var req loginRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.Username == "" || req.Password == "" {
		WriteError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	user, err := s.app.Storage.InternalStore().GetUser(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			WriteError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		s.logger.Error().Err(err).Msg("User lookup failed during login")
		WriteError(w, http.StatusServiceUnavailable, "Storage unavailable")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Info().Str("username", req.Username).Msg("Login rejected")
		WriteError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := signJWT(user, &s.app.Config.Auth)
	if err != nil {
		s.logger.Error().Err(err).Msg("Token signing failed")
		WriteError(w, http.StatusInternalServerError, "Could not issue token")
		return
	}

	s.logger.Info().Str("username", user.Username).Msg("Login succeeded")
	WriteJSON(w, http.StatusOK, loginResponse{
		Token:       token,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		ExpiresIn:   int(s.app.Config.Auth.GetTokenExpiry().Seconds()),
	})
}
