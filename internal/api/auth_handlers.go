package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"licznik-schodow/internal/auth"
	"licznik-schodow/internal/database"
	"licznik-schodow/internal/models"

	"github.com/google/uuid"
	"github.com/jaevor/go-nanoid"
)

type RegisterRequest struct {
	Username string `json:"username" example:"anna"`
	Password string `json:"password" example:"password123"`
}

type LoginRequest struct {
	Username string `json:"username" example:"anna"`
	Password string `json:"password" example:"password123"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9...."`
	RefreshToken string `json:"refresh_token" example:"V1StGXR8_Z5jdHi6B-myT78q_Z5jdHi6B-myT78q"`
}

// @Summary      Register a new challenger
// @Description  Creates a user account and returns a token pair so the client can start logging immediately.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        registerRequest   body      RegisterRequest  true  "Registration data"
// @Success      201               {object}  TokenResponse
// @Failure      400               {string}  string "Invalid request body"
// @Failure      409               {string}  string "Username is already taken"
// @Failure      500               {string}  string "Internal Server Error"
// @Router       /auth/register [post]
func (s *Server) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		http.Error(w, "Username and password are required", http.StatusBadRequest)
		return
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	user, err := s.store.CreateUser(r.Context(), req.Username, hashedPassword)
	if err != nil {
		if errors.Is(err, database.ErrUsernameTaken) {
			http.Error(w, "Username is already taken", http.StatusConflict)
			return
		}
		log.Printf("ERROR: Failed to create user %q: %v", req.Username, err)
		http.Error(w, "An error occurred during registration", http.StatusInternalServerError)
		return
	}

	tokens, err := s.issueTokens(r, user)
	if err != nil {
		log.Printf("ERROR: Failed to issue tokens for new user %d: %v", user.ID, err)
		http.Error(w, "Failed to process registration session", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(tokens)
}

// @Summary      Logs a challenger in
// @Description  Authenticates a user and returns a short-lived access token and a long-lived refresh token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        loginRequest   body      LoginRequest  true  "Login Credentials"
// @Success      200            {object}  TokenResponse
// @Failure      400            {string}  string "Invalid request body"
// @Failure      401            {string}  string "Invalid password"
// @Failure      404            {string}  string "User not found"
// @Failure      500            {string}  string "Internal Server Error"
// @Router       /auth/login [post]
func (s *Server) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := s.store.GetUserByUsername(r.Context(), req.Username)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if user == nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}
	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		http.Error(w, "Invalid password", http.StatusUnauthorized)
		return
	}

	tokens, err := s.issueTokens(r, user)
	if err != nil {
		log.Printf("ERROR: Failed to create session for user %d: %v", user.ID, err)
		http.Error(w, "Failed to process login session", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(tokens)
}

func (s *Server) issueTokens(r *http.Request, user *models.User) (*TokenResponse, error) {
	accessToken, err := auth.GenerateJWT(user, s.config.JWT.Secret)
	if err != nil {
		return nil, err
	}

	generateID, err := nanoid.Standard(40)
	if err != nil {
		return nil, err
	}
	refreshToken := generateID()

	sessionParams := database.CreateSessionParams{
		ID:           uuid.New(),
		UserID:       user.ID,
		RefreshToken: refreshToken,
		UserAgent:    r.UserAgent(),
		ClientIP:     r.RemoteAddr,
		ExpiresAt:    time.Now().Add(7 * 24 * time.Hour),
	}
	if err := s.store.CreateSession(r.Context(), sessionParams); err != nil {
		return nil, err
	}

	return &TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" example:"V1StGXR8_Z5jdHi6B-myT78q_Z5jdHi6B-myT78q"`
}

// @Summary      Refresh access token
// @Description  Provides a new short-lived access token and a new refresh token in exchange for a valid, non-expired refresh token. Implements refresh token rotation.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        refreshTokenRequest   body      RefreshTokenRequest  true  "Refresh Token"
// @Success      200                   {object}  TokenResponse
// @Failure      400                   {string}  string "Invalid request body or missing token"
// @Failure      401                   {string}  string "Invalid or expired refresh token"
// @Failure      500                   {string}  string "Internal Server Error"
// @Router       /auth/refresh [post]
func (s *Server) RefreshTokenHandler(w http.ResponseWriter, r *http.Request) {
	var req RefreshTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.RefreshToken == "" {
		http.Error(w, "Refresh token is required", http.StatusBadRequest)
		return
	}

	var newAccessToken, newRefreshToken string

	txErr := s.store.ExecTx(r.Context(), func(q *database.Queries) error {
		user, err := q.GetUserByRefreshToken(r.Context(), req.RefreshToken)
		if err != nil {
			return err
		}
		if user == nil {
			return errInvalidRefreshToken
		}

		if err := q.DeleteSessionByRefreshToken(r.Context(), req.RefreshToken); err != nil {
			return err
		}

		newAccessToken, err = auth.GenerateJWT(user, s.config.JWT.Secret)
		if err != nil {
			return err
		}

		generateID, err := nanoid.Standard(40)
		if err != nil {
			return err
		}
		newRefreshToken = generateID()
		sessionParams := database.CreateSessionParams{
			ID:           uuid.New(),
			UserID:       user.ID,
			RefreshToken: newRefreshToken,
			UserAgent:    r.UserAgent(),
			ClientIP:     r.RemoteAddr,
			ExpiresAt:    time.Now().Add(7 * 24 * time.Hour),
		}
		return q.CreateSession(r.Context(), sessionParams)
	})

	if txErr != nil {
		if errors.Is(txErr, errInvalidRefreshToken) {
			http.Error(w, txErr.Error(), http.StatusUnauthorized)
		} else {
			log.Printf("ERROR: Refresh token transaction failed: %v", txErr)
			http.Error(w, "Failed to refresh token", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(TokenResponse{
		AccessToken:  newAccessToken,
		RefreshToken: newRefreshToken,
	})
}

var errInvalidRefreshToken = errors.New("invalid or expired refresh token")
