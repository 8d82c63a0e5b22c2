package handlers

import (
	"errors"
	"net/http"

	"github.com/rogerio-castellano/warehouse-inventory/internal/auth"
)

// RegisterHandler godoc
// @Summary Register new user and return JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body CredentialsRequest true "username and password"
// @Success 201 {object} RegisterResult
// @Failure 400 {object} apperrors.Error "Invalid input"
// @Failure 409 {object} apperrors.Error "User exists"
// @Router /register [post]
func RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var creds CredentialsRequest
	if err := readJSON(w, r, &creds); err != nil {
		badRequest(w, r, "invalid input")
		return
	}

	token, err := authService.Register(r.Context(), creds.Username, creds.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	respond(w, r, http.StatusCreated, RegisterResult{
		Message: "user registered",
		Token:   token,
	})
}

// LoginHandler godoc
// @Summary Authenticate user and return JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body CredentialsRequest true "username and password"
// @Success 200 {object} LoginResult
// @Failure 400 {object} apperrors.Error "Invalid input"
// @Failure 401 {object} apperrors.Error "Unauthorized"
// @Router /login [post]
func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var creds CredentialsRequest
	if err := readJSON(w, r, &creds); err != nil {
		badRequest(w, r, "invalid input")
		return
	}

	token, err := authService.Login(r.Context(), creds.Username, creds.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		respond(w, r, http.StatusUnauthorized, map[string]string{
			"error":   "Unauthorized",
			"message": "invalid credentials",
		})
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, LoginResult{Token: token})
}
