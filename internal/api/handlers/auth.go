package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/sajibul-islam-robin/halchash-frontend/internal/api/middleware"
	"github.com/sajibul-islam-robin/halchash-frontend/internal/errors"
	"github.com/sajibul-islam-robin/halchash-frontend/internal/models"
	service "github.com/sajibul-islam-robin/halchash-frontend/internal/services"
	"github.com/sajibul-islam-robin/halchash-frontend/internal/utils"
	"github.com/sajibul-islam-robin/halchash-frontend/internal/utils/response"
)

type AuthHandler struct {
	authService service.AuthService
	sessions    *middleware.SessionMiddleware
	validator   *validator.Validate
}

func NewAuthHandler(authService service.AuthService, sessions *middleware.SessionMiddleware) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions, validator: validator.New()}
}

// Login godoc
//	@Summary		Log in
//	@Description	Logs in against the backend and sets the `user` and `auth_token` cookies. Attempts are rate limited per e-mail.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			credentials	body		models.LoginRequest		true	"E-mail and password"
//	@Success		200			{object}	models.LoginResponse
//	@Failure		400			{object}	response.ErrorResponse	"Validation error"
//	@Failure		401			{object}	response.ErrorResponse	"Invalid email or password"
//	@Failure		429			{object}	response.ErrorResponse	"Too many attempts"
//	@Router			/auth/login [post]
func (h *AuthHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		var req models.LoginRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid login input")
			return
		}

		resp, err := h.authService.Login(r.Context(), &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		if err := h.sessions.Write(w, resp.Session); err != nil {
			logger.Error("Failed to write session cookies", slog.String("error", err.Error()))
			response.Error(w, errors.InternalError("Failed to start session").WithError(err))
			return
		}

		response.Success(w, http.StatusOK, resp)
	}
}

// Signup godoc
//	@Summary		Create an account
//	@Description	Registers with the backend and starts a session.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			account	body		models.SignupRequest	true	"Account details"
//	@Success		201		{object}	models.User
//	@Failure		400		{object}	response.ErrorResponse	"Validation error or e-mail taken"
//	@Router			/auth/signup [post]
func (h *AuthHandler) Signup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		var req models.SignupRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid signup input")
			return
		}

		session, err := h.authService.Signup(r.Context(), &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		if err := h.sessions.Write(w, session); err != nil {
			logger.Error("Failed to write session cookies", slog.String("error", err.Error()))
			response.Error(w, errors.InternalError("Failed to start session").WithError(err))
			return
		}

		response.Success(w, http.StatusCreated, session.User)
	}
}

// Logout godoc
//	@Summary		Log out
//	@Description	Deletes the session cookies.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	map[string]string
//	@Router			/auth/logout [post]
func (h *AuthHandler) Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.sessions.Clear(w)

		middleware.LoggerFromContext(r.Context()).Info("User logged out")
		response.Success(w, http.StatusOK, map[string]string{"message": "Logged out"})
	}
}

// Me godoc
//	@Summary		Current user
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	models.User
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Security		BearerAuth
//	@Router			/auth/me [get]
func (h *AuthHandler) Me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := middleware.SessionFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		response.Success(w, http.StatusOK, session.User)
	}
}
