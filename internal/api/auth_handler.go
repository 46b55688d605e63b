package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/mriley/stash-api/internal/api/shared"
	"github.com/mriley/stash-api/internal/platform/logger"
	"github.com/mriley/stash-api/internal/redact"
	"github.com/mriley/stash-api/internal/service"
	"github.com/mriley/stash-api/internal/service/auth"
	"github.com/mriley/stash-api/internal/store"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	accountService service.AccountService
	tokenService   auth.TokenService
	logger         *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	accountService service.AccountService,
	tokenService auth.TokenService,
	logger *slog.Logger,
) *AuthHandler {
	if logger == nil {
		panic("logger cannot be nil for AuthHandler")
	}

	return &AuthHandler{
		accountService: accountService,
		tokenService:   tokenService,
		logger:         logger.With(slog.String("component", "auth_handler")),
	}
}

// Signup handles POST /signup requests.
// It registers a new account and returns it with its assigned ID.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req SignupRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		log.Warn("validation error", slog.String("error", redact.Error(err)))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	account, err := h.accountService.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, store.ErrUsernameExists) {
			shared.RespondWithErrorAndLog(w, r, http.StatusConflict, "Username already exists", err)
			return
		}
		shared.RespondWithErrorAndLog(
			w, r,
			MapErrorToStatusCode(err),
			GetSafeErrorMessage(err),
			err,
		)
		return
	}

	log.Debug("account registered",
		slog.String("account_id", account.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, accountToResponse(account))
}

// Signin handles POST /signin requests.
// The body is form-encoded (username, password). Both an unknown
// username and a wrong password produce the identical 400 response so
// the API never reveals which part was wrong.
func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	if err := r.ParseForm(); err != nil {
		log.Warn("invalid form body", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if username == "" || password == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Username and password are required")
		return
	}

	account, err := h.accountService.Authenticate(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid username or password")
			return
		}
		shared.RespondWithErrorAndLog(
			w, r,
			http.StatusInternalServerError,
			"Failed to authenticate",
			err,
		)
		return
	}

	token, err := h.tokenService.IssueToken(r.Context(), account.ID)
	if err != nil {
		shared.RespondWithErrorAndLog(
			w, r,
			http.StatusInternalServerError,
			"Failed to issue authentication token",
			err,
		)
		return
	}

	log.Debug("account signed in",
		slog.String("account_id", account.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// Logout handles POST /logout requests.
// No token state exists to invalidate; the endpoint only confirms.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, shared.MessageResponse{
		Message: "Logged out",
	})
}
