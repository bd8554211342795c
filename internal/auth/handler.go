package auth

import (
	"errors"
	"net/http"

	"github.com/redmonkez12/user-auth-api/internal/httputil"
	"github.com/redmonkez12/user-auth-api/internal/logging"
	"github.com/redmonkez12/user-auth-api/internal/user"
)

// Handler contains HTTP handlers for authentication endpoints
type Handler struct {
	service *Service
	logger  *logging.Logger
	cookie  CookieOptions
}

func NewHandler(service *Service, logger *logging.Logger, cookie CookieOptions) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
		cookie:  cookie,
	}
}

// SignupRequest represents the signup request body
type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupResponse is returned after a successful signup
type SignupResponse struct {
	Token string `json:"token"`
}

// LoginResponse is returned after a successful login
type LoginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

// ValidationErrorResponse lists rejected signup fields
type ValidationErrorResponse struct {
	Errors []user.FieldError `json:"errors"`
}

// MeResponse wraps the current user
type MeResponse struct {
	Success bool       `json:"success"`
	Data    *user.User `json:"data"`
}

// Signup handles account registration
// @Summary      Register a new user
// @Description  Create an account and receive a short-lived token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body SignupRequest true "Signup details"
// @Success      200 {object} SignupResponse
// @Failure      400 {object} ValidationErrorResponse "Validation failed"
// @Failure      400 {object} httputil.MessageResponse "User Already Exists"
// @Failure      500 {object} httputil.MessageResponse "Error in Saving"
// @Router       /signup [post]
// @Router       /api/auth/signup [post]
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context(), h.logger)

	var req SignupRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		logger.Warn("invalid signup request body", "error", err.Error())
		httputil.RespondJSON(w, ValidationErrorResponse{Errors: []user.FieldError{
			{Msg: MsgInvalidBody, Location: "body"},
		}}, http.StatusBadRequest)
		return
	}

	token, _, err := h.service.Signup(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		var verr *user.ValidationError
		switch {
		case errors.As(err, &verr):
			httputil.RespondJSON(w, ValidationErrorResponse{Errors: verr.Fields}, http.StatusBadRequest)
		case errors.Is(err, ErrUserExists):
			logger.Warn("signup failed: email already exists")
			httputil.RespondMessage(w, MsgUserExists, http.StatusBadRequest)
		default:
			logger.Error("signup failed", "error", err.Error())
			httputil.RespondMessage(w, MsgSaveFailed, http.StatusInternalServerError)
		}
		return
	}

	httputil.RespondJSON(w, SignupResponse{Token: token}, http.StatusOK)
}

// Login handles user login
// @Summary      User login
// @Description  Check credentials, receive a token in the body and in the token cookie
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200 {object} LoginResponse
// @Failure      400 {object} httputil.ErrorResponse "Missing email or password"
// @Failure      401 {object} httputil.ErrorResponse "Invalid credentials"
// @Failure      500 {object} httputil.ErrorResponse "Server Error"
// @Router       /login [post]
// @Router       /api/auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context(), h.logger)

	var req LoginRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		logger.Warn("invalid login request body", "error", err.Error())
		respondAuthError(w, ErrMissingCredentials)
		return
	}

	token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		var authErr *Error
		if errors.As(err, &authErr) {
			respondAuthError(w, authErr)
			return
		}
		logger.Error("login failed", "error", err.Error())
		httputil.RespondError(w, MsgServerError, http.StatusInternalServerError)
		return
	}

	SetTokenCookie(w, token, h.cookie)
	httputil.RespondJSON(w, LoginResponse{Success: true, Token: token}, http.StatusOK)
}

// Me returns the authenticated user
// @Summary      Current user
// @Description  Fetch the profile of the user the token belongs to
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} MeResponse
// @Failure      401 {object} httputil.ErrorResponse "Not authorized"
// @Failure      404 {object} httputil.ErrorResponse "User not found"
// @Router       /me [get]
// @Router       /api/auth/me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context(), h.logger)

	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		respondAuthError(w, ErrNotAuthorized)
		return
	}

	u, err := h.service.Me(r.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			logger.Warn("token refers to a missing user", "user_id", userID)
			httputil.RespondError(w, MsgUserNotFound, http.StatusNotFound)
			return
		}
		logger.Error("failed to load current user", "error", err.Error())
		httputil.RespondError(w, MsgServerError, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, MeResponse{Success: true, Data: u}, http.StatusOK)
}

// Logout clears the token cookie
// @Summary      Logout
// @Description  Replace the token cookie with an expiring placeholder
// @Tags         auth
// @Produce      json
// @Success      200 {object} httputil.DataResponse
// @Router       /logout [get]
// @Router       /api/auth/logout [get]
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ClearTokenCookie(w, h.cookie.Secure)
	httputil.RespondData(w, struct{}{})
}
