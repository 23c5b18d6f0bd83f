package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"demo-bank/backend/internal/auth/service"
	"demo-bank/backend/internal/logging"
	"demo-bank/backend/internal/security"
	"demo-bank/backend/internal/server/httpjson"
	"demo-bank/backend/internal/server/middleware"
	userdomain "demo-bank/backend/internal/user/domain"
	"demo-bank/backend/internal/validation"
)

// HTTPHandler serves the auth endpoints. Session tokens travel in an
// HttpOnly cookie; the browser never sees the raw token from script.
type HTTPHandler struct {
	svc        *service.AuthService
	sessionTTL time.Duration
	log        logging.Logger
}

// NewHTTPHandler returns an auth handler. sessionTTL controls the session
// cookie's Max-Age and must match the token lifetime.
func NewHTTPHandler(svc *service.AuthService, sessionTTL time.Duration, log logging.Logger) *HTTPHandler {
	return &HTTPHandler{svc: svc, sessionTTL: sessionTTL, log: log}
}

// Mount registers the auth routes. requireAuth guards the routes that need
// a live session.
func (h *HTTPHandler) Mount(r chi.Router, requireAuth func(http.Handler) http.Handler) {
	r.Post("/api/auth/signup", h.Signup)
	r.Post("/api/auth/login", h.Login)
	r.Post("/api/auth/logout", h.Logout)
	r.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/api/auth/me", h.Me)
	})
}

type signupRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
	DateOfBirth string `json:"dateOfBirth"`
	SSN         string `json:"ssn"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	ZipCode     string `json:"zipCode"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	User *userdomain.SafeUser `json:"user"`
}

type logoutResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (h *HTTPHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	result, err := h.svc.Signup(r.Context(), service.SignupRequest{
		Email:       req.Email,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		DateOfBirth: req.DateOfBirth,
		SSN:         req.SSN,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		ZipCode:     req.ZipCode,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.setSessionCookie(w, result.Token)
	httpjson.Write(w, http.StatusCreated, authResponse{User: result.User})
}

func (h *HTTPHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	result, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.setSessionCookie(w, result.Token)
	httpjson.Write(w, http.StatusOK, authResponse{User: result.User})
}

// Logout is not guarded by the auth middleware: a request without a live
// session still gets its cookie cleared and a {success:false} body instead
// of a 401.
func (h *HTTPHandler) Logout(w http.ResponseWriter, r *http.Request) {
	user, err := h.svc.Authenticate(r.Context(), middleware.TokenFromRequest(r))
	if err != nil {
		if !errors.Is(err, service.ErrInvalidSession) {
			h.writeError(w, r, err)
			return
		}
		h.clearSessionCookie(w)
		httpjson.Write(w, http.StatusOK, logoutResponse{Success: false, Message: "No active session to logout"})
		return
	}
	result, err := h.svc.Logout(r.Context(), user.ID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.clearSessionCookie(w)
	httpjson.Write(w, http.StatusOK, logoutResponse{Success: result.Success, Message: result.Message})
}

func (h *HTTPHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	httpjson.Write(w, http.StatusOK, authResponse{User: user.Sanitized()})
}

func (h *HTTPHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *HTTPHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1, // serialized as Max-Age=0, expiring the cookie
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// writeError maps service errors to HTTP status codes. Unexpected errors
// are logged server-side and reported as a generic 500.
func (h *HTTPHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *validation.Error
	if errors.As(err, &ve) {
		httpjson.FieldError(w, http.StatusBadRequest, ve.Field, ve.Message)
		return
	}
	var pe *security.PolicyError
	if errors.As(err, &pe) {
		httpjson.FieldError(w, http.StatusBadRequest, "password", pe.Message)
		return
	}
	switch {
	case errors.Is(err, service.ErrEmailAlreadyRegistered):
		httpjson.Error(w, http.StatusConflict, "Email already registered")
	case errors.Is(err, service.ErrInvalidCredentials):
		httpjson.Error(w, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, service.ErrInvalidSession):
		httpjson.Error(w, http.StatusUnauthorized, "Not authenticated")
	default:
		h.log.Error(r.Context(), "auth handler error", "path", r.URL.Path, "error", err)
		httpjson.Error(w, http.StatusInternalServerError, "Internal server error")
	}
}
