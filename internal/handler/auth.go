package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/authgate/authgate-go/internal/apierror"
	"github.com/authgate/authgate-go/internal/middleware"
	"github.com/authgate/authgate-go/internal/model"
	"github.com/authgate/authgate-go/internal/response"
	"github.com/authgate/authgate-go/internal/service"
	"github.com/authgate/authgate-go/internal/validation"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// HandleRegister handles POST /api/v1/auth/register requests.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.service.Register(r.Context(), req); err != nil {
		var errs validation.Errors
		if errors.As(err, &errs) {
			response.ValidationError(w, r, errs)
			return
		}
		response.Error(w, r, http.StatusInternalServerError, apierror.Internal, "Something went wrong.")
		return
	}

	response.Message(w, http.StatusCreated, "You are successfully registered")
}

// HandleLogin handles POST /api/v1/auth/login requests.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	token, err := h.service.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Error(w, r, http.StatusForbidden, apierror.Forbidden, "The email or password were incorrect.")
			return
		}
		var errs validation.Errors
		if errors.As(err, &errs) {
			response.ValidationError(w, r, errs)
			return
		}
		response.Error(w, r, http.StatusInternalServerError, apierror.Internal, "Something went wrong.")
		return
	}

	response.Expanded(w, http.StatusOK, "Successfully logged in.", model.TokenData{Token: token})
}

// HandleMe handles GET /api/v1/logic/me requests.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.Error(w, r, http.StatusUnauthorized, apierror.Unauthenticated, "Authentication token is missing or malformed.")
		return
	}

	response.Expanded(w, http.StatusOK, "Authenticated user.", model.UserData{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	})
}

// decodeBody decodes a JSON request body, writing the error response
// itself when decoding fails.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		response.Error(w, r, http.StatusBadRequest, apierror.Validation, "The request body could not be parsed as JSON.")
		return false
	}
	return true
}
