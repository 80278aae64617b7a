package handlers

import (
	"log/slog"
	"net/http"

	"github.com/The-Charles-Factor/pos22/internal/api/middleware"
	"github.com/The-Charles-Factor/pos22/internal/errors"
	"github.com/The-Charles-Factor/pos22/internal/models"
	service "github.com/The-Charles-Factor/pos22/internal/services"
	"github.com/The-Charles-Factor/pos22/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type AuthHandler struct {
	userService *service.UserService
	validator   *validator.Validate
}

func NewAuthHandler(userService *service.UserService) *AuthHandler {
	return &AuthHandler{userService: userService, validator: validator.New()}
}

func (h *AuthHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		var req models.LoginRequest
		if !decodeAndValidate(w, r, h.validator, &req) {
			return
		}

		resp, err := h.userService.Login(r.Context(), &req)
		if err != nil {
			logger.Warn("Login rejected",
				slog.String("username", req.Username),
				slog.String("error", err.Error()))

			// failed logins still carry a body with the remaining tries
			if resp != nil {
				if appErr, ok := errors.IsAppError(err); ok {
					response.WriteJson(w, appErr.StatusCode, response.APIResponse{Success: false, Data: resp})

					return
				}
			}

			response.Error(w, err)

			return
		}

		logger.Info("User logged in", slog.String("username", req.Username))
		response.Success(w, http.StatusOK, resp)
	}
}

// Profile returns the authenticated user's own record.
func (h *AuthHandler) Profile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		user, err := h.userService.GetUser(claims.UserID)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, user)
	}
}
