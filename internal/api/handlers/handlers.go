package handlers

import (
	"errors"
	"net/http"
	"strconv"

	appErrors "github.com/The-Charles-Factor/pos22/internal/errors"
	"github.com/The-Charles-Factor/pos22/internal/utils"
	"github.com/The-Charles-Factor/pos22/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// decodeAndValidate reads the JSON body into dest and runs struct validation,
// writing the error response itself. Returns false when the handler should
// stop.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, validate *validator.Validate, dest any) bool {
	if err := utils.DecodeJSONBody(r, dest); err != nil {
		response.Error(w, appErrors.BadRequestError(err.Error()))

		return false
	}

	if err := utils.ValidateStruct(validate, dest); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			response.ValidationError(w, validationErrs)

			return false
		}

		response.Error(w, appErrors.ValidationError(err.Error()))

		return false
	}

	return true
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return value
}
