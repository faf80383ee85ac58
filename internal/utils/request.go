package utils

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	appErrors "github.com/sajibul-islam-robin/halchash-frontend/internal/errors"
	"github.com/sajibul-islam-robin/halchash-frontend/internal/utils/response"
)

// ParseAndValidate decodes the JSON body into dest and validates it, writing the
// error response itself. It reports whether the handler may continue.
func ParseAndValidate(r *http.Request, w http.ResponseWriter, dest any, validate *validator.Validate) bool {
	if err := DecodeJSONBody(r, dest); err != nil {
		slog.Warn("Invalid request", slog.String("error", err.Error()))
		response.Error(w, appErrors.BadRequestError("Invalid request body").WithDetail(err.Error()))
		return false
	}

	if err := ValidateStruct(validate, dest); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			response.ValidationError(w, validationErrs)
			return false
		}

		response.Error(w, appErrors.ValidationError("Invalid input data"))
		return false
	}

	return true
}
