package api

import (
	"errors"
	"net/http"

	"github.com/mastermind-fa/product-inventory-api/internal/apperrors"
)

func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var notFoundErr *apperrors.NotFoundError
	if errors.As(err, &notFoundErr) {
		NotFound(w, r, err, "Product not found")
		return
	}

	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) {
		BadRequest(w, r, err, "Invalid product data: "+validationErr.Message, validationErr.Field)
		return
	}

	var unauthorizedErr *apperrors.UnauthorizedError
	if errors.As(err, &unauthorizedErr) {
		Unauthorized(w, r, err)
		return
	}

	var timeoutErr *apperrors.TimeoutError
	if errors.As(err, &timeoutErr) {
		GatewayTimeout(w, r, err)
		return
	}

	var unavailableErr *apperrors.ServiceUnavailableError
	if errors.As(err, &unavailableErr) {
		ServiceUnavailable(w, r, err, "Service unavailable")
		return
	}

	InternalError(w, r, err, "Internal Server Error")
}
