package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mastermind-fa/product-inventory-api/internal/models"
	"github.com/nhalm/canonlog"
)

const (
	codeInvalidProductData = "invalid_product_data"
	codeProductNotFound    = "product_not_found"
	codeUnauthorized       = "unauthorized"
	codeTimeout            = "timeout"
	codeUnavailable        = "service_unavailable"
	codeInternal           = "internal_error"
)

func renderJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

func renderError(w http.ResponseWriter, r *http.Request, statusCode int, err error, code, message, param string) {
	if err != nil {
		canonlog.AddRequestError(r.Context(), err)
	}
	sanitizedMessage := sanitizeErrorMessage(message, statusCode)
	renderJSON(w, statusCode, NewErrorResponse(statusCode, code, sanitizedMessage, param))
}

func sanitizeErrorMessage(message string, statusCode int) string {
	lowerMsg := strings.ToLower(message)

	if strings.Contains(lowerMsg, "sql") ||
		strings.Contains(lowerMsg, "database") ||
		strings.Contains(lowerMsg, "postgres") ||
		strings.Contains(lowerMsg, "mongo") {
		if statusCode >= 500 {
			return "Internal Server Error"
		}
		return "Invalid request"
	}

	if statusCode == http.StatusInternalServerError {
		return "Internal Server Error"
	}

	return message
}

func Success(w http.ResponseWriter, data any) {
	renderJSON(w, http.StatusOK, data)
}

func Created(w http.ResponseWriter, data any) {
	renderJSON(w, http.StatusCreated, data)
}

func List(w http.ResponseWriter, data any, result *models.ListProductsResult) {
	renderJSON(w, http.StatusOK, &ListResponse{
		TotalProducts: result.TotalProducts,
		Page:          result.Page,
		Limit:         result.Limit,
		TotalPages:    result.TotalPages,
		Data:          data,
	})
}

func BadRequest(w http.ResponseWriter, r *http.Request, err error, message, param string) {
	renderError(w, r, http.StatusBadRequest, err, codeInvalidProductData, message, param)
}

func NotFound(w http.ResponseWriter, r *http.Request, err error, message string) {
	renderError(w, r, http.StatusNotFound, err, codeProductNotFound, message, "")
}

func Unauthorized(w http.ResponseWriter, r *http.Request, err error) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="catalog"`)
	renderError(w, r, http.StatusUnauthorized, err, codeUnauthorized, "Unauthorized", "")
}

func GatewayTimeout(w http.ResponseWriter, r *http.Request, err error) {
	renderError(w, r, http.StatusGatewayTimeout, err, codeTimeout, "Request timed out", "")
}

func ServiceUnavailable(w http.ResponseWriter, r *http.Request, err error, message string) {
	renderError(w, r, http.StatusServiceUnavailable, err, codeUnavailable, message, "")
}

func InternalError(w http.ResponseWriter, r *http.Request, err error, message string) {
	renderError(w, r, http.StatusInternalServerError, err, codeInternal, message, "")
}
