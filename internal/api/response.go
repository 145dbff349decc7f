package api

// ListResponse wraps collection responses with page-based pagination metadata.
// @Description Collection response with pagination
type ListResponse struct {
	TotalProducts int64 `json:"totalProducts"`
	Page          int   `json:"page"`
	Limit         int   `json:"limit"`
	TotalPages    int64 `json:"totalPages"`
	Data          any   `json:"data"`
}

// ErrorResponse represents all API error responses.
// @Description Standard error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains the specifics of an API error.
// @Description Error details
type ErrorDetail struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Param   string `json:"param,omitempty"`
}

func NewErrorResponse(httpStatusCode int, code, message, param string) *ErrorResponse {
	errorType := "api_error"
	if httpStatusCode >= 400 && httpStatusCode < 500 {
		errorType = "invalid_request_error"
	}
	if httpStatusCode == 401 {
		errorType = "authentication_error"
	}

	if code == "" {
		code = "unknown_error"
	}

	return &ErrorResponse{
		Error: ErrorDetail{
			Type:    errorType,
			Code:    code,
			Message: message,
			Param:   param,
		},
	}
}
