package models

// ErrorResponse is the wire shape of every client-facing failure.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// ErrUnauthorized is returned whenever bearer credentials are missing or
// invalid, regardless of endpoint.
func ErrUnauthorized() ErrorResponse {
	return ErrorResponse{
		Code:    401,
		Message: "Authentication credentials is invalid.",
		Status:  "Unauthorized",
	}
}

// ErrForbidden is returned when the caller's role is not in the endpoint's
// allow-list.
func ErrForbidden() ErrorResponse {
	return ErrorResponse{
		Code:    403,
		Message: "Don't have necessary permissions for this resource.",
		Status:  "Forbidden",
	}
}

// ErrBadRequest wraps a validation failure message.
func ErrBadRequest(message string) ErrorResponse {
	return ErrorResponse{
		Code:    400,
		Message: message,
		Status:  "Bad Request",
	}
}
