package common

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"tableside/internal/models"
)

type contextKey string

const (
	UserIDKey    contextKey = "user_id"
	SessionIDKey contextKey = "session_id"
)

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details,omitempty"`
	} `json:"error"`
}

// CreateErrorResponse creates a standardized error response
func CreateErrorResponse(code string, message string, details map[string]string) *ErrorResponse {
	var resp ErrorResponse
	resp.Error.Code = code
	resp.Error.Message = message
	resp.Error.Details = details
	return &resp
}

// SendValidationError sends a validation error response
func SendValidationError(c echo.Context, field, message string) error {
	details := map[string]string{
		field: message,
	}
	return c.JSON(http.StatusBadRequest, CreateErrorResponse("VALIDATION_ERROR", "Validation failed", details))
}

// SendClientError sends a client error response
func SendClientError(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, CreateErrorResponse("CLIENT_ERROR", message, nil))
}

// SendServerError sends a server error response
func SendServerError(c echo.Context, message string) error {
	return c.JSON(http.StatusInternalServerError, CreateErrorResponse("SERVER_ERROR", message, nil))
}

// SendNotFoundError sends a not found error response
func SendNotFoundError(c echo.Context, resource string) error {
	return c.JSON(http.StatusNotFound, CreateErrorResponse("NOT_FOUND", fmt.Sprintf("%s not found", resource), nil))
}

// SendUnauthorizedError sends an unauthorized error response
func SendUnauthorizedError(c echo.Context, message string) error {
	if message == "" {
		message = "Unauthorized access"
	}
	return c.JSON(http.StatusUnauthorized, CreateErrorResponse("UNAUTHORIZED", message, nil))
}

// RespondDomainError maps the service error taxonomy onto HTTP responses.
// Unknown errors are reported as server errors without leaking internals.
func RespondDomainError(c echo.Context, err error) error {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return SendValidationError(c, vErr.Field, vErr.Message)
	}
	var tErr *TransitionError
	if errors.As(err, &tErr) {
		return c.JSON(http.StatusConflict, CreateErrorResponse("INVALID_TRANSITION", tErr.Error(), nil))
	}
	if errors.Is(err, ErrNotFound) {
		return c.JSON(http.StatusNotFound, CreateErrorResponse("NOT_FOUND", "Record not found", nil))
	}
	if errors.Is(err, ErrConflict) {
		return c.JSON(http.StatusConflict, CreateErrorResponse("CONFLICT", "Record was modified concurrently, retry", nil))
	}
	if errors.Is(err, ErrStorageUnavailable) {
		return c.JSON(http.StatusServiceUnavailable, CreateErrorResponse("STORAGE_UNAVAILABLE", "Storage unavailable, retry later", nil))
	}
	return SendServerError(c, "Operation could not be completed")
}

// ValidatePositiveInteger validates positive integer values with upper bounds
func ValidatePositiveInteger(value int, fieldName string, maxValue int) error {
	if value <= 0 {
		return fmt.Errorf("%s must be positive", fieldName)
	}
	if value > maxValue {
		return fmt.Errorf("%s cannot exceed %d", fieldName, maxValue)
	}
	return nil
}

// ValidatePositiveFloat validates positive float values with upper bounds
func ValidatePositiveFloat(value float64, fieldName string, maxValue float64) error {
	if value <= 0 {
		return fmt.Errorf("%s must be positive", fieldName)
	}
	if value > maxValue {
		return fmt.Errorf("%s cannot exceed %.2f", fieldName, maxValue)
	}
	return nil
}

// ValidateRequiredString validates required string fields
func ValidateRequiredString(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	return nil
}

// ValidateOptionalString validates optional string fields
func ValidateOptionalString(value *string, fieldName string, maxLength int) error {
	if value != nil {
		if len(*value) > maxLength {
			return fmt.Errorf("%s cannot exceed %d characters", fieldName, maxLength)
		}
		*value = strings.TrimSpace(*value)
	}
	return nil
}

// ValidateOrderStatus validates order status values
func ValidateOrderStatus(status string) error {
	if !models.OrderStatus(status).Valid() {
		return fmt.Errorf("order status must be one of: pending, preparing, ready, completed, cancelled")
	}
	return nil
}

// ValidateTableStatus validates table status values
func ValidateTableStatus(status string) error {
	if !models.TableStatus(status).Valid() {
		return fmt.Errorf("table status must be one of: available, occupied, reserved, maintenance")
	}
	return nil
}

// ValidateReservationStatus validates reservation status values
func ValidateReservationStatus(status string) error {
	if !models.ReservationStatus(status).Valid() {
		return fmt.Errorf("reservation status must be one of: confirmed, cancelled, completed")
	}
	return nil
}

// ValidateStaffRole validates staff role values
func ValidateStaffRole(role string) error {
	switch role {
	case "manager", "waiter", "chef", "cashier":
		return nil
	}
	return fmt.Errorf("staff role must be one of: manager, waiter, chef, cashier")
}

// ValidateDateFormat validates YYYY-MM-DD date strings
func ValidateDateFormat(dateStr, fieldName string) (time.Time, error) {
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be in YYYY-MM-DD format", fieldName)
	}
	return date, nil
}

// SafeString safely handles string pointer operations
func SafeString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// GetUserIDFromContext extracts the user ID from the request context
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDKey).(int64)
	return userID, ok
}

// GetSessionIDFromContext extracts the session ID from the request context
func GetSessionIDFromContext(ctx context.Context) (string, bool) {
	sessionID, ok := ctx.Value(SessionIDKey).(string)
	return sessionID, ok
}

// SanitizeHTMLField escapes string pointer fields for HTML display
func SanitizeHTMLField(field *string, fieldName string) error {
	if field != nil && *field != "" {
		sanitized := html.EscapeString(*field)
		if len(sanitized) > 1000 {
			return fmt.Errorf("%s content exceeds maximum allowed length", fieldName)
		}
		*field = sanitized
	}
	return nil
}

// ValidatePaginationParams validates pagination parameters
func ValidatePaginationParams(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 1000 {
		limit = 1000
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
