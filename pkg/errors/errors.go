package errors

import (
	"errors"
	"fmt"
	"net/http"

	"commerce/domain/catalog"
	"commerce/domain/order"
	"commerce/domain/shared"
)

// ErrorCode application error code.
type ErrorCode string

const (
	// generic codes
	CodeInternal       ErrorCode = "INTERNAL_ERROR"
	CodeBadRequest     ErrorCode = "BAD_REQUEST"
	CodeUnauthorized   ErrorCode = "UNAUTHORIZED"
	CodeForbidden      ErrorCode = "FORBIDDEN"
	CodeNotFound       ErrorCode = "NOT_FOUND"
	CodeConflict       ErrorCode = "CONFLICT"
	CodeTooManyRequest ErrorCode = "TOO_MANY_REQUESTS"
	CodeValidation     ErrorCode = "VALIDATION_ERROR"

	// business codes
	CodeProductNotFound        ErrorCode = "PRODUCT_NOT_FOUND"
	CodeDuplicateSKU           ErrorCode = "DUPLICATE_SKU"
	CodeInsufficientStock      ErrorCode = "INSUFFICIENT_STOCK"
	CodeInactiveProduct        ErrorCode = "INACTIVE_PRODUCT"
	CodePriceChangeExceeded    ErrorCode = "PRICE_CHANGE_EXCEEDED"
	CodeOrderNotFound          ErrorCode = "ORDER_NOT_FOUND"
	CodeInvalidOrderState      ErrorCode = "INVALID_ORDER_STATE"
	CodeStockReservationFailed ErrorCode = "STOCK_RESERVATION_FAILED"
	CodeConcurrentModification ErrorCode = "CONCURRENT_MODIFICATION"
)

// AppError application-level error with a stable code for API responses.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatusCode maps the error code to an HTTP status.
func (e *AppError) HTTPStatusCode() int {
	switch e.Code {
	case CodeBadRequest, CodeValidation:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound, CodeProductNotFound, CodeOrderNotFound:
		return http.StatusNotFound
	case CodeConflict, CodeDuplicateSKU, CodeConcurrentModification:
		return http.StatusConflict
	case CodeTooManyRequest:
		return http.StatusTooManyRequests
	case CodeInsufficientStock, CodeInactiveProduct, CodePriceChangeExceeded,
		CodeInvalidOrderState, CodeStockReservationFailed:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// New creates an AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with a code.
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func BadRequest(message string) *AppError {
	return New(CodeBadRequest, message)
}

func NotFound(message string) *AppError {
	return New(CodeNotFound, message)
}

func Internal(message string) *AppError {
	return New(CodeInternal, message)
}

func Conflict(message string) *AppError {
	return New(CodeConflict, message)
}

func TooManyRequests(message string) *AppError {
	return New(CodeTooManyRequest, message)
}

func Validation(message string) *AppError {
	return New(CodeValidation, message)
}

// FromDomainError classifies a domain error into an AppError. Sentinel
// matching goes most-specific first so a wrapped reservation failure keeps
// the code of its underlying cause.
func FromDomainError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, catalog.ErrProductNotFound):
		return Wrap(err, CodeProductNotFound, err.Error())
	case errors.Is(err, catalog.ErrDuplicateSKU):
		return Wrap(err, CodeDuplicateSKU, err.Error())
	case errors.Is(err, catalog.ErrInsufficientStock):
		return Wrap(err, CodeInsufficientStock, err.Error())
	case errors.Is(err, catalog.ErrInactiveProduct):
		return Wrap(err, CodeInactiveProduct, err.Error())
	case errors.Is(err, catalog.ErrPriceChangeExceedsLimit):
		return Wrap(err, CodePriceChangeExceeded, err.Error())
	case errors.Is(err, order.ErrOrderNotFound):
		return Wrap(err, CodeOrderNotFound, err.Error())
	case errors.Is(err, order.ErrEmptyOrderItems):
		return Wrap(err, CodeValidation, err.Error())
	case errors.Is(err, order.ErrInvalidStateTransition),
		errors.Is(err, order.ErrCannotModifyNonPendingOrder):
		return Wrap(err, CodeInvalidOrderState, err.Error())
	case errors.Is(err, catalog.ErrConcurrentModification),
		errors.Is(err, order.ErrConcurrentModification):
		return Wrap(err, CodeConcurrentModification, err.Error())
	case errors.Is(err, order.ErrStockReservation):
		return Wrap(err, CodeStockReservationFailed, err.Error())
	case errors.Is(err, shared.ErrNotFound):
		return Wrap(err, CodeNotFound, err.Error())
	case errors.Is(err, shared.ErrInvalidInput):
		return Wrap(err, CodeValidation, err.Error())
	case errors.Is(err, shared.ErrBusinessRule):
		return Wrap(err, CodeValidation, err.Error())
	case errors.Is(err, shared.ErrConflict):
		return Wrap(err, CodeConflict, err.Error())
	default:
		return Wrap(err, CodeInternal, "internal server error")
	}
}
