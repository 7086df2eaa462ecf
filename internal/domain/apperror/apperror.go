package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// AppError is implemented by every error the application layer hands to handlers.
// Category is a stable machine-readable code, HTTPStatus the suggested response code.
type AppError interface {
	error
	Category() string
	HTTPStatus() int
	Unwrap() error
}

// ValidationError reports malformed input. No state was changed.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string    { return e.Msg }
func (e *ValidationError) Category() string { return "VALIDATION_ERROR" }
func (e *ValidationError) HTTPStatus() int  { return http.StatusBadRequest }
func (e *ValidationError) Unwrap() error    { return nil }

func NewValidation(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError reports an absent cart line, user or product.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string    { return e.Msg }
func (e *NotFoundError) Category() string { return "NOT_FOUND" }
func (e *NotFoundError) HTTPStatus() int  { return http.StatusNotFound }
func (e *NotFoundError) Unwrap() error    { return nil }

func NewNotFound(format string, args ...any) error {
	return &NotFoundError{Msg: fmt.Sprintf(format, args...)}
}

// EmptyCartError is returned when checkout finds no cart lines.
type EmptyCartError struct{}

func (e *EmptyCartError) Error() string    { return "cart is empty" }
func (e *EmptyCartError) Category() string { return "EMPTY_CART" }
func (e *EmptyCartError) HTTPStatus() int  { return http.StatusBadRequest }
func (e *EmptyCartError) Unwrap() error    { return nil }

func NewEmptyCart() error { return &EmptyCartError{} }

// ProductResolutionError means one or more products referenced by the cart
// no longer exist in the catalog. Checkout was aborted and the cart left intact.
type ProductResolutionError struct {
	Missing []string
}

func (e *ProductResolutionError) Error() string {
	if len(e.Missing) == 0 {
		return "some products not found"
	}
	return "some products not found: " + strings.Join(e.Missing, ", ")
}
func (e *ProductResolutionError) Category() string { return "PRODUCT_RESOLUTION" }
func (e *ProductResolutionError) HTTPStatus() int  { return http.StatusConflict }
func (e *ProductResolutionError) Unwrap() error    { return nil }

func NewProductResolution(missing []string) error {
	return &ProductResolutionError{Missing: missing}
}

// UnauthorizedError reports a missing or invalid credential.
type UnauthorizedError struct {
	Msg string
}

func (e *UnauthorizedError) Error() string    { return e.Msg }
func (e *UnauthorizedError) Category() string { return "UNAUTHORIZED" }
func (e *UnauthorizedError) HTTPStatus() int  { return http.StatusUnauthorized }
func (e *UnauthorizedError) Unwrap() error    { return nil }

func NewUnauthorized(msg string) error {
	if msg == "" {
		msg = "unauthorized"
	}
	return &UnauthorizedError{Msg: msg}
}

type ForbiddenError struct {
	Msg string
}

func (e *ForbiddenError) Error() string    { return e.Msg }
func (e *ForbiddenError) Category() string { return "FORBIDDEN" }
func (e *ForbiddenError) HTTPStatus() int  { return http.StatusForbidden }
func (e *ForbiddenError) Unwrap() error    { return nil }

func NewForbidden(msg string) error {
	if msg == "" {
		msg = "forbidden"
	}
	return &ForbiddenError{Msg: msg}
}

// ConflictError reports a business-rule conflict such as a duplicate email.
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string    { return e.Msg }
func (e *ConflictError) Category() string { return "CONFLICT" }
func (e *ConflictError) HTTPStatus() int  { return http.StatusConflict }
func (e *ConflictError) Unwrap() error    { return nil }

func NewConflict(format string, args ...any) error {
	return &ConflictError{Msg: fmt.Sprintf(format, args...)}
}

// InternalError wraps a store or infrastructure failure. Its message is safe
// to show; the wrapped error is for logs only.
type InternalError struct {
	Msg string
	Err error
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	return e.Msg + ": " + e.Err.Error()
}
func (e *InternalError) Category() string { return "INTERNAL_ERROR" }
func (e *InternalError) HTTPStatus() int  { return http.StatusInternalServerError }
func (e *InternalError) Unwrap() error    { return e.Err }

// Wrap passes AppErrors through untouched and turns anything else into an InternalError.
func Wrap(msg string, err error) error {
	if err == nil {
		return nil
	}
	var appErr AppError
	if errors.As(err, &appErr) {
		return err
	}
	return &InternalError{Msg: msg, Err: err}
}

// HTTPStatus maps err to a status code, category and client-facing message.
// Untyped errors are reported as an opaque internal error.
func HTTPStatus(err error) (int, string, string) {
	var appErr AppError
	if errors.As(err, &appErr) {
		if ie, ok := appErr.(*InternalError); ok {
			return ie.HTTPStatus(), ie.Category(), ie.Msg
		}
		return appErr.HTTPStatus(), appErr.Category(), appErr.Error()
	}
	return http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error"
}

func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

func IsValidation(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

func IsEmptyCart(err error) bool {
	var e *EmptyCartError
	return errors.As(err, &e)
}

func IsProductResolution(err error) bool {
	var e *ProductResolutionError
	return errors.As(err, &e)
}

func IsUnauthorized(err error) bool {
	var e *UnauthorizedError
	return errors.As(err, &e)
}

func IsConflict(err error) bool {
	var e *ConflictError
	return errors.As(err, &e)
}

func IsInternal(err error) bool {
	var e *InternalError
	return errors.As(err, &e)
}
