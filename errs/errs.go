/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package errs defines the structured error returned to API clients.
//
// An AppError is operational when it describes an expected failure the
// client can act on (missing record, bad input, conflict). Anything else is
// treated as a server fault and rendered as a generic 500.
package errs

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/tomoncle/storyhub/types"
)

// FieldError is a validation failure on a single input field.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// AppError carries the HTTP status code, the status tag ("fail" for 4xx,
// "error" for 5xx) and whether the failure is operational.
type AppError struct {
	StatusCode    int          `json:"statusCode"`
	Status        types.Status `json:"status"`
	IsOperational bool         `json:"-"`
	Message       string       `json:"message"`
	Errors        []FieldError `json:"errors,omitempty"`

	cause error
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.cause }

// WithCause returns a copy of e wrapping cause.
func (e *AppError) WithCause(cause error) *AppError {
	c := *e
	c.cause = cause
	return &c
}

// New creates an operational error; the status tag follows the code.
func New(statusCode int, message string) *AppError {
	return &AppError{
		StatusCode:    statusCode,
		Status:        types.StatusForCode(statusCode),
		IsOperational: true,
		Message:       message,
	}
}

func NewNotFound(message string) *AppError {
	return New(http.StatusNotFound, message)
}

func NewBadRequest(message string, fields ...FieldError) *AppError {
	e := New(http.StatusBadRequest, message)
	e.Errors = fields
	return e
}

func NewConflict(message string) *AppError {
	return New(http.StatusConflict, message)
}

// NewInternal hides cause behind a generic message.
func NewInternal(cause error) *AppError {
	return &AppError{
		StatusCode: http.StatusInternalServerError,
		Status:     types.StatusError,
		Message:    "something went wrong",
		cause:      cause,
	}
}

// As returns the *AppError in err's chain, or nil.
func As(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}
