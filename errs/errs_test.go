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

package errs

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomoncle/storyhub/types"
)

func TestNotFoundShape(t *testing.T) {
	err := NewNotFound("story not found")
	assert.Equal(t, http.StatusNotFound, err.StatusCode)
	assert.Equal(t, types.StatusFail, err.Status)
	assert.True(t, err.IsOperational)
	assert.Equal(t, "story not found", err.Error())
}

func TestConstructors(t *testing.T) {
	bad := NewBadRequest("Validation failed", FieldError{Field: "author", Error: "is required"})
	assert.Equal(t, http.StatusBadRequest, bad.StatusCode)
	assert.Len(t, bad.Errors, 1)

	conflict := NewConflict("username already taken")
	assert.Equal(t, types.StatusFail, conflict.Status)
	assert.True(t, conflict.IsOperational)

	cause := errors.New("connection reset")
	internal := NewInternal(cause)
	assert.Equal(t, types.StatusError, internal.Status)
	assert.False(t, internal.IsOperational)
	assert.ErrorIs(t, internal, cause)
}

func TestAs(t *testing.T) {
	wrapped := fmt.Errorf("controller: %w", NewNotFound("user not found"))
	appErr := As(wrapped)
	require.NotNil(t, appErr)
	assert.Equal(t, "user not found", appErr.Message)

	assert.Nil(t, As(errors.New("plain")))
	assert.Nil(t, As(nil))
}

func TestWithCauseKeepsOriginal(t *testing.T) {
	base := NewConflict("email already taken")
	cause := errors.New("UNIQUE constraint failed: users.email")
	withCause := base.WithCause(cause)

	assert.NoError(t, base.Unwrap())
	assert.ErrorIs(t, withCause, cause)
	assert.Contains(t, withCause.Error(), "email already taken: ")
}

func TestJSON(t *testing.T) {
	out, err := json.Marshal(NewNotFound("story not found"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"statusCode":404,"status":"fail","message":"story not found"}`, string(out))
}
