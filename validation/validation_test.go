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

package validation

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomoncle/storyhub/errs"
	"github.com/tomoncle/storyhub/model"
)

func ptr(s string) *string { return &s }

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	appErr := errs.As(err)
	require.NotNil(t, appErr, "expected *errs.AppError, got %v", err)
	assert.Equal(t, http.StatusBadRequest, appErr.StatusCode)
	out := make(map[string]string, len(appErr.Errors))
	for _, fe := range appErr.Errors {
		out[fe.Field] = fe.Error
	}
	return out
}

func TestValidateCreate(t *testing.T) {
	require.NoError(t, ValidateCreate(&model.StoryInput{Author: ptr("ann"), Content: ptr("once")}))

	fields := fieldsOf(t, ValidateCreate(&model.StoryInput{Content: ptr("")}))
	assert.Equal(t, "is required", fields["author"])
	assert.Equal(t, "must be at least 1 characters", fields["content"])
}

func TestValidateCreateUser(t *testing.T) {
	fields := fieldsOf(t, ValidateCreate(&model.UserInput{Username: ptr("a!"), Email: ptr("nope")}))
	assert.Contains(t, fields, "username")
	assert.Equal(t, "must be a valid email address", fields["email"])
}

func TestValidatePartial(t *testing.T) {
	// absent fields are not required on update
	require.NoError(t, ValidatePartial(&model.StoryInput{Content: ptr("new text")}))

	fields := fieldsOf(t, ValidatePartial(&model.StoryInput{Author: ptr("")}))
	assert.Len(t, fields, 1)
	assert.Contains(t, fields, "author")

	err := ValidatePartial(&model.StoryInput{})
	appErr := errs.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "no fields to update", appErr.Message)
}

func TestSetFields(t *testing.T) {
	assert.Equal(t, []string{"Email"}, setFields(&model.UserInput{Email: ptr("a@b.co")}))
	assert.Nil(t, setFields("not a struct"))
}

func TestStruct(t *testing.T) {
	type cfg struct {
		Port int `validate:"min=1,max=65535"`
	}
	assert.NoError(t, Struct(cfg{Port: 8080}))
	assert.Error(t, Struct(cfg{Port: 0}))
}
