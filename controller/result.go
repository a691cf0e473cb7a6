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

// Package controller turns parsed requests into calls on the persistence
// gateways and shapes the outcome into a Result the HTTP layer can render.
package controller

import (
	"github.com/tomoncle/storyhub/types"
)

// Result is either a success (StatusCode, Message, Data) or a failure (Err).
type Result struct {
	StatusCode int
	Message    string
	Data       any
	Err        error
}

func Success(statusCode int, message string, data any) Result {
	return Result{StatusCode: statusCode, Message: message, Data: data}
}

func Failure(err error) Result {
	return Result{Err: err}
}

func (r Result) Failed() bool {
	return r.Err != nil
}

// Status is the envelope tag of a successful result.
func (r Result) Status() types.Status {
	return types.StatusForCode(r.StatusCode)
}
