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

package types

// Common illegal/default values used by enums.
const (
	IllegalValue = -1
	IllegalName  = "unknown"
	IllegalDesc  = "unknown"
)

// BaseEnum represents a basic enum contract used by domain types.
type BaseEnum interface {
	IsValid() bool
	Number() int
	String() string
	Desc() string
	Name() string
}

// Status is the outcome tag carried by every response envelope.
type Status int

const (
	StatusSuccess Status = iota
	StatusFail
	StatusError
)

var _ BaseEnum = StatusSuccess

var statusNames = [...]string{"success", "fail", "error"}

var statusDescs = [...]string{
	"the request was handled",
	"the request was rejected because of the client",
	"the server failed to handle the request",
}

// StatusForCode maps an HTTP status code to its envelope status.
func StatusForCode(code int) Status {
	switch {
	case code >= 500:
		return StatusError
	case code >= 400:
		return StatusFail
	default:
		return StatusSuccess
	}
}

func (s Status) IsValid() bool {
	return s >= StatusSuccess && s <= StatusError
}

func (s Status) Number() int {
	if !s.IsValid() {
		return IllegalValue
	}
	return int(s)
}

func (s Status) String() string {
	return s.Name()
}

func (s Status) Name() string {
	if !s.IsValid() {
		return IllegalName
	}
	return statusNames[s]
}

func (s Status) Desc() string {
	if !s.IsValid() {
		return IllegalDesc
	}
	return statusDescs[s]
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.Name()), nil
}
