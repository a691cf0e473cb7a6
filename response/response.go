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

// Package response writes the JSON envelopes returned by every endpoint.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/tomoncle/storyhub/errs"
	"github.com/tomoncle/storyhub/types"
)

// Envelope is the body of a successful response.
type Envelope struct {
	Status  types.Status `json:"status"`
	Message string       `json:"message"`
	Data    any          `json:"data"`
}

// ErrorEnvelope is the body of a failed response.
type ErrorEnvelope struct {
	Status     types.Status      `json:"status"`
	Message    string            `json:"message"`
	StatusCode int               `json:"statusCode"`
	Errors     []errs.FieldError `json:"errors,omitempty"`
}

// Respond writes {status, message, data} with statusCode. A 204 carries no
// body, so only the status line is written.
func Respond(w http.ResponseWriter, r *http.Request, statusCode int, data any, message string, status types.Status) {
	if statusCode == http.StatusNoContent {
		w.WriteHeader(statusCode)
		return
	}
	writeJSON(w, statusCode, Envelope{Status: status, Message: message, Data: data})
}

// Error renders err. Operational *errs.AppError values are sent as is;
// anything else is logged and replaced by a generic 500.
func Error(w http.ResponseWriter, r *http.Request, err error, log logrus.FieldLogger) {
	appErr := errs.As(err)
	if appErr == nil || !appErr.IsOperational {
		if log != nil {
			log.WithError(err).WithField("req_uri", r.RequestURI).Error("unhandled error")
		}
		appErr = errs.NewInternal(err)
	}
	writeJSON(w, appErr.StatusCode, ErrorEnvelope{
		Status:     appErr.Status,
		Message:    appErr.Message,
		StatusCode: appErr.StatusCode,
		Errors:     appErr.Errors,
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}
