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

package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fatih/color"
	"github.com/uptrace/bun"
)

// slowQueryHook reports successful queries that ran longer than slowTime.
type slowQueryHook struct {
	slowTime time.Duration
	logger   Logger
}

var _ bun.QueryHook = (*slowQueryHook)(nil)

func (h *slowQueryHook) BeforeQuery(ctx context.Context, event *bun.QueryEvent) context.Context {
	return ctx
}

func (h *slowQueryHook) AfterQuery(ctx context.Context, event *bun.QueryEvent) {
	if event.Err != nil || h.logger == nil {
		return
	}
	duration := time.Since(event.StartTime)
	if duration > h.slowTime {
		h.logger.Warn(color.YellowString("Database slow query detected"),
			"duration", duration.Round(time.Microsecond),
			"slow_threshold", h.slowTime,
			"query", formatOperationColor(event),
		)
	}
}

// errorQueryHook logs failed queries. Missing rows and finished
// transactions are expected outcomes and stay quiet.
type errorQueryHook struct {
	logger Logger
}

var _ bun.QueryHook = (*errorQueryHook)(nil)

func (h *errorQueryHook) BeforeQuery(ctx context.Context, event *bun.QueryEvent) context.Context {
	return ctx
}

func (h *errorQueryHook) AfterQuery(ctx context.Context, event *bun.QueryEvent) {
	switch {
	case h.logger == nil, event.Err == nil, errors.Is(event.Err, sql.ErrNoRows), errors.Is(event.Err, sql.ErrTxDone):
		return
	}
	h.logger.Debug("Database query failed",
		"operation", event.Operation(),
		"error", event.Err.Error(),
		"query", event.Query,
	)
}

func formatOperationColor(event *bun.QueryEvent) string {
	attr := color.FgRed
	switch event.Operation() {
	case "SELECT":
		attr = color.FgGreen
	case "INSERT":
		attr = color.FgBlue
	case "UPDATE":
		attr = color.FgYellow
	case "DELETE":
		attr = color.FgMagenta
	}
	return color.New(attr).Sprint(event.Query)
}
