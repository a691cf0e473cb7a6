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
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Open builds a manager for cfg, connects it and, when enabled, bootstraps
// the schema of the default model registry. The caller owns the returned
// manager and must Disconnect it.
func Open(ctx context.Context, cfg *Config, logger Logger) (AbstractDatabaseManager, error) {
	return OpenWithRegistry(ctx, cfg, logger, nil)
}

// OpenWithRegistry is Open with an explicit model registry.
func OpenWithRegistry(ctx context.Context, cfg *Config, logger Logger, registry ModelRegistry) (AbstractDatabaseManager, error) {
	if cfg == nil {
		return nil, errors.New("database configuration cannot be empty")
	}
	if _, ok := dialects[cfg.ConnectionConfig.Type]; !ok {
		return nil, fmt.Errorf("unsupported database type: %q, supported types: %v", cfg.ConnectionConfig.Type, SupportedTypes())
	}

	resolved := *cfg
	applyEnv(&resolved.ConnectionConfig, os.Getenv)

	manager := NewDatabaseManager(&resolved, registry)
	manager.SetLogger(logger)

	if err := manager.Connect(ctx); err != nil {
		return nil, err
	}
	if resolved.MigrateConfig.EnableMigrateOnStartup {
		if err := manager.RunMigrations(ctx); err != nil {
			_ = manager.Disconnect()
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
	}
	return manager, nil
}

// applyEnv lets deployments inject connection secrets through DB_* variables
// without touching the config file. Unparsable numbers are ignored.
func applyEnv(cfg *ConnectionConfig, getenv func(string) string) {
	str := func(key string, dst *string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) {
		if n, err := strconv.Atoi(getenv(key)); err == nil {
			*dst = n
		}
	}

	str("DB_HOST", &cfg.Host)
	num("DB_PORT", &cfg.Port)
	str("DB_USERNAME", &cfg.Username)
	str("DB_PASSWORD", &cfg.Password)
	str("DB_NAME", &cfg.DBName)
	str("DB_SSLMODE", &cfg.SSLMode)
	num("DB_MAX_IDLE_CONNS", &cfg.MaxIdleConns)
	num("DB_MAX_OPEN_CONNS", &cfg.MaxOpenConns)

	var seconds int
	num("DB_CONN_MAX_LIFETIME", &seconds)
	if seconds > 0 {
		cfg.ConnMaxLifetime = time.Duration(seconds) * time.Second
	}
}
