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
	"bytes"
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomoncle/storyhub/utils"
	"github.com/uptrace/bun"
)

type widget struct {
	bun.BaseModel `bun:"table:widgets"`

	ID   int64  `bun:"id,pk,autoincrement"`
	Name string `bun:"name,notnull"`
}

func (*widget) Indexes() []Index {
	return []Index{{Name: "widgets_name_idx", Columns: []string{"name"}, Unique: true}}
}

func memoryConfig() *Config {
	cfg := DefaultConfig()
	cfg.ConnectionConfig.Type = "sqlite"
	cfg.ConnectionConfig.DBName = ":memory:"
	cfg.ConnectionConfig.HealthCheckInterval = 0
	return cfg
}

func openWidgets(t *testing.T) AbstractDatabaseManager {
	t.Helper()
	registry := NewModelRegistry()
	registry.Register(NewModelAdapter((*widget)(nil), 1))

	manager, err := OpenWithRegistry(context.Background(), memoryConfig(), nil, registry)
	require.NoError(t, err)
	t.Cleanup(func() { _ = manager.Disconnect() })
	return manager
}

func TestOpenRunsMigrations(t *testing.T) {
	manager := openWidgets(t)
	ctx := context.Background()
	db := manager.GetDB()

	_, err := db.NewInsert().Model(&widget{Name: "a"}).Exec(ctx)
	require.NoError(t, err)

	// the unique index from migration 002 is in place
	_, err = db.NewInsert().Model(&widget{Name: "a"}).Exec(ctx)
	require.Error(t, err)
	assert.True(t, IsDuplicateKey(err))

	applied, err := NewMigrationManager(db, nil, nil, MigrateConfig{}).GetAppliedMigrations(ctx)
	require.NoError(t, err)
	require.Len(t, applied, 2)
	assert.Equal(t, "001", applied[0].Version)
	assert.Equal(t, "create_secondary_indexes", applied[1].Name)
}

func TestRunMigrationsIsIdempotent(t *testing.T) {
	manager := openWidgets(t)
	ctx := context.Background()

	require.NoError(t, manager.RunMigrations(ctx))
	require.NoError(t, manager.RunMigrations(ctx))

	count, err := manager.GetDB().NewSelect().Model((*Migration)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestHealthCheck(t *testing.T) {
	manager := openWidgets(t)

	status := manager.HealthCheck(context.Background())
	assert.True(t, status.Healthy)
	assert.True(t, status.Connected)
	assert.Empty(t, status.LastError)
	assert.Equal(t, 1, manager.GetStats().MaxOpenConns)

	require.NoError(t, manager.Disconnect())
	status = manager.HealthCheck(context.Background())
	assert.False(t, status.Healthy)
	assert.Equal(t, "Database not initialized", status.LastError)
	assert.Error(t, manager.Ping(context.Background()))
}

func TestOpenRejectsUnsupportedType(t *testing.T) {
	cfg := memoryConfig()
	cfg.ConnectionConfig.Type = "oracle"
	_, err := Open(context.Background(), cfg, nil)
	assert.ErrorContains(t, err, "unsupported database type")

	_, err = Open(context.Background(), nil, nil)
	assert.Error(t, err)
}

func TestSupportedTypes(t *testing.T) {
	assert.Equal(t, []string{"mysql", "postgres", "postgresql", "sqlite", "sqlite3"}, SupportedTypes())
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"DB_HOST":              "db.internal",
		"DB_PORT":              "5433",
		"DB_PASSWORD":          "secret",
		"DB_MAX_OPEN_CONNS":    "many",
		"DB_CONN_MAX_LIFETIME": "60",
	}
	cfg := DefaultConnectionConfig()
	applyEnv(cfg, func(key string) string { return env[key] })

	assert.Equal(t, "db.internal", cfg.Host)
	assert.Equal(t, 5433, cfg.Port)
	assert.Equal(t, "secret", cfg.Password)
	assert.Equal(t, 100, cfg.MaxOpenConns)
	assert.Equal(t, time.Minute, cfg.ConnMaxLifetime)
	assert.Equal(t, "storyhub", cfg.DBName)
}

func TestReconnect(t *testing.T) {
	manager := openWidgets(t)
	ctx := context.Background()

	require.NoError(t, manager.Reconnect(ctx))
	require.NoError(t, manager.Ping(ctx))
	assert.NotNil(t, manager.GetSQLDB())
}

func TestDSN(t *testing.T) {
	cfg := &ConnectionConfig{
		Type: "mysql", Host: "localhost", Port: 3306, Username: "root", Password: "pw", DBName: "stories",
		ConnectTimeout: time.Second,
	}
	assert.Contains(t, mysqlDSN(cfg), "root:pw@tcp(localhost:3306)/stories?")
	assert.Contains(t, mysqlDSN(cfg), "clientFoundRows=true")
	assert.Contains(t, postgresDSN(cfg), "sslmode=disable")

	for name, want := range map[string]string{
		":memory:":    "file::memory:?cache=shared",
		"storyhub":    "storyhub.db",
		"data/app.db": "data/app.db",
	} {
		cfg.DBName = name
		assert.Equal(t, want, sqliteDSN(cfg))
	}
}

func TestDefaultLoggerWritesFields(t *testing.T) {
	var buf bytes.Buffer
	utils.ConfigureOutput(&buf)
	defer utils.ConfigureOutput(os.Stdout)

	NewLogger().Info("Database connected", "type", "sqlite", 42, "ignored", "dangling")
	assert.Contains(t, buf.String(), "Database connected")
	assert.Contains(t, buf.String(), "type=sqlite")
	assert.NotContains(t, buf.String(), "ignored")
}
