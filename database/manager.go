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
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mysqldialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/uptrace/bun/extra/bundebug"
	"github.com/uptrace/bun/schema"
)

var errNotConnected = errors.New("database not connected")

// dialectSpec binds a configured database type to its driver, DSN builder
// and Bun dialect.
type dialectSpec struct {
	driver  string
	dsn     func(cfg *ConnectionConfig) string
	dialect func() schema.Dialect
	// single forces a pool of one connection
	single bool
}

var dialects = map[string]dialectSpec{
	"mysql": {
		driver:  "mysql",
		dsn:     mysqlDSN,
		dialect: func() schema.Dialect { return mysqldialect.New() },
	},
	"postgres": {
		driver:  "postgres",
		dsn:     postgresDSN,
		dialect: func() schema.Dialect { return pgdialect.New() },
	},
	"sqlite": {
		driver:  sqliteshim.ShimName,
		dsn:     sqliteDSN,
		dialect: func() schema.Dialect { return sqlitedialect.New() },
		single:  true,
	},
}

func init() {
	dialects["postgresql"] = dialects["postgres"]
	dialects["sqlite3"] = dialects["sqlite"]
}

// SupportedTypes lists the accepted values of ConnectionConfig.Type.
func SupportedTypes() []string {
	types := make([]string, 0, len(dialects))
	for name := range dialects {
		types = append(types, name)
	}
	sort.Strings(types)
	return types
}

// mysqlDSN enables clientFoundRows so an UPDATE reports matched rows rather
// than changed rows; writing identical values must not look like a miss.
func mysqlDSN(cfg *ConnectionConfig) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local&clientFoundRows=true&timeout=%s&readTimeout=%s&writeTimeout=%s",
		cfg.Username, cfg.Password, cfg.Host, cfg.Port, cfg.DBName,
		cfg.ConnectTimeout, cfg.ReadTimeout, cfg.WriteTimeout)
}

func postgresDSN(cfg *ConnectionConfig) string {
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s&connect_timeout=%d",
		cfg.Username, cfg.Password, cfg.Host, cfg.Port, cfg.DBName,
		sslMode, int(cfg.ConnectTimeout.Seconds()))
}

// sqliteDSN maps ":memory:" to a shared in-memory database and appends
// ".db" to bare names.
func sqliteDSN(cfg *ConnectionConfig) string {
	name := cfg.DBName
	switch {
	case name == ":memory:":
		return "file::memory:?cache=shared"
	case strings.HasPrefix(name, "file:"), strings.HasSuffix(name, ".db"):
		return name
	default:
		return name + ".db"
	}
}

type bunManager struct {
	cfg      ConnectionConfig
	migrate  MigrateConfig
	registry ModelRegistry

	mu          sync.RWMutex
	log         Logger
	db          *bun.DB
	reconnects  int
	stopMonitor context.CancelFunc
}

// NewDatabaseManager returns an AbstractDatabaseManager backed by Bun. A nil
// config falls back to DefaultConfig and a nil registry to the default one.
func NewDatabaseManager(cfg *Config, registry ModelRegistry) AbstractDatabaseManager {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if registry == nil {
		registry = defaultRegistry
	}
	return &bunManager{
		cfg:      cfg.ConnectionConfig,
		migrate:  cfg.MigrateConfig,
		registry: registry,
		log:      nopLogger{},
	}
}

func (m *bunManager) Connect(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.openLocked(ctx); err != nil {
		return err
	}
	if m.cfg.HealthCheckInterval > 0 && m.stopMonitor == nil {
		monitorCtx, cancel := context.WithCancel(context.Background())
		m.stopMonitor = cancel
		go m.monitor(monitorCtx)
	}
	return nil
}

func (m *bunManager) openLocked(ctx context.Context) error {
	if m.db != nil {
		return nil
	}
	spec, ok := dialects[m.cfg.Type]
	if !ok {
		return fmt.Errorf("unsupported database type: %s", m.cfg.Type)
	}
	if m.cfg.ConnectTimeout <= 0 {
		m.cfg.ConnectTimeout = 30 * time.Second
	}

	sqlDB, err := sql.Open(spec.driver, spec.dsn(&m.cfg))
	if err != nil {
		return fmt.Errorf("failed to create database connection: %w", err)
	}
	if spec.single {
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
	} else {
		sqlDB.SetMaxIdleConns(m.cfg.MaxIdleConns)
		sqlDB.SetMaxOpenConns(m.cfg.MaxOpenConns)
		sqlDB.SetConnMaxLifetime(m.cfg.ConnMaxLifetime)
		sqlDB.SetConnMaxIdleTime(m.cfg.ConnMaxIdleTime)
	}

	db := bun.NewDB(sqlDB, spec.dialect())
	pingCtx, cancel := context.WithTimeout(ctx, m.cfg.ConnectTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return fmt.Errorf("database connection test failed: %w", err)
	}

	if m.cfg.EnableQueryLog {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true), bundebug.FromEnv("BUNDEBUG")))
	}
	db.AddQueryHook(&errorQueryHook{logger: m.log})
	if m.cfg.SlowQueryTime > 0 {
		db.AddQueryHook(&slowQueryHook{slowTime: m.cfg.SlowQueryTime, logger: m.log})
	}
	db.RegisterModel(modelInstances(m.registry)...)

	m.db = db
	m.reconnects = 0
	m.log.Info("Database connected", "type", m.cfg.Type, "host", m.cfg.Host, "dbname", m.cfg.DBName)
	return nil
}

func (m *bunManager) closeLocked() error {
	if m.db == nil {
		return nil
	}
	err := m.db.Close()
	m.db = nil
	if err != nil {
		m.log.Error("Failed to close database connection", "error", err)
		return err
	}
	m.log.Info("Database connection closed")
	return nil
}

func (m *bunManager) Disconnect() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.stopMonitor != nil {
		m.stopMonitor()
		m.stopMonitor = nil
	}
	return m.closeLocked()
}

// Reconnect replaces the pool and keeps the health monitor running.
func (m *bunManager) Reconnect(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	m.log.Info("Reconnecting to the database")
	if err := m.closeLocked(); err != nil {
		m.log.Warn("Error closing previous connection", "error", err)
	}
	return m.openLocked(ctx)
}

func (m *bunManager) Ping(ctx context.Context) error {
	db := m.GetDB()
	if db == nil {
		return errNotConnected
	}
	return db.PingContext(ctx)
}

func (m *bunManager) GetDB() *bun.DB {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.db
}

func (m *bunManager) GetSQLDB() *sql.DB {
	db := m.GetDB()
	if db == nil {
		return nil
	}
	return db.DB
}

func (m *bunManager) HealthCheck(ctx context.Context) *HealthStatus {
	start := time.Now()
	status := &HealthStatus{LastCheckTime: start}

	db := m.GetDB()
	if db == nil {
		status.LastError = "Database not initialized"
		return status
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	err := db.PingContext(pingCtx)
	status.ResponseTime = time.Since(start)
	if err != nil {
		status.LastError = err.Error()
	} else {
		status.Healthy = true
		status.Connected = true
	}

	stats := db.Stats()
	status.ActiveConns = stats.InUse
	status.IdleConns = stats.Idle
	status.MaxOpenConns = stats.MaxOpenConnections
	return status
}

func (m *bunManager) monitor(ctx context.Context) {
	ticker := time.NewTicker(m.cfg.HealthCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if status := m.HealthCheck(ctx); !status.Healthy && m.cfg.EnableReconnect {
				m.tryReconnect(ctx)
			}
		}
	}
}

func (m *bunManager) tryReconnect(ctx context.Context) {
	m.mu.Lock()
	if m.reconnects >= m.cfg.MaxReconnectTries {
		m.mu.Unlock()
		m.log.Error("Max reconnect attempts reached", "tries", m.cfg.MaxReconnectTries)
		return
	}
	m.reconnects++
	try := m.reconnects
	m.mu.Unlock()

	select {
	case <-ctx.Done():
		return
	case <-time.After(m.cfg.ReconnectInterval):
	}

	reconnectCtx, cancel := context.WithTimeout(ctx, m.cfg.ConnectTimeout)
	defer cancel()
	if err := m.Reconnect(reconnectCtx); err != nil {
		m.log.Error("Reconnect failed", "error", err, "try", try)
		return
	}
	m.log.Info("Reconnect succeeded", "try", try)
}

func (m *bunManager) GetStats() *DBStats {
	db := m.GetSQLDB()
	if db == nil {
		return &DBStats{}
	}
	stats := db.Stats()
	return &DBStats{
		MaxOpenConns:      stats.MaxOpenConnections,
		OpenConns:         stats.OpenConnections,
		InUse:             stats.InUse,
		Idle:              stats.Idle,
		WaitCount:         stats.WaitCount,
		WaitDuration:      stats.WaitDuration,
		MaxIdleClosed:     stats.MaxIdleClosed,
		MaxIdleTimeClosed: stats.MaxIdleTimeClosed,
		MaxLifetimeClosed: stats.MaxLifetimeClosed,
	}
}

func (m *bunManager) RunMigrations(ctx context.Context) error {
	db := m.GetDB()
	if db == nil {
		return errNotConnected
	}
	return NewMigrationManager(db, m.log, m.registry, m.migrate).RunMigrations(ctx)
}

func (m *bunManager) SetLogger(logger Logger) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if logger == nil {
		logger = nopLogger{}
	}
	m.log = logger
}
