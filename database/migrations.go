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
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
)

// MigrationManager creates the tables of registered models and records
// which bootstrap steps already ran.
type MigrationManager struct {
	db       *bun.DB
	logger   Logger
	registry ModelRegistry
	config   MigrateConfig
}

// Migration represents an applied migration record stored in the database.
type Migration struct {
	bun.BaseModel `bun:"table:schema_migrations"`

	Version     string    `bun:"version,pk"`
	Name        string    `bun:"name"`
	AppliedAt   time.Time `bun:"applied_at"`
	Description string    `bun:"description"`
}

// migrationStep is one versioned bootstrap step. Up runs inside the
// transaction that also records the step.
type migrationStep struct {
	Version     string
	Name        string
	Description string
	Up          func(ctx context.Context, db bun.IDB) error
}

// NewMigrationManager constructs a MigrationManager over the given registry.
// A nil registry means the default one.
func NewMigrationManager(db *bun.DB, logger Logger, registry ModelRegistry, cfg MigrateConfig) *MigrationManager {
	if registry == nil {
		registry = defaultRegistry
	}
	if logger == nil {
		logger = nopLogger{}
	}
	return &MigrationManager{db: db, logger: logger, registry: registry, config: cfg}
}

// RunMigrations creates the schema_migrations table if needed and applies
// every pending step in version order.
func (mm *MigrationManager) RunMigrations(ctx context.Context) error {
	if mm.db == nil {
		return errNotConnected
	}

	_, err := mm.db.NewCreateTable().Model((*Migration)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	for _, step := range mm.steps() {
		applied, err := mm.db.NewSelect().
			Model((*Migration)(nil)).
			Where("version = ?", step.Version).
			Exists(ctx)
		if err != nil {
			return fmt.Errorf("check migration %s: %w", step.Version, err)
		}
		if applied {
			mm.logger.Debug("Migration already applied", "version", step.Version)
			continue
		}
		if err := mm.apply(ctx, step); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", step.Version, err)
		}
		mm.logger.Info("Migration applied", "version", step.Version, "name", step.Name)
	}
	return nil
}

// steps returns the bootstrap steps sorted by version.
func (mm *MigrationManager) steps() []migrationStep {
	steps := []migrationStep{{
		Version:     "001",
		Name:        "create_base_tables",
		Description: "Create base table structure",
		Up:          mm.createBaseTables,
	}}
	if mm.config.EnableIndexes {
		steps = append(steps, migrationStep{
			Version:     "002",
			Name:        "create_secondary_indexes",
			Description: "Create secondary indexes declared by models",
			Up:          mm.createIndexes,
		})
	}
	sort.Slice(steps, func(i, j int) bool { return steps[i].Version < steps[j].Version })
	return steps
}

func (mm *MigrationManager) apply(ctx context.Context, step migrationStep) error {
	return mm.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := step.Up(ctx, tx); err != nil {
			return err
		}
		_, err := tx.NewInsert().Model(&Migration{
			Version:     step.Version,
			Name:        step.Name,
			AppliedAt:   time.Now(),
			Description: step.Description,
		}).Exec(ctx)
		return err
	})
}

func (mm *MigrationManager) createBaseTables(ctx context.Context, db bun.IDB) error {
	for _, model := range modelInstances(mm.registry) {
		_, err := db.NewCreateTable().
			Model(model).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create table %s: %w", getModelName(model), err)
		}
	}
	return nil
}

func (mm *MigrationManager) createIndexes(ctx context.Context, db bun.IDB) error {
	// MySQL has no CREATE INDEX IF NOT EXISTS, an existing index is reported
	// as ExistIndexErr instead.
	ifNotExists := db.Dialect().Name() != dialect.MySQL
	for _, model := range modelInstances(mm.registry) {
		indexed, ok := model.(IndexedModel)
		if !ok {
			continue
		}
		for _, idx := range indexed.Indexes() {
			q := db.NewCreateIndex().
				Model(model).
				Index(idx.Name).
				Column(idx.Columns...)
			if idx.Unique {
				q = q.Unique()
			}
			if ifNotExists {
				q = q.IfNotExists()
			}
			if _, err := q.Exec(ctx); err != nil {
				if ok, kind := IsSqlError(err); ok && kind == ExistIndexErr {
					continue
				}
				return fmt.Errorf("failed to create index %s on %s: %w", idx.Name, getModelName(model), err)
			}
			mm.logger.Debug("Index created", "index", idx.Name, "columns", strings.Join(idx.Columns, ","))
		}
	}
	return nil
}

// GetAppliedMigrations returns migration records ordered by version.
func (mm *MigrationManager) GetAppliedMigrations(ctx context.Context) ([]Migration, error) {
	var migrations []Migration
	err := mm.db.NewSelect().
		Model(&migrations).
		Order("version ASC").
		Scan(ctx)
	return migrations, err
}

func getModelName(model interface{}) string {
	t := reflect.TypeOf(model)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}
