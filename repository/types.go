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

package repository

import (
	"context"

	"github.com/tomoncle/storyhub/types"
	"github.com/uptrace/bun"
)

// CrudRepository defines basic CRUD operations for a generic entity type.
// Update and Delete report the number of affected rows so callers can tell a
// missing row from a successful write.
type CrudRepository[T any] interface {
	// GetOne returns nil, nil when no row has the given id.
	GetOne(ctx context.Context, id any) (*T, error)

	GetAll(ctx context.Context) ([]*T, error)

	Create(ctx context.Context, entity ...*T) error

	// Update writes the given columns of entity to the row with id. An empty
	// column list writes every column except the primary key.
	Update(ctx context.Context, id any, entity *T, columns ...string) (int64, error)

	Delete(ctx context.Context, id any) (int64, error)
}

// TransactionRepository defines CRUD operations executed within a transaction.
type TransactionRepository[T any] interface {
	CreateWithTx(ctx context.Context, tx bun.IDB, entity ...*T) error
	UpdateWithTx(ctx context.Context, tx bun.IDB, id any, entity *T, columns ...string) (int64, error)
	DeleteWithTx(ctx context.Context, tx bun.IDB, id any) (int64, error)
}

// PageQueryRepository defines pagination functionality for listing entities.
type PageQueryRepository[T any] interface {
	Page(ctx context.Context, page *types.PageRequest) (*types.Pagination[T], error)
}

// Repository combines CRUD, pagination, and transactional operations.
type Repository[T any] interface {
	CrudRepository[T]
	PageQueryRepository[T]
	TransactionRepository[T]
}
