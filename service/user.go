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

package service

import (
	"context"
	"fmt"

	"github.com/tomoncle/storyhub/model"
	"github.com/tomoncle/storyhub/types"
	"github.com/uptrace/bun"
)

// UserService is the persistence gateway for users.
type UserService interface {
	CreateUser(ctx context.Context, in *model.UserInput) (*model.User, error)
	GetAllUser(ctx context.Context) ([]*model.User, error)
	// GetUser returns nil, nil when no user has the id.
	GetUser(ctx context.Context, id int64) (*model.User, error)
	// UpdateUser returns the number of users that matched id.
	UpdateUser(ctx context.Context, id int64, in *model.UserInput) (int64, error)
	// DeleteUser returns the number of users removed.
	DeleteUser(ctx context.Context, id int64) (int64, error)
	PageUser(ctx context.Context, page *types.PageRequest) (*types.Pagination[model.User], error)
}

type userService struct {
	base Service[model.User]
}

func NewUserService(db *bun.DB) UserService {
	return &userService{base: NewService[model.User](db)}
}

func (s *userService) CreateUser(ctx context.Context, in *model.UserInput) (*model.User, error) {
	user := &model.User{}
	in.Apply(user)
	if err := s.base.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *userService) GetAllUser(ctx context.Context) ([]*model.User, error) {
	users, err := s.base.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *userService) GetUser(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.base.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return user, nil
}

func (s *userService) UpdateUser(ctx context.Context, id int64, in *model.UserInput) (int64, error) {
	columns := in.Columns()
	if len(columns) == 0 {
		// nothing to write, report whether the user exists
		user, err := s.GetUser(ctx, id)
		if err != nil || user == nil {
			return 0, err
		}
		return 1, nil
	}
	user := &model.User{}
	in.Apply(user)
	n, err := s.base.Update(ctx, id, user, columns...)
	if err != nil {
		return 0, fmt.Errorf("update user %d: %w", id, err)
	}
	return n, nil
}

func (s *userService) DeleteUser(ctx context.Context, id int64) (int64, error) {
	n, err := s.base.Delete(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("delete user %d: %w", id, err)
	}
	return n, nil
}

func (s *userService) PageUser(ctx context.Context, page *types.PageRequest) (*types.Pagination[model.User], error) {
	p, err := s.base.Page(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("page users: %w", err)
	}
	return p, nil
}
