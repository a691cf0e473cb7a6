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

package controller

import (
	"context"
	"net/http"

	"github.com/tomoncle/storyhub/database"
	"github.com/tomoncle/storyhub/errs"
	"github.com/tomoncle/storyhub/model"
	"github.com/tomoncle/storyhub/service"
	"github.com/tomoncle/storyhub/types"
	"github.com/tomoncle/storyhub/validation"
)

const (
	userNotFound = "No user found with that ID"
	userConflict = "username or email is already taken"
)

type UserController struct {
	users service.UserService
}

func NewUserController(users service.UserService) *UserController {
	return &UserController{users: users}
}

// conflict maps unique-key violations to a 409.
func conflict(err error) error {
	if database.IsDuplicateKey(err) {
		return errs.NewConflict(userConflict).WithCause(err)
	}
	return err
}

func (c *UserController) CreateUser(ctx context.Context, in *model.UserInput) Result {
	if err := validation.ValidateCreate(in); err != nil {
		return Failure(err)
	}
	user, err := c.users.CreateUser(ctx, in)
	if err != nil {
		return Failure(conflict(err))
	}
	return Success(http.StatusCreated, "user created successfully", user)
}

func (c *UserController) GetAllUser(ctx context.Context) Result {
	users, err := c.users.GetAllUser(ctx)
	if err != nil {
		return Failure(err)
	}
	if users == nil {
		users = []*model.User{}
	}
	return Success(http.StatusOK, "sent all user data", users)
}

func (c *UserController) PageUser(ctx context.Context, page, pageSize int) Result {
	p, err := c.users.PageUser(ctx, types.NewPageRequest(page, pageSize, nil, nil))
	if err != nil {
		return Failure(err)
	}
	return Success(http.StatusOK, "sent user page", p)
}

func (c *UserController) GetUser(ctx context.Context, id int64) Result {
	user, err := c.users.GetUser(ctx, id)
	if err != nil {
		return Failure(err)
	}
	if user == nil {
		return Failure(errs.NewNotFound(userNotFound))
	}
	return Success(http.StatusOK, "sent user data", user)
}

func (c *UserController) UpdateUser(ctx context.Context, id int64, in *model.UserInput) Result {
	if err := validation.ValidatePartial(in); err != nil {
		return Failure(err)
	}
	affected, err := c.users.UpdateUser(ctx, id, in)
	if err != nil {
		return Failure(conflict(err))
	}
	if affected == 0 {
		return Failure(errs.NewNotFound(userNotFound))
	}
	user, err := c.users.GetUser(ctx, id)
	if err != nil {
		return Failure(err)
	}
	if user == nil {
		return Failure(errs.NewNotFound(userNotFound))
	}
	return Success(http.StatusOK, "user was updated successfully!", user)
}

func (c *UserController) DeleteUser(ctx context.Context, id int64) Result {
	affected, err := c.users.DeleteUser(ctx, id)
	if err != nil {
		return Failure(err)
	}
	if affected == 0 {
		return Failure(errs.NewNotFound(userNotFound))
	}
	return Success(http.StatusNoContent, "user was deleted successfully!", struct{}{})
}
