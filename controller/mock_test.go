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

	"github.com/stretchr/testify/mock"
	"github.com/tomoncle/storyhub/model"
	"github.com/tomoncle/storyhub/service"
	"github.com/tomoncle/storyhub/types"
)

type mockStoryService struct {
	mock.Mock
}

var _ service.StoryService = (*mockStoryService)(nil)

func (m *mockStoryService) CreateStory(ctx context.Context, in *model.StoryInput) (*model.Story, error) {
	args := m.Called(ctx, in)
	story, _ := args.Get(0).(*model.Story)
	return story, args.Error(1)
}

func (m *mockStoryService) GetAllStory(ctx context.Context) ([]*model.Story, error) {
	args := m.Called(ctx)
	stories, _ := args.Get(0).([]*model.Story)
	return stories, args.Error(1)
}

func (m *mockStoryService) GetStory(ctx context.Context, id int64) (*model.Story, error) {
	args := m.Called(ctx, id)
	story, _ := args.Get(0).(*model.Story)
	return story, args.Error(1)
}

func (m *mockStoryService) UpdateStory(ctx context.Context, id int64, in *model.StoryInput) (int64, error) {
	args := m.Called(ctx, id, in)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStoryService) DeleteStory(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStoryService) PageStory(ctx context.Context, page *types.PageRequest) (*types.Pagination[model.Story], error) {
	args := m.Called(ctx, page)
	p, _ := args.Get(0).(*types.Pagination[model.Story])
	return p, args.Error(1)
}

type mockUserService struct {
	mock.Mock
}

var _ service.UserService = (*mockUserService)(nil)

func (m *mockUserService) CreateUser(ctx context.Context, in *model.UserInput) (*model.User, error) {
	args := m.Called(ctx, in)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *mockUserService) GetAllUser(ctx context.Context) ([]*model.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]*model.User)
	return users, args.Error(1)
}

func (m *mockUserService) GetUser(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *mockUserService) UpdateUser(ctx context.Context, id int64, in *model.UserInput) (int64, error) {
	args := m.Called(ctx, id, in)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockUserService) DeleteUser(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockUserService) PageUser(ctx context.Context, page *types.PageRequest) (*types.Pagination[model.User], error) {
	args := m.Called(ctx, page)
	p, _ := args.Get(0).(*types.Pagination[model.User])
	return p, args.Error(1)
}
