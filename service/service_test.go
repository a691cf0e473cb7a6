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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomoncle/storyhub/database"
	"github.com/tomoncle/storyhub/model"
	"github.com/tomoncle/storyhub/types"
	"github.com/uptrace/bun"
)

func openDB(t *testing.T) *bun.DB {
	t.Helper()
	cfg := database.DefaultConfig()
	cfg.ConnectionConfig.DBName = ":memory:"
	cfg.ConnectionConfig.HealthCheckInterval = 0

	manager, err := database.Open(context.Background(), cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = manager.Disconnect() })
	return manager.GetDB()
}

func ptr(s string) *string { return &s }

func TestStoryServiceLifecycle(t *testing.T) {
	svc := NewStoryService(openDB(t))
	ctx := context.Background()

	created, err := svc.CreateStory(ctx, &model.StoryInput{Author: ptr("ann"), Content: ptr("it was a dark night")})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := svc.GetStory(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "it was a dark night", got.Content)

	n, err := svc.UpdateStory(ctx, created.ID, &model.StoryInput{Content: ptr("and stormy")})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	got, err = svc.GetStory(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "ann", got.Author)
	assert.Equal(t, "and stormy", got.Content)

	all, err := svc.GetAllStory(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	n, err = svc.DeleteStory(ctx, created.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	got, err = svc.GetStory(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStoryServiceMissingRows(t *testing.T) {
	svc := NewStoryService(openDB(t))
	ctx := context.Background()

	n, err := svc.UpdateStory(ctx, 42, &model.StoryInput{Author: ptr("bob")})
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	n, err = svc.UpdateStory(ctx, 42, &model.StoryInput{})
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	for i := 0; i < 2; i++ {
		n, err = svc.DeleteStory(ctx, 42)
		require.NoError(t, err)
		assert.EqualValues(t, 0, n)
	}
}

func TestStoryServiceEmptyUpdateOfExistingStory(t *testing.T) {
	svc := NewStoryService(openDB(t))
	ctx := context.Background()

	created, err := svc.CreateStory(ctx, &model.StoryInput{Author: ptr("ann"), Content: ptr("x")})
	require.NoError(t, err)

	n, err := svc.UpdateStory(ctx, created.ID, &model.StoryInput{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestStoryServicePage(t *testing.T) {
	svc := NewStoryService(openDB(t))
	ctx := context.Background()

	for _, author := range []string{"ann", "bob", "cy"} {
		_, err := svc.CreateStory(ctx, &model.StoryInput{Author: ptr(author), Content: ptr("...")})
		require.NoError(t, err)
	}

	page, err := svc.PageStory(ctx, types.NewPageRequestWithOrders(1, 2, []string{"id DESC"}))
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "cy", page.Items[0].Author)
}

func TestUserServiceDuplicate(t *testing.T) {
	svc := NewUserService(openDB(t))
	ctx := context.Background()

	first, err := svc.CreateUser(ctx, &model.UserInput{Username: ptr("ann"), Email: ptr("ann@example.com")})
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, &model.UserInput{Username: ptr("ann"), Email: ptr("ann2@example.com")})
	require.Error(t, err)
	assert.True(t, database.IsDuplicateKey(err))

	second, err := svc.CreateUser(ctx, &model.UserInput{Username: ptr("bob"), Email: ptr("bob@example.com")})
	require.NoError(t, err)

	_, err = svc.UpdateUser(ctx, second.ID, &model.UserInput{Email: ptr("ann@example.com")})
	require.Error(t, err)
	assert.True(t, database.IsDuplicateKey(err))

	got, err := svc.GetUser(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", got.Email)
}
