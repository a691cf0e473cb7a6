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

// StoryService is the persistence gateway for stories.
type StoryService interface {
	CreateStory(ctx context.Context, in *model.StoryInput) (*model.Story, error)
	GetAllStory(ctx context.Context) ([]*model.Story, error)
	// GetStory returns nil, nil when no story has the id.
	GetStory(ctx context.Context, id int64) (*model.Story, error)
	// UpdateStory returns the number of stories that matched id.
	UpdateStory(ctx context.Context, id int64, in *model.StoryInput) (int64, error)
	// DeleteStory returns the number of stories removed.
	DeleteStory(ctx context.Context, id int64) (int64, error)
	PageStory(ctx context.Context, page *types.PageRequest) (*types.Pagination[model.Story], error)
}

type storyService struct {
	base Service[model.Story]
}

func NewStoryService(db *bun.DB) StoryService {
	return &storyService{base: NewService[model.Story](db)}
}

func (s *storyService) CreateStory(ctx context.Context, in *model.StoryInput) (*model.Story, error) {
	story := &model.Story{}
	in.Apply(story)
	if err := s.base.Save(ctx, story); err != nil {
		return nil, fmt.Errorf("create story: %w", err)
	}
	return story, nil
}

func (s *storyService) GetAllStory(ctx context.Context) ([]*model.Story, error) {
	stories, err := s.base.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list stories: %w", err)
	}
	return stories, nil
}

func (s *storyService) GetStory(ctx context.Context, id int64) (*model.Story, error) {
	story, err := s.base.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get story %d: %w", id, err)
	}
	return story, nil
}

func (s *storyService) UpdateStory(ctx context.Context, id int64, in *model.StoryInput) (int64, error) {
	columns := in.Columns()
	if len(columns) == 0 {
		// nothing to write, report whether the story exists
		story, err := s.GetStory(ctx, id)
		if err != nil || story == nil {
			return 0, err
		}
		return 1, nil
	}
	story := &model.Story{}
	in.Apply(story)
	n, err := s.base.Update(ctx, id, story, columns...)
	if err != nil {
		return 0, fmt.Errorf("update story %d: %w", id, err)
	}
	return n, nil
}

func (s *storyService) DeleteStory(ctx context.Context, id int64) (int64, error) {
	n, err := s.base.Delete(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("delete story %d: %w", id, err)
	}
	return n, nil
}

func (s *storyService) PageStory(ctx context.Context, page *types.PageRequest) (*types.Pagination[model.Story], error) {
	p, err := s.base.Page(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("page stories: %w", err)
	}
	return p, nil
}
