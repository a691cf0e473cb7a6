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

	"github.com/tomoncle/storyhub/errs"
	"github.com/tomoncle/storyhub/model"
	"github.com/tomoncle/storyhub/service"
	"github.com/tomoncle/storyhub/types"
	"github.com/tomoncle/storyhub/validation"
)

const storyNotFound = "No story found with that ID"

type StoryController struct {
	stories service.StoryService
}

func NewStoryController(stories service.StoryService) *StoryController {
	return &StoryController{stories: stories}
}

func (c *StoryController) CreateStory(ctx context.Context, in *model.StoryInput) Result {
	if err := validation.ValidateCreate(in); err != nil {
		return Failure(err)
	}
	story, err := c.stories.CreateStory(ctx, in)
	if err != nil {
		return Failure(err)
	}
	return Success(http.StatusCreated, "story created successfully", story)
}

func (c *StoryController) GetAllStory(ctx context.Context) Result {
	stories, err := c.stories.GetAllStory(ctx)
	if err != nil {
		return Failure(err)
	}
	if stories == nil {
		stories = []*model.Story{}
	}
	return Success(http.StatusOK, "sent all story data", stories)
}

// PageStory lists one page of stories, optionally restricted to an author.
func (c *StoryController) PageStory(ctx context.Context, page, pageSize int, author string) Result {
	var filter *types.QueryFilter
	if author != "" {
		filter = types.NewQueryFilter("author = ?", author)
	}
	p, err := c.stories.PageStory(ctx, types.NewPageRequest(page, pageSize, filter, nil))
	if err != nil {
		return Failure(err)
	}
	return Success(http.StatusOK, "sent story page", p)
}

func (c *StoryController) GetStory(ctx context.Context, id int64) Result {
	story, err := c.stories.GetStory(ctx, id)
	if err != nil {
		return Failure(err)
	}
	if story == nil {
		return Failure(errs.NewNotFound(storyNotFound))
	}
	return Success(http.StatusOK, "sent story data", story)
}

func (c *StoryController) UpdateStory(ctx context.Context, id int64, in *model.StoryInput) Result {
	if err := validation.ValidatePartial(in); err != nil {
		return Failure(err)
	}
	affected, err := c.stories.UpdateStory(ctx, id, in)
	if err != nil {
		return Failure(err)
	}
	if affected == 0 {
		return Failure(errs.NewNotFound(storyNotFound))
	}
	story, err := c.stories.GetStory(ctx, id)
	if err != nil {
		return Failure(err)
	}
	if story == nil {
		return Failure(errs.NewNotFound(storyNotFound))
	}
	return Success(http.StatusOK, "story was updated successfully!", story)
}

func (c *StoryController) DeleteStory(ctx context.Context, id int64) Result {
	affected, err := c.stories.DeleteStory(ctx, id)
	if err != nil {
		return Failure(err)
	}
	if affected == 0 {
		return Failure(errs.NewNotFound(storyNotFound))
	}
	return Success(http.StatusNoContent, "story was deleted successfully!", struct{}{})
}
