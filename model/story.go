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

package model

import (
	"context"
	"time"

	"github.com/tomoncle/storyhub/database"
	"github.com/uptrace/bun"
)

func init() {
	database.RegisterModel(database.NewModelAdapter((*Story)(nil), 20))
}

// Story is a piece of writing attributed to an author.
type Story struct {
	bun.BaseModel `bun:"table:stories,alias:s"`

	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	Author    string    `bun:"author,notnull" json:"author"`
	Content   string    `bun:"content,type:text,notnull" json:"content"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updatedAt"`
}

func (*Story) Indexes() []database.Index {
	return []database.Index{{Name: "stories_author_idx", Columns: []string{"author"}}}
}

var _ bun.BeforeAppendModelHook = (*Story)(nil)

func (s *Story) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	now := time.Now()
	switch query.(type) {
	case *bun.InsertQuery:
		s.CreatedAt = now
		s.UpdatedAt = now
	case *bun.UpdateQuery:
		s.UpdatedAt = now
	}
	return nil
}

// StoryInput carries the writable attributes of a story. On update only the
// non-nil fields are applied.
type StoryInput struct {
	Author  *string `json:"author" validate:"required,min=1,max=255"`
	Content *string `json:"content" validate:"required,min=1"`
}

// Columns returns the column names set in the input.
func (in *StoryInput) Columns() []string {
	var cols []string
	if in.Author != nil {
		cols = append(cols, "author")
	}
	if in.Content != nil {
		cols = append(cols, "content")
	}
	return cols
}

// Apply copies the set fields onto s.
func (in *StoryInput) Apply(s *Story) {
	if in.Author != nil {
		s.Author = *in.Author
	}
	if in.Content != nil {
		s.Content = *in.Content
	}
}
