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

package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/tomoncle/storyhub/errs"
	"github.com/tomoncle/storyhub/model"
)

const maxBodyBytes = 1 << 20

func pathID(r *http.Request) (int64, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, errs.NewBadRequest("invalid id: " + raw)
	}
	return id, nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errs.NewBadRequest("request body is empty")
		}
		return errs.NewBadRequest("malformed JSON body").WithCause(err)
	}
	return nil
}

// pageParams reads page and page_size. ok is false when neither is present.
func pageParams(r *http.Request) (page, pageSize int, ok bool, err error) {
	q := r.URL.Query()
	if !q.Has("page") && !q.Has("page_size") {
		return 0, 0, false, nil
	}
	for _, p := range []struct {
		name string
		dst  *int
	}{{"page", &page}, {"page_size", &pageSize}} {
		raw := q.Get(p.name)
		if raw == "" {
			continue
		}
		n, convErr := strconv.Atoi(raw)
		if convErr != nil {
			return 0, 0, false, errs.NewBadRequest("invalid " + p.name + ": " + raw)
		}
		*p.dst = n
	}
	return page, pageSize, true, nil
}

func (s *Server) handleCreateStory(w http.ResponseWriter, r *http.Request) {
	var in model.StoryInput
	if err := decodeBody(w, r, &in); err != nil {
		s.fail(w, r, err)
		return
	}
	s.render(w, r, s.stories.CreateStory(r.Context(), &in))
}

func (s *Server) handleListStories(w http.ResponseWriter, r *http.Request) {
	page, pageSize, paged, err := pageParams(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	author := r.URL.Query().Get("author")
	if paged || author != "" {
		s.render(w, r, s.stories.PageStory(r.Context(), page, pageSize, author))
		return
	}
	s.render(w, r, s.stories.GetAllStory(r.Context()))
}

func (s *Server) handleGetStory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.render(w, r, s.stories.GetStory(r.Context(), id))
}

func (s *Server) handleUpdateStory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var in model.StoryInput
	if err := decodeBody(w, r, &in); err != nil {
		s.fail(w, r, err)
		return
	}
	s.render(w, r, s.stories.UpdateStory(r.Context(), id, &in))
}

func (s *Server) handleDeleteStory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.render(w, r, s.stories.DeleteStory(r.Context(), id))
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var in model.UserInput
	if err := decodeBody(w, r, &in); err != nil {
		s.fail(w, r, err)
		return
	}
	s.render(w, r, s.users.CreateUser(r.Context(), &in))
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	page, pageSize, paged, err := pageParams(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if paged {
		s.render(w, r, s.users.PageUser(r.Context(), page, pageSize))
		return
	}
	s.render(w, r, s.users.GetAllUser(r.Context()))
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.render(w, r, s.users.GetUser(r.Context(), id))
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var in model.UserInput
	if err := decodeBody(w, r, &in); err != nil {
		s.fail(w, r, err)
		return
	}
	s.render(w, r, s.users.UpdateUser(r.Context(), id, &in))
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.render(w, r, s.users.DeleteUser(r.Context(), id))
}
