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

// Package server exposes the story and user controllers over HTTP.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/tomoncle/storyhub/controller"
	"github.com/tomoncle/storyhub/database"
	"github.com/tomoncle/storyhub/errs"
	"github.com/tomoncle/storyhub/response"
	"github.com/tomoncle/storyhub/types"
	"github.com/tomoncle/storyhub/utils"
)

const apiPrefix = "/api/v1"

// HealthChecker reports the state of the backing database.
type HealthChecker interface {
	HealthCheck(ctx context.Context) *database.HealthStatus
}

type Options struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type Server struct {
	stories *controller.StoryController
	users   *controller.UserController
	health  HealthChecker
	log     *logrus.Logger
	router  *mux.Router
	server  *http.Server
}

func NewServer(stories *controller.StoryController, users *controller.UserController, health HealthChecker) *Server {
	s := &Server{
		stories: stories,
		users:   users,
		health:  health,
		log:     utils.NewLogger("HTTP"),
		router:  mux.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(s.requestID, s.accessLog, s.recoverer)
	// mux skips router middleware for unmatched requests
	s.router.NotFoundHandler = s.fallback(s.handleNotFound)
	s.router.MethodNotAllowedHandler = s.fallback(s.handleMethodNotAllowed)

	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	s.router.HandleFunc(apiPrefix+"/stories", s.handleCreateStory).Methods(http.MethodPost)
	s.router.HandleFunc(apiPrefix+"/stories", s.handleListStories).Methods(http.MethodGet)
	s.router.HandleFunc(apiPrefix+"/stories/{id}", s.handleGetStory).Methods(http.MethodGet)
	s.router.HandleFunc(apiPrefix+"/stories/{id}", s.handleUpdateStory).Methods(http.MethodPut, http.MethodPatch)
	s.router.HandleFunc(apiPrefix+"/stories/{id}", s.handleDeleteStory).Methods(http.MethodDelete)

	s.router.HandleFunc(apiPrefix+"/users", s.handleCreateUser).Methods(http.MethodPost)
	s.router.HandleFunc(apiPrefix+"/users", s.handleListUsers).Methods(http.MethodGet)
	s.router.HandleFunc(apiPrefix+"/users/{id}", s.handleGetUser).Methods(http.MethodGet)
	s.router.HandleFunc(apiPrefix+"/users/{id}", s.handleUpdateUser).Methods(http.MethodPut, http.MethodPatch)
	s.router.HandleFunc(apiPrefix+"/users/{id}", s.handleDeleteUser).Methods(http.MethodDelete)
}

func (s *Server) fallback(fn http.HandlerFunc) http.Handler {
	return s.requestID(s.accessLog(s.recoverer(fn)))
}

// Handler returns the router with all middleware applied.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on opts.Port and blocks until the server stops.
func (s *Server) Start(opts Options) error {
	s.server = &http.Server{
		Addr:         ":" + opts.Port,
		Handler:      s.router,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
	}

	s.log.Infof("web server listening on %s", s.server.Addr)
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down.
func (s *Server) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, res controller.Result) {
	if res.Failed() {
		s.fail(w, r, res.Err)
		return
	}
	response.Respond(w, r, res.StatusCode, res.Data, res.Message, res.Status())
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	response.Error(w, r, err, s.log.WithField("request_id", RequestID(r.Context())))
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.fail(w, r, errs.NewNotFound("can't find "+r.URL.Path+" on this server"))
}

func (s *Server) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	s.fail(w, r, errs.New(http.StatusMethodNotAllowed, r.Method+" is not allowed on "+r.URL.Path))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := s.health.HealthCheck(r.Context())
	if !status.Healthy {
		response.Respond(w, r, http.StatusServiceUnavailable, status, "database is unavailable", types.StatusError)
		return
	}
	response.Respond(w, r, http.StatusOK, status, "ok", types.StatusSuccess)
}
