/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package server serves grouped lists over HTTP. The grouping selection is
// part of the list URL, so every column header is a link that toggles its
// column and the list is recomputed on each request.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/grouplist/core/rendering"
	"github.com/google/grouplist/datasources"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/net/http2"
)

// Options controls the pages served
type Options struct {
	Title    string
	Subtitle string
	// PageLimit is the row limit of a list URL without a limit parameter
	PageLimit int
	// Debug checks every list for partition errors before rendering it
	Debug bool
}

// Server represents the application server with all its dependencies
type Server struct {
	Echo     *echo.Echo
	manager  *datasources.Manager
	renderer *rendering.ListRenderer
	logger   zerolog.Logger
	opts     Options
}

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// ValidateRequest binds the request body to s and validates it
func ValidateRequest(c echo.Context, s interface{}) error {
	if err := c.Bind(s); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.Validate(s)
}

// NewServer creates a server listing the sources of manager
func NewServer(manager *datasources.Manager, logger zerolog.Logger, opts Options) (*Server, error) {
	renderer, err := rendering.NewListRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	if opts.Title == "" {
		opts.Title = "grouplist"
	}

	s := &Server{
		Echo:     echo.New(),
		manager:  manager,
		renderer: renderer,
		logger:   logger,
		opts:     opts,
	}
	s.Echo.HideBanner = true
	s.Echo.HidePort = true

	s.Echo.Use(s.createReqContext)
	s.Echo.Use(s.loggerMiddleware)
	s.Echo.Use(middleware.Recover())
	s.Echo.Validator = &CustomValidator{validator: validator.New()}

	// technical
	s.Echo.GET("/hc", s.HealthCheck)

	s.Echo.GET("/", ccHandler(s.HandleLanding))
	s.Echo.GET("/list", ccHandler(s.HandleList))
	s.Echo.GET("/api/list", ccHandler(s.HandleAPIList))
	s.Echo.POST("/api/toggle", ccHandler(s.HandleToggle))

	return s, nil
}

// Start listens on addr and serves h2c in the background. Listener errors
// are returned; serve errors are logged.
func (s *Server) Start(addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("error creating tcp listener: %w", err)
	}
	s.Echo.Listener = listener
	go func() {
		s.logger.Info().Msg("starting h2c server on " + listener.Addr().String())
		err := s.Echo.StartH2CServer("", &http2.Server{})
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error().Err(err).Msg("h2c server failed")
		}
	}()
	return nil
}

// Addr returns the address the server listens on, or "" before Start
func (s *Server) Addr() string {
	if s.Echo.Listener == nil {
		return ""
	}
	return s.Echo.Listener.Addr().String()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.Echo.Shutdown(ctx)
}

func (*Server) HealthCheck(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func (s *Server) loggerMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		if err := next(c); err != nil {
			// default handler
			c.Error(err)
		}
		stop := time.Since(start)
		logger := zerolog.Ctx(c.Request().Context())
		req := c.Request()
		res := c.Response()

		p := req.URL.Path
		if p == "" {
			p = "/"
		}

		logger.Debug().Str("method", req.Method).Str("remote_ip", c.RealIP()).Str("req_uri", req.RequestURI).Str("handler_path", c.Path()).Str("path", p).Int("status", res.Status).Int64("latency_ns", int64(stop)).Str("protocol", req.Proto).Int64("bytes_out", res.Size).Msg("req received")
		return nil
	}
}
