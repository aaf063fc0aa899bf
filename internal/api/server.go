// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// FFProgress - FFmpeg 进度条包装工具
//
// Package api serves the state of the running ffmpeg over HTTP, read-only.

package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/ZSC714725/ffprogress/internal/logger"
)

// NewRouter registers the status routes.
func NewRouter(handler *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), cors.Default())

	v3 := r.Group("/api/v3")
	{
		v3.GET("/progress", handler.GetProgress)
		v3.GET("/process", handler.GetProcess)
		v3.GET("/about", handler.About)
	}

	return r
}

// Server is the optional status endpoint.
type Server struct {
	srv    *http.Server
	ln     net.Listener
	logger logger.Logger
}

// Listen binds addr. NewRouter installs no request logger, so nothing is
// written to the terminal.
func Listen(addr string, handler *Handler, log logger.Logger) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Nop()
	}

	return &Server{
		srv: &http.Server{
			Handler:           NewRouter(handler),
			ReadHeaderTimeout: 5 * time.Second,
		},
		ln:     ln,
		logger: log,
	}, nil
}

// Addr is the bound address.
func (s *Server) Addr() string {
	return s.ln.Addr().String()
}

// Serve runs until ctx is done.
func (s *Server) Serve(ctx context.Context) {
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = s.srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info("status API listening on %s", s.Addr())
	if err := s.srv.Serve(s.ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.logger.Error("status API: %v", err)
	}
}
