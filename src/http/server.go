// MIT License
//
// Copyright (c) 2025 vl1-core
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// go/src/http/server.go
package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vl1-core/go/src/accounts"
	"github.com/vl1-core/go/src/core/l1"
	"github.com/vl1-core/go/src/core/registry"
)

// NewServer creates a new HTTP server over the registry.
func NewServer(address string, reg *registry.Registry) *Server {
	r := gin.Default()
	s := &Server{
		address:  address,
		router:   r,
		registry: reg,
	}
	s.setupRoutes()
	return s
}

// setupRoutes defines the HTTP endpoints.
func (s *Server) setupRoutes() {
	s.router.POST("/l1", s.handleLaunch)
	s.router.POST("/l1/:id/sovereign", s.handleGoSovereign)
	s.router.PUT("/l1/:id/metadata", s.handleUpdateMetadata)
	s.router.GET("/l1/:id", s.handleGetL1)
	s.router.GET("/l1s", s.handleListL1s)
	s.router.GET("/totall1s", s.handleTotalL1s)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// handleLaunch creates a new Virtual L1 record.
func (s *Server) handleLaunch(c *gin.Context) {
	var req LaunchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := accounts.ValidateAddress(req.Caller); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id, err := s.registry.Launch(req.MetadataURI, req.Caller)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, LaunchResponse{ID: id})
}

// handleGoSovereign flips a record's sovereign flag.
func (s *Server) handleGoSovereign(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req SovereignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := accounts.ValidateAddress(req.Caller); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.registry.GoSovereign(id, req.Caller); err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "sovereign"})
}

// handleUpdateMetadata replaces a record's metadata URI.
func (s *Server) handleUpdateMetadata(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req UpdateMetadataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := accounts.ValidateAddress(req.Caller); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.registry.UpdateMetadata(id, req.MetadataURI, req.Caller); err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "metadata updated"})
}

// handleGetL1 returns a record snapshot.
func (s *Server) handleGetL1(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	snap, err := s.registry.Get(id)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, snap)
}

// handleListL1s returns every record in id order.
func (s *Server) handleListL1s(c *gin.Context) {
	c.JSON(http.StatusOK, s.registry.List())
}

// handleTotalL1s returns the number of records ever created.
func (s *Server) handleTotalL1s(c *gin.Context) {
	c.JSON(http.StatusOK, TotalResponse{Total: s.registry.Total()})
}

// parseID reads the :id path parameter, responding 400 on garbage.
func parseID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid L1 id"})
		return 0, false
	}
	return id, true
}

// statusForError maps registry errors to HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, l1.ErrInvalidMetadata):
		return http.StatusBadRequest
	case errors.Is(err, l1.ErrL1NotFound):
		return http.StatusNotFound
	case errors.Is(err, l1.ErrNotOwner):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Handler exposes the underlying router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	return s.router.Run(s.address)
}
