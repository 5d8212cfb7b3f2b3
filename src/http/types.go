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

// go/src/http/types.go
package http

import (
	"github.com/gin-gonic/gin"
	"github.com/vl1-core/go/src/core/registry"
)

// Server handles REST requests against the registry.
type Server struct {
	address  string
	router   *gin.Engine
	registry *registry.Registry
}

// LaunchRequest is the body of POST /l1.
type LaunchRequest struct {
	MetadataURI string `json:"metadata_uri"`
	Caller      string `json:"caller"`
}

// LaunchResponse is the body returned by POST /l1.
type LaunchResponse struct {
	ID uint64 `json:"id"`
}

// SovereignRequest is the body of POST /l1/:id/sovereign.
type SovereignRequest struct {
	Caller string `json:"caller"`
}

// UpdateMetadataRequest is the body of PUT /l1/:id/metadata.
type UpdateMetadataRequest struct {
	MetadataURI string `json:"metadata_uri"`
	Caller      string `json:"caller"`
}

// TotalResponse is the body returned by GET /totall1s.
type TotalResponse struct {
	Total uint64 `json:"total"`
}
