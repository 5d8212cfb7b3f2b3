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

// go/src/rpc/types.go
package rpc

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/vl1-core/go/src/core/registry"
)

// JSON-RPC error codes. The registry error kinds map onto the
// implementation-defined server error range.
const (
	CodeParseError      = -32700
	CodeMethodNotFound  = -32601
	CodeInvalidParams   = -32602
	CodeInternal        = -32603
	CodeInvalidMetadata = -32001
	CodeL1NotFound      = -32004
	CodeNotOwner        = -32003
)

// Metrics holds RPC-related Prometheus metrics.
type Metrics struct {
	RequestCount   *prometheus.CounterVec
	RequestLatency *prometheus.HistogramVec
	ErrorCount     *prometheus.CounterVec
	TotalL1s       prometheus.Gauge
}

// Server processes registry JSON-RPC requests.
type Server struct {
	registry *registry.Registry
	metrics  *Metrics
}

// JSONRPCRequest represents a JSON-RPC 2.0 request.
type JSONRPCRequest struct {
	JSONRPC string      `json:"jsonrpc"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params"`
	ID      interface{} `json:"id"`
}

// JSONRPCResponse represents a JSON-RPC 2.0 response.
type JSONRPCResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	Result  interface{} `json:"result,omitempty"`
	Error   *RPCError   `json:"error,omitempty"`
	ID      interface{} `json:"id"`
}

// RPCError represents a JSON-RPC error object.
type RPCError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// LaunchParams are the parameters of launchVirtualL1.
type LaunchParams struct {
	MetadataURI string `json:"metadata_uri"`
	Caller      string `json:"caller"`
}

// GoSovereignParams are the parameters of goSovereign.
type GoSovereignParams struct {
	ID     uint64 `json:"id"`
	Caller string `json:"caller"`
}

// UpdateMetadataParams are the parameters of updateMetadata.
type UpdateMetadataParams struct {
	ID          uint64 `json:"id"`
	MetadataURI string `json:"metadata_uri"`
	Caller      string `json:"caller"`
}

// GetParams are the parameters of getL1.
type GetParams struct {
	ID uint64 `json:"id"`
}

// LaunchResult is the result of launchVirtualL1.
type LaunchResult struct {
	ID uint64 `json:"id"`
}

// TotalResult is the result of totalL1s.
type TotalResult struct {
	Total uint64 `json:"total"`
}
