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

// go/src/rpc/server.go
package rpc

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/vl1-core/go/src/accounts"
	"github.com/vl1-core/go/src/core/l1"
	"github.com/vl1-core/go/src/core/registry"
)

// NewServer creates a new RPC server over the registry.
func NewServer(reg *registry.Registry) *Server {
	metrics := NewMetrics()
	metrics.TotalL1s.Set(float64(reg.Total()))
	return &Server{
		registry: reg,
		metrics:  metrics,
	}
}

// HandleRequest processes a JSON-RPC request and returns the encoded
// response. Every fault, including a body that does not parse, is
// reported inside the JSON-RPC error object so the client always gets
// a reply.
func (s *Server) HandleRequest(data []byte) ([]byte, error) {
	var req JSONRPCRequest
	if err := json.Unmarshal(data, &req); err != nil {
		s.metrics.ErrorCount.WithLabelValues("unknown").Inc()
		return json.Marshal(JSONRPCResponse{
			JSONRPC: "2.0",
			Error:   &RPCError{Code: CodeParseError, Message: err.Error()},
		})
	}

	start := time.Now()
	s.metrics.RequestCount.WithLabelValues(req.Method).Inc()
	defer func() {
		s.metrics.RequestLatency.WithLabelValues(req.Method).Observe(time.Since(start).Seconds())
	}()

	resp := JSONRPCResponse{JSONRPC: "2.0", ID: req.ID}
	switch req.Method {
	case "launchVirtualL1":
		var p LaunchParams
		if rpcErr := decodeParams(req.Params, &p); rpcErr != nil {
			resp.Error = rpcErr
			break
		}
		if err := accounts.ValidateAddress(p.Caller); err != nil {
			resp.Error = &RPCError{Code: CodeInvalidParams, Message: err.Error()}
			break
		}
		id, err := s.registry.Launch(p.MetadataURI, p.Caller)
		if err != nil {
			resp.Error = errorObject(err)
			break
		}
		s.metrics.TotalL1s.Set(float64(s.registry.Total()))
		resp.Result = LaunchResult{ID: id}

	case "goSovereign":
		var p GoSovereignParams
		if rpcErr := decodeParams(req.Params, &p); rpcErr != nil {
			resp.Error = rpcErr
			break
		}
		if err := accounts.ValidateAddress(p.Caller); err != nil {
			resp.Error = &RPCError{Code: CodeInvalidParams, Message: err.Error()}
			break
		}
		if err := s.registry.GoSovereign(p.ID, p.Caller); err != nil {
			resp.Error = errorObject(err)
			break
		}
		resp.Result = map[string]string{"status": "sovereign"}

	case "updateMetadata":
		var p UpdateMetadataParams
		if rpcErr := decodeParams(req.Params, &p); rpcErr != nil {
			resp.Error = rpcErr
			break
		}
		if err := accounts.ValidateAddress(p.Caller); err != nil {
			resp.Error = &RPCError{Code: CodeInvalidParams, Message: err.Error()}
			break
		}
		if err := s.registry.UpdateMetadata(p.ID, p.MetadataURI, p.Caller); err != nil {
			resp.Error = errorObject(err)
			break
		}
		resp.Result = map[string]string{"status": "metadata updated"}

	case "getL1":
		var p GetParams
		if rpcErr := decodeParams(req.Params, &p); rpcErr != nil {
			resp.Error = rpcErr
			break
		}
		snap, err := s.registry.Get(p.ID)
		if err != nil {
			resp.Error = errorObject(err)
			break
		}
		resp.Result = snap

	case "totalL1s":
		resp.Result = TotalResult{Total: s.registry.Total()}

	case "listL1s":
		resp.Result = s.registry.List()

	default:
		resp.Error = &RPCError{Code: CodeMethodNotFound, Message: "unknown method"}
	}

	if resp.Error != nil {
		s.metrics.ErrorCount.WithLabelValues(req.Method).Inc()
	}
	return json.Marshal(resp)
}

// decodeParams re-encodes the raw params value into the typed struct.
func decodeParams(params interface{}, out interface{}) *RPCError {
	if params == nil {
		return &RPCError{Code: CodeInvalidParams, Message: "missing params"}
	}
	raw, err := json.Marshal(params)
	if err != nil {
		return &RPCError{Code: CodeInvalidParams, Message: err.Error()}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &RPCError{Code: CodeInvalidParams, Message: err.Error()}
	}
	return nil
}

// errorObject maps a registry error to its JSON-RPC error object.
func errorObject(err error) *RPCError {
	switch {
	case errors.Is(err, l1.ErrInvalidMetadata):
		return &RPCError{Code: CodeInvalidMetadata, Message: err.Error()}
	case errors.Is(err, l1.ErrL1NotFound):
		return &RPCError{Code: CodeL1NotFound, Message: err.Error()}
	case errors.Is(err, l1.ErrNotOwner):
		return &RPCError{Code: CodeNotOwner, Message: err.Error()}
	default:
		return &RPCError{Code: CodeInternal, Message: err.Error()}
	}
}
