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

// go/src/rpc/server_test.go
package rpc

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/vl1-core/go/src/accounts"
	"github.com/vl1-core/go/src/core/registry"
)

func testAddress(t *testing.T, seed string) string {
	t.Helper()
	addr, err := accounts.GenerateAddress([]byte(seed))
	if err != nil {
		t.Fatalf("GenerateAddress: %v", err)
	}
	return addr
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	reg, err := registry.New(nil, nil)
	if err != nil {
		t.Fatalf("registry.New: %v", err)
	}
	return NewServer(reg)
}

func call(t *testing.T, s *Server, method string, params interface{}) JSONRPCResponse {
	t.Helper()
	req := JSONRPCRequest{JSONRPC: "2.0", Method: method, Params: params, ID: 1}
	data, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	out, err := s.HandleRequest(data)
	if err != nil {
		t.Fatalf("HandleRequest(%s): %v", method, err)
	}
	var resp JSONRPCResponse
	if err := json.Unmarshal(out, &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	return resp
}

func TestLaunchAndGet(t *testing.T) {
	s := newTestServer(t)
	owner := testAddress(t, "alice")

	resp := call(t, s, "launchVirtualL1", LaunchParams{MetadataURI: "ipfs://a", Caller: owner})
	if resp.Error != nil {
		t.Fatalf("launchVirtualL1 error: %+v", resp.Error)
	}
	var result LaunchResult
	raw, _ := json.Marshal(resp.Result)
	if err := json.Unmarshal(raw, &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if result.ID != 1 {
		t.Fatalf("launch id = %d, want 1", result.ID)
	}

	resp = call(t, s, "getL1", GetParams{ID: 1})
	if resp.Error != nil {
		t.Fatalf("getL1 error: %+v", resp.Error)
	}
	snap := resp.Result.(map[string]interface{})
	if snap["owner"] != owner || snap["metadata_uri"] != "ipfs://a" || snap["sovereign"] != false {
		t.Fatalf("getL1 result wrong: %+v", snap)
	}
}

func TestLaunchInvalidMetadata(t *testing.T) {
	s := newTestServer(t)
	owner := testAddress(t, "alice")

	resp := call(t, s, "launchVirtualL1", LaunchParams{MetadataURI: "", Caller: owner})
	if resp.Error == nil || resp.Error.Code != CodeInvalidMetadata {
		t.Fatalf("expected invalid metadata error, got %+v", resp.Error)
	}

	resp = call(t, s, "totalL1s", nil)
	var total TotalResult
	raw, _ := json.Marshal(resp.Result)
	if err := json.Unmarshal(raw, &total); err != nil {
		t.Fatalf("decode total: %v", err)
	}
	if total.Total != 0 {
		t.Fatalf("failed launch changed totalL1s: %d", total.Total)
	}
}

func TestLaunchMalformedCaller(t *testing.T) {
	s := newTestServer(t)
	resp := call(t, s, "launchVirtualL1", LaunchParams{MetadataURI: "ipfs://a", Caller: "not-an-address"})
	if resp.Error == nil || resp.Error.Code != CodeInvalidParams {
		t.Fatalf("expected invalid params error, got %+v", resp.Error)
	}
}

func TestGoSovereignErrors(t *testing.T) {
	s := newTestServer(t)
	owner := testAddress(t, "alice")
	other := testAddress(t, "bob")

	resp := call(t, s, "goSovereign", GoSovereignParams{ID: 9, Caller: owner})
	if resp.Error == nil || resp.Error.Code != CodeL1NotFound {
		t.Fatalf("expected not found error, got %+v", resp.Error)
	}

	call(t, s, "launchVirtualL1", LaunchParams{MetadataURI: "ipfs://a", Caller: owner})

	resp = call(t, s, "goSovereign", GoSovereignParams{ID: 1, Caller: other})
	if resp.Error == nil || resp.Error.Code != CodeNotOwner {
		t.Fatalf("expected not owner error, got %+v", resp.Error)
	}

	resp = call(t, s, "goSovereign", GoSovereignParams{ID: 1, Caller: owner})
	if resp.Error != nil {
		t.Fatalf("goSovereign by owner error: %+v", resp.Error)
	}

	resp = call(t, s, "getL1", GetParams{ID: 1})
	snap := resp.Result.(map[string]interface{})
	if snap["sovereign"] != true {
		t.Fatalf("sovereign not set: %+v", snap)
	}
}

func TestUpdateMetadataFlow(t *testing.T) {
	s := newTestServer(t)
	owner := testAddress(t, "alice")

	call(t, s, "launchVirtualL1", LaunchParams{MetadataURI: "ipfs://a", Caller: owner})

	resp := call(t, s, "updateMetadata", UpdateMetadataParams{ID: 1, MetadataURI: "", Caller: owner})
	if resp.Error == nil || resp.Error.Code != CodeInvalidMetadata {
		t.Fatalf("expected invalid metadata error, got %+v", resp.Error)
	}

	resp = call(t, s, "updateMetadata", UpdateMetadataParams{ID: 1, MetadataURI: "ipfs://b", Caller: owner})
	if resp.Error != nil {
		t.Fatalf("updateMetadata error: %+v", resp.Error)
	}

	resp = call(t, s, "getL1", GetParams{ID: 1})
	snap := resp.Result.(map[string]interface{})
	if snap["metadata_uri"] != "ipfs://b" {
		t.Fatalf("metadata not updated: %+v", snap)
	}
}

func TestListL1s(t *testing.T) {
	s := newTestServer(t)
	owner := testAddress(t, "alice")

	for i := 0; i < 3; i++ {
		call(t, s, "launchVirtualL1", LaunchParams{
			MetadataURI: fmt.Sprintf("ipfs://chain-%d", i),
			Caller:      owner,
		})
	}

	resp := call(t, s, "listL1s", nil)
	if resp.Error != nil {
		t.Fatalf("listL1s error: %+v", resp.Error)
	}
	list := resp.Result.([]interface{})
	if len(list) != 3 {
		t.Fatalf("listL1s returned %d records, want 3", len(list))
	}
	first := list[0].(map[string]interface{})
	if first["id"] != float64(1) {
		t.Fatalf("first listed id = %v, want 1", first["id"])
	}
}

func TestUnknownMethod(t *testing.T) {
	s := newTestServer(t)
	resp := call(t, s, "mintBlocks", nil)
	if resp.Error == nil || resp.Error.Code != CodeMethodNotFound {
		t.Fatalf("expected method not found error, got %+v", resp.Error)
	}
}

func TestMalformedRequestBody(t *testing.T) {
	s := newTestServer(t)
	out, err := s.HandleRequest([]byte("{not json"))
	if err != nil {
		t.Fatalf("HandleRequest on malformed body: %v", err)
	}
	var resp JSONRPCResponse
	if err := json.Unmarshal(out, &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Error == nil || resp.Error.Code != CodeParseError {
		t.Fatalf("expected parse error response, got %+v", resp.Error)
	}
}
