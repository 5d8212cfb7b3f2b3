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

// go/src/transport/websocket_test.go
package transport

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vl1-core/go/src/accounts"
	"github.com/vl1-core/go/src/core/registry"
	"github.com/vl1-core/go/src/events"
	"github.com/vl1-core/go/src/rpc"
)

func newTestWSServer(t *testing.T) (*httptest.Server, *registry.Registry, *events.Hub) {
	t.Helper()
	hub := events.NewHub(nil)
	t.Cleanup(hub.Close)
	reg, err := registry.New(nil, hub)
	if err != nil {
		t.Fatalf("registry.New: %v", err)
	}
	ws := NewWebSocketServer("127.0.0.1:0", rpc.NewServer(reg), hub)
	ts := httptest.NewServer(ws.Handler())
	t.Cleanup(ts.Close)
	return ts, reg, hub
}

func wsURL(ts *httptest.Server, path string) string {
	return "ws" + strings.TrimPrefix(ts.URL, "http") + path
}

func TestRPCOverWebSocket(t *testing.T) {
	ts, _, _ := newTestWSServer(t)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(ts, "/ws"), nil)
	if err != nil {
		t.Fatalf("dial /ws: %v", err)
	}
	defer conn.Close()

	owner, err := accounts.GenerateAddress([]byte("alice"))
	if err != nil {
		t.Fatalf("GenerateAddress: %v", err)
	}
	req := rpc.JSONRPCRequest{
		JSONRPC: "2.0",
		Method:  "launchVirtualL1",
		Params:  rpc.LaunchParams{MetadataURI: "ipfs://a", Caller: owner},
		ID:      1,
	}
	if err := conn.WriteJSON(req); err != nil {
		t.Fatalf("write request: %v", err)
	}

	var resp rpc.JSONRPCResponse
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("read response: %v", err)
	}
	if resp.Error != nil {
		t.Fatalf("launchVirtualL1 error: %+v", resp.Error)
	}
	var result rpc.LaunchResult
	raw, _ := json.Marshal(resp.Result)
	if err := json.Unmarshal(raw, &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if result.ID != 1 {
		t.Fatalf("launch id = %d, want 1", result.ID)
	}
}

func TestMalformedBodyGetsParseErrorReply(t *testing.T) {
	ts, _, _ := newTestWSServer(t)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(ts, "/ws"), nil)
	if err != nil {
		t.Fatalf("dial /ws: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteMessage(websocket.TextMessage, []byte("{not json")); err != nil {
		t.Fatalf("write garbage: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var resp rpc.JSONRPCResponse
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("read response: %v", err)
	}
	if resp.Error == nil || resp.Error.Code != rpc.CodeParseError {
		t.Fatalf("expected parse error response, got %+v", resp.Error)
	}
}

func TestEventFeedOverWebSocket(t *testing.T) {
	ts, reg, _ := newTestWSServer(t)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(ts, "/events"), nil)
	if err != nil {
		t.Fatalf("dial /events: %v", err)
	}
	defer conn.Close()

	owner, err := accounts.GenerateAddress([]byte("alice"))
	if err != nil {
		t.Fatalf("GenerateAddress: %v", err)
	}

	// Give the server a moment to register the subscription before the
	// mutation fires its event.
	time.Sleep(100 * time.Millisecond)

	id, err := reg.Launch("ipfs://a", owner)
	if err != nil {
		t.Fatalf("Launch: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var ev events.Event
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("read event: %v", err)
	}
	if ev.Type != events.EventLaunched || ev.ID != id || ev.Owner != owner {
		t.Fatalf("event wrong: %+v", ev)
	}
}
