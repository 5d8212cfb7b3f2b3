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

// go/src/transport/websocket.go
package transport

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/vl1-core/go/src/events"
	"github.com/vl1-core/go/src/rpc"
)

// WebSocketServer serves two WebSocket endpoints: /ws accepts JSON-RPC
// requests, /events streams registry notifications to subscribers.
type WebSocketServer struct {
	address   string
	upgrader  websocket.Upgrader
	rpcServer *rpc.Server
	hub       *events.Hub
	mux       *http.ServeMux
}

// NewWebSocketServer creates a new WebSocket server.
func NewWebSocketServer(address string, rpcServer *rpc.Server, hub *events.Hub) *WebSocketServer {
	s := &WebSocketServer{
		address:   address,
		upgrader:  websocket.Upgrader{},
		rpcServer: rpcServer,
		hub:       hub,
		mux:       http.NewServeMux(),
	}
	s.mux.HandleFunc("/ws", s.handleRPC)
	s.mux.HandleFunc("/events", s.handleEvents)
	return s
}

// Handler exposes the route mux, mainly for tests.
func (s *WebSocketServer) Handler() http.Handler {
	return s.mux
}

// Start runs the WebSocket server.
func (s *WebSocketServer) Start() error {
	server := &http.Server{
		Addr:    s.address,
		Handler: s.mux,
	}
	log.Printf("WebSocket server listening on %s", s.address)
	return server.ListenAndServe()
}

// handleRPC upgrades the connection and serves JSON-RPC requests until
// the client disconnects.
func (s *WebSocketServer) handleRPC(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}
		resp, err := s.rpcServer.HandleRequest(raw)
		if err != nil {
			log.Printf("RPC handle error: %v", err)
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, resp); err != nil {
			log.Printf("WebSocket write error: %v", err)
			return
		}
	}
}

// handleEvents upgrades the connection and streams registry events to
// the client until it disconnects or the hub shuts down.
func (s *WebSocketServer) handleEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	ch, cancel := s.hub.Subscribe(32)
	defer cancel()

	// Drain client frames so closes are noticed.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				return
			}
			if err := conn.WriteJSON(ev); err != nil {
				log.Printf("Event stream write error: %v", err)
				return
			}
		case <-done:
			return
		}
	}
}
