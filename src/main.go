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

package main

import (
	"flag"
	"log"
	"sync"
	"time"

	"github.com/vl1-core/go/src/accounts"
	"github.com/vl1-core/go/src/common"
	"github.com/vl1-core/go/src/core/registry"
	"github.com/vl1-core/go/src/events"
	"github.com/vl1-core/go/src/http"
	logger "github.com/vl1-core/go/src/log"
	"github.com/vl1-core/go/src/rpc"
	"github.com/vl1-core/go/src/state"
	"github.com/vl1-core/go/src/transport"
	"go.uber.org/zap"
)

func main() {
	// Initialize log
	logger.Init()

	httpAddr := flag.String("httpAddr", "127.0.0.1:8545", "HTTP server address")
	wsAddr := flag.String("wsAddr", "127.0.0.1:8546", "WebSocket server address")
	nodeName := flag.String("node", "node1", "Node name used for the data directory")
	exportFile := flag.String("export", "", "File name to export a registry snapshot to after restore")
	demo := flag.Bool("demo", false, "Launch a demo Virtual L1 after startup")
	flag.Parse()

	zapLogger, err := zap.NewProduction()
	if err != nil {
		logger.Fatalf("Failed to initialize zap logger: %v", err)
	}
	defer zapLogger.Sync()

	// Open the registry database under the node's data directory.
	dbPath := common.GetRegistryDBPath(*nodeName)
	store, err := state.NewStorage(dbPath)
	if err != nil {
		logger.Fatalf("Failed to open registry database at %s: %v", dbPath, err)
	}
	defer store.Close()

	hub := events.NewHub(zapLogger)
	defer hub.Close()

	reg, err := registry.New(store, hub)
	if err != nil {
		logger.Fatalf("Failed to restore registry state: %v", err)
	}
	log.Printf("Registry restored with %d Virtual L1 record(s)", reg.Total())

	if *exportFile != "" {
		if err := common.WriteJSONToFile(reg.List(), *exportFile); err != nil {
			logger.Errorf("Failed to export registry snapshot: %v", err)
		} else {
			log.Printf("Registry snapshot exported to %s", *exportFile)
		}
	}

	rpcServer := rpc.NewServer(reg)

	// Wait group to manage server goroutines
	var wg sync.WaitGroup
	// Channel to signal server readiness
	readyCh := make(chan struct{}, 2)

	// Start HTTP server
	httpServer := http.NewServer(*httpAddr, reg)
	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Printf("Starting HTTP server on %s", *httpAddr)
		readyCh <- struct{}{}
		if err := httpServer.Start(); err != nil {
			logger.Errorf("HTTP server failed on %s: %v", *httpAddr, err)
		}
	}()

	// Start WebSocket server
	wsServer := transport.NewWebSocketServer(*wsAddr, rpcServer, hub)
	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Printf("Starting WebSocket server on %s", *wsAddr)
		readyCh <- struct{}{}
		if err := wsServer.Start(); err != nil {
			logger.Errorf("WebSocket server failed on %s: %v", *wsAddr, err)
		}
	}()

	// Wait for both servers to be ready
	for i := 0; i < 2; i++ {
		<-readyCh
	}
	log.Println("All servers are ready")

	// Add delay to ensure servers are fully bound
	time.Sleep(2 * time.Second)

	if *demo {
		runDemo(*httpAddr)
	}

	// Keep main running
	select {}
}

// runDemo launches a Virtual L1 over the HTTP API, upgrades it to
// sovereign, and reads the final record back.
func runDemo(httpAddr string) {
	owner, err := accounts.GenerateAddress([]byte("demo-owner"))
	if err != nil {
		logger.Warnf("Failed to derive demo owner address: %v", err)
		return
	}
	log.Printf("Demo owner address: %s", owner)

	id, err := http.LaunchVirtualL1(httpAddr, "ipfs://demo-chain-metadata", owner)
	if err != nil {
		logger.Warnf("Failed to launch demo Virtual L1: %v", err)
		return
	}
	log.Printf("Demo Virtual L1 launched with id %d", id)

	if err := http.GoSovereign(httpAddr, id, owner); err != nil {
		logger.Warnf("Failed to upgrade demo Virtual L1: %v", err)
		return
	}
	log.Printf("Demo Virtual L1 %d upgraded to sovereign", id)

	snap, err := http.GetL1(httpAddr, id)
	if err != nil {
		logger.Warnf("Failed to read back demo Virtual L1: %v", err)
		return
	}
	log.Printf("Demo Virtual L1 state: id=%d owner=%s metadata=%s sovereign=%t",
		snap.ID, snap.Owner, snap.MetadataURI, snap.Sovereign)
}
