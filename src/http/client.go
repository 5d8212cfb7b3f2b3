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

// go/src/http/client.go
package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/vl1-core/go/src/core/l1"
)

// LaunchVirtualL1 submits a launch request to a registry node and
// returns the assigned id.
func LaunchVirtualL1(address, metadataURI, caller string) (uint64, error) {
	body, err := json.Marshal(LaunchRequest{MetadataURI: metadataURI, Caller: caller})
	if err != nil {
		return 0, err
	}
	resp, err := http.Post("http://"+address+"/l1", "application/json", bytes.NewBuffer(body))
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return 0, remoteError(resp)
	}
	var out LaunchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("failed to decode launch response: %w", err)
	}
	return out.ID, nil
}

// GoSovereign asks a registry node to flip a record's sovereign flag.
func GoSovereign(address string, id uint64, caller string) error {
	body, err := json.Marshal(SovereignRequest{Caller: caller})
	if err != nil {
		return err
	}
	url := fmt.Sprintf("http://%s/l1/%d/sovereign", address, id)
	resp, err := http.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return remoteError(resp)
	}
	return nil
}

// GetL1 fetches a record snapshot from a registry node.
func GetL1(address string, id uint64) (l1.Snapshot, error) {
	resp, err := http.Get(fmt.Sprintf("http://%s/l1/%d", address, id))
	if err != nil {
		return l1.Snapshot{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return l1.Snapshot{}, remoteError(resp)
	}
	var snap l1.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		return l1.Snapshot{}, fmt.Errorf("failed to decode record: %w", err)
	}
	return snap, nil
}

// remoteError turns a non-success response into an error carrying the
// server's message.
func remoteError(resp *http.Response) error {
	data, _ := io.ReadAll(resp.Body)
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err == nil && payload.Error != "" {
		return fmt.Errorf("registry returned %d: %s", resp.StatusCode, payload.Error)
	}
	return fmt.Errorf("registry returned %d", resp.StatusCode)
}
