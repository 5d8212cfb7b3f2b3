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

// go/src/core/l1/types.go
package l1

import "errors"

// Registry error kinds. All of them are caller faults: the caller must
// correct the input or use the right identity before retrying.
var (
	// ErrInvalidMetadata is returned when an empty metadata URI is supplied
	// to a launch or metadata update.
	ErrInvalidMetadata = errors.New("invalid metadata URI")

	// ErrL1NotFound is returned when the referenced id was never created.
	ErrL1NotFound = errors.New("virtual L1 not found")

	// ErrNotOwner is returned when the caller is not the record's owner on
	// an owner-gated operation.
	ErrNotOwner = errors.New("caller is not the owner")
)

// LaunchRecord is a single Virtual L1 launch entry in the registry.
// ID, Owner and LaunchedAt are fixed at creation. MetadataURI may be
// replaced by the owner. Sovereign only ever transitions false to true.
// Records are never deleted once created.
type LaunchRecord struct {
	ID          uint64 `json:"id"`
	Owner       string `json:"owner"`
	MetadataURI string `json:"metadata_uri"`
	LaunchedAt  int64  `json:"launched_at"` // Unix timestamp at creation
	Sovereign   bool   `json:"sovereign"`
}

// Snapshot is a read-only copy of a launch record returned to callers.
type Snapshot struct {
	ID          uint64 `json:"id"`
	Owner       string `json:"owner"`
	MetadataURI string `json:"metadata_uri"`
	LaunchedAt  int64  `json:"launched_at"`
	Sovereign   bool   `json:"sovereign"`
}

// Snapshot returns a value copy of the record suitable for handing out
// without exposing internal registry state.
func (r *LaunchRecord) Snapshot() Snapshot {
	return Snapshot{
		ID:          r.ID,
		Owner:       r.Owner,
		MetadataURI: r.MetadataURI,
		LaunchedAt:  r.LaunchedAt,
		Sovereign:   r.Sovereign,
	}
}
