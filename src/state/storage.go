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

// go/src/state/storage.go
package state

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/minio/highwayhash"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"
	"github.com/vl1-core/go/src/common"
	"github.com/vl1-core/go/src/core/l1"
)

// LevelDB key layout. Record keys are zero-padded so that iterating the
// prefix yields records in id order.
const (
	recordKeyFormat = "l1-rec-%020d"
	recordKeyPrefix = "l1-rec-"
	counterKey      = "l1-counter"
	hashKeyKey      = "l1-hhkey"
)

// Storage persists launch records and the id counter in LevelDB.
// Every stored record carries a HighwayHash checksum computed over the
// serialized record, verified again on load.
type Storage struct {
	db      *leveldb.DB
	hashKey []byte // 32-byte HighwayHash key, persisted on first open
	mu      sync.Mutex
}

// storedRecord is the on-disk envelope around a launch record.
type storedRecord struct {
	Record   l1.LaunchRecord `json:"record"`
	Checksum string          `json:"checksum"`
}

// NewStorage opens (or creates) the registry database at the given path.
// The HighwayHash key is generated on first open and persisted so that
// checksums remain verifiable across restarts.
func NewStorage(path string) (*Storage, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open registry database: %w", err)
	}

	s := &Storage{db: db}
	if err := s.loadOrCreateHashKey(); err != nil {
		db.Close()
		return nil, err
	}

	log.Printf("Registry storage opened: %s", path)
	return s, nil
}

// loadOrCreateHashKey loads the persisted HighwayHash key, creating one
// if the database is fresh.
func (s *Storage) loadOrCreateHashKey() error {
	key, err := s.db.Get([]byte(hashKeyKey), nil)
	switch err {
	case nil:
		if len(key) != 32 {
			return fmt.Errorf("corrupted checksum key: expected 32 bytes, got %d", len(key))
		}
		s.hashKey = key
		return nil
	case leveldb.ErrNotFound:
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return fmt.Errorf("failed to generate checksum key: %w", err)
		}
		if err := s.db.Put([]byte(hashKeyKey), key, nil); err != nil {
			return fmt.Errorf("failed to persist checksum key: %w", err)
		}
		s.hashKey = key
		return nil
	default:
		return fmt.Errorf("failed to load checksum key: %w", err)
	}
}

// checksum computes the HighwayHash checksum of the serialized record.
func (s *Storage) checksum(data []byte) (string, error) {
	h, err := highwayhash.New(s.hashKey)
	if err != nil {
		return "", fmt.Errorf("failed to create checksum hasher: %w", err)
	}
	if _, err := h.Write(data); err != nil {
		return "", fmt.Errorf("failed to checksum record: %w", err)
	}
	return common.EncodeHex(h.Sum(nil)), nil
}

// recordKey returns the LevelDB key for a record id.
func recordKey(id uint64) []byte {
	return []byte(fmt.Sprintf(recordKeyFormat, id))
}

// SaveRecord writes a record and the current counter value in one batch,
// so a crash between the two cannot leave the counter behind a stored id.
func (s *Storage) SaveRecord(rec *l1.LaunchRecord, counter uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	recData, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal record %d: %w", rec.ID, err)
	}
	sum, err := s.checksum(recData)
	if err != nil {
		return err
	}

	envelope, err := json.Marshal(storedRecord{Record: *rec, Checksum: sum})
	if err != nil {
		return fmt.Errorf("failed to marshal record envelope %d: %w", rec.ID, err)
	}

	counterBuf := make([]byte, 8)
	binary.BigEndian.PutUint64(counterBuf, counter)

	batch := new(leveldb.Batch)
	batch.Put(recordKey(rec.ID), envelope)
	batch.Put([]byte(counterKey), counterBuf)

	if err := s.db.Write(batch, nil); err != nil {
		return fmt.Errorf("failed to write record %d: %w", rec.ID, err)
	}
	return nil
}

// GetRecord loads a single record by id. Returns l1.ErrL1NotFound if the
// id was never stored.
func (s *Storage) GetRecord(id uint64) (*l1.LaunchRecord, error) {
	data, err := s.db.Get(recordKey(id), nil)
	if err == leveldb.ErrNotFound {
		return nil, l1.ErrL1NotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read record %d: %w", id, err)
	}
	return s.decodeRecord(data)
}

// decodeRecord unwraps a stored envelope and verifies its checksum.
func (s *Storage) decodeRecord(data []byte) (*l1.LaunchRecord, error) {
	var env storedRecord
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record envelope: %w", err)
	}

	recData, err := json.Marshal(&env.Record)
	if err != nil {
		return nil, fmt.Errorf("failed to re-marshal record %d: %w", env.Record.ID, err)
	}
	sum, err := s.checksum(recData)
	if err != nil {
		return nil, err
	}
	if sum != env.Checksum {
		return nil, fmt.Errorf("checksum mismatch for record %d: stored %s, computed %s",
			env.Record.ID, env.Checksum, sum)
	}

	rec := env.Record
	return &rec, nil
}

// Counter returns the persisted id counter, or zero for a fresh database.
func (s *Storage) Counter() (uint64, error) {
	data, err := s.db.Get([]byte(counterKey), nil)
	if err == leveldb.ErrNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read counter: %w", err)
	}
	if len(data) != 8 {
		return 0, fmt.Errorf("corrupted counter: expected 8 bytes, got %d", len(data))
	}
	return binary.BigEndian.Uint64(data), nil
}

// Restore iterates every stored record in id order and hands each one to
// apply. A checksum mismatch aborts the restore: a registry that cannot
// trust its records must not serve them.
func (s *Storage) Restore(apply func(*l1.LaunchRecord) error) error {
	iter := s.db.NewIterator(util.BytesPrefix([]byte(recordKeyPrefix)), nil)
	defer iter.Release()

	count := 0
	for iter.Next() {
		rec, err := s.decodeRecord(iter.Value())
		if err != nil {
			return fmt.Errorf("restore failed at key %s: %w", string(iter.Key()), err)
		}
		if err := apply(rec); err != nil {
			return err
		}
		count++
	}
	if err := iter.Error(); err != nil {
		return fmt.Errorf("restore iteration failed: %w", err)
	}

	log.Printf("Restored %d launch records from storage", count)
	return nil
}

// Close closes the underlying database.
func (s *Storage) Close() error {
	return s.db.Close()
}
