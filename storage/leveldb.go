// Copyright 2025 The tokengov Authors
// This file is part of the tokengov library.
//
// The tokengov library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The tokengov library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the tokengov library. If not, see <http://www.gnu.org/licenses/>.

// Package storage provides a goleveldb-backed governance.ProposalStore for
// the standalone node tooling. Proposal records are JSON-encoded; the append
// path commits the record and the bumped counter in a single batch.
package storage

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/syndtr/goleveldb/leveldb"
	leveldbStorage "github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/tokengov-io/tokengov/governance"
)

const (
	proposalKeyPrefix = "gov-proposal"
	voteKeyPrefix     = "gov-vote"
	countKey          = "gov-proposal-count"
)

// LevelDBStore persists governance proposals and votes in a goleveldb
// database. The proposal counter is cached in memory and kept in sync with
// the database on every append.
type LevelDBStore struct {
	mu    sync.RWMutex
	db    *leveldb.DB
	count uint64
}

// NewLevelDBStore opens (creating if necessary) the database at path.
func NewLevelDBStore(path string) (*LevelDBStore, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("open leveldb at %s: %w", path, err)
	}
	return newLevelDBStore(db)
}

// NewMemStore returns a memory-backed store suitable for tests.
func NewMemStore() (*LevelDBStore, error) {
	db, err := leveldb.Open(leveldbStorage.NewMemStorage(), nil)
	if err != nil {
		return nil, err
	}
	return newLevelDBStore(db)
}

func newLevelDBStore(db *leveldb.DB) (*LevelDBStore, error) {
	s := &LevelDBStore{db: db}

	raw, err := db.Get([]byte(countKey), nil)
	switch err {
	case nil:
		if len(raw) != 8 {
			db.Close()
			return nil, fmt.Errorf("corrupt proposal counter: %d bytes", len(raw))
		}
		s.count = binary.BigEndian.Uint64(raw)
	case leveldb.ErrNotFound:
		// Fresh database.
	default:
		db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the underlying database.
func (s *LevelDBStore) Close() error {
	return s.db.Close()
}

func proposalKey(id uint64) []byte {
	return []byte(fmt.Sprintf("%s-%020d", proposalKeyPrefix, id))
}

func voteKey(id uint64, voter common.Address) []byte {
	return []byte(fmt.Sprintf("%s-%020d-%s", voteKeyPrefix, id, voter.Hex()))
}

// Append stores p under the next sequential id. The record and the bumped
// counter are written in one batch so a crash can never leave them apart.
func (s *LevelDBStore) Append(p *governance.Proposal) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.count
	stored := *p
	stored.ID = id

	blob, err := json.Marshal(&stored)
	if err != nil {
		return 0, fmt.Errorf("encode proposal %d: %w", id, err)
	}

	countBuf := make([]byte, 8)
	binary.BigEndian.PutUint64(countBuf, id+1)

	batch := new(leveldb.Batch)
	batch.Put(proposalKey(id), blob)
	batch.Put([]byte(countKey), countBuf)
	if err := s.db.Write(batch, nil); err != nil {
		return 0, fmt.Errorf("write proposal %d: %w", id, err)
	}

	s.count = id + 1
	return id, nil
}

// Count returns the number of stored proposals.
func (s *LevelDBStore) Count() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.count
}

// Get returns the proposal stored under id.
func (s *LevelDBStore) Get(id uint64) (*governance.Proposal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if id >= s.count {
		return nil, governance.ErrInvalidProposalID
	}

	raw, err := s.db.Get(proposalKey(id), nil)
	if err != nil {
		return nil, fmt.Errorf("read proposal %d: %w", id, err)
	}

	var p governance.Proposal
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode proposal %d: %w", id, err)
	}

	return &p, nil
}

// PutVote records the option cast by voter on proposal id, replacing any
// prior record for the pair.
func (s *LevelDBStore) PutVote(id uint64, voter common.Address, option governance.VoteOption) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id >= s.count {
		return governance.ErrInvalidProposalID
	}

	return s.db.Put(voteKey(id, voter), []byte{byte(option)}, nil)
}

// GetVote returns the last option cast by voter on proposal id. Reads are
// lenient: missing records and unknown ids report VoteNone.
func (s *LevelDBStore) GetVote(id uint64, voter common.Address) governance.VoteOption {
	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, err := s.db.Get(voteKey(id, voter), nil)
	if err != nil || len(raw) != 1 {
		return governance.VoteNone
	}

	return governance.VoteOption(raw[0])
}

var _ governance.ProposalStore = (*LevelDBStore)(nil)
