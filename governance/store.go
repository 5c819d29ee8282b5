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

package governance

import (
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

// MemoryStore implements ProposalStore with in-memory storage.
type MemoryStore struct {
	mu        sync.RWMutex
	proposals []*Proposal
	votes     map[uint64]map[common.Address]VoteOption
}

// NewMemoryStore creates a new in-memory proposal store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		votes: make(map[uint64]map[common.Address]VoteOption),
	}
}

// Append stores a copy of p under the next sequential id.
func (s *MemoryStore) Append(p *Proposal) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uint64(len(s.proposals))
	stored := *p
	stored.ID = id
	s.proposals = append(s.proposals, &stored)

	return id, nil
}

// Count returns the number of stored proposals.
func (s *MemoryStore) Count() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return uint64(len(s.proposals))
}

// Get returns a copy of the proposal stored under id.
func (s *MemoryStore) Get(id uint64) (*Proposal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if id >= uint64(len(s.proposals)) {
		return nil, ErrInvalidProposalID
	}

	p := *s.proposals[id]
	return &p, nil
}

// PutVote records the option cast by voter on proposal id, overwriting any
// prior record for the pair.
func (s *MemoryStore) PutVote(id uint64, voter common.Address, option VoteOption) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id >= uint64(len(s.proposals)) {
		return ErrInvalidProposalID
	}

	byVoter, exists := s.votes[id]
	if !exists {
		byVoter = make(map[common.Address]VoteOption)
		s.votes[id] = byVoter
	}
	byVoter[voter] = option

	return nil
}

// GetVote returns the last option cast by voter on proposal id. Reads are
// lenient: unknown ids and non-voters both report VoteNone.
func (s *MemoryStore) GetVote(id uint64, voter common.Address) VoteOption {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.votes[id][voter]
}
