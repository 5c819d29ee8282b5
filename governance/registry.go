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
	"github.com/ethereum/go-ethereum/log"
)

// Registry owns the proposal sequence and the vote table. Propose and Vote
// are its only mutating operations; each validates its preconditions in a
// fixed order and either commits a single state transition or leaves all
// state untouched.
type Registry struct {
	config *Config
	mu     sync.RWMutex
	store  ProposalStore
	oracle BalanceOracle
	chain  ChainReader
}

// NewRegistry creates a registry over the given store and injected
// capabilities. A nil config selects DefaultConfig.
func NewRegistry(config *Config, store ProposalStore, oracle BalanceOracle, chain ChainReader) *Registry {
	if config == nil {
		config = DefaultConfig()
	}
	return &Registry{
		config: config,
		store:  store,
		oracle: oracle,
		chain:  chain,
	}
}

// Propose creates a new proposal and returns its id. Ids are dense,
// zero-based and strictly increasing by one per successful call.
//
// Preconditions, checked in order: the proposer's token balance must reach
// the proposal threshold, the link must be non-empty, beginBlock must be
// strictly above the current height, and the voting window must span at
// least MinVotingPeriod blocks.
func (r *Registry) Propose(proposer common.Address, link string, beginBlock, endBlock uint64) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	balance := r.oracle.BalanceOf(proposer)
	if balance == nil || balance.Cmp(r.config.ProposalThreshold) < 0 {
		return 0, ErrInsufficientPrivilege
	}
	if link == "" {
		return 0, ErrEmptyLink
	}
	height := r.chain.CurrentHeight()
	if beginBlock <= height {
		return 0, ErrProposalTooOld
	}
	if endBlock < beginBlock || endBlock-beginBlock < r.config.MinVotingPeriod {
		return 0, ErrPeriodTooShort
	}

	id, err := r.store.Append(&Proposal{
		Proposer:   proposer,
		Link:       link,
		BeginBlock: beginBlock,
		EndBlock:   endBlock,
		CreatedAt:  height,
	})
	if err != nil {
		return 0, err
	}

	log.Info("Governance proposal created", "id", id, "proposer", proposer, "begin", beginBlock, "end", endBlock)
	return id, nil
}

// Vote records (or overwrites) the option cast by voter on a proposal.
// Re-voting replaces the prior value without error; there is no double-vote
// rejection and no history kept.
//
// Preconditions, checked in order: the proposal must exist, the option must
// be a legal non-zero code, and the current height must lie within the
// proposal's inclusive [BeginBlock, EndBlock] window.
func (r *Registry) Vote(voter common.Address, proposalID uint64, option VoteOption) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	proposal, err := r.store.Get(proposalID)
	if err != nil {
		return err
	}
	if option == VoteNone {
		return ErrInvalidContent
	}
	if !option.Valid() {
		return ErrInvalidOpcode
	}
	switch proposal.Window(r.chain.CurrentHeight()) {
	case WindowPending:
		return ErrBeforeWindow
	case WindowClosed:
		return ErrAfterWindow
	}

	if err := r.store.PutVote(proposalID, voter, option); err != nil {
		return err
	}

	log.Debug("Governance vote recorded", "id", proposalID, "voter", voter, "option", option)
	return nil
}

// TotalProposals returns the number of proposals created so far.
func (r *Registry) TotalProposals() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.store.Count()
}

// Proposal returns the stored proposal record for id, or
// ErrInvalidProposalID when id is out of range.
func (r *Registry) Proposal(id uint64) (*Proposal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.store.Get(id)
}

// VoteOf returns the last option voter cast on the proposal, or VoteNone if
// the voter has not voted. Reads are lenient: an out-of-range proposal id
// also reports VoteNone rather than an error.
func (r *Registry) VoteOf(proposalID uint64, voter common.Address) VoteOption {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.store.GetVote(proposalID, voter)
}

// ActiveProposals returns the proposals whose voting window contains the
// current block height, in id order.
func (r *Registry) ActiveProposals() []*Proposal {
	r.mu.RLock()
	defer r.mu.RUnlock()

	height := r.chain.CurrentHeight()
	active := make([]*Proposal, 0)
	for id := uint64(0); id < r.store.Count(); id++ {
		p, err := r.store.Get(id)
		if err != nil {
			continue
		}
		if p.Window(height) == WindowActive {
			active = append(active, p)
		}
	}

	return active
}
