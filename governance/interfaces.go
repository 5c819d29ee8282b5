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
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// BalanceOracle reports governance-token balances. The registry queries it
// during Propose to gate proposal creation; it never mutates it.
type BalanceOracle interface {
	// BalanceOf returns the token balance of addr in the token's native
	// fixed-point units (18 decimals).
	BalanceOf(addr common.Address) *big.Int
}

// ChainReader supplies the current block height. Heights are monotonically
// non-decreasing across calls.
type ChainReader interface {
	// CurrentHeight returns the current block height.
	CurrentHeight() uint64
}

// ProposalStore is the persistence boundary for proposal and vote records.
type ProposalStore interface {
	// Append stores p under the next sequential id and returns that id.
	// The record and the bumped counter commit together or not at all.
	Append(p *Proposal) (uint64, error)

	// Count returns the number of stored proposals.
	Count() uint64

	// Get returns the proposal stored under id, or ErrInvalidProposalID
	// when id is out of range.
	Get(id uint64) (*Proposal, error)

	// PutVote records the option cast by voter on proposal id, replacing
	// any prior record for the pair.
	PutVote(id uint64, voter common.Address, option VoteOption) error

	// GetVote returns the last option cast by voter on proposal id, or
	// VoteNone when no record exists.
	GetVote(id uint64, voter common.Address) VoteOption
}
