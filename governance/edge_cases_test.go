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
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

// A failed propose must leave the counter and the proposal sequence exactly
// as they were, whichever precondition tripped.
func TestEdgeCase_FailedProposeLeavesNoState(t *testing.T) {
	registry, oracle, chain := newTestRegistry()

	rich := common.HexToAddress("0x1111111111111111111111111111111111111111")
	poor := common.HexToAddress("0x2222222222222222222222222222222222222222")
	oracle.Mint(rich, 20000)

	h := chain.CurrentHeight()
	attempts := []struct {
		name     string
		proposer common.Address
		link     string
		begin    uint64
		end      uint64
		want     error
	}{
		{"no balance", poor, "https://", h + 1, h + 6337, ErrInsufficientPrivilege},
		{"empty link", rich, "", h + 1, h + 6337, ErrEmptyLink},
		{"begin in past", rich, "https://", h, h + 6337, ErrProposalTooOld},
		{"window too short", rich, "https://", h + 1, h + 2, ErrPeriodTooShort},
		{"end before begin", rich, "https://", h + 100, h + 50, ErrPeriodTooShort},
	}

	for _, attempt := range attempts {
		_, err := registry.Propose(attempt.proposer, attempt.link, attempt.begin, attempt.end)
		if !errors.Is(err, attempt.want) {
			t.Errorf("%s: expected %v, got %v", attempt.name, attempt.want, err)
		}
	}
	if registry.TotalProposals() != 0 {
		t.Errorf("Failed proposes must not create proposals, got %d", registry.TotalProposals())
	}
}

// Reads of the vote table are lenient: unknown proposal ids and non-voters
// both report the zero default instead of erroring, while the proposal
// accessor rejects out-of-range ids.
func TestEdgeCase_LenientVoteReads(t *testing.T) {
	registry, oracle, chain := newTestRegistry()

	voter := common.HexToAddress("0x4444444444444444444444444444444444444444")
	if registry.VoteOf(99, voter) != VoteNone {
		t.Errorf("Unknown proposal id must read as VoteNone")
	}

	if _, err := registry.Proposal(99); !errors.Is(err, ErrInvalidProposalID) {
		t.Errorf("Proposal(99): expected ErrInvalidProposalID, got %v", err)
	}

	u1 := common.HexToAddress("0x1111111111111111111111111111111111111111")
	oracle.Mint(u1, 20000)
	h := chain.CurrentHeight()
	id, err := registry.Propose(u1, "https://", h+1, h+6337)
	if err != nil {
		t.Fatalf("Propose failed: %v", err)
	}
	if registry.VoteOf(id, voter) != VoteNone {
		t.Errorf("Non-voter must read as VoteNone")
	}
}

// Vote preconditions are checked in a fixed order: an out-of-range id wins
// over an illegal option, and option validation wins over the window check.
func TestEdgeCase_VoteCheckOrder(t *testing.T) {
	registry, oracle, chain := newTestRegistry()

	voter := common.HexToAddress("0x4444444444444444444444444444444444444444")
	if err := registry.Vote(voter, 7, VoteOption(9)); !errors.Is(err, ErrInvalidProposalID) {
		t.Errorf("Unknown id with bad option: expected ErrInvalidProposalID, got %v", err)
	}

	u1 := common.HexToAddress("0x1111111111111111111111111111111111111111")
	oracle.Mint(u1, 20000)
	h := chain.CurrentHeight()
	id, err := registry.Propose(u1, "https://", h+10, h+10+6336)
	if err != nil {
		t.Fatalf("Propose failed: %v", err)
	}

	// Window is not open yet, but the bad option is reported first.
	if err := registry.Vote(voter, id, VoteNone); !errors.Is(err, ErrInvalidContent) {
		t.Errorf("Expected ErrInvalidContent before window check, got %v", err)
	}
	if err := registry.Vote(voter, id, VoteOption(3)); !errors.Is(err, ErrInvalidOpcode) {
		t.Errorf("Expected ErrInvalidOpcode before window check, got %v", err)
	}
}

// Stored proposals are immutable: mutating a returned record must not leak
// into the registry's copy.
func TestEdgeCase_ProposalImmutability(t *testing.T) {
	registry, oracle, chain := newTestRegistry()

	u1 := common.HexToAddress("0x1111111111111111111111111111111111111111")
	oracle.Mint(u1, 20000)
	h := chain.CurrentHeight()
	id, err := registry.Propose(u1, "https://", h+1, h+6337)
	if err != nil {
		t.Fatalf("Propose failed: %v", err)
	}

	p, err := registry.Proposal(id)
	if err != nil {
		t.Fatalf("Proposal failed: %v", err)
	}
	p.Link = "tampered"
	p.EndBlock = 0

	stored, err := registry.Proposal(id)
	if err != nil {
		t.Fatalf("Proposal failed: %v", err)
	}
	if stored.Link != "https://" || stored.EndBlock != h+6337 {
		t.Errorf("Stored proposal was mutated through a returned copy")
	}
}

// Eligibility is only checked for propose; any address may vote.
func TestEdgeCase_VotingNeedsNoBalance(t *testing.T) {
	registry, oracle, chain := newTestRegistry()

	u1 := common.HexToAddress("0x1111111111111111111111111111111111111111")
	oracle.Mint(u1, 20000)
	h := chain.CurrentHeight()
	id, err := registry.Propose(u1, "https://", h+1, h+6337)
	if err != nil {
		t.Fatalf("Propose failed: %v", err)
	}
	chain.Advance(1)

	broke := common.HexToAddress("0x5555555555555555555555555555555555555555")
	if err := registry.Vote(broke, id, VoteYes); err != nil {
		t.Errorf("Zero-balance voter must be allowed to vote, got %v", err)
	}
}

func TestEdgeCase_NilConfigUsesDefaults(t *testing.T) {
	oracle := NewMockBalanceOracle()
	chain := &MockChain{height: 100}
	registry := NewRegistry(nil, NewMemoryStore(), oracle, chain)

	u1 := common.HexToAddress("0x1111111111111111111111111111111111111111")
	oracle.Mint(u1, 19999)
	if _, err := registry.Propose(u1, "https://", 101, 101+6336); !errors.Is(err, ErrInsufficientPrivilege) {
		t.Errorf("Nil config must fall back to the default threshold, got %v", err)
	}
}
