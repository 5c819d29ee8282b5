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

package storage

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokengov-io/tokengov/governance"
)

func newTestStore(t *testing.T) *LevelDBStore {
	t.Helper()

	store, err := NewMemStore()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func TestLevelDBStore_AppendGet(t *testing.T) {
	store := newTestStore(t)

	proposer := common.HexToAddress("0x1111111111111111111111111111111111111111")
	id, err := store.Append(&governance.Proposal{
		Proposer:   proposer,
		Link:       "https://example.org/p0",
		BeginBlock: 101,
		EndBlock:   6437,
		CreatedAt:  100,
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(0), id)
	assert.Equal(t, uint64(1), store.Count())

	p, err := store.Get(0)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), p.ID)
	assert.Equal(t, proposer, p.Proposer)
	assert.Equal(t, "https://example.org/p0", p.Link)
	assert.Equal(t, uint64(101), p.BeginBlock)
	assert.Equal(t, uint64(6437), p.EndBlock)
	assert.Equal(t, uint64(100), p.CreatedAt)
}

func TestLevelDBStore_SequentialIDs(t *testing.T) {
	store := newTestStore(t)

	for i := uint64(0); i < 4; i++ {
		id, err := store.Append(&governance.Proposal{Link: "https://example.org", BeginBlock: 10, EndBlock: 10000})
		require.NoError(t, err)
		assert.Equal(t, i, id)
	}
	assert.Equal(t, uint64(4), store.Count())
}

func TestLevelDBStore_GetOutOfRange(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(0)
	assert.ErrorIs(t, err, governance.ErrInvalidProposalID)
}

func TestLevelDBStore_Votes(t *testing.T) {
	store := newTestStore(t)
	voter := common.HexToAddress("0x4444444444444444444444444444444444444444")

	err := store.PutVote(0, voter, governance.VoteYes)
	assert.ErrorIs(t, err, governance.ErrInvalidProposalID)
	assert.Equal(t, governance.VoteNone, store.GetVote(0, voter))

	_, err = store.Append(&governance.Proposal{Link: "https://example.org", BeginBlock: 10, EndBlock: 10000})
	require.NoError(t, err)

	require.NoError(t, store.PutVote(0, voter, governance.VoteYes))
	assert.Equal(t, governance.VoteYes, store.GetVote(0, voter))

	require.NoError(t, store.PutVote(0, voter, governance.VoteNo))
	assert.Equal(t, governance.VoteNo, store.GetVote(0, voter), "re-voting must overwrite")
}

func TestLevelDBStore_ReopenPreservesState(t *testing.T) {
	dir := t.TempDir()

	store, err := NewLevelDBStore(dir)
	require.NoError(t, err)

	voter := common.HexToAddress("0x4444444444444444444444444444444444444444")
	id, err := store.Append(&governance.Proposal{Link: "https://example.org/p0", BeginBlock: 101, EndBlock: 6437})
	require.NoError(t, err)
	require.NoError(t, store.PutVote(id, voter, governance.VoteYes))
	require.NoError(t, store.Close())

	reopened, err := NewLevelDBStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	assert.Equal(t, uint64(1), reopened.Count())
	p, err := reopened.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "https://example.org/p0", p.Link)
	assert.Equal(t, governance.VoteYes, reopened.GetVote(id, voter))
}

type staticOracle struct {
	balances map[common.Address]*big.Int
}

func (o *staticOracle) BalanceOf(addr common.Address) *big.Int {
	if balance, exists := o.balances[addr]; exists {
		return balance
	}
	return big.NewInt(0)
}

type staticChain struct {
	height uint64
}

func (c *staticChain) CurrentHeight() uint64 { return c.height }

// The registry must behave identically over the leveldb store and the
// in-memory store.
func TestLevelDBStore_BacksRegistry(t *testing.T) {
	store := newTestStore(t)

	u1 := common.HexToAddress("0x1111111111111111111111111111111111111111")
	oracle := &staticOracle{balances: map[common.Address]*big.Int{
		u1: new(big.Int).Mul(big.NewInt(20000), big.NewInt(1e18)),
	}}
	chain := &staticChain{height: 100}
	registry := governance.NewRegistry(nil, store, oracle, chain)

	id, err := registry.Propose(u1, "https://", 101, 101+6336)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), id)

	chain.height++
	voter := common.HexToAddress("0x4444444444444444444444444444444444444444")
	require.NoError(t, registry.Vote(voter, id, governance.VoteYes))
	assert.Equal(t, governance.VoteYes, registry.VoteOf(id, voter))
}
