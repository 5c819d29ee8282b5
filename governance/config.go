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

import "math/big"

// Config holds the registry parameters.
type Config struct {
	// ProposalThreshold is the minimum governance-token balance an address
	// must hold to create a proposal, in the token's native fixed-point
	// units (18 decimals).
	ProposalThreshold *big.Int

	// MinVotingPeriod is the minimum EndBlock-BeginBlock gap, in blocks.
	MinVotingPeriod uint64
}

// DefaultConfig returns the default registry configuration.
func DefaultConfig() *Config {
	return &Config{
		ProposalThreshold: new(big.Int).Mul(big.NewInt(20000), big.NewInt(1e18)), // 20000 tokens
		MinVotingPeriod:   6336,                                                  // ~1.1 days (15s/block)
	}
}
