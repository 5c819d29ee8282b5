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

package main

import (
	"fmt"
	"math/big"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/ethereum/go-ethereum/common"

	"github.com/tokengov-io/tokengov/governance"
)

// Config is the TOML process configuration. Token amounts are given in
// whole tokens and converted to the token's 18-decimal units internally.
type Config struct {
	Node     NodeConfig     `toml:"node"`
	Registry RegistryConfig `toml:"registry"`
	Chain    ChainConfig    `toml:"chain"`
}

type NodeConfig struct {
	Listen  string `toml:"listen"`
	DataDir string `toml:"data_dir"`
}

type RegistryConfig struct {
	ProposalThreshold int64  `toml:"proposal_threshold"` // whole tokens
	MinVotingPeriod   uint64 `toml:"min_voting_period"`  // blocks
}

// ChainConfig is the static development stand-in for the host chain: a fixed
// block height and a balance table for the governance token.
type ChainConfig struct {
	Height   uint64           `toml:"height"`
	Balances map[string]int64 `toml:"balances"` // address -> whole tokens
}

func defaultConfig() *Config {
	return &Config{
		Node: NodeConfig{
			Listen:  ":8660",
			DataDir: "tokengov-data",
		},
		Registry: RegistryConfig{
			ProposalThreshold: 20000,
			MinVotingPeriod:   6336,
		},
		Chain: ChainConfig{
			Height: 0,
		},
	}
}

func loadConfig(path string) (*Config, error) {
	config := defaultConfig()
	if path == "" {
		return config, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(raw, config); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	for addr := range config.Chain.Balances {
		if !common.IsHexAddress(addr) {
			return nil, fmt.Errorf("config: %q is not a hex address", addr)
		}
	}

	return config, nil
}

func wholeTokens(amount int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(amount), big.NewInt(1e18))
}

func (c *Config) registryConfig() *governance.Config {
	return &governance.Config{
		ProposalThreshold: wholeTokens(c.Registry.ProposalThreshold),
		MinVotingPeriod:   c.Registry.MinVotingPeriod,
	}
}

// staticOracle serves balances from the config's balance table.
type staticOracle struct {
	balances map[common.Address]*big.Int
}

func newStaticOracle(config ChainConfig) *staticOracle {
	balances := make(map[common.Address]*big.Int, len(config.Balances))
	for addr, tokens := range config.Balances {
		balances[common.HexToAddress(addr)] = wholeTokens(tokens)
	}
	return &staticOracle{balances: balances}
}

func (o *staticOracle) BalanceOf(addr common.Address) *big.Int {
	if balance, exists := o.balances[addr]; exists {
		return balance
	}
	return big.NewInt(0)
}

// staticChain serves the config's fixed block height.
type staticChain struct {
	height uint64
}

func (c *staticChain) CurrentHeight() uint64 {
	return c.height
}
