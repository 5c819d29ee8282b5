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
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/spf13/cobra"

	"github.com/tokengov-io/tokengov/api"
	"github.com/tokengov-io/tokengov/governance"
	"github.com/tokengov-io/tokengov/storage"
)

// openRegistry builds the registry stack from the config: leveldb store plus
// the static dev oracle and chain.
func openRegistry() (*Config, *governance.Registry, *storage.LevelDBStore, *staticChain, error) {
	config, err := loadConfig(configPath)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	store, err := storage.NewLevelDBStore(config.Node.DataDir)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	chain := &staticChain{height: config.Chain.Height}
	registry := governance.NewRegistry(config.registryConfig(), store, newStaticOracle(config.Chain), chain)

	return config, registry, store, chain, nil
}

func parseAddressArg(raw, name string) (common.Address, error) {
	if !common.IsHexAddress(raw) {
		return common.Address{}, fmt.Errorf("%s must be a hex address, got %q", name, raw)
	}
	return common.HexToAddress(raw), nil
}

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the registry HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, registry, store, chain, err := openRegistry()
			if err != nil {
				return err
			}
			defer store.Close()

			server := api.NewServer(registry, chain)
			log.Info("Governance API listening", "addr", config.Node.Listen, "datadir", config.Node.DataDir, "height", chain.CurrentHeight())
			return http.ListenAndServe(config.Node.Listen, server.Router())
		},
	}
}

func proposeCommand() *cobra.Command {
	var (
		proposerArg string
		link        string
		beginBlock  uint64
		endBlock    uint64
	)

	cmd := &cobra.Command{
		Use:   "propose",
		Short: "Create a proposal",
		RunE: func(cmd *cobra.Command, args []string) error {
			proposer, err := parseAddressArg(proposerArg, "--proposer")
			if err != nil {
				return err
			}

			_, registry, store, _, err := openRegistry()
			if err != nil {
				return err
			}
			defer store.Close()

			id, err := registry.Propose(proposer, link, beginBlock, endBlock)
			if err != nil {
				return err
			}
			fmt.Printf("Created proposal %d\n", id)
			return nil
		},
	}
	cmd.Flags().StringVar(&proposerArg, "proposer", "", "Proposer address")
	cmd.Flags().StringVar(&link, "link", "", "Off-chain proposal content link")
	cmd.Flags().Uint64Var(&beginBlock, "begin", 0, "Block height at which voting opens")
	cmd.Flags().Uint64Var(&endBlock, "end", 0, "Block height at which voting closes")
	cmd.MarkFlagRequired("proposer")

	return cmd
}

func voteCommand() *cobra.Command {
	var (
		voterArg   string
		proposalID uint64
		option     uint8
	)

	cmd := &cobra.Command{
		Use:   "vote",
		Short: "Cast (or overwrite) a vote on a proposal",
		RunE: func(cmd *cobra.Command, args []string) error {
			voter, err := parseAddressArg(voterArg, "--voter")
			if err != nil {
				return err
			}

			_, registry, store, _, err := openRegistry()
			if err != nil {
				return err
			}
			defer store.Close()

			if err := registry.Vote(voter, proposalID, governance.VoteOption(option)); err != nil {
				return err
			}
			fmt.Printf("Recorded vote %s on proposal %d\n", governance.VoteOption(option), proposalID)
			return nil
		},
	}
	cmd.Flags().StringVar(&voterArg, "voter", "", "Voter address")
	cmd.Flags().Uint64Var(&proposalID, "id", 0, "Proposal id")
	cmd.Flags().Uint8Var(&option, "option", 0, "Vote option (1=yes, 2=no)")
	cmd.MarkFlagRequired("voter")

	return cmd
}

func showCommand() *cobra.Command {
	var proposalID uint64

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a proposal",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, registry, store, chain, err := openRegistry()
			if err != nil {
				return err
			}
			defer store.Close()

			p, err := registry.Proposal(proposalID)
			if err != nil {
				return err
			}
			printProposal(p, chain.CurrentHeight())
			return nil
		},
	}
	cmd.Flags().Uint64Var(&proposalID, "id", 0, "Proposal id")

	return cmd
}

func listCommand() *cobra.Command {
	var activeOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List proposals",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, registry, store, chain, err := openRegistry()
			if err != nil {
				return err
			}
			defer store.Close()

			var proposals []*governance.Proposal
			if activeOnly {
				proposals = registry.ActiveProposals()
			} else {
				for id := uint64(0); id < registry.TotalProposals(); id++ {
					p, err := registry.Proposal(id)
					if err != nil {
						return err
					}
					proposals = append(proposals, p)
				}
			}

			if len(proposals) == 0 {
				fmt.Println("No proposals")
				return nil
			}
			for _, p := range proposals {
				printProposal(p, chain.CurrentHeight())
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&activeOnly, "active", false, "Only proposals with an open voting window")

	return cmd
}

func printProposal(p *governance.Proposal, height uint64) {
	fmt.Printf("#%d %s\n", p.ID, p.Link)
	fmt.Printf("  proposer: %s\n", p.Proposer.Hex())
	fmt.Printf("  window:   [%d, %d] (%s at height %d)\n", p.BeginBlock, p.EndBlock, p.Window(height), height)
}
