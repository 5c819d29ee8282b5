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

// tokengov is a local development harness around the governance registry:
// it runs the registry over a leveldb store with a static balance table and
// block height taken from a TOML config file.
package main

import (
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/spf13/cobra"
)

var configPath string

func main() {
	log.SetDefault(log.NewLogger(log.NewTerminalHandler(os.Stderr, true)))

	rootCmd := &cobra.Command{
		Use:   "tokengov",
		Short: "Token-gated governance proposal registry",
		Long: `Tokengov keeps a registry of time-boxed governance proposals and votes.
Addresses holding enough governance tokens can create proposals; any address
can cast (and re-cast) a vote while a proposal's block window is open.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to TOML config file")

	rootCmd.AddCommand(
		serveCommand(),
		proposeCommand(),
		voteCommand(),
		showCommand(),
		listCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
