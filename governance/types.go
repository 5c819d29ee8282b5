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
	"github.com/ethereum/go-ethereum/common"
)

// VoteOption is the integer code a voter casts on a proposal. Zero is
// reserved to mean "no vote recorded" and may never be cast explicitly.
type VoteOption uint8

const (
	VoteNone VoteOption = 0x00 // reserved: no vote recorded
	VoteYes  VoteOption = 0x01
	VoteNo   VoteOption = 0x02
)

// Valid reports whether the option is a code a caller may cast.
func (o VoteOption) Valid() bool {
	return o == VoteYes || o == VoteNo
}

func (o VoteOption) String() string {
	switch o {
	case VoteNone:
		return "none"
	case VoteYes:
		return "yes"
	case VoteNo:
		return "no"
	default:
		return "invalid"
	}
}

// WindowState is the voting-window state of a proposal at some block height.
// It is derived by comparing the height against the proposal's window on
// every read; proposals carry no stored status field.
type WindowState uint8

const (
	WindowPending WindowState = 0x00 // height below BeginBlock
	WindowActive  WindowState = 0x01 // height within [BeginBlock, EndBlock]
	WindowClosed  WindowState = 0x02 // height above EndBlock
)

func (s WindowState) String() string {
	switch s {
	case WindowPending:
		return "pending"
	case WindowActive:
		return "active"
	case WindowClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Proposal is a governance proposal record. Records are immutable once
// stored: the registry hands out copies, never the stored struct.
type Proposal struct {
	ID         uint64         // sequential id, assigned at creation
	Proposer   common.Address // creator
	Link       string         // off-chain proposal content reference
	BeginBlock uint64         // height at which voting opens (inclusive)
	EndBlock   uint64         // height at which voting closes (inclusive)
	CreatedAt  uint64         // height at creation time
}

// Window returns the proposal's window state at the given block height.
// Both window bounds are inclusive.
func (p *Proposal) Window(height uint64) WindowState {
	switch {
	case height < p.BeginBlock:
		return WindowPending
	case height > p.EndBlock:
		return WindowClosed
	default:
		return WindowActive
	}
}
