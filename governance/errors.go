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

import "errors"

// Proposal creation errors
var (
	ErrInsufficientPrivilege = errors.New("balance below proposal threshold")
	ErrEmptyLink             = errors.New("proposal link is empty")
	ErrProposalTooOld        = errors.New("begin block is not after the current height")
	ErrPeriodTooShort        = errors.New("voting period is shorter than the minimum")
)

// Voting errors
var (
	ErrInvalidProposalID = errors.New("proposal does not exist")
	ErrInvalidContent    = errors.New("vote option zero is reserved")
	ErrInvalidOpcode     = errors.New("vote option is not a legal code")
	ErrBeforeWindow      = errors.New("voting has not opened yet")
	ErrAfterWindow       = errors.New("voting has closed")
)
