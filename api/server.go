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

// Package api exposes a governance registry over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gorilla/mux"

	"github.com/tokengov-io/tokengov/governance"
)

// Server serves the registry's operations and read accessors as a JSON API.
type Server struct {
	registry *governance.Registry
	chain    governance.ChainReader
}

// NewServer creates an API server over the given registry. The chain reader
// is used to annotate proposal resources with their current window state.
func NewServer(registry *governance.Registry, chain governance.ChainReader) *Server {
	return &Server{
		registry: registry,
		chain:    chain,
	}
}

// Router returns the HTTP router for the API.
func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/api/proposals", s.listProposals).Methods("GET")
	router.HandleFunc("/api/proposals", s.createProposal).Methods("POST")
	router.HandleFunc("/api/proposals/{id:[0-9]+}", s.getProposal).Methods("GET")
	router.HandleFunc("/api/proposals/{id:[0-9]+}/votes", s.castVote).Methods("POST")
	router.HandleFunc("/api/proposals/{id:[0-9]+}/votes/{address}", s.getVote).Methods("GET")
	return router
}

type proposalResource struct {
	ID         uint64 `json:"id"`
	Proposer   string `json:"proposer"`
	Link       string `json:"link"`
	BeginBlock uint64 `json:"begin_block"`
	EndBlock   uint64 `json:"end_block"`
	CreatedAt  uint64 `json:"created_at"`
	Window     string `json:"window"`
}

type proposeRequest struct {
	Proposer   string `json:"proposer"`
	Link       string `json:"link"`
	BeginBlock uint64 `json:"begin_block"`
	EndBlock   uint64 `json:"end_block"`
}

type voteRequest struct {
	Voter  string `json:"voter"`
	Option uint8  `json:"option"`
}

type voteResource struct {
	ProposalID uint64 `json:"proposal_id"`
	Voter      string `json:"voter"`
	Option     uint8  `json:"option"`
}

func (s *Server) resource(p *governance.Proposal) *proposalResource {
	return &proposalResource{
		ID:         p.ID,
		Proposer:   p.Proposer.Hex(),
		Link:       p.Link,
		BeginBlock: p.BeginBlock,
		EndBlock:   p.EndBlock,
		CreatedAt:  p.CreatedAt,
		Window:     p.Window(s.chain.CurrentHeight()).String(),
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	switch {
	case errors.Is(err, governance.ErrInvalidProposalID):
		status = http.StatusNotFound
	case errors.Is(err, governance.ErrInsufficientPrivilege):
		status = http.StatusForbidden
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func parseAddress(raw string) (common.Address, bool) {
	if !common.IsHexAddress(raw) {
		return common.Address{}, false
	}
	return common.HexToAddress(raw), true
}

func (s *Server) listProposals(w http.ResponseWriter, r *http.Request) {
	var proposals []*governance.Proposal
	if r.URL.Query().Get("state") == "active" {
		proposals = s.registry.ActiveProposals()
	} else {
		for id := uint64(0); id < s.registry.TotalProposals(); id++ {
			p, err := s.registry.Proposal(id)
			if err != nil {
				continue
			}
			proposals = append(proposals, p)
		}
	}

	resources := make([]*proposalResource, 0, len(proposals))
	for _, p := range proposals {
		resources = append(resources, s.resource(p))
	}
	writeJSON(w, http.StatusOK, resources)
}

func (s *Server) getProposal(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)

	p, err := s.registry.Proposal(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.resource(p))
}

func (s *Server) createProposal(w http.ResponseWriter, r *http.Request) {
	var req proposeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed request body"})
		return
	}
	proposer, ok := parseAddress(req.Proposer)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid proposer address"})
		return
	}

	id, err := s.registry.Propose(proposer, req.Link, req.BeginBlock, req.EndBlock)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]uint64{"id": id})
}

func (s *Server) castVote(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)

	var req voteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed request body"})
		return
	}
	voter, ok := parseAddress(req.Voter)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid voter address"})
		return
	}

	if err := s.registry.Vote(voter, id, governance.VoteOption(req.Option)); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getVote(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, _ := strconv.ParseUint(vars["id"], 10, 64)

	voter, ok := parseAddress(vars["address"])
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid voter address"})
		return
	}

	// Lenient like the registry read: unknown ids report option zero.
	option := s.registry.VoteOf(id, voter)
	writeJSON(w, http.StatusOK, &voteResource{
		ProposalID: id,
		Voter:      voter.Hex(),
		Option:     uint8(option),
	})
}
