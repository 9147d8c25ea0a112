package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"launchpad/contexts/listing-launchpad/launchpad-service/domain/entities"
	domainerrors "launchpad/contexts/listing-launchpad/launchpad-service/domain/errors"

	"github.com/google/uuid"
)

type voteKey struct {
	proposalID string
	voterID    string
}

// Store is the in-memory storage collaborator, used in tests and for local
// runs without Postgres. It also serves as the Clock and IDGenerator.
type Store struct {
	mu sync.RWMutex

	proposals   map[string]entities.Proposal
	votes       map[voteKey]entities.Vote
	allocations map[string][]entities.AllocationResult
}

func NewStore(seed []entities.Proposal) *Store {
	proposals := make(map[string]entities.Proposal, len(seed))
	for _, proposal := range seed {
		proposals[proposal.ProposalID] = proposal
	}
	return &Store{
		proposals:   proposals,
		votes:       make(map[voteKey]entities.Vote),
		allocations: make(map[string][]entities.AllocationResult),
	}
}

func (s *Store) SaveProposal(_ context.Context, proposal entities.Proposal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.proposals[strings.TrimSpace(proposal.ProposalID)] = proposal
	return nil
}

func (s *Store) GetProposal(_ context.Context, proposalID string) (entities.Proposal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	proposal, ok := s.proposals[strings.TrimSpace(proposalID)]
	if !ok {
		return entities.Proposal{}, domainerrors.ErrProposalNotFound
	}
	return proposal, nil
}

func (s *Store) ListProposals(
	_ context.Context,
	status entities.ProposalStatus,
	offset int,
	limit int,
) ([]entities.Proposal, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Proposal, 0, len(s.proposals))
	for _, proposal := range s.proposals {
		if status != "" && proposal.Status != status {
			continue
		}
		items = append(items, proposal)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ProposalID < items[j].ProposalID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})

	total := int64(len(items))
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []entities.Proposal{}, total, nil
	}
	items = items[offset:]
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, total, nil
}

// RecordVote stores the vote and the updated tally together. The duplicate
// check here backs up the use-case check so the first vote stays
// authoritative even across direct store use.
func (s *Store) RecordVote(_ context.Context, vote entities.Vote, proposal entities.Proposal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := voteKey{
		proposalID: strings.TrimSpace(vote.ProposalID),
		voterID:    strings.TrimSpace(vote.VoterID),
	}
	if _, exists := s.votes[key]; exists {
		return domainerrors.ErrDuplicateVote
	}
	s.votes[key] = vote
	s.proposals[key.proposalID] = proposal
	return nil
}

func (s *Store) HasVoted(_ context.Context, proposalID string, voterID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.votes[voteKey{
		proposalID: strings.TrimSpace(proposalID),
		voterID:    strings.TrimSpace(voterID),
	}]
	return ok, nil
}

func (s *Store) RecordAllocation(
	_ context.Context,
	allocation entities.AllocationResult,
	proposal entities.Proposal,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	proposalID := strings.TrimSpace(allocation.ProposalID)
	s.allocations[proposalID] = append(s.allocations[proposalID], allocation)
	s.proposals[proposalID] = proposal
	return nil
}

func (s *Store) ListAllocations(_ context.Context, proposalID string) ([]entities.AllocationResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	source := s.allocations[strings.TrimSpace(proposalID)]
	items := make([]entities.AllocationResult, len(source))
	copy(items, source)
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
