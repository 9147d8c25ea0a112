package commands

import (
	"context"
	"fmt"
	"sync"
	"time"

	application "launchpad/contexts/listing-launchpad/launchpad-service/application"
	"launchpad/contexts/listing-launchpad/launchpad-service/domain/entities"
	domainerrors "launchpad/contexts/listing-launchpad/launchpad-service/domain/errors"
	"launchpad/internal/shared/events"
)

type testRepo struct {
	mu          sync.Mutex
	proposals   map[string]entities.Proposal
	votes       map[string]entities.Vote
	allocations map[string][]entities.AllocationResult
	saveErr     error
}

func newTestRepo(seed ...entities.Proposal) *testRepo {
	repo := &testRepo{
		proposals:   make(map[string]entities.Proposal),
		votes:       make(map[string]entities.Vote),
		allocations: make(map[string][]entities.AllocationResult),
	}
	for _, proposal := range seed {
		repo.proposals[proposal.ProposalID] = proposal
	}
	return repo
}

func (r *testRepo) SaveProposal(_ context.Context, proposal entities.Proposal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	r.proposals[proposal.ProposalID] = proposal
	return nil
}

func (r *testRepo) GetProposal(_ context.Context, proposalID string) (entities.Proposal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	proposal, ok := r.proposals[proposalID]
	if !ok {
		return entities.Proposal{}, domainerrors.ErrProposalNotFound
	}
	return proposal, nil
}

func (r *testRepo) ListProposals(_ context.Context, status entities.ProposalStatus, offset int, limit int) ([]entities.Proposal, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []entities.Proposal
	for _, proposal := range r.proposals {
		if status == "" || proposal.Status == status {
			matched = append(matched, proposal)
		}
	}
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[offset:]
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, total, nil
}

func (r *testRepo) RecordVote(_ context.Context, vote entities.Vote, proposal entities.Proposal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := vote.ProposalID + "/" + vote.VoterID
	if _, ok := r.votes[key]; ok {
		return domainerrors.ErrDuplicateVote
	}
	r.votes[key] = vote
	r.proposals[proposal.ProposalID] = proposal
	return nil
}

func (r *testRepo) HasVoted(_ context.Context, proposalID string, voterID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.votes[proposalID+"/"+voterID]
	return ok, nil
}

func (r *testRepo) RecordAllocation(_ context.Context, allocation entities.AllocationResult, proposal entities.Proposal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.allocations[allocation.ProposalID] = append(r.allocations[allocation.ProposalID], allocation)
	r.proposals[proposal.ProposalID] = proposal
	return nil
}

func (r *testRepo) ListAllocations(_ context.Context, proposalID string) ([]entities.AllocationResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entities.AllocationResult(nil), r.allocations[proposalID]...), nil
}

type fixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type seqIDGen struct {
	mu   sync.Mutex
	next int
}

func (g *seqIDGen) NewID(_ context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("id-%d", g.next), nil
}

type broadcastRecord struct {
	Topic    string
	EntityID string
	Event    events.Envelope
}

type recordingBroadcaster struct {
	mu        sync.Mutex
	broadcast []broadcastRecord
	direct    map[string][]events.Envelope
}

func newRecordingBroadcaster() *recordingBroadcaster {
	return &recordingBroadcaster{direct: make(map[string][]events.Envelope)}
}

func (b *recordingBroadcaster) Broadcast(topic string, entityID string, event events.Envelope) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.broadcast = append(b.broadcast, broadcastRecord{Topic: topic, EntityID: entityID, Event: event})
}

func (b *recordingBroadcaster) SendToUser(userID string, event events.Envelope) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.direct[userID] = append(b.direct[userID], event)
}

func (b *recordingBroadcaster) eventTypes(topic string) []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	var types []string
	for _, record := range b.broadcast {
		if record.Topic == topic {
			types = append(types, record.Event.EventType)
		}
	}
	return types
}

type fakeTickers struct {
	mu      sync.Mutex
	started []string
	stopped []string
}

func (f *fakeTickers) Start(proposal entities.Proposal) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.started = append(f.started, proposal.ProposalID)
}

func (f *fakeTickers) Stop(proposalID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = append(f.stopped, proposalID)
}

func newTestUseCase(repo *testRepo, clock *fixedClock) (*ProposalUseCase, *recordingBroadcaster, *fakeTickers) {
	broadcaster := newRecordingBroadcaster()
	tickers := &fakeTickers{}
	uc := &ProposalUseCase{
		Repo:        repo,
		Clock:       clock,
		IDGen:       &seqIDGen{},
		Locks:       application.NewProposalLocks(),
		Broadcaster: broadcaster,
		Tickers:     tickers,
	}
	return uc, broadcaster, tickers
}

func votingProposal(id string, quorum int64, deadline time.Time) entities.Proposal {
	return entities.Proposal{
		ProposalID:     id,
		ListingID:      "listing-1",
		CreatorID:      "creator-1",
		Title:          "Community token listing",
		Description:    "A listing proposal with a long enough description for validation rules.",
		Status:         entities.StatusVoting,
		QuorumRequired: quorum,
		VotingDeadline: &deadline,
	}
}

func activeAuction(id string, start time.Time, window time.Duration, supply int64) entities.Proposal {
	end := start.Add(window)
	return entities.Proposal{
		ProposalID:      id,
		ListingID:       "listing-1",
		CreatorID:       "creator-1",
		Title:           "Community token listing",
		Description:     "A listing proposal with a long enough description for validation rules.",
		Status:          entities.StatusIPOActive,
		StartPrice:      100,
		ReservePrice:    10,
		TotalSupply:     supply,
		SupplyRemaining: supply,
		AuctionStart:    &start,
		AuctionEnd:      &end,
	}
}
