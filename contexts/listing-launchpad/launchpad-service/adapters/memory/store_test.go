package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"launchpad/contexts/listing-launchpad/launchpad-service/domain/entities"
	domainerrors "launchpad/contexts/listing-launchpad/launchpad-service/domain/errors"
)

func seedProposal(id string, status entities.ProposalStatus, createdAt time.Time) entities.Proposal {
	return entities.Proposal{
		ProposalID: id,
		ListingID:  "listing-1",
		Title:      "Community listing",
		CreatorID:  "user-1",
		Status:     status,
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}
}

func TestGetProposalRoundTrip(t *testing.T) {
	store := NewStore(nil)
	ctx := context.Background()
	proposal := seedProposal("prop-1", entities.StatusDraft, time.Now().UTC())

	if err := store.SaveProposal(ctx, proposal); err != nil {
		t.Fatalf("save proposal: %v", err)
	}
	got, err := store.GetProposal(ctx, "prop-1")
	if err != nil {
		t.Fatalf("get proposal: %v", err)
	}
	if got.Title != proposal.Title || got.Status != entities.StatusDraft {
		t.Fatalf("round trip mangled the proposal: %+v", got)
	}
}

func TestGetProposalUnknownID(t *testing.T) {
	store := NewStore(nil)
	if _, err := store.GetProposal(context.Background(), "missing"); !errors.Is(err, domainerrors.ErrProposalNotFound) {
		t.Fatalf("expected ErrProposalNotFound, got %v", err)
	}
}

func TestListProposalsFiltersAndPaginates(t *testing.T) {
	base := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	seed := []entities.Proposal{
		seedProposal("prop-1", entities.StatusDraft, base),
		seedProposal("prop-2", entities.StatusVoting, base.Add(time.Minute)),
		seedProposal("prop-3", entities.StatusVoting, base.Add(2*time.Minute)),
		seedProposal("prop-4", entities.StatusApproved, base.Add(3*time.Minute)),
	}
	store := NewStore(seed)
	ctx := context.Background()

	items, total, err := store.ListProposals(ctx, entities.StatusVoting, 0, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Fatalf("voting filter returned total=%d len=%d, want 2/2", total, len(items))
	}
	// Newest first.
	if items[0].ProposalID != "prop-3" || items[1].ProposalID != "prop-2" {
		t.Fatalf("order = [%s %s], want [prop-3 prop-2]", items[0].ProposalID, items[1].ProposalID)
	}

	items, total, err = store.ListProposals(ctx, "", 1, 2)
	if err != nil {
		t.Fatalf("list page: %v", err)
	}
	if total != 4 || len(items) != 2 {
		t.Fatalf("page returned total=%d len=%d, want 4/2", total, len(items))
	}
	if items[0].ProposalID != "prop-3" || items[1].ProposalID != "prop-2" {
		t.Fatalf("page = [%s %s], want [prop-3 prop-2]", items[0].ProposalID, items[1].ProposalID)
	}

	items, total, err = store.ListProposals(ctx, "", 10, 2)
	if err != nil {
		t.Fatalf("list past end: %v", err)
	}
	if total != 4 || len(items) != 0 {
		t.Fatalf("past-end page returned total=%d len=%d, want 4/0", total, len(items))
	}
}

func TestRecordVoteRejectsDuplicateAndKeepsTally(t *testing.T) {
	store := NewStore([]entities.Proposal{seedProposal("prop-1", entities.StatusVoting, time.Now().UTC())})
	ctx := context.Background()

	proposal, _ := store.GetProposal(ctx, "prop-1")
	proposal.VotesFor = 1
	vote := entities.Vote{
		ProposalID: "prop-1",
		VoterID:    "user-1",
		Direction:  entities.VoteFor,
		Weight:     1,
	}
	if err := store.RecordVote(ctx, vote, proposal); err != nil {
		t.Fatalf("record vote: %v", err)
	}

	proposal.VotesFor = 99
	if err := store.RecordVote(ctx, vote, proposal); !errors.Is(err, domainerrors.ErrDuplicateVote) {
		t.Fatalf("expected ErrDuplicateVote, got %v", err)
	}

	got, _ := store.GetProposal(ctx, "prop-1")
	if got.VotesFor != 1 {
		t.Fatalf("duplicate vote mutated the tally: votes_for=%d", got.VotesFor)
	}
	voted, err := store.HasVoted(ctx, "prop-1", "user-1")
	if err != nil || !voted {
		t.Fatalf("HasVoted = %v, %v, want true", voted, err)
	}
	voted, _ = store.HasVoted(ctx, "prop-1", "user-2")
	if voted {
		t.Fatalf("HasVoted reported a vote that was never cast")
	}
}

func TestRecordAllocationUpdatesProposalTogether(t *testing.T) {
	store := NewStore([]entities.Proposal{seedProposal("prop-1", entities.StatusIPOActive, time.Now().UTC())})
	ctx := context.Background()

	proposal, _ := store.GetProposal(ctx, "prop-1")
	proposal.SupplyRemaining = 900
	allocation := entities.AllocationResult{
		AllocationID:    "alloc-1",
		ProposalID:      "prop-1",
		BidderID:        "user-1",
		GrantedQuantity: 100,
		PricePaid:       55,
		CreatedAt:       time.Now().UTC(),
	}
	if err := store.RecordAllocation(ctx, allocation, proposal); err != nil {
		t.Fatalf("record allocation: %v", err)
	}

	got, _ := store.GetProposal(ctx, "prop-1")
	if got.SupplyRemaining != 900 {
		t.Fatalf("supply_remaining = %d, want 900", got.SupplyRemaining)
	}
	items, err := store.ListAllocations(ctx, "prop-1")
	if err != nil {
		t.Fatalf("list allocations: %v", err)
	}
	if len(items) != 1 || items[0].AllocationID != "alloc-1" {
		t.Fatalf("allocations = %+v, want the single recorded fill", items)
	}
}

func TestListAllocationsOrdersByCreation(t *testing.T) {
	store := NewStore([]entities.Proposal{seedProposal("prop-1", entities.StatusIPOActive, time.Now().UTC())})
	ctx := context.Background()
	base := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

	offsets := map[string]time.Duration{"alloc-1": 0, "alloc-2": time.Second, "alloc-3": 2 * time.Second}
	proposal, _ := store.GetProposal(ctx, "prop-1")
	for _, id := range []string{"alloc-2", "alloc-1", "alloc-3"} {
		err := store.RecordAllocation(ctx, entities.AllocationResult{
			AllocationID: id,
			ProposalID:   "prop-1",
			BidderID:     "user-1",
			CreatedAt:    base.Add(offsets[id]),
		}, proposal)
		if err != nil {
			t.Fatalf("record %s: %v", id, err)
		}
	}

	items, err := store.ListAllocations(ctx, "prop-1")
	if err != nil {
		t.Fatalf("list allocations: %v", err)
	}
	want := []string{"alloc-1", "alloc-2", "alloc-3"}
	for i, id := range want {
		if items[i].AllocationID != id {
			t.Fatalf("position %d holds %s, want %s", i, items[i].AllocationID, id)
		}
	}
}

func TestNewIDIsUnique(t *testing.T) {
	store := NewStore(nil)
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id, err := store.NewID(context.Background())
		if err != nil {
			t.Fatalf("new id: %v", err)
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = struct{}{}
	}
}
