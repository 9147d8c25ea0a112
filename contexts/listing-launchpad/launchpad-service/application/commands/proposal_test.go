package commands

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"launchpad/contexts/listing-launchpad/launchpad-service/domain/entities"
	domainerrors "launchpad/contexts/listing-launchpad/launchpad-service/domain/errors"
	"launchpad/internal/shared/events"
)

var testStart = time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

func TestCreateProposalStartsAsDraft(t *testing.T) {
	repo := newTestRepo()
	uc, broadcaster, _ := newTestUseCase(repo, &fixedClock{now: testStart})

	proposal, err := uc.CreateProposal(context.Background(), CreateProposalCommand{
		ListingID:   "listing-1",
		CreatorID:   "creator-1",
		Title:       "Community token listing",
		Description: strings.Repeat("listing description ", 5),
	})
	if err != nil {
		t.Fatalf("CreateProposal: %v", err)
	}
	if proposal.Status != entities.StatusDraft {
		t.Fatalf("status = %s, want draft", proposal.Status)
	}
	if proposal.QuorumRequired != DefaultQuorumRequired {
		t.Fatalf("quorum = %d, want default %d", proposal.QuorumRequired, DefaultQuorumRequired)
	}
	if _, err := repo.GetProposal(context.Background(), proposal.ProposalID); err != nil {
		t.Fatalf("proposal was not persisted: %v", err)
	}
	types := broadcaster.eventTypes(events.TopicGovernance)
	if len(types) != 1 || types[0] != events.TypeProposalCreated {
		t.Fatalf("governance events = %v, want [proposal_created]", types)
	}
}

func TestCreateProposalValidation(t *testing.T) {
	uc, _, _ := newTestUseCase(newTestRepo(), &fixedClock{now: testStart})

	cases := []struct {
		name string
		cmd  CreateProposalCommand
	}{
		{name: "missing listing", cmd: CreateProposalCommand{CreatorID: "c", Title: "Valid title", Description: strings.Repeat("d", 60)}},
		{name: "missing creator", cmd: CreateProposalCommand{ListingID: "l", Title: "Valid title", Description: strings.Repeat("d", 60)}},
		{name: "short title", cmd: CreateProposalCommand{ListingID: "l", CreatorID: "c", Title: "abc", Description: strings.Repeat("d", 60)}},
		{name: "long title", cmd: CreateProposalCommand{ListingID: "l", CreatorID: "c", Title: strings.Repeat("t", 201), Description: strings.Repeat("d", 60)}},
		{name: "short description", cmd: CreateProposalCommand{ListingID: "l", CreatorID: "c", Title: "Valid title", Description: "too short"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := uc.CreateProposal(context.Background(), tc.cmd); !errors.Is(err, domainerrors.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestSubmitOpensVotingWithDeadline(t *testing.T) {
	draft := votingProposal("prop-1", 10, testStart)
	draft.Status = entities.StatusDraft
	draft.VotingDeadline = nil
	repo := newTestRepo(draft)
	uc, broadcaster, _ := newTestUseCase(repo, &fixedClock{now: testStart})

	proposal, err := uc.Submit(context.Background(), SubmitProposalCommand{ProposalID: "prop-1"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if proposal.Status != entities.StatusVoting {
		t.Fatalf("status = %s, want voting", proposal.Status)
	}
	wantDeadline := testStart.Add(DefaultVotingDays * 24 * time.Hour)
	if proposal.VotingDeadline == nil || !proposal.VotingDeadline.Equal(wantDeadline) {
		t.Fatalf("deadline = %v, want %v", proposal.VotingDeadline, wantDeadline)
	}
	types := broadcaster.eventTypes(events.TopicGovernance)
	if len(types) != 1 || types[0] != events.TypeProposalSubmitted {
		t.Fatalf("governance events = %v, want [proposal_submitted]", types)
	}
}

func TestSubmitRejectsNonDraft(t *testing.T) {
	repo := newTestRepo(votingProposal("prop-1", 10, testStart.Add(time.Hour)))
	uc, _, _ := newTestUseCase(repo, &fixedClock{now: testStart})

	_, err := uc.Submit(context.Background(), SubmitProposalCommand{ProposalID: "prop-1"})
	if !errors.Is(err, domainerrors.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	var transitionErr *domainerrors.TransitionError
	if !errors.As(err, &transitionErr) {
		t.Fatalf("expected TransitionError, got %T", err)
	}
	if transitionErr.From != string(entities.StatusVoting) {
		t.Fatalf("transition from = %s, want voting", transitionErr.From)
	}
}

func TestCloseVotingBeforeDeadlineWithoutQuorum(t *testing.T) {
	repo := newTestRepo(votingProposal("prop-1", 451, testStart.Add(time.Hour)))
	uc, _, _ := newTestUseCase(repo, &fixedClock{now: testStart})

	_, err := uc.CloseVoting(context.Background(), "prop-1")
	if !errors.Is(err, domainerrors.ErrVotingStillOpen) {
		t.Fatalf("expected ErrVotingStillOpen, got %v", err)
	}
}

func TestCloseVotingEarlyOnceQuorumReached(t *testing.T) {
	proposal := votingProposal("prop-1", 451, testStart.Add(time.Hour))
	proposal.VotesFor = 300
	proposal.VotesAgainst = 151
	repo := newTestRepo(proposal)
	uc, broadcaster, _ := newTestUseCase(repo, &fixedClock{now: testStart})

	closed, err := uc.CloseVoting(context.Background(), "prop-1")
	if err != nil {
		t.Fatalf("CloseVoting: %v", err)
	}
	if closed.Status != entities.StatusApproved {
		t.Fatalf("status = %s, want approved", closed.Status)
	}
	types := broadcaster.eventTypes(events.TopicGovernance)
	if len(types) != 1 || types[0] != events.TypeProposalApproved {
		t.Fatalf("governance events = %v, want [proposal_approved]", types)
	}
}

func TestCloseVotingAfterDeadlineWithoutQuorumRejects(t *testing.T) {
	proposal := votingProposal("prop-1", 451, testStart)
	proposal.VotesFor = 200
	proposal.VotesAgainst = 50
	repo := newTestRepo(proposal)
	uc, broadcaster, _ := newTestUseCase(repo, &fixedClock{now: testStart.Add(time.Minute)})

	closed, err := uc.CloseVoting(context.Background(), "prop-1")
	if err != nil {
		t.Fatalf("CloseVoting: %v", err)
	}
	if closed.Status != entities.StatusRejected {
		t.Fatalf("status = %s, want rejected", closed.Status)
	}
	types := broadcaster.eventTypes(events.TopicGovernance)
	if len(types) != 1 || types[0] != events.TypeProposalRejected {
		t.Fatalf("governance events = %v, want [proposal_rejected]", types)
	}
}

func TestCloseVotingTieRejects(t *testing.T) {
	proposal := votingProposal("prop-1", 451, testStart)
	proposal.VotesFor = 300
	proposal.VotesAgainst = 300
	repo := newTestRepo(proposal)
	uc, _, _ := newTestUseCase(repo, &fixedClock{now: testStart.Add(time.Minute)})

	closed, err := uc.CloseVoting(context.Background(), "prop-1")
	if err != nil {
		t.Fatalf("CloseVoting: %v", err)
	}
	if closed.Status != entities.StatusRejected {
		t.Fatalf("tie must reject, got %s", closed.Status)
	}
}

func TestCloseVotingRejectsNonVotingProposal(t *testing.T) {
	draft := votingProposal("prop-1", 10, testStart)
	draft.Status = entities.StatusDraft
	uc, _, _ := newTestUseCase(newTestRepo(draft), &fixedClock{now: testStart})

	_, err := uc.CloseVoting(context.Background(), "prop-1")
	if !errors.Is(err, domainerrors.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestStartAuctionOpensIPOWindowAndTicker(t *testing.T) {
	approved := votingProposal("prop-1", 10, testStart)
	approved.Status = entities.StatusApproved
	repo := newTestRepo(approved)
	uc, broadcaster, tickers := newTestUseCase(repo, &fixedClock{now: testStart})

	proposal, err := uc.StartAuction(context.Background(), StartAuctionCommand{
		ProposalID:      "prop-1",
		StartPrice:      50,
		ReservePrice:    5,
		TotalSupply:     1000,
		DurationSeconds: 3600,
	})
	if err != nil {
		t.Fatalf("StartAuction: %v", err)
	}
	if proposal.Status != entities.StatusIPOActive {
		t.Fatalf("status = %s, want ipo_active", proposal.Status)
	}
	if proposal.SupplyRemaining != 1000 {
		t.Fatalf("supply remaining = %d, want 1000", proposal.SupplyRemaining)
	}
	if proposal.AuctionEnd == nil || !proposal.AuctionEnd.Equal(testStart.Add(time.Hour)) {
		t.Fatalf("auction end = %v, want %v", proposal.AuctionEnd, testStart.Add(time.Hour))
	}
	if len(tickers.started) != 1 || tickers.started[0] != "prop-1" {
		t.Fatalf("ticker starts = %v, want [prop-1]", tickers.started)
	}
	types := broadcaster.eventTypes(events.TopicAuctions)
	if len(types) != 1 || types[0] != events.TypeAuctionStarted {
		t.Fatalf("auction events = %v, want [auction_started]", types)
	}
}

func TestStartAuctionRejectsReserveAboveStart(t *testing.T) {
	approved := votingProposal("prop-1", 10, testStart)
	approved.Status = entities.StatusApproved
	uc, _, _ := newTestUseCase(newTestRepo(approved), &fixedClock{now: testStart})

	_, err := uc.StartAuction(context.Background(), StartAuctionCommand{
		ProposalID:   "prop-1",
		StartPrice:   10,
		ReservePrice: 20,
	})
	if !errors.Is(err, domainerrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestStartAuctionRejectsWrongState(t *testing.T) {
	uc, _, _ := newTestUseCase(newTestRepo(votingProposal("prop-1", 10, testStart)), &fixedClock{now: testStart})

	_, err := uc.StartAuction(context.Background(), StartAuctionCommand{ProposalID: "prop-1"})
	if !errors.Is(err, domainerrors.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestCloseAuctionWhileWindowOpenWithSupply(t *testing.T) {
	repo := newTestRepo(activeAuction("prop-1", testStart, time.Hour, 1000))
	uc, _, _ := newTestUseCase(repo, &fixedClock{now: testStart.Add(time.Minute)})

	_, err := uc.CloseAuction(context.Background(), "prop-1")
	if !errors.Is(err, domainerrors.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestCloseAuctionAfterWindowSettlesFinalPrice(t *testing.T) {
	auction := activeAuction("prop-1", testStart, time.Hour, 1000)
	auction.SupplyRemaining = 400
	auction.TotalRaised = 30000
	repo := newTestRepo(auction)
	uc, broadcaster, tickers := newTestUseCase(repo, &fixedClock{now: testStart.Add(2 * time.Hour)})

	closed, err := uc.CloseAuction(context.Background(), "prop-1")
	if err != nil {
		t.Fatalf("CloseAuction: %v", err)
	}
	if closed.Status != entities.StatusIPOCompleted {
		t.Fatalf("status = %s, want ipo_completed", closed.Status)
	}
	if closed.FinalPrice != 50 {
		t.Fatalf("final price = %v, want 50 (30000 raised / 600 sold)", closed.FinalPrice)
	}
	if len(tickers.stopped) != 1 || tickers.stopped[0] != "prop-1" {
		t.Fatalf("ticker stops = %v, want [prop-1]", tickers.stopped)
	}
	types := broadcaster.eventTypes(events.TopicAuctions)
	if len(types) != 1 || types[0] != events.TypeAuctionClosed {
		t.Fatalf("auction events = %v, want [auction_closed]", types)
	}
}

func TestCloseAuctionWithNoSalesFallsBackToReserve(t *testing.T) {
	repo := newTestRepo(activeAuction("prop-1", testStart, time.Hour, 1000))
	uc, _, _ := newTestUseCase(repo, &fixedClock{now: testStart.Add(2 * time.Hour)})

	closed, err := uc.CloseAuction(context.Background(), "prop-1")
	if err != nil {
		t.Fatalf("CloseAuction: %v", err)
	}
	if closed.FinalPrice != closed.ReservePrice {
		t.Fatalf("final price = %v, want reserve %v", closed.FinalPrice, closed.ReservePrice)
	}
}

func TestCloseAuctionRejectsCompletedProposal(t *testing.T) {
	auction := activeAuction("prop-1", testStart, time.Hour, 1000)
	auction.Status = entities.StatusIPOCompleted
	uc, _, _ := newTestUseCase(newTestRepo(auction), &fixedClock{now: testStart.Add(2 * time.Hour)})

	_, err := uc.CloseAuction(context.Background(), "prop-1")
	if !errors.Is(err, domainerrors.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestSaveFailureSurfacesAsExternalService(t *testing.T) {
	repo := newTestRepo()
	repo.saveErr = errors.New("connection reset")
	uc, broadcaster, _ := newTestUseCase(repo, &fixedClock{now: testStart})

	_, err := uc.CreateProposal(context.Background(), CreateProposalCommand{
		ListingID:   "listing-1",
		CreatorID:   "creator-1",
		Title:       "Community token listing",
		Description: strings.Repeat("listing description ", 5),
	})
	if !errors.Is(err, domainerrors.ErrExternalService) {
		t.Fatalf("expected ErrExternalService, got %v", err)
	}
	if len(broadcaster.eventTypes(events.TopicGovernance)) != 0 {
		t.Fatalf("no event may be emitted when the save fails")
	}
}
