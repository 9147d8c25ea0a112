package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"launchpad/contexts/listing-launchpad/launchpad-service/domain/entities"
	domainerrors "launchpad/contexts/listing-launchpad/launchpad-service/domain/errors"
	"launchpad/internal/shared/events"
)

func TestCastVoteIncrementsTally(t *testing.T) {
	repo := newTestRepo(votingProposal("prop-1", 3, testStart.Add(time.Hour)))
	uc, broadcaster, _ := newTestUseCase(repo, &fixedClock{now: testStart})

	result, err := uc.CastVote(context.Background(), CastVoteCommand{
		ProposalID: "prop-1",
		VoterID:    "voter-1",
		Direction:  entities.VoteFor,
	})
	if err != nil {
		t.Fatalf("CastVote: %v", err)
	}
	if result.Vote.Weight != 1 {
		t.Fatalf("default weight = %d, want 1", result.Vote.Weight)
	}
	if result.Proposal.VotesFor != 1 || result.Proposal.VotesAgainst != 0 {
		t.Fatalf("tally = %d/%d, want 1/0", result.Proposal.VotesFor, result.Proposal.VotesAgainst)
	}
	if result.Outcome != entities.OutcomeStillVoting {
		t.Fatalf("outcome = %s, want still_voting", result.Outcome)
	}
	types := broadcaster.eventTypes(events.TopicGovernance)
	if len(types) != 1 || types[0] != events.TypeVoteCast {
		t.Fatalf("governance events = %v, want [vote_cast]", types)
	}
}

func TestCastVoteExplicitWeight(t *testing.T) {
	repo := newTestRepo(votingProposal("prop-1", 100, testStart.Add(time.Hour)))
	uc, _, _ := newTestUseCase(repo, &fixedClock{now: testStart})

	result, err := uc.CastVote(context.Background(), CastVoteCommand{
		ProposalID: "prop-1",
		VoterID:    "voter-1",
		Weight:     25,
		Direction:  entities.VoteAgainst,
	})
	if err != nil {
		t.Fatalf("CastVote: %v", err)
	}
	if result.Proposal.VotesAgainst != 25 {
		t.Fatalf("votes against = %d, want 25", result.Proposal.VotesAgainst)
	}
}

func TestCastVoteRejectsSecondVoteFromSameVoter(t *testing.T) {
	repo := newTestRepo(votingProposal("prop-1", 100, testStart.Add(time.Hour)))
	uc, _, _ := newTestUseCase(repo, &fixedClock{now: testStart})

	first := CastVoteCommand{ProposalID: "prop-1", VoterID: "voter-1", Direction: entities.VoteFor}
	if _, err := uc.CastVote(context.Background(), first); err != nil {
		t.Fatalf("first vote: %v", err)
	}

	second := CastVoteCommand{ProposalID: "prop-1", VoterID: "voter-1", Direction: entities.VoteAgainst}
	if _, err := uc.CastVote(context.Background(), second); !errors.Is(err, domainerrors.ErrDuplicateVote) {
		t.Fatalf("expected ErrDuplicateVote, got %v", err)
	}

	proposal, _ := repo.GetProposal(context.Background(), "prop-1")
	if proposal.VotesFor != 1 || proposal.VotesAgainst != 0 {
		t.Fatalf("tally after duplicate = %d/%d, want 1/0", proposal.VotesFor, proposal.VotesAgainst)
	}
}

func TestCastVoteAfterDeadline(t *testing.T) {
	repo := newTestRepo(votingProposal("prop-1", 100, testStart))
	uc, _, _ := newTestUseCase(repo, &fixedClock{now: testStart.Add(time.Second)})

	_, err := uc.CastVote(context.Background(), CastVoteCommand{
		ProposalID: "prop-1",
		VoterID:    "voter-1",
		Direction:  entities.VoteFor,
	})
	if !errors.Is(err, domainerrors.ErrDeadlinePassed) {
		t.Fatalf("expected ErrDeadlinePassed, got %v", err)
	}
}

func TestCastVoteOutsideVotingStatus(t *testing.T) {
	draft := votingProposal("prop-1", 100, testStart.Add(time.Hour))
	draft.Status = entities.StatusDraft
	uc, _, _ := newTestUseCase(newTestRepo(draft), &fixedClock{now: testStart})

	_, err := uc.CastVote(context.Background(), CastVoteCommand{
		ProposalID: "prop-1",
		VoterID:    "voter-1",
		Direction:  entities.VoteFor,
	})
	if !errors.Is(err, domainerrors.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestCastVoteValidation(t *testing.T) {
	repo := newTestRepo(votingProposal("prop-1", 100, testStart.Add(time.Hour)))
	uc, _, _ := newTestUseCase(repo, &fixedClock{now: testStart})

	cases := []struct {
		name string
		cmd  CastVoteCommand
	}{
		{name: "missing voter", cmd: CastVoteCommand{ProposalID: "prop-1", Direction: entities.VoteFor}},
		{name: "bad direction", cmd: CastVoteCommand{ProposalID: "prop-1", VoterID: "v", Direction: "abstain"}},
		{name: "negative weight", cmd: CastVoteCommand{ProposalID: "prop-1", VoterID: "v", Weight: -3, Direction: entities.VoteFor}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := uc.CastVote(context.Background(), tc.cmd); !errors.Is(err, domainerrors.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestCastVoteUnknownProposal(t *testing.T) {
	uc, _, _ := newTestUseCase(newTestRepo(), &fixedClock{now: testStart})

	_, err := uc.CastVote(context.Background(), CastVoteCommand{
		ProposalID: "missing",
		VoterID:    "voter-1",
		Direction:  entities.VoteFor,
	})
	if !errors.Is(err, domainerrors.ErrProposalNotFound) {
		t.Fatalf("expected ErrProposalNotFound, got %v", err)
	}
}
