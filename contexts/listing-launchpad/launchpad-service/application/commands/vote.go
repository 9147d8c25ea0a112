package commands

import (
	"context"
	"fmt"
	"strings"

	application "launchpad/contexts/listing-launchpad/launchpad-service/application"
	"launchpad/contexts/listing-launchpad/launchpad-service/domain/entities"
	domainerrors "launchpad/contexts/listing-launchpad/launchpad-service/domain/errors"
	"launchpad/internal/shared/events"
)

type CastVoteCommand struct {
	ProposalID string
	VoterID    string
	Weight     int64
	Direction  entities.VoteDirection
}

type CastVoteResult struct {
	Proposal entities.Proposal
	Vote     entities.Vote
	Outcome  entities.VoteOutcome
}

// CastVote records one voter's weight on a proposal in voting. Voting power
// is a flat weight of 1 unless the caller passes an explicit weight;
// holdings-proportional weighting is a possible future policy, not current
// behavior. The tally increment and the voter record are applied together
// under the per-proposal lock.
func (uc *ProposalUseCase) CastVote(ctx context.Context, cmd CastVoteCommand) (CastVoteResult, error) {
	logger := application.ResolveLogger(uc.Logger)

	if strings.TrimSpace(cmd.VoterID) == "" {
		return CastVoteResult{}, fmt.Errorf("%w: voter id is required", domainerrors.ErrInvalidInput)
	}
	if cmd.Direction != entities.VoteFor && cmd.Direction != entities.VoteAgainst {
		return CastVoteResult{}, fmt.Errorf("%w: direction must be %q or %q",
			domainerrors.ErrInvalidInput, entities.VoteFor, entities.VoteAgainst)
	}
	weight := cmd.Weight
	if weight == 0 {
		weight = 1
	}
	if weight < 0 {
		return CastVoteResult{}, fmt.Errorf("%w: weight must be positive", domainerrors.ErrInvalidInput)
	}

	unlock := uc.Locks.Lock(cmd.ProposalID)
	defer unlock()

	proposal, err := uc.loadProposal(ctx, cmd.ProposalID)
	if err != nil {
		return CastVoteResult{}, err
	}
	if proposal.Status != entities.StatusVoting {
		return CastVoteResult{}, fmt.Errorf("%w: proposal is %s, not voting", domainerrors.ErrInvalidState, proposal.Status)
	}

	now := uc.now()
	if proposal.VotingDeadline != nil && now.After(*proposal.VotingDeadline) {
		return CastVoteResult{}, domainerrors.ErrDeadlinePassed
	}

	voted, err := uc.Repo.HasVoted(ctx, cmd.ProposalID, cmd.VoterID)
	if err != nil {
		return CastVoteResult{}, fmt.Errorf("%w: lookup voter record: %v", domainerrors.ErrExternalService, err)
	}
	if voted {
		return CastVoteResult{}, domainerrors.ErrDuplicateVote
	}

	if cmd.Direction == entities.VoteFor {
		proposal.VotesFor += weight
	} else {
		proposal.VotesAgainst += weight
	}
	proposal.UpdatedAt = now

	vote := entities.Vote{
		ProposalID: cmd.ProposalID,
		VoterID:    strings.TrimSpace(cmd.VoterID),
		Weight:     weight,
		Direction:  cmd.Direction,
		CreatedAt:  now,
	}
	if err := uc.Repo.RecordVote(ctx, vote, proposal); err != nil {
		if errorsIsDomain(err) {
			return CastVoteResult{}, err
		}
		logger.Error("vote record failed",
			"event", "launchpad_vote_record_failed",
			"module", "listing-launchpad/launchpad-service",
			"layer", "application",
			"proposal_id", cmd.ProposalID,
			"voter_id", vote.VoterID,
			"error", err.Error(),
		)
		return CastVoteResult{}, fmt.Errorf("%w: record vote: %v", domainerrors.ErrExternalService, err)
	}

	logger.Info("vote cast",
		"event", "launchpad_vote_cast",
		"module", "listing-launchpad/launchpad-service",
		"layer", "application",
		"proposal_id", cmd.ProposalID,
		"voter_id", vote.VoterID,
		"direction", string(vote.Direction),
		"weight", weight,
		"votes_for", proposal.VotesFor,
		"votes_against", proposal.VotesAgainst,
	)
	uc.emit(ctx, events.TopicGovernance, uc.newEnvelope(events.TypeVoteCast, proposal.ProposalID, map[string]any{
		"proposal_id":   proposal.ProposalID,
		"voter_id":      vote.VoterID,
		"direction":     string(vote.Direction),
		"weight":        weight,
		"votes_for":     proposal.VotesFor,
		"votes_against": proposal.VotesAgainst,
	}))

	return CastVoteResult{
		Proposal: proposal,
		Vote:     vote,
		Outcome:  proposal.Evaluate(),
	}, nil
}
