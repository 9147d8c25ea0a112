package queries

import (
	"context"
	"time"

	"launchpad/contexts/listing-launchpad/launchpad-service/domain/entities"
	"launchpad/contexts/listing-launchpad/launchpad-service/ports"
)

// ProposalStatusView is the read model for getStatus: proposal state plus
// live auction figures while the IPO is running.
type ProposalStatusView struct {
	Proposal           entities.Proposal
	TotalVotes         int64
	QuorumReached      bool
	ApprovalPercentage float64
	Outcome            entities.VoteOutcome
	CurrentPrice       float64
	TimeRemaining      time.Duration
	SharesSold         int64
}

type StatusUseCase struct {
	Repo  ports.ProposalRepository
	Clock ports.Clock
}

func (uc StatusUseCase) GetStatus(ctx context.Context, proposalID string) (ProposalStatusView, error) {
	proposal, err := uc.Repo.GetProposal(ctx, proposalID)
	if err != nil {
		return ProposalStatusView{}, err
	}
	return uc.buildView(proposal), nil
}

func (uc StatusUseCase) ListProposals(
	ctx context.Context,
	status entities.ProposalStatus,
	page int,
	pageSize int,
) ([]ProposalStatusView, int64, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	proposals, total, err := uc.Repo.ListProposals(ctx, status, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, 0, err
	}
	views := make([]ProposalStatusView, 0, len(proposals))
	for _, proposal := range proposals {
		views = append(views, uc.buildView(proposal))
	}
	return views, total, nil
}

func (uc StatusUseCase) ListAllocations(ctx context.Context, proposalID string) ([]entities.AllocationResult, error) {
	if _, err := uc.Repo.GetProposal(ctx, proposalID); err != nil {
		return nil, err
	}
	return uc.Repo.ListAllocations(ctx, proposalID)
}

func (uc StatusUseCase) buildView(proposal entities.Proposal) ProposalStatusView {
	now := time.Now().UTC()
	if uc.Clock != nil {
		now = uc.Clock.Now().UTC()
	}

	total := proposal.VotesFor + proposal.VotesAgainst
	approval := 0.0
	if total > 0 {
		approval = float64(proposal.VotesFor) / float64(total) * 100
	}

	view := ProposalStatusView{
		Proposal:           proposal,
		TotalVotes:         total,
		QuorumReached:      proposal.QuorumReached(),
		ApprovalPercentage: approval,
		Outcome:            proposal.Evaluate(),
		SharesSold:         proposal.TotalSupply - proposal.SupplyRemaining,
	}
	if proposal.Status == entities.StatusIPOActive {
		view.CurrentPrice = proposal.CurrentPrice(now)
		view.TimeRemaining = proposal.AuctionTimeRemaining(now)
	}
	if proposal.Status == entities.StatusIPOCompleted {
		view.CurrentPrice = proposal.FinalPrice
	}
	return view
}
