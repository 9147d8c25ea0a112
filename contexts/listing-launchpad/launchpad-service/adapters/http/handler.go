package httpadapter

import (
	"context"
	"log/slog"

	"launchpad/contexts/listing-launchpad/launchpad-service/application/commands"
	"launchpad/contexts/listing-launchpad/launchpad-service/application/queries"
	"launchpad/contexts/listing-launchpad/launchpad-service/domain/entities"
	httptransport "launchpad/contexts/listing-launchpad/launchpad-service/transport/http"
)

type Handler struct {
	Proposals *commands.ProposalUseCase
	Status    queries.StatusUseCase
	Logger    *slog.Logger
}

func (h Handler) CreateProposalHandler(
	ctx context.Context,
	userID string,
	req httptransport.CreateProposalRequest,
) (httptransport.ProposalResponse, error) {
	proposal, err := h.Proposals.CreateProposal(ctx, commands.CreateProposalCommand{
		ListingID:      req.ListingID,
		CreatorID:      userID,
		Title:          req.Title,
		Description:    req.Description,
		QuorumRequired: req.QuorumRequired,
	})
	if err != nil {
		return httptransport.ProposalResponse{}, err
	}
	return mapProposal(proposal), nil
}

func (h Handler) SubmitProposalHandler(
	ctx context.Context,
	proposalID string,
	req httptransport.SubmitProposalRequest,
) (httptransport.ProposalResponse, error) {
	proposal, err := h.Proposals.Submit(ctx, commands.SubmitProposalCommand{
		ProposalID:         proposalID,
		VotingDurationDays: req.VotingDurationDays,
	})
	if err != nil {
		return httptransport.ProposalResponse{}, err
	}
	return mapProposal(proposal), nil
}

func (h Handler) CastVoteHandler(
	ctx context.Context,
	proposalID string,
	userID string,
	req httptransport.CastVoteRequest,
) (httptransport.VoteResponse, error) {
	result, err := h.Proposals.CastVote(ctx, commands.CastVoteCommand{
		ProposalID: proposalID,
		VoterID:    userID,
		Weight:     req.Weight,
		Direction:  entities.VoteDirection(req.Direction),
	})
	if err != nil {
		return httptransport.VoteResponse{}, err
	}
	return httptransport.VoteResponse{
		ProposalID:   result.Vote.ProposalID,
		VoterID:      result.Vote.VoterID,
		Direction:    string(result.Vote.Direction),
		Weight:       result.Vote.Weight,
		VotesFor:     result.Proposal.VotesFor,
		VotesAgainst: result.Proposal.VotesAgainst,
		Outcome:      string(result.Outcome),
	}, nil
}

func (h Handler) CloseVotingHandler(ctx context.Context, proposalID string) (httptransport.ProposalResponse, error) {
	proposal, err := h.Proposals.CloseVoting(ctx, proposalID)
	if err != nil {
		return httptransport.ProposalResponse{}, err
	}
	return mapProposal(proposal), nil
}

func (h Handler) StartAuctionHandler(
	ctx context.Context,
	proposalID string,
	req httptransport.StartAuctionRequest,
) (httptransport.ProposalResponse, error) {
	proposal, err := h.Proposals.StartAuction(ctx, commands.StartAuctionCommand{
		ProposalID:      proposalID,
		StartPrice:      req.StartPrice,
		ReservePrice:    req.ReservePrice,
		TotalSupply:     req.TotalSupply,
		DurationSeconds: req.DurationSeconds,
	})
	if err != nil {
		return httptransport.ProposalResponse{}, err
	}
	return mapProposal(proposal), nil
}

func (h Handler) PlaceBidHandler(
	ctx context.Context,
	proposalID string,
	userID string,
	req httptransport.PlaceBidRequest,
) (httptransport.AllocationResponse, error) {
	result, err := h.Proposals.PlaceBid(ctx, commands.PlaceBidCommand{
		ProposalID:        proposalID,
		BidderID:          userID,
		RequestedQuantity: req.RequestedQuantity,
		MaxPrice:          req.MaxPrice,
	})
	if err != nil {
		return httptransport.AllocationResponse{}, err
	}
	return httptransport.AllocationResponse{
		AllocationID:    result.Allocation.AllocationID,
		ProposalID:      result.Allocation.ProposalID,
		BidderID:        result.Allocation.BidderID,
		GrantedQuantity: result.Allocation.GrantedQuantity,
		PricePaid:       result.Allocation.PricePaid,
		TotalCost:       result.Allocation.Cost(),
		SupplyRemaining: result.Proposal.SupplyRemaining,
		ProposalStatus:  string(result.Proposal.Status),
		CreatedAt:       result.Allocation.CreatedAt,
	}, nil
}

func (h Handler) CloseAuctionHandler(ctx context.Context, proposalID string) (httptransport.ProposalResponse, error) {
	proposal, err := h.Proposals.CloseAuction(ctx, proposalID)
	if err != nil {
		return httptransport.ProposalResponse{}, err
	}
	return mapProposal(proposal), nil
}

func (h Handler) ProposalStatusHandler(ctx context.Context, proposalID string) (httptransport.ProposalStatusResponse, error) {
	view, err := h.Status.GetStatus(ctx, proposalID)
	if err != nil {
		return httptransport.ProposalStatusResponse{}, err
	}
	return mapStatusView(view), nil
}

func (h Handler) ListProposalsHandler(
	ctx context.Context,
	status string,
	page int,
	pageSize int,
) (httptransport.ProposalListResponse, error) {
	views, total, err := h.Status.ListProposals(ctx, entities.ProposalStatus(status), page, pageSize)
	if err != nil {
		return httptransport.ProposalListResponse{}, err
	}
	items := make([]httptransport.ProposalStatusResponse, 0, len(views))
	for _, view := range views {
		items = append(items, mapStatusView(view))
	}
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	return httptransport.ProposalListResponse{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (h Handler) ListAllocationsHandler(ctx context.Context, proposalID string) (httptransport.AllocationListResponse, error) {
	allocations, err := h.Status.ListAllocations(ctx, proposalID)
	if err != nil {
		return httptransport.AllocationListResponse{}, err
	}
	items := make([]httptransport.AllocationResponse, 0, len(allocations))
	for _, allocation := range allocations {
		items = append(items, httptransport.AllocationResponse{
			AllocationID:    allocation.AllocationID,
			ProposalID:      allocation.ProposalID,
			BidderID:        allocation.BidderID,
			GrantedQuantity: allocation.GrantedQuantity,
			PricePaid:       allocation.PricePaid,
			TotalCost:       allocation.Cost(),
			CreatedAt:       allocation.CreatedAt,
		})
	}
	return httptransport.AllocationListResponse{
		ProposalID: proposalID,
		Items:      items,
	}, nil
}

func mapProposal(p entities.Proposal) httptransport.ProposalResponse {
	return httptransport.ProposalResponse{
		ProposalID:      p.ProposalID,
		ListingID:       p.ListingID,
		CreatorID:       p.CreatorID,
		Title:           p.Title,
		Description:     p.Description,
		Status:          string(p.Status),
		VotesFor:        p.VotesFor,
		VotesAgainst:    p.VotesAgainst,
		QuorumRequired:  p.QuorumRequired,
		VotingDeadline:  p.VotingDeadline,
		StartPrice:      p.StartPrice,
		ReservePrice:    p.ReservePrice,
		TotalSupply:     p.TotalSupply,
		SupplyRemaining: p.SupplyRemaining,
		TotalRaised:     p.TotalRaised,
		FinalPrice:      p.FinalPrice,
		AuctionStart:    p.AuctionStart,
		AuctionEnd:      p.AuctionEnd,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func mapStatusView(view queries.ProposalStatusView) httptransport.ProposalStatusResponse {
	return httptransport.ProposalStatusResponse{
		Proposal:             mapProposal(view.Proposal),
		TotalVotes:           view.TotalVotes,
		QuorumReached:        view.QuorumReached,
		ApprovalPercentage:   view.ApprovalPercentage,
		Outcome:              string(view.Outcome),
		CurrentPrice:         view.CurrentPrice,
		TimeRemainingSeconds: int64(view.TimeRemaining.Seconds()),
		SharesSold:           view.SharesSold,
	}
}
