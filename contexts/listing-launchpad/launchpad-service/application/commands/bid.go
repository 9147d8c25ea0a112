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

type PlaceBidCommand struct {
	ProposalID        string
	BidderID          string
	RequestedQuantity int64
	MaxPrice          float64
}

type PlaceBidResult struct {
	Allocation entities.AllocationResult
	Proposal   entities.Proposal
}

// PlaceBid admits a bid against the shrinking auction supply. The admission
// check, the supply decrement, and the allocation record form one critical
// section under the per-proposal lock, so the sum of grants can never exceed
// the total supply no matter how many callers race. A bid that exhausts the
// supply closes the auction immediately; a bid arriving after the window has
// elapsed closes the auction and is refused.
func (uc *ProposalUseCase) PlaceBid(ctx context.Context, cmd PlaceBidCommand) (PlaceBidResult, error) {
	logger := application.ResolveLogger(uc.Logger)

	if strings.TrimSpace(cmd.BidderID) == "" {
		return PlaceBidResult{}, fmt.Errorf("%w: bidder id is required", domainerrors.ErrInvalidInput)
	}
	if cmd.RequestedQuantity <= 0 {
		return PlaceBidResult{}, fmt.Errorf("%w: requested quantity must be positive", domainerrors.ErrInvalidInput)
	}
	if cmd.MaxPrice <= 0 {
		return PlaceBidResult{}, fmt.Errorf("%w: max price must be positive", domainerrors.ErrInvalidInput)
	}

	unlock := uc.Locks.Lock(cmd.ProposalID)
	defer unlock()

	proposal, err := uc.loadProposal(ctx, cmd.ProposalID)
	if err != nil {
		return PlaceBidResult{}, err
	}
	if proposal.Status != entities.StatusIPOActive {
		return PlaceBidResult{}, fmt.Errorf("%w: proposal is %s, not in an active auction",
			domainerrors.ErrInvalidState, proposal.Status)
	}

	now := uc.now()
	if proposal.AuctionElapsed(now) {
		if _, closeErr := uc.closeAuctionLocked(ctx, proposal); closeErr != nil {
			logger.Warn("auction close after elapsed window failed",
				"event", "launchpad_bid_autoclose_failed",
				"module", "listing-launchpad/launchpad-service",
				"layer", "application",
				"proposal_id", cmd.ProposalID,
				"error", closeErr.Error(),
			)
		}
		return PlaceBidResult{}, fmt.Errorf("%w: auction window has ended", domainerrors.ErrInvalidState)
	}

	price := proposal.CurrentPrice(now)
	if cmd.MaxPrice < price {
		return PlaceBidResult{}, fmt.Errorf("%w: current price is %.4f, bid ceiling is %.4f",
			domainerrors.ErrPriceTooLow, price, cmd.MaxPrice)
	}

	if proposal.SupplyRemaining <= 0 {
		return PlaceBidResult{}, domainerrors.ErrSoldOut
	}
	granted := cmd.RequestedQuantity
	if granted > proposal.SupplyRemaining {
		granted = proposal.SupplyRemaining
	}

	proposal.SupplyRemaining -= granted
	proposal.TotalRaised += float64(granted) * price
	proposal.UpdatedAt = now

	allocation := entities.AllocationResult{
		AllocationID:    uc.newID(ctx),
		ProposalID:      proposal.ProposalID,
		BidderID:        strings.TrimSpace(cmd.BidderID),
		GrantedQuantity: granted,
		PricePaid:       price,
		CreatedAt:       now,
	}
	if err := uc.Repo.RecordAllocation(ctx, allocation, proposal); err != nil {
		logger.Error("allocation record failed",
			"event", "launchpad_allocation_record_failed",
			"module", "listing-launchpad/launchpad-service",
			"layer", "application",
			"proposal_id", proposal.ProposalID,
			"bidder_id", allocation.BidderID,
			"error", err.Error(),
		)
		return PlaceBidResult{}, fmt.Errorf("%w: record allocation: %v", domainerrors.ErrExternalService, err)
	}

	logger.Info("bid allocated",
		"event", "launchpad_bid_allocated",
		"module", "listing-launchpad/launchpad-service",
		"layer", "application",
		"proposal_id", proposal.ProposalID,
		"bidder_id", allocation.BidderID,
		"granted", granted,
		"price_paid", price,
		"supply_remaining", proposal.SupplyRemaining,
	)

	bidPayload := map[string]any{
		"proposal_id":      proposal.ProposalID,
		"bidder_id":        allocation.BidderID,
		"granted_quantity": granted,
		"price_paid":       price,
		"supply_remaining": proposal.SupplyRemaining,
	}
	uc.emit(ctx, events.TopicAuctions, uc.newEnvelope(events.TypeBidPlaced, proposal.ProposalID, bidPayload))
	uc.emit(ctx, events.TopicTrades, uc.newEnvelope(events.TypeTradeExecuted, proposal.ProposalID, bidPayload))
	if uc.Broadcaster != nil {
		uc.Broadcaster.SendToUser(allocation.BidderID, uc.newEnvelope(events.TypeTradeExecuted, proposal.ProposalID, bidPayload))
	}

	if proposal.SupplyRemaining == 0 {
		closed, closeErr := uc.closeAuctionLocked(ctx, proposal)
		if closeErr != nil {
			logger.Warn("auction close on sellout failed",
				"event", "launchpad_bid_sellout_close_failed",
				"module", "listing-launchpad/launchpad-service",
				"layer", "application",
				"proposal_id", proposal.ProposalID,
				"error", closeErr.Error(),
			)
		} else {
			proposal = closed
		}
	}

	return PlaceBidResult{Allocation: allocation, Proposal: proposal}, nil
}
