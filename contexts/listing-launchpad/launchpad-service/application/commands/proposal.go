package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	application "launchpad/contexts/listing-launchpad/launchpad-service/application"
	"launchpad/contexts/listing-launchpad/launchpad-service/domain/entities"
	domainerrors "launchpad/contexts/listing-launchpad/launchpad-service/domain/errors"
	"launchpad/contexts/listing-launchpad/launchpad-service/ports"
	"launchpad/internal/shared/events"
)

// Launchpad defaults, matching the network's governance parameters.
const (
	DefaultQuorumRequired  = 451
	DefaultVotingDays      = 7
	DefaultStartPrice      = 100.0
	DefaultReservePrice    = 10.0
	DefaultTotalSupply     = 10000
	DefaultAuctionDuration = 7 * 24 * time.Hour
	MinTitleLength         = 5
	MaxTitleLength         = 200
	MinDescriptionLength   = 50
	MaxDescriptionLength   = 10000
)

// TickerSupervisor is the lifecycle hook into the per-auction price ticker:
// started on the transition into ipo_active, cancelled on close.
type TickerSupervisor interface {
	Start(proposal entities.Proposal)
	Stop(proposalID string)
}

// ProposalUseCase is the proposal state machine. It drives the quorum tally
// during voting, hands control to the auction engine on approval, and emits
// lifecycle events through the broadcast hub. Every mutating operation runs
// under the per-proposal lock; storage is saved before any event is emitted.
type ProposalUseCase struct {
	Repo        ports.ProposalRepository
	Clock       ports.Clock
	IDGen       ports.IDGenerator
	Locks       *application.ProposalLocks
	Broadcaster ports.EventBroadcaster
	Relay       ports.NotificationRelay
	Tickers     TickerSupervisor
	Logger      *slog.Logger
}

type CreateProposalCommand struct {
	ListingID      string
	CreatorID      string
	Title          string
	Description    string
	QuorumRequired int64
}

type SubmitProposalCommand struct {
	ProposalID         string
	VotingDurationDays int
}

type StartAuctionCommand struct {
	ProposalID      string
	StartPrice      float64
	ReservePrice    float64
	TotalSupply     int64
	DurationSeconds int64
}

// CreateProposal registers a draft for a listing. Drafts are inert until
// submitted for voting.
func (uc *ProposalUseCase) CreateProposal(ctx context.Context, cmd CreateProposalCommand) (entities.Proposal, error) {
	logger := application.ResolveLogger(uc.Logger)

	title := strings.TrimSpace(cmd.Title)
	description := strings.TrimSpace(cmd.Description)
	if strings.TrimSpace(cmd.ListingID) == "" || strings.TrimSpace(cmd.CreatorID) == "" {
		return entities.Proposal{}, fmt.Errorf("%w: listing id and creator id are required", domainerrors.ErrInvalidInput)
	}
	if len(title) < MinTitleLength || len(title) > MaxTitleLength {
		return entities.Proposal{}, fmt.Errorf("%w: title must be between %d and %d characters",
			domainerrors.ErrInvalidInput, MinTitleLength, MaxTitleLength)
	}
	if len(description) < MinDescriptionLength || len(description) > MaxDescriptionLength {
		return entities.Proposal{}, fmt.Errorf("%w: description must be between %d and %d characters",
			domainerrors.ErrInvalidInput, MinDescriptionLength, MaxDescriptionLength)
	}

	quorum := cmd.QuorumRequired
	if quorum <= 0 {
		quorum = DefaultQuorumRequired
	}

	now := uc.now()
	proposal := entities.Proposal{
		ProposalID:     uc.newID(ctx),
		ListingID:      strings.TrimSpace(cmd.ListingID),
		CreatorID:      strings.TrimSpace(cmd.CreatorID),
		Title:          title,
		Description:    description,
		Status:         entities.StatusDraft,
		QuorumRequired: quorum,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.saveProposal(ctx, proposal); err != nil {
		return entities.Proposal{}, err
	}

	logger.Info("proposal draft created",
		"event", "launchpad_proposal_created",
		"module", "listing-launchpad/launchpad-service",
		"layer", "application",
		"proposal_id", proposal.ProposalID,
		"listing_id", proposal.ListingID,
	)
	uc.emit(ctx, events.TopicGovernance, uc.newEnvelope(events.TypeProposalCreated, proposal.ProposalID, proposalEventPayload(proposal)))
	return proposal, nil
}

// Submit opens community voting on a draft. The voting deadline is fixed at
// submission time.
func (uc *ProposalUseCase) Submit(ctx context.Context, cmd SubmitProposalCommand) (entities.Proposal, error) {
	logger := application.ResolveLogger(uc.Logger)

	unlock := uc.Locks.Lock(cmd.ProposalID)
	defer unlock()

	proposal, err := uc.loadProposal(ctx, cmd.ProposalID)
	if err != nil {
		return entities.Proposal{}, err
	}
	if proposal.Status != entities.StatusDraft {
		return entities.Proposal{}, domainerrors.NewTransitionError(string(proposal.Status), string(entities.StatusVoting))
	}

	days := cmd.VotingDurationDays
	if days <= 0 {
		days = DefaultVotingDays
	}

	now := uc.now()
	deadline := now.Add(time.Duration(days) * 24 * time.Hour)
	proposal.Status = entities.StatusVoting
	proposal.VotingDeadline = &deadline
	proposal.UpdatedAt = now

	if err := uc.saveProposal(ctx, proposal); err != nil {
		return entities.Proposal{}, err
	}

	logger.Info("proposal submitted for voting",
		"event", "launchpad_proposal_submitted",
		"module", "listing-launchpad/launchpad-service",
		"layer", "application",
		"proposal_id", proposal.ProposalID,
		"voting_deadline", deadline,
	)
	uc.emit(ctx, events.TopicGovernance, uc.newEnvelope(events.TypeProposalSubmitted, proposal.ProposalID, proposalEventPayload(proposal)))
	return proposal, nil
}

// CloseVoting tallies the quorum vote and transitions the proposal to
// approved or rejected. It is allowed once the deadline has passed, or
// earlier once quorum is already reached; closing before either is refused.
// A proposal whose deadline passes without quorum is rejected.
func (uc *ProposalUseCase) CloseVoting(ctx context.Context, proposalID string) (entities.Proposal, error) {
	logger := application.ResolveLogger(uc.Logger)

	unlock := uc.Locks.Lock(proposalID)
	defer unlock()

	proposal, err := uc.loadProposal(ctx, proposalID)
	if err != nil {
		return entities.Proposal{}, err
	}
	if proposal.Status != entities.StatusVoting {
		return entities.Proposal{}, fmt.Errorf("%w: proposal is %s, not voting", domainerrors.ErrInvalidState, proposal.Status)
	}

	now := uc.now()
	deadlinePassed := proposal.VotingDeadline != nil && now.After(*proposal.VotingDeadline)
	outcome := proposal.Evaluate()
	if !deadlinePassed && outcome == entities.OutcomeStillVoting {
		return entities.Proposal{}, domainerrors.ErrVotingStillOpen
	}

	eventType := events.TypeProposalRejected
	proposal.Status = entities.StatusRejected
	if outcome == entities.OutcomeApproved {
		proposal.Status = entities.StatusApproved
		eventType = events.TypeProposalApproved
	}
	proposal.UpdatedAt = now

	if err := uc.saveProposal(ctx, proposal); err != nil {
		return entities.Proposal{}, err
	}

	logger.Info("proposal voting closed",
		"event", "launchpad_voting_closed",
		"module", "listing-launchpad/launchpad-service",
		"layer", "application",
		"proposal_id", proposal.ProposalID,
		"outcome", string(proposal.Status),
		"votes_for", proposal.VotesFor,
		"votes_against", proposal.VotesAgainst,
	)
	uc.emit(ctx, events.TopicGovernance, uc.newEnvelope(eventType, proposal.ProposalID, proposalEventPayload(proposal)))
	return proposal, nil
}

// StartAuction opens the Dutch-auction IPO window on an approved proposal and
// starts its price ticker.
func (uc *ProposalUseCase) StartAuction(ctx context.Context, cmd StartAuctionCommand) (entities.Proposal, error) {
	logger := application.ResolveLogger(uc.Logger)

	startPrice := cmd.StartPrice
	reservePrice := cmd.ReservePrice
	totalSupply := cmd.TotalSupply
	duration := time.Duration(cmd.DurationSeconds) * time.Second
	if startPrice <= 0 {
		startPrice = DefaultStartPrice
	}
	if reservePrice <= 0 {
		reservePrice = DefaultReservePrice
	}
	if totalSupply <= 0 {
		totalSupply = DefaultTotalSupply
	}
	if duration <= 0 {
		duration = DefaultAuctionDuration
	}
	if reservePrice >= startPrice {
		return entities.Proposal{}, fmt.Errorf("%w: reserve price must be below start price", domainerrors.ErrInvalidInput)
	}

	unlock := uc.Locks.Lock(cmd.ProposalID)
	defer unlock()

	proposal, err := uc.loadProposal(ctx, cmd.ProposalID)
	if err != nil {
		return entities.Proposal{}, err
	}
	if proposal.Status != entities.StatusApproved {
		return entities.Proposal{}, domainerrors.NewTransitionError(string(proposal.Status), string(entities.StatusIPOActive))
	}

	now := uc.now()
	end := now.Add(duration)
	proposal.Status = entities.StatusIPOActive
	proposal.StartPrice = startPrice
	proposal.ReservePrice = reservePrice
	proposal.TotalSupply = totalSupply
	proposal.SupplyRemaining = totalSupply
	proposal.TotalRaised = 0
	proposal.AuctionStart = &now
	proposal.AuctionEnd = &end
	proposal.UpdatedAt = now

	if err := uc.saveProposal(ctx, proposal); err != nil {
		return entities.Proposal{}, err
	}

	if uc.Tickers != nil {
		uc.Tickers.Start(proposal)
	}

	logger.Info("dutch auction started",
		"event", "launchpad_auction_started",
		"module", "listing-launchpad/launchpad-service",
		"layer", "application",
		"proposal_id", proposal.ProposalID,
		"start_price", startPrice,
		"reserve_price", reservePrice,
		"total_supply", totalSupply,
		"auction_end", end,
	)
	uc.emit(ctx, events.TopicAuctions, uc.newEnvelope(events.TypeAuctionStarted, proposal.ProposalID, auctionEventPayload(proposal, startPrice)))
	return proposal, nil
}

// CloseAuction completes the IPO. Valid only from ipo_active, and only once
// the window has elapsed or the supply is exhausted. The price ticker is
// cancelled as part of the transition.
func (uc *ProposalUseCase) CloseAuction(ctx context.Context, proposalID string) (entities.Proposal, error) {
	unlock := uc.Locks.Lock(proposalID)
	defer unlock()

	proposal, err := uc.loadProposal(ctx, proposalID)
	if err != nil {
		return entities.Proposal{}, err
	}
	return uc.closeAuctionLocked(ctx, proposal)
}

// closeAuctionLocked applies the ipo_active -> ipo_completed transition.
// Callers must hold the proposal lock.
func (uc *ProposalUseCase) closeAuctionLocked(ctx context.Context, proposal entities.Proposal) (entities.Proposal, error) {
	logger := application.ResolveLogger(uc.Logger)

	if proposal.Status != entities.StatusIPOActive {
		return entities.Proposal{}, domainerrors.NewTransitionError(string(proposal.Status), string(entities.StatusIPOCompleted))
	}

	now := uc.now()
	if proposal.SupplyRemaining > 0 && !proposal.AuctionElapsed(now) {
		return entities.Proposal{}, fmt.Errorf("%w: auction window is still open and supply remains", domainerrors.ErrInvalidState)
	}

	sold := proposal.TotalSupply - proposal.SupplyRemaining
	finalPrice := proposal.ReservePrice
	if sold > 0 {
		finalPrice = proposal.TotalRaised / float64(sold)
	}

	proposal.Status = entities.StatusIPOCompleted
	proposal.FinalPrice = finalPrice
	proposal.UpdatedAt = now

	if err := uc.saveProposal(ctx, proposal); err != nil {
		return entities.Proposal{}, err
	}

	if uc.Tickers != nil {
		uc.Tickers.Stop(proposal.ProposalID)
	}

	logger.Info("dutch auction closed",
		"event", "launchpad_auction_closed",
		"module", "listing-launchpad/launchpad-service",
		"layer", "application",
		"proposal_id", proposal.ProposalID,
		"shares_sold", sold,
		"final_price", finalPrice,
		"total_raised", proposal.TotalRaised,
	)
	uc.emit(ctx, events.TopicAuctions, uc.newEnvelope(events.TypeAuctionClosed, proposal.ProposalID, auctionClosedPayload(proposal, sold)))
	return proposal, nil
}

func (uc *ProposalUseCase) loadProposal(ctx context.Context, proposalID string) (entities.Proposal, error) {
	if strings.TrimSpace(proposalID) == "" {
		return entities.Proposal{}, fmt.Errorf("%w: proposal id is required", domainerrors.ErrInvalidInput)
	}
	return uc.Repo.GetProposal(ctx, proposalID)
}

// saveProposal persists before any acknowledgement; a storage failure aborts
// the mutation with no partial commit.
func (uc *ProposalUseCase) saveProposal(ctx context.Context, proposal entities.Proposal) error {
	if err := uc.Repo.SaveProposal(ctx, proposal); err != nil {
		logger := application.ResolveLogger(uc.Logger)
		logger.Error("proposal save failed",
			"event", "launchpad_proposal_save_failed",
			"module", "listing-launchpad/launchpad-service",
			"layer", "application",
			"proposal_id", proposal.ProposalID,
			"error", err.Error(),
		)
		return fmt.Errorf("%w: save proposal: %v", domainerrors.ErrExternalService, err)
	}
	return nil
}

func proposalEventPayload(p entities.Proposal) map[string]any {
	return map[string]any{
		"proposal_id":     p.ProposalID,
		"listing_id":      p.ListingID,
		"title":           p.Title,
		"status":          string(p.Status),
		"votes_for":       p.VotesFor,
		"votes_against":   p.VotesAgainst,
		"quorum_required": p.QuorumRequired,
	}
}

func auctionEventPayload(p entities.Proposal, currentPrice float64) map[string]any {
	return map[string]any{
		"proposal_id":      p.ProposalID,
		"listing_id":       p.ListingID,
		"status":           string(p.Status),
		"current_price":    currentPrice,
		"start_price":      p.StartPrice,
		"reserve_price":    p.ReservePrice,
		"supply_remaining": p.SupplyRemaining,
		"total_supply":     p.TotalSupply,
	}
}

func auctionClosedPayload(p entities.Proposal, sold int64) map[string]any {
	return map[string]any{
		"proposal_id":  p.ProposalID,
		"listing_id":   p.ListingID,
		"status":       string(p.Status),
		"shares_sold":  sold,
		"final_price":  p.FinalPrice,
		"total_raised": p.TotalRaised,
	}
}
