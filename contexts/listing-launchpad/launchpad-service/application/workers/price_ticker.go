package workers

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	application "launchpad/contexts/listing-launchpad/launchpad-service/application"
	"launchpad/contexts/listing-launchpad/launchpad-service/domain/entities"
	domainerrors "launchpad/contexts/listing-launchpad/launchpad-service/domain/errors"
	"launchpad/contexts/listing-launchpad/launchpad-service/ports"
	"launchpad/internal/shared/events"

	"github.com/google/uuid"
)

const DefaultTickInterval = time.Second

// TickerSupervisor runs one price ticker per active auction. Each ticker
// samples the Dutch-auction price on a fixed interval and publishes a
// price_tick event scoped to its proposal until it is cancelled by the
// auction close or the window elapses, in which case it requests the close
// itself. A ticker never outlives its proposal's active-auction window.
type TickerSupervisor struct {
	Hub      ports.EventBroadcaster
	Closer   ports.AuctionCloser
	Reader   ports.ProposalReader
	Clock    ports.Clock
	Interval time.Duration
	Logger   *slog.Logger

	mu      sync.Mutex
	cancels map[string]context.CancelFunc
	wg      sync.WaitGroup
}

func NewTickerSupervisor(
	hub ports.EventBroadcaster,
	closer ports.AuctionCloser,
	reader ports.ProposalReader,
	clock ports.Clock,
	interval time.Duration,
	logger *slog.Logger,
) *TickerSupervisor {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &TickerSupervisor{
		Hub:      hub,
		Closer:   closer,
		Reader:   reader,
		Clock:    clock,
		Interval: interval,
		Logger:   logger,
		cancels:  make(map[string]context.CancelFunc),
	}
}

// Start launches a ticker for the proposal's auction window. Restarting an
// already-ticking proposal replaces its ticker.
func (s *TickerSupervisor) Start(proposal entities.Proposal) {
	ctx, cancel := context.WithCancel(context.Background())

	s.mu.Lock()
	if existing, ok := s.cancels[proposal.ProposalID]; ok {
		existing()
	}
	s.cancels[proposal.ProposalID] = cancel
	s.mu.Unlock()

	s.wg.Add(1)
	go s.run(ctx, proposal)
}

// Stop cancels the proposal's ticker. Safe to call from within the auction
// close path; it signals and returns without waiting.
func (s *TickerSupervisor) Stop(proposalID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cancel, ok := s.cancels[proposalID]; ok {
		cancel()
		delete(s.cancels, proposalID)
	}
}

// Shutdown cancels every ticker and waits for the goroutines to drain.
func (s *TickerSupervisor) Shutdown() {
	s.mu.Lock()
	for id, cancel := range s.cancels {
		cancel()
		delete(s.cancels, id)
	}
	s.mu.Unlock()
	s.wg.Wait()
}

func (s *TickerSupervisor) run(ctx context.Context, proposal entities.Proposal) {
	defer s.wg.Done()

	logger := application.ResolveLogger(s.Logger)
	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	logger.Info("price ticker started",
		"event", "launchpad_ticker_started",
		"module", "listing-launchpad/launchpad-service",
		"layer", "worker",
		"proposal_id", proposal.ProposalID,
		"interval", s.Interval.String(),
	)

	for {
		select {
		case <-ctx.Done():
			logger.Info("price ticker cancelled",
				"event", "launchpad_ticker_cancelled",
				"module", "listing-launchpad/launchpad-service",
				"layer", "worker",
				"proposal_id", proposal.ProposalID,
			)
			return
		case <-ticker.C:
			now := s.now()
			proposal = s.reload(ctx, proposal, logger)
			s.publishTick(proposal, now)
			if proposal.AuctionElapsed(now) && s.requestClose(proposal, logger) {
				return
			}
		}
	}
}

// reload refreshes the cached proposal so each tick reports the supply and
// raise figures as bids land. A read failure keeps the last-known snapshot
// and the tick still fires.
func (s *TickerSupervisor) reload(ctx context.Context, cached entities.Proposal, logger *slog.Logger) entities.Proposal {
	if s.Reader == nil {
		return cached
	}
	readCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	fresh, err := s.Reader.GetProposal(readCtx, cached.ProposalID)
	if err != nil {
		logger.Warn("ticker proposal reload failed",
			"event", "launchpad_ticker_reload_failed",
			"module", "listing-launchpad/launchpad-service",
			"layer", "worker",
			"proposal_id", cached.ProposalID,
			"error", err.Error(),
		)
		return cached
	}
	return fresh
}

func (s *TickerSupervisor) publishTick(proposal entities.Proposal, now time.Time) {
	if s.Hub == nil {
		return
	}
	envelope := events.Envelope{
		EventID:       uuid.NewString(),
		EventType:     events.TypePriceTick,
		OccurredAtUTC: now,
		EntityType:    "proposal",
		EntityID:      proposal.ProposalID,
		Payload: map[string]any{
			"proposal_id":            proposal.ProposalID,
			"current_price":          proposal.CurrentPrice(now),
			"time_remaining_seconds": int64(proposal.AuctionTimeRemaining(now) / time.Second),
			"supply_remaining":       proposal.SupplyRemaining,
		},
	}
	s.Hub.Broadcast(events.TopicPrices, proposal.ProposalID, envelope)
	s.Hub.Broadcast(events.TopicAuctions, proposal.ProposalID, envelope)
}

// requestClose drives the elapsed auction through the state machine. A
// transition error means another caller closed it first, which counts as
// done; any other failure is retried on the next tick.
func (s *TickerSupervisor) requestClose(proposal entities.Proposal, logger *slog.Logger) bool {
	if s.Closer == nil {
		return true
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := s.Closer.CloseAuction(ctx, proposal.ProposalID)
	if err != nil && !errors.Is(err, domainerrors.ErrInvalidTransition) {
		logger.Error("ticker auction close failed",
			"event", "launchpad_ticker_close_failed",
			"module", "listing-launchpad/launchpad-service",
			"layer", "worker",
			"proposal_id", proposal.ProposalID,
			"error", err.Error(),
		)
		return false
	}
	logger.Info("ticker closed elapsed auction",
		"event", "launchpad_ticker_closed_auction",
		"module", "listing-launchpad/launchpad-service",
		"layer", "worker",
		"proposal_id", proposal.ProposalID,
	)
	return true
}

func (s *TickerSupervisor) now() time.Time {
	if s.Clock != nil {
		return s.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
