package commands

import (
	"context"
	"errors"
	"time"

	application "launchpad/contexts/listing-launchpad/launchpad-service/application"
	domainerrors "launchpad/contexts/listing-launchpad/launchpad-service/domain/errors"
	"launchpad/internal/shared/events"

	"github.com/google/uuid"
)

func (uc *ProposalUseCase) newEnvelope(eventType string, proposalID string, payload any) events.Envelope {
	return events.Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		OccurredAtUTC: uc.now(),
		EntityType:    "proposal",
		EntityID:      proposalID,
		Payload:       payload,
	}
}

// emit broadcasts an event to live subscribers and relays a best-effort copy
// to external automation. Relay failure is logged and never undoes the
// committed transition.
func (uc *ProposalUseCase) emit(ctx context.Context, topic string, envelope events.Envelope) {
	logger := application.ResolveLogger(uc.Logger)

	if uc.Broadcaster != nil {
		uc.Broadcaster.Broadcast(topic, envelope.EntityID, envelope)
	}

	if uc.Relay == nil {
		return
	}
	if err := uc.Relay.Relay(ctx, envelope); err != nil {
		logger.Warn("notification relay delivery failed",
			"event", "launchpad_relay_failed",
			"module", "listing-launchpad/launchpad-service",
			"layer", "application",
			"topic", topic,
			"event_type", envelope.EventType,
			"entity_id", envelope.EntityID,
			"error", err.Error(),
		)
	}
}

func (uc *ProposalUseCase) now() time.Time {
	if uc.Clock != nil {
		return uc.Clock.Now().UTC()
	}
	return time.Now().UTC()
}

// errorsIsDomain reports whether a repository error is already one of the
// domain sentinels and should pass through unwrapped.
func errorsIsDomain(err error) bool {
	return errors.Is(err, domainerrors.ErrDuplicateVote) ||
		errors.Is(err, domainerrors.ErrConflict) ||
		errors.Is(err, domainerrors.ErrProposalNotFound)
}

func (uc *ProposalUseCase) newID(ctx context.Context) string {
	if uc.IDGen != nil {
		if id, err := uc.IDGen.NewID(ctx); err == nil && id != "" {
			return id
		}
	}
	return uuid.NewString()
}
