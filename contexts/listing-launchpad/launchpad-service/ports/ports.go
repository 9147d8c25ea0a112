package ports

import (
	"context"
	"time"

	"launchpad/contexts/listing-launchpad/launchpad-service/domain/entities"
	"launchpad/internal/shared/events"
)

// ProposalRepository is the storage collaborator. The core calls Save before
// acknowledging any mutation; a failure surfaces as ErrExternalService and
// aborts the in-flight change.
type ProposalRepository interface {
	SaveProposal(ctx context.Context, proposal entities.Proposal) error
	GetProposal(ctx context.Context, proposalID string) (entities.Proposal, error)
	ListProposals(ctx context.Context, status entities.ProposalStatus, offset int, limit int) ([]entities.Proposal, int64, error)

	RecordVote(ctx context.Context, vote entities.Vote, proposal entities.Proposal) error
	HasVoted(ctx context.Context, proposalID string, voterID string) (bool, error)

	RecordAllocation(ctx context.Context, allocation entities.AllocationResult, proposal entities.Proposal) error
	ListAllocations(ctx context.Context, proposalID string) ([]entities.AllocationResult, error)
}

// ProposalReader is the read-only slice of the repository for components
// that only observe proposal state. ProposalRepository satisfies it.
type ProposalReader interface {
	GetProposal(ctx context.Context, proposalID string) (entities.Proposal, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// EventBroadcaster fans lifecycle and allocation events out to live
// subscribers. Implementations must never block the caller on a slow
// consumer.
type EventBroadcaster interface {
	Broadcast(topic string, entityID string, event events.Envelope)
	SendToUser(userID string, event events.Envelope)
}

// NotificationRelay forwards best-effort event copies to external
// automation. Delivery failure is logged by the caller and never rolls back
// a committed transition.
type NotificationRelay interface {
	Relay(ctx context.Context, event events.Envelope) error
}

// AuctionCloser is the ticker's hook back into the state machine so the
// auction can be closed when its window elapses.
type AuctionCloser interface {
	CloseAuction(ctx context.Context, proposalID string) (entities.Proposal, error)
}
