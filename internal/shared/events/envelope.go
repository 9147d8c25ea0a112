package events

import "time"

// Envelope is the canonical event shape shared by the broadcast hub, the
// notification relay, and the websocket transport.
type Envelope struct {
	EventID       string    `json:"event_id"`
	EventType     string    `json:"type"`
	OccurredAtUTC time.Time `json:"timestamp"`
	EntityType    string    `json:"entity_type,omitempty"`
	EntityID      string    `json:"entity_id,omitempty"`
	Payload       any       `json:"data"`
}

// Topics on the real-time surface.
const (
	TopicTrades        = "trades"
	TopicPrices        = "prices"
	TopicAuctions      = "auctions"
	TopicGovernance    = "governance"
	TopicNotifications = "notifications"
)

// Event types carried on the real-time surface.
const (
	TypePriceTick         = "price_tick"
	TypeBidPlaced         = "bid_placed"
	TypeVoteCast          = "vote_cast"
	TypeProposalCreated   = "proposal_created"
	TypeProposalSubmitted = "proposal_submitted"
	TypeProposalApproved  = "proposal_approved"
	TypeProposalRejected  = "proposal_rejected"
	TypeAuctionStarted    = "auction_started"
	TypeAuctionClosed     = "auction_closed"
	TypeTradeExecuted     = "trade_executed"
	TypePong              = "pong"
)
