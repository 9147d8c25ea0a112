package entities

import "time"

// Bid is a request for a slice of the remaining auction supply at or below
// the bidder's ceiling price.
type Bid struct {
	ProposalID        string
	BidderID          string
	RequestedQuantity int64
	MaxPrice          float64
	CreatedAt         time.Time
}

// AllocationResult is the admitted portion of a bid. Partial fills are a
// normal outcome; an unfilled remainder is never queued.
type AllocationResult struct {
	AllocationID    string
	ProposalID      string
	BidderID        string
	GrantedQuantity int64
	PricePaid       float64
	CreatedAt       time.Time
}

func (a AllocationResult) Cost() float64 {
	return float64(a.GrantedQuantity) * a.PricePaid
}

// CurrentPrice computes the Dutch-auction price at instant t: linear decay
// from StartPrice to ReservePrice across the auction window, clamped so that
// t at or before AuctionStart yields StartPrice and t at or after AuctionEnd
// yields ReservePrice. Monotonic non-increasing in t.
func (p Proposal) CurrentPrice(t time.Time) float64 {
	if p.AuctionStart == nil || p.AuctionEnd == nil {
		return p.StartPrice
	}
	window := p.AuctionEnd.Sub(*p.AuctionStart)
	if window <= 0 {
		return p.ReservePrice
	}
	elapsed := t.Sub(*p.AuctionStart)
	if elapsed <= 0 {
		return p.StartPrice
	}
	if elapsed >= window {
		return p.ReservePrice
	}
	progress := float64(elapsed) / float64(window)
	return p.StartPrice - (p.StartPrice-p.ReservePrice)*progress
}

// AuctionTimeRemaining is zero once the window has elapsed or the auction
// has not started.
func (p Proposal) AuctionTimeRemaining(t time.Time) time.Duration {
	if p.AuctionEnd == nil {
		return 0
	}
	remaining := p.AuctionEnd.Sub(t)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// AuctionElapsed reports whether the auction window has run out at t.
func (p Proposal) AuctionElapsed(t time.Time) bool {
	return p.AuctionEnd != nil && !t.Before(*p.AuctionEnd)
}
