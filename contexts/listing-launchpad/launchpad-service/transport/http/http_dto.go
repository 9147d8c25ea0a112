package http

import "time"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreateProposalRequest struct {
	ListingID      string `json:"listing_id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	QuorumRequired int64  `json:"quorum_required,omitempty"`
}

type SubmitProposalRequest struct {
	VotingDurationDays int `json:"voting_duration_days,omitempty"`
}

type CastVoteRequest struct {
	Direction string `json:"direction"`
	Weight    int64  `json:"weight,omitempty"`
}

type StartAuctionRequest struct {
	StartPrice      float64 `json:"start_price,omitempty"`
	ReservePrice    float64 `json:"reserve_price,omitempty"`
	TotalSupply     int64   `json:"total_supply,omitempty"`
	DurationSeconds int64   `json:"duration_seconds,omitempty"`
}

type PlaceBidRequest struct {
	RequestedQuantity int64   `json:"requested_quantity"`
	MaxPrice          float64 `json:"max_price"`
}

type ProposalResponse struct {
	ProposalID     string     `json:"proposal_id"`
	ListingID      string     `json:"listing_id"`
	CreatorID      string     `json:"creator_id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Status         string     `json:"status"`
	VotesFor       int64      `json:"votes_for"`
	VotesAgainst   int64      `json:"votes_against"`
	QuorumRequired int64      `json:"quorum_required"`
	VotingDeadline *time.Time `json:"voting_deadline,omitempty"`

	StartPrice      float64    `json:"start_price,omitempty"`
	ReservePrice    float64    `json:"reserve_price,omitempty"`
	TotalSupply     int64      `json:"total_supply,omitempty"`
	SupplyRemaining int64      `json:"supply_remaining,omitempty"`
	TotalRaised     float64    `json:"total_raised,omitempty"`
	FinalPrice      float64    `json:"final_price,omitempty"`
	AuctionStart    *time.Time `json:"auction_start,omitempty"`
	AuctionEnd      *time.Time `json:"auction_end,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ProposalStatusResponse struct {
	Proposal             ProposalResponse `json:"proposal"`
	TotalVotes           int64            `json:"total_votes"`
	QuorumReached        bool             `json:"quorum_reached"`
	ApprovalPercentage   float64          `json:"approval_percentage"`
	Outcome              string           `json:"outcome"`
	CurrentPrice         float64          `json:"current_price,omitempty"`
	TimeRemainingSeconds int64            `json:"time_remaining_seconds,omitempty"`
	SharesSold           int64            `json:"shares_sold"`
}

type ProposalListResponse struct {
	Items    []ProposalStatusResponse `json:"items"`
	Total    int64                    `json:"total"`
	Page     int                      `json:"page"`
	PageSize int                      `json:"page_size"`
}

type VoteResponse struct {
	ProposalID   string `json:"proposal_id"`
	VoterID      string `json:"voter_id"`
	Direction    string `json:"direction"`
	Weight       int64  `json:"weight"`
	VotesFor     int64  `json:"votes_for"`
	VotesAgainst int64  `json:"votes_against"`
	Outcome      string `json:"outcome"`
}

type AllocationResponse struct {
	AllocationID    string    `json:"allocation_id"`
	ProposalID      string    `json:"proposal_id"`
	BidderID        string    `json:"bidder_id"`
	GrantedQuantity int64     `json:"granted_quantity"`
	PricePaid       float64   `json:"price_paid"`
	TotalCost       float64   `json:"total_cost"`
	SupplyRemaining int64     `json:"supply_remaining"`
	ProposalStatus  string    `json:"proposal_status"`
	CreatedAt       time.Time `json:"created_at"`
}

type AllocationListResponse struct {
	ProposalID string               `json:"proposal_id"`
	Items      []AllocationResponse `json:"items"`
}
