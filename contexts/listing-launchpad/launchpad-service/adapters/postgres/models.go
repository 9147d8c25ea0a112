package postgresadapter

import (
	"time"

	"launchpad/contexts/listing-launchpad/launchpad-service/domain/entities"
)

type proposalModel struct {
	ID             string     `gorm:"column:id;primaryKey"`
	ListingID      string     `gorm:"column:listing_id;index"`
	CreatorID      string     `gorm:"column:creator_id;index"`
	Title          string     `gorm:"column:title"`
	Description    string     `gorm:"column:description"`
	Status         string     `gorm:"column:status;index"`
	VotesFor       int64      `gorm:"column:votes_for"`
	VotesAgainst   int64      `gorm:"column:votes_against"`
	QuorumRequired int64      `gorm:"column:quorum_required"`
	VotingDeadline *time.Time `gorm:"column:voting_deadline"`

	StartPrice      float64    `gorm:"column:start_price"`
	ReservePrice    float64    `gorm:"column:reserve_price"`
	TotalSupply     int64      `gorm:"column:total_supply"`
	SupplyRemaining int64      `gorm:"column:supply_remaining"`
	TotalRaised     float64    `gorm:"column:total_raised"`
	FinalPrice      float64    `gorm:"column:final_price"`
	AuctionStart    *time.Time `gorm:"column:auction_start"`
	AuctionEnd      *time.Time `gorm:"column:auction_end"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (proposalModel) TableName() string {
	return "launchpad_proposals"
}

func proposalModelFromEntity(p entities.Proposal) proposalModel {
	return proposalModel{
		ID:              p.ProposalID,
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
		CreatedAt:       p.CreatedAt.UTC(),
		UpdatedAt:       p.UpdatedAt.UTC(),
	}
}

func (m proposalModel) toEntity() entities.Proposal {
	return entities.Proposal{
		ProposalID:      m.ID,
		ListingID:       m.ListingID,
		CreatorID:       m.CreatorID,
		Title:           m.Title,
		Description:     m.Description,
		Status:          entities.ProposalStatus(m.Status),
		VotesFor:        m.VotesFor,
		VotesAgainst:    m.VotesAgainst,
		QuorumRequired:  m.QuorumRequired,
		VotingDeadline:  m.VotingDeadline,
		StartPrice:      m.StartPrice,
		ReservePrice:    m.ReservePrice,
		TotalSupply:     m.TotalSupply,
		SupplyRemaining: m.SupplyRemaining,
		TotalRaised:     m.TotalRaised,
		FinalPrice:      m.FinalPrice,
		AuctionStart:    m.AuctionStart,
		AuctionEnd:      m.AuctionEnd,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

type voteModel struct {
	ProposalID string    `gorm:"column:proposal_id;primaryKey"`
	VoterID    string    `gorm:"column:voter_id;primaryKey"`
	Weight     int64     `gorm:"column:weight"`
	Direction  string    `gorm:"column:direction"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (voteModel) TableName() string {
	return "launchpad_votes"
}

func voteModelFromEntity(v entities.Vote) voteModel {
	return voteModel{
		ProposalID: v.ProposalID,
		VoterID:    v.VoterID,
		Weight:     v.Weight,
		Direction:  string(v.Direction),
		CreatedAt:  v.CreatedAt.UTC(),
	}
}

type allocationModel struct {
	ID              string    `gorm:"column:id;primaryKey"`
	ProposalID      string    `gorm:"column:proposal_id;index"`
	BidderID        string    `gorm:"column:bidder_id;index"`
	GrantedQuantity int64     `gorm:"column:granted_quantity"`
	PricePaid       float64   `gorm:"column:price_paid"`
	CreatedAt       time.Time `gorm:"column:created_at"`
}

func (allocationModel) TableName() string {
	return "launchpad_allocations"
}

func allocationModelFromEntity(a entities.AllocationResult) allocationModel {
	return allocationModel{
		ID:              a.AllocationID,
		ProposalID:      a.ProposalID,
		BidderID:        a.BidderID,
		GrantedQuantity: a.GrantedQuantity,
		PricePaid:       a.PricePaid,
		CreatedAt:       a.CreatedAt.UTC(),
	}
}

func (m allocationModel) toEntity() entities.AllocationResult {
	return entities.AllocationResult{
		AllocationID:    m.ID,
		ProposalID:      m.ProposalID,
		BidderID:        m.BidderID,
		GrantedQuantity: m.GrantedQuantity,
		PricePaid:       m.PricePaid,
		CreatedAt:       m.CreatedAt,
	}
}

// Models returns the gorm models for schema migration.
func Models() []any {
	return []any{&proposalModel{}, &voteModel{}, &allocationModel{}}
}
