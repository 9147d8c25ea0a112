package entities

import "time"

type ProposalStatus string

const (
	StatusDraft        ProposalStatus = "draft"
	StatusVoting       ProposalStatus = "voting"
	StatusApproved     ProposalStatus = "approved"
	StatusRejected     ProposalStatus = "rejected"
	StatusIPOActive    ProposalStatus = "ipo_active"
	StatusIPOCompleted ProposalStatus = "ipo_completed"
)

// statusRank orders the lifecycle. Transitions only move forward; the two
// voting outcomes share a rank because they are alternatives, not a sequence.
var statusRank = map[ProposalStatus]int{
	StatusDraft:        0,
	StatusVoting:       1,
	StatusApproved:     2,
	StatusRejected:     2,
	StatusIPOActive:    3,
	StatusIPOCompleted: 4,
}

var legalTransitions = map[ProposalStatus][]ProposalStatus{
	StatusDraft:     {StatusVoting},
	StatusVoting:    {StatusApproved, StatusRejected},
	StatusApproved:  {StatusIPOActive},
	StatusIPOActive: {StatusIPOCompleted},
}

func (s ProposalStatus) Valid() bool {
	_, ok := statusRank[s]
	return ok
}

func (s ProposalStatus) Terminal() bool {
	return s == StatusRejected || s == StatusIPOCompleted
}

// CanTransition reports whether from -> to is a legal forward step.
func CanTransition(from ProposalStatus, to ProposalStatus) bool {
	for _, next := range legalTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Proposal is the launchpad aggregate: a listing moving from community draft
// through quorum voting into a Dutch-auction IPO. All mutation happens under
// the per-proposal lock held by the application layer; once a terminal status
// is reached the record is immutable.
type Proposal struct {
	ProposalID  string
	ListingID   string
	CreatorID   string
	Title       string
	Description string
	Status      ProposalStatus

	VotesFor       int64
	VotesAgainst   int64
	QuorumRequired int64
	VotingDeadline *time.Time

	StartPrice      float64
	ReservePrice    float64
	TotalSupply     int64
	SupplyRemaining int64
	TotalRaised     float64
	FinalPrice      float64
	AuctionStart    *time.Time
	AuctionEnd      *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

type VoteOutcome string

const (
	OutcomeStillVoting VoteOutcome = "still_voting"
	OutcomeApproved    VoteOutcome = "approved"
	OutcomeRejected    VoteOutcome = "rejected"
)

// Evaluate is the quorum tally: quorum is reached once total participating
// weight meets QuorumRequired, and approval requires a strict majority of the
// participating weight. An exact tie is not approved. Side-effect free; the
// state machine applies the resulting transition.
func (p Proposal) Evaluate() VoteOutcome {
	total := p.VotesFor + p.VotesAgainst
	if total < p.QuorumRequired {
		return OutcomeStillVoting
	}
	if p.VotesFor*2 > total {
		return OutcomeApproved
	}
	return OutcomeRejected
}

func (p Proposal) QuorumReached() bool {
	return p.VotesFor+p.VotesAgainst >= p.QuorumRequired
}

func (p Proposal) VotingOpen(now time.Time) bool {
	if p.Status != StatusVoting || p.VotingDeadline == nil {
		return false
	}
	return !now.After(*p.VotingDeadline)
}

type VoteDirection string

const (
	VoteFor     VoteDirection = "for"
	VoteAgainst VoteDirection = "against"
)

// Vote records one voter's weight on one proposal. At most one vote per
// (proposal, voter); the first is authoritative.
type Vote struct {
	ProposalID string
	VoterID    string
	Weight     int64
	Direction  VoteDirection
	CreatedAt  time.Time
}
