package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"launchpad/contexts/listing-launchpad/launchpad-service/domain/entities"
	domainerrors "launchpad/contexts/listing-launchpad/launchpad-service/domain/errors"
	"launchpad/contexts/listing-launchpad/launchpad-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository is the Postgres storage collaborator. The vote and allocation
// writes run in a transaction with the proposal update so a storage failure
// leaves no partial commit.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) SaveProposal(ctx context.Context, proposal entities.Proposal) error {
	row := proposalModelFromEntity(proposal)
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&row)
	if create.Error != nil {
		return r.logError("launchpad_repo_save_proposal_failed", create.Error,
			"proposal_id", strings.TrimSpace(proposal.ProposalID),
		)
	}
	return nil
}

func (r *Repository) GetProposal(ctx context.Context, proposalID string) (entities.Proposal, error) {
	var row proposalModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(proposalID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Proposal{}, domainerrors.ErrProposalNotFound
		}
		return entities.Proposal{}, r.logError("launchpad_repo_get_proposal_failed", err,
			"proposal_id", strings.TrimSpace(proposalID),
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) ListProposals(
	ctx context.Context,
	status entities.ProposalStatus,
	offset int,
	limit int,
) ([]entities.Proposal, int64, error) {
	tx := r.db.WithContext(ctx).Model(&proposalModel{})
	if status != "" {
		tx = tx.Where("status = ?", string(status))
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, r.logError("launchpad_repo_count_proposals_failed", err)
	}

	var rows []proposalModel
	if err := tx.Order("created_at DESC").Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, 0, r.logError("launchpad_repo_list_proposals_failed", err)
	}

	items := make([]entities.Proposal, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, total, nil
}

func (r *Repository) RecordVote(ctx context.Context, vote entities.Vote, proposal entities.Proposal) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		voteRow := voteModelFromEntity(vote)
		if err := tx.Create(&voteRow).Error; err != nil {
			if isUniqueViolation(err) {
				return domainerrors.ErrDuplicateVote
			}
			return err
		}

		proposalRow := proposalModelFromEntity(proposal)
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Create(&proposalRow).Error
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrDuplicateVote) {
			return err
		}
		return r.logError("launchpad_repo_record_vote_failed", err,
			"proposal_id", strings.TrimSpace(vote.ProposalID),
			"voter_id", strings.TrimSpace(vote.VoterID),
		)
	}
	return nil
}

func (r *Repository) HasVoted(ctx context.Context, proposalID string, voterID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&voteModel{}).
		Where("proposal_id = ?", strings.TrimSpace(proposalID)).
		Where("voter_id = ?", strings.TrimSpace(voterID)).
		Count(&count).
		Error
	if err != nil {
		return false, r.logError("launchpad_repo_has_voted_failed", err,
			"proposal_id", strings.TrimSpace(proposalID),
			"voter_id", strings.TrimSpace(voterID),
		)
	}
	return count > 0, nil
}

func (r *Repository) RecordAllocation(
	ctx context.Context,
	allocation entities.AllocationResult,
	proposal entities.Proposal,
) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		allocationRow := allocationModelFromEntity(allocation)
		if err := tx.Create(&allocationRow).Error; err != nil {
			return err
		}

		proposalRow := proposalModelFromEntity(proposal)
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Create(&proposalRow).Error
	})
	if err != nil {
		return r.logError("launchpad_repo_record_allocation_failed", err,
			"proposal_id", strings.TrimSpace(allocation.ProposalID),
			"bidder_id", strings.TrimSpace(allocation.BidderID),
		)
	}
	return nil
}

func (r *Repository) ListAllocations(ctx context.Context, proposalID string) ([]entities.AllocationResult, error) {
	var rows []allocationModel
	err := r.db.WithContext(ctx).
		Where("proposal_id = ?", strings.TrimSpace(proposalID)).
		Order("created_at ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, r.logError("launchpad_repo_list_allocations_failed", err,
			"proposal_id", strings.TrimSpace(proposalID),
		)
	}
	items := make([]entities.AllocationResult, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "listing-launchpad/launchpad-service",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("launchpad repository operation failed", fields...)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.ProposalRepository = (*Repository)(nil)
