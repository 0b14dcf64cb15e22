package usecases

import (
	"context"
	"strings"
	"time"

	"estate-hub.backend/internal/domain/entities"
	domainerrors "estate-hub.backend/internal/domain/errors"
	domainRepos "estate-hub.backend/internal/domain/repositories"
	"estate-hub.backend/internal/observability"
	"estate-hub.backend/pkg/logger"
	"estate-hub.backend/pkg/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TriageRules holds the thresholds used to bucket pending submissions.
type TriageRules struct {
	RiskThreshold    float64
	QualityThreshold int
}

// DefaultTriageRules returns the production thresholds.
func DefaultTriageRules() TriageRules {
	return TriageRules{
		RiskThreshold:    0.5,
		QualityThreshold: 50,
	}
}

// Classify buckets a submission into exactly one triage queue. It never
// mutates state; the queue is a pure function of the stored record.
// Human approvals (approved without auto_approved) are historical and belong
// to no queue.
func (r TriageRules) Classify(sub *entities.VerificationSubmission) entities.TriageQueue {
	switch sub.Status {
	case entities.VerificationStatusRejected:
		return entities.QueueRejected
	case entities.VerificationStatusApproved:
		if sub.AutoApproved {
			return entities.QueueAutoApproved
		}
		return entities.QueueNone
	case entities.VerificationStatusPending:
		if sub.RiskScore != nil && *sub.RiskScore > r.RiskThreshold {
			return entities.QueueFlagged
		}
		if !sub.AutoApproved && sub.SelfieQualityScore != nil && *sub.SelfieQualityScore < r.QualityThreshold {
			return entities.QueueFlagged
		}
		return entities.QueuePending
	}
	return entities.QueueNone
}

// ComputeStats aggregates queue counters and the mean review turnaround in
// whole minutes over submissions that have been reviewed.
func (r TriageRules) ComputeStats(subs []*entities.VerificationSubmission) *entities.TriageStats {
	stats := &entities.TriageStats{Total: len(subs)}

	var reviewed int64
	var totalReview time.Duration
	for _, sub := range subs {
		switch r.Classify(sub) {
		case entities.QueueFlagged:
			stats.Flagged++
		case entities.QueuePending:
			stats.Pending++
		case entities.QueueAutoApproved:
			stats.AutoApproved++
		case entities.QueueRejected:
			stats.Rejected++
		}
		if sub.ReviewedAt != nil {
			reviewed++
			totalReview += sub.ReviewedAt.Sub(sub.SubmittedAt)
		}
	}
	if reviewed > 0 {
		mean := totalReview / time.Duration(reviewed)
		stats.AverageReviewTimeMinutes = int64(mean.Minutes())
	}
	return stats
}

// VerificationTriageUsecase handles triage of verification submissions
type VerificationTriageUsecase struct {
	submissionRepo domainRepos.VerificationSubmissionRepository
	userRepo       domainRepos.UserRepository
	rules          TriageRules
}

// NewVerificationTriageUsecase creates a new verification triage usecase
func NewVerificationTriageUsecase(
	submissionRepo domainRepos.VerificationSubmissionRepository,
	userRepo domainRepos.UserRepository,
	rules TriageRules,
) *VerificationTriageUsecase {
	return &VerificationTriageUsecase{
		submissionRepo: submissionRepo,
		userRepo:       userRepo,
		rules:          rules,
	}
}

// queueStatuses narrows the stored statuses a queue can classify from, so
// listings do not scan the whole table.
func queueStatuses(queue entities.TriageQueue) []entities.VerificationStatus {
	switch queue {
	case entities.QueueFlagged, entities.QueuePending:
		return []entities.VerificationStatus{entities.VerificationStatusPending}
	case entities.QueueAutoApproved:
		return []entities.VerificationStatus{entities.VerificationStatusApproved}
	case entities.QueueRejected:
		return []entities.VerificationStatus{entities.VerificationStatusRejected}
	}
	return nil
}

// ListQueue returns the submissions classified into the given queue.
func (uc *VerificationTriageUsecase) ListQueue(ctx context.Context, queue entities.TriageQueue, params utils.PaginationParams) ([]*entities.VerificationSubmission, utils.PaginationMeta, error) {
	if !entities.ValidQueue(queue) {
		return nil, utils.PaginationMeta{}, domainerrors.BadRequest("unknown queue")
	}

	subs, err := uc.submissionRepo.List(ctx, domainRepos.VerificationSubmissionFilter{
		Statuses: queueStatuses(queue),
	})
	if err != nil {
		return nil, utils.PaginationMeta{}, err
	}

	matched := make([]*entities.VerificationSubmission, 0, len(subs))
	for _, sub := range subs {
		if uc.rules.Classify(sub) == queue {
			matched = append(matched, sub)
		}
	}

	meta := utils.CalculateMeta(int64(len(matched)), params.Page, params.Limit)
	offset := params.CalculateOffset()
	if offset >= len(matched) {
		return []*entities.VerificationSubmission{}, meta, nil
	}
	end := offset + params.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], meta, nil
}

// GetStats returns triage queue counters and the average review turnaround.
func (uc *VerificationTriageUsecase) GetStats(ctx context.Context) (*entities.TriageStats, error) {
	subs, err := uc.submissionRepo.List(ctx, domainRepos.VerificationSubmissionFilter{})
	if err != nil {
		return nil, err
	}
	return uc.rules.ComputeStats(subs), nil
}

// Approve records an operator approval on a pending submission. The stored
// auto_approved flag is left untouched: a manual approval never claims
// automation.
func (uc *VerificationTriageUsecase) Approve(ctx context.Context, id, reviewerID uuid.UUID) (*entities.VerificationSubmission, error) {
	sub, err := uc.submissionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, uc.mapSubmissionErr(err)
	}

	now := time.Now()
	if err := uc.submissionRepo.RecordDecision(ctx, id, entities.VerificationStatusApproved, reviewerID, "", now); err != nil {
		return nil, uc.mapSubmissionErr(err)
	}
	observability.TriageDecisions.WithLabelValues("approved").Inc()

	// An approved identity submission upgrades the subject user's KYC
	// standing. Best-effort: a failure here never unwinds the decision.
	if sub.Type == entities.VerificationTypeIdentity {
		if err := uc.userRepo.SetKYCStatus(ctx, sub.UserID, entities.KYCVerified, &now); err != nil {
			logger.Warn(ctx, "failed to update user KYC status after approval",
				zap.String("submission_id", id.String()),
				zap.String("user_id", sub.UserID.String()),
				zap.Error(err))
		}
	}

	return uc.submissionRepo.GetByID(ctx, id)
}

// Reject records an operator rejection with a mandatory reason.
func (uc *VerificationTriageUsecase) Reject(ctx context.Context, id, reviewerID uuid.UUID, reason string) (*entities.VerificationSubmission, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, domainerrors.BadRequest("rejection reason is required")
	}

	if err := uc.submissionRepo.RecordDecision(ctx, id, entities.VerificationStatusRejected, reviewerID, reason, time.Now()); err != nil {
		return nil, uc.mapSubmissionErr(err)
	}
	observability.TriageDecisions.WithLabelValues("rejected").Inc()

	return uc.submissionRepo.GetByID(ctx, id)
}

func (uc *VerificationTriageUsecase) mapSubmissionErr(err error) error {
	switch {
	case err == domainerrors.ErrNotFound:
		return domainerrors.NotFound("verification submission not found")
	case err == domainerrors.ErrInvalidTransition:
		return domainerrors.InvalidTransition("submission is no longer pending")
	}
	return err
}
