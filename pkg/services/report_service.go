package services

import (
	"context"

	"github.com/adamphillips/atlas/pkg/models"
	"github.com/adamphillips/atlas/pkg/repositories"
)

// ReportService provides the cross-contact views: the next-actions board
// and the outcome metrics.
type ReportService interface {
	// NextActions returns all open next actions across every contact,
	// soonest due first, with overdue rows flagged.
	NextActions(ctx context.Context) ([]*models.NextActionItem, error)

	// OutcomeMetrics returns interaction counts grouped by outcome.
	OutcomeMetrics(ctx context.Context) ([]*models.OutcomeCount, error)
}

type reportService struct {
	interactionRepo repositories.InteractionRepository
}

// NewReportService creates a new ReportService.
func NewReportService(interactionRepo repositories.InteractionRepository) ReportService {
	return &reportService{interactionRepo: interactionRepo}
}

var _ ReportService = (*reportService)(nil)

func (s *reportService) NextActions(ctx context.Context) ([]*models.NextActionItem, error) {
	return s.interactionRepo.ListOpenNextActions(ctx)
}

func (s *reportService) OutcomeMetrics(ctx context.Context) ([]*models.OutcomeCount, error) {
	counts, err := s.interactionRepo.CountOutcomes(ctx)
	if err != nil {
		return nil, err
	}
	if counts == nil {
		counts = []*models.OutcomeCount{}
	}
	return counts, nil
}
