package services

import (
	"context"
	"strings"

	"github.com/drivedeal/drivedeal-backend/internal/metrics"
	"github.com/drivedeal/drivedeal-backend/internal/models"
	repo "github.com/drivedeal/drivedeal-backend/internal/repository"
)

// minReasonLen matches the floor the client enforces; the service does not
// trust the client.
const minReasonLen = 10

type ReportService struct {
	r repo.Reports
}

func NewReportService(r repo.Reports) *ReportService { return &ReportService{r: r} }

// File creates a pending report against another user. Reporting oneself is
// rejected.
func (s *ReportService) File(ctx context.Context, reporterID, reportedUserID int64, reason string, listingID *int64) (models.Report, error) {
	if reportedUserID <= 0 {
		return models.Report{}, models.NewError(models.ErrValidation, "Reported user ID and reason are required")
	}
	reason = strings.TrimSpace(reason)
	if len(reason) < minReasonLen {
		return models.Report{}, models.NewError(models.ErrValidation, "Reason must be at least %d characters", minReasonLen)
	}
	if reporterID == reportedUserID {
		return models.Report{}, models.NewError(models.ErrValidation, "You cannot report yourself")
	}
	rep, err := s.r.Create(ctx, models.Report{
		ReporterID:     reporterID,
		ReportedUserID: reportedUserID,
		ListingID:      listingID,
		Reason:         reason,
		Status:         models.ReportPending,
	})
	if err != nil {
		return models.Report{}, err
	}
	metrics.ReportsFiled.Inc()
	return rep, nil
}

// ListAll returns every report with reporter/reported usernames and listing
// make/model where present, newest first.
func (s *ReportService) ListAll(ctx context.Context) ([]models.ReportDetail, error) {
	return s.r.ListAll(ctx)
}

// Resolve transitions a report to resolved. Already-resolved reports stay
// resolved; there is no way back to pending.
func (s *ReportService) Resolve(ctx context.Context, id int64) error {
	return s.r.Resolve(ctx, id)
}
