package memory

import (
	"context"
	"sort"
	"time"

	"github.com/drivedeal/drivedeal-backend/internal/models"
)

type reportsRepo struct{ s *Store }

func (r *reportsRepo) Create(_ context.Context, rep models.Report) (models.Report, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[rep.ReporterID]; !ok {
		return models.Report{}, models.ErrNotFound
	}
	if _, ok := s.users[rep.ReportedUserID]; !ok {
		return models.Report{}, models.ErrNotFound
	}
	if rep.ListingID != nil {
		if _, ok := s.listings[*rep.ListingID]; !ok {
			return models.Report{}, models.ErrNotFound
		}
	}
	s.nextReportID++
	rep.ID = s.nextReportID
	rep.Status = models.ReportPending
	rep.CreatedAt = time.Now()
	s.reports[rep.ID] = rep
	return rep, nil
}

func (r *reportsRepo) ListAll(_ context.Context) ([]models.ReportDetail, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.ReportDetail{}
	for _, rep := range s.reports {
		d := models.ReportDetail{Report: rep}
		if u, ok := s.users[rep.ReporterID]; ok {
			d.ReporterName = u.Username
		}
		if u, ok := s.users[rep.ReportedUserID]; ok {
			d.ReportedUserName = u.Username
		}
		if rep.ListingID != nil {
			if l, ok := s.listings[*rep.ListingID]; ok {
				mk, md := l.Make, l.Model
				d.ListingMake, d.ListingModel = &mk, &md
			}
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *reportsRepo) Resolve(_ context.Context, id int64) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if rep, ok := s.reports[id]; ok {
		rep.Status = models.ReportResolved
		s.reports[id] = rep
	}
	return nil
}
