package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/drivedeal/drivedeal-backend/internal/models"
)

type reportsRepo struct{ pool *pgxpool.Pool }

func (r *reportsRepo) Create(ctx context.Context, rep models.Report) (models.Report, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO reports(reporter_id, reported_user_id, listing_id, reason)
		 VALUES($1,$2,$3,$4)
		 RETURNING id, status, created_at`,
		rep.ReporterID, rep.ReportedUserID, rep.ListingID, rep.Reason,
	).Scan(&rep.ID, &rep.Status, &rep.CreatedAt)
	if err != nil {
		return models.Report{}, fmt.Errorf("create report: %w", translate(err))
	}
	return rep, nil
}

func (r *reportsRepo) ListAll(ctx context.Context) ([]models.ReportDetail, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT r.id, r.reporter_id, r.reported_user_id, r.listing_id, r.reason, r.status, r.created_at,
		        reporter.username, reported.username, l.make, l.model
		   FROM reports r
		   JOIN users reporter ON r.reporter_id = reporter.id
		   JOIN users reported ON r.reported_user_id = reported.id
		   LEFT JOIN listings l ON r.listing_id = l.id
		  ORDER BY r.created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.ReportDetail{}
	for rows.Next() {
		var d models.ReportDetail
		if err := rows.Scan(
			&d.ID, &d.ReporterID, &d.ReportedUserID, &d.ListingID, &d.Reason, &d.Status, &d.CreatedAt,
			&d.ReporterName, &d.ReportedUserName, &d.ListingMake, &d.ListingModel,
		); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *reportsRepo) Resolve(ctx context.Context, id int64) error {
	// Unconditional: resolving an already-resolved report is a no-op success,
	// the pending -> resolved transition never reverses.
	_, err := r.pool.Exec(ctx,
		`UPDATE reports SET status='resolved' WHERE id=$1`, id,
	)
	return err
}
