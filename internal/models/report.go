package models

import "time"

type ReportStatus string

const (
	ReportPending  ReportStatus = "pending"
	ReportResolved ReportStatus = "resolved"
)

type Report struct {
	ID             int64        `json:"id"`
	ReporterID     int64        `json:"reporter_id"`
	ReportedUserID int64        `json:"reported_user_id"`
	ListingID      *int64       `json:"listing_id,omitempty"`
	Reason         string       `json:"reason"`
	Status         ReportStatus `json:"status"`
	CreatedAt      time.Time    `json:"created_at"`
}

// ReportDetail is a report joined with reporter/reported usernames and, when
// a listing is referenced, its make and model.
type ReportDetail struct {
	Report
	ReporterName     string  `json:"reporter_name"`
	ReportedUserName string  `json:"reported_user_name"`
	ListingMake      *string `json:"listing_make,omitempty"`
	ListingModel     *string `json:"listing_model,omitempty"`
}
