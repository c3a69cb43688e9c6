package domain

import "time"

// ReportRecord is a report kept in the analysis history
type ReportRecord struct {
	ID        string
	CreatedAt time.Time
	Report    Report
}
