package models

import "time"

// Project groups tasks under a name and an optional date window.
// StartDate, EndDate and ManagerID are nil when unset.
type Project struct {
	ID          int64
	Name        string
	Description string
	StartDate   *time.Time
	EndDate     *time.Time
	ManagerID   *int64
	CreatedAt   time.Time
}

// IsActive reports whether the project is running on the given day:
// not started in the future and not ended in the past. Projects with
// no dates at all count as active.
func (p *Project) IsActive(today time.Time) bool {
	day := truncateToDay(today)
	if p.StartDate != nil && p.StartDate.After(day) {
		return false
	}
	if p.EndDate != nil && p.EndDate.Before(day) {
		return false
	}
	return true
}

// IsCompleted reports whether the project's end date has passed
func (p *Project) IsCompleted(today time.Time) bool {
	return p.EndDate != nil && p.EndDate.Before(truncateToDay(today))
}

// IsUpcoming reports whether the project starts after the given day
func (p *Project) IsUpcoming(today time.Time) bool {
	return p.StartDate != nil && p.StartDate.After(truncateToDay(today))
}

// DurationDays returns the project's scheduled length in days, inclusive
// of both endpoints. Returns 0 when either date is missing.
func (p *Project) DurationDays() int {
	if p.StartDate == nil || p.EndDate == nil {
		return 0
	}
	return int(p.EndDate.Sub(*p.StartDate).Hours()/24) + 1
}

// truncateToDay maps t to midnight UTC of its calendar day. Stored dates
// are parsed at midnight UTC, so pinning the caller's clock to the same
// location keeps day comparisons exact in every time zone.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
