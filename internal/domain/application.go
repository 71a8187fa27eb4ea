package domain

import "time"

// ApplicationStatus enumerates lifecycle states for lead applications.
type ApplicationStatus string

const (
	ApplicationStatusNew        ApplicationStatus = "new"
	ApplicationStatusInProgress ApplicationStatus = "in_progress"
	ApplicationStatusCompleted  ApplicationStatus = "completed"
)

// ValidStatus reports whether s is one of the three known states.
func ValidStatus(s ApplicationStatus) bool {
	switch s {
	case ApplicationStatusNew, ApplicationStatusInProgress, ApplicationStatusCompleted:
		return true
	}
	return false
}

// Application is the aggregate for customer inquiries (leads).
type Application struct {
	ID        int64
	Name      string
	Phone     string
	Email     string
	Service   string
	Message   string
	Status    ApplicationStatus
	UserID    *int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
