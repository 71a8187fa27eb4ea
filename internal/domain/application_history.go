package domain

import "time"

// ApplicationChangeType captures what changed in a history entry.
type ApplicationChangeType string

const (
	ChangeTypeStatus ApplicationChangeType = "STATUS_CHANGE"
)

// ApplicationHistory is an immutable audit trail entry for an application.
type ApplicationHistory struct {
	ID            int64
	ApplicationID int64
	ChangedByID   *int64
	ChangeType    ApplicationChangeType
	OldValue      map[string]any
	NewValue      map[string]any
	CreatedAt     time.Time
}
