package dto

import (
	"time"

	"github.com/spec-kit/lead-portal/internal/domain"
)

// SubmitApplicationRequest is the public intake payload.
type SubmitApplicationRequest struct {
	Name        string              `json:"name"`
	Phone       string              `json:"phone"`
	Email       string              `json:"email"`
	Service     string              `json:"service"`
	Message     string              `json:"message"`
	UserID      *int64              `json:"user_id"`
	Attachments []AttachmentRequest `json:"attachments"`
}

// AttachmentRequest describes an inline attachment. Content is embedded into
// the application message as a truncated text note.
type AttachmentRequest struct {
	FileName      string `json:"file_name"`
	SizeBytes     int64  `json:"size_bytes"`
	ContentBase64 string `json:"content_base64"`
}

// UpdateStatusRequest mutates one application's status.
type UpdateStatusRequest struct {
	ApplicationID     int64                    `json:"application_id"`
	Status            domain.ApplicationStatus `json:"status"`
	ExpectedUpdatedAt *time.Time               `json:"expected_updated_at,omitempty"`
}

// ApplicationResponse is the wire shape of one application.
type ApplicationResponse struct {
	ID        int64                    `json:"id"`
	Name      string                   `json:"name"`
	Phone     string                   `json:"phone"`
	Email     string                   `json:"email"`
	Service   string                   `json:"service"`
	Message   string                   `json:"message"`
	Status    domain.ApplicationStatus `json:"status"`
	UserID    *int64                   `json:"user_id,omitempty"`
	CreatedAt time.Time                `json:"created_at"`
	UpdatedAt time.Time                `json:"updated_at"`
}

// ApplicationListResponse mirrors the original listing contract.
type ApplicationListResponse struct {
	Applications []ApplicationResponse `json:"applications"`
	Count        int                   `json:"count"`
}

// StatsResponse aggregates per-status counts over the caller's scope.
type StatsResponse struct {
	Total      int64 `json:"total"`
	New        int64 `json:"new"`
	InProgress int64 `json:"in_progress"`
	Completed  int64 `json:"completed"`
}

// HistoryEntryResponse is one audit record.
type HistoryEntryResponse struct {
	ID          int64          `json:"id"`
	ChangedByID *int64         `json:"changed_by_id,omitempty"`
	ChangeType  string         `json:"change_type"`
	OldValue    map[string]any `json:"old_value"`
	NewValue    map[string]any `json:"new_value"`
	CreatedAt   time.Time      `json:"created_at"`
}

// ApplicationDetailResponse is the detail view payload.
type ApplicationDetailResponse struct {
	ApplicationResponse
	History []HistoryEntryResponse `json:"history"`
}

// CallbackRequest asks for a support callback.
type CallbackRequest struct {
	Phone         string `json:"phone"`
	PreferredTime string `json:"preferred_time"`
}

// PaymentRequest is the client dashboard payment form payload.
type PaymentRequest struct {
	ApplicationID int64   `json:"application_id"`
	Amount        float64 `json:"amount"`
	CardNumber    string  `json:"card_number"`
	CardExpiry    string  `json:"card_expiry"`
	CardCVC       string  `json:"card_cvc"`
}

// VisitsResponse reports site visit counters.
type VisitsResponse struct {
	Total int64 `json:"total"`
	Today int64 `json:"today"`
}
