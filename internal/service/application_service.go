package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/lead-portal/internal/domain"
	"github.com/spec-kit/lead-portal/internal/events"
	"github.com/spec-kit/lead-portal/internal/repository"
	apperrors "github.com/spec-kit/lead-portal/pkg/util"
)

const attachmentPreviewLen = 64

// ApplicationService coordinates the lead application lifecycle.
type ApplicationService struct {
	applications repository.ApplicationRepository
	history      repository.ApplicationHistoryRepository
	dispatcher   events.Dispatcher
}

// ApplicationDependencies bundles repositories for the service.
type ApplicationDependencies struct {
	ApplicationRepo repository.ApplicationRepository
	HistoryRepo     repository.ApplicationHistoryRepository
	Dispatcher      events.Dispatcher
}

// SubmitInput describes an intake payload from the public site.
type SubmitInput struct {
	Name        string
	Phone       string
	Email       string
	Service     string
	Message     string
	UserID      *int64
	Attachments []AttachmentInput
}

// AttachmentInput is an inline file reference. The content is embedded into
// the application message as a truncated text fragment; this is a
// placeholder, not durable file storage.
type AttachmentInput struct {
	FileName      string
	SizeBytes     int64
	ContentBase64 string
}

// ListFilter describes listing parameters as parsed from the request. The
// UserID field is only honored for staff principals.
type ListFilter struct {
	UserID *int64
	Status *domain.ApplicationStatus
	Search *string
	Limit  int
	Offset int
}

// NewApplicationService constructs the service.
func NewApplicationService(deps ApplicationDependencies) *ApplicationService {
	return &ApplicationService{
		applications: deps.ApplicationRepo,
		history:      deps.HistoryRepo,
		dispatcher:   deps.Dispatcher,
	}
}

// Submit validates and persists a new lead with status "new".
func (s *ApplicationService) Submit(ctx context.Context, input SubmitInput) (*domain.Application, error) {
	name := strings.TrimSpace(input.Name)
	phone := strings.TrimSpace(input.Phone)
	email := strings.TrimSpace(input.Email)
	serviceName := strings.TrimSpace(input.Service)
	if name == "" || phone == "" || email == "" || serviceName == "" {
		return nil, apperrors.NewValidationError("name, phone, email, service required", nil)
	}

	message := strings.TrimSpace(input.Message)
	if len(input.Attachments) > 0 {
		message = appendAttachmentNotes(message, input.Attachments)
	}

	app := &domain.Application{
		Name:    name,
		Phone:   phone,
		Email:   email,
		Service: serviceName,
		Message: message,
		Status:  domain.ApplicationStatusNew,
		UserID:  input.UserID,
	}
	if err := s.applications.Create(ctx, app); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:          events.EventApplicationSubmitted,
		ApplicationID: app.ID,
		Actor:         events.Actor{UserID: input.UserID},
		Payload: events.ApplicationSubmittedPayload{
			Name:    app.Name,
			Phone:   app.Phone,
			Email:   app.Email,
			Service: app.Service,
			Message: app.Message,
		},
	})
	return app, nil
}

// List returns applications visible to the principal. Client-role callers are
// always restricted to their own records regardless of the requested filter.
func (s *ApplicationService) List(ctx context.Context, principal *domain.User, filter ListFilter) ([]domain.Application, error) {
	repoFilter := repository.ApplicationFilter{
		Status:     filter.Status,
		SearchTerm: filter.Search,
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	}
	if principal.Role.IsStaff() {
		repoFilter.UserID = filter.UserID
	} else {
		userID := principal.ID
		repoFilter.UserID = &userID
	}
	apps, err := s.applications.ListWithFilter(ctx, repoFilter)
	if err != nil {
		return nil, err
	}
	if apps == nil {
		apps = []domain.Application{}
	}
	return apps, nil
}

// Stats aggregates status counts over the principal's full scope. The counts
// deliberately ignore any active status filter so the totals stay global.
func (s *ApplicationService) Stats(ctx context.Context, principal *domain.User) (repository.StatusCounts, error) {
	var userID *int64
	if !principal.Role.IsStaff() {
		id := principal.ID
		userID = &id
	}
	return s.applications.CountByStatus(ctx, userID)
}

// Get fetches one application with its status history, enforcing ownership
// for client-role principals.
func (s *ApplicationService) Get(ctx context.Context, principal *domain.User, id int64) (*domain.Application, []domain.ApplicationHistory, error) {
	app, err := s.applications.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if !principal.Role.IsStaff() {
		if app.UserID == nil || *app.UserID != principal.ID {
			return nil, nil, apperrors.NewForbidden("access denied")
		}
	}
	history, err := s.history.ListByApplication(ctx, app.ID)
	if err != nil {
		return nil, nil, err
	}
	return app, history, nil
}

// UpdateStatus transitions an application to newStatus. All transitions among
// the three states are permitted. When expectedUpdatedAt is supplied the
// write is conditional and a concurrent modification yields a CONFLICT.
func (s *ApplicationService) UpdateStatus(ctx context.Context, principal *domain.User, applicationID int64, newStatus domain.ApplicationStatus, expectedUpdatedAt *time.Time) (*domain.Application, error) {
	if !principal.Role.IsStaff() {
		return nil, apperrors.NewForbidden("admin or director role required")
	}
	if !domain.ValidStatus(newStatus) {
		return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": newStatus})
	}

	current, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	oldStatus := current.Status

	updated, err := s.applications.UpdateStatus(ctx, applicationID, newStatus, expectedUpdatedAt)
	if err != nil {
		if err == repository.ErrStaleUpdate {
			return nil, apperrors.NewConflict("application was modified by another user", map[string]any{
				"application_id": applicationID,
			})
		}
		return nil, err
	}

	if err := s.recordStatusChange(ctx, principal.ID, updated.ID, oldStatus, newStatus); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:          events.EventApplicationStatusChanged,
		ApplicationID: updated.ID,
		Actor:         actorFor(principal.ID),
		Payload: events.ApplicationStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: newStatus,
		},
	})
	return updated, nil
}

// RequestCallback emits a callback notification for the support panel.
func (s *ApplicationService) RequestCallback(ctx context.Context, principal *domain.User, phone, preferredTime string) error {
	if strings.TrimSpace(phone) == "" {
		return apperrors.NewValidationError("phone required", nil)
	}
	s.publishEvent(ctx, events.Event{
		Type:  events.EventCallbackRequested,
		Actor: actorFor(principal.ID),
		Payload: events.CallbackRequestedPayload{
			Phone:         strings.TrimSpace(phone),
			PreferredTime: strings.TrimSpace(preferredTime),
		},
	})
	return nil
}

func (s *ApplicationService) recordStatusChange(ctx context.Context, actorID, applicationID int64, oldStatus, newStatus domain.ApplicationStatus) error {
	if s.history == nil {
		return nil
	}
	entry := &domain.ApplicationHistory{
		ApplicationID: applicationID,
		ChangedByID:   &actorID,
		ChangeType:    domain.ChangeTypeStatus,
		OldValue:      map[string]any{"status": oldStatus},
		NewValue:      map[string]any{"status": newStatus},
	}
	return s.history.Create(ctx, entry)
}

func (s *ApplicationService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func actorFor(userID int64) events.Actor {
	return events.Actor{UserID: &userID}
}

func appendAttachmentNotes(message string, attachments []AttachmentInput) string {
	var b strings.Builder
	b.WriteString(message)
	if message != "" {
		b.WriteString("\n\n")
	}
	b.WriteString("Прикрепленные файлы:")
	for _, att := range attachments {
		preview := att.ContentBase64
		if len(preview) > attachmentPreviewLen {
			preview = preview[:attachmentPreviewLen] + "..."
		}
		b.WriteString(fmt.Sprintf("\n- %s (%s): %s", att.FileName, formatFileSize(att.SizeBytes), preview))
	}
	return b.String()
}

func formatFileSize(bytes int64) string {
	switch {
	case bytes >= 1<<20:
		return fmt.Sprintf("%.1f МБ", float64(bytes)/(1<<20))
	case bytes >= 1<<10:
		return fmt.Sprintf("%.1f КБ", float64(bytes)/(1<<10))
	default:
		return fmt.Sprintf("%d Б", bytes)
	}
}
