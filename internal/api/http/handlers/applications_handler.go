package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lead-portal/internal/api/dto"
	"github.com/spec-kit/lead-portal/internal/auth"
	"github.com/spec-kit/lead-portal/internal/domain"
	"github.com/spec-kit/lead-portal/internal/service"
	apperrors "github.com/spec-kit/lead-portal/pkg/util"
)

// ApplicationsHandler manages the lead intake and dashboard endpoints.
type ApplicationsHandler struct {
	applications *service.ApplicationService
	export       *service.ExportService
}

// NewApplicationsHandler constructs handler.
func NewApplicationsHandler(applicationService *service.ApplicationService, exportService *service.ExportService) *ApplicationsHandler {
	return &ApplicationsHandler{applications: applicationService, export: exportService}
}

// Submit POST /applications. Public: the landing page posts here without
// authentication.
func (h *ApplicationsHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	attachments := make([]service.AttachmentInput, 0, len(req.Attachments))
	for _, att := range req.Attachments {
		attachments = append(attachments, service.AttachmentInput{
			FileName:      att.FileName,
			SizeBytes:     att.SizeBytes,
			ContentBase64: att.ContentBase64,
		})
	}

	app, err := h.applications.Submit(c.Context(), service.SubmitInput{
		Name:        req.Name,
		Phone:       req.Phone,
		Email:       req.Email,
		Service:     req.Service,
		Message:     req.Message,
		UserID:      req.UserID,
		Attachments: attachments,
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":        true,
		"application_id": app.ID,
		"message":        "Заявка успешно отправлена",
	})
}

// List GET /applications.
func (h *ApplicationsHandler) List(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	apps, err := h.applications.List(c.Context(), principal.User, parseListFilter(c))
	if err != nil {
		return err
	}
	return c.JSON(applicationList(apps))
}

// Stats GET /applications/stats.
func (h *ApplicationsHandler) Stats(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	counts, err := h.applications.Stats(c.Context(), principal.User)
	if err != nil {
		return err
	}
	return c.JSON(dto.StatsResponse{
		Total:      counts.Total,
		New:        counts.New,
		InProgress: counts.InProgress,
		Completed:  counts.Completed,
	})
}

// Get GET /applications/:id.
func (h *ApplicationsHandler) Get(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return apperrors.NewValidationError("invalid application id", nil)
	}
	app, history, err := h.applications.Get(c.Context(), principal.User, id)
	if err != nil {
		return err
	}

	detail := dto.ApplicationDetailResponse{
		ApplicationResponse: applicationResponse(app),
		History:             historyResponses(history),
	}
	return c.JSON(detail)
}

// UpdateStatus PUT /applications/status. Admin/director only (route guard).
func (h *ApplicationsHandler) UpdateStatus(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.ApplicationID <= 0 {
		return apperrors.NewValidationError("application_id required", nil)
	}

	app, err := h.applications.UpdateStatus(c.Context(), principal.User, req.ApplicationID, req.Status, req.ExpectedUpdatedAt)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":     true,
		"application": applicationResponse(app),
	})
}

// Export GET /applications/export. Streams an XLSX of the filtered set.
func (h *ApplicationsHandler) Export(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	apps, err := h.applications.List(c.Context(), principal.User, parseListFilter(c))
	if err != nil {
		return err
	}

	buf, err := h.export.Build(apps)
	if err != nil {
		return err
	}

	fileName := h.export.FileName(time.Now())
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return c.Send(buf.Bytes())
}

// RequestCallback POST /support/callback.
func (h *ApplicationsHandler) RequestCallback(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.CallbackRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.applications.RequestCallback(c.Context(), principal.User, req.Phone, req.PreferredTime); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}

func requirePrincipal(c *fiber.Ctx) (*auth.Principal, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	return principal, nil
}

func parseListFilter(c *fiber.Ctx) service.ListFilter {
	filter := service.ListFilter{}
	if statusStr := strings.TrimSpace(c.Query("status")); statusStr != "" && statusStr != "all" {
		status := domain.ApplicationStatus(statusStr)
		filter.Status = &status
	}
	if search := c.Query("search"); search != "" {
		filter.Search = &search
	}
	if userIDStr := c.Query("user_id"); userIDStr != "" {
		if userID, err := strconv.ParseInt(userIDStr, 10, 64); err == nil {
			filter.UserID = &userID
		}
	}
	if pageSize := parseInt(c.Query("page_size"), 0); pageSize > 0 {
		page := parseInt(c.Query("page"), 1)
		filter.Limit = pageSize
		filter.Offset = (page - 1) * pageSize
	}
	return filter
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func applicationResponse(app *domain.Application) dto.ApplicationResponse {
	return dto.ApplicationResponse{
		ID:        app.ID,
		Name:      app.Name,
		Phone:     app.Phone,
		Email:     app.Email,
		Service:   app.Service,
		Message:   app.Message,
		Status:    app.Status,
		UserID:    app.UserID,
		CreatedAt: app.CreatedAt,
		UpdatedAt: app.UpdatedAt,
	}
}

func applicationList(apps []domain.Application) dto.ApplicationListResponse {
	items := make([]dto.ApplicationResponse, 0, len(apps))
	for i := range apps {
		items = append(items, applicationResponse(&apps[i]))
	}
	return dto.ApplicationListResponse{Applications: items, Count: len(items)}
}

func historyResponses(entries []domain.ApplicationHistory) []dto.HistoryEntryResponse {
	resp := make([]dto.HistoryEntryResponse, 0, len(entries))
	for _, entry := range entries {
		resp = append(resp, dto.HistoryEntryResponse{
			ID:          entry.ID,
			ChangedByID: entry.ChangedByID,
			ChangeType:  string(entry.ChangeType),
			OldValue:    entry.OldValue,
			NewValue:    entry.NewValue,
			CreatedAt:   entry.CreatedAt,
		})
	}
	return resp
}
