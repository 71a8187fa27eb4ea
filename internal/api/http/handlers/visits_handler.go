package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lead-portal/internal/api/dto"
	"github.com/spec-kit/lead-portal/internal/service"
)

// VisitsHandler exposes the site visit counter.
type VisitsHandler struct {
	visits *service.VisitService
}

func NewVisitsHandler(visitService *service.VisitService) *VisitsHandler {
	return &VisitsHandler{visits: visitService}
}

// Record POST /visits. Called once per page load.
func (h *VisitsHandler) Record(c *fiber.Ctx) error {
	total, today, err := h.visits.RecordVisit(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(dto.VisitsResponse{Total: total, Today: today})
}

// Counts GET /visits.
func (h *VisitsHandler) Counts(c *fiber.Ctx) error {
	total, today, err := h.visits.Counts(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(dto.VisitsResponse{Total: total, Today: today})
}
