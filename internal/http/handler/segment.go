package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"surveyapi/internal/service"
)

// ListSegments godoc
// @Summary List segments a survey can load
// @Tags segments
// @Produce json
// @Param environmentId path string true "Environment ID"
// @Success 200 {object} map[string][]model.Segment
// @Security BearerAuth
// @Router /api/v1/management/environments/{environmentId}/segments [get]
func ListSegments(svc service.SegmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		envID := c.Params("environmentId")
		if _, err := uuid.Parse(envID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		segments, err := svc.ListLoadable(c.UserContext(), envID)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"data": segments})
	}
}

type loadSegmentRequest struct {
	SegmentID string `json:"segmentId" validate:"required,uuid"`
}

// LoadSegment godoc
// @Summary Load a segment into a survey
// @Tags segments
// @Accept json
// @Produce json
// @Param surveyId path string true "Survey ID"
// @Param body body loadSegmentRequest true "Segment to load"
// @Success 200 {object} model.SurveySegment
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Security BearerAuth
// @Router /api/v1/management/surveys/{surveyId}/segment [put]
func LoadSegment(svc service.SegmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("surveyId")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var req loadSegmentRequest
		if err := bindAndValidate(c, &req); err != nil {
			return err
		}
		res, err := svc.Load(c.UserContext(), id, req.SegmentID)
		if err != nil {
			return err
		}
		return c.JSON(res)
	}
}
