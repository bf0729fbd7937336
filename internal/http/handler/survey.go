package handler

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"surveyapi/internal/http/middleware"
	"surveyapi/internal/model"
	"surveyapi/internal/service"
)

const defaultSurveyPageSize = "12"

// listSurveysQuery mirrors the survey list filters accepted in the query string.
// List values are comma separated.
type listSurveysQuery struct {
	Name      string   `query:"name"`
	Status    []string `query:"status" validate:"dive,oneof=draft scheduled inProgress paused completed"`
	Type      []string `query:"type" validate:"dive,oneof=link app"`
	CreatedBy []string `query:"createdBy" validate:"dive,oneof=you others"`
	SortBy    string   `query:"sortBy" validate:"omitempty,oneof=name createdAt updatedAt relevance"`
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (q listSurveysQuery) criteria(userID string) *model.SurveyFilterCriteria {
	f := &model.SurveyFilterCriteria{
		Name:   q.Name,
		SortBy: model.SortBy(q.SortBy),
	}
	if f.SortBy == "" {
		f.SortBy = model.SortByUpdatedAt
	}
	for _, s := range q.Status {
		f.Status = append(f.Status, model.SurveyStatus(s))
	}
	for _, t := range q.Type {
		f.Type = append(f.Type, model.SurveyType(t))
	}
	if len(q.CreatedBy) > 0 {
		f.CreatedBy = &model.CreatedByFilter{Value: q.CreatedBy, UserID: userID}
	}
	return f
}

// ListSurveys godoc
// @Summary List surveys of an environment
// @Tags surveys
// @Produce json
// @Param environmentId path string true "Environment ID"
// @Param limit query int false "Page size, 0 for all" default(12)
// @Param offset query int false "Offset" default(0)
// @Param name query string false "Name contains"
// @Param status query string false "Comma separated statuses"
// @Param type query string false "Comma separated types"
// @Param createdBy query string false "you, others"
// @Param sortBy query string false "name, createdAt, updatedAt or relevance"
// @Success 200 {object} map[string][]model.SurveySummary
// @Security BearerAuth
// @Router /api/v1/management/environments/{environmentId}/surveys [get]
func ListSurveys(svc service.SurveyService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		envID := c.Params("environmentId")
		if _, err := uuid.Parse(envID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		limit, err := strconv.Atoi(c.Query("limit", defaultSurveyPageSize))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		q := listSurveysQuery{
			Name:      c.Query("name"),
			Status:    splitList(c.Query("status")),
			Type:      splitList(c.Query("type")),
			CreatedBy: splitList(c.Query("createdBy")),
			SortBy:    c.Query("sortBy"),
		}
		if err := validateStruct(&q); err != nil {
			return err
		}

		items, err := svc.List(c.UserContext(), envID, limit, offset, q.criteria(middleware.UserIDFromCtx(c)))
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"data": items})
	}
}

// CountSurveys godoc
// @Summary Count surveys of an environment
// @Tags surveys
// @Produce json
// @Param environmentId path string true "Environment ID"
// @Success 200 {object} map[string]int
// @Security BearerAuth
// @Router /api/v1/management/environments/{environmentId}/surveys/count [get]
func CountSurveys(svc service.SurveyService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		n, err := svc.Count(c.UserContext(), c.Params("environmentId"))
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"count": n})
	}
}

// GetSurvey godoc
// @Summary Get a survey
// @Tags surveys
// @Produce json
// @Param surveyId path string true "Survey ID"
// @Success 200 {object} model.SurveySummary
// @Failure 404 {object} errorPayload
// @Security BearerAuth
// @Router /api/v1/management/surveys/{surveyId} [get]
func GetSurvey(svc service.SurveyService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("surveyId")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		survey, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return err
		}
		return c.JSON(survey)
	}
}

// DeleteSurvey godoc
// @Summary Delete a survey
// @Tags surveys
// @Param surveyId path string true "Survey ID"
// @Success 204
// @Failure 404 {object} errorPayload
// @Security BearerAuth
// @Router /api/v1/management/surveys/{surveyId} [delete]
func DeleteSurvey(svc service.SurveyService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("surveyId")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

type copySurveyRequest struct {
	EnvironmentID       string `json:"environmentId" validate:"required,uuid"`
	TargetEnvironmentID string `json:"targetEnvironmentId" validate:"required,uuid"`
}

// CopySurvey godoc
// @Summary Copy a survey to another environment
// @Tags surveys
// @Accept json
// @Produce json
// @Param surveyId path string true "Survey ID"
// @Param body body copySurveyRequest true "Source and target environments"
// @Success 201 {object} model.CopiedSurvey
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Security BearerAuth
// @Router /api/v1/management/surveys/{surveyId}/copy [post]
func CopySurvey(svc service.SurveyService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("surveyId")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var req copySurveyRequest
		if err := bindAndValidate(c, &req); err != nil {
			return err
		}

		copied, err := svc.CopyToOtherEnvironment(c.UserContext(), req.EnvironmentID, id, req.TargetEnvironmentID, middleware.UserIDFromCtx(c))
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(copied)
	}
}

// GenerateSingleUseLinks godoc
// @Summary Generate single-use survey links
// @Tags surveys
// @Produce json
// @Param surveyId path string true "Survey ID"
// @Param count query int false "Number of links (1-5000)" default(1)
// @Success 200 {object} map[string][]string
// @Failure 400 {object} errorPayload
// @Security BearerAuth
// @Router /api/v1/management/surveys/{surveyId}/single-use-links [get]
func GenerateSingleUseLinks(svc service.SurveyService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("surveyId")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		count, err := strconv.Atoi(c.Query("count", "1"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_COUNT", "invalid count")
		}
		links, err := svc.GenerateSingleUseLinks(c.UserContext(), id, count)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"data": links})
	}
}
