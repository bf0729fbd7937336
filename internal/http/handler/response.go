package handler

import (
	"github.com/gofiber/fiber/v2"

	"surveyapi/internal/model"
	"surveyapi/internal/service"
)

// CreateResponse godoc
// @Summary Submit a survey response
// @Tags client
// @Accept json
// @Produce json
// @Param environmentId path string true "Environment ID"
// @Param body body model.ResponseInput true "Response"
// @Success 201 {object} map[string]string
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /api/v2/client/{environmentId}/responses [post]
func CreateResponse(svc service.ResponseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.ResponseInput
		if err := bindAndValidate(c, &input); err != nil {
			return err
		}
		res, err := svc.Create(c.UserContext(), c.Params("environmentId"), &input)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": res.ID})
	}
}
