package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"surveyapi/internal/service"
)

type uploadForm struct {
	SurveyID string `form:"surveyId" validate:"required,uuid"`
}

// UploadFile godoc
// @Summary Upload a file for a file-upload question
// @Tags client
// @Accept multipart/form-data
// @Produce json
// @Param environmentId path string true "Environment ID"
// @Param surveyId formData string true "Survey ID"
// @Param file formData file true "File"
// @Success 201 {object} model.UploadedFile
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /api/v2/client/{environmentId}/storage [post]
func UploadFile(svc service.UploadService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}
		form := uploadForm{SurveyID: c.FormValue("surveyId")}
		if err := validateStruct(&form); err != nil {
			return err
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		file, err := svc.Upload(c.UserContext(), c.Params("environmentId"), form.SurveyID, f, fh.Filename, ct, fh.Size)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(file)
	}
}

// DownloadFile godoc
// @Summary Download an uploaded file
// @Tags client
// @Produce octet-stream
// @Param environmentId path string true "Environment ID"
// @Param surveyId path string true "Survey ID"
// @Param fileName path string true "Stored file name"
// @Success 200 {file} file
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /api/v2/client/{environmentId}/storage/{surveyId}/{fileName} [get]
func DownloadFile(svc service.UploadService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		surveyID := c.Params("surveyId")
		if _, err := uuid.Parse(surveyID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		rc, info, err := svc.Download(c.UserContext(), c.Params("environmentId"), surveyID, c.Params("fileName"))
		if err != nil {
			return err
		}
		if info.ContentType != "" {
			c.Set(fiber.HeaderContentType, info.ContentType)
		}
		if info.ETag != "" {
			c.Set(fiber.HeaderETag, strconv.Quote(info.ETag))
		}
		return c.SendStream(rc, int(info.Size))
	}
}
