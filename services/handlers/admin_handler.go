package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/edustream/portal_api/dto"
	"github.com/edustream/portal_api/shared"
)

type AdminHandler struct {
	authSvc    AdminAuthServiceInterface
	catalogSvc CatalogServiceInterface
	mediaSvc   MediaServiceInterface
}

func NewAdminHandler(authSvc AdminAuthServiceInterface, catalogSvc CatalogServiceInterface, mediaSvc MediaServiceInterface) *AdminHandler {
	return &AdminHandler{
		authSvc:    authSvc,
		catalogSvc: catalogSvc,
		mediaSvc:   mediaSvc,
	}
}

// @Summary Admin Login
// @Description Authenticate the catalog operator and receive an admin bearer token
// @Tags admin
// @Accept json
// @Produce json
// @Param request body dto.AdminLoginRequest true "Operator credentials"
// @Success 200 {object} shared.Response{data=dto.AdminLoginResponse}
// @Router /api/v1/admin/login [post]
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var req dto.AdminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.authSvc.Login(req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Login successful", resp)
}

// @Summary Create Lesson
// @Description Create a catalog lesson with its nested gallery, audio, material and quiz content
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateLessonRequest true "Lesson definition"
// @Success 201 {object} shared.Response{data=dto.LessonResponse}
// @Router /api/v1/admin/lessons [post]
func (h *AdminHandler) CreateLesson(c *fiber.Ctx) error {
	var req dto.CreateLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	lesson, err := h.catalogSvc.CreateLessonFromRequest(req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusCreated, "Lesson created", lesson)
}

// @Summary Upload Lesson Material
// @Description Upload a document into the object store and attach it to a lesson
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param lessonId path int true "Lesson ID"
// @Param title formData string true "Material title"
// @Param kind formData string true "Material kind" Enums(pdf, doc, ppt, xls)
// @Param file formData file true "Document file"
// @Success 201 {object} shared.Response{data=dto.MediaUploadResponse}
// @Router /api/v1/admin/lessons/{lessonId}/materials [post]
func (h *AdminHandler) UploadMaterial(c *fiber.Ctx) error {
	lessonID, err := parseLessonID(c)
	if err != nil {
		return err
	}

	title := c.FormValue("title")
	kind := c.FormValue("kind")
	if title == "" || kind == "" {
		return shared.NewBadRequestError(fiber.ErrBadRequest, "Title and kind are required")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return shared.NewBadRequestError(err, "File is required")
	}

	result, err := h.mediaSvc.UploadLessonMaterial(lessonID, title, kind, file)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusCreated, "Material uploaded", result)
}

// @Summary Upload Lesson Audio
// @Description Upload an audio track into the object store and attach it to a lesson
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param lessonId path int true "Lesson ID"
// @Param title formData string true "Track title"
// @Param duration formData string false "Display duration, e.g. 12:30"
// @Param file formData file true "Audio file"
// @Success 201 {object} shared.Response{data=dto.MediaUploadResponse}
// @Router /api/v1/admin/lessons/{lessonId}/audio [post]
func (h *AdminHandler) UploadAudio(c *fiber.Ctx) error {
	lessonID, err := parseLessonID(c)
	if err != nil {
		return err
	}

	title := c.FormValue("title")
	if title == "" {
		return shared.NewBadRequestError(fiber.ErrBadRequest, "Title is required")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return shared.NewBadRequestError(err, "File is required")
	}

	result, err := h.mediaSvc.UploadLessonAudio(lessonID, title, c.FormValue("duration"), file)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusCreated, "Audio uploaded", result)
}

// @Summary Delete Lesson Asset
// @Description Remove an uploaded object from the store
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param key query string true "Object key"
// @Success 200 {object} shared.Response
// @Router /api/v1/admin/assets [delete]
func (h *AdminHandler) DeleteAsset(c *fiber.Ctx) error {
	key := c.Query("key")
	if key == "" {
		return shared.NewBadRequestError(fiber.ErrBadRequest, "Object key is required")
	}

	if err := h.mediaSvc.DeleteLessonAsset(key); err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Asset deleted", nil)
}

// @Summary Media Statistics
// @Description Summarize the stored lesson assets
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} shared.Response
// @Router /api/v1/admin/media/stats [get]
func (h *AdminHandler) MediaStats(c *fiber.Ctx) error {
	stats, err := h.mediaSvc.MediaStatistics()
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", stats)
}
