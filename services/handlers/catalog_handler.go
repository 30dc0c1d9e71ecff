package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/edustream/portal_api/dto"
	"github.com/edustream/portal_api/shared"
)

type CatalogHandler struct {
	catalogSvc CatalogServiceInterface
}

func NewCatalogHandler(catalogSvc CatalogServiceInterface) *CatalogHandler {
	return &CatalogHandler{
		catalogSvc: catalogSvc,
	}
}

// @Summary List Lessons
// @Description List lesson summaries, filtered by search text, subject and level
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param q query string false "Search text matched against title and description"
// @Param subject query string false "Exact subject filter"
// @Param level query string false "Exact level filter" Enums(Beginner, Intermediate, Advanced)
// @Success 200 {object} shared.Response{data=dto.LessonCollectionResponse}
// @Router /api/v1/lessons [get]
func (h *CatalogHandler) ListLessons(c *fiber.Ctx) error {
	req := dto.LessonFilterRequest{
		Query:   c.Query("q"),
		Subject: c.Query("subject"),
		Level:   c.Query("level"),
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	lessons, err := h.catalogSvc.ListLessons(req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", lessons)
}

// @Summary Get Subjects
// @Description List the distinct subjects present in the catalog
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {object} shared.Response{data=[]string}
// @Router /api/v1/lessons/subjects [get]
func (h *CatalogHandler) GetSubjects(c *fiber.Ctx) error {
	subjects, err := h.catalogSvc.GetSubjects()
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", subjects)
}

// @Summary Get Levels
// @Description List the difficulty levels lessons are tagged with
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {object} shared.Response{data=[]string}
// @Router /api/v1/lessons/levels [get]
func (h *CatalogHandler) GetLevels(c *fiber.Ctx) error {
	levels, err := h.catalogSvc.GetLevels()
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", levels)
}

func parseLessonID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("lessonId"), 10, 32)
	if err != nil {
		return 0, shared.NewBadRequestError(err, "Invalid lesson id")
	}
	return uint(id), nil
}
