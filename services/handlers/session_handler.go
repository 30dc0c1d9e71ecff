package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/edustream/portal_api/dto"
	"github.com/edustream/portal_api/shared"
)

type SessionHandler struct {
	sessionSvc SessionServiceInterface
}

func NewSessionHandler(sessionSvc SessionServiceInterface) *SessionHandler {
	return &SessionHandler{
		sessionSvc: sessionSvc,
	}
}

// @Summary Start Session
// @Description Start a visitor session from a display name and receive a bearer token
// @Tags session
// @Accept json
// @Produce json
// @Param request body dto.StartSessionRequest true "Display name"
// @Success 201 {object} shared.Response{data=dto.SessionResponse}
// @Router /api/v1/session [post]
func (h *SessionHandler) StartSession(c *fiber.Ctx) error {
	var req dto.StartSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	session, err := h.sessionSvc.StartSession(req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusCreated, "Session started", session)
}

// @Summary Current Session
// @Description Get the session record behind the presented bearer token
// @Tags session
// @Produce json
// @Security BearerAuth
// @Success 200 {object} shared.Response{data=dto.CurrentSessionResponse}
// @Router /api/v1/session [get]
func (h *SessionHandler) CurrentSession(c *fiber.Ctx) error {
	sessionID := c.Locals(shared.SessionID).(string)

	session, err := h.sessionSvc.CurrentSession(sessionID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", dto.CurrentSessionResponse{
		SessionID:    session.ID,
		Name:         session.Name,
		LastLessonID: session.LastLessonID,
	})
}

// @Summary Logout
// @Description End the session and discard its record
// @Tags session
// @Produce json
// @Security BearerAuth
// @Success 200 {object} shared.Response
// @Router /api/v1/session [delete]
func (h *SessionHandler) Logout(c *fiber.Ctx) error {
	sessionID := c.Locals(shared.SessionID).(string)

	if err := h.sessionSvc.Logout(sessionID); err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Logged out", nil)
}
