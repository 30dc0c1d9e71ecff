package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/edustream/portal_api/dto"
	"github.com/edustream/portal_api/shared"
)

// ClassroomHandler serves the access gate and everything behind it. All
// routes here require a session; everything past the gate additionally
// requires an open lesson.
type ClassroomHandler struct {
	classroomSvc ClassroomServiceInterface
	catalogSvc   CatalogServiceInterface
	mediaSvc     MediaServiceInterface
}

func NewClassroomHandler(classroomSvc ClassroomServiceInterface, catalogSvc CatalogServiceInterface, mediaSvc MediaServiceInterface) *ClassroomHandler {
	return &ClassroomHandler{
		classroomSvc: classroomSvc,
		catalogSvc:   catalogSvc,
		mediaSvc:     mediaSvc,
	}
}

func sessionID(c *fiber.Ctx) string {
	return c.Locals(shared.SessionID).(string)
}

// ==================== ACCESS GATE ====================

// @Summary Gate State
// @Description Get the current access gate state for this session
// @Tags gate
// @Produce json
// @Security BearerAuth
// @Success 200 {object} shared.Response{data=dto.GateStateResponse}
// @Router /api/v1/gate [get]
func (h *ClassroomHandler) GateState(c *fiber.Ctx) error {
	state := h.classroomSvc.GateState(sessionID(c))
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", state)
}

// @Summary Select Lesson
// @Description Select a lesson; unprotected lessons open immediately, protected ones prompt for a password
// @Tags gate
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SelectLessonRequest true "Lesson to open"
// @Success 200 {object} shared.Response{data=dto.GateStateResponse}
// @Router /api/v1/gate/select [post]
func (h *ClassroomHandler) SelectLesson(c *fiber.Ctx) error {
	var req dto.SelectLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	state, err := h.classroomSvc.SelectLesson(sessionID(c), req.LessonID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", state)
}

// @Summary Submit Password
// @Description Submit the password for the pending protected lesson
// @Tags gate
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UnlockRequest true "Lesson password"
// @Success 200 {object} shared.Response{data=dto.GateStateResponse}
// @Router /api/v1/gate/unlock [post]
func (h *ClassroomHandler) SubmitPassword(c *fiber.Ctx) error {
	var req dto.UnlockRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	state, err := h.classroomSvc.SubmitPassword(sessionID(c), req.Password)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", state)
}

// @Summary Cancel Unlock
// @Description Abandon the password prompt and return to the catalog
// @Tags gate
// @Produce json
// @Security BearerAuth
// @Success 200 {object} shared.Response{data=dto.GateStateResponse}
// @Router /api/v1/gate/cancel [post]
func (h *ClassroomHandler) CancelUnlock(c *fiber.Ctx) error {
	state := h.classroomSvc.CancelUnlock(sessionID(c))
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", state)
}

// @Summary Exit Lesson
// @Description Leave the open lesson, discarding its unlock and classroom state
// @Tags gate
// @Produce json
// @Security BearerAuth
// @Success 200 {object} shared.Response{data=dto.GateStateResponse}
// @Router /api/v1/gate/exit [post]
func (h *ClassroomHandler) ExitLesson(c *fiber.Ctx) error {
	state := h.classroomSvc.ExitLesson(sessionID(c))
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", state)
}

// ==================== CLASSROOM ====================

// @Summary Class State
// @Description Get the full classroom state for the open lesson
// @Tags class
// @Produce json
// @Security BearerAuth
// @Success 200 {object} shared.Response{data=dto.ClassStateResponse}
// @Router /api/v1/class [get]
func (h *ClassroomHandler) State(c *fiber.Ctx) error {
	state, err := h.classroomSvc.State(sessionID(c))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", state)
}

// @Summary Lesson Content
// @Description Get the open lesson's full content: gallery, audio tracks, materials and quiz questions
// @Tags class
// @Produce json
// @Security BearerAuth
// @Success 200 {object} shared.Response{data=dto.LessonResponse}
// @Router /api/v1/class/lesson [get]
func (h *ClassroomHandler) LessonContent(c *fiber.Ctx) error {
	lesson, err := h.classroomSvc.CurrentLesson(sessionID(c))
	if err != nil {
		return err
	}

	content, err := h.catalogSvc.GetLessonContent(lesson.ID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", content)
}

// @Summary Set Tab
// @Description Switch the active classroom tab
// @Tags class
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SetTabRequest true "Tab to activate"
// @Success 200 {object} shared.Response{data=dto.ClassStateResponse}
// @Router /api/v1/class/tab [put]
func (h *ClassroomHandler) SetTab(c *fiber.Ctx) error {
	var req dto.SetTabRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	state, err := h.classroomSvc.SetTab(sessionID(c), req.Tab)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", state)
}

// @Summary Video Source
// @Description Get the playable video source for the open lesson
// @Tags class
// @Produce json
// @Security BearerAuth
// @Success 200 {object} shared.Response{data=dto.VideoSourceResponse}
// @Router /api/v1/class/video [get]
func (h *ClassroomHandler) VideoSource(c *fiber.Ctx) error {
	src, err := h.classroomSvc.VideoSource(sessionID(c))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", src)
}

// @Summary Lesson Materials
// @Description Get download links for the open lesson's materials
// @Tags class
// @Produce json
// @Security BearerAuth
// @Success 200 {object} shared.Response{data=dto.MaterialListResponse}
// @Router /api/v1/class/materials [get]
func (h *ClassroomHandler) Materials(c *fiber.Ctx) error {
	lesson, err := h.classroomSvc.CurrentLesson(sessionID(c))
	if err != nil {
		return err
	}

	materials, err := h.mediaSvc.ResolveMaterials(lesson.ID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", materials)
}

// ==================== QUIZ ====================

// @Summary Quiz State
// @Description Get the quiz progression state for the open lesson
// @Tags quiz
// @Produce json
// @Security BearerAuth
// @Success 200 {object} shared.Response{data=dto.QuizStateResponse}
// @Router /api/v1/class/quiz [get]
func (h *ClassroomHandler) QuizState(c *fiber.Ctx) error {
	state, err := h.classroomSvc.QuizState(sessionID(c))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", state)
}

// @Summary Answer Question
// @Description Record the selected option for the current question, overwriting any earlier pick
// @Tags quiz
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AnswerRequest true "Selected option"
// @Success 200 {object} shared.Response{data=dto.QuizStateResponse}
// @Router /api/v1/class/quiz/answer [post]
func (h *ClassroomHandler) AnswerQuiz(c *fiber.Ctx) error {
	var req dto.AnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	state, err := h.classroomSvc.AnswerQuiz(sessionID(c), req.Option)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", state)
}

// @Summary Previous Question
// @Description Step the quiz cursor back one question
// @Tags quiz
// @Produce json
// @Security BearerAuth
// @Success 200 {object} shared.Response{data=dto.QuizStateResponse}
// @Router /api/v1/class/quiz/previous [post]
func (h *ClassroomHandler) PreviousQuestion(c *fiber.Ctx) error {
	state, err := h.classroomSvc.PreviousQuestion(sessionID(c))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", state)
}

// @Summary Next Question
// @Description Advance the quiz, or finish it on the last question; the current question must be answered
// @Tags quiz
// @Produce json
// @Security BearerAuth
// @Success 200 {object} shared.Response{data=dto.QuizStateResponse}
// @Router /api/v1/class/quiz/next [post]
func (h *ClassroomHandler) NextQuestion(c *fiber.Ctx) error {
	state, err := h.classroomSvc.NextQuestion(sessionID(c))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", state)
}

// @Summary Retry Quiz
// @Description Reset the quiz attempt: answers cleared, cursor back to the first question
// @Tags quiz
// @Produce json
// @Security BearerAuth
// @Success 200 {object} shared.Response{data=dto.QuizStateResponse}
// @Router /api/v1/class/quiz/retry [post]
func (h *ClassroomHandler) RetryQuiz(c *fiber.Ctx) error {
	state, err := h.classroomSvc.RetryQuiz(sessionID(c))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", state)
}

// ==================== AUDIO ====================

// @Summary Toggle Audio
// @Description Toggle an audio track; at most one track plays at a time
// @Tags audio
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AudioToggleRequest true "Track index"
// @Success 200 {object} shared.Response{data=dto.AudioToggleResponse}
// @Router /api/v1/class/audio/toggle [post]
func (h *ClassroomHandler) ToggleAudio(c *fiber.Ctx) error {
	var req dto.AudioToggleRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	result, err := h.classroomSvc.ToggleAudio(sessionID(c), req.Index)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", result)
}

// @Summary Report Audio Progress
// @Description Report a playback position for the active track; stale tokens are ignored
// @Tags audio
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AudioProgressRequest true "Playback position"
// @Success 200 {object} shared.Response{data=dto.AudioStateResponse}
// @Router /api/v1/class/audio/progress [post]
func (h *ClassroomHandler) AudioProgress(c *fiber.Ctx) error {
	var req dto.AudioProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	state, err := h.classroomSvc.AudioProgress(sessionID(c), req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", state)
}

// @Summary Report Audio Ended
// @Description Report natural end of the active track; progress stays as recorded
// @Tags audio
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AudioEventRequest true "Playback token"
// @Success 200 {object} shared.Response{data=dto.AudioStateResponse}
// @Router /api/v1/class/audio/ended [post]
func (h *ClassroomHandler) AudioEnded(c *fiber.Ctx) error {
	var req dto.AudioEventRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	state, err := h.classroomSvc.AudioEnded(sessionID(c), req.Token)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", state)
}

// @Summary Report Audio Error
// @Description Report a playback failure; the track reverts to its pre-activation progress
// @Tags audio
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AudioEventRequest true "Playback token and error detail"
// @Success 200 {object} shared.Response{data=dto.AudioStateResponse}
// @Router /api/v1/class/audio/error [post]
func (h *ClassroomHandler) AudioFailed(c *fiber.Ctx) error {
	var req dto.AudioEventRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	state, err := h.classroomSvc.AudioFailed(sessionID(c), req.Token, req.Detail)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", state)
}

// ==================== FULLSCREEN ====================

// @Summary Toggle Fullscreen
// @Description Toggle fullscreen on the video or slides surface; a second toggle always exits
// @Tags class
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.FullscreenRequest true "Target surface"
// @Success 200 {object} shared.Response{data=dto.FullscreenStateResponse}
// @Router /api/v1/class/fullscreen [post]
func (h *ClassroomHandler) ToggleFullscreen(c *fiber.Ctx) error {
	var req dto.FullscreenRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	state, err := h.classroomSvc.ToggleFullscreen(sessionID(c), req.Surface)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", state)
}
