package services

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	fiberSwagger "github.com/gofiber/swagger"
	log "github.com/sirupsen/logrus"

	docs "github.com/edustream/portal_api/docs"
	"github.com/edustream/portal_api/services/handlers"
	"github.com/edustream/portal_api/shared"
)

// authGuard is the slice of the auth middleware the router needs. The
// middleware lives in its own package and is resolved by service id to
// keep the import graph acyclic.
type authGuard interface {
	RequiredSession() fiber.Handler
	RequireAdmin() fiber.Handler
}

const authMiddlewareID = "auth"

type HttpService struct {
	context.DefaultService

	sessionSvc   *SessionService
	catalogSvc   *CatalogService
	classroomSvc *ClassroomService
	adminAuthSvc *AdminAuthService
	mediaSvc     *MediaService
	monitorSvc   *MonitoringService

	port   int
	server *fiber.App
}

const HTTP_SVC = "http_svc"

func (svc HttpService) Id() string {
	return HTTP_SVC
}

func (svc *HttpService) Configure(ctx *context.Context) error {
	if port := os.Getenv("HTTP_PORT"); port != "" {
		var err error
		if svc.port, err = strconv.Atoi(port); err != nil {
			return err
		}
	} else {
		svc.port = 8000
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *HttpService) Start() error {
	svc.sessionSvc = svc.Service(SESSION_SVC).(*SessionService)
	svc.catalogSvc = svc.Service(CATALOG_SVC).(*CatalogService)
	svc.classroomSvc = svc.Service(CLASSROOM_SVC).(*ClassroomService)
	svc.adminAuthSvc = svc.Service(ADMIN_AUTH_SVC).(*AdminAuthService)
	svc.mediaSvc = svc.Service(MEDIA_SVC).(*MediaService)
	svc.monitorSvc = svc.Service(MONITORING_SVC).(*MonitoringService)

	guard := svc.Service(authMiddlewareID).(authGuard)

	docs.SwaggerInfo.BasePath = ""

	app := fiber.New(fiber.Config{
		ErrorHandler: svc.handleError,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(MonitoringMiddleware(svc.monitorSvc))

	app.Get("/ping", svc.ping)
	app.Get("/swagger/*", fiberSwagger.HandlerDefault)

	sessionHandler := handlers.NewSessionHandler(svc.sessionSvc)
	catalogHandler := handlers.NewCatalogHandler(svc.catalogSvc)
	classroomHandler := handlers.NewClassroomHandler(svc.classroomSvc, svc.catalogSvc, svc.mediaSvc)
	adminHandler := handlers.NewAdminHandler(svc.adminAuthSvc, svc.catalogSvc, svc.mediaSvc)

	v1 := app.Group("/api/v1")
	v1.Get("/ping", svc.ping)

	// Session
	v1.Post("/session", sessionHandler.StartSession)
	v1.Get("/session", guard.RequiredSession(), sessionHandler.CurrentSession)
	v1.Delete("/session", guard.RequiredSession(), sessionHandler.Logout)

	// Catalog
	lessons := v1.Group("/lessons", guard.RequiredSession())
	lessons.Get("/", catalogHandler.ListLessons)
	lessons.Get("/subjects", catalogHandler.GetSubjects)
	lessons.Get("/levels", catalogHandler.GetLevels)

	// Access gate
	gate := v1.Group("/gate", guard.RequiredSession())
	gate.Get("/", classroomHandler.GateState)
	gate.Post("/select", classroomHandler.SelectLesson)
	gate.Post("/unlock", classroomHandler.SubmitPassword)
	gate.Post("/cancel", classroomHandler.CancelUnlock)
	gate.Post("/exit", classroomHandler.ExitLesson)

	// Classroom
	class := v1.Group("/class", guard.RequiredSession())
	class.Get("/", classroomHandler.State)
	class.Get("/lesson", classroomHandler.LessonContent)
	class.Put("/tab", classroomHandler.SetTab)
	class.Get("/video", classroomHandler.VideoSource)
	class.Get("/materials", classroomHandler.Materials)
	class.Post("/fullscreen", classroomHandler.ToggleFullscreen)

	quiz := class.Group("/quiz")
	quiz.Get("/", classroomHandler.QuizState)
	quiz.Post("/answer", classroomHandler.AnswerQuiz)
	quiz.Post("/previous", classroomHandler.PreviousQuestion)
	quiz.Post("/next", classroomHandler.NextQuestion)
	quiz.Post("/retry", classroomHandler.RetryQuiz)

	audio := class.Group("/audio")
	audio.Post("/toggle", classroomHandler.ToggleAudio)
	audio.Post("/progress", classroomHandler.AudioProgress)
	audio.Post("/ended", classroomHandler.AudioEnded)
	audio.Post("/error", classroomHandler.AudioFailed)

	// Admin
	admin := v1.Group("/admin")
	admin.Post("/login", adminHandler.Login)
	admin.Post("/lessons", guard.RequireAdmin(), adminHandler.CreateLesson)
	admin.Post("/lessons/:lessonId/materials", guard.RequireAdmin(), adminHandler.UploadMaterial)
	admin.Post("/lessons/:lessonId/audio", guard.RequireAdmin(), adminHandler.UploadAudio)
	admin.Delete("/assets", guard.RequireAdmin(), adminHandler.DeleteAsset)
	admin.Get("/media/stats", guard.RequireAdmin(), adminHandler.MediaStats)

	app.Use(func(c *fiber.Ctx) error {
		return shared.ResponseJSON(c, http.StatusNotFound, "Not Found", "page not found")
	})

	svc.server = app
	return app.Listen(fmt.Sprintf(":%v", svc.port))
}

func (svc *HttpService) Shutdown() {
	if svc.server != nil {
		_ = svc.server.Shutdown()
	}
}

// @Summary Ping
// @Description This endpoint checks the health of the service
// @Tags health
// @Accept  json
// @Produce json
// @Success 200 {object} shared.Response{data=string}
// @Router /ping [get]
func (svc *HttpService) ping(c *fiber.Ctx) error {
	c.Set("Cache-Control", "max-age=10")

	return shared.ResponseJSON(c, http.StatusOK, "Success", "pong")
}

// handleError maps service errors onto the response envelope. Typed
// application errors keep their status and message; anything else is a
// logged 500.
func (svc *HttpService) handleError(c *fiber.Ctx, err error) error {
	if appErr, ok := shared.GetAppError(err); ok {
		return shared.ResponseJSON(c, appErr.StatusCode, appErr.Message, appErr.Data)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return shared.ResponseJSON(c, fiberErr.Code, fiberErr.Message, nil)
	}

	log.WithError(err).Error("Unhandled request error")
	return shared.ResponseInternalError(c, err)
}
