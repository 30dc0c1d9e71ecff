package handlers

import (
	"mime/multipart"

	"github.com/edustream/portal_api/dto"
	"github.com/edustream/portal_api/model"
)

type SessionServiceInterface interface {
	StartSession(req dto.StartSessionRequest) (*dto.SessionResponse, error)
	CurrentSession(sessionID string) (*model.UserSession, error)
	Logout(sessionID string) error
}

type CatalogServiceInterface interface {
	ListLessons(req dto.LessonFilterRequest) (*dto.LessonCollectionResponse, error)
	GetSubjects() ([]string, error)
	GetLevels() ([]string, error)
	GetLessonContent(id uint) (*dto.LessonResponse, error)
	CreateLessonFromRequest(req dto.CreateLessonRequest) (*dto.LessonResponse, error)
}

type ClassroomServiceInterface interface {
	GateState(sessionID string) dto.GateStateResponse
	SelectLesson(sessionID string, lessonID uint) (*dto.GateStateResponse, error)
	SubmitPassword(sessionID, password string) (*dto.GateStateResponse, error)
	CancelUnlock(sessionID string) dto.GateStateResponse
	ExitLesson(sessionID string) dto.GateStateResponse

	State(sessionID string) (*dto.ClassStateResponse, error)
	SetTab(sessionID, tab string) (*dto.ClassStateResponse, error)
	VideoSource(sessionID string) (*dto.VideoSourceResponse, error)
	CurrentLesson(sessionID string) (*model.Lesson, error)

	QuizState(sessionID string) (*dto.QuizStateResponse, error)
	AnswerQuiz(sessionID string, option int) (*dto.QuizStateResponse, error)
	PreviousQuestion(sessionID string) (*dto.QuizStateResponse, error)
	NextQuestion(sessionID string) (*dto.QuizStateResponse, error)
	RetryQuiz(sessionID string) (*dto.QuizStateResponse, error)

	ToggleAudio(sessionID string, index int) (*dto.AudioToggleResponse, error)
	AudioProgress(sessionID string, req dto.AudioProgressRequest) (*dto.AudioStateResponse, error)
	AudioEnded(sessionID, token string) (*dto.AudioStateResponse, error)
	AudioFailed(sessionID, token, detail string) (*dto.AudioStateResponse, error)

	ToggleFullscreen(sessionID, surface string) (*dto.FullscreenStateResponse, error)
}

type AdminAuthServiceInterface interface {
	Login(req dto.AdminLoginRequest) (*dto.AdminLoginResponse, error)
}

type MediaServiceInterface interface {
	ResolveMaterials(lessonID uint) (*dto.MaterialListResponse, error)
	UploadLessonMaterial(lessonID uint, title, kind string, file *multipart.FileHeader) (*dto.MediaUploadResponse, error)
	UploadLessonAudio(lessonID uint, title, duration string, file *multipart.FileHeader) (*dto.MediaUploadResponse, error)
	DeleteLessonAsset(objectKey string) error
	MediaStatistics() (map[string]interface{}, error)
}
