package dto

// Access gate DTOs
type SelectLessonRequest struct {
	LessonID uint `json:"lesson_id" validate:"required"`
}

func (r SelectLessonRequest) Validate() error {
	return GetValidator().Struct(r)
}

type UnlockRequest struct {
	Password string `json:"password" validate:"required"`
}

func (r UnlockRequest) Validate() error {
	return GetValidator().Struct(r)
}

type GateStateResponse struct {
	State           string `json:"state"` // idle, password_prompt, unlocked
	PendingLessonID *uint  `json:"pending_lesson_id,omitempty"`
	LessonID        *uint  `json:"lesson_id,omitempty"`
	Error           string `json:"error,omitempty"`
}

// Classroom DTOs
type SetTabRequest struct {
	Tab string `json:"tab" validate:"required,oneof=video slides quiz gallery"`
}

func (r SetTabRequest) Validate() error {
	return GetValidator().Struct(r)
}

type AnswerRequest struct {
	Option int `json:"option" validate:"gte=0"`
}

func (r AnswerRequest) Validate() error {
	return GetValidator().Struct(r)
}

type QuizStateResponse struct {
	Available       bool                  `json:"available"`
	QuestionCount   int                   `json:"question_count"`
	CurrentIndex    int                   `json:"current_index"`
	CurrentQuestion *QuizQuestionResponse `json:"current_question,omitempty"`
	Answers         map[int]int           `json:"answers"`
	CanGoBack       bool                  `json:"can_go_back"`
	CanAdvance      bool                  `json:"can_advance"`
	Finished        bool                  `json:"finished"`
	Score           int                   `json:"score"`
	Total           int                   `json:"total"`
}

type AudioToggleRequest struct {
	Index int `json:"index" validate:"gte=0"`
}

func (r AudioToggleRequest) Validate() error {
	return GetValidator().Struct(r)
}

type AudioToggleResponse struct {
	ActiveIndex   *int   `json:"active_index,omitempty"`
	PlaybackToken string `json:"playback_token,omitempty"`
	URL           string `json:"url,omitempty"`
}

type AudioProgressRequest struct {
	Index    int     `json:"index" validate:"gte=0"`
	Token    string  `json:"token" validate:"required"`
	Position float64 `json:"position" validate:"gte=0"`
	Duration float64 `json:"duration" validate:"gt=0"`
}

func (r AudioProgressRequest) Validate() error {
	return GetValidator().Struct(r)
}

type AudioEventRequest struct {
	Token  string `json:"token" validate:"required"`
	Detail string `json:"detail,omitempty"`
}

func (r AudioEventRequest) Validate() error {
	return GetValidator().Struct(r)
}

type AudioStateResponse struct {
	ActiveIndex *int            `json:"active_index,omitempty"`
	Progress    map[int]float64 `json:"progress"`
}

type FullscreenRequest struct {
	Surface string `json:"surface" validate:"required,oneof=video slides"`
}

func (r FullscreenRequest) Validate() error {
	return GetValidator().Struct(r)
}

type FullscreenStateResponse struct {
	Surface string `json:"surface"` // video, slides or empty when not fullscreen
}

type VideoSourceResponse struct {
	URL    string `json:"url"`
	Player string `json:"player"` // native for direct media files, embed otherwise
}

type ClassStateResponse struct {
	LessonID   uint                `json:"lesson_id"`
	Title      string              `json:"title"`
	ActiveTab  string              `json:"active_tab"`
	Video      VideoSourceResponse `json:"video"`
	Quiz       QuizStateResponse   `json:"quiz"`
	Audio      AudioStateResponse  `json:"audio"`
	Fullscreen string              `json:"fullscreen"`
}
