package dto

import "fmt"

type AdminLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r AdminLoginRequest) Validate() error {
	return GetValidator().Struct(r)
}

type AdminLoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}

// Lesson creation DTOs
type CreateAudioItemRequest struct {
	Title    string `json:"title" validate:"required"`
	URL      string `json:"url" validate:"required"`
	Duration string `json:"duration"`
}

type CreateMaterialItemRequest struct {
	Title string `json:"title" validate:"required"`
	URL   string `json:"url" validate:"required"`
	Kind  string `json:"kind" validate:"required,oneof=pdf doc ppt xls link"`
}

type CreateQuizQuestionRequest struct {
	Prompt       string   `json:"prompt" validate:"required"`
	Options      []string `json:"options" validate:"required,min=1"`
	CorrectIndex int      `json:"correct_index" validate:"gte=0"`
}

type CreateLessonRequest struct {
	Title       string `json:"title" validate:"required"`
	Subtitle    string `json:"subtitle"`
	Description string `json:"description"`
	Subject     string `json:"subject" validate:"required"`
	Level       string `json:"level" validate:"required,oneof=Beginner Intermediate Advanced"`
	Duration    string `json:"duration"`

	CoverURL      string `json:"cover_url"`
	SchoolLogoURL string `json:"school_logo_url"`
	CenterLogoURL string `json:"center_logo_url"`
	VideoURL      string `json:"video_url"`
	SlideURL      string `json:"slide_url"`

	Gallery   []string                    `json:"gallery"`
	Audios    []CreateAudioItemRequest    `json:"audios" validate:"dive"`
	Materials []CreateMaterialItemRequest `json:"materials" validate:"dive"`
	Quiz      []CreateQuizQuestionRequest `json:"quiz" validate:"dive"`

	Password string `json:"password"`
}

func (r CreateLessonRequest) Validate() error {
	if err := GetValidator().Struct(r); err != nil {
		return err
	}
	// correct_index must address an existing option
	for i, q := range r.Quiz {
		if q.CorrectIndex >= len(q.Options) {
			return fmt.Errorf("quiz question %d: correct_index %d out of range (%d options)",
				i, q.CorrectIndex, len(q.Options))
		}
	}
	return nil
}
