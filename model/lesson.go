// model/lesson.go
package model

import (
	"encoding/json"
	"time"
)

// Lesson is a single unit of portal content: video, slides, quiz, gallery,
// downloadable materials and audio tracks. The nested sequences are stored
// as JSON text columns; the catalog is read-only at runtime.
type Lesson struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Title       string `json:"title" gorm:"not null"`
	Subtitle    string `json:"subtitle"`
	Description string `json:"description" gorm:"type:text"`
	Subject     string `json:"subject" gorm:"not null"`
	Level       string `json:"level" gorm:"not null"` // Beginner, Intermediate, Advanced
	Duration    string `json:"duration"`              // display label only

	CoverURL      string `json:"cover_url"`
	SchoolLogoURL string `json:"school_logo_url"`
	CenterLogoURL string `json:"center_logo_url"`
	VideoURL      string `json:"video_url"`
	SlideURL      string `json:"slide_url"`

	Gallery   json.RawMessage `json:"gallery" gorm:"type:text"`   // JSON array of image URLs
	Audios    json.RawMessage `json:"audios" gorm:"type:text"`    // JSON array of AudioItem
	Materials json.RawMessage `json:"materials" gorm:"type:text"` // JSON array of MaterialItem
	Quiz      json.RawMessage `json:"quiz" gorm:"type:text"`      // JSON array of QuizQuestion

	// Empty password means the lesson is unprotected. The password is a
	// shared classroom key, not an account secret.
	Password string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AudioItem is one playable track. Duration is a display string; the
// authoritative duration comes from playback itself.
type AudioItem struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	Duration string `json:"duration"`
}

// MaterialItem is one downloadable file. Kind selects a display icon only.
type MaterialItem struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Kind  string `json:"kind"` // pdf, doc, ppt, xls, link
}

type QuizQuestion struct {
	Prompt       string   `json:"prompt"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
}

func (l *Lesson) Protected() bool {
	return l.Password != ""
}

// DecodeGallery returns the gallery URLs, empty on absent or malformed data.
func (l *Lesson) DecodeGallery() []string {
	var urls []string
	if len(l.Gallery) == 0 {
		return urls
	}
	if err := json.Unmarshal(l.Gallery, &urls); err != nil {
		return nil
	}
	return urls
}

func (l *Lesson) DecodeAudios() []AudioItem {
	var items []AudioItem
	if len(l.Audios) == 0 {
		return items
	}
	if err := json.Unmarshal(l.Audios, &items); err != nil {
		return nil
	}
	return items
}

func (l *Lesson) DecodeMaterials() []MaterialItem {
	var items []MaterialItem
	if len(l.Materials) == 0 {
		return items
	}
	if err := json.Unmarshal(l.Materials, &items); err != nil {
		return nil
	}
	return items
}

func (l *Lesson) DecodeQuiz() []QuizQuestion {
	var questions []QuizQuestion
	if len(l.Quiz) == 0 {
		return questions
	}
	if err := json.Unmarshal(l.Quiz, &questions); err != nil {
		return nil
	}
	return questions
}
