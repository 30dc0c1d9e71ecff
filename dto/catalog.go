package dto

// Catalog DTOs
type LessonFilterRequest struct {
	Query   string `json:"query" query:"query"`
	Subject string `json:"subject" query:"subject"`
	Level   string `json:"level" query:"level" validate:"omitempty,oneof=Beginner Intermediate Advanced"`
}

func (r LessonFilterRequest) Validate() error {
	return GetValidator().Struct(r)
}

type LessonSummaryResponse struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Description string `json:"description"`
	Subject     string `json:"subject"`
	Level       string `json:"level"`
	Duration    string `json:"duration"`
	CoverURL    string `json:"cover_url"`
	Protected   bool   `json:"protected"`
}

type LessonCollectionResponse struct {
	Lessons []LessonSummaryResponse `json:"lessons"`
	Total   int                     `json:"total"`
}

type AudioItemResponse struct {
	Index    int    `json:"index"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	Duration string `json:"duration"`
}

type MaterialItemResponse struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Kind  string `json:"kind"`
}

// QuizQuestionResponse deliberately omits the correct option index; scoring
// is server-side.
type QuizQuestionResponse struct {
	Index   int      `json:"index"`
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
}

type LessonResponse struct {
	ID            uint   `json:"id"`
	Title         string `json:"title"`
	Subtitle      string `json:"subtitle"`
	Description   string `json:"description"`
	Subject       string `json:"subject"`
	Level         string `json:"level"`
	Duration      string `json:"duration"`
	CoverURL      string `json:"cover_url"`
	SchoolLogoURL string `json:"school_logo_url"`
	CenterLogoURL string `json:"center_logo_url"`
	SlideURL      string `json:"slide_url"`

	Gallery   []string               `json:"gallery"`
	Audios    []AudioItemResponse    `json:"audios"`
	Materials []MaterialItemResponse `json:"materials"`
	Quiz      []QuizQuestionResponse `json:"quiz"`
}
