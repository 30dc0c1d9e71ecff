package dto

// Session DTOs
type StartSessionRequest struct {
	Name string `json:"name" validate:"required,min=1,max=80"`
}

func (r StartSessionRequest) Validate() error {
	return GetValidator().Struct(r)
}

type SessionResponse struct {
	SessionID string `json:"session_id"`
	Name      string `json:"name"`
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}

type CurrentSessionResponse struct {
	SessionID    string `json:"session_id"`
	Name         string `json:"name"`
	LastLessonID *uint  `json:"last_lesson_id,omitempty"`
}

type TokenPair struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}
