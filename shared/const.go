package shared

const (
	SessionID = "session_id"
	UserRole  = "role"

	RoleStudent = "student"
	RoleAdmin   = "admin"

	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelAdvanced     = "Advanced"

	TabVideo   = "video"
	TabSlides  = "slides"
	TabQuiz    = "quiz"
	TabGallery = "gallery"

	SurfaceVideo  = "video"
	SurfaceSlides = "slides"

	MaterialPDF  = "pdf"
	MaterialDoc  = "doc"
	MaterialPPT  = "ppt"
	MaterialXLS  = "xls"
	MaterialLink = "link"
)

// SessionKeyPrefix is the fixed key prefix for persisted portal sessions.
const SessionKeyPrefix = "edu_session:"
