package dto

type MediaUploadResponse struct {
	ObjectKey   string `json:"object_key"`
	URL         string `json:"url"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
}

// MaterialLinkResponse is a material with its URL resolved for download:
// bucket-relative keys become presigned links, absolute URLs pass through.
type MaterialLinkResponse struct {
	Title        string `json:"title"`
	Kind         string `json:"kind"`
	URL          string `json:"url"`
	Downloadable bool   `json:"downloadable"`
}

type MaterialListResponse struct {
	LessonID  uint                   `json:"lesson_id"`
	Materials []MaterialLinkResponse `json:"materials"`
}

// UploadInfo carries the store-side facts about a completed upload.
type UploadInfo struct {
	Size int64
}
