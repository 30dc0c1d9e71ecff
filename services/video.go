package services

import (
	"strings"

	"github.com/edustream/portal_api/dto"
)

const (
	PlayerNative = "native"
	PlayerEmbed  = "embed"
)

// directMediaSuffixes are the file extensions rendered by the native
// player; everything else goes through an embedded frame.
var directMediaSuffixes = []string{".mp4", ".webm", ".ogg"}

// EmbedURL rewrites known video-hosting watch URLs into their embeddable
// form. Unknown URLs pass through unchanged.
func EmbedURL(raw string) string {
	if strings.Contains(raw, "youtube.com/watch?v=") {
		return strings.Replace(raw, "watch?v=", "embed/", 1)
	}
	if strings.Contains(raw, "youtu.be/") {
		return strings.Replace(raw, "youtu.be/", "youtube.com/embed/", 1)
	}
	return raw
}

func IsDirectMedia(raw string) bool {
	lower := strings.ToLower(raw)
	for _, suffix := range directMediaSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}

// ResolveVideoSource classifies a lesson video URL for the client player.
func ResolveVideoSource(raw string) dto.VideoSourceResponse {
	if IsDirectMedia(raw) {
		return dto.VideoSourceResponse{URL: raw, Player: PlayerNative}
	}
	return dto.VideoSourceResponse{URL: EmbedURL(raw), Player: PlayerEmbed}
}
