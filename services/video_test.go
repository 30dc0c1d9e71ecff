package services

import "testing"

func TestEmbedURLRewritesWatchLinks(t *testing.T) {
	got := EmbedURL("https://www.youtube.com/watch?v=S20m0X3Cunw")
	want := "https://www.youtube.com/embed/S20m0X3Cunw"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEmbedURLRewritesShortLinks(t *testing.T) {
	got := EmbedURL("https://youtu.be/libKVRa01L8")
	want := "https://youtube.com/embed/libKVRa01L8"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEmbedURLLeavesOtherURLsAlone(t *testing.T) {
	url := "https://vimeo.com/123456"
	if got := EmbedURL(url); got != url {
		t.Fatalf("got %q, want unchanged %q", got, url)
	}
}

func TestIsDirectMedia(t *testing.T) {
	direct := []string{
		"auxiliar/class.mp4",
		"https://storage.example.com/lessons/essay-writing.mp4",
		"track.webm",
		"clip.OGG",
	}
	for _, url := range direct {
		if !IsDirectMedia(url) {
			t.Fatalf("expected %q to be direct media", url)
		}
	}

	embedded := []string{
		"https://www.youtube.com/watch?v=S20m0X3Cunw",
		"slides.pdf",
		"clip.mp4.html",
	}
	for _, url := range embedded {
		if IsDirectMedia(url) {
			t.Fatalf("expected %q not to be direct media", url)
		}
	}
}

func TestResolveVideoSource(t *testing.T) {
	src := ResolveVideoSource("auxiliar/class.mp4")
	if src.Player != PlayerNative || src.URL != "auxiliar/class.mp4" {
		t.Fatalf("unexpected native source %+v", src)
	}

	src = ResolveVideoSource("https://www.youtube.com/watch?v=S20m0X3Cunw")
	if src.Player != PlayerEmbed {
		t.Fatalf("expected embed player, got %+v", src)
	}
	if src.URL != "https://www.youtube.com/embed/S20m0X3Cunw" {
		t.Fatalf("expected embed URL, got %q", src.URL)
	}
}
