package services

import (
	"testing"

	"github.com/edustream/portal_api/model"
	"github.com/edustream/portal_api/shared"
)

func sampleCatalog() []model.Lesson {
	return []model.Lesson{
		{ID: 1, Title: "Quantum Physics: The Beginning", Description: "Matter at microscopic scales", Subject: "Science", Level: shared.LevelIntermediate},
		{ID: 2, Title: "The Solar System Up Close", Description: "Planets and moons", Subject: "Science", Level: shared.LevelBeginner},
		{ID: 3, Title: "Essay Writing Fundamentals", Description: "Structured argument", Subject: "Language", Level: shared.LevelAdvanced},
	}
}

func TestFilterLessonsEmptyFiltersMatchEverything(t *testing.T) {
	lessons := sampleCatalog()

	got := FilterLessons(lessons, "", "", "")
	if len(got) != len(lessons) {
		t.Fatalf("expected %d lessons, got %d", len(lessons), len(got))
	}
	for i := range got {
		if got[i].ID != lessons[i].ID {
			t.Fatalf("order changed at %d: got id %d, want %d", i, got[i].ID, lessons[i].ID)
		}
	}
}

func TestFilterLessonsQueryIsCaseInsensitive(t *testing.T) {
	got := FilterLessons(sampleCatalog(), "QUANTUM", "", "")
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("expected lesson 1 only, got %v", got)
	}
}

func TestFilterLessonsQueryMatchesDescription(t *testing.T) {
	got := FilterLessons(sampleCatalog(), "moons", "", "")
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("expected lesson 2 only, got %v", got)
	}
}

func TestFilterLessonsSubjectIsExactMatch(t *testing.T) {
	got := FilterLessons(sampleCatalog(), "", "Science", "")
	if len(got) != 2 {
		t.Fatalf("expected 2 science lessons, got %d", len(got))
	}

	// a substring of a subject is not a match
	got = FilterLessons(sampleCatalog(), "", "Sci", "")
	if len(got) != 0 {
		t.Fatalf("expected no lessons for partial subject, got %d", len(got))
	}
}

func TestFilterLessonsPredicatesCombineWithAnd(t *testing.T) {
	got := FilterLessons(sampleCatalog(), "the", "Science", shared.LevelBeginner)
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("expected lesson 2 only, got %v", got)
	}

	got = FilterLessons(sampleCatalog(), "quantum", "Science", shared.LevelBeginner)
	if len(got) != 0 {
		t.Fatalf("expected no match when level disagrees, got %v", got)
	}
}

func TestFilterLessonsNoMatchReturnsEmpty(t *testing.T) {
	got := FilterLessons(sampleCatalog(), "astrobiology", "", "")
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %d lessons", len(got))
	}
}

func TestDistinctSubjectsFirstOccurrenceOrder(t *testing.T) {
	subjects := DistinctSubjects(sampleCatalog())
	want := []string{"Science", "Language"}
	if len(subjects) != len(want) {
		t.Fatalf("expected %v, got %v", want, subjects)
	}
	for i := range want {
		if subjects[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, subjects)
		}
	}
}
