// seeders/lesson_seeder.go
package seeders

import (
	"encoding/json"
	"errors"
	"log"

	"github.com/edustream/portal_api/model"
	"github.com/edustream/portal_api/shared"
	"gorm.io/gorm"
)

// LessonSeeder loads the demo catalog
type LessonSeeder struct {
	db *gorm.DB
}

// NewLessonSeeder creates a new lesson seeder
func NewLessonSeeder(db *gorm.DB) *LessonSeeder {
	return &LessonSeeder{db: db}
}

// SeedLessons inserts the demo lessons, skipping any title already present
func (s *LessonSeeder) SeedLessons() error {
	lessons := s.getDemoLessons()

	for _, lesson := range lessons {
		var existing model.Lesson
		err := s.db.Where("title = ?", lesson.Title).First(&existing).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				if err := s.db.Create(&lesson).Error; err != nil {
					log.Printf("Error creating lesson %s: %v", lesson.Title, err)
					return err
				}
				log.Printf("Created lesson: %s", lesson.Title)
			} else {
				log.Printf("Error checking lesson %s: %v", lesson.Title, err)
				return err
			}
		} else {
			log.Printf("Lesson %s already exists, skipping", lesson.Title)
		}
	}

	log.Println("Lesson seeding completed successfully")
	return nil
}

func mustJSON(v interface{}) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}

// getDemoLessons returns the sample catalog shipped with the portal
func (s *LessonSeeder) getDemoLessons() []model.Lesson {
	return []model.Lesson{
		{
			Title:         "Quantum Physics: The Beginning",
			Subtitle:      "Exploring wave-particle duality.",
			Description:   "A foundational class on how matter behaves at microscopic scales.",
			Subject:       "Science",
			Level:         shared.LevelIntermediate,
			Duration:      "45 min",
			CoverURL:      "https://images.unsplash.com/photo-1635070041078-e363dbe005cb?auto=format&fit=crop&q=80&w=800",
			SchoolLogoURL: "https://cdn-icons-png.flaticon.com/512/3841/3841519.png",
			CenterLogoURL: "https://cdn-icons-png.flaticon.com/512/2830/2830305.png",
			VideoURL:      "https://www.youtube.com/watch?v=S20m0X3Cunw",
			SlideURL:      "https://www.w3.org/WAI/ER/tests/xhtml/testfiles/resources/pdf/dummy.pdf",
			Gallery: mustJSON([]string{
				"https://images.unsplash.com/photo-1635070041078-e363dbe005cb?auto=format&fit=crop&q=80&w=600",
				"https://images.unsplash.com/photo-1451187580459-43490279c0fa?auto=format&fit=crop&q=80&w=600",
			}),
			Audios: mustJSON([]model.AudioItem{
				{Title: "Audio Introduction", URL: "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-1.mp3", Duration: "05:30"},
			}),
			Materials: mustJSON([]model.MaterialItem{
				{Title: "Course Booklet", URL: "lessons/1/materials/booklet.pdf", Kind: shared.MaterialPDF},
			}),
			Quiz: mustJSON([]model.QuizQuestion{
				{
					Prompt:       "What does the double-slit experiment demonstrate?",
					Options:      []string{"Light is a particle", "Light is a wave", "Wave-particle duality", "Nothing"},
					CorrectIndex: 2,
				},
			}),
			Password: "123",
		},
		{
			Title:       "The Solar System Up Close",
			Subtitle:    "Eight planets, one star, countless questions.",
			Description: "A guided tour through the planets, their moons and what holds it all together.",
			Subject:     "Science",
			Level:       shared.LevelBeginner,
			Duration:    "30 min",
			CoverURL:    "https://images.unsplash.com/photo-1614732414444-096e5f1122d5?auto=format&fit=crop&q=80&w=800",
			VideoURL:    "https://youtu.be/libKVRa01L8",
			SlideURL:    "https://www.w3.org/WAI/ER/tests/xhtml/testfiles/resources/pdf/dummy.pdf",
			Gallery: mustJSON([]string{
				"https://images.unsplash.com/photo-1614732414444-096e5f1122d5?auto=format&fit=crop&q=80&w=600",
			}),
			Audios: mustJSON([]model.AudioItem{
				{Title: "Planetary Soundscape", URL: "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-2.mp3", Duration: "04:12"},
			}),
			Materials: mustJSON([]model.MaterialItem{
				{Title: "NASA Solar System Overview", URL: "https://science.nasa.gov/solar-system/", Kind: shared.MaterialLink},
			}),
			Quiz: mustJSON([]model.QuizQuestion{
				{
					Prompt:       "Which planet is closest to the Sun?",
					Options:      []string{"Venus", "Mercury", "Mars", "Earth"},
					CorrectIndex: 1,
				},
				{
					Prompt:       "What keeps the planets in orbit?",
					Options:      []string{"Magnetism", "Solar wind", "Gravity", "Inertia alone"},
					CorrectIndex: 2,
				},
			}),
		},
		{
			Title:       "Essay Writing Fundamentals",
			Subtitle:    "From blank page to structured argument.",
			Description: "Thesis statements, paragraph structure and revision techniques for clear writing.",
			Subject:     "Language",
			Level:       shared.LevelAdvanced,
			Duration:    "50 min",
			CoverURL:    "https://images.unsplash.com/photo-1455390582262-044cdead277a?auto=format&fit=crop&q=80&w=800",
			VideoURL:    "https://storage.example.com/lessons/essay-writing.mp4",
			SlideURL:    "https://www.w3.org/WAI/ER/tests/xhtml/testfiles/resources/pdf/dummy.pdf",
			Gallery:     mustJSON([]string{}),
			Audios:      mustJSON([]model.AudioItem{}),
			Materials: mustJSON([]model.MaterialItem{
				{Title: "Essay Template", URL: "lessons/3/materials/template.doc", Kind: shared.MaterialDoc},
			}),
			Quiz: mustJSON([]model.QuizQuestion{
				{
					Prompt:       "Where does the thesis statement usually belong?",
					Options:      []string{"In the conclusion", "In the introduction", "In a footnote", "Nowhere"},
					CorrectIndex: 1,
				},
			}),
		},
	}
}
