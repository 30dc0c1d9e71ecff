// services/catalog.go
package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/edustream/portal_api/dto"
	"github.com/edustream/portal_api/model"
	"github.com/edustream/portal_api/shared"
)

// CatalogService serves the read-only lesson catalog and its filtered
// views. The catalog is loaded from the database on every request; it is
// small and the queries are indexed by primary key.
type CatalogService struct {
	context.DefaultService
	sqlSvc *SqliteService
}

const CATALOG_SVC = "catalog_svc"

func (svc CatalogService) Id() string {
	return CATALOG_SVC
}

func (svc *CatalogService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *CatalogService) Start() error {
	svc.sqlSvc = svc.Service(SQLITE_SVC).(*SqliteService)
	return nil
}

// ==================== FILTER ENGINE ====================

// FilterLessons applies the portal's three catalog predicates: a case-
// insensitive substring match on title or description, and exact matches
// on subject and level. Empty arguments match everything. The result is a
// stable subsequence of the input.
func FilterLessons(lessons []model.Lesson, query, subject, level string) []model.Lesson {
	needle := strings.ToLower(query)

	var out []model.Lesson
	for _, l := range lessons {
		matchQuery := needle == "" ||
			strings.Contains(strings.ToLower(l.Title), needle) ||
			strings.Contains(strings.ToLower(l.Description), needle)
		matchSubject := subject == "" || l.Subject == subject
		matchLevel := level == "" || l.Level == level

		if matchQuery && matchSubject && matchLevel {
			out = append(out, l)
		}
	}
	return out
}

// DistinctSubjects returns each subject once, in first-occurrence order.
func DistinctSubjects(lessons []model.Lesson) []string {
	seen := make(map[string]bool)
	var subjects []string
	for _, l := range lessons {
		if !seen[l.Subject] {
			seen[l.Subject] = true
			subjects = append(subjects, l.Subject)
		}
	}
	return subjects
}

// ==================== CATALOG METHODS ====================

func (svc *CatalogService) ListLessons(req dto.LessonFilterRequest) (*dto.LessonCollectionResponse, error) {
	lessons, err := svc.sqlSvc.GetLessons()
	if err != nil {
		return nil, err
	}

	filtered := FilterLessons(lessons, req.Query, req.Subject, req.Level)

	summaries := make([]dto.LessonSummaryResponse, len(filtered))
	for i, l := range filtered {
		summaries[i] = dto.LessonSummaryResponse{
			ID:          l.ID,
			Title:       l.Title,
			Subtitle:    l.Subtitle,
			Description: l.Description,
			Subject:     l.Subject,
			Level:       l.Level,
			Duration:    l.Duration,
			CoverURL:    l.CoverURL,
			Protected:   l.Protected(),
		}
	}

	return &dto.LessonCollectionResponse{
		Lessons: summaries,
		Total:   len(summaries),
	}, nil
}

func (svc *CatalogService) GetSubjects() ([]string, error) {
	lessons, err := svc.sqlSvc.GetLessons()
	if err != nil {
		return nil, err
	}
	return DistinctSubjects(lessons), nil
}

func (svc *CatalogService) GetLevels() ([]string, error) {
	return []string{shared.LevelBeginner, shared.LevelIntermediate, shared.LevelAdvanced}, nil
}

// LessonRecord returns the raw catalog row, for the classroom gate.
func (svc *CatalogService) LessonRecord(id uint) (*model.Lesson, error) {
	return svc.sqlSvc.GetLesson(id)
}

func (svc *CatalogService) GetLessonContent(id uint) (*dto.LessonResponse, error) {
	lesson, err := svc.sqlSvc.GetLesson(id)
	if err != nil {
		return nil, err
	}

	response := svc.MapLessonToResponse(lesson)
	return &response, nil
}

func (svc *CatalogService) MapLessonToResponse(lesson *model.Lesson) dto.LessonResponse {
	gallery := lesson.DecodeGallery()
	if gallery == nil {
		log.Printf("Malformed gallery for lesson %d, serving empty", lesson.ID)
		gallery = []string{}
	}

	rawAudios := lesson.DecodeAudios()
	if rawAudios == nil {
		log.Printf("Malformed audios for lesson %d, serving empty", lesson.ID)
	}
	audios := make([]dto.AudioItemResponse, len(rawAudios))
	for i, a := range rawAudios {
		audios[i] = dto.AudioItemResponse{
			Index:    i,
			Title:    a.Title,
			URL:      a.URL,
			Duration: a.Duration,
		}
	}

	rawMaterials := lesson.DecodeMaterials()
	if rawMaterials == nil {
		log.Printf("Malformed materials for lesson %d, serving empty", lesson.ID)
	}
	materials := make([]dto.MaterialItemResponse, len(rawMaterials))
	for i, m := range rawMaterials {
		materials[i] = dto.MaterialItemResponse{
			Title: m.Title,
			URL:   m.URL,
			Kind:  m.Kind,
		}
	}

	rawQuiz := lesson.DecodeQuiz()
	if rawQuiz == nil {
		log.Printf("Malformed quiz for lesson %d, serving empty", lesson.ID)
	}
	quiz := make([]dto.QuizQuestionResponse, len(rawQuiz))
	for i, q := range rawQuiz {
		quiz[i] = dto.QuizQuestionResponse{
			Index:   i,
			Prompt:  q.Prompt,
			Options: q.Options,
			// correct index stays server-side
		}
	}

	return dto.LessonResponse{
		ID:            lesson.ID,
		Title:         lesson.Title,
		Subtitle:      lesson.Subtitle,
		Description:   lesson.Description,
		Subject:       lesson.Subject,
		Level:         lesson.Level,
		Duration:      lesson.Duration,
		CoverURL:      lesson.CoverURL,
		SchoolLogoURL: lesson.SchoolLogoURL,
		CenterLogoURL: lesson.CenterLogoURL,
		SlideURL:      lesson.SlideURL,
		Gallery:       gallery,
		Audios:        audios,
		Materials:     materials,
		Quiz:          quiz,
	}
}

// ==================== ADMIN METHODS ====================

func (svc *CatalogService) CreateLessonFromRequest(req dto.CreateLessonRequest) (*dto.LessonResponse, error) {
	gallery, err := json.Marshal(req.Gallery)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal gallery: %v", err)
	}

	audios := make([]model.AudioItem, len(req.Audios))
	for i, a := range req.Audios {
		audios[i] = model.AudioItem{Title: a.Title, URL: a.URL, Duration: a.Duration}
	}
	audiosJSON, err := json.Marshal(audios)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal audios: %v", err)
	}

	materials := make([]model.MaterialItem, len(req.Materials))
	for i, m := range req.Materials {
		materials[i] = model.MaterialItem{Title: m.Title, URL: m.URL, Kind: m.Kind}
	}
	materialsJSON, err := json.Marshal(materials)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal materials: %v", err)
	}

	quiz := make([]model.QuizQuestion, len(req.Quiz))
	for i, q := range req.Quiz {
		quiz[i] = model.QuizQuestion{Prompt: q.Prompt, Options: q.Options, CorrectIndex: q.CorrectIndex}
	}
	quizJSON, err := json.Marshal(quiz)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal quiz: %v", err)
	}

	lesson := &model.Lesson{
		Title:         req.Title,
		Subtitle:      req.Subtitle,
		Description:   req.Description,
		Subject:       req.Subject,
		Level:         req.Level,
		Duration:      req.Duration,
		CoverURL:      req.CoverURL,
		SchoolLogoURL: req.SchoolLogoURL,
		CenterLogoURL: req.CenterLogoURL,
		VideoURL:      req.VideoURL,
		SlideURL:      req.SlideURL,
		Gallery:       gallery,
		Audios:        audiosJSON,
		Materials:     materialsJSON,
		Quiz:          quizJSON,
		Password:      req.Password,
	}

	created, err := svc.sqlSvc.CreateLesson(lesson)
	if err != nil {
		return nil, err
	}

	response := svc.MapLessonToResponse(created)
	return &response, nil
}
