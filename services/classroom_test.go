package services

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/edustream/portal_api/dto"
	"github.com/edustream/portal_api/model"
	"github.com/edustream/portal_api/shared"
)

type stubLessons struct {
	byID map[uint]*model.Lesson
}

func (s stubLessons) LessonRecord(id uint) (*model.Lesson, error) {
	lesson, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("lesson %d not found", id)
	}
	return lesson, nil
}

func rawJSON(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return b
}

func newClassroomFixture(t *testing.T) *ClassroomService {
	t.Helper()

	quiz := rawJSON(t, []model.QuizQuestion{
		{Prompt: "first", Options: []string{"a", "b", "c", "d"}, CorrectIndex: 2},
		{Prompt: "second", Options: []string{"a", "b", "c", "d"}, CorrectIndex: 0},
		{Prompt: "third", Options: []string{"a", "b", "c", "d"}, CorrectIndex: 1},
	})
	audios := rawJSON(t, []model.AudioItem{
		{Title: "intro", URL: "https://cdn.example.com/intro.mp3"},
		{Title: "deep dive", URL: "https://cdn.example.com/deep.mp3"},
	})

	protected := &model.Lesson{
		ID:       1,
		Title:    "Quantum Physics: The Beginning",
		VideoURL: "https://www.youtube.com/watch?v=S20m0X3Cunw",
		Quiz:     quiz,
		Audios:   audios,
		Password: "123",
	}
	open := &model.Lesson{
		ID:       2,
		Title:    "The Solar System Up Close",
		VideoURL: "auxiliar/solar.mp4",
		Quiz:     quiz,
		Audios:   audios,
	}
	noQuiz := &model.Lesson{
		ID:       3,
		Title:    "Essay Writing Fundamentals",
		VideoURL: "auxiliar/essay.mp4",
		Quiz:     rawJSON(t, []model.QuizQuestion{}),
		Audios:   audios,
	}

	return &ClassroomService{
		lessons: stubLessons{byID: map[uint]*model.Lesson{1: protected, 2: open, 3: noQuiz}},
		rooms:   make(map[string]*classRoom),
	}
}

func unlock(t *testing.T, svc *ClassroomService, session string) {
	t.Helper()
	if _, err := svc.SelectLesson(session, 1); err != nil {
		t.Fatalf("select: %v", err)
	}
	state, err := svc.SubmitPassword(session, "123")
	if err != nil {
		t.Fatalf("unlock: %v", err)
	}
	if state.State != GateUnlocked {
		t.Fatalf("expected unlocked gate, got %s", state.State)
	}
}

// ==================== GATE ====================

func TestSelectUnprotectedLessonOpensImmediately(t *testing.T) {
	svc := newClassroomFixture(t)

	state, err := svc.SelectLesson("s1", 2)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if state.State != GateUnlocked {
		t.Fatalf("expected unlocked, got %s", state.State)
	}
	if state.LessonID == nil || *state.LessonID != 2 {
		t.Fatalf("expected lesson 2 open, got %+v", state)
	}

	class, err := svc.State("s1")
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if class.ActiveTab != shared.TabVideo {
		t.Fatalf("expected video tab on open, got %s", class.ActiveTab)
	}
}

func TestSelectProtectedLessonPrompts(t *testing.T) {
	svc := newClassroomFixture(t)

	state, err := svc.SelectLesson("s1", 1)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if state.State != GatePasswordPrompt {
		t.Fatalf("expected password prompt, got %s", state.State)
	}
	if state.PendingLessonID == nil || *state.PendingLessonID != 1 {
		t.Fatalf("expected pending lesson 1, got %+v", state)
	}

	if _, err := svc.State("s1"); err == nil {
		t.Fatal("expected classroom to be closed while prompting")
	}
}

func TestWrongPasswordKeepsPromptWithError(t *testing.T) {
	svc := newClassroomFixture(t)
	if _, err := svc.SelectLesson("s1", 1); err != nil {
		t.Fatalf("select: %v", err)
	}

	state, err := svc.SubmitPassword("s1", "124")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if state.State != GatePasswordPrompt {
		t.Fatalf("expected prompt to survive, got %s", state.State)
	}
	if state.Error == "" {
		t.Fatal("expected a visible error after a wrong password")
	}

	// the error persists until the next submit or cancel
	if got := svc.GateState("s1"); got.Error != state.Error {
		t.Fatalf("expected error to persist, got %q", got.Error)
	}

	// retries are unlimited
	state, err = svc.SubmitPassword("s1", "123")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if state.State != GateUnlocked || state.Error != "" {
		t.Fatalf("expected clean unlock, got %+v", state)
	}
}

func TestCancelUnlockReturnsToIdle(t *testing.T) {
	svc := newClassroomFixture(t)
	if _, err := svc.SelectLesson("s1", 1); err != nil {
		t.Fatalf("select: %v", err)
	}
	if _, err := svc.SubmitPassword("s1", "bad"); err != nil {
		t.Fatalf("submit: %v", err)
	}

	state := svc.CancelUnlock("s1")
	if state.State != GateIdle || state.Error != "" || state.PendingLessonID != nil {
		t.Fatalf("expected clean idle gate, got %+v", state)
	}
}

func TestSubmitPasswordWithoutPromptConflicts(t *testing.T) {
	svc := newClassroomFixture(t)
	if _, err := svc.SubmitPassword("s1", "123"); err == nil {
		t.Fatal("expected conflict when no lesson is pending")
	}
}

func TestExitLessonDiscardsUnlock(t *testing.T) {
	svc := newClassroomFixture(t)
	unlock(t, svc, "s1")

	state := svc.ExitLesson("s1")
	if state.State != GateIdle {
		t.Fatalf("expected idle after exit, got %s", state.State)
	}

	// re-entering the same lesson prompts again
	gate, err := svc.SelectLesson("s1", 1)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if gate.State != GatePasswordPrompt {
		t.Fatalf("expected prompt on re-entry, got %s", gate.State)
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	svc := newClassroomFixture(t)
	unlock(t, svc, "s1")

	if gate := svc.GateState("s2"); gate.State != GateIdle {
		t.Fatalf("expected fresh session to be idle, got %s", gate.State)
	}
}

// ==================== QUIZ ====================

func TestQuizAnswerOverwriteAndScore(t *testing.T) {
	svc := newClassroomFixture(t)
	unlock(t, svc, "s1")

	// q0: pick wrong, then overwrite with correct
	if _, err := svc.AnswerQuiz("s1", 0); err != nil {
		t.Fatalf("answer: %v", err)
	}
	state, err := svc.AnswerQuiz("s1", 2)
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if state.Answers[0] != 2 {
		t.Fatalf("expected overwrite to 2, got %d", state.Answers[0])
	}

	if _, err := svc.NextQuestion("s1"); err != nil {
		t.Fatalf("next: %v", err)
	}
	if _, err := svc.AnswerQuiz("s1", 0); err != nil { // q1 correct
		t.Fatalf("answer: %v", err)
	}
	if _, err := svc.NextQuestion("s1"); err != nil {
		t.Fatalf("next: %v", err)
	}
	if _, err := svc.AnswerQuiz("s1", 3); err != nil { // q2 wrong
		t.Fatalf("answer: %v", err)
	}

	state, err = svc.NextQuestion("s1") // finishes on the last question
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	if !state.Finished {
		t.Fatal("expected quiz to finish")
	}
	if state.Score != 2 || state.Total != 3 {
		t.Fatalf("expected score 2/3, got %d/%d", state.Score, state.Total)
	}
	if state.CurrentQuestion != nil {
		t.Fatal("finished quiz should not expose a current question")
	}
}

func TestNextRequiresAnswer(t *testing.T) {
	svc := newClassroomFixture(t)
	unlock(t, svc, "s1")

	if _, err := svc.NextQuestion("s1"); err == nil {
		t.Fatal("expected next to fail with no answer recorded")
	}
}

func TestPreviousOnlyPastFirstQuestion(t *testing.T) {
	svc := newClassroomFixture(t)
	unlock(t, svc, "s1")

	if _, err := svc.PreviousQuestion("s1"); err == nil {
		t.Fatal("expected previous to fail on the first question")
	}

	if _, err := svc.AnswerQuiz("s1", 2); err != nil {
		t.Fatalf("answer: %v", err)
	}
	if _, err := svc.NextQuestion("s1"); err != nil {
		t.Fatalf("next: %v", err)
	}

	state, err := svc.PreviousQuestion("s1")
	if err != nil {
		t.Fatalf("previous: %v", err)
	}
	if state.CurrentIndex != 0 {
		t.Fatalf("expected cursor back at 0, got %d", state.CurrentIndex)
	}
	if state.Answers[0] != 2 {
		t.Fatal("going back must not discard answers")
	}
}

func TestRetryResetsAttempt(t *testing.T) {
	svc := newClassroomFixture(t)
	unlock(t, svc, "s1")

	for i := 0; i < 3; i++ {
		if _, err := svc.AnswerQuiz("s1", 0); err != nil {
			t.Fatalf("answer: %v", err)
		}
		if _, err := svc.NextQuestion("s1"); err != nil {
			t.Fatalf("next: %v", err)
		}
	}

	state, err := svc.RetryQuiz("s1")
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if state.Finished || state.CurrentIndex != 0 || len(state.Answers) != 0 {
		t.Fatalf("expected a clean attempt, got %+v", state)
	}
}

func TestLessonWithoutQuizRejectsProgression(t *testing.T) {
	svc := newClassroomFixture(t)
	if _, err := svc.SelectLesson("s1", 3); err != nil {
		t.Fatalf("select: %v", err)
	}

	state, err := svc.QuizState("s1")
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if state.Available {
		t.Fatal("expected no quiz to be available")
	}
	if state.QuestionCount != 0 || state.CurrentQuestion != nil {
		t.Fatalf("expected empty quiz state, got %+v", state)
	}

	if _, err := svc.AnswerQuiz("s1", 0); err == nil {
		t.Fatal("expected answer to be rejected without a quiz")
	}
	if _, err := svc.NextQuestion("s1"); err == nil {
		t.Fatal("expected next to be rejected without a quiz")
	}
	if _, err := svc.PreviousQuestion("s1"); err == nil {
		t.Fatal("expected previous to be rejected without a quiz")
	}
	if _, err := svc.RetryQuiz("s1"); err == nil {
		t.Fatal("expected retry to be rejected without a quiz")
	}
}

func TestAnswerOutOfRangeOptionRejected(t *testing.T) {
	svc := newClassroomFixture(t)
	unlock(t, svc, "s1")

	if _, err := svc.AnswerQuiz("s1", 4); err == nil {
		t.Fatal("expected out-of-range option to be rejected")
	}
}

// ==================== AUDIO ====================

func TestToggleSameTrackStops(t *testing.T) {
	svc := newClassroomFixture(t)
	unlock(t, svc, "s1")

	resp, err := svc.ToggleAudio("s1", 0)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if resp.ActiveIndex == nil || *resp.ActiveIndex != 0 || resp.PlaybackToken == "" {
		t.Fatalf("expected track 0 active with a token, got %+v", resp)
	}

	resp, err = svc.ToggleAudio("s1", 0)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if resp.ActiveIndex != nil {
		t.Fatalf("expected playback stopped, got %+v", resp)
	}
}

func TestToggleOtherTrackSwitchesExclusively(t *testing.T) {
	svc := newClassroomFixture(t)
	unlock(t, svc, "s1")

	first, err := svc.ToggleAudio("s1", 0)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	second, err := svc.ToggleAudio("s1", 1)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if second.ActiveIndex == nil || *second.ActiveIndex != 1 {
		t.Fatalf("expected track 1 active, got %+v", second)
	}
	if second.PlaybackToken == first.PlaybackToken {
		t.Fatal("a new activation must carry a new token")
	}

	// progress reported under the first token is stale and ignored
	state, err := svc.AudioProgress("s1", dto.AudioProgressRequest{
		Index: 0, Token: first.PlaybackToken, Position: 30, Duration: 60,
	})
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if state.Progress[0] != 0 {
		t.Fatalf("stale callback must not record progress, got %v", state.Progress)
	}
}

func TestAudioProgressIsMonotonic(t *testing.T) {
	svc := newClassroomFixture(t)
	unlock(t, svc, "s1")

	resp, err := svc.ToggleAudio("s1", 0)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}

	report := func(pos float64) *dto.AudioStateResponse {
		state, err := svc.AudioProgress("s1", dto.AudioProgressRequest{
			Index: 0, Token: resp.PlaybackToken, Position: pos, Duration: 100,
		})
		if err != nil {
			t.Fatalf("progress: %v", err)
		}
		return state
	}

	report(50)
	state := report(30) // a seek backwards does not lower recorded progress
	if state.Progress[0] != 50 {
		t.Fatalf("expected progress held at 50, got %v", state.Progress[0])
	}
	state = report(80)
	if state.Progress[0] != 80 {
		t.Fatalf("expected progress 80, got %v", state.Progress[0])
	}
}

func TestReselectingTrackStartsProgressOver(t *testing.T) {
	svc := newClassroomFixture(t)
	unlock(t, svc, "s1")

	// play track 0 through to the end
	resp, err := svc.ToggleAudio("s1", 0)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if _, err := svc.AudioProgress("s1", dto.AudioProgressRequest{
		Index: 0, Token: resp.PlaybackToken, Position: 100, Duration: 100,
	}); err != nil {
		t.Fatalf("progress: %v", err)
	}
	if _, err := svc.AudioEnded("s1", resp.PlaybackToken); err != nil {
		t.Fatalf("ended: %v", err)
	}

	// a fresh run of the same track records from the start again
	resp, err = svc.ToggleAudio("s1", 0)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	state, err := svc.AudioProgress("s1", dto.AudioProgressRequest{
		Index: 0, Token: resp.PlaybackToken, Position: 5, Duration: 100,
	})
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if state.Progress[0] != 5 {
		t.Fatalf("expected progress 5 on the new run, got %v", state.Progress[0])
	}
}

func TestAudioEndedClearsActiveKeepsProgress(t *testing.T) {
	svc := newClassroomFixture(t)
	unlock(t, svc, "s1")

	resp, err := svc.ToggleAudio("s1", 0)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if _, err := svc.AudioProgress("s1", dto.AudioProgressRequest{
		Index: 0, Token: resp.PlaybackToken, Position: 100, Duration: 100,
	}); err != nil {
		t.Fatalf("progress: %v", err)
	}

	state, err := svc.AudioEnded("s1", resp.PlaybackToken)
	if err != nil {
		t.Fatalf("ended: %v", err)
	}
	if state.ActiveIndex != nil {
		t.Fatal("expected no active track after natural end")
	}
	if state.Progress[0] != 100 {
		t.Fatalf("expected progress kept at 100, got %v", state.Progress[0])
	}
}

func TestAudioFailureRevertsProgress(t *testing.T) {
	svc := newClassroomFixture(t)
	unlock(t, svc, "s1")

	// establish prior progress of 40 on track 0
	resp, err := svc.ToggleAudio("s1", 0)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if _, err := svc.AudioProgress("s1", dto.AudioProgressRequest{
		Index: 0, Token: resp.PlaybackToken, Position: 40, Duration: 100,
	}); err != nil {
		t.Fatalf("progress: %v", err)
	}
	if _, err := svc.ToggleAudio("s1", 0); err != nil {
		t.Fatalf("stop: %v", err)
	}

	// a second activation fails after reporting further progress
	resp, err = svc.ToggleAudio("s1", 0)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if _, err := svc.AudioProgress("s1", dto.AudioProgressRequest{
		Index: 0, Token: resp.PlaybackToken, Position: 90, Duration: 100,
	}); err != nil {
		t.Fatalf("progress: %v", err)
	}

	state, err := svc.AudioFailed("s1", resp.PlaybackToken, "network error")
	if err != nil {
		t.Fatalf("failed: %v", err)
	}
	if state.ActiveIndex != nil {
		t.Fatal("expected no active track after failure")
	}
	if state.Progress[0] != 40 {
		t.Fatalf("expected progress reverted to 40, got %v", state.Progress[0])
	}
}

func TestAudioFailureOnFirstActivationDropsEntry(t *testing.T) {
	svc := newClassroomFixture(t)
	unlock(t, svc, "s1")

	resp, err := svc.ToggleAudio("s1", 0)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if _, err := svc.AudioProgress("s1", dto.AudioProgressRequest{
		Index: 0, Token: resp.PlaybackToken, Position: 25, Duration: 100,
	}); err != nil {
		t.Fatalf("progress: %v", err)
	}

	state, err := svc.AudioFailed("s1", resp.PlaybackToken, "decode error")
	if err != nil {
		t.Fatalf("failed: %v", err)
	}
	if _, ok := state.Progress[0]; ok {
		t.Fatalf("expected no progress entry for a track that never played before, got %v", state.Progress)
	}
}

func TestToggleAudioOutOfRange(t *testing.T) {
	svc := newClassroomFixture(t)
	unlock(t, svc, "s1")

	if _, err := svc.ToggleAudio("s1", 5); err == nil {
		t.Fatal("expected out-of-range index to be rejected")
	}
}

// ==================== FULLSCREEN ====================

func TestToggleFullscreen(t *testing.T) {
	svc := newClassroomFixture(t)
	unlock(t, svc, "s1")

	state, err := svc.ToggleFullscreen("s1", shared.SurfaceVideo)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if state.Surface != shared.SurfaceVideo {
		t.Fatalf("expected video fullscreen, got %q", state.Surface)
	}

	// while fullscreen, any toggle exits, whatever surface it names
	state, err = svc.ToggleFullscreen("s1", shared.SurfaceSlides)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if state.Surface != "" {
		t.Fatalf("expected fullscreen exit, got %q", state.Surface)
	}
}
