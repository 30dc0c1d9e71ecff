// services/classroom.go
package services

import (
	"fmt"
	"sync"

	"github.com/alphabatem/common/context"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/edustream/portal_api/dto"
	"github.com/edustream/portal_api/model"
	"github.com/edustream/portal_api/shared"
)

// Gate states
const (
	GateIdle           = "idle"
	GatePasswordPrompt = "password_prompt"
	GateUnlocked       = "unlocked"
)

const incorrectPasswordMessage = "Incorrect password."

// lessonSource is how the classroom reaches the catalog.
type lessonSource interface {
	LessonRecord(id uint) (*model.Lesson, error)
}

// ClassroomService owns the per-session lesson state: the access gate and,
// once a lesson is open, the active tab, quiz progression, audio playback
// and fullscreen state. Everything here is ephemeral; navigating back to
// the catalog discards it.
type ClassroomService struct {
	context.DefaultService

	lessons lessonSource

	mu    sync.RWMutex
	rooms map[string]*classRoom
}

// classRoom is one session's view of one lesson. Invariants:
//   - gate is unlocked iff lesson != nil
//   - activeAudio is -1 or a valid index into audios
//   - at most one playback token is live at any instant
type classRoom struct {
	mu sync.Mutex

	gate      string
	pending   *model.Lesson
	gateError string

	lesson *model.Lesson
	quiz   []model.QuizQuestion
	audios []model.AudioItem

	activeTab string

	quizIndex int
	answers   map[int]int
	finished  bool

	activeAudio   int
	playbackToken string
	priorProgress float64
	hadPrior      bool
	audioProgress map[int]float64

	fullscreen string
}

const CLASSROOM_SVC = "classroom_svc"

func (svc *ClassroomService) Id() string {
	return CLASSROOM_SVC
}

func (svc *ClassroomService) Configure(ctx *context.Context) error {
	svc.rooms = make(map[string]*classRoom)
	return svc.DefaultService.Configure(ctx)
}

func (svc *ClassroomService) Start() error {
	svc.lessons = svc.Service(CATALOG_SVC).(*CatalogService)
	return nil
}

func (svc *ClassroomService) room(sessionID string) *classRoom {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	room, ok := svc.rooms[sessionID]
	if !ok {
		room = &classRoom{gate: GateIdle, activeAudio: -1}
		svc.rooms[sessionID] = room
	}
	return room
}

func (svc *ClassroomService) openRoom(sessionID string) (*classRoom, error) {
	svc.mu.RLock()
	room, ok := svc.rooms[sessionID]
	svc.mu.RUnlock()

	if !ok || room.gate != GateUnlocked {
		return nil, shared.NewConflictError(fmt.Errorf("session %s has no open lesson", sessionID), "No lesson is open")
	}
	return room, nil
}

// ==================== ACCESS GATE ====================

func (svc *ClassroomService) GateState(sessionID string) dto.GateStateResponse {
	room := svc.room(sessionID)
	room.mu.Lock()
	defer room.mu.Unlock()
	return gateResponse(room)
}

func gateResponse(room *classRoom) dto.GateStateResponse {
	resp := dto.GateStateResponse{State: room.gate, Error: room.gateError}
	if room.pending != nil {
		id := room.pending.ID
		resp.PendingLessonID = &id
	}
	if room.lesson != nil {
		id := room.lesson.ID
		resp.LessonID = &id
	}
	return resp
}

// SelectLesson moves the gate off idle. Unprotected lessons open
// immediately; protected ones park in the password prompt.
func (svc *ClassroomService) SelectLesson(sessionID string, lessonID uint) (*dto.GateStateResponse, error) {
	lesson, err := svc.lessons.LessonRecord(lessonID)
	if err != nil {
		return nil, shared.NewNotFoundError(err, "Lesson not found")
	}

	room := svc.room(sessionID)
	room.mu.Lock()
	defer room.mu.Unlock()

	// Selecting while a lesson is open discards its state first.
	room.reset()

	if !lesson.Protected() {
		room.open(lesson)
	} else {
		room.gate = GatePasswordPrompt
		room.pending = lesson
		room.gateError = ""
	}

	resp := gateResponse(room)
	return &resp, nil
}

// SubmitPassword checks the supplied password against the pending lesson.
// A mismatch keeps the prompt with a visible error; a match opens the
// lesson and clears it. Retries are unlimited.
func (svc *ClassroomService) SubmitPassword(sessionID, password string) (*dto.GateStateResponse, error) {
	room := svc.room(sessionID)
	room.mu.Lock()
	defer room.mu.Unlock()

	if room.gate != GatePasswordPrompt || room.pending == nil {
		return nil, shared.NewConflictError(fmt.Errorf("gate is %s", room.gate), "No lesson awaiting a password")
	}

	if password == room.pending.Password {
		lesson := room.pending
		room.open(lesson)
	} else {
		room.gateError = incorrectPasswordMessage
	}

	resp := gateResponse(room)
	return &resp, nil
}

// CancelUnlock abandons the password prompt and returns the gate to idle.
func (svc *ClassroomService) CancelUnlock(sessionID string) dto.GateStateResponse {
	room := svc.room(sessionID)
	room.mu.Lock()
	defer room.mu.Unlock()

	if room.gate == GatePasswordPrompt {
		room.gate = GateIdle
		room.pending = nil
		room.gateError = ""
	}
	return gateResponse(room)
}

// ExitLesson hands control back to the catalog: stops any active audio and
// discards the unlock, so re-entering the same lesson prompts again.
func (svc *ClassroomService) ExitLesson(sessionID string) dto.GateStateResponse {
	svc.mu.Lock()
	room, ok := svc.rooms[sessionID]
	if ok {
		delete(svc.rooms, sessionID)
	}
	svc.mu.Unlock()

	if ok {
		room.mu.Lock()
		if room.activeAudio >= 0 {
			log.WithField("index", room.activeAudio).Debug("Stopping audio on lesson exit")
		}
		room.reset()
		room.mu.Unlock()
	}

	return dto.GateStateResponse{State: GateIdle}
}

// reset returns a room to idle, revoking any live playback token.
func (r *classRoom) reset() {
	r.gate = GateIdle
	r.pending = nil
	r.gateError = ""
	r.lesson = nil
	r.quiz = nil
	r.audios = nil
	r.activeTab = ""
	r.quizIndex = 0
	r.answers = nil
	r.finished = false
	r.activeAudio = -1
	r.playbackToken = ""
	r.hadPrior = false
	r.audioProgress = nil
	r.fullscreen = ""
}

// open initializes fresh lesson state. Malformed nested content is served
// as empty rather than failing the unlock.
func (r *classRoom) open(lesson *model.Lesson) {
	r.gate = GateUnlocked
	r.pending = nil
	r.gateError = ""
	r.lesson = lesson

	r.quiz = lesson.DecodeQuiz()
	if r.quiz == nil {
		log.Printf("Malformed quiz for lesson %d, opening without quiz", lesson.ID)
	}
	r.audios = lesson.DecodeAudios()
	if r.audios == nil {
		log.Printf("Malformed audios for lesson %d, opening without audio", lesson.ID)
	}

	r.activeTab = shared.TabVideo
	r.quizIndex = 0
	r.answers = make(map[int]int)
	r.finished = false
	r.activeAudio = -1
	r.playbackToken = ""
	r.audioProgress = make(map[int]float64)
	r.fullscreen = ""

	lessonsUnlockedTotal.Inc()
}

// ==================== CLASS STATE ====================

func (svc *ClassroomService) State(sessionID string) (*dto.ClassStateResponse, error) {
	room, err := svc.openRoom(sessionID)
	if err != nil {
		return nil, err
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	resp := &dto.ClassStateResponse{
		LessonID:   room.lesson.ID,
		Title:      room.lesson.Title,
		ActiveTab:  room.activeTab,
		Video:      ResolveVideoSource(room.lesson.VideoURL),
		Quiz:       room.quizState(),
		Audio:      room.audioState(),
		Fullscreen: room.fullscreen,
	}
	return resp, nil
}

func (svc *ClassroomService) SetTab(sessionID, tab string) (*dto.ClassStateResponse, error) {
	room, err := svc.openRoom(sessionID)
	if err != nil {
		return nil, err
	}

	room.mu.Lock()
	room.activeTab = tab
	room.mu.Unlock()

	return svc.State(sessionID)
}

func (svc *ClassroomService) VideoSource(sessionID string) (*dto.VideoSourceResponse, error) {
	room, err := svc.openRoom(sessionID)
	if err != nil {
		return nil, err
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	src := ResolveVideoSource(room.lesson.VideoURL)
	return &src, nil
}

// CurrentLesson exposes the open lesson record, for materials resolution.
func (svc *ClassroomService) CurrentLesson(sessionID string) (*model.Lesson, error) {
	room, err := svc.openRoom(sessionID)
	if err != nil {
		return nil, err
	}

	room.mu.Lock()
	defer room.mu.Unlock()
	return room.lesson, nil
}

// ==================== QUIZ PROGRESSION ====================

func (r *classRoom) quizState() dto.QuizStateResponse {
	state := dto.QuizStateResponse{
		Available:     len(r.quiz) > 0,
		QuestionCount: len(r.quiz),
		CurrentIndex:  r.quizIndex,
		Answers:       make(map[int]int, len(r.answers)),
		Finished:      r.finished,
		Total:         len(r.quiz),
	}
	for k, v := range r.answers {
		state.Answers[k] = v
	}

	if !state.Available {
		return state
	}

	_, answered := r.answers[r.quizIndex]
	state.CanGoBack = !r.finished && r.quizIndex > 0
	state.CanAdvance = !r.finished && answered

	if r.finished {
		state.Score = r.quizScore()
	} else {
		q := r.quiz[r.quizIndex]
		state.CurrentQuestion = &dto.QuizQuestionResponse{
			Index:   r.quizIndex,
			Prompt:  q.Prompt,
			Options: q.Options,
		}
	}

	return state
}

// quizScore counts exact matches over all questions; unanswered questions
// count as incorrect.
func (r *classRoom) quizScore() int {
	score := 0
	for i, q := range r.quiz {
		if answer, ok := r.answers[i]; ok && answer == q.CorrectIndex {
			score++
		}
	}
	return score
}

func (svc *ClassroomService) quizRoom(sessionID string) (*classRoom, error) {
	room, err := svc.openRoom(sessionID)
	if err != nil {
		return nil, err
	}
	return room, nil
}

// AnswerQuiz records the selected option for the current question,
// overwriting any previous selection.
func (svc *ClassroomService) AnswerQuiz(sessionID string, option int) (*dto.QuizStateResponse, error) {
	room, err := svc.quizRoom(sessionID)
	if err != nil {
		return nil, err
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	if len(room.quiz) == 0 {
		return nil, shared.NewBadRequestError(fmt.Errorf("lesson %d has no quiz", room.lesson.ID), "Lesson has no quiz")
	}
	if room.finished {
		return nil, shared.NewConflictError(fmt.Errorf("quiz finished"), "Quiz already finished, retry to answer again")
	}
	if option >= len(room.quiz[room.quizIndex].Options) {
		return nil, shared.NewBadRequestError(fmt.Errorf("option %d out of range", option), "Invalid option")
	}

	room.answers[room.quizIndex] = option

	state := room.quizState()
	return &state, nil
}

func (svc *ClassroomService) PreviousQuestion(sessionID string) (*dto.QuizStateResponse, error) {
	room, err := svc.quizRoom(sessionID)
	if err != nil {
		return nil, err
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	if len(room.quiz) == 0 {
		return nil, shared.NewBadRequestError(fmt.Errorf("lesson %d has no quiz", room.lesson.ID), "Lesson has no quiz")
	}
	if room.finished || room.quizIndex == 0 {
		return nil, shared.NewConflictError(fmt.Errorf("cannot go back from question %d", room.quizIndex), "Cannot go back")
	}

	room.quizIndex--

	state := room.quizState()
	return &state, nil
}

// NextQuestion advances the cursor, or finishes the quiz when the current
// question is the last one. It requires the current question answered.
func (svc *ClassroomService) NextQuestion(sessionID string) (*dto.QuizStateResponse, error) {
	room, err := svc.quizRoom(sessionID)
	if err != nil {
		return nil, err
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	if len(room.quiz) == 0 {
		return nil, shared.NewBadRequestError(fmt.Errorf("lesson %d has no quiz", room.lesson.ID), "Lesson has no quiz")
	}
	if room.finished {
		return nil, shared.NewConflictError(fmt.Errorf("quiz finished"), "Quiz already finished")
	}
	if _, answered := room.answers[room.quizIndex]; !answered {
		return nil, shared.NewConflictError(fmt.Errorf("question %d unanswered", room.quizIndex), "Answer the current question first")
	}

	if room.quizIndex == len(room.quiz)-1 {
		room.finished = true
		quizzesFinishedTotal.Inc()
	} else {
		room.quizIndex++
	}

	state := room.quizState()
	return &state, nil
}

// RetryQuiz wipes the attempt: answers empty, cursor at zero, not finished.
func (svc *ClassroomService) RetryQuiz(sessionID string) (*dto.QuizStateResponse, error) {
	room, err := svc.quizRoom(sessionID)
	if err != nil {
		return nil, err
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	if len(room.quiz) == 0 {
		return nil, shared.NewBadRequestError(fmt.Errorf("lesson %d has no quiz", room.lesson.ID), "Lesson has no quiz")
	}

	room.answers = make(map[int]int)
	room.quizIndex = 0
	room.finished = false

	state := room.quizState()
	return &state, nil
}

func (svc *ClassroomService) QuizState(sessionID string) (*dto.QuizStateResponse, error) {
	room, err := svc.quizRoom(sessionID)
	if err != nil {
		return nil, err
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	state := room.quizState()
	return &state, nil
}

// ==================== AUDIO PLAYBACK ====================

func (r *classRoom) audioState() dto.AudioStateResponse {
	state := dto.AudioStateResponse{
		Progress: make(map[int]float64, len(r.audioProgress)),
	}
	for k, v := range r.audioProgress {
		state.Progress[k] = v
	}
	if r.activeAudio >= 0 {
		idx := r.activeAudio
		state.ActiveIndex = &idx
	}
	return state
}

// deactivateAudio revokes the live playback token, detaching any further
// progress callbacks from the previous activation.
func (r *classRoom) deactivateAudio() {
	r.activeAudio = -1
	r.playbackToken = ""
	r.hadPrior = false
}

// ToggleAudio implements the exclusivity rule: toggling the active track
// stops it; toggling another track stops the previous one first, then
// activates the new track under a fresh playback token.
func (svc *ClassroomService) ToggleAudio(sessionID string, index int) (*dto.AudioToggleResponse, error) {
	room, err := svc.openRoom(sessionID)
	if err != nil {
		return nil, err
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	if index >= len(room.audios) {
		return nil, shared.NewBadRequestError(fmt.Errorf("audio index %d out of range", index), "Invalid audio index")
	}

	if room.activeAudio == index {
		room.deactivateAudio()
		return &dto.AudioToggleResponse{}, nil
	}

	if room.activeAudio >= 0 {
		room.deactivateAudio()
	}

	prior, hadPrior := room.audioProgress[index]
	room.activeAudio = index
	room.playbackToken = uuid.New().String()
	room.priorProgress = prior
	room.hadPrior = hadPrior

	// Re-selecting a track starts a fresh run: its recorded progress
	// follows the new playback from zero. A failed activation restores
	// the prior value.
	delete(room.audioProgress, index)

	audioTogglesTotal.Inc()

	idx := index
	return &dto.AudioToggleResponse{
		ActiveIndex:   &idx,
		PlaybackToken: room.playbackToken,
		URL:           room.audios[index].URL,
	}, nil
}

// AudioProgress records a playback-position callback. Callbacks carrying a
// revoked token belong to a stopped activation and are ignored. Progress
// never moves backwards within one activation.
func (svc *ClassroomService) AudioProgress(sessionID string, req dto.AudioProgressRequest) (*dto.AudioStateResponse, error) {
	room, err := svc.openRoom(sessionID)
	if err != nil {
		return nil, err
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	if req.Token == room.playbackToken && req.Index == room.activeAudio && room.activeAudio >= 0 {
		pct := (req.Position / req.Duration) * 100
		if pct < 0 {
			pct = 0
		}
		if pct > 100 {
			pct = 100
		}
		if pct >= room.audioProgress[req.Index] {
			room.audioProgress[req.Index] = pct
		}
	}

	state := room.audioState()
	return &state, nil
}

// AudioEnded handles natural end-of-track: the active index clears but the
// last observed progress stays as recorded.
func (svc *ClassroomService) AudioEnded(sessionID, token string) (*dto.AudioStateResponse, error) {
	room, err := svc.openRoom(sessionID)
	if err != nil {
		return nil, err
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	if token == room.playbackToken && room.activeAudio >= 0 {
		room.deactivateAudio()
	}

	state := room.audioState()
	return &state, nil
}

// AudioFailed handles a playback error: logged, never fatal, and the track
// state reverts to what it was before the activation.
func (svc *ClassroomService) AudioFailed(sessionID, token, detail string) (*dto.AudioStateResponse, error) {
	room, err := svc.openRoom(sessionID)
	if err != nil {
		return nil, err
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	if token == room.playbackToken && room.activeAudio >= 0 {
		log.WithFields(log.Fields{
			"lesson": room.lesson.ID,
			"index":  room.activeAudio,
			"detail": detail,
		}).Warn("Audio playback failed")

		if room.hadPrior {
			room.audioProgress[room.activeAudio] = room.priorProgress
		} else {
			delete(room.audioProgress, room.activeAudio)
		}
		room.deactivateAudio()
	}

	state := room.audioState()
	return &state, nil
}

// ==================== FULLSCREEN ====================

// ToggleFullscreen mirrors the platform rule: if anything is fullscreen
// the request exits, otherwise it enters on the targeted surface.
func (svc *ClassroomService) ToggleFullscreen(sessionID, surface string) (*dto.FullscreenStateResponse, error) {
	room, err := svc.openRoom(sessionID)
	if err != nil {
		return nil, err
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	if room.fullscreen != "" {
		room.fullscreen = ""
	} else {
		room.fullscreen = surface
	}

	return &dto.FullscreenStateResponse{Surface: room.fullscreen}, nil
}
