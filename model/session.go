package model

import "time"

// UserSession is the logged-in visitor's identity record, persisted in the
// session store for the lifetime of a browsing session.
//
// LastLessonID is declared for a future resume-where-left-off feature and
// is not read or written by current logic.
type UserSession struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	LastLessonID *uint     `json:"last_lesson_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
