// services/session.go
package services

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/edustream/portal_api/dto"
	"github.com/edustream/portal_api/model"
	"github.com/edustream/portal_api/shared"
)

// sessionStore is the slice of the key-value store the session service
// needs: write a record with a TTL, read it back, slide its expiry,
// delete it on logout.
type sessionStore interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	GetJSON(ctx context.Context, key string, dest interface{}) error
	Expire(ctx context.Context, key string, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// SessionService owns the visitor identity record. A session is created
// at login, rehydrated from the store while its TTL lasts, and removed
// on explicit logout.
type SessionService struct {
	appContext.DefaultService

	store  sessionStore
	jwtSvc *JWTService

	ttl time.Duration
}

const SESSION_SVC = "session_svc"

func (svc SessionService) Id() string {
	return SESSION_SVC
}

func (svc *SessionService) Configure(ctx *appContext.Context) error {
	svc.ttl = 12 * time.Hour
	if ttlStr := os.Getenv("SESSION_TTL_MINUTES"); ttlStr != "" {
		if minutes, err := strconv.Atoi(ttlStr); err == nil && minutes > 0 {
			svc.ttl = time.Duration(minutes) * time.Minute
		}
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *SessionService) Start() error {
	svc.store = svc.Service(REDIS_SVC).(*RedisService)
	svc.jwtSvc = svc.Service(JWT_SVC).(*JWTService)
	return nil
}

func sessionKey(id string) string {
	return shared.SessionKeyPrefix + id
}

// StartSession creates and persists the identity record for a display name
// and issues the bearer token the client presents from then on.
func (svc *SessionService) StartSession(req dto.StartSessionRequest) (*dto.SessionResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, shared.NewBadRequestError(fmt.Errorf("empty name"), "Name is required")
	}

	session := &model.UserSession{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now(),
	}

	if err := svc.store.Set(context.Background(), sessionKey(session.ID), session, svc.ttl); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	pair, err := svc.jwtSvc.GenerateTokenPair(session.ID, shared.RoleStudent)
	if err != nil {
		return nil, err
	}

	sessionsStartedTotal.Inc()
	log.WithField("session_id", session.ID).Info("Session started")

	return &dto.SessionResponse{
		SessionID: session.ID,
		Name:      session.Name,
		Token:     pair.AccessToken,
		ExpiresIn: pair.ExpiresIn,
	}, nil
}

// CurrentSession rehydrates the persisted record and slides its expiry,
// so the session lives as long as the visitor keeps using it. A missing
// or expired record means the visitor must enter a name again.
func (svc *SessionService) CurrentSession(sessionID string) (*model.UserSession, error) {
	var session model.UserSession
	if err := svc.store.GetJSON(context.Background(), sessionKey(sessionID), &session); err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	if session.ID == "" {
		return nil, shared.NewUnauthorizedError(fmt.Errorf("session %s not found", sessionID), "Session expired")
	}

	if err := svc.store.Expire(context.Background(), sessionKey(sessionID), svc.ttl); err != nil {
		log.WithError(err).WithField("session_id", sessionID).Warn("Failed to refresh session TTL")
	}

	return &session, nil
}

// Logout deletes the persisted record. Idempotent.
func (svc *SessionService) Logout(sessionID string) error {
	if err := svc.store.Delete(context.Background(), sessionKey(sessionID)); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	log.WithField("session_id", sessionID).Info("Session ended")
	return nil
}
