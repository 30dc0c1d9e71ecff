package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/edustream/portal_api/dto"
)

type memoryStore struct {
	data map[string][]byte
	ttls map[string]time.Duration
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		data: make(map[string][]byte),
		ttls: make(map[string]time.Duration),
	}
}

func (m *memoryStore) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = b
	m.ttls[key] = expiration
	return nil
}

func (m *memoryStore) GetJSON(_ context.Context, key string, dest interface{}) error {
	b, ok := m.data[key]
	if !ok {
		return nil
	}
	return json.Unmarshal(b, dest)
}

func (m *memoryStore) Expire(_ context.Context, key string, expiration time.Duration) error {
	if _, ok := m.data[key]; ok {
		m.ttls[key] = expiration
	}
	return nil
}

func (m *memoryStore) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.data, k)
		delete(m.ttls, k)
	}
	return nil
}

func newSessionFixture() (*SessionService, *memoryStore) {
	store := newMemoryStore()
	svc := &SessionService{
		store:  store,
		jwtSvc: &JWTService{TokenDuration: time.Hour, jwtSecretKey: "test-secret"},
		ttl:    time.Hour,
	}
	return svc, store
}

func TestStartSessionRoundTrip(t *testing.T) {
	svc, _ := newSessionFixture()

	resp, err := svc.StartSession(dto.StartSessionRequest{Name: "Ana"})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if resp.SessionID == "" || resp.Token == "" {
		t.Fatalf("expected id and token, got %+v", resp)
	}
	if resp.Name != "Ana" {
		t.Fatalf("expected name Ana, got %q", resp.Name)
	}

	session, err := svc.CurrentSession(resp.SessionID)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if session.Name != "Ana" {
		t.Fatalf("expected persisted name Ana, got %q", session.Name)
	}
}

func TestStartSessionTrimsName(t *testing.T) {
	svc, _ := newSessionFixture()

	resp, err := svc.StartSession(dto.StartSessionRequest{Name: "  Ana  "})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if resp.Name != "Ana" {
		t.Fatalf("expected trimmed name, got %q", resp.Name)
	}
}

func TestStartSessionRejectsBlankName(t *testing.T) {
	svc, _ := newSessionFixture()

	if _, err := svc.StartSession(dto.StartSessionRequest{Name: "   "}); err == nil {
		t.Fatal("expected whitespace-only name to be rejected")
	}
}

func TestCurrentSessionSlidesExpiry(t *testing.T) {
	svc, store := newSessionFixture()

	resp, err := svc.StartSession(dto.StartSessionRequest{Name: "Ana"})
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	key := sessionKey(resp.SessionID)
	store.ttls[key] = time.Minute // pretend most of the TTL has elapsed

	if _, err := svc.CurrentSession(resp.SessionID); err != nil {
		t.Fatalf("current: %v", err)
	}
	if store.ttls[key] != svc.ttl {
		t.Fatalf("expected TTL refreshed to %v, got %v", svc.ttl, store.ttls[key])
	}
}

func TestCurrentSessionMissingIsUnauthorized(t *testing.T) {
	svc, _ := newSessionFixture()

	if _, err := svc.CurrentSession("nope"); err == nil {
		t.Fatal("expected missing session to error")
	}
}

func TestLogoutRemovesSession(t *testing.T) {
	svc, _ := newSessionFixture()

	resp, err := svc.StartSession(dto.StartSessionRequest{Name: "Ana"})
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	if err := svc.Logout(resp.SessionID); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := svc.CurrentSession(resp.SessionID); err == nil {
		t.Fatal("expected session gone after logout")
	}

	// logout is idempotent
	if err := svc.Logout(resp.SessionID); err != nil {
		t.Fatalf("second logout: %v", err)
	}
}

func TestSessionTokenCarriesSessionID(t *testing.T) {
	svc, _ := newSessionFixture()

	resp, err := svc.StartSession(dto.StartSessionRequest{Name: "Ana"})
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	sessionID, role, err := svc.jwtSvc.VerifyJWTToken(resp.Token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if sessionID != resp.SessionID {
		t.Fatalf("token session %q != %q", sessionID, resp.SessionID)
	}
	if role == "" {
		t.Fatal("expected a role claim")
	}
}
