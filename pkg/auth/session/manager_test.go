package session

import (
	"context"
	"errors"
	"testing"
	"time"

	redislib "github.com/redis/go-redis/v9"
)

type memoryStore struct {
	values map[string]string
	ttls   map[string]time.Duration
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		values: map[string]string{},
		ttls:   map[string]time.Duration{},
	}
}

func (m *memoryStore) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	m.values[key] = value.(string)
	m.ttls[key] = ttl
	return nil
}

func (m *memoryStore) Get(_ context.Context, key string) (string, error) {
	value, ok := m.values[key]
	if !ok {
		return "", redislib.Nil
	}
	return value, nil
}

func (m *memoryStore) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.values, key)
	}
	return nil
}

type prefixKeyer struct{}

func (prefixKeyer) AccessSessionKey(accessID string) string {
	return "session:access:" + accessID
}

func newTestManager(store sessionStore) *Manager {
	return &Manager{store: store, keyer: prefixKeyer{}, ttl: time.Hour}
}

func TestGenerateStoresToken(t *testing.T) {
	store := newMemoryStore()
	m := newTestManager(store)

	token, err := m.Generate(context.Background(), "jti-1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty refresh token")
	}
	if store.values["session:access:jti-1"] != token {
		t.Fatal("token not stored under the access id key")
	}
	if store.ttls["session:access:jti-1"] != time.Hour {
		t.Fatal("ttl not applied")
	}
}

func TestRotateInvalidatesOldSession(t *testing.T) {
	store := newMemoryStore()
	m := newTestManager(store)
	ctx := context.Background()

	token, err := m.Generate(ctx, "jti-1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	newAccessID, newToken, err := m.Rotate(ctx, "jti-1", token)
	if err != nil {
		t.Fatalf("rotate: %v", err)
	}
	if newAccessID == "jti-1" || newToken == token {
		t.Fatal("rotation must issue fresh credentials")
	}

	if _, ok := store.values["session:access:jti-1"]; ok {
		t.Fatal("old session must be deleted after rotation")
	}
	if store.values["session:access:"+newAccessID] != newToken {
		t.Fatal("new session not stored")
	}

	// Replaying the old pair must fail.
	if _, _, err := m.Rotate(ctx, "jti-1", token); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("expected ErrInvalidRefreshToken, got %v", err)
	}
}

func TestRotateWrongToken(t *testing.T) {
	store := newMemoryStore()
	m := newTestManager(store)
	ctx := context.Background()

	if _, err := m.Generate(ctx, "jti-1"); err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, _, err := m.Rotate(ctx, "jti-1", "forged"); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("expected ErrInvalidRefreshToken, got %v", err)
	}
}

func TestRevokeAndHasSession(t *testing.T) {
	store := newMemoryStore()
	m := newTestManager(store)
	ctx := context.Background()

	if _, err := m.Generate(ctx, "jti-1"); err != nil {
		t.Fatalf("generate: %v", err)
	}

	active, err := m.HasSession(ctx, "jti-1")
	if err != nil || !active {
		t.Fatalf("expected active session, got %v %v", active, err)
	}

	if err := m.Revoke(ctx, "jti-1"); err != nil {
		t.Fatalf("revoke: %v", err)
	}

	active, err = m.HasSession(ctx, "jti-1")
	if err != nil || active {
		t.Fatalf("expected revoked session, got %v %v", active, err)
	}
}
