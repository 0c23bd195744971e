// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-rag-auth/internal/config"
	"github.com/MKhiriev/go-rag-auth/internal/events"
	"github.com/MKhiriev/go-rag-auth/internal/logger"
	"github.com/MKhiriev/go-rag-auth/internal/mock"
	"github.com/MKhiriev/go-rag-auth/internal/store"
)

const (
	testEmail    = "a@x.com"
	testPassword = "Aa1!aaaa"
	testFullName = "Jane Doe"
	testIP       = "203.0.113.7"
)

var testStart = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// testClock is a manually advanced clock.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: testStart}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// delayRecorder replaces the failure delay and remembers every requested wait.
type delayRecorder struct {
	mu     sync.Mutex
	delays []time.Duration
}

func (r *delayRecorder) Delay(ctx context.Context, d time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.delays = append(r.delays, d)
	return nil
}

func (r *delayRecorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.delays)
}

func testAppConfig() config.App {
	return config.App{
		TokenSignKey:         "test-sign-key-0123456789abcdef",
		TokenIssuer:          "go-rag-auth-test",
		AccessTokenDuration:  30 * time.Minute,
		RefreshTokenDuration: 7 * 24 * time.Hour,
		MaxLoginAttempts:     5,
		LockoutWindow:        15 * time.Minute,
		FailureDelay:         500 * time.Millisecond,
		BcryptCost:           bcrypt.MinCost,
		Version:              "1.0.0-test",
	}
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

// sqliteEnv is a fully wired service layer over an in-memory database.
type sqliteEnv struct {
	services *Services
	storages *store.Storages
	clock    *testClock
	delays   *delayRecorder
}

func newSQLiteEnv(t *testing.T) *sqliteEnv {
	t.Helper()

	storages, err := store.NewStorages(context.Background(), config.Storage{
		DB: config.DB{Driver: config.DriverSQLite, DSN: ":memory:"},
	}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = storages.Close() })

	clock := newTestClock()
	delays := &delayRecorder{}
	services, err := NewServices(
		storages,
		config.StructuredConfig{App: testAppConfig()},
		events.NewNopPublisher(logger.Nop()),
		logger.Nop(),
		WithClock(clock.Now),
		WithDelay(delays.Delay),
	)
	require.NoError(t, err)

	return &sqliteEnv{services: services, storages: storages, clock: clock, delays: delays}
}

// authMocks holds the collaborators of an authService under unit test.
type authMocks struct {
	users     *mock.MockUserRepository
	tokenRepo *mock.MockTokenRepository
	tokens    *mock.MockTokenService
	lockout   *mock.MockLockoutGuard
	publisher *mock.MockPublisher
	clock     *testClock
	delays    *delayRecorder
}

func newMockedAuthService(t *testing.T, ctrl *gomock.Controller) (*authService, *authMocks) {
	t.Helper()

	m := &authMocks{
		users:     mock.NewMockUserRepository(ctrl),
		tokenRepo: mock.NewMockTokenRepository(ctrl),
		tokens:    mock.NewMockTokenService(ctrl),
		lockout:   mock.NewMockLockoutGuard(ctrl),
		publisher: mock.NewMockPublisher(ctrl),
		clock:     newTestClock(),
		delays:    &delayRecorder{},
	}
	storages := &store.Storages{UserRepository: m.users, TokenRepository: m.tokenRepo}

	svc, err := NewAuthService(storages, m.tokens, m.lockout, m.publisher, testAppConfig(), logger.Nop(),
		WithClock(m.clock.Now), WithDelay(m.delays.Delay))
	require.NoError(t, err)

	return svc.(*authService), m
}

func compareHash(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
