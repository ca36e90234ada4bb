package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"irrigation-dashboard/internal/app/gateway"
	"irrigation-dashboard/internal/app/metrics"
	"irrigation-dashboard/internal/app/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrNoSession          = errors.New("session not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Data - сохраняемая часть сессии
type Data struct {
	Token     string
	Email     string
	ExpiresAt time.Time
}

// Store хранит сессии между перезапусками процесса
type Store interface {
	Save(ctx context.Context, id string, data Data, ttl time.Duration) error
	Load(ctx context.Context, id string) (Data, error)
	Delete(ctx context.Context, id string) error
}

// Authenticator обменивает учетные данные на токен API
type Authenticator interface {
	Login(ctx context.Context, email, password string) (string, error)
}

// AuthSession - сессия одного браузера: токен и состояния экранов.
// Токен задается только при входе и не меняется до выхода.
type AuthSession struct {
	ID        string
	Email     string
	ExpiresAt time.Time

	token string

	mu      sync.Mutex
	screens map[string]any
}

func newAuthSession(id string, data Data) *AuthSession {
	return &AuthSession{
		ID:        id,
		Email:     data.Email,
		ExpiresAt: data.ExpiresAt,
		token:     data.Token,
		screens:   make(map[string]any),
	}
}

func (s *AuthSession) Token() string {
	return s.token
}

// Screen возвращает состояние экрана, создавая его при первом обращении
func (s *AuthSession) Screen(name string, create func() any) any {
	s.mu.Lock()
	defer s.mu.Unlock()

	if state, ok := s.screens[name]; ok {
		return state
	}
	state := create()
	s.screens[name] = state
	return state
}

func (s *AuthSession) expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Manager выдает, находит и завершает сессии
type Manager struct {
	auth  Authenticator
	store Store
	ttl   time.Duration
	now   func() time.Time

	mu       sync.Mutex
	sessions map[string]*AuthSession
}

func NewManager(auth Authenticator, store Store, ttl time.Duration) *Manager {
	if store == nil {
		store = NewMemoryStore()
	}
	return &Manager{
		auth:     auth,
		store:    store,
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*AuthSession),
	}
}

// Login выполняет вход. Любой отказ API превращается в ErrInvalidCredentials,
// сетевые ошибки возвращаются как есть.
func (m *Manager) Login(ctx context.Context, email, password string) (*AuthSession, error) {
	token, err := m.auth.Login(ctx, email, password)
	if err != nil {
		if gateway.IsKind(err, gateway.KindTransport) {
			return nil, err
		}
		logrus.Infof("login rejected for %s: %s", email, gateway.Outcome(err))
		return nil, ErrInvalidCredentials
	}

	now := m.now()
	expires := now.Add(m.ttl)
	if exp, ok := utils.TokenExpiry(token); ok && exp.Before(expires) {
		expires = exp
	}
	if !expires.After(now) {
		logrus.Warnf("token for %s is already expired", email)
		return nil, ErrInvalidCredentials
	}

	data := Data{Token: token, Email: email, ExpiresAt: expires}
	sess := newAuthSession(uuid.NewString(), data)
	if err := m.store.Save(ctx, sess.ID, data, expires.Sub(now)); err != nil {
		// сессия остается рабочей в памяти процесса
		logrus.Error("Failed to persist session: ", err)
	}

	m.mu.Lock()
	m.pruneLocked(now)
	m.sessions[sess.ID] = sess
	m.reportLocked()
	m.mu.Unlock()

	return sess, nil
}

// Get находит сессию по идентификатору из cookie
func (m *Manager) Get(ctx context.Context, id string) (*AuthSession, error) {
	if id == "" {
		return nil, ErrNoSession
	}
	now := m.now()

	m.mu.Lock()
	sess, ok := m.sessions[id]
	m.mu.Unlock()

	if ok {
		if sess.expired(now) {
			_ = m.Logout(ctx, id)
			return nil, ErrNoSession
		}
		return sess, nil
	}

	// после перезапуска сессии поднимаются из хранилища
	data, err := m.store.Load(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrNoSession) {
			logrus.Error("Failed to load session: ", err)
		}
		return nil, ErrNoSession
	}
	sess = newAuthSession(id, data)
	if sess.expired(now) {
		_ = m.store.Delete(ctx, id)
		return nil, ErrNoSession
	}

	m.mu.Lock()
	if existing, ok := m.sessions[id]; ok {
		sess = existing
	} else {
		m.sessions[id] = sess
	}
	m.reportLocked()
	m.mu.Unlock()

	return sess, nil
}

// Logout завершает сессию вместе со всеми состояниями экранов
func (m *Manager) Logout(ctx context.Context, id string) error {
	m.mu.Lock()
	delete(m.sessions, id)
	m.reportLocked()
	m.mu.Unlock()

	return m.store.Delete(ctx, id)
}

// Count возвращает число действующих сессий в памяти
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pruneLocked(m.now())
	m.reportLocked()
	return len(m.sessions)
}

// pruneLocked убирает истекшие сессии вместе с их состояниями экранов.
// Записи в хранилище истекают по собственному TTL.
func (m *Manager) pruneLocked(now time.Time) {
	for id, sess := range m.sessions {
		if sess.expired(now) {
			delete(m.sessions, id)
		}
	}
}

func (m *Manager) reportLocked() {
	metrics.SetActiveSessions(len(m.sessions))
}
