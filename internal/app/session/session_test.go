package session

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"irrigation-dashboard/internal/app/ds"
	"irrigation-dashboard/internal/app/gateway"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuth struct {
	token string
	err   error
	calls int
}

func (f *fakeAuth) Login(_ context.Context, email, password string) (string, error) {
	f.calls++
	return f.token, f.err
}

func tokenExpiringAt(t *testing.T, exp time.Time) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, ds.JWTClaims{
		StandardClaims: jwt.StandardClaims{ExpiresAt: exp.Unix()},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	return token
}

func TestManager_LoginCreatesSession(t *testing.T) {
	ctx := context.Background()
	m := NewManager(&fakeAuth{token: "opaque"}, nil, time.Hour)

	sess, err := m.Login(ctx, "op@farm.br", "secret")
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, "opaque", sess.Token())
	assert.Equal(t, "op@farm.br", sess.Email)

	got, err := m.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Same(t, sess, got)
	assert.Equal(t, 1, m.Count())
}

func TestManager_RejectedLoginIsGeneric(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusNotFound, http.StatusInternalServerError} {
		auth := &fakeAuth{err: &gateway.Failure{Kind: gateway.KindHTTP, Status: status}}
		m := NewManager(auth, nil, time.Hour)

		sess, err := m.Login(context.Background(), "x@y.com", "wrong")

		assert.Nil(t, sess)
		assert.ErrorIs(t, err, ErrInvalidCredentials, "status %d", status)
		assert.Equal(t, 0, m.Count())
	}
}

func TestManager_TransportErrorIsKept(t *testing.T) {
	auth := &fakeAuth{err: &gateway.Failure{Kind: gateway.KindTransport, Err: errors.New("dial tcp: refused")}}
	m := NewManager(auth, nil, time.Hour)

	_, err := m.Login(context.Background(), "x@y.com", "pw")

	assert.True(t, gateway.IsKind(err, gateway.KindTransport))
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestManager_SessionBoundedByTokenExpiry(t *testing.T) {
	now := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)
	m := NewManager(&fakeAuth{token: tokenExpiringAt(t, now.Add(30*time.Minute))}, nil, 12*time.Hour)
	m.now = func() time.Time { return now }

	sess, err := m.Login(context.Background(), "op@farm.br", "pw")
	require.NoError(t, err)
	assert.True(t, now.Add(30*time.Minute).Equal(sess.ExpiresAt))

	m.now = func() time.Time { return now.Add(31 * time.Minute) }
	_, err = m.Get(context.Background(), sess.ID)
	assert.ErrorIs(t, err, ErrNoSession)
	assert.Equal(t, 0, m.Count())
}

func TestManager_ExpiredTokenIsRejected(t *testing.T) {
	now := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)
	m := NewManager(&fakeAuth{token: tokenExpiringAt(t, now.Add(-time.Minute))}, nil, time.Hour)
	m.now = func() time.Time { return now }

	_, err := m.Login(context.Background(), "op@farm.br", "pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestManager_LogoutTearsDownScreens(t *testing.T) {
	ctx := context.Background()
	m := NewManager(&fakeAuth{token: "opaque"}, nil, time.Hour)
	sess, err := m.Login(ctx, "op@farm.br", "pw")
	require.NoError(t, err)

	created := 0
	create := func() any { created++; return &struct{}{} }
	first := sess.Screen("valves", create)
	assert.Same(t, first, sess.Screen("valves", create))
	assert.Equal(t, 1, created)

	require.NoError(t, m.Logout(ctx, sess.ID))
	_, err = m.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrNoSession)

	again, err := m.Login(ctx, "op@farm.br", "pw")
	require.NoError(t, err)
	again.Screen("valves", create)
	assert.Equal(t, 2, created)
}

func TestManager_RestoresFromStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	first := NewManager(&fakeAuth{token: "opaque"}, store, time.Hour)
	sess, err := first.Login(ctx, "op@farm.br", "pw")
	require.NoError(t, err)

	// новый процесс с тем же хранилищем
	second := NewManager(&fakeAuth{}, store, time.Hour)
	restored, err := second.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "opaque", restored.Token())
	assert.Equal(t, "op@farm.br", restored.Email)
}

func TestManager_UnknownSession(t *testing.T) {
	m := NewManager(&fakeAuth{}, nil, time.Hour)

	_, err := m.Get(context.Background(), "")
	assert.ErrorIs(t, err, ErrNoSession)

	_, err = m.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestMemoryStore_Expires(t *testing.T) {
	now := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	store.now = func() time.Time { return now }
	require.NoError(t, store.Save(context.Background(), "a", Data{Token: "t"}, time.Minute))

	_, err := store.Load(context.Background(), "a")
	require.NoError(t, err)

	store.now = func() time.Time { return now.Add(time.Minute) }
	_, err = store.Load(context.Background(), "a")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestManager_AbandonedSessionsArePruned(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	store := NewMemoryStore()
	store.now = func() time.Time { return clock() }
	m := NewManager(&fakeAuth{token: "opaque"}, store, time.Minute)
	m.now = func() time.Time { return clock() }

	for i := 0; i < 100; i++ {
		_, err := m.Login(ctx, "op@farm.br", "pw")
		require.NoError(t, err)
	}
	require.Equal(t, 100, m.Count())

	clock = func() time.Time { return now.Add(24 * time.Hour) }
	assert.Equal(t, 0, m.Count())

	fresh, err := m.Login(ctx, "op@farm.br", "pw")
	require.NoError(t, err)
	assert.Equal(t, 1, m.Count())
	assert.Equal(t, 1, store.Len())

	got, err := m.Get(ctx, fresh.ID)
	require.NoError(t, err)
	assert.Same(t, fresh, got)
}
