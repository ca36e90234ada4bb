package redis

import (
	"context"
	"strconv"
	"time"

	"irrigation-dashboard/internal/app/session"
)

// SessionStore хранит токены сессий в Redis, чтобы они переживали перезапуск
type SessionStore struct {
	client *Client
}

func NewSessionStore(client *Client) *SessionStore {
	return &SessionStore{client: client}
}

// Save сохраняет информацию о сессии пользователя
func (s *SessionStore) Save(ctx context.Context, id string, data session.Data, ttl time.Duration) error {
	fields := map[string]interface{}{
		"token":      data.Token,
		"email":      data.Email,
		"expires_at": strconv.FormatInt(data.ExpiresAt.Unix(), 10),
	}
	return s.client.putSession(ctx, id, fields, ttl)
}

// Load получает информацию о сессии пользователя
func (s *SessionStore) Load(ctx context.Context, id string) (session.Data, error) {
	values, err := s.client.sessionFields(ctx, id)
	if err != nil {
		return session.Data{}, err
	}
	if len(values) == 0 || values["token"] == "" {
		return session.Data{}, session.ErrNoSession
	}

	data := session.Data{Token: values["token"], Email: values["email"]}
	if unix, err := strconv.ParseInt(values["expires_at"], 10, 64); err == nil {
		data.ExpiresAt = time.Unix(unix, 0).UTC()
	}
	return data, nil
}

// Delete удаляет сессию пользователя
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	return s.client.dropSession(ctx, id)
}
