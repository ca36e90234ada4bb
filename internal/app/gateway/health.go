package gateway

import (
	"context"
	"net/http"
	"sync"
	"time"

	"irrigation-dashboard/internal/app/metrics"
)

// Health - состояние API для индикатора в боковой панели
type Health struct {
	Up        bool          `json:"up"`
	Latency   time.Duration `json:"latency_ns"`
	CheckedAt time.Time     `json:"checked_at"`
	Message   string        `json:"message,omitempty"`
}

// HealthProbe опрашивает GET /api/health не чаще одного раза за ttl
type HealthProbe struct {
	client *Client
	ttl    time.Duration
	now    func() time.Time

	mu   sync.Mutex
	last Health
}

func NewHealthProbe(client *Client, ttl time.Duration) *HealthProbe {
	return &HealthProbe{client: client, ttl: ttl, now: time.Now}
}

// Check возвращает последний результат, если он свежее ttl
func (p *HealthProbe) Check(ctx context.Context) Health {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	if !p.last.CheckedAt.IsZero() && now.Sub(p.last.CheckedAt) < p.ttl {
		return p.last
	}

	started := now
	_, err := p.client.do(ctx, http.MethodGet, "health", "", nil, nil)
	h := Health{Up: err == nil, Latency: p.now().Sub(started), CheckedAt: now}
	if err != nil {
		h.Message = UserMessage(err)
	}
	metrics.SetUpstreamUp(h.Up)
	p.last = h
	return h
}
