// Package gateway - клиент удаленного REST API платформы ирригации.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"irrigation-dashboard/internal/app/metrics"

	"github.com/sirupsen/logrus"
)

const (
	apiPrefix    = "/api/"
	maxBodyBytes = 1 << 20
	maxLogBody   = 512
)

// Client выполняет запросы к API. Повторов нет: повтор - это новое действие пользователя.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

// NewClient создает клиент API
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	return NewClientWithHTTP(baseURL, timeout, &http.Client{})
}

// NewClientWithHTTP создает клиент с заданным http.Client
func NewClientWithHTTP(baseURL string, timeout time.Duration, httpClient *http.Client) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("gateway: empty base url")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		timeout:    timeout,
		httpClient: httpClient,
	}, nil
}

// Request выполняет аутентифицированный запрос. Пустой токен - нарушение
// предусловия, сеть не трогается.
func (c *Client) Request(ctx context.Context, method, path, token string, query url.Values, body any) (json.RawMessage, error) {
	if token == "" {
		return nil, &Failure{Kind: KindUnauthenticated, Method: method, Path: path, Err: ErrNoToken}
	}
	return c.do(ctx, method, path, token, query, body)
}

func (c *Client) do(ctx context.Context, method, path, token string, query url.Values, body any) (json.RawMessage, error) {
	started := time.Now()
	payload, err := c.roundTrip(ctx, method, path, token, query, body)
	metrics.ObserveUpstream(method, Outcome(err), time.Since(started))
	return payload, err
}

func (c *Client) roundTrip(ctx context.Context, method, path, token string, query url.Values, body any) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reqBody io.Reader = http.NoBody
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Failure{Kind: KindTransport, Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	// лишний байт отличает ответ ровно предельного размера от обрезанного
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, &Failure{Kind: KindTransport, Method: method, Path: path, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &Failure{
			Kind:   KindHTTP,
			Method: method,
			Path:   path,
			Status: resp.StatusCode,
			Body:   strings.TrimSpace(string(data)),
		}
	}

	if len(data) > maxBodyBytes {
		logrus.Warnf("response from %s %s exceeds %d bytes", method, path, maxBodyBytes)
		return nil, &Failure{Kind: KindParse, Method: method, Path: path, Err: ErrResponseTooLarge}
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if !json.Valid(trimmed) {
		logrus.Warnf("malformed JSON from %s %s: %s", method, path, truncate(string(trimmed), maxLogBody))
		return nil, &Failure{Kind: KindParse, Method: method, Path: path, Body: string(trimmed), Err: errors.New("invalid json")}
	}
	return json.RawMessage(trimmed), nil
}

func (c *Client) endpoint(path string, query url.Values) string {
	target := c.baseURL + apiPrefix + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	return target
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
