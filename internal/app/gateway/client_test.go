package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"irrigation-dashboard/internal/app/ds"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL, 2*time.Second)
	require.NoError(t, err)
	return client
}

func TestNewClient_EmptyBaseURL(t *testing.T) {
	_, err := NewClient("", time.Second)

	assert.Error(t, err)
}

func TestRequest_NoTokenSkipsNetwork(t *testing.T) {
	called := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := client.Request(context.Background(), http.MethodGet, "measurements", "", nil, nil)

	require.Error(t, err)
	assert.True(t, IsKind(err, KindUnauthenticated))
	assert.True(t, IsUnauthenticated(err))
	assert.ErrorIs(t, err, ErrNoToken)
	assert.False(t, called, "no request must be sent without a token")
}

func TestRequest_SendsBearerAndQuery(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "/api/measurements", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "7", r.URL.Query().Get("stationId"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1}]`))
	})

	raw, err := client.Request(context.Background(), http.MethodGet, "measurements", "secret",
		url.Values{"page": {"2"}, "stationId": {"7"}}, nil)

	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1}]`, string(raw))
}

func TestRequest_SendsJSONBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"name":"Estação 1"}`, string(body))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":10,"name":"Estação 1"}`))
	})

	raw, err := client.Create(context.Background(), "monitoring-stations", "secret", map[string]any{"name": "Estação 1"})

	require.NoError(t, err)
	assert.JSONEq(t, `{"id":10,"name":"Estação 1"}`, string(raw))
}

func TestRequest_EmptySuccessBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	err := client.Delete(context.Background(), "users", "5", "secret")

	assert.NoError(t, err)
}

func TestRequest_HTTPErrorCarriesStatusAndBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"email already registered"}`))
	})

	_, err := client.Create(context.Background(), "users", "secret", map[string]string{"email": "a@b.com"})

	require.Error(t, err)
	f, ok := AsFailure(err)
	require.True(t, ok)
	assert.Equal(t, KindHTTP, f.Kind)
	assert.Equal(t, http.StatusConflict, f.Status)
	assert.Contains(t, f.Body, "email already registered")
	assert.Equal(t, "http_409", Outcome(err))
}

func TestRequest_401IsUnauthenticated(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.Request(context.Background(), http.MethodGet, "users", "expired", nil, nil)

	assert.True(t, IsUnauthenticated(err))
	assert.Equal(t, http.StatusUnauthorized, StatusOf(err))
}

func TestRequest_TimeoutIsTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	client, err := NewClient(server.URL, 50*time.Millisecond)
	require.NoError(t, err)

	_, err = client.Request(context.Background(), http.MethodGet, "measurements", "secret", nil, nil)

	require.Error(t, err)
	assert.True(t, IsKind(err, KindTransport))
}

func TestRequest_ConnectionRefusedIsTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := server.URL
	server.Close()

	client, err := NewClient(addr, time.Second)
	require.NoError(t, err)

	_, err = client.Request(context.Background(), http.MethodGet, "measurements", "secret", nil, nil)

	assert.True(t, IsKind(err, KindTransport))
}

func TestRequest_MalformedJSONIsParseFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":1,`))
	})

	_, err := client.Request(context.Background(), http.MethodGet, "measurements", "secret", nil, nil)

	require.Error(t, err)
	f, ok := AsFailure(err)
	require.True(t, ok)
	assert.Equal(t, KindParse, f.Kind)
	assert.Equal(t, `[{"id":1,`, f.Body)
}

func TestRequest_OversizedBodyIsRejected(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body := make([]byte, 0, maxBodyBytes+16)
		body = append(body, '"')
		body = append(body, bytes.Repeat([]byte("a"), maxBodyBytes)...)
		body = append(body, '"')
		_, _ = w.Write(body)
	})

	_, err := client.Request(context.Background(), http.MethodGet, "measurements", "secret", nil, nil)

	require.Error(t, err)
	assert.True(t, IsKind(err, KindParse))
	assert.ErrorIs(t, err, ErrResponseTooLarge)
	assert.Contains(t, UserMessage(err), "grande demais")
}

func TestRequest_BodyAtLimitIsAccepted(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body := make([]byte, 0, maxBodyBytes)
		body = append(body, '"')
		body = append(body, bytes.Repeat([]byte("a"), maxBodyBytes-2)...)
		body = append(body, '"')
		_, _ = w.Write(body)
	})

	raw, err := client.Request(context.Background(), http.MethodGet, "measurements", "secret", nil, nil)

	require.NoError(t, err)
	assert.Len(t, raw, maxBodyBytes)
}

func TestList_EmptyBodyIsEmptyArray(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "15", r.URL.Query().Get("pageSize"))
		assert.Equal(t, "desc", r.URL.Query().Get("sort"))
		w.WriteHeader(http.StatusOK)
	})

	raw, err := client.List(context.Background(), "measurements", "secret", ListQuery{Page: 1, PageSize: 15, Sort: "desc"})

	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}

func TestLogin(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/users/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))

		var req ds.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Email == "x@y.com" && req.Password == "right" {
			_, _ = w.Write([]byte(`{"token":"abc"}`))
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
	})

	token, err := client.Login(context.Background(), "x@y.com", "right")
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	token, err = client.Login(context.Background(), "x@y.com", "wrong")
	assert.Error(t, err)
	assert.Empty(t, token)
	assert.Equal(t, http.StatusUnauthorized, StatusOf(err))
}

func TestLogin_ResponseWithoutToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	_, err := client.Login(context.Background(), "x@y.com", "right")

	assert.True(t, IsKind(err, KindParse))
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"unauthenticated", &Failure{Kind: KindUnauthenticated}, "Sessão expirada. Faça login novamente."},
		{"bad request", &Failure{Kind: KindHTTP, Status: 400}, "Dados inválidos. Verifique os campos e tente novamente."},
		{"not found", &Failure{Kind: KindHTTP, Status: 404}, "Registro não encontrado. Ele pode ter sido removido."},
		{"conflict", &Failure{Kind: KindHTTP, Status: 409}, "Conflito: o registro já existe ou foi alterado por outro usuário."},
		{"server", &Failure{Kind: KindHTTP, Status: 500}, "Erro no servidor. Tente novamente mais tarde."},
		{"transport", &Failure{Kind: KindTransport}, "Falha de conexão com o servidor. Verifique sua conexão e tente novamente."},
		{"parse", &Failure{Kind: KindParse}, "Resposta inválida do servidor."},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserMessage(tt.err))
		})
	}
}
