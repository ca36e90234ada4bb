package pkg

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"irrigation-dashboard/internal/app/config"
	"irrigation-dashboard/internal/app/gateway"
	"irrigation-dashboard/internal/app/handler"
	"irrigation-dashboard/internal/app/screens"
	"irrigation-dashboard/internal/app/selector"
	"irrigation-dashboard/internal/app/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_RegistersServiceRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	client, err := gateway.NewClient("http://127.0.0.1:1", time.Second)
	require.NoError(t, err)

	cfg := &config.Config{SessionCookie: "sid", SessionTTL: time.Hour}
	app := NewApp(cfg, gin.New(), handler.Deps{
		Sessions: session.NewManager(client, nil, time.Hour),
		API:      client,
		Catalog:  screens.DefaultCatalog(),
		Settings: screens.Settings{PageSize: 15, OptionTTL: time.Minute, OptionCache: selector.NewMemoryCache()},
		Health:   gateway.NewHealthProbe(client, time.Minute),
	})
	app.Setup()

	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "irrigation_dashboard_active_sessions")

	w = httptest.NewRecorder()
	app.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<form")

	w = httptest.NewRecorder()
	app.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/screens/valves", nil))
	assert.Equal(t, http.StatusSeeOther, w.Code)
}
