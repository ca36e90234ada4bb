package screens

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	catalog := DefaultCatalog()

	var names []string
	for _, d := range catalog.All() {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{Measurements, Activations, Valves, Controllers, Stations, Tariffs, Energy, Water, Users}, names)

	_, err := catalog.Get("reports")
	assert.ErrorIs(t, err, ErrUnknownScreen)

	stations, err := catalog.Get(Stations)
	require.NoError(t, err)
	assert.True(t, stations.Editable())
	assert.True(t, stations.Photo)
}

func TestNewCatalog_RejectsDuplicates(t *testing.T) {
	def := &Definition{Name: "x", Endpoint: fixed("x")}

	_, err := NewCatalog(def, def)

	assert.Error(t, err)
}

func TestBuildBody(t *testing.T) {
	fields := []Field{
		{Key: "name", Label: "Nome", Required: true},
		{Key: "price", Label: "Preço", Type: FieldNumber},
		{Key: "start", Label: "Início", Type: FieldTime},
		{Key: "active", Label: "Ativo", Type: FieldBool},
		{Key: "password", Label: "Senha", Type: FieldPassword, Required: true, CreateOnly: true},
	}

	t.Run("create converts types", func(t *testing.T) {
		form := url.Values{"name": {" Tarifa "}, "price": {"0,85"}, "start": {"06:30"}, "password": {"x"}}

		body, err := BuildBody(fields, form, nil, true)

		require.NoError(t, err)
		assert.Equal(t, map[string]any{"name": "Tarifa", "price": 0.85, "start": "06:30", "active": false, "password": "x"}, body)
	})

	t.Run("update skips create only fields", func(t *testing.T) {
		body, err := BuildBody(fields, url.Values{"name": {"T"}}, nil, false)

		require.NoError(t, err)
		assert.NotContains(t, body, "password")
	})

	t.Run("required field", func(t *testing.T) {
		_, err := BuildBody(fields, url.Values{"password": {"x"}}, nil, true)

		assert.Equal(t, "Campo Nome: campo obrigatório.", Message(err))
	})

	t.Run("invalid number", func(t *testing.T) {
		_, err := BuildBody(fields, url.Values{"name": {"T"}, "price": {"abc"}, "password": {"x"}}, nil, true)

		var fieldErr *FieldError
		require.ErrorAs(t, err, &fieldErr)
		assert.Equal(t, "Preço", fieldErr.Field)
	})

	t.Run("invalid time", func(t *testing.T) {
		_, err := BuildBody(fields, url.Values{"name": {"T"}, "start": {"25:00"}, "password": {"x"}}, nil, true)

		assert.Error(t, err)
	})

	t.Run("email", func(t *testing.T) {
		emailFields := []Field{{Key: "email", Label: "E-mail", Type: FieldEmail, Required: true}}

		_, err := BuildBody(emailFields, url.Values{"email": {"ana"}}, nil, true)
		assert.Error(t, err)

		body, err := BuildBody(emailFields, url.Values{"email": {"ana@farm.br"}}, nil, true)
		require.NoError(t, err)
		assert.Equal(t, "ana@farm.br", body["email"])
	})

	t.Run("selector field needs selection", func(t *testing.T) {
		selFields := []Field{{Key: "controllerId", Label: "Controlador", Type: FieldInt, FromSelector: "controllerId"}}

		_, err := BuildBody(selFields, url.Values{"controllerId": {"9"}}, map[string]string{}, true)
		assert.ErrorIs(t, err, ErrSelectionRequired)

		body, err := BuildBody(selFields, url.Values{}, map[string]string{"controllerId": "5"}, true)
		require.NoError(t, err)
		assert.Equal(t, int64(5), body["controllerId"])
	})
}
