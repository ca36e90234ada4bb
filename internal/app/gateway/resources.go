package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"irrigation-dashboard/internal/app/ds"

	"github.com/go-playground/validator/v10"
)

const (
	optionsPageSize = 100
	maxOptionPages  = 20
)

var validate = validator.New()

// ListQuery - параметры постраничного запроса коллекции
type ListQuery struct {
	Page     int
	PageSize int
	Sort     string
	Params   url.Values
}

// Values кодирует запрос в query string API
func (q ListQuery) Values() url.Values {
	values := url.Values{}
	for key, vals := range q.Params {
		for _, v := range vals {
			values.Add(key, v)
		}
	}
	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		values.Set("pageSize", strconv.Itoa(q.PageSize))
	}
	if q.Sort != "" {
		values.Set("sort", q.Sort)
	}
	return values
}

// List запрашивает одну страницу коллекции. Пустой ответ считается пустым массивом.
func (c *Client) List(ctx context.Context, collection, token string, q ListQuery) (json.RawMessage, error) {
	raw, err := c.Request(ctx, http.MethodGet, collection, token, q.Values(), nil)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return json.RawMessage("[]"), nil
	}
	return raw, nil
}

func (c *Client) Get(ctx context.Context, collection, id, token string) (json.RawMessage, error) {
	return c.Request(ctx, http.MethodGet, ResourcePath(collection, id), token, nil, nil)
}

func (c *Client) Create(ctx context.Context, collection, token string, body any) (json.RawMessage, error) {
	return c.Request(ctx, http.MethodPost, collection, token, nil, body)
}

func (c *Client) Update(ctx context.Context, collection, id, token string, body any) (json.RawMessage, error) {
	return c.Request(ctx, http.MethodPut, ResourcePath(collection, id), token, nil, body)
}

func (c *Client) Delete(ctx context.Context, collection, id, token string) error {
	_, err := c.Request(ctx, http.MethodDelete, ResourcePath(collection, id), token, nil, nil)
	return err
}

// ResourcePath строит путь <collection>/<id>
func ResourcePath(collection, id string) string {
	return strings.TrimRight(collection, "/") + "/" + url.PathEscape(id)
}

// Login обменивает учетные данные на токен. Причина отказа наружу не выдается.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	raw, err := c.do(ctx, http.MethodPost, "users/login", "", nil, ds.LoginRequest{Email: email, Password: password})
	if err != nil {
		return "", err
	}
	var resp ds.LoginResponse
	if err := json.Unmarshal(raw, &resp); err != nil || resp.Token == "" {
		return "", &Failure{Kind: KindParse, Method: http.MethodPost, Path: "users/login", Err: errors.New("login response without token")}
	}
	return resp.Token, nil
}

// DecodeList декодирует страницу в типизированные записи. Любая запись без
// обязательных полей делает всю страницу недействительной.
func DecodeList[T any](raw json.RawMessage) ([]T, error) {
	if len(raw) == 0 {
		return []T{}, nil
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, &Failure{Kind: KindParse, Body: truncate(string(raw), maxLogBody), Err: err}
	}
	for i := range items {
		if err := validate.Struct(&items[i]); err != nil {
			return nil, &Failure{Kind: KindParse, Body: truncate(string(raw), maxLogBody), Err: fmt.Errorf("record %d: %w", i, err)}
		}
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// DecodeOne декодирует одиночный объект
func DecodeOne[T any](raw json.RawMessage) (T, error) {
	var item T
	if len(raw) == 0 {
		return item, &Failure{Kind: KindParse, Err: errors.New("empty object")}
	}
	if err := json.Unmarshal(raw, &item); err != nil {
		return item, &Failure{Kind: KindParse, Body: truncate(string(raw), maxLogBody), Err: err}
	}
	if err := validate.Struct(&item); err != nil {
		return item, &Failure{Kind: KindParse, Body: truncate(string(raw), maxLogBody), Err: err}
	}
	return item, nil
}

// ValidateList проверяет страницу без сохранения записей
func ValidateList[T any](raw json.RawMessage) error {
	_, err := DecodeList[T](raw)
	return err
}

// listAll собирает коллекцию целиком для выпадающих списков: страницы до первой неполной
func listAll[T any](ctx context.Context, c *Client, collection, token string, params url.Values) ([]T, error) {
	var all []T
	for page := 1; page <= maxOptionPages; page++ {
		raw, err := c.List(ctx, collection, token, ListQuery{Page: page, PageSize: optionsPageSize, Sort: "asc", Params: params})
		if err != nil {
			return nil, err
		}
		items, err := DecodeList[T](raw)
		if err != nil {
			return nil, err
		}
		all = append(all, items...)
		if len(items) < optionsPageSize {
			break
		}
	}
	return all, nil
}

func (c *Client) Stations(ctx context.Context, token string) ([]ds.MonitoringStation, error) {
	return listAll[ds.MonitoringStation](ctx, c, "monitoring-stations", token, nil)
}

func (c *Client) Sensors(ctx context.Context, token, stationID string) ([]ds.Sensor, error) {
	return listAll[ds.Sensor](ctx, c, ResourcePath("monitoring-stations", stationID)+"/sensors", token, nil)
}

func (c *Client) Controllers(ctx context.Context, token string) ([]ds.Controller, error) {
	return listAll[ds.Controller](ctx, c, "controllers", token, nil)
}

func (c *Client) Valves(ctx context.Context, token, controllerID string) ([]ds.Valve, error) {
	return listAll[ds.Valve](ctx, c, ResourcePath("controllers", controllerID)+"/valves", token, nil)
}
