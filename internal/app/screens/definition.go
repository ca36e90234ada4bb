// Package screens описывает экраны дашборда и хранит состояние экрана
// внутри сессии.
package screens

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"irrigation-dashboard/internal/app/ds"
	"irrigation-dashboard/internal/app/gateway"
	"irrigation-dashboard/internal/app/normalize"
	"irrigation-dashboard/internal/app/pagination"
	"irrigation-dashboard/internal/app/selector"
)

var (
	ErrUnknownScreen = errors.New("screens: unknown screen")
	ErrReadOnly      = errors.New("screens: screen has no record actions")
)

// API - вызовы удаленного API, которые нужны экранам. *gateway.Client реализует его.
type API interface {
	List(ctx context.Context, collection, token string, q gateway.ListQuery) (json.RawMessage, error)
	Create(ctx context.Context, collection, token string, body any) (json.RawMessage, error)
	Update(ctx context.Context, collection, id, token string, body any) (json.RawMessage, error)
	Delete(ctx context.Context, collection, id, token string) error

	Stations(ctx context.Context, token string) ([]ds.MonitoringStation, error)
	Sensors(ctx context.Context, token, stationID string) ([]ds.Sensor, error)
	Controllers(ctx context.Context, token string) ([]ds.Controller, error)
	Valves(ctx context.Context, token, controllerID string) ([]ds.Valve, error)
}

// OptionSource загружает варианты уровня для родителя
type OptionSource func(ctx context.Context, api API, token, parentID string) ([]selector.Option, error)

// LevelSpec - уровень цепочки выбора без привязки к токену
type LevelSpec struct {
	Key      string
	Label    string
	Parent   string
	AllowAll bool
	Options  OptionSource
}

// Endpoint строит путь коллекции и параметры запроса по выбранным значениям.
// В sel есть только конкретные значения: "все" и "не выбрано" туда не попадают.
type Endpoint func(sel map[string]string) (collection string, params map[string]string)

// Definition - неизменяемое описание экрана
type Definition struct {
	Name        string
	Title       string
	Levels      []LevelSpec
	Endpoint    Endpoint
	DateRange   bool
	DefaultSort pagination.SortOrder
	UserSort    bool
	Schema      normalize.Schema
	// Validate проверяет страницу по типизированной записи до нормализации
	Validate func(raw json.RawMessage) error

	// Collection строит коллекцию для создания, изменения и удаления записей
	// по текущему выбору, например controllers/{id}/valves
	Collection Endpoint
	Fields     []Field
	Photo      bool
}

// Editable сообщает, есть ли у экрана действия над записями
func (d *Definition) Editable() bool {
	return d.Collection != nil && len(d.Fields) > 0
}

func (d *Definition) buildLevels(api API, token string) []selector.Level {
	levels := make([]selector.Level, 0, len(d.Levels))
	for _, spec := range d.Levels {
		source := spec.Options
		levels = append(levels, selector.Level{
			Key:      spec.Key,
			Label:    spec.Label,
			Parent:   spec.Parent,
			AllowAll: spec.AllowAll,
			Default:  selector.None(),
			Resolve: func(ctx context.Context, parentID string) ([]selector.Option, error) {
				return source(ctx, api, token, parentID)
			},
		})
	}
	return levels
}

// Catalog - набор экранов по имени
type Catalog struct {
	order []string
	defs  map[string]*Definition
}

func NewCatalog(defs ...*Definition) (*Catalog, error) {
	c := &Catalog{defs: make(map[string]*Definition, len(defs))}
	for _, d := range defs {
		if d.Name == "" || d.Endpoint == nil {
			return nil, fmt.Errorf("screens: definition %q is incomplete", d.Name)
		}
		if _, dup := c.defs[d.Name]; dup {
			return nil, fmt.Errorf("screens: duplicate screen %q", d.Name)
		}
		c.defs[d.Name] = d
		c.order = append(c.order, d.Name)
	}
	return c, nil
}

func (c *Catalog) Get(name string) (*Definition, error) {
	d, ok := c.defs[name]
	if !ok {
		return nil, ErrUnknownScreen
	}
	return d, nil
}

// All возвращает экраны в порядке меню
func (c *Catalog) All() []*Definition {
	out := make([]*Definition, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.defs[name])
	}
	return out
}

func fixed(collection string) Endpoint {
	return func(map[string]string) (string, map[string]string) {
		return collection, nil
	}
}

// nested - коллекция внутри родителя, например controllers/{id}/valves
func nested(parent, key, child string) Endpoint {
	return func(sel map[string]string) (string, map[string]string) {
		return gateway.ResourcePath(parent, sel[key]) + "/" + child, nil
	}
}

// filtered - коллекция с фильтрами в query
func filtered(collection string) Endpoint {
	return func(sel map[string]string) (string, map[string]string) {
		params := make(map[string]string, len(sel))
		for k, v := range sel {
			params[k] = v
		}
		return collection, params
	}
}
