// Package selector реализует цепочку зависимых выпадающих списков
// (станция -> датчик, контроллер -> клапан).
package selector

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// AllID - значение варианта "Todos" в форме
const AllID = "all"

var (
	ErrUnknownLevel      = errors.New("selector: unknown level")
	ErrParentUnselected  = errors.New("selector: parent level has no selection")
	ErrAllNotAllowed     = errors.New("selector: level does not accept \"all\"")
	ErrOptionUnavailable = errors.New("selector: option is not available for the current parent")
)

type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type Kind int

const (
	Unselected Kind = iota
	All
	Value
)

// Selection различает "еще не выбрано" (блокирует выборку) и "все" (фильтра нет)
type Selection struct {
	Kind Kind
	ID   string
}

func None() Selection             { return Selection{Kind: Unselected} }
func AllOf() Selection            { return Selection{Kind: All} }
func ValueOf(id string) Selection { return Selection{Kind: Value, ID: id} }

// Parse разбирает значение из формы: "" - не выбрано, "all" - все
func Parse(raw string) Selection {
	raw = strings.TrimSpace(raw)
	switch raw {
	case "":
		return None()
	case AllID:
		return AllOf()
	default:
		return ValueOf(raw)
	}
}

// FormValue - обратное к Parse
func (s Selection) FormValue() string {
	switch s.Kind {
	case All:
		return AllID
	case Value:
		return s.ID
	default:
		return ""
	}
}

// Resolver возвращает варианты уровня для выбранного значения родителя.
// Для корневого уровня parentID пустой.
type Resolver func(ctx context.Context, parentID string) ([]Option, error)

type Level struct {
	Key      string
	Label    string
	Parent   string
	AllowAll bool
	Default  Selection
	Resolve  Resolver
}

// Chain хранит выбранные значения всех уровней одного экрана
type Chain struct {
	namespace string
	levels    []Level
	cache     OptionCache
	ttl       time.Duration
	group     singleflight.Group

	mu       sync.Mutex
	selected map[string]Selection
}

// NewChain проверяет, что родитель каждого уровня объявлен раньше него
func NewChain(namespace string, cache OptionCache, ttl time.Duration, levels ...Level) (*Chain, error) {
	seen := make(map[string]struct{}, len(levels))
	for _, l := range levels {
		if l.Key == "" || l.Resolve == nil {
			return nil, fmt.Errorf("selector: level %q is incomplete", l.Key)
		}
		if l.Parent != "" {
			if _, ok := seen[l.Parent]; !ok {
				return nil, fmt.Errorf("selector: level %q declared before its parent %q", l.Key, l.Parent)
			}
		}
		if _, dup := seen[l.Key]; dup {
			return nil, fmt.Errorf("selector: duplicate level %q", l.Key)
		}
		seen[l.Key] = struct{}{}
	}
	if cache == nil {
		cache = NewMemoryCache()
	}

	c := &Chain{
		namespace: namespace,
		levels:    levels,
		cache:     cache,
		ttl:       ttl,
		selected:  make(map[string]Selection, len(levels)),
	}
	for _, l := range levels {
		c.selected[l.Key] = l.Default
	}
	return c, nil
}

// Levels возвращает уровни в порядке объявления
func (c *Chain) Levels() []Level {
	return c.levels
}

func (c *Chain) level(key string) (Level, bool) {
	for _, l := range c.levels {
		if l.Key == key {
			return l, true
		}
	}
	return Level{}, false
}

// Selection возвращает текущее значение уровня
func (c *Chain) Selection(key string) Selection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected[key]
}

// Options возвращает варианты уровня для текущего значения родителя.
// Если родитель "все", у зависимого уровня нет конкретных вариантов.
func (c *Chain) Options(ctx context.Context, key string) ([]Option, error) {
	lvl, ok := c.level(key)
	if !ok {
		return nil, ErrUnknownLevel
	}

	parentID := ""
	if lvl.Parent != "" {
		parent := c.Selection(lvl.Parent)
		switch parent.Kind {
		case Unselected:
			return nil, ErrParentUnselected
		case All:
			return []Option{}, nil
		}
		parentID = parent.ID
	}

	cacheKey := c.cacheKey(key, parentID)
	if options, ok := c.cache.Get(ctx, cacheKey); ok {
		return options, nil
	}

	v, err, _ := c.group.Do(cacheKey, func() (interface{}, error) {
		options, err := lvl.Resolve(ctx, parentID)
		if err != nil {
			return nil, err
		}
		c.cache.Set(ctx, cacheKey, options, c.ttl)
		return options, nil
	})
	if err != nil {
		return nil, err
	}
	return append([]Option(nil), v.([]Option)...), nil
}

// чужие родители не делят списки: parentID входит в ключ
func (c *Chain) cacheKey(key, parentID string) string {
	return c.namespace + "|" + key + "|" + parentID
}

// Select устанавливает значение уровня. Значение проверяется по текущим
// вариантам. Если значение изменилось, все потомки сбрасываются.
func (c *Chain) Select(ctx context.Context, key string, sel Selection) error {
	lvl, ok := c.level(key)
	if !ok {
		return ErrUnknownLevel
	}

	switch sel.Kind {
	case All:
		if !lvl.AllowAll {
			return ErrAllNotAllowed
		}
	case Value:
		options, err := c.Options(ctx, key)
		if err != nil {
			return err
		}
		if !containsOption(options, sel.ID) {
			return ErrOptionUnavailable
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.selected[key] == sel {
		return nil
	}
	c.selected[key] = sel
	c.resetDescendants(key)
	return nil
}

// потомок уровня "все" тоже становится "все", если допускает это
func (c *Chain) resetDescendants(key string) {
	parentAll := c.selected[key].Kind == All
	for _, l := range c.levels {
		if l.Parent != key {
			continue
		}
		if parentAll && l.AllowAll {
			c.selected[l.Key] = AllOf()
		} else {
			c.selected[l.Key] = l.Default
		}
		c.resetDescendants(l.Key)
	}
}

// Resolved возвращает фильтры цепочки. ready=false, если хоть один уровень
// не выбран: выборку делать нельзя. "Все" в фильтры не попадает.
func (c *Chain) Resolved() (map[string]string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	filters := make(map[string]string, len(c.levels))
	ready := true
	for _, l := range c.levels {
		sel := c.selected[l.Key]
		switch sel.Kind {
		case Unselected:
			ready = false
		case Value:
			filters[l.Key] = sel.ID
		}
	}
	return filters, ready
}

// Blocked возвращает уровни без выбора
func (c *Chain) Blocked() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	var blocked []string
	for _, l := range c.levels {
		if c.selected[l.Key].Kind == Unselected {
			blocked = append(blocked, l.Key)
		}
	}
	return blocked
}

func containsOption(options []Option, id string) bool {
	for _, o := range options {
		if o.ID == id {
			return true
		}
	}
	return false
}
