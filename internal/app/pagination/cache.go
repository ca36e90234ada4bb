// Package pagination реализует накопительную постраничную загрузку, которая
// сбрасывается при смене фильтров.
package pagination

import (
	"context"
	"errors"
	"sync"
)

type State int

const (
	Fresh State = iota
	Loaded
)

func (s State) String() string {
	if s == Loaded {
		return "loaded"
	}
	return "fresh"
}

var (
	ErrNotFresh  = errors.New("pagination: initial page already requested for these filters")
	ErrNotLoaded = errors.New("pagination: load more before initial load")
)

// PageRequest - параметры одной выборки
type PageRequest struct {
	Page     int
	PageSize int
	Filters  Filters
}

// Fetcher загружает одну страницу. Возвращенный срез принадлежит кэшу.
type Fetcher[T any] func(ctx context.Context, req PageRequest) ([]T, error)

// Cache владеет курсором, накопленными записями и текущим отпечатком фильтров
// одного экрана. Все переходы выполняются под одной блокировкой, которая
// удерживается и во время выборки: две загрузки не идут параллельно.
type Cache[T any] struct {
	mu sync.Mutex

	fetch    Fetcher[T]
	pageSize int

	state       State
	filters     Filters
	fingerprint Fingerprint
	cursor      int
	items       []T
	lastPage    int
	lastErr     error
}

func NewCache[T any](pageSize int, fetch Fetcher[T]) *Cache[T] {
	if pageSize <= 0 {
		pageSize = 15
	}
	return &Cache[T]{
		fetch:    fetch,
		pageSize: pageSize,
		state:    Fresh,
		cursor:   1,
	}
}

// SetFilters принимает новые фильтры. При смене отпечатка курсор -> 1,
// записи очищаются, состояние -> Fresh. Возвращает true, если был сброс.
func (c *Cache[T]) SetFilters(f Filters) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	fp := f.Fingerprint()
	if c.fingerprint == fp && c.fingerprint != "" {
		return false
	}
	c.filters = f
	c.fingerprint = fp
	c.reset()
	return true
}

func (c *Cache[T]) reset() {
	c.state = Fresh
	c.cursor = 1
	c.items = nil
	c.lastPage = 0
	c.lastErr = nil
}

// LoadInitial загружает первую страницу. Допустим только в состоянии Fresh;
// после любой попытки, успешной или нет, состояние становится Loaded.
func (c *Cache[T]) LoadInitial(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != Fresh {
		return ErrNotFresh
	}
	return c.loadFirst(ctx)
}

func (c *Cache[T]) loadFirst(ctx context.Context) error {
	page, err := c.fetch(ctx, PageRequest{Page: 1, PageSize: c.pageSize, Filters: c.filters})
	c.state = Loaded
	c.cursor = 1
	c.lastErr = err
	if err != nil {
		c.items = nil
		c.lastPage = 0
		return err
	}
	c.items = append([]T(nil), page...)
	c.lastPage = len(page)
	return nil
}

// LoadMore загружает следующую страницу и дописывает ее в конец. При ошибке
// курсор откатывается, накопленные записи не меняются.
func (c *Cache[T]) LoadMore(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != Loaded {
		return ErrNotLoaded
	}

	c.cursor++
	page, err := c.fetch(ctx, PageRequest{Page: c.cursor, PageSize: c.pageSize, Filters: c.filters})
	if err != nil {
		c.cursor--
		c.lastErr = err
		return err
	}
	c.items = append(c.items, page...)
	c.lastPage = len(page)
	c.lastErr = nil
	return nil
}

// Refresh - повторная загрузка первой страницы тех же фильтров по действию
// пользователя. При ошибке прежние записи сохраняются.
func (c *Cache[T]) Refresh(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == Fresh {
		return c.loadFirst(ctx)
	}

	page, err := c.fetch(ctx, PageRequest{Page: 1, PageSize: c.pageSize, Filters: c.filters})
	if err != nil {
		c.lastErr = err
		return err
	}
	c.cursor = 1
	c.items = append([]T(nil), page...)
	c.lastPage = len(page)
	c.lastErr = nil
	return nil
}

// Snapshot - согласованный срез состояния для отображения
type Snapshot[T any] struct {
	State       State
	Fingerprint Fingerprint
	Filters     Filters
	Cursor      int
	PageSize    int
	Items       []T
	HasMore     bool
	Err         error
}

func (c *Cache[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Snapshot[T]{
		State:       c.state,
		Fingerprint: c.fingerprint,
		Filters:     c.filters,
		Cursor:      c.cursor,
		PageSize:    c.pageSize,
		Items:       append([]T(nil), c.items...),
		HasMore:     c.hasMore(),
		Err:         c.lastErr,
	}
}

// HasMore истинно, только если последняя страница была полной
func (c *Cache[T]) HasMore() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hasMore()
}

func (c *Cache[T]) hasMore() bool {
	return c.state == Loaded && c.lastPage == c.pageSize
}

func (c *Cache[T]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Cache[T]) Cursor() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cursor
}

func (c *Cache[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]T(nil), c.items...)
}

func (c *Cache[T]) Fingerprint() Fingerprint {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fingerprint
}

func (c *Cache[T]) PageSize() int {
	return c.pageSize
}
