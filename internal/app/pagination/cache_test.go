package pagination

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource отдает заранее заданные страницы и считает вызовы
type fakeSource struct {
	mu       sync.Mutex
	pages    map[int][]string
	failPage map[int]error
	calls    []PageRequest
	delay    time.Duration
	inFlight int
	maxInFl  int
}

func newFakeSource() *fakeSource {
	return &fakeSource{pages: map[int][]string{}, failPage: map[int]error{}}
}

func (s *fakeSource) fetch(ctx context.Context, req PageRequest) ([]string, error) {
	s.mu.Lock()
	s.calls = append(s.calls, req)
	s.inFlight++
	if s.inFlight > s.maxInFl {
		s.maxInFl = s.inFlight
	}
	delay := s.delay
	err := s.failPage[req.Page]
	page := s.pages[req.Page]
	s.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}

	s.mu.Lock()
	s.inFlight--
	s.mu.Unlock()

	if err != nil {
		return nil, err
	}
	return append([]string(nil), page...), nil
}

func (s *fakeSource) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func makePage(prefix string, n int) []string {
	page := make([]string, n)
	for i := range page {
		page[i] = fmt.Sprintf("%s-%d", prefix, i)
	}
	return page
}

func stationFilters(station string) Filters {
	return Filters{Scope: "measurements", Selections: map[string]string{"stationId": station}, Sort: SortDesc}
}

func loadedCache(t *testing.T, src *fakeSource, pageSize int) *Cache[string] {
	t.Helper()

	cache := NewCache(pageSize, src.fetch)
	cache.SetFilters(stationFilters("7"))
	require.NoError(t, cache.LoadInitial(context.Background()))
	return cache
}

func TestCache_StartsFresh(t *testing.T) {
	cache := NewCache(15, newFakeSource().fetch)

	assert.Equal(t, Fresh, cache.State())
	assert.Equal(t, 1, cache.Cursor())
	assert.Empty(t, cache.Items())
	assert.False(t, cache.HasMore())
}

func TestCache_LoadInitial(t *testing.T) {
	src := newFakeSource()
	src.pages[1] = makePage("p1", 15)

	cache := loadedCache(t, src, 15)

	assert.Equal(t, Loaded, cache.State())
	assert.Equal(t, src.pages[1], cache.Items())
	assert.True(t, cache.HasMore())
	require.Len(t, src.calls, 1)
	assert.Equal(t, 1, src.calls[0].Page)
	assert.Equal(t, 15, src.calls[0].PageSize)
	assert.Equal(t, "7", src.calls[0].Filters.Selections["stationId"])
}

func TestCache_ResetOnFilterChange(t *testing.T) {
	src := newFakeSource()
	src.pages[1] = makePage("p1", 15)
	src.pages[2] = makePage("p2", 15)
	cache := loadedCache(t, src, 15)
	require.NoError(t, cache.LoadMore(context.Background()))
	require.Len(t, cache.Items(), 30)

	changed := cache.SetFilters(stationFilters("8"))

	assert.True(t, changed)
	assert.Empty(t, cache.Items())
	assert.Equal(t, 1, cache.Cursor())
	assert.Equal(t, Fresh, cache.State())
}

func TestCache_NoOpOnSameFilters(t *testing.T) {
	src := newFakeSource()
	src.pages[1] = makePage("p1", 15)
	src.pages[2] = makePage("p2", 15)
	cache := loadedCache(t, src, 15)
	require.NoError(t, cache.LoadMore(context.Background()))
	before := cache.Snapshot()

	changed := cache.SetFilters(stationFilters("7"))
	changedAgain := cache.SetFilters(stationFilters("7"))

	after := cache.Snapshot()
	assert.False(t, changed)
	assert.False(t, changedAgain)
	assert.Equal(t, before.Items, after.Items)
	assert.Equal(t, before.Cursor, after.Cursor)
	assert.Equal(t, Loaded, after.State)
}

func TestCache_SameStationThenDifferentStation(t *testing.T) {
	src := newFakeSource()
	src.pages[1] = makePage("p1", 15)
	cache := NewCache(15, src.fetch)

	assert.True(t, cache.SetFilters(stationFilters("7")))
	require.NoError(t, cache.LoadInitial(context.Background()))
	assert.False(t, cache.SetFilters(stationFilters("7")))
	assert.Len(t, cache.Items(), 15)

	assert.True(t, cache.SetFilters(stationFilters("8")))
	assert.Empty(t, cache.Items())
	assert.Equal(t, 1, cache.Cursor())
}

func TestCache_AppendOrder(t *testing.T) {
	src := newFakeSource()
	for page := 1; page <= 4; page++ {
		src.pages[page] = makePage(fmt.Sprintf("p%d", page), 5)
	}
	cache := loadedCache(t, src, 5)

	for i := 0; i < 3; i++ {
		require.NoError(t, cache.LoadMore(context.Background()))
	}

	var want []string
	for page := 1; page <= 4; page++ {
		want = append(want, src.pages[page]...)
	}
	assert.Equal(t, want, cache.Items())
	assert.Equal(t, 4, cache.Cursor())
	for i, call := range src.calls {
		assert.Equal(t, i+1, call.Page, "pages are fetched strictly in order without gaps")
	}
}

func TestCache_FailedPageDoesNotCorruptState(t *testing.T) {
	src := newFakeSource()
	src.pages[1] = makePage("p1", 15)
	src.failPage[2] = errors.New("connection reset")
	cache := loadedCache(t, src, 15)
	before := cache.Snapshot()

	err := cache.LoadMore(context.Background())

	require.Error(t, err)
	after := cache.Snapshot()
	assert.Equal(t, before.Cursor, after.Cursor)
	assert.Equal(t, before.Items, after.Items)
	assert.Equal(t, Loaded, after.State)
	assert.EqualError(t, after.Err, "connection reset")

	// повтор пользователем запрашивает ту же страницу 2
	delete(src.failPage, 2)
	src.pages[2] = makePage("p2", 3)
	require.NoError(t, cache.LoadMore(context.Background()))
	assert.Equal(t, 2, src.calls[len(src.calls)-1].Page)
	assert.Len(t, cache.Items(), 18)
	assert.Nil(t, cache.Snapshot().Err)
}

func TestCache_EmptyInitialLoadIsNotRepeated(t *testing.T) {
	src := newFakeSource()
	cache := NewCache(15, src.fetch)
	cache.SetFilters(stationFilters("7"))

	require.NoError(t, cache.LoadInitial(context.Background()))
	err := cache.LoadInitial(context.Background())

	assert.ErrorIs(t, err, ErrNotFresh)
	assert.Equal(t, Loaded, cache.State())
	assert.Empty(t, cache.Items())
	assert.Equal(t, 1, src.callCount())
	assert.False(t, cache.HasMore())
}

func TestCache_FailedInitialLoadMovesToLoaded(t *testing.T) {
	src := newFakeSource()
	src.failPage[1] = errors.New("http 500")
	cache := NewCache(15, src.fetch)
	cache.SetFilters(stationFilters("7"))

	err := cache.LoadInitial(context.Background())

	require.Error(t, err)
	assert.Equal(t, Loaded, cache.State())
	assert.Empty(t, cache.Items())
	assert.ErrorIs(t, cache.LoadInitial(context.Background()), ErrNotFresh)
	assert.Equal(t, 1, src.callCount())
}

func TestCache_LoadMoreRequiresLoaded(t *testing.T) {
	src := newFakeSource()
	cache := NewCache(15, src.fetch)
	cache.SetFilters(stationFilters("7"))

	err := cache.LoadMore(context.Background())

	assert.ErrorIs(t, err, ErrNotLoaded)
	assert.Equal(t, 0, src.callCount())
	assert.Equal(t, 1, cache.Cursor())
}

func TestCache_ShortPageHidesLoadMore(t *testing.T) {
	src := newFakeSource()
	src.pages[1] = makePage("p1", 15)
	src.pages[2] = makePage("p2", 5)
	cache := loadedCache(t, src, 15)
	assert.True(t, cache.HasMore())

	require.NoError(t, cache.LoadMore(context.Background()))

	assert.False(t, cache.HasMore())
	assert.Len(t, cache.Items(), 20)
}

func TestCache_FailedLoadMoreKeepsHasMore(t *testing.T) {
	src := newFakeSource()
	src.pages[1] = makePage("p1", 15)
	src.failPage[2] = errors.New("timeout")
	cache := loadedCache(t, src, 15)

	_ = cache.LoadMore(context.Background())

	assert.True(t, cache.HasMore(), "the affordance stays so the user can retry")
}

func TestCache_Refresh(t *testing.T) {
	src := newFakeSource()
	src.pages[1] = makePage("p1", 15)
	src.pages[2] = makePage("p2", 15)
	cache := loadedCache(t, src, 15)
	require.NoError(t, cache.LoadMore(context.Background()))

	src.pages[1] = makePage("new", 4)
	require.NoError(t, cache.Refresh(context.Background()))

	assert.Equal(t, src.pages[1], cache.Items())
	assert.Equal(t, 1, cache.Cursor())
	assert.False(t, cache.HasMore())
}

func TestCache_FailedRefreshKeepsItems(t *testing.T) {
	src := newFakeSource()
	src.pages[1] = makePage("p1", 15)
	cache := loadedCache(t, src, 15)

	src.failPage[1] = errors.New("down")
	err := cache.Refresh(context.Background())

	require.Error(t, err)
	assert.Len(t, cache.Items(), 15)
}

func TestCache_ConcurrentLoadMoreIsSerialized(t *testing.T) {
	src := newFakeSource()
	for page := 1; page <= 9; page++ {
		src.pages[page] = makePage(fmt.Sprintf("p%d", page), 2)
	}
	cache := loadedCache(t, src, 2)
	src.delay = 5 * time.Millisecond

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, cache.LoadMore(context.Background()))
		}()
	}
	wg.Wait()

	var want []string
	for page := 1; page <= 9; page++ {
		want = append(want, src.pages[page]...)
	}
	assert.Equal(t, want, cache.Items())
	assert.Equal(t, 9, cache.Cursor())
	assert.Equal(t, 1, src.maxInFl)
}

func TestCache_SnapshotIsCopy(t *testing.T) {
	src := newFakeSource()
	src.pages[1] = makePage("p1", 3)
	cache := loadedCache(t, src, 15)

	snap := cache.Snapshot()
	snap.Items[0] = "mutated"

	assert.Equal(t, "p1-0", cache.Items()[0])
}
