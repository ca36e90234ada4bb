package screens

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/url"
	"strings"
	"sync"
	"time"

	"irrigation-dashboard/internal/app/gateway"
	"irrigation-dashboard/internal/app/metrics"
	"irrigation-dashboard/internal/app/normalize"
	"irrigation-dashboard/internal/app/pagination"
	"irrigation-dashboard/internal/app/selector"

	"github.com/sirupsen/logrus"
)

const defaultRangeDays = 7

var dateLayouts = []string{"2006-01-02T15:04", "2006-01-02T15:04:05", "2006-01-02"}

// Settings - общие для всех экранов параметры
type Settings struct {
	PageSize    int
	OptionTTL   time.Duration
	OptionCache selector.OptionCache
	Location    *time.Location
	Now         func() time.Time
}

// State - состояние одного экрана одной сессии: цепочка выбора, накопленный
// список и входы фильтра
type State struct {
	def   *Definition
	api   API
	token string
	norm  *normalize.Normalizer
	loc   *time.Location

	chain *selector.Chain
	cache *pagination.Cache[normalize.Row]

	mu      sync.Mutex
	start   time.Time
	end     time.Time
	sort    pagination.SortOrder
	columns []normalize.Column
}

func NewState(def *Definition, api API, token string, settings Settings) (*State, error) {
	loc := settings.Location
	if loc == nil {
		loc = normalize.SaoPaulo
	}
	now := settings.Now
	if now == nil {
		now = time.Now
	}
	ttl := settings.OptionTTL
	if ttl <= 0 {
		ttl = 120 * time.Second
	}

	chain, err := selector.NewChain(optionNamespace(def.Name, token), settings.OptionCache, ttl, def.buildLevels(api, token)...)
	if err != nil {
		return nil, err
	}

	s := &State{
		def:   def,
		api:   api,
		token: token,
		norm:  normalize.New(loc),
		loc:   loc,
		chain: chain,
		sort:  def.DefaultSort,
	}
	if s.sort == "" {
		s.sort = pagination.SortAsc
	}
	if def.DateRange {
		today := now().In(loc)
		midnight := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, loc)
		s.start = midnight.AddDate(0, 0, -defaultRangeDays)
	}
	s.cache = pagination.NewCache[normalize.Row](settings.PageSize, s.fetch)
	s.cache.SetFilters(s.filters())
	return s, nil
}

// optionNamespace разделяет кэш вариантов по токену: API отдает каждому
// пользователю свой набор записей
func optionNamespace(screen, token string) string {
	sum := sha256.Sum256([]byte(token))
	return screen + "|" + hex.EncodeToString(sum[:8])
}

func (s *State) Definition() *Definition {
	return s.def
}

// fetch выполняется под блокировкой кэша
func (s *State) fetch(ctx context.Context, req pagination.PageRequest) ([]normalize.Row, error) {
	collection, params := s.def.Endpoint(concrete(req.Filters.Selections))
	query := pagination.Filters{Selections: params, Start: req.Filters.Start, End: req.Filters.End}.Query()

	raw, err := s.api.List(ctx, collection, s.token, gateway.ListQuery{
		Page:     req.Page,
		PageSize: req.PageSize,
		Sort:     string(req.Filters.Sort),
		Params:   query,
	})
	if err != nil {
		return nil, err
	}
	if s.def.Validate != nil {
		if err := s.def.Validate(raw); err != nil {
			logrus.Warnf("rejected %s page %d: %v", s.def.Name, req.Page, err)
			return nil, err
		}
	}

	table, err := s.norm.Normalize(raw, s.def.Schema)
	if err != nil {
		logrus.Warnf("unreadable %s page %d: %v", s.def.Name, req.Page, err)
		return nil, err
	}

	s.mu.Lock()
	if req.Page == 1 {
		s.columns = table.Columns
	} else {
		s.columns = normalize.MergeColumns(s.columns, table.Columns)
	}
	s.mu.Unlock()

	return table.Rows, nil
}

// concrete оставляет только конкретные значения: "все" означает отсутствие фильтра
func concrete(selections map[string]string) map[string]string {
	out := make(map[string]string, len(selections))
	for k, v := range selections {
		if v == "" || v == selector.AllID {
			continue
		}
		out[k] = v
	}
	return out
}

// filters собирает отпечаток из всех входов. Для уровней хранится значение
// формы, поэтому "все" и "не выбрано" дают разные отпечатки.
func (s *State) filters() pagination.Filters {
	selections := make(map[string]string, len(s.def.Levels))
	for _, l := range s.chain.Levels() {
		selections[l.Key] = s.chain.Selection(l.Key).FormValue()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return pagination.Filters{
		Scope:      s.def.Name,
		Selections: selections,
		Start:      s.start,
		End:        s.end,
		Sort:       s.sort,
	}
}

// Ready истинно, когда у всех уровней есть выбор
func (s *State) Ready() bool {
	_, ready := s.chain.Resolved()
	return ready
}

// Apply применяет входы из запроса: присутствующий параметр меняет свой
// фильтр, отсутствующий оставляет прежнее значение. Если зависимый уровень
// пришел вместе с измененным родителем, его значение устарело и отбрасывается.
// Затем кэш получает новые фильтры и, если он Fresh, загружает первую страницу.
func (s *State) Apply(ctx context.Context, form url.Values) error {
	inputErr := s.applyInputs(ctx, form)

	s.cache.SetFilters(s.filters())
	if !s.Ready() {
		return inputErr
	}

	err := s.cache.LoadInitial(ctx)
	if errors.Is(err, pagination.ErrNotFresh) {
		return inputErr
	}
	metrics.IncScreenLoad(s.def.Name, "initial", gateway.Outcome(err))
	if err != nil {
		return err
	}
	return inputErr
}

func (s *State) applyInputs(ctx context.Context, form url.Values) error {
	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	changed := make(map[string]bool)
	for _, l := range s.chain.Levels() {
		if _, ok := form[l.Key]; !ok {
			continue
		}
		if l.Parent != "" && changed[l.Parent] {
			changed[l.Key] = true
			continue
		}
		before := s.chain.Selection(l.Key)
		next := selector.Parse(form.Get(l.Key))
		if err := s.chain.Select(ctx, l.Key, next); err != nil {
			keep(err)
			continue
		}
		// первый выбор родителя не делает значение потомка устаревшим
		changed[l.Key] = before.Kind != selector.Unselected && before != next
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.def.DateRange {
		start, end := s.start, s.end
		if _, ok := form["start"]; ok {
			t, err := ParseLocal(form.Get("start"), s.loc, false)
			keep(err)
			if err == nil {
				start = t
			}
		}
		if _, ok := form["end"]; ok {
			t, err := ParseLocal(form.Get("end"), s.loc, true)
			keep(err)
			if err == nil {
				end = t
			}
		}
		if !start.IsZero() && !end.IsZero() && end.Before(start) {
			keep(ErrInvalidRange)
		} else {
			s.start, s.end = start, end
		}
	}
	if s.def.UserSort {
		if raw, ok := form["sort"]; ok && len(raw) > 0 {
			s.sort = pagination.ParseSortOrder(raw[0], s.sort)
		}
	}
	return firstErr
}

var (
	ErrInvalidDate  = errors.New("screens: invalid date")
	ErrInvalidRange = errors.New("screens: end before start")
	ErrBlocked      = errors.New("screens: selection incomplete")
)

// ParseLocal разбирает значение datetime-local в зоне отображения.
// Пустая строка снимает границу. Для конца периода дата без времени - конец
// дня, время без секунд - конец выбранной минуты.
func ParseLocal(raw string, loc *time.Location, endOfDay bool) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	for _, layout := range dateLayouts {
		t, err := time.ParseInLocation(layout, raw, loc)
		if err != nil {
			continue
		}
		if endOfDay {
			switch layout {
			case "2006-01-02":
				t = t.AddDate(0, 0, 1).Add(-time.Second)
			case "2006-01-02T15:04":
				t = t.Add(59 * time.Second)
			}
		}
		return t, nil
	}
	return time.Time{}, ErrInvalidDate
}

// LoadMore - действие "Carregar mais"
func (s *State) LoadMore(ctx context.Context) error {
	err := s.cache.LoadMore(ctx)
	if errors.Is(err, pagination.ErrNotLoaded) {
		return err
	}
	metrics.IncScreenLoad(s.def.Name, "more", gateway.Outcome(err))
	return err
}

// Refresh - повторная загрузка первой страницы по кнопке
func (s *State) Refresh(ctx context.Context) error {
	if !s.Ready() {
		return ErrBlocked
	}
	err := s.cache.Refresh(ctx)
	metrics.IncScreenLoad(s.def.Name, "refresh", gateway.Outcome(err))
	return err
}

// Snapshot возвращает накопленный список
func (s *State) Snapshot() pagination.Snapshot[normalize.Row] {
	return s.cache.Snapshot()
}

func (s *State) Columns() []normalize.Column {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.columns) == 0 {
		return s.schemaColumns()
	}
	return append([]normalize.Column(nil), s.columns...)
}

func (s *State) schemaColumns() []normalize.Column {
	table, _ := s.norm.Normalize(nil, s.def.Schema)
	return table.Columns
}

// Chain возвращает цепочку выбора экрана
func (s *State) Chain() *selector.Chain {
	return s.chain
}

// Create создает запись и перезагружает список
func (s *State) Create(ctx context.Context, form url.Values) (json.RawMessage, error) {
	if !s.def.Editable() {
		return nil, ErrReadOnly
	}
	collection, selections, err := s.mutationTarget()
	if err != nil {
		return nil, err
	}
	body, err := BuildBody(s.def.Fields, form, selections, true)
	if err != nil {
		return nil, err
	}
	created, err := s.api.Create(ctx, collection, s.token, body)
	if err != nil {
		return nil, err
	}
	s.refreshAfterMutation(ctx)
	return created, nil
}

// Update изменяет запись и перезагружает список
func (s *State) Update(ctx context.Context, id string, form url.Values) error {
	if !s.def.Editable() {
		return ErrReadOnly
	}
	collection, selections, err := s.mutationTarget()
	if err != nil {
		return err
	}
	body, err := BuildBody(s.def.Fields, form, selections, false)
	if err != nil {
		return err
	}
	if _, err := s.api.Update(ctx, collection, id, s.token, body); err != nil {
		return err
	}
	s.refreshAfterMutation(ctx)
	return nil
}

// Delete удаляет запись и перезагружает список
func (s *State) Delete(ctx context.Context, id string) error {
	if !s.def.Editable() {
		return ErrReadOnly
	}
	collection, _, err := s.mutationTarget()
	if err != nil {
		return err
	}
	if err := s.api.Delete(ctx, collection, id, s.token); err != nil {
		return err
	}
	s.refreshAfterMutation(ctx)
	return nil
}

// mutationTarget возвращает коллекцию записей для текущего выбора. Без
// полного выбора родителя записи менять нельзя.
func (s *State) mutationTarget() (string, map[string]string, error) {
	selections, ready := s.chain.Resolved()
	if !ready {
		return "", nil, ErrBlocked
	}
	collection, _ := s.def.Collection(selections)
	return collection, selections, nil
}

// ошибка перезагрузки остается в снимке и показывается вместе со списком
func (s *State) refreshAfterMutation(ctx context.Context) {
	if !s.Ready() {
		return
	}
	if err := s.Refresh(ctx); err != nil {
		logrus.Warnf("refresh of %s after mutation failed: %v", s.def.Name, err)
	}
}

// Range возвращает текущий период и порядок
func (s *State) Range() (start, end time.Time, sort pagination.SortOrder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.start, s.end, s.sort
}

// Location - зона отображения экрана
func (s *State) Location() *time.Location {
	return s.loc
}
