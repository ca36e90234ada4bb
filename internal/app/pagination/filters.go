package pagination

import (
	"net/url"
	"sort"
	"strings"
	"time"
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSortOrder принимает asc/desc, иначе возвращает fallback
func ParseSortOrder(s string, fallback SortOrder) SortOrder {
	switch SortOrder(strings.ToLower(strings.TrimSpace(s))) {
	case SortAsc:
		return SortAsc
	case SortDesc:
		return SortDesc
	default:
		return fallback
	}
}

// Filters - все входы, определяющие запрос экрана
type Filters struct {
	Scope      string
	Selections map[string]string
	Start      time.Time
	End        time.Time
	Sort       SortOrder
}

// Fingerprint - непрозрачный сравнимый ключ запроса
type Fingerprint string

// Fingerprint кодирует фильтры канонически: равны все поля - равны ключи, и наоборот.
// url.Values.Encode сортирует ключи и экранирует значения, поэтому кодировка однозначна.
func (f Filters) Fingerprint() Fingerprint {
	v := url.Values{}
	v.Set("scope", f.Scope)
	v.Set("sort", string(f.Sort))
	v.Set("start", encodeTime(f.Start))
	v.Set("end", encodeTime(f.End))

	keys := make([]string, 0, len(f.Selections))
	for k := range f.Selections {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	sel := url.Values{}
	for _, k := range keys {
		sel.Set(k, f.Selections[k])
	}
	v.Set("sel", sel.Encode())

	return Fingerprint(v.Encode())
}

// Query возвращает параметры фильтра для API. Время - ISO-8601 в UTC с суффиксом Z.
func (f Filters) Query() url.Values {
	v := url.Values{}
	for k, val := range f.Selections {
		v.Set(k, val)
	}
	if !f.Start.IsZero() {
		v.Set("start", f.Start.UTC().Format(time.RFC3339))
	}
	if !f.End.IsZero() {
		v.Set("end", f.End.UTC().Format(time.RFC3339))
	}
	return v
}

// Equal сравнивает фильтры по отпечатку
func (f Filters) Equal(other Filters) bool {
	return f.Fingerprint() == other.Fingerprint()
}

func encodeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}
