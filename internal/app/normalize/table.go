package normalize

import (
	"sort"
	"strings"
	"time"
)

type ColumnType int

const (
	Text ColumnType = iota
	Number
	Timestamp
	Bool
)

func (t ColumnType) String() string {
	switch t {
	case Number:
		return "number"
	case Timestamp:
		return "timestamp"
	case Bool:
		return "bool"
	default:
		return "text"
	}
}

// ColumnSpec описывает известную колонку ресурса
type ColumnSpec struct {
	Key   string
	Label string
	Type  ColumnType
}

// Schema - ожидаемые колонки и переименования для отображения.
// Колонки, которых нет в схеме, проходят без изменений в порядке сервера.
type Schema struct {
	Columns []ColumnSpec
	Rename  map[string]string
	Hidden  []string
}

func (s Schema) spec(key string) (ColumnSpec, bool) {
	for _, c := range s.Columns {
		if c.Key == key {
			return c, true
		}
	}
	return ColumnSpec{}, false
}

func (s Schema) hidden(key string) bool {
	for _, h := range s.Hidden {
		if h == key {
			return true
		}
	}
	return false
}

// Label возвращает отображаемое имя колонки
func (s Schema) Label(key string) string {
	if label, ok := s.Rename[key]; ok {
		return label
	}
	if spec, ok := s.spec(key); ok && spec.Label != "" {
		return spec.Label
	}
	return key
}

type Column struct {
	Key   string
	Label string
	Type  ColumnType
}

// Cell хранит типизированное значение для сортировки и строку для показа
type Cell struct {
	Value   any
	Display string
}

type Row struct {
	ID    string
	Cells map[string]Cell
}

// Get возвращает ячейку или пустую, если колонки в записи нет
func (r Row) Get(key string) Cell {
	return r.Cells[key]
}

type Table struct {
	Columns []Column
	Rows    []Row
}

// MergeColumns добавляет колонки, которых еще нет, сохраняя порядок
func MergeColumns(existing, incoming []Column) []Column {
	seen := make(map[string]struct{}, len(existing))
	for _, c := range existing {
		seen[c.Key] = struct{}{}
	}
	out := existing
	for _, c := range incoming {
		if _, ok := seen[c.Key]; ok {
			continue
		}
		seen[c.Key] = struct{}{}
		out = append(out, c)
	}
	return out
}

// SortRows сортирует строки по базовому значению колонки, а не по строке показа
func SortRows(rows []Row, key string, desc bool) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].Get(key).Value, rows[j].Get(key).Value
		if desc {
			return less(b, a)
		}
		return less(a, b)
	})
}

func less(a, b any) bool {
	switch av := a.(type) {
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Before(bv)
		}
	case float64:
		if bv, ok := b.(float64); ok {
			return av < bv
		}
	case bool:
		if bv, ok := b.(bool); ok {
			return !av && bv
		}
	case string:
		if bv, ok := b.(string); ok {
			return strings.Compare(av, bv) < 0
		}
	case nil:
		return b != nil
	}
	return false
}
