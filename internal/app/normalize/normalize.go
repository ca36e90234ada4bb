// Package normalize преобразует JSON ответы API в таблицы для экранов.
package normalize

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"irrigation-dashboard/internal/app/gateway"
)

// DisplayLayout - DD/MM/YYYY HH:MM:SS
const DisplayLayout = "02/01/2006 15:04:05"

// SaoPaulo - фиксированная зона UTC-3 без летнего времени
var SaoPaulo = time.FixedZone("America/Sao_Paulo", -3*3600)

var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

type Normalizer struct {
	loc *time.Location
}

func New(loc *time.Location) *Normalizer {
	if loc == nil {
		loc = SaoPaulo
	}
	return &Normalizer{loc: loc}
}

// Normalize с зоной отображения по умолчанию
func Normalize(raw []byte, schema Schema) (Table, error) {
	return New(SaoPaulo).Normalize(raw, schema)
}

// Location возвращает зону отображения
func (n *Normalizer) Location() *time.Location {
	return n.loc
}

// Normalize превращает массив объектов в таблицу. Пустой массив или null -
// пустая таблица; все остальное, кроме массива объектов, - ParseFailure.
func (n *Normalizer) Normalize(raw []byte, schema Schema) (Table, error) {
	objects, err := decodeObjects(raw)
	if err != nil {
		return Table{}, &gateway.Failure{Kind: gateway.KindParse, Body: string(raw), Err: err}
	}

	table := Table{Columns: n.columns(objects, schema), Rows: make([]Row, 0, len(objects))}
	types := make(map[string]ColumnType, len(table.Columns))
	for _, c := range table.Columns {
		types[c.Key] = c.Type
	}

	for _, obj := range objects {
		row := Row{Cells: make(map[string]Cell, len(obj))}
		for _, field := range obj {
			if schema.hidden(field.key) {
				continue
			}
			row.Cells[field.key] = n.cell(field.value, types[field.key])
		}
		if id, ok := row.Cells["id"]; ok {
			row.ID = id.Display
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

// columns: сначала колонки схемы, затем неизвестные в порядке первого появления
func (n *Normalizer) columns(objects []object, schema Schema) []Column {
	cols := make([]Column, 0, len(schema.Columns))
	for _, spec := range schema.Columns {
		if schema.hidden(spec.Key) {
			continue
		}
		cols = append(cols, Column{Key: spec.Key, Label: schema.Label(spec.Key), Type: spec.Type})
	}

	var extra []Column
	for _, obj := range objects {
		for _, field := range obj {
			if _, known := schema.spec(field.key); known || schema.hidden(field.key) {
				continue
			}
			extra = MergeColumns(extra, []Column{{Key: field.key, Label: schema.Label(field.key), Type: inferType(field.value)}})
		}
	}
	return MergeColumns(cols, extra)
}

func (n *Normalizer) cell(value any, typ ColumnType) Cell {
	if value == nil {
		return Cell{}
	}

	switch typ {
	case Timestamp:
		if s, ok := value.(string); ok {
			if t, err := ParseUTC(s); err == nil {
				return Cell{Value: t, Display: t.In(n.loc).Format(DisplayLayout)}
			}
			return Cell{Value: s, Display: s}
		}
	case Number:
		if num, ok := value.(json.Number); ok {
			f, err := num.Float64()
			if err == nil {
				return Cell{Value: f, Display: num.String()}
			}
		}
		if s, ok := value.(string); ok {
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return Cell{Value: f, Display: s}
			}
		}
	case Bool:
		if b, ok := value.(bool); ok {
			return Cell{Value: b, Display: BoolLabel(b)}
		}
	}

	switch v := value.(type) {
	case string:
		return Cell{Value: v, Display: v}
	case json.Number:
		f, _ := v.Float64()
		return Cell{Value: f, Display: v.String()}
	case bool:
		return Cell{Value: v, Display: BoolLabel(v)}
	default:
		encoded, _ := json.Marshal(v)
		return Cell{Value: string(encoded), Display: string(encoded)}
	}
}

// ParseUTC разбирает метку времени API. Значение без зоны считается UTC.
func ParseUTC(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("normalize: unsupported timestamp %q", s)
}

// FormatDisplay форматирует момент времени в зоне отображения
func (n *Normalizer) FormatDisplay(t time.Time) string {
	return t.In(n.loc).Format(DisplayLayout)
}

func BoolLabel(b bool) string {
	if b {
		return "Sim"
	}
	return "Não"
}

func inferType(value any) ColumnType {
	switch value.(type) {
	case json.Number:
		return Number
	case bool:
		return Bool
	default:
		return Text
	}
}

type field struct {
	key   string
	value any
}

// object сохраняет порядок ключей, как его отдал сервер
type object []field

func decodeObjects(raw []byte) ([]object, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if tok == nil {
		return nil, nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return nil, errors.New("expected JSON array")
	}

	var objects []object
	for dec.More() {
		obj, err := decodeObject(dec)
		if err != nil {
			return nil, err
		}
		objects = append(objects, obj)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("trailing data after JSON array")
	}
	return objects, nil
}

func decodeObject(dec *json.Decoder) (object, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.New("expected JSON object in array")
	}

	var obj object
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, errors.New("expected object key")
		}
		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		obj = append(obj, field{key: key, value: value})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return obj, nil
}
