package screens

import (
	"context"
	"errors"
	"time"

	"irrigation-dashboard/internal/app/ds"
	"irrigation-dashboard/internal/app/gateway"
	"irrigation-dashboard/internal/app/normalize"
	"irrigation-dashboard/internal/app/selector"
)

const inputLayout = "2006-01-02T15:04"

// ViewOptions - параметры отображения, не влияющие на выборку
type ViewOptions struct {
	OrderBy string
	Desc    bool
}

// View строит модель экрана для шаблона и JSON. Возвращенная ошибка - первый
// отказ при загрузке вариантов выбора; модель заполняется и в этом случае.
func (s *State) View(ctx context.Context, opts ViewOptions) (ds.ScreenResponse, error) {
	snap := s.Snapshot()
	columns := s.Columns()

	rows := snap.Items
	if opts.OrderBy != "" && hasColumn(columns, opts.OrderBy) {
		normalize.SortRows(rows, opts.OrderBy, opts.Desc)
	} else {
		opts = ViewOptions{}
	}

	resp := ds.ScreenResponse{
		Screen:  s.def.Name,
		Title:   s.def.Title,
		State:   snap.State.String(),
		Columns: make([]ds.ColumnInfo, 0, len(columns)),
		Rows:    make([]map[string]string, 0, len(rows)),
		Pagination: ds.PaginationInfo{
			Page:     snap.Cursor,
			PageSize: snap.PageSize,
			Loaded:   len(rows),
			HasMore:  snap.HasMore,
		},
		Blocked:   !s.Ready(),
		Photo:     s.def.Photo,
		OrderBy:   opts.OrderBy,
		OrderDesc: opts.Desc,
	}
	if snap.Err != nil {
		resp.Error = Message(snap.Err)
	}

	for _, c := range columns {
		resp.Columns = append(resp.Columns, ds.ColumnInfo{Key: c.Key, Label: c.Label, Type: c.Type.String()})
	}
	for _, r := range rows {
		row := make(map[string]string, len(columns)+1)
		for _, c := range columns {
			row[c.Key] = r.Get(c.Key).Display
		}
		row["id"] = r.ID
		resp.Rows = append(resp.Rows, row)
	}

	start, end, sort := s.Range()
	resp.Filters = &ds.ScreenFiltersInfo{
		Selections: concrete(snap.Filters.Selections),
		Sort:       string(sort),
		UserSort:   s.def.UserSort,
		DateRange:  s.def.DateRange,
	}
	if s.def.DateRange {
		resp.Filters.Start, resp.Filters.StartInput = formatBound(start, s.loc)
		resp.Filters.End, resp.Filters.EndInput = formatBound(end, s.loc)
	}

	if s.def.Editable() {
		for _, f := range s.def.Fields {
			if f.FromSelector != "" {
				continue
			}
			resp.Fields = append(resp.Fields, ds.FieldInfo{
				Key:        f.Key,
				Label:      f.Label,
				Type:       f.Type.String(),
				Required:   f.Required,
				CreateOnly: f.CreateOnly,
			})
		}
	}

	var firstErr error
	for _, l := range s.chain.Levels() {
		sel := s.chain.Selection(l.Key)
		info := ds.SelectorInfo{
			Key:      l.Key,
			Label:    l.Label,
			Selected: sel.FormValue(),
			AllowAll: l.AllowAll,
			Blocked:  sel.Kind == selector.Unselected,
			Options:  []ds.OptionInfo{},
		}
		options, err := s.chain.Options(ctx, l.Key)
		switch {
		case err == nil:
			for _, o := range options {
				info.Options = append(info.Options, ds.OptionInfo{ID: o.ID, Label: o.Label})
			}
		case errors.Is(err, selector.ErrParentUnselected):
			// родитель еще не выбран: список пуст
		default:
			info.Error = Message(err)
			if firstErr == nil || gateway.IsUnauthenticated(err) {
				firstErr = err
			}
		}
		resp.Selectors = append(resp.Selectors, info)
	}
	if resp.Blocked && resp.Error == "" {
		resp.Notice = Message(ErrBlocked)
	}

	return resp, firstErr
}

func hasColumn(columns []normalize.Column, key string) bool {
	for _, c := range columns {
		if c.Key == key {
			return true
		}
	}
	return false
}

func formatBound(t time.Time, loc *time.Location) (wire, input string) {
	if t.IsZero() {
		return "", ""
	}
	return t.UTC().Format(time.RFC3339), t.In(loc).Format(inputLayout)
}
