package ds

// PaginationInfo представляет метаданные накопленного списка экрана
type PaginationInfo struct {
	Page     int  `json:"page"`
	PageSize int  `json:"page_size"`
	Loaded   int  `json:"loaded"`
	HasMore  bool `json:"has_more"`
}

// ScreenFiltersInfo представляет примененные фильтры
type ScreenFiltersInfo struct {
	Selections map[string]string `json:"selections,omitempty"`
	Start      string            `json:"start,omitempty"`
	End        string            `json:"end,omitempty"`
	StartInput string            `json:"-"`
	EndInput   string            `json:"-"`
	Sort       string            `json:"sort"`
	UserSort   bool              `json:"user_sort"`
	DateRange  bool              `json:"date_range"`
}

// ColumnInfo описывает колонку таблицы
type ColumnInfo struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Type  string `json:"type"`
}

// SelectorInfo описывает выпадающий список цепочки
type SelectorInfo struct {
	Key      string       `json:"key"`
	Label    string       `json:"label"`
	Selected string       `json:"selected"`
	AllowAll bool         `json:"allow_all"`
	Blocked  bool         `json:"blocked"`
	Options  []OptionInfo `json:"options"`
	Error    string       `json:"error,omitempty"`
}

type OptionInfo struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// FieldInfo описывает поле формы записи
type FieldInfo struct {
	Key        string `json:"key"`
	Label      string `json:"label"`
	Type       string `json:"type"`
	Required   bool   `json:"required"`
	CreateOnly bool   `json:"create_only"`
}

// ScreenResponse представляет состояние экрана для JSON клиентов
type ScreenResponse struct {
	Screen     string              `json:"screen"`
	Title      string              `json:"title"`
	State      string              `json:"state"`
	Columns    []ColumnInfo        `json:"columns"`
	Rows       []map[string]string `json:"rows"`
	Pagination PaginationInfo      `json:"pagination"`
	Filters    *ScreenFiltersInfo  `json:"filters,omitempty"`
	Selectors  []SelectorInfo      `json:"selectors,omitempty"`
	Blocked    bool                `json:"blocked"`
	Fields     []FieldInfo         `json:"fields,omitempty"`
	Photo      bool                `json:"photo"`
	OrderBy    string              `json:"order_by,omitempty"`
	OrderDesc  bool                `json:"order_desc,omitempty"`
	Error      string              `json:"error,omitempty"`
	Notice     string              `json:"notice,omitempty"`
}

// ScreenLink - пункт бокового меню
type ScreenLink struct {
	Name   string `json:"name"`
	Title  string `json:"title"`
	Active bool   `json:"active"`
}
