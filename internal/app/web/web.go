// Package web содержит шаблоны страниц дашборда.
package web

import (
	"embed"
	"html/template"
	"net/url"
)

//go:embed templates/*.html
var files embed.FS

// Templates разбирает встроенные шаблоны. Ошибка разбора - ошибка сборки, поэтому паника.
func Templates() *template.Template {
	return template.Must(template.New("").Funcs(Funcs()).ParseFS(files, "templates/*.html"))
}

func Funcs() template.FuncMap {
	return template.FuncMap{
		// orderLink строит ссылку сортировки колонки: повторный клик меняет направление
		"orderLink": func(screen, current string, desc bool, key string) string {
			dir := "asc"
			if current == key && !desc {
				dir = "desc"
			}
			q := url.Values{}
			q.Set("orderBy", key)
			q.Set("dir", dir)
			return "/screens/" + url.PathEscape(screen) + "?" + q.Encode()
		},
		"checked": func(display string) bool {
			return display == "Sim"
		},
	}
}
