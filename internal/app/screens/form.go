package screens

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// FieldType - тип поля формы записи
type FieldType int

const (
	FieldText FieldType = iota
	FieldInt
	FieldNumber
	FieldBool
	FieldTime
	FieldPassword
	FieldEmail
)

func (t FieldType) String() string {
	switch t {
	case FieldInt, FieldNumber:
		return "number"
	case FieldBool:
		return "checkbox"
	case FieldTime:
		return "time"
	case FieldPassword:
		return "password"
	case FieldEmail:
		return "email"
	default:
		return "text"
	}
}

// Field - поле формы создания и изменения
type Field struct {
	Key      string
	Label    string
	Type     FieldType
	Required bool
	// FromSelector берет значение из выбранного уровня цепочки, а не из формы
	FromSelector string
	// CreateOnly - поле отправляется только при создании (пароль пользователя)
	CreateOnly bool
}

// FieldError - ошибка заполнения поля, показывается пользователю как есть
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var ErrSelectionRequired = errors.New("screens: record needs a selected parent")

// BuildBody собирает JSON тело записи из формы. selections - выбранные
// значения цепочки; create=false пропускает поля только для создания.
func BuildBody(fields []Field, form url.Values, selections map[string]string, create bool) (map[string]any, error) {
	body := make(map[string]any, len(fields))
	for _, f := range fields {
		if f.CreateOnly && !create {
			continue
		}

		raw := strings.TrimSpace(form.Get(f.Key))
		if f.FromSelector != "" {
			raw = selections[f.FromSelector]
			if raw == "" {
				return nil, ErrSelectionRequired
			}
		}

		if f.Type == FieldBool {
			body[f.Key] = raw == "on" || raw == "true" || raw == "1"
			continue
		}
		if raw == "" {
			if f.Required {
				return nil, &FieldError{Field: f.Label, Message: "campo obrigatório"}
			}
			continue
		}

		value, err := convert(f, raw)
		if err != nil {
			return nil, err
		}
		body[f.Key] = value
	}
	return body, nil
}

func convert(f Field, raw string) (any, error) {
	switch f.Type {
	case FieldInt:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, &FieldError{Field: f.Label, Message: "número inteiro inválido"}
		}
		return n, nil
	case FieldNumber:
		n, err := strconv.ParseFloat(strings.Replace(raw, ",", ".", 1), 64)
		if err != nil {
			return nil, &FieldError{Field: f.Label, Message: "número inválido"}
		}
		return n, nil
	case FieldTime:
		if _, err := time.Parse("15:04", raw); err != nil {
			return nil, &FieldError{Field: f.Label, Message: "horário inválido, use HH:MM"}
		}
		return raw, nil
	case FieldEmail:
		if err := validate.Var(raw, "email"); err != nil {
			return nil, &FieldError{Field: f.Label, Message: "e-mail inválido"}
		}
		return raw, nil
	default:
		return raw, nil
	}
}
