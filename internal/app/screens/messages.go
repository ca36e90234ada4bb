package screens

import (
	"errors"

	"irrigation-dashboard/internal/app/gateway"
	"irrigation-dashboard/internal/app/selector"
)

// Message переводит ошибку экрана в сообщение для оператора
func Message(err error) string {
	if err == nil {
		return ""
	}

	var fieldErr *FieldError
	switch {
	case errors.As(err, &fieldErr):
		return "Campo " + fieldErr.Field + ": " + fieldErr.Message + "."
	case errors.Is(err, ErrInvalidDate):
		return "Data inválida."
	case errors.Is(err, ErrInvalidRange):
		return "Período inválido: a data final é anterior à inicial."
	case errors.Is(err, ErrBlocked), errors.Is(err, selector.ErrParentUnselected), errors.Is(err, ErrSelectionRequired):
		return "Selecione os filtros para carregar os dados."
	case errors.Is(err, selector.ErrOptionUnavailable), errors.Is(err, selector.ErrAllNotAllowed), errors.Is(err, selector.ErrUnknownLevel):
		return "Seleção inválida."
	case errors.Is(err, ErrReadOnly):
		return "Esta tela não permite alterações."
	}
	return gateway.UserMessage(err)
}
