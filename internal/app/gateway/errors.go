package gateway

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind классифицирует отказ обращения к API
type Kind int

const (
	KindUnauthenticated Kind = iota + 1
	KindHTTP
	KindTransport
	KindParse
)

func (k Kind) String() string {
	switch k {
	case KindUnauthenticated:
		return "unauthenticated"
	case KindHTTP:
		return "http_error"
	case KindTransport:
		return "transport_error"
	case KindParse:
		return "parse_failure"
	default:
		return "unknown"
	}
}

var (
	ErrNoToken          = errors.New("gateway: missing bearer token")
	ErrResponseTooLarge = errors.New("gateway: response too large")
)

// Failure - единый тип ошибки клиента API
type Failure struct {
	Kind   Kind
	Method string
	Path   string
	Status int
	Body   string
	Err    error
}

func (f *Failure) Error() string {
	switch f.Kind {
	case KindHTTP:
		return fmt.Sprintf("gateway: %s %s: http %d", f.Method, f.Path, f.Status)
	case KindUnauthenticated:
		return fmt.Sprintf("gateway: %s %s: not authenticated", f.Method, f.Path)
	default:
		if f.Err != nil {
			return fmt.Sprintf("gateway: %s %s: %s: %v", f.Method, f.Path, f.Kind, f.Err)
		}
		return fmt.Sprintf("gateway: %s %s: %s", f.Method, f.Path, f.Kind)
	}
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// AsFailure извлекает Failure из цепочки ошибок
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

// IsKind проверяет вид отказа
func IsKind(err error, kind Kind) bool {
	f, ok := AsFailure(err)
	return ok && f.Kind == kind
}

// IsUnauthenticated истинно для отсутствующего токена и для ответа 401
func IsUnauthenticated(err error) bool {
	f, ok := AsFailure(err)
	if !ok {
		return false
	}
	return f.Kind == KindUnauthenticated || (f.Kind == KindHTTP && f.Status == http.StatusUnauthorized)
}

// StatusOf возвращает HTTP статус отказа или 0
func StatusOf(err error) int {
	if f, ok := AsFailure(err); ok && f.Kind == KindHTTP {
		return f.Status
	}
	return 0
}

// Outcome - короткая метка результата для метрик и журнала
func Outcome(err error) string {
	if err == nil {
		return "ok"
	}
	f, ok := AsFailure(err)
	if !ok {
		return "error"
	}
	if f.Kind == KindHTTP {
		return fmt.Sprintf("http_%d", f.Status)
	}
	return f.Kind.String()
}

// UserMessage переводит отказ в сообщение для оператора
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	f, ok := AsFailure(err)
	if !ok {
		return "Erro inesperado. Tente novamente."
	}

	switch f.Kind {
	case KindUnauthenticated:
		return "Sessão expirada. Faça login novamente."
	case KindTransport:
		return "Falha de conexão com o servidor. Verifique sua conexão e tente novamente."
	case KindParse:
		if errors.Is(f.Err, ErrResponseTooLarge) {
			return "Resposta do servidor grande demais. Reduza o período ou os filtros."
		}
		return "Resposta inválida do servidor."
	}

	switch {
	case f.Status == http.StatusUnauthorized:
		return "Sessão expirada. Faça login novamente."
	case f.Status == http.StatusForbidden:
		return "Acesso negado."
	case f.Status == http.StatusBadRequest || f.Status == http.StatusUnprocessableEntity:
		return "Dados inválidos. Verifique os campos e tente novamente."
	case f.Status == http.StatusNotFound:
		return "Registro não encontrado. Ele pode ter sido removido."
	case f.Status == http.StatusConflict:
		return "Conflito: o registro já existe ou foi alterado por outro usuário."
	case f.Status >= http.StatusInternalServerError:
		return "Erro no servidor. Tente novamente mais tarde."
	default:
		return fmt.Sprintf("Erro na requisição (HTTP %d).", f.Status)
	}
}
