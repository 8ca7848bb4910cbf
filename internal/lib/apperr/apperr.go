// Package apperr описывает доменные ошибки сервиса. Обработчики HTTP
// сопоставляют Kind со статусом ответа, а сообщения отдают клиенту как есть.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind — категория доменной ошибки.
type Kind uint8

const (
	// KindValidation — некорректные входные данные, запись не выполнялась.
	KindValidation Kind = iota + 1
	// KindDuplicate — связь уже существует.
	KindDuplicate
	// KindMissing — удаляемой связи не существует.
	KindMissing
	// KindSelfSubscription — попытка подписаться на самого себя.
	KindSelfSubscription
	// KindNotFound — рецепт или пользователь не найден.
	KindNotFound
	// KindPermissionDenied — действие доступно только владельцу.
	KindPermissionDenied
	// KindUnauthenticated — действие требует аутентификации.
	KindUnauthenticated
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindDuplicate:
		return "duplicate"
	case KindMissing:
		return "missing"
	case KindSelfSubscription:
		return "self_subscription"
	case KindNotFound:
		return "not_found"
	case KindPermissionDenied:
		return "permission_denied"
	case KindUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Status возвращает HTTP-статус для категории ошибки.
func (k Kind) Status() int {
	switch k {
	case KindValidation, KindDuplicate, KindMissing, KindSelfSubscription:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindPermissionDenied:
		return http.StatusForbidden
	case KindUnauthenticated:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Error — доменная ошибка с сообщениями для клиента.
type Error struct {
	Kind     Kind
	Field    string   // Поле запроса, к которому относится ошибка (может быть пустым)
	Messages []string // Человекочитаемые сообщения
}

func (e *Error) Error() string {
	msg := strings.Join(e.Messages, "; ")
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Field, msg)
	}
	return fmt.Sprintf("%s: %s", e.Kind, msg)
}

// Is позволяет сравнивать ошибки по категории: errors.Is(err, apperr.ErrNotFound).
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind && t.Field == "" && len(t.Messages) == 0
}

// Сторожевые значения для errors.Is.
var (
	ErrValidation       = &Error{Kind: KindValidation}
	ErrDuplicate        = &Error{Kind: KindDuplicate}
	ErrMissing          = &Error{Kind: KindMissing}
	ErrSelfSubscription = &Error{Kind: KindSelfSubscription}
	ErrNotFound         = &Error{Kind: KindNotFound}
	ErrPermissionDenied = &Error{Kind: KindPermissionDenied}
	ErrUnauthenticated  = &Error{Kind: KindUnauthenticated}
)

// Validation создаёт ошибку валидации для поля.
func Validation(field string, messages ...string) *Error {
	return &Error{Kind: KindValidation, Field: field, Messages: messages}
}

// Duplicate создаёт ошибку повторного добавления связи.
func Duplicate(msg string) *Error {
	return &Error{Kind: KindDuplicate, Messages: []string{msg}}
}

// Missing создаёт ошибку удаления несуществующей связи.
func Missing(msg string) *Error {
	return &Error{Kind: KindMissing, Messages: []string{msg}}
}

// SelfSubscription создаёт ошибку подписки на себя.
func SelfSubscription(msg string) *Error {
	return &Error{Kind: KindSelfSubscription, Messages: []string{msg}}
}

// NotFound создаёт ошибку отсутствующего ресурса.
func NotFound(resource string, id int64) *Error {
	return &Error{Kind: KindNotFound, Messages: []string{fmt.Sprintf("%s with id %d not found", resource, id)}}
}

// PermissionDenied создаёт ошибку недостатка прав.
func PermissionDenied(msg string) *Error {
	return &Error{Kind: KindPermissionDenied, Messages: []string{msg}}
}

// Unauthenticated создаёт ошибку отсутствия аутентификации.
func Unauthenticated(msg string) *Error {
	return &Error{Kind: KindUnauthenticated, Messages: []string{msg}}
}

// As извлекает *Error из цепочки ошибок.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
