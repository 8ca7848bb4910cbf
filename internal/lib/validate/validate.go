// Package validate настраивает go-playground/validator под модели сервиса:
// имена полей берутся из json-тегов, добавлены правила username и slug.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/foodgram/internal/lib/apperr"
)

var (
	usernameRe = regexp.MustCompile(`^[\w.@+-]+$`)
	slugRe     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
)

// New возвращает валидатор с зарегистрированными правилами username и slug.
func New() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernameRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugRe.MatchString(fl.Field().String())
	})
	return v
}

// Struct проверяет s и переводит нарушения в ошибку валидации apperr.
// Поле ошибки берётся из первого нарушения, сообщения перечисляют все нарушения.
func Struct(v *validator.Validate, s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	return FromValidator(verrs)
}

// FromValidator переводит ошибки validator в *apperr.Error.
func FromValidator(errs validator.ValidationErrors) *apperr.Error {
	if len(errs) == 0 {
		return apperr.Validation("", "invalid request")
	}
	msgs := make([]string, 0, len(errs))
	for _, fe := range errs {
		msgs = append(msgs, message(fe))
	}
	return apperr.Validation(topField(errs[0]), msgs...)
}

// path возвращает путь к полю без имени корневой структуры: ingredients[0].amount.
func path(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func topField(fe validator.FieldError) string {
	p := path(fe)
	if i := strings.IndexAny(p, ".["); i >= 0 {
		return p[:i]
	}
	return p
}

func message(fe validator.FieldError) string {
	field := path(fe)
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s: this field is required", field)
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s: at least %s item(s) required", field, fe.Param())
		}
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s: must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s: must be greater than or equal to %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s: must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s: must be less than or equal to %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s: must be greater than %s", field, fe.Param())
	case "email":
		return fmt.Sprintf("%s: enter a valid email address", field)
	case "hexcolor", "len":
		return fmt.Sprintf("%s: must be a HEX color like #49b64e", field)
	case "username":
		return fmt.Sprintf("%s: may contain only letters, digits and @/./+/-/_", field)
	case "slug":
		return fmt.Sprintf("%s: may contain only letters, digits, hyphens and underscores", field)
	default:
		return fmt.Sprintf("%s: is not valid", field)
	}
}
