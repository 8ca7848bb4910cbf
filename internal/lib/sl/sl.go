// Package sl содержит помощники для логгера slog: атрибут ошибки
// и выбор обработчика по окружению.
package sl

import (
	"io"
	"log/slog"
)

// Окружения из конфига.
const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

// Err возвращает атрибут "error" с текстом ошибки. Для nil возвращается пустая строка.
//
//	log.Error("failed to save recipe", sl.Err(err))
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.String("error", err.Error())
}

// New создаёт логгер для окружения env: текстовый с уровнем debug для local и dev,
// JSON с уровнем info для prod и неизвестных окружений.
func New(env string, w io.Writer) *slog.Logger {
	switch env {
	case EnvLocal, EnvDev:
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	default:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
}
