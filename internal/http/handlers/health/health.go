// Package health реализует проверку готовности сервиса.
package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/foodgram/internal/lib/sl"
)

// Pinger — зависимость, доступность которой проверяется.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Response struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components"`
}

// Handler опрашивает зависимости с общим таймаутом.
type Handler struct {
	log        *slog.Logger
	components map[string]Pinger
	timeout    time.Duration
}

// New создает Handler для именованных зависимостей.
func New(log *slog.Logger, timeout time.Duration, components map[string]Pinger) *Handler {
	return &Handler{
		log:        log,
		components: components,
		timeout:    timeout,
	}
}

// ServeHTTP godoc
// @Summary Проверка готовности
// @Tags Health
// @Produce  json
// @Success 200 {object} Response
// @Failure 503 {object} Response
// @Router /health [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.health"

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	res := Response{Status: "ok", Components: make(map[string]string, len(h.components))}
	for name, p := range h.components {
		if err := p.Ping(ctx); err != nil {
			h.log.Warn("dependency is unavailable", slog.String("op", op), slog.String("component", name), sl.Err(err))
			res.Components[name] = "unavailable"
			res.Status = "degraded"
			continue
		}
		res.Components[name] = "ok"
	}

	if res.Status != "ok" {
		render.Status(r, http.StatusServiceUnavailable)
	}
	render.JSON(w, r, res)
}
