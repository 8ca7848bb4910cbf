// Package relation реализует добавление и удаление связей пользователя:
// избранное, корзину покупок и подписки на авторов.
package relation

import (
	"context"

	"github.com/magabrotheeeer/foodgram/internal/lib/apperr"
	"github.com/magabrotheeeer/foodgram/internal/models"
)

// Store описывает таблицу-связь с уникальной парой (Subject, Target).
type Store[S, T ~int64] interface {
	TargetExists(ctx context.Context, target T) error
	Exists(ctx context.Context, pair models.Pair[S, T]) (bool, error)
	Add(ctx context.Context, pair models.Pair[S, T]) (bool, error)
	Remove(ctx context.Context, pair models.Pair[S, T]) (bool, error)
}

// Guard проверяет пару перед добавлением. Ненулевая ошибка прерывает операцию.
type Guard[S, T ~int64] func(pair models.Pair[S, T]) error

// Messages — тексты ошибок для клиента.
type Messages struct {
	Duplicate string
	Missing   string
}

// Toggle добавляет и удаляет пары в одной таблице-связи.
type Toggle[S, T ~int64] struct {
	store  Store[S, T]
	msgs   Messages
	guards []Guard[S, T]
}

// NewToggle создаёт Toggle. Проверки guards выполняются по порядку до проверки на дубликат.
func NewToggle[S, T ~int64](store Store[S, T], msgs Messages, guards ...Guard[S, T]) *Toggle[S, T] {
	return &Toggle[S, T]{store: store, msgs: msgs, guards: guards}
}

// Add создаёт связь. Повторное добавление возвращает ошибку KindDuplicate,
// в том числе если параллельный запрос успел вставить ту же пару.
func (t *Toggle[S, T]) Add(ctx context.Context, pair models.Pair[S, T]) error {
	if err := t.store.TargetExists(ctx, pair.Target); err != nil {
		return err
	}
	for _, guard := range t.guards {
		if err := guard(pair); err != nil {
			return err
		}
	}

	exists, err := t.store.Exists(ctx, pair)
	if err != nil {
		return err
	}
	if exists {
		return apperr.Duplicate(t.msgs.Duplicate)
	}

	added, err := t.store.Add(ctx, pair)
	if err != nil {
		return err
	}
	if !added {
		return apperr.Duplicate(t.msgs.Duplicate)
	}
	return nil
}

// Remove удаляет связь. Отсутствующая связь возвращает ошибку KindMissing.
func (t *Toggle[S, T]) Remove(ctx context.Context, pair models.Pair[S, T]) error {
	if err := t.store.TargetExists(ctx, pair.Target); err != nil {
		return err
	}

	exists, err := t.store.Exists(ctx, pair)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.Missing(t.msgs.Missing)
	}

	removed, err := t.store.Remove(ctx, pair)
	if err != nil {
		return err
	}
	if !removed {
		return apperr.Missing(t.msgs.Missing)
	}
	return nil
}

// NotSelf запрещает пары, в которых субъект совпадает с целью.
func NotSelf(msg string) Guard[models.UserID, models.UserID] {
	return func(pair models.Subscription) error {
		if pair.Subject == pair.Target {
			return apperr.SelfSubscription(msg)
		}
		return nil
	}
}
