package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"
)

// Ключи маршрутизации событий рецептов.
const (
	RoutingRecipePublished = "recipe.published"
	RoutingRecipeUpdated   = "recipe.updated"
	RoutingRecipeDeleted   = "recipe.deleted"
)

// RecipeEvent — событие об изменении рецепта.
type RecipeEvent struct {
	EventID    string    `json:"event_id"`
	Type       string    `json:"type"`
	RecipeID   int64     `json:"recipe_id"`
	AuthorID   int64     `json:"author_id"`
	Name       string    `json:"name,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewRecipeEvent создаёт событие с новым идентификатором.
func NewRecipeEvent(eventType string, recipeID, authorID int64, name string) RecipeEvent {
	return RecipeEvent{
		EventID:    uuid.NewString(),
		Type:       eventType,
		RecipeID:   recipeID,
		AuthorID:   authorID,
		Name:       name,
		OccurredAt: time.Now().UTC(),
	}
}

// PublishMessage публикует сообщение в RabbitMQ в виде JSON.
func PublishMessage(ch *amqp.Channel, exchange string, routingkey string, message any) error {
	const op = "rabbitmq.PublishMessage"
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = ch.Publish(
		exchange,
		routingkey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Publisher публикует события рецептов в обменник. Безопасен для конкурентного использования.
type Publisher struct {
	mu       sync.Mutex
	ch       *amqp.Channel
	exchange string
}

// NewPublisher создаёт издателя поверх настроенного канала.
func NewPublisher(ch *amqp.Channel, exchange string) *Publisher {
	return &Publisher{ch: ch, exchange: exchange}
}

// PublishRecipeEvent публикует событие с ключом маршрутизации, равным его типу.
func (p *Publisher) PublishRecipeEvent(ctx context.Context, event RecipeEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return PublishMessage(p.ch, p.exchange, event.Type, event)
}

// Close закрывает канал.
func (p *Publisher) Close() error {
	return p.ch.Close()
}

// NoopPublisher отбрасывает события. Используется, когда брокер не настроен.
type NoopPublisher struct{}

// PublishRecipeEvent ничего не делает.
func (NoopPublisher) PublishRecipeEvent(context.Context, RecipeEvent) error { return nil }
