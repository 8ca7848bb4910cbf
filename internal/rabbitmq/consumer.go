package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/foodgram/internal/lib/sl"
)

// ConsumerMessage запускает чтение очереди queueName. Сообщения обрабатываются
// параллельно, не более workers одновременно. Ошибка handler возвращает сообщение в очередь.
func ConsumerMessage(ctx context.Context, log *slog.Logger, ch *amqp.Channel, queueName string,
	workers int, handler func([]byte) error) error {
	const op = "rabbitmq.ConsumerMessage"
	delivery, err := ch.Consume(
		queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if workers < 1 {
		workers = 1
	}

	log = log.With(slog.String("op", op), slog.String("queue", queueName))
	sem := make(chan struct{}, workers)
	go func() {
		for {
			select {
			case d, ok := <-delivery:
				if !ok {
					return
				}
				sem <- struct{}{}
				go func(delivery amqp.Delivery) {
					defer func() { <-sem }()
					if err := handler(delivery.Body); err != nil {
						log.Warn("handler failed, requeue", sl.Err(err))
						if nackErr := delivery.Nack(false, true); nackErr != nil {
							log.Error("failed to nack message", sl.Err(nackErr))
						}
						return
					}
					if ackErr := delivery.Ack(false); ackErr != nil {
						log.Error("failed to ack message", sl.Err(ackErr))
					}
				}(d)
			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}

// ConsumeRecipeEvents читает события рецептов из очереди. Сообщения, которые не
// удалось разобрать, подтверждаются и пропускаются.
func ConsumeRecipeEvents(ctx context.Context, log *slog.Logger, ch *amqp.Channel, queueName string,
	handler func(RecipeEvent) error) error {
	return ConsumerMessage(ctx, log, ch, queueName, 1, func(body []byte) error {
		var event RecipeEvent
		if err := json.Unmarshal(body, &event); err != nil {
			log.Warn("skip malformed recipe event", sl.Err(err))
			return nil
		}
		return handler(event)
	})
}
