package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/streadway/amqp"
)

// ErrDrop сигнализирует о неисправимом сообщении: оно подтверждается
// и выбрасывается, а не возвращается в очередь на повторную доставку.
var ErrDrop = errors.New("drop message")

// ConsumerMessage создает потребителя сообщений из очереди RabbitMQ.
// Обработчик получает контекст консьюмера: остановка сервиса отменяет
// и обработку уже взятых сообщений. Ошибка обработчика возвращает
// сообщение в очередь, кроме обёрнутых в ErrDrop — такие сообщения
// подтверждаются и отбрасываются.
func ConsumerMessage(ctx context.Context, ch *amqp.Channel, queueName string, handler func(context.Context, []byte) error) error {
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

	sem := make(chan struct{}, 10)
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
					if err := handler(ctx, delivery.Body); err != nil && !errors.Is(err, ErrDrop) {
						if nackErr := delivery.Nack(false, true); nackErr != nil {
							log.Printf("failed to nack message: %v", nackErr)
						}
						return
					}
					if ackErr := delivery.Ack(false); ackErr != nil {
						log.Printf("failed to ack message: %v", ackErr)
					}
				}(d)
			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}
