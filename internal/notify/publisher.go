package notify

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Имя очереди, в которую уходят все события бронирования.
const eventsQueue = "booking.events"

// Notifier публикует доменное событие внешнему потребителю.
type Notifier interface {
	Publish(ctx context.Context, event BookingEvent) error
}

// AMQPNotifier публикует события в RabbitMQ. Соединение открывается на
// публикацию: событий немного, а held-соединение пережило бы рестарты
// брокера хуже, чем редкий dial.
type AMQPNotifier struct {
	url string
}

func NewAMQPNotifier(url string) *AMQPNotifier {
	return &AMQPNotifier{url: url}
}

// Publish отправляет событие в очередь booking.events. Любая ошибка
// логируется и возвращается; вызывающий волен её игнорировать.
func (n *AMQPNotifier) Publish(ctx context.Context, event BookingEvent) error {
	conn, err := amqp.Dial(n.url)
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Идемпотентное объявление очереди. Durable — события переживают
	// рестарт брокера.
	if _, err := ch.QueueDeclare(eventsQueue, true, false, false, false, nil); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx, "", eventsQueue, false, false, pub); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}

	return nil
}

// NopNotifier глотает события. Используется в тестах и когда AMQP_URL
// не задан (события остаются только в outbox).
type NopNotifier struct{}

func (NopNotifier) Publish(context.Context, BookingEvent) error { return nil }
