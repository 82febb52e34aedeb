package event

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"

	"marketplace/pkg/domain/service"
)

const (
	exchangeName   = "marketplace.events"
	publishTimeout = 5 * time.Second
)

var _ service.EventDispatcher = &AMQPDispatcher{}

// AMQPDispatcher publishes domain events to a RabbitMQ topic exchange,
// routed by event type.
type AMQPDispatcher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

func NewAMQPDispatcher(url string) (*AMQPDispatcher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, errors.Wrap(err, "connect to amqp broker")
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, errors.Wrap(err, "open amqp channel")
	}

	err = channel.ExchangeDeclare(exchangeName, "topic", true, false, false, false, nil)
	if err != nil {
		_ = channel.Close()
		_ = conn.Close()
		return nil, errors.Wrap(err, "declare events exchange")
	}

	return &AMQPDispatcher{conn: conn, channel: channel}, nil
}

func (d *AMQPDispatcher) Dispatch(event service.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return errors.Wrapf(err, "marshal %s event", event.Type())
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	err = d.channel.PublishWithContext(ctx, exchangeName, event.Type(), false, false, amqp.Publishing{
		ContentType: "application/json",
		Timestamp:   time.Now().UTC(),
		Type:        event.Type(),
		Body:        body,
	})
	return errors.Wrapf(err, "publish %s event", event.Type())
}

func (d *AMQPDispatcher) Close() error {
	if err := d.channel.Close(); err != nil {
		_ = d.conn.Close()
		return errors.Wrap(err, "close amqp channel")
	}
	return errors.Wrap(d.conn.Close(), "close amqp connection")
}
