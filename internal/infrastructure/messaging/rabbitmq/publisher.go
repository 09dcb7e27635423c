package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/jobhive/auth-service/internal/application/identity"
)

const routingKeyRegistered = "account.registered"

// Publisher emits auth events on a topic exchange. The mailer service
// binds a queue to account.registered and sends the verification email.
type Publisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

func NewPublisher(url, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	if err := ch.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	return &Publisher{conn: conn, ch: ch, exchange: exchange}, nil
}

type registeredMessage struct {
	AccountID string    `json:"account_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	VerifyURL string    `json:"verify_url"`
	At        time.Time `json:"at"`
}

func (p *Publisher) PublishRegistered(ctx context.Context, evt identity.RegisteredEvent) error {
	body, err := json.Marshal(registeredMessage{
		AccountID: evt.AccountID,
		Name:      evt.Name,
		Email:     evt.Email,
		Role:      evt.Role,
		VerifyURL: evt.VerifyURL,
		At:        time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal registered event: %w", err)
	}

	return p.ch.PublishWithContext(ctx,
		p.exchange,
		routingKeyRegistered,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
}

func (p *Publisher) Close() error {
	if p.ch != nil {
		p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
