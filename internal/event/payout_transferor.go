package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// AMQPFundTransferor hands payout instructions to the external
// disbursement service over a durable queue. A publish failure is a
// transfer failure: the engine rolls the payout back and the claim
// stays retryable.
type AMQPFundTransferor struct {
	conn    *RabbitMQConnection
	timeout time.Duration
}

func NewAMQPFundTransferor(conn *RabbitMQConnection) *AMQPFundTransferor {
	return &AMQPFundTransferor{conn: conn, timeout: 10 * time.Second}
}

// Transfer publishes one disbursement instruction.
func (t *AMQPFundTransferor) Transfer(recipient string, amount uint64) error {
	ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
	defer cancel()

	_, err := t.conn.Channel.QueueDeclare(
		DisbursementQueue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	body, err := json.Marshal(DisbursementModel{Recipient: recipient, Amount: amount})
	if err != nil {
		return fmt.Errorf("failed to marshal disbursement: %w", err)
	}

	err = t.conn.Channel.PublishWithContext(
		ctx,
		"",
		DisbursementQueue,
		false,
		false,
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish disbursement: %w", err)
	}
	return nil
}
