package queue

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// StartOrderStatusConsumer connects to RabbitMQ, declares the durable
// order.status-changed queue and consumes it, appending each event to
// logs/orders.log in a single-line format. It runs a reconnect loop
// with capped backoff and never returns under normal operation;
// processing errors are logged and the offending message rejected so
// the server keeps running.
func StartOrderStatusConsumer(url string, log *zap.Logger) {
	if url == "" {
		log.Info("order-status consumer disabled: no AMQP_URL configured")
		return
	}
	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			log.Warn("order-status consumer: dial failed", zap.Error(err), zap.Duration("retry_in", backoff))
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		if err := consumeLoop(conn, log); err != nil {
			log.Warn("order-status consumer: consume loop ended", zap.Error(err))
			time.Sleep(2 * time.Second)
		}
	}
}

func consumeLoop(conn *amqp.Connection, log *zap.Logger) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Warn("order-status consumer: set QoS failed", zap.Error(err))
	}
	if _, err := ch.QueueDeclare(orderStatusQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(orderStatusQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := appendOrderLog(d.Body); err != nil {
			log.Warn("order-status consumer: handle message failed", zap.Error(err))
			_ = d.Nack(false, false)
			continue
		}
		_ = d.Ack(false)
	}
	return fmt.Errorf("delivery channel closed")
}

// appendOrderLog writes one event as a single line to logs/orders.log.
func appendOrderLog(body []byte) error {
	var ev OrderStatusChangedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal event: %w", err)
	}
	if err := os.MkdirAll("logs", 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(filepath.Join("logs", "orders.log"),
		os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	line := fmt.Sprintf("%s order=%d buyer=%d(%s) status=%q\n",
		ev.ChangedAt, ev.OrderID, ev.BuyerID, ev.BuyerName, ev.Status)
	_, err = f.WriteString(line)
	return err
}
