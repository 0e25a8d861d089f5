package notify

import (
	"context"
	"fmt"
)

// Publisher публикация в брокер сообщений (pkg/mq)
type Publisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// BrokerChannel публикует события в topic exchange с ключом notify.<audience>.<kind>
// Email и push рассылают подписчики брокера
type BrokerChannel struct {
	pub Publisher
}

// NewBrokerChannel создает канал поверх издателя
func NewBrokerChannel(pub Publisher) *BrokerChannel {
	return &BrokerChannel{pub: pub}
}

func (c *BrokerChannel) Name() string { return "amqp" }

func (c *BrokerChannel) Accepts(Event) bool { return true }

func (c *BrokerChannel) Deliver(ctx context.Context, e Event) error {
	return c.pub.PublishJSON(ctx, RoutingKey(e), e)
}

// RoutingKey ключ маршрутизации события
func RoutingKey(e Event) string {
	return fmt.Sprintf("notify.%s.%s", e.Audience, e.Kind)
}

// LogChannel пишет события в лог
type LogChannel struct {
	log Logger
}

// NewLogChannel создает канал логирования
func NewLogChannel(log Logger) *LogChannel {
	return &LogChannel{log: log}
}

func (c *LogChannel) Name() string { return "log" }

func (c *LogChannel) Accepts(Event) bool { return true }

func (c *LogChannel) Deliver(_ context.Context, e Event) error {
	c.log.Info("Notify: %s to %s=%s: %s", e.Kind, e.Audience, e.Recipient, e.Payload.Title)
	return nil
}
