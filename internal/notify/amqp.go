package notify

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// AMQPGateway 基于 RabbitMQ topic exchange 的通知网关
// routing key: notify.user.<id>，消费端按用户绑定队列
type AMQPGateway struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

// NewAMQPGateway 建立连接、声明 exchange
func NewAMQPGateway(url, exchange string) (*AMQPGateway, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("连接 RabbitMQ 失败: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("打开 channel 失败: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("声明 exchange 失败: %w", err)
	}
	return &AMQPGateway{conn: conn, ch: ch, exchange: exchange}, nil
}

// Notify 将事件以 JSON 发布到 topic exchange
func (g *AMQPGateway) Notify(ctx context.Context, requesterID string, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("序列化通知事件失败: %w", err)
	}
	key := "notify.user." + requesterID
	return g.ch.PublishWithContext(ctx, g.exchange, key, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        payload,
	})
}

// Close 关闭连接
func (g *AMQPGateway) Close() error {
	if g.ch != nil {
		_ = g.ch.Close()
	}
	if g.conn != nil {
		return g.conn.Close()
	}
	return nil
}
