package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"campus-hall/pkg/redis"
)

const userChannelPrefix = "notify:user:"

// RedisGateway 基于 Redis Pub/Sub 的通知网关
// 每个用户一个私有频道 notify:user:<id>，前端网关订阅后转发给对应连接
type RedisGateway struct {
	client *redis.Client
}

// NewRedisGateway 创建 RedisGateway
func NewRedisGateway(client *redis.Client) *RedisGateway {
	return &RedisGateway{client: client}
}

// Notify 将事件序列化后发布到申请人的私有频道
func (g *RedisGateway) Notify(ctx context.Context, requesterID string, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("序列化通知事件失败: %w", err)
	}
	return g.client.Publish(ctx, userChannelPrefix+requesterID, payload)
}
