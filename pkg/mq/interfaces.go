package mq

import "context"

// MessageProducer 消息生产者接口
type MessageProducer interface {
	PublishReactionEvent(ctx context.Context, event *ReactionEvent) error
	PublishSubscriptionEvent(ctx context.Context, event *SubscriptionEvent) error
	PublishCommentEvent(ctx context.Context, event *CommentEvent) error
}

// 确保Producer实现MessageProducer接口
var _ MessageProducer = (*Producer)(nil)

var _ MessageProducer = NopProducer{}

// NopProducer 未启用 RabbitMQ 时使用
type NopProducer struct{}

func (NopProducer) PublishReactionEvent(context.Context, *ReactionEvent) error         { return nil }
func (NopProducer) PublishSubscriptionEvent(context.Context, *SubscriptionEvent) error { return nil }
func (NopProducer) PublishCommentEvent(context.Context, *CommentEvent) error           { return nil }
