package mq

import (
	"context"
	"sync"
)

// Recorder 把事件留在内存里，供测试断言
type Recorder struct {
	mu            sync.Mutex
	Reactions     []ReactionEvent
	Subscriptions []SubscriptionEvent
	Comments      []CommentEvent
}

var _ MessageProducer = (*Recorder)(nil)

func (r *Recorder) PublishReactionEvent(_ context.Context, e *ReactionEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Reactions = append(r.Reactions, *e)
	return nil
}

func (r *Recorder) PublishSubscriptionEvent(_ context.Context, e *SubscriptionEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Subscriptions = append(r.Subscriptions, *e)
	return nil
}

func (r *Recorder) PublishCommentEvent(_ context.Context, e *CommentEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Comments = append(r.Comments, *e)
	return nil
}
