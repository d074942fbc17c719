package mq

import (
	"time"

	"github.com/google/uuid"
)

// ReactionEvent 点赞/点踩状态变化
type ReactionEvent struct {
	EventID    string `json:"event_id"`
	ActorID    int64  `json:"actor_id,string"`
	TargetKind string `json:"target_kind"` // Video / Comment / Tweet
	TargetID   int64  `json:"target_id,string"`
	Action     string `json:"action"` // LIKED / DISLIKED
	Active     bool   `json:"active"`
	Timestamp  int64  `json:"timestamp"`
}

// SubscriptionEvent 订阅状态变化
type SubscriptionEvent struct {
	EventID      string `json:"event_id"`
	ChannelID    int64  `json:"channel_id,string"`
	SubscriberID int64  `json:"subscriber_id,string"`
	Active       bool   `json:"active"`
	Timestamp    int64  `json:"timestamp"`
}

// CommentEvent 评论的创建、修改、删除
type CommentEvent struct {
	EventID   string `json:"event_id"`
	Type      string `json:"type"` // create, update, delete
	CommentID int64  `json:"comment_id,string"`
	VideoID   int64  `json:"video_id,string"`
	UserID    int64  `json:"user_id,string"`
	Timestamp int64  `json:"timestamp"`
}

const (
	ReactionEventExchange     = "reaction_events"
	SubscriptionEventExchange = "subscription_events"
	CommentEventExchange      = "comment_events"

	ReactionEventQueue     = "reaction_event_queue"
	SubscriptionEventQueue = "subscription_event_queue"
	CommentEventQueue      = "comment_event_queue"
)

var topology = []struct {
	exchange string
	queue    string
}{
	{ReactionEventExchange, ReactionEventQueue},
	{SubscriptionEventExchange, SubscriptionEventQueue},
	{CommentEventExchange, CommentEventQueue},
}

func NewReactionEvent(actorID int64, kind string, targetID int64, action string, active bool) *ReactionEvent {
	return &ReactionEvent{
		EventID:    uuid.NewString(),
		ActorID:    actorID,
		TargetKind: kind,
		TargetID:   targetID,
		Action:     action,
		Active:     active,
		Timestamp:  time.Now().UnixMilli(),
	}
}

func NewSubscriptionEvent(channelID, subscriberID int64, active bool) *SubscriptionEvent {
	return &SubscriptionEvent{
		EventID:      uuid.NewString(),
		ChannelID:    channelID,
		SubscriberID: subscriberID,
		Active:       active,
		Timestamp:    time.Now().UnixMilli(),
	}
}

func NewCommentEvent(typ string, commentID, videoID, userID int64) *CommentEvent {
	return &CommentEvent{
		EventID:   uuid.NewString(),
		Type:      typ,
		CommentID: commentID,
		VideoID:   videoID,
		UserID:    userID,
		Timestamp: time.Now().UnixMilli(),
	}
}
