package service

import (
	"context"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"

	"xTube.com/cmd/relation/dal/db"
	userdb "xTube.com/cmd/user/dal/db"
	"xTube.com/pkg/errno"
	"xTube.com/pkg/mq"
	"xTube.com/pkg/pagination"
	"xTube.com/pkg/pipeline"
)

type SubscriptionService struct {
	ctx      context.Context
	producer mq.MessageProducer
}

func NewSubscriptionService(ctx context.Context, producer mq.MessageProducer) *SubscriptionService {
	if producer == nil {
		producer = mq.NopProducer{}
	}
	return &SubscriptionService{ctx: ctx, producer: producer}
}

// Toggle 翻转 subscriber 对 channel 的订阅，不允许订阅自己
func (s *SubscriptionService) Toggle(subscriberID, channelID int64) (bool, error) {
	if subscriberID == channelID {
		return false, errno.ValidationErr.WithMessage("You cannot subscribe to your own channel")
	}
	if _, err := userdb.GetUserByID(s.ctx, channelID); err != nil {
		if errors.Is(err, errno.NotFoundErr) {
			return false, errno.NotFoundErr.WithMessage("Channel not found")
		}
		return false, err
	}
	active, err := db.ToggleSubscription(s.ctx, channelID, subscriberID)
	if err != nil {
		return false, err
	}
	if err := s.producer.PublishSubscriptionEvent(s.ctx, mq.NewSubscriptionEvent(channelID, subscriberID, active)); err != nil {
		hlog.CtxErrorf(s.ctx, "publish subscription event %d->%d failed: %v", subscriberID, channelID, err)
	}
	return active, nil
}

// Subscribers 订阅了 channel 的用户
func (s *SubscriptionService) Subscribers(channelID, viewerID int64, params pagination.Params) (*pipeline.Page[db.ChannelView], error) {
	return db.ListSubscribers(s.ctx, channelID, viewerID, params)
}

// SubscribedChannels subscriber 订阅的频道
func (s *SubscriptionService) SubscribedChannels(subscriberID, viewerID int64, params pagination.Params) (*pipeline.Page[db.ChannelView], error) {
	return db.ListSubscribedChannels(s.ctx, subscriberID, viewerID, params)
}
