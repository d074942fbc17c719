package db

import (
	"context"
	"time"

	"xTube.com/cmd/model"
	"xTube.com/pkg/constants"
	"xTube.com/pkg/pagination"
	"xTube.com/pkg/pipeline"
	"xTube.com/pkg/toggle"
)

const subscriptions = constants.SubscriptionTableName

// ToggleSubscription 翻转 subscriber 对 channel 的订阅
func ToggleSubscription(ctx context.Context, channelID, subscriberID int64) (bool, error) {
	return toggle.Flip(ctx, DB, toggle.Relation{
		Kind:   "subscription",
		Model:  &model.Subscription{},
		Key:    map[string]interface{}{"channel_id": channelID, "subscriber_id": subscriberID},
		Record: &model.Subscription{ChannelID: channelID, SubscriberID: subscriberID},
	})
}

// ChannelView 订阅关系另一端的用户
type ChannelView struct {
	User             model.UserCard `gorm:"embedded;embeddedPrefix:u_" json:"user"`
	SubscribedAt     time.Time      `gorm:"column:created_at" json:"subscribedAt"`
	SubscribersCount int64          `json:"subscribersCount"`
	// viewer 是否订阅了这个用户
	IsSubscribed bool `json:"isSubscribed"`
}

// ListSubscribers 订阅了 channel 的用户，isSubscribed 相对 viewer 计算
func ListSubscribers(ctx context.Context, channelID, viewerID int64, params pagination.Params) (*pipeline.Page[ChannelView], error) {
	return listEnd(ctx, "subscriber_id", "channel_id", channelID, viewerID, params)
}

// ListSubscribedChannels subscriber 订阅的频道，isSubscribed 相对 viewer 计算
func ListSubscribedChannels(ctx context.Context, subscriberID, viewerID int64, params pagination.Params) (*pipeline.Page[ChannelView], error) {
	return listEnd(ctx, "channel_id", "subscriber_id", subscriberID, viewerID, params)
}

// listEnd 以 fixed 列过滤，连接 other 列指向的用户
func listEnd(ctx context.Context, other, fixed string, id, viewerID int64, params pagination.Params) (*pipeline.Page[ChannelView], error) {
	userID := "u.id"
	p := pipeline.New(subscriptions, "created_at").
		Join(pipeline.Join{
			Table:  constants.UserTableName,
			As:     "u",
			On:     "u.id = " + subscriptions + "." + other,
			Inner:  true,
			Fields: pipeline.UserCardFields,
		}).
		Where(subscriptions+"."+fixed+" = ?", id).
		Derive(
			pipeline.CountWhere(subscriptions, "channel_id", userID, "subscribers_count"),
			pipeline.SubscribedBy(userID, viewerID, "is_subscribed"),
		).
		OrderBy(pipeline.Newest(subscriptions)...)
	return pipeline.Paginate[ChannelView](ctx, DB, p, params)
}
