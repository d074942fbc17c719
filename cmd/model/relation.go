package model

import "xTube.com/pkg/constants"

// Subscription 订阅关系，(channel, subscriber) 唯一
type Subscription struct {
	Base
	ChannelID    int64 `gorm:"uniqueIndex:idx_subscription_pair,priority:1" json:"channel,string"`
	SubscriberID int64 `gorm:"uniqueIndex:idx_subscription_pair,priority:2;index" json:"subscriber,string"`
}

func (Subscription) TableName() string {
	return constants.SubscriptionTableName
}
