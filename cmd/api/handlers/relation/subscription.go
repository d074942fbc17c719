package handlers

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"xTube.com/cmd/api/handlers/pack"
	"xTube.com/cmd/relation/service"
)

func ToggleSubscription(ctx context.Context, c *app.RequestContext) {
	userID, err := pack.UserID(c)
	if err != nil {
		pack.SendError(c, err)
		return
	}
	channelID, err := pack.PathID(c, "channelId", "channelId")
	if err != nil {
		pack.SendError(c, err)
		return
	}
	active, err := service.NewSubscriptionService(ctx, pack.Deps().Producer).Toggle(userID, channelID)
	if err != nil {
		pack.SendError(c, err)
		return
	}
	message := "Subscribed successfully"
	if !active {
		message = "Unsubscribed successfully"
	}
	pack.SendResponse(c, consts.StatusOK, map[string]bool{"isSubscribed": active}, message)
}

// Subscribers 订阅了当前用户的人
func Subscribers(ctx context.Context, c *app.RequestContext) {
	userID, err := pack.UserID(c)
	if err != nil {
		pack.SendError(c, err)
		return
	}
	page, err := service.NewSubscriptionService(ctx, pack.Deps().Producer).Subscribers(userID, userID, pack.Page(c))
	if err != nil {
		pack.SendError(c, err)
		return
	}
	pack.SendResponse(c, consts.StatusOK, page, "Subscribers fetched successfully")
}

// SubscribedChannels 当前用户订阅的频道
func SubscribedChannels(ctx context.Context, c *app.RequestContext) {
	userID, err := pack.UserID(c)
	if err != nil {
		pack.SendError(c, err)
		return
	}
	page, err := service.NewSubscriptionService(ctx, pack.Deps().Producer).SubscribedChannels(userID, userID, pack.Page(c))
	if err != nil {
		pack.SendError(c, err)
		return
	}
	pack.SendResponse(c, consts.StatusOK, page, "Subscribed channels fetched successfully")
}
