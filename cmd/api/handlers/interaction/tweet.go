package handlers

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"xTube.com/cmd/api/handlers/pack"
	"xTube.com/cmd/interaction/service"
	"xTube.com/pkg/jwt"
)

func CreateTweet(ctx context.Context, c *app.RequestContext) {
	userID, err := pack.UserID(c)
	if err != nil {
		pack.SendError(c, err)
		return
	}
	var req ContentParam
	if err = pack.Bind(c, &req); err != nil {
		pack.SendError(c, err)
		return
	}
	tweet, err := service.NewTweetService(ctx).Create(userID, req.Content)
	if err != nil {
		pack.SendError(c, err)
		return
	}
	pack.SendResponse(c, consts.StatusCreated, tweet, "Tweet created successfully")
}

func UserTweets(ctx context.Context, c *app.RequestContext) {
	ownerID, err := pack.PathID(c, "userId", "userId")
	if err != nil {
		pack.SendError(c, err)
		return
	}
	page, err := service.NewTweetService(ctx).ListByUser(ownerID, jwt.ViewerID(c), pack.Page(c))
	if err != nil {
		pack.SendError(c, err)
		return
	}
	pack.SendResponse(c, consts.StatusOK, page, "Tweets fetched successfully")
}

func UpdateTweet(ctx context.Context, c *app.RequestContext) {
	userID, err := pack.UserID(c)
	if err != nil {
		pack.SendError(c, err)
		return
	}
	tweetID, err := pack.PathID(c, "tweetId", "tweetId")
	if err != nil {
		pack.SendError(c, err)
		return
	}
	var req ContentParam
	if err = pack.Bind(c, &req); err != nil {
		pack.SendError(c, err)
		return
	}
	tweet, err := service.NewTweetService(ctx).Update(tweetID, userID, req.Content)
	if err != nil {
		pack.SendError(c, err)
		return
	}
	pack.SendResponse(c, consts.StatusOK, tweet, "Tweet updated successfully")
}

func DeleteTweet(ctx context.Context, c *app.RequestContext) {
	userID, err := pack.UserID(c)
	if err != nil {
		pack.SendError(c, err)
		return
	}
	tweetID, err := pack.PathID(c, "tweetId", "tweetId")
	if err != nil {
		pack.SendError(c, err)
		return
	}
	tweet, err := service.NewTweetService(ctx).Delete(tweetID, userID)
	if err != nil {
		pack.SendError(c, err)
		return
	}
	pack.SendResponse(c, consts.StatusOK, tweet, "Tweet deleted successfully")
}
