package handlers

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"xTube.com/cmd/api/handlers/pack"
	"xTube.com/cmd/interaction/service"
	"xTube.com/cmd/model"
)

type toggleRoute struct {
	kind  model.ReactionKind
	param string
}

var (
	videoTarget   = toggleRoute{kind: model.KindVideo, param: "videoId"}
	commentTarget = toggleRoute{kind: model.KindComment, param: "commentId"}
	tweetTarget   = toggleRoute{kind: model.KindTweet, param: "tweetId"}
)

func ToggleVideoLike(ctx context.Context, c *app.RequestContext) {
	toggle(ctx, c, videoTarget, model.ActionLiked)
}

func ToggleCommentLike(ctx context.Context, c *app.RequestContext) {
	toggle(ctx, c, commentTarget, model.ActionLiked)
}

func ToggleTweetLike(ctx context.Context, c *app.RequestContext) {
	toggle(ctx, c, tweetTarget, model.ActionLiked)
}

func ToggleVideoDislike(ctx context.Context, c *app.RequestContext) {
	toggle(ctx, c, videoTarget, model.ActionDisliked)
}

func ToggleCommentDislike(ctx context.Context, c *app.RequestContext) {
	toggle(ctx, c, commentTarget, model.ActionDisliked)
}

func ToggleTweetDislike(ctx context.Context, c *app.RequestContext) {
	toggle(ctx, c, tweetTarget, model.ActionDisliked)
}

func toggle(ctx context.Context, c *app.RequestContext, route toggleRoute, action model.ReactionAction) {
	userID, err := pack.UserID(c)
	if err != nil {
		pack.SendError(c, err)
		return
	}
	targetID, err := pack.PathID(c, route.param, route.param)
	if err != nil {
		pack.SendError(c, err)
		return
	}
	active, err := service.NewLikeService(ctx, pack.Deps().Producer).
		Toggle(userID, model.ReactionTarget{Kind: route.kind, ID: targetID}, action)
	if err != nil {
		pack.SendError(c, err)
		return
	}

	key, verb := "isLiked", "liked"
	if action == model.ActionDisliked {
		key, verb = "isDisliked", "disliked"
	}
	message := string(route.kind) + " " + verb
	if !active {
		message = string(route.kind) + " un" + verb
	}
	pack.SendResponse(c, consts.StatusOK, map[string]bool{key: active}, message)
}

func LikedVideos(ctx context.Context, c *app.RequestContext) {
	userID, err := pack.UserID(c)
	if err != nil {
		pack.SendError(c, err)
		return
	}
	page, err := service.NewLikeService(ctx, pack.Deps().Producer).LikedVideos(userID, pack.Page(c))
	if err != nil {
		pack.SendError(c, err)
		return
	}
	pack.SendResponse(c, consts.StatusOK, page, "Liked videos fetched successfully")
}
