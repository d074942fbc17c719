package handlers

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"xTube.com/cmd/api/handlers/pack"
	"xTube.com/cmd/interaction/service"
	"xTube.com/pkg/jwt"
)

type ContentParam struct {
	Content string `json:"content" form:"content"`
}

func ListComments(ctx context.Context, c *app.RequestContext) {
	videoID, err := pack.PathID(c, "videoId", "videoId")
	if err != nil {
		pack.SendError(c, err)
		return
	}
	page, err := service.NewCommentService(ctx, pack.Deps().Producer).List(videoID, jwt.ViewerID(c), pack.Page(c))
	if err != nil {
		pack.SendError(c, err)
		return
	}
	pack.SendResponse(c, consts.StatusOK, page, "Comments fetched successfully")
}

func CreateComment(ctx context.Context, c *app.RequestContext) {
	userID, err := pack.UserID(c)
	if err != nil {
		pack.SendError(c, err)
		return
	}
	videoID, err := pack.PathID(c, "videoId", "videoId")
	if err != nil {
		pack.SendError(c, err)
		return
	}
	var req ContentParam
	if err = pack.Bind(c, &req); err != nil {
		pack.SendError(c, err)
		return
	}
	comment, err := service.NewCommentService(ctx, pack.Deps().Producer).Create(videoID, userID, req.Content)
	if err != nil {
		pack.SendError(c, err)
		return
	}
	pack.SendResponse(c, consts.StatusCreated, comment, "Comment added successfully")
}

func UpdateComment(ctx context.Context, c *app.RequestContext) {
	userID, err := pack.UserID(c)
	if err != nil {
		pack.SendError(c, err)
		return
	}
	commentID, err := pack.PathID(c, "commentId", "commentId")
	if err != nil {
		pack.SendError(c, err)
		return
	}
	var req ContentParam
	if err = pack.Bind(c, &req); err != nil {
		pack.SendError(c, err)
		return
	}
	comment, err := service.NewCommentService(ctx, pack.Deps().Producer).Update(commentID, userID, req.Content)
	if err != nil {
		pack.SendError(c, err)
		return
	}
	pack.SendResponse(c, consts.StatusOK, comment, "Comment updated successfully")
}

func DeleteComment(ctx context.Context, c *app.RequestContext) {
	userID, err := pack.UserID(c)
	if err != nil {
		pack.SendError(c, err)
		return
	}
	commentID, err := pack.PathID(c, "commentId", "commentId")
	if err != nil {
		pack.SendError(c, err)
		return
	}
	comment, err := service.NewCommentService(ctx, pack.Deps().Producer).Delete(commentID, userID)
	if err != nil {
		pack.SendError(c, err)
		return
	}
	pack.SendResponse(c, consts.StatusOK, comment, "Comment deleted successfully")
}
