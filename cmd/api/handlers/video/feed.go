package handlers

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"xTube.com/cmd/api/handlers/pack"
	"xTube.com/cmd/video/dal/db"
	"xTube.com/pkg/jwt"
	"xTube.com/pkg/utils"
)

func Feed(ctx context.Context, c *app.RequestContext) {
	var req FeedParam
	if err := pack.Bind(c, &req); err != nil {
		pack.SendError(c, err)
		return
	}
	q := db.FeedQuery{Query: req.Query, SortBy: req.SortBy, SortType: req.SortType}
	if req.UserID != "" {
		ownerID, err := utils.ParseID(req.UserID, "userId")
		if err != nil {
			pack.SendError(c, err)
			return
		}
		q.OwnerID = ownerID
	}
	page, err := videoService(ctx).Feed(q, pack.Page(c))
	if err != nil {
		pack.SendError(c, err)
		return
	}
	pack.SendResponse(c, consts.StatusOK, page, "Videos fetched successfully")
}

// GetVideo 已登录用户访问时同时记入观看历史
func GetVideo(ctx context.Context, c *app.RequestContext) {
	videoID, err := pack.PathID(c, "videoId", "videoId")
	if err != nil {
		pack.SendError(c, err)
		return
	}
	video, err := videoService(ctx).GetVideo(videoID, jwt.ViewerID(c))
	if err != nil {
		pack.SendError(c, err)
		return
	}
	pack.SendResponse(c, consts.StatusOK, video, "Video fetched successfully")
}
