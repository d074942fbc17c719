package handlers

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"xTube.com/cmd/api/handlers/pack"
	"xTube.com/pkg/errno"
	"xTube.com/pkg/jwt"
)

func ChannelProfile(ctx context.Context, c *app.RequestContext) {
	username := c.Param("username")
	if username == "" {
		pack.SendError(c, errno.ValidationErr.WithMessage("Username is missing"))
		return
	}
	profile, err := userService(ctx).ChannelProfile(username, jwt.ViewerID(c))
	if err != nil {
		pack.SendError(c, err)
		return
	}
	pack.SendResponse(c, consts.StatusOK, profile, "User channel fetched successfully")
}

func WatchHistory(ctx context.Context, c *app.RequestContext) {
	userID, err := pack.UserID(c)
	if err != nil {
		pack.SendError(c, err)
		return
	}
	page, err := userService(ctx).WatchHistory(userID, pack.Page(c))
	if err != nil {
		pack.SendError(c, err)
		return
	}
	pack.SendResponse(c, consts.StatusOK, page, "Watch history fetched successfully")
}
