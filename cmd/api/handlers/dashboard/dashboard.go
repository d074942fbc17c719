package handlers

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"xTube.com/cmd/api/handlers/pack"
	"xTube.com/cmd/video/service"
)

func Stats(ctx context.Context, c *app.RequestContext) {
	userID, err := pack.UserID(c)
	if err != nil {
		pack.SendError(c, err)
		return
	}
	stats, err := service.NewDashboardService(ctx).Stats(userID)
	if err != nil {
		pack.SendError(c, err)
		return
	}
	pack.SendResponse(c, consts.StatusOK, stats, "Channel stats fetched successfully")
}

// Videos 包含未发布的视频
func Videos(ctx context.Context, c *app.RequestContext) {
	userID, err := pack.UserID(c)
	if err != nil {
		pack.SendError(c, err)
		return
	}
	page, err := service.NewDashboardService(ctx).Videos(userID, pack.Page(c))
	if err != nil {
		pack.SendError(c, err)
		return
	}
	pack.SendResponse(c, consts.StatusOK, page, "Channel videos fetched successfully")
}
