package handlers

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"xTube.com/cmd/api/handlers/pack"
	"xTube.com/cmd/video/service"
	"xTube.com/pkg/errno"
)

func Publish(ctx context.Context, c *app.RequestContext) {
	userID, err := pack.UserID(c)
	if err != nil {
		pack.SendError(c, err)
		return
	}
	var req PublishParam
	if err = pack.Bind(c, &req); err != nil {
		pack.SendError(c, err)
		return
	}
	file, err := pack.SaveUpload(ctx, c, "videoFile", true)
	if err != nil {
		pack.SendError(c, err)
		return
	}
	defer file.Cleanup()
	thumbnail, err := pack.SaveUpload(ctx, c, "thumbnail", true)
	if err != nil {
		pack.SendError(c, err)
		return
	}
	defer thumbnail.Cleanup()

	video, err := videoService(ctx).Publish(userID, &service.PublishParam{
		Title:         req.Title,
		Description:   req.Description,
		VideoPath:     file.Path,
		ThumbnailPath: thumbnail.Path,
	})
	if err != nil {
		pack.SendError(c, err)
		return
	}
	pack.SendResponse(c, consts.StatusCreated, video, "Video published successfully")
}

func Update(ctx context.Context, c *app.RequestContext) {
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
	var req UpdateParam
	if err = pack.Bind(c, &req); err != nil {
		pack.SendError(c, err)
		return
	}
	thumbnail, err := pack.SaveUpload(ctx, c, "thumbnail", false)
	if err != nil {
		pack.SendError(c, err)
		return
	}
	defer thumbnail.Cleanup()

	video, err := videoService(ctx).Update(videoID, userID, service.VideoPatch{
		Title:         req.Title,
		Description:   req.Description,
		ThumbnailPath: thumbnail.PathOrEmpty(),
	})
	if err != nil {
		pack.SendError(c, err)
		return
	}
	pack.SendResponse(c, consts.StatusOK, video, "Video updated successfully")
}

func TogglePublish(ctx context.Context, c *app.RequestContext) {
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
	var req TogglePublishParam
	if err = pack.Bind(c, &req); err != nil {
		pack.SendError(c, err)
		return
	}
	if req.IsPublished == nil {
		pack.SendError(c, errno.ValidationErr.WithMessage("isPublished must be a boolean"))
		return
	}
	video, err := videoService(ctx).TogglePublish(videoID, userID, *req.IsPublished)
	if err != nil {
		pack.SendError(c, err)
		return
	}
	pack.SendResponse(c, consts.StatusOK, video, "Video publish status updated")
}

func Delete(ctx context.Context, c *app.RequestContext) {
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
	video, err := videoService(ctx).Delete(videoID, userID)
	if err != nil {
		pack.SendError(c, err)
		return
	}
	pack.SendResponse(c, consts.StatusOK, video, "Video deleted successfully")
}
