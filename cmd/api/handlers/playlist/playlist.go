package handlers

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"xTube.com/cmd/api/handlers/pack"
	"xTube.com/cmd/video/service"
	"xTube.com/pkg/jwt"
)

type CreateParam struct {
	Name        string `json:"name" form:"name"`
	Description string `json:"description" form:"description"`
	Status      string `json:"status" form:"status"`
}

type UpdateParam struct {
	Name        *string `json:"name" form:"name"`
	Description *string `json:"description" form:"description"`
	Status      *string `json:"status" form:"status"`
}

func Create(ctx context.Context, c *app.RequestContext) {
	userID, err := pack.UserID(c)
	if err != nil {
		pack.SendError(c, err)
		return
	}
	var req CreateParam
	if err = pack.Bind(c, &req); err != nil {
		pack.SendError(c, err)
		return
	}
	playlist, err := service.NewPlaylistService(ctx).Create(userID, req.Name, req.Description, req.Status)
	if err != nil {
		pack.SendError(c, err)
		return
	}
	pack.SendResponse(c, consts.StatusCreated, playlist, "Playlist created successfully")
}

// ListMine 自己的全部播放列表
func ListMine(ctx context.Context, c *app.RequestContext) {
	userID, err := pack.UserID(c)
	if err != nil {
		pack.SendError(c, err)
		return
	}
	page, err := service.NewPlaylistService(ctx).ListByOwner(userID, userID, pack.Page(c))
	if err != nil {
		pack.SendError(c, err)
		return
	}
	pack.SendResponse(c, consts.StatusOK, page, "Playlists fetched successfully")
}

// ListByUser 他人只能看到公开的播放列表
func ListByUser(ctx context.Context, c *app.RequestContext) {
	ownerID, err := pack.PathID(c, "userId", "userId")
	if err != nil {
		pack.SendError(c, err)
		return
	}
	page, err := service.NewPlaylistService(ctx).ListByOwner(ownerID, jwt.ViewerID(c), pack.Page(c))
	if err != nil {
		pack.SendError(c, err)
		return
	}
	pack.SendResponse(c, consts.StatusOK, page, "Playlists fetched successfully")
}

func Get(ctx context.Context, c *app.RequestContext) {
	playlistID, err := pack.PathID(c, "playlistId", "playlistId")
	if err != nil {
		pack.SendError(c, err)
		return
	}
	playlist, err := service.NewPlaylistService(ctx).Get(playlistID, jwt.ViewerID(c))
	if err != nil {
		pack.SendError(c, err)
		return
	}
	pack.SendResponse(c, consts.StatusOK, playlist, "Playlist fetched successfully")
}

func Update(ctx context.Context, c *app.RequestContext) {
	userID, err := pack.UserID(c)
	if err != nil {
		pack.SendError(c, err)
		return
	}
	playlistID, err := pack.PathID(c, "playlistId", "playlistId")
	if err != nil {
		pack.SendError(c, err)
		return
	}
	var req UpdateParam
	if err = pack.Bind(c, &req); err != nil {
		pack.SendError(c, err)
		return
	}
	playlist, err := service.NewPlaylistService(ctx).Update(playlistID, userID, service.PlaylistPatch{
		Name:        req.Name,
		Description: req.Description,
		Visibility:  req.Status,
	})
	if err != nil {
		pack.SendError(c, err)
		return
	}
	pack.SendResponse(c, consts.StatusOK, playlist, "Playlist updated successfully")
}

func Delete(ctx context.Context, c *app.RequestContext) {
	userID, err := pack.UserID(c)
	if err != nil {
		pack.SendError(c, err)
		return
	}
	playlistID, err := pack.PathID(c, "playlistId", "playlistId")
	if err != nil {
		pack.SendError(c, err)
		return
	}
	playlist, err := service.NewPlaylistService(ctx).Delete(playlistID, userID)
	if err != nil {
		pack.SendError(c, err)
		return
	}
	pack.SendResponse(c, consts.StatusOK, playlist, "Playlist deleted successfully")
}

func AddVideo(ctx context.Context, c *app.RequestContext) {
	editVideos(ctx, c, true)
}

func RemoveVideo(ctx context.Context, c *app.RequestContext) {
	editVideos(ctx, c, false)
}

func editVideos(ctx context.Context, c *app.RequestContext, add bool) {
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
	playlistID, err := pack.PathID(c, "playlistId", "playlistId")
	if err != nil {
		pack.SendError(c, err)
		return
	}
	svc := service.NewPlaylistService(ctx)
	if add {
		playlist, err := svc.AddVideo(playlistID, userID, videoID)
		if err != nil {
			pack.SendError(c, err)
			return
		}
		pack.SendResponse(c, consts.StatusOK, playlist, "Video added to playlist")
		return
	}
	playlist, err := svc.RemoveVideo(playlistID, userID, videoID)
	if err != nil {
		pack.SendError(c, err)
		return
	}
	pack.SendResponse(c, consts.StatusOK, playlist, "Video removed from playlist")
}
