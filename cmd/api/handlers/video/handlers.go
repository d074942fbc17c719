package handlers

import (
	"context"

	"xTube.com/cmd/api/handlers/pack"
	"xTube.com/cmd/video/service"
)

// FeedParam 视频流查询参数
type FeedParam struct {
	Query    string `query:"query"`
	UserID   string `query:"userId"`
	SortBy   string `query:"sortBy"`
	SortType string `query:"sortType"`
}

type PublishParam struct {
	Title       string `form:"title" json:"title"`
	Description string `form:"description" json:"description"`
}

// UpdateParam 缺省字段不修改，thumbnail 为可选文件
type UpdateParam struct {
	Title       *string `form:"title" json:"title"`
	Description *string `form:"description" json:"description"`
}

type TogglePublishParam struct {
	IsPublished *bool `json:"isPublished" form:"isPublished"`
}

func videoService(ctx context.Context) *service.VideoService {
	deps := pack.Deps()
	return service.NewVideoService(ctx, deps.Store, deps.Probe)
}
