package service

import (
	"context"

	"xTube.com/cmd/model"
	"xTube.com/cmd/video/dal/db"
	"xTube.com/pkg/pagination"
	"xTube.com/pkg/pipeline"
)

type DashboardService struct {
	ctx context.Context
}

func NewDashboardService(ctx context.Context) *DashboardService {
	return &DashboardService{ctx: ctx}
}

func (s *DashboardService) Stats(userID int64) (*db.ChannelStats, error) {
	return db.GetChannelStats(s.ctx, userID)
}

func (s *DashboardService) Videos(userID int64, params pagination.Params) (*pipeline.Page[model.VideoCard], error) {
	return db.ListChannelVideos(s.ctx, userID, params)
}
