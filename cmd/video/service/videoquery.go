package service

import (
	"github.com/cloudwego/hertz/pkg/common/hlog"

	"xTube.com/cmd/model"
	userdb "xTube.com/cmd/user/dal/db"
	"xTube.com/cmd/video/dal/db"
	"xTube.com/pkg/pagination"
	"xTube.com/pkg/pipeline"
)

func (s *VideoService) Feed(q db.FeedQuery, params pagination.Params) (*pipeline.Page[model.VideoCard], error) {
	q.IncludeUnpublished = false
	return db.ListVideos(s.ctx, q, params)
}

// GetVideo 每次获取已发布视频都计一次播放；登录用户同时写入观看历史
func (s *VideoService) GetVideo(videoID, viewerID int64) (*db.VideoDetail, error) {
	counted, err := db.IncrementViews(s.ctx, videoID)
	if err != nil {
		return nil, err
	}
	detail, err := db.GetVideoDetail(s.ctx, videoID, viewerID)
	if err != nil {
		return nil, err
	}
	if counted && viewerID > 0 {
		if err := userdb.RecordWatch(s.ctx, viewerID, videoID); err != nil {
			hlog.CtxErrorf(s.ctx, "record watch history of user %d failed: %v", viewerID, err)
		}
	}
	return detail, nil
}
