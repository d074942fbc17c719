package service

import (
	"xTube.com/cmd/user/dal/db"
	"xTube.com/pkg/errno"
	"xTube.com/pkg/pagination"
	"xTube.com/pkg/pipeline"
)

// ChannelProfile viewerID 为 0 表示匿名访问
func (s *UserService) ChannelProfile(username string, viewerID int64) (*db.ChannelProfile, error) {
	if username == "" {
		return nil, errno.ValidationErr.WithMessage("Username is missing")
	}
	return db.GetChannelProfile(s.ctx, username, viewerID)
}

func (s *UserService) WatchHistory(userID int64, params pagination.Params) (*pipeline.Page[db.WatchedVideo], error) {
	return db.ListWatchHistory(s.ctx, userID, params)
}

// RecordWatch 记录失败不影响观看
func (s *UserService) RecordWatch(userID, videoID int64) error {
	return db.RecordWatch(s.ctx, userID, videoID)
}
