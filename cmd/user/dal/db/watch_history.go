package db

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm/clause"

	"xTube.com/cmd/model"
	"xTube.com/pkg/constants"
	"xTube.com/pkg/pagination"
	"xTube.com/pkg/pipeline"
)

// RecordWatch 记录观看，重复观看只刷新 watched_at
func RecordWatch(ctx context.Context, userID, videoID int64) error {
	now := time.Now()
	err := DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "video_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"watched_at": now, "updated_at": now}),
	}).Create(&model.WatchHistory{UserID: userID, VideoID: videoID, WatchedAt: now}).Error
	if err != nil {
		return errors.Wrapf(err, "RecordWatch failed, user: %d, video: %d", userID, videoID)
	}
	return nil
}

// WatchedVideo 观看历史条目
type WatchedVideo struct {
	model.VideoCard
	WatchedAt time.Time `gorm:"column:wh_watched_at" json:"watchedAt"`
}

// ListWatchHistory 最近观看在前；他人未发布的视频不出现
func ListWatchHistory(ctx context.Context, userID int64, params pagination.Params) (*pipeline.Page[WatchedVideo], error) {
	videos := constants.VideoTableName
	p := pipeline.VideoCards().
		Join(pipeline.Join{
			Table:  constants.WatchHistoryTableName,
			As:     "wh",
			On:     "wh.video_id = " + videos + ".id",
			Inner:  true,
			Fields: []string{"watched_at"},
		}).
		Where("wh.user_id = ?", userID).
		Where("("+videos+".is_published = ? OR "+videos+".owner_id = ?)", true, userID).
		OrderBy("wh.watched_at DESC", "wh.id DESC")
	return pipeline.Paginate[WatchedVideo](ctx, DB, p, params)
}

// DeleteWatchByVideo 视频删除后清理观看记录
func DeleteWatchByVideo(ctx context.Context, videoID int64) error {
	return errors.WithMessage(
		DB.WithContext(ctx).Where("video_id = ?", videoID).Delete(&model.WatchHistory{}).Error,
		"delete watch history")
}
