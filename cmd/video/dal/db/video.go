package db

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"xTube.com/cmd/model"
	"xTube.com/pkg/constants"
	"xTube.com/pkg/errno"
	"xTube.com/pkg/ownership"
	"xTube.com/pkg/pagination"
	"xTube.com/pkg/pipeline"
)

const videos = constants.VideoTableName

func CreateVideo(ctx context.Context, video *model.Video) error {
	if err := DB.WithContext(ctx).Create(video).Error; err != nil {
		return errors.Wrapf(err, "CreateVideo failed, owner: %d", video.OwnerID)
	}
	return nil
}

// GetVideo 不区分是否发布
func GetVideo(ctx context.Context, videoID int64) (*model.Video, error) {
	var video model.Video
	err := DB.WithContext(ctx).Where("id = ?", videoID).Take(&video).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errno.NotFoundErr.WithMessage("Video not found")
	}
	if err != nil {
		return nil, errors.Wrapf(err, "GetVideo failed, id: %d", videoID)
	}
	return &video, nil
}

// IncrementViews 只对已发布视频计数，返回是否命中
func IncrementViews(ctx context.Context, videoID int64) (bool, error) {
	res := DB.WithContext(ctx).Model(&model.Video{}).
		Where("id = ? AND is_published = ?", videoID, true).
		UpdateColumn("views", gorm.Expr("views + ?", 1))
	if res.Error != nil {
		return false, errors.Wrapf(res.Error, "IncrementViews failed, id: %d", videoID)
	}
	return res.RowsAffected > 0, nil
}

// UpdateVideo 仅 owner 可更新，同时返回更新前的记录
func UpdateVideo(ctx context.Context, videoID, ownerID int64, columns map[string]interface{}) (before, after *model.Video, err error) {
	var video, prev model.Video
	err = ownership.Mutate(ctx, DB, &video, videoID, ownerID, func(tx *gorm.DB) error {
		prev = video
		if len(columns) == 0 {
			return nil
		}
		if err := tx.Model(&model.Video{}).Where("id = ? AND owner_id = ?", videoID, ownerID).Updates(columns).Error; err != nil {
			return errors.Wrapf(err, "UpdateVideo failed, id: %d", videoID)
		}
		return tx.Where("id = ?", videoID).Take(&video).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return &prev, &video, nil
}

// DeleteVideo 仅 owner 可删除，返回删除前的记录用于级联清理
func DeleteVideo(ctx context.Context, videoID, ownerID int64) (*model.Video, error) {
	var video model.Video
	if err := ownership.Delete(ctx, DB, &video, videoID, ownerID); err != nil {
		return nil, err
	}
	return &video, nil
}

// FeedQuery 视频列表过滤与排序
type FeedQuery struct {
	Query    string
	OwnerID  int64
	SortBy   string
	SortType string
	// 查看自己频道时包含未发布视频
	IncludeUnpublished bool
}

var sortColumns = map[string]string{
	"createdAt": videos + ".created_at",
	"views":     videos + ".views",
	"likes":     "likes_count",
}

// SortKeys 校验排序参数，非法值回落到创建时间倒序
func SortKeys(sortBy, sortType string) []string {
	col, ok := sortColumns[sortBy]
	if !ok {
		col = sortColumns["createdAt"]
	}
	dir := "DESC"
	if strings.EqualFold(sortType, "asc") {
		dir = "ASC"
	}
	return []string{col + " " + dir, videos + ".id " + dir}
}

// ListVideos 视频流
func ListVideos(ctx context.Context, q FeedQuery, params pagination.Params) (*pipeline.Page[model.VideoCard], error) {
	p := pipeline.VideoCards()
	if !q.IncludeUnpublished {
		p.Where(videos+".is_published = ?", true)
	}
	if q.OwnerID > 0 {
		p.Where(videos+".owner_id = ?", q.OwnerID)
	}
	if strings.TrimSpace(q.Query) != "" {
		cond, args := pipeline.ContainsFold(q.Query,
			videos+".title", videos+".description", "owner.username", "owner.full_name")
		p.Where(cond, args...)
	}
	p.OrderBy(SortKeys(q.SortBy, q.SortType)...)
	return pipeline.Paginate[model.VideoCard](ctx, DB, p, params)
}

// VideoDetail 单个视频页
type VideoDetail struct {
	model.VideoCard
	DislikesCount    int64 `json:"dislikesCount"`
	CommentsCount    int64 `json:"commentsCount"`
	IsLiked          bool  `json:"isLiked"`
	IsDisliked       bool  `json:"isDisliked"`
	SubscribersCount int64 `json:"subscribersCount"`
	IsSubscribed     bool  `json:"isSubscribed"`
}

// GetVideoDetail 已发布视频，或 viewer 自己的视频
func GetVideoDetail(ctx context.Context, videoID, viewerID int64) (*VideoDetail, error) {
	id := videos + ".id"
	p := pipeline.VideoCards().
		Where(id+" = ?", videoID).
		Where("("+videos+".is_published = ? OR "+videos+".owner_id = ?)", true, viewerID).
		Derive(
			pipeline.ReactionCount(model.KindVideo, model.ActionDisliked, id, "dislikes_count"),
			pipeline.CountWhere(constants.CommentTableName, "video_id", id, "comments_count"),
			pipeline.Reacted(model.KindVideo, model.ActionLiked, id, viewerID, "is_liked"),
			pipeline.Reacted(model.KindVideo, model.ActionDisliked, id, viewerID, "is_disliked"),
			pipeline.CountWhere(constants.SubscriptionTableName, "channel_id", videos+".owner_id", "subscribers_count"),
			pipeline.SubscribedBy(videos+".owner_id", viewerID, "is_subscribed"),
		)
	var detail VideoDetail
	if err := p.One(ctx, DB, &detail); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errno.NotFoundErr.WithMessage("Video not found")
		}
		return nil, err
	}
	return &detail, nil
}
