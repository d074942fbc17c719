package db

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"xTube.com/cmd/model"
	"xTube.com/pkg/constants"
	"xTube.com/pkg/ownership"
	"xTube.com/pkg/pagination"
	"xTube.com/pkg/pipeline"
)

const comments = constants.CommentTableName

func CreateComment(ctx context.Context, comment *model.Comment) error {
	if err := DB.WithContext(ctx).Create(comment).Error; err != nil {
		return errors.Wrapf(err, "CreateComment failed, video: %d", comment.VideoID)
	}
	return nil
}

// CommentView 评论及其作者、点赞数
type CommentView struct {
	ID         int64          `json:"id,string"`
	Content    string         `json:"content"`
	VideoID    int64          `json:"video,string"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
	Owner      model.UserCard `gorm:"embedded;embeddedPrefix:owner_" json:"owner"`
	LikesCount int64          `json:"likesCount"`
	IsLiked    bool           `json:"isLiked"`
}

// ListVideoComments 视频下的评论，新的在前
func ListVideoComments(ctx context.Context, videoID, viewerID int64, params pagination.Params) (*pipeline.Page[CommentView], error) {
	id := comments + ".id"
	p := pipeline.New(comments, "id", "content", "video_id", "created_at", "updated_at").
		Join(pipeline.OwnerJoin(comments)).
		Where(comments+".video_id = ?", videoID).
		Derive(
			pipeline.LikeCount(model.KindComment, id, "likes_count"),
			pipeline.Reacted(model.KindComment, model.ActionLiked, id, viewerID, "is_liked"),
		).
		OrderBy(pipeline.Newest(comments)...)
	return pipeline.Paginate[CommentView](ctx, DB, p, params)
}

// UpdateComment 仅 owner 可修改
func UpdateComment(ctx context.Context, commentID, ownerID int64, content string) (*model.Comment, error) {
	var comment model.Comment
	if err := ownership.Update(ctx, DB, &comment, commentID, ownerID, map[string]interface{}{"content": content}); err != nil {
		return nil, err
	}
	return &comment, nil
}

// DeleteComment 仅 owner 可删除
func DeleteComment(ctx context.Context, commentID, ownerID int64) (*model.Comment, error) {
	var comment model.Comment
	if err := ownership.Delete(ctx, DB, &comment, commentID, ownerID); err != nil {
		return nil, err
	}
	return &comment, nil
}

// CommentIDsOfVideo 视频下全部评论 ID
func CommentIDsOfVideo(ctx context.Context, videoID int64) ([]int64, error) {
	var ids []int64
	if err := DB.WithContext(ctx).Model(&model.Comment{}).Where("video_id = ?", videoID).Pluck("id", &ids).Error; err != nil {
		return nil, errors.Wrapf(err, "list comments of video %d", videoID)
	}
	return ids, nil
}

// DeleteCommentsOfVideo 视频删除后的级联清理
func DeleteCommentsOfVideo(ctx context.Context, videoID int64) error {
	return errors.WithMessage(
		DB.WithContext(ctx).Where("video_id = ?", videoID).Delete(&model.Comment{}).Error,
		"delete comments of video")
}

func exists(ctx context.Context, m interface{}, id int64) (bool, error) {
	var count int64
	err := DB.WithContext(ctx).Model(m).Where("id = ?", id).Count(&count).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, errors.WithMessage(err, "check existence")
	}
	return count > 0, nil
}
