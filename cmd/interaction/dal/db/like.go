package db

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"xTube.com/cmd/model"
	"xTube.com/pkg/constants"
	"xTube.com/pkg/pagination"
	"xTube.com/pkg/pipeline"
	"xTube.com/pkg/toggle"
)

// ExistsTarget 按目标类型检查被点赞实体是否存在；视频只接受已发布的
func ExistsTarget(ctx context.Context, target model.ReactionTarget) (bool, error) {
	m, ok := target.Kind.Model()
	if !ok {
		return false, nil
	}
	if target.Kind == model.KindVideo {
		var count int64
		err := DB.WithContext(ctx).Model(m).Where("id = ? AND is_published = ?", target.ID, true).Count(&count).Error
		if err != nil {
			return false, errors.WithMessage(err, "check video")
		}
		return count > 0, nil
	}
	return exists(ctx, m, target.ID)
}

// ToggleReaction 翻转 (owner, target, action) 这条反应
func ToggleReaction(ctx context.Context, ownerID int64, target model.ReactionTarget, action model.ReactionAction) (bool, error) {
	kind := "like"
	if action == model.ActionDisliked {
		kind = "dislike"
	}
	return toggle.Flip(ctx, DB, toggle.Relation{
		Kind:  kind,
		Model: &model.Like{},
		Key: map[string]interface{}{
			"owner_id":    ownerID,
			"target_kind": target.Kind,
			"target_id":   target.ID,
			"action":      action,
		},
		Record: &model.Like{OwnerID: ownerID, TargetKind: target.Kind, TargetID: target.ID, Action: action},
	})
}

// DeleteReactions 删除指向这些目标的全部反应
func DeleteReactions(ctx context.Context, kind model.ReactionKind, ids ...int64) error {
	if len(ids) == 0 {
		return nil
	}
	return errors.WithMessage(
		DB.WithContext(ctx).Where("target_kind = ? AND target_id IN ?", kind, ids).Delete(&model.Like{}).Error,
		"delete reactions")
}

// LikedVideo 点赞过的视频
type LikedVideo struct {
	model.VideoCard
	LikedAt time.Time `gorm:"column:lk_created_at" json:"likedAt"`
}

// ListLikedVideos 用户点赞过且仍可见的视频，最近点赞的在前
func ListLikedVideos(ctx context.Context, userID int64, params pagination.Params) (*pipeline.Page[LikedVideo], error) {
	videos := constants.VideoTableName
	p := pipeline.VideoCards().
		Join(pipeline.Join{
			Table:  constants.LikeTableName,
			As:     "lk",
			On:     "lk.target_id = " + videos + ".id",
			Inner:  true,
			Fields: []string{"created_at"},
		}).
		Where("lk.owner_id = ? AND lk.target_kind = ? AND lk.action = ?", userID, model.KindVideo, model.ActionLiked).
		Where("("+videos+".is_published = ? OR "+videos+".owner_id = ?)", true, userID).
		OrderBy("lk.created_at DESC", "lk.id DESC")
	return pipeline.Paginate[LikedVideo](ctx, DB, p, params)
}
