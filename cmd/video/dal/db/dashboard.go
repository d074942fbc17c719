package db

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"xTube.com/cmd/model"
	"xTube.com/pkg/constants"
	"xTube.com/pkg/errno"
	"xTube.com/pkg/pagination"
	"xTube.com/pkg/pipeline"
)

// ChannelStats 频道数据汇总
type ChannelStats struct {
	ID               int64  `json:"id,string"`
	Username         string `json:"username"`
	FullName         string `json:"fullName"`
	Avatar           string `gorm:"column:avatar_url" json:"avatar"`
	TotalVideos      int64  `json:"totalVideos"`
	TotalComments    int64  `json:"totalComments"`
	TotalTweets      int64  `json:"totalTweets"`
	TotalSubscribers int64  `json:"totalSubscribers"`
	TotalLikes       int64  `json:"totalLikes"`
	TotalViews       int64  `json:"totalViews"`
}

// channelLikes 频道名下视频、评论、推文收到的点赞总数
func channelLikes(userColumn string) pipeline.Field {
	owned := func(table string) string {
		return "SELECT o.id FROM " + table + " AS o WHERE o.owner_id = " + userColumn
	}
	return pipeline.Field{
		Expr: "(SELECT COUNT(*) FROM " + constants.LikeTableName + " AS cl WHERE cl.action = ? AND (" +
			"(cl.target_kind = ? AND cl.target_id IN (" + owned(constants.VideoTableName) + ")) OR " +
			"(cl.target_kind = ? AND cl.target_id IN (" + owned(constants.CommentTableName) + ")) OR " +
			"(cl.target_kind = ? AND cl.target_id IN (" + owned(constants.TweetTableName) + "))))",
		As:   "total_likes",
		Args: []interface{}{model.ActionLiked, model.KindVideo, model.KindComment, model.KindTweet},
	}
}

// GetChannelStats 一次查询得到全部统计
func GetChannelStats(ctx context.Context, userID int64) (*ChannelStats, error) {
	users := constants.UserTableName
	id := users + ".id"
	p := pipeline.New(users, "id", "username", "full_name", "avatar_url").
		Where(id+" = ?", userID).
		Derive(
			pipeline.CountWhere(constants.VideoTableName, "owner_id", id, "total_videos"),
			pipeline.CountWhere(constants.CommentTableName, "owner_id", id, "total_comments"),
			pipeline.CountWhere(constants.TweetTableName, "owner_id", id, "total_tweets"),
			pipeline.CountWhere(constants.SubscriptionTableName, "channel_id", id, "total_subscribers"),
			channelLikes(id),
			pipeline.Field{
				Expr: "(SELECT COALESCE(SUM(sv.views), 0) FROM " + constants.VideoTableName + " AS sv WHERE sv.owner_id = " + id + ")",
				As:   "total_views",
			},
		)
	var stats ChannelStats
	if err := p.One(ctx, DB, &stats); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errno.NotFoundErr.WithMessage("Channel stats not found")
		}
		return nil, err
	}
	return &stats, nil
}

// ListChannelVideos 仪表盘中自己的全部视频，含未发布
func ListChannelVideos(ctx context.Context, ownerID int64, params pagination.Params) (*pipeline.Page[model.VideoCard], error) {
	return ListVideos(ctx, FeedQuery{OwnerID: ownerID, IncludeUnpublished: true}, params)
}
