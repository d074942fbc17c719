package db

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"xTube.com/cmd/model"
	"xTube.com/pkg/constants"
	"xTube.com/pkg/ownership"
	"xTube.com/pkg/pagination"
	"xTube.com/pkg/pipeline"
)

const tweets = constants.TweetTableName

func CreateTweet(ctx context.Context, tweet *model.Tweet) error {
	if err := DB.WithContext(ctx).Create(tweet).Error; err != nil {
		return errors.Wrapf(err, "CreateTweet failed, owner: %d", tweet.OwnerID)
	}
	return nil
}

// TweetView 推文及其作者、反应数
type TweetView struct {
	ID            int64          `json:"id,string"`
	Content       string         `json:"content"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	Owner         model.UserCard `gorm:"embedded;embeddedPrefix:owner_" json:"owner"`
	LikesCount    int64          `json:"likesCount"`
	DislikesCount int64          `json:"dislikesCount"`
	IsLiked       bool           `json:"isLiked"`
	IsDisliked    bool           `json:"isDisliked"`
}

// ListUserTweets 用户的推文，新的在前
func ListUserTweets(ctx context.Context, ownerID, viewerID int64, params pagination.Params) (*pipeline.Page[TweetView], error) {
	id := tweets + ".id"
	p := pipeline.New(tweets, "id", "content", "created_at", "updated_at").
		Join(pipeline.OwnerJoin(tweets)).
		Where(tweets+".owner_id = ?", ownerID).
		Derive(
			pipeline.LikeCount(model.KindTweet, id, "likes_count"),
			pipeline.ReactionCount(model.KindTweet, model.ActionDisliked, id, "dislikes_count"),
			pipeline.Reacted(model.KindTweet, model.ActionLiked, id, viewerID, "is_liked"),
			pipeline.Reacted(model.KindTweet, model.ActionDisliked, id, viewerID, "is_disliked"),
		).
		OrderBy(pipeline.Newest(tweets)...)
	return pipeline.Paginate[TweetView](ctx, DB, p, params)
}

// UpdateTweet 仅 owner 可修改
func UpdateTweet(ctx context.Context, tweetID, ownerID int64, content string) (*model.Tweet, error) {
	var tweet model.Tweet
	if err := ownership.Update(ctx, DB, &tweet, tweetID, ownerID, map[string]interface{}{"content": content}); err != nil {
		return nil, err
	}
	return &tweet, nil
}

// DeleteTweet 仅 owner 可删除
func DeleteTweet(ctx context.Context, tweetID, ownerID int64) (*model.Tweet, error) {
	var tweet model.Tweet
	if err := ownership.Delete(ctx, DB, &tweet, tweetID, ownerID); err != nil {
		return nil, err
	}
	return &tweet, nil
}
