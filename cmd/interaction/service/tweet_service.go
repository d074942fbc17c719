package service

import (
	"context"
	"strconv"

	"xTube.com/cmd/interaction/dal/db"
	"xTube.com/cmd/model"
	userdb "xTube.com/cmd/user/dal/db"
	"xTube.com/pkg/ownership"
	"xTube.com/pkg/pagination"
	"xTube.com/pkg/pipeline"
)

type TweetService struct {
	ctx context.Context
}

func NewTweetService(ctx context.Context) *TweetService {
	return &TweetService{ctx: ctx}
}

func (s *TweetService) Create(ownerID int64, content string) (*model.Tweet, error) {
	content, err := validContent(content)
	if err != nil {
		return nil, err
	}
	tweet := &model.Tweet{Content: content, OwnerID: ownerID}
	if err = db.CreateTweet(s.ctx, tweet); err != nil {
		return nil, err
	}
	return tweet, nil
}

// ListByUser 用户不存在返回 NotFound
func (s *TweetService) ListByUser(userID, viewerID int64, params pagination.Params) (*pipeline.Page[db.TweetView], error) {
	if _, err := userdb.GetUserByID(s.ctx, userID); err != nil {
		return nil, err
	}
	return db.ListUserTweets(s.ctx, userID, viewerID, params)
}

func (s *TweetService) Update(tweetID, ownerID int64, content string) (*model.Tweet, error) {
	content, err := validContent(content)
	if err != nil {
		return nil, err
	}
	return db.UpdateTweet(s.ctx, tweetID, ownerID, content)
}

// Delete 删除后清理推文上的点赞
func (s *TweetService) Delete(tweetID, ownerID int64) (*model.Tweet, error) {
	tweet, err := db.DeleteTweet(s.ctx, tweetID, ownerID)
	if err != nil {
		return nil, err
	}
	ownership.Cascade(s.ctx, "tweet "+strconv.FormatInt(tweetID, 10),
		ownership.Step{Name: "tweet_likes", Run: func(ctx context.Context) error {
			return db.DeleteReactions(ctx, model.KindTweet, tweetID)
		}},
	)
	return tweet, nil
}
