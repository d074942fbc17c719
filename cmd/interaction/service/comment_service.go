package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/cloudwego/hertz/pkg/common/hlog"

	"xTube.com/cmd/interaction/dal/db"
	"xTube.com/cmd/model"
	"xTube.com/pkg/constants"
	"xTube.com/pkg/errno"
	"xTube.com/pkg/mq"
	"xTube.com/pkg/ownership"
	"xTube.com/pkg/pagination"
	"xTube.com/pkg/pipeline"
)

type CommentService struct {
	ctx      context.Context
	producer mq.MessageProducer
}

func NewCommentService(ctx context.Context, producer mq.MessageProducer) *CommentService {
	if producer == nil {
		producer = mq.NopProducer{}
	}
	return &CommentService{ctx: ctx, producer: producer}
}

func validContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", errno.ValidationErr.WithMessage("Content is required")
	}
	if len(content) > constants.MaxContentLength {
		return "", errno.ValidationErr.WithMessage("Content is too long")
	}
	return content, nil
}

func (s *CommentService) requireVideo(videoID int64) error {
	found, err := db.ExistsTarget(s.ctx, model.ReactionTarget{Kind: model.KindVideo, ID: videoID})
	if err != nil {
		return err
	}
	if !found {
		return errno.NotFoundErr.WithMessage("Video not found")
	}
	return nil
}

func (s *CommentService) publish(typ string, comment *model.Comment) {
	event := mq.NewCommentEvent(typ, comment.ID, comment.VideoID, comment.OwnerID)
	if err := s.producer.PublishCommentEvent(s.ctx, event); err != nil {
		hlog.CtxErrorf(s.ctx, "publish comment event %s/%d failed: %v", typ, comment.ID, err)
	}
}

func (s *CommentService) List(videoID, viewerID int64, params pagination.Params) (*pipeline.Page[db.CommentView], error) {
	if err := s.requireVideo(videoID); err != nil {
		return nil, err
	}
	return db.ListVideoComments(s.ctx, videoID, viewerID, params)
}

func (s *CommentService) Create(videoID, ownerID int64, content string) (*model.Comment, error) {
	content, err := validContent(content)
	if err != nil {
		return nil, err
	}
	if err = s.requireVideo(videoID); err != nil {
		return nil, err
	}
	comment := &model.Comment{Content: content, OwnerID: ownerID, VideoID: videoID}
	if err = db.CreateComment(s.ctx, comment); err != nil {
		return nil, err
	}
	s.publish("create", comment)
	return comment, nil
}

func (s *CommentService) Update(commentID, ownerID int64, content string) (*model.Comment, error) {
	content, err := validContent(content)
	if err != nil {
		return nil, err
	}
	comment, err := db.UpdateComment(s.ctx, commentID, ownerID, content)
	if err != nil {
		return nil, err
	}
	s.publish("update", comment)
	return comment, nil
}

// Delete 删除后清理评论上的点赞
func (s *CommentService) Delete(commentID, ownerID int64) (*model.Comment, error) {
	comment, err := db.DeleteComment(s.ctx, commentID, ownerID)
	if err != nil {
		return nil, err
	}
	ownership.Cascade(s.ctx, "comment "+strconv.FormatInt(commentID, 10),
		ownership.Step{Name: "comment_likes", Run: func(ctx context.Context) error {
			return db.DeleteReactions(ctx, model.KindComment, commentID)
		}},
	)
	s.publish("delete", comment)
	return comment, nil
}
