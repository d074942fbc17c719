package service

import (
	"context"

	"github.com/cloudwego/hertz/pkg/common/hlog"

	"xTube.com/cmd/interaction/dal/db"
	"xTube.com/cmd/model"
	"xTube.com/pkg/errno"
	"xTube.com/pkg/mq"
	"xTube.com/pkg/pagination"
	"xTube.com/pkg/pipeline"
)

type LikeService struct {
	ctx      context.Context
	producer mq.MessageProducer
}

func NewLikeService(ctx context.Context, producer mq.MessageProducer) *LikeService {
	if producer == nil {
		producer = mq.NopProducer{}
	}
	return &LikeService{ctx: ctx, producer: producer}
}

// Toggle 翻转 actor 对目标的点赞或点踩，两种反应互不影响
func (s *LikeService) Toggle(actorID int64, target model.ReactionTarget, action model.ReactionAction) (bool, error) {
	if !action.Valid() {
		return false, errno.ValidationErr.WithMessage("Invalid reaction")
	}
	if _, ok := target.Kind.Model(); !ok {
		return false, errno.ValidationErr.WithMessage("Invalid reaction target")
	}
	found, err := db.ExistsTarget(s.ctx, target)
	if err != nil {
		return false, err
	}
	if !found {
		return false, errno.NotFoundErr.WithMessage(string(target.Kind) + " not found")
	}
	active, err := db.ToggleReaction(s.ctx, actorID, target, action)
	if err != nil {
		return false, err
	}
	event := mq.NewReactionEvent(actorID, string(target.Kind), target.ID, string(action), active)
	if err := s.producer.PublishReactionEvent(s.ctx, event); err != nil {
		hlog.CtxErrorf(s.ctx, "publish reaction event %s failed: %v", target, err)
	}
	return active, nil
}

func (s *LikeService) LikedVideos(userID int64, params pagination.Params) (*pipeline.Page[db.LikedVideo], error) {
	return db.ListLikedVideos(s.ctx, userID, params)
}
