package service

import (
	"strings"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"golang.org/x/sync/errgroup"

	"xTube.com/cmd/model"
	"xTube.com/cmd/video/dal/db"
	"xTube.com/pkg/constants"
	"xTube.com/pkg/errno"
	"xTube.com/pkg/oss"
)

// PublishParam 发布视频参数，两个路径都是本地临时文件
type PublishParam struct {
	Title         string
	Description   string
	VideoPath     string
	ThumbnailPath string
}

func (p *PublishParam) validate() error {
	p.Title = strings.TrimSpace(p.Title)
	p.Description = strings.TrimSpace(p.Description)
	if p.Title == "" || p.Description == "" {
		return errno.ValidationErr.WithMessage("Title and description are required")
	}
	if len(p.Title) > constants.MaxTitleLength {
		return errno.ValidationErr.WithMessage("Title is too long")
	}
	if p.VideoPath == "" || p.ThumbnailPath == "" {
		return errno.ValidationErr.WithMessage("Video file and thumbnail are required")
	}
	return nil
}

// Publish 并行上传视频与封面后落库；任一步失败都删除已上传的文件
func (s *VideoService) Publish(ownerID int64, req *PublishParam) (*model.Video, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	duration, err := s.probe(req.VideoPath)
	if err != nil {
		hlog.CtxWarnf(s.ctx, "probe %s failed: %v", req.VideoPath, err)
		return nil, errno.ValidationErr.WithMessage("Unable to read video duration")
	}

	var videoFile, thumbnail model.Asset
	g, gctx := errgroup.WithContext(s.ctx)
	g.Go(func() error {
		a, err := s.store.Store(gctx, req.VideoPath, constants.VideoFolder)
		videoFile = a
		return err
	})
	g.Go(func() error {
		a, err := s.store.Store(gctx, req.ThumbnailPath, constants.ThumbnailFolder)
		thumbnail = a
		return err
	})
	rollback := func(reason string) {
		oss.DeleteQuietly(s.ctx, s.store, videoFile, reason)
		oss.DeleteQuietly(s.ctx, s.store, thumbnail, reason)
	}
	if err = g.Wait(); err != nil {
		hlog.CtxErrorf(s.ctx, "upload video for user %d failed: %v", ownerID, err)
		rollback("publish upload rollback")
		return nil, errno.UpstreamErr.WithMessage("Failed to upload video")
	}

	video := &model.Video{
		OwnerID:     ownerID,
		VideoFile:   videoFile,
		Thumbnail:   thumbnail,
		Title:       req.Title,
		Description: req.Description,
		Duration:    duration,
		IsPublished: true,
	}
	if err = db.CreateVideo(s.ctx, video); err != nil {
		rollback("publish create rollback")
		return nil, err
	}
	hlog.CtxInfof(s.ctx, "video %d published by %d", video.ID, ownerID)
	return video, nil
}
