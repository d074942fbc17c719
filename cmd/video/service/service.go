package service

import (
	"context"

	"xTube.com/pkg/oss"
	"xTube.com/pkg/utils"
)

// Prober 读取本地视频时长（秒）
type Prober func(path string) (float64, error)

type VideoService struct {
	ctx   context.Context
	store oss.BlobStore
	probe Prober
}

// NewVideoService probe 为 nil 时使用 ffprobe
func NewVideoService(ctx context.Context, store oss.BlobStore, probe Prober) *VideoService {
	if probe == nil {
		probe = utils.ProbeDuration
	}
	return &VideoService{ctx: ctx, store: store, probe: probe}
}
