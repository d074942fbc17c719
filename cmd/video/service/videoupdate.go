package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/cloudwego/hertz/pkg/common/hlog"

	"xTube.com/cmd/model"
	interactiondb "xTube.com/cmd/interaction/dal/db"
	userdb "xTube.com/cmd/user/dal/db"
	"xTube.com/cmd/video/dal/db"
	"xTube.com/pkg/constants"
	"xTube.com/pkg/errno"
	"xTube.com/pkg/oss"
	"xTube.com/pkg/ownership"
)

// VideoPatch 视频的部分更新，nil 或空路径表示不修改
type VideoPatch struct {
	Title         *string
	Description   *string
	ThumbnailPath string
}

// Columns 校验文本字段并转成待更新的列
func (p VideoPatch) Columns() (map[string]interface{}, error) {
	columns := map[string]interface{}{}
	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			return nil, errno.ValidationErr.WithMessage("Title cannot be empty")
		}
		if len(title) > constants.MaxTitleLength {
			return nil, errno.ValidationErr.WithMessage("Title is too long")
		}
		columns["title"] = title
	}
	if p.Description != nil {
		desc := strings.TrimSpace(*p.Description)
		if desc == "" {
			return nil, errno.ValidationErr.WithMessage("Description cannot be empty")
		}
		columns["description"] = desc
	}
	if len(columns) == 0 && p.ThumbnailPath == "" {
		return nil, errno.ValidationErr.WithMessage("Nothing to update")
	}
	return columns, nil
}

// Update 新封面先上传，写库失败回滚新封面，成功后删除旧封面
func (s *VideoService) Update(videoID, ownerID int64, patch VideoPatch) (*model.Video, error) {
	columns, err := patch.Columns()
	if err != nil {
		return nil, err
	}
	var thumbnail model.Asset
	if patch.ThumbnailPath != "" {
		if thumbnail, err = s.store.Store(s.ctx, patch.ThumbnailPath, constants.ThumbnailFolder); err != nil {
			hlog.CtxErrorf(s.ctx, "upload thumbnail for video %d failed: %v", videoID, err)
			return nil, errno.UpstreamErr.WithMessage("Failed to upload thumbnail")
		}
		columns["thumbnail_url"] = thumbnail.URL
		columns["thumbnail_storage_id"] = thumbnail.StorageID
	}
	before, after, err := db.UpdateVideo(s.ctx, videoID, ownerID, columns)
	if err != nil {
		oss.DeleteQuietly(s.ctx, s.store, thumbnail, "update video rollback")
		return nil, err
	}
	if !thumbnail.Empty() {
		oss.DeleteQuietly(s.ctx, s.store, before.Thumbnail, "replaced thumbnail")
	}
	return after, nil
}

// TogglePublish 设置发布状态
func (s *VideoService) TogglePublish(videoID, ownerID int64, published bool) (*model.Video, error) {
	_, after, err := db.UpdateVideo(s.ctx, videoID, ownerID, map[string]interface{}{"is_published": published})
	return after, err
}

// Delete 删除视频后级联清理点赞、评论、播放列表条目、观看历史与媒体文件
func (s *VideoService) Delete(videoID, ownerID int64) (*model.Video, error) {
	video, err := db.DeleteVideo(s.ctx, videoID, ownerID)
	if err != nil {
		return nil, err
	}
	ownership.Cascade(s.ctx, "video "+strconv.FormatInt(videoID, 10),
		ownership.Step{Name: "video_likes", Run: func(ctx context.Context) error {
			return interactiondb.DeleteReactions(ctx, model.KindVideo, videoID)
		}},
		ownership.Step{Name: "comment_likes", Run: func(ctx context.Context) error {
			ids, err := interactiondb.CommentIDsOfVideo(ctx, videoID)
			if err != nil {
				return err
			}
			return interactiondb.DeleteReactions(ctx, model.KindComment, ids...)
		}},
		ownership.Step{Name: "video_comments", Run: func(ctx context.Context) error {
			return interactiondb.DeleteCommentsOfVideo(ctx, videoID)
		}},
		ownership.Step{Name: "playlist_entries", Run: func(ctx context.Context) error {
			return db.DeleteVideoFromPlaylists(ctx, videoID)
		}},
		ownership.Step{Name: "watch_history", Run: func(ctx context.Context) error {
			return userdb.DeleteWatchByVideo(ctx, videoID)
		}},
		ownership.Step{Name: "video_file", Run: func(ctx context.Context) error {
			return s.store.Delete(ctx, video.VideoFile.StorageID)
		}},
		ownership.Step{Name: "thumbnail", Run: func(ctx context.Context) error {
			return s.store.Delete(ctx, video.Thumbnail.StorageID)
		}},
	)
	return video, nil
}
