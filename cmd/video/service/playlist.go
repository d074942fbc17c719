package service

import (
	"context"
	"strconv"
	"strings"

	"xTube.com/cmd/model"
	"xTube.com/cmd/video/dal/db"
	"xTube.com/pkg/constants"
	"xTube.com/pkg/errno"
	"xTube.com/pkg/ownership"
	"xTube.com/pkg/pagination"
	"xTube.com/pkg/pipeline"
)

type PlaylistService struct {
	ctx context.Context
}

func NewPlaylistService(ctx context.Context) *PlaylistService {
	return &PlaylistService{ctx: ctx}
}

// PlaylistPatch 播放列表的部分更新
type PlaylistPatch struct {
	Name        *string
	Description *string
	Visibility  *string
}

func (p PlaylistPatch) Columns() (map[string]interface{}, error) {
	columns := map[string]interface{}{}
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return nil, errno.ValidationErr.WithMessage("Playlist name cannot be empty")
		}
		if len(name) > constants.MaxTitleLength {
			return nil, errno.ValidationErr.WithMessage("Playlist name is too long")
		}
		columns["name"] = name
	}
	if p.Description != nil {
		columns["description"] = strings.TrimSpace(*p.Description)
	}
	if p.Visibility != nil {
		v, err := parseVisibility(*p.Visibility)
		if err != nil {
			return nil, err
		}
		columns["visibility"] = v
	}
	if len(columns) == 0 {
		return nil, errno.ValidationErr.WithMessage("Nothing to update")
	}
	return columns, nil
}

func parseVisibility(raw string) (model.Visibility, error) {
	v := model.Visibility(strings.ToUpper(strings.TrimSpace(raw)))
	if !v.Valid() {
		return "", errno.ValidationErr.WithMessage("Status must be PUBLIC or PRIVATE")
	}
	return v, nil
}

// Create 未指定可见性时默认私有
func (s *PlaylistService) Create(ownerID int64, name, description, visibility string) (*model.Playlist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errno.ValidationErr.WithMessage("Playlist name is required")
	}
	if len(name) > constants.MaxTitleLength {
		return nil, errno.ValidationErr.WithMessage("Playlist name is too long")
	}
	v := model.VisibilityPrivate
	if visibility != "" {
		var err error
		if v, err = parseVisibility(visibility); err != nil {
			return nil, err
		}
	}
	playlist := &model.Playlist{Name: name, Description: strings.TrimSpace(description), OwnerID: ownerID, Visibility: v}
	if err := db.CreatePlaylist(s.ctx, playlist); err != nil {
		return nil, err
	}
	return playlist, nil
}

// ListByOwner 自己查看时包含私有列表
func (s *PlaylistService) ListByOwner(ownerID, viewerID int64, params pagination.Params) (*pipeline.Page[db.PlaylistView], error) {
	return db.ListPlaylists(s.ctx, ownerID, viewerID, params)
}

func (s *PlaylistService) Get(playlistID, viewerID int64) (*db.PlaylistDetail, error) {
	return db.GetPlaylistDetail(s.ctx, playlistID, viewerID)
}

func (s *PlaylistService) Update(playlistID, ownerID int64, patch PlaylistPatch) (*model.Playlist, error) {
	columns, err := patch.Columns()
	if err != nil {
		return nil, err
	}
	return db.UpdatePlaylist(s.ctx, playlistID, ownerID, columns)
}

func (s *PlaylistService) Delete(playlistID, ownerID int64) (*model.Playlist, error) {
	playlist, err := db.DeletePlaylist(s.ctx, playlistID, ownerID)
	if err != nil {
		return nil, err
	}
	ownership.Cascade(s.ctx, "playlist "+strconv.FormatInt(playlistID, 10),
		ownership.Step{Name: "playlist_entries", Run: func(ctx context.Context) error {
			return db.DeletePlaylistEntries(ctx, playlistID)
		}},
	)
	return playlist, nil
}

// AddVideo 视频须存在且对 owner 可见；重复添加不产生第二条引用
func (s *PlaylistService) AddVideo(playlistID, ownerID, videoID int64) (*model.Playlist, error) {
	video, err := db.GetVideo(s.ctx, videoID)
	if err != nil {
		return nil, err
	}
	if !video.IsPublished && video.OwnerID != ownerID {
		return nil, errno.NotFoundErr.WithMessage("Video not found")
	}
	playlist, _, err := db.AddPlaylistVideo(s.ctx, playlistID, ownerID, videoID)
	return playlist, err
}

func (s *PlaylistService) RemoveVideo(playlistID, ownerID, videoID int64) (*model.Playlist, error) {
	return db.RemovePlaylistVideo(s.ctx, playlistID, ownerID, videoID)
}
