package db

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"xTube.com/cmd/model"
	"xTube.com/pkg/constants"
	"xTube.com/pkg/errno"
	"xTube.com/pkg/ownership"
	"xTube.com/pkg/pagination"
	"xTube.com/pkg/pipeline"
)

const playlists = constants.PlaylistTableName

func CreatePlaylist(ctx context.Context, playlist *model.Playlist) error {
	if err := DB.WithContext(ctx).Create(playlist).Error; err != nil {
		return errors.Wrapf(err, "CreatePlaylist failed, owner: %d", playlist.OwnerID)
	}
	return nil
}

// PlaylistView 播放列表概要
type PlaylistView struct {
	ID          int64            `json:"id,string"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Visibility  model.Visibility `json:"status"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
	Owner       model.UserCard   `gorm:"embedded;embeddedPrefix:owner_" json:"owner"`
	TotalVideos int64            `json:"totalVideos"`
	TotalViews  int64            `json:"totalViews"`
}

// PlaylistDetail 播放列表及其中的视频，按加入顺序
type PlaylistDetail struct {
	PlaylistView
	Videos []model.VideoCard `gorm:"-" json:"videos"`
}

// playlistViews 合计只统计 viewer 能看到的视频：已发布的或 viewer 自己的
func playlistViews(viewerID int64) *pipeline.Pipeline {
	visible := "FROM " + constants.PlaylistVideoTableName + " AS pvx INNER JOIN " + constants.VideoTableName +
		" AS pvv ON pvv.id = pvx.video_id WHERE pvx.playlist_id = " + playlists + ".id AND (pvv.is_published = ? OR pvv.owner_id = ?)"
	return pipeline.New(playlists, "id", "name", "description", "visibility", "created_at", "updated_at").
		Join(pipeline.OwnerJoin(playlists)).
		Derive(
			pipeline.Field{Expr: "(SELECT COUNT(*) " + visible + ")", As: "total_videos", Args: []interface{}{true, viewerID}},
			pipeline.Field{Expr: "(SELECT COALESCE(SUM(pvv.views), 0) " + visible + ")", As: "total_views", Args: []interface{}{true, viewerID}},
		)
}

// ListPlaylists 用户的播放列表，viewer 不是 owner 时只返回公开的
func ListPlaylists(ctx context.Context, ownerID, viewerID int64, params pagination.Params) (*pipeline.Page[PlaylistView], error) {
	p := playlistViews(viewerID).Where(playlists+".owner_id = ?", ownerID)
	if ownerID != viewerID {
		p.Where(playlists+".visibility = ?", model.VisibilityPublic)
	}
	p.OrderBy(pipeline.Newest(playlists)...)
	return pipeline.Paginate[PlaylistView](ctx, DB, p, params)
}

// GetPlaylistDetail 私有列表只对 owner 可见，其他人得到 NotFound
func GetPlaylistDetail(ctx context.Context, playlistID, viewerID int64) (*PlaylistDetail, error) {
	p := playlistViews(viewerID).
		Where(playlists+".id = ?", playlistID).
		Where("("+playlists+".visibility = ? OR "+playlists+".owner_id = ?)", model.VisibilityPublic, viewerID)
	var detail PlaylistDetail
	if err := p.One(ctx, DB, &detail.PlaylistView); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errno.NotFoundErr.WithMessage("Playlist not found")
		}
		return nil, err
	}

	vp := pipeline.VideoCards().
		Join(pipeline.Join{Table: constants.PlaylistVideoTableName, As: "pv", On: "pv.video_id = " + videos + ".id", Inner: true}).
		Where("pv.playlist_id = ?", playlistID).
		Where("("+videos+".is_published = ? OR "+videos+".owner_id = ?)", true, viewerID).
		OrderBy("pv.id ASC")
	detail.Videos = make([]model.VideoCard, 0)
	if err := vp.All(ctx, DB, &detail.Videos); err != nil {
		return nil, err
	}
	return &detail, nil
}

// UpdatePlaylist 仅 owner 可更新
func UpdatePlaylist(ctx context.Context, playlistID, ownerID int64, columns map[string]interface{}) (*model.Playlist, error) {
	var playlist model.Playlist
	if err := ownership.Update(ctx, DB, &playlist, playlistID, ownerID, columns); err != nil {
		return nil, err
	}
	return &playlist, nil
}

// DeletePlaylist 仅 owner 可删除
func DeletePlaylist(ctx context.Context, playlistID, ownerID int64) (*model.Playlist, error) {
	var playlist model.Playlist
	if err := ownership.Delete(ctx, DB, &playlist, playlistID, ownerID); err != nil {
		return nil, err
	}
	return &playlist, nil
}

// AddPlaylistVideo 已在列表中时不重复添加，返回是否新加入
func AddPlaylistVideo(ctx context.Context, playlistID, ownerID, videoID int64) (*model.Playlist, bool, error) {
	var (
		playlist model.Playlist
		added    bool
	)
	err := ownership.Mutate(ctx, DB, &playlist, playlistID, ownerID, func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&model.PlaylistVideo{PlaylistID: playlistID, VideoID: videoID})
		if res.Error != nil {
			return errors.Wrapf(res.Error, "add video %d to playlist %d", videoID, playlistID)
		}
		added = res.RowsAffected > 0
		return tx.Model(&playlist).UpdateColumn("updated_at", time.Now()).Error
	})
	if err != nil {
		return nil, false, err
	}
	return &playlist, added, nil
}

// RemovePlaylistVideo 视频不在列表中返回 NotFound
func RemovePlaylistVideo(ctx context.Context, playlistID, ownerID, videoID int64) (*model.Playlist, error) {
	var playlist model.Playlist
	err := ownership.Mutate(ctx, DB, &playlist, playlistID, ownerID, func(tx *gorm.DB) error {
		res := tx.Where("playlist_id = ? AND video_id = ?", playlistID, videoID).Delete(&model.PlaylistVideo{})
		if res.Error != nil {
			return errors.Wrapf(res.Error, "remove video %d from playlist %d", videoID, playlistID)
		}
		if res.RowsAffected == 0 {
			return errno.NotFoundErr.WithMessage("Video not found in playlist")
		}
		return tx.Model(&playlist).UpdateColumn("updated_at", time.Now()).Error
	})
	if err != nil {
		return nil, err
	}
	return &playlist, nil
}

// DeletePlaylistEntries 删除播放列表的全部条目
func DeletePlaylistEntries(ctx context.Context, playlistID int64) error {
	return errors.WithMessage(
		DB.WithContext(ctx).Where("playlist_id = ?", playlistID).Delete(&model.PlaylistVideo{}).Error,
		"delete playlist entries")
}

// DeleteVideoFromPlaylists 视频删除后从所有播放列表移除
func DeleteVideoFromPlaylists(ctx context.Context, videoID int64) error {
	return errors.WithMessage(
		DB.WithContext(ctx).Where("video_id = ?", videoID).Delete(&model.PlaylistVideo{}).Error,
		"delete video from playlists")
}
