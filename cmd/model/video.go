package model

import "xTube.com/pkg/constants"

type Video struct {
	Base
	OwnerID     int64   `gorm:"index" json:"owner,string"`
	VideoFile   Asset   `gorm:"embedded;embeddedPrefix:video_file_" json:"videoFile"`
	Thumbnail   Asset   `gorm:"embedded;embeddedPrefix:thumbnail_" json:"thumbnail"`
	Title       string  `gorm:"size:255;index" json:"title"`
	Description string  `gorm:"type:text" json:"description"`
	Duration    float64 `json:"duration"`
	Views       int64   `gorm:"not null" json:"views"`
	IsPublished bool    `gorm:"index" json:"isPublished"`
}

func (Video) TableName() string {
	return constants.VideoTableName
}

type Visibility string

const (
	VisibilityPublic  Visibility = "PUBLIC"
	VisibilityPrivate Visibility = "PRIVATE"
)

func (v Visibility) Valid() bool {
	return v == VisibilityPublic || v == VisibilityPrivate
}

// 播放列表
type Playlist struct {
	Base
	Name        string     `gorm:"size:255" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	OwnerID     int64      `gorm:"index" json:"owner,string"`
	Visibility  Visibility `gorm:"size:16;index" json:"status"`
}

func (Playlist) TableName() string {
	return constants.PlaylistTableName
}

// 播放列表中的视频，唯一索引保证同一视频只出现一次，按主键递增排序
type PlaylistVideo struct {
	Base
	PlaylistID int64 `gorm:"uniqueIndex:idx_playlist_video,priority:1" json:"playlist,string"`
	VideoID    int64 `gorm:"uniqueIndex:idx_playlist_video,priority:2;index" json:"video,string"`
}

func (PlaylistVideo) TableName() string {
	return constants.PlaylistVideoTableName
}
