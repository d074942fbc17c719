package model

import (
	"time"

	"xTube.com/pkg/constants"
)

type User struct {
	Base
	Username   string `gorm:"size:64;uniqueIndex:idx_user_username" json:"username"`
	Email      string `gorm:"size:128;uniqueIndex:idx_user_email" json:"email"`
	FullName   string `gorm:"size:128;index" json:"fullName"`
	Password   string `gorm:"size:128" json:"-"`
	Avatar     Asset  `gorm:"embedded;embeddedPrefix:avatar_" json:"avatar"`
	CoverImage Asset  `gorm:"embedded;embeddedPrefix:cover_image_" json:"coverImage"`
}

func (User) TableName() string {
	return constants.UserTableName
}

// WatchHistory 观看历史，同一视频只保留最近一次
type WatchHistory struct {
	Base
	UserID    int64     `gorm:"uniqueIndex:idx_watch_user_video,priority:1" json:"user,string"`
	VideoID   int64     `gorm:"uniqueIndex:idx_watch_user_video,priority:2;index" json:"video,string"`
	WatchedAt time.Time `gorm:"index" json:"watchedAt"`
}

func (WatchHistory) TableName() string {
	return constants.WatchHistoryTableName
}
