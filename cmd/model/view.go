package model

import "time"

// UserCard 连接查询中附带的用户展示信息
type UserCard struct {
	ID       int64  `json:"id,string"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Avatar   string `gorm:"column:avatar_url" json:"avatar"`
}

// VideoCard 列表中的视频，附带 owner 与点赞数
type VideoCard struct {
	ID          int64     `json:"id,string"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	VideoFile   Asset     `gorm:"embedded;embeddedPrefix:video_file_" json:"videoFile"`
	Thumbnail   Asset     `gorm:"embedded;embeddedPrefix:thumbnail_" json:"thumbnail"`
	Duration    float64   `json:"duration"`
	Views       int64     `json:"views"`
	IsPublished bool      `json:"isPublished"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Owner       UserCard  `gorm:"embedded;embeddedPrefix:owner_" json:"owner"`
	LikesCount  int64     `json:"likesCount"`
}

// VideoCardColumns VideoCard 在 videos 表上的投影
var VideoCardColumns = []string{
	"id", "title", "description",
	"video_file_url", "video_file_storage_id",
	"thumbnail_url", "thumbnail_storage_id",
	"duration", "views", "is_published", "created_at", "updated_at",
}
