package model

// All 需要自动迁移的模型
func All() []interface{} {
	return []interface{}{
		&User{},
		&WatchHistory{},
		&Video{},
		&Playlist{},
		&PlaylistVideo{},
		&Comment{},
		&Tweet{},
		&Like{},
		&Subscription{},
	}
}
