package constants

const (
	UserTableName          = "users"
	VideoTableName         = "videos"
	CommentTableName       = "comments"
	TweetTableName         = "tweets"
	LikeTableName          = "likes"
	SubscriptionTableName  = "subscriptions"
	PlaylistTableName      = "playlists"
	PlaylistVideoTableName = "playlist_videos"
	WatchHistoryTableName  = "watch_histories"
)

// 分页
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// 鉴权
const (
	IdentityKey     = "identity"
	UsernameClaim   = "username"
	LoginUserKey    = "login_user"
	AccessTokenName = "accessToken"
	TokenHeadName   = "Bearer"
)

// 对象存储目录
const (
	AvatarFolder    = "avatars"
	CoverFolder     = "covers"
	VideoFolder     = "videos"
	ThumbnailFolder = "thumbnails"
)

const (
	MaxTitleLength   = 255
	MaxContentLength = 5000
	MinPasswordLen   = 6
)
