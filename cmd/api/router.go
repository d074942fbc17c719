package main

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	hjwt "github.com/hertz-contrib/jwt"

	dashboard "xTube.com/cmd/api/handlers/dashboard"
	interaction "xTube.com/cmd/api/handlers/interaction"
	"xTube.com/cmd/api/handlers/pack"
	playlist "xTube.com/cmd/api/handlers/playlist"
	relation "xTube.com/cmd/api/handlers/relation"
	user "xTube.com/cmd/api/handlers/user"
	video "xTube.com/cmd/api/handlers/video"
	"xTube.com/cmd/api/router/authfunc"
	"xTube.com/pkg/security"
)

// routes 注册路由所需的中间件依赖
type routes struct {
	jwt         *hjwt.HertzJWTMiddleware
	authLimiter security.RateLimiter
}

func (rt routes) auth(h app.HandlerFunc) []app.HandlerFunc {
	return append(authfunc.Auth(rt.jwt), h)
}

func (rt routes) optional(h app.HandlerFunc) []app.HandlerFunc {
	return append(authfunc.OptionalAuth(rt.jwt), h)
}

// register registers all routers.
func register(r *server.Hertz, rt routes) {
	r.GET("/healthcheck", func(ctx context.Context, c *app.RequestContext) {
		pack.SendResponse(c, consts.StatusOK, map[string]string{"status": "ok"}, "OK")
	})

	v1 := r.Group("/api/v1")

	users := v1.Group("/users")
	{
		authLimit := authfunc.RateLimit(rt.authLimiter, "auth")
		users.POST("/register", authLimit, user.Register)
		users.POST("/login", authLimit, rt.jwt.LoginHandler)
		users.POST("/refresh-token", rt.jwt.RefreshHandler)
		users.POST("/logout", append(authfunc.Auth(rt.jwt), rt.jwt.LogoutHandler)...)
		users.POST("/change-password", rt.auth(user.ChangePassword)...)
		users.GET("/current-user", rt.auth(user.CurrentUser)...)
		users.PATCH("/update-account", rt.auth(user.UpdateAccount)...)
		users.PATCH("/avatar", rt.auth(user.UpdateAvatar)...)
		users.PATCH("/cover-image", rt.auth(user.UpdateCoverImage)...)
		users.GET("/c/:username", rt.optional(user.ChannelProfile)...)
		users.GET("/history", rt.auth(user.WatchHistory)...)
	}

	videos := v1.Group("/videos")
	{
		videos.GET("", video.Feed)
		videos.POST("", rt.auth(video.Publish)...)
		videos.GET("/:videoId", rt.optional(video.GetVideo)...)
		videos.PATCH("/:videoId", rt.auth(video.Update)...)
		videos.DELETE("/:videoId", rt.auth(video.Delete)...)
		videos.PATCH("/toggle/publish/:videoId", rt.auth(video.TogglePublish)...)
	}

	comments := v1.Group("/comments")
	{
		comments.GET("/:videoId", rt.optional(interaction.ListComments)...)
		comments.POST("/:videoId", rt.auth(interaction.CreateComment)...)
		comments.PATCH("/c/:commentId", rt.auth(interaction.UpdateComment)...)
		comments.DELETE("/c/:commentId", rt.auth(interaction.DeleteComment)...)
	}

	likes := v1.Group("/likes", authfunc.Auth(rt.jwt)...)
	{
		likes.POST("/toggle/v/:videoId", interaction.ToggleVideoLike)
		likes.POST("/toggle/c/:commentId", interaction.ToggleCommentLike)
		likes.POST("/toggle/t/:tweetId", interaction.ToggleTweetLike)
		likes.GET("/videos", interaction.LikedVideos)
	}

	dislikes := v1.Group("/dislikes", authfunc.Auth(rt.jwt)...)
	{
		dislikes.POST("/toggle/v/:videoId", interaction.ToggleVideoDislike)
		dislikes.POST("/toggle/c/:commentId", interaction.ToggleCommentDislike)
		dislikes.POST("/toggle/t/:tweetId", interaction.ToggleTweetDislike)
	}

	tweets := v1.Group("/tweets")
	{
		tweets.POST("", rt.auth(interaction.CreateTweet)...)
		tweets.GET("/user/:userId", rt.optional(interaction.UserTweets)...)
		tweets.PATCH("/:tweetId", rt.auth(interaction.UpdateTweet)...)
		tweets.DELETE("/:tweetId", rt.auth(interaction.DeleteTweet)...)
	}

	subscriptions := v1.Group("/subscriptions", authfunc.Auth(rt.jwt)...)
	{
		subscriptions.POST("/c/:channelId", relation.ToggleSubscription)
		subscriptions.GET("/subscribers", relation.Subscribers)
		subscriptions.GET("/subscribed", relation.SubscribedChannels)
	}

	playlists := v1.Group("/playlist")
	{
		playlists.POST("", rt.auth(playlist.Create)...)
		playlists.GET("/user", rt.auth(playlist.ListMine)...)
		playlists.GET("/user/:userId", rt.optional(playlist.ListByUser)...)
		playlists.GET("/:playlistId", rt.optional(playlist.Get)...)
		playlists.PATCH("/:playlistId", rt.auth(playlist.Update)...)
		playlists.DELETE("/:playlistId", rt.auth(playlist.Delete)...)
		playlists.PATCH("/add/:videoId/:playlistId", rt.auth(playlist.AddVideo)...)
		playlists.PATCH("/remove/:videoId/:playlistId", rt.auth(playlist.RemoveVideo)...)
	}

	board := v1.Group("/dashboard", authfunc.Auth(rt.jwt)...)
	{
		board.GET("/stats", dashboard.Stats)
		board.GET("/videos", dashboard.Videos)
	}
}
