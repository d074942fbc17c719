package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"xTube.com/cmd/dal"
	interactionservice "xTube.com/cmd/interaction/service"
	"xTube.com/cmd/model"
	"xTube.com/cmd/video/dal/db"
	"xTube.com/pkg/constants"
	"xTube.com/pkg/database/dbtest"
	"xTube.com/pkg/errno"
	"xTube.com/pkg/mq"
	"xTube.com/pkg/oss/osstest"
	"xTube.com/pkg/pagination"
)

type fixture struct {
	ctx   context.Context
	db    *gorm.DB
	store *osstest.Store
	dir   string
}

func setup(t *testing.T) *fixture {
	t.Helper()
	gdb := dbtest.Open(t)
	dal.Init(gdb)
	return &fixture{ctx: context.Background(), db: gdb, store: osstest.New(), dir: t.TempDir()}
}

func (f *fixture) user(t *testing.T, name string) *model.User {
	u := &model.User{Username: name, Email: name + "@example.com", FullName: "Full " + name}
	require.NoError(t, f.db.Create(u).Error)
	return u
}

func (f *fixture) videos() *VideoService {
	return NewVideoService(f.ctx, f.store, func(string) (float64, error) { return 12.5, nil })
}

func (f *fixture) publish(t *testing.T, owner int64, title string) *model.Video {
	v, err := f.videos().Publish(owner, &PublishParam{
		Title:         title,
		Description:   "about " + title,
		VideoPath:     filepath.Join(f.dir, "clip.mp4"),
		ThumbnailPath: filepath.Join(f.dir, "thumb.png"),
	})
	require.NoError(t, err)
	return v
}

func TestPublishAndWatchScenario(t *testing.T) {
	f := setup(t)
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")

	v := f.publish(t, alice.ID, "launch")
	assert.True(t, v.IsPublished)
	assert.Equal(t, 12.5, v.Duration)
	assert.True(t, f.store.Has(v.VideoFile.StorageID))
	assert.True(t, f.store.Has(v.Thumbnail.StorageID))

	svc := f.videos()
	first, err := svc.GetVideo(v.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.Views)
	second, err := svc.GetVideo(v.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.Views)
	assert.Equal(t, "alice", second.Owner.Username)

	likes := interactionservice.NewLikeService(f.ctx, &mq.Recorder{})
	target := model.ReactionTarget{Kind: model.KindVideo, ID: v.ID}
	active, err := likes.Toggle(bob.ID, target, model.ActionLiked)
	require.NoError(t, err)
	assert.True(t, active)

	detail, err := svc.GetVideo(v.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), detail.LikesCount)
	assert.True(t, detail.IsLiked)

	stats, err := NewDashboardService(f.ctx).Stats(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalLikes)
	assert.Equal(t, int64(3), stats.TotalViews)
	assert.Equal(t, int64(1), stats.TotalVideos)

	active, err = likes.Toggle(bob.ID, target, model.ActionLiked)
	require.NoError(t, err)
	assert.False(t, active)

	stats, err = NewDashboardService(f.ctx).Stats(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.TotalLikes)

	var history []model.WatchHistory
	require.NoError(t, f.db.Where("user_id = ?", bob.ID).Find(&history).Error)
	assert.Len(t, history, 1)
}

func TestGetVideoUnpublished(t *testing.T) {
	f := setup(t)
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	v := f.publish(t, alice.ID, "draft")

	svc := f.videos()
	_, err := svc.TogglePublish(v.ID, alice.ID, false)
	require.NoError(t, err)

	_, err = svc.GetVideo(v.ID, bob.ID)
	assert.True(t, errors.Is(err, errno.NotFoundErr))

	own, err := svc.GetVideo(v.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), own.Views)

	_, err = svc.TogglePublish(v.ID, bob.ID, true)
	assert.True(t, errors.Is(err, errno.NotFoundErr))
}

func TestPublishRollsBackUploads(t *testing.T) {
	f := setup(t)
	alice := f.user(t, "alice")
	f.store.FailOn[constants.ThumbnailFolder] = true

	_, err := f.videos().Publish(alice.ID, &PublishParam{
		Title: "t", Description: "d", VideoPath: "a.mp4", ThumbnailPath: "b.png",
	})
	require.Error(t, err)
	assert.Equal(t, errno.UpstreamErrCode, int(errno.ConvertErr(err).ErrCode))
	assert.Zero(t, f.store.Len())

	var count int64
	require.NoError(t, f.db.Model(&model.Video{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestPublishValidation(t *testing.T) {
	f := setup(t)
	svc := f.videos()
	tests := []struct {
		name string
		req  PublishParam
	}{
		{"missing title", PublishParam{Description: "d", VideoPath: "a.mp4", ThumbnailPath: "b.png"}},
		{"missing description", PublishParam{Title: "t", VideoPath: "a.mp4", ThumbnailPath: "b.png"}},
		{"missing file", PublishParam{Title: "t", Description: "d", ThumbnailPath: "b.png"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := svc.Publish(1, &req)
			assert.True(t, errors.Is(err, errno.ValidationErr))
		})
	}
	assert.Zero(t, f.store.Len())
}

func TestDeleteVideoCascades(t *testing.T) {
	f := setup(t)
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	v := f.publish(t, alice.ID, "doomed")
	keep := f.publish(t, alice.ID, "keeper")

	comments := interactionservice.NewCommentService(f.ctx, nil)
	c, err := comments.Create(v.ID, bob.ID, "nice")
	require.NoError(t, err)
	_, err = comments.Create(keep.ID, bob.ID, "also nice")
	require.NoError(t, err)

	likes := interactionservice.NewLikeService(f.ctx, nil)
	for _, target := range []model.ReactionTarget{
		{Kind: model.KindVideo, ID: v.ID},
		{Kind: model.KindComment, ID: c.ID},
		{Kind: model.KindVideo, ID: keep.ID},
	} {
		_, err = likes.Toggle(bob.ID, target, model.ActionLiked)
		require.NoError(t, err)
	}
	_, err = likes.Toggle(bob.ID, model.ReactionTarget{Kind: model.KindVideo, ID: v.ID}, model.ActionDisliked)
	require.NoError(t, err)

	pl, err := NewPlaylistService(f.ctx).Create(bob.ID, "mix", "", "PUBLIC")
	require.NoError(t, err)
	_, err = NewPlaylistService(f.ctx).AddVideo(pl.ID, bob.ID, v.ID)
	require.NoError(t, err)
	_, err = f.videos().GetVideo(v.ID, bob.ID)
	require.NoError(t, err)

	svc := f.videos()
	_, err = svc.Delete(v.ID, bob.ID)
	assert.True(t, errors.Is(err, errno.NotFoundErr))

	deleted, err := svc.Delete(v.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, v.ID, deleted.ID)

	count := func(m interface{}, query string, args ...interface{}) int64 {
		var n int64
		require.NoError(t, f.db.Model(m).Where(query, args...).Count(&n).Error)
		return n
	}
	assert.Zero(t, count(&model.Video{}, "id = ?", v.ID))
	assert.Zero(t, count(&model.Like{}, "target_kind = ? AND target_id = ?", model.KindVideo, v.ID))
	assert.Zero(t, count(&model.Like{}, "target_kind = ? AND target_id = ?", model.KindComment, c.ID))
	assert.Zero(t, count(&model.Comment{}, "video_id = ?", v.ID))
	assert.Zero(t, count(&model.PlaylistVideo{}, "video_id = ?", v.ID))
	assert.Zero(t, count(&model.WatchHistory{}, "video_id = ?", v.ID))
	assert.False(t, f.store.Has(v.VideoFile.StorageID))
	assert.False(t, f.store.Has(v.Thumbnail.StorageID))

	assert.Equal(t, int64(1), count(&model.Like{}, "target_id = ?", keep.ID))
	assert.Equal(t, int64(1), count(&model.Comment{}, "video_id = ?", keep.ID))
	assert.True(t, f.store.Has(keep.VideoFile.StorageID))
}

func TestDeleteVideoCascadeFailureIsSwallowed(t *testing.T) {
	f := setup(t)
	alice := f.user(t, "alice")
	v := f.publish(t, alice.ID, "sticky")
	f.store.FailDrop = true

	_, err := f.videos().Delete(v.ID, alice.ID)
	require.NoError(t, err)
	_, err = db.GetVideo(f.ctx, v.ID)
	assert.True(t, errors.Is(err, errno.NotFoundErr))
}

func TestUpdateVideo(t *testing.T) {
	f := setup(t)
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	v := f.publish(t, alice.ID, "before")
	svc := f.videos()

	_, err := svc.Update(v.ID, alice.ID, VideoPatch{})
	assert.True(t, errors.Is(err, errno.ValidationErr))

	objects := f.store.Len()
	title := "hijack"
	_, err = svc.Update(v.ID, bob.ID, VideoPatch{Title: &title, ThumbnailPath: "new.png"})
	assert.True(t, errors.Is(err, errno.NotFoundErr))
	assert.Equal(t, objects, f.store.Len())

	title = "after"
	updated, err := svc.Update(v.ID, alice.ID, VideoPatch{Title: &title, ThumbnailPath: "new.png"})
	require.NoError(t, err)
	assert.Equal(t, "after", updated.Title)
	assert.Equal(t, "about before", updated.Description)
	assert.NotEqual(t, v.Thumbnail.StorageID, updated.Thumbnail.StorageID)
	assert.True(t, f.store.Has(updated.Thumbnail.StorageID))
	assert.False(t, f.store.Has(v.Thumbnail.StorageID))
}

func TestFeed(t *testing.T) {
	f := setup(t)
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	cooking := f.publish(t, alice.ID, "Cooking Pasta")
	f.publish(t, alice.ID, "Garden tour")
	hidden := f.publish(t, bob.ID, "Secret cooking")
	svc := f.videos()
	_, err := svc.TogglePublish(hidden.ID, bob.ID, false)
	require.NoError(t, err)

	page, err := svc.Feed(db.FeedQuery{Query: "COOKING"}, pagination.New(1, 10))
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, cooking.ID, page.Items[0].ID)

	page, err = svc.Feed(db.FeedQuery{Query: "bob"}, pagination.New(1, 10))
	require.NoError(t, err)
	assert.Empty(t, page.Items)

	page, err = svc.Feed(db.FeedQuery{OwnerID: alice.ID, SortBy: "createdAt", SortType: "asc"}, pagination.New(1, 10))
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, cooking.ID, page.Items[0].ID)

	_, err = svc.GetVideo(cooking.ID, 0)
	require.NoError(t, err)
	page, err = svc.Feed(db.FeedQuery{SortBy: "views"}, pagination.New(1, 1))
	require.NoError(t, err)
	assert.Equal(t, cooking.ID, page.Items[0].ID)
	assert.Equal(t, int64(2), page.TotalPages)

	own, err := NewDashboardService(f.ctx).Videos(bob.ID, pagination.New(1, 10))
	require.NoError(t, err)
	require.Len(t, own.Items, 1)
	assert.False(t, own.Items[0].IsPublished)
}

func TestSortKeys(t *testing.T) {
	assert.Equal(t, []string{"videos.created_at DESC", "videos.id DESC"}, db.SortKeys("", ""))
	assert.Equal(t, []string{"likes_count ASC", "videos.id ASC"}, db.SortKeys("likes", "ASC"))
	assert.Equal(t, []string{"videos.created_at DESC", "videos.id DESC"}, db.SortKeys("views; DROP", "desc"))
}
