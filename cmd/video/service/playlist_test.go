package service

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xTube.com/cmd/model"
	"xTube.com/pkg/errno"
	"xTube.com/pkg/pagination"
)

func (f *fixture) playlistEntries(t *testing.T, playlistID, videoID int64) int64 {
	var n int64
	require.NoError(t, f.db.Model(&model.PlaylistVideo{}).
		Where("playlist_id = ? AND video_id = ?", playlistID, videoID).Count(&n).Error)
	return n
}

func TestPlaylistAddVideoDeduplicates(t *testing.T) {
	f := setup(t)
	alice := f.user(t, "alice")
	v := f.publish(t, alice.ID, "song")
	svc := NewPlaylistService(f.ctx)

	pl, err := svc.Create(alice.ID, "favourites", "best ones", "")
	require.NoError(t, err)
	assert.Equal(t, model.VisibilityPrivate, pl.Visibility)

	for i := 0; i < 2; i++ {
		_, err = svc.AddVideo(pl.ID, alice.ID, v.ID)
		require.NoError(t, err)
	}
	assert.Equal(t, int64(1), f.playlistEntries(t, pl.ID, v.ID))

	detail, err := svc.Get(pl.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), detail.TotalVideos)
	require.Len(t, detail.Videos, 1)
	assert.Equal(t, v.ID, detail.Videos[0].ID)
}

func TestPlaylistOrderAndRemove(t *testing.T) {
	f := setup(t)
	alice := f.user(t, "alice")
	first := f.publish(t, alice.ID, "first")
	second := f.publish(t, alice.ID, "second")
	svc := NewPlaylistService(f.ctx)
	pl, err := svc.Create(alice.ID, "queue", "", "public")
	require.NoError(t, err)

	_, err = svc.AddVideo(pl.ID, alice.ID, second.ID)
	require.NoError(t, err)
	_, err = svc.AddVideo(pl.ID, alice.ID, first.ID)
	require.NoError(t, err)

	detail, err := svc.Get(pl.ID, 0)
	require.NoError(t, err)
	require.Len(t, detail.Videos, 2)
	assert.Equal(t, second.ID, detail.Videos[0].ID)
	assert.Equal(t, first.ID, detail.Videos[1].ID)

	_, err = svc.RemoveVideo(pl.ID, alice.ID, second.ID)
	require.NoError(t, err)
	_, err = svc.RemoveVideo(pl.ID, alice.ID, second.ID)
	assert.True(t, errors.Is(err, errno.NotFoundErr))

	detail, err = svc.Get(pl.ID, 0)
	require.NoError(t, err)
	require.Len(t, detail.Videos, 1)
	assert.Equal(t, first.ID, detail.Videos[0].ID)
}

func TestPlaylistVisibilityAndOwnership(t *testing.T) {
	f := setup(t)
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	v := f.publish(t, alice.ID, "clip")
	svc := NewPlaylistService(f.ctx)

	private, err := svc.Create(alice.ID, "private", "", "PRIVATE")
	require.NoError(t, err)
	_, err = svc.Create(alice.ID, "public", "", "PUBLIC")
	require.NoError(t, err)

	_, err = svc.Get(private.ID, bob.ID)
	assert.True(t, errors.Is(err, errno.NotFoundErr))
	_, err = svc.Get(private.ID, alice.ID)
	require.NoError(t, err)

	mine, err := svc.ListByOwner(alice.ID, alice.ID, pagination.New(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(2), mine.TotalItems)
	theirs, err := svc.ListByOwner(alice.ID, bob.ID, pagination.New(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(1), theirs.TotalItems)
	assert.Equal(t, "public", theirs.Items[0].Name)

	_, err = svc.AddVideo(private.ID, bob.ID, v.ID)
	assert.True(t, errors.Is(err, errno.NotFoundErr))

	name := "renamed"
	_, err = svc.Update(private.ID, bob.ID, PlaylistPatch{Name: &name})
	assert.True(t, errors.Is(err, errno.NotFoundErr))
	bad := "friends"
	_, err = svc.Update(private.ID, alice.ID, PlaylistPatch{Visibility: &bad})
	assert.True(t, errors.Is(err, errno.ValidationErr))
	updated, err := svc.Update(private.ID, alice.ID, PlaylistPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Name)

	_, err = svc.AddVideo(private.ID, alice.ID, v.ID)
	require.NoError(t, err)
	_, err = svc.Delete(private.ID, bob.ID)
	assert.True(t, errors.Is(err, errno.NotFoundErr))
	_, err = svc.Delete(private.ID, alice.ID)
	require.NoError(t, err)
	assert.Zero(t, f.playlistEntries(t, private.ID, v.ID))
}

func TestPlaylistTotalsMatchVisibleVideos(t *testing.T) {
	f := setup(t)
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	shown := f.publish(t, alice.ID, "shown")
	draft := f.publish(t, alice.ID, "draft")
	require.NoError(t, f.db.Model(&model.Video{}).Where("id = ?", shown.ID).Update("views", 5).Error)
	require.NoError(t, f.db.Model(&model.Video{}).Where("id = ?", draft.ID).Update("views", 7).Error)
	svc := NewPlaylistService(f.ctx)

	pl, err := svc.Create(alice.ID, "mix", "", "PUBLIC")
	require.NoError(t, err)
	for _, v := range []*model.Video{shown, draft} {
		_, err = svc.AddVideo(pl.ID, alice.ID, v.ID)
		require.NoError(t, err)
	}
	_, err = f.videos().TogglePublish(draft.ID, alice.ID, false)
	require.NoError(t, err)

	own, err := svc.Get(pl.ID, alice.ID)
	require.NoError(t, err)
	assert.Len(t, own.Videos, 2)
	assert.Equal(t, int64(2), own.TotalVideos)
	assert.Equal(t, int64(12), own.TotalViews)

	other, err := svc.Get(pl.ID, bob.ID)
	require.NoError(t, err)
	require.Len(t, other.Videos, 1)
	assert.Equal(t, shown.ID, other.Videos[0].ID)
	assert.Equal(t, int64(1), other.TotalVideos)
	assert.Equal(t, int64(5), other.TotalViews)

	listed, err := svc.ListByOwner(alice.ID, bob.ID, pagination.New(1, 10))
	require.NoError(t, err)
	require.Len(t, listed.Items, 1)
	assert.Equal(t, int64(1), listed.Items[0].TotalVideos)
	assert.Equal(t, int64(5), listed.Items[0].TotalViews)
}
