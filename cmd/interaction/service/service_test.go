package service

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"xTube.com/cmd/dal"
	"xTube.com/cmd/model"
	"xTube.com/pkg/database/dbtest"
	"xTube.com/pkg/errno"
	"xTube.com/pkg/mq"
	"xTube.com/pkg/pagination"
)

type fixture struct {
	ctx context.Context
	db  *gorm.DB
}

func setup(t *testing.T) *fixture {
	t.Helper()
	gdb := dbtest.Open(t)
	dal.Init(gdb)
	return &fixture{ctx: context.Background(), db: gdb}
}

func (f *fixture) user(t *testing.T, name string) *model.User {
	u := &model.User{Username: name, Email: name + "@example.com", FullName: "Full " + name}
	require.NoError(t, f.db.Create(u).Error)
	return u
}

func (f *fixture) video(t *testing.T, owner int64, published bool) *model.Video {
	v := &model.Video{OwnerID: owner, Title: "v", Description: "d", IsPublished: published}
	require.NoError(t, f.db.Create(v).Error)
	return v
}

func (f *fixture) reactions(t *testing.T, target model.ReactionTarget, action model.ReactionAction) int64 {
	var n int64
	require.NoError(t, f.db.Model(&model.Like{}).
		Where("target_kind = ? AND target_id = ? AND action = ?", target.Kind, target.ID, action).Count(&n).Error)
	return n
}

func TestLikeToggleParity(t *testing.T) {
	f := setup(t)
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	v := f.video(t, alice.ID, true)
	rec := &mq.Recorder{}
	svc := NewLikeService(f.ctx, rec)
	target := model.ReactionTarget{Kind: model.KindVideo, ID: v.ID}

	for n := 1; n <= 5; n++ {
		active, err := svc.Toggle(bob.ID, target, model.ActionLiked)
		require.NoError(t, err)
		assert.Equal(t, n%2 == 1, active, "toggle %d", n)

		var count int64
		require.NoError(t, f.db.Model(&model.Like{}).
			Where("owner_id = ? AND target_id = ?", bob.ID, v.ID).Count(&count).Error)
		assert.LessOrEqual(t, count, int64(1))
	}
	require.Len(t, rec.Reactions, 5)
	assert.True(t, rec.Reactions[0].Active)
	assert.False(t, rec.Reactions[1].Active)
	assert.Equal(t, "Video", rec.Reactions[0].TargetKind)
	assert.Equal(t, "LIKED", rec.Reactions[0].Action)
}

func TestLikeAndDislikeIndependent(t *testing.T) {
	f := setup(t)
	alice := f.user(t, "alice")
	v := f.video(t, alice.ID, true)
	svc := NewLikeService(f.ctx, nil)
	target := model.ReactionTarget{Kind: model.KindVideo, ID: v.ID}

	liked, err := svc.Toggle(alice.ID, target, model.ActionLiked)
	require.NoError(t, err)
	disliked, err := svc.Toggle(alice.ID, target, model.ActionDisliked)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.True(t, disliked)

	assert.Equal(t, int64(1), f.reactions(t, target, model.ActionLiked))
	assert.Equal(t, int64(1), f.reactions(t, target, model.ActionDisliked))
}

func TestLikeToggleTargets(t *testing.T) {
	f := setup(t)
	alice := f.user(t, "alice")
	published := f.video(t, alice.ID, true)
	draft := f.video(t, alice.ID, false)
	tweet := &model.Tweet{Content: "hi", OwnerID: alice.ID}
	require.NoError(t, f.db.Create(tweet).Error)
	svc := NewLikeService(f.ctx, nil)

	tests := []struct {
		name   string
		target model.ReactionTarget
		action model.ReactionAction
		want   error
	}{
		{"tweet", model.ReactionTarget{Kind: model.KindTweet, ID: tweet.ID}, model.ActionLiked, nil},
		{"video", model.ReactionTarget{Kind: model.KindVideo, ID: published.ID}, model.ActionDisliked, nil},
		{"unpublished video", model.ReactionTarget{Kind: model.KindVideo, ID: draft.ID}, model.ActionLiked, errno.NotFoundErr},
		{"missing comment", model.ReactionTarget{Kind: model.KindComment, ID: 42}, model.ActionLiked, errno.NotFoundErr},
		{"tweet id as video", model.ReactionTarget{Kind: model.KindVideo, ID: tweet.ID}, model.ActionLiked, errno.NotFoundErr},
		{"bad kind", model.ReactionTarget{Kind: "Playlist", ID: tweet.ID}, model.ActionLiked, errno.ValidationErr},
		{"bad action", model.ReactionTarget{Kind: model.KindTweet, ID: tweet.ID}, "LOVED", errno.ValidationErr},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			active, err := svc.Toggle(alice.ID, tt.target, tt.action)
			if tt.want == nil {
				require.NoError(t, err)
				assert.True(t, active)
				return
			}
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestLikedVideos(t *testing.T) {
	f := setup(t)
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	v1 := f.video(t, alice.ID, true)
	v2 := f.video(t, alice.ID, true)
	svc := NewLikeService(f.ctx, nil)

	for _, v := range []*model.Video{v1, v2} {
		_, err := svc.Toggle(bob.ID, model.ReactionTarget{Kind: model.KindVideo, ID: v.ID}, model.ActionLiked)
		require.NoError(t, err)
	}
	_, err := svc.Toggle(bob.ID, model.ReactionTarget{Kind: model.KindVideo, ID: v1.ID}, model.ActionDisliked)
	require.NoError(t, err)
	require.NoError(t, f.db.Model(&model.Video{}).Where("id = ?", v2.ID).Update("is_published", false).Error)

	page, err := svc.LikedVideos(bob.ID, pagination.New(1, 10))
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, v1.ID, page.Items[0].ID)
	assert.Equal(t, int64(1), page.Items[0].LikesCount)
	assert.Equal(t, "alice", page.Items[0].Owner.Username)
	assert.False(t, page.Items[0].LikedAt.IsZero())
}

func TestCommentPagination(t *testing.T) {
	f := setup(t)
	alice := f.user(t, "alice")
	v := f.video(t, alice.ID, true)
	rec := &mq.Recorder{}
	svc := NewCommentService(f.ctx, rec)

	for i := 0; i < 15; i++ {
		_, err := svc.Create(v.ID, alice.ID, "comment")
		require.NoError(t, err)
	}
	assert.Len(t, rec.Comments, 15)

	page, err := svc.List(v.ID, 0, pagination.Parse("2", "10"))
	require.NoError(t, err)
	assert.Len(t, page.Items, 5)
	assert.Equal(t, int64(15), page.TotalItems)
	assert.Equal(t, int64(2), page.TotalPages)
	assert.Equal(t, "alice", page.Items[0].Owner.Username)

	_, err = svc.List(v.ID+1, 0, pagination.Parse("1", "10"))
	assert.True(t, errors.Is(err, errno.NotFoundErr))
}

func TestCommentOwnership(t *testing.T) {
	f := setup(t)
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	v := f.video(t, alice.ID, true)
	svc := NewCommentService(f.ctx, nil)
	likes := NewLikeService(f.ctx, nil)

	_, err := svc.Create(v.ID, bob.ID, "   ")
	assert.True(t, errors.Is(err, errno.ValidationErr))

	c, err := svc.Create(v.ID, bob.ID, "first!")
	require.NoError(t, err)
	_, err = likes.Toggle(alice.ID, model.ReactionTarget{Kind: model.KindComment, ID: c.ID}, model.ActionLiked)
	require.NoError(t, err)

	_, errNotOwner := svc.Update(c.ID, alice.ID, "edited")
	_, errMissing := svc.Update(c.ID+1, bob.ID, "edited")
	assert.Equal(t, errno.ConvertErr(errMissing), errno.ConvertErr(errNotOwner))
	assert.Equal(t, "Comment not found", errno.ConvertErr(errNotOwner).ErrMsg)

	updated, err := svc.Update(c.ID, bob.ID, "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)

	_, err = svc.Delete(c.ID, alice.ID)
	assert.True(t, errors.Is(err, errno.NotFoundErr))
	_, err = svc.Delete(c.ID, bob.ID)
	require.NoError(t, err)

	var count int64
	require.NoError(t, f.db.Model(&model.Like{}).Where("target_id = ?", c.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestTweets(t *testing.T) {
	f := setup(t)
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	svc := NewTweetService(f.ctx)
	likes := NewLikeService(f.ctx, nil)

	tw, err := svc.Create(alice.ID, "hello world")
	require.NoError(t, err)
	_, err = svc.Create(alice.ID, "second")
	require.NoError(t, err)
	_, err = likes.Toggle(bob.ID, model.ReactionTarget{Kind: model.KindTweet, ID: tw.ID}, model.ActionLiked)
	require.NoError(t, err)

	page, err := svc.ListByUser(alice.ID, bob.ID, pagination.New(1, 10))
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "second", page.Items[0].Content)
	assert.Equal(t, tw.ID, page.Items[1].ID)
	assert.Equal(t, int64(1), page.Items[1].LikesCount)
	assert.True(t, page.Items[1].IsLiked)
	assert.False(t, page.Items[0].IsLiked)

	_, err = svc.ListByUser(bob.ID+alice.ID, 0, pagination.New(1, 10))
	assert.True(t, errors.Is(err, errno.NotFoundErr))

	_, err = svc.Update(tw.ID, bob.ID, "mine now")
	assert.True(t, errors.Is(err, errno.NotFoundErr))
	_, err = svc.Delete(tw.ID, alice.ID)
	require.NoError(t, err)

	var count int64
	require.NoError(t, f.db.Model(&model.Like{}).Where("target_id = ?", tw.ID).Count(&count).Error)
	assert.Zero(t, count)
}
