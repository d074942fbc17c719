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
	"xTube.com/pkg/constants"
	"xTube.com/pkg/database/dbtest"
	"xTube.com/pkg/errno"
	"xTube.com/pkg/oss/osstest"
	"xTube.com/pkg/pagination"
	"xTube.com/pkg/utils"
)

func init() {
	utils.PasswordCost = 4
}

func setup(t *testing.T) (*UserService, *osstest.Store, *gorm.DB) {
	t.Helper()
	gdb := dbtest.Open(t)
	dal.Init(gdb)
	store := osstest.New()
	return NewUserService(context.Background(), store, nil), store, gdb
}

func register(t *testing.T, svc *UserService, name string) *model.User {
	u, err := svc.Register(&RegisterParam{
		Username:   name,
		Email:      name + "@Example.com",
		FullName:   "Full " + name,
		Password:   "secret123",
		AvatarPath: "/tmp/" + name + ".png",
	})
	require.NoError(t, err)
	return u
}

func TestRegister(t *testing.T) {
	svc, store, _ := setup(t)

	u := register(t, svc, "Alice")
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.NotEqual(t, "secret123", u.Password)
	assert.True(t, store.Has(u.Avatar.StorageID))
	assert.True(t, u.CoverImage.Empty())

	_, err := svc.Register(&RegisterParam{
		Username: "alice", Email: "other@example.com", FullName: "x", Password: "secret123", AvatarPath: "a.png",
	})
	assert.True(t, errors.Is(err, errno.ConflictErr))
	assert.Equal(t, 1, store.Len())
}

func TestRegisterValidation(t *testing.T) {
	svc, store, _ := setup(t)
	tests := []struct {
		name string
		req  RegisterParam
	}{
		{"missing fields", RegisterParam{Username: "bob", Password: "secret123", AvatarPath: "a.png"}},
		{"bad email", RegisterParam{Username: "bob", Email: "nope", FullName: "Bob", Password: "secret123", AvatarPath: "a.png"}},
		{"short password", RegisterParam{Username: "bob", Email: "bob@example.com", FullName: "Bob", Password: "123", AvatarPath: "a.png"}},
		{"no avatar", RegisterParam{Username: "bob", Email: "bob@example.com", FullName: "Bob", Password: "secret123"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := svc.Register(&req)
			assert.True(t, errors.Is(err, errno.ValidationErr), "got %v", err)
		})
	}
	assert.Zero(t, store.Len())
}

func TestRegisterRollsBackAvatar(t *testing.T) {
	svc, store, _ := setup(t)
	store.FailOn[constants.CoverFolder] = true

	_, err := svc.Register(&RegisterParam{
		Username: "carol", Email: "carol@example.com", FullName: "Carol", Password: "secret123",
		AvatarPath: "a.png", CoverPath: "c.png",
	})
	assert.True(t, errors.Is(err, errno.UpstreamErr))
	assert.Zero(t, store.Len())
	assert.Len(t, store.Deleted(), 1)
}

func TestCheckCredentials(t *testing.T) {
	svc, _, _ := setup(t)
	u := register(t, svc, "dave")

	got, err := svc.CheckCredentials("DAVE@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	got, err = svc.CheckCredentials("dave", "secret123")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = svc.CheckCredentials("dave", "wrong")
	assert.True(t, errors.Is(err, errno.AuthorizationErr))
	_, err = svc.CheckCredentials("nobody", "secret123")
	assert.True(t, errors.Is(err, errno.NotFoundErr))
}

func TestChangePassword(t *testing.T) {
	svc, _, _ := setup(t)
	u := register(t, svc, "erin")

	err := svc.ChangePassword(u.ID, "wrong", "newsecret")
	assert.True(t, errors.Is(err, errno.ValidationErr))
	require.NoError(t, svc.ChangePassword(u.ID, "secret123", "newsecret"))

	_, err = svc.CheckCredentials("erin", "secret123")
	assert.Error(t, err)
	_, err = svc.CheckCredentials("erin", "newsecret")
	assert.NoError(t, err)
}

func TestUpdateAccount(t *testing.T) {
	svc, _, _ := setup(t)
	u := register(t, svc, "frank")
	register(t, svc, "gina")

	name := "  Frank Ocean "
	updated, err := svc.UpdateAccount(u.ID, AccountPatch{FullName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Frank Ocean", updated.FullName)
	assert.Equal(t, "frank@example.com", updated.Email)

	taken := "GINA@example.com"
	_, err = svc.UpdateAccount(u.ID, AccountPatch{Email: &taken})
	assert.True(t, errors.Is(err, errno.ConflictErr))

	_, err = svc.UpdateAccount(u.ID, AccountPatch{})
	assert.True(t, errors.Is(err, errno.ValidationErr))
}

func TestUpdateAvatarReplacesBlob(t *testing.T) {
	svc, store, _ := setup(t)
	u := register(t, svc, "hank")
	old := u.Avatar

	updated, err := svc.UpdateAvatar(u.ID, "/tmp/new.png")
	require.NoError(t, err)
	assert.NotEqual(t, old.StorageID, updated.Avatar.StorageID)
	assert.True(t, store.Has(updated.Avatar.StorageID))
	assert.False(t, store.Has(old.StorageID))

	cover, err := svc.UpdateCoverImage(u.ID, "/tmp/cover.png")
	require.NoError(t, err)
	assert.Equal(t, updated.Avatar, cover.Avatar)
	assert.True(t, store.Has(cover.CoverImage.StorageID))

	_, err = svc.UpdateAvatar(u.ID+1, "/tmp/ghost.png")
	assert.True(t, errors.Is(err, errno.NotFoundErr))
}

func TestWatchHistoryOrder(t *testing.T) {
	svc, _, gdb := setup(t)
	u := register(t, svc, "ivy")
	var videos []*model.Video
	for i := 0; i < 3; i++ {
		v := &model.Video{OwnerID: u.ID, Title: "v", IsPublished: true}
		require.NoError(t, gdb.Create(v).Error)
		videos = append(videos, v)
	}
	for _, v := range []*model.Video{videos[0], videos[1], videos[2], videos[0]} {
		require.NoError(t, svc.RecordWatch(u.ID, v.ID))
	}

	page, err := svc.WatchHistory(u.ID, pagination.New(1, 10))
	require.NoError(t, err)
	require.Len(t, page.Items, 3)
	assert.Equal(t, videos[0].ID, page.Items[0].ID)
	assert.Equal(t, videos[2].ID, page.Items[1].ID)
	assert.Equal(t, videos[1].ID, page.Items[2].ID)
	assert.Equal(t, "ivy", page.Items[0].Owner.Username)
}

func TestChannelProfile(t *testing.T) {
	svc, _, _ := setup(t)
	register(t, svc, "jack")

	p, err := svc.ChannelProfile("jack", 0)
	require.NoError(t, err)
	assert.Equal(t, "jack", p.Username)
	assert.Zero(t, p.SubscribersCount)
	assert.False(t, p.IsSubscribed)

	_, err = svc.ChannelProfile("nobody", 0)
	assert.True(t, errors.Is(err, errno.NotFoundErr))
}
