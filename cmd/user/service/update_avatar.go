package service

import (
	"strconv"

	"github.com/cloudwego/hertz/pkg/common/hlog"

	"xTube.com/cmd/model"
	"xTube.com/cmd/user/dal/db"
	"xTube.com/pkg/constants"
	"xTube.com/pkg/errno"
	"xTube.com/pkg/oss"
)

// UpdateAvatar 替换头像
func (s *UserService) UpdateAvatar(userID int64, path string) (*model.User, error) {
	return s.replaceAsset(userID, path, constants.AvatarFolder, "avatar_", func(u *model.User) model.Asset { return u.Avatar })
}

// UpdateCoverImage 替换封面
func (s *UserService) UpdateCoverImage(userID int64, path string) (*model.User, error) {
	return s.replaceAsset(userID, path, constants.CoverFolder, "cover_image_", func(u *model.User) model.Asset { return u.CoverImage })
}

// replaceAsset 同一用户串行执行：上传新文件，写库，成功后删除旧文件；写库失败回滚新文件
func (s *UserService) replaceAsset(userID int64, path, folder, prefix string, current func(*model.User) model.Asset) (*model.User, error) {
	if path == "" {
		return nil, errno.ValidationErr.WithMessage("File is required")
	}
	unlock, err := s.locker.Lock(s.ctx, folder+":"+strconv.FormatInt(userID, 10))
	if err != nil {
		hlog.CtxWarnf(s.ctx, "lock %s for user %d failed: %v", folder, userID, err)
		return nil, errno.ConflictErr.WithMessage("Another update is in progress, please retry")
	}
	defer unlock()

	before, err := db.GetUserByID(s.ctx, userID)
	if err != nil {
		return nil, err
	}
	asset, err := s.store.Store(s.ctx, path, folder)
	if err != nil {
		hlog.CtxErrorf(s.ctx, "upload %s for user %d failed: %v", folder, userID, err)
		return nil, errno.UpstreamErr.WithMessage("Failed to upload file")
	}
	user, err := db.UpdateUser(s.ctx, userID, map[string]interface{}{
		prefix + "url":        asset.URL,
		prefix + "storage_id": asset.StorageID,
	})
	if err != nil {
		oss.DeleteQuietly(s.ctx, s.store, asset, "update "+folder+" rollback")
		return nil, err
	}
	oss.DeleteQuietly(s.ctx, s.store, current(before), "replaced "+folder)
	return user, nil
}
