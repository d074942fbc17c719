package service

import (
	"strings"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"

	"xTube.com/cmd/model"
	"xTube.com/cmd/user/dal/db"
	"xTube.com/pkg/constants"
	"xTube.com/pkg/errno"
	"xTube.com/pkg/oss"
	"xTube.com/pkg/utils"
)

// RegisterParam 注册参数，AvatarPath 为必填的本地临时文件
type RegisterParam struct {
	Username   string
	Email      string
	FullName   string
	Password   string
	AvatarPath string
	CoverPath  string
}

func (p *RegisterParam) normalize() error {
	p.Username = utils.NormalizeIdentity(p.Username)
	p.Email = utils.NormalizeIdentity(p.Email)
	p.FullName = strings.TrimSpace(p.FullName)
	if p.Username == "" || p.Email == "" || p.FullName == "" || strings.TrimSpace(p.Password) == "" {
		return errno.ValidationErr.WithMessage("All fields are required")
	}
	var errs []string
	if !utils.IsValidUsername(p.Username) {
		errs = append(errs, "username must be 3-30 characters without spaces or slashes")
	}
	if !utils.IsValidEmail(p.Email) {
		errs = append(errs, "email format is invalid")
	}
	if len(p.Password) < constants.MinPasswordLen {
		errs = append(errs, "password is too short")
	}
	if len(errs) > 0 {
		return errno.ValidationErr.WithMessage("Invalid registration data").WithErrors(errs...)
	}
	if p.AvatarPath == "" {
		return errno.ValidationErr.WithMessage("Avatar file is required")
	}
	return nil
}

// Register 先上传头像与封面，再落库；落库失败时删除已上传的文件
func (s *UserService) Register(req *RegisterParam) (*model.User, error) {
	if err := req.normalize(); err != nil {
		return nil, err
	}
	taken, err := db.ExistsUser(s.ctx, req.Username, req.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, errno.ConflictErr.WithMessage("Username or email already exists")
	}

	avatar, err := s.store.Store(s.ctx, req.AvatarPath, constants.AvatarFolder)
	if err != nil {
		hlog.CtxErrorf(s.ctx, "upload avatar for %s failed: %v", req.Username, err)
		return nil, errno.UpstreamErr.WithMessage("Failed to upload avatar")
	}
	var cover model.Asset
	if req.CoverPath != "" {
		if cover, err = s.store.Store(s.ctx, req.CoverPath, constants.CoverFolder); err != nil {
			hlog.CtxErrorf(s.ctx, "upload cover image for %s failed: %v", req.Username, err)
			oss.DeleteQuietly(s.ctx, s.store, avatar, "register rollback")
			return nil, errno.UpstreamErr.WithMessage("Failed to upload cover image")
		}
	}
	rollback := func() {
		oss.DeleteQuietly(s.ctx, s.store, avatar, "register rollback")
		oss.DeleteQuietly(s.ctx, s.store, cover, "register rollback")
	}

	hashed, err := utils.Crypt(req.Password)
	if err != nil {
		rollback()
		return nil, errors.WithMessage(err, "Password fail to crypt")
	}
	user := &model.User{
		Username:   req.Username,
		Email:      req.Email,
		FullName:   req.FullName,
		Password:   hashed,
		Avatar:     avatar,
		CoverImage: cover,
	}
	if err = db.CreateUser(s.ctx, user); err != nil {
		rollback()
		return nil, err
	}
	hlog.CtxInfof(s.ctx, "user %s registered, id: %d", user.Username, user.ID)
	return user, nil
}
