package service

import (
	"xTube.com/cmd/model"
	"xTube.com/cmd/user/dal/db"
	"xTube.com/pkg/errno"
	"xTube.com/pkg/utils"
)

// CheckCredentials 登录校验，identity 为用户名或邮箱
func (s *UserService) CheckCredentials(identity, password string) (*model.User, error) {
	user, err := db.GetUserByIdentity(s.ctx, utils.NormalizeIdentity(identity))
	if err != nil {
		return nil, err
	}
	if !utils.VerifyPassword(password, user.Password) {
		return nil, errno.AuthorizationErr.WithMessage("Invalid user credentials")
	}
	return user, nil
}

func (s *UserService) GetUser(userID int64) (*model.User, error) {
	return db.GetUserByID(s.ctx, userID)
}
