package service

import (
	"github.com/pkg/errors"

	"xTube.com/cmd/user/dal/db"
	"xTube.com/pkg/constants"
	"xTube.com/pkg/errno"
	"xTube.com/pkg/utils"
)

func (s *UserService) ChangePassword(userID int64, oldPassword, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return errno.ValidationErr.WithMessage("Old and new password are required")
	}
	if len(newPassword) < constants.MinPasswordLen {
		return errno.ValidationErr.WithMessage("New password is too short")
	}
	user, err := db.GetUserByID(s.ctx, userID)
	if err != nil {
		return err
	}
	if !utils.VerifyPassword(oldPassword, user.Password) {
		return errno.ValidationErr.WithMessage("Invalid old password")
	}
	hashed, err := utils.Crypt(newPassword)
	if err != nil {
		return errors.WithMessage(err, "Password fail to crypt")
	}
	return db.UpdatePassword(s.ctx, userID, hashed)
}
