package service

import (
	"strings"

	"xTube.com/cmd/model"
	"xTube.com/cmd/user/dal/db"
	"xTube.com/pkg/errno"
	"xTube.com/pkg/utils"
)

// AccountPatch 账户信息的部分更新，nil 表示不修改
type AccountPatch struct {
	FullName *string
	Email    *string
}

// Columns 校验并转成待更新的列
func (p AccountPatch) Columns() (map[string]interface{}, error) {
	columns := map[string]interface{}{}
	if p.FullName != nil {
		name := strings.TrimSpace(*p.FullName)
		if name == "" {
			return nil, errno.ValidationErr.WithMessage("Full name cannot be empty")
		}
		columns["full_name"] = name
	}
	if p.Email != nil {
		email := utils.NormalizeIdentity(*p.Email)
		if !utils.IsValidEmail(email) {
			return nil, errno.ValidationErr.WithMessage("Invalid email")
		}
		columns["email"] = email
	}
	if len(columns) == 0 {
		return nil, errno.ValidationErr.WithMessage("Nothing to update")
	}
	return columns, nil
}

func (s *UserService) UpdateAccount(userID int64, patch AccountPatch) (*model.User, error) {
	columns, err := patch.Columns()
	if err != nil {
		return nil, err
	}
	if email, ok := columns["email"].(string); ok {
		taken, err := db.EmailTaken(s.ctx, email, userID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, errno.ConflictErr.WithMessage("Email already in use")
		}
	}
	return db.UpdateUser(s.ctx, userID, columns)
}
