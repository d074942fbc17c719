package db

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"xTube.com/cmd/model"
	"xTube.com/pkg/constants"
	"xTube.com/pkg/errno"
	"xTube.com/pkg/pipeline"
)

// CreateUser 新建用户，用户名或邮箱重复返回 ConflictErr
func CreateUser(ctx context.Context, user *model.User) error {
	if err := DB.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errno.ConflictErr.WithMessage("Username or email already exists")
		}
		return errors.Wrapf(err, "CreateUser failed, username: %s", user.Username)
	}
	return nil
}

// ExistsUser 用户名或邮箱是否已被占用
func ExistsUser(ctx context.Context, username, email string) (bool, error) {
	var count int64
	if err := DB.WithContext(ctx).Model(&model.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error; err != nil {
		return false, errors.WithMessage(err, "check user existence")
	}
	return count > 0, nil
}

// EmailTaken 邮箱是否被其他用户占用
func EmailTaken(ctx context.Context, email string, exceptID int64) (bool, error) {
	var count int64
	if err := DB.WithContext(ctx).Model(&model.User{}).
		Where("email = ? AND id <> ?", email, exceptID).
		Count(&count).Error; err != nil {
		return false, errors.WithMessage(err, "check email")
	}
	return count > 0, nil
}

func GetUserByID(ctx context.Context, userID int64) (*model.User, error) {
	var user model.User
	err := DB.WithContext(ctx).Where("id = ?", userID).Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errno.NotFoundErr.WithMessage("User not found")
	}
	if err != nil {
		return nil, errors.Wrapf(err, "GetUserByID failed, id: %d", userID)
	}
	return &user, nil
}

// GetUserByIdentity 按邮箱或用户名查找，identity 已经小写
func GetUserByIdentity(ctx context.Context, identity string) (*model.User, error) {
	var user model.User
	err := DB.WithContext(ctx).Where("email = ? OR username = ?", identity, identity).Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errno.NotFoundErr.WithMessage("User does not exist")
	}
	if err != nil {
		return nil, errors.WithMessage(err, "GetUserByIdentity failed")
	}
	return &user, nil
}

// UpdateUser 按列更新并返回最新记录
func UpdateUser(ctx context.Context, userID int64, columns map[string]interface{}) (*model.User, error) {
	res := DB.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID).Updates(columns)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return nil, errno.ConflictErr.WithMessage("Email already in use")
		}
		return nil, errors.Wrapf(res.Error, "UpdateUser failed, id: %d", userID)
	}
	return GetUserByID(ctx, userID)
}

// UpdatePassword 专门用于更新用户密码
func UpdatePassword(ctx context.Context, userID int64, hashed string) error {
	res := DB.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID).Update("password", hashed)
	if res.Error != nil {
		return errors.Wrapf(res.Error, "UpdatePassword failed, id: %d", userID)
	}
	if res.RowsAffected == 0 {
		return errno.NotFoundErr.WithMessage("User not found")
	}
	return nil
}

// ChannelProfile 频道主页
type ChannelProfile struct {
	ID                        int64       `json:"id,string"`
	Username                  string      `json:"username"`
	Email                     string      `json:"email"`
	FullName                  string      `json:"fullName"`
	Avatar                    model.Asset `gorm:"embedded;embeddedPrefix:avatar_" json:"avatar"`
	CoverImage                model.Asset `gorm:"embedded;embeddedPrefix:cover_image_" json:"coverImage"`
	SubscribersCount          int64       `json:"subscribersCount"`
	ChannelsSubscribedToCount int64       `json:"channelsSubscribedToCount"`
	IsSubscribed              bool        `json:"isSubscribed"`
	CreatedAt                 time.Time   `json:"createdAt"`
}

// GetChannelProfile 按用户名组装频道主页，viewerID 为 0 时 isSubscribed 恒为 false
func GetChannelProfile(ctx context.Context, username string, viewerID int64) (*ChannelProfile, error) {
	users := constants.UserTableName
	p := pipeline.New(users,
		"id", "username", "email", "full_name",
		"avatar_url", "avatar_storage_id", "cover_image_url", "cover_image_storage_id", "created_at").
		Where(users+".username = ?", strings.ToLower(strings.TrimSpace(username))).
		Derive(
			pipeline.CountWhere(constants.SubscriptionTableName, "channel_id", users+".id", "subscribers_count"),
			pipeline.CountWhere(constants.SubscriptionTableName, "subscriber_id", users+".id", "channels_subscribed_to_count"),
			pipeline.SubscribedBy(users+".id", viewerID, "is_subscribed"),
		)
	var profile ChannelProfile
	if err := p.One(ctx, DB, &profile); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errno.NotFoundErr.WithMessage("Channel does not exist")
		}
		return nil, err
	}
	return &profile, nil
}
