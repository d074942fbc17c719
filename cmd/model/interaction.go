package model

import (
	"fmt"

	"xTube.com/pkg/constants"
)

type Comment struct {
	Base
	Content string `gorm:"type:text" json:"content"`
	OwnerID int64  `gorm:"index" json:"owner,string"`
	VideoID int64  `gorm:"index" json:"video,string"`
}

func (Comment) TableName() string {
	return constants.CommentTableName
}

type Tweet struct {
	Base
	Content string `gorm:"type:text" json:"content"`
	OwnerID int64  `gorm:"index" json:"owner,string"`
}

func (Tweet) TableName() string {
	return constants.TweetTableName
}

// ReactionKind 点赞目标的类型
type ReactionKind string

const (
	KindVideo   ReactionKind = "Video"
	KindComment ReactionKind = "Comment"
	KindTweet   ReactionKind = "Tweet"
)

// ReactionAction 点赞或点踩
type ReactionAction string

const (
	ActionLiked    ReactionAction = "LIKED"
	ActionDisliked ReactionAction = "DISLIKED"
)

func (a ReactionAction) Valid() bool {
	return a == ActionLiked || a == ActionDisliked
}

// ReactionTarget 多态引用，Kind 决定 ID 指向哪张表
type ReactionTarget struct {
	Kind ReactionKind
	ID   int64
}

func (t ReactionTarget) String() string {
	return fmt.Sprintf("%s:%d", t.Kind, t.ID)
}

// Model 返回目标类型对应的模型，用于存在性校验
func (k ReactionKind) Model() (interface{}, bool) {
	switch k {
	case KindVideo:
		return &Video{}, true
	case KindComment:
		return &Comment{}, true
	case KindTweet:
		return &Tweet{}, true
	default:
		return nil, false
	}
}

// Like 点赞/点踩记录，同一 (owner, target, action) 只允许一条
type Like struct {
	Base
	OwnerID    int64          `gorm:"uniqueIndex:idx_like_owner_target,priority:1" json:"likedBy,string"`
	TargetKind ReactionKind   `gorm:"size:16;uniqueIndex:idx_like_owner_target,priority:2;index:idx_like_target,priority:1" json:"onModel"`
	TargetID   int64          `gorm:"uniqueIndex:idx_like_owner_target,priority:3;index:idx_like_target,priority:2" json:"likeable,string"`
	Action     ReactionAction `gorm:"size:16;uniqueIndex:idx_like_owner_target,priority:4;index:idx_like_target,priority:3" json:"action"`
}

func (Like) TableName() string {
	return constants.LikeTableName
}

func (l Like) Target() ReactionTarget {
	return ReactionTarget{Kind: l.TargetKind, ID: l.TargetID}
}
