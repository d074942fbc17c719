package pipeline

import (
	"strings"

	"xTube.com/cmd/model"
	"xTube.com/pkg/constants"
	"xTube.com/pkg/utils"
)

// UserCardFields 连接用户时默认投影的列
var UserCardFields = []string{"id", "username", "full_name", "avatar_url"}

// UserJoin 按外键 fk 连接 users 表
func UserJoin(as, fk string, fields ...string) Join {
	if len(fields) == 0 {
		fields = UserCardFields
	}
	return Join{
		Table:  constants.UserTableName,
		As:     as,
		On:     as + ".id = " + fk,
		Fields: fields,
	}
}

// OwnerJoin 连接实体的 owner
func OwnerJoin(table string) Join {
	return UserJoin("owner", table+".owner_id")
}

// ReactionCount 统计指向 idColumn 的某类反应数量
func ReactionCount(kind model.ReactionKind, action model.ReactionAction, idColumn, as string) Field {
	return Field{
		Expr: "(SELECT COUNT(*) FROM " + constants.LikeTableName + " AS rc WHERE rc.target_kind = ? AND rc.target_id = " +
			idColumn + " AND rc.action = ?)",
		As:   as,
		Args: []interface{}{kind, action},
	}
}

// LikeCount 点赞数
func LikeCount(kind model.ReactionKind, idColumn, as string) Field {
	return ReactionCount(kind, model.ActionLiked, idColumn, as)
}

// Reacted viewer 是否对目标做过 action
func Reacted(kind model.ReactionKind, action model.ReactionAction, idColumn string, viewerID int64, as string) Field {
	return Field{
		Expr: "EXISTS (SELECT 1 FROM " + constants.LikeTableName + " AS rv WHERE rv.target_kind = ? AND rv.target_id = " +
			idColumn + " AND rv.action = ? AND rv.owner_id = ?)",
		As:   as,
		Args: []interface{}{kind, action, viewerID},
	}
}

// CountWhere 统计 table 中 column = idColumn 的记录数
func CountWhere(table, column, idColumn, as string) Field {
	return Field{
		Expr: "(SELECT COUNT(*) FROM " + table + " AS cw WHERE cw." + column + " = " + idColumn + ")",
		As:   as,
	}
}

// SubscribedBy viewer 是否订阅了 channelColumn 指向的频道
func SubscribedBy(channelColumn string, viewerID int64, as string) Field {
	return Field{
		Expr: "EXISTS (SELECT 1 FROM " + constants.SubscriptionTableName + " AS sb WHERE sb.channel_id = " +
			channelColumn + " AND sb.subscriber_id = ?)",
		As:   as,
		Args: []interface{}{viewerID},
	}
}

// ContainsFold 多列不区分大小写的子串匹配，返回 Where 的参数
func ContainsFold(term string, columns ...string) (string, []interface{}) {
	pattern := "%" + utils.EscapeLike(strings.ToLower(strings.TrimSpace(term))) + "%"
	conds := make([]string, 0, len(columns))
	args := make([]interface{}, 0, len(columns))
	for _, c := range columns {
		conds = append(conds, "LOWER("+c+") LIKE ? ESCAPE '!'")
		args = append(args, pattern)
	}
	return "(" + strings.Join(conds, " OR ") + ")", args
}

// Newest 默认排序：创建时间倒序，ID 倒序兜底
func Newest(table string) []string {
	return []string{table + ".created_at DESC", table + ".id DESC"}
}

// VideoCards 视频卡片视图的公共阶段：连接 owner、派生点赞数
func VideoCards() *Pipeline {
	return New(constants.VideoTableName, model.VideoCardColumns...).
		Join(OwnerJoin(constants.VideoTableName)).
		Derive(LikeCount(model.KindVideo, constants.VideoTableName+".id", "likes_count"))
}
