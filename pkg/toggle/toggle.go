// Package toggle 实现点赞、点踩、订阅共用的存在性翻转：
// 同一唯一键下记录存在则删除（inactive），不存在则插入（active）。
package toggle

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"xTube.com/pkg/errno"
	"xTube.com/pkg/metrics"
)

// Relation 一条可翻转的关系
type Relation struct {
	// Kind 用于指标标签，如 like、dislike、subscription
	Kind string
	// Model 空模型，定位删除的表
	Model interface{}
	// Key 唯一索引覆盖的列
	Key map[string]interface{}
	// Record 不存在时写入的记录
	Record interface{}
}

// Flip 先按唯一键删除，命中即 inactive；否则插入，唯一索引冲突时说明并发的同键翻转已抢先写入，返回 ConflictErr
func Flip(ctx context.Context, db *gorm.DB, rel Relation) (bool, error) {
	if len(rel.Key) == 0 {
		return false, errors.New("toggle: empty relation key")
	}
	res := db.WithContext(ctx).Where(rel.Key).Delete(rel.Model)
	if res.Error != nil {
		return false, errors.WithMessage(res.Error, "toggle: delete relation")
	}
	if res.RowsAffected > 0 {
		metrics.Toggles.WithLabelValues(rel.Kind, metrics.ToggleState(false)).Inc()
		return false, nil
	}

	res = db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(rel.Record)
	if res.Error != nil {
		return false, errors.WithMessage(res.Error, "toggle: create relation")
	}
	if res.RowsAffected == 0 {
		return false, errno.ConflictErr.WithMessage("A concurrent request changed this state, please retry")
	}
	metrics.Toggles.WithLabelValues(rel.Kind, metrics.ToggleState(true)).Inc()
	return true, nil
}
