// Package ownership 实现以 owner 为匹配条件的更新与删除。
// 记录不存在与不属于当前用户返回同一个 NotFound，调用方无法区分两者。
package ownership

import (
	"context"
	"reflect"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"xTube.com/pkg/errno"
	"xTube.com/pkg/metrics"
)

const ownerColumn = "owner_id"

func notFound(dest interface{}) errno.ErrNo {
	t := reflect.TypeOf(dest)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return errno.NotFoundErr.WithMessage(t.Name() + " not found")
}

// Mutate 在事务内以 (id, owner_id) 加锁读出记录到 dest，再执行 fn；fn 只能使用传入的 tx
func Mutate(ctx context.Context, db *gorm.DB, dest interface{}, id, ownerID int64, fn func(tx *gorm.DB) error) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND "+ownerColumn+" = ?", id, ownerID).
			Take(dest).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(dest)
		}
		if err != nil {
			return errors.WithMessage(err, "ownership: lock record")
		}
		if fn == nil {
			return nil
		}
		return fn(tx)
	})
}

// Update 更新 actor 拥有的记录，dest 返回更新后的值
func Update(ctx context.Context, db *gorm.DB, dest interface{}, id, ownerID int64, columns map[string]interface{}) error {
	return Mutate(ctx, db, dest, id, ownerID, func(tx *gorm.DB) error {
		if len(columns) == 0 {
			return nil
		}
		res := tx.Model(dest).Where(ownerColumn+" = ?", ownerID).Updates(columns)
		if res.Error != nil {
			return errors.WithMessage(res.Error, "ownership: update record")
		}
		return tx.Where("id = ?", id).Take(dest).Error
	})
}

// Delete 删除 actor 拥有的记录，dest 返回删除前的值
func Delete(ctx context.Context, db *gorm.DB, dest interface{}, id, ownerID int64) error {
	return Mutate(ctx, db, dest, id, ownerID, func(tx *gorm.DB) error {
		res := tx.Where(ownerColumn+" = ?", ownerID).Delete(dest)
		if res.Error != nil {
			return errors.WithMessage(res.Error, "ownership: delete record")
		}
		if res.RowsAffected == 0 {
			return notFound(dest)
		}
		return nil
	})
}

// Step 级联清理中的一步
type Step struct {
	Name string
	Run  func(ctx context.Context) error
}

// Cascade 在主操作成功后依次执行清理，失败只记日志，返回失败步数
func Cascade(ctx context.Context, subject string, steps ...Step) int {
	failed := 0
	for _, s := range steps {
		if err := s.Run(ctx); err != nil {
			failed++
			metrics.CascadeFailures.WithLabelValues(s.Name).Inc()
			hlog.CtxErrorf(ctx, "cascade %s for %s failed: %v", s.Name, subject, err)
		}
	}
	return failed
}
