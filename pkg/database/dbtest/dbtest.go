// Package dbtest 为测试提供迁移好的 sqlite 数据库
package dbtest

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"xTube.com/pkg/database"
)

// Open 在 t.TempDir() 下新建数据库，测试结束自动关闭
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := database.OpenSqlite(filepath.Join(t.TempDir(), "xtube_test.db"), logger.Silent)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
