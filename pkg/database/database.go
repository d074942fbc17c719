package database

import (
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	gormopentracing "gorm.io/plugin/opentracing"

	"xTube.com/cmd/model"
	"xTube.com/config"
	"xTube.com/pkg/utils"
)

const (
	DriverMysql  = "mysql"
	DriverSqlite = "sqlite"
)

// DB 进程内唯一的连接池
var DB *gorm.DB

// Init 按配置打开数据库并迁移表结构
func Init() {
	var err error
	cfg := config.ConfigInfo.Database
	switch cfg.Driver {
	case DriverSqlite:
		DB, err = OpenSqlite(cfg.SqlitePath, logger.Warn)
	default:
		DB, err = OpenMysql(utils.GetMysqlDsn())
	}
	if err != nil {
		panic(err)
	}
	if err = Migrate(DB); err != nil {
		panic(err)
	}
}

// OpenMysql 生产环境使用 mysql
func OpenMysql(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		return nil, errors.WithMessage(err, "open mysql")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	cfg := config.ConfigInfo.Database
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	return withTracing(db)
}

// OpenSqlite 本地开发与测试使用，单连接避免写锁冲突
func OpenSqlite(path string, level logger.LogLevel) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path+"?_busy_timeout=5000&_journal_mode=WAL"), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, errors.WithMessage(err, "open sqlite")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return withTracing(db)
}

func withTracing(db *gorm.DB) (*gorm.DB, error) {
	if err := db.Use(gormopentracing.New()); err != nil {
		return nil, errors.WithMessage(err, "register opentracing plugin")
	}
	return db, nil
}

// Migrate 自动迁移所有实体表及其索引
func Migrate(db *gorm.DB) error {
	hlog.Info("Starting tables migration...")
	if err := db.AutoMigrate(model.All()...); err != nil {
		hlog.Errorf("Failed to migrate tables: %v", err)
		return err
	}
	hlog.Info("Tables migration completed successfully")
	return nil
}
