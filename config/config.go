package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var ConfigInfo config

// Init 读取 config.yml，环境变量 XTUBE_* 覆盖同名配置项
func Init() {
	wd, _ := os.Getwd()
	logrus.Infof("Current working directory: %s", wd)

	setDefaults()

	viper.SetConfigType("yaml")
	viper.SetConfigName("config.yml")
	viper.SetEnvPrefix("xtube")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	configPaths := []string{
		"../../config",
		"./config",
		"../config",
		".",
	}
	for _, path := range configPaths {
		viper.AddConfigPath(path)
		absPath, _ := filepath.Abs(path)
		logrus.Debugf("Added config path: %s (absolute: %s)", path, absPath)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logrus.Warnf("config file not found, using defaults: %v", err)
		} else {
			logrus.Errorf("config error: %v", err)
		}
	} else {
		logrus.Infof("Successfully read config file: %s", viper.ConfigFileUsed())
	}

	load()

	logrus.WithFields(logrus.Fields{
		"driver":   ConfigInfo.Database.Driver,
		"mysql":    fmt.Sprintf("%s:%s@%s/%s", ConfigInfo.Database.Mysql.Username, "***", ConfigInfo.Database.Mysql.Addr, ConfigInfo.Database.Mysql.Database),
		"redis":    ConfigInfo.Redis.Addr,
		"minio":    ConfigInfo.Minio.Endpoint,
		"rabbitmq": ConfigInfo.RabbitMq.Enabled,
	}).Info("Config loaded")
}

func setDefaults() {
	viper.SetDefault("server.addr", "0.0.0.0:8000")
	viper.SetDefault("server.max_body_size", 512*1024*1024)
	viper.SetDefault("server.allow_origins", []string{"http://localhost:5173"})
	viper.SetDefault("server.upload_temp_dir", os.TempDir())
	viper.SetDefault("server.service_name", "xtube")
	viper.SetDefault("server.metrics_enabled", true)

	viper.SetDefault("database.driver", "mysql")
	viper.SetDefault("database.sqlite_path", "xtube.db")
	viper.SetDefault("database.mysql.charset", "utf8mb4")
	viper.SetDefault("database.max_open_conns", 50)
	viper.SetDefault("database.max_idle_conns", 10)
	viper.SetDefault("database.conn_max_lifetime", time.Hour)

	viper.SetDefault("redis.addr", "localhost:6379")

	viper.SetDefault("minio.endpoint", "localhost:9000")
	viper.SetDefault("minio.bucket", "xtube")

	viper.SetDefault("jwt.timeout", 24*time.Hour)
	viper.SetDefault("jwt.max_refresh", 10*24*time.Hour)

	viper.SetDefault("ratelimit.window", 15*time.Minute)
	viper.SetDefault("ratelimit.global_max", 100)
	viper.SetDefault("ratelimit.auth_max", 5)
	viper.SetDefault("ratelimit.lock_ttl", 30*time.Second)

	viper.SetDefault("snowflake.node", 1)
}

// load 手动从 viper 取值，避免 Unmarshal 对 yaml tag 的差异
func load() {
	ConfigInfo.Server.Addr = viper.GetString("server.addr")
	ConfigInfo.Server.MaxBodySize = viper.GetInt("server.max_body_size")
	ConfigInfo.Server.AllowOrigins = viper.GetStringSlice("server.allow_origins")
	ConfigInfo.Server.PprofAddr = viper.GetString("server.pprof_addr")
	ConfigInfo.Server.UploadTempDir = viper.GetString("server.upload_temp_dir")
	ConfigInfo.Server.ServiceName = viper.GetString("server.service_name")
	ConfigInfo.Server.MetricsEnabled = viper.GetBool("server.metrics_enabled")

	ConfigInfo.Database.Driver = viper.GetString("database.driver")
	ConfigInfo.Database.SqlitePath = viper.GetString("database.sqlite_path")
	ConfigInfo.Database.Mysql.Addr = viper.GetString("database.mysql.addr")
	ConfigInfo.Database.Mysql.Database = viper.GetString("database.mysql.database")
	ConfigInfo.Database.Mysql.Username = viper.GetString("database.mysql.username")
	ConfigInfo.Database.Mysql.Password = viper.GetString("database.mysql.password")
	ConfigInfo.Database.Mysql.Charset = viper.GetString("database.mysql.charset")
	ConfigInfo.Database.MaxOpenConns = viper.GetInt("database.max_open_conns")
	ConfigInfo.Database.MaxIdleConns = viper.GetInt("database.max_idle_conns")
	ConfigInfo.Database.ConnMaxLifetime = viper.GetDuration("database.conn_max_lifetime")

	ConfigInfo.Redis.Addr = viper.GetString("redis.addr")
	ConfigInfo.Redis.Password = viper.GetString("redis.password")
	ConfigInfo.Redis.DB = viper.GetInt("redis.db")

	ConfigInfo.RabbitMq.Enabled = viper.GetBool("rabbitmq.enabled")
	ConfigInfo.RabbitMq.Addr = viper.GetString("rabbitmq.addr")
	ConfigInfo.RabbitMq.Username = viper.GetString("rabbitmq.username")
	ConfigInfo.RabbitMq.Password = viper.GetString("rabbitmq.password")

	ConfigInfo.Minio.Endpoint = viper.GetString("minio.endpoint")
	ConfigInfo.Minio.AccessKey = viper.GetString("minio.access_key")
	ConfigInfo.Minio.SecretKey = viper.GetString("minio.secret_key")
	ConfigInfo.Minio.UseSSL = viper.GetBool("minio.use_ssl")
	ConfigInfo.Minio.Bucket = viper.GetString("minio.bucket")
	ConfigInfo.Minio.PublicURL = viper.GetString("minio.public_url")

	ConfigInfo.Jwt.Secret = viper.GetString("jwt.secret")
	ConfigInfo.Jwt.Timeout = viper.GetDuration("jwt.timeout")
	ConfigInfo.Jwt.MaxRefresh = viper.GetDuration("jwt.max_refresh")
	ConfigInfo.Jwt.Secure = viper.GetBool("jwt.secure_cookie")

	ConfigInfo.RateLimit.Enabled = viper.GetBool("ratelimit.enabled")
	ConfigInfo.RateLimit.Window = viper.GetDuration("ratelimit.window")
	ConfigInfo.RateLimit.GlobalMax = viper.GetInt64("ratelimit.global_max")
	ConfigInfo.RateLimit.AuthMax = viper.GetInt64("ratelimit.auth_max")
	ConfigInfo.RateLimit.LockTTL = viper.GetDuration("ratelimit.lock_ttl")

	ConfigInfo.Snowflake.Node = viper.GetInt64("snowflake.node")

	ConfigInfo.Jaeger.Enabled = viper.GetBool("jaeger.enabled")
	ConfigInfo.Jaeger.Addr = viper.GetString("jaeger.addr")
}
