package config

import "time"

type config struct {
	Server    server    `yaml:"server" mapstructure:"server"`
	Database  database  `yaml:"database" mapstructure:"database"`
	Redis     redis     `yaml:"redis" mapstructure:"redis"`
	RabbitMq  rabbitmq  `yaml:"rabbitmq" mapstructure:"rabbitmq"`
	Minio     minio     `yaml:"minio" mapstructure:"minio"`
	Jwt       jwt       `yaml:"jwt" mapstructure:"jwt"`
	RateLimit rateLimit `yaml:"ratelimit" mapstructure:"ratelimit"`
	Snowflake snowflake `yaml:"snowflake" mapstructure:"snowflake"`
	Jaeger    jaeger    `yaml:"jaeger" mapstructure:"jaeger"`
}

type server struct {
	Addr           string   `yaml:"addr"`
	MaxBodySize    int      `yaml:"max_body_size" mapstructure:"max_body_size"`
	AllowOrigins   []string `yaml:"allow_origins" mapstructure:"allow_origins"`
	PprofAddr      string   `yaml:"pprof_addr" mapstructure:"pprof_addr"`
	UploadTempDir  string   `yaml:"upload_temp_dir" mapstructure:"upload_temp_dir"`
	ServiceName    string   `yaml:"service_name" mapstructure:"service_name"`
	MetricsEnabled bool     `yaml:"metrics_enabled" mapstructure:"metrics_enabled"`
}

type database struct {
	Driver          string        `yaml:"driver"`
	SqlitePath      string        `yaml:"sqlite_path" mapstructure:"sqlite_path"`
	Mysql           mysql         `yaml:"mysql"`
	MaxOpenConns    int           `yaml:"max_open_conns" mapstructure:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns" mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" mapstructure:"conn_max_lifetime"`
}

type mysql struct {
	Addr     string `yaml:"addr"`
	Database string `yaml:"database"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Charset  string `yaml:"charset"`
}

type redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type rabbitmq struct {
	Enabled  bool   `yaml:"enabled"`
	Addr     string `yaml:"addr"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type minio struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key" mapstructure:"access_key"`
	SecretKey string `yaml:"secret_key" mapstructure:"secret_key"`
	UseSSL    bool   `yaml:"use_ssl" mapstructure:"use_ssl"`
	Bucket    string `yaml:"bucket"`
	PublicURL string `yaml:"public_url" mapstructure:"public_url"`
}

type jwt struct {
	Secret     string        `yaml:"secret"`
	Timeout    time.Duration `yaml:"timeout"`
	MaxRefresh time.Duration `yaml:"max_refresh" mapstructure:"max_refresh"`
	Secure     bool          `yaml:"secure_cookie" mapstructure:"secure_cookie"`
}

type rateLimit struct {
	Enabled   bool          `yaml:"enabled"`
	Window    time.Duration `yaml:"window"`
	GlobalMax int64         `yaml:"global_max" mapstructure:"global_max"`
	AuthMax   int64         `yaml:"auth_max" mapstructure:"auth_max"`
	LockTTL   time.Duration `yaml:"lock_ttl" mapstructure:"lock_ttl"`
}

type snowflake struct {
	Node int64 `yaml:"node"`
}

type jaeger struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}
