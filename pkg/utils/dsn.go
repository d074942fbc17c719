package utils

import (
	"fmt"
	"strings"

	"xTube.com/config"
)

// GetMysqlDsn 生成 mysql 的 dsn
func GetMysqlDsn() string {
	m := config.ConfigInfo.Database.Mysql
	dsn := strings.Join([]string{m.Username, ":", m.Password, "@tcp(", m.Addr, ")/", m.Database,
		"?charset=" + m.Charset + "&parseTime=true&loc=Local"}, "")
	return dsn
}

// GetRabbitMqURL 生成 amqp 地址
func GetRabbitMqURL() string {
	r := config.ConfigInfo.RabbitMq
	return fmt.Sprintf("amqp://%s:%s@%s/", r.Username, r.Password, r.Addr)
}
