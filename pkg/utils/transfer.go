package utils

import (
	"strconv"
	"strings"

	"xTube.com/pkg/errno"
)

// Transfer 把 jwt claims 中的 id 转成 int64，失败返回 -1
func Transfer(value interface{}) int64 {
	switch v := value.(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	case string:
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			return id
		}
	}
	return -1
}

// ParseID 校验外部传入的实体 ID 格式，只接受正的十进制 int64
func ParseID(raw, field string) (int64, error) {
	raw = strings.TrimSpace(raw)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errno.ValidationErr.WithMessage("Invalid " + field)
	}
	return id, nil
}

// FormatID 实体 ID 转字符串
func FormatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// EscapeLike 转义 LIKE 通配符，配合 ESCAPE '!' 使用
func EscapeLike(s string) string {
	r := strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")
	return r.Replace(s)
}
