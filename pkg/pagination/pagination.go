package pagination

import (
	"math"
	"strconv"
	"strings"

	"xTube.com/pkg/constants"
)

// Params 规范化后的分页参数
type Params struct {
	Page  int
	Limit int
}

// Parse 解析 page/limit，非法或缺省时回落到默认值，limit 上限 MaxLimit；
// page 截断到 skip 不溢出的最大页
func Parse(page, limit string) Params {
	p := Params{Page: constants.DefaultPage, Limit: constants.DefaultLimit}
	if v, err := strconv.Atoi(strings.TrimSpace(page)); err == nil && v > 1 {
		p.Page = v
	}
	if v, err := strconv.Atoi(strings.TrimSpace(limit)); err == nil && v > 0 {
		p.Limit = v
	}
	if p.Limit > constants.MaxLimit {
		p.Limit = constants.MaxLimit
	}
	if maxPage := math.MaxInt / p.Limit; p.Page > maxPage {
		p.Page = maxPage
	}
	return p
}

// New 由数值构造，规则与 Parse 相同
func New(page, limit int) Params {
	return Parse(strconv.Itoa(page), strconv.Itoa(limit))
}

// Skip 需要跳过的记录数
func (p Params) Skip() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages ceil(total / limit)，total 为 0 时为 0
func (p Params) TotalPages(total int64) int64 {
	if total <= 0 || p.Limit <= 0 {
		return 0
	}
	limit := int64(p.Limit)
	return (total + limit - 1) / limit
}
