// Package pipeline 以 过滤 → 连接 → 派生 → 排序 → 分页计数 的固定阶段组装只读视图，
// 所有连接与计数都在数据库侧完成，每个视图一次往返。
package pipeline

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"xTube.com/pkg/pagination"
)

// Join 连接一张表并投影部分列，列以 "<As>_<field>" 命名
type Join struct {
	Table  string
	As     string
	On     string
	Inner  bool
	Fields []string
}

func (j Join) sql() string {
	kind := "LEFT JOIN"
	if j.Inner {
		kind = "INNER JOIN"
	}
	return kind + " " + j.Table + " AS " + j.As + " ON " + j.On
}

// Field 派生列
type Field struct {
	Expr string
	As   string
	Args []interface{}
}

type filter struct {
	query string
	args  []interface{}
}

// Pipeline 一个视图的阶段描述，不持有连接
type Pipeline struct {
	table   string
	columns []string
	filters []filter
	joins   []Join
	derived []Field
	orders  []string
}

// New 以 table 为基础集合，columns 为基础投影（不带表名前缀）
func New(table string, columns ...string) *Pipeline {
	return &Pipeline{table: table, columns: columns}
}

// Where 过滤阶段
func (p *Pipeline) Where(query string, args ...interface{}) *Pipeline {
	p.filters = append(p.filters, filter{query: query, args: args})
	return p
}

// Join 连接阶段
func (p *Pipeline) Join(joins ...Join) *Pipeline {
	p.joins = append(p.joins, joins...)
	return p
}

// Derive 派生阶段
func (p *Pipeline) Derive(fields ...Field) *Pipeline {
	p.derived = append(p.derived, fields...)
	return p
}

// OrderBy 排序阶段，按调用顺序作为多级排序键
func (p *Pipeline) OrderBy(exprs ...string) *Pipeline {
	p.orders = append(p.orders, exprs...)
	return p
}

// base 过滤+连接，计数子查询与数据子查询共用
func (p *Pipeline) base(db *gorm.DB) *gorm.DB {
	tx := db.Table(p.table)
	for _, j := range p.joins {
		tx = tx.Joins(j.sql())
	}
	for _, f := range p.filters {
		tx = tx.Where(f.query, f.args...)
	}
	return tx
}

func (p *Pipeline) selectClause() (string, []interface{}) {
	cols := make([]string, 0, len(p.columns)+len(p.derived)+4)
	for _, c := range p.columns {
		cols = append(cols, p.table+"."+c)
	}
	for _, j := range p.joins {
		for _, f := range j.Fields {
			cols = append(cols, j.As+"."+f+" AS "+j.As+"_"+f)
		}
	}
	var args []interface{}
	for _, d := range p.derived {
		cols = append(cols, d.Expr+" AS "+d.As)
		args = append(args, d.Args...)
	}
	return strings.Join(cols, ", "), args
}

func (p *Pipeline) query(db *gorm.DB) *gorm.DB {
	tx := p.base(db)
	sel, args := p.selectClause()
	if len(args) > 0 {
		tx = tx.Select(sel, args...)
	} else {
		tx = tx.Select(sel)
	}
	for _, o := range p.orders {
		tx = tx.Order(o)
	}
	return tx
}

// One 取第一条，不存在返回 gorm.ErrRecordNotFound
func (p *Pipeline) One(ctx context.Context, db *gorm.DB, dest interface{}) error {
	res := p.query(db.WithContext(ctx)).Limit(1).Scan(dest)
	if res.Error != nil {
		return errors.WithMessage(res.Error, "assemble "+p.table)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// All 取全部结果
func (p *Pipeline) All(ctx context.Context, db *gorm.DB, dest interface{}) error {
	if err := p.query(db.WithContext(ctx)).Scan(dest).Error; err != nil {
		return errors.WithMessage(err, "assemble "+p.table)
	}
	return nil
}

// Count 仅执行计数子查询
func (p *Pipeline) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	if err := p.base(db.WithContext(ctx)).Count(&total).Error; err != nil {
		return 0, errors.WithMessage(err, "count "+p.table)
	}
	return total, nil
}

// Page 分页结果
type Page[T any] struct {
	Items      []T   `json:"items"`
	TotalItems int64 `json:"totalItems"`
	TotalPages int64 `json:"totalPages"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
}

// Paginate 计数与取数两个子查询并行执行后合并；无结果时返回空页而不是错误
func Paginate[T any](ctx context.Context, db *gorm.DB, p *Pipeline, params pagination.Params) (*Page[T], error) {
	var (
		total int64
		items = make([]T, 0, params.Limit)
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := p.Count(gctx, db)
		total = n
		return err
	})
	g.Go(func() error {
		if err := p.query(db.WithContext(gctx)).Offset(params.Skip()).Limit(params.Limit).Scan(&items).Error; err != nil {
			return errors.WithMessage(err, "assemble "+p.table)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if items == nil {
		items = make([]T, 0)
	}
	return &Page[T]{
		Items:      items,
		TotalItems: total,
		TotalPages: params.TotalPages(total),
		Page:       params.Page,
		Limit:      params.Limit,
	}, nil
}
