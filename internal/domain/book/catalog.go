package book

import (
	"context"
	"strings"
	"time"
)

// CatalogBook 目录视图:图书 × 作者 × 分类 + 当天售价
type CatalogBook struct {
	ID           uint
	Title        string
	Summary      string
	CoverPhoto   string
	CategoryID   uint
	CategoryName string
	AuthorID     uint
	AuthorName   string
	ListPrice    int64 // 标价(分)
	CurrentPrice int64 // 当天售价(分)
}

// RankedBook 排行榜条目
type RankedBook struct {
	CatalogBook
	AvgRating      float64 // 平均评分,无评论为0
	ReviewCount    int64   // 评论数
	DiscountAmount int64   // 标价 - 最低生效折扣价(分),只有top_discounted填充
}

// PriceSort 价格排序方式
type PriceSort string

const (
	// SortNone 不按价格排序(按图书ID升序)
	SortNone PriceSort = ""
	// SortPriceAsc 当天售价升序
	SortPriceAsc PriceSort = "price_asc"
	// SortPriceDesc 当天售价降序
	SortPriceDesc PriceSort = "price_desc"
)

// Valid 是否为已知排序方式
func (s PriceSort) Valid() bool {
	switch s {
	case SortNone, SortPriceAsc, SortPriceDesc:
		return true
	}
	return false
}

// Filter 目录过滤条件,nil表示不过滤
// 用指针区分"未传"和"传了0",不把0当成未设置
type Filter struct {
	CategoryID *uint
	AuthorID   *uint
	MinStars   *float64 // 平均评分下限(含),没有评论的图书永远不满足
}

// Validate 校验过滤条件
func (f Filter) Validate() error {
	if f.MinStars != nil && (*f.MinStars < 1 || *f.MinStars > 5) {
		return ErrInvalidMinStars
	}
	return nil
}

// ListQuery 目录列表查询参数
type ListQuery struct {
	Offset int
	Limit  int
	Filter Filter
	Sort   PriceSort
}

// NormalizeSearchTerm 去掉首尾空白并转小写
// %和_按原样交给LIKE,不做转义
func NormalizeSearchTerm(term string) (string, error) {
	t := strings.ToLower(strings.TrimSpace(term))
	if t == "" {
		return "", ErrEmptySearchTerm
	}
	return t, nil
}

// CatalogRepository 目录查询仓储
// 所有查询都在一条SQL里用"当天最低生效折扣价"子查询计算售价,
// 返回的total是分页前的匹配总数(与行查询使用同一组过滤条件)
type CatalogRepository interface {
	// List 全部图书,可过滤、按售价排序
	List(ctx context.Context, q ListQuery, asOf time.Time) ([]*CatalogBook, int64, error)

	// ListDiscounted 当天有生效折扣的图书,按图书ID升序(q.Sort被忽略)
	ListDiscounted(ctx context.Context, q ListQuery, asOf time.Time) ([]*CatalogBook, int64, error)

	// Search 书名或作者名包含term(不区分大小写)
	Search(ctx context.Context, term string, offset, limit int, asOf time.Time) ([]*CatalogBook, int64, error)

	// FindByID 单本图书,不存在返回ErrBookNotFound
	FindByID(ctx context.Context, id uint, asOf time.Time) (*CatalogBook, error)

	// CurrentPrices 批量查询当天售价,不存在的ID不出现在结果中
	CurrentPrices(ctx context.Context, ids []uint, asOf time.Time) (map[uint]int64, error)

	// Recommended 平均评分降序、标价升序(只含有评论的图书)
	Recommended(ctx context.Context, limit int, asOf time.Time) ([]*RankedBook, error)

	// Popular 评论数降序、标价升序(只含有评论的图书)
	Popular(ctx context.Context, limit int, asOf time.Time) ([]*RankedBook, error)

	// TopDiscounted 折扣金额降序、标价升序(只含当天有生效折扣的图书)
	TopDiscounted(ctx context.Context, limit int, asOf time.Time) ([]*RankedBook, error)
}
