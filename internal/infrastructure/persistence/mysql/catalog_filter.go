package mysql

import (
	"gorm.io/gorm"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

// 过滤条件按固定顺序组合成GORM scope列表:分类 → 作者 → 最低评分
// 行查询和count查询套用同一个列表,count永远等于不分页时的行数

type scope = func(*gorm.DB) *gorm.DB

// filterScopes 过滤条件 → scope列表(nil条件对应空操作)
func filterScopes(f book.Filter) []scope {
	return []scope{
		byCategory(f.CategoryID),
		byAuthor(f.AuthorID),
		byMinStars(f.MinStars),
	}
}

func byCategory(id *uint) scope {
	return func(db *gorm.DB) *gorm.DB {
		if id == nil {
			return db
		}
		return db.Where("b.category_id = ?", *id)
	}
}

func byAuthor(id *uint) scope {
	return func(db *gorm.DB) *gorm.DB {
		if id == nil {
			return db
		}
		return db.Where("b.author_id = ?", *id)
	}
}

// byMinStars 平均评分 >= minStars
// 评分统计作为派生表JOIN一次,没有评论的图书被内连接排除
func byMinStars(minStars *float64) scope {
	return func(db *gorm.DB) *gorm.DB {
		if minStars == nil {
			return db
		}
		return db.
			Joins("JOIN (?) AS r ON r.book_id = b.id", ratingSubquery(db)).
			Where("r.avg_rating >= ?", *minStars)
	}
}

// priceOrder 售价排序,最后按图书ID保证顺序稳定
func priceOrder(s book.PriceSort) string {
	switch s {
	case book.SortPriceAsc:
		return currentPriceExpr + " ASC, b.id ASC"
	case book.SortPriceDesc:
		return currentPriceExpr + " DESC, b.id ASC"
	default:
		return "b.id ASC"
	}
}
