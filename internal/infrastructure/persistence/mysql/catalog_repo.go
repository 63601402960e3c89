package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// catalogRepository 目录查询(列表、折扣列表、搜索、详情、批量取价、排行榜)
// 每次调用都从数据库重新计算,不做缓存
type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository 创建目录查询仓储
func NewCatalogRepository(db *gorm.DB) book.CatalogRepository {
	return &catalogRepository{db: db}
}

// List 全部图书
func (r *catalogRepository) List(ctx context.Context, q book.ListQuery, asOf time.Time) ([]*book.CatalogBook, int64, error) {
	db := getDB(ctx, r.db)
	scopes := filterScopes(q.Filter)

	return r.page(
		catalogFrom(db, asOf, leftJoin).Scopes(scopes...),
		catalogFrom(db, asOf, leftJoin).Scopes(scopes...),
		priceOrder(q.Sort), q.Offset, q.Limit,
	)
}

// ListDiscounted 当天有生效折扣的图书
// 先取有生效折扣的图书ID;一个都没有时直接返回空页,不再执行目录JOIN
func (r *catalogRepository) ListDiscounted(ctx context.Context, q book.ListQuery, asOf time.Time) ([]*book.CatalogBook, int64, error) {
	db := getDB(ctx, r.db)

	var ids []uint
	err := newQuery(db).
		Table("discounts").
		Scopes(activeOn(asOf)).
		Distinct().
		Pluck("book_id", &ids).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询生效折扣失败")
	}
	if len(ids) == 0 {
		return []*book.CatalogBook{}, 0, nil
	}

	scopes := append([]scope{inBooks(ids)}, filterScopes(q.Filter)...)
	return r.page(
		catalogFrom(db, asOf, leftJoin).Scopes(scopes...),
		catalogFrom(db, asOf, leftJoin).Scopes(scopes...),
		"b.id ASC", q.Offset, q.Limit,
	)
}

// Search 书名或作者名包含term
// term已经是小写,两边都用LOWER保证MySQL二进制排序规则下也不区分大小写
func (r *catalogRepository) Search(ctx context.Context, term string, offset, limit int, asOf time.Time) ([]*book.CatalogBook, int64, error) {
	db := getDB(ctx, r.db)
	match := matchTitleOrAuthor(term)

	return r.page(
		catalogFrom(db, asOf, leftJoin).Scopes(match),
		catalogFrom(db, asOf, leftJoin).Scopes(match),
		"b.id ASC", offset, limit,
	)
}

// FindByID 单本图书
func (r *catalogRepository) FindByID(ctx context.Context, id uint, asOf time.Time) (*book.CatalogBook, error) {
	var rows []catalogRow
	err := catalogFrom(getDB(ctx, r.db), asOf, leftJoin).
		Select(catalogColumns).
		Where("b.id = ?", id).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询图书失败")
	}
	if len(rows) == 0 {
		return nil, book.ErrBookNotFound
	}
	return rows[0].toEntity(), nil
}

// CurrentPrices 批量查询当天售价(下单时在事务内调用)
func (r *catalogRepository) CurrentPrices(ctx context.Context, ids []uint, asOf time.Time) (map[uint]int64, error) {
	prices := make(map[uint]int64, len(ids))
	if len(ids) == 0 {
		return prices, nil
	}

	db := getDB(ctx, r.db)
	var rows []struct {
		ID           uint
		CurrentPrice int64
	}
	err := newQuery(db).
		Table("books AS b").
		Joins("LEFT JOIN (?) AS d ON d.book_id = b.id", activeDiscountSubquery(db, asOf)).
		Select("b.id, " + currentPriceExpr + " AS current_price").
		Scopes(inBooks(ids)).
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询图书售价失败")
	}

	for _, row := range rows {
		prices[row.ID] = row.CurrentPrice
	}
	return prices, nil
}

// page 执行count查询和行查询
// 两个查询由调用方用同一组scope构造;offset/limit只加在行查询上
func (r *catalogRepository) page(rowQuery, countQuery *gorm.DB, order string, offset, limit int) ([]*book.CatalogBook, int64, error) {
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书总数失败")
	}

	var rows []catalogRow
	err := rowQuery.
		Select(catalogColumns).
		Order(order).
		Scopes(pageScope(offset, limit)).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书列表失败")
	}
	return toCatalogBooks(rows), total, nil
}

func inBooks(ids []uint) scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("b.id IN ?", ids)
	}
}

// matchTitleOrAuthor LIKE %term%,通配符原样传入
func matchTitleOrAuthor(term string) scope {
	pattern := "%" + term + "%"
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("(LOWER(b.title) LIKE ? OR LOWER(a.name) LIKE ?)", pattern, pattern)
	}
}
