package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/xiebiao/bookcatalog/internal/domain/discount"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

type discountRepository struct {
	db *gorm.DB
}

// NewDiscountRepository 创建折扣仓储
func NewDiscountRepository(db *gorm.DB) discount.Repository {
	return &discountRepository{db: db}
}

func (r *discountRepository) Create(ctx context.Context, d *discount.Discount) error {
	model := toDiscountModel(d)
	if err := getDB(ctx, r.db).Omit("Book").Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建折扣失败")
	}
	d.ID = model.ID
	d.CreatedAt = model.CreatedAt
	d.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *discountRepository) FindByID(ctx context.Context, id uint) (*discount.Discount, error) {
	var model DiscountModel
	if err := getDB(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, discount.ErrDiscountNotFound
		}
		return nil, apperrors.Wrap(err, "查询折扣失败")
	}
	return toDiscountEntity(&model), nil
}

func (r *discountRepository) Update(ctx context.Context, d *discount.Discount) error {
	result := getDB(ctx, r.db).Model(&DiscountModel{ID: d.ID}).Updates(map[string]interface{}{
		"start_date": newSQLDate(d.StartDate),
		"end_date":   newSQLDate(d.EndDate),
		"price":      d.Price,
		"updated_at": d.UpdatedAt,
	})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新折扣失败")
	}
	if result.RowsAffected == 0 {
		return discount.ErrDiscountNotFound
	}
	return nil
}

func (r *discountRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&DiscountModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除折扣失败")
	}
	if result.RowsAffected == 0 {
		return discount.ErrDiscountNotFound
	}
	return nil
}

// ListByBook 按开始日期升序
func (r *discountRepository) ListByBook(ctx context.Context, bookID uint) ([]*discount.Discount, error) {
	var models []DiscountModel
	err := getDB(ctx, r.db).
		Where("book_id = ?", bookID).
		Order("start_date ASC, id ASC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询折扣列表失败")
	}
	return toDiscountEntities(models), nil
}

// ListActive 与activeDiscountSubquery使用同一个闭区间条件
func (r *discountRepository) ListActive(ctx context.Context, bookID uint, asOf time.Time) ([]*discount.Discount, error) {
	var models []DiscountModel
	err := getDB(ctx, r.db).
		Where("book_id = ?", bookID).
		Scopes(activeOn(asOf)).
		Order("price ASC, id ASC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询生效折扣失败")
	}
	return toDiscountEntities(models), nil
}

func toDiscountModel(d *discount.Discount) *DiscountModel {
	return &DiscountModel{
		ID:        d.ID,
		BookID:    d.BookID,
		StartDate: newSQLDate(d.StartDate),
		EndDate:   newSQLDate(d.EndDate),
		Price:     d.Price,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func toDiscountEntity(model *DiscountModel) *discount.Discount {
	return &discount.Discount{
		ID:        model.ID,
		BookID:    model.BookID,
		StartDate: model.StartDate.Time(),
		EndDate:   model.EndDate.Time(),
		Price:     model.Price,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

func toDiscountEntities(models []DiscountModel) []*discount.Discount {
	list := make([]*discount.Discount, len(models))
	for i := range models {
		list[i] = toDiscountEntity(&models[i])
	}
	return list
}
