package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookcatalog/internal/domain/category"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository 创建分类仓储
func NewCategoryRepository(db *gorm.DB) category.Repository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, c *category.Category) error {
	model := &CategoryModel{Name: c.Name, Description: c.Description}
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return category.ErrCategoryDuplicate
		}
		return apperrors.Wrap(err, "创建分类失败")
	}
	c.ID = model.ID
	c.CreatedAt = model.CreatedAt
	c.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *categoryRepository) FindByID(ctx context.Context, id uint) (*category.Category, error) {
	var model CategoryModel
	if err := getDB(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, category.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(err, "查询分类失败")
	}
	return toCategoryEntity(&model), nil
}

// List 按ID升序
func (r *categoryRepository) List(ctx context.Context, offset, limit int) ([]*category.Category, int64, error) {
	var (
		models []CategoryModel
		total  int64
	)
	db := getDB(ctx, r.db)
	if err := db.Model(&CategoryModel{}).Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询分类总数失败")
	}
	if err := db.Order("id ASC").Scopes(pageScope(offset, limit)).Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询分类列表失败")
	}

	categories := make([]*category.Category, len(models))
	for i := range models {
		categories[i] = toCategoryEntity(&models[i])
	}
	return categories, total, nil
}

func (r *categoryRepository) Update(ctx context.Context, c *category.Category) error {
	result := getDB(ctx, r.db).Model(&CategoryModel{ID: c.ID}).Updates(map[string]interface{}{
		"name":        c.Name,
		"description": c.Description,
		"updated_at":  c.UpdatedAt,
	})
	if result.Error != nil {
		if isDuplicateError(result.Error) {
			return category.ErrCategoryDuplicate
		}
		return apperrors.Wrap(result.Error, "更新分类失败")
	}
	if result.RowsAffected == 0 {
		return category.ErrCategoryNotFound
	}
	return nil
}

// Delete 删除分类
// 先检查引用:SQLite默认不开外键约束,MySQL的外键错误作为兜底
func (r *categoryRepository) Delete(ctx context.Context, id uint) error {
	db := getDB(ctx, r.db)

	var refs int64
	if err := db.Model(&BookModel{}).Where("category_id = ?", id).Count(&refs).Error; err != nil {
		return apperrors.Wrap(err, "查询分类引用失败")
	}
	if refs > 0 {
		return category.ErrCategoryInUse
	}

	result := db.Delete(&CategoryModel{}, id)
	if result.Error != nil {
		if isForeignKeyError(result.Error) {
			return category.ErrCategoryInUse
		}
		return apperrors.Wrap(result.Error, "删除分类失败")
	}
	if result.RowsAffected == 0 {
		return category.ErrCategoryNotFound
	}
	return nil
}

func (r *categoryRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := getDB(ctx, r.db).Model(&CategoryModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, apperrors.Wrap(err, "查询分类失败")
	}
	return count > 0, nil
}

func toCategoryEntity(model *CategoryModel) *category.Category {
	return &category.Category{
		ID:          model.ID,
		Name:        model.Name,
		Description: model.Description,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}
