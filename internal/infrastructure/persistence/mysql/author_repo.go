package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookcatalog/internal/domain/author"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

type authorRepository struct {
	db *gorm.DB
}

// NewAuthorRepository 创建作者仓储
func NewAuthorRepository(db *gorm.DB) author.Repository {
	return &authorRepository{db: db}
}

func (r *authorRepository) Create(ctx context.Context, a *author.Author) error {
	model := &AuthorModel{Name: a.Name, Bio: a.Bio}
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return author.ErrAuthorDuplicate
		}
		return apperrors.Wrap(err, "创建作者失败")
	}
	a.ID = model.ID
	a.CreatedAt = model.CreatedAt
	a.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *authorRepository) FindByID(ctx context.Context, id uint) (*author.Author, error) {
	var model AuthorModel
	if err := getDB(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, apperrors.Wrap(err, "查询作者失败")
	}
	return toAuthorEntity(&model), nil
}

// List 按ID升序
func (r *authorRepository) List(ctx context.Context, offset, limit int) ([]*author.Author, int64, error) {
	var (
		models []AuthorModel
		total  int64
	)
	db := getDB(ctx, r.db)
	if err := db.Model(&AuthorModel{}).Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询作者总数失败")
	}
	if err := db.Order("id ASC").Scopes(pageScope(offset, limit)).Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询作者列表失败")
	}

	authors := make([]*author.Author, len(models))
	for i := range models {
		authors[i] = toAuthorEntity(&models[i])
	}
	return authors, total, nil
}

func (r *authorRepository) Update(ctx context.Context, a *author.Author) error {
	result := getDB(ctx, r.db).Model(&AuthorModel{ID: a.ID}).Updates(map[string]interface{}{
		"name":       a.Name,
		"bio":        a.Bio,
		"updated_at": a.UpdatedAt,
	})
	if result.Error != nil {
		if isDuplicateError(result.Error) {
			return author.ErrAuthorDuplicate
		}
		return apperrors.Wrap(result.Error, "更新作者失败")
	}
	if result.RowsAffected == 0 {
		return author.ErrAuthorNotFound
	}
	return nil
}

// Delete 删除作者
// 先检查引用:SQLite默认不开外键约束,MySQL的外键错误作为兜底
func (r *authorRepository) Delete(ctx context.Context, id uint) error {
	db := getDB(ctx, r.db)

	var refs int64
	if err := db.Model(&BookModel{}).Where("author_id = ?", id).Count(&refs).Error; err != nil {
		return apperrors.Wrap(err, "查询作者引用失败")
	}
	if refs > 0 {
		return author.ErrAuthorInUse
	}

	result := db.Delete(&AuthorModel{}, id)
	if result.Error != nil {
		if isForeignKeyError(result.Error) {
			return author.ErrAuthorInUse
		}
		return apperrors.Wrap(result.Error, "删除作者失败")
	}
	if result.RowsAffected == 0 {
		return author.ErrAuthorNotFound
	}
	return nil
}

func (r *authorRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := getDB(ctx, r.db).Model(&AuthorModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, apperrors.Wrap(err, "查询作者失败")
	}
	return count > 0, nil
}

func toAuthorEntity(model *AuthorModel) *author.Author {
	return &author.Author{
		ID:        model.ID,
		Name:      model.Name,
		Bio:       model.Bio,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
