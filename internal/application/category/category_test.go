package category_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcategory "github.com/xiebiao/bookcatalog/internal/application/category"
	"github.com/xiebiao/bookcatalog/internal/domain/category"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/dbtest"
)

func TestCategoryUseCases(t *testing.T) {
	fx := dbtest.NewFixture(t, dbtest.Open(t))
	ctx := context.Background()

	create := appcategory.NewCreateCategoryUseCase(fx.Categories)
	update := appcategory.NewUpdateCategoryUseCase(fx.Categories)
	remove := appcategory.NewDeleteCategoryUseCase(fx.Categories)

	fiction, err := create.Execute(ctx, appcategory.CreateCategoryRequest{Name: "Fiction", Description: "Novels"})
	require.NoError(t, err)
	_, err = create.Execute(ctx, appcategory.CreateCategoryRequest{Name: "Classic"})
	require.NoError(t, err)

	tests := []struct {
		name    string
		req     appcategory.CreateCategoryRequest
		wantErr error
	}{
		{"重名", appcategory.CreateCategoryRequest{Name: "Fiction"}, category.ErrCategoryDuplicate},
		{"名字为空", appcategory.CreateCategoryRequest{Name: ""}, category.ErrEmptyName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := create.Execute(ctx, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("列表默认分页", func(t *testing.T) {
		page, err := appcategory.NewListCategoriesUseCase(fx.Categories).Execute(ctx, 0, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(2), page.Total)
		assert.Equal(t, 1, page.PageNum)
		assert.Len(t, page.Data, 2)
	})

	t.Run("修改描述", func(t *testing.T) {
		got, err := update.Execute(ctx, appcategory.UpdateCategoryRequest{ID: fiction.ID, Description: "Made-up stories"})
		require.NoError(t, err)
		assert.Equal(t, "Fiction", got.Name)
		assert.Equal(t, "Made-up stories", got.Description)

		got, err = appcategory.NewGetCategoryUseCase(fx.Categories).Execute(ctx, fiction.ID)
		require.NoError(t, err)
		assert.Equal(t, "Made-up stories", got.Description)
	})

	t.Run("修改不存在的分类", func(t *testing.T) {
		_, err := update.Execute(ctx, appcategory.UpdateCategoryRequest{ID: 999, Name: "X"})
		assert.ErrorIs(t, err, category.ErrCategoryNotFound)
	})

	t.Run("有图书引用不能删除", func(t *testing.T) {
		c, err := fx.Categories.FindByID(ctx, fiction.ID)
		require.NoError(t, err)
		fx.Book("Emma", fx.Author("Jane Austen"), c, 1800)

		assert.ErrorIs(t, remove.Execute(ctx, fiction.ID), category.ErrCategoryInUse)
	})
}
