package author_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appauthor "github.com/xiebiao/bookcatalog/internal/application/author"
	"github.com/xiebiao/bookcatalog/internal/domain/author"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/dbtest"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

func TestAuthorUseCases(t *testing.T) {
	fx := dbtest.NewFixture(t, dbtest.Open(t))
	ctx := context.Background()

	create := appauthor.NewCreateAuthorUseCase(fx.Authors)
	get := appauthor.NewGetAuthorUseCase(fx.Authors)
	list := appauthor.NewListAuthorsUseCase(fx.Authors)
	update := appauthor.NewUpdateAuthorUseCase(fx.Authors)
	remove := appauthor.NewDeleteAuthorUseCase(fx.Authors)

	orwell, err := create.Execute(ctx, appauthor.CreateAuthorRequest{Name: " George Orwell ", Bio: "English novelist"})
	require.NoError(t, err)
	assert.Equal(t, "George Orwell", orwell.Name)

	t.Run("重名", func(t *testing.T) {
		_, err := create.Execute(ctx, appauthor.CreateAuthorRequest{Name: "George Orwell"})
		assert.ErrorIs(t, err, author.ErrAuthorDuplicate)
	})

	t.Run("名字为空", func(t *testing.T) {
		_, err := create.Execute(ctx, appauthor.CreateAuthorRequest{Name: "  "})
		assert.ErrorIs(t, err, author.ErrEmptyName)
	})

	t.Run("详情", func(t *testing.T) {
		got, err := get.Execute(ctx, orwell.ID)
		require.NoError(t, err)
		assert.Equal(t, "English novelist", got.Bio)

		_, err = get.Execute(ctx, 999)
		assert.ErrorIs(t, err, author.ErrAuthorNotFound)
	})

	t.Run("列表分页", func(t *testing.T) {
		_, err := create.Execute(ctx, appauthor.CreateAuthorRequest{Name: "Jane Austen"})
		require.NoError(t, err)

		one := 1
		page, err := list.Execute(ctx, 1, &one)
		require.NoError(t, err)
		assert.Equal(t, int64(2), page.Total)
		assert.Equal(t, 2, page.PageNum)
		require.Len(t, page.Data, 1)
		assert.Equal(t, "Jane Austen", page.Data[0].Name)

		tooMany := 1000
		_, err = list.Execute(ctx, 0, &tooMany)
		assert.ErrorIs(t, err, apperrors.ErrLimitTooLarge)

		zero := 0
		_, err = list.Execute(ctx, 0, &zero)
		assert.ErrorIs(t, err, apperrors.ErrInvalidLimit)
	})

	t.Run("修改", func(t *testing.T) {
		got, err := update.Execute(ctx, appauthor.UpdateAuthorRequest{ID: orwell.ID, Name: "Eric Blair"})
		require.NoError(t, err)
		assert.Equal(t, "Eric Blair", got.Name)
		assert.Equal(t, "English novelist", got.Bio)

		_, err = update.Execute(ctx, appauthor.UpdateAuthorRequest{ID: orwell.ID, Name: "Jane Austen"})
		assert.ErrorIs(t, err, author.ErrAuthorDuplicate)
	})

	t.Run("有图书引用不能删除", func(t *testing.T) {
		a, err := fx.Authors.FindByID(ctx, orwell.ID)
		require.NoError(t, err)
		fx.Book("Animal Farm", a, fx.Category("Fiction"), 2000)

		assert.ErrorIs(t, remove.Execute(ctx, orwell.ID), author.ErrAuthorInUse)
	})

	t.Run("删除", func(t *testing.T) {
		a := fx.Author("Nobody")
		require.NoError(t, remove.Execute(ctx, a.ID))
		assert.ErrorIs(t, remove.Execute(ctx, a.ID), author.ErrAuthorNotFound)
	})
}
