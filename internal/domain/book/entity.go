package book

import (
	"strings"
	"time"
)

// 标价范围(分)
const (
	MinPrice int64 = 1
	MaxPrice int64 = 99999999
)

// Book 图书实体(聚合根)
// 设计说明:
// 1. 价格使用int64存储"分"为单位(避免浮点数精度问题)
// 2. AuthorID、CategoryID必须指向已存在的作者和分类(创建时由Service校验)
// 3. Price是标价,实际售价由当天生效的折扣决定(见pricing.go)
type Book struct {
	ID         uint
	CategoryID uint
	AuthorID   uint
	Title      string // 书名
	Summary    string // 简介
	Price      int64  // 标价(分)
	CoverPhoto string // 封面图
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewBook 创建新图书(工厂方法)
func NewBook(categoryID, authorID uint, title, summary string, price int64, coverPhoto string) (*Book, error) {
	b := &Book{
		CategoryID: categoryID,
		AuthorID:   authorID,
		Title:      strings.TrimSpace(title),
		Summary:    summary,
		Price:      price,
		CoverPhoto: coverPhoto,
	}
	if err := b.validate(); err != nil {
		return nil, err
	}
	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now
	return b, nil
}

// UpdatePrice 更新标价(领域行为)
func (b *Book) UpdatePrice(newPrice int64) error {
	if !validPrice(newPrice) {
		return ErrInvalidPrice
	}
	b.Price = newPrice
	b.UpdatedAt = time.Now()
	return nil
}

// UpdateInfo 更新基本信息,空值表示不修改
func (b *Book) UpdateInfo(title, summary, coverPhoto string) {
	if t := strings.TrimSpace(title); t != "" {
		b.Title = t
	}
	if summary != "" {
		b.Summary = summary
	}
	if coverPhoto != "" {
		b.CoverPhoto = coverPhoto
	}
	b.UpdatedAt = time.Now()
}

func (b *Book) validate() error {
	if b.Title == "" {
		return ErrEmptyTitle
	}
	if b.AuthorID == 0 || b.CategoryID == 0 {
		return ErrInvalidReference
	}
	if !validPrice(b.Price) {
		return ErrInvalidPrice
	}
	return nil
}

func validPrice(p int64) bool {
	return p >= MinPrice && p <= MaxPrice
}
