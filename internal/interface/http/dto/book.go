package dto

// PageQuery 通用分页参数
// limit显式传0时校验失败,不会被当成"使用默认值"
type PageQuery struct {
	Offset int  `form:"offset" binding:"min=0" example:"0"`
	Limit  *int `form:"limit" binding:"omitempty,min=1,max=100" example:"10"`
}

// ListBooksQuery 图书列表参数
// category_id/author_id/min_stars不传表示不过滤
type ListBooksQuery struct {
	PageQuery
	CategoryID *uint    `form:"category_id" binding:"omitempty,min=1" example:"1"`
	AuthorID   *uint    `form:"author_id" binding:"omitempty,min=1" example:"1"`
	MinStars   *float64 `form:"min_stars" binding:"omitempty,min=1,max=5" example:"4"`
	SortBy     string   `form:"sort_by" binding:"omitempty,oneof=price_asc price_desc" example:"price_asc"`
}

// DiscountedBooksQuery 折扣图书列表参数(不支持排序)
type DiscountedBooksQuery struct {
	PageQuery
	CategoryID *uint    `form:"category_id" binding:"omitempty,min=1" example:"1"`
	AuthorID   *uint    `form:"author_id" binding:"omitempty,min=1" example:"1"`
	MinStars   *float64 `form:"min_stars" binding:"omitempty,min=1,max=5" example:"4"`
}

// SearchBooksQuery 搜索参数,按书名或作者名模糊匹配
type SearchBooksQuery struct {
	PageQuery
	Query string `form:"query" binding:"required,max=100" example:"orwell"`
}

// RankQuery 排行榜参数
type RankQuery struct {
	Limit *int `form:"limit" binding:"omitempty,min=1,max=100" example:"10"`
}

// PriceQuoteQuery 报价参数
type PriceQuoteQuery struct {
	Quantity int `form:"quantity,default=1" binding:"min=1,max=999" example:"2"`
}

// CreateBookRequest 上架请求
type CreateBookRequest struct {
	CategoryID uint   `json:"category_id" binding:"required" example:"1"`
	AuthorID   uint   `json:"author_id" binding:"required" example:"1"`
	Title      string `json:"title" binding:"required,max=200" example:"Animal Farm"`
	Summary    string `json:"summary" binding:"max=5000" example:"A farm is taken over by its overworked animals"`
	Price      int64  `json:"price" binding:"required,min=1,max=99999999" example:"2000"` // 标价(分)
	CoverPhoto string `json:"cover_photo" binding:"omitempty,url,max=500" example:"https://example.com/farm.jpg"`
}

// UpdateBookRequest 修改图书请求,不传的字段不修改
type UpdateBookRequest struct {
	CategoryID *uint  `json:"category_id" binding:"omitempty,min=1" example:"1"`
	AuthorID   *uint  `json:"author_id" binding:"omitempty,min=1" example:"1"`
	Title      string `json:"title" binding:"max=200" example:"Animal Farm"`
	Summary    string `json:"summary" binding:"max=5000"`
	Price      *int64 `json:"price" binding:"omitempty,min=1,max=99999999" example:"2500"`
	CoverPhoto string `json:"cover_photo" binding:"omitempty,url,max=500"`
}

// AuthorRequest 新建/修改作者
type AuthorRequest struct {
	Name string `json:"name" binding:"max=100" example:"George Orwell"`
	Bio  string `json:"bio" binding:"max=2000" example:"English novelist"`
}

// CategoryRequest 新建/修改分类
type CategoryRequest struct {
	Name        string `json:"name" binding:"max=100" example:"Fiction"`
	Description string `json:"description" binding:"max=2000" example:"Novels and short stories"`
}

// DiscountRequest 新建/修改折扣
// 日期格式YYYY-MM-DD,两端都包含
type DiscountRequest struct {
	BookID    uint   `json:"book_id" example:"1"` // 只在新建时使用
	StartDate string `json:"start_date" binding:"required" example:"2024-05-01"`
	EndDate   string `json:"end_date" binding:"required" example:"2024-05-31"`
	Price     int64  `json:"price" binding:"required,min=1" example:"1500"` // 折扣价(分)
}

// ReviewRequest 发表书评
type ReviewRequest struct {
	BookID uint   `json:"book_id" binding:"required" example:"1"`
	Title  string `json:"title" binding:"required,max=200" example:"Still relevant"`
	Body   string `json:"body" binding:"max=5000" example:"Read it twice."`
	Rating int    `json:"rating" binding:"required,min=1,max=5" example:"5"`
}

// ListReviewsQuery 书评列表参数
type ListReviewsQuery struct {
	PageQuery
	RatingStar *int `form:"rating_star" binding:"omitempty,min=1,max=5" example:"5"`
	IsDesc     bool `form:"is_desc" example:"true"`
}

// CreateOrderRequest 下单请求
type CreateOrderRequest struct {
	Items []CreateOrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// CreateOrderItemRequest 订单明细项
type CreateOrderItemRequest struct {
	BookID   uint `json:"book_id" binding:"required" example:"1"`
	Quantity int  `json:"quantity" binding:"required,min=1,max=999" example:"2"`
}
