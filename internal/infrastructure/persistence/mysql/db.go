package mysql

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 自动迁移表结构（AutoMigrate）
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	db, err := gorm.Open(mysql.Open(cfg.Database.DSN()), NewGormConfig(logLevel))
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	// 最大打开连接数（建议：CPU核数 * 2 + 磁盘数量）
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	// 最大空闲连接数（建议：MaxOpenConns的1/4到1/2）
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	// 连接最大存活时间（防止数据库主动断开连接）
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Info().Str("host", cfg.Database.Host).Str("db", cfg.Database.DBName).Msg("数据库连接成功")

	// 注意：生产环境应使用专门的迁移工具（如golang-migrate）
	if err := AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// NewGormConfig GORM配置（MySQL与测试用的SQLite共用）
// TranslateError把驱动的唯一索引冲突统一翻译成gorm.ErrDuplicatedKey
func NewGormConfig(level logger.LogLevel) *gorm.Config {
	return &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().Truncate(time.Microsecond)
		},
	}
}

// AutoMigrate 自动迁移表结构
// 学习要点：
// 1. AutoMigrate只会创建表、添加字段，不会删除或修改现有字段
// 2. 生产环境应使用版本化的迁移脚本，不要依赖AutoMigrate
// 3. 先迁移被引用的表（外键约束）
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&UserModel{},
		&AuthorModel{},
		&CategoryModel{},
		&BookModel{},
		&DiscountModel{},
		&ReviewModel{},
		&OrderModel{},
		&OrderItemModel{},
	)
}

// UserModel GORM用户模型
// 设计说明：
// 1. 这是infrastructure层的数据模型，包含GORM tag
// 2. domain/user/entity.go是领域实体，不依赖GORM
// 3. Repository负责两者之间的转换
type UserModel struct {
	ID        uint      `gorm:"primaryKey"`
	FirstName string    `gorm:"size:50;not null;comment:名"`
	LastName  string    `gorm:"size:50;not null;comment:姓"`
	Email     string    `gorm:"uniqueIndex;size:100;not null;comment:邮箱"`
	Password  string    `gorm:"size:255;not null;comment:密码（bcrypt加密）"`
	IsAdmin   bool      `gorm:"not null;default:false;comment:是否管理员"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

func (UserModel) TableName() string {
	return "users"
}

// AuthorModel 作者
type AuthorModel struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"uniqueIndex;size:100;not null;comment:作者名"`
	Bio       string    `gorm:"type:text;comment:简介"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

func (AuthorModel) TableName() string {
	return "authors"
}

// CategoryModel 分类
type CategoryModel struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"uniqueIndex;size:100;not null;comment:分类名"`
	Description string    `gorm:"type:text;comment:描述"`
	CreatedAt   time.Time `gorm:"comment:创建时间"`
	UpdatedAt   time.Time `gorm:"comment:更新时间"`
}

func (CategoryModel) TableName() string {
	return "categories"
}

// BookModel GORM图书模型
// 设计说明:
// 1. 价格使用int64存储"分"为单位(避免浮点数精度问题)
// 2. 作者、分类是非空外键;物理删除(目录查询不需要处理deleted_at)
// 3. Title建索引用于搜索,Price建索引用于排行榜的价格次序
type BookModel struct {
	ID         uint           `gorm:"primaryKey"`
	CategoryID uint           `gorm:"index;not null;comment:分类ID"`
	Category   *CategoryModel `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`
	AuthorID   uint           `gorm:"index;not null;comment:作者ID"`
	Author     *AuthorModel   `gorm:"foreignKey:AuthorID;constraint:OnDelete:RESTRICT"`
	Title      string         `gorm:"index;size:200;not null;comment:书名"`
	Summary    string         `gorm:"type:text;comment:简介"`
	Price      int64          `gorm:"index;not null;comment:标价(分)"`
	CoverPhoto string         `gorm:"size:500;comment:封面图片"`
	CreatedAt  time.Time      `gorm:"comment:创建时间"`
	UpdatedAt  time.Time      `gorm:"comment:更新时间"`
}

func (BookModel) TableName() string {
	return "books"
}

// DiscountModel 限时折扣
// 复合索引(book_id, start_date, end_date)服务"当天生效折扣"子查询
type DiscountModel struct {
	ID        uint       `gorm:"primaryKey"`
	BookID    uint       `gorm:"index:idx_discount_window,priority:1;not null;comment:图书ID"`
	Book      *BookModel `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE"`
	StartDate sqlDate    `gorm:"index:idx_discount_window,priority:2;not null;comment:开始日期(含)"`
	EndDate   sqlDate    `gorm:"index:idx_discount_window,priority:3;not null;comment:结束日期(含)"`
	Price     int64      `gorm:"not null;comment:折扣价(分)"`
	CreatedAt time.Time  `gorm:"comment:创建时间"`
	UpdatedAt time.Time  `gorm:"comment:更新时间"`
}

func (DiscountModel) TableName() string {
	return "discounts"
}

// ReviewModel 书评
type ReviewModel struct {
	ID        uint       `gorm:"primaryKey"`
	BookID    uint       `gorm:"index:idx_review_book_rating,priority:1;not null;comment:图书ID"`
	Book      *BookModel `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE"`
	Title     string     `gorm:"size:200;not null;comment:标题"`
	Body      string     `gorm:"type:text;comment:正文"`
	Rating    int        `gorm:"index:idx_review_book_rating,priority:2;not null;comment:评分(1-5)"`
	CreatedAt time.Time  `gorm:"index;comment:发表时间"`
}

func (ReviewModel) TableName() string {
	return "reviews"
}

// OrderModel GORM订单模型
// 教学要点:
// 1. 与OrderItemModel是一对多关系
// 2. OrderNo有唯一索引(业务主键)
// 3. 订单创建后不再修改,没有UpdatedAt
type OrderModel struct {
	ID        uint             `gorm:"primaryKey"`
	OrderNo   string           `gorm:"uniqueIndex;size:32;not null;comment:订单号"`
	UserID    uint             `gorm:"index;not null;comment:买家用户ID"`
	OrderDate time.Time        `gorm:"index;not null;comment:下单时间"`
	Total     int64            `gorm:"not null;comment:订单总金额(分)"`
	Items     []OrderItemModel `gorm:"foreignKey:OrderID"`
}

func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel GORM订单明细模型
// Price是下单时的价格快照
type OrderItemModel struct {
	ID       uint  `gorm:"primaryKey"`
	OrderID  uint  `gorm:"index;not null;comment:订单ID"`
	BookID   uint  `gorm:"index;not null;comment:图书ID"`
	Quantity int   `gorm:"not null;comment:购买数量"`
	Price    int64 `gorm:"not null;comment:下单时单价(分)"`
}

func (OrderItemModel) TableName() string {
	return "order_items"
}
