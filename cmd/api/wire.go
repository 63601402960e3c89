//go:build wireinject
// +build wireinject

// Wire依赖注入配置
// 修改Provider后运行 `wire gen ./cmd/api` 重新生成wire_gen.go
//
// 依赖链：Repository ← Service ← UseCase ← Handler ← router.New

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"

	appauthor "github.com/xiebiao/bookcatalog/internal/application/author"
	appbook "github.com/xiebiao/bookcatalog/internal/application/book"
	appcategory "github.com/xiebiao/bookcatalog/internal/application/category"
	appdiscount "github.com/xiebiao/bookcatalog/internal/application/discount"
	apporder "github.com/xiebiao/bookcatalog/internal/application/order"
	appreview "github.com/xiebiao/bookcatalog/internal/application/review"
	appuser "github.com/xiebiao/bookcatalog/internal/application/user"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/review"
	"github.com/xiebiao/bookcatalog/internal/domain/user"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookcatalog/internal/interface/http/handler"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
	"github.com/xiebiao/bookcatalog/internal/interface/http/router"
)

// infrastructureSet 数据库、Redis、消息队列、时钟
var infrastructureSet = wire.NewSet(
	provideDB,
	provideRedis,
	providePublisher,
	provideClock,
	provideCatalogOptions,
	provideJWTManager,
)

// repositorySet 仓储
var repositorySet = wire.NewSet(
	mysql.NewUserRepository,
	mysql.NewAuthorRepository,
	mysql.NewCategoryRepository,
	mysql.NewBookRepository,
	mysql.NewCatalogRepository,
	mysql.NewDiscountRepository,
	mysql.NewReviewRepository,
	mysql.NewOrderRepository,
	mysql.NewTxManager,
	redis.NewSessionStore,
	wire.Bind(new(appuser.SessionStore), new(*redis.SessionStore)),
	wire.Bind(new(middleware.TokenBlacklist), new(*redis.SessionStore)),
)

// domainSet 领域服务
var domainSet = wire.NewSet(
	user.NewService,
	book.NewService,
	book.NewPriceResolver,
	review.NewService,
)

// applicationSet 用例
var applicationSet = wire.NewSet(
	appuser.NewRegisterUseCase,
	appuser.NewLoginUseCase,
	appuser.NewRefreshTokenUseCase,
	appuser.NewLogoutUseCase,
	appuser.NewGetProfileUseCase,
	appuser.NewUpdateProfileUseCase,
	appuser.NewChangePasswordUseCase,
	appuser.NewListUsersUseCase,
	appuser.NewCreateUserUseCase,
	appuser.NewDeleteUserUseCase,

	appauthor.NewCreateAuthorUseCase,
	appauthor.NewGetAuthorUseCase,
	appauthor.NewListAuthorsUseCase,
	appauthor.NewUpdateAuthorUseCase,
	appauthor.NewDeleteAuthorUseCase,

	appcategory.NewCreateCategoryUseCase,
	appcategory.NewGetCategoryUseCase,
	appcategory.NewListCategoriesUseCase,
	appcategory.NewUpdateCategoryUseCase,
	appcategory.NewDeleteCategoryUseCase,

	appbook.NewListBooksUseCase,
	appbook.NewListDiscountedUseCase,
	appbook.NewSearchBooksUseCase,
	appbook.NewRankBooksUseCase,
	appbook.NewGetBookUseCase,
	appbook.NewPriceQuoteUseCase,
	appbook.NewCreateBookUseCase,
	appbook.NewUpdateBookUseCase,
	appbook.NewDeleteBookUseCase,

	appdiscount.NewCreateDiscountUseCase,
	appdiscount.NewUpdateDiscountUseCase,
	appdiscount.NewDeleteDiscountUseCase,
	appdiscount.NewListBookDiscountsUseCase,

	appreview.NewPostReviewUseCase,
	appreview.NewListReviewsUseCase,

	apporder.NewCreateOrderUseCase,
	apporder.NewGetOrderUseCase,
	apporder.NewListMyOrdersUseCase,
)

// httpSet 中间件、处理器、路由
var httpSet = wire.NewSet(
	middleware.NewAuthMiddleware,
	handler.NewUserHandler,
	handler.NewAuthorHandler,
	handler.NewCategoryHandler,
	handler.NewBookHandler,
	handler.NewDiscountHandler,
	handler.NewReviewHandler,
	handler.NewOrderHandler,
	wire.Struct(new(router.Handlers), "*"),
	router.New,
)

// InitializeApp 组装整个应用
// cleanup按创建的逆序关闭消息队列、Redis和数据库连接
func InitializeApp(cfg *config.Config) (*gin.Engine, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		httpSet,
	)
	return nil, nil, nil
}
