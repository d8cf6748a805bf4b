//go:build wireinject
// +build wireinject

// Wire依赖注入声明，`wire gen ./cmd/api` 生成 wire_gen.go
// main.go中的buildApp是同一依赖图的手动版本

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	appauthor "github.com/xiebiao/bookcatalog/internal/application/author"
	appbook "github.com/xiebiao/bookcatalog/internal/application/book"
	appgenre "github.com/xiebiao/bookcatalog/internal/application/genre"
	appuser "github.com/xiebiao/bookcatalog/internal/application/user"
	"github.com/xiebiao/bookcatalog/internal/domain/author"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/genre"
	"github.com/xiebiao/bookcatalog/internal/domain/user"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookcatalog/internal/interface/http/handler"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
	"github.com/xiebiao/bookcatalog/internal/interface/http/router"
)

// infrastructureSet 数据库、Redis、会话存储、事务管理器
var infrastructureSet = wire.NewSet(
	mysql.NewDB,
	redis.NewClient,
	redis.NewSessionStore,
	mysql.NewTxManager,
	provideJWTManager,
	wire.Bind(new(goredis.Cmdable), new(*goredis.Client)),
	wire.Bind(new(appbook.Transactor), new(*mysql.TxManager)),
	wire.Bind(new(appuser.SessionStore), new(*redis.SessionStore)),
	wire.Bind(new(middleware.TokenBlacklist), new(*redis.SessionStore)),
)

var repositorySet = wire.NewSet(
	mysql.NewAuthorRepository,
	mysql.NewGenreRepository,
	mysql.NewBookRepository,
	mysql.NewUserRepository,
)

var domainSet = wire.NewSet(
	author.NewService,
	genre.NewService,
	book.NewService,
	user.NewService,
)

var applicationSet = wire.NewSet(
	appbook.NewCreateBookUseCase,
	appbook.NewAssignAuthorUseCase,
	appbook.NewAssignGenreUseCase,
	appbook.NewUpdateBookUseCase,
	appbook.NewUpdateBookPartialUseCase,
	appbook.NewDeleteBookUseCase,
	appbook.NewGetBookUseCase,
	appbook.NewListBooksUseCase,
	appbook.NewSearchBooksUseCase,

	appauthor.NewAddAuthorUseCase,
	appauthor.NewGetAuthorUseCase,
	appauthor.NewUpdateAuthorUseCase,
	appauthor.NewListAuthorsUseCase,
	appauthor.NewDeleteAuthorUseCase,

	appgenre.NewAddGenreUseCase,
	appgenre.NewGetGenreUseCase,
	appgenre.NewUpdateGenreUseCase,
	appgenre.NewListGenresUseCase,
	appgenre.NewDeleteGenreUseCase,

	appuser.NewRegisterUseCase,
	appuser.NewLoginUseCase,
	appuser.NewRefreshTokenUseCase,
	appuser.NewLogoutUseCase,
	appuser.NewGetUserUseCase,
	appuser.NewListUsersUseCase,
	appuser.NewUpdateUserUseCase,
	appuser.NewDeleteUserUseCase,
)

var interfaceSet = wire.NewSet(
	middleware.NewAuthMiddleware,
	handler.NewBookHandler,
	handler.NewAuthorHandler,
	handler.NewGenreHandler,
	handler.NewUserHandler,
	wire.Struct(new(router.Handlers), "*"),
	provideRouterOptions,
	router.New,
)

// InitializeApp 组装gin引擎，配置和日志由调用方提供
func InitializeApp(cfg *config.Config, log *zap.Logger) (*gin.Engine, error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		interfaceSet,
	)
	return nil, nil
}
