package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

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
	"github.com/xiebiao/bookcatalog/pkg/jwt"
	"github.com/xiebiao/bookcatalog/pkg/logger"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

// @title                       Book Catalog API
// @version                     1.0
// @description                 图书目录服务：图书、作者、分类与用户
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 2. 日志
	zlog, err := logger.New(cfg.Log.Options())
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer func() { _ = zlog.Sync() }()
	zap.ReplaceGlobals(zlog)

	zlog.Info("配置加载成功",
		zap.Int("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode),
		zap.String("db_driver", cfg.Database.Driver),
		zap.String("redis", cfg.Redis.Addr()),
	)

	// 3. 指标与链路追踪
	if cfg.Metrics.Enabled {
		metrics.InitMetrics()
	}
	if cfg.Tracing.Enabled {
		shutdownTracer, err := tracing.InitTracer(cfg.Tracing.Options())
		if err != nil {
			zlog.Warn("初始化链路追踪失败，继续启动", zap.Error(err))
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = shutdownTracer(ctx)
			}()
		}
	}

	// 4. 数据库与Redis
	db, err := mysql.NewDB(cfg, zlog)
	if err != nil {
		zlog.Fatal("初始化数据库失败", zap.Error(err))
	}
	redisClient, err := redis.NewClient(cfg, zlog)
	if err != nil {
		zlog.Fatal("初始化Redis失败", zap.Error(err))
	}

	// 5. 依赖注入：Repository ← Service ← UseCase ← Handler
	engine, ensureAdmin := buildApp(cfg, zlog, db, redisClient)

	// 6. 管理员账号
	if err := ensureAdmin.Execute(context.Background(), cfg.Admin.Name, cfg.Admin.Username, cfg.Admin.Password); err != nil {
		zlog.Fatal("创建管理员账号失败", zap.Error(err))
	}

	// 7. 启动HTTP服务
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		zlog.Info("服务启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("HTTP服务器启动失败", zap.Error(err))
		}
	}()

	// 8. 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zlog.Info("正在关闭服务...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zlog.Error("服务器强制关闭", zap.Error(err))
	}
	if err := redisClient.Close(); err != nil {
		zlog.Warn("关闭Redis失败", zap.Error(err))
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	zlog.Info("服务已关闭")
}

// buildApp 手动组装依赖，与wire.go中的声明保持一致
func buildApp(cfg *config.Config, zlog *zap.Logger, db *gorm.DB, redisClient *goredis.Client) (*gin.Engine, *appuser.EnsureAdminUseCase) {
	// 基础设施层
	txManager := mysql.NewTxManager(db)
	sessionStore := redis.NewSessionStore(redisClient, zlog)
	jwtManager := provideJWTManager(cfg)

	// 领域层
	authorService := author.NewService(mysql.NewAuthorRepository(db))
	genreService := genre.NewService(mysql.NewGenreRepository(db))
	bookService := book.NewService(mysql.NewBookRepository(db), authorService, genreService)
	userService := user.NewService(mysql.NewUserRepository(db))

	// 应用层 + 接口层
	handlers := router.Handlers{
		Book: handler.NewBookHandler(
			appbook.NewCreateBookUseCase(bookService, txManager, zlog),
			appbook.NewAssignAuthorUseCase(bookService, zlog),
			appbook.NewAssignGenreUseCase(bookService, zlog),
			appbook.NewUpdateBookUseCase(bookService, zlog),
			appbook.NewUpdateBookPartialUseCase(bookService, zlog),
			appbook.NewDeleteBookUseCase(bookService, zlog),
			appbook.NewGetBookUseCase(bookService),
			appbook.NewListBooksUseCase(bookService),
			appbook.NewSearchBooksUseCase(bookService, zlog),
		),
		Author: handler.NewAuthorHandler(
			appauthor.NewAddAuthorUseCase(authorService, zlog),
			appauthor.NewGetAuthorUseCase(authorService),
			appauthor.NewUpdateAuthorUseCase(authorService, zlog),
			appauthor.NewListAuthorsUseCase(authorService),
			appauthor.NewDeleteAuthorUseCase(authorService, bookService, zlog),
		),
		Genre: handler.NewGenreHandler(
			appgenre.NewAddGenreUseCase(genreService, zlog),
			appgenre.NewGetGenreUseCase(genreService),
			appgenre.NewUpdateGenreUseCase(genreService, zlog),
			appgenre.NewListGenresUseCase(genreService),
			appgenre.NewDeleteGenreUseCase(genreService, bookService, zlog),
		),
		User: handler.NewUserHandler(
			appuser.NewRegisterUseCase(userService, zlog),
			appuser.NewLoginUseCase(userService, jwtManager, sessionStore, zlog),
			appuser.NewRefreshTokenUseCase(userService, jwtManager, sessionStore, zlog),
			appuser.NewLogoutUseCase(sessionStore, jwtManager, zlog),
			appuser.NewGetUserUseCase(userService),
			appuser.NewListUsersUseCase(userService),
			appuser.NewUpdateUserUseCase(userService, zlog),
			appuser.NewDeleteUserUseCase(userService, zlog),
		),
	}

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, sessionStore)
	engine := router.New(zlog, authMiddleware, handlers, provideRouterOptions(cfg))
	return engine, appuser.NewEnsureAdminUseCase(userService, zlog)
}

// provideJWTManager 从配置创建JWT管理器
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
}

// provideRouterOptions release模式下不暴露Swagger
func provideRouterOptions(cfg *config.Config) router.Options {
	return router.Options{
		Mode:           cfg.Server.Mode,
		MetricsEnabled: cfg.Metrics.Enabled,
		MetricsPath:    cfg.Metrics.Path,
		Swagger:        cfg.Server.Mode != "release",
	}
}
