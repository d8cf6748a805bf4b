// Package router 组装gin引擎：全局中间件、系统端点和/api/v1业务路由
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/domain/user"
	"github.com/xiebiao/bookcatalog/internal/interface/http/handler"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

var (
	roleAdmin = string(user.RoleAdmin)
	roleUser  = string(user.RoleUser)
)

// Handlers 所有HTTP处理器
type Handlers struct {
	Book   *handler.BookHandler
	Author *handler.AuthorHandler
	Genre  *handler.GenreHandler
	User   *handler.UserHandler
}

// Options 引擎选项
type Options struct {
	Mode           string // debug | release | test
	MetricsEnabled bool
	MetricsPath    string
	Swagger        bool
}

// New 创建gin引擎
// 中间件顺序：Recovery → Logger → Metrics → 路由匹配 → Auth → Role → Handler
func New(log *zap.Logger, auth *middleware.AuthMiddleware, h Handlers, opts Options) *gin.Engine {
	if opts.Mode != "" {
		gin.SetMode(opts.Mode)
	}

	r := gin.New()
	r.Use(middleware.Recovery(log))
	r.Use(middleware.Logger(log))
	r.Use(middleware.Tracing())
	if opts.MetricsEnabled {
		r.Use(middleware.Metrics())
	}

	// 系统端点
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{"message": "pong", "status": "healthy"})
	})
	if opts.MetricsEnabled {
		path := opts.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.GET(path, gin.WrapH(promhttp.Handler()))
	}
	if opts.Swagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	v1 := r.Group("/api/v1")
	registerUserRoutes(v1, auth, h.User)

	authed := v1.Group("")
	authed.Use(auth.RequireAuth())
	admin := middleware.RequireRole(roleAdmin)
	reader := middleware.RequireRole(roleUser, roleAdmin)

	books := authed.Group("/books")
	{
		books.POST("", admin, h.Book.CreateBook)
		books.GET("", admin, h.Book.ListBooks)
		books.GET("/search", reader, h.Book.SearchBooks)
		books.GET("/:id", reader, h.Book.GetBook)
		books.PUT("/:id", admin, h.Book.UpdateBook)
		books.PATCH("/:id", admin, h.Book.UpdateBookPartial)
		books.DELETE("/:id", admin, h.Book.DeleteBook)
		books.PUT("/:id/author/:authorId", admin, h.Book.AssignAuthor)
		books.PUT("/:id/genre/:genreId", admin, h.Book.AssignGenre)
	}

	authors := authed.Group("/author")
	{
		authors.POST("", admin, h.Author.AddAuthor)
		authors.GET("", admin, h.Author.ListAuthors)
		authors.GET("/:id", h.Author.GetAuthor)
		authors.PUT("/:id", admin, h.Author.UpdateAuthor)
		authors.DELETE("/:id", admin, h.Author.DeleteAuthor)
	}

	genres := authed.Group("/genre")
	{
		genres.POST("", admin, h.Genre.AddGenre)
		genres.GET("", admin, h.Genre.ListGenres)
		genres.GET("/:id", h.Genre.GetGenre)
		genres.PUT("/:id", admin, h.Genre.UpdateGenre)
		genres.DELETE("/:id", admin, h.Genre.DeleteGenre)
	}

	return r
}

// registerUserRoutes 注册、登录、刷新公开，其余需要登录
func registerUserRoutes(v1 *gin.RouterGroup, auth *middleware.AuthMiddleware, h *handler.UserHandler) {
	users := v1.Group("/user")
	users.POST("/register", h.Register)
	users.POST("/login", h.Login)
	users.POST("/refresh", h.RefreshToken)

	authed := users.Group("")
	authed.Use(auth.RequireAuth())
	admin := middleware.RequireRole(roleAdmin)
	{
		authed.POST("/logout", h.Logout)
		authed.GET("/:id", h.GetUser)
		authed.GET("", admin, h.ListUsers)
		authed.PUT("/:id", admin, h.UpdateUser)
		authed.DELETE("/:id", admin, h.DeleteUser)
	}
}
