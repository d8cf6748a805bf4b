package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	appbook "github.com/xiebiao/bookcatalog/internal/application/book"
	"github.com/xiebiao/bookcatalog/internal/interface/http/dto"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// BookHandler 图书HTTP处理器
// Handler只负责解析请求、调用应用层、返回响应
type BookHandler struct {
	createBook        *appbook.CreateBookUseCase
	assignAuthor      *appbook.AssignAuthorUseCase
	assignGenre       *appbook.AssignGenreUseCase
	updateBook        *appbook.UpdateBookUseCase
	updateBookPartial *appbook.UpdateBookPartialUseCase
	deleteBook        *appbook.DeleteBookUseCase
	getBook           *appbook.GetBookUseCase
	listBooks         *appbook.ListBooksUseCase
	searchBooks       *appbook.SearchBooksUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	createBook *appbook.CreateBookUseCase,
	assignAuthor *appbook.AssignAuthorUseCase,
	assignGenre *appbook.AssignGenreUseCase,
	updateBook *appbook.UpdateBookUseCase,
	updateBookPartial *appbook.UpdateBookPartialUseCase,
	deleteBook *appbook.DeleteBookUseCase,
	getBook *appbook.GetBookUseCase,
	listBooks *appbook.ListBooksUseCase,
	searchBooks *appbook.SearchBooksUseCase,
) *BookHandler {
	return &BookHandler{
		createBook:        createBook,
		assignAuthor:      assignAuthor,
		assignGenre:       assignGenre,
		updateBook:        updateBook,
		updateBookPartial: updateBookPartial,
		deleteBook:        deleteBook,
		getBook:           getBook,
		listBooks:         listBooks,
		searchBooks:       searchBooks,
	}
}

// CreateBook 创建图书
// @Summary      创建图书
// @Description  作者按first_name+identification_number、分类按name查找或创建，全部在一个事务中完成
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateBookRequest true "图书信息"
// @Success      201 {object} response.Response{data=appbook.BookView}
// @Failure      400 {object} response.Response "参数错误/ISBN已存在"
// @Failure      401 {object} response.Response "未登录"
// @Failure      403 {object} response.Response "无权限"
// @Router       /api/v1/books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	// 1. 参数绑定与验证
	var req dto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	writtenDate, err := dto.ParseDate(req.WrittenDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	// 2. 调用应用层用例
	view, err := h.createBook.Execute(c.Request.Context(), appbook.CreateBookRequest{
		Title:       req.Title,
		ISBN:        req.ISBN,
		Price:       req.Price.String(),
		WrittenDate: writtenDate,
		Authors: lo.Map(req.Authors, func(a dto.AuthorRef, _ int) appbook.AuthorInput {
			return appbook.AuthorInput{FirstName: a.FirstName, LastName: a.LastName, IdentificationNumber: a.IdentificationNumber}
		}),
		Genres: lo.Map(req.Genres, func(g dto.GenreRef, _ int) appbook.GenreInput {
			return appbook.GenreInput{Name: g.Name}
		}),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, view)
}

// ListBooks 图书列表
// @Summary      图书列表
// @Description  按ID升序分页，page从0开始
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "页码(从0开始)"
// @Param        size query int false "每页数量(默认10，最大100)"
// @Success      200 {object} response.Response{data=response.PageData{list=[]appbook.BookView}}
// @Router       /api/v1/books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	r, err := h.listBooks.Execute(c.Request.Context(), q.Page, q.Size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, r.List, r.Total, r.Page, r.PageSize)
}

// SearchBooks 搜索图书
// @Summary      搜索图书
// @Description  search_key不区分大小写，匹配书名、ISBN、作者名/姓、分类名中任一项
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        search_key query string false "关键字"
// @Param        page query int false "页码(从0开始)"
// @Param        size query int false "每页数量"
// @Success      200 {object} response.Response{data=response.PageData{list=[]appbook.BookView}}
// @Router       /api/v1/books/search [get]
func (h *BookHandler) SearchBooks(c *gin.Context) {
	var q dto.SearchBooksQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	r, err := h.searchBooks.Execute(c.Request.Context(), q.SearchKey, q.Page, q.Size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, r.List, r.Total, r.Page, r.PageSize)
}

// GetBook 图书详情
// @Summary      图书详情
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=appbook.BookView}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	view, err := h.getBook.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, view)
}

// UpdateBook 全量更新图书
// @Summary      全量更新图书
// @Description  覆盖书名、ISBN、价格、写作日期，作者和分类不变
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Param        request body dto.UpdateBookRequest true "图书信息"
// @Success      200 {object} response.Response{data=appbook.BookView}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	writtenDate, err := dto.ParseDate(req.WrittenDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	view, err := h.updateBook.Execute(c.Request.Context(), id, appbook.UpdateBookRequest{
		Title:       req.Title,
		ISBN:        req.ISBN,
		Price:       req.Price.String(),
		WrittenDate: writtenDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, view)
}

// UpdateBookPartial 部分更新图书
// @Summary      部分更新图书
// @Description  只更新提供的字段；author_ids/genre_ids逐个追加关联，中途失败时已完成的步骤不回滚
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Param        request body dto.UpdateBookPartialRequest true "需要更新的字段"
// @Success      200 {object} response.Response{data=appbook.BookView}
// @Failure      404 {object} response.Response "图书/作者/分类不存在"
// @Router       /api/v1/books/{id} [patch]
func (h *BookHandler) UpdateBookPartial(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateBookPartialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	writtenDate, err := dto.ParseDatePtr(req.WrittenDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	view, err := h.updateBookPartial.Execute(c.Request.Context(), id, appbook.UpdateBookPartialRequest{
		Title:       req.Title,
		ISBN:        req.ISBN,
		Price:       dto.NumberPtr(req.Price),
		WrittenDate: writtenDate,
		AuthorIDs:   req.AuthorIDs,
		GenreIDs:    req.GenreIDs,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, view)
}

// AssignAuthor 关联作者
// @Summary      关联作者
// @Description  已关联时不做修改
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Param        authorId path int true "作者ID"
// @Success      200 {object} response.Response{data=appbook.BookView}
// @Failure      404 {object} response.Response "图书/作者不存在"
// @Router       /api/v1/books/{id}/author/{authorId} [put]
func (h *BookHandler) AssignAuthor(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	authorID, ok := pathID(c, "authorId")
	if !ok {
		return
	}

	view, err := h.assignAuthor.Execute(c.Request.Context(), id, authorID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, view)
}

// AssignGenre 关联分类
// @Summary      关联分类
// @Description  已关联时不做修改
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Param        genreId path int true "分类ID"
// @Success      200 {object} response.Response{data=appbook.BookView}
// @Failure      404 {object} response.Response "图书/分类不存在"
// @Router       /api/v1/books/{id}/genre/{genreId} [put]
func (h *BookHandler) AssignGenre(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	genreID, ok := pathID(c, "genreId")
	if !ok {
		return
	}

	view, err := h.assignGenre.Execute(c.Request.Context(), id, genreID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, view)
}

// DeleteBook 删除图书
// @Summary      删除图书
// @Description  不存在时同样返回成功
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response
// @Router       /api/v1/books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.deleteBook.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
