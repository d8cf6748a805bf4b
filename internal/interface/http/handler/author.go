package handler

import (
	"github.com/gin-gonic/gin"

	appauthor "github.com/xiebiao/bookcatalog/internal/application/author"
	"github.com/xiebiao/bookcatalog/internal/interface/http/dto"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// AuthorHandler 作者HTTP处理器
type AuthorHandler struct {
	addAuthor    *appauthor.AddAuthorUseCase
	getAuthor    *appauthor.GetAuthorUseCase
	updateAuthor *appauthor.UpdateAuthorUseCase
	listAuthors  *appauthor.ListAuthorsUseCase
	deleteAuthor *appauthor.DeleteAuthorUseCase
}

func NewAuthorHandler(
	addAuthor *appauthor.AddAuthorUseCase,
	getAuthor *appauthor.GetAuthorUseCase,
	updateAuthor *appauthor.UpdateAuthorUseCase,
	listAuthors *appauthor.ListAuthorsUseCase,
	deleteAuthor *appauthor.DeleteAuthorUseCase,
) *AuthorHandler {
	return &AuthorHandler{
		addAuthor:    addAuthor,
		getAuthor:    getAuthor,
		updateAuthor: updateAuthor,
		listAuthors:  listAuthors,
		deleteAuthor: deleteAuthor,
	}
}

// AddAuthor 创建作者
// @Summary      创建作者
// @Tags         作者
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.AuthorRequest true "作者信息"
// @Success      201 {object} response.Response{data=appauthor.AuthorView}
// @Failure      409 {object} response.Response "作者已存在"
// @Router       /api/v1/author [post]
func (h *AuthorHandler) AddAuthor(c *gin.Context) {
	var req dto.AuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	view, err := h.addAuthor.Execute(c.Request.Context(), appauthor.AuthorRequest{
		FirstName:            req.FirstName,
		LastName:             req.LastName,
		IdentificationNumber: req.IdentificationNumber,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, view)
}

// GetAuthor 作者详情
// @Summary      作者详情
// @Tags         作者
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "作者ID"
// @Success      200 {object} response.Response{data=appauthor.AuthorView}
// @Failure      404 {object} response.Response "作者不存在"
// @Router       /api/v1/author/{id} [get]
func (h *AuthorHandler) GetAuthor(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	view, err := h.getAuthor.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, view)
}

// UpdateAuthor 全量更新作者
// @Summary      更新作者
// @Tags         作者
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "作者ID"
// @Param        request body dto.AuthorRequest true "作者信息"
// @Success      200 {object} response.Response{data=appauthor.AuthorView}
// @Failure      404 {object} response.Response "作者不存在"
// @Router       /api/v1/author/{id} [put]
func (h *AuthorHandler) UpdateAuthor(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.AuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	view, err := h.updateAuthor.Execute(c.Request.Context(), id, appauthor.AuthorRequest{
		FirstName:            req.FirstName,
		LastName:             req.LastName,
		IdentificationNumber: req.IdentificationNumber,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, view)
}

// ListAuthors 作者列表
// @Summary      作者列表
// @Tags         作者
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "页码(从0开始)"
// @Param        size query int false "每页数量"
// @Success      200 {object} response.Response{data=response.PageData{list=[]appauthor.AuthorView}}
// @Router       /api/v1/author [get]
func (h *AuthorHandler) ListAuthors(c *gin.Context) {
	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	r, err := h.listAuthors.Execute(c.Request.Context(), q.Page, q.Size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, r.List, r.Total, r.Page, r.PageSize)
}

// DeleteAuthor 删除作者
// @Summary      删除作者
// @Description  先从所有图书中移除该作者再删除，不存在时同样返回成功
// @Tags         作者
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "作者ID"
// @Success      200 {object} response.Response
// @Router       /api/v1/author/{id} [delete]
func (h *AuthorHandler) DeleteAuthor(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.deleteAuthor.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
