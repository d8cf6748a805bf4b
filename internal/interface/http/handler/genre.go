package handler

import (
	"github.com/gin-gonic/gin"

	appgenre "github.com/xiebiao/bookcatalog/internal/application/genre"
	"github.com/xiebiao/bookcatalog/internal/interface/http/dto"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// GenreHandler 分类HTTP处理器
type GenreHandler struct {
	addGenre    *appgenre.AddGenreUseCase
	getGenre    *appgenre.GetGenreUseCase
	updateGenre *appgenre.UpdateGenreUseCase
	listGenres  *appgenre.ListGenresUseCase
	deleteGenre *appgenre.DeleteGenreUseCase
}

func NewGenreHandler(
	addGenre *appgenre.AddGenreUseCase,
	getGenre *appgenre.GetGenreUseCase,
	updateGenre *appgenre.UpdateGenreUseCase,
	listGenres *appgenre.ListGenresUseCase,
	deleteGenre *appgenre.DeleteGenreUseCase,
) *GenreHandler {
	return &GenreHandler{
		addGenre:    addGenre,
		getGenre:    getGenre,
		updateGenre: updateGenre,
		listGenres:  listGenres,
		deleteGenre: deleteGenre,
	}
}

// AddGenre 创建分类
// @Summary      创建分类
// @Tags         分类
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.GenreRequest true "分类信息"
// @Success      201 {object} response.Response{data=appgenre.GenreView}
// @Failure      409 {object} response.Response "分类已存在"
// @Router       /api/v1/genre [post]
func (h *GenreHandler) AddGenre(c *gin.Context) {
	var req dto.GenreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	view, err := h.addGenre.Execute(c.Request.Context(), req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, view)
}

// GetGenre 分类详情
// @Summary      分类详情
// @Tags         分类
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "分类ID"
// @Success      200 {object} response.Response{data=appgenre.GenreView}
// @Failure      404 {object} response.Response "分类不存在"
// @Router       /api/v1/genre/{id} [get]
func (h *GenreHandler) GetGenre(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	view, err := h.getGenre.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, view)
}

// UpdateGenre 重命名分类
// @Summary      更新分类
// @Tags         分类
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "分类ID"
// @Param        request body dto.GenreRequest true "分类信息"
// @Success      200 {object} response.Response{data=appgenre.GenreView}
// @Failure      404 {object} response.Response "分类不存在"
// @Router       /api/v1/genre/{id} [put]
func (h *GenreHandler) UpdateGenre(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.GenreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	view, err := h.updateGenre.Execute(c.Request.Context(), id, req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, view)
}

// ListGenres 分类列表
// @Summary      分类列表
// @Tags         分类
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "页码(从0开始)"
// @Param        size query int false "每页数量"
// @Success      200 {object} response.Response{data=response.PageData{list=[]appgenre.GenreView}}
// @Router       /api/v1/genre [get]
func (h *GenreHandler) ListGenres(c *gin.Context) {
	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	r, err := h.listGenres.Execute(c.Request.Context(), q.Page, q.Size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, r.List, r.Total, r.Page, r.PageSize)
}

// DeleteGenre 删除分类
// @Summary      删除分类
// @Description  先从所有图书中移除该分类再删除，不存在时同样返回成功
// @Tags         分类
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "分类ID"
// @Success      200 {object} response.Response
// @Router       /api/v1/genre/{id} [delete]
func (h *GenreHandler) DeleteGenre(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.deleteGenre.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
