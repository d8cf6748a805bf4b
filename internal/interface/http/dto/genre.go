package dto

// GenreRequest HTTP创建/重命名分类请求
type GenreRequest struct {
	Name string `json:"name" binding:"required,max=100" example:"Fantasy"`
}
