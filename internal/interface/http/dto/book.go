package dto

import (
	"encoding/json"
	"time"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// DateLayout written_date的格式
const DateLayout = "2006-01-02"

// AuthorRef 创建图书时内嵌的作者，按first_name+identification_number查找或创建
type AuthorRef struct {
	FirstName            string `json:"first_name" binding:"required,max=100" example:"Frank"`
	LastName             string `json:"last_name" binding:"max=100" example:"Herbert"`
	IdentificationNumber int64  `json:"identification_number" binding:"required,min=1" example:"1001"`
}

// GenreRef 创建图书时内嵌的分类，按name查找或创建
type GenreRef struct {
	Name string `json:"name" binding:"required,max=100" example:"Science Fiction"`
}

// CreateBookRequest HTTP创建图书请求
// price既可以是JSON数字也可以是字符串，原样保留（12.50不会变成12.5）
type CreateBookRequest struct {
	Title       string      `json:"title" binding:"required,max=255" example:"Dune"`
	ISBN        string      `json:"isbn" binding:"required,max=32" example:"978-0441013593"`
	Price       json.Number `json:"price" binding:"required" swaggertype:"string" example:"9.99"`
	WrittenDate string      `json:"written_date" binding:"omitempty,datetime=2006-01-02" example:"1965-08-01"`
	Authors     []AuthorRef `json:"authors" binding:"dive"`
	Genres      []GenreRef  `json:"genres" binding:"dive"`
}

// UpdateBookRequest HTTP全量更新请求，不包含关联
type UpdateBookRequest struct {
	Title       string      `json:"title" binding:"required,max=255" example:"Dune"`
	ISBN        string      `json:"isbn" binding:"required,max=32" example:"978-0441013593"`
	Price       json.Number `json:"price" binding:"required" swaggertype:"string" example:"9.99"`
	WrittenDate string      `json:"written_date" binding:"omitempty,datetime=2006-01-02" example:"1965-08-01"`
}

// UpdateBookPartialRequest HTTP部分更新请求，缺省字段保持不变
type UpdateBookPartialRequest struct {
	Title       *string      `json:"title" binding:"omitempty,max=255"`
	ISBN        *string      `json:"isbn" binding:"omitempty,max=32"`
	Price       *json.Number `json:"price" swaggertype:"string"`
	WrittenDate *string      `json:"written_date" binding:"omitempty,datetime=2006-01-02"`
	AuthorIDs   []uint       `json:"author_ids"`
	GenreIDs    []uint       `json:"genre_ids"`
}

// PageQuery 分页参数，page从0开始，size默认10最大100
type PageQuery struct {
	Page int `form:"page" example:"0"`
	Size int `form:"size" example:"10"`
}

// SearchBooksQuery 搜索参数
// search_key同时匹配书名、ISBN、作者名、作者姓、分类名（不区分大小写）
type SearchBooksQuery struct {
	PageQuery
	SearchKey string `form:"search_key" binding:"max=100" example:"dune"`
}

// ParseDate 空字符串返回nil
func ParseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "日期格式错误，应为"+DateLayout)
	}
	return &t, nil
}

// ParseDatePtr nil表示未提供
func ParseDatePtr(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	return ParseDate(*s)
}

// NumberPtr nil表示未提供
func NumberPtr(n *json.Number) *string {
	if n == nil {
		return nil
	}
	s := n.String()
	return &s
}
