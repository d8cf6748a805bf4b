package author

import (
	"strings"
	"time"
)

// Author 作者实体
// 自然键：FirstName + IdentificationNumber，IdentificationNumber全局唯一
// 作者不持有图书列表，"某作者的图书"通过book.Repository.ListByAuthorID查询
type Author struct {
	ID                   uint
	FirstName            string
	LastName             string
	IdentificationNumber int64
	CreatedAt            time.Time
	UpdatedAt            time.Time
	CreatedBy            string
	UpdatedBy            string
}

// NewAuthor 创建作者（未持久化）
func NewAuthor(firstName, lastName string, identificationNumber int64) *Author {
	return &Author{
		FirstName:            strings.TrimSpace(firstName),
		LastName:             strings.TrimSpace(lastName),
		IdentificationNumber: identificationNumber,
	}
}

// Validate 校验必填字段
func (a *Author) Validate() error {
	if a.FirstName == "" {
		return ErrFirstNameRequired
	}
	if a.IdentificationNumber <= 0 {
		return ErrInvalidIdentificationNumber
	}
	return nil
}

// Replace 全量更新标量字段
func (a *Author) Replace(firstName, lastName string, identificationNumber int64) {
	a.FirstName = strings.TrimSpace(firstName)
	a.LastName = strings.TrimSpace(lastName)
	a.IdentificationNumber = identificationNumber
}

// FullName 展示用姓名
func (a *Author) FullName() string {
	if a.LastName == "" {
		return a.FirstName
	}
	return a.FirstName + " " + a.LastName
}
