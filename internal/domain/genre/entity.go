package genre

import (
	"strings"
	"time"
)

// Genre 图书分类，Name全局唯一且是自然键
type Genre struct {
	ID        uint
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
	CreatedBy string
	UpdatedBy string
}

// NewGenre 创建分类（未持久化）
func NewGenre(name string) *Genre {
	return &Genre{Name: strings.TrimSpace(name)}
}

// Validate 校验名称
func (g *Genre) Validate() error {
	if g.Name == "" {
		return ErrNameRequired
	}
	return nil
}

// Rename 修改名称
func (g *Genre) Rename(name string) {
	g.Name = strings.TrimSpace(name)
}
