package genre

import (
	"time"

	"github.com/xiebiao/bookcatalog/internal/domain/genre"
)

// GenreView 分类视图
type GenreView struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	CreatedBy string    `json:"created_by"`
	UpdatedBy string    `json:"updated_by"`
}

func ToView(g *genre.Genre) GenreView {
	return GenreView{
		ID:        g.ID,
		Name:      g.Name,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
		CreatedBy: g.CreatedBy,
		UpdatedBy: g.UpdatedBy,
	}
}
