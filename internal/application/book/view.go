package book

import (
	"time"

	"github.com/samber/lo"

	authorapp "github.com/xiebiao/bookcatalog/internal/application/author"
	genreapp "github.com/xiebiao/bookcatalog/internal/application/genre"
	"github.com/xiebiao/bookcatalog/internal/domain/author"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/genre"
)

// BookView 图书视图，包含完整的作者和分类
type BookView struct {
	ID          uint                   `json:"id"`
	Title       string                 `json:"title"`
	ISBN        string                 `json:"isbn"`
	Price       string                 `json:"price"`
	WrittenDate *time.Time             `json:"written_date,omitempty"`
	Authors     []authorapp.AuthorView `json:"authors"`
	Genres      []genreapp.GenreView   `json:"genres"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
	CreatedBy   string                 `json:"created_by"`
	UpdatedBy   string                 `json:"updated_by"`
}

// ToView 领域实体 → 视图
func ToView(b *book.Book) BookView {
	return BookView{
		ID:          b.ID,
		Title:       b.Title,
		ISBN:        b.ISBN,
		Price:       b.Price,
		WrittenDate: b.WrittenDate,
		Authors:     lo.Map(b.Authors, func(a *author.Author, _ int) authorapp.AuthorView { return authorapp.ToView(a) }),
		Genres:      lo.Map(b.Genres, func(g *genre.Genre, _ int) genreapp.GenreView { return genreapp.ToView(g) }),
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
		CreatedBy:   b.CreatedBy,
		UpdatedBy:   b.UpdatedBy,
	}
}

func toViewPtr(b *book.Book) *BookView {
	view := ToView(b)
	return &view
}
