package book

import (
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/xiebiao/bookcatalog/internal/domain/author"
	"github.com/xiebiao/bookcatalog/internal/domain/genre"
)

// Book 图书聚合根
// Authors/Genres按ID去重（集合语义），关联只存在于book_author/book_genre两张表
type Book struct {
	ID          uint
	Title       string
	ISBN        string
	Price       string // 十进制文本，如"39.90"
	WrittenDate *time.Time
	Authors     []*author.Author
	Genres      []*genre.Genre
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CreatedBy   string
	UpdatedBy   string
}

// Fields 图书标量字段
type Fields struct {
	Title       string
	ISBN        string
	Price       string
	WrittenDate *time.Time
}

// Draft 创建图书的输入，Authors/Genres是待解析的候选（按自然键查找或创建）
type Draft struct {
	Fields
	Authors []*author.Author
	Genres  []*genre.Genre
}

// PartialUpdate 部分更新，nil字段保持不变
// AuthorIDs/GenreIDs只追加，不移除已有关联
type PartialUpdate struct {
	Title       *string
	ISBN        *string
	Price       *string
	WrittenDate *time.Time
	AuthorIDs   []uint
	GenreIDs    []uint
}

// NewBook 创建图书（未持久化，不含关联）
func NewBook(fields Fields) *Book {
	b := &Book{}
	b.Replace(fields)
	return b
}

// Validate 校验标量字段
func (b *Book) Validate() error {
	if b.Title == "" {
		return ErrTitleRequired
	}
	if b.ISBN == "" {
		return ErrISBNRequired
	}
	if !isValidPrice(b.Price) {
		return ErrInvalidPrice
	}
	return nil
}

// Replace 全量覆盖标量字段，关联不变
func (b *Book) Replace(fields Fields) {
	b.Title = strings.TrimSpace(fields.Title)
	b.ISBN = strings.TrimSpace(fields.ISBN)
	b.Price = strings.TrimSpace(fields.Price)
	b.WrittenDate = fields.WrittenDate
}

// ApplyScalars 只覆盖非nil的标量字段
func (b *Book) ApplyScalars(p PartialUpdate) {
	if p.Title != nil {
		b.Title = strings.TrimSpace(*p.Title)
	}
	if p.ISBN != nil {
		b.ISBN = strings.TrimSpace(*p.ISBN)
	}
	if p.Price != nil {
		b.Price = strings.TrimSpace(*p.Price)
	}
	if p.WrittenDate != nil {
		b.WrittenDate = p.WrittenDate
	}
}

// HasScalars 是否包含标量字段的修改
func (p PartialUpdate) HasScalars() bool {
	return p.Title != nil || p.ISBN != nil || p.Price != nil || p.WrittenDate != nil
}

// AddAuthor 添加作者，已存在返回false
func (b *Book) AddAuthor(a *author.Author) bool {
	if b.HasAuthor(a.ID) {
		return false
	}
	b.Authors = append(b.Authors, a)
	return true
}

// AddGenre 添加分类，已存在返回false
func (b *Book) AddGenre(g *genre.Genre) bool {
	if b.HasGenre(g.ID) {
		return false
	}
	b.Genres = append(b.Genres, g)
	return true
}

// RemoveAuthor 移除作者，不存在返回false
func (b *Book) RemoveAuthor(authorID uint) bool {
	if !b.HasAuthor(authorID) {
		return false
	}
	b.Authors = lo.Reject(b.Authors, func(a *author.Author, _ int) bool { return a.ID == authorID })
	return true
}

// RemoveGenre 移除分类，不存在返回false
func (b *Book) RemoveGenre(genreID uint) bool {
	if !b.HasGenre(genreID) {
		return false
	}
	b.Genres = lo.Reject(b.Genres, func(g *genre.Genre, _ int) bool { return g.ID == genreID })
	return true
}

func (b *Book) HasAuthor(authorID uint) bool {
	return lo.ContainsBy(b.Authors, func(a *author.Author) bool { return a.ID == authorID })
}

func (b *Book) HasGenre(genreID uint) bool {
	return lo.ContainsBy(b.Genres, func(g *genre.Genre) bool { return g.ID == genreID })
}

// AuthorIDs 关联作者ID
func (b *Book) AuthorIDs() []uint {
	return lo.Map(b.Authors, func(a *author.Author, _ int) uint { return a.ID })
}

// GenreIDs 关联分类ID
func (b *Book) GenreIDs() []uint {
	return lo.Map(b.Genres, func(g *genre.Genre, _ int) uint { return g.ID })
}

// isValidPrice 非负十进制数
func isValidPrice(price string) bool {
	if price == "" {
		return false
	}
	v, err := strconv.ParseFloat(price, 64)
	return err == nil && v >= 0
}
