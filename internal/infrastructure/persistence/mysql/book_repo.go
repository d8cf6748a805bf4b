package mysql

import (
	"context"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/bookcatalog/internal/domain/author"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/genre"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
)

// bookRepository 图书仓储实现
// 图书行存books，关联只存在book_author/book_genre，读取时按IN查询批量组装
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// Create 写入图书行和关联行（同一事务）
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := &BookModel{
		Title:       b.Title,
		ISBN:        b.ISBN,
		Price:       b.Price,
		WrittenDate: b.WrittenDate,
	}

	err := getDB(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model).Error; err != nil {
			return err
		}
		return writeLinks(tx, model.ID, b)
	})
	if err != nil {
		if isDuplicateError(err) {
			return book.ErrISBNDuplicate
		}
		return dbError(err, "创建图书失败")
	}

	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt
	b.CreatedBy = model.CreatedBy
	b.UpdatedBy = model.UpdatedBy
	return nil
}

func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	db := getDB(ctx, r.db)

	var model BookModel
	if err := db.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, dbError(err, "查询图书失败")
	}

	books, err := r.assemble(db, []BookModel{model})
	if err != nil {
		return nil, err
	}
	return books[0], nil
}

// Save 更新标量字段，并按当前Authors/Genres重写关联行
func (r *bookRepository) Save(ctx context.Context, b *book.Book) error {
	err := getDB(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		// 1. 标量字段（包括置空的WrittenDate）
		err := tx.Model(&BookModel{BaseModel: BaseModel{ID: b.ID}}).
			Omit(clause.Associations).
			Select("title", "isbn", "price", "written_date", "updated_by").
			Updates(&BookModel{
				Title:       b.Title,
				ISBN:        b.ISBN,
				Price:       b.Price,
				WrittenDate: b.WrittenDate,
			}).Error
		if err != nil {
			return err
		}

		// 2. 重写关联
		if err := tx.Where("book_id = ?", b.ID).Delete(&BookAuthorModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("book_id = ?", b.ID).Delete(&BookGenreModel{}).Error; err != nil {
			return err
		}
		return writeLinks(tx, b.ID, b)
	})
	if err != nil {
		if isDuplicateError(err) {
			return book.ErrISBNDuplicate
		}
		return dbError(err, "保存图书失败")
	}

	b.UpdatedAt = time.Now()
	return nil
}

// Delete 删除图书及其关联行，不存在时什么也不做
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	err := getDB(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("book_id = ?", id).Delete(&BookAuthorModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("book_id = ?", id).Delete(&BookGenreModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&BookModel{}, id).Error
	})
	if err != nil {
		return dbError(err, "删除图书失败")
	}
	return nil
}

func (r *bookRepository) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	db := getDB(ctx, r.db)

	var total int64
	if err := db.Model(&BookModel{}).Count(&total).Error; err != nil {
		return nil, 0, dbError(err, "查询图书总数失败")
	}

	var models []BookModel
	limit, offset := normalizePage(params.Page, params.PageSize)
	if err := db.Order("id ASC").Limit(limit).Offset(offset).Find(&models).Error; err != nil {
		return nil, 0, dbError(err, "查询图书列表失败")
	}

	books, err := r.assemble(db, models)
	if err != nil {
		return nil, 0, err
	}
	return books, total, nil
}

// Search 书名、ISBN、作者名、作者姓、分类名任一包含key（不区分大小写）
// 关联表LEFT JOIN后按books.id去重，先分页取ID再加载图书
func (r *bookRepository) Search(ctx context.Context, key string, params book.ListParams) ([]*book.Book, int64, error) {
	start := time.Now()
	defer func() { metrics.ObserveSearch(time.Since(start).Seconds()) }()

	db := getDB(ctx, r.db)
	base := db.Model(&BookModel{}).
		Joins("LEFT JOIN book_author ON book_author.book_id = books.id").
		Joins("LEFT JOIN authors ON authors.id = book_author.author_id").
		Joins("LEFT JOIN book_genre ON book_genre.book_id = books.id").
		Joins("LEFT JOIN genres ON genres.id = book_genre.genre_id")

	if key != "" {
		where, args, err := searchPredicate(key).ToSql()
		if err != nil {
			return nil, 0, apperrors.Wrap(err, "构造搜索条件失败")
		}
		base = base.Where(where, args...)
	}
	base = base.Session(&gorm.Session{})

	// 1. 总数
	var total int64
	if err := base.Distinct("books.id").Count(&total).Error; err != nil {
		return nil, 0, dbError(err, "统计搜索结果失败")
	}
	if total == 0 {
		return []*book.Book{}, 0, nil
	}

	// 2. 当前页的图书ID
	var ids []uint
	limit, offset := normalizePage(params.Page, params.PageSize)
	err := base.Distinct("books.id").
		Order("books.id ASC").
		Limit(limit).Offset(offset).
		Pluck("books.id", &ids).Error
	if err != nil {
		return nil, 0, dbError(err, "搜索图书失败")
	}

	// 3. 加载图书及关联
	books, err := r.findByIDs(db, ids)
	if err != nil {
		return nil, 0, err
	}
	return books, total, nil
}

// searchPredicate 五个字段的OR条件
func searchPredicate(key string) sq.Or {
	pattern := likeContains(key)
	columns := []string{"books.title", "books.isbn", "authors.first_name", "authors.last_name", "genres.name"}
	return lo.Map(columns, func(col string, _ int) sq.Sqlizer {
		return sq.Expr("LOWER("+col+") LIKE ? ESCAPE '"+likeEscape+"'", pattern)
	})
}

func (r *bookRepository) ListByAuthorID(ctx context.Context, authorID uint) ([]*book.Book, error) {
	db := getDB(ctx, r.db)

	var ids []uint
	if err := db.Model(&BookAuthorModel{}).Where("author_id = ?", authorID).Order("book_id").Pluck("book_id", &ids).Error; err != nil {
		return nil, dbError(err, "查询作者的图书失败")
	}
	return r.findByIDs(db, ids)
}

func (r *bookRepository) ListByGenreID(ctx context.Context, genreID uint) ([]*book.Book, error) {
	db := getDB(ctx, r.db)

	var ids []uint
	if err := db.Model(&BookGenreModel{}).Where("genre_id = ?", genreID).Order("book_id").Pluck("book_id", &ids).Error; err != nil {
		return nil, dbError(err, "查询分类的图书失败")
	}
	return r.findByIDs(db, ids)
}

func (r *bookRepository) findByIDs(db *gorm.DB, ids []uint) ([]*book.Book, error) {
	if len(ids) == 0 {
		return []*book.Book{}, nil
	}

	var models []BookModel
	if err := db.Where("id IN ?", ids).Order("id ASC").Find(&models).Error; err != nil {
		return nil, dbError(err, "查询图书失败")
	}
	return r.assemble(db, models)
}

// assemble 批量加载关联并转换为领域实体
func (r *bookRepository) assemble(db *gorm.DB, models []BookModel) ([]*book.Book, error) {
	if len(models) == 0 {
		return []*book.Book{}, nil
	}
	bookIDs := lo.Map(models, func(m BookModel, _ int) uint { return m.ID })

	// 1. 关联行
	var authorLinks []BookAuthorModel
	if err := db.Where("book_id IN ?", bookIDs).Order("book_id, author_id").Find(&authorLinks).Error; err != nil {
		return nil, dbError(err, "查询图书作者失败")
	}
	var genreLinks []BookGenreModel
	if err := db.Where("book_id IN ?", bookIDs).Order("book_id, genre_id").Find(&genreLinks).Error; err != nil {
		return nil, dbError(err, "查询图书分类失败")
	}

	// 2. 关联实体
	authors, err := findAuthorsByIDs(db, lo.Uniq(lo.Map(authorLinks, func(l BookAuthorModel, _ int) uint { return l.AuthorID })))
	if err != nil {
		return nil, err
	}
	genres, err := findGenresByIDs(db, lo.Uniq(lo.Map(genreLinks, func(l BookGenreModel, _ int) uint { return l.GenreID })))
	if err != nil {
		return nil, err
	}

	// 3. 组装
	authorsByBook := lo.GroupBy(authorLinks, func(l BookAuthorModel) uint { return l.BookID })
	genresByBook := lo.GroupBy(genreLinks, func(l BookGenreModel) uint { return l.BookID })

	return lo.Map(models, func(m BookModel, _ int) *book.Book {
		b := toBookEntity(&m)
		b.Authors = lo.FilterMap(authorsByBook[m.ID], func(l BookAuthorModel, _ int) (*author.Author, bool) {
			a, ok := authors[l.AuthorID]
			return a, ok
		})
		b.Genres = lo.FilterMap(genresByBook[m.ID], func(l BookGenreModel, _ int) (*genre.Genre, bool) {
			g, ok := genres[l.GenreID]
			return g, ok
		})
		return b
	}), nil
}

// writeLinks 按图书当前的关联写入关联行
func writeLinks(tx *gorm.DB, bookID uint, b *book.Book) error {
	if authorIDs := lo.Uniq(b.AuthorIDs()); len(authorIDs) > 0 {
		links := lo.Map(authorIDs, func(id uint, _ int) BookAuthorModel {
			return BookAuthorModel{BookID: bookID, AuthorID: id}
		})
		if err := tx.Create(&links).Error; err != nil {
			return err
		}
	}
	if genreIDs := lo.Uniq(b.GenreIDs()); len(genreIDs) > 0 {
		links := lo.Map(genreIDs, func(id uint, _ int) BookGenreModel {
			return BookGenreModel{BookID: bookID, GenreID: id}
		})
		if err := tx.Create(&links).Error; err != nil {
			return err
		}
	}
	return nil
}

func toBookEntity(m *BookModel) *book.Book {
	return &book.Book{
		ID:          m.ID,
		Title:       m.Title,
		ISBN:        m.ISBN,
		Price:       m.Price,
		WrittenDate: m.WrittenDate,
		Authors:     []*author.Author{},
		Genres:      []*genre.Genre{},
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		CreatedBy:   m.CreatedBy,
		UpdatedBy:   m.UpdatedBy,
	}
}
