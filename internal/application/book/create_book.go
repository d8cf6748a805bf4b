package book

import (
	"context"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/domain/author"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/genre"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

const tracerName = "catalog"

// Transactor 事务边界，由persistence/mysql.TxManager实现
type Transactor interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// AuthorInput 待解析的作者（按FirstName+IdentificationNumber查找或创建）
type AuthorInput struct {
	FirstName            string
	LastName             string
	IdentificationNumber int64
}

// GenreInput 待解析的分类（按Name查找或创建）
type GenreInput struct {
	Name string
}

// CreateBookRequest 创建图书请求
type CreateBookRequest struct {
	Title       string
	ISBN        string
	Price       string
	WrittenDate *time.Time
	Authors     []AuthorInput
	Genres      []GenreInput
}

// CreateBookUseCase 创建图书
// 作者/分类的解析与图书写入在同一事务中，任一步失败全部回滚
type CreateBookUseCase struct {
	bookService book.Service
	tx          Transactor
	log         *zap.Logger
}

// NewCreateBookUseCase 创建用例
func NewCreateBookUseCase(bookService book.Service, tx Transactor, log *zap.Logger) *CreateBookUseCase {
	return &CreateBookUseCase{
		bookService: bookService,
		tx:          tx,
		log:         log,
	}
}

// Execute 执行创建
func (uc *CreateBookUseCase) Execute(ctx context.Context, req CreateBookRequest) (_ *BookView, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "CreateBook")
	defer func() { tracing.EndSpan(span, err) }()

	uc.log.Debug("创建图书",
		zap.String("isbn", req.ISBN),
		zap.Int("authors", len(req.Authors)),
		zap.Int("genres", len(req.Genres)),
	)

	draft := book.Draft{
		Fields: book.Fields{
			Title:       req.Title,
			ISBN:        req.ISBN,
			Price:       req.Price,
			WrittenDate: req.WrittenDate,
		},
		Authors: lo.Map(req.Authors, func(in AuthorInput, _ int) *author.Author {
			return author.NewAuthor(in.FirstName, in.LastName, in.IdentificationNumber)
		}),
		Genres: lo.Map(req.Genres, func(in GenreInput, _ int) *genre.Genre {
			return genre.NewGenre(in.Name)
		}),
	}

	var created *book.Book
	err = uc.tx.Transaction(ctx, func(ctx context.Context) error {
		b, err := uc.bookService.Create(ctx, draft)
		if err != nil {
			return err
		}
		created = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordBookCreated()
	uc.log.Info("图书已创建", zap.Uint("book_id", created.ID), zap.String("isbn", created.ISBN))
	return toViewPtr(created), nil
}
