package mysql

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookcatalog/internal/domain/author"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/genre"
)

type bookFixture struct {
	books   book.Repository
	authors author.Repository
	genres  genre.Repository
	herbert *author.Author
	leGuin  *author.Author
	sf      *genre.Genre
	fantasy *genre.Genre
}

func newBookFixture(t *testing.T) *bookFixture {
	db := newTestDB(t)
	ctx := context.Background()
	f := &bookFixture{
		books:   NewBookRepository(db),
		authors: NewAuthorRepository(db),
		genres:  NewGenreRepository(db),
		herbert: author.NewAuthor("Frank", "Herbert", 1001),
		leGuin:  author.NewAuthor("Ursula", "Le Guin", 2002),
		sf:      genre.NewGenre("Science Fiction"),
		fantasy: genre.NewGenre("Fantasy"),
	}
	require.NoError(t, f.authors.Create(ctx, f.herbert))
	require.NoError(t, f.authors.Create(ctx, f.leGuin))
	require.NoError(t, f.genres.Create(ctx, f.sf))
	require.NoError(t, f.genres.Create(ctx, f.fantasy))
	return f
}

func (f *bookFixture) create(t *testing.T, title, isbn string, authors []*author.Author, genres []*genre.Genre) *book.Book {
	b := book.NewBook(book.Fields{Title: title, ISBN: isbn, Price: "9.99"})
	for _, a := range authors {
		b.AddAuthor(a)
	}
	for _, g := range genres {
		b.AddGenre(g)
	}
	require.NoError(t, f.books.Create(context.Background(), b))
	return b
}

func TestBookRepository_CreateAndFind(t *testing.T) {
	f := newBookFixture(t)
	ctx := context.Background()

	written := time.Date(1965, 8, 1, 0, 0, 0, 0, time.UTC)
	b := book.NewBook(book.Fields{Title: "Dune", ISBN: "978-0441013593", Price: "12.50", WrittenDate: &written})
	b.AddAuthor(f.herbert)
	b.AddGenre(f.sf)
	require.NoError(t, f.books.Create(ctx, b))

	got, err := f.books.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", got.Title)
	assert.Equal(t, "12.50", got.Price)
	require.NotNil(t, got.WrittenDate)
	assert.True(t, written.Equal(*got.WrittenDate))
	assert.Equal(t, []uint{f.herbert.ID}, got.AuthorIDs())
	assert.Equal(t, []uint{f.sf.ID}, got.GenreIDs())

	t.Run("ISBN重复", func(t *testing.T) {
		dup := book.NewBook(book.Fields{Title: "Other", ISBN: "978-0441013593", Price: "1"})
		assert.ErrorIs(t, f.books.Create(ctx, dup), book.ErrISBNDuplicate)
	})

	t.Run("不存在", func(t *testing.T) {
		_, err := f.books.FindByID(ctx, 99999)
		assert.ErrorIs(t, err, book.ErrBookNotFound)
	})
}

func TestBookRepository_Save(t *testing.T) {
	f := newBookFixture(t)
	ctx := context.Background()
	b := f.create(t, "Dune", "978-1", []*author.Author{f.herbert}, []*genre.Genre{f.sf})

	b.Title = "Dune Messiah"
	b.AddAuthor(f.leGuin)
	b.RemoveGenre(f.sf.ID)
	b.AddGenre(f.fantasy)
	require.NoError(t, f.books.Save(ctx, b))

	got, err := f.books.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune Messiah", got.Title)
	assert.ElementsMatch(t, []uint{f.herbert.ID, f.leGuin.ID}, got.AuthorIDs())
	assert.Equal(t, []uint{f.fantasy.ID}, got.GenreIDs())
}

func TestBookRepository_Search(t *testing.T) {
	f := newBookFixture(t)
	ctx := context.Background()
	dune := f.create(t, "Dune", "978-0441013593", []*author.Author{f.herbert}, []*genre.Genre{f.sf})
	earthsea := f.create(t, "A Wizard of Earthsea", "978-0547722023", []*author.Author{f.leGuin}, []*genre.Genre{f.fantasy, f.sf})
	f.create(t, "100% Poems", "978-0000000001", nil, nil)

	page := book.ListParams{Page: 0, PageSize: 10}

	tests := []struct {
		name  string
		key   string
		want  []uint
		total int64
	}{
		{"按分类名不区分大小写", "sci", []uint{dune.ID, earthsea.ID}, 2},
		{"按书名", "DUN", []uint{dune.ID}, 1},
		{"按作者姓", "guin", []uint{earthsea.ID}, 1},
		{"按ISBN", "0547", []uint{earthsea.ID}, 1},
		{"没有匹配", "zzz", []uint{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			books, total, err := f.books.Search(ctx, tt.key, page)
			require.NoError(t, err)
			assert.Equal(t, tt.total, total)
			ids := make([]uint, 0, len(books))
			for _, b := range books {
				ids = append(ids, b.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}

	t.Run("多个关联命中只返回一次", func(t *testing.T) {
		books, total, err := f.books.Search(ctx, "e", page)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, books, 3)
	})

	t.Run("通配符按字面匹配", func(t *testing.T) {
		books, _, err := f.books.Search(ctx, "%", page)
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, "100% Poems", books[0].Title)
	})

	t.Run("非ASCII字符不区分大小写", func(t *testing.T) {
		uf := newBookFixture(t)
		ecole := uf.create(t, "ÉCOLE DES FEMMES", "978-2070360000", nil, nil)
		uf.create(t, "Ohne Titel", "978-3000000000", nil, nil)

		for _, key := range []string{"école", "ÉCOLE", "École"} {
			books, total, err := uf.books.Search(ctx, key, page)
			require.NoError(t, err, key)
			assert.Equal(t, int64(1), total, key)
			require.Len(t, books, 1, key)
			assert.Equal(t, ecole.ID, books[0].ID)
		}
	})

	t.Run("分页", func(t *testing.T) {
		books, total, err := f.books.Search(ctx, "", book.ListParams{Page: 1, PageSize: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, books, 1)
	})
}

func TestBookRepository_ListByAssociation(t *testing.T) {
	f := newBookFixture(t)
	ctx := context.Background()
	dune := f.create(t, "Dune", "978-1", []*author.Author{f.herbert}, []*genre.Genre{f.sf})
	messiah := f.create(t, "Dune Messiah", "978-2", []*author.Author{f.herbert, f.leGuin}, nil)

	byAuthor, err := f.books.ListByAuthorID(ctx, f.herbert.ID)
	require.NoError(t, err)
	require.Len(t, byAuthor, 2)
	assert.Equal(t, dune.ID, byAuthor[0].ID)
	assert.Equal(t, messiah.ID, byAuthor[1].ID)

	byGenre, err := f.books.ListByGenreID(ctx, f.fantasy.ID)
	require.NoError(t, err)
	assert.Empty(t, byGenre)
}

func TestBookRepository_Delete(t *testing.T) {
	f := newBookFixture(t)
	ctx := context.Background()
	b := f.create(t, "Dune", "978-1", []*author.Author{f.herbert}, []*genre.Genre{f.sf})

	require.NoError(t, f.books.Delete(ctx, b.ID))
	_, err := f.books.FindByID(ctx, b.ID)
	assert.ErrorIs(t, err, book.ErrBookNotFound)

	// 作者和分类本身保留
	_, err = f.authors.FindByID(ctx, f.herbert.ID)
	assert.NoError(t, err)

	// 不存在时不报错
	assert.NoError(t, f.books.Delete(ctx, 99999))

	books, total, err := f.books.List(ctx, book.ListParams{PageSize: 10})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, books)
}

func TestLikeContains(t *testing.T) {
	assert.Equal(t, "%sci%", likeContains("SCI"))
	assert.Equal(t, "%100!%%", likeContains("100%"))
	assert.Equal(t, "%a!_b!!%", likeContains("a_b!"))
}

func TestUnicodeLower(t *testing.T) {
	assert.Equal(t, "école", unicodeLower("ÉCOLE"))
	assert.Equal(t, "москва", unicodeLower("МОСКВА"))
	assert.Nil(t, unicodeLower([]byte(nil)))
	assert.Equal(t, int64(7), unicodeLower(int64(7)))
}
