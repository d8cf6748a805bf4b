package book

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xiebiao/bookcatalog/internal/domain/author"
	"github.com/xiebiao/bookcatalog/internal/domain/genre"
)

func TestBook_Validate(t *testing.T) {
	tests := []struct {
		name   string
		fields Fields
		want   error
	}{
		{"合法", Fields{Title: "Dune", ISBN: "978", Price: "9.99"}, nil},
		{"价格为0", Fields{Title: "Dune", ISBN: "978", Price: "0"}, nil},
		{"书名为空", Fields{Title: " ", ISBN: "978", Price: "1"}, ErrTitleRequired},
		{"ISBN为空", Fields{Title: "Dune", Price: "1"}, ErrISBNRequired},
		{"价格为负", Fields{Title: "Dune", ISBN: "978", Price: "-0.01"}, ErrInvalidPrice},
		{"价格不是数字", Fields{Title: "Dune", ISBN: "978", Price: "abc"}, ErrInvalidPrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewBook(tt.fields).Validate()
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestBook_Associations(t *testing.T) {
	b := NewBook(Fields{Title: "Dune", ISBN: "978", Price: "1"})

	assert.True(t, b.AddAuthor(&author.Author{ID: 1}))
	assert.False(t, b.AddAuthor(&author.Author{ID: 1}))
	assert.True(t, b.AddGenre(&genre.Genre{ID: 2}))
	assert.False(t, b.AddGenre(&genre.Genre{ID: 2}))

	assert.False(t, b.RemoveAuthor(9))
	assert.True(t, b.RemoveAuthor(1))
	assert.Empty(t, b.Authors)
	assert.True(t, b.RemoveGenre(2))
	assert.Empty(t, b.Genres)
}

func TestPartialUpdate_HasScalars(t *testing.T) {
	title := "x"
	assert.False(t, PartialUpdate{AuthorIDs: []uint{1}}.HasScalars())
	assert.True(t, PartialUpdate{Title: &title}.HasScalars())
}
