package author

import (
	"time"

	"github.com/xiebiao/bookcatalog/internal/domain/author"
)

// AuthorView 作者视图
type AuthorView struct {
	ID                   uint      `json:"id"`
	FirstName            string    `json:"first_name"`
	LastName             string    `json:"last_name"`
	FullName             string    `json:"full_name"`
	IdentificationNumber int64     `json:"identification_number"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
	CreatedBy            string    `json:"created_by"`
	UpdatedBy            string    `json:"updated_by"`
}

// ToView 领域实体 → 视图
func ToView(a *author.Author) AuthorView {
	return AuthorView{
		ID:                   a.ID,
		FirstName:            a.FirstName,
		LastName:             a.LastName,
		FullName:             a.FullName(),
		IdentificationNumber: a.IdentificationNumber,
		CreatedAt:            a.CreatedAt,
		UpdatedAt:            a.UpdatedAt,
		CreatedBy:            a.CreatedBy,
		UpdatedBy:            a.UpdatedBy,
	}
}
