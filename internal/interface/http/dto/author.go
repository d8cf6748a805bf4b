package dto

// AuthorRequest HTTP创建/全量更新作者请求
type AuthorRequest struct {
	FirstName            string `json:"first_name" binding:"required,max=100" example:"Ursula"`
	LastName             string `json:"last_name" binding:"max=100" example:"Le Guin"`
	IdentificationNumber int64  `json:"identification_number" binding:"required,min=1" example:"2002"`
}
