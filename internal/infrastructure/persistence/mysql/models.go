package mysql

import (
	"time"

	"gorm.io/gorm"

	"github.com/xiebiao/bookcatalog/pkg/actor"
)

// BaseModel 公共字段：主键、时间戳、审计人
// 审计人来自context（actor.WithName），没有登录用户时为system
type BaseModel struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
	CreatedBy string    `gorm:"size:64;comment:创建人"`
	UpdatedBy string    `gorm:"size:64;comment:最后修改人"`
}

// BeforeCreate 填充审计人
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	name := actor.FromContext(tx.Statement.Context)
	if m.CreatedBy == "" {
		m.CreatedBy = name
	}
	m.UpdatedBy = name
	return nil
}

// BeforeUpdate 更新最后修改人
// Updates使用Select时必须包含updated_by
func (m *BaseModel) BeforeUpdate(tx *gorm.DB) error {
	tx.Statement.SetColumn("updated_by", actor.FromContext(tx.Statement.Context))
	return nil
}

// AuthorModel 作者
type AuthorModel struct {
	BaseModel
	FirstName            string `gorm:"index;size:100;not null;comment:名"`
	LastName             string `gorm:"size:100;comment:姓"`
	IdentificationNumber int64  `gorm:"uniqueIndex;not null;comment:证件号"`
}

func (AuthorModel) TableName() string {
	return "authors"
}

// GenreModel 分类
type GenreModel struct {
	BaseModel
	Name string `gorm:"uniqueIndex;size:100;not null;comment:分类名称"`
}

func (GenreModel) TableName() string {
	return "genres"
}

// BookModel 图书
// Price按文本存储，保留调用方给出的精度（如"12.50"）
type BookModel struct {
	BaseModel
	Title       string     `gorm:"index;size:255;not null;comment:书名"`
	ISBN        string     `gorm:"column:isbn;uniqueIndex;size:32;not null;comment:ISBN号"`
	Price       string     `gorm:"size:32;not null;comment:价格"`
	WrittenDate *time.Time `gorm:"comment:写作日期"`
}

func (BookModel) TableName() string {
	return "books"
}

// BookAuthorModel 图书-作者关联，(book_id, author_id)为联合主键保证不重复
type BookAuthorModel struct {
	BookID   uint `gorm:"primaryKey;autoIncrement:false"`
	AuthorID uint `gorm:"primaryKey;autoIncrement:false;index"`
}

func (BookAuthorModel) TableName() string {
	return "book_author"
}

// BookGenreModel 图书-分类关联
type BookGenreModel struct {
	BookID  uint `gorm:"primaryKey;autoIncrement:false"`
	GenreID uint `gorm:"primaryKey;autoIncrement:false;index"`
}

func (BookGenreModel) TableName() string {
	return "book_genre"
}

// UserModel 用户
type UserModel struct {
	BaseModel
	Name     string `gorm:"size:100;comment:姓名"`
	Username string `gorm:"uniqueIndex;size:64;not null;comment:登录名"`
	Password string `gorm:"size:255;not null;comment:密码（bcrypt加密）"`
	Enabled  bool   `gorm:"not null;default:false;comment:是否启用"`
}

func (UserModel) TableName() string {
	return "users"
}

// UserRoleModel 用户角色
type UserRoleModel struct {
	UserID uint   `gorm:"primaryKey;autoIncrement:false"`
	Role   string `gorm:"primaryKey;size:32"`
}

func (UserRoleModel) TableName() string {
	return "authorities"
}
