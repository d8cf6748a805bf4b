package mysql

import (
	"context"
	"errors"

	"github.com/samber/lo"
	"gorm.io/gorm"

	"github.com/xiebiao/bookcatalog/internal/domain/author"
)

// authorRepository 作者仓储实现
type authorRepository struct {
	db *gorm.DB
}

// NewAuthorRepository 创建作者仓储
func NewAuthorRepository(db *gorm.DB) author.Repository {
	return &authorRepository{db: db}
}

// Create 创建作者，证件号唯一性由唯一索引保证
func (r *authorRepository) Create(ctx context.Context, a *author.Author) error {
	model := toAuthorModel(a)
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return author.ErrIdentificationNumberDuplicate
		}
		return dbError(err, "创建作者失败")
	}

	fillAuthorAudit(a, model)
	return nil
}

func (r *authorRepository) FindByID(ctx context.Context, id uint) (*author.Author, error) {
	var model AuthorModel
	if err := getDB(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, dbError(err, "查询作者失败")
	}
	return toAuthorEntity(&model), nil
}

func (r *authorRepository) FindByNaturalKey(ctx context.Context, firstName string, identificationNumber int64) (*author.Author, error) {
	var model AuthorModel
	err := getDB(ctx, r.db).
		Where("first_name = ? AND identification_number = ?", firstName, identificationNumber).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, dbError(err, "查询作者失败")
	}
	return toAuthorEntity(&model), nil
}

// Update 全量更新标量字段
func (r *authorRepository) Update(ctx context.Context, a *author.Author) error {
	result := getDB(ctx, r.db).
		Model(&AuthorModel{BaseModel: BaseModel{ID: a.ID}}).
		Select("first_name", "last_name", "identification_number", "updated_by").
		Updates(&AuthorModel{
			FirstName:            a.FirstName,
			LastName:             a.LastName,
			IdentificationNumber: a.IdentificationNumber,
		})
	if result.Error != nil {
		if isDuplicateError(result.Error) {
			return author.ErrIdentificationNumberDuplicate
		}
		return dbError(result.Error, "更新作者失败")
	}

	// 回读时间戳和审计字段
	updated, err := r.FindByID(ctx, a.ID)
	if err != nil {
		return err
	}
	a.UpdatedAt = updated.UpdatedAt
	a.UpdatedBy = updated.UpdatedBy
	return nil
}

// Delete 只删除作者行
func (r *authorRepository) Delete(ctx context.Context, id uint) error {
	if err := getDB(ctx, r.db).Delete(&AuthorModel{}, id).Error; err != nil {
		return dbError(err, "删除作者失败")
	}
	return nil
}

func (r *authorRepository) List(ctx context.Context, params author.ListParams) ([]*author.Author, int64, error) {
	var (
		models []AuthorModel
		total  int64
	)

	query := getDB(ctx, r.db).Model(&AuthorModel{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, dbError(err, "查询作者总数失败")
	}

	limit, offset := normalizePage(params.Page, params.PageSize)
	if err := query.Order("id ASC").Limit(limit).Offset(offset).Find(&models).Error; err != nil {
		return nil, 0, dbError(err, "查询作者列表失败")
	}

	return lo.Map(models, func(m AuthorModel, _ int) *author.Author { return toAuthorEntity(&m) }), total, nil
}

// findAuthorsByIDs 按ID批量加载，供图书仓储组装关联
func findAuthorsByIDs(db *gorm.DB, ids []uint) (map[uint]*author.Author, error) {
	result := make(map[uint]*author.Author, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var models []AuthorModel
	if err := db.Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, dbError(err, "查询作者失败")
	}
	for i := range models {
		result[models[i].ID] = toAuthorEntity(&models[i])
	}
	return result, nil
}

func toAuthorModel(a *author.Author) *AuthorModel {
	return &AuthorModel{
		BaseModel:            BaseModel{ID: a.ID},
		FirstName:            a.FirstName,
		LastName:             a.LastName,
		IdentificationNumber: a.IdentificationNumber,
	}
}

func toAuthorEntity(m *AuthorModel) *author.Author {
	return &author.Author{
		ID:                   m.ID,
		FirstName:            m.FirstName,
		LastName:             m.LastName,
		IdentificationNumber: m.IdentificationNumber,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
		CreatedBy:            m.CreatedBy,
		UpdatedBy:            m.UpdatedBy,
	}
}

func fillAuthorAudit(a *author.Author, m *AuthorModel) {
	a.ID = m.ID
	a.CreatedAt = m.CreatedAt
	a.UpdatedAt = m.UpdatedAt
	a.CreatedBy = m.CreatedBy
	a.UpdatedBy = m.UpdatedBy
}
