package mysql

import (
	"context"
	"errors"

	"github.com/samber/lo"
	"gorm.io/gorm"

	"github.com/xiebiao/bookcatalog/internal/domain/genre"
)

type genreRepository struct {
	db *gorm.DB
}

// NewGenreRepository 创建分类仓储
func NewGenreRepository(db *gorm.DB) genre.Repository {
	return &genreRepository{db: db}
}

func (r *genreRepository) Create(ctx context.Context, g *genre.Genre) error {
	model := &GenreModel{Name: g.Name}
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return genre.ErrGenreNameDuplicate
		}
		return dbError(err, "创建分类失败")
	}

	g.ID = model.ID
	g.CreatedAt = model.CreatedAt
	g.UpdatedAt = model.UpdatedAt
	g.CreatedBy = model.CreatedBy
	g.UpdatedBy = model.UpdatedBy
	return nil
}

func (r *genreRepository) FindByID(ctx context.Context, id uint) (*genre.Genre, error) {
	var model GenreModel
	if err := getDB(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, genre.ErrGenreNotFound
		}
		return nil, dbError(err, "查询分类失败")
	}
	return toGenreEntity(&model), nil
}

func (r *genreRepository) FindByName(ctx context.Context, name string) (*genre.Genre, error) {
	var model GenreModel
	if err := getDB(ctx, r.db).Where("name = ?", name).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, genre.ErrGenreNotFound
		}
		return nil, dbError(err, "查询分类失败")
	}
	return toGenreEntity(&model), nil
}

func (r *genreRepository) Update(ctx context.Context, g *genre.Genre) error {
	err := getDB(ctx, r.db).
		Model(&GenreModel{BaseModel: BaseModel{ID: g.ID}}).
		Select("name", "updated_by").
		Updates(&GenreModel{Name: g.Name}).Error
	if err != nil {
		if isDuplicateError(err) {
			return genre.ErrGenreNameDuplicate
		}
		return dbError(err, "更新分类失败")
	}

	updated, err := r.FindByID(ctx, g.ID)
	if err != nil {
		return err
	}
	g.UpdatedAt = updated.UpdatedAt
	g.UpdatedBy = updated.UpdatedBy
	return nil
}

func (r *genreRepository) Delete(ctx context.Context, id uint) error {
	if err := getDB(ctx, r.db).Delete(&GenreModel{}, id).Error; err != nil {
		return dbError(err, "删除分类失败")
	}
	return nil
}

func (r *genreRepository) List(ctx context.Context, params genre.ListParams) ([]*genre.Genre, int64, error) {
	var (
		models []GenreModel
		total  int64
	)

	query := getDB(ctx, r.db).Model(&GenreModel{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, dbError(err, "查询分类总数失败")
	}

	limit, offset := normalizePage(params.Page, params.PageSize)
	if err := query.Order("id ASC").Limit(limit).Offset(offset).Find(&models).Error; err != nil {
		return nil, 0, dbError(err, "查询分类列表失败")
	}

	return lo.Map(models, func(m GenreModel, _ int) *genre.Genre { return toGenreEntity(&m) }), total, nil
}

func findGenresByIDs(db *gorm.DB, ids []uint) (map[uint]*genre.Genre, error) {
	result := make(map[uint]*genre.Genre, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var models []GenreModel
	if err := db.Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, dbError(err, "查询分类失败")
	}
	for i := range models {
		result[models[i].ID] = toGenreEntity(&models[i])
	}
	return result, nil
}

func toGenreEntity(m *GenreModel) *genre.Genre {
	return &genre.Genre{
		ID:        m.ID,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		CreatedBy: m.CreatedBy,
		UpdatedBy: m.UpdatedBy,
	}
}
