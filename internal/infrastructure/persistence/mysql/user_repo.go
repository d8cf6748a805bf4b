package mysql

import (
	"context"
	"errors"

	"github.com/samber/lo"
	"gorm.io/gorm"

	"github.com/xiebiao/bookcatalog/internal/domain/user"
)

// userRepository 用户仓储实现
// 用户行存users，角色存authorities
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓储
// 返回domain层的接口类型
func NewUserRepository(db *gorm.DB) user.Repository {
	return &userRepository{db: db}
}

// Create 创建用户和角色
// 用户名唯一性由唯一索引保证
func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	model := &UserModel{
		Name:     u.Name,
		Username: u.Username,
		Password: u.Password,
		Enabled:  u.Enabled,
	}

	err := getDB(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model).Error; err != nil {
			return err
		}
		return writeRoles(tx, model.ID, u.Roles)
	})
	if err != nil {
		if isDuplicateError(err) {
			return user.ErrUsernameDuplicate
		}
		return dbError(err, "创建用户失败")
	}

	u.ID = model.ID
	u.CreatedAt = model.CreatedAt
	u.UpdatedAt = model.UpdatedAt
	u.CreatedBy = model.CreatedBy
	u.UpdatedBy = model.UpdatedBy
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*user.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	return r.findOne(ctx, "username = ?", username)
}

func (r *userRepository) findOne(ctx context.Context, cond string, arg any) (*user.User, error) {
	db := getDB(ctx, r.db)

	var model UserModel
	if err := db.Where(cond, arg).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, dbError(err, "查询用户失败")
	}

	users, err := assembleUsers(db, []UserModel{model})
	if err != nil {
		return nil, err
	}
	return users[0], nil
}

// Update 更新用户字段并重写角色
func (r *userRepository) Update(ctx context.Context, u *user.User) error {
	err := getDB(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&UserModel{BaseModel: BaseModel{ID: u.ID}}).
			Select("name", "username", "password", "enabled", "updated_by").
			Updates(&UserModel{
				Name:     u.Name,
				Username: u.Username,
				Password: u.Password,
				Enabled:  u.Enabled,
			}).Error
		if err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", u.ID).Delete(&UserRoleModel{}).Error; err != nil {
			return err
		}
		return writeRoles(tx, u.ID, u.Roles)
	})
	if err != nil {
		if isDuplicateError(err) {
			return user.ErrUsernameDuplicate
		}
		return dbError(err, "更新用户失败")
	}
	return nil
}

// Delete 删除用户及角色
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	err := getDB(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&UserRoleModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&UserModel{}, id).Error
	})
	if err != nil {
		return dbError(err, "删除用户失败")
	}
	return nil
}

func (r *userRepository) List(ctx context.Context, params user.ListParams) ([]*user.User, int64, error) {
	db := getDB(ctx, r.db)

	var total int64
	if err := db.Model(&UserModel{}).Count(&total).Error; err != nil {
		return nil, 0, dbError(err, "查询用户总数失败")
	}

	var models []UserModel
	limit, offset := normalizePage(params.Page, params.PageSize)
	if err := db.Order("id ASC").Limit(limit).Offset(offset).Find(&models).Error; err != nil {
		return nil, 0, dbError(err, "查询用户列表失败")
	}

	users, err := assembleUsers(db, models)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func assembleUsers(db *gorm.DB, models []UserModel) ([]*user.User, error) {
	if len(models) == 0 {
		return []*user.User{}, nil
	}

	var roles []UserRoleModel
	ids := lo.Map(models, func(m UserModel, _ int) uint { return m.ID })
	if err := db.Where("user_id IN ?", ids).Order("user_id, role").Find(&roles).Error; err != nil {
		return nil, dbError(err, "查询用户角色失败")
	}
	rolesByUser := lo.GroupBy(roles, func(r UserRoleModel) uint { return r.UserID })

	return lo.Map(models, func(m UserModel, _ int) *user.User {
		return &user.User{
			ID:        m.ID,
			Name:      m.Name,
			Username:  m.Username,
			Password:  m.Password,
			Enabled:   m.Enabled,
			Roles:     lo.Map(rolesByUser[m.ID], func(r UserRoleModel, _ int) user.Role { return user.Role(r.Role) }),
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
			CreatedBy: m.CreatedBy,
			UpdatedBy: m.UpdatedBy,
		}
	}), nil
}

func writeRoles(tx *gorm.DB, userID uint, roles []user.Role) error {
	roles = lo.Uniq(roles)
	if len(roles) == 0 {
		return nil
	}
	rows := lo.Map(roles, func(r user.Role, _ int) UserRoleModel {
		return UserRoleModel{UserID: userID, Role: string(r)}
	})
	return tx.Create(&rows).Error
}
