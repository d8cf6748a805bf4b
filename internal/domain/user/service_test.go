package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Create(ctx context.Context, u *User) error {
	args := m.Called(ctx, u)
	if args.Error(0) == nil {
		u.ID = 1
	}
	return args.Error(0)
}

func (m *mockRepository) FindByID(ctx context.Context, id uint) (*User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	args := m.Called(ctx, username)
	if u := args.Get(0); u != nil {
		return u.(*User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepository) Update(ctx context.Context, u *User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockRepository) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepository) List(ctx context.Context, params ListParams) ([]*User, int64, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]*User), args.Get(1).(int64), args.Error(2)
}

func hashed(t *testing.T, password string) string {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("默认角色ROLE_USER", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("Create", ctx, mock.AnythingOfType("*user.User")).Return(nil)

		u, err := NewService(repo).Register(ctx, RegisterParams{Name: "Alice", Username: "alice", Password: "password123", Enabled: true})
		require.NoError(t, err)
		assert.Equal(t, []Role{RoleUser}, u.Roles)
		assert.NotEqual(t, "password123", u.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("password123")))
	})

	t.Run("密码太短", func(t *testing.T) {
		_, err := NewService(new(mockRepository)).Register(ctx, RegisterParams{Username: "alice", Password: "short"})
		assert.ErrorIs(t, err, apperrors.ErrWeakPassword)
	})

	t.Run("未知角色", func(t *testing.T) {
		_, err := NewService(new(mockRepository)).Register(ctx, RegisterParams{Username: "alice", Password: "password123", Roles: []Role{"ROLE_ROOT"}})
		assert.ErrorIs(t, err, ErrInvalidRole)
	})

	t.Run("用户名为空", func(t *testing.T) {
		_, err := NewService(new(mockRepository)).Register(ctx, RegisterParams{Username: " ", Password: "password123"})
		assert.ErrorIs(t, err, ErrUsernameRequired)
	})
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("成功", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("FindByUsername", ctx, "alice").Return(&User{ID: 1, Username: "alice", Password: hashed(t, "password123"), Enabled: true}, nil)

		u, err := NewService(repo).Login(ctx, "alice", "password123")
		require.NoError(t, err)
		assert.Equal(t, uint(1), u.ID)
	})

	t.Run("密码错误", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("FindByUsername", ctx, "alice").Return(&User{Password: hashed(t, "password123"), Enabled: true}, nil)

		_, err := NewService(repo).Login(ctx, "alice", "wrong-password")
		assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)
	})

	t.Run("用户不存在", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("FindByUsername", ctx, "bob").Return(nil, ErrUserNotFound)

		_, err := NewService(repo).Login(ctx, "bob", "password123")
		assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)
	})

	t.Run("已禁用", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("FindByUsername", ctx, "carol").Return(&User{Password: hashed(t, "password123"), Enabled: false}, nil)

		_, err := NewService(repo).Login(ctx, "carol", "password123")
		assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()

	repo := new(mockRepository)
	repo.On("FindByID", ctx, uint(1)).Return(&User{ID: 1, Name: "Alice", Username: "alice", Enabled: true, Roles: []Role{RoleUser}}, nil)
	repo.On("Update", ctx, mock.AnythingOfType("*user.User")).Return(nil)

	disabled := false
	u, err := NewService(repo).Update(ctx, 1, UpdateParams{Enabled: &disabled, Roles: []Role{RoleAdmin, RoleAdmin}})
	require.NoError(t, err)
	assert.Equal(t, "Alice", u.Name)
	assert.False(t, u.Enabled)
	assert.Equal(t, []Role{RoleAdmin}, u.Roles)
}

func TestService_EnsureAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("已存在时不创建", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("FindByUsername", ctx, "admin").Return(&User{ID: 1}, nil)

		created, err := NewService(repo).EnsureAdmin(ctx, "Administrator", "admin", "admin12345")
		require.NoError(t, err)
		assert.False(t, created)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("不存在时创建管理员", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("FindByUsername", ctx, "admin").Return(nil, ErrUserNotFound)
		repo.On("Create", ctx, mock.MatchedBy(func(u *User) bool {
			return u.Enabled && u.HasRole(RoleAdmin) && u.HasRole(RoleUser)
		})).Return(nil)

		created, err := NewService(repo).EnsureAdmin(ctx, "Administrator", "admin", "admin12345")
		require.NoError(t, err)
		assert.True(t, created)
		repo.AssertExpectations(t)
	})
}
